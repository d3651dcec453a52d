/*
Copyright 2026 the Loonycorn Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package report_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/loonycorn/bugs-api-tests/pkg/diagnostics"
	"github.com/loonycorn/bugs-api-tests/pkg/report"
	"github.com/loonycorn/bugs-api-tests/pkg/scenario"
)

func TestRecord(t *testing.T) {
	t.Parallel()

	dir, err := report.NewDirectory(filepath.Join(t.TempDir(), "results"))
	require.NoError(t, err)

	dir.Record("CreateBugOne", &diagnostics.Exchange{
		Method:       "POST",
		URI:          "http://localhost/bugs",
		RequestBody:  []byte(`{"completed":false}`),
		StatusCode:   201,
		ResponseBody: []byte(`{"bugId":"1"}`),
	})

	dir.Record("CreateBugOne", &diagnostics.Exchange{
		Method: "GET",
		URI:    "http://localhost/bugs",
		Err:    errors.New("connection refused"),
	})

	require.NoError(t, dir.Err())

	request, err := os.ReadFile(filepath.Join(dir.Root(), "CreateBugOne", "01-request.txt"))
	require.NoError(t, err)
	require.Contains(t, string(request), "CreateBugOne Request Details")
	require.Contains(t, string(request), "POST http://localhost/bugs")
	require.Contains(t, string(request), `{"completed":false}`)

	response, err := os.ReadFile(filepath.Join(dir.Root(), "CreateBugOne", "01-response.txt"))
	require.NoError(t, err)
	require.Contains(t, string(response), "CreateBugOne Response Details")
	require.Contains(t, string(response), "201")
	require.Contains(t, string(response), `"bugId": "1"`)

	failed, err := os.ReadFile(filepath.Join(dir.Root(), "CreateBugOne", "02-response.txt"))
	require.NoError(t, err)
	require.Contains(t, string(failed), "connection refused")
}

func TestWriteSummary(t *testing.T) {
	t.Parallel()

	dir, err := report.NewDirectory(t.TempDir())
	require.NoError(t, err)

	r := &scenario.Report{
		Results: []scenario.Result{
			{Name: "CreateBugOne", Feature: "Bug Creation", Severity: scenario.SeverityBlocker, State: scenario.StateFailed, Err: errors.New("boom")},
			{Name: "RetrieveBugs", Feature: "Bug retrieval", Severity: scenario.SeverityTrivial, State: scenario.StateSkipped, Blockers: []string{"CreateBugOne"}},
		},
		Total:   2,
		Failed:  1,
		Skipped: 1,
	}

	require.NoError(t, dir.WriteSummary(r))

	data, err := os.ReadFile(filepath.Join(dir.Root(), report.SummaryFile))
	require.NoError(t, err)

	var out struct {
		Total     int `yaml:"total"`
		Failed    int `yaml:"failed"`
		Scenarios []struct {
			Name     string   `yaml:"name"`
			Severity string   `yaml:"severity"`
			State    string   `yaml:"state"`
			Error    string   `yaml:"error"`
			Blockers []string `yaml:"blockers"`
		} `yaml:"scenarios"`
	}

	require.NoError(t, yaml.Unmarshal(data, &out))
	require.Equal(t, 2, out.Total)
	require.Equal(t, 1, out.Failed)
	require.Len(t, out.Scenarios, 2)
	require.Equal(t, "blocker", out.Scenarios[0].Severity)
	require.Equal(t, "boom", out.Scenarios[0].Error)
	require.Equal(t, "skipped", out.Scenarios[1].State)
	require.Equal(t, []string{"CreateBugOne"}, out.Scenarios[1].Blockers)
}
