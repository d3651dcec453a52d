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

package bugsuite_test

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/go-logr/logr"
	"github.com/stretchr/testify/require"

	"github.com/loonycorn/bugs-api-tests/pkg/bugs"
	"github.com/loonycorn/bugs-api-tests/pkg/bugsuite"
	"github.com/loonycorn/bugs-api-tests/pkg/client"
	"github.com/loonycorn/bugs-api-tests/pkg/scenario"
	"github.com/loonycorn/bugs-api-tests/pkg/server"
)

// run executes the lifecycle against the stand-in service, optionally
// wrapped so faults can be injected.
func run(t *testing.T, s *server.Server, wrap func(http.Handler) http.Handler) *scenario.Report {
	t.Helper()

	h, err := s.Handler()
	require.NoError(t, err)

	if wrap != nil {
		h = wrap(h)
	}

	ts := httptest.NewServer(h)
	t.Cleanup(ts.Close)

	options := client.DefaultOptions()
	options.BaseURL = ts.URL
	options.ValidateContract = true

	c, err := client.NewWithHTTPClient(options, ts.Client())
	require.NoError(t, err)

	plan, err := bugsuite.NewPlan(c)
	require.NoError(t, err)

	return scenario.NewRunner(plan, scenario.WithLogger(logr.Discard())).Run(t.Context())
}

func states(report *scenario.Report) map[string]scenario.State {
	out := map[string]scenario.State{}

	for _, result := range report.Results {
		out[result.Name] = result.State
	}

	return out
}

func TestPlanOrder(t *testing.T) {
	t.Parallel()

	plan, err := bugsuite.NewPlan(nil)
	require.NoError(t, err)
	require.Equal(t, []string{
		bugsuite.CreateBugOne,
		bugsuite.CreateBugTwo,
		bugsuite.RetrieveBugs,
		bugsuite.UpdateBugOneFull,
		bugsuite.UpdateBugTwoPartial,
		bugsuite.DeleteAllBugs,
	}, plan.Names())
}

func TestLifecyclePasses(t *testing.T) {
	t.Parallel()

	s := server.New(server.Options{ValidateRequests: true})

	report := run(t, s, nil)

	require.True(t, report.Succeeded(), report.String())
	require.Empty(t, s.Bugs.List())
}

func TestUnexpectedBugFailsRetrieval(t *testing.T) {
	t.Parallel()

	s := server.New(server.Options{ValidateRequests: true})

	s.Bugs.Create(func(id string) bugs.Record {
		return bugs.Record{BugID: id, Bug: *bugs.New("Someone Else", 2, bugs.SeverityLow, "Left over", false)}
	})

	report := run(t, s, nil)

	require.Equal(t, map[string]scenario.State{
		bugsuite.CreateBugOne:        scenario.StatePassed,
		bugsuite.CreateBugTwo:        scenario.StatePassed,
		bugsuite.RetrieveBugs:        scenario.StateFailed,
		bugsuite.UpdateBugOneFull:    scenario.StateSkipped,
		bugsuite.UpdateBugTwoPartial: scenario.StateSkipped,
		bugsuite.DeleteAllBugs:       scenario.StateSkipped,
	}, states(report))

	var assertion *scenario.AssertionError

	require.ErrorAs(t, report.Results[2].Err, &assertion)
}

func TestFailedPatchOnlyBlocksDeletion(t *testing.T) {
	t.Parallel()

	s := server.New(server.Options{ValidateRequests: true})

	report := run(t, s, func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodPatch {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusServiceUnavailable)
				_, _ = w.Write([]byte(`{"error":"unavailable"}`))

				return
			}

			next.ServeHTTP(w, r)
		})
	})

	require.Equal(t, map[string]scenario.State{
		bugsuite.CreateBugOne:        scenario.StatePassed,
		bugsuite.CreateBugTwo:        scenario.StatePassed,
		bugsuite.RetrieveBugs:        scenario.StatePassed,
		bugsuite.UpdateBugOneFull:    scenario.StatePassed,
		bugsuite.UpdateBugTwoPartial: scenario.StateFailed,
		bugsuite.DeleteAllBugs:       scenario.StateSkipped,
	}, states(report))

	// Nothing cleaned up after the failure.
	require.Len(t, s.Bugs.List(), 2)
}

// TestDeletionRemovesEveryListedBug adds a bug behind the lifecycle's back
// once the list has been checked, deletion must still clear it.
func TestDeletionRemovesEveryListedBug(t *testing.T) {
	t.Parallel()

	s := server.New(server.Options{ValidateRequests: true})

	var once sync.Once

	report := run(t, s, func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r)

			if r.Method == http.MethodPatch {
				once.Do(func() {
					s.Bugs.Create(func(id string) bugs.Record {
						return bugs.Record{BugID: id, Bug: *bugs.New("Someone Else", 2, bugs.SeverityLow, "Late arrival", false)}
					})
				})
			}
		})
	})

	require.True(t, report.Succeeded(), report.String())
	require.Equal(t, scenario.StatePassed, states(report)[bugsuite.DeleteAllBugs])
	require.Empty(t, s.Bugs.List())
}
