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

// Package report writes the diagnostics of a run to a results directory.
// Every HTTP exchange becomes a request and a response file under a
// directory per scenario, and the outcome of the run is summarized in YAML.
package report

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/loonycorn/bugs-api-tests/pkg/diagnostics"
	"github.com/loonycorn/bugs-api-tests/pkg/scenario"
)

// SummaryFile is the name of the run summary in the results directory.
const SummaryFile = "summary.yaml"

// Directory is a diagnostics sink that writes to the filesystem.
type Directory struct {
	root string

	lock     sync.Mutex
	sequence map[string]int
	errs     []error
}

// Ensure the directory can be used as a sink.
var _ diagnostics.Sink = &Directory{}

// NewDirectory creates the results directory if necessary.
func NewDirectory(root string) (*Directory, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("creating results directory: %w", err)
	}

	return &Directory{
		root:     root,
		sequence: map[string]int{},
	}, nil
}

// Root is where results are written.
func (d *Directory) Root() string {
	return d.root
}

// safeName keeps scenario names usable as directory names.
func safeName(name string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_', r == '.':
			return r
		}

		return '_'
	}, name)
}

func render(title string, attachments []diagnostics.Attachment) []byte {
	var b strings.Builder

	b.WriteString(title)
	b.WriteString("\n\n")

	for _, a := range attachments {
		b.WriteString(a.Name)
		b.WriteString(":\n")
		b.WriteString(a.Content)
		b.WriteString("\n\n")
	}

	return []byte(b.String())
}

// Record writes the exchange as a numbered request and response pair.
// Write errors don't interrupt the run, they're returned by Err.
func (d *Directory) Record(scenario string, exchange *diagnostics.Exchange) {
	d.lock.Lock()
	defer d.lock.Unlock()

	d.sequence[scenario]++

	dir := filepath.Join(d.root, safeName(scenario))

	if err := os.MkdirAll(dir, 0o755); err != nil {
		d.errs = append(d.errs, err)
		return
	}

	prefix := filepath.Join(dir, fmt.Sprintf("%02d", d.sequence[scenario]))

	if err := os.WriteFile(prefix+"-request.txt", render(scenario+" Request Details", exchange.RequestAttachments()), 0o600); err != nil {
		d.errs = append(d.errs, err)
	}

	if err := os.WriteFile(prefix+"-response.txt", render(scenario+" Response Details", exchange.ResponseAttachments()), 0o600); err != nil {
		d.errs = append(d.errs, err)
	}
}

// Err returns any errors raised while recording.
func (d *Directory) Err() error {
	d.lock.Lock()
	defer d.lock.Unlock()

	return errors.Join(d.errs...)
}

type scenarioSummary struct {
	Name     string   `yaml:"name"`
	Feature  string   `yaml:"feature,omitempty"`
	Severity string   `yaml:"severity,omitempty"`
	State    string   `yaml:"state"`
	Duration string   `yaml:"duration,omitempty"`
	Error    string   `yaml:"error,omitempty"`
	Blockers []string `yaml:"blockers,omitempty"`
}

type summary struct {
	Total     int               `yaml:"total"`
	Passed    int               `yaml:"passed"`
	Failed    int               `yaml:"failed"`
	Skipped   int               `yaml:"skipped"`
	Pending   int               `yaml:"pending,omitempty"`
	Duration  string            `yaml:"duration"`
	Scenarios []scenarioSummary `yaml:"scenarios"`
}

// Summarize converts a report into YAML.
func Summarize(report *scenario.Report) ([]byte, error) {
	s := &summary{
		Total:     report.Total,
		Passed:    report.Passed,
		Failed:    report.Failed,
		Skipped:   report.Skipped,
		Pending:   report.Pending,
		Duration:  report.Duration.String(),
		Scenarios: make([]scenarioSummary, len(report.Results)),
	}

	for i, result := range report.Results {
		s.Scenarios[i] = scenarioSummary{
			Name:     result.Name,
			Feature:  result.Feature,
			Severity: string(result.Severity),
			State:    string(result.State),
			Blockers: result.Blockers,
		}

		if result.Duration > 0 {
			s.Scenarios[i].Duration = result.Duration.String()
		}

		if result.Err != nil {
			s.Scenarios[i].Error = result.Err.Error()
		}
	}

	data, err := yaml.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("marshaling summary: %w", err)
	}

	return data, nil
}

// WriteSummary writes the run summary into the results directory.
func (d *Directory) WriteSummary(report *scenario.Report) error {
	data, err := Summarize(report)
	if err != nil {
		return err
	}

	if err := os.WriteFile(filepath.Join(d.root, SummaryFile), data, 0o600); err != nil {
		return fmt.Errorf("writing summary: %w", err)
	}

	return nil
}
