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

// Package scenario sequences dependent test scenarios.  Scenarios form a
// directed acyclic graph of prerequisites; a scenario only runs when every
// prerequisite passed, otherwise it is skipped, and that skip cascades to
// everything that depends on it.  Nothing is retried.
package scenario

import (
	"context"
	"errors"
	"fmt"

	"github.com/onsi/gomega"
)

var (
	// ErrInvalidScenario is raised when a scenario has no name or no body.
	ErrInvalidScenario = errors.New("invalid scenario")

	// ErrDuplicateScenario is raised when two scenarios share a name.
	ErrDuplicateScenario = errors.New("duplicate scenario")

	// ErrUnknownPrerequisite is raised when a prerequisite names nothing in the plan.
	ErrUnknownPrerequisite = errors.New("unknown prerequisite")

	// ErrCycle is raised when prerequisites loop back on themselves.
	ErrCycle = errors.New("prerequisite cycle")

	// ErrUnknownScenario is raised when asked to run a scenario not in the plan.
	ErrUnknownScenario = errors.New("unknown scenario")

	// ErrPanic is raised when a scenario panics with something other than an
	// assertion failure.
	ErrPanic = errors.New("scenario panicked")
)

// State is where a scenario is in its lifecycle.
type State string

const (
	StatePending State = "pending"
	StateRunning State = "running"
	StatePassed  State = "passed"
	StateFailed  State = "failed"
	StateSkipped State = "skipped"
)

// Done is true once the state can no longer change.
func (s State) Done() bool {
	return s == StatePassed || s == StateFailed || s == StateSkipped
}

// Severity ranks how bad it is when a scenario fails.
type Severity string

const (
	SeverityBlocker  Severity = "blocker"
	SeverityCritical Severity = "critical"
	SeverityNormal   Severity = "normal"
	SeverityMinor    Severity = "minor"
	SeverityTrivial  Severity = "trivial"
)

// Func is the body of a scenario.  Assertions are made with g, and a failed
// assertion stops the scenario.  Returned errors also fail the scenario.
type Func func(ctx context.Context, g gomega.Gomega) error

// Scenario is a named step that runs once its prerequisites have passed.
type Scenario struct {
	// Name uniquely identifies the scenario.
	Name string
	// Description says what the scenario checks.
	Description string
	// Feature groups related scenarios in reports.
	Feature string
	// Severity is reported alongside failures.
	Severity Severity
	// Prerequisites must all pass before this scenario runs.
	Prerequisites []string
	// Run is the scenario body.
	Run Func
}

// AssertionError is returned when a scenario's assertion fails.
type AssertionError struct {
	Scenario string
	Message  string
}

func (e *AssertionError) Error() string {
	return fmt.Sprintf("scenario %s: assertion failed: %s", e.Scenario, e.Message)
}
