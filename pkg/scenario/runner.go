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

package scenario

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-logr/logr"
	"github.com/onsi/gomega"

	"github.com/loonycorn/bugs-api-tests/pkg/diagnostics"

	"sigs.k8s.io/controller-runtime/pkg/log"
)

// Result is the outcome of a single scenario.
type Result struct {
	// Name of the scenario.
	Name string
	// Feature and Severity are copied from the scenario for reporting.
	Feature  string
	Severity Severity
	// State is where the scenario got to.
	State State
	// Err is why a scenario failed.
	Err error
	// Blockers are the prerequisites that stopped a scenario running.
	Blockers []string
	// Started is when the scenario began executing.
	Started time.Time
	// Duration is how long the scenario body took.
	Duration time.Duration
}

// Option customizes a runner.
type Option func(*Runner)

// WithDiagnostics sends every HTTP exchange made by a scenario to sink.
func WithDiagnostics(sink diagnostics.Sink) Option {
	return func(r *Runner) {
		r.sink = sink
	}
}

// WithLogger uses logger rather than the one in the run context.
func WithLogger(logger logr.Logger) Option {
	return func(r *Runner) {
		r.logger = &logger
	}
}

// Runner executes a plan, tracking the state of each scenario.
type Runner struct {
	plan   *Plan
	sink   diagnostics.Sink
	logger *logr.Logger

	lock    sync.Mutex
	results map[string]*Result
}

// NewRunner returns a runner with every scenario in the plan pending.
func NewRunner(plan *Plan, options ...Option) *Runner {
	r := &Runner{
		plan:    plan,
		results: make(map[string]*Result, len(plan.scenarios)),
	}

	for _, s := range plan.scenarios {
		r.results[s.Name] = &Result{
			Name:     s.Name,
			Feature:  s.Feature,
			Severity: s.Severity,
			State:    StatePending,
		}
	}

	for _, o := range options {
		o(r)
	}

	return r
}

// Run executes every scenario in plan order.
func (r *Runner) Run(ctx context.Context) *Report {
	for _, s := range r.plan.scenarios {
		// Names come from the plan so this can't fail.
		_, _ = r.RunScenario(ctx, s.Name)
	}

	return r.Report()
}

// RunScenario executes a single scenario, unless one of its prerequisites has
// not passed, in which case it's skipped.  A scenario only ever executes once,
// asking again returns the original result.
func (r *Runner) RunScenario(ctx context.Context, name string) (*Result, error) {
	s, ok := r.plan.Get(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownScenario, name)
	}

	result := r.result(name)

	if result.State != StatePending {
		return result, nil
	}

	logger := r.loggerFor(ctx).WithName("scenario").WithValues("scenario", name)

	if blockers := r.blockers(s); len(blockers) > 0 {
		logger.Info("skipping scenario", "blockers", blockers)

		return r.finish(name, func(result *Result) {
			result.State = StateSkipped
			result.Blockers = blockers
		}), nil
	}

	if err := ctx.Err(); err != nil {
		logger.Info("run cancelled", "error", err.Error())

		return r.finish(name, func(result *Result) {
			result.State = StateFailed
			result.Err = err
		}), nil
	}

	r.finish(name, func(result *Result) {
		result.State = StateRunning
		result.Started = time.Now()
	})

	logger.Info("running scenario", "description", s.Description)

	ctx = log.IntoContext(ctx, logger)

	if r.sink != nil {
		ctx = diagnostics.IntoContext(ctx, name, r.sink)
	}

	err := execute(ctx, s)

	return r.finish(name, func(result *Result) {
		result.Duration = time.Since(result.Started)

		if err != nil {
			logger.Info("scenario failed", "error", err.Error(), "severity", s.Severity)

			result.State = StateFailed
			result.Err = err

			return
		}

		logger.Info("scenario passed", "duration", result.Duration)

		result.State = StatePassed
	}), nil
}

// Result returns a copy of the named scenario's result.
func (r *Runner) Result(name string) (*Result, bool) {
	r.lock.Lock()
	defer r.lock.Unlock()

	result, ok := r.results[name]
	if !ok {
		return nil, false
	}

	out := *result

	return &out, true
}

// Results returns a copy of every result in plan order.
func (r *Runner) Results() []Result {
	r.lock.Lock()
	defer r.lock.Unlock()

	results := make([]Result, len(r.plan.scenarios))

	for i, s := range r.plan.scenarios {
		results[i] = *r.results[s.Name]
	}

	return results
}

// Report summarizes the run so far.
func (r *Runner) Report() *Report {
	return newReport(r.Results())
}

func (r *Runner) loggerFor(ctx context.Context) logr.Logger {
	if r.logger != nil {
		return *r.logger
	}

	return log.FromContext(ctx)
}

func (r *Runner) result(name string) *Result {
	result, _ := r.Result(name)

	return result
}

// finish applies an update under the lock and returns a copy of the result.
func (r *Runner) finish(name string, update func(*Result)) *Result {
	r.lock.Lock()
	defer r.lock.Unlock()

	result := r.results[name]

	update(result)

	out := *result

	return &out
}

// blockers lists prerequisites that haven't passed, in declaration order.
func (r *Runner) blockers(s *Scenario) []string {
	r.lock.Lock()
	defer r.lock.Unlock()

	var blockers []string

	for _, name := range s.Prerequisites {
		if r.results[name].State != StatePassed {
			blockers = append(blockers, name)
		}
	}

	return blockers
}

// assertionFailure carries a Gomega failure message out of the scenario body.
type assertionFailure struct {
	message string
}

// execute runs the scenario body, turning assertion failures and panics into
// errors.
func execute(ctx context.Context, s *Scenario) (err error) {
	g := gomega.NewGomega(func(message string, _ ...int) {
		panic(assertionFailure{message: message})
	})

	defer func() {
		if p := recover(); p != nil {
			if failure, ok := p.(assertionFailure); ok {
				err = &AssertionError{Scenario: s.Name, Message: failure.message}
				return
			}

			err = fmt.Errorf("%w: %s: %v", ErrPanic, s.Name, p)
		}
	}()

	return s.Run(ctx, g)
}
