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
	"fmt"
	"time"
)

// Report aggregates the results of a run.
type Report struct {
	// Results are in plan order.
	Results []Result

	Total   int
	Passed  int
	Failed  int
	Skipped int
	Pending int

	// Duration is the time spent executing scenario bodies.
	Duration time.Duration
}

func newReport(results []Result) *Report {
	r := &Report{
		Results: results,
		Total:   len(results),
	}

	for i := range results {
		r.Duration += results[i].Duration

		switch results[i].State {
		case StatePassed:
			r.Passed++
		case StateFailed:
			r.Failed++
		case StateSkipped:
			r.Skipped++
		case StatePending, StateRunning:
			r.Pending++
		}
	}

	return r
}

// Succeeded is true when every scenario passed.
func (r *Report) Succeeded() bool {
	return r.Total > 0 && r.Passed == r.Total
}

// Failures returns the results that failed or were skipped.
func (r *Report) Failures() []Result {
	var out []Result

	for _, result := range r.Results {
		if result.State == StateFailed || result.State == StateSkipped {
			out = append(out, result)
		}
	}

	return out
}

func (r *Report) String() string {
	return fmt.Sprintf("%d scenarios: %d passed, %d failed, %d skipped, %d pending", r.Total, r.Passed, r.Failed, r.Skipped, r.Pending)
}
