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
	"maps"
	"slices"
	"strings"

	"github.com/spjmurray/go-util/pkg/set"
)

// Plan is a validated set of scenarios in execution order.
type Plan struct {
	// scenarios are in topological order.
	scenarios []*Scenario
	// byName indexes scenarios.
	byName map[string]*Scenario
}

// NewPlan checks the scenarios form a valid graph and orders them so every
// scenario comes after its prerequisites.  Where there is a choice, the
// scenario declared first goes first.
func NewPlan(scenarios ...Scenario) (*Plan, error) {
	scenarios = slices.Clone(scenarios)

	byName := make(map[string]*Scenario, len(scenarios))
	declared := make(map[string]int, len(scenarios))

	for i := range scenarios {
		s := &scenarios[i]

		if s.Name == "" {
			return nil, fmt.Errorf("%w: scenario %d has no name", ErrInvalidScenario, i)
		}

		if s.Run == nil {
			return nil, fmt.Errorf("%w: scenario %s has no body", ErrInvalidScenario, s.Name)
		}

		if _, ok := byName[s.Name]; ok {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateScenario, s.Name)
		}

		byName[s.Name] = s
		declared[s.Name] = i
	}

	names := set.New[string](slices.Collect(maps.Keys(byName))...)

	// Count unmet prerequisites, and record who is waiting on whom.
	indegree := make([]int, len(scenarios))
	dependents := make([][]int, len(scenarios))

	for i := range scenarios {
		s := &scenarios[i]

		prerequisites := set.New[string](s.Prerequisites...)

		if unknown := slices.Sorted(prerequisites.Difference(names).All()); len(unknown) > 0 {
			return nil, fmt.Errorf("%w: scenario %s requires %s", ErrUnknownPrerequisite, s.Name, strings.Join(unknown, ", "))
		}

		for name := range prerequisites.All() {
			if name == s.Name {
				return nil, fmt.Errorf("%w: scenario %s requires itself", ErrCycle, s.Name)
			}

			p := declared[name]

			indegree[i]++
			dependents[p] = append(dependents[p], i)
		}
	}

	order := make([]*Scenario, 0, len(scenarios))
	done := make([]bool, len(scenarios))

	for len(order) < len(scenarios) {
		// Lowest declaration index among the ready scenarios.
		next := -1

		for i, n := range indegree {
			if n == 0 && !done[i] {
				next = i
				break
			}
		}

		if next < 0 {
			var stuck []string

			for i := range scenarios {
				if !done[i] {
					stuck = append(stuck, scenarios[i].Name)
				}
			}

			return nil, fmt.Errorf("%w: between %s", ErrCycle, strings.Join(stuck, ", "))
		}

		done[next] = true
		order = append(order, &scenarios[next])

		for _, d := range dependents[next] {
			indegree[d]--
		}
	}

	return &Plan{
		scenarios: order,
		byName:    byName,
	}, nil
}

// Scenarios returns the scenarios in execution order.
func (p *Plan) Scenarios() []*Scenario {
	return slices.Clone(p.scenarios)
}

// Names returns the scenario names in execution order.
func (p *Plan) Names() []string {
	names := make([]string, len(p.scenarios))

	for i, s := range p.scenarios {
		names[i] = s.Name
	}

	return names
}

// Get looks up a scenario by name.
func (p *Plan) Get(name string) (*Scenario, bool) {
	s, ok := p.byName[name]

	return s, ok
}
