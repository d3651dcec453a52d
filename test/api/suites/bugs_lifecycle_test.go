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

//nolint:testpackage,revive // test package in suites is standard for these tests, dot imports standard for Ginkgo
package suites

import (
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/loonycorn/bugs-api-tests/pkg/bugsuite"
	"github.com/loonycorn/bugs-api-tests/pkg/scenario"
)

var _ = Describe("Bugs lifecycle", Serial, Ordered, ContinueOnFailure, Label("lifecycle"), func() {
	var runner *scenario.Runner

	BeforeAll(func() {
		plan, err := bugsuite.NewPlan(apiClient)
		Expect(err).NotTo(HaveOccurred())

		runner = scenario.NewRunner(plan, scenario.WithDiagnostics(sink), scenario.WithLogger(GinkgoLogr))
	})

	AfterAll(func() {
		summary := runner.Report()

		GinkgoWriter.Println(summary)

		if results != nil {
			Expect(results.WriteSummary(summary)).To(Succeed())
		}
	})

	for _, s := range bugsuite.Scenarios(nil) {
		It(s.Description, Label(s.Feature, string(s.Severity)), func(ctx SpecContext) {
			result, err := runner.RunScenario(ctx, s.Name)
			Expect(err).NotTo(HaveOccurred())

			AddReportEntry("Scenario", result.Name)
			AddReportEntry("Feature", result.Feature)
			AddReportEntry("Severity", string(result.Severity))

			switch result.State {
			case scenario.StateSkipped:
				Skip("prerequisites did not pass: " + strings.Join(result.Blockers, ", "))
			case scenario.StateFailed:
				Fail(result.Err.Error())
			}

			Expect(result.State).To(Equal(scenario.StatePassed))
		})
	}
})
