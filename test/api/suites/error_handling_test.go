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
	"net/http"

	"github.com/google/uuid"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/loonycorn/bugs-api-tests/pkg/bugs"
	"github.com/loonycorn/bugs-api-tests/pkg/bugsuite"
	"github.com/loonycorn/bugs-api-tests/test/api"
)

var _ = Describe("Error Handling", Serial, Label("negative"), func() {
	Context("When deleting bugs", func() {
		Describe("Given the bug does not exist", func() {
			It("should not report success", func(ctx SpecContext) {
				response, err := apiClient.DeleteBug(ctx, uuid.NewString())
				Expect(err).NotTo(HaveOccurred())
				Expect(response.StatusCode).NotTo(Equal(http.StatusOK))
			})
		})

		Describe("Given the bug was already deleted", func() {
			It("should fail the second delete", func(ctx SpecContext) {
				bugID := api.CreateBugWithCleanup(apiClient, ctx, bugs.BugOne())

				response, err := apiClient.DeleteBug(ctx, bugID)
				Expect(err).NotTo(HaveOccurred())
				bugsuite.VerifyStatus(Default, response, http.StatusOK)
				bugsuite.VerifyDeletedID(Default, response, bugID)

				response, err = apiClient.DeleteBug(ctx, bugID)
				Expect(err).NotTo(HaveOccurred())
				Expect(response.StatusCode).NotTo(Equal(http.StatusOK))
			})

			It("should no longer list the bug", func(ctx SpecContext) {
				bugID := api.CreateBugWithCleanup(apiClient, ctx, bugs.BugTwo())

				response, err := apiClient.DeleteBug(ctx, bugID)
				Expect(err).NotTo(HaveOccurred())
				bugsuite.VerifyStatus(Default, response, http.StatusOK)

				ids, err := apiClient.ListBugIDs(ctx)
				Expect(err).NotTo(HaveOccurred())
				Expect(ids).NotTo(ContainElement(bugID))
			})
		})
	})

	Context("When updating bugs", func() {
		Describe("Given a partial update", func() {
			It("should leave the other fields untouched", func(ctx SpecContext) {
				bugID := api.CreateBugWithCleanup(apiClient, ctx, bugs.BugTwo())

				response, err := apiClient.PatchBug(ctx, bugID, bugs.CompletedPatch())
				Expect(err).NotTo(HaveOccurred())
				bugsuite.VerifyStatus(Default, response, http.StatusOK)
				bugsuite.VerifyBugEcho(Default, response, bugs.BugTwo().WithCompleted(true))
			})
		})

		Describe("Given the title changes case only", func() {
			It("should match the title ignoring case", func(ctx SpecContext) {
				bugID := api.CreateBugWithCleanup(apiClient, ctx, bugs.BugOne())

				replacement := bugs.BugOneReplacement()

				response, err := apiClient.UpdateBug(ctx, bugID, replacement.WithTitle("HOMEPAGE HANGS"))
				Expect(err).NotTo(HaveOccurred())
				bugsuite.VerifyStatus(Default, response, http.StatusOK)
				bugsuite.VerifyBugEcho(Default, response, replacement)
			})
		})
	})
})
