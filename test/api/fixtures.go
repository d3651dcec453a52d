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

//nolint:revive,staticcheck // dot imports are standard for Ginkgo/Gomega test code
package api

import (
	"context"
	"net/http"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/loonycorn/bugs-api-tests/pkg/bugs"
	"github.com/loonycorn/bugs-api-tests/pkg/client"
)

// CreateBugWithCleanup creates a bug and schedules its deletion at the end
// of the spec.  Returns the new bug's identifier.
func CreateBugWithCleanup(c *client.APIClient, ctx context.Context, bug *bugs.Bug) string {
	response, err := c.CreateBug(ctx, bug)
	Expect(err).NotTo(HaveOccurred())
	Expect(response.StatusCode).To(Equal(http.StatusCreated), "body: %s", response.Body)

	bugID := response.Get("bugId").String()
	Expect(bugID).NotTo(BeEmpty())

	DeferCleanup(func(ctx SpecContext) {
		// It may already have been deleted by the spec.
		response, err := c.DeleteBug(ctx, bugID)
		if err != nil {
			GinkgoWriter.Printf("cleanup of bug %s failed: %v\n", bugID, err)
			return
		}

		GinkgoWriter.Printf("cleanup of bug %s returned %d\n", bugID, response.StatusCode)
	})

	return bugID
}
