//go:build contract

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

package bugs_test

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"testing"

	. "github.com/onsi/ginkgo/v2" //nolint:revive
	. "github.com/onsi/gomega"    //nolint:revive
	"github.com/pact-foundation/pact-go/v2/consumer"
	"github.com/pact-foundation/pact-go/v2/matchers"
	"github.com/pact-foundation/pact-go/v2/models"

	"github.com/loonycorn/bugs-api-tests/pkg/bugs"
	"github.com/loonycorn/bugs-api-tests/pkg/bugsuite"
	"github.com/loonycorn/bugs-api-tests/pkg/client"
)

var testingT *testing.T //nolint:gochecknoglobals

func TestContracts(t *testing.T) { //nolint:paralleltest
	testingT = t

	RegisterFailHandler(Fail)
	RunSpecs(t, "Bugs Consumer Contract Suite")
}

// createClient creates a bugs client for the mock server.
func createClient(config consumer.MockServerConfig) (*client.APIClient, error) {
	options := client.DefaultOptions()
	options.BaseURL = fmt.Sprintf("http://%s", net.JoinHostPort(config.Host, strconv.Itoa(config.Port)))
	options.ValidateContract = true

	return client.New(options)
}

// bugBody is what a client sends for a fully populated bug.
func bugBody(bug *bugs.Bug) map[string]interface{} {
	return map[string]interface{}{
		"createdBy": *bug.CreatedBy,
		"priority":  *bug.Priority,
		"severity":  *bug.Severity,
		"title":     *bug.Title,
		"completed": *bug.Completed,
	}
}

// bugRecord is what the service returns for a bug.
func bugRecord(bug *bugs.Bug) map[string]interface{} {
	return map[string]interface{}{
		"bugId":     matchers.UUID(),
		"createdBy": matchers.String(*bug.CreatedBy),
		"priority":  matchers.Integer(*bug.Priority),
		"severity":  matchers.String(*bug.Severity),
		"title":     matchers.String(*bug.Title),
		"completed": matchers.Like(*bug.Completed),
	}
}

const bugID = "6f0f6e8e-1b0e-4c1e-9d3a-2f1c2f5a0b11"

var _ = Describe("Bugs Service Contract", func() {
	var (
		pact *consumer.V4HTTPMockProvider
		ctx  context.Context
	)

	BeforeEach(func() {
		var err error

		pact, err = consumer.NewV4Pact(consumer.MockHTTPProviderConfig{
			Consumer: "bugs-api-tests",
			Provider: "bugs-api",
			PactDir:  "../pacts",
		})
		Expect(err).NotTo(HaveOccurred())

		ctx = context.Background()
	})

	Describe("CreateBug", func() {
		It("returns the created bug", func() {
			bug := bugs.BugOne()

			pact.AddInteraction().
				GivenWithParameter(models.ProviderState{Name: "no bugs exist"}).
				UponReceiving("a request to create a bug").
				WithRequest(http.MethodPost, "/bugs", func(b *consumer.V4RequestBuilder) {
					b.JSONBody(bugBody(bug))
				}).
				WillRespondWith(http.StatusCreated, func(b *consumer.V4ResponseBuilder) {
					b.JSONBody(bugRecord(bug))
				})

			test := func(config consumer.MockServerConfig) error {
				c, err := createClient(config)
				if err != nil {
					return fmt.Errorf("creating client: %w", err)
				}

				response, err := c.CreateBug(ctx, bug)
				if err != nil {
					return fmt.Errorf("creating bug: %w", err)
				}

				bugsuite.VerifyStatus(Default, response, http.StatusCreated)
				bugsuite.VerifyBugEcho(Default, response, bug)

				return nil
			}

			Expect(pact.ExecuteTest(testingT, test)).To(Succeed())
		})
	})

	Describe("ListBugs", func() {
		It("returns bugs with their identifiers", func() {
			pact.AddInteraction().
				GivenWithParameter(models.ProviderState{Name: "two bugs exist"}).
				UponReceiving("a request to list bugs").
				WithRequest(http.MethodGet, "/bugs").
				WillRespondWith(http.StatusOK, func(b *consumer.V4ResponseBuilder) {
					b.JSONBody(matchers.EachLike(bugRecord(bugs.BugOne()), 2))
				})

			test := func(config consumer.MockServerConfig) error {
				c, err := createClient(config)
				if err != nil {
					return fmt.Errorf("creating client: %w", err)
				}

				ids, err := c.ListBugIDs(ctx)
				if err != nil {
					return fmt.Errorf("listing bugs: %w", err)
				}

				Expect(ids).To(HaveLen(2))

				return nil
			}

			Expect(pact.ExecuteTest(testingT, test)).To(Succeed())
		})
	})

	Describe("UpdateBug", func() {
		It("replaces the bug", func() {
			bug := bugs.BugOneReplacement()

			pact.AddInteraction().
				GivenWithParameter(models.ProviderState{
					Name: "bug exists",
					Parameters: map[string]interface{}{
						"bugId": bugID,
					},
				}).
				UponReceiving("a request to replace a bug").
				WithRequest(http.MethodPut, "/bugs/"+bugID, func(b *consumer.V4RequestBuilder) {
					b.JSONBody(bugBody(bug))
				}).
				WillRespondWith(http.StatusOK, func(b *consumer.V4ResponseBuilder) {
					b.JSONBody(bugRecord(bug))
				})

			test := func(config consumer.MockServerConfig) error {
				c, err := createClient(config)
				if err != nil {
					return fmt.Errorf("creating client: %w", err)
				}

				response, err := c.UpdateBug(ctx, bugID, bug)
				if err != nil {
					return fmt.Errorf("updating bug: %w", err)
				}

				bugsuite.VerifyStatus(Default, response, http.StatusOK)
				bugsuite.VerifyBugEcho(Default, response, bug)

				return nil
			}

			Expect(pact.ExecuteTest(testingT, test)).To(Succeed())
		})
	})

	Describe("PatchBug", func() {
		It("updates only the completed flag", func() {
			pact.AddInteraction().
				GivenWithParameter(models.ProviderState{
					Name: "bug exists",
					Parameters: map[string]interface{}{
						"bugId": bugID,
					},
				}).
				UponReceiving("a request to complete a bug").
				WithRequest(http.MethodPatch, "/bugs/"+bugID, func(b *consumer.V4RequestBuilder) {
					b.JSONBody(map[string]interface{}{
						"completed": true,
					})
				}).
				WillRespondWith(http.StatusOK, func(b *consumer.V4ResponseBuilder) {
					b.JSONBody(bugRecord(bugs.BugTwo().WithCompleted(true)))
				})

			test := func(config consumer.MockServerConfig) error {
				c, err := createClient(config)
				if err != nil {
					return fmt.Errorf("creating client: %w", err)
				}

				response, err := c.PatchBug(ctx, bugID, bugs.CompletedPatch())
				if err != nil {
					return fmt.Errorf("patching bug: %w", err)
				}

				bugsuite.VerifyStatus(Default, response, http.StatusOK)
				bugsuite.VerifyBugEcho(Default, response, bugs.CompletedPatch())

				return nil
			}

			Expect(pact.ExecuteTest(testingT, test)).To(Succeed())
		})
	})

	Describe("DeleteBug", func() {
		It("echoes the deleted identifier", func() {
			pact.AddInteraction().
				GivenWithParameter(models.ProviderState{
					Name: "bug exists",
					Parameters: map[string]interface{}{
						"bugId": bugID,
					},
				}).
				UponReceiving("a request to delete a bug").
				WithRequest(http.MethodDelete, "/bugs/"+bugID).
				WillRespondWith(http.StatusOK, func(b *consumer.V4ResponseBuilder) {
					b.JSONBody(map[string]interface{}{
						"bug_id": matchers.String(bugID),
					})
				})

			test := func(config consumer.MockServerConfig) error {
				c, err := createClient(config)
				if err != nil {
					return fmt.Errorf("creating client: %w", err)
				}

				response, err := c.DeleteBug(ctx, bugID)
				if err != nil {
					return fmt.Errorf("deleting bug: %w", err)
				}

				bugsuite.VerifyStatus(Default, response, http.StatusOK)
				bugsuite.VerifyDeletedID(Default, response, bugID)

				return nil
			}

			Expect(pact.ExecuteTest(testingT, test)).To(Succeed())
		})

		It("reports a missing bug", func() {
			pact.AddInteraction().
				GivenWithParameter(models.ProviderState{Name: "no bugs exist"}).
				UponReceiving("a request to delete a missing bug").
				WithRequest(http.MethodDelete, "/bugs/"+bugID).
				WillRespondWith(http.StatusNotFound, func(b *consumer.V4ResponseBuilder) {
					b.JSONBody(map[string]interface{}{
						"error": matchers.String("bug not found"),
					})
				})

			test := func(config consumer.MockServerConfig) error {
				c, err := createClient(config)
				if err != nil {
					return fmt.Errorf("creating client: %w", err)
				}

				response, err := c.DeleteBug(ctx, bugID)
				if err != nil {
					return fmt.Errorf("deleting bug: %w", err)
				}

				Expect(response.StatusCode).To(Equal(http.StatusNotFound))

				return nil
			}

			Expect(pact.ExecuteTest(testingT, test)).To(Succeed())
		})
	})
})
