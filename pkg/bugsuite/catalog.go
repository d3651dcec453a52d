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

// Package bugsuite is the bugs API lifecycle: two bugs are created, listed,
// updated in full and in part, then everything is deleted.  Each step is a
// scenario that depends on the steps before it.
package bugsuite

import (
	"context"
	"net/http"

	"github.com/onsi/gomega"

	"github.com/loonycorn/bugs-api-tests/pkg/bugs"
	"github.com/loonycorn/bugs-api-tests/pkg/client"
	"github.com/loonycorn/bugs-api-tests/pkg/scenario"
)

const (
	CreateBugOne        = "CreateBugOne"
	CreateBugTwo        = "CreateBugTwo"
	RetrieveBugs        = "RetrieveBugs"
	UpdateBugOneFull    = "UpdateBugOneFull"
	UpdateBugTwoPartial = "UpdateBugTwoPartial"
	DeleteAllBugs       = "DeleteAllBugs"
)

const (
	FeatureCreation  = "Bug Creation"
	FeatureRetrieval = "Bug retrieval"
	FeatureUpdate    = "Bug update"
	FeatureDeletion  = "Bug deletion"
)

// Scenarios returns the lifecycle scenarios in declaration order.
//
// The update scenarios pick their bug by list position, so they rely on the
// service listing bugs in creation order.  See client.BugIDAt.
func Scenarios(c *client.APIClient) []scenario.Scenario {
	return []scenario.Scenario{
		{
			Name:        CreateBugOne,
			Description: "Create the first bug",
			Feature:     FeatureCreation,
			Severity:    scenario.SeverityBlocker,
			Run:         create(c, bugs.BugOne()),
		},
		{
			Name:        CreateBugTwo,
			Description: "Create the second bug",
			Feature:     FeatureCreation,
			Severity:    scenario.SeverityBlocker,
			Run:         create(c, bugs.BugTwo()),
		},
		{
			Name:          RetrieveBugs,
			Description:   "List bugs and expect exactly two",
			Feature:       FeatureRetrieval,
			Severity:      scenario.SeverityTrivial,
			Prerequisites: []string{CreateBugOne, CreateBugTwo},
			Run:           retrieve(c),
		},
		{
			Name:          UpdateBugOneFull,
			Description:   "Replace the first listed bug with PUT",
			Feature:       FeatureUpdate,
			Severity:      scenario.SeverityNormal,
			Prerequisites: []string{RetrieveBugs},
			Run:           update(c, 0, bugs.BugOneReplacement()),
		},
		{
			Name:          UpdateBugTwoPartial,
			Description:   "Mark the second listed bug completed with PATCH",
			Feature:       FeatureUpdate,
			Severity:      scenario.SeverityCritical,
			Prerequisites: []string{RetrieveBugs},
			Run:           patch(c, 1, bugs.CompletedPatch()),
		},
		{
			Name:          DeleteAllBugs,
			Description:   "Delete every bug and expect an empty list",
			Feature:       FeatureDeletion,
			Severity:      scenario.SeverityMinor,
			Prerequisites: []string{UpdateBugOneFull, UpdateBugTwoPartial},
			Run:           deleteAll(c),
		},
	}
}

// NewPlan builds the lifecycle plan against a client.
func NewPlan(c *client.APIClient) (*scenario.Plan, error) {
	return scenario.NewPlan(Scenarios(c)...)
}

func create(c *client.APIClient, bug *bugs.Bug) scenario.Func {
	return func(ctx context.Context, g gomega.Gomega) error {
		response, err := c.CreateBug(ctx, bug)
		if err != nil {
			return err
		}

		VerifyStatus(g, response, http.StatusCreated)
		VerifyBugEcho(g, response, bug)

		return nil
	}
}

func retrieve(c *client.APIClient) scenario.Func {
	return func(ctx context.Context, g gomega.Gomega) error {
		response, err := c.ListBugs(ctx)
		if err != nil {
			return err
		}

		VerifyStatus(g, response, http.StatusOK)
		VerifyCollectionSize(g, response, 2)

		return nil
	}
}

func update(c *client.APIClient, index int, bug *bugs.Bug) scenario.Func {
	return func(ctx context.Context, g gomega.Gomega) error {
		bugID, err := c.BugIDAt(ctx, index)
		if err != nil {
			return err
		}

		response, err := c.UpdateBug(ctx, bugID, bug)
		if err != nil {
			return err
		}

		VerifyStatus(g, response, http.StatusOK)
		VerifyBugEcho(g, response, bug)

		return nil
	}
}

func patch(c *client.APIClient, index int, bug *bugs.Bug) scenario.Func {
	return func(ctx context.Context, g gomega.Gomega) error {
		bugID, err := c.BugIDAt(ctx, index)
		if err != nil {
			return err
		}

		response, err := c.PatchBug(ctx, bugID, bug)
		if err != nil {
			return err
		}

		VerifyStatus(g, response, http.StatusOK)
		VerifyBugEcho(g, response, bug)

		return nil
	}
}

func deleteAll(c *client.APIClient) scenario.Func {
	return func(ctx context.Context, g gomega.Gomega) error {
		bugIDs, err := c.ListBugIDs(ctx)
		if err != nil {
			return err
		}

		for _, bugID := range bugIDs {
			response, err := c.DeleteBug(ctx, bugID)
			if err != nil {
				return err
			}

			VerifyStatus(g, response, http.StatusOK)
			VerifyDeletedID(g, response, bugID)
		}

		response, err := c.ListBugs(ctx)
		if err != nil {
			return err
		}

		VerifyStatus(g, response, http.StatusOK)
		VerifyCollectionSize(g, response, 0)

		return nil
	}
}
