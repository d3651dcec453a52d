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

package bugsuite

import (
	"github.com/onsi/gomega"
	"github.com/tidwall/gjson"

	"github.com/loonycorn/bugs-api-tests/pkg/bugs"
	"github.com/loonycorn/bugs-api-tests/pkg/client"
)

// VerifyStatus checks the response has the expected status code.
func VerifyStatus(g gomega.Gomega, response *client.Response, expected int) {
	g.Expect(response).NotTo(gomega.BeNil(), "no response received")
	g.Expect(response.StatusCode).To(gomega.Equal(expected), "unexpected status, body: %s (trace ID: %s)", response.Body, response.TraceID)
}

// field asserts a response field is present and returns it.
func field(g gomega.Gomega, response *client.Response, path string) gjson.Result {
	result := response.Get(path)

	g.Expect(result.Exists()).To(gomega.BeTrue(), "field %q missing from response: %s", path, response.Body)

	return result
}

// VerifyBugEcho checks every populated field of expected was echoed back.
// Titles are compared ignoring case, everything else exactly.
func VerifyBugEcho(g gomega.Gomega, response *client.Response, expected *bugs.Bug) {
	g.Expect(response).NotTo(gomega.BeNil(), "no response received")

	if expected.CreatedBy != nil {
		g.Expect(field(g, response, "createdBy").Value()).To(gomega.Equal(*expected.CreatedBy), "createdBy")
	}

	if expected.Priority != nil {
		g.Expect(field(g, response, "priority").Value()).To(gomega.BeNumerically("==", *expected.Priority), "priority")
	}

	if expected.Severity != nil {
		g.Expect(field(g, response, "severity").Value()).To(gomega.Equal(*expected.Severity), "severity")
	}

	if expected.Title != nil {
		title := field(g, response, "title")

		g.Expect(title.Type).To(gomega.Equal(gjson.String), "title is not a string")
		g.Expect(title.String()).To(EqualIgnoringCase(*expected.Title), "title")
	}

	if expected.Completed != nil {
		g.Expect(field(g, response, "completed").Value()).To(gomega.Equal(*expected.Completed), "completed")
	}
}

// VerifyCollectionSize checks the response is a JSON array of length n.
func VerifyCollectionSize(g gomega.Gomega, response *client.Response, n int) {
	g.Expect(response).NotTo(gomega.BeNil(), "no response received")
	g.Expect(response.Size()).To(gomega.Equal(n), "collection size, body: %s", response.Body)
}

// VerifyDeletedID checks a delete response echoes the deleted identifier.
func VerifyDeletedID(g gomega.Gomega, response *client.Response, bugID string) {
	g.Expect(response).NotTo(gomega.BeNil(), "no response received")
	g.Expect(field(g, response, "bug_id").Value()).To(gomega.Equal(bugID), "bug_id")
}
