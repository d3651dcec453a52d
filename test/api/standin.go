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
	"net/http/httptest"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/loonycorn/bugs-api-tests/pkg/server"
)

// StartStandIn serves the local bugs service for the rest of the suite and
// returns its base URL.  Call from BeforeSuite or BeforeAll.
func StartStandIn() string {
	s := server.New(server.Options{
		ValidateRequests: true,
	})

	handler, err := s.Handler()
	Expect(err).NotTo(HaveOccurred())

	ts := httptest.NewServer(handler)
	DeferCleanup(ts.Close)

	GinkgoWriter.Printf("started stand-in bugs service at %s\n", ts.URL)

	return ts.URL
}
