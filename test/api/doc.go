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

// Package api provides the scaffolding for the bugs API end to end suites.
//
// The suites exercise the service with the same client the bugs-e2e command
// uses, so a failure in CI can be reproduced from the command line.  When
// API_BASE_URL is not set the suites start an in-process stand-in service,
// which lets the scenarios run anywhere `go test` does.
//
// Every request and response is attached to the Ginkgo report as
// "<scenario> Request Details" and "<scenario> Response Details" entries, and
// written to RESULTS_DIR when that is set.
//
// Every container touching the service is Serial.  The lifecycle expects to
// see exactly the bugs it created, so nothing else may write to the service
// while it runs, even under `ginkgo -p`.
package api
