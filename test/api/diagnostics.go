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
	"fmt"
	"strings"

	. "github.com/onsi/ginkgo/v2"

	"github.com/loonycorn/bugs-api-tests/pkg/diagnostics"
)

func formatAttachments(attachments []diagnostics.Attachment) string {
	var b strings.Builder

	for _, a := range attachments {
		fmt.Fprintf(&b, "%s:\n%s\n", a.Name, a.Content)
	}

	return b.String()
}

// ReportSink attaches every exchange to the running spec's report.  Entries
// are shown when a spec fails, or always when verbose logging is enabled.
func ReportSink(config *TestConfig) diagnostics.Sink {
	visibility := ReportEntryVisibilityFailureOrVerbose
	if config.DebugLogging {
		visibility = ReportEntryVisibilityAlways
	}

	return diagnostics.SinkFunc(func(scenario string, exchange *diagnostics.Exchange) {
		AddReportEntry(scenario+" Request Details", formatAttachments(exchange.RequestAttachments()), visibility)
		AddReportEntry(scenario+" Response Details", formatAttachments(exchange.ResponseAttachments()), visibility)
	})
}
