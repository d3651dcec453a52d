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
	"strings"

	"github.com/onsi/gomega/gcustom"
)

// EqualIgnoringCase succeeds when the actual string equals expected under
// Unicode case folding.
func EqualIgnoringCase(expected string) gcustom.CustomGomegaMatcher {
	return gcustom.MakeMatcher(func(actual string) (bool, error) {
		return strings.EqualFold(actual, expected), nil
	}).WithTemplate("Expected:\n{{.FormattedActual}}\n{{.To}} equal, ignoring case\n{{format .Data 1}}", expected)
}
