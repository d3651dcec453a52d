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

package bugs

// BugOne is the first bug created by the CRUD sequence.
func BugOne() *Bug {
	return New("Joseph Wang", 3, SeverityHigh, "Cannot filter by category", false)
}

// BugTwo is the second bug created by the CRUD sequence.
func BugTwo() *Bug {
	return New("Norah Jones", 0, SeverityCritical, "Home page does not load", false)
}

// BugOneReplacement fully replaces BugOne.
func BugOneReplacement() *Bug {
	return New("Joseph Wang", 1, SeverityCritical, "Homepage hangs", false)
}

// CompletedPatch marks a bug as completed and touches nothing else.
func CompletedPatch() *Bug {
	return NewPatch().WithCompleted(true)
}
