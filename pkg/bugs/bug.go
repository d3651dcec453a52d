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

// Package bugs models the bug resource served by the bugs API.
package bugs

import (
	"k8s.io/utils/ptr"
)

const (
	SeverityLow      = "Low"
	SeverityMedium   = "Medium"
	SeverityHigh     = "High"
	SeverityCritical = "Critical"
)

// Bug is the request and response body of the bugs API.  Every field is
// optional: a nil field is left out of the encoded body, which the service
// reads as "leave unchanged", so it must never be replaced by a zero value.
type Bug struct {
	CreatedBy *string `json:"createdBy,omitempty"`
	Priority  *int    `json:"priority,omitempty"`
	Severity  *string `json:"severity,omitempty"`
	Title     *string `json:"title,omitempty"`
	Completed *bool   `json:"completed,omitempty"`
}

// New returns a fully populated bug.
func New(createdBy string, priority int, severity, title string, completed bool) *Bug {
	return &Bug{
		CreatedBy: ptr.To(createdBy),
		Priority:  ptr.To(priority),
		Severity:  ptr.To(severity),
		Title:     ptr.To(title),
		Completed: ptr.To(completed),
	}
}

// NewPatch returns a bug with no fields set, use the With* setters to
// populate only what should change.
func NewPatch() *Bug {
	return &Bug{}
}

// The setters below work on a copy so a bug handed to a request is never
// modified afterwards.

func (b Bug) WithCreatedBy(createdBy string) *Bug {
	b.CreatedBy = ptr.To(createdBy)
	return &b
}

func (b Bug) WithPriority(priority int) *Bug {
	b.Priority = ptr.To(priority)
	return &b
}

func (b Bug) WithSeverity(severity string) *Bug {
	b.Severity = ptr.To(severity)
	return &b
}

func (b Bug) WithTitle(title string) *Bug {
	b.Title = ptr.To(title)
	return &b
}

func (b Bug) WithCompleted(completed bool) *Bug {
	b.Completed = ptr.To(completed)
	return &b
}

// IsPartial is true when at least one field is unset.
func (b *Bug) IsPartial() bool {
	return b.CreatedBy == nil || b.Priority == nil || b.Severity == nil || b.Title == nil || b.Completed == nil
}

// Record is a bug as stored by the service, along with its identifier.
type Record struct {
	BugID string `json:"bugId"`

	Bug
}

// DeleteResult is returned when a bug is deleted.
type DeleteResult struct {
	BugID string `json:"bug_id"`
}
