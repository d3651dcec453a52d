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

//nolint:revive
package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/loonycorn/bugs-api-tests/pkg/bugs"
	"github.com/loonycorn/bugs-api-tests/pkg/openapi"
	"github.com/loonycorn/bugs-api-tests/pkg/server/store"

	"sigs.k8s.io/controller-runtime/pkg/log"
)

var (
	// ErrBadRequest is raised when a request body can't be understood.
	ErrBadRequest = errors.New("bad request")

	// ErrNotFound is raised when a bug doesn't exist.
	ErrNotFound = errors.New("bug not found")
)

// errorResponse is the body of every non-2xx response.
type errorResponse struct {
	Error string `json:"error"`
}

type Handler struct {
	// bugs holds every bug in creation order.
	bugs *store.Store[bugs.Record]
}

func New(bugStore *store.Store[bugs.Record]) (*Handler, error) {
	h := &Handler{
		bugs: bugStore,
	}

	return h, nil
}

// Ensure the handler serves the whole API.
var _ openapi.ServerInterface = &Handler{}

func (h *Handler) setUncacheable(w http.ResponseWriter) {
	w.Header().Add("Cache-Control", "no-cache")
}

// WriteJSONResponse encodes result with the given status.
func WriteJSONResponse(w http.ResponseWriter, r *http.Request, status int, result any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(result); err != nil {
		log.FromContext(r.Context()).Error(err, "failed to write response")
	}
}

// HandleError maps an error onto a status code and error body.
func HandleError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError

	var paramErr *openapi.InvalidParamFormatError

	switch {
	case errors.Is(err, ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, ErrBadRequest), errors.As(err, &paramErr):
		status = http.StatusBadRequest
	default:
		log.FromContext(r.Context()).Error(err, "unhandled error")
	}

	WriteJSONResponse(w, r, status, &errorResponse{Error: err.Error()})
}

func readBug(r *http.Request) (*bugs.Bug, error) {
	var bug bugs.Bug

	if err := json.NewDecoder(r.Body).Decode(&bug); err != nil {
		return nil, fmt.Errorf("%w: unable to decode bug: %w", ErrBadRequest, err)
	}

	return &bug, nil
}

func notFound(bugID openapi.BugIDParameter) error {
	return fmt.Errorf("%w: %s", ErrNotFound, bugID)
}

func (h *Handler) GetBugs(w http.ResponseWriter, r *http.Request) {
	h.setUncacheable(w)
	WriteJSONResponse(w, r, http.StatusOK, h.bugs.List())
}

func (h *Handler) PostBugs(w http.ResponseWriter, r *http.Request) {
	bug, err := readBug(r)
	if err != nil {
		HandleError(w, r, err)
		return
	}

	result := h.bugs.Create(func(id string) bugs.Record {
		return bugs.Record{
			BugID: id,
			Bug:   *bug,
		}
	})

	log.FromContext(r.Context()).Info("bug created", "bugID", result.BugID)

	h.setUncacheable(w)
	WriteJSONResponse(w, r, http.StatusCreated, result)
}

func (h *Handler) PutBug(w http.ResponseWriter, r *http.Request, bugID openapi.BugIDParameter) {
	bug, err := readBug(r)
	if err != nil {
		HandleError(w, r, err)
		return
	}

	result, ok := h.bugs.Update(bugID, func(in bugs.Record) bugs.Record {
		in.Bug = *bug
		return in
	})
	if !ok {
		HandleError(w, r, notFound(bugID))
		return
	}

	h.setUncacheable(w)
	WriteJSONResponse(w, r, http.StatusOK, result)
}

// PatchBug merges only the fields present in the request.
func (h *Handler) PatchBug(w http.ResponseWriter, r *http.Request, bugID openapi.BugIDParameter) {
	patch, err := readBug(r)
	if err != nil {
		HandleError(w, r, err)
		return
	}

	result, ok := h.bugs.Update(bugID, func(in bugs.Record) bugs.Record {
		if patch.CreatedBy != nil {
			in.CreatedBy = patch.CreatedBy
		}

		if patch.Priority != nil {
			in.Priority = patch.Priority
		}

		if patch.Severity != nil {
			in.Severity = patch.Severity
		}

		if patch.Title != nil {
			in.Title = patch.Title
		}

		if patch.Completed != nil {
			in.Completed = patch.Completed
		}

		return in
	})
	if !ok {
		HandleError(w, r, notFound(bugID))
		return
	}

	h.setUncacheable(w)
	WriteJSONResponse(w, r, http.StatusOK, result)
}

func (h *Handler) DeleteBug(w http.ResponseWriter, r *http.Request, bugID openapi.BugIDParameter) {
	if !h.bugs.Delete(bugID) {
		HandleError(w, r, notFound(bugID))
		return
	}

	log.FromContext(r.Context()).Info("bug deleted", "bugID", bugID)

	h.setUncacheable(w)
	WriteJSONResponse(w, r, http.StatusOK, &bugs.DeleteResult{BugID: bugID})
}
