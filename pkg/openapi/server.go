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

package openapi

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"
)

// BugIDParameter is the bug_id path parameter.
type BugIDParameter = string

// ServerInterface is implemented by anything that serves the bugs API.
type ServerInterface interface {
	// (GET /bugs)
	GetBugs(w http.ResponseWriter, r *http.Request)
	// (POST /bugs)
	PostBugs(w http.ResponseWriter, r *http.Request)
	// (PUT /bugs/{bug_id})
	PutBug(w http.ResponseWriter, r *http.Request, bugID BugIDParameter)
	// (PATCH /bugs/{bug_id})
	PatchBug(w http.ResponseWriter, r *http.Request, bugID BugIDParameter)
	// (DELETE /bugs/{bug_id})
	DeleteBug(w http.ResponseWriter, r *http.Request, bugID BugIDParameter)
}

// MiddlewareFunc wraps every API route.
type MiddlewareFunc func(http.Handler) http.Handler

// ErrorHandlerFunc reports parameter binding errors.
type ErrorHandlerFunc func(w http.ResponseWriter, r *http.Request, err error)

// ChiServerOptions configures how the API is mounted.
type ChiServerOptions struct {
	BaseURL          string
	BaseRouter       chi.Router
	Middlewares      []MiddlewareFunc
	ErrorHandlerFunc ErrorHandlerFunc
}

// InvalidParamFormatError is raised when a path parameter can't be bound.
type InvalidParamFormatError struct {
	ParamName string
	Err       error
}

func (e *InvalidParamFormatError) Error() string {
	return fmt.Sprintf("invalid format for parameter %s: %s", e.ParamName, e.Err.Error())
}

func (e *InvalidParamFormatError) Unwrap() error {
	return e.Err
}

func defaultErrorHandler(w http.ResponseWriter, _ *http.Request, err error) {
	http.Error(w, err.Error(), http.StatusBadRequest)
}

// HandlerWithOptions mounts si on a chi router.
func HandlerWithOptions(si ServerInterface, options ChiServerOptions) http.Handler {
	r := options.BaseRouter
	if r == nil {
		r = chi.NewRouter()
	}

	errorHandler := options.ErrorHandlerFunc
	if errorHandler == nil {
		errorHandler = defaultErrorHandler
	}

	withBugID := func(handler func(w http.ResponseWriter, r *http.Request, bugID BugIDParameter)) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			var bugID BugIDParameter

			if err := runtime.BindStyledParameterWithOptions("simple", "bug_id", chi.URLParam(r, "bug_id"), &bugID, runtime.BindStyledParameterOptions{
				ParamLocation: runtime.ParamLocationPath,
				Explode:       false,
				Required:      true,
			}); err != nil {
				errorHandler(w, r, &InvalidParamFormatError{ParamName: "bug_id", Err: err})
				return
			}

			handler(w, r, bugID)
		}
	}

	r.Group(func(r chi.Router) {
		for _, middleware := range options.Middlewares {
			r.Use(middleware)
		}

		r.Get(options.BaseURL+"/bugs", si.GetBugs)
		r.Post(options.BaseURL+"/bugs", si.PostBugs)
		r.Put(options.BaseURL+"/bugs/{bug_id}", withBugID(si.PutBug))
		r.Patch(options.BaseURL+"/bugs/{bug_id}", withBugID(si.PatchBug))
		r.Delete(options.BaseURL+"/bugs/{bug_id}", withBugID(si.DeleteBug))
	})

	return r
}

// Middleware validates every request against the contract before it reaches
// the handler.  Requests the contract doesn't describe are passed through so
// the router can answer with 404 or 405.
func (v *Validator) Middleware(errorHandler ErrorHandlerFunc) MiddlewareFunc {
	if errorHandler == nil {
		errorHandler = defaultErrorHandler
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, err := v.ValidateRequest(r); err != nil {
				if errors.Is(err, ErrRouteNotFound) || errors.Is(err, ErrMethodNotAllowed) {
					next.ServeHTTP(w, r)
					return
				}

				errorHandler(w, r, err)

				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
