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

// Package openapi holds the contract of the bugs API and validates requests
// and responses against it.
package openapi

import (
	"bytes"
	"context"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/getkin/kin-openapi/routers"
	"github.com/getkin/kin-openapi/routers/gorillamux"
)

//go:embed bugs.yaml
var spec []byte

var (
	// ErrRouteNotFound is raised when a request matches nothing in the contract.
	ErrRouteNotFound = errors.New("route not found")

	// ErrMethodNotAllowed is raised when the path exists but the method does not.
	ErrMethodNotAllowed = errors.New("method not allowed")
)

//nolint:gochecknoglobals
var (
	schemaOnce sync.Once
	schema     *openapi3.T
	schemaErr  error
)

// Schema returns the parsed and validated contract.  It is loaded once and
// must be treated as read only.
func Schema() (*openapi3.T, error) {
	schemaOnce.Do(func() {
		loader := openapi3.NewLoader()

		doc, err := loader.LoadFromData(spec)
		if err != nil {
			schemaErr = fmt.Errorf("loading bugs schema: %w", err)
			return
		}

		if err := doc.Validate(context.Background()); err != nil {
			schemaErr = fmt.Errorf("validating bugs schema: %w", err)
			return
		}

		schema = doc
	})

	return schema, schemaErr
}

// Validator checks HTTP traffic against the contract.
type Validator struct {
	router routers.Router
}

func NewValidator() (*Validator, error) {
	doc, err := Schema()
	if err != nil {
		return nil, err
	}

	router, err := gorillamux.NewRouter(doc)
	if err != nil {
		return nil, fmt.Errorf("building schema router: %w", err)
	}

	return &Validator{
		router: router,
	}, nil
}

func (v *Validator) findRoute(r *http.Request) (*routers.Route, map[string]string, error) {
	route, params, err := v.router.FindRoute(r)
	if err != nil {
		switch {
		case errors.Is(err, routers.ErrPathNotFound):
			return nil, nil, fmt.Errorf("%w: %s %s", ErrRouteNotFound, r.Method, r.URL.Path)
		case errors.Is(err, routers.ErrMethodNotAllowed):
			return nil, nil, fmt.Errorf("%w: %s %s", ErrMethodNotAllowed, r.Method, r.URL.Path)
		}

		return nil, nil, err
	}

	return route, params, nil
}

// ValidateRequest checks the request parameters and body.  The request body
// is restored afterwards so it can still be consumed.  The returned input is
// what ValidateResponse needs to check the matching response.
func (v *Validator) ValidateRequest(r *http.Request) (*openapi3filter.RequestValidationInput, error) {
	route, params, err := v.findRoute(r)
	if err != nil {
		return nil, err
	}

	input := &openapi3filter.RequestValidationInput{
		Request:    r,
		PathParams: params,
		Route:      route,
		Options: &openapi3filter.Options{
			MultiError: true,
		},
	}

	if err := openapi3filter.ValidateRequest(r.Context(), input); err != nil {
		return nil, fmt.Errorf("request violates contract: %w", err)
	}

	return input, nil
}

// ValidateResponse checks a response against the operation that request
// matched.  Status codes the contract doesn't list are not checked.
func (v *Validator) ValidateResponse(r *http.Request, status int, header http.Header, body []byte) error {
	route, params, err := v.findRoute(r)
	if err != nil {
		return err
	}

	input := &openapi3filter.ResponseValidationInput{
		RequestValidationInput: &openapi3filter.RequestValidationInput{
			Request:    r,
			PathParams: params,
			Route:      route,
		},
		Status: status,
		Header: header,
		Body:   io.NopCloser(bytes.NewReader(body)),
		Options: &openapi3filter.Options{
			MultiError: true,
		},
	}

	if err := openapi3filter.ValidateResponse(r.Context(), input); err != nil {
		return fmt.Errorf("response violates contract: %w", err)
	}

	return nil
}
