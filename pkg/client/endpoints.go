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

package client

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/oapi-codegen/runtime"
)

// DefaultBasePath is where the bugs collection lives under the base URI.
const DefaultBasePath = "/bugs"

// Endpoints contains all API endpoint patterns.
type Endpoints struct {
	basePath string
}

// NewEndpoints creates a new Endpoints instance rooted at basePath.
func NewEndpoints(basePath string) *Endpoints {
	if basePath == "" {
		basePath = DefaultBasePath
	}

	return &Endpoints{
		basePath: "/" + strings.Trim(basePath, "/"),
	}
}

// BasePath is the normalized collection path.
func (e *Endpoints) BasePath() string {
	return e.basePath
}

// Bugs is the collection, used to create and list.
func (e *Endpoints) Bugs() string {
	return e.basePath
}

// Bug is a single bug, used to update, patch and delete.
func (e *Endpoints) Bug(bugID string) (string, error) {
	param, err := runtime.StyleParamWithLocation("simple", false, "bug_id", runtime.ParamLocationPath, bugID)
	if err != nil {
		return "", fmt.Errorf("encoding bug ID %q: %w", bugID, err)
	}

	return e.basePath + "/" + param, nil
}

// ContractPath maps a request path onto the contract's own base path so it
// can be validated when the service is mounted somewhere else.
func (e *Endpoints) ContractPath(path string) string {
	rest, ok := strings.CutPrefix(path, e.basePath)
	if !ok {
		return path
	}

	return DefaultBasePath + rest
}

// URL joins a path onto the base URI.
func URL(baseURL, path string) (string, error) {
	base, err := url.Parse(strings.TrimSuffix(baseURL, "/"))
	if err != nil {
		return "", fmt.Errorf("parsing base URL: %w", err)
	}

	if base.Scheme == "" || base.Host == "" {
		return "", fmt.Errorf("%w: base URL %q must be absolute", ErrConfiguration, baseURL)
	}

	return base.String() + path, nil
}
