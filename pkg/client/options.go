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
	"time"

	"github.com/spf13/pflag"
)

const (
	// BrowserWarningHeader stops the tunnelling proxy in front of the test
	// service from answering with an HTML interstitial page.
	BrowserWarningHeader = "ngrok-skip-browser-warning"

	DefaultRequestTimeout = 30 * time.Second
)

// Options is the process wide request configuration.  It's built once before
// any scenario runs and copied into the client, so nothing can modify it
// mid-run.
type Options struct {
	// BaseURL is the scheme and host of the service, and any path prefix.
	BaseURL string
	// BasePath is where the bugs collection lives under BaseURL.
	BasePath string
	// RequestTimeout bounds every request.
	RequestTimeout time.Duration
	// SkipBrowserWarning sends the proxy bypass header on every request.
	SkipBrowserWarning bool
	// Headers are added to every request.
	Headers map[string]string
	// ValidateContract checks every response against the embedded schema.
	ValidateContract bool
	// LogRequests logs a line per request.
	LogRequests bool
	// LogResponses logs response bodies.
	LogResponses bool
}

// DefaultOptions returns the options used when nothing is configured.
func DefaultOptions() Options {
	return Options{
		BasePath:           DefaultBasePath,
		RequestTimeout:     DefaultRequestTimeout,
		SkipBrowserWarning: true,
	}
}

func (o *Options) AddFlags(f *pflag.FlagSet) {
	f.StringVar(&o.BaseURL, "base-url", "", "Base URL of the bugs service e.g. https://example.ngrok-free.app")
	f.StringVar(&o.BasePath, "base-path", DefaultBasePath, "Path of the bugs collection under the base URL")
	f.DurationVar(&o.RequestTimeout, "request-timeout", DefaultRequestTimeout, "Timeout applied to every request")
	f.BoolVar(&o.SkipBrowserWarning, "skip-browser-warning", true, "Send the "+BrowserWarningHeader+" header")
	f.StringToStringVar(&o.Headers, "header", nil, "Additional request header, may be repeated e.g. --header X-Team=qa")
	f.BoolVar(&o.ValidateContract, "validate-contract", false, "Validate responses against the bugs API schema")
	f.BoolVar(&o.LogRequests, "log-requests", false, "Log every request")
	f.BoolVar(&o.LogResponses, "log-responses", false, "Log every response body")
}
