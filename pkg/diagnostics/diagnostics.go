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

// Package diagnostics captures request and response details of each HTTP
// exchange and hands them to one or more sinks, keyed by the name of the
// scenario that made the request.
package diagnostics

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-logr/logr"
)

// Exchange is a single request/response pair.
type Exchange struct {
	Method        string
	URI           string
	RequestHeader http.Header
	RequestBody   []byte
	StatusCode    int
	ResponseBody  []byte
	Duration      time.Duration
	TraceParent   string
	// Err is set when no response was received.
	Err error
}

// Attachment is a named piece of report text.
type Attachment struct {
	Name    string
	Content string
}

// RequestAttachments returns the request half of the exchange.
func (e *Exchange) RequestAttachments() []Attachment {
	attachments := []Attachment{
		{Name: "Endpoint", Content: e.Method + " " + e.URI},
	}

	if len(e.RequestBody) > 0 {
		attachments = append(attachments, Attachment{Name: "Request Body", Content: string(e.RequestBody)})
	}

	return attachments
}

// ResponseAttachments returns the response half of the exchange.  A transport
// failure is reported in place of the status.
func (e *Exchange) ResponseAttachments() []Attachment {
	if e.Err != nil {
		return []Attachment{
			{Name: "Error", Content: e.Err.Error()},
		}
	}

	attachments := []Attachment{
		{Name: "Status", Content: strconv.Itoa(e.StatusCode)},
	}

	if len(e.ResponseBody) > 0 {
		attachments = append(attachments, Attachment{Name: "Response Body", Content: PrettyJSON(e.ResponseBody)})
	}

	return attachments
}

// PrettyJSON indents a JSON document, anything that doesn't parse is returned
// verbatim.
func PrettyJSON(data []byte) string {
	var out bytes.Buffer

	if err := json.Indent(&out, data, "", "  "); err != nil {
		return string(data)
	}

	return out.String()
}

// SinkFunc adapts a function to a Sink.
type SinkFunc func(scenario string, exchange *Exchange)

func (f SinkFunc) Record(scenario string, exchange *Exchange) {
	f(scenario, exchange)
}

// Sinks fans an exchange out to every member.
type Sinks []Sink

func (s Sinks) Record(scenario string, exchange *Exchange) {
	for _, sink := range s {
		sink.Record(scenario, exchange)
	}
}

// NewLogSink logs each exchange, bodies are only emitted at V(1).
func NewLogSink(logger logr.Logger) Sink {
	return SinkFunc(func(scenario string, exchange *Exchange) {
		if exchange.Err != nil {
			logger.Error(exchange.Err, "request failed", "scenario", scenario, "method", exchange.Method, "uri", exchange.URI, "traceparent", exchange.TraceParent)
			return
		}

		logger.Info("request complete", "scenario", scenario, "method", exchange.Method, "uri", exchange.URI, "status", exchange.StatusCode, "duration", exchange.Duration)
		logger.V(1).Info("request details", "scenario", scenario, "requestBody", string(exchange.RequestBody), "responseBody", string(exchange.ResponseBody))
	})
}

type contextKey struct{}

type recorder struct {
	scenario string
	sink     Sink
}

// IntoContext binds a scenario name and sink to the context, requests made
// with the returned context are reported to sink under that name.
func IntoContext(ctx context.Context, scenario string, sink Sink) context.Context {
	return context.WithValue(ctx, contextKey{}, &recorder{scenario: scenario, sink: sink})
}

// ScenarioFromContext returns the bound scenario name, if any.
func ScenarioFromContext(ctx context.Context) string {
	if r, ok := ctx.Value(contextKey{}).(*recorder); ok {
		return r.scenario
	}

	return ""
}

// Record reports the exchange to the sink bound to the context.  It does
// nothing when the context carries no sink.
func Record(ctx context.Context, exchange *Exchange) {
	r, ok := ctx.Value(contextKey{}).(*recorder)
	if !ok || r.sink == nil {
		return
	}

	r.sink.Record(r.scenario, exchange)
}
