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

// Package server is a local stand-in for the bugs service.  It keeps bugs in
// memory, lists them in creation order, and rejects requests that break the
// API contract.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/pflag"

	"github.com/loonycorn/bugs-api-tests/pkg/bugs"
	"github.com/loonycorn/bugs-api-tests/pkg/openapi"
	"github.com/loonycorn/bugs-api-tests/pkg/server/handler"
	"github.com/loonycorn/bugs-api-tests/pkg/server/store"

	"sigs.k8s.io/controller-runtime/pkg/log"
)

type Options struct {
	// ListenAddress tells the server what to listen on.
	ListenAddress string

	// ReadTimeout and WriteTimeout bound each request.
	ReadTimeout  time.Duration
	WriteTimeout time.Duration

	// ValidateRequests rejects requests that don't match the contract.
	ValidateRequests bool
}

func (o *Options) AddFlags(f *pflag.FlagSet) {
	f.StringVar(&o.ListenAddress, "server-bind-address", ":8080", "API server bind address.")
	f.DurationVar(&o.ReadTimeout, "server-read-timeout", time.Second, "How long to wait for the client to send the request body.")
	f.DurationVar(&o.WriteTimeout, "server-write-timeout", 10*time.Second, "How long to wait for the API to respond to the client.")
	f.BoolVar(&o.ValidateRequests, "server-validate-requests", true, "Reject requests that violate the API schema.")
}

type Server struct {
	// Options control the server.
	Options Options

	// Bugs is the backing store, exposed so tests can inspect or reset it.
	Bugs *store.Store[bugs.Record]
}

func New(options Options) *Server {
	return &Server{
		Options: options,
		Bugs:    store.New[bugs.Record](),
	}
}

// requestLogger adds a request scoped logger to the context and logs the
// outcome of each request.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.FromContext(r.Context()).WithValues("requestID", middleware.GetReqID(r.Context()), "method", r.Method, "path", r.URL.Path)

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		start := time.Now()

		next.ServeHTTP(ww, r.WithContext(log.IntoContext(r.Context(), logger)))

		logger.V(1).Info("request served", "status", ww.Status(), "duration", time.Since(start))
	})
}

// Handler returns the fully wired API.
func (s *Server) Handler() (http.Handler, error) {
	h, err := handler.New(s.Bugs)
	if err != nil {
		return nil, err
	}

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Recoverer)
	router.Use(requestLogger)

	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		handler.HandleError(w, r, fmt.Errorf("%w: no route for %s", handler.ErrNotFound, r.URL.Path))
	})

	var middlewares []openapi.MiddlewareFunc

	if s.Options.ValidateRequests {
		validator, err := openapi.NewValidator()
		if err != nil {
			return nil, err
		}

		middlewares = append(middlewares, validator.Middleware(func(w http.ResponseWriter, r *http.Request, err error) {
			handler.HandleError(w, r, fmt.Errorf("%w: %w", handler.ErrBadRequest, err))
		}))
	}

	return openapi.HandlerWithOptions(h, openapi.ChiServerOptions{
		BaseRouter:       router,
		Middlewares:      middlewares,
		ErrorHandlerFunc: handler.HandleError,
	}), nil
}

// Run serves the API until the context is cancelled.
func (s *Server) Run(ctx context.Context) error {
	log := log.FromContext(ctx)

	h, err := s.Handler()
	if err != nil {
		return err
	}

	server := &http.Server{
		Addr:         s.Options.ListenAddress,
		ReadTimeout:  s.Options.ReadTimeout,
		WriteTimeout: s.Options.WriteTimeout,
		Handler:      h,
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	go func() {
		<-ctx.Done()

		// Shutdown with a fresh context, the parent is already done.
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Error(err, "server shutdown failed")
		}
	}()

	log.Info("listening", "address", s.Options.ListenAddress)

	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
