/*
Copyright 2026 Nscale.

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

package server

import (
	"context"
	goerrors "errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-logr/logr"
	"github.com/spf13/pflag"

	"github.com/unikorn-cloud/accounts/pkg/openapi"
	"github.com/unikorn-cloud/accounts/pkg/server/handler"
	"github.com/unikorn-cloud/accounts/pkg/users"
	"github.com/unikorn-cloud/core/pkg/server/errors"

	"sigs.k8s.io/controller-runtime/pkg/log"
)

// Options control the HTTP server.
type Options struct {
	// ListenAddress is where the server listens.
	ListenAddress string

	// ReadTimeout bounds reading a whole request.
	ReadTimeout time.Duration

	// WriteTimeout bounds writing a whole response.
	WriteTimeout time.Duration

	// ShutdownTimeout bounds draining connections on exit.
	ShutdownTimeout time.Duration
}

// AddFlags registers the server flags.
func (o *Options) AddFlags(f *pflag.FlagSet) {
	f.StringVar(&o.ListenAddress, "listen-address", ":8080", "API listener address.")
	f.DurationVar(&o.ReadTimeout, "read-timeout", time.Second, "How long to wait for the client to send the request body.")
	f.DurationVar(&o.WriteTimeout, "write-timeout", 10*time.Second, "How long to wait for the API to respond to the client.")
	f.DurationVar(&o.ShutdownTimeout, "shutdown-timeout", 5*time.Second, "How long to wait for connections to drain on shutdown.")
}

// logging installs a request scoped logger so handlers can log with
// log.FromContext.
func logging(logger logr.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			l := logger.WithValues("requestID", middleware.GetReqID(r.Context()), "method", r.Method, "path", r.URL.Path)

			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r.WithContext(log.IntoContext(r.Context(), l)))

			l.Info("request served", "status", ww.Status(), "duration", time.Since(start))
		})
	}
}

// NewHandler returns the users API router.
func NewHandler(ctx context.Context, s *users.Service) (http.Handler, error) {
	doc, err := openapi.Load(ctx)
	if err != nil {
		return nil, err
	}

	onError := func(w http.ResponseWriter, r *http.Request, err error) {
		errors.HandleError(w, r, errors.OAuth2InvalidRequest("Bad request").WithError(err))
	}

	validator, err := openapi.NewValidator(doc, onError)
	if err != nil {
		return nil, err
	}

	h, err := handler.New(s)
	if err != nil {
		return nil, err
	}

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(logging(log.FromContext(ctx)))
	router.Use(middleware.Recoverer)
	router.Use(validator.Middleware)

	router.Post("/api/users/", h.PostApiUsers)
	router.Post("/api/users/login", h.PostApiUsersLogin)
	router.Post("/api/users/logout", h.PostApiUsersLogout)
	router.Post("/api/users/forgot", h.PostApiUsersForgot)

	return router, nil
}

// Run serves the API until the context is cancelled.
func Run(ctx context.Context, options *Options, s *users.Service) error {
	logger := log.FromContext(ctx)

	h, err := NewHandler(ctx, s)
	if err != nil {
		return err
	}

	server := &http.Server{
		Addr:         options.ListenAddress,
		Handler:      h,
		ReadTimeout:  options.ReadTimeout,
		WriteTimeout: options.WriteTimeout,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), options.ShutdownTimeout)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error(err, "server shutdown failed")
		}
	}()

	logger.Info("listening", "address", options.ListenAddress)

	if err := server.ListenAndServe(); err != nil && !goerrors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("serving: %w", err)
	}

	return nil
}
