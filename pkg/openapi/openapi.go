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

// Package openapi carries the OpenAPI description of the users API and
// request validation against it.
package openapi

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"net/http"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/getkin/kin-openapi/routers"
	"github.com/getkin/kin-openapi/routers/gorillamux"
)

var (
	// ErrRouteNotFound is returned when a request doesn't map to any
	// documented operation.
	ErrRouteNotFound = errors.New("route not found")

	//go:embed users.yaml
	spec []byte
)

// Load parses and validates the embedded OpenAPI document.
func Load(ctx context.Context) (*openapi3.T, error) {
	loader := openapi3.NewLoader()

	doc, err := loader.LoadFromData(spec)
	if err != nil {
		return nil, fmt.Errorf("loading openapi document: %w", err)
	}

	if err := doc.Validate(ctx); err != nil {
		return nil, fmt.Errorf("validating openapi document: %w", err)
	}

	return doc, nil
}

// ErrorFunc is called when a request fails validation.
type ErrorFunc func(w http.ResponseWriter, r *http.Request, err error)

// Validator checks requests against the OpenAPI schema.
type Validator struct {
	router  routers.Router
	onError ErrorFunc
}

// NewValidator returns a validator for the given document.
func NewValidator(doc *openapi3.T, onError ErrorFunc) (*Validator, error) {
	router, err := gorillamux.NewRouter(doc)
	if err != nil {
		return nil, fmt.Errorf("building openapi router: %w", err)
	}

	v := &Validator{
		router:  router,
		onError: onError,
	}

	return v, nil
}

// ValidateRequest checks the request parameters and body. The body is
// restored after reading so handlers can decode it again.
func (v *Validator) ValidateRequest(r *http.Request) error {
	route, params, err := v.router.FindRoute(r)
	if err != nil {
		return fmt.Errorf("%w: %s %s: %w", ErrRouteNotFound, r.Method, r.URL.Path, err)
	}

	input := &openapi3filter.RequestValidationInput{
		Request:    r,
		PathParams: params,
		Route:      route,
		Options: &openapi3filter.Options{
			AuthenticationFunc: openapi3filter.NoopAuthenticationFunc,
		},
	}

	return openapi3filter.ValidateRequest(r.Context(), input)
}

// Middleware rejects requests that violate the schema. Undocumented routes
// are passed through so the router can produce its own 404 or 405.
func (v *Validator) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := v.ValidateRequest(r); err != nil {
			if errors.Is(err, ErrRouteNotFound) {
				next.ServeHTTP(w, r)
				return
			}

			v.onError(w, r, err)

			return
		}

		next.ServeHTTP(w, r)
	})
}
