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

package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// Request describes a single API call.  It is built once and may be sent
// any number of times.
type Request struct {
	method string
	path   string
	body   []byte
	header http.Header
	err    error
}

// NewRequest starts building a request with no body.
func NewRequest(method, path string) *Request {
	return &Request{
		method: method,
		path:   path,
		header: http.Header{},
	}
}

// WithJSON sets the body to the JSON encoding of v.  Encoding failures are
// reported when the request is sent.
func (r *Request) WithJSON(v any) *Request {
	data, err := json.Marshal(v)
	if err != nil {
		r.err = fmt.Errorf("marshaling request body: %w", err)
		return r
	}

	r.body = data

	return r
}

// WithRawBody sends the given bytes verbatim.  An empty slice is how an
// empty request body is simulated.
func (r *Request) WithRawBody(body []byte) *Request {
	r.body = body

	return r
}

// WithHeader sets a header.  An empty value is still sent.
func (r *Request) WithHeader(key, value string) *Request {
	r.header.Set(key, value)

	return r
}

// WithAuthorization sets the Authorization header to the raw token, without
// a scheme prefix.
func (r *Request) WithAuthorization(token string) *Request {
	return r.WithHeader("Authorization", token)
}

// Method returns the HTTP method.
func (r *Request) Method() string {
	return r.method
}

// Path returns the path relative to the base URL.
func (r *Request) Path() string {
	return r.path
}

// Body returns the encoded body, nil if none was set.
func (r *Request) Body() []byte {
	return r.body
}

// Header returns a copy of the explicitly set headers.
func (r *Request) Header() http.Header {
	return r.header.Clone()
}

// build creates the HTTP request against the given base URL.
func (r *Request) build(ctx context.Context, baseURL string) (*http.Request, error) {
	if r.err != nil {
		return nil, r.err
	}

	var body io.Reader = http.NoBody

	if len(r.body) > 0 {
		body = bytes.NewReader(r.body)
	}

	req, err := http.NewRequestWithContext(ctx, r.method, baseURL+r.path, body)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	for key, values := range r.header {
		req.Header[key] = append([]string(nil), values...)
	}

	return req, nil
}

// NewLoginRequest builds a login request.
func NewLoginRequest(credentials Credentials) *Request {
	return NewRequest(http.MethodPost, NewEndpoints().Login()).WithJSON(credentials)
}

// NewLogoutRequest builds a logout request carrying the raw token.
func NewLogoutRequest(token string) *Request {
	return NewRequest(http.MethodPost, NewEndpoints().Logout()).WithAuthorization(token)
}

// NewSignupRequest builds a registration request.
func NewSignupRequest(registration RegistrationRequest) *Request {
	return NewRequest(http.MethodPost, NewEndpoints().Signup()).WithJSON(registration)
}

// NewForgotPasswordRequest builds a password recovery request.
func NewForgotPasswordRequest(forgot ForgotRequest) *Request {
	return NewRequest(http.MethodPost, NewEndpoints().ForgotPassword()).WithJSON(forgot)
}
