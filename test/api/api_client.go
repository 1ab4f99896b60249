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

//nolint:revive // naming conventions acceptable in test code
package api

//go:generate mockgen -source=api_client.go -destination=mock/doer.go -package=mock

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/onsi/ginkgo/v2"
)

// HTTPDoer sends HTTP requests, *http.Client satisfies it.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Response is a fully read API response.
type Response struct {
	Method     string
	Path       string
	StatusCode int
	Header     http.Header
	Body       []byte
	TraceID    string
	Duration   time.Duration
}

type APIClient struct {
	baseURL   string
	client    HTTPDoer
	config    *TestConfig
	endpoints *Endpoints
}

func NewAPIClientWithConfig(config *TestConfig) *APIClient {
	return NewAPIClientWithDoer(config, &http.Client{
		Timeout: config.RequestTimeout,
	})
}

// NewAPIClientWithDoer allows the transport to be replaced.
func NewAPIClientWithDoer(config *TestConfig, doer HTTPDoer) *APIClient {
	return &APIClient{
		baseURL:   strings.TrimSuffix(config.BaseURL, "/"),
		client:    doer,
		config:    config,
		endpoints: NewEndpoints(),
	}
}

// Endpoints returns the endpoint patterns the client uses.
func (c *APIClient) Endpoints() *Endpoints {
	return c.endpoints
}

// logError logs a generic error with trace context.
func (c *APIClient) logError(method, path string, duration time.Duration, traceParent string, err error, context string) {
	ginkgo.GinkgoWriter.Printf("[%s %s] ERROR %s duration=%s traceparent=%s error=%v\n", method, path, context, duration, traceParent, err)
	c.logTraceContext(traceParent)
}

// logErrorWithStatus logs an error with HTTP status code.
func (c *APIClient) logErrorWithStatus(method, path string, duration time.Duration, statusCode int, traceParent string, err error, context string) {
	ginkgo.GinkgoWriter.Printf("[%s %s] ERROR %s duration=%s status=%d traceparent=%s error=%v\n", method, path, context, duration, statusCode, traceParent, err)
	c.logTraceContext(traceParent)
}

// logTraceContext logs the trace context information.
func (c *APIClient) logTraceContext(traceParent string) {
	ginkgo.GinkgoWriter.Printf("TRACE CONTEXT: Use trace ID '%s' to search logs for this request\n", extractTraceID(traceParent))
}

// generateTraceID creates a new W3C trace ID.
// we are using this to create a new trace ID for each request so if an error occurs we can find the request in the logs.
func generateTraceID() string {
	bytes := make([]byte, 16)
	_, _ = rand.Read(bytes)

	return hex.EncodeToString(bytes)
}

// generateSpanID creates a new W3C span ID.
func generateSpanID() string {
	bytes := make([]byte, 8)
	_, _ = rand.Read(bytes)

	return hex.EncodeToString(bytes)
}

// createTraceParent creates a W3C traceparent header value.
func createTraceParent() string {
	traceID := generateTraceID()
	spanID := generateSpanID()

	return fmt.Sprintf("00-%s-%s-01", traceID, spanID)
}

// extractTraceID extracts the trace ID from a traceparent header value.
func extractTraceID(traceParent string) string {
	parts := strings.Split(traceParent, "-")
	if len(parts) >= 2 {
		return parts[1]
	}

	return traceParent
}

// Do sends the request and reads the whole response.  Only transport
// failures are errors, the status code is left for the caller to check.
// Requests are never retried.
func (c *APIClient) Do(ctx context.Context, request *Request) (*Response, error) {
	method, path := request.Method(), request.Path()

	req, err := request.build(ctx, c.baseURL)
	if err != nil {
		return nil, err
	}

	// Add W3C Trace Context headers
	traceParent := createTraceParent()
	req.Header.Set("Traceparent", traceParent)
	req.Header.Set("Tracestate", "test-automation=ginkgo")

	start := time.Now()
	resp, err := c.client.Do(req)
	duration := time.Since(start)

	if err != nil {
		c.logError(method, path, duration, traceParent, err, "http request failed")
		return nil, fmt.Errorf("http request failed: %w", err)
	}

	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		c.logErrorWithStatus(method, path, duration, resp.StatusCode, traceParent, err, "reading response body")
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	if c.config.LogRequests {
		ginkgo.GinkgoWriter.Printf("[%s %s] status=%d duration=%s traceparent=%s\n", method, path, resp.StatusCode, duration, traceParent)
	}

	if c.config.LogResponses && len(respBody) > 0 {
		ginkgo.GinkgoWriter.Printf("[%s %s] response body: %s\n", method, path, string(respBody))
	}

	response := &Response{
		Method:     method,
		Path:       path,
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       respBody,
		TraceID:    extractTraceID(traceParent),
		Duration:   duration,
	}

	return response, nil
}

// Login posts credentials to the login endpoint.
func (c *APIClient) Login(ctx context.Context, credentials Credentials) (*Response, error) {
	return c.Do(ctx, NewLoginRequest(credentials))
}

// Logout posts to the logout endpoint with the raw token as the
// Authorization header.  An empty token is sent as an empty header.
func (c *APIClient) Logout(ctx context.Context, token string) (*Response, error) {
	return c.Do(ctx, NewLogoutRequest(token))
}

// LogoutWithoutToken posts to the logout endpoint with no Authorization
// header at all.
func (c *APIClient) LogoutWithoutToken(ctx context.Context) (*Response, error) {
	return c.Do(ctx, NewRequest(http.MethodPost, c.endpoints.Logout()))
}

// Signup posts a registration to the signup endpoint.
func (c *APIClient) Signup(ctx context.Context, registration RegistrationRequest) (*Response, error) {
	return c.Do(ctx, NewSignupRequest(registration))
}

// ForgotPassword posts to the password recovery endpoint.
func (c *APIClient) ForgotPassword(ctx context.Context, forgot ForgotRequest) (*Response, error) {
	return c.Do(ctx, NewForgotPasswordRequest(forgot))
}

// ForgotPasswordRaw posts an arbitrary body to the password recovery endpoint.
func (c *APIClient) ForgotPasswordRaw(ctx context.Context, body []byte) (*Response, error) {
	return c.Do(ctx, NewRequest(http.MethodPost, c.endpoints.ForgotPassword()).WithRawBody(body))
}

// LoginForToken logs in and returns the session token.  Anything other than
// a 200 with a token in the body is an error.
func (c *APIClient) LoginForToken(ctx context.Context, credentials Credentials) (string, error) {
	resp, err := c.Login(ctx, credentials)
	if err != nil {
		return "", fmt.Errorf("logging in: %w", err)
	}

	if err := CheckStatus(resp, http.StatusOK); err != nil {
		return "", fmt.Errorf("logging in: %w", err)
	}

	token, err := ExtractToken(resp.Body)
	if err != nil {
		return "", fmt.Errorf("logging in: %w", err)
	}

	return token, nil
}
