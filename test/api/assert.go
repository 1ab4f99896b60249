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
	"errors"
	"fmt"

	"github.com/onsi/gomega/format"
	"github.com/onsi/gomega/types"
)

var ErrNoResponse = errors.New("no response")

// UnexpectedStatusError is returned when a response status doesn't match.
type UnexpectedStatusError struct {
	Method   string
	Path     string
	Expected int
	Actual   int
	Body     string
	TraceID  string
}

func (e *UnexpectedStatusError) Error() string {
	return fmt.Sprintf("[%s %s] unexpected status code: expected %d, got %d, body: %s (trace ID: %s)", e.Method, e.Path, e.Expected, e.Actual, e.Body, e.TraceID)
}

// CheckStatus returns an *UnexpectedStatusError if the response status is
// not the expected one.
func CheckStatus(resp *Response, expected int) error {
	if resp == nil {
		return ErrNoResponse
	}

	if resp.StatusCode == expected {
		return nil
	}

	return &UnexpectedStatusError{
		Method:   resp.Method,
		Path:     resp.Path,
		Expected: expected,
		Actual:   resp.StatusCode,
		Body:     string(resp.Body),
		TraceID:  resp.TraceID,
	}
}

type statusMatcher struct {
	expected int
}

// HaveStatus succeeds when a *Response has the expected status code.  The
// failure message carries the body and trace ID.
func HaveStatus(expected int) types.GomegaMatcher {
	return &statusMatcher{
		expected: expected,
	}
}

func (m *statusMatcher) Match(actual any) (bool, error) {
	resp, ok := actual.(*Response)
	if !ok {
		return false, fmt.Errorf("HaveStatus matcher expects a *api.Response, got:\n%s", format.Object(actual, 1))
	}

	if resp == nil {
		return false, ErrNoResponse
	}

	return resp.StatusCode == m.expected, nil
}

func (m *statusMatcher) FailureMessage(actual any) string {
	//nolint:forcetypeassert // Match has already checked the type
	return CheckStatus(actual.(*Response), m.expected).Error()
}

func (m *statusMatcher) NegatedFailureMessage(actual any) string {
	//nolint:forcetypeassert // Match has already checked the type
	resp := actual.(*Response)

	return fmt.Sprintf("[%s %s] expected status code not to be %d (trace ID: %s)", resp.Method, resp.Path, m.expected, resp.TraceID)
}
