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
	"cmp"
	"context"
	"fmt"
	"slices"
)

// Case is a single request with a fixed expected outcome.
type Case struct {
	// Name describes the scenario.
	Name string

	// Order is an advisory sequencing hint, lower runs first.  Cases must
	// not rely on it for data, anything a case needs it fetches itself.
	Order int

	// Request is sent exactly once.
	Request *Request

	// ExpectedStatus is the status code that passes the case.
	ExpectedStatus int
}

// SortCases returns the cases ordered by their hint.  Cases with the same
// hint keep their relative order.
func SortCases(cases []Case) []Case {
	sorted := slices.Clone(cases)

	slices.SortStableFunc(sorted, func(a, b Case) int {
		return cmp.Compare(a.Order, b.Order)
	})

	return sorted
}

// Run sends the case's request and checks the status code.  The response is
// returned even on a mismatch so callers can inspect it.
func (c *APIClient) Run(ctx context.Context, tc Case) (*Response, error) {
	resp, err := c.Do(ctx, tc.Request)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", tc.Name, err)
	}

	if err := CheckStatus(resp, tc.ExpectedStatus); err != nil {
		return resp, fmt.Errorf("%s: %w", tc.Name, err)
	}

	return resp, nil
}
