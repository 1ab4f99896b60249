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
	"encoding/json"
	"errors"
	"fmt"
)

// ErrTokenMissing is returned when a login response has no usable token.
var ErrTokenMissing = errors.New("token missing from response")

// ExtractToken reads the token field from a login response body.  String
// tokens are returned as is, any other non-null value is returned as its
// compact JSON text.
func ExtractToken(body []byte) (string, error) {
	var fields map[string]json.RawMessage

	if err := json.Unmarshal(body, &fields); err != nil {
		return "", fmt.Errorf("parsing login response: %w", err)
	}

	raw, ok := fields["token"]
	if !ok || string(raw) == "null" {
		return "", ErrTokenMissing
	}

	var token string

	if err := json.Unmarshal(raw, &token); err != nil {
		var buffer bytes.Buffer

		if err := json.Compact(&buffer, raw); err != nil {
			return "", fmt.Errorf("parsing token: %w", err)
		}

		return buffer.String(), nil
	}

	if token == "" {
		return "", ErrTokenMissing
	}

	return token, nil
}
