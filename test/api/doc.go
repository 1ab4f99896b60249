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

// Package api provides black-box integration test utilities for the users
// API of the account service.
//
// # Separate Client Implementation
//
// Requests are built by hand rather than through a generated client. Payloads
// are typed structs whose optional fields are pointers, so a test controls
// exactly which keys reach the wire: a missing key, not an empty value, is
// what drives the required field failures.
//
// The client also provides features tailored for integration testing:
//   - W3C trace context propagation for request correlation
//   - Detailed error logging with trace IDs for debugging
//   - Direct access to HTTP status codes and response bodies
//   - Raw Authorization header control, including empty and absent tokens
//
// # Configuration
//
// The base URL and fixture credentials are read from the environment (or a
// test/.env file) into a TestConfig that is injected into each client. There
// is no process wide base URL. Setting USE_STUB runs the suites against an
// in-process stub of the service instead.
package api
