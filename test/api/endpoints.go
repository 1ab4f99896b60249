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

// usersBasePath is where the users API is rooted.
const usersBasePath = "/api/users"

// Endpoints contains all API endpoint patterns.
type Endpoints struct{}

// NewEndpoints creates a new Endpoints instance.
func NewEndpoints() *Endpoints {
	return &Endpoints{}
}

// Signup is the registration endpoint.  The trailing slash is significant.
func (e *Endpoints) Signup() string {
	return usersBasePath + "/"
}

// Session endpoints.
func (e *Endpoints) Login() string {
	return usersBasePath + "/login"
}

func (e *Endpoints) Logout() string {
	return usersBasePath + "/logout"
}

// Credential recovery endpoints.
func (e *Endpoints) ForgotPassword() string {
	return usersBasePath + "/forgot"
}
