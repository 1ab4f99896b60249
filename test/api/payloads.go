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
	"github.com/brianvoe/gofakeit/v6"

	"k8s.io/utils/ptr"
)

// Credentials is the login payload.  Nil fields are omitted from the JSON.
type Credentials struct {
	Email    *string `json:"email,omitempty"`
	Password *string `json:"password,omitempty"`
}

// NewCredentials returns complete credentials.
func NewCredentials(email, password string) Credentials {
	return Credentials{
		Email:    ptr.To(email),
		Password: ptr.To(password),
	}
}

// WithoutPassword drops the password key entirely.
func (c Credentials) WithoutPassword() Credentials {
	c.Password = nil

	return c
}

// WithoutEmail drops the email key entirely.
func (c Credentials) WithoutEmail() Credentials {
	c.Email = nil

	return c
}

// RegistrationRequest is the signup payload.  Nil fields are omitted from
// the JSON, which is how required field failures are provoked.
type RegistrationRequest struct {
	Name     *string `json:"name,omitempty"`
	LastName *string `json:"last_name,omitempty"`
	DNI      *int    `json:"dni,omitempty"`
	Phone    *int    `json:"phone,omitempty"`
	Email    *string `json:"email,omitempty"`
	Password *string `json:"password,omitempty"`
}

// ForgotRequest is the password recovery payload.
type ForgotRequest struct {
	Email *string `json:"email,omitempty"`
}

// NewForgotRequest returns a recovery request for the email.
func NewForgotRequest(email string) ForgotRequest {
	return ForgotRequest{
		Email: ptr.To(email),
	}
}

// RegistrationPayloadBuilder builds signup payloads for testing.
type RegistrationPayloadBuilder struct {
	payload RegistrationRequest
}

// NewRegistrationPayload creates a complete registration with random
// personal details and an email that has never been registered.
func NewRegistrationPayload() *RegistrationPayloadBuilder {
	return &RegistrationPayloadBuilder{
		payload: RegistrationRequest{
			Name:     ptr.To(gofakeit.FirstName()),
			LastName: ptr.To(gofakeit.LastName()),
			DNI:      ptr.To(gofakeit.Number(1000000, 99999999)),
			Phone:    ptr.To(gofakeit.Number(1000000, 9999999)),
			Email:    ptr.To(UniqueEmail()),
			Password: ptr.To(gofakeit.Password(true, true, true, false, false, 12)),
		},
	}
}

// NewFixedRegistrationPayload creates the well known pepote registration.
// Its email is not unique, so only send it where a 400 is expected or
// against a fresh server.
func NewFixedRegistrationPayload() *RegistrationPayloadBuilder {
	return &RegistrationPayloadBuilder{
		payload: RegistrationRequest{
			Name:     ptr.To("pepote"),
			LastName: ptr.To("mendez"),
			DNI:      ptr.To(1234567),
			Phone:    ptr.To(3232323),
			Email:    ptr.To("pepote@gmail.com"),
			Password: ptr.To("pepoto"),
		},
	}
}

// WithName sets the first name.
func (b *RegistrationPayloadBuilder) WithName(name string) *RegistrationPayloadBuilder {
	b.payload.Name = ptr.To(name)

	return b
}

// WithLastName sets the last name.
func (b *RegistrationPayloadBuilder) WithLastName(lastName string) *RegistrationPayloadBuilder {
	b.payload.LastName = ptr.To(lastName)

	return b
}

// WithDNI sets the national identity number.
func (b *RegistrationPayloadBuilder) WithDNI(dni int) *RegistrationPayloadBuilder {
	b.payload.DNI = ptr.To(dni)

	return b
}

// WithPhone sets the phone number.
func (b *RegistrationPayloadBuilder) WithPhone(phone int) *RegistrationPayloadBuilder {
	b.payload.Phone = ptr.To(phone)

	return b
}

// WithEmail sets the email.
func (b *RegistrationPayloadBuilder) WithEmail(email string) *RegistrationPayloadBuilder {
	b.payload.Email = ptr.To(email)

	return b
}

// WithPassword sets the password.
func (b *RegistrationPayloadBuilder) WithPassword(password string) *RegistrationPayloadBuilder {
	b.payload.Password = ptr.To(password)

	return b
}

// WithoutDNI omits the dni key.
func (b *RegistrationPayloadBuilder) WithoutDNI() *RegistrationPayloadBuilder {
	b.payload.DNI = nil

	return b
}

// WithoutPhone omits the phone key.
func (b *RegistrationPayloadBuilder) WithoutPhone() *RegistrationPayloadBuilder {
	b.payload.Phone = nil

	return b
}

// Build returns the completed payload.
func (b *RegistrationPayloadBuilder) Build() RegistrationRequest {
	return b.payload
}

// Credentials returns login credentials matching the registration.
func (b *RegistrationPayloadBuilder) Credentials() Credentials {
	return Credentials{
		Email:    b.payload.Email,
		Password: b.payload.Password,
	}
}
