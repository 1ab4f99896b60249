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
	"context"
	"fmt"
	"net/http/httptest"
	"strings"
	"time"

	"github.com/brianvoe/gofakeit/v6"

	"github.com/unikorn-cloud/accounts/pkg/server"
	"github.com/unikorn-cloud/accounts/pkg/users"

	"k8s.io/apimachinery/pkg/util/rand"
)

func generateRandomName(prefix string) string {
	return fmt.Sprintf("%s-%s", prefix, rand.String(8))
}

func GenerateTestID() string {
	return generateRandomName("test")
}

// UniqueEmail returns an address that won't collide with earlier runs, as
// nothing is cleaned up on the server.
func UniqueEmail() string {
	return strings.ToLower(fmt.Sprintf("%s.%s@%s", gofakeit.FirstName(), GenerateTestID(), gofakeit.DomainName()))
}

// VerifiedCredentials are for the account that can log in.
func VerifiedCredentials(config *TestConfig) Credentials {
	return NewCredentials(config.VerifiedEmail, config.VerifiedPassword)
}

// UnverifiedCredentials are for an account whose email is unverified.
func UnverifiedCredentials(config *TestConfig) Credentials {
	return NewCredentials(config.UnverifiedEmail, config.UnverifiedPassword)
}

// UnknownCredentials are for an account that doesn't exist.
func UnknownCredentials(config *TestConfig) Credentials {
	return NewCredentials(config.UnknownEmail, "notfoun")
}

// StartStub runs the account service in-process, seeded with accounts that
// match the configured fixture credentials, and points the configuration at
// it.  The returned server must be closed by the caller.
func StartStub(ctx context.Context, config *TestConfig) (*httptest.Server, error) {
	service := users.New(users.Options{
		Secret:   []byte(GenerateTestID()),
		TokenTTL: time.Hour,
	})

	fixtures := []users.Fixture{
		{
			Registration: users.Registration{
				Name:     "pepito",
				LastName: "perez",
				DNI:      7654321,
				Phone:    4545454,
				Email:    config.VerifiedEmail,
				Password: config.VerifiedPassword,
			},
			Verified: true,
		},
		{
			Registration: users.Registration{
				Name:     "no",
				LastName: "verified",
				DNI:      1111111,
				Phone:    2222222,
				Email:    config.UnverifiedEmail,
				Password: config.UnverifiedPassword,
			},
		},
	}

	if err := service.Seed(ctx, fixtures...); err != nil {
		return nil, err
	}

	handler, err := server.NewHandler(ctx, service)
	if err != nil {
		return nil, err
	}

	stub := httptest.NewServer(handler)

	config.BaseURL = stub.URL

	return stub, nil
}
