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

package users

import (
	"context"
	goerrors "errors"
	"fmt"
	"strings"

	"github.com/asaskevich/govalidator"

	service "github.com/unikorn-cloud/accounts/pkg/users"
	"github.com/unikorn-cloud/core/pkg/server/errors"
)

// RegisterRequest is the body of a signup request.
type RegisterRequest struct {
	Name     string `json:"name"`
	LastName string `json:"last_name"`
	DNI      int    `json:"dni"`
	Phone    int    `json:"phone"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// missing returns the JSON names of any zero valued fields.
func (r *RegisterRequest) missing() []string {
	var fields []string

	add := func(zero bool, name string) {
		if zero {
			fields = append(fields, name)
		}
	}

	add(r.Name == "", "name")
	add(r.LastName == "", "last_name")
	add(r.DNI == 0, "dni")
	add(r.Phone == 0, "phone")
	add(r.Email == "", "email")
	add(r.Password == "", "password")

	return fields
}

// User is the public view of an account.
type User struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	LastName string `json:"last_name"`
	DNI      int    `json:"dni"`
	Phone    int    `json:"phone"`
	Email    string `json:"email"`
}

// LoginRequest is the body of a login request.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse carries a session token.
type LoginResponse struct {
	Token string `json:"token"`
}

// ForgotRequest is the body of a password recovery request.
type ForgotRequest struct {
	Email string `json:"email"`
}

// Client maps API requests onto the account service.
type Client struct {
	service *service.Service
}

// NewClient returns a new client.
func NewClient(s *service.Service) *Client {
	return &Client{
		service: s,
	}
}

// Register creates a new account.
func (c *Client) Register(ctx context.Context, request *RegisterRequest) (*User, error) {
	if missing := request.missing(); len(missing) > 0 {
		return nil, errors.OAuth2InvalidRequest("Required fields: " + strings.Join(missing, ", "))
	}

	if !govalidator.IsEmail(request.Email) {
		return nil, errors.OAuth2InvalidRequest("Invalid email")
	}

	registration := service.Registration{
		Name:     request.Name,
		LastName: request.LastName,
		DNI:      request.DNI,
		Phone:    request.Phone,
		Email:    request.Email,
		Password: request.Password,
	}

	account, err := c.service.Register(ctx, registration)
	if err != nil {
		if goerrors.Is(err, service.ErrEmailAlreadyRegistered) {
			return nil, errors.OAuth2InvalidRequest("Email already registered").WithError(err)
		}

		return nil, fmt.Errorf("registering account: %w", err)
	}

	user := &User{
		ID:       account.ID,
		Name:     account.Name,
		LastName: account.LastName,
		DNI:      account.DNI,
		Phone:    account.Phone,
		Email:    account.Email,
	}

	return user, nil
}

// Login starts a session.
func (c *Client) Login(ctx context.Context, request *LoginRequest) (*LoginResponse, error) {
	if request.Email == "" || request.Password == "" {
		return nil, errors.OAuth2InvalidRequest("All fields are required")
	}

	token, err := c.service.Login(ctx, request.Email, request.Password)
	if err != nil {
		switch {
		case goerrors.Is(err, service.ErrInvalidUserCredentials):
			return nil, errors.OAuth2InvalidRequest("Invalid user credentials").WithError(err)
		case goerrors.Is(err, service.ErrUserNotExists):
			return nil, errors.HTTPNotFound().WithError(err)
		case goerrors.Is(err, service.ErrEmailNotVerified):
			return nil, errors.OAuth2AccessDenied("Email not verified").WithError(err)
		}

		return nil, fmt.Errorf("logging in: %w", err)
	}

	return &LoginResponse{Token: token}, nil
}

// Logout ends a session.  The token is the raw Authorization header value.
func (c *Client) Logout(ctx context.Context, token string) error {
	if token == "" {
		return errors.OAuth2InvalidRequest("Token not sent")
	}

	if err := c.service.Logout(ctx, token); err != nil {
		if goerrors.Is(err, service.ErrInvalidToken) {
			return errors.OAuth2InvalidRequest("Bad token").WithError(err)
		}

		return fmt.Errorf("logging out: %w", err)
	}

	return nil
}

// ForgotPassword starts credential recovery.
func (c *Client) ForgotPassword(ctx context.Context, request *ForgotRequest) error {
	if request.Email == "" {
		return errors.OAuth2InvalidRequest("Bad request")
	}

	if err := c.service.ForgotPassword(ctx, request.Email); err != nil {
		if goerrors.Is(err, service.ErrUserNotExists) {
			return errors.HTTPNotFound().WithError(err)
		}

		return fmt.Errorf("requesting password recovery: %w", err)
	}

	return nil
}
