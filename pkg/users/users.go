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

// Package users implements an in-memory account service with the same
// registration, session and recovery semantics as the production users API.
package users

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/spjmurray/go-util/pkg/set"
	"golang.org/x/crypto/bcrypt"

	"k8s.io/apimachinery/pkg/util/rand"

	"sigs.k8s.io/controller-runtime/pkg/log"
)

var (
	ErrEmailAlreadyRegistered = errors.New("email already registered")
	ErrInvalidUserCredentials = errors.New("invalid user credentials")
	ErrUserNotExists          = errors.New("user not exists")
	ErrEmailNotVerified       = errors.New("email not verified")
	ErrInvalidToken           = errors.New("invalid token")
)

// Account is a registered user.
type Account struct {
	ID       string
	Name     string
	LastName string
	DNI      int
	Phone    int
	Email    string
	Verified bool

	passwordHash []byte
}

// Registration describes a new account.
type Registration struct {
	Name     string
	LastName string
	DNI      int
	Phone    int
	Email    string
	Password string
}

// Fixture is an account installed before any requests are served.
type Fixture struct {
	Registration

	Verified bool
}

// Options configure token issue.
type Options struct {
	// Secret signs session tokens.
	Secret []byte

	// TokenTTL is how long a session token is valid for.
	TokenTTL time.Duration
}

// Service holds accounts and sessions in memory.
type Service struct {
	options Options

	lock sync.Mutex

	// accounts are keyed by normalized email.
	accounts map[string]*Account

	// revoked contains the IDs of tokens that have been logged out.
	revoked set.Set[string]

	// recoveries counts password recovery requests per account.
	recoveries map[string]int
}

// New returns an empty service.
func New(options Options) *Service {
	return &Service{
		options:    options,
		accounts:   map[string]*Account{},
		revoked:    set.New[string](),
		recoveries: map[string]int{},
	}
}

func normalize(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Seed installs fixture accounts.
func (s *Service) Seed(ctx context.Context, fixtures ...Fixture) error {
	for _, fixture := range fixtures {
		account, err := s.Register(ctx, fixture.Registration)
		if err != nil {
			return fmt.Errorf("seeding %s: %w", fixture.Email, err)
		}

		if fixture.Verified {
			if err := s.Verify(ctx, account.Email); err != nil {
				return err
			}
		}
	}

	return nil
}

// Register creates a new, unverified account.
func (s *Service) Register(ctx context.Context, registration Registration) (*Account, error) {
	key := normalize(registration.Email)

	hash, err := bcrypt.GenerateFromPassword([]byte(registration.Password), bcrypt.MinCost)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	s.lock.Lock()
	defer s.lock.Unlock()

	if _, ok := s.accounts[key]; ok {
		return nil, ErrEmailAlreadyRegistered
	}

	account := &Account{
		ID:           rand.String(16),
		Name:         registration.Name,
		LastName:     registration.LastName,
		DNI:          registration.DNI,
		Phone:        registration.Phone,
		Email:        registration.Email,
		passwordHash: hash,
	}

	s.accounts[key] = account

	log.FromContext(ctx).Info("account registered", "id", account.ID, "email", account.Email)

	out := *account

	return &out, nil
}

// Verify marks an account's email as verified.
func (s *Service) Verify(ctx context.Context, email string) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	account, ok := s.accounts[normalize(email)]
	if !ok {
		return ErrUserNotExists
	}

	account.Verified = true

	log.FromContext(ctx).V(1).Info("account verified", "id", account.ID)

	return nil
}

func (s *Service) lookup(email string) (Account, bool) {
	s.lock.Lock()
	defer s.lock.Unlock()

	account, ok := s.accounts[normalize(email)]
	if !ok {
		return Account{}, false
	}

	return *account, true
}

// Login checks credentials and issues a session token.  Existence is checked
// before the password, and the password before verification, so an unverified
// account only reports as such to its owner.
func (s *Service) Login(ctx context.Context, email, password string) (string, error) {
	account, ok := s.lookup(email)
	if !ok {
		return "", ErrUserNotExists
	}

	if err := bcrypt.CompareHashAndPassword(account.passwordHash, []byte(password)); err != nil {
		return "", ErrInvalidUserCredentials
	}

	if !account.Verified {
		return "", ErrEmailNotVerified
	}

	now := time.Now()

	claims := jwt.RegisteredClaims{
		ID:        rand.String(32),
		Subject:   account.ID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.options.TokenTTL)),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.options.Secret)
	if err != nil {
		return "", fmt.Errorf("signing token: %w", err)
	}

	log.FromContext(ctx).Info("session started", "id", account.ID)

	return token, nil
}

func (s *Service) parse(token string) (*jwt.RegisteredClaims, error) {
	claims := &jwt.RegisteredClaims{}

	keyFunc := func(*jwt.Token) (any, error) {
		return s.options.Secret, nil
	}

	if _, err := jwt.ParseWithClaims(token, claims, keyFunc, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	return claims, nil
}

// Logout revokes a session token.  A token can only be revoked once.
func (s *Service) Logout(ctx context.Context, token string) error {
	if token == "" {
		return ErrInvalidToken
	}

	claims, err := s.parse(token)
	if err != nil {
		return err
	}

	s.lock.Lock()
	defer s.lock.Unlock()

	if s.revoked.Contains(claims.ID) {
		return fmt.Errorf("%w: token already revoked", ErrInvalidToken)
	}

	s.revoked.Add(claims.ID)

	log.FromContext(ctx).Info("session ended", "id", claims.Subject)

	return nil
}

// ForgotPassword starts credential recovery for an account.  Delivery of the
// recovery email is recorded rather than sent.
func (s *Service) ForgotPassword(ctx context.Context, email string) error {
	key := normalize(email)

	s.lock.Lock()
	defer s.lock.Unlock()

	account, ok := s.accounts[key]
	if !ok {
		return ErrUserNotExists
	}

	s.recoveries[key]++

	log.FromContext(ctx).Info("password recovery requested", "id", account.ID)

	return nil
}

// Recoveries returns how many recovery requests an account has had.
func (s *Service) Recoveries(email string) int {
	s.lock.Lock()
	defer s.lock.Unlock()

	return s.recoveries[normalize(email)]
}
