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

package api_test

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/unikorn-cloud/accounts/test/api"
	"github.com/unikorn-cloud/accounts/test/api/mock"
)

const baseURL = "http://accounts.example.com/"

var errConnectionRefused = errors.New("connection refused")

var traceParentRegex = regexp.MustCompile(`^00-[0-9a-f]{32}-[0-9a-f]{16}-01$`)

func newClient(t *testing.T) (*api.APIClient, *mock.MockHTTPDoer) {
	t.Helper()

	c := gomock.NewController(t)

	doer := mock.NewMockHTTPDoer(c)

	config := &api.TestConfig{
		BaseURL: baseURL,
	}

	return api.NewAPIClientWithDoer(config, doer), doer
}

func response(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Header:     http.Header{},
		Body:       io.NopCloser(strings.NewReader(body)),
	}
}

func readBody(t *testing.T, req *http.Request) []byte {
	t.Helper()

	if req.Body == nil {
		return nil
	}

	data, err := io.ReadAll(req.Body)
	require.NoError(t, err)

	return data
}

// TestLoginRequest ensures the login request is well formed.
func TestLoginRequest(t *testing.T) {
	t.Parallel()

	client, doer := newClient(t)

	doer.EXPECT().Do(gomock.Any()).DoAndReturn(func(req *http.Request) (*http.Response, error) {
		require.Equal(t, http.MethodPost, req.Method)
		require.Equal(t, "http://accounts.example.com/api/users/login", req.URL.String())
		require.Equal(t, "application/json", req.Header.Get("Content-Type"))
		require.Regexp(t, traceParentRegex, req.Header.Get("Traceparent"))
		require.Equal(t, "test-automation=ginkgo", req.Header.Get("Tracestate"))
		require.JSONEq(t, `{"email":"pepito1@gmail.com","password":"pepito"}`, string(readBody(t, req)))

		return response(http.StatusOK, `{"token":"abc"}`), nil
	})

	resp, err := client.Login(t.Context(), api.NewCredentials("pepito1@gmail.com", "pepito"))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, http.MethodPost, resp.Method)
	require.Equal(t, "/api/users/login", resp.Path)
	require.Len(t, resp.TraceID, 32)
	require.JSONEq(t, `{"token":"abc"}`, string(resp.Body))
}

// TestLoginOmitsMissingFields ensures absent fields never reach the wire.
func TestLoginOmitsMissingFields(t *testing.T) {
	t.Parallel()

	client, doer := newClient(t)

	doer.EXPECT().Do(gomock.Any()).DoAndReturn(func(req *http.Request) (*http.Response, error) {
		require.JSONEq(t, `{"email":"noexiste@gmail.com"}`, string(readBody(t, req)))

		return response(http.StatusBadRequest, ``), nil
	})

	resp, err := client.Login(t.Context(), api.NewCredentials("noexiste@gmail.com", "pepito").WithoutPassword())
	require.NoError(t, err)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

// TestSignupOmitsMissingFields ensures dni and phone keys are removed, not
// zeroed.
func TestSignupOmitsMissingFields(t *testing.T) {
	t.Parallel()

	client, doer := newClient(t)

	doer.EXPECT().Do(gomock.Any()).DoAndReturn(func(req *http.Request) (*http.Response, error) {
		require.Equal(t, "/api/users/", req.URL.Path)

		var body map[string]any
		require.NoError(t, json.Unmarshal(readBody(t, req), &body))
		require.NotContains(t, body, "dni")
		require.NotContains(t, body, "phone")
		require.Equal(t, "pepote@gmail.com", body["email"])
		require.Equal(t, "mendez", body["last_name"])

		return response(http.StatusBadRequest, ``), nil
	})

	payload := api.NewFixedRegistrationPayload().WithoutDNI().WithoutPhone().Build()

	_, err := client.Signup(t.Context(), payload)
	require.NoError(t, err)
}

// TestLogoutAuthorization ensures tokens are sent raw, and that empty and
// absent tokens are distinguishable.
func TestLogoutAuthorization(t *testing.T) {
	t.Parallel()

	client, doer := newClient(t)

	gomock.InOrder(
		doer.EXPECT().Do(gomock.Any()).DoAndReturn(func(req *http.Request) (*http.Response, error) {
			require.Equal(t, []string{"abc.def"}, req.Header.Values("Authorization"))
			require.Empty(t, readBody(t, req))

			return response(http.StatusOK, `"ok"`), nil
		}),
		doer.EXPECT().Do(gomock.Any()).DoAndReturn(func(req *http.Request) (*http.Response, error) {
			require.Equal(t, []string{""}, req.Header.Values("Authorization"))

			return response(http.StatusBadRequest, ``), nil
		}),
		doer.EXPECT().Do(gomock.Any()).DoAndReturn(func(req *http.Request) (*http.Response, error) {
			require.NotContains(t, req.Header, "Authorization")
			require.Equal(t, "application/json", req.Header.Get("Content-Type"))

			return response(http.StatusBadRequest, ``), nil
		}),
	)

	resp, err := client.Logout(t.Context(), "abc.def")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = client.Logout(t.Context(), "")
	require.NoError(t, err)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, err = client.LogoutWithoutToken(t.Context())
	require.NoError(t, err)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

// TestForgotPasswordEmptyBody ensures an empty body is sent as such.
func TestForgotPasswordEmptyBody(t *testing.T) {
	t.Parallel()

	client, doer := newClient(t)

	doer.EXPECT().Do(gomock.Any()).DoAndReturn(func(req *http.Request) (*http.Response, error) {
		require.Equal(t, "/api/users/forgot", req.URL.Path)
		require.Zero(t, req.ContentLength)
		require.Empty(t, readBody(t, req))
		require.Equal(t, "application/json", req.Header.Get("Content-Type"))

		return response(http.StatusBadRequest, ``), nil
	})

	resp, err := client.ForgotPasswordRaw(t.Context(), []byte{})
	require.NoError(t, err)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

// TestTransportError ensures network failures surface and aren't retried.
func TestTransportError(t *testing.T) {
	t.Parallel()

	client, doer := newClient(t)

	doer.EXPECT().Do(gomock.Any()).Return(nil, errConnectionRefused).Times(1)

	_, err := client.ForgotPassword(t.Context(), api.NewForgotRequest("pepito1@gmail.com"))
	require.ErrorIs(t, err, errConnectionRefused)
}

// TestLoginForToken covers the login half of the logout flow.
func TestLoginForToken(t *testing.T) {
	t.Parallel()

	credentials := api.NewCredentials("pepito1@gmail.com", "pepito")

	t.Run("ok", func(t *testing.T) {
		t.Parallel()

		client, doer := newClient(t)

		doer.EXPECT().Do(gomock.Any()).Return(response(http.StatusOK, `{"token":"abc.def"}`), nil)

		token, err := client.LoginForToken(t.Context(), credentials)
		require.NoError(t, err)
		require.Equal(t, "abc.def", token)
	})

	t.Run("no token", func(t *testing.T) {
		t.Parallel()

		client, doer := newClient(t)

		doer.EXPECT().Do(gomock.Any()).Return(response(http.StatusOK, `{}`), nil)

		_, err := client.LoginForToken(t.Context(), credentials)
		require.ErrorIs(t, err, api.ErrTokenMissing)
	})

	t.Run("rejected", func(t *testing.T) {
		t.Parallel()

		client, doer := newClient(t)

		doer.EXPECT().Do(gomock.Any()).Return(response(http.StatusUnauthorized, `{"message":"Email not verified"}`), nil)

		_, err := client.LoginForToken(t.Context(), credentials)

		var statusErr *api.UnexpectedStatusError
		require.ErrorAs(t, err, &statusErr)
		require.Equal(t, http.StatusOK, statusErr.Expected)
		require.Equal(t, http.StatusUnauthorized, statusErr.Actual)
	})
}
