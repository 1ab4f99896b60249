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

package suites

import (
	"net/http"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/unikorn-cloud/accounts/test/api"
)

var _ = Describe("Login", caseGroup, func() {
	Context("When logging in with fixture accounts", func() {
		runCases([]api.Case{
			{
				Name:           "loginSuccessfully",
				Order:          1,
				Request:        api.NewLoginRequest(api.VerifiedCredentials(config)),
				ExpectedStatus: http.StatusOK,
			},
			{
				Name:           "loginMissingData",
				Order:          2,
				Request:        api.NewLoginRequest(api.VerifiedCredentials(config).WithoutPassword()),
				ExpectedStatus: http.StatusBadRequest,
			},
			{
				Name:           "loginWrongPassword",
				Order:          3,
				Request:        api.NewLoginRequest(api.NewCredentials(config.VerifiedEmail, "not-"+config.VerifiedPassword)),
				ExpectedStatus: http.StatusBadRequest,
			},
			{
				Name:           "loginEmailNotVerified",
				Order:          4,
				Request:        api.NewLoginRequest(api.UnverifiedCredentials(config)),
				ExpectedStatus: http.StatusUnauthorized,
			},
			{
				Name:           "loginUserNotFound",
				Order:          5,
				Request:        api.NewLoginRequest(api.UnknownCredentials(config)),
				ExpectedStatus: http.StatusNotFound,
			},
		})
	})

	Context("When the credentials are valid", func() {
		It("should return a token in the response body", func() {
			resp, err := client.Login(ctx, api.VerifiedCredentials(config))
			Expect(err).NotTo(HaveOccurred())
			Expect(resp).To(api.HaveStatus(http.StatusOK))

			token, err := api.ExtractToken(resp.Body)
			Expect(err).NotTo(HaveOccurred())
			Expect(token).NotTo(BeEmpty())
		})
	})

	Context("When fields are missing", func() {
		It("should reject a request without an email", func() {
			resp, err := client.Login(ctx, api.VerifiedCredentials(config).WithoutEmail())
			Expect(err).NotTo(HaveOccurred())
			Expect(resp).To(api.HaveStatus(http.StatusBadRequest))
		})
	})

	Context("When the account was just registered", func() {
		It("should refuse login until the email is verified", func() {
			payload := api.NewRegistrationPayload()

			resp, err := client.Signup(ctx, payload.Build())
			Expect(err).NotTo(HaveOccurred())
			Expect(resp).To(api.HaveStatus(http.StatusOK))

			resp, err = client.Login(ctx, payload.Credentials())
			Expect(err).NotTo(HaveOccurred())
			Expect(resp).To(api.HaveStatus(http.StatusUnauthorized))
		})
	})
})
