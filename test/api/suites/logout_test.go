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

var _ = Describe("Logout", caseGroup, func() {
	Context("When logging out", func() {
		It("should handle logoutSuccessfully", func() {
			token, err := client.LoginForToken(ctx, api.VerifiedCredentials(config))
			Expect(err).NotTo(HaveOccurred())

			resp, err := client.Logout(ctx, token)
			Expect(err).NotTo(HaveOccurred())
			Expect(resp).To(api.HaveStatus(http.StatusOK))
		})

		runCases([]api.Case{
			{
				Name:           "logoutMissingData",
				Order:          2,
				Request:        api.NewLogoutRequest(""),
				ExpectedStatus: http.StatusBadRequest,
			},
			{
				Name:           "logoutWithoutAuthorization",
				Order:          3,
				Request:        api.NewRequest(http.MethodPost, api.NewEndpoints().Logout()),
				ExpectedStatus: http.StatusBadRequest,
			},
		})
	})

	Context("When a token has already been used to log out", func() {
		It("should not accept it a second time", func() {
			if !config.UseStub {
				Skip("token revocation is only guaranteed by the stub")
			}

			token, err := client.LoginForToken(ctx, api.VerifiedCredentials(config))
			Expect(err).NotTo(HaveOccurred())

			resp, err := client.Logout(ctx, token)
			Expect(err).NotTo(HaveOccurred())
			Expect(resp).To(api.HaveStatus(http.StatusOK))

			resp, err = client.Logout(ctx, token)
			Expect(err).NotTo(HaveOccurred())
			Expect(resp.StatusCode).NotTo(Equal(http.StatusOK))
		})
	})
})
