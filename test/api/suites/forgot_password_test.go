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

var _ = Describe("Forgot Password", caseGroup, func() {
	Context("When requesting password recovery", func() {
		runCases([]api.Case{
			{
				Name:           "forgotPasswordSuccessfully",
				Order:          1,
				Request:        api.NewForgotPasswordRequest(api.NewForgotRequest(config.VerifiedEmail)),
				ExpectedStatus: http.StatusOK,
			},
			{
				Name:           "forgotPasswordMissingData",
				Order:          2,
				Request:        api.NewRequest(http.MethodPost, api.NewEndpoints().ForgotPassword()).WithRawBody([]byte{}),
				ExpectedStatus: http.StatusBadRequest,
			},
		})

		It("should accept repeated requests for the same account", func() {
			for range 2 {
				resp, err := client.ForgotPassword(ctx, api.NewForgotRequest(config.VerifiedEmail))
				Expect(err).NotTo(HaveOccurred())
				Expect(resp).To(api.HaveStatus(http.StatusOK))
			}
		})
	})
})
