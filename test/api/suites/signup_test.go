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

var _ = Describe("Signup", caseGroup, func() {
	Context("When registering accounts", func() {
		runCases([]api.Case{
			{
				Name:           "singUpSuccessfully",
				Order:          1,
				Request:        api.NewSignupRequest(pepoteWithUniqueEmail().Build()),
				ExpectedStatus: http.StatusOK,
			},
			{
				Name:           "singUpRequiredFields",
				Order:          2,
				Request:        api.NewSignupRequest(api.NewFixedRegistrationPayload().WithoutDNI().WithoutPhone().Build()),
				ExpectedStatus: http.StatusBadRequest,
			},
			{
				Name:           "singUpMissingDNI",
				Order:          3,
				Request:        api.NewSignupRequest(api.NewRegistrationPayload().WithoutDNI().Build()),
				ExpectedStatus: http.StatusBadRequest,
			},
			{
				Name:           "singUpMissingPhone",
				Order:          4,
				Request:        api.NewSignupRequest(api.NewRegistrationPayload().WithoutPhone().Build()),
				ExpectedStatus: http.StatusBadRequest,
			},
		})
	})

	Context("When the email is already registered", func() {
		It("should handle singUpEmailAlreadyRegistered", func() {
			payload := api.NewRegistrationPayload()

			resp, err := client.Signup(ctx, payload.Build())
			Expect(err).NotTo(HaveOccurred())
			Expect(resp).To(api.HaveStatus(http.StatusOK))

			for range 3 {
				resp, err = client.Signup(ctx, payload.Build())
				Expect(err).NotTo(HaveOccurred())
				Expect(resp).To(api.HaveStatus(http.StatusBadRequest))
			}
		})

		It("should reject a fixture account email", func() {
			payload := api.NewRegistrationPayload().WithEmail(config.VerifiedEmail)

			resp, err := client.Signup(ctx, payload.Build())
			Expect(err).NotTo(HaveOccurred())
			Expect(resp).To(api.HaveStatus(http.StatusBadRequest))
		})
	})
})

// pepoteWithUniqueEmail is the well known registration with an email that
// has not been used before.
func pepoteWithUniqueEmail() *api.RegistrationPayloadBuilder {
	return api.NewRegistrationPayload().
		WithName("pepote").
		WithLastName("mendez").
		WithDNI(1234567).
		WithPhone(3232323).
		WithPassword("pepoto")
}
