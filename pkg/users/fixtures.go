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

// DefaultFixtures are the accounts the API suites expect to exist.
func DefaultFixtures() []Fixture {
	return []Fixture{
		{
			Registration: Registration{
				Name:     "pepito",
				LastName: "perez",
				DNI:      7654321,
				Phone:    4545454,
				Email:    "pepito1@gmail.com",
				Password: "pepito",
			},
			Verified: true,
		},
		{
			Registration: Registration{
				Name:     "no",
				LastName: "verified",
				DNI:      1111111,
				Phone:    2222222,
				Email:    "noverified@gmail.com",
				Password: "noverified",
			},
		},
	}
}
