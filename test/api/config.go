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
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

type TestConfig struct {
	BaseURL            string        `env:"API_BASE_URL"`
	RequestTimeout     time.Duration `env:"REQUEST_TIMEOUT" env-default:"30s"`
	TestTimeout        time.Duration `env:"TEST_TIMEOUT" env-default:"5m"`
	SkipIntegration    bool          `env:"SKIP_INTEGRATION" env-default:"false"`
	UseStub            bool          `env:"USE_STUB" env-default:"false"`
	LogRequests        bool          `env:"LOG_REQUESTS" env-default:"false"`
	LogResponses       bool          `env:"LOG_RESPONSES" env-default:"false"`
	VerifiedEmail      string        `env:"TEST_VERIFIED_EMAIL" env-default:"pepito1@gmail.com"`
	VerifiedPassword   string        `env:"TEST_VERIFIED_PASSWORD" env-default:"pepito"`
	UnverifiedEmail    string        `env:"TEST_UNVERIFIED_EMAIL" env-default:"noverified@gmail.com"`
	UnverifiedPassword string        `env:"TEST_UNVERIFIED_PASSWORD" env-default:"noverified"`
	UnknownEmail       string        `env:"TEST_UNKNOWN_EMAIL" env-default:"notfound@gmail.com"`
}

// LoadTestConfig loads configuration from environment variables and .env files.
// Returns an error if required configuration values are missing.
func LoadTestConfig() (*TestConfig, error) {
	loadEnvFile()

	config := &TestConfig{}

	if err := cleanenv.ReadEnv(config); err != nil {
		return nil, fmt.Errorf("reading test configuration: %w", err)
	}

	// Validate required fields
	if err := validateRequiredFields(config); err != nil {
		return nil, err
	}

	return config, nil
}

func loadEnvFile() {
	envPaths := []string{
		os.Getenv("TEST_ENV_FILE"),
		"../../../test/.env", // From test/api/suites directory
		"../../test/.env",    // From test/api directory
	}

	var envPath string

	for _, path := range envPaths {
		if path == "" {
			continue
		}

		if _, err := os.Stat(path); err == nil {
			absPath, err := filepath.Abs(path)
			if err == nil {
				envPath = absPath
				break
			}
		}
	}

	if envPath == "" {
		// .env file not found - this is OK in CI/CD where env vars are set directly
		return
	}

	// Existing environment variables take precedence over the file.
	if err := godotenv.Load(envPath); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to load .env file from %s: %v\n", envPath, err)
	}
}

// validateRequiredFields checks that all required configuration values are set.
func validateRequiredFields(config *TestConfig) error {
	var missing []string

	required := map[string]string{
		"TEST_VERIFIED_EMAIL":      config.VerifiedEmail,
		"TEST_VERIFIED_PASSWORD":   config.VerifiedPassword,
		"TEST_UNVERIFIED_EMAIL":    config.UnverifiedEmail,
		"TEST_UNVERIFIED_PASSWORD": config.UnverifiedPassword,
		"TEST_UNKNOWN_EMAIL":       config.UnknownEmail,
	}

	// The stub's address is only known once it is started.
	if !config.UseStub {
		required["API_BASE_URL"] = config.BaseURL
	}

	for envVar, value := range required {
		if value == "" {
			missing = append(missing, envVar)
		}
	}

	if len(missing) > 0 {
		slices.Sort(missing)

		return fmt.Errorf("missing required configuration: %s. Please set these environment variables or add them to a .env file", strings.Join(missing, ", "))
	}

	return nil
}
