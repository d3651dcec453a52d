/*
Copyright 2026 the Loonycorn Authors.

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
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/loonycorn/bugs-api-tests/pkg/client"
)

type TestConfig struct {
	// BaseURL of the service under test, when empty a local stand-in is started.
	BaseURL            string
	BasePath           string
	RequestTimeout     time.Duration
	TestTimeout        time.Duration
	SkipBrowserWarning bool
	ValidateContract   bool
	DebugLogging       bool
	LogRequests        bool
	LogResponses       bool
	// ResultsDir receives request and response details when set.
	ResultsDir string
}

// LoadTestConfig loads configuration from environment variables and .env files.
// Returns an error if a configuration value is unusable.
func LoadTestConfig() (*TestConfig, error) {
	loadEnvFile()

	config := &TestConfig{
		BaseURL:            os.Getenv("API_BASE_URL"),
		BasePath:           getStringWithDefault("API_BASE_PATH", client.DefaultBasePath),
		RequestTimeout:     getDurationWithDefault("REQUEST_TIMEOUT", client.DefaultRequestTimeout),
		TestTimeout:        getDurationWithDefault("TEST_TIMEOUT", 5*time.Minute),
		SkipBrowserWarning: getBoolWithDefault("SKIP_BROWSER_WARNING", true),
		ValidateContract:   getBoolWithDefault("VALIDATE_CONTRACT", false),
		DebugLogging:       getBoolWithDefault("DEBUG_LOGGING", false),
		LogRequests:        getBoolWithDefault("LOG_REQUESTS", false),
		LogResponses:       getBoolWithDefault("LOG_RESPONSES", false),
		ResultsDir:         os.Getenv("RESULTS_DIR"),
	}

	if config.BaseURL != "" {
		if _, err := client.URL(config.BaseURL, ""); err != nil {
			return nil, fmt.Errorf("API_BASE_URL: %w", err)
		}
	}

	// The stand-in only serves the collection at its default path.
	if config.UseStandIn() && client.NewEndpoints(config.BasePath).BasePath() != client.DefaultBasePath {
		return nil, fmt.Errorf("%w: API_BASE_PATH %q requires API_BASE_URL to be set", client.ErrConfiguration, config.BasePath)
	}

	return config, nil
}

// UseStandIn is true when no service was configured and the suite provides its own.
func (c *TestConfig) UseStandIn() bool {
	return c.BaseURL == ""
}

// ClientOptions returns the request configuration for a service at baseURL.
func (c *TestConfig) ClientOptions(baseURL string) client.Options {
	return client.Options{
		BaseURL:            baseURL,
		BasePath:           c.BasePath,
		RequestTimeout:     c.RequestTimeout,
		SkipBrowserWarning: c.SkipBrowserWarning,
		ValidateContract:   c.ValidateContract,
		LogRequests:        c.LogRequests || c.DebugLogging,
		LogResponses:       c.LogResponses || c.DebugLogging,
	}
}

func getStringWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}

	return defaultValue
}

// getDurationWithDefault gets a duration from environment variable or returns default.
func getDurationWithDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	duration, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}

	return duration
}

// getBoolWithDefault gets a boolean from environment variable or returns default.
func getBoolWithDefault(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	boolValue, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}

	return boolValue
}

func loadEnvFile() {
	envPaths := []string{
		"../.env",    // From test/api directory
		"../../.env", // From test/api/suites directory
	}

	var envPath string

	for _, path := range envPaths {
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

	// Values already in the environment win over the file.
	if err := godotenv.Load(envPath); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to load .env file from %s: %v\n", envPath, err)
	}
}
