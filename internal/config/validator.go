package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// ExpectedEnvSchemaVersion is the .env layout this build understands
const ExpectedEnvSchemaVersion = "1.0"

// RequiredEnvVars must be present before the service starts
var RequiredEnvVars = []string{
	"ENV_SCHEMA_VERSION",
	"DB_USER",
	"DB_PASSWORD",
	"DB_HOST",
	"DB_PORT",
	"DB_NAME",
	"API_KEY",
}

// Example values shipped in .env.example
const (
	exampleDBPassword = "change_this_secure_password"
	exampleAPIKey     = "generate_with_openssl_rand_hex_32"
)

// ValidateEnv checks the schema version and that every required variable is set
func ValidateEnv() error {
	schemaVersion := os.Getenv("ENV_SCHEMA_VERSION")
	if schemaVersion == "" {
		return fmt.Errorf("ENV_SCHEMA_VERSION is not set - add it to your .env file (expected: %s)", ExpectedEnvSchemaVersion)
	}
	if schemaVersion != ExpectedEnvSchemaVersion {
		return fmt.Errorf("ENV_SCHEMA_VERSION mismatch: expected %s, got %s - your .env file may be outdated", ExpectedEnvSchemaVersion, schemaVersion)
	}

	var missing []string
	for _, envVar := range RequiredEnvVars {
		if os.Getenv(envVar) == "" {
			missing = append(missing, envVar)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}
	return nil
}

// ValidateEnvWithWarnings runs ValidateEnv and then reports settings that
// work but are probably a mistake
func ValidateEnvWithWarnings() ([]string, error) {
	if err := ValidateEnv(); err != nil {
		return nil, err
	}

	var warnings []string
	if os.Getenv("DB_PASSWORD") == exampleDBPassword {
		warnings = append(warnings, "DB_PASSWORD appears to be using the example value - please use a secure password")
	}
	if os.Getenv("API_KEY") == exampleAPIKey {
		warnings = append(warnings, "API_KEY appears to be using the example value - generate a secure key with: openssl rand -hex 32")
	}
	if os.Getenv("HASHCHAIN_STORE") == HashchainStoreFile && os.Getenv("HASHCHAIN_DIR") == "" {
		warnings = append(warnings, "HASHCHAIN_STORE=file without HASHCHAIN_DIR - the chain will be written under data/hashchain")
	}

	length := getEnvAsInt("HASHCHAIN_LENGTH", DefaultHashchainLength)
	threshold := getEnvAsInt("HASHCHAIN_EXTEND_THRESHOLD", DefaultHashchainExtendThreshold)
	if threshold >= length {
		warnings = append(warnings, fmt.Sprintf(
			"HASHCHAIN_EXTEND_THRESHOLD (%d) is not below HASHCHAIN_LENGTH (%d) - every settlement will request a new segment",
			threshold, length))
	}
	if raw := os.Getenv("SETTLEMENT_MAX_RETRIES"); raw != "" {
		if n, err := strconv.Atoi(raw); err != nil || n < 1 {
			warnings = append(warnings, "SETTLEMENT_MAX_RETRIES is not a positive integer - the default of "+
				strconv.Itoa(DefaultSettlementMaxRetries)+" will be used")
		}
	}

	return warnings, nil
}
