package util

import (
	"os"
	"strconv"

	"github.com/lorebase/lorebase/pkg/logger"

	"github.com/joho/godotenv"
)

// LoadEnv loads a .env file when one is present. Deployments set the AI_*,
// QUERY_* and GRAPH_* keys directly in the environment instead.
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		logger.Debug("No .env file found, using system environment variables")
	}
}

// GetEnv returns the value of the key, or "" when unset.
func GetEnv(key string) string {
	return os.Getenv(key)
}

// GetEnvString returns the value of the key, or the default when unset.
// An empty value set on purpose still wins over the default.
func GetEnvString(key string, defaultValue string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return defaultValue
}

// GetEnvNumeric parses the key as a number. Unset or unparseable values fall
// back to the default; unparseable ones are logged since a typo in QUERY_TOP_K
// or AI_TIMEOUT_SEC should not silently change behavior.
func GetEnvNumeric(key string, defaultValue int) float64 {
	value, ok := os.LookupEnv(key)
	if !ok {
		return float64(defaultValue)
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		logger.Warn("Ignoring non-numeric env value", "key", key, "value", value)
		return float64(defaultValue)
	}
	return parsed
}

// GetEnvBool parses the key as a boolean. Only the literals "true" and
// "false" count; anything else falls back to the default.
func GetEnvBool(key string, defaultValue bool) bool {
	switch os.Getenv(key) {
	case "true":
		return true
	case "false":
		return false
	default:
		return defaultValue
	}
}
