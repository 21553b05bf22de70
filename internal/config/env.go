package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

const (
	EnvBaseURL  = "TODO_API_URL"
	EnvLogFile  = "TODO_LOG_FILE"
	EnvLogLevel = "TODO_LOG_LEVEL"
	EnvTheme    = "TODO_THEME"

	DotEnvFile = ".env"
)

// loadFromEnv overrides config from environment variables. A .env file in
// the working directory supplies variables the process environment lacks.
func loadFromEnv(cfg *Config) error {
	dotenv, err := godotenv.Read(DotEnvFile)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("reading %s: %w", DotEnvFile, err)
	}
	get := func(key string) string {
		if v := os.Getenv(key); v != "" {
			return v
		}
		return dotenv[key]
	}

	if v := get(EnvBaseURL); v != "" {
		cfg.BaseURL = v
	}
	if v := get(EnvLogFile); v != "" {
		cfg.LogFile = v
	}
	if v := get(EnvLogLevel); v != "" {
		cfg.LogLevel = v
	}
	if v := get(EnvTheme); v != "" {
		cfg.Theme = v
	}
	return nil
}
