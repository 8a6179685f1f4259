// Package config sources runtime configuration from the environment.
package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"stealthcompany.com/satusehat/internal/satusehat"
	"stealthcompany.com/satusehat/internal/tokenfile"
)

// Config carries everything the CLI needs, sourced once at startup.
type Config struct {
	ClientID         string
	ClientSecret     string
	BaseURL          string
	TokenFile        string
	Timeout          time.Duration
	Port             string
	ElasticsearchURL string
}

// Load reads a .env file if present and builds the Config from the
// environment.
func Load() Config {
	if err := godotenv.Load(".env"); err != nil {
		log.Debug().Msg("No .env file found, assuming environment variables are set")
	}

	timeoutStr := getEnvOrDefault("SATUSEHAT_TIMEOUT", "30s")
	timeout, err := time.ParseDuration(timeoutStr)
	if err != nil {
		log.Warn().Str("value", timeoutStr).Msg("Invalid SATUSEHAT_TIMEOUT, using 30s")
		timeout = 30 * time.Second
	}

	return Config{
		ClientID:         os.Getenv("SATUSEHAT_CLIENT_ID"),
		ClientSecret:     os.Getenv("SATUSEHAT_CLIENT_SECRET"),
		BaseURL:          getEnvOrDefault("SATUSEHAT_BASE_URL", satusehat.DefaultBaseURL),
		TokenFile:        getEnvOrDefault("SATUSEHAT_TOKEN_FILE", tokenfile.DefaultPath),
		Timeout:          timeout,
		Port:             getEnvOrDefault("API_PORT", "8081"),
		ElasticsearchURL: os.Getenv("ELASTICSEARCH_URL"),
	}
}

// Helper function to get environment variable with default
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
