// Package config loads service configuration from the environment.
package config

import (
	"os"

	"github.com/joho/godotenv"
)

// Config holds everything the binaries need at startup.
type Config struct {
	ServerPort      string
	GeminiModel     string
	DefaultCurrency string
}

// Load reads configuration from the environment, after loading a local
// .env file if one exists. Missing values fall back to defaults, so the
// service always starts.
func Load() Config {
	// Ignore the error: a missing .env is the normal production case.
	_ = godotenv.Load()

	return Config{
		ServerPort:      ":" + getEnv("PORT", "8080"),
		GeminiModel:     getEnv("GEMINI_MODEL", ""),
		DefaultCurrency: getEnv("DEFAULT_CURRENCY", "USD"),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
