package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	// Environment
	Env string // "development", "production", etc.

	// Server
	ServerAddr string

	// CORS
	CORSOrigins string // Comma-separated allowed origins

	// Database
	DatabaseURL string

	// Upstream API
	BLSAPIKey string // selects the keyed tier when set
	BLSAPIURL string // override for tests/proxies; empty uses the tier URL

	// Fetching
	MaxInFlightFetches int           // concurrent upstream batch calls per query
	FetchTimeout       time.Duration // overall per-query call timeout

	// Quota
	QuotaBackend string // "postgres" (durable, default) or "memory"

	// Background refresh of the national catalog
	RefreshEnabled  bool
	RefreshInterval time.Duration
}

// Load reads configuration from environment variables with sensible defaults.
func Load() *Config {
	return &Config{
		Env:                getEnv("ENV", "development"),
		ServerAddr:         getEnv("SERVER_ADDR", ":3000"),
		CORSOrigins:        getEnv("CORS_ORIGINS", ""),
		DatabaseURL:        getEnv("DATABASE_URL", "postgres://localhost:5432/laborstats?sslmode=disable"),
		BLSAPIKey:          getEnv("BLS_API_KEY", ""),
		BLSAPIURL:          getEnv("BLS_API_URL", ""),
		MaxInFlightFetches: getEnvInt("MAX_INFLIGHT_FETCHES", 4),
		FetchTimeout:       getEnvDuration("FETCH_TIMEOUT", 30*time.Second),
		QuotaBackend:       getEnv("QUOTA_BACKEND", "postgres"),
		RefreshEnabled:     getEnv("REFRESH_ENABLED", "") != "",
		RefreshInterval:    getEnvDuration("REFRESH_INTERVAL", 6*time.Hour),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}

// IsDev returns true if the environment is set to development.
func (c *Config) IsDev() bool {
	return c.Env == "development" || c.Env == "dev"
}
