package app

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/salescrm/auth/pkg/jwtx"
)

type Config struct {
	JWTSecret string        // Required: HS256 signing secret (>= 32 bytes)
	TokenTTL  time.Duration // Session token lifetime (default: 1h)
	Issuer    string        // Issuer claim for tokens (default: salescrm-auth)

	DatabaseFile        string        // Path to SQLite database file (default: ./auth.db)
	Env                 string        // Environment (dev, staging, prod) (default: dev)
	LogLevel            string        // Log level (debug, info, warn, error) (default: info)
	LogFormat           string        // Log format (json, text) (default: json)
	Port                int           // HTTP server port (default: 8080)
	ShutdownGracePeriod time.Duration // Graceful shutdown timeout (default: 10s)
}

func LoadConfig() Config {
	return Config{
		JWTSecret:           os.Getenv("AUTH_JWT_SECRET"),
		TokenTTL:            getEnvDurationOrDefault("AUTH_TOKEN_TTL", jwtx.DefaultSessionTTL),
		Issuer:              getEnvOrDefault("AUTH_ISSUER", "salescrm-auth"),
		DatabaseFile:        getEnvOrDefault("AUTH_DATABASE_FILE", "auth.db"),
		Env:                 getEnvOrDefault("ENV", "dev"),
		LogLevel:            getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:           getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod: getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
	}
}

// Validate rejects configurations that must not reach production. A missing
// or short signing secret is fatal at startup; there is no fallback value.
func (c Config) Validate() error {
	if len(c.JWTSecret) < jwtx.MinSecretLength {
		return fmt.Errorf("AUTH_JWT_SECRET: %w", jwtx.ErrWeakSecret)
	}
	if c.TokenTTL <= 0 {
		return fmt.Errorf("AUTH_TOKEN_TTL must be positive, got %s", c.TokenTTL)
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("PORT out of range: %d", c.Port)
	}
	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}
	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}
	return defaultValue
}
