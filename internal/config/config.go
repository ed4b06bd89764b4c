package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds application configuration
type Config struct {
	Port      string
	DBConn    string
	LogLevel  string
	JWTSecret string

	// Limit policy defaults for new users, in minor units. Overridden
	// at startup by the issuer policy when IssuerURL is set.
	DefaultLimit    int64
	MinAllowedLimit int64
	MaxAllowedLimit int64
	IssuerURL       string

	// Statement-cycle reset, robfig/cron spec
	UsageResetSpec string

	// Email notifications are disabled when SMTPHost is empty
	SMTPHost     string
	SMTPPort     string
	SMTPUsername string
	SMTPPassword string
	SenderEmail  string
}

// NewConfig loads configuration from environment variables
func NewConfig() (*Config, error) {
	cfg := &Config{
		Port:            getEnv("PORT", "8080"),
		DBConn:          getEnv("DB_CONN", "host=localhost port=5436 user=test password=test dbname=cards sslmode=disable"),
		LogLevel:        getEnv("LOG_LEVEL", "INFO"),
		JWTSecret:       getEnv("JWT_SECRET", "secret"),
		DefaultLimit:    getEnvInt64("DEFAULT_LIMIT", 250000),
		MinAllowedLimit: getEnvInt64("MIN_ALLOWED_LIMIT", 50000),
		MaxAllowedLimit: getEnvInt64("MAX_ALLOWED_LIMIT", 1000000),
		IssuerURL:       getEnv("ISSUER_URL", ""),
		UsageResetSpec:  getEnv("USAGE_RESET_SPEC", "0 0 1 * *"),
		SMTPHost:        getEnv("SMTP_HOST", ""),
		SMTPPort:        getEnv("SMTP_PORT", "587"),
		SMTPUsername:    getEnv("SMTP_USERNAME", ""),
		SMTPPassword:    getEnv("SMTP_PASSWORD", ""),
		SenderEmail:     getEnv("SENDER_EMAIL", "noreply@cardlimit.local"),
	}

	if cfg.DBConn == "" {
		return nil, fmt.Errorf("DB_CONN is required")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}
	if cfg.MinAllowedLimit > cfg.MaxAllowedLimit {
		return nil, fmt.Errorf("MIN_ALLOWED_LIMIT exceeds MAX_ALLOWED_LIMIT")
	}
	if cfg.DefaultLimit < cfg.MinAllowedLimit || cfg.DefaultLimit > cfg.MaxAllowedLimit {
		return nil, fmt.Errorf("DEFAULT_LIMIT is outside the allowed range")
	}

	return cfg, nil
}

func getEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultVal
}

func getEnvInt64(key string, defaultVal int64) int64 {
	if value, exists := os.LookupEnv(key); exists {
		if i, err := strconv.ParseInt(value, 10, 64); err == nil {
			return i
		}
	}
	return defaultVal
}
