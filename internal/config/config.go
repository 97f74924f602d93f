// Package config loads process configuration from the environment, with an
// optional .env file for development.
package config

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
)

// Config holds everything main needs to wire the process.
type Config struct {
	Addr         string
	DatabasePath string
	JWTSecret    string

	// SMTP settings; when SMTPAddr is empty the log mailer is used instead.
	SMTPAddr     string
	SMTPUsername string
	SMTPPassword string
	MailFrom     string
}

// Load reads the environment. A missing .env file is fine; a missing or
// short JWT secret is not.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Debug(".env file not found, using process environment")
	}

	cfg := &Config{
		Addr:         ":" + envOrDefault("PORT", "8080"),
		DatabasePath: envOrDefault("DATABASE_PATH", "reviewhub.db"),
		JWTSecret:    os.Getenv("JWT_SECRET"),
		SMTPAddr:     os.Getenv("SMTP_ADDR"),
		SMTPUsername: os.Getenv("SMTP_USERNAME"),
		SMTPPassword: os.Getenv("SMTP_PASSWORD"),
		MailFrom:     envOrDefault("MAIL_FROM", "no-reply@reviewhub.local"),
	}

	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET environment variable is required")
	}
	if len(cfg.JWTSecret) < 32 {
		return nil, fmt.Errorf("JWT_SECRET must be at least 32 characters for HMAC-SHA256 security")
	}
	return cfg, nil
}

func envOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
