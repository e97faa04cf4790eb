// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// knownWeakSecrets contains default/example secrets that must be rejected in production.
var knownWeakSecrets = []string{
	"change-me-to-32-byte-secret-key!",
	"REPLACE_WITH_YOUR_OWN_SECRET_KEY!",
}

// Config holds the application configuration loaded from environment variables.
// Mail and port variables keep the names the contact form deployment already uses.
type Config struct {
	ServerHost    string `env:"AZAYA_SERVER_HOST"`
	ServerPort    int    `env:"PORT" envDefault:"5000"`
	Env           string `env:"AZAYA_ENV" envDefault:"development"`
	LogLevel      string `env:"AZAYA_LOG_LEVEL" envDefault:"info"`
	SessionSecret string `env:"AZAYA_SESSION_SECRET,required"`
	DBPath        string `env:"AZAYA_DB_PATH" envDefault:"./data/azaya.db"`

	// Mail relay
	EmailUser     string `env:"EMAIL_USER"`
	EmailPass     string `env:"EMAIL_PASS"`
	ReceiverEmail string `env:"RECEIVER_EMAIL"`
	SMTPHost      string `env:"AZAYA_SMTP_HOST" envDefault:"smtp.gmail.com"`
	SMTPPort      int    `env:"AZAYA_SMTP_PORT" envDefault:"465"`
	MailFromName  string `env:"AZAYA_MAIL_FROM_NAME" envDefault:"Azaya Marketing"`
	// CORSOrigins lists origins allowed to call the relay; "*" allows any.
	CORSOrigins []string `env:"AZAYA_CORS_ORIGINS" envSeparator:"," envDefault:"*"`

	// Remote blog/comment/user API used by the admin dashboard
	APIBaseURL string        `env:"AZAYA_API_BASE_URL" envDefault:"http://localhost:5000"`
	APITimeout time.Duration `env:"AZAYA_API_TIMEOUT" envDefault:"15s"`

	// Stats cache
	RedisURL    string `env:"AZAYA_REDIS_URL"`                        // Optional Redis URL for shared stats cache
	CachePrefix string `env:"AZAYA_CACHE_PREFIX" envDefault:"azaya:"` // Redis key prefix
	CacheTTL    int    `env:"AZAYA_CACHE_TTL" envDefault:"300"`       // Default cache TTL in seconds

	StatsInterval     time.Duration `env:"AZAYA_STATS_INTERVAL" envDefault:"30s"`
	ThumbnailMaxWidth int           `env:"AZAYA_THUMBNAIL_MAX_WIDTH" envDefault:"0"`
}

// IsDevelopment returns true if the application is running in development mode.
func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

// ServerAddr returns the full server address in host:port format.
func (c Config) ServerAddr() string {
	return fmt.Sprintf("%s:%d", c.ServerHost, c.ServerPort)
}

// UseRedisCache returns true if Redis caching is configured.
func (c Config) UseRedisCache() bool {
	return c.RedisURL != ""
}

// MailEnabled reports whether SMTP credentials are present.
func (c Config) MailEnabled() bool {
	return c.EmailUser != "" && c.EmailPass != ""
}

// Receiver returns the contact form recipient, falling back to the sending account.
func (c Config) Receiver() string {
	if c.ReceiverEmail != "" {
		return c.ReceiverEmail
	}
	return c.EmailUser
}

// MinSessionSecretLength is the minimum required length for the session secret.
const MinSessionSecretLength = 32

// Load parses environment variables and returns a Config struct.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if len(cfg.SessionSecret) < MinSessionSecretLength {
		return nil, fmt.Errorf("AZAYA_SESSION_SECRET must be at least %d bytes long, got %d bytes; "+
			"generate a secure secret with: openssl rand -base64 32",
			MinSessionSecretLength, len(cfg.SessionSecret))
	}

	for _, weak := range knownWeakSecrets {
		if cfg.SessionSecret == weak {
			return nil, errors.New("AZAYA_SESSION_SECRET is a known default value and must not be used; " +
				"generate a secure secret with: openssl rand -base64 32")
		}
	}

	if !hasMinimumEntropy(cfg.SessionSecret) {
		slog.Warn("AZAYA_SESSION_SECRET has low character diversity; " +
			"consider generating a random secret with: openssl rand -base64 32")
	}

	if cfg.StatsInterval < time.Second {
		return nil, fmt.Errorf("AZAYA_STATS_INTERVAL must be at least 1s, got %s", cfg.StatsInterval)
	}

	cfg.APIBaseURL = strings.TrimRight(cfg.APIBaseURL, "/")

	return cfg, nil
}

// hasMinimumEntropy checks that a secret contains at least 3 character classes
// (lowercase, uppercase, digits, special characters).
func hasMinimumEntropy(s string) bool {
	charTypes := 0
	if strings.ContainsAny(s, "abcdefghijklmnopqrstuvwxyz") {
		charTypes++
	}
	if strings.ContainsAny(s, "ABCDEFGHIJKLMNOPQRSTUVWXYZ") {
		charTypes++
	}
	if strings.ContainsAny(s, "0123456789") {
		charTypes++
	}
	if strings.ContainsAny(s, "!@#$%^&*()-_=+[]{}|;:,.<>?/~`'\"\\") {
		charTypes++
	}
	return charTypes >= 3
}
