package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds the configuration for the application.
// Environment variables are parsed from the COACH_ prefix,
// e.g. COACH_HTTP_PORT, COACH_GEMINI_API_KEY.
type Config struct {
	HTTPPort int    `envconfig:"HTTP_PORT" default:"8080"`
	DBPath   string `envconfig:"DB_PATH" default:"data/coach.db"`

	// Gemini. An empty key is not a startup error: the server still boots
	// and serves non-AI routes, and generation requests fail with a
	// configuration error instead.
	GeminiAPIKey string `envconfig:"GEMINI_API_KEY" default:""`
	GeminiModel  string `envconfig:"GEMINI_MODEL" default:"gemini-2.5-flash"`

	// JWTSecret verifies the bearer tokens the API trusts for user
	// identity. Required by the HTTP server, not by the bot.
	JWTSecret string `envconfig:"JWT_SECRET" default:""`

	// Timezone anchors "today" for window and evaluation-date resolution.
	Timezone string `envconfig:"TIMEZONE" default:"Asia/Seoul"`

	// Telegram surface (only used by coach-bot).
	TelegramBotToken    string `envconfig:"TELEGRAM_BOT_TOKEN" default:""`
	TelegramAllowUserID int64  `envconfig:"TELEGRAM_ALLOW_USER_ID" default:"0"`
	TelegramUserEmail   string `envconfig:"TELEGRAM_USER_EMAIL" default:""`
}

// NewFromEnv creates a new Config object from environment variables.
func NewFromEnv() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("COACH", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment variables: %w", err)
	}
	if _, err := cfg.Location(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Location resolves the configured timezone.
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid COACH_TIMEZONE %q: %w", c.Timezone, err)
	}
	return loc, nil
}
