package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// Config holds the application configuration. Environment variables use the
// NOMAD_ prefix, e.g. NOMAD_PORT, NOMAD_DB_PATH.
type Config struct {
	Port        int    `envconfig:"PORT" default:"8080"`
	Environment string `envconfig:"ENVIRONMENT" default:"development"`

	DBPath string `envconfig:"DB_PATH" default:"./data/nomad.db"`

	// JWTSecret enables bearer-token auth on the API when set.
	JWTSecret string `envconfig:"JWT_SECRET" default:""`

	RateLimitRPS   float64 `envconfig:"RATE_LIMIT_RPS" default:"20"`
	RateLimitBurst int     `envconfig:"RATE_LIMIT_BURST" default:"40"`

	// Remote LLM endpoint for the chat assistants. Chat routes return 503
	// when no base URL is configured.
	LLMBaseURL        string `envconfig:"LLM_BASE_URL" default:""`
	LLMAPIKey         string `envconfig:"LLM_API_KEY" default:""`
	LLMModel          string `envconfig:"LLM_MODEL" default:"gpt-4o-mini"`
	LLMTimeoutSeconds int    `envconfig:"LLM_TIMEOUT_SECONDS" default:"60"`

	// Default day-counting policy; every request can override it.
	CountingMode   string `envconfig:"COUNTING_MODE" default:"days"`
	PartialDayRule string `envconfig:"PARTIAL_DAY_RULE" default:"full"`
}

// New parses configuration from NOMAD_-prefixed environment variables.
func New() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("NOMAD", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment variables: %w", err)
	}
	if cfg.Port <= 0 || cfg.Port > 65535 {
		return nil, fmt.Errorf("invalid port %d", cfg.Port)
	}
	if cfg.RateLimitRPS <= 0 {
		return nil, fmt.Errorf("rate limit must be positive, got %v", cfg.RateLimitRPS)
	}
	return &cfg, nil
}

// IsDevelopment reports whether the service runs in development mode
// (pretty console logs, permissive defaults).
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}
