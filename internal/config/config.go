package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Base URLs used when CLASSPILOT_API_URL is not set. Debug builds talk to the
// local backend, everything else to production.
const (
	DevBaseURL  = "http://localhost:4000/api/v1"
	ProdBaseURL = "https://api.classpilot.app/api/v1"
)

// Config is the environment-derived client configuration.
type Config struct {
	APIBaseURL     string `env:"CLASSPILOT_API_URL"`
	TimeoutSeconds int    `env:"CLASSPILOT_TIMEOUT_SECONDS" envDefault:"10"`
	Debug          bool   `env:"CLASSPILOT_DEBUG" envDefault:"false"`
	SessionDir     string `env:"CLASSPILOT_SESSION_DIR"`
	HTTPCache      bool   `env:"CLASSPILOT_HTTP_CACHE" envDefault:"false"`
}

// Load parses configuration from the environment.
func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return &cfg, nil
}

// BaseURL resolves the API root: explicit env value, else the dev URL in
// debug mode, else production.
func (c *Config) BaseURL() string {
	if c.APIBaseURL != "" {
		return c.APIBaseURL
	}
	if c.Debug {
		return DevBaseURL
	}
	return ProdBaseURL
}

// Timeout returns the per-request timeout.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}
