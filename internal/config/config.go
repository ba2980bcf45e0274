package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// Config holds the configuration for the calorie service.
// Environment variables are parsed from the ICALORIE_ prefix,
// e.g. ICALORIE_HTTP_PORT, ICALORIE_DB_DRIVER.
type Config struct {
	// HTTP Configuration
	HTTPPort int `envconfig:"HTTP_PORT" default:"8080"`

	// Storage Configuration. Driver is one of sqlite, postgres, memory;
	// "auto" resolves to sqlite for a zero-dependency local run.
	DBDriver    string `envconfig:"DB_DRIVER" default:"auto"`
	SQLitePath  string `envconfig:"SQLITE_PATH" default:"data/icalorie.db"`
	PostgresDSN string `envconfig:"POSTGRES_DSN" default:""`

	// Remote analysis endpoints (vision/LLM service behind serverless functions).
	AnalysisBaseURL        string `envconfig:"ANALYSIS_BASE_URL" default:"http://localhost:8788"`
	AnalysisTimeoutSeconds int    `envconfig:"ANALYSIS_TIMEOUT_SECONDS" default:"60"`

	// Health checking
	HealthIntervalSeconds     int `envconfig:"HEALTH_INTERVAL_SECONDS" default:"30"`
	HealthProbeTimeoutSeconds int `envconfig:"HEALTH_PROBE_TIMEOUT_SECONDS" default:"2"`
}

// ResolveDefaults validates DBDriver and derives it when set to "auto" or empty.
func (c *Config) ResolveDefaults() error {
	if c.DBDriver == "" || c.DBDriver == "auto" {
		c.DBDriver = "sqlite"
	}

	allowed := map[string]bool{"sqlite": true, "postgres": true, "memory": true}
	if !allowed[c.DBDriver] {
		return fmt.Errorf("unsupported DB_DRIVER: %s", c.DBDriver)
	}
	if c.DBDriver == "postgres" && c.PostgresDSN == "" {
		return fmt.Errorf("DB_DRIVER=postgres requires POSTGRES_DSN")
	}
	return nil
}

// New creates a new Config by parsing environment variables.
func New() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("ICALORIE", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment variables: %w", err)
	}
	if err := cfg.ResolveDefaults(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// GetHTTPAddr returns the HTTP server address.
func (c *Config) GetHTTPAddr() string {
	return fmt.Sprintf(":%d", c.HTTPPort)
}
