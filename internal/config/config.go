// Package config loads runtime settings from the environment and an
// optional .env file.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/alexanderramin/plantmap/internal/domain"
	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds every PLANTMAP_* setting.
type Config struct {
	Role      string `env:"PLANTMAP_ROLE"       envDefault:"engineer"`
	LogLevel  string `env:"PLANTMAP_LOG_LEVEL"  envDefault:"info"`
	LogFormat string `env:"PLANTMAP_LOG_FORMAT" envDefault:"console"`
	LogFile   string `env:"PLANTMAP_LOG_FILE"`
	DB        string `env:"PLANTMAP_DB"         envDefault:":memory:"`
	// Now pins the clock (RFC3339) for scripted runs.
	Now string `env:"PLANTMAP_NOW"`

	role domain.Role
	now  time.Time
}

// Load reads the given .env files (".env" when none are named), then parses
// the environment. Missing .env files are not an error.
func Load(envFiles ...string) (*Config, error) {
	if err := godotenv.Load(envFiles...); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("loading env file: %w", err)
	}
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Validate checks enumerated settings and caches parsed values.
func (c *Config) Validate() error {
	role, err := domain.ParseRole(strings.ToLower(strings.TrimSpace(c.Role)))
	if err != nil {
		return fmt.Errorf("PLANTMAP_ROLE: %w", err)
	}
	c.role = role

	switch strings.ToLower(c.LogFormat) {
	case "console", "json":
	default:
		return fmt.Errorf("PLANTMAP_LOG_FORMAT: unknown format %q (expected console or json)", c.LogFormat)
	}

	if s := strings.TrimSpace(c.Now); s != "" {
		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			return fmt.Errorf("PLANTMAP_NOW: %w", err)
		}
		c.now = t
	}
	return nil
}

// ActorRole returns the validated starting role.
func (c *Config) ActorRole() domain.Role {
	if c.role == "" {
		return domain.RoleEngineer
	}
	return c.role
}

// Clock returns a fixed clock when PLANTMAP_NOW is set and time.Now otherwise.
func (c *Config) Clock() func() time.Time {
	if c.now.IsZero() {
		return time.Now
	}
	fixed := c.now
	return func() time.Time { return fixed }
}
