// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package cliparse

import (
	"errors"
	"flag"
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Supported database types
const (
	DatabaseSQLite   = "sqlite"
	DatabasePostgres = "postgres"
)

type Config struct {
	Port          int    `env:"PORT" envDefault:"3318"`
	DatabaseURL   string `env:"DATABASE_URL"`
	DatabaseType  string `env:"DATABASE_TYPE" envDefault:"sqlite"`
	SessionSecret string `env:"SESSION_SECRET"`

	// Bootstrap admin, created on startup when mobile and password are set
	AdminMobile   string `env:"ADMIN_MOBILE"`
	AdminPassword string `env:"ADMIN_PASSWORD"`
	AdminName     string `env:"ADMIN_NAME" envDefault:"Administrator"`

	RateLimitRPS   float64 `env:"RATE_LIMIT_RPS" envDefault:"5"`
	RateLimitBurst int     `env:"RATE_LIMIT_BURST" envDefault:"10"`

	// Honour X-Forwarded-For / X-Real-IP only when a reverse proxy sets them
	TrustProxy bool `env:"TRUST_PROXY"`
}

// ParseFlags reads the environment, then lets CLI flags override it
func ParseFlags(args []string) (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	fs := flag.NewFlagSet("volunteer-portal", flag.ContinueOnError)

	// Network config
	fs.IntVar(&cfg.Port, "p", cfg.Port, "Server port")
	fs.StringVar(&cfg.DatabaseURL, "d", cfg.DatabaseURL, "Database URL")
	fs.StringVar(&cfg.DatabaseType, "t", cfg.DatabaseType, "Database type (sqlite or postgres)")

	// Secrets (prefer env variables, but allow CLI for dev)
	fs.StringVar(&cfg.SessionSecret, "session-secret", cfg.SessionSecret, "Session token secret (prefer env)")
	fs.StringVar(&cfg.AdminMobile, "admin-mobile", cfg.AdminMobile, "Bootstrap admin mobile number")
	fs.StringVar(&cfg.AdminPassword, "admin-password", cfg.AdminPassword, "Bootstrap admin password (prefer env)")
	fs.StringVar(&cfg.AdminName, "admin-name", cfg.AdminName, "Bootstrap admin display name")

	fs.Float64Var(&cfg.RateLimitRPS, "rate-rps", cfg.RateLimitRPS, "Submissions per second allowed per client")
	fs.IntVar(&cfg.RateLimitBurst, "rate-burst", cfg.RateLimitBurst, "Submission burst allowed per client")
	fs.BoolVar(&cfg.TrustProxy, "trust-proxy", cfg.TrustProxy, "Trust client IP headers from a reverse proxy")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if cfg.Port <= 0 || cfg.Port > 65535 {
		return Config{}, fmt.Errorf("invalid port %d", cfg.Port)
	}
	if cfg.DatabaseURL == "" {
		return Config{}, errors.New("database URL required (use -d or DATABASE_URL env)")
	}
	if cfg.DatabaseType != DatabaseSQLite && cfg.DatabaseType != DatabasePostgres {
		return Config{}, fmt.Errorf("unsupported database type %q", cfg.DatabaseType)
	}

	// Secrets - MUST be provided
	if cfg.SessionSecret == "" {
		return Config{}, errors.New("SESSION_SECRET required")
	}

	if cfg.RateLimitRPS <= 0 || cfg.RateLimitBurst <= 0 {
		return Config{}, errors.New("rate limit values must be positive")
	}

	return cfg, nil
}
