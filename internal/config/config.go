// Package config holds the process configuration. It is built once at
// startup from flags and environment variables and never mutated after.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/urfave/cli/v2"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"

	MinSecretLength = 32
	MinBcryptCost   = 4
	MaxBcryptCost   = 14
)

// Config is the complete runtime configuration.
type Config struct {
	Addr         string
	DBDriver     string
	DBDSN        string
	JWTSecret    string
	SessionTTL   time.Duration
	BcryptCost   int
	CookieSecure bool
	StoreTimeout time.Duration
	LogLevel     string
}

// Default returns the configuration used when nothing is overridden.
// JWTSecret has no default and must always be supplied.
func Default() Config {
	return Config{
		Addr:         ":8080",
		DBDriver:     DriverSQLite,
		DBDSN:        "songbook.db",
		SessionTTL:   30 * 24 * time.Hour,
		BcryptCost:   10,
		CookieSecure: true,
		StoreTimeout: 5 * time.Second,
		LogLevel:     "info",
	}
}

// Flags binds cfg to command-line flags. The current values of cfg are the
// flag defaults; each flag can also be set from its environment variable.
func Flags(cfg *Config) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "addr",
			Usage:       "Address to listen on (a bare port is accepted)",
			EnvVars:     []string{"ADDR", "PORT"},
			Value:       cfg.Addr,
			Destination: &cfg.Addr,
		},
		&cli.StringFlag{
			Name:        "db-driver",
			Usage:       "Storage backend: sqlite or postgres",
			EnvVars:     []string{"DATABASE_DRIVER"},
			Value:       cfg.DBDriver,
			Destination: &cfg.DBDriver,
		},
		&cli.StringFlag{
			Name:        "db-dsn",
			Usage:       "SQLite file path or PostgreSQL connection string",
			EnvVars:     []string{"DATABASE_URL"},
			Value:       cfg.DBDSN,
			Destination: &cfg.DBDSN,
		},
		&cli.StringFlag{
			Name:        "jwt-secret",
			Usage:       "HMAC secret for session tokens (at least 32 characters)",
			EnvVars:     []string{"JWT_SECRET"},
			Value:       cfg.JWTSecret,
			Destination: &cfg.JWTSecret,
		},
		&cli.DurationFlag{
			Name:        "session-ttl",
			Usage:       "Lifetime of a session token",
			EnvVars:     []string{"SESSION_TTL"},
			Value:       cfg.SessionTTL,
			Destination: &cfg.SessionTTL,
		},
		&cli.IntFlag{
			Name:        "bcrypt-cost",
			Usage:       fmt.Sprintf("bcrypt work factor (%d-%d)", MinBcryptCost, MaxBcryptCost),
			EnvVars:     []string{"BCRYPT_COST"},
			Value:       cfg.BcryptCost,
			Destination: &cfg.BcryptCost,
		},
		&cli.BoolFlag{
			Name:        "cookie-secure",
			Usage:       "Mark the session cookie Secure; disable only for local development",
			EnvVars:     []string{"COOKIE_SECURE"},
			Value:       cfg.CookieSecure,
			Destination: &cfg.CookieSecure,
		},
		&cli.DurationFlag{
			Name:        "store-timeout",
			Usage:       "Upper bound for a single storage operation",
			EnvVars:     []string{"STORE_TIMEOUT"},
			Value:       cfg.StoreTimeout,
			Destination: &cfg.StoreTimeout,
		},
		&cli.StringFlag{
			Name:        "log-level",
			Usage:       "debug, info, warn or error",
			EnvVars:     []string{"LOG_LEVEL"},
			Value:       cfg.LogLevel,
			Destination: &cfg.LogLevel,
		},
	}
}

// ListenAddr returns Addr with a bare port turned into ":port".
func (c Config) ListenAddr() string {
	if c.Addr != "" && !strings.Contains(c.Addr, ":") {
		return ":" + c.Addr
	}
	return c.Addr
}

// Level parses LogLevel.
func (c Config) Level() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("invalid log level %q", c.LogLevel)
	}
	return level, nil
}

// ValidateStore checks only the settings needed to open the database.
func (c Config) ValidateStore() error {
	var errs []error
	switch c.DBDriver {
	case DriverSQLite, DriverPostgres:
	default:
		errs = append(errs, fmt.Errorf("db-driver must be %q or %q, got %q", DriverSQLite, DriverPostgres, c.DBDriver))
	}
	if c.DBDSN == "" {
		errs = append(errs, errors.New("db-dsn is required"))
	}
	if c.StoreTimeout <= 0 {
		errs = append(errs, errors.New("store-timeout must be positive"))
	}
	return errors.Join(errs...)
}

// Validate checks every setting and reports all problems at once.
func (c Config) Validate() error {
	errs := []error{c.ValidateStore()}
	if c.ListenAddr() == "" {
		errs = append(errs, errors.New("addr is required"))
	}
	if c.JWTSecret == "" {
		errs = append(errs, errors.New("jwt-secret is required"))
	} else if len(c.JWTSecret) < MinSecretLength {
		errs = append(errs, fmt.Errorf("jwt-secret must be at least %d characters", MinSecretLength))
	}
	if c.SessionTTL <= 0 {
		errs = append(errs, errors.New("session-ttl must be positive"))
	}
	if c.BcryptCost < MinBcryptCost || c.BcryptCost > MaxBcryptCost {
		errs = append(errs, fmt.Errorf("bcrypt-cost must be between %d and %d, got %d", MinBcryptCost, MaxBcryptCost, c.BcryptCost))
	}
	if _, err := c.Level(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}
