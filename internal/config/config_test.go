package config_test

import (
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/msomdec/songbook/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

var validSecret = strings.Repeat("s", 32)

func validConfig() config.Config {
	cfg := config.Default()
	cfg.JWTSecret = validSecret
	return cfg
}

func TestDefault_NeedsOnlySecret(t *testing.T) {
	cfg := config.Default()
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "jwt-secret is required")

	assert.NoError(t, validConfig().Validate())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.Config)
		want   string
	}{
		{"short secret", func(c *config.Config) { c.JWTSecret = "short" }, "at least 32 characters"},
		{"unknown driver", func(c *config.Config) { c.DBDriver = "mysql" }, "db-driver"},
		{"empty dsn", func(c *config.Config) { c.DBDSN = "" }, "db-dsn is required"},
		{"zero ttl", func(c *config.Config) { c.SessionTTL = 0 }, "session-ttl"},
		{"cost too low", func(c *config.Config) { c.BcryptCost = 3 }, "bcrypt-cost"},
		{"cost too high", func(c *config.Config) { c.BcryptCost = 15 }, "bcrypt-cost"},
		{"zero store timeout", func(c *config.Config) { c.StoreTimeout = 0 }, "store-timeout"},
		{"bad log level", func(c *config.Config) { c.LogLevel = "loud" }, "log level"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := validConfig()
			tc.mutate(&cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.want)
		})
	}
}

func TestValidate_ReportsEveryProblem(t *testing.T) {
	cfg := validConfig()
	cfg.JWTSecret = ""
	cfg.BcryptCost = 99

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "jwt-secret")
	assert.Contains(t, err.Error(), "bcrypt-cost")
}

func TestValidateStore_IgnoresSecret(t *testing.T) {
	assert.NoError(t, config.Default().ValidateStore())
}

func TestListenAddr(t *testing.T) {
	cfg := config.Default()
	cfg.Addr = "9000"
	assert.Equal(t, ":9000", cfg.ListenAddr())
	cfg.Addr = "127.0.0.1:9000"
	assert.Equal(t, "127.0.0.1:9000", cfg.ListenAddr())
}

func TestLevel(t *testing.T) {
	cfg := config.Default()
	cfg.LogLevel = "DEBUG"
	level, err := cfg.Level()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, level)
}

func parse(t *testing.T, args ...string) config.Config {
	t.Helper()
	cfg := config.Default()
	app := &cli.App{
		Name:   "songbook",
		Flags:  config.Flags(&cfg),
		Action: func(*cli.Context) error { return nil },
	}
	require.NoError(t, app.Run(append([]string{"songbook"}, args...)))
	return cfg
}

func TestFlags(t *testing.T) {
	cfg := parse(t,
		"--jwt-secret", validSecret,
		"--db-driver", "postgres",
		"--db-dsn", "postgres://localhost/songbook",
		"--session-ttl", "2h",
		"--bcrypt-cost", "6",
		"--cookie-secure=false",
	)

	assert.Equal(t, validSecret, cfg.JWTSecret)
	assert.Equal(t, config.DriverPostgres, cfg.DBDriver)
	assert.Equal(t, "postgres://localhost/songbook", cfg.DBDSN)
	assert.Equal(t, 2*time.Hour, cfg.SessionTTL)
	assert.Equal(t, 6, cfg.BcryptCost)
	assert.False(t, cfg.CookieSecure)
	assert.Equal(t, 5*time.Second, cfg.StoreTimeout)
	assert.NoError(t, cfg.Validate())
}

func TestFlags_Environment(t *testing.T) {
	t.Setenv("PORT", "3000")
	t.Setenv("JWT_SECRET", validSecret)
	t.Setenv("STORE_TIMEOUT", "250ms")
	t.Setenv("COOKIE_SECURE", "false")

	cfg := parse(t)

	assert.Equal(t, ":3000", cfg.ListenAddr())
	assert.Equal(t, validSecret, cfg.JWTSecret)
	assert.Equal(t, 250*time.Millisecond, cfg.StoreTimeout)
	assert.False(t, cfg.CookieSecure)
}
