package config

import (
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFlagSet(t *testing.T, args ...string) *pflag.FlagSet {
	t.Helper()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	RegisterFlags(fs)
	require.NoError(t, fs.Parse(args))
	return fs
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(newFlagSet(t))

	require.NoError(t, err)
	assert.Equal(t, 8000, cfg.Port)
	assert.Equal(t, "./northwind.db", cfg.DBPath)
	assert.Equal(t, 10, cfg.DBMaxConns)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.True(t, cfg.LogCompress)
	assert.Equal(t, 0, cfg.RateLimit)
	assert.Equal(t, DefaultTimeoutConfig(), cfg.Timeouts)
	assert.Equal(t, ":8000", cfg.Address())
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("NORTHWIND_PORT", "9090")
	t.Setenv("NORTHWIND_DB", "/data/northwind.db")
	t.Setenv("NORTHWIND_LOG_LEVEL", "debug")
	t.Setenv("NORTHWIND_REQUEST_TIMEOUT", "5s")
	t.Setenv("NORTHWIND_RATE_LIMIT", "120")

	cfg, err := Load(newFlagSet(t))

	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, "/data/northwind.db", cfg.DBPath)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 5*time.Second, cfg.Timeouts.Request)
	assert.Equal(t, 120, cfg.RateLimit)
}

func TestLoadFlagsOverrideEnv(t *testing.T) {
	t.Setenv("NORTHWIND_PORT", "9090")

	cfg, err := Load(newFlagSet(t, "--port", "7070", "--bind", "127.0.0.1"))

	require.NoError(t, err)
	assert.Equal(t, 7070, cfg.Port)
	assert.Equal(t, "127.0.0.1:7070", cfg.Address())
}

func TestLoadValidationErrors(t *testing.T) {
	testCases := []struct {
		name string
		args []string
	}{
		{name: "port out of range", args: []string{"--port", "70000"}},
		{name: "invalid bind address", args: []string{"--bind", "localhost"}},
		{name: "invalid subnet", args: []string{"--allow-subnet", "10.0.0.0"}},
		{name: "unknown log level", args: []string{"--log-level", "verbose"}},
		{name: "zero timeout", args: []string{"--request-timeout", "0s"}},
		{name: "negative rate limit", args: []string{"--rate-limit", "-1"}},
		{name: "empty database path", args: []string{"--db", ""}},
		{name: "no connections", args: []string{"--db-max-conns", "0"}},
		{name: "invalid maintenance schedule", args: []string{"--maintenance-schedule", "not a cron"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg, err := Load(newFlagSet(t, tc.args...))

			assert.Error(t, err)
			assert.Contains(t, err.Error(), "validation failed")
			assert.Nil(t, cfg)
		})
	}
}

func TestLoadMaintenanceSchedule(t *testing.T) {
	for _, schedule := range []string{"0 3 * * *", "@daily", "*/15 * * * *"} {
		cfg, err := Load(newFlagSet(t, "--maintenance-schedule", schedule))

		require.NoError(t, err, schedule)
		assert.Equal(t, schedule, cfg.MaintenanceSchedule)
	}
}
