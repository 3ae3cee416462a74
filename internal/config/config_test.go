package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()

	for key, value := range map[string]string{
		"RFCBOARD_PRIMARY__ENV":                 "local",
		"RFCBOARD_SERVER__PORT":                 "8080",
		"RFCBOARD_SERVER__READ_TIMEOUT":         "30",
		"RFCBOARD_SERVER__WRITE_TIMEOUT":        "30",
		"RFCBOARD_SERVER__IDLE_TIMEOUT":         "60",
		"RFCBOARD_SERVER__CORS_ALLOWED_ORIGINS": "http://localhost:3000,https://rfc.example.org",
		"RFCBOARD_DATABASE__HOST":               "localhost",
		"RFCBOARD_DATABASE__PORT":               "5432",
		"RFCBOARD_DATABASE__USER":               "rfcboard",
		"RFCBOARD_DATABASE__PASSWORD":           "p@ss:word",
		"RFCBOARD_DATABASE__NAME":               "rfcboard",
		"RFCBOARD_DATABASE__SSL_MODE":           "disable",
		"RFCBOARD_DATABASE__MAX_OPEN_CONNS":     "10",
		"RFCBOARD_DATABASE__MAX_IDLE_CONNS":     "5",
		"RFCBOARD_DATABASE__CONN_MAX_LIFETIME":  "300",
		"RFCBOARD_DATABASE__CONN_MAX_IDLE_TIME": "60",
	} {
		t.Setenv(key, value)
	}
}

func TestLoad(t *testing.T) {
	t.Run("nested keys and lists", func(t *testing.T) {
		setRequiredEnv(t)

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "local", cfg.Primary.Env)
		assert.Equal(t, "disable", cfg.Database.SSLMode)
		assert.Equal(t, 5432, cfg.Database.Port)
		assert.Equal(t, []string{"http://localhost:3000", "https://rfc.example.org"}, cfg.Server.CORSAllowedOrigins)
	})

	t.Run("defaults", func(t *testing.T) {
		setRequiredEnv(t)

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, DefaultVoteDuration, cfg.Voting.DefaultDuration)
		require.NotNil(t, cfg.Observability)
		assert.Equal(t, ServiceName, cfg.Observability.ServiceName)
		assert.Equal(t, "local", cfg.Observability.Environment)
		assert.Equal(t, []string{"database"}, cfg.Observability.HealthChecks.Checks)
	})

	t.Run("vote duration", func(t *testing.T) {
		setRequiredEnv(t)
		t.Setenv("RFCBOARD_VOTING__DEFAULT_DURATION", "72h")

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, 72*time.Hour, cfg.Voting.DefaultDuration)
	})

	t.Run("missing required value", func(t *testing.T) {
		setRequiredEnv(t)
		t.Setenv("RFCBOARD_DATABASE__HOST", "")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "config validation failed")
	})
}

func TestDSN(t *testing.T) {
	cfg := DatabaseConfig{
		Host:     "::1",
		Port:     5432,
		User:     "rfcboard",
		Password: "p@ss:word",
		Name:     "rfcboard",
		SSLMode:  "disable",
	}

	assert.Equal(t, "postgres://rfcboard:p%40ss%3Aword@[::1]:5432/rfcboard?sslmode=disable", cfg.DSN())
}

func TestObservabilityValidate(t *testing.T) {
	cfg := DefaultObservabilityConfig()
	require.NoError(t, cfg.Validate())

	cfg.Logging.Level = "verbose"
	assert.EqualError(t, cfg.Validate(), "invalid logging level: verbose (must be one of: debug, info, warn, error)")

	cfg = DefaultObservabilityConfig()
	cfg.HealthChecks.Checks = []string{"database", "redis"}
	assert.EqualError(t, cfg.Validate(), "unknown health check: redis")
}

func TestGetLogLevel(t *testing.T) {
	cfg := DefaultObservabilityConfig()
	cfg.Logging.Level = ""

	cfg.Environment = "production"
	assert.Equal(t, "info", cfg.GetLogLevel())

	cfg.Environment = "development"
	assert.Equal(t, "debug", cfg.GetLogLevel())

	cfg.Logging.Level = "warn"
	assert.Equal(t, "warn", cfg.GetLogLevel())
}
