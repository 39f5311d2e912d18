package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var keys = []string{
	"APP_ENV", "LISTEN_ADDR", "DATABASE_URL", "LOG_LEVEL", "DB_MAX_CONNS", "MAX_CONNECTIONS",
	"BULK_CONCURRENCY", "DECIMAL_PRECISION", "DRIFT_WARN_THRESHOLD", "DRIFT_FAIL_THRESHOLD",
	"DRIFT_CHECK_INTERVAL", "DRIFT_CHECK_SCOPE", "REQUEST_TIMEOUT",
}

func setEnv(t *testing.T, env map[string]string) {
	t.Helper()
	for _, k := range keys {
		t.Setenv(k, "")
	}
	for k, v := range env {
		t.Setenv(k, v)
	}
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name     string
		env      map[string]string
		validate func(*testing.T, Config)
	}{
		{
			name: "default values",
			env:  map[string]string{"DATABASE_URL": "postgres://localhost/recon"},
			validate: func(t *testing.T, cfg Config) {
				assert.Equal(t, "development", cfg.Env)
				assert.Equal(t, ":8080", cfg.ListenAddr)
				assert.Equal(t, 20, cfg.DBMaxConns)
				assert.Equal(t, 1000, cfg.MaxConnections)
				assert.Equal(t, 8, cfg.BulkConcurrency)
				assert.Equal(t, 28, cfg.DecimalPrecision)
				assert.Equal(t, 0.0005, cfg.DriftWarnThreshold)
				assert.Equal(t, 0.005, cfg.DriftFailThreshold)
				assert.Zero(t, cfg.DriftCheckInterval)
				assert.Equal(t, "global", cfg.DriftCheckScope)
				assert.Equal(t, 30*time.Second, cfg.RequestTimeout)
				assert.Equal(t, int32(28), cfg.MoneyContext().Precision)
			},
		},
		{
			name: "custom values",
			env: map[string]string{
				"APP_ENV":              "production",
				"LISTEN_ADDR":          ":9090",
				"DATABASE_URL":         "postgres://db.prod/recon",
				"DB_MAX_CONNS":         "50",
				"BULK_CONCURRENCY":     "32",
				"DECIMAL_PRECISION":    "40",
				"DRIFT_WARN_THRESHOLD": "0.001",
				"DRIFT_FAIL_THRESHOLD": "0.01",
				"DRIFT_CHECK_INTERVAL": "5m",
				"DRIFT_CHECK_SCOPE":    "representative:7",
				"REQUEST_TIMEOUT":      "2s",
			},
			validate: func(t *testing.T, cfg Config) {
				assert.Equal(t, "production", cfg.Env)
				assert.Equal(t, ":9090", cfg.ListenAddr)
				assert.Equal(t, 50, cfg.DBMaxConns)
				assert.Equal(t, 32, cfg.BulkConcurrency)
				assert.Equal(t, int32(40), cfg.MoneyContext().Precision)
				assert.Equal(t, 0.01, cfg.DriftFailThreshold)
				assert.Equal(t, 5*time.Minute, cfg.DriftCheckInterval)
				assert.Equal(t, "representative:7", cfg.DriftCheckScope)
				assert.Equal(t, 2*time.Second, cfg.RequestTimeout)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setEnv(t, tt.env)
			cfg, err := Load()
			require.NoError(t, err)
			tt.validate(t, cfg)
		})
	}
}

func TestLoadReportsEveryProblem(t *testing.T) {
	setEnv(t, map[string]string{
		"DB_MAX_CONNS":         "many",
		"BULK_CONCURRENCY":     "0",
		"DRIFT_WARN_THRESHOLD": "0.01",
		"DRIFT_FAIL_THRESHOLD": "0.001",
		"REQUEST_TIMEOUT":      "soon",
	})

	cfg, err := Load()
	require.Error(t, err)
	msg := err.Error()
	assert.Contains(t, msg, "DB_MAX_CONNS")
	assert.Contains(t, msg, "REQUEST_TIMEOUT")
	assert.Contains(t, msg, "DATABASE_URL not set")
	assert.Contains(t, msg, "BULK_CONCURRENCY must be positive")
	assert.Contains(t, msg, "below DRIFT_WARN_THRESHOLD")

	// Unparseable values keep their defaults.
	assert.Equal(t, 20, cfg.DBMaxConns)
	assert.Equal(t, 30*time.Second, cfg.RequestTimeout)
}

func TestLoadRejectsDriftCheckScope(t *testing.T) {
	for _, scope := range []string{"bad scope!", "region:eu", "representative:0"} {
		t.Run(scope, func(t *testing.T) {
			setEnv(t, map[string]string{
				"DATABASE_URL":         "postgres://localhost/recon",
				"DRIFT_CHECK_INTERVAL": "1m",
				"DRIFT_CHECK_SCOPE":    scope,
			})
			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), "DRIFT_CHECK_SCOPE")
		})
	}
}
