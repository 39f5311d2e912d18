package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/hashicorp/go-multierror"

	"debtrecon/internal/money"
	"debtrecon/internal/ports"
	"debtrecon/internal/services/drift"
)

type Config struct {
	Env         string
	ListenAddr  string
	DatabaseURL string
	LogLevel    string

	// DBMaxConns caps the pgx pool. MaxConnections caps accepted HTTP connections.
	DBMaxConns     int
	MaxConnections int

	BulkConcurrency  int
	DecimalPrecision int

	DriftWarnThreshold float64
	DriftFailThreshold float64
	// DriftCheckInterval enables the background drift runner when positive.
	DriftCheckInterval time.Duration
	DriftCheckScope    string

	RequestTimeout time.Duration
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// Load reads the environment. The returned Config is always populated; the error lists
// unparseable values and failed validation together.
func Load() (Config, error) {
	var errs *multierror.Error
	cfg := Config{
		Env:                getenv("APP_ENV", "development"),
		ListenAddr:         getenv("LISTEN_ADDR", ":8080"),
		DatabaseURL:        os.Getenv("DATABASE_URL"),
		LogLevel:           getenv("LOG_LEVEL", "info"),
		DBMaxConns:         getenvInt("DB_MAX_CONNS", 20, &errs),
		MaxConnections:     getenvInt("MAX_CONNECTIONS", 1000, &errs),
		BulkConcurrency:    getenvInt("BULK_CONCURRENCY", 8, &errs),
		DecimalPrecision:   getenvInt("DECIMAL_PRECISION", int(money.DefaultPrecision), &errs),
		DriftWarnThreshold: getenvFloat("DRIFT_WARN_THRESHOLD", 0.0005, &errs),
		DriftFailThreshold: getenvFloat("DRIFT_FAIL_THRESHOLD", 0.005, &errs),
		DriftCheckInterval: getenvDuration("DRIFT_CHECK_INTERVAL", 0, &errs),
		DriftCheckScope:    getenv("DRIFT_CHECK_SCOPE", "global"),
		RequestTimeout:     getenvDuration("REQUEST_TIMEOUT", 30*time.Second, &errs),
	}
	if err := cfg.Validate(); err != nil {
		errs = multierror.Append(errs, err)
	}
	return cfg, errs.ErrorOrNil()
}

// Validate reports every invalid field at once.
func (c Config) Validate() error {
	var errs *multierror.Error
	if c.DatabaseURL == "" {
		errs = multierror.Append(errs, fmt.Errorf("DATABASE_URL not set"))
	}
	if c.DBMaxConns <= 0 {
		errs = multierror.Append(errs, fmt.Errorf("DB_MAX_CONNS must be positive, got %d", c.DBMaxConns))
	}
	if c.MaxConnections <= 0 {
		errs = multierror.Append(errs, fmt.Errorf("MAX_CONNECTIONS must be positive, got %d", c.MaxConnections))
	}
	if c.BulkConcurrency <= 0 {
		errs = multierror.Append(errs, fmt.Errorf("BULK_CONCURRENCY must be positive, got %d", c.BulkConcurrency))
	}
	if c.DecimalPrecision <= 0 || c.DecimalPrecision > 100 {
		errs = multierror.Append(errs, fmt.Errorf("DECIMAL_PRECISION must be in 1..100, got %d", c.DecimalPrecision))
	}
	if c.DriftWarnThreshold <= 0 {
		errs = multierror.Append(errs, fmt.Errorf("DRIFT_WARN_THRESHOLD must be positive, got %g", c.DriftWarnThreshold))
	}
	if c.DriftFailThreshold < c.DriftWarnThreshold {
		errs = multierror.Append(errs, fmt.Errorf("DRIFT_FAIL_THRESHOLD %g is below DRIFT_WARN_THRESHOLD %g", c.DriftFailThreshold, c.DriftWarnThreshold))
	}
	if c.DriftCheckInterval < 0 {
		errs = multierror.Append(errs, fmt.Errorf("DRIFT_CHECK_INTERVAL must not be negative, got %s", c.DriftCheckInterval))
	}
	if err := drift.ValidateScope(c.DriftCheckScope); err != nil {
		errs = multierror.Append(errs, fmt.Errorf("DRIFT_CHECK_SCOPE: %w", err))
	} else if _, err := ports.ParseScope(c.DriftCheckScope); err != nil {
		errs = multierror.Append(errs, fmt.Errorf("DRIFT_CHECK_SCOPE: %w", err))
	}
	if c.RequestTimeout <= 0 {
		errs = multierror.Append(errs, fmt.Errorf("REQUEST_TIMEOUT must be positive, got %s", c.RequestTimeout))
	}
	return errs.ErrorOrNil()
}

// MoneyContext returns the arithmetic settings for ratio computations.
func (c Config) MoneyContext() money.Context {
	return money.NewContext(int32(c.DecimalPrecision))
}

func getenvInt(key string, def int, errs **multierror.Error) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	out, err := strconv.Atoi(v)
	if err != nil {
		*errs = multierror.Append(*errs, fmt.Errorf("%s: %w", key, err))
		return def
	}
	return out
}

func getenvFloat(key string, def float64, errs **multierror.Error) float64 {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	out, err := strconv.ParseFloat(v, 64)
	if err != nil {
		*errs = multierror.Append(*errs, fmt.Errorf("%s: %w", key, err))
		return def
	}
	return out
}

func getenvDuration(key string, def time.Duration, errs **multierror.Error) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	out, err := time.ParseDuration(v)
	if err != nil {
		*errs = multierror.Append(*errs, fmt.Errorf("%s: %w", key, err))
		return def
	}
	return out
}
