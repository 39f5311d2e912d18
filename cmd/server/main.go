package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
	"golang.org/x/net/netutil"

	httpadapter "debtrecon/internal/adapters/http"
	pg "debtrecon/internal/adapters/postgres"
	"debtrecon/internal/config"
	"debtrecon/internal/logging"
	"debtrecon/internal/metrics"
	"debtrecon/internal/ports"
	debtsvc "debtrecon/internal/services/debt"
	driftsvc "debtrecon/internal/services/drift"
	"debtrecon/internal/workers/driftrunner"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, cfgErr := config.Load()
	logger, err := logging.New(cfg.Env, cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()
	if cfgErr != nil {
		return fmt.Errorf("config: %w", cfgErr)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	db, err := pg.Connect(ctx, cfg.DatabaseURL, pg.Options{MaxConns: int32(cfg.DBMaxConns), Logger: logger})
	if err != nil {
		return fmt.Errorf("db connect: %w", err)
	}
	defer db.Close()

	var _ ports.LedgerSource = db

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	met := metrics.New(reg)

	debts := debtsvc.New(db, debtsvc.Options{
		Concurrency: cfg.BulkConcurrency,
		Logger:      logger,
		Metrics:     met,
	})
	recon := driftsvc.New(db, driftsvc.Options{
		Money:         cfg.MoneyContext(),
		WarnThreshold: cfg.DriftWarnThreshold,
		FailThreshold: cfg.DriftFailThreshold,
		Logger:        logger,
		Metrics:       met,
	})

	srv := httpadapter.New(debts, recon, httpadapter.Options{
		Logger:   logger,
		Gatherer: reg,
		Health:   db,
		Timeout:  cfg.RequestTimeout,
	})
	httpSrv := &http.Server{
		Handler:           srv.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Optional background drift checks
	if cfg.DriftCheckInterval > 0 {
		go driftrunner.Run(ctx, recon, cfg.DriftCheckScope, cfg.DriftCheckInterval, logger)
	}

	ln, err := net.Listen("tcp", cfg.ListenAddr)
	if err != nil {
		return fmt.Errorf("listen: %w", err)
	}
	ln = netutil.LimitListener(ln, cfg.MaxConnections)

	errCh := make(chan error, 1)
	go func() { errCh <- httpSrv.Serve(ln) }()
	logger.Info("listening", zap.String("addr", cfg.ListenAddr), zap.Int("max_connections", cfg.MaxConnections))

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-sigCh:
		logger.Info("shutting down", zap.Stringer("signal", sig))
		cancel()
		shutdownCtx, stop := context.WithTimeout(context.Background(), 10*time.Second)
		defer stop()
		return httpSrv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server error: %w", err)
	}
}
