// Package driftrunner periodically reconciles one scope in the background.
package driftrunner

import (
	"context"
	"time"

	"go.uber.org/zap"

	"debtrecon/internal/domain"
	"debtrecon/internal/logging"
	"debtrecon/internal/ports"
)

// Run reconciles scope once per interval until ctx is done. A run never overlaps the
// previous one; a slow check delays the next tick instead.
func Run(ctx context.Context, recon ports.DriftReconciler, scope string, interval time.Duration, log *zap.Logger) {
	if interval <= 0 {
		return
	}
	log = logging.OrNop(log).Named("driftrunner")
	log.Info("drift checks started", zap.String("scope", scope), zap.Duration("interval", interval))

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			log.Info("drift checks stopped")
			return
		case <-ticker.C:
			checkCtx, cancel := context.WithTimeout(ctx, interval)
			_, _ = RunOnce(checkCtx, recon, scope, log)
			cancel()
		}
	}
}

// RunOnce performs a single check. The reconciler already records metrics and logs
// the outcome; RunOnce only adds the failure context.
func RunOnce(ctx context.Context, recon ports.DriftReconciler, scope string, log *zap.Logger) (*domain.ReconciliationResult, error) {
	res, err := recon.Reconcile(ctx, scope)
	if err != nil {
		if ctx.Err() == nil {
			logging.OrNop(log).Warn("drift check failed", zap.String("scope", scope), zap.Error(err))
		}
		return nil, err
	}
	return res, nil
}
