package ports

import (
	"context"

	"debtrecon/internal/domain"
)

// DebtCalculator computes outstanding debt for representatives.
type DebtCalculator interface {
	Compute(ctx context.Context, representativeID int64) (domain.RepresentativeDebt, error)
	ComputeBulk(ctx context.Context, representativeIDs []int64) (*domain.BulkDebtVerification, error)
}

// DriftReconciler compares the legacy, ledger and cache views of total debt.
//
//go:generate mockgen -destination=mocks/mock_ports.go -package=mocks -source=ports.go DebtCalculator DriftReconciler
type DriftReconciler interface {
	Reconcile(ctx context.Context, scope string) (*domain.ReconciliationResult, error)
	Breakdown(ctx context.Context, scope string, limit int) ([]domain.AccountDrift, error)
}
