package main

import (
	"context"

	"go.uber.org/zap"

	"debtrecon/internal/adapters/memory"
	pg "debtrecon/internal/adapters/postgres"
	"debtrecon/internal/client"
	"debtrecon/internal/domain"
	"debtrecon/internal/money"
	"debtrecon/internal/ports"
	"debtrecon/internal/services/debt"
	"debtrecon/internal/services/drift"
)

// backend is what the commands run against.
type backend interface {
	BulkDebt(ctx context.Context, ids []int64) (*domain.BulkDebtVerification, error)
	Drift(ctx context.Context, scope string) (*domain.ReconciliationResult, error)
	Breakdown(ctx context.Context, scope string, limit int) ([]domain.AccountDrift, error)
	Classify(ctx context.Context, amount money.Money) (domain.DebtTier, error)
	Close()
}

type remote struct{ *client.Client }

func (remote) Close() {}

type local struct {
	debts ports.DebtCalculator
	recon ports.DriftReconciler
	close func()
}

func newLocal(source ports.LedgerSource, log *zap.Logger, close func()) *local {
	return &local{
		debts: debt.New(source, debt.Options{Logger: log}),
		recon: drift.New(source, drift.Options{Logger: log}),
		close: close,
	}
}

func (l *local) BulkDebt(ctx context.Context, ids []int64) (*domain.BulkDebtVerification, error) {
	return l.debts.ComputeBulk(ctx, ids)
}

func (l *local) Drift(ctx context.Context, scope string) (*domain.ReconciliationResult, error) {
	return l.recon.Reconcile(ctx, scope)
}

func (l *local) Breakdown(ctx context.Context, scope string, limit int) ([]domain.AccountDrift, error) {
	return l.recon.Breakdown(ctx, scope, limit)
}

func (l *local) Classify(_ context.Context, amount money.Money) (domain.DebtTier, error) {
	if amount.IsNegative() {
		return 0, domain.InvalidInputError("amount must not be negative")
	}
	return domain.Classify(amount), nil
}

func (l *local) Close() {
	if l.close != nil {
		l.close()
	}
}

func openBackend(ctx context.Context, o *rootOptions) (backend, error) {
	switch {
	case o.server != "":
		return remote{client.New(o.server, client.Options{Timeout: o.timeout, Retries: 2})}, nil
	case o.demo:
		return newLocal(memory.Demo(), o.log, nil), nil
	default:
		db, err := o.connect(ctx)
		if err != nil {
			return nil, err
		}
		return newLocal(db, o.log, db.Close), nil
	}
}

func (o *rootOptions) connect(ctx context.Context) (*pg.DB, error) {
	if o.databaseURL == "" {
		return nil, domain.InvalidInputError("no backend: pass --server, --demo or --database-url (DATABASE_URL)")
	}
	return pg.Connect(ctx, o.databaseURL, pg.Options{MaxConns: 4, PingRetries: 2, Logger: o.log})
}
