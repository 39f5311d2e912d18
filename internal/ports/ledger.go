package ports

import (
	"context"

	"debtrecon/internal/domain"
	"debtrecon/internal/money"
)

// ErrUnsupportedScope is returned by a LedgerSource that cannot interpret a scope token.
var ErrUnsupportedScope = domain.ErrUnsupportedScope

// LedgerSource resolves the raw aggregates the engine works on. Every fetch returns
// Zero when there are no matching rows.
//
//go:generate mockgen -destination=mocks/mock_ledger.go -package=mocks -source=ledger.go LedgerSource
type LedgerSource interface {
	// FetchInvoiceTotal sums invoice amounts of one representative.
	FetchInvoiceTotal(ctx context.Context, representativeID int64) (money.Money, error)
	// FetchAllocatedPaymentTotal sums allocated payments of one representative.
	// Unallocated payments are excluded.
	FetchAllocatedPaymentTotal(ctx context.Context, representativeID int64) (money.Money, error)

	// FetchLegacyDebtSum sums the denormalized debt column.
	FetchLegacyDebtSum(ctx context.Context, scope string) (money.Money, error)
	// FetchLedgerDebtSum recomputes debt from invoices and payment allocations.
	FetchLedgerDebtSum(ctx context.Context, scope string) (money.Money, error)
	// FetchCacheDebtSum sums the materialized remaining balances.
	FetchCacheDebtSum(ctx context.Context, scope string) (money.Money, error)

	// FetchAccountDrift returns legacy and ledger debt per representative.
	FetchAccountDrift(ctx context.Context, scope string) ([]domain.AccountDriftRow, error)
}
