package postgres

import (
	"context"
	"fmt"

	"debtrecon/internal/domain"
	"debtrecon/internal/money"
	"debtrecon/internal/ports"
)

var _ ports.LedgerSource = (*DB)(nil)

// Aggregates are cast to text so NUMERIC values reach money.Parse without passing
// through a float.

func (db *DB) FetchInvoiceTotal(ctx context.Context, representativeID int64) (money.Money, error) {
	return db.queryMoney(ctx, "invoice total", `
		SELECT COALESCE(SUM(amount), 0)::text
		FROM invoices
		WHERE representative_id = $1
	`, representativeID)
}

func (db *DB) FetchAllocatedPaymentTotal(ctx context.Context, representativeID int64) (money.Money, error) {
	return db.queryMoney(ctx, "allocated payment total", `
		SELECT COALESCE(SUM(amount), 0)::text
		FROM payments
		WHERE representative_id = $1 AND is_allocated
	`, representativeID)
}

func (db *DB) FetchLegacyDebtSum(ctx context.Context, scope string) (money.Money, error) {
	where, args, err := scopeFilter(scope)
	if err != nil {
		return money.Zero, err
	}
	return db.queryMoney(ctx, "legacy debt sum", `
		SELECT COALESCE(SUM(r.total_debt), 0)::text
		FROM representatives r
		WHERE `+where, args...)
}

// FetchLedgerDebtSum sums invoices and allocations separately; joining them would
// repeat an invoice amount once per allocation.
func (db *DB) FetchLedgerDebtSum(ctx context.Context, scope string) (money.Money, error) {
	where, args, err := scopeFilter(scope)
	if err != nil {
		return money.Zero, err
	}
	return db.queryMoney(ctx, "ledger debt sum", `
		SELECT (
			COALESCE((
				SELECT SUM(i.amount)
				FROM invoices i
				JOIN representatives r ON r.id = i.representative_id
				WHERE `+where+`
			), 0)
			-
			COALESCE((
				SELECT SUM(pa.allocated_amount)
				FROM payment_allocations pa
				JOIN invoices i ON i.id = pa.invoice_id
				JOIN representatives r ON r.id = i.representative_id
				WHERE `+where+`
			), 0)
		)::text
	`, args...)
}

func (db *DB) FetchCacheDebtSum(ctx context.Context, scope string) (money.Money, error) {
	where, args, err := scopeFilter(scope)
	if err != nil {
		return money.Zero, err
	}
	return db.queryMoney(ctx, "cache debt sum", `
		SELECT COALESCE(SUM(c.remaining_amount), 0)::text
		FROM invoice_balance_cache c
		JOIN invoices i ON i.id = c.invoice_id
		JOIN representatives r ON r.id = i.representative_id
		WHERE `+where, args...)
}

func (db *DB) FetchAccountDrift(ctx context.Context, scope string) ([]domain.AccountDriftRow, error) {
	where, args, err := scopeFilter(scope)
	if err != nil {
		return nil, err
	}
	rows, err := db.Pool.Query(ctx, `
		SELECT r.id,
		       r.total_debt::text,
		       (COALESCE(inv.total, 0) - COALESCE(al.total, 0))::text
		FROM representatives r
		LEFT JOIN (
			SELECT representative_id, SUM(amount) AS total
			FROM invoices
			GROUP BY representative_id
		) inv ON inv.representative_id = r.id
		LEFT JOIN (
			SELECT i.representative_id, SUM(pa.allocated_amount) AS total
			FROM payment_allocations pa
			JOIN invoices i ON i.id = pa.invoice_id
			GROUP BY i.representative_id
		) al ON al.representative_id = r.id
		WHERE `+where+`
		ORDER BY r.id
	`, args...)
	if err != nil {
		return nil, fmt.Errorf("postgres: account drift: %w", err)
	}
	defer rows.Close()

	var out []domain.AccountDriftRow
	for rows.Next() {
		var (
			id             int64
			legacy, ledger string
		)
		if err := rows.Scan(&id, &legacy, &ledger); err != nil {
			return nil, fmt.Errorf("postgres: account drift scan: %w", err)
		}
		row := domain.AccountDriftRow{RepresentativeID: id}
		if row.LegacyDebt, err = money.Parse(legacy); err != nil {
			return nil, fmt.Errorf("postgres: account drift legacy debt: %w", err)
		}
		if row.LedgerDebt, err = money.Parse(ledger); err != nil {
			return nil, fmt.Errorf("postgres: account drift ledger debt: %w", err)
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres: account drift rows: %w", err)
	}
	return out, nil
}

func (db *DB) queryMoney(ctx context.Context, what, sql string, args ...any) (money.Money, error) {
	var raw string
	if err := db.Pool.QueryRow(ctx, sql, args...).Scan(&raw); err != nil {
		return money.Zero, fmt.Errorf("postgres: %s: %w", what, err)
	}
	m, err := money.Parse(raw)
	if err != nil {
		return money.Zero, fmt.Errorf("postgres: %s: %w", what, err)
	}
	return m, nil
}

// scopeFilter turns a scope token into a predicate on the representatives alias r.
func scopeFilter(token string) (string, []any, error) {
	scope, err := ports.ParseScope(token)
	if err != nil {
		return "", nil, err
	}
	if scope.IsGlobal() {
		return "r.is_active", nil, nil
	}
	return "r.id = $1", []any{scope.RepresentativeID}, nil
}
