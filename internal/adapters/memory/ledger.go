// Package memory is an in-process LedgerSource. It backs the package tests and
// the CLI's --demo mode.
package memory

import (
	"cmp"
	"context"
	"slices"
	"sync"
	"sync/atomic"

	"debtrecon/internal/domain"
	"debtrecon/internal/money"
	"debtrecon/internal/ports"
)

// Invoice is a billed amount. Allocated is the sum of payment allocations against it;
// Remaining is the cached balance, nil when the cache has no row for the invoice.
type Invoice struct {
	Amount    money.Money
	Allocated money.Money
	Remaining *money.Money
}

// Payment is money received from a representative.
type Payment struct {
	Amount    money.Money
	Allocated bool
}

// Account is one representative with its ledger rows.
type Account struct {
	ID         int64
	Active     bool
	LegacyDebt money.Money
	Invoices   []Invoice
	Payments   []Payment
}

// Ledger is safe for concurrent use.
type Ledger struct {
	mu       sync.RWMutex
	accounts map[int64]Account
	order    []int64
	failErr  error
	calls    atomic.Int64
}

var _ ports.LedgerSource = (*Ledger)(nil)

func New(accounts ...Account) *Ledger {
	l := &Ledger{accounts: make(map[int64]Account)}
	for _, a := range accounts {
		l.Put(a)
	}
	return l
}

// Put inserts or replaces an account.
func (l *Ledger) Put(a Account) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.accounts[a.ID]; !ok {
		l.order = append(l.order, a.ID)
	}
	l.accounts[a.ID] = a
}

// FailWith makes every subsequent fetch return err. Pass nil to recover.
func (l *Ledger) FailWith(err error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.failErr = err
}

// Calls reports how many fetches were made.
func (l *Ledger) Calls() int64 { return l.calls.Load() }

func (l *Ledger) begin(ctx context.Context) error {
	l.calls.Add(1)
	if err := ctx.Err(); err != nil {
		return err
	}
	return l.failErr
}

func (l *Ledger) FetchInvoiceTotal(ctx context.Context, representativeID int64) (money.Money, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if err := l.begin(ctx); err != nil {
		return money.Zero, err
	}
	return invoiceTotal(l.accounts[representativeID]), nil
}

func (l *Ledger) FetchAllocatedPaymentTotal(ctx context.Context, representativeID int64) (money.Money, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if err := l.begin(ctx); err != nil {
		return money.Zero, err
	}
	total := money.Zero
	for _, p := range l.accounts[representativeID].Payments {
		if p.Allocated {
			total = total.Add(p.Amount)
		}
	}
	return total, nil
}

func (l *Ledger) FetchLegacyDebtSum(ctx context.Context, scope string) (money.Money, error) {
	return l.sum(ctx, scope, func(a Account) money.Money { return a.LegacyDebt })
}

func (l *Ledger) FetchLedgerDebtSum(ctx context.Context, scope string) (money.Money, error) {
	return l.sum(ctx, scope, ledgerDebt)
}

func (l *Ledger) FetchCacheDebtSum(ctx context.Context, scope string) (money.Money, error) {
	return l.sum(ctx, scope, func(a Account) money.Money {
		total := money.Zero
		for _, inv := range a.Invoices {
			if inv.Remaining != nil {
				total = total.Add(*inv.Remaining)
			}
		}
		return total
	})
}

func (l *Ledger) FetchAccountDrift(ctx context.Context, scope string) ([]domain.AccountDriftRow, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if err := l.begin(ctx); err != nil {
		return nil, err
	}
	accounts, err := l.inScope(scope)
	if err != nil {
		return nil, err
	}
	rows := make([]domain.AccountDriftRow, 0, len(accounts))
	for _, a := range accounts {
		rows = append(rows, domain.AccountDriftRow{
			RepresentativeID: a.ID,
			LegacyDebt:       a.LegacyDebt,
			LedgerDebt:       ledgerDebt(a),
		})
	}
	return rows, nil
}

func (l *Ledger) sum(ctx context.Context, scope string, f func(Account) money.Money) (money.Money, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if err := l.begin(ctx); err != nil {
		return money.Zero, err
	}
	accounts, err := l.inScope(scope)
	if err != nil {
		return money.Zero, err
	}
	total := money.Zero
	for _, a := range accounts {
		total = total.Add(f(a))
	}
	return total, nil
}

// inScope mirrors the postgres filter: global means active representatives.
func (l *Ledger) inScope(token string) ([]Account, error) {
	scope, err := ports.ParseScope(token)
	if err != nil {
		return nil, err
	}
	var out []Account
	for _, id := range l.order {
		a := l.accounts[id]
		if scope.IsGlobal() && a.Active || id == scope.RepresentativeID {
			out = append(out, a)
		}
	}
	slices.SortFunc(out, func(x, y Account) int { return cmp.Compare(x.ID, y.ID) })
	return out, nil
}

func invoiceTotal(a Account) money.Money {
	total := money.Zero
	for _, inv := range a.Invoices {
		total = total.Add(inv.Amount)
	}
	return total
}

func ledgerDebt(a Account) money.Money {
	allocated := money.Zero
	for _, inv := range a.Invoices {
		allocated = allocated.Add(inv.Allocated)
	}
	return invoiceTotal(a).Sub(allocated)
}
