package debt_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"debtrecon/internal/adapters/memory"
	"debtrecon/internal/domain"
	"debtrecon/internal/money"
	"debtrecon/internal/ports/mocks"
	"debtrecon/internal/services/debt"
)

func m(s string) money.Money { return money.MustParse(s) }

func fixtureLedger() *memory.Ledger {
	return memory.New(
		memory.Account{ID: 1, Active: true},
		memory.Account{
			ID: 2, Active: true,
			Invoices: []memory.Invoice{{Amount: m("60000.00")}, {Amount: m("40000.00")}},
			Payments: []memory.Payment{{Amount: m("0.00"), Allocated: true}},
		},
		memory.Account{
			ID: 3, Active: true,
			Invoices: []memory.Invoice{{Amount: m("100000.01")}},
		},
		memory.Account{
			ID: 4, Active: true,
			Invoices: []memory.Invoice{{Amount: m("600000.00")}},
			Payments: []memory.Payment{
				{Amount: m("99999.99"), Allocated: true},
				{Amount: m("500000.00"), Allocated: false},
			},
		},
		memory.Account{
			ID: 5, Active: false,
			Invoices: []memory.Invoice{{Amount: m("10.00")}},
			Payments: []memory.Payment{{Amount: m("25.50"), Allocated: true}},
		},
	)
}

type row struct {
	ID       int64
	Invoices string
	Payments string
	Debt     string
	Tier     domain.DebtTier
}

func rows(res *domain.BulkDebtVerification) []row {
	out := make([]row, 0, len(res.Representatives))
	for _, rd := range res.Representatives {
		out = append(out, row{rd.RepresentativeID, rd.TotalInvoices.String(), rd.TotalPayments.String(), rd.ActualDebt.String(), rd.DebtLevel})
	}
	return out
}

func TestService_Compute(t *testing.T) {
	svc := debt.New(fixtureLedger(), debt.Options{})

	tests := []struct {
		id   int64
		debt string
		tier domain.DebtTier
	}{
		{1, "0", domain.TierHealthy},
		{2, "100000.00", domain.TierModerate},
		{3, "100000.01", domain.TierHigh},
		{4, "500000.01", domain.TierCritical},
		{5, "0", domain.TierHealthy},
		{99, "0", domain.TierHealthy},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprint(tt.id), func(t *testing.T) {
			rd, err := svc.Compute(context.Background(), tt.id)
			require.NoError(t, err)
			assert.Equal(t, tt.debt, rd.ActualDebt.String())
			assert.Equal(t, tt.tier, rd.DebtLevel)
		})
	}
}

func TestService_ComputeRejectsBadID(t *testing.T) {
	ledger := fixtureLedger()
	svc := debt.New(ledger, debt.Options{})

	_, err := svc.Compute(context.Background(), 0)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Zero(t, ledger.Calls())
}

func TestService_ComputeBulk(t *testing.T) {
	tests := []struct {
		name      string
		ids       []int64
		wantCount int
		wantTotal string
		wantIDs   []int64
	}{
		{
			name:      "empty list",
			ids:       []int64{},
			wantCount: 0,
			wantTotal: "0",
			wantIDs:   []int64{},
		},
		{
			name:      "nil list",
			ids:       nil,
			wantCount: 0,
			wantTotal: "0",
			wantIDs:   []int64{},
		},
		{
			name:      "input order is kept",
			ids:       []int64{4, 1, 3, 2},
			wantCount: 4,
			wantTotal: "700000.02",
			wantIDs:   []int64{4, 1, 3, 2},
		},
		{
			name:      "duplicates are recomputed",
			ids:       []int64{3, 3, 2, 3},
			wantCount: 4,
			wantTotal: "400000.03",
			wantIDs:   []int64{3, 3, 2, 3},
		},
		{
			name:      "unknown and overpaid representatives count as zero debt",
			ids:       []int64{5, 42},
			wantCount: 2,
			wantTotal: "0",
			wantIDs:   []int64{5, 42},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := debt.New(fixtureLedger(), debt.Options{Concurrency: 3})

			res, err := svc.ComputeBulk(context.Background(), tt.ids)
			require.NoError(t, err)
			assert.Equal(t, tt.wantCount, res.TotalRepresentatives)
			assert.Equal(t, tt.wantTotal, res.TotalSystemDebt.String())
			assert.NotNil(t, res.Representatives)

			gotIDs := make([]int64, 0, len(res.Representatives))
			sum := money.Zero
			for _, rd := range res.Representatives {
				gotIDs = append(gotIDs, rd.RepresentativeID)
				sum = sum.Add(rd.ActualDebt)
				assert.False(t, rd.ActualDebt.IsNegative())
			}
			assert.Equal(t, tt.wantIDs, gotIDs)
			assert.True(t, sum.Equal(res.TotalSystemDebt))
			assert.GreaterOrEqual(t, res.ProcessingTimeMs, 0.0)
		})
	}
}

func TestService_ComputeBulkConcurrentMatchesSequential(t *testing.T) {
	ids := make([]int64, 0, 200)
	for i := 0; i < 200; i++ {
		ids = append(ids, int64(i%6)+1)
	}

	seq, err := debt.New(fixtureLedger(), debt.Options{Concurrency: 1}).ComputeBulk(context.Background(), ids)
	require.NoError(t, err)
	par, err := debt.New(fixtureLedger(), debt.Options{Concurrency: 32}).ComputeBulk(context.Background(), ids)
	require.NoError(t, err)

	assert.Equal(t, rows(seq), rows(par))
	assert.Equal(t, seq.TotalSystemDebt.String(), par.TotalSystemDebt.String())
}

func TestService_ComputeBulkRejectsBeforeFetching(t *testing.T) {
	ledger := fixtureLedger()
	svc := debt.New(ledger, debt.Options{})

	res, err := svc.ComputeBulk(context.Background(), []int64{1, 2, -7})
	assert.Nil(t, res)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Contains(t, err.Error(), "representative_ids[2]")
	assert.Zero(t, ledger.Calls())
}

func TestService_ComputeBulkAbortsOnSourceFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	source := mocks.NewMockLedgerSource(ctrl)

	cause := errors.New("dial tcp 10.1.2.3:5432: connection refused")
	source.EXPECT().FetchInvoiceTotal(gomock.Any(), gomock.Any()).Return(m("10.00"), nil).AnyTimes()
	source.EXPECT().FetchAllocatedPaymentTotal(gomock.Any(), int64(2)).Return(money.Zero, cause).AnyTimes()
	source.EXPECT().FetchAllocatedPaymentTotal(gomock.Any(), gomock.Not(int64(2))).Return(money.Zero, nil).AnyTimes()

	svc := debt.New(source, debt.Options{Concurrency: 2})
	res, err := svc.ComputeBulk(context.Background(), []int64{1, 2, 3})

	assert.Nil(t, res)
	assert.ErrorIs(t, err, domain.ErrDataSource)
	assert.ErrorIs(t, err, cause)
	assert.NotContains(t, err.Error(), "10.1.2.3")
}

func TestService_ComputeBulkInvoiceFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	source := mocks.NewMockLedgerSource(ctrl)
	source.EXPECT().FetchInvoiceTotal(gomock.Any(), int64(9)).Return(money.Zero, errors.New("timeout"))

	_, err := debt.New(source, debt.Options{}).Compute(context.Background(), 9)
	assert.ErrorIs(t, err, domain.ErrDataSource)
	assert.Contains(t, err.Error(), "invoice total for representative 9")
}

func TestService_ProcessingTime(t *testing.T) {
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	ticks := []time.Time{base, base.Add(1500 * time.Millisecond)}
	clock := func() time.Time {
		now := ticks[0]
		ticks = ticks[1:]
		return now
	}

	svc := debt.New(fixtureLedger(), debt.Options{Now: clock})
	res, err := svc.ComputeBulk(context.Background(), []int64{2})
	require.NoError(t, err)
	assert.Equal(t, 1500.0, res.ProcessingTimeMs)
}

func TestService_ComputeBulkCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := debt.New(fixtureLedger(), debt.Options{}).ComputeBulk(ctx, []int64{1, 2})
	assert.ErrorIs(t, err, domain.ErrDataSource)
	assert.ErrorIs(t, err, context.Canceled)
}
