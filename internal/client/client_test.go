package client_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	httpadapter "debtrecon/internal/adapters/http"
	"debtrecon/internal/adapters/memory"
	"debtrecon/internal/client"
	"debtrecon/internal/domain"
	"debtrecon/internal/money"
	"debtrecon/internal/services/debt"
	"debtrecon/internal/services/drift"
)

func m(s string) money.Money { return money.MustParse(s) }

func newAPI(t *testing.T) *client.Client {
	t.Helper()
	remaining := m("40.00")
	ledger := memory.New(
		memory.Account{ID: 1, Active: true, LegacyDebt: m("100.00"),
			Invoices: []memory.Invoice{{Amount: m("100.00"), Allocated: m("60.00"), Remaining: &remaining}},
			Payments: []memory.Payment{{Amount: m("60.00"), Allocated: true}}},
		memory.Account{ID: 2, Active: true,
			Invoices: []memory.Invoice{{Amount: m("200000.00")}}},
	)
	api := httpadapter.New(debt.New(ledger, debt.Options{}), drift.New(ledger, drift.Options{}), httpadapter.Options{})
	srv := httptest.NewServer(api.Routes())
	t.Cleanup(srv.Close)
	return client.New(srv.URL, client.Options{Timeout: 5 * time.Second})
}

func TestClientAgainstServer(t *testing.T) {
	c := newAPI(t)
	ctx := context.Background()

	require.NoError(t, c.Health(ctx))

	bulk, err := c.BulkDebt(ctx, []int64{2, 1})
	require.NoError(t, err)
	assert.Equal(t, 2, bulk.TotalRepresentatives)
	assert.Equal(t, "200040.00", bulk.TotalSystemDebt.String())
	require.Len(t, bulk.Representatives, 2)
	assert.Equal(t, int64(2), bulk.Representatives[0].RepresentativeID)
	assert.Equal(t, domain.TierHigh, bulk.Representatives[0].DebtLevel)

	res, err := c.Drift(ctx, "global")
	require.NoError(t, err)
	assert.False(t, res.IsConsistent)
	assert.Equal(t, "100.00", res.LegacySum.String())
	assert.Len(t, res.Discrepancies, 3)

	rows, err := c.Breakdown(ctx, "", 1)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, int64(2), rows[0].RepresentativeID)

	tier, err := c.Classify(ctx, m("100000.00"))
	require.NoError(t, err)
	assert.Equal(t, domain.TierModerate, tier)
}

func TestClientErrors(t *testing.T) {
	c := newAPI(t)
	ctx := context.Background()

	_, err := c.BulkDebt(ctx, []int64{1, 0})
	var apiErr *client.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Contains(t, apiErr.Message, "representative_ids[1]")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = c.Breakdown(ctx, "global", 5000)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestClientRetriesUnavailable(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if hits.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte(`{"error":"fetch legacy debt sum: data source unavailable"}`))
			return
		}
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	}))
	defer srv.Close()

	c := client.New(srv.URL, client.Options{Retries: 3})
	require.NoError(t, c.Health(context.Background()))
	assert.Equal(t, int32(3), hits.Load())

	hits.Store(-10)
	err := client.New(srv.URL, client.Options{}).Health(context.Background())
	assert.ErrorIs(t, err, domain.ErrDataSource)
	assert.Contains(t, err.Error(), "data source unavailable")
}
