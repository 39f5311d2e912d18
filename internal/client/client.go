// Package client talks to the reconciliation HTTP API.
package client

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"

	"debtrecon/internal/domain"
	"debtrecon/internal/money"
)

// APIError is a non-2xx response. It unwraps to the domain kind matching the status.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("server returned %d: %s", e.StatusCode, e.Message)
}

func (e *APIError) Unwrap() error {
	switch e.StatusCode {
	case http.StatusBadRequest:
		return domain.ErrInvalidInput
	case http.StatusServiceUnavailable:
		return domain.ErrDataSource
	default:
		return nil
	}
}

type Client struct {
	r *resty.Client
}

type Options struct {
	Timeout time.Duration
	// Retries applies to transport errors and 503 responses.
	Retries int
}

func New(baseURL string, opts Options) *Client {
	r := resty.New().
		SetBaseURL(baseURL).
		SetHeader("Accept", "application/json")
	if opts.Timeout > 0 {
		r.SetTimeout(opts.Timeout)
	}
	if opts.Retries > 0 {
		r.SetRetryCount(opts.Retries).
			SetRetryWaitTime(100 * time.Millisecond).
			AddRetryCondition(func(res *resty.Response, err error) bool {
				return err != nil || res.StatusCode() == http.StatusServiceUnavailable
			})
	}
	return &Client{r: r}
}

type errorBody struct {
	Error string `json:"error"`
}

func (c *Client) do(ctx context.Context, method, path string, prepare func(*resty.Request), out any) error {
	var eb errorBody
	req := c.r.R().SetContext(ctx).SetError(&eb)
	if out != nil {
		req.SetResult(out)
	}
	if prepare != nil {
		prepare(req)
	}
	res, err := req.Execute(method, path)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	if res.IsError() {
		msg := eb.Error
		if msg == "" {
			msg = http.StatusText(res.StatusCode())
		}
		return &APIError{StatusCode: res.StatusCode(), Message: msg}
	}
	return nil
}

// BulkDebt computes debt for the given representatives.
func (c *Client) BulkDebt(ctx context.Context, ids []int64) (*domain.BulkDebtVerification, error) {
	if ids == nil {
		ids = []int64{}
	}
	var out domain.BulkDebtVerification
	err := c.do(ctx, resty.MethodPost, "/calculate/bulk-debt", func(r *resty.Request) {
		r.SetBody(map[string][]int64{"representative_ids": ids})
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Drift runs a reconciliation for scope; empty means the server default.
func (c *Client) Drift(ctx context.Context, scope string) (*domain.ReconciliationResult, error) {
	var out domain.ReconciliationResult
	err := c.do(ctx, resty.MethodPost, "/reconcile/drift-detection", func(r *resty.Request) {
		if scope != "" {
			r.SetQueryParam("scope", scope)
		}
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Breakdown lists per-representative drift. A zero limit uses the server default.
func (c *Client) Breakdown(ctx context.Context, scope string, limit int) ([]domain.AccountDrift, error) {
	var out struct {
		Representatives []domain.AccountDrift `json:"representatives"`
	}
	err := c.do(ctx, resty.MethodGet, "/reconcile/drift-breakdown", func(r *resty.Request) {
		if scope != "" {
			r.SetQueryParam("scope", scope)
		}
		if limit != 0 {
			r.SetQueryParam("limit", strconv.Itoa(limit))
		}
	}, &out)
	if err != nil {
		return nil, err
	}
	return out.Representatives, nil
}

// Classify asks the server for the tier of amount.
func (c *Client) Classify(ctx context.Context, amount money.Money) (domain.DebtTier, error) {
	var out struct {
		DebtLevel domain.DebtTier `json:"debt_level"`
	}
	err := c.do(ctx, resty.MethodGet, "/debt/classify", func(r *resty.Request) {
		r.SetQueryParam("amount", amount.String())
	}, &out)
	return out.DebtLevel, err
}

func (c *Client) Health(ctx context.Context) error {
	return c.do(ctx, resty.MethodGet, "/healthz", nil, nil)
}
