package drift

import (
	"cmp"
	"context"
	"regexp"
	"slices"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"debtrecon/internal/domain"
	"debtrecon/internal/logging"
	"debtrecon/internal/metrics"
	"debtrecon/internal/money"
	"debtrecon/internal/ports"
)

// ConsistencyThreshold is the drift ratio at and above which the views are inconsistent.
var ConsistencyThreshold = decimal.RequireFromString("0.001")

// Default status thresholds.
const (
	DefaultWarnThreshold = 0.0005
	DefaultFailThreshold = 0.005
)

// Breakdown limits.
const (
	DefaultBreakdownLimit = 100
	MaxBreakdownLimit     = 1000
)

var scopePattern = regexp.MustCompile(`^[A-Za-z0-9_.:\-]{1,64}$`)

type Options struct {
	Money         money.Context
	WarnThreshold float64
	FailThreshold float64
	Logger        *zap.Logger
	Metrics       *metrics.Metrics
}

// Service reconciles the legacy, ledger and cache views of total debt.
type Service struct {
	ledger  ports.LedgerSource
	money   money.Context
	warn    decimal.Decimal
	fail    decimal.Decimal
	log     *zap.Logger
	metrics *metrics.Metrics
}

var _ ports.DriftReconciler = (*Service)(nil)

func New(ledger ports.LedgerSource, opts Options) *Service {
	if opts.Money.Precision <= 0 {
		opts.Money = money.DefaultContext()
	}
	if opts.WarnThreshold <= 0 {
		opts.WarnThreshold = DefaultWarnThreshold
	}
	if opts.FailThreshold <= 0 {
		opts.FailThreshold = DefaultFailThreshold
	}
	return &Service{
		ledger:  ledger,
		money:   opts.Money,
		warn:    decimal.NewFromFloat(opts.WarnThreshold),
		fail:    decimal.NewFromFloat(opts.FailThreshold),
		log:     logging.OrNop(opts.Logger).Named("drift"),
		metrics: opts.Metrics,
	}
}

// ValidateScope checks the shape of a scope token. Its meaning belongs to the ledger source.
func ValidateScope(scope string) error {
	if !scopePattern.MatchString(scope) {
		return domain.InvalidInputError("malformed scope %q", scope)
	}
	return nil
}

// Reconcile fetches the three sums concurrently and compares them. An empty scope
// means global.
func (s *Service) Reconcile(ctx context.Context, scope string) (*domain.ReconciliationResult, error) {
	if scope == "" {
		scope = ports.GlobalScope
	}
	if err := ValidateScope(scope); err != nil {
		s.metrics.ObserveFailure("reconcile", err)
		return nil, err
	}

	var legacy, ledger, cache money.Money
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		if legacy, err = s.ledger.FetchLegacyDebtSum(gctx, scope); err != nil {
			return domain.FromSource(err, "fetch legacy debt sum")
		}
		return nil
	})
	g.Go(func() (err error) {
		if ledger, err = s.ledger.FetchLedgerDebtSum(gctx, scope); err != nil {
			return domain.FromSource(err, "fetch ledger debt sum")
		}
		return nil
	})
	g.Go(func() (err error) {
		if cache, err = s.ledger.FetchCacheDebtSum(gctx, scope); err != nil {
			return domain.FromSource(err, "fetch cache debt sum")
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		s.metrics.ObserveFailure("reconcile", err)
		s.log.Error("reconciliation failed", zap.String("scope", scope), zap.Error(err))
		return nil, err
	}

	res := s.Evaluate(scope, legacy, ledger, cache)
	s.metrics.ObserveDrift(scope, res.DriftRatio, res.IsConsistent)

	fields := []zap.Field{
		zap.String("scope", scope),
		zap.Stringer("legacy_sum", legacy),
		zap.Stringer("ledger_sum", ledger),
		zap.Stringer("cache_sum", cache),
		zap.Float64("drift_ratio", res.DriftRatio),
		zap.String("status", string(res.Status)),
	}
	switch res.Status {
	case domain.DriftFail:
		s.log.Error("drift above fail threshold", fields...)
	case domain.DriftWarn:
		s.log.Warn("drift above warn threshold", fields...)
	default:
		s.log.Info("reconciliation completed", fields...)
	}
	return res, nil
}

type pair struct {
	label string
	diff  money.Money
}

// Evaluate compares three already fetched sums. It performs no I/O.
func (s *Service) Evaluate(scope string, legacy, ledger, cache money.Money) *domain.ReconciliationResult {
	pairs := []pair{
		{domain.LegacyVsLedger, legacy.Sub(ledger).Abs()},
		{domain.LedgerVsCache, ledger.Sub(cache).Abs()},
		{domain.LegacyVsCache, legacy.Sub(cache).Abs()},
	}

	maxSum := money.Max(legacy, ledger, cache)
	maxDrift := money.Max(pairs[0].diff, pairs[1].diff, pairs[2].diff)
	// Decisions compare maxDrift against maxSum*threshold so they never depend on the
	// precision Ratio rounds to. A non-positive maxSum counts as zero drift.
	consistent := !maxSum.IsPositive() || !exceeds(maxDrift, maxSum, ConsistencyThreshold)
	ratio := decimal.Zero
	if maxSum.IsPositive() {
		ratio = s.money.Ratio(maxDrift, maxSum)
	}

	res := &domain.ReconciliationResult{
		Scope:         scope,
		LegacySum:     legacy,
		LedgerSum:     ledger,
		CacheSum:      cache,
		DriftRatio:    money.Float(ratio),
		IsConsistent:  consistent,
		Status:        s.status(maxDrift, maxSum),
		Discrepancies: []domain.Discrepancy{},
	}
	if consistent {
		return res
	}

	for _, p := range pairs {
		res.Discrepancies = append(res.Discrepancies, domain.Discrepancy{
			Type:       p.label,
			Difference: p.diff,
			Percentage: money.Float(s.money.Percentage(p.diff, maxSum)),
		})
	}
	slices.SortStableFunc(res.Discrepancies, func(a, b domain.Discrepancy) int {
		return b.Difference.Cmp(a.Difference)
	})
	return res
}

// exceeds reports drift/sum >= threshold without dividing.
func exceeds(drift, sum money.Money, threshold decimal.Decimal) bool {
	return drift.Decimal().GreaterThanOrEqual(sum.Decimal().Mul(threshold))
}

func (s *Service) status(maxDrift, maxSum money.Money) domain.DriftStatus {
	switch {
	case !maxSum.IsPositive():
		return domain.DriftOK
	case exceeds(maxDrift, maxSum, s.fail):
		return domain.DriftFail
	case exceeds(maxDrift, maxSum, s.warn):
		return domain.DriftWarn
	default:
		return domain.DriftOK
	}
}

// Breakdown compares legacy and ledger debt per representative, worst ratio first.
// The ratio denominator is max(legacy, 1) so zero legacy debt still ranks.
func (s *Service) Breakdown(ctx context.Context, scope string, limit int) ([]domain.AccountDrift, error) {
	if scope == "" {
		scope = ports.GlobalScope
	}
	if err := ValidateScope(scope); err != nil {
		s.metrics.ObserveFailure("breakdown", err)
		return nil, err
	}
	switch {
	case limit == 0:
		limit = DefaultBreakdownLimit
	case limit < 0 || limit > MaxBreakdownLimit:
		err := domain.InvalidInputError("limit must be between 1 and %d, got %d", MaxBreakdownLimit, limit)
		s.metrics.ObserveFailure("breakdown", err)
		return nil, err
	}

	rows, err := s.ledger.FetchAccountDrift(ctx, scope)
	if err != nil {
		err = domain.FromSource(err, "fetch per-representative drift")
		s.metrics.ObserveFailure("breakdown", err)
		s.log.Error("drift breakdown failed", zap.String("scope", scope), zap.Error(err))
		return nil, err
	}

	type ranked struct {
		drift domain.AccountDrift
		den   decimal.Decimal
	}
	one := money.FromInt(1)
	out := make([]ranked, 0, len(rows))
	for _, r := range rows {
		diff := r.LegacyDebt.Sub(r.LedgerDebt).Abs()
		den := money.Max(r.LegacyDebt, one)
		out = append(out, ranked{
			drift: domain.AccountDrift{
				RepresentativeID: r.RepresentativeID,
				LegacyDebt:       r.LegacyDebt,
				LedgerDebt:       r.LedgerDebt,
				Difference:       diff,
				DiffRatio:        money.Float(s.money.Ratio(diff, den)),
			},
			den: den.Decimal(),
		})
	}
	// Ratios are ranked by cross multiplication so rounding cannot tie them.
	slices.SortFunc(out, func(a, b ranked) int {
		if c := b.drift.Difference.Decimal().Mul(a.den).Cmp(a.drift.Difference.Decimal().Mul(b.den)); c != 0 {
			return c
		}
		if c := b.drift.Difference.Cmp(a.drift.Difference); c != 0 {
			return c
		}
		return cmp.Compare(a.drift.RepresentativeID, b.drift.RepresentativeID)
	})
	if len(out) > limit {
		out = out[:limit]
	}

	result := make([]domain.AccountDrift, len(out))
	for i, r := range out {
		result[i] = r.drift
	}
	return result, nil
}
