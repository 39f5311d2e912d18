package debt

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"debtrecon/internal/domain"
	"debtrecon/internal/logging"
	"debtrecon/internal/metrics"
	"debtrecon/internal/money"
	"debtrecon/internal/ports"
)

// DefaultConcurrency bounds parallel lookups per bulk request.
const DefaultConcurrency = 8

type Options struct {
	// Concurrency caps in-flight representatives per bulk call.
	Concurrency int
	Logger      *zap.Logger
	Metrics     *metrics.Metrics
	// Now is the clock used for processing time; defaults to time.Now.
	Now func() time.Time
}

// Service computes per-representative debt and bulk totals.
type Service struct {
	ledger      ports.LedgerSource
	concurrency int
	log         *zap.Logger
	metrics     *metrics.Metrics
	now         func() time.Time
}

var _ ports.DebtCalculator = (*Service)(nil)

func New(ledger ports.LedgerSource, opts Options) *Service {
	if opts.Concurrency < 1 {
		opts.Concurrency = DefaultConcurrency
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Service{
		ledger:      ledger,
		concurrency: opts.Concurrency,
		log:         logging.OrNop(opts.Logger).Named("debt"),
		metrics:     opts.Metrics,
		now:         opts.Now,
	}
}

// Compute returns the outstanding debt of one representative.
func (s *Service) Compute(ctx context.Context, representativeID int64) (domain.RepresentativeDebt, error) {
	if err := validateID(representativeID); err != nil {
		s.metrics.ObserveFailure("debt", err)
		return domain.RepresentativeDebt{}, err
	}
	rd, err := s.compute(ctx, representativeID)
	if err != nil {
		s.metrics.ObserveFailure("debt", err)
		s.log.Warn("debt calculation failed", zap.Int64("representative_id", representativeID), zap.Error(err))
	}
	return rd, err
}

// ComputeBulk computes every id in order. Duplicates are recomputed. Any failure
// aborts the whole batch and no partial result is returned.
func (s *Service) ComputeBulk(ctx context.Context, representativeIDs []int64) (*domain.BulkDebtVerification, error) {
	start := s.now()

	for i, id := range representativeIDs {
		if err := validateID(id); err != nil {
			err = domain.InvalidInputError("representative_ids[%d]: %s", i, err.Error())
			s.metrics.ObserveFailure("bulk_debt", err)
			return nil, err
		}
	}

	results := make([]domain.RepresentativeDebt, len(representativeIDs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for i, id := range representativeIDs {
		g.Go(func() error {
			rd, err := s.compute(gctx, id)
			if err != nil {
				return err
			}
			results[i] = rd
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		s.metrics.ObserveFailure("bulk_debt", err)
		s.log.Error("bulk debt calculation aborted",
			zap.Int("representatives", len(representativeIDs)),
			zap.Error(err))
		return nil, err
	}

	total := money.Zero
	for _, rd := range results {
		total = total.Add(rd.ActualDebt)
	}

	elapsed := s.now().Sub(start)
	s.metrics.ObserveBulk(len(results), elapsed)
	s.log.Info("bulk debt calculated",
		zap.Int("representatives", len(results)),
		zap.Stringer("total_system_debt", total),
		zap.Duration("elapsed", elapsed))

	return &domain.BulkDebtVerification{
		TotalRepresentatives: len(representativeIDs),
		TotalSystemDebt:      total,
		ProcessingTimeMs:     float64(elapsed) / float64(time.Millisecond),
		Representatives:      results,
	}, nil
}

func (s *Service) compute(ctx context.Context, id int64) (domain.RepresentativeDebt, error) {
	invoices, err := s.ledger.FetchInvoiceTotal(ctx, id)
	if err != nil {
		return domain.RepresentativeDebt{}, domain.FromSource(err, "fetch invoice total for representative %d", id)
	}
	payments, err := s.ledger.FetchAllocatedPaymentTotal(ctx, id)
	if err != nil {
		return domain.RepresentativeDebt{}, domain.FromSource(err, "fetch allocated payments for representative %d", id)
	}
	return domain.NewRepresentativeDebt(id, invoices, payments), nil
}

func validateID(id int64) error {
	if id <= 0 {
		return domain.InvalidInputError("representative id must be positive, got %d", id)
	}
	return nil
}
