package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"debtrecon/internal/domain"
)

const namespace = "debtrecon"

// Metrics records engine activity. All methods are no-ops on a nil receiver so
// services can run without a registry.
type Metrics struct {
	bulkDuration    prometheus.Histogram
	representatives prometheus.Counter
	driftRatio      *prometheus.GaugeVec
	consistent      *prometheus.GaugeVec
	failures        *prometheus.CounterVec
}

func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		bulkDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "bulk_debt_duration_seconds",
			Help:      "Duration of bulk debt calculations",
			Buckets:   prometheus.DefBuckets,
		}),
		representatives: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "representatives_processed_total",
			Help:      "Number of representative debts computed",
		}),
		driftRatio: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "drift_ratio",
			Help:      "Latest drift ratio between legacy, ledger and cache sums",
		}, []string{"scope"}),
		consistent: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "drift_consistent",
			Help:      "1 when the latest reconciliation was consistent",
		}, []string{"scope"}),
		failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "operation_failures_total",
			Help:      "Failed operations by kind",
		}, []string{"operation", "kind"}),
	}

	reg.MustRegister(m.bulkDuration, m.representatives, m.driftRatio, m.consistent, m.failures)

	return m
}

func (m *Metrics) ObserveBulk(count int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.bulkDuration.Observe(elapsed.Seconds())
	m.representatives.Add(float64(count))
}

func (m *Metrics) ObserveDrift(scope string, ratio float64, consistent bool) {
	if m == nil {
		return
	}
	m.driftRatio.WithLabelValues(scope).Set(ratio)
	v := 0.0
	if consistent {
		v = 1
	}
	m.consistent.WithLabelValues(scope).Set(v)
}

func (m *Metrics) ObserveFailure(operation string, err error) {
	if m == nil || err == nil {
		return
	}
	m.failures.WithLabelValues(operation, kindLabel(err)).Inc()
}

func kindLabel(err error) string {
	switch domain.KindOf(err) {
	case domain.ErrInvalidInput:
		return "invalid_input"
	case domain.ErrDataSource:
		return "data_source"
	default:
		return "internal"
	}
}
