package domain

import "debtrecon/internal/money"

// Core result types. They are computed per request, never persisted, and serialize
// Money fields as decimal strings.

// RepresentativeDebt is the outstanding debt of one representative.
type RepresentativeDebt struct {
	RepresentativeID int64       `json:"representative_id"`
	TotalInvoices    money.Money `json:"total_invoices"`
	TotalPayments    money.Money `json:"total_payments"`
	ActualDebt       money.Money `json:"actual_debt"`
	DebtLevel        DebtTier    `json:"debt_level"`
}

// NewRepresentativeDebt derives the clamped debt and its tier from the two aggregates.
func NewRepresentativeDebt(id int64, invoices, payments money.Money) RepresentativeDebt {
	debt := invoices.Sub(payments).ClampZero()
	return RepresentativeDebt{
		RepresentativeID: id,
		TotalInvoices:    invoices,
		TotalPayments:    payments,
		ActualDebt:       debt,
		DebtLevel:        Classify(debt),
	}
}

// BulkDebtVerification is the result of a bulk debt calculation.
type BulkDebtVerification struct {
	TotalRepresentatives int                  `json:"total_representatives"`
	TotalSystemDebt      money.Money          `json:"total_system_debt"`
	ProcessingTimeMs     float64              `json:"processing_time_ms"`
	Representatives      []RepresentativeDebt `json:"representatives"`
}

// Comparison labels used in discrepancy records.
const (
	LegacyVsLedger = "legacy_vs_ledger"
	LedgerVsCache  = "ledger_vs_cache"
	LegacyVsCache  = "legacy_vs_cache"
)

// Discrepancy compares two of the three system-wide sums.
type Discrepancy struct {
	Type       string      `json:"type"`
	Difference money.Money `json:"difference"`
	Percentage float64     `json:"percentage"`
}

// DriftStatus grades the drift ratio against the warn/fail thresholds.
type DriftStatus string

const (
	DriftOK   DriftStatus = "OK"
	DriftWarn DriftStatus = "WARN"
	DriftFail DriftStatus = "FAIL"
)

// ReconciliationResult compares the legacy, ledger and cache views of total debt.
// None of the three sums is authoritative.
type ReconciliationResult struct {
	Scope         string        `json:"scope"`
	LegacySum     money.Money   `json:"legacy_sum"`
	LedgerSum     money.Money   `json:"ledger_sum"`
	CacheSum      money.Money   `json:"cache_sum"`
	DriftRatio    float64       `json:"drift_ratio"`
	IsConsistent  bool          `json:"is_consistent"`
	Status        DriftStatus   `json:"status"`
	Discrepancies []Discrepancy `json:"discrepancies"`
}

// AccountDriftRow is the raw per-representative input of a drift breakdown.
type AccountDriftRow struct {
	RepresentativeID int64
	LegacyDebt       money.Money
	LedgerDebt       money.Money
}

// AccountDrift is one line of a drift breakdown.
type AccountDrift struct {
	RepresentativeID int64       `json:"representative_id"`
	LegacyDebt       money.Money `json:"legacy_debt"`
	LedgerDebt       money.Money `json:"ledger_debt"`
	Difference       money.Money `json:"difference"`
	DiffRatio        float64     `json:"diff_ratio"`
}
