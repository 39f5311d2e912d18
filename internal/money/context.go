package money

import "github.com/shopspring/decimal"

// Context carries the arithmetic settings for the lossy operations. It is passed by
// value so one request can never change another's precision.
type Context struct {
	// Precision is the number of fractional digits kept by Ratio.
	Precision int32
}

// DefaultContext keeps 28 fractional digits.
func DefaultContext() Context { return Context{Precision: DefaultPrecision} }

// NewContext returns a Context, falling back to DefaultPrecision for non-positive values.
func NewContext(precision int32) Context {
	if precision <= 0 {
		precision = DefaultPrecision
	}
	return Context{Precision: precision}
}

// Ratio divides num by den. A zero denominator yields a zero ratio; callers that care
// must guard before calling.
func (c Context) Ratio(num, den Money) decimal.Decimal {
	if den.IsZero() {
		return decimal.Zero
	}
	p := c.Precision
	if p <= 0 {
		p = DefaultPrecision
	}
	return num.d.DivRound(den.d, p)
}

// Percentage is Ratio scaled by 100.
func (c Context) Percentage(num, den Money) decimal.Decimal {
	return c.Ratio(num, den).Mul(decimal.NewFromInt(100))
}

// Float converts a finished ratio to float64 for human-facing output.
func Float(d decimal.Decimal) float64 { return d.InexactFloat64() }
