// Package money is the exact decimal substrate used for every monetary value.
//
// Addition, subtraction and comparison are exact. Division is only offered as Ratio,
// which rounds to the precision of an explicit Context and is meant for diagnostic
// ratios, never for balances.
package money

import (
	"database/sql/driver"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// DefaultPrecision is the number of fractional digits kept by Ratio.
const DefaultPrecision int32 = 28

// Money is an immutable exact decimal amount. The zero value is 0.
type Money struct {
	d decimal.Decimal
}

// Zero is the additive identity.
var Zero = Money{}

// Bounds on parsed amounts. Exponent notation is accepted but must stay inside them.
const (
	MaxDigits = 64
	MaxScale  = 28
)

// Parse reads decimal text without going through a binary float.
func Parse(s string) (Money, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Zero, fmt.Errorf("money: empty amount")
	}
	if len(s) > 2*MaxDigits {
		return Zero, fmt.Errorf("money: amount is longer than %d characters", 2*MaxDigits)
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Zero, fmt.Errorf("money: invalid amount %q: %w", s, err)
	}
	exp := int64(d.Exponent())
	if -exp > MaxScale {
		return Zero, fmt.Errorf("money: amount %q has more than %d fractional digits", s, MaxScale)
	}
	if digits := int64(d.NumDigits()) + max(exp, 0); digits > MaxDigits {
		return Zero, fmt.Errorf("money: amount %q has more than %d digits", s, MaxDigits)
	}
	return Money{d: d}, nil
}

// MustParse is Parse for literals known to be valid. It panics otherwise.
func MustParse(s string) Money {
	m, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return m
}

// FromInt returns a whole amount.
func FromInt(v int64) Money { return Money{d: decimal.NewFromInt(v)} }

// FromDecimal wraps an existing decimal value.
func FromDecimal(d decimal.Decimal) Money { return Money{d: d} }

// Decimal exposes the underlying value.
func (m Money) Decimal() decimal.Decimal { return m.d }

func (m Money) Add(o Money) Money { return Money{d: m.d.Add(o.d)} }

func (m Money) Sub(o Money) Money { return Money{d: m.d.Sub(o.d)} }

func (m Money) Abs() Money { return Money{d: m.d.Abs()} }

func (m Money) Neg() Money { return Money{d: m.d.Neg()} }

// Cmp returns -1, 0 or +1.
func (m Money) Cmp(o Money) int { return m.d.Cmp(o.d) }

func (m Money) Equal(o Money) bool { return m.d.Equal(o.d) }

func (m Money) LessThan(o Money) bool { return m.d.LessThan(o.d) }

func (m Money) GreaterThan(o Money) bool { return m.d.GreaterThan(o.d) }

func (m Money) IsZero() bool { return m.d.IsZero() }

func (m Money) IsPositive() bool { return m.d.IsPositive() }

func (m Money) IsNegative() bool { return m.d.IsNegative() }

func (m Money) Sign() int { return m.d.Sign() }

// ClampZero returns max(0, m). It is the only clamp in the package.
func (m Money) ClampZero() Money {
	if m.d.IsNegative() {
		return Zero
	}
	return m
}

// Max returns the largest of the given amounts.
func Max(first Money, rest ...Money) Money {
	out := first
	for _, m := range rest {
		if m.d.GreaterThan(out.d) {
			out = m
		}
	}
	return out
}

// Min returns the smallest of the given amounts.
func Min(first Money, rest ...Money) Money {
	out := first
	for _, m := range rest {
		if m.d.LessThan(out.d) {
			out = m
		}
	}
	return out
}

// Sum adds all amounts exactly.
func Sum(ms ...Money) Money {
	out := Zero
	for _, m := range ms {
		out = out.Add(m)
	}
	return out
}

// String formats the amount keeping the scale it was parsed or computed with,
// so "100.00" stays "100.00".
func (m Money) String() string {
	if e := m.d.Exponent(); e < 0 {
		return m.d.StringFixed(-e)
	}
	return m.d.StringFixed(0)
}

// StringFixed formats with exactly places fractional digits, rounding half away from zero.
func (m Money) StringFixed(places int32) string { return m.d.StringFixed(places) }

// MarshalJSON encodes the amount as a JSON string.
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(`"` + m.String() + `"`), nil
}

// UnmarshalJSON accepts a JSON string or a bare JSON number; both are parsed as text.
func (m *Money) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "null" {
		*m = Zero
		return nil
	}
	s = strings.Trim(s, `"`)
	v, err := Parse(s)
	if err != nil {
		return err
	}
	*m = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (m Money) MarshalText() ([]byte, error) { return []byte(m.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *Money) UnmarshalText(b []byte) error {
	v, err := Parse(string(b))
	if err != nil {
		return err
	}
	*m = v
	return nil
}

// Scan implements sql.Scanner. Aggregates are expected as text; NULL scans as Zero.
func (m *Money) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*m = Zero
		return nil
	case string:
		return m.UnmarshalText([]byte(v))
	case []byte:
		return m.UnmarshalText(v)
	case int64:
		*m = FromInt(v)
		return nil
	default:
		return fmt.Errorf("money: cannot scan %T", src)
	}
}

// Value implements driver.Valuer.
func (m Money) Value() (driver.Value, error) { return m.String(), nil }
