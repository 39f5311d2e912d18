package domain

import (
	"encoding/json"
	"fmt"

	"debtrecon/internal/money"
)

// DebtTier is the severity class of an outstanding debt.
type DebtTier int

const (
	TierHealthy DebtTier = iota
	TierModerate
	TierHigh
	TierCritical
)

// Upper bounds, inclusive on the lower tier.
var (
	ModerateCeiling = money.FromInt(100000)
	HighCeiling     = money.FromInt(500000)
)

var tierNames = [...]string{"HEALTHY", "MODERATE", "HIGH", "CRITICAL"}

// Classify maps a debt to its tier. Negative input is treated as zero debt.
func Classify(debt money.Money) DebtTier {
	switch {
	case debt.Sign() <= 0:
		return TierHealthy
	case debt.Cmp(ModerateCeiling) <= 0:
		return TierModerate
	case debt.Cmp(HighCeiling) <= 0:
		return TierHigh
	default:
		return TierCritical
	}
}

func (t DebtTier) String() string {
	if t < TierHealthy || t > TierCritical {
		return fmt.Sprintf("DebtTier(%d)", int(t))
	}
	return tierNames[t]
}

// ParseDebtTier is the inverse of String.
func ParseDebtTier(s string) (DebtTier, error) {
	for i, n := range tierNames {
		if n == s {
			return DebtTier(i), nil
		}
	}
	return 0, fmt.Errorf("unknown debt tier %q", s)
}

func (t DebtTier) MarshalJSON() ([]byte, error) { return json.Marshal(t.String()) }

func (t *DebtTier) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	v, err := ParseDebtTier(s)
	if err != nil {
		return err
	}
	*t = v
	return nil
}
