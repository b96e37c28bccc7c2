package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// StampDutyBracket is one marginal band of a transfer duty schedule. The band
// covers prices from the previous bracket's Upper up to this Upper; a nil
// Upper marks the final, unbounded band.
type StampDutyBracket struct {
	Upper *decimal.Decimal `yaml:"upper,omitempty" json:"upper,omitempty"`
	Rate  decimal.Decimal  `yaml:"rate" json:"rate"`
}

// Unbounded reports whether this is the open-ended top bracket.
func (b StampDutyBracket) Unbounded() bool { return b.Upper == nil }

// DutySchedule is the ordered bracket list for one jurisdiction.
type DutySchedule struct {
	Jurisdiction Jurisdiction       `yaml:"jurisdiction" json:"jurisdiction"`
	Brackets     []StampDutyBracket `yaml:"brackets" json:"brackets"`
}

// Validate checks the brackets partition [0, inf): thresholds strictly
// increasing and positive, rates non-negative, exactly the last one unbounded.
func (s DutySchedule) Validate() error {
	if s.Jurisdiction.Normalize() == "" {
		return fmt.Errorf("duty schedule: jurisdiction is required")
	}
	if len(s.Brackets) == 0 {
		return fmt.Errorf("duty schedule %s: no brackets", s.Jurisdiction)
	}
	prev := decimal.Zero
	last := len(s.Brackets) - 1
	for i, b := range s.Brackets {
		if b.Rate.IsNegative() {
			return fmt.Errorf("duty schedule %s: bracket %d has negative rate %s", s.Jurisdiction, i, b.Rate)
		}
		if i == last {
			if !b.Unbounded() {
				return fmt.Errorf("duty schedule %s: final bracket must be unbounded", s.Jurisdiction)
			}
			continue
		}
		if b.Unbounded() {
			return fmt.Errorf("duty schedule %s: only the final bracket may be unbounded (bracket %d)", s.Jurisdiction, i)
		}
		if b.Upper.LessThanOrEqual(prev) {
			return fmt.Errorf("duty schedule %s: bracket %d threshold %s does not increase on %s",
				s.Jurisdiction, i, b.Upper.String(), prev.String())
		}
		prev = *b.Upper
	}
	return nil
}

// Bracket is a convenience constructor for a bounded bracket.
func Bracket(upper int64, rate float64) StampDutyBracket {
	u := decimal.NewFromInt(upper)
	return StampDutyBracket{Upper: &u, Rate: decimal.NewFromFloat(rate)}
}

// TopBracket is a convenience constructor for the unbounded final bracket.
func TopBracket(rate float64) StampDutyBracket {
	return StampDutyBracket{Rate: decimal.NewFromFloat(rate)}
}
