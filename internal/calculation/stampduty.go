package calculation

import (
	"fmt"

	"github.com/homewise/affordability/internal/domain"
	"github.com/shopspring/decimal"
)

// DefaultDutySchedules returns the embedded transfer duty brackets for the
// eight states and territories. NSW is first and is the fallback schedule.
func DefaultDutySchedules() []domain.DutySchedule {
	b, top := domain.Bracket, domain.TopBracket
	return []domain.DutySchedule{
		{Jurisdiction: domain.JurisdictionNSW, Brackets: []domain.StampDutyBracket{
			b(15000, 0.0125), b(32000, 0.015), b(85000, 0.0175), b(330000, 0.035), top(0.045),
		}},
		{Jurisdiction: domain.JurisdictionVIC, Brackets: []domain.StampDutyBracket{
			b(25000, 0.014), b(130000, 0.024), b(960000, 0.06), top(0.065),
		}},
		{Jurisdiction: domain.JurisdictionQLD, Brackets: []domain.StampDutyBracket{
			b(5000, 0.015), b(75000, 0.035), b(540000, 0.045), b(1000000, 0.0575), top(0.0575),
		}},
		{Jurisdiction: domain.JurisdictionSA, Brackets: []domain.StampDutyBracket{
			b(12000, 0.01), b(30000, 0.02), b(50000, 0.03), b(100000, 0.035), b(200000, 0.04),
			b(250000, 0.045), b(300000, 0.05), b(500000, 0.055), top(0.07),
		}},
		{Jurisdiction: domain.JurisdictionWA, Brackets: []domain.StampDutyBracket{
			b(120000, 0.019), b(150000, 0.028), b(360000, 0.038), b(725000, 0.049), top(0.051),
		}},
		{Jurisdiction: domain.JurisdictionTAS, Brackets: []domain.StampDutyBracket{
			b(3000, 0.0175), b(25000, 0.02), b(75000, 0.025), b(200000, 0.035), b(375000, 0.04),
			b(725000, 0.045), top(0.045),
		}},
		{Jurisdiction: domain.JurisdictionACT, Brackets: []domain.StampDutyBracket{
			b(200000, 0), b(300000, 0.022), b(500000, 0.042), b(750000, 0.0465),
			b(1000000, 0.049), b(1455000, 0.052), top(0.06),
		}},
		{Jurisdiction: domain.JurisdictionNT, Brackets: []domain.StampDutyBracket{
			b(525000, 0), b(3000000, 0.0495), b(5000000, 0.057), top(0.059),
		}},
	}
}

// StampDutyTable computes transfer duty from validated per-jurisdiction
// bracket schedules. It is immutable after construction.
type StampDutyTable struct {
	order              []domain.Jurisdiction
	schedules          map[domain.Jurisdiction]domain.DutySchedule
	firstHomeThreshold decimal.Decimal
	logger             Logger
}

// NewStampDutyTable validates every schedule and indexes them. The first
// schedule is the fallback for unknown jurisdictions. First home buyers pay
// no duty on prices strictly below firstHomeThreshold.
func NewStampDutyTable(schedules []domain.DutySchedule, firstHomeThreshold decimal.Decimal) (*StampDutyTable, error) {
	if len(schedules) == 0 {
		return nil, fmt.Errorf("stamp duty table: at least one schedule is required")
	}
	t := &StampDutyTable{
		schedules:          make(map[domain.Jurisdiction]domain.DutySchedule, len(schedules)),
		firstHomeThreshold: firstHomeThreshold,
		logger:             NopLogger{},
	}
	for _, s := range schedules {
		if err := s.Validate(); err != nil {
			return nil, err
		}
		code := s.Jurisdiction.Normalize()
		if _, dup := t.schedules[code]; dup {
			return nil, fmt.Errorf("stamp duty table: duplicate schedule for %s", code)
		}
		s.Jurisdiction = code
		t.schedules[code] = s
		t.order = append(t.order, code)
	}
	return t, nil
}

// DefaultStampDutyTable builds the embedded table with the default first
// home buyer threshold.
func DefaultStampDutyTable() *StampDutyTable {
	return defaultStampDutyTable(domain.DefaultLendingRules().FirstHomeDutyCutoff)
}

// defaultStampDutyTable builds the embedded schedules with the given first
// home buyer threshold.
func defaultStampDutyTable(firstHomeThreshold decimal.Decimal) *StampDutyTable {
	t, err := NewStampDutyTable(DefaultDutySchedules(), firstHomeThreshold)
	if err != nil {
		panic(fmt.Sprintf("embedded stamp duty table is invalid: %v", err))
	}
	return t
}

// withLogger returns a shallow copy that logs fallbacks to l.
func (t *StampDutyTable) withLogger(l Logger) *StampDutyTable {
	c := *t
	c.logger = loggerOrNop(l)
	return &c
}

// Jurisdictions lists the known codes in table order.
func (t *StampDutyTable) Jurisdictions() []domain.Jurisdiction {
	out := make([]domain.Jurisdiction, len(t.order))
	copy(out, t.order)
	return out
}

// Schedule resolves a jurisdiction code, case-insensitively, falling back to
// the first schedule. The boolean reports whether the code was known.
func (t *StampDutyTable) Schedule(j domain.Jurisdiction) (domain.DutySchedule, bool) {
	if s, ok := t.schedules[j.Normalize()]; ok {
		return s, true
	}
	return t.schedules[t.order[0]], false
}

// DutyFor returns the transfer duty payable on price in the given jurisdiction.
func (t *StampDutyTable) DutyFor(j domain.Jurisdiction, price decimal.Decimal, isFirstHomeBuyer bool) decimal.Decimal {
	if isFirstHomeBuyer && price.LessThan(t.firstHomeThreshold) {
		return decimal.Zero
	}
	schedule, known := t.Schedule(j)
	if !known {
		t.logger.Debugf("unknown jurisdiction %q, using %s duty schedule", j, schedule.Jurisdiction)
	}

	total := decimal.Zero
	remaining := price
	prevUpper := decimal.Zero
	for _, b := range schedule.Brackets {
		if !remaining.IsPositive() {
			break
		}
		taxable := remaining
		if !b.Unbounded() {
			taxable = decimal.Min(remaining, b.Upper.Sub(prevUpper))
			prevUpper = *b.Upper
		}
		total = total.Add(taxable.Mul(b.Rate))
		remaining = remaining.Sub(taxable)
	}
	return total
}
