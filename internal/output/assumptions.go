package output

import (
	"fmt"

	"github.com/homewise/affordability/internal/domain"
)

// GenerateAssumptions lists the constants behind a report: the result's own
// assumptions plus where the interest rate came from.
func GenerateAssumptions(report *domain.Report) []string {
	lines := report.Result.Assumptions.Describe()
	if q := report.Rate; q != nil {
		lines = append(lines, fmt.Sprintf("Cash rate: %s (%s, effective %s)",
			FormatPercentage(q.CashRatePercent), q.Source, q.EffectiveDate))
	}
	jurisdiction := report.Profile.Jurisdiction.Normalize()
	if jurisdiction == "" {
		jurisdiction = domain.DefaultJurisdiction
	}
	lines = append(lines, fmt.Sprintf("Stamp duty: %s schedule", jurisdiction))
	return lines
}
