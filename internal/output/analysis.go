package output

import (
	"github.com/homewise/affordability/internal/domain"
	"github.com/shopspring/decimal"
)

// ScenarioOverview summarizes the configured target prices against the result.
type ScenarioOverview struct {
	AffordableCount  int
	BestAffordable   string          // highest affordable target
	BestTargetPrice  decimal.Decimal // its price
	ClosestStretch   string          // unaffordable target with the smallest shortfall
	ClosestShortfall decimal.Decimal
}

// AnalyzeScenarios picks the most expensive reachable target and the
// nearest out-of-reach one. Extracted from the console logic for testability.
func AnalyzeScenarios(report *domain.Report) ScenarioOverview {
	var o ScenarioOverview
	for _, sc := range report.Scenarios {
		r := sc.Result
		if r.IsAffordable {
			o.AffordableCount++
			if o.BestAffordable == "" || r.TargetPrice.GreaterThan(o.BestTargetPrice) {
				o.BestAffordable = sc.Name
				o.BestTargetPrice = r.TargetPrice
			}
			continue
		}
		if o.ClosestStretch == "" || r.Shortfall.LessThan(o.ClosestShortfall) {
			o.ClosestStretch = sc.Name
			o.ClosestShortfall = r.Shortfall
		}
	}
	return o
}
