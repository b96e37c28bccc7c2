package calculation

import (
	"github.com/homewise/affordability/internal/domain"
	"github.com/homewise/affordability/pkg/money"
	"github.com/shopspring/decimal"
)

// ScenarioEvaluator compares a target price with a computed result.
// The deposit and income suggestions are linear rules of thumb on the
// shortfall, not inverses of the serviceability calculation.
type ScenarioEvaluator struct {
	rules domain.LendingRules
}

// NewScenarioEvaluator creates an evaluator over the given rules.
func NewScenarioEvaluator(rules domain.LendingRules) *ScenarioEvaluator {
	return &ScenarioEvaluator{rules: rules}
}

// Evaluate runs the gap analysis of targetPrice against result.MaxPropertyPrice.
func (ev *ScenarioEvaluator) Evaluate(result domain.AffordabilityResult, targetPrice decimal.Decimal) (domain.ScenarioResult, error) {
	if targetPrice.IsNegative() {
		return domain.ScenarioResult{}, &domain.ValidationError{Field: "target_price", Reason: "cannot be negative"}
	}

	maxPrice := result.MaxPropertyPrice
	sr := domain.ScenarioResult{
		IsAffordable:  targetPrice.LessThanOrEqual(maxPrice),
		TargetPrice:   targetPrice,
		MaxAffordable: maxPrice,
		Shortfall:     money.NonNegative(targetPrice.Sub(maxPrice)),
		Surplus:       money.NonNegative(maxPrice.Sub(targetPrice)),
	}

	if !sr.IsAffordable {
		sr.AdditionalDepositNeeded = money.Cents(sr.Shortfall.Mul(ev.rules.ScenarioDepositShare))
		sr.AdditionalIncomeNeeded = money.Cents(sr.Shortfall.Mul(ev.rules.ScenarioIncomeShare))
		sr.Recommendations = []string{
			"Increase deposit by " + money.FormatWhole(sr.AdditionalDepositNeeded) + ", or",
			"Increase annual income by " + money.FormatWhole(sr.AdditionalIncomeNeeded) + ", or",
			"Reduce monthly expenses to improve serviceability",
			"Consider properties up to " + money.FormatWhole(maxPrice),
		}
		return sr, nil
	}

	sr.Recommendations = []string{
		"This property is within your budget!",
		"You have " + money.FormatWhole(sr.Surplus) + " buffer for negotiation or upgrades",
	}
	return sr, nil
}
