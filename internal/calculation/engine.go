package calculation

import (
	"context"
	"fmt"

	"github.com/homewise/affordability/internal/domain"
	"github.com/shopspring/decimal"
)

// CalculationEngine orchestrates the affordability calculations from one set
// of lending rules and one stamp duty table. It holds no mutable state once
// configured and is safe for concurrent use.
type CalculationEngine struct {
	Rules          domain.LendingRules
	StampDuty      *StampDutyTable
	Serviceability *ServiceabilityEngine
	Analyzer       *AffordabilityAnalyzer
	Scenarios      *ScenarioEvaluator
	Logger         Logger
}

// NewCalculationEngine creates an engine. A nil table selects the embedded
// schedules with the first home cutoff from rules; a nil logger discards output.
func NewCalculationEngine(rules domain.LendingRules, table *StampDutyTable, logger Logger) *CalculationEngine {
	if table == nil {
		table = defaultStampDutyTable(rules.FirstHomeDutyCutoff)
	}
	ce := &CalculationEngine{Rules: rules, StampDuty: table}
	ce.SetLogger(logger)
	return ce
}

// NewConfiguredEngine creates an engine from a configuration's rules and its
// optional stamp duty schedules.
func NewConfiguredEngine(cfg *domain.Configuration, logger Logger) (*CalculationEngine, error) {
	var table *StampDutyTable
	if len(cfg.StampDuty) > 0 {
		t, err := NewStampDutyTable(cfg.StampDuty, cfg.Rules.FirstHomeDutyCutoff)
		if err != nil {
			return nil, fmt.Errorf("invalid stamp duty table: %w", err)
		}
		table = t
	}
	return NewCalculationEngine(cfg.Rules, table, logger), nil
}

// NewDefaultCalculationEngine creates an engine over DefaultLendingRules and
// the embedded duty table.
func NewDefaultCalculationEngine() *CalculationEngine {
	return NewCalculationEngine(domain.DefaultLendingRules(), nil, nil)
}

// SetLogger sets the logger for the engine and its components. If nil is
// provided, a no-op logger is used. Call it before the engine is shared.
func (ce *CalculationEngine) SetLogger(l Logger) {
	ce.Logger = loggerOrNop(l)
	ce.StampDuty = ce.StampDuty.withLogger(ce.Logger)
	ce.Serviceability = NewServiceabilityEngine(ce.Rules, ce.Logger)
	ce.Analyzer = NewAffordabilityAnalyzer(ce.Rules, ce.Serviceability, ce.StampDuty, ce.Logger)
	ce.Scenarios = NewScenarioEvaluator(ce.Rules)
}

// Analyze computes the affordability result for a validated profile.
func (ce *CalculationEngine) Analyze(profile domain.FinancialProfile, terms domain.LoanTerms) domain.AffordabilityResult {
	return ce.Analyzer.Analyze(profile, terms)
}

// Evaluate runs a target price against a previously computed result.
func (ce *CalculationEngine) Evaluate(result domain.AffordabilityResult, targetPrice decimal.Decimal) (domain.ScenarioResult, error) {
	return ce.Scenarios.Evaluate(result, targetPrice)
}

// Run calculates the full report for a configuration: the affordability
// result, its serviceability breakdown, and every configured scenario.
func (ce *CalculationEngine) Run(ctx context.Context, cfg *domain.Configuration, terms domain.LoanTerms) (*domain.Report, error) {
	ce.Logger.Debugf("running affordability for %s at %s over %d years",
		cfg.Profile.Jurisdiction, terms.BaseAnnualRate.String(), terms.TermYears)

	result, svc := ce.Analyzer.analyze(cfg.Profile, terms)
	report := &domain.Report{
		Profile:        cfg.Profile,
		Terms:          terms,
		Serviceability: svc,
		Result:         result,
	}

	for i, target := range cfg.Scenarios {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		name := target.Name
		if name == "" {
			name = fmt.Sprintf("Scenario %d", i+1)
		}
		sr, err := ce.Scenarios.Evaluate(result, target.TargetPrice)
		if err != nil {
			return nil, fmt.Errorf("scenario %q: %w", name, err)
		}
		report.Scenarios = append(report.Scenarios, domain.ScenarioReport{Name: name, Result: sr})
	}

	ce.Logger.Infof("max loan %s, max price %s, rating %s",
		result.MaxLoanAmount.StringFixed(2), result.MaxPropertyPrice.StringFixed(2), result.AffordabilityRating)
	return report, nil
}
