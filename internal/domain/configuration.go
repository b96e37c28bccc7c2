package domain

import "github.com/shopspring/decimal"

// ScenarioTarget names a property price to evaluate against the profile.
type ScenarioTarget struct {
	Name        string          `yaml:"name" json:"name"`
	TargetPrice decimal.Decimal `yaml:"target_price" json:"target_price"`
}

// Configuration is the complete input file: one household profile, the loan
// terms (rate optional, resolved at run time when absent), rule overrides,
// an optional replacement duty table, and target prices to test.
type Configuration struct {
	Profile   FinancialProfile `yaml:"profile" json:"profile"`
	Loan      LoanInput        `yaml:"loan" json:"loan"`
	Rules     LendingRules     `yaml:"rules" json:"rules"`
	StampDuty []DutySchedule   `yaml:"stamp_duty,omitempty" json:"stamp_duty,omitempty"`
	Scenarios []ScenarioTarget `yaml:"scenarios,omitempty" json:"scenarios,omitempty"`
}

// LoanInput is LoanTerms as written in an input file, where the rate may be omitted.
type LoanInput struct {
	BaseAnnualRate *decimal.Decimal `yaml:"base_annual_rate,omitempty" json:"base_annual_rate,omitempty"`
	TermYears      int              `yaml:"term_years,omitempty" json:"term_years,omitempty"`
}

// Terms resolves the input into LoanTerms using fallbackRate when no rate was given.
func (l LoanInput) Terms(fallbackRate decimal.Decimal) LoanTerms {
	rate := fallbackRate
	if l.BaseAnnualRate != nil {
		rate = *l.BaseAnnualRate
	}
	term := l.TermYears
	if term == 0 {
		term = DefaultTermYears
	}
	return LoanTerms{BaseAnnualRate: rate, TermYears: term}
}

// NewConfiguration returns a Configuration pre-populated with defaults so a
// decoder only overrides the keys it finds.
func NewConfiguration() Configuration {
	return Configuration{
		Loan:  LoanInput{TermYears: DefaultTermYears},
		Rules: DefaultLendingRules(),
	}
}

// ScenarioReport pairs a named target with its evaluation.
type ScenarioReport struct {
	Name   string         `json:"name" yaml:"name"`
	Result ScenarioResult `json:"result" yaml:"result"`
}

// Report is everything one run produces: consumed by the output formatters
// and the HTTP layer.
type Report struct {
	Profile        FinancialProfile    `json:"profile" yaml:"profile"`
	Terms          LoanTerms           `json:"loan_terms" yaml:"loan_terms"`
	Rate           *RateQuote          `json:"rate,omitempty" yaml:"rate,omitempty"`
	Serviceability Serviceability      `json:"serviceability" yaml:"serviceability"`
	Result         AffordabilityResult `json:"result" yaml:"result"`
	Scenarios      []ScenarioReport    `json:"scenarios,omitempty" yaml:"scenarios,omitempty"`
}
