package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// LendingRules holds every constant the serviceability and affordability
// calculations use. Build it once with DefaultLendingRules (optionally
// overridden from an input file) and pass it to the engine.
type LendingRules struct {
	// Serviceability
	StressBuffer                decimal.Decimal                    `yaml:"stress_buffer" json:"stress_buffer"`
	LivingExpenseBase           decimal.Decimal                    `yaml:"living_expense_base" json:"living_expense_base"`
	LivingExpensePerDependent   decimal.Decimal                    `yaml:"living_expense_per_dependent" json:"living_expense_per_dependent"`
	SurplusRepaymentShare       decimal.Decimal                    `yaml:"surplus_repayment_share" json:"surplus_repayment_share"`
	IncomeRepaymentShare        decimal.Decimal                    `yaml:"income_repayment_share" json:"income_repayment_share"`
	IncomeMultipleCap           decimal.Decimal                    `yaml:"income_multiple_cap" json:"income_multiple_cap"`
	EmploymentMultipliers       map[EmploymentType]decimal.Decimal `yaml:"employment_multipliers" json:"employment_multipliers"`
	DefaultEmploymentMultiplier decimal.Decimal                    `yaml:"default_employment_multiplier" json:"default_employment_multiplier"`

	// Upfront costs
	LegalFees          decimal.Decimal `yaml:"legal_fees" json:"legal_fees"`
	BuildingInspection decimal.Decimal `yaml:"building_inspection" json:"building_inspection"`
	LoanApplicationFee decimal.Decimal `yaml:"loan_application_fee" json:"loan_application_fee"`
	LMIThresholdLVR    decimal.Decimal `yaml:"lmi_threshold_lvr" json:"lmi_threshold_lvr"` // percent
	LMIRate            decimal.Decimal `yaml:"lmi_rate" json:"lmi_rate"`

	// Rating bands on the debt-to-income ratio (upper bounds, exclusive)
	ExcellentBelow decimal.Decimal `yaml:"excellent_below" json:"excellent_below"`
	GoodBelow      decimal.Decimal `yaml:"good_below" json:"good_below"`
	FairBelow      decimal.Decimal `yaml:"fair_below" json:"fair_below"`

	// Recommendation triggers
	HighLVRWarning      decimal.Decimal `yaml:"high_lvr_warning" json:"high_lvr_warning"` // percent
	HighDebtToIncome    decimal.Decimal `yaml:"high_debt_to_income" json:"high_debt_to_income"`
	BudgetPriceCeiling  decimal.Decimal `yaml:"budget_price_ceiling" json:"budget_price_ceiling"`
	FirstHomeDutyCutoff decimal.Decimal `yaml:"first_home_duty_cutoff" json:"first_home_duty_cutoff"`

	// Scenario heuristics
	ScenarioDepositShare decimal.Decimal `yaml:"scenario_deposit_share" json:"scenario_deposit_share"`
	ScenarioIncomeShare  decimal.Decimal `yaml:"scenario_income_share" json:"scenario_income_share"`
}

// DefaultLendingRules returns the calibrated constants.
func DefaultLendingRules() LendingRules {
	return LendingRules{
		StressBuffer:              decimal.NewFromFloat(0.03),
		LivingExpenseBase:         decimal.NewFromInt(2000),
		LivingExpensePerDependent: decimal.NewFromInt(500),
		SurplusRepaymentShare:     decimal.NewFromFloat(0.8),
		IncomeRepaymentShare:      decimal.NewFromFloat(0.30),
		IncomeMultipleCap:         decimal.NewFromInt(6),
		EmploymentMultipliers: map[EmploymentType]decimal.Decimal{
			EmploymentFullTime:     decimal.NewFromInt(1),
			EmploymentPartTime:     decimal.NewFromFloat(0.9),
			EmploymentCasual:       decimal.NewFromFloat(0.8),
			EmploymentSelfEmployed: decimal.NewFromFloat(0.8),
			EmploymentContract:     decimal.NewFromFloat(0.85),
		},
		DefaultEmploymentMultiplier: decimal.NewFromFloat(0.8),

		LegalFees:          decimal.NewFromInt(1500),
		BuildingInspection: decimal.NewFromInt(500),
		LoanApplicationFee: decimal.NewFromInt(600),
		LMIThresholdLVR:    decimal.NewFromInt(80),
		LMIRate:            decimal.NewFromFloat(0.02),

		ExcellentBelow: decimal.NewFromFloat(0.25),
		GoodBelow:      decimal.NewFromFloat(0.30),
		FairBelow:      decimal.NewFromFloat(0.35),

		HighLVRWarning:      decimal.NewFromInt(90),
		HighDebtToIncome:    decimal.NewFromFloat(0.30),
		BudgetPriceCeiling:  decimal.NewFromInt(500000),
		FirstHomeDutyCutoff: decimal.NewFromInt(650000),

		ScenarioDepositShare: decimal.NewFromFloat(0.2),
		ScenarioIncomeShare:  decimal.NewFromFloat(0.15),
	}
}

// EmploymentMultiplier returns the income shading for the given type, falling
// back to DefaultEmploymentMultiplier for anything not in the map.
func (r LendingRules) EmploymentMultiplier(t EmploymentType) decimal.Decimal {
	if m, ok := r.EmploymentMultipliers[t.Normalize()]; ok {
		return m
	}
	return r.DefaultEmploymentMultiplier
}

// Validate checks the rules are internally consistent.
func (r LendingRules) Validate() error {
	nonNegative := map[string]decimal.Decimal{
		"stress_buffer":                 r.StressBuffer,
		"living_expense_base":           r.LivingExpenseBase,
		"living_expense_per_dependent":  r.LivingExpensePerDependent,
		"surplus_repayment_share":       r.SurplusRepaymentShare,
		"income_repayment_share":        r.IncomeRepaymentShare,
		"income_multiple_cap":           r.IncomeMultipleCap,
		"default_employment_multiplier": r.DefaultEmploymentMultiplier,
		"legal_fees":                    r.LegalFees,
		"building_inspection":           r.BuildingInspection,
		"loan_application_fee":          r.LoanApplicationFee,
		"lmi_threshold_lvr":             r.LMIThresholdLVR,
		"lmi_rate":                      r.LMIRate,
		"budget_price_ceiling":          r.BudgetPriceCeiling,
		"first_home_duty_cutoff":        r.FirstHomeDutyCutoff,
		"scenario_deposit_share":        r.ScenarioDepositShare,
		"scenario_income_share":         r.ScenarioIncomeShare,
	}
	for field, v := range nonNegative {
		if v.IsNegative() {
			return invalid(field, "cannot be negative")
		}
	}
	for t, m := range r.EmploymentMultipliers {
		if m.IsNegative() {
			return invalid(fmt.Sprintf("employment_multipliers.%s", t), "cannot be negative")
		}
	}
	if !(r.ExcellentBelow.LessThanOrEqual(r.GoodBelow) && r.GoodBelow.LessThanOrEqual(r.FairBelow)) {
		return invalid("rating bands", "must be non-decreasing (excellent <= good <= fair)")
	}
	return nil
}
