package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// AffordabilityRating buckets the debt-to-income ratio.
type AffordabilityRating string

const (
	RatingExcellent AffordabilityRating = "Excellent"
	RatingGood      AffordabilityRating = "Good"
	RatingFair      AffordabilityRating = "Fair"
	RatingStretched AffordabilityRating = "Stretched"
)

// Assumptions records the constants a result was computed with so a client
// can audit it without re-deriving them.
type Assumptions struct {
	InterestRate       decimal.Decimal `json:"interest_rate" yaml:"interest_rate"`
	StressTestRate     decimal.Decimal `json:"stress_test_rate" yaml:"stress_test_rate"`
	LoanTermYears      int             `json:"loan_term_years" yaml:"loan_term_years"`
	LegalFees          decimal.Decimal `json:"legal_fees" yaml:"legal_fees"`
	BuildingInspection decimal.Decimal `json:"building_inspection" yaml:"building_inspection"`
	LoanApplicationFee decimal.Decimal `json:"loan_application_fee" yaml:"loan_application_fee"`
	LMIRate            decimal.Decimal `json:"lmi_rate" yaml:"lmi_rate"`
	LMI                decimal.Decimal `json:"lmi" yaml:"lmi"`
}

// Describe renders the assumptions as display lines.
func (a Assumptions) Describe() []string {
	hundred := decimal.NewFromInt(100)
	return []string{
		fmt.Sprintf("Interest rate: %s%%", a.InterestRate.Mul(hundred).StringFixed(2)),
		fmt.Sprintf("Loan term: %d years", a.LoanTermYears),
		fmt.Sprintf("Stress test rate: %s%%", a.StressTestRate.Mul(hundred).StringFixed(2)),
		fmt.Sprintf("Legal fees: $%s", a.LegalFees.StringFixed(0)),
		fmt.Sprintf("Building inspection: $%s", a.BuildingInspection.StringFixed(0)),
		fmt.Sprintf("Loan application fee: $%s", a.LoanApplicationFee.StringFixed(0)),
		fmt.Sprintf("LMI estimate: $%s", a.LMI.StringFixed(2)),
	}
}

// AffordabilityResult is the complete output of one affordability analysis.
// Currency values are rounded to cents; the *Display fields are rounded to the
// nearest thousand for presentation only. Scenario comparisons use the cent values.
type AffordabilityResult struct {
	MaxLoanAmount           decimal.Decimal     `json:"max_loan_amount" yaml:"max_loan_amount"`
	MaxPropertyPrice        decimal.Decimal     `json:"max_property_price" yaml:"max_property_price"`
	MaxLoanAmountDisplay    decimal.Decimal     `json:"max_loan_amount_display" yaml:"max_loan_amount_display"`
	MaxPropertyPriceDisplay decimal.Decimal     `json:"max_property_price_display" yaml:"max_property_price_display"`
	MonthlyRepayment        decimal.Decimal     `json:"monthly_repayment" yaml:"monthly_repayment"`
	InterestRate            decimal.Decimal     `json:"interest_rate" yaml:"interest_rate"`
	LoanToValueRatio        decimal.Decimal     `json:"loan_to_value_ratio" yaml:"loan_to_value_ratio"`
	StampDuty               decimal.Decimal     `json:"stamp_duty" yaml:"stamp_duty"`
	TotalUpfrontCosts       decimal.Decimal     `json:"total_upfront_costs" yaml:"total_upfront_costs"`
	DebtToIncomeRatio       *decimal.Decimal    `json:"debt_to_income_ratio" yaml:"debt_to_income_ratio"` // nil when annual income is zero
	AffordabilityRating     AffordabilityRating `json:"affordability_rating" yaml:"affordability_rating"`
	Recommendations         []string            `json:"recommendations" yaml:"recommendations"`
	Assumptions             Assumptions         `json:"assumptions" yaml:"assumptions"`
}

// ScenarioResult is the gap analysis of a target price against a result.
type ScenarioResult struct {
	IsAffordable            bool            `json:"is_affordable" yaml:"is_affordable"`
	TargetPrice             decimal.Decimal `json:"target_price" yaml:"target_price"`
	MaxAffordable           decimal.Decimal `json:"max_affordable" yaml:"max_affordable"`
	Shortfall               decimal.Decimal `json:"shortfall" yaml:"shortfall"`
	Surplus                 decimal.Decimal `json:"surplus" yaml:"surplus"`
	AdditionalDepositNeeded decimal.Decimal `json:"additional_deposit_needed" yaml:"additional_deposit_needed"`
	AdditionalIncomeNeeded  decimal.Decimal `json:"additional_income_needed" yaml:"additional_income_needed"`
	Recommendations         []string        `json:"recommendations" yaml:"recommendations"`
}

// Serviceability is the step-by-step breakdown behind a maximum loan figure.
type Serviceability struct {
	MonthlyIncome          decimal.Decimal `json:"monthly_income" yaml:"monthly_income"`
	EmploymentMultiplier   decimal.Decimal `json:"employment_multiplier" yaml:"employment_multiplier"`
	AdjustedIncome         decimal.Decimal `json:"adjusted_income" yaml:"adjusted_income"`
	MinLivingExpenses      decimal.Decimal `json:"min_living_expenses" yaml:"min_living_expenses"`
	EffectiveExpenses      decimal.Decimal `json:"effective_expenses" yaml:"effective_expenses"`
	Commitments            decimal.Decimal `json:"commitments" yaml:"commitments"`
	Surplus                decimal.Decimal `json:"surplus" yaml:"surplus"`
	StressRate             decimal.Decimal `json:"stress_rate" yaml:"stress_rate"`
	MaxMonthlyRepayment    decimal.Decimal `json:"max_monthly_repayment" yaml:"max_monthly_repayment"`
	LoanFromServiceability decimal.Decimal `json:"loan_from_serviceability" yaml:"loan_from_serviceability"`
	IncomeCap              decimal.Decimal `json:"income_cap" yaml:"income_cap"`
	MaxLoan                decimal.Decimal `json:"max_loan" yaml:"max_loan"`
}
