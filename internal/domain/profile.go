package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// EmploymentType classifies how stable a lender considers the applicant's income.
type EmploymentType string

const (
	EmploymentFullTime     EmploymentType = "full_time"
	EmploymentPartTime     EmploymentType = "part_time"
	EmploymentCasual       EmploymentType = "casual"
	EmploymentSelfEmployed EmploymentType = "self_employed"
	EmploymentContract     EmploymentType = "contract"
)

// Normalize lower-cases the value and maps spaces and hyphens to underscores.
func (e EmploymentType) Normalize() EmploymentType {
	s := strings.ToLower(strings.TrimSpace(string(e)))
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, "-", "_")
	return EmploymentType(s)
}

// Jurisdiction is an Australian state or territory code.
type Jurisdiction string

const (
	JurisdictionNSW Jurisdiction = "NSW"
	JurisdictionVIC Jurisdiction = "VIC"
	JurisdictionQLD Jurisdiction = "QLD"
	JurisdictionSA  Jurisdiction = "SA"
	JurisdictionWA  Jurisdiction = "WA"
	JurisdictionTAS Jurisdiction = "TAS"
	JurisdictionACT Jurisdiction = "ACT"
	JurisdictionNT  Jurisdiction = "NT"
)

// DefaultJurisdiction is used when a profile names no jurisdiction or one the
// stamp duty table does not know. It is the first entry of the embedded table.
const DefaultJurisdiction = JurisdictionNSW

// Normalize upper-cases and trims the code. It does not resolve unknown codes.
func (j Jurisdiction) Normalize() Jurisdiction {
	return Jurisdiction(strings.ToUpper(strings.TrimSpace(string(j))))
}

// MaxDependents bounds FinancialProfile.Dependents.
const MaxDependents = 20

// FinancialProfile is the household input to one affordability calculation.
// Monthly figures are OtherIncome, MonthlyExpenses and ExistingDebts; the rest are totals.
type FinancialProfile struct {
	Deposit          decimal.Decimal `yaml:"deposit" json:"deposit"`
	AnnualIncome     decimal.Decimal `yaml:"annual_income" json:"annual_income"`
	MonthlyExpenses  decimal.Decimal `yaml:"monthly_expenses" json:"monthly_expenses"`
	OtherIncome      decimal.Decimal `yaml:"other_income,omitempty" json:"other_income"`
	Dependents       int             `yaml:"dependents,omitempty" json:"dependents"`
	EmploymentType   EmploymentType  `yaml:"employment_type" json:"employment_type"`
	ExistingDebts    decimal.Decimal `yaml:"existing_debts,omitempty" json:"existing_debts"`
	Jurisdiction     Jurisdiction    `yaml:"jurisdiction,omitempty" json:"jurisdiction"`
	IsFirstHomeBuyer bool            `yaml:"is_first_home_buyer,omitempty" json:"is_first_home_buyer"`
}

// Validate rejects negative money, out-of-range dependents and a missing
// employment type. Unknown employment types and jurisdictions are accepted;
// the engine resolves them to documented defaults.
func (p *FinancialProfile) Validate() error {
	money := []struct {
		field string
		value decimal.Decimal
	}{
		{"deposit", p.Deposit},
		{"annual_income", p.AnnualIncome},
		{"monthly_expenses", p.MonthlyExpenses},
		{"other_income", p.OtherIncome},
		{"existing_debts", p.ExistingDebts},
	}
	for _, m := range money {
		if m.value.IsNegative() {
			return invalid(m.field, "cannot be negative")
		}
	}
	if p.Dependents < 0 || p.Dependents > MaxDependents {
		return invalid("dependents", "must be between 0 and 20")
	}
	if strings.TrimSpace(string(p.EmploymentType)) == "" {
		return invalid("employment_type", "is required")
	}
	return nil
}

// DefaultTermYears is the loan term used when none is supplied.
const DefaultTermYears = 30

// LoanTerms carries the resolved base rate (a fraction, e.g. 0.0685) and term.
type LoanTerms struct {
	BaseAnnualRate decimal.Decimal `yaml:"base_annual_rate" json:"base_annual_rate"`
	TermYears      int             `yaml:"term_years" json:"term_years"`
}

// Validate enforces rate >= 0 and term > 0.
func (t LoanTerms) Validate() error {
	if t.BaseAnnualRate.IsNegative() {
		return invalid("base_annual_rate", "cannot be negative")
	}
	if t.TermYears <= 0 {
		return invalid("term_years", "must be positive")
	}
	return nil
}
