package config

import (
	"fmt"
	"os"

	"github.com/homewise/affordability/internal/domain"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// InputParser handles parsing of input configuration files
type InputParser struct{}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads configuration from a YAML or JSON file
func (ip *InputParser) LoadFromFile(filename string) (*domain.Configuration, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return ip.Parse(data)
}

// Parse decodes a configuration document over the defaults and validates it.
// Keys absent from the document keep their default values.
func (ip *InputParser) Parse(data []byte) (*domain.Configuration, error) {
	config := domain.NewConfiguration()
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := ip.ValidateConfiguration(&config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &config, nil
}

// ValidateConfiguration validates the loaded configuration
func (ip *InputParser) ValidateConfiguration(config *domain.Configuration) error {
	if err := config.Profile.Validate(); err != nil {
		return fmt.Errorf("profile: %w", err)
	}

	if err := ip.validateLoan(&config.Loan); err != nil {
		return fmt.Errorf("loan: %w", err)
	}

	if err := config.Rules.Validate(); err != nil {
		return fmt.Errorf("rules: %w", err)
	}

	seen := make(map[domain.Jurisdiction]bool, len(config.StampDuty))
	for _, schedule := range config.StampDuty {
		if err := schedule.Validate(); err != nil {
			return err
		}
		code := schedule.Jurisdiction.Normalize()
		if seen[code] {
			return fmt.Errorf("duty schedule %s: defined more than once", code)
		}
		seen[code] = true
	}

	for i, scenario := range config.Scenarios {
		if scenario.TargetPrice.IsNegative() {
			return fmt.Errorf("scenario %d validation failed: %w", i,
				&domain.ValidationError{Field: "target_price", Reason: "cannot be negative"})
		}
	}

	return nil
}

func (ip *InputParser) validateLoan(loan *domain.LoanInput) error {
	if loan.BaseAnnualRate != nil && loan.BaseAnnualRate.IsNegative() {
		return &domain.ValidationError{Field: "base_annual_rate", Reason: "cannot be negative"}
	}
	if loan.TermYears < 0 {
		return &domain.ValidationError{Field: "term_years", Reason: "must be positive"}
	}
	return nil
}

// CreateExampleConfiguration returns a complete example input: the
// reference household with two target prices.
func (ip *InputParser) CreateExampleConfiguration() *domain.Configuration {
	config := domain.NewConfiguration()
	rate := decimal.NewFromFloat(0.0685)
	config.Loan.BaseAnnualRate = &rate
	config.Profile = domain.FinancialProfile{
		Deposit:         decimal.NewFromInt(100000),
		AnnualIncome:    decimal.NewFromInt(85000),
		MonthlyExpenses: decimal.NewFromInt(3000),
		EmploymentType:  domain.EmploymentFullTime,
		Jurisdiction:    domain.JurisdictionNSW,
	}
	config.Scenarios = []domain.ScenarioTarget{
		{Name: "Two bedroom unit", TargetPrice: decimal.NewFromInt(320000)},
		{Name: "Family house", TargetPrice: decimal.NewFromInt(650000)},
	}
	return &config
}
