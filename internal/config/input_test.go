package config

import (
	"os"
	"testing"

	"github.com/homewise/affordability/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestNewInputParser(t *testing.T) {
	parser := NewInputParser()
	assert.NotNil(t, parser)
}

func writeTempConfig(t *testing.T, content string) string {
	t.Helper()
	tmpfile, err := os.CreateTemp("", "test_config_*.yaml")
	require.NoError(t, err)
	t.Cleanup(func() { os.Remove(tmpfile.Name()) })

	_, err = tmpfile.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, tmpfile.Close())
	return tmpfile.Name()
}

func TestLoadFromFile_Success(t *testing.T) {
	testConfig := "profile:\n" +
		"  deposit: 100000\n" +
		"  annual_income: 85000\n" +
		"  monthly_expenses: 3000\n" +
		"  employment_type: full_time\n" +
		"  jurisdiction: nsw\n" +
		"loan:\n" +
		"  base_annual_rate: 0.0685\n" +
		"scenarios:\n" +
		"  - name: \"Unit\"\n" +
		"    target_price: 320000\n" +
		"  - name: \"House\"\n" +
		"    target_price: 650000\n"

	parser := NewInputParser()
	config, err := parser.LoadFromFile(writeTempConfig(t, testConfig))

	require.NoError(t, err)
	assert.True(t, config.Profile.Deposit.Equal(decimal.NewFromInt(100000)))
	assert.Equal(t, domain.EmploymentFullTime, config.Profile.EmploymentType)
	assert.Equal(t, domain.Jurisdiction("nsw"), config.Profile.Jurisdiction)
	require.NotNil(t, config.Loan.BaseAnnualRate)
	assert.True(t, config.Loan.BaseAnnualRate.Equal(decimal.NewFromFloat(0.0685)))
	assert.Equal(t, domain.DefaultTermYears, config.Loan.TermYears)
	assert.Len(t, config.Scenarios, 2)

	// rules not mentioned in the file keep their defaults
	assert.True(t, config.Rules.StressBuffer.Equal(decimal.NewFromFloat(0.03)))
	assert.Len(t, config.Rules.EmploymentMultipliers, 5)
}

func TestLoadFromFile_RuleOverrides(t *testing.T) {
	testConfig := "profile:\n" +
		"  deposit: 50000\n" +
		"  annual_income: 120000\n" +
		"  monthly_expenses: 4000\n" +
		"  employment_type: contract\n" +
		"loan:\n" +
		"  term_years: 25\n" +
		"rules:\n" +
		"  stress_buffer: 0.025\n" +
		"  employment_multipliers:\n" +
		"    contract: 0.9\n" +
		"stamp_duty:\n" +
		"  - jurisdiction: NSW\n" +
		"    brackets:\n" +
		"      - upper: 100000\n" +
		"        rate: 0.01\n" +
		"      - rate: 0.04\n"

	parser := NewInputParser()
	config, err := parser.LoadFromFile(writeTempConfig(t, testConfig))
	require.NoError(t, err)

	assert.Nil(t, config.Loan.BaseAnnualRate)
	assert.Equal(t, 25, config.Loan.TermYears)
	assert.True(t, config.Rules.StressBuffer.Equal(decimal.NewFromFloat(0.025)))
	assert.True(t, config.Rules.EmploymentMultiplier(domain.EmploymentContract).Equal(decimal.NewFromFloat(0.9)))
	assert.True(t, config.Rules.EmploymentMultiplier(domain.EmploymentPartTime).Equal(decimal.NewFromFloat(0.9)))
	assert.True(t, config.Rules.LegalFees.Equal(decimal.NewFromInt(1500)))

	require.Len(t, config.StampDuty, 1)
	brackets := config.StampDuty[0].Brackets
	require.Len(t, brackets, 2)
	assert.True(t, brackets[0].Upper.Equal(decimal.NewFromInt(100000)))
	assert.True(t, brackets[1].Unbounded())
}

func TestLoadFromFile_FileNotFound(t *testing.T) {
	parser := NewInputParser()
	config, err := parser.LoadFromFile("nonexistent_file.yaml")

	assert.Error(t, err)
	assert.Nil(t, config)
	assert.Contains(t, err.Error(), "failed to read file")
}

func TestLoadFromFile_InvalidYAML(t *testing.T) {
	parser := NewInputParser()
	config, err := parser.LoadFromFile(writeTempConfig(t, "profile: [unclosed\n"))

	assert.Error(t, err)
	assert.Nil(t, config)
	assert.Contains(t, err.Error(), "failed to parse YAML")
}

func TestParse_InvalidDecimal(t *testing.T) {
	_, err := NewInputParser().Parse([]byte("profile:\n  deposit: lots\n"))
	assert.ErrorContains(t, err, "failed to parse YAML")
}

func TestValidateConfiguration(t *testing.T) {
	parser := NewInputParser()

	tests := []struct {
		name    string
		mutate  func(c *domain.Configuration)
		wantErr string
		invalid bool
	}{
		{
			name:   "example is valid",
			mutate: func(c *domain.Configuration) {},
		},
		{
			name:    "negative deposit",
			mutate:  func(c *domain.Configuration) { c.Profile.Deposit = decimal.NewFromInt(-1) },
			wantErr: "profile: invalid input: deposit cannot be negative",
			invalid: true,
		},
		{
			name:    "too many dependents",
			mutate:  func(c *domain.Configuration) { c.Profile.Dependents = 21 },
			wantErr: "dependents",
			invalid: true,
		},
		{
			name:    "missing employment type",
			mutate:  func(c *domain.Configuration) { c.Profile.EmploymentType = "" },
			wantErr: "employment_type is required",
			invalid: true,
		},
		{
			name: "negative rate",
			mutate: func(c *domain.Configuration) {
				r := decimal.NewFromFloat(-0.01)
				c.Loan.BaseAnnualRate = &r
			},
			wantErr: "loan: invalid input: base_annual_rate",
			invalid: true,
		},
		{
			name:    "negative term",
			mutate:  func(c *domain.Configuration) { c.Loan.TermYears = -5 },
			wantErr: "term_years",
			invalid: true,
		},
		{
			name:    "negative lmi rate",
			mutate:  func(c *domain.Configuration) { c.Rules.LMIRate = decimal.NewFromInt(-1) },
			wantErr: "rules:",
			invalid: true,
		},
		{
			name: "bounded final bracket",
			mutate: func(c *domain.Configuration) {
				c.StampDuty = []domain.DutySchedule{{Jurisdiction: "VIC", Brackets: []domain.StampDutyBracket{domain.Bracket(1000, 0.01)}}}
			},
			wantErr: "final bracket must be unbounded",
		},
		{
			name: "duplicate schedule",
			mutate: func(c *domain.Configuration) {
				s := domain.DutySchedule{Jurisdiction: "VIC", Brackets: []domain.StampDutyBracket{domain.TopBracket(0.05)}}
				c.StampDuty = []domain.DutySchedule{s, s}
			},
			wantErr: "defined more than once",
		},
		{
			name: "negative scenario target",
			mutate: func(c *domain.Configuration) {
				c.Scenarios[1].TargetPrice = decimal.NewFromInt(-100)
			},
			wantErr: "scenario 1 validation failed",
			invalid: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := parser.CreateExampleConfiguration()
			tt.mutate(config)
			err := parser.ValidateConfiguration(config)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
			if tt.invalid {
				assert.ErrorIs(t, err, domain.ErrInvalidInput)
			}
		})
	}
}

func TestCreateExampleConfiguration_RoundTrips(t *testing.T) {
	parser := NewInputParser()
	example := parser.CreateExampleConfiguration()

	data, err := yaml.Marshal(example)
	require.NoError(t, err)

	parsed, err := parser.Parse(data)
	require.NoError(t, err)
	assert.True(t, parsed.Profile.AnnualIncome.Equal(example.Profile.AnnualIncome))
	assert.Equal(t, example.Scenarios[1].Name, parsed.Scenarios[1].Name)
	assert.True(t, parsed.Scenarios[1].TargetPrice.Equal(example.Scenarios[1].TargetPrice))
	assert.True(t, parsed.Rules.LMIRate.Equal(example.Rules.LMIRate))
}
