package calculation

import (
	"testing"

	"github.com/homewise/affordability/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScenarioEvaluator_Evaluate(t *testing.T) {
	ev := NewScenarioEvaluator(domain.DefaultLendingRules())
	result := domain.AffordabilityResult{MaxPropertyPrice: decimal.NewFromInt(345000)}

	t.Run("target above max price", func(t *testing.T) {
		sr, err := ev.Evaluate(result, decimal.NewFromInt(400000))
		require.NoError(t, err)

		assert.False(t, sr.IsAffordable)
		assert.True(t, sr.Shortfall.Equal(decimal.NewFromInt(55000)))
		assert.True(t, sr.Surplus.IsZero())
		assert.True(t, sr.AdditionalDepositNeeded.Equal(decimal.NewFromInt(11000)))
		assert.True(t, sr.AdditionalIncomeNeeded.Equal(decimal.NewFromInt(8250)))
		assert.Equal(t, []string{
			"Increase deposit by $11,000, or",
			"Increase annual income by $8,250, or",
			"Reduce monthly expenses to improve serviceability",
			"Consider properties up to $345,000",
		}, sr.Recommendations)
	})

	t.Run("target below max price", func(t *testing.T) {
		sr, err := ev.Evaluate(result, decimal.NewFromInt(300000))
		require.NoError(t, err)

		assert.True(t, sr.IsAffordable)
		assert.True(t, sr.Shortfall.IsZero())
		assert.True(t, sr.Surplus.Equal(decimal.NewFromInt(45000)))
		assert.True(t, sr.AdditionalDepositNeeded.IsZero())
		assert.True(t, sr.AdditionalIncomeNeeded.IsZero())
		assert.Equal(t, []string{
			"This property is within your budget!",
			"You have $45,000 buffer for negotiation or upgrades",
		}, sr.Recommendations)
	})

	t.Run("zero target is affordable", func(t *testing.T) {
		sr, err := ev.Evaluate(result, decimal.Zero)
		require.NoError(t, err)
		assert.True(t, sr.IsAffordable)
	})

	t.Run("negative target rejected", func(t *testing.T) {
		_, err := ev.Evaluate(result, decimal.NewFromInt(-1))
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
		var verr *domain.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "target_price", verr.Field)
	})
}

func TestScenarioEvaluator_AtMaxPrice(t *testing.T) {
	aa := newTestAnalyzer(nil)
	ev := NewScenarioEvaluator(domain.DefaultLendingRules())

	for _, p := range []domain.FinancialProfile{
		endToEndProfile(),
		{Deposit: decimal.NewFromInt(55555), AnnualIncome: decimal.NewFromInt(123457), MonthlyExpenses: decimal.NewFromInt(2222), EmploymentType: domain.EmploymentCasual},
		{Deposit: decimal.NewFromInt(20000), MonthlyExpenses: decimal.NewFromInt(9000), EmploymentType: domain.EmploymentContract},
	} {
		res := aa.Analyze(p, endToEndTerms())
		sr, err := ev.Evaluate(res, res.MaxPropertyPrice)
		require.NoError(t, err)
		assert.True(t, sr.IsAffordable)
		assert.True(t, sr.Shortfall.IsZero())
		assert.True(t, sr.Surplus.IsZero())
		assert.True(t, sr.AdditionalDepositNeeded.IsZero())
		assert.True(t, sr.AdditionalIncomeNeeded.IsZero())
	}
}
