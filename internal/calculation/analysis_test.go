package calculation

import (
	"strings"
	"testing"

	"github.com/rpgo/college-planner/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComparePlans(t *testing.T) {
	joint := d("2")
	plans := []domain.PlanOption{
		{Name: "Low Cap", State: "AA", PlanDeductionLimit: d("2000"), StateTaxRate: d("0.06")},
		{Name: "Joint", State: "BB", PlanDeductionLimit: d("2000"), StateTaxRate: d("0.06"), FilingMultiplier: &joint},
		{Name: "No Tax", State: "CC", PlanDeductionLimit: d("10000"), StateTaxRate: d("0")},
	}

	results, recommended, err := ComparePlans(referenceInput(), d("200000"), plans)
	require.NoError(t, err)
	require.Len(t, results, 3)

	// 2000*0.06*13 and 3600*0.06*13
	assert.True(t, results[0].TaxBenefit.LifetimeValue.Equal(d("1560")))
	assert.True(t, results[1].TaxBenefit.LifetimeValue.Equal(d("2808")))
	assert.True(t, results[2].TaxBenefit.LifetimeValue.IsZero())
	assert.True(t, results[1].NetCost.Equal(d("197192")))
	assert.Equal(t, "Joint", recommended)
}

func TestComparePlansTieKeepsFirst(t *testing.T) {
	plans := []domain.PlanOption{
		{Name: "First", PlanDeductionLimit: d("5000"), StateTaxRate: d("0.05")},
		{Name: "Second", PlanDeductionLimit: d("9000"), StateTaxRate: d("0.05")},
	}
	_, recommended, err := ComparePlans(referenceInput(), d("200000"), plans)
	require.NoError(t, err)
	assert.Equal(t, "First", recommended)
}

func TestComparePlansInvalidPlan(t *testing.T) {
	plans := []domain.PlanOption{{Name: "Broken", PlanDeductionLimit: d("-1"), StateTaxRate: d("0.05")}}
	_, _, err := ComparePlans(referenceInput(), d("200000"), plans)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Contains(t, err.Error(), "Broken")
}

func TestGenerateInsights(t *testing.T) {
	engine := NewProjectionEngine()

	t.Run("underfunded plan", func(t *testing.T) {
		in := referenceInput()
		result, err := engine.ComputeProjection(in)
		require.NoError(t, err)
		rate := d("0.1234")

		report := &domain.PlanReport{Input: in, Result: *result, BreakEvenReturnRate: &rate}
		insights := GenerateInsights(report)
		joined := strings.Join(insights, "\n")

		assert.Contains(t, joined, "shortfall of $")
		assert.Contains(t, joined, "Raising the monthly contribution by $")
		assert.Contains(t, joined, "annual return of 12.34%")
		assert.Contains(t, joined, "$1,400.00 of annual state deduction room is unused.")
		assert.Equal(t, insights, GenerateInsights(report))
	})

	t.Run("funded and capped", func(t *testing.T) {
		in := referenceInput()
		in.MonthlyContribution = d("1500")
		result, err := engine.ComputeProjection(in)
		require.NoError(t, err)

		insights := GenerateInsights(&domain.PlanReport{Input: in, Result: *result})
		joined := strings.Join(insights, "\n")
		assert.Contains(t, joined, "On track")
		assert.Contains(t, joined, "exceed the state deduction limit by $13,000.00 a year")
		assert.NotContains(t, joined, "Raising")
	})
}
