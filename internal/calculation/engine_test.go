package calculation

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/rpgo/college-planner/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// referenceInput is a five-year-old headed to college at 18.
func referenceInput() domain.ProjectionInput {
	return domain.ProjectionInput{
		CurrentAge:          5,
		TargetAge:           18,
		DurationYears:       4,
		CurrentCost:         d("25000"),
		InflationRate:       d("0.05"),
		CurrentSavings:      d("10000"),
		ReturnRate:          d("0.07"),
		MonthlyContribution: d("300"),
		PlanDeductionLimit:  d("5000"),
		FilingMultiplier:    d("1"),
		StateTaxRate:        d("0.05"),
	}
}

func expectedCost(base, inflation float64, years, duration int) float64 {
	total := 0.0
	for i := 0; i < duration; i++ {
		total += base * math.Pow(1+inflation, float64(years+i))
	}
	return total
}

func expectedSavings(principal, contribution, annual float64, months int) float64 {
	r := annual / 12
	g := math.Pow(1+r, float64(months))
	return principal*g + contribution*(g-1)/r
}

func TestComputeProjectionReferencePlan(t *testing.T) {
	engine := NewProjectionEngine()
	result, err := engine.ComputeProjection(referenceInput())
	require.NoError(t, err)

	cost := expectedCost(25000, 0.05, 13, 4)
	savings := expectedSavings(10000, 300, 0.07, 156)

	assert.InDelta(t, cost, result.TotalProjectedCost.InexactFloat64(), 0.01)
	assert.InDelta(t, savings, result.TotalProjectedSavings.InexactFloat64(), 0.01)
	assert.InDelta(t, savings-cost, result.ShortfallOrSurplus.InexactFloat64(), 0.02)
	assert.False(t, result.IsFullyFunded())

	// sanity bounds on the closed forms
	assert.Greater(t, cost, 200000.0)
	assert.Less(t, cost, 206000.0)
	assert.Greater(t, savings, 100000.0)
	assert.Less(t, savings, 102000.0)

	r := 0.07 / 12
	g := math.Pow(1+r, 156)
	gap := cost - 10000*g
	wantRequired := gap * r / (g - 1)
	assert.InDelta(t, wantRequired, result.RequiredMonthlyContribution.InexactFloat64(), 0.01)

	assert.True(t, result.TaxBenefit.Deductible.Equal(d("3600")))
	assert.True(t, result.TaxBenefit.AnnualStateSavings.Equal(d("180")))
	assert.True(t, result.TaxBenefit.LifetimeValue.Equal(d("2340")))

	require.Len(t, result.Scenarios, 3)
	assert.Equal(t, "Conservative", result.Scenarios[0].Name)
	assert.Equal(t, "Moderate", result.Scenarios[1].Name)
	assert.Equal(t, "Aggressive", result.Scenarios[2].Name)
}

func TestComputeProjectionRequiredContributionClosesGap(t *testing.T) {
	engine := NewProjectionEngine()
	in := referenceInput()

	result, err := engine.ComputeProjection(in)
	require.NoError(t, err)

	in.MonthlyContribution = result.RequiredMonthlyContribution
	funded, err := engine.ComputeProjection(in)
	require.NoError(t, err)

	rel := funded.ShortfallOrSurplus.Abs().Div(funded.TotalProjectedCost).InexactFloat64()
	assert.Less(t, rel, 1e-6)
}

func TestComputeProjectionFundedPlanNeedsNothing(t *testing.T) {
	in := referenceInput()
	in.CurrentSavings = d("250000")

	result, err := NewProjectionEngine().ComputeProjection(in)
	require.NoError(t, err)
	assert.True(t, result.IsFullyFunded())
	assert.True(t, result.RequiredMonthlyContribution.IsZero())
	assert.True(t, result.Shortfall().IsZero())
	assert.True(t, result.FundedPercent().Equal(decimal.NewFromInt(100)))
}

func TestComputeProjectionCollegeStartsNow(t *testing.T) {
	in := referenceInput()
	in.CurrentAge = 18

	result, err := NewProjectionEngine().ComputeProjection(in)
	require.NoError(t, err)

	assert.InDelta(t, expectedCost(25000, 0.05, 0, 4), result.TotalProjectedCost.InexactFloat64(), 0.01)
	assert.True(t, result.TotalProjectedSavings.Equal(d("10000")))
	// no time left, the whole gap is due at once
	assert.True(t, result.RequiredMonthlyContribution.Equal(result.TotalProjectedCost.Sub(d("10000"))))
	assert.True(t, result.TaxBenefit.LifetimeValue.IsZero())
}

func TestComputeProjectionAppliesDefaults(t *testing.T) {
	in := referenceInput()
	in.DurationYears = 0
	in.FilingMultiplier = decimal.Zero

	result, err := NewProjectionEngine().ComputeProjection(in)
	require.NoError(t, err)
	assert.InDelta(t, expectedCost(25000, 0.05, 13, 4), result.TotalProjectedCost.InexactFloat64(), 0.01)
	assert.True(t, result.TaxBenefit.DeductionCap.Equal(d("5000")))
}

func TestComputeProjectionInvalidInput(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*domain.ProjectionInput)
		field  string
	}{
		{"target before current age", func(in *domain.ProjectionInput) { in.TargetAge = 4 }, "target_age"},
		{"negative duration", func(in *domain.ProjectionInput) { in.DurationYears = -1 }, "duration_years"},
		{"return below -100%", func(in *domain.ProjectionInput) { in.ReturnRate = d("-1.2") }, "return_rate"},
		{"inflation below -100%", func(in *domain.ProjectionInput) { in.InflationRate = d("-2") }, "inflation_rate"},
		{"negative savings", func(in *domain.ProjectionInput) { in.CurrentSavings = d("-1") }, "current_savings"},
		{"state rate above one", func(in *domain.ProjectionInput) { in.StateTaxRate = d("1.1") }, "state_tax_rate"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := referenceInput()
			tt.mutate(&in)

			result, err := NewProjectionEngine().ComputeProjection(in)
			assert.Nil(t, result)
			require.ErrorIs(t, err, domain.ErrInvalidInput)

			var invalid *domain.InvalidInputError
			require.ErrorAs(t, err, &invalid)
			assert.Equal(t, tt.field, invalid.Field)
		})
	}
}

func TestComputeProjectionIsDeterministic(t *testing.T) {
	engine := NewProjectionEngine()
	a, err := engine.ComputeProjection(referenceInput())
	require.NoError(t, err)
	b, err := engine.ComputeProjection(referenceInput())
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

type recordingLogger struct {
	NopLogger
	debug []string
}

func (l *recordingLogger) Debugf(format string, args ...any) {
	l.debug = append(l.debug, format)
}

func TestComputeProjectionDebugLogging(t *testing.T) {
	engine := NewProjectionEngine()
	logger := &recordingLogger{}
	engine.SetLogger(logger)
	engine.Debug = true

	_, err := engine.ComputeProjection(referenceInput())
	require.NoError(t, err)
	assert.NotEmpty(t, logger.debug)

	engine.SetLogger(nil)
	assert.IsType(t, NopLogger{}, engine.Logger)
}

func TestRunPlan(t *testing.T) {
	birth := time.Date(2020, time.March, 15, 0, 0, 0, 0, time.UTC)
	asOf := time.Date(2025, time.September, 1, 0, 0, 0, 0, time.UTC)

	cfg := &domain.Configuration{
		Beneficiary: domain.Beneficiary{Name: "Avery", BirthDate: &birth, AsOf: &asOf},
		Projection:  referenceInput(),
		Plans: []domain.PlanOption{
			{Name: "Home State", State: "OH", PlanDeductionLimit: d("4000"), StateTaxRate: d("0.035")},
			{Name: "Neighbor", State: "IN", PlanDeductionLimit: d("5000"), StateTaxRate: d("0.05")},
		},
		Simulation: &domain.SimulationSettings{NumSimulations: 50, Volatility: d("0.12"), Seed: 7},
	}
	cfg.Projection.CurrentAge = 0 // derived from the birth date

	report, err := NewProjectionEngine().RunPlan(context.Background(), cfg)
	require.NoError(t, err)

	assert.Equal(t, "Avery", report.Beneficiary)
	assert.Equal(t, 5, report.Input.CurrentAge)
	require.Len(t, report.Schedule.Savings, 13)
	require.Len(t, report.Schedule.Costs, 4)
	assert.Equal(t, 2038, report.Schedule.Costs[0].CalendarYear)

	require.NotNil(t, report.BreakEvenReturnRate)
	assert.True(t, report.BreakEvenReturnRate.GreaterThan(d("0.07")))

	require.Len(t, report.Plans, 2)
	assert.Equal(t, "Neighbor", report.RecommendedPlan)

	require.NotNil(t, report.Simulation)
	assert.Equal(t, 50, report.Simulation.NumSimulations)
	assert.NotEmpty(t, report.Insights)
	assert.NotEmpty(t, report.Assumptions)
}

func TestRunPlanUsesConfiguredScenarios(t *testing.T) {
	override := d("600")
	cfg := &domain.Configuration{
		Projection: referenceInput(),
		Scenarios: []domain.ScenarioSpec{
			{Label: "Double up", ContributionOverride: &override},
		},
	}

	report, err := NewProjectionEngine().RunPlan(context.Background(), cfg)
	require.NoError(t, err)
	require.Len(t, report.Result.Scenarios, 1)
	assert.Equal(t, "Double up", report.Result.Scenarios[0].Name)
	assert.Nil(t, report.Simulation)
	assert.Empty(t, report.Plans)
}

func TestRunPlanCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewProjectionEngine().RunPlan(ctx, &domain.Configuration{Projection: referenceInput()})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRunPlanInvalidInput(t *testing.T) {
	cfg := &domain.Configuration{Projection: referenceInput()}
	cfg.Projection.TargetAge = 2

	_, err := NewProjectionEngine().RunPlan(context.Background(), cfg)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
