package calculation

import (
	"fmt"

	"github.com/rpgo/college-planner/internal/domain"
	"github.com/shopspring/decimal"
)

// DefaultScenarioSpecs are the rate alternatives shown when a plan lists none.
func DefaultScenarioSpecs() []domain.ScenarioSpec {
	return []domain.ScenarioSpec{
		{Label: "Conservative", RateDelta: decimal.NewFromFloat(-0.02)},
		{Label: "Moderate", RateDelta: decimal.Zero},
		{Label: "Aggressive", RateDelta: decimal.NewFromFloat(0.02)},
	}
}

// projectSavings grows savings and a monthly contribution at an annual rate
// compounded monthly over the input's horizon.
func projectSavings(in domain.ProjectionInput, annualRate, monthlyContribution decimal.Decimal) (decimal.Decimal, error) {
	if annualRate.LessThan(minusOne) {
		return decimal.Zero, domain.NewInvalidInputError("return_rate", "cannot be less than -100%%, got %s", annualRate)
	}
	return FutureValue(in.CurrentSavings, monthlyContribution, MonthlyRate(annualRate), in.MonthsUntilStart())
}

// GenerateScenarios reruns the savings projection once per spec, in spec
// order, and measures each against totalCost.
func GenerateScenarios(in domain.ProjectionInput, totalCost decimal.Decimal, specs []domain.ScenarioSpec) ([]domain.Scenario, error) {
	scenarios := make([]domain.Scenario, 0, len(specs))
	for i, spec := range specs {
		rate := in.ReturnRate.Add(spec.RateDelta)
		contribution := in.MonthlyContribution
		if spec.ContributionOverride != nil {
			contribution = *spec.ContributionOverride
		}

		savings, err := projectSavings(in, rate, contribution)
		if err != nil {
			return nil, fmt.Errorf("scenario %d (%s): %w", i, spec.Label, err)
		}

		shortfall := totalCost.Sub(savings)
		if shortfall.IsNegative() {
			shortfall = decimal.Zero
		}
		scenarios = append(scenarios, domain.Scenario{
			Name:             spec.Label,
			RateAssumption:   rate,
			Contribution:     contribution,
			ProjectedSavings: savings,
			Shortfall:        shortfall,
		})
	}
	return scenarios, nil
}
