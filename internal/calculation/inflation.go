package calculation

import (
	"github.com/rpgo/college-planner/internal/domain"
	"github.com/shopspring/decimal"
)

// ProjectCostByYear inflates baseCost to each of durationYears consecutive
// years, the first of which is yearsUntilStart years from now.
func ProjectCostByYear(baseCost, inflationRate decimal.Decimal, yearsUntilStart, durationYears int) ([]decimal.Decimal, error) {
	if durationYears <= 0 {
		return nil, domain.NewInvalidInputError("duration_years", "must be positive, got %d", durationYears)
	}
	if yearsUntilStart < 0 {
		return nil, domain.NewInvalidInputError("years_until_start", "cannot be negative, got %d", yearsUntilStart)
	}
	if inflationRate.LessThan(minusOne) {
		return nil, domain.NewInvalidInputError("inflation_rate", "cannot be less than -100%%, got %s", inflationRate)
	}
	if baseCost.IsNegative() {
		return nil, domain.NewInvalidInputError("current_cost", "cannot be negative, got %s", baseCost)
	}

	growth := one.Add(inflationRate)
	cost := baseCost.Mul(GrowthFactor(inflationRate, yearsUntilStart))
	costs := make([]decimal.Decimal, durationYears)
	for i := range costs {
		costs[i] = cost
		cost = cost.Mul(growth).Round(growthPrecision)
	}
	return costs, nil
}

// ProjectCost sums ProjectCostByYear.
func ProjectCost(baseCost, inflationRate decimal.Decimal, yearsUntilStart, durationYears int) (decimal.Decimal, error) {
	costs, err := ProjectCostByYear(baseCost, inflationRate, yearsUntilStart, durationYears)
	if err != nil {
		return decimal.Zero, err
	}
	total := decimal.Zero
	for _, c := range costs {
		total = total.Add(c)
	}
	return total, nil
}
