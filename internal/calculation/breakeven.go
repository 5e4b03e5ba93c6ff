package calculation

import (
	"github.com/rpgo/college-planner/internal/domain"
	"github.com/shopspring/decimal"
)

// Search range and stopping rule for the break-even return rate.
var (
	breakEvenMinRate   = decimal.NewFromFloat(-0.5)
	breakEvenMaxRate   = decimal.NewFromFloat(0.3)
	breakEvenTolerance = decimal.NewFromFloat(0.000001)
)

const breakEvenMaxIterations = 60

// BreakEvenReturnRate finds the annual return at which the current savings
// and monthly contribution exactly fund targetCost.
//
// Savings grow monotonically with the rate, so the search is a bisection over
// [breakEvenMinRate, breakEvenMaxRate]. ok is false when even the maximum rate
// leaves a shortfall. When the minimum rate already funds the cost it is
// returned as is.
func BreakEvenReturnRate(in domain.ProjectionInput, targetCost decimal.Decimal) (rate decimal.Decimal, ok bool, err error) {
	in = in.WithDefaults()
	if err := in.Validate(); err != nil {
		return decimal.Zero, false, err
	}

	gapAt := func(annual decimal.Decimal) (decimal.Decimal, error) {
		savings, err := projectSavings(in, annual, in.MonthlyContribution)
		if err != nil {
			return decimal.Zero, err
		}
		return savings.Sub(targetCost), nil
	}

	high, err := gapAt(breakEvenMaxRate)
	if err != nil {
		return decimal.Zero, false, err
	}
	if high.IsNegative() {
		return decimal.Zero, false, nil
	}
	low, err := gapAt(breakEvenMinRate)
	if err != nil {
		return decimal.Zero, false, err
	}
	if !low.IsNegative() {
		return breakEvenMinRate, true, nil
	}

	two := decimal.NewFromInt(2)
	minRate, maxRate := breakEvenMinRate, breakEvenMaxRate
	for i := 0; i < breakEvenMaxIterations; i++ {
		mid := minRate.Add(maxRate).Div(two)
		diff, err := gapAt(mid)
		if err != nil {
			return decimal.Zero, false, err
		}
		if diff.IsNegative() {
			// still short, need a higher return
			minRate = mid
		} else {
			maxRate = mid
		}
		if maxRate.Sub(minRate).LessThan(breakEvenTolerance) {
			break
		}
	}

	// maxRate is the funded side of the bracket
	return maxRate.Round(6), true, nil
}
