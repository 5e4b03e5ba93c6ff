package calculation

import (
	"fmt"

	"github.com/rpgo/college-planner/internal/domain"
	dec "github.com/rpgo/college-planner/pkg/decimal"
	"github.com/shopspring/decimal"
)

// ComparePlans estimates the tax benefit of each plan option against the
// same projection and picks the one with the highest lifetime benefit.
// Ties keep the earlier plan.
func ComparePlans(in domain.ProjectionInput, totalCost decimal.Decimal, plans []domain.PlanOption) ([]domain.PlanComparison, string, error) {
	in = in.WithDefaults()

	var recommended string
	var best decimal.Decimal
	results := make([]domain.PlanComparison, 0, len(plans))
	for i, plan := range plans {
		benefit, err := EstimateTaxBenefitForInput(plan.Apply(in))
		if err != nil {
			return nil, "", fmt.Errorf("plan %q: %w", plan.Name, err)
		}
		results = append(results, domain.PlanComparison{
			Name:       plan.Name,
			State:      plan.State,
			TaxBenefit: benefit,
			NetCost:    totalCost.Sub(benefit.LifetimeValue),
		})
		if i == 0 || benefit.LifetimeValue.GreaterThan(best) {
			best = benefit.LifetimeValue
			recommended = plan.Name
		}
	}
	return results, recommended, nil
}

// GenerateInsights derives plain-language observations from a finished report.
// The output depends only on the report.
func GenerateInsights(r *domain.PlanReport) []string {
	var insights []string
	res := r.Result

	if res.IsFullyFunded() {
		surplus := dec.NewMoneyFromDecimal(res.ShortfallOrSurplus)
		insights = append(insights, fmt.Sprintf("On track: projected savings exceed the projected cost by %s.", surplus.Format()))
	} else {
		pct := res.FundedPercent()
		insights = append(insights, fmt.Sprintf("Projected savings cover %s%% of the projected cost, leaving a shortfall of %s.",
			pct.StringFixed(1), dec.NewMoneyFromDecimal(res.Shortfall()).Format()))

		increase := dec.NewMoneyFromDecimal(res.RequiredMonthlyContribution.Sub(r.Input.MonthlyContribution))
		if increase.IsPositive() {
			insights = append(insights, fmt.Sprintf("Raising the monthly contribution by %s (%s a year) closes the gap.",
				increase.Format(), increase.Annual().Format()))
		}
	}

	if r.BreakEvenReturnRate != nil && !res.IsFullyFunded() {
		insights = append(insights, fmt.Sprintf("At the current contribution an annual return of %s%% would fully fund college.",
			r.BreakEvenReturnRate.Mul(decimal.NewFromInt(100)).StringFixed(2)))
	}

	tb := res.TaxBenefit
	switch {
	case tb.DeductionCap.IsZero():
	case tb.IsCapped():
		over := dec.NewMoneyFromDecimal(tb.AnnualContribution.Sub(tb.DeductionCap))
		insights = append(insights, fmt.Sprintf("Contributions exceed the state deduction limit by %s a year; the excess earns no state deduction.", over.Format()))
	default:
		room := dec.NewMoneyFromDecimal(tb.DeductionCap.Sub(tb.AnnualContribution))
		if room.IsPositive() {
			insights = append(insights, fmt.Sprintf("%s of annual state deduction room is unused.", room.Format()))
		}
	}

	if r.RecommendedPlan != "" && len(r.Plans) > 1 {
		insights = append(insights, fmt.Sprintf("%s offers the largest lifetime state tax benefit of the plans compared.", r.RecommendedPlan))
	}

	if r.Simulation != nil {
		insights = append(insights, fmt.Sprintf("%s%% of %d simulated markets fully fund college.",
			r.Simulation.SuccessRate.Mul(decimal.NewFromInt(100)).StringFixed(1), r.Simulation.NumSimulations))
	}
	return insights
}
