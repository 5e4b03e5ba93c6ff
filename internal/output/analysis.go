package output

import (
	"github.com/rpgo/college-planner/internal/domain"
	"github.com/shopspring/decimal"
)

// Recommendation condenses a report into the headline figures every
// formatter leads with.
type Recommendation struct {
	FullyFunded     bool
	FundedPercent   decimal.Decimal
	Gap             decimal.Decimal // shortfall, or surplus when fully funded
	MonthlyIncrease decimal.Decimal // extra monthly contribution needed, zero when funded
	ScenarioName    string          // scenario with the smallest shortfall
	PlanName        string
}

// AnalyzeReport determines the funding headline and the strongest scenario.
// Ties between scenarios keep the earlier one.
func AnalyzeReport(r *domain.PlanReport) Recommendation {
	res := r.Result
	rec := Recommendation{
		FullyFunded:   res.IsFullyFunded(),
		FundedPercent: res.FundedPercent(),
		Gap:           res.ShortfallOrSurplus.Abs(),
		PlanName:      r.RecommendedPlan,
	}
	if !rec.FullyFunded {
		rec.MonthlyIncrease = decimal.Max(res.RequiredMonthlyContribution.Sub(r.Input.MonthlyContribution), decimal.Zero)
	}

	best := -1
	for i, sc := range res.Scenarios {
		if best < 0 || sc.Shortfall.LessThan(res.Scenarios[best].Shortfall) {
			best = i
		}
	}
	if best >= 0 {
		rec.ScenarioName = res.Scenarios[best].Name
	}
	return rec
}

// FundingStatus is the one-word label for a recommendation.
func (r Recommendation) FundingStatus() string {
	if r.FullyFunded {
		return "FULLY FUNDED"
	}
	return "SHORTFALL"
}
