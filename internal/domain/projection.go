package domain

import (
	"github.com/shopspring/decimal"
)

// TaxBenefit is the state deduction value of the annual contribution.
type TaxBenefit struct {
	AnnualContribution decimal.Decimal `json:"annual_contribution"`
	DeductionCap       decimal.Decimal `json:"deduction_cap"`
	Deductible         decimal.Decimal `json:"deductible"`
	AnnualStateSavings decimal.Decimal `json:"annual_state_savings"`
	LifetimeValue      decimal.Decimal `json:"lifetime_value"`
}

// IsCapped reports whether the contribution exceeds the deduction cap.
func (tb TaxBenefit) IsCapped() bool {
	return tb.AnnualContribution.GreaterThan(tb.DeductionCap)
}

// Scenario is a read-only variant of the base projection under a perturbed
// return rate or contribution.
type Scenario struct {
	Name             string          `json:"name"`
	RateAssumption   decimal.Decimal `json:"rate_assumption"`
	Contribution     decimal.Decimal `json:"contribution"`
	ProjectedSavings decimal.Decimal `json:"projected_savings"`
	Shortfall        decimal.Decimal `json:"shortfall"` // zero when fully funded
}

// IsFunded reports whether the scenario covers the projected cost.
func (s Scenario) IsFunded() bool {
	return !s.Shortfall.IsPositive()
}

// ProjectionResult is derived wholesale from a ProjectionInput and never
// mutated after it is returned.
type ProjectionResult struct {
	TotalProjectedCost          decimal.Decimal `json:"total_projected_cost"`
	TotalProjectedSavings       decimal.Decimal `json:"total_projected_savings"`
	ShortfallOrSurplus          decimal.Decimal `json:"shortfall_or_surplus"` // savings minus cost; negative is a shortfall
	RequiredMonthlyContribution decimal.Decimal `json:"required_monthly_contribution"`
	TaxBenefit                  TaxBenefit      `json:"tax_benefit"`
	Scenarios                   []Scenario      `json:"scenarios"`
}

// IsFullyFunded reports whether projected savings cover the projected cost.
func (r *ProjectionResult) IsFullyFunded() bool {
	return !r.ShortfallOrSurplus.IsNegative()
}

// Shortfall is the unfunded amount, zero when fully funded.
func (r *ProjectionResult) Shortfall() decimal.Decimal {
	if r.IsFullyFunded() {
		return decimal.Zero
	}
	return r.ShortfallOrSurplus.Neg()
}

// FundedPercent is savings as a percentage of cost, capped at 100.
func (r *ProjectionResult) FundedPercent() decimal.Decimal {
	hundred := decimal.NewFromInt(100)
	if !r.TotalProjectedCost.IsPositive() {
		return hundred
	}
	pct := r.TotalProjectedSavings.Div(r.TotalProjectedCost).Mul(hundred)
	return decimal.Min(pct, hundred)
}

// SavingsYear is one year of the accumulation schedule.
type SavingsYear struct {
	Year               int             `json:"year"`
	CalendarYear       int             `json:"calendar_year,omitempty"`
	Age                int             `json:"age"`
	Contributions      decimal.Decimal `json:"contributions"`       // paid during the year
	Growth             decimal.Decimal `json:"growth"`              // earned during the year
	TotalContributions decimal.Decimal `json:"total_contributions"` // includes the starting balance
	EndBalance         decimal.Decimal `json:"end_balance"`
}

// CostYear is the projected cost of one college year.
type CostYear struct {
	Index         int             `json:"index"`
	CalendarYear  int             `json:"calendar_year,omitempty"`
	Age           int             `json:"age"`
	ProjectedCost decimal.Decimal `json:"projected_cost"`
}

// Schedule is the year-by-year view behind savings growth charts.
type Schedule struct {
	Savings []SavingsYear `json:"savings"`
	Costs   []CostYear    `json:"costs"`
}

// FinalBalance is the balance at the start of college.
func (s Schedule) FinalBalance() decimal.Decimal {
	if len(s.Savings) == 0 {
		return decimal.Zero
	}
	return s.Savings[len(s.Savings)-1].EndBalance
}

// PlanComparison is the tax outcome of one plan option.
type PlanComparison struct {
	Name       string     `json:"name"`
	State      string     `json:"state,omitempty"`
	TaxBenefit TaxBenefit `json:"tax_benefit"`
	// NetCost is the projected cost less the lifetime tax benefit.
	NetCost decimal.Decimal `json:"net_cost"`
}

// PercentileRanges summarizes simulated ending balances.
type PercentileRanges struct {
	P10 decimal.Decimal `json:"p10"`
	P25 decimal.Decimal `json:"p25"`
	P50 decimal.Decimal `json:"p50"`
	P75 decimal.Decimal `json:"p75"`
	P90 decimal.Decimal `json:"p90"`
}

// SimulationSummary is the aggregate of a Monte Carlo funding check.
type SimulationSummary struct {
	NumSimulations      int              `json:"num_simulations"`
	Seed                int64            `json:"seed"`
	Volatility          decimal.Decimal  `json:"volatility"`
	SuccessRate         decimal.Decimal  `json:"success_rate"` // fraction of runs ending at or above cost
	MedianEndingBalance decimal.Decimal  `json:"median_ending_balance"`
	Percentiles         PercentileRanges `json:"percentiles"`
}

// PlanReport bundles everything produced for one configuration run.
type PlanReport struct {
	Beneficiary         string             `json:"beneficiary,omitempty"`
	Input               ProjectionInput    `json:"input"`
	Result              ProjectionResult   `json:"result"`
	Schedule            Schedule           `json:"schedule"`
	BreakEvenReturnRate *decimal.Decimal   `json:"break_even_return_rate,omitempty"` // nil when no rate in range funds the cost
	Plans               []PlanComparison   `json:"plans,omitempty"`
	RecommendedPlan     string             `json:"recommended_plan,omitempty"`
	Simulation          *SimulationSummary `json:"simulation,omitempty"`
	Insights            []string           `json:"insights"`
	Assumptions         []string           `json:"assumptions"`
}
