package calculation

import (
	"github.com/rpgo/college-planner/internal/domain"
	"github.com/shopspring/decimal"
)

// EstimateTaxBenefit caps the annual contribution at deductionLimit times
// filingMultiplier, applies the flat state rate, and extends the annual
// saving over the years remaining until college.
func EstimateTaxBenefit(annualContribution, deductionLimit, filingMultiplier, stateTaxRate decimal.Decimal, yearsUntilStart int) (domain.TaxBenefit, error) {
	switch {
	case annualContribution.IsNegative():
		return domain.TaxBenefit{}, domain.NewInvalidInputError("annual_contribution", "cannot be negative, got %s", annualContribution)
	case deductionLimit.IsNegative():
		return domain.TaxBenefit{}, domain.NewInvalidInputError("plan_deduction_limit", "cannot be negative, got %s", deductionLimit)
	case filingMultiplier.IsNegative():
		return domain.TaxBenefit{}, domain.NewInvalidInputError("filing_multiplier", "cannot be negative, got %s", filingMultiplier)
	case stateTaxRate.IsNegative() || stateTaxRate.GreaterThan(one):
		return domain.TaxBenefit{}, domain.NewInvalidInputError("state_tax_rate", "must be between 0 and 1, got %s", stateTaxRate)
	case yearsUntilStart < 0:
		return domain.TaxBenefit{}, domain.NewInvalidInputError("years_until_start", "cannot be negative, got %d", yearsUntilStart)
	}

	limit := deductionLimit.Mul(filingMultiplier)
	deductible := decimal.Min(annualContribution, limit)
	annual := deductible.Mul(stateTaxRate)

	return domain.TaxBenefit{
		AnnualContribution: annualContribution,
		DeductionCap:       limit,
		Deductible:         deductible,
		AnnualStateSavings: annual,
		LifetimeValue:      annual.Mul(decimal.NewFromInt(int64(yearsUntilStart))),
	}, nil
}

// EstimateTaxBenefitForInput applies EstimateTaxBenefit to a projection input.
func EstimateTaxBenefitForInput(in domain.ProjectionInput) (domain.TaxBenefit, error) {
	return EstimateTaxBenefit(in.AnnualContribution(), in.PlanDeductionLimit, in.FilingMultiplier, in.StateTaxRate, in.YearsUntilStart())
}
