package calculation

import (
	"github.com/rpgo/college-planner/internal/domain"
	"github.com/shopspring/decimal"
)

// TIME-VALUE-OF-MONEY CONVENTIONS:
//
// 1. Rates are periodic fractions. The engine passes the annual return
//    divided by 12 and a period count in months.
// 2. Contributions are made at the end of each period (ordinary annuity).
// 3. A rate of exactly zero degrades to straight addition, never a division.
// 4. Growth factors are rounded to growthPrecision places so that long
//    horizons stay cheap without moving results by more than a fraction of a cent.

const growthPrecision = 24

var (
	one           = decimal.NewFromInt(1)
	minusOne      = decimal.NewFromInt(-1)
	monthsPerYear = decimal.NewFromInt(domain.MonthsPerYear)
)

// GrowthFactor returns (1+rate)^periods by repeated squaring.
func GrowthFactor(rate decimal.Decimal, periods int) decimal.Decimal {
	base := one.Add(rate)
	result := one
	for n := periods; n > 0; n >>= 1 {
		if n&1 == 1 {
			result = result.Mul(base).Round(growthPrecision)
		}
		base = base.Mul(base).Round(growthPrecision)
	}
	return result
}

// MonthlyRate converts an annual rate to the engine's periodic rate.
func MonthlyRate(annual decimal.Decimal) decimal.Decimal {
	return annual.Div(monthsPerYear)
}

func validatePeriodic(rate decimal.Decimal, periods int) error {
	if periods < 0 {
		return domain.NewInvalidInputError("periods", "cannot be negative, got %d", periods)
	}
	if rate.LessThan(minusOne) {
		return domain.NewInvalidInputError("rate", "cannot be less than -100%%, got %s", rate)
	}
	return nil
}

// FutureValue returns principal*(1+r)^n + contribution*((1+r)^n-1)/r,
// or principal + contribution*n when r is zero.
func FutureValue(principal, contribution, rate decimal.Decimal, periods int) (decimal.Decimal, error) {
	if err := validatePeriodic(rate, periods); err != nil {
		return decimal.Zero, err
	}
	if principal.IsNegative() {
		return decimal.Zero, domain.NewInvalidInputError("principal", "cannot be negative, got %s", principal)
	}
	if contribution.IsNegative() {
		return decimal.Zero, domain.NewInvalidInputError("contribution", "cannot be negative, got %s", contribution)
	}

	if rate.IsZero() {
		return principal.Add(contribution.Mul(decimal.NewFromInt(int64(periods)))), nil
	}

	growth := GrowthFactor(rate, periods)
	lump := principal.Mul(growth)
	annuity := contribution.Mul(growth.Sub(one)).Div(rate)
	return lump.Add(annuity), nil
}

// FutureValueLumpSum is FutureValue with no periodic contribution.
func FutureValueLumpSum(principal, rate decimal.Decimal, periods int) (decimal.Decimal, error) {
	return FutureValue(principal, decimal.Zero, rate, periods)
}

// FutureValueAnnuity is FutureValue with no starting principal.
func FutureValueAnnuity(contribution, rate decimal.Decimal, periods int) (decimal.Decimal, error) {
	return FutureValue(decimal.Zero, contribution, rate, periods)
}

// RequiredContribution solves FutureValueAnnuity(c, rate, periods) = gap for c.
//
// A gap at or below zero is already funded and needs nothing. With zero
// periods there is no time to save, so the whole gap is returned as a
// one-time contribution rather than failing.
func RequiredContribution(gap, rate decimal.Decimal, periods int) (decimal.Decimal, error) {
	if err := validatePeriodic(rate, periods); err != nil {
		return decimal.Zero, err
	}
	if !gap.IsPositive() {
		return decimal.Zero, nil
	}
	if periods == 0 {
		return gap, nil
	}

	n := decimal.NewFromInt(int64(periods))
	if rate.IsZero() {
		return gap.Div(n), nil
	}

	denominator := GrowthFactor(rate, periods).Sub(one)
	if denominator.IsZero() {
		// rate too small to register at growthPrecision
		return gap.Div(n), nil
	}
	return gap.Mul(rate).Div(denominator), nil
}
