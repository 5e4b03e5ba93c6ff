package domain

import (
	"fmt"
	"math"
	"time"

	"github.com/rpgo/college-planner/pkg/dateutil"
	"github.com/shopspring/decimal"
)

const (
	// DefaultDurationYears is the number of college years costed when none is given.
	DefaultDurationYears = 4
	// MonthsPerYear is the compounding and contribution frequency of the engine.
	MonthsPerYear = 12
)

// ProjectionInput holds every caller-supplied number for one projection.
// Rates are fractions (0.05 = 5%); money is in dollars.
type ProjectionInput struct {
	CurrentAge          int             `yaml:"current_age" toml:"current_age" json:"current_age"`
	TargetAge           int             `yaml:"target_age" toml:"target_age" json:"target_age"`
	DurationYears       int             `yaml:"duration_years,omitempty" toml:"duration_years,omitempty" json:"duration_years"`
	CurrentCost         decimal.Decimal `yaml:"current_cost" toml:"current_cost" json:"current_cost"`
	InflationRate       decimal.Decimal `yaml:"inflation_rate" toml:"inflation_rate" json:"inflation_rate"`
	CurrentSavings      decimal.Decimal `yaml:"current_savings" toml:"current_savings" json:"current_savings"`
	ReturnRate          decimal.Decimal `yaml:"return_rate" toml:"return_rate" json:"return_rate"`
	MonthlyContribution decimal.Decimal `yaml:"monthly_contribution" toml:"monthly_contribution" json:"monthly_contribution"`
	PlanDeductionLimit  decimal.Decimal `yaml:"plan_deduction_limit" toml:"plan_deduction_limit" json:"plan_deduction_limit"`
	FilingMultiplier    decimal.Decimal `yaml:"filing_multiplier,omitempty" toml:"filing_multiplier,omitempty" json:"filing_multiplier"`
	StateTaxRate        decimal.Decimal `yaml:"state_tax_rate" toml:"state_tax_rate" json:"state_tax_rate"`
}

// FloatInput is the float64 form of ProjectionInput used by flag and form callers.
type FloatInput struct {
	CurrentAge          int
	TargetAge           int
	DurationYears       int
	CurrentCost         float64
	InflationRate       float64
	CurrentSavings      float64
	ReturnRate          float64
	MonthlyContribution float64
	PlanDeductionLimit  float64
	FilingMultiplier    float64
	StateTaxRate        float64
}

// NewProjectionInputFromFloats converts float inputs, rejecting NaN and ±Inf.
func NewProjectionInputFromFloats(f FloatInput) (ProjectionInput, error) {
	var err error
	conv := func(field string, v float64) decimal.Decimal {
		if err != nil {
			return decimal.Zero
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			err = NewInvalidInputError(field, "must be a finite number, got %v", v)
			return decimal.Zero
		}
		return decimal.NewFromFloat(v)
	}

	in := ProjectionInput{
		CurrentAge:          f.CurrentAge,
		TargetAge:           f.TargetAge,
		DurationYears:       f.DurationYears,
		CurrentCost:         conv("current_cost", f.CurrentCost),
		InflationRate:       conv("inflation_rate", f.InflationRate),
		CurrentSavings:      conv("current_savings", f.CurrentSavings),
		ReturnRate:          conv("return_rate", f.ReturnRate),
		MonthlyContribution: conv("monthly_contribution", f.MonthlyContribution),
		PlanDeductionLimit:  conv("plan_deduction_limit", f.PlanDeductionLimit),
		FilingMultiplier:    conv("filing_multiplier", f.FilingMultiplier),
		StateTaxRate:        conv("state_tax_rate", f.StateTaxRate),
	}
	if err != nil {
		return ProjectionInput{}, err
	}
	return in, nil
}

// WithDefaults fills unset optional fields: a zero duration means four
// college years and a zero filing multiplier means a single filer.
func (in ProjectionInput) WithDefaults() ProjectionInput {
	if in.DurationYears == 0 {
		in.DurationYears = DefaultDurationYears
	}
	if in.FilingMultiplier.IsZero() {
		in.FilingMultiplier = decimal.NewFromInt(1)
	}
	return in
}

// YearsUntilStart is the saving horizon in whole years.
func (in ProjectionInput) YearsUntilStart() int {
	return in.TargetAge - in.CurrentAge
}

// MonthsUntilStart is the saving horizon in contribution periods.
func (in ProjectionInput) MonthsUntilStart() int {
	return in.YearsUntilStart() * MonthsPerYear
}

// AnnualContribution is twelve monthly contributions.
func (in ProjectionInput) AnnualContribution() decimal.Decimal {
	return in.MonthlyContribution.Mul(decimal.NewFromInt(MonthsPerYear))
}

// Validate checks the input after defaults have been applied.
func (in ProjectionInput) Validate() error {
	minusOne := decimal.NewFromInt(-1)

	if in.CurrentAge < 0 {
		return NewInvalidInputError("current_age", "cannot be negative, got %d", in.CurrentAge)
	}
	if in.TargetAge < in.CurrentAge {
		return NewInvalidInputError("target_age", "must not be before current age (%d < %d): negative period count", in.TargetAge, in.CurrentAge)
	}
	if in.DurationYears <= 0 {
		return NewInvalidInputError("duration_years", "must be positive, got %d", in.DurationYears)
	}
	if in.InflationRate.LessThan(minusOne) {
		return NewInvalidInputError("inflation_rate", "cannot be less than -100%%, got %s", in.InflationRate)
	}
	if in.ReturnRate.LessThan(minusOne) {
		return NewInvalidInputError("return_rate", "cannot be less than -100%%, got %s", in.ReturnRate)
	}
	if in.StateTaxRate.IsNegative() || in.StateTaxRate.GreaterThan(decimal.NewFromInt(1)) {
		return NewInvalidInputError("state_tax_rate", "must be between 0 and 1, got %s", in.StateTaxRate)
	}

	money := []struct {
		name  string
		value decimal.Decimal
	}{
		{"current_cost", in.CurrentCost},
		{"current_savings", in.CurrentSavings},
		{"monthly_contribution", in.MonthlyContribution},
		{"plan_deduction_limit", in.PlanDeductionLimit},
		{"filing_multiplier", in.FilingMultiplier},
	}
	for _, m := range money {
		if m.value.IsNegative() {
			return NewInvalidInputError(m.name, "cannot be negative, got %s", m.value)
		}
	}
	return nil
}

// ScenarioSpec describes one perturbation of the base projection.
// A nil ContributionOverride keeps the base monthly contribution.
type ScenarioSpec struct {
	Label                string           `yaml:"label" toml:"label" json:"label"`
	RateDelta            decimal.Decimal  `yaml:"rate_delta" toml:"rate_delta" json:"rate_delta"`
	ContributionOverride *decimal.Decimal `yaml:"contribution_override,omitempty" toml:"contribution_override,omitempty" json:"contribution_override,omitempty"`
}

// PlanOption is an alternative savings plan with its own state tax treatment.
// A nil FilingMultiplier inherits the projection's multiplier.
type PlanOption struct {
	Name               string           `yaml:"name" toml:"name" json:"name"`
	State              string           `yaml:"state,omitempty" toml:"state,omitempty" json:"state,omitempty"`
	PlanDeductionLimit decimal.Decimal  `yaml:"plan_deduction_limit" toml:"plan_deduction_limit" json:"plan_deduction_limit"`
	StateTaxRate       decimal.Decimal  `yaml:"state_tax_rate" toml:"state_tax_rate" json:"state_tax_rate"`
	FilingMultiplier   *decimal.Decimal `yaml:"filing_multiplier,omitempty" toml:"filing_multiplier,omitempty" json:"filing_multiplier,omitempty"`
}

// Apply returns a copy of in carrying this plan's tax parameters.
func (p PlanOption) Apply(in ProjectionInput) ProjectionInput {
	in.PlanDeductionLimit = p.PlanDeductionLimit
	in.StateTaxRate = p.StateTaxRate
	if p.FilingMultiplier != nil {
		in.FilingMultiplier = *p.FilingMultiplier
	}
	return in
}

// SimulationSettings configures the optional Monte Carlo funding check.
type SimulationSettings struct {
	NumSimulations int             `yaml:"num_simulations" toml:"num_simulations" json:"num_simulations"`
	Volatility     decimal.Decimal `yaml:"volatility" toml:"volatility" json:"volatility"` // annual std dev of returns
	Seed           int64           `yaml:"seed,omitempty" toml:"seed,omitempty" json:"seed,omitempty"`
}

// Beneficiary identifies the student. When BirthDate is set it overrides
// ProjectionInput.CurrentAge, measured at AsOf (or the run date).
type Beneficiary struct {
	Name      string     `yaml:"name" toml:"name" json:"name"`
	BirthDate *time.Time `yaml:"birth_date,omitempty" toml:"birth_date,omitempty" json:"birth_date,omitempty"`
	AsOf      *time.Time `yaml:"as_of,omitempty" toml:"as_of,omitempty" json:"as_of,omitempty"`
}

// Configuration is the complete input file.
type Configuration struct {
	Beneficiary Beneficiary         `yaml:"beneficiary" toml:"beneficiary" json:"beneficiary"`
	Projection  ProjectionInput     `yaml:"projection" toml:"projection" json:"projection"`
	Scenarios   []ScenarioSpec      `yaml:"scenarios,omitempty" toml:"scenarios,omitempty" json:"scenarios,omitempty"`
	Plans       []PlanOption        `yaml:"plans,omitempty" toml:"plans,omitempty" json:"plans,omitempty"`
	Simulation  *SimulationSettings `yaml:"simulation,omitempty" toml:"simulation,omitempty" json:"simulation,omitempty"`
}

// ReferenceDate is the date ages are measured at.
func (c *Configuration) ReferenceDate(now time.Time) time.Time {
	if c.Beneficiary.AsOf != nil {
		return *c.Beneficiary.AsOf
	}
	return now
}

// EffectiveInput returns the projection input with defaults applied and the
// current age derived from the beneficiary's birth date when one is given.
func (c *Configuration) EffectiveInput(now time.Time) ProjectionInput {
	in := c.Projection.WithDefaults()
	if c.Beneficiary.BirthDate != nil {
		in.CurrentAge = dateutil.Age(*c.Beneficiary.BirthDate, c.ReferenceDate(now))
	}
	return in
}

// GenerateAssumptions lists the modeling assumptions behind a projection.
func (in ProjectionInput) GenerateAssumptions() []string {
	hundred := decimal.NewFromInt(100)
	return []string{
		fmt.Sprintf("College costs inflate at %.1f%% annually", in.InflationRate.Mul(hundred).InexactFloat64()),
		fmt.Sprintf("Savings earn %.1f%% annually, compounded monthly", in.ReturnRate.Mul(hundred).InexactFloat64()),
		fmt.Sprintf("Contributions are made monthly for %d years", in.YearsUntilStart()),
		fmt.Sprintf("Costs are summed over %d college years starting at age %d", in.DurationYears, in.TargetAge),
		fmt.Sprintf("State deduction capped at $%s x %s filers, taxed at %.2f%%", in.PlanDeductionLimit.StringFixed(0), in.FilingMultiplier.String(), in.StateTaxRate.Mul(hundred).InexactFloat64()),
		"Tax law and plan limits held constant (no indexing)",
	}
}
