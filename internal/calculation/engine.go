package calculation

import (
	"context"
	"fmt"

	"github.com/rpgo/college-planner/internal/domain"
	"github.com/shopspring/decimal"
)

// ProjectionEngine orchestrates all college savings calculations
type ProjectionEngine struct {
	DefaultScenarios []domain.ScenarioSpec
	Debug            bool // Enable debug output for detailed calculations
	Logger           Logger
}

// NewProjectionEngine creates a new projection engine
func NewProjectionEngine() *ProjectionEngine {
	return &ProjectionEngine{
		DefaultScenarios: DefaultScenarioSpecs(),
		Logger:           NopLogger{},
	}
}

// SetLogger sets the logger for the projection engine. If nil is provided, a no-op logger is used.
func (pe *ProjectionEngine) SetLogger(l Logger) {
	if l == nil {
		pe.Logger = NopLogger{}
		return
	}
	pe.Logger = l
}

// ComputeProjection runs the base projection with the engine's default scenarios.
func (pe *ProjectionEngine) ComputeProjection(input domain.ProjectionInput) (*domain.ProjectionResult, error) {
	return pe.ComputeProjectionWithScenarios(input, pe.DefaultScenarios)
}

// ComputeProjectionWithScenarios validates input and derives a fresh result.
// Zero DurationYears and FilingMultiplier take their defaults first.
func (pe *ProjectionEngine) ComputeProjectionWithScenarios(input domain.ProjectionInput, specs []domain.ScenarioSpec) (*domain.ProjectionResult, error) {
	in := input.WithDefaults()
	if err := in.Validate(); err != nil {
		return nil, err
	}

	totalCost, err := ProjectCost(in.CurrentCost, in.InflationRate, in.YearsUntilStart(), in.DurationYears)
	if err != nil {
		return nil, fmt.Errorf("projecting cost: %w", err)
	}

	savings, err := projectSavings(in, in.ReturnRate, in.MonthlyContribution)
	if err != nil {
		return nil, fmt.Errorf("projecting savings: %w", err)
	}

	rate := MonthlyRate(in.ReturnRate)
	months := in.MonthsUntilStart()
	grownSavings, err := FutureValueLumpSum(in.CurrentSavings, rate, months)
	if err != nil {
		return nil, fmt.Errorf("growing current savings: %w", err)
	}
	required, err := RequiredContribution(totalCost.Sub(grownSavings), rate, months)
	if err != nil {
		return nil, fmt.Errorf("solving required contribution: %w", err)
	}

	benefit, err := EstimateTaxBenefitForInput(in)
	if err != nil {
		return nil, fmt.Errorf("estimating tax benefit: %w", err)
	}

	scenarios, err := GenerateScenarios(in, totalCost, specs)
	if err != nil {
		return nil, err
	}

	result := &domain.ProjectionResult{
		TotalProjectedCost:          totalCost,
		TotalProjectedSavings:       savings,
		ShortfallOrSurplus:          savings.Sub(totalCost),
		RequiredMonthlyContribution: required,
		TaxBenefit:                  benefit,
		Scenarios:                   scenarios,
	}

	if pe.Debug {
		pe.logBreakdown(in, result)
	}
	return result, nil
}

func (pe *ProjectionEngine) logBreakdown(in domain.ProjectionInput, r *domain.ProjectionResult) {
	pe.Logger.Debugf("PROJECTION BREAKDOWN:")
	pe.Logger.Debugf("=====================")
	pe.Logger.Debugf("Years until college:     %d (%d months)", in.YearsUntilStart(), in.MonthsUntilStart())
	pe.Logger.Debugf("Total projected cost:    $%s", r.TotalProjectedCost.StringFixed(2))
	pe.Logger.Debugf("Total projected savings: $%s", r.TotalProjectedSavings.StringFixed(2))
	pe.Logger.Debugf("Shortfall / surplus:     $%s", r.ShortfallOrSurplus.StringFixed(2))
	pe.Logger.Debugf("Required monthly:        $%s", r.RequiredMonthlyContribution.StringFixed(2))
	pe.Logger.Debugf("Annual state tax saving: $%s", r.TaxBenefit.AnnualStateSavings.StringFixed(2))
}

// RunPlan computes the full report for a configuration: the projection,
// the yearly schedule, plan comparison, break-even rate, optional Monte
// Carlo check, and insights.
func (pe *ProjectionEngine) RunPlan(ctx context.Context, cfg *domain.Configuration) (*domain.PlanReport, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	now := nowFunc()
	in := cfg.EffectiveInput(now)
	specs := cfg.Scenarios
	if len(specs) == 0 {
		specs = pe.DefaultScenarios
	}

	result, err := pe.ComputeProjectionWithScenarios(in, specs)
	if err != nil {
		return nil, fmt.Errorf("ComputeProjection failed: %w", err)
	}
	pe.Logger.Infof("projected cost $%s against savings $%s", result.TotalProjectedCost.StringFixed(2), result.TotalProjectedSavings.StringFixed(2))

	var anchor *ScheduleAnchor
	if cfg.Beneficiary.BirthDate != nil {
		anchor = &ScheduleAnchor{BirthDate: *cfg.Beneficiary.BirthDate, AsOf: cfg.ReferenceDate(now)}
	}
	schedule, err := BuildSchedule(in, anchor)
	if err != nil {
		return nil, fmt.Errorf("building schedule: %w", err)
	}

	report := &domain.PlanReport{
		Beneficiary: cfg.Beneficiary.Name,
		Input:       in,
		Result:      *result,
		Schedule:    schedule,
		Assumptions: in.GenerateAssumptions(),
	}

	if rate, ok, err := BreakEvenReturnRate(in, result.TotalProjectedCost); err != nil {
		return nil, fmt.Errorf("break-even rate: %w", err)
	} else if ok {
		report.BreakEvenReturnRate = &rate
	} else {
		pe.Logger.Warnf("no return rate up to %s%% funds the projected cost", breakEvenMaxRate.Mul(decimal.NewFromInt(100)).String())
	}

	if len(cfg.Plans) > 0 {
		plans, recommended, err := ComparePlans(in, result.TotalProjectedCost, cfg.Plans)
		if err != nil {
			return nil, fmt.Errorf("comparing plans: %w", err)
		}
		report.Plans = plans
		report.RecommendedPlan = recommended
	}

	if cfg.Simulation != nil && cfg.Simulation.NumSimulations > 0 {
		sim := NewMonteCarloSimulator(MonteCarloConfig{
			NumSimulations: cfg.Simulation.NumSimulations,
			Volatility:     cfg.Simulation.Volatility,
			Seed:           cfg.Simulation.Seed,
		})
		sim.Logger = pe.Logger
		mc, err := sim.Run(ctx, in, result.TotalProjectedCost)
		if err != nil {
			return nil, fmt.Errorf("monte carlo: %w", err)
		}
		summary := mc.Summary()
		report.Simulation = &summary
	}

	report.Insights = GenerateInsights(report)
	return report, nil
}
