package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rpgo/college-planner/internal/domain"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// MaxSimulations bounds the Monte Carlo block of a configuration.
const MaxSimulations = 100000

// InputParser handles parsing of input configuration files
type InputParser struct {
	// Now returns the date ages are measured at when no as_of is given.
	Now func() time.Time
}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{Now: time.Now}
}

// LoadFromFile loads configuration from a YAML file, or TOML when the
// file name ends in .toml
func (ip *InputParser) LoadFromFile(filename string) (*domain.Configuration, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	var config domain.Configuration
	if IsTOML(filename) {
		if err := decodeTOML(data, &config); err != nil {
			return nil, fmt.Errorf("failed to parse TOML: %w", err)
		}
	} else {
		if err := yaml.Unmarshal(data, &config); err != nil {
			return nil, fmt.Errorf("failed to parse YAML: %w", err)
		}
	}

	// Validate the configuration
	if err := ip.ValidateConfiguration(&config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &config, nil
}

// IsTOML reports whether filename should be read and written as TOML.
func IsTOML(filename string) bool {
	return strings.EqualFold(filepath.Ext(filename), ".toml")
}

// ValidateConfiguration validates the loaded configuration
func (ip *InputParser) ValidateConfiguration(config *domain.Configuration) error {
	if err := ip.validateBeneficiary(&config.Beneficiary); err != nil {
		return fmt.Errorf("beneficiary validation failed: %w", err)
	}

	in := config.EffectiveInput(ip.now())
	if err := in.Validate(); err != nil {
		return fmt.Errorf("projection validation failed: %w", err)
	}

	labels := make(map[string]bool, len(config.Scenarios))
	for i, scenario := range config.Scenarios {
		if err := ip.validateScenario(in, &scenario); err != nil {
			return fmt.Errorf("scenario %d validation failed: %w", i, err)
		}
		if labels[scenario.Label] {
			return fmt.Errorf("scenario %d validation failed: %w", i, domain.NewInvalidInputError("label", "duplicate scenario %q", scenario.Label))
		}
		labels[scenario.Label] = true
	}

	names := make(map[string]bool, len(config.Plans))
	for i, plan := range config.Plans {
		if err := ip.validatePlan(&plan); err != nil {
			return fmt.Errorf("plan %d validation failed: %w", i, err)
		}
		if names[plan.Name] {
			return fmt.Errorf("plan %d validation failed: %w", i, domain.NewInvalidInputError("name", "duplicate plan %q", plan.Name))
		}
		names[plan.Name] = true
	}

	if config.Simulation != nil {
		if err := ip.validateSimulation(config.Simulation); err != nil {
			return fmt.Errorf("simulation validation failed: %w", err)
		}
	}

	return nil
}

func (ip *InputParser) now() time.Time {
	if ip.Now == nil {
		return time.Now()
	}
	return ip.Now()
}

func (ip *InputParser) validateBeneficiary(b *domain.Beneficiary) error {
	if b.BirthDate == nil {
		if b.AsOf != nil {
			return domain.NewInvalidInputError("as_of", "requires birth_date")
		}
		return nil
	}
	ref := ip.now()
	if b.AsOf != nil {
		ref = *b.AsOf
	}
	if b.BirthDate.After(ref) {
		return domain.NewInvalidInputError("birth_date", "%s is after %s", b.BirthDate.Format("2006-01-02"), ref.Format("2006-01-02"))
	}
	return nil
}

// validateScenario checks a scenario against the projection it perturbs
func (ip *InputParser) validateScenario(in domain.ProjectionInput, scenario *domain.ScenarioSpec) error {
	if strings.TrimSpace(scenario.Label) == "" {
		return domain.NewInvalidInputError("label", "scenario label is required")
	}
	rate := in.ReturnRate.Add(scenario.RateDelta)
	if rate.LessThan(decimal.NewFromInt(-1)) {
		return domain.NewInvalidInputError("rate_delta", "return rate %s after delta is below -100%%", rate)
	}
	if scenario.ContributionOverride != nil && scenario.ContributionOverride.IsNegative() {
		return domain.NewInvalidInputError("contribution_override", "cannot be negative, got %s", scenario.ContributionOverride)
	}
	return nil
}

func (ip *InputParser) validatePlan(plan *domain.PlanOption) error {
	if strings.TrimSpace(plan.Name) == "" {
		return domain.NewInvalidInputError("name", "plan name is required")
	}
	if plan.PlanDeductionLimit.IsNegative() {
		return domain.NewInvalidInputError("plan_deduction_limit", "cannot be negative, got %s", plan.PlanDeductionLimit)
	}
	if plan.StateTaxRate.IsNegative() || plan.StateTaxRate.GreaterThan(decimal.NewFromInt(1)) {
		return domain.NewInvalidInputError("state_tax_rate", "must be between 0 and 1, got %s", plan.StateTaxRate)
	}
	if plan.FilingMultiplier != nil && plan.FilingMultiplier.IsNegative() {
		return domain.NewInvalidInputError("filing_multiplier", "cannot be negative, got %s", plan.FilingMultiplier)
	}
	return nil
}

func (ip *InputParser) validateSimulation(sim *domain.SimulationSettings) error {
	if sim.NumSimulations < 0 || sim.NumSimulations > MaxSimulations {
		return domain.NewInvalidInputError("num_simulations", "must be between 0 and %d, got %d", MaxSimulations, sim.NumSimulations)
	}
	if sim.Volatility.IsNegative() {
		return domain.NewInvalidInputError("volatility", "cannot be negative, got %s", sim.Volatility)
	}
	return nil
}

// CreateExampleConfiguration returns a plan for a five-year-old starting
// college at 18, with a second plan option and a Monte Carlo block.
func (ip *InputParser) CreateExampleConfiguration() *domain.Configuration {
	joint := decimal.NewFromInt(2)

	return &domain.Configuration{
		Beneficiary: domain.Beneficiary{Name: "Example Student"},
		Projection: domain.ProjectionInput{
			CurrentAge:          5,
			TargetAge:           18,
			DurationYears:       domain.DefaultDurationYears,
			CurrentCost:         decimal.NewFromInt(25000),
			InflationRate:       decimal.NewFromFloat(0.05),
			CurrentSavings:      decimal.NewFromInt(10000),
			ReturnRate:          decimal.NewFromFloat(0.07),
			MonthlyContribution: decimal.NewFromInt(300),
			PlanDeductionLimit:  decimal.NewFromInt(5000),
			FilingMultiplier:    decimal.NewFromInt(1),
			StateTaxRate:        decimal.NewFromFloat(0.05),
		},
		Scenarios: []domain.ScenarioSpec{
			{Label: "Conservative", RateDelta: decimal.NewFromFloat(-0.02)},
			{Label: "Moderate", RateDelta: decimal.Zero},
			{Label: "Aggressive", RateDelta: decimal.NewFromFloat(0.02)},
		},
		Plans: []domain.PlanOption{
			{Name: "In-State Plan", State: "OH", PlanDeductionLimit: decimal.NewFromInt(4000), StateTaxRate: decimal.NewFromFloat(0.035)},
			{Name: "In-State Plan (Joint)", State: "OH", PlanDeductionLimit: decimal.NewFromInt(4000), StateTaxRate: decimal.NewFromFloat(0.035), FilingMultiplier: &joint},
			{Name: "Out-of-State Plan", State: "NV", PlanDeductionLimit: decimal.Zero, StateTaxRate: decimal.Zero},
		},
		Simulation: &domain.SimulationSettings{
			NumSimulations: 1000,
			Volatility:     decimal.NewFromFloat(0.12),
			Seed:           42,
		},
	}
}
