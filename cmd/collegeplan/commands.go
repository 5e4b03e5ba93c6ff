package main

import (
	"fmt"
	"strings"

	"github.com/rpgo/college-planner/internal/calculation"
	"github.com/rpgo/college-planner/internal/config"
	"github.com/rpgo/college-planner/internal/domain"
	"github.com/rpgo/college-planner/internal/output"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

const defaultVolatility = 0.12

// writeReport prints console formats to stdout unless an output directory
// was requested; every other format is written to a file.
func (a *app) writeReport(report *domain.PlanReport, format, outputDir string) error {
	name := output.NormalizeFormatName(format)
	if outputDir == "" && strings.HasPrefix(name, "console") {
		f := output.GetFormatterByName(name)
		if f == nil {
			return fmt.Errorf("%w: %q", output.ErrUnsupportedFormat, format)
		}
		data, err := f.Format(report)
		if err != nil {
			return err
		}
		_, err = a.out.Write(data)
		return err
	}

	paths, err := output.GenerateReport(report, format, outputDir)
	if err != nil {
		return err
	}
	for _, p := range paths {
		fmt.Fprintf(a.out, "Report written to %s\n", p)
	}
	return nil
}

func (a *app) calculateCmd() *cobra.Command {
	var (
		format      string
		outputDir   string
		simulations int
		seed        int64
	)

	cmd := &cobra.Command{
		Use:   "calculate [config-file]",
		Short: "Run a full projection from a configuration file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.NewInputParser().LoadFromFile(args[0])
			if err != nil {
				return err
			}

			if cmd.Flags().Changed("simulations") || cmd.Flags().Changed("seed") {
				if cfg.Simulation == nil {
					cfg.Simulation = &domain.SimulationSettings{Volatility: decimal.NewFromFloat(defaultVolatility)}
				}
				if cmd.Flags().Changed("simulations") {
					if simulations < 0 || simulations > config.MaxSimulations {
						return domain.NewInvalidInputError("simulations", "must be between 0 and %d, got %d", config.MaxSimulations, simulations)
					}
					cfg.Simulation.NumSimulations = simulations
				}
				if cmd.Flags().Changed("seed") {
					cfg.Simulation.Seed = seed
				}
			}

			report, err := a.newEngine().RunPlan(cmd.Context(), cfg)
			if err != nil {
				return fmt.Errorf("calculation failed: %w", err)
			}
			return a.writeReport(report, format, outputDir)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", a.env.FormatOr("console"), "Output format (see 'collegeplan formats')")
	cmd.Flags().StringVarP(&outputDir, "output-dir", "o", a.env.OutputDir, "Directory for report files")
	cmd.Flags().IntVar(&simulations, "simulations", 0, "Number of Monte Carlo simulations (overrides the configuration)")
	cmd.Flags().Int64Var(&seed, "seed", 0, "Monte Carlo seed (overrides the configuration)")
	return cmd
}

func (a *app) quickCmd() *cobra.Command {
	var (
		f         domain.FloatInput
		name      string
		format    string
		outputDir string
	)

	cmd := &cobra.Command{
		Use:   "quick",
		Short: "Run a projection from flags without a configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := domain.NewProjectionInputFromFloats(f)
			if err != nil {
				return err
			}
			cfg := &domain.Configuration{
				Beneficiary: domain.Beneficiary{Name: name},
				Projection:  in,
			}
			report, err := a.newEngine().RunPlan(cmd.Context(), cfg)
			if err != nil {
				return fmt.Errorf("calculation failed: %w", err)
			}
			return a.writeReport(report, format, outputDir)
		},
	}

	flags := cmd.Flags()
	flags.IntVar(&f.CurrentAge, "current-age", 5, "Beneficiary's age today")
	flags.IntVar(&f.TargetAge, "target-age", 18, "Age at which college starts")
	flags.IntVar(&f.DurationYears, "years", domain.DefaultDurationYears, "Number of college years")
	flags.Float64Var(&f.CurrentCost, "cost", 25000, "Annual cost of college in today's dollars")
	flags.Float64Var(&f.InflationRate, "inflation", 0.05, "Annual college cost inflation (0.05 = 5%)")
	flags.Float64Var(&f.CurrentSavings, "savings", 0, "Current plan balance")
	flags.Float64Var(&f.ReturnRate, "return", 0.07, "Expected annual return (0.07 = 7%)")
	flags.Float64Var(&f.MonthlyContribution, "monthly", 0, "Monthly contribution")
	flags.Float64Var(&f.PlanDeductionLimit, "deduction-limit", 0, "State deduction limit per filer")
	flags.Float64Var(&f.FilingMultiplier, "filing-multiplier", 1, "Number of filers claiming the deduction")
	flags.Float64Var(&f.StateTaxRate, "state-tax-rate", 0, "State income tax rate (0.05 = 5%)")
	flags.StringVar(&name, "name", "", "Beneficiary name for the report")
	flags.StringVarP(&format, "format", "f", a.env.FormatOr("console-lite"), "Output format (see 'collegeplan formats')")
	flags.StringVarP(&outputDir, "output-dir", "o", a.env.OutputDir, "Directory for report files")
	return cmd
}

func (a *app) simulateCmd() *cobra.Command {
	var (
		simulations int
		volatility  float64
		seed        int64
		outputDir   string
	)

	cmd := &cobra.Command{
		Use:   "simulate [config-file]",
		Short: "Run a Monte Carlo funding check and export CSV results",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			parser := config.NewInputParser()
			cfg, err := parser.LoadFromFile(args[0])
			if err != nil {
				return err
			}

			mcConfig := calculation.MonteCarloConfig{
				NumSimulations: simulations,
				Volatility:     decimal.NewFromFloat(volatility),
				Seed:           seed,
			}
			if s := cfg.Simulation; s != nil {
				if !cmd.Flags().Changed("simulations") && s.NumSimulations > 0 {
					mcConfig.NumSimulations = s.NumSimulations
				}
				if !cmd.Flags().Changed("volatility") && !s.Volatility.IsZero() {
					mcConfig.Volatility = s.Volatility
				}
				if !cmd.Flags().Changed("seed") {
					mcConfig.Seed = s.Seed
				}
			}

			if mcConfig.NumSimulations <= 0 || mcConfig.NumSimulations > config.MaxSimulations {
				return domain.NewInvalidInputError("simulations", "must be between 1 and %d, got %d", config.MaxSimulations, mcConfig.NumSimulations)
			}

			in := cfg.EffectiveInput(parser.Now())
			engine := a.newEngine()
			result, err := engine.ComputeProjection(in)
			if err != nil {
				return fmt.Errorf("calculation failed: %w", err)
			}

			sim := calculation.NewMonteCarloSimulator(mcConfig)
			sim.Logger = engine.Logger
			mc, err := sim.Run(cmd.Context(), in, result.TotalProjectedCost)
			if err != nil {
				return fmt.Errorf("simulation failed: %w", err)
			}

			paths, err := (&output.MonteCarloCSVReport{Result: mc}).GenerateAllCSVReports(outputDir)
			if err != nil {
				return err
			}

			fmt.Fprintf(a.out, "Simulations:     %d (seed %d)\n", mc.NumSimulations, mc.Seed)
			fmt.Fprintf(a.out, "Volatility:      %s\n", output.FormatRate(mc.Volatility))
			fmt.Fprintf(a.out, "Success rate:    %s\n", output.FormatRate(mc.SuccessRate))
			fmt.Fprintf(a.out, "Median balance:  %s\n", output.FormatCurrency(mc.MedianEndingBalance))
			fmt.Fprintf(a.out, "Projected cost:  %s\n", output.FormatCurrency(mc.TargetCost))
			for _, p := range paths {
				fmt.Fprintf(a.out, "Results written to %s\n", p)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&simulations, "simulations", 1000, "Number of simulations")
	cmd.Flags().Float64Var(&volatility, "volatility", defaultVolatility, "Annual standard deviation of returns")
	cmd.Flags().Int64Var(&seed, "seed", 0, "Random seed (0 picks one)")
	defaultDir := a.env.OutputDir
	if defaultDir == "" {
		defaultDir = "."
	}
	cmd.Flags().StringVarP(&outputDir, "output-dir", "o", defaultDir, "Directory for CSV files")
	return cmd
}

func (a *app) exampleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "example [output-file]",
		Short: "Write an example configuration (YAML, or TOML by extension)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			filename := "example_config.yaml"
			if len(args) == 1 {
				filename = args[0]
			}
			cfg := config.NewInputParser().CreateExampleConfiguration()
			if err := output.SaveConfiguration(cfg, filename); err != nil {
				return fmt.Errorf("failed to save example configuration: %w", err)
			}
			fmt.Fprintf(a.out, "Example configuration written to %s\n", filename)
			return nil
		},
	}
}

func (a *app) validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [config-file]",
		Short: "Validate a configuration file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			parser := config.NewInputParser()
			cfg, err := parser.LoadFromFile(args[0])
			if err != nil {
				return err
			}
			in := cfg.EffectiveInput(parser.Now())
			fmt.Fprintf(a.out, "Configuration is valid: age %d to %d, %d college years, %d scenarios, %d plans\n",
				in.CurrentAge, in.TargetAge, in.DurationYears, len(cfg.Scenarios), len(cfg.Plans))
			return nil
		},
	}
}

func (a *app) formatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "formats",
		Short: "List report formats and aliases",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(a.out, "Formats:")
			for _, name := range output.AvailableFormatterNames() {
				fmt.Fprintf(a.out, "  %s\n", name)
			}
			fmt.Fprintln(a.out, "  all (console, json, detailed-csv and html files)")
			fmt.Fprintln(a.out, "Aliases:")
			for _, alias := range output.AvailableFormatAliases() {
				fmt.Fprintf(a.out, "  %s -> %s\n", alias, output.NormalizeFormatName(alias))
			}
		},
	}
}
