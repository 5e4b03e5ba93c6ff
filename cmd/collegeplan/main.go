// Command collegeplan projects college costs against 529-style savings.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/rpgo/college-planner/internal/calculation"
	"github.com/rpgo/college-planner/internal/config"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// app carries state shared by every subcommand.
type app struct {
	verbose bool
	logger  *zap.Logger
	out     io.Writer
	env     config.Environment
	envErr  error
}

func (a *app) newEngine() *calculation.ProjectionEngine {
	engine := calculation.NewProjectionEngine()
	if a.logger != nil {
		engine.SetLogger(a.logger.Sugar())
		engine.Debug = a.verbose
	}
	return engine
}

func newRootCmd(out io.Writer) *cobra.Command {
	a := &app{out: out}
	a.env, a.envErr = config.LoadEnvironment()

	rootCmd := &cobra.Command{
		Use:   "collegeplan",
		Short: "College savings projection calculator",
		Long: `collegeplan projects the inflated cost of college, the future value of a
529-style savings plan, the monthly contribution needed to close any gap,
and the state tax deduction the contributions earn.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if a.envErr != nil {
				return a.envErr
			}
			logConfig := zap.NewProductionConfig()
			if a.verbose {
				logConfig.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
			}
			var err error
			a.logger, err = logConfig.Build()
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}
	rootCmd.SetOut(out)
	rootCmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", a.env.Verbose, "Enable debug logging")

	rootCmd.AddCommand(
		a.calculateCmd(),
		a.quickCmd(),
		a.simulateCmd(),
		a.exampleCmd(),
		a.validateCmd(),
		a.formatsCmd(),
	)
	return rootCmd
}

func main() {
	if err := newRootCmd(os.Stdout).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
