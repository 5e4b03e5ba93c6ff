package calculation

import (
	"context"
	"math/rand"
	"sort"

	"github.com/rpgo/college-planner/internal/domain"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

const defaultMonteCarloWorkers = 10

// worst annual return a single draw may produce
var minSimulatedReturn = decimal.NewFromFloat(-0.99)

// MonteCarloSimulator estimates the probability that savings cover the
// projected cost when annual returns vary around the expected rate.
type MonteCarloSimulator struct {
	NumSimulations int
	Volatility     decimal.Decimal
	Seed           int64
	Workers        int
	Logger         Logger
}

// MonteCarloConfig holds configuration for Monte Carlo simulations
type MonteCarloConfig struct {
	NumSimulations int
	Volatility     decimal.Decimal // annual standard deviation of returns
	Seed           int64           // zero picks a fresh seed
	Workers        int             // zero uses the default pool size
}

// MonteCarloResult represents the results of a Monte Carlo simulation
type MonteCarloResult struct {
	Simulations         []SimulationOutcome     `json:"simulations"`
	SuccessRate         decimal.Decimal         `json:"success_rate"`
	MedianEndingBalance decimal.Decimal         `json:"median_ending_balance"`
	PercentileRanges    domain.PercentileRanges `json:"percentile_ranges"`
	NumSimulations      int                     `json:"num_simulations"`
	Seed                int64                   `json:"seed"`
	Volatility          decimal.Decimal         `json:"volatility"`
	TargetCost          decimal.Decimal         `json:"target_cost"`
}

// SimulationOutcome represents a single Monte Carlo simulation outcome
type SimulationOutcome struct {
	AnnualReturns []decimal.Decimal `json:"annual_returns"`
	EndingBalance decimal.Decimal   `json:"ending_balance"`
	Success       bool              `json:"success"`
}

// NewMonteCarloSimulator creates a new Monte Carlo simulator
func NewMonteCarloSimulator(config MonteCarloConfig) *MonteCarloSimulator {
	if config.Seed == 0 {
		config.Seed = seedFunc()
	}
	if config.Workers <= 0 {
		config.Workers = defaultMonteCarloWorkers
	}

	return &MonteCarloSimulator{
		NumSimulations: config.NumSimulations,
		Volatility:     config.Volatility,
		Seed:           config.Seed,
		Workers:        config.Workers,
		Logger:         NopLogger{},
	}
}

// Run simulates the saving horizon of in NumSimulations times. Simulation i
// draws from its own source seeded with Seed+i, so results are identical
// for a given seed regardless of scheduling.
func (mcs *MonteCarloSimulator) Run(ctx context.Context, in domain.ProjectionInput, targetCost decimal.Decimal) (*MonteCarloResult, error) {
	if mcs.NumSimulations <= 0 {
		return nil, domain.NewInvalidInputError("num_simulations", "must be positive, got %d", mcs.NumSimulations)
	}
	if mcs.Volatility.IsNegative() {
		return nil, domain.NewInvalidInputError("volatility", "cannot be negative, got %s", mcs.Volatility)
	}
	in = in.WithDefaults()
	if err := in.Validate(); err != nil {
		return nil, err
	}

	mcs.logger().Debugf("running %d simulations (seed %d, volatility %s)", mcs.NumSimulations, mcs.Seed, mcs.Volatility)

	results := make([]SimulationOutcome, mcs.NumSimulations)
	workers := mcs.Workers
	if workers <= 0 {
		workers = defaultMonteCarloWorkers
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i := 0; i < mcs.NumSimulations; i++ {
		simIndex := i
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			rng := rand.New(rand.NewSource(mcs.Seed + int64(simIndex)))
			results[simIndex] = mcs.runSingleSimulation(rng, in, targetCost)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	balances := sortedBalances(results)
	result := &MonteCarloResult{
		Simulations:         results,
		SuccessRate:         calculateSuccessRate(results),
		MedianEndingBalance: balances[len(balances)/2],
		PercentileRanges:    calculatePercentileRanges(balances),
		NumSimulations:      mcs.NumSimulations,
		Seed:                mcs.Seed,
		Volatility:          mcs.Volatility,
		TargetCost:          targetCost,
	}
	mcs.logger().Infof("monte carlo success rate %s%%", result.SuccessRate.Mul(decimal.NewFromInt(100)).StringFixed(1))
	return result, nil
}

// runSingleSimulation compounds one year at a time with a freshly drawn
// annual return, contributing monthly.
func (mcs *MonteCarloSimulator) runSingleSimulation(rng *rand.Rand, in domain.ProjectionInput, targetCost decimal.Decimal) SimulationOutcome {
	years := in.YearsUntilStart()
	mean := in.ReturnRate.InexactFloat64()
	sd := mcs.Volatility.InexactFloat64()

	returns := make([]decimal.Decimal, years)
	balance := in.CurrentSavings
	for y := 0; y < years; y++ {
		r := decimal.NewFromFloat(mean + sd*rng.NormFloat64()).Round(8)
		if r.LessThan(minSimulatedReturn) {
			r = minSimulatedReturn
		}
		returns[y] = r

		// inputs are validated and r is clamped above -100%, so this cannot fail
		next, err := FutureValue(balance, in.MonthlyContribution, MonthlyRate(r), domain.MonthsPerYear)
		if err != nil {
			mcs.logger().Errorf("simulation year %d: %v", y+1, err)
			break
		}
		balance = next
	}

	return SimulationOutcome{
		AnnualReturns: returns,
		EndingBalance: balance,
		Success:       !balance.LessThan(targetCost),
	}
}

// Summary reduces the result to the form carried by a plan report.
func (r *MonteCarloResult) Summary() domain.SimulationSummary {
	return domain.SimulationSummary{
		NumSimulations:      r.NumSimulations,
		Seed:                r.Seed,
		Volatility:          r.Volatility,
		SuccessRate:         r.SuccessRate,
		MedianEndingBalance: r.MedianEndingBalance,
		Percentiles:         r.PercentileRanges,
	}
}

func (mcs *MonteCarloSimulator) logger() Logger {
	if mcs.Logger == nil {
		return NopLogger{}
	}
	return mcs.Logger
}

// calculateSuccessRate is the fraction of simulations that reached the target.
func calculateSuccessRate(simulations []SimulationOutcome) decimal.Decimal {
	successCount := 0
	for _, sim := range simulations {
		if sim.Success {
			successCount++
		}
	}
	return decimal.NewFromInt(int64(successCount)).Div(decimal.NewFromInt(int64(len(simulations))))
}

func sortedBalances(simulations []SimulationOutcome) []decimal.Decimal {
	balances := make([]decimal.Decimal, len(simulations))
	for i, sim := range simulations {
		balances[i] = sim.EndingBalance
	}
	sort.Slice(balances, func(i, j int) bool { return balances[i].LessThan(balances[j]) })
	return balances
}

// calculatePercentileRanges expects balances sorted ascending.
func calculatePercentileRanges(balances []decimal.Decimal) domain.PercentileRanges {
	n := len(balances)
	return domain.PercentileRanges{
		P10: balances[n/10],
		P25: balances[n/4],
		P50: balances[n/2],
		P75: balances[3*n/4],
		P90: balances[9*n/10],
	}
}
