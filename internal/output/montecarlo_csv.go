package output

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/rpgo/college-planner/internal/calculation"
)

// MonteCarloCSVReport generates CSV exports for Monte Carlo funding results
type MonteCarloCSVReport struct {
	Result *calculation.MonteCarloResult
}

func writeCSVFile(outputPath string, rows [][]string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create CSV file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.WriteAll(rows); err != nil {
		return fmt.Errorf("failed to write CSV rows: %w", err)
	}
	return nil
}

// GenerateSummaryCSV creates a summary CSV with aggregate statistics
func (m *MonteCarloCSVReport) GenerateSummaryCSV(outputPath string) error {
	r := m.Result
	rows := [][]string{
		{"Metric", "Value", "Description"},
		{"Success Rate", FormatRate(r.SuccessRate), "Share of simulations whose ending balance covers the projected cost"},
		{"Median Ending Balance", FormatCurrency(r.MedianEndingBalance), "Median balance when college starts"},
		{"10th Percentile Balance", FormatCurrency(r.PercentileRanges.P10), "Worst 10% of markets"},
		{"25th Percentile Balance", FormatCurrency(r.PercentileRanges.P25), "Below average markets"},
		{"75th Percentile Balance", FormatCurrency(r.PercentileRanges.P75), "Above average markets"},
		{"90th Percentile Balance", FormatCurrency(r.PercentileRanges.P90), "Best 10% of markets"},
		{"Projected Cost", FormatCurrency(r.TargetCost), "Inflated cost the balance is compared against"},
		{"Volatility", FormatRate(r.Volatility), "Annual standard deviation of returns"},
		{"Number of Simulations", strconv.Itoa(r.NumSimulations), "Total number of simulations run"},
		{"Seed", strconv.FormatInt(r.Seed, 10), "Seed that reproduces this run"},
	}
	return writeCSVFile(outputPath, rows)
}

// GenerateDetailedCSV creates a detailed CSV with individual simulation results.
// One Return column is emitted per saving year.
func (m *MonteCarloCSVReport) GenerateDetailedCSV(outputPath string) error {
	years := 0
	if len(m.Result.Simulations) > 0 {
		years = len(m.Result.Simulations[0].AnnualReturns)
	}

	header := []string{"SimulationID", "Success", "EndingBalance"}
	for y := 1; y <= years; y++ {
		header = append(header, "ReturnYear"+strconv.Itoa(y))
	}
	rows := [][]string{header}

	for i, sim := range m.Result.Simulations {
		row := []string{
			strconv.Itoa(i + 1),
			strconv.FormatBool(sim.Success),
			sim.EndingBalance.StringFixed(2),
		}
		for _, ret := range sim.AnnualReturns {
			row = append(row, ret.StringFixed(6))
		}
		rows = append(rows, row)
	}
	return writeCSVFile(outputPath, rows)
}

// GenerateAllCSVReports writes the summary and detailed reports into outputDir
// and returns the paths written.
func (m *MonteCarloCSVReport) GenerateAllCSVReports(outputDir string) ([]string, error) {
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	summaryPath := filepath.Join(outputDir, "monte_carlo_summary.csv")
	if err := m.GenerateSummaryCSV(summaryPath); err != nil {
		return nil, fmt.Errorf("failed to generate summary CSV: %w", err)
	}

	detailedPath := filepath.Join(outputDir, "monte_carlo_detailed.csv")
	if err := m.GenerateDetailedCSV(detailedPath); err != nil {
		return nil, fmt.Errorf("failed to generate detailed CSV: %w", err)
	}

	return []string{summaryPath, detailedPath}, nil
}
