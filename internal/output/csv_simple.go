package output

import (
	"bytes"
	"encoding/csv"

	"github.com/rpgo/college-planner/internal/domain"
)

// CSVSummarizer implements the simple summary CSV output: the base case
// followed by one row per scenario, in scenario order.
type CSVSummarizer struct{}

func (c CSVSummarizer) Name() string { return "csv" }

func (c CSVSummarizer) Format(report *domain.PlanReport) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"Scenario", "ReturnRate", "MonthlyContribution", "ProjectedSavings", "ProjectedCost", "Shortfall", "FullyFunded"}
	if err := w.Write(header); err != nil {
		return nil, err
	}

	res := report.Result
	base := []string{
		"Base",
		report.Input.ReturnRate.String(),
		report.Input.MonthlyContribution.StringFixed(2),
		res.TotalProjectedSavings.StringFixed(2),
		res.TotalProjectedCost.StringFixed(2),
		res.Shortfall().StringFixed(2),
		boolToString(res.IsFullyFunded()),
	}
	if err := w.Write(base); err != nil {
		return nil, err
	}

	for _, sc := range res.Scenarios {
		row := []string{
			sc.Name,
			sc.RateAssumption.String(),
			sc.Contribution.StringFixed(2),
			sc.ProjectedSavings.StringFixed(2),
			res.TotalProjectedCost.StringFixed(2),
			sc.Shortfall.StringFixed(2),
			boolToString(sc.IsFunded()),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
