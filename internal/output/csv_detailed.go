package output

import (
	"bytes"
	"encoding/csv"

	"github.com/rpgo/college-planner/internal/domain"
)

// CSVDetailedExporter exports the yearly schedule: savings rows for each year
// until college, then one cost row per college year.
type CSVDetailedExporter struct{}

func (c CSVDetailedExporter) Name() string { return "detailed-csv" }

func (c CSVDetailedExporter) Format(report *domain.PlanReport) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"Phase", "Year", "CalendarYear", "Age", "Contributions", "Growth", "TotalContributions", "EndBalance", "ProjectedCost"}
	if err := w.Write(header); err != nil {
		return nil, err
	}

	for _, yr := range report.Schedule.Savings {
		row := []string{
			"saving",
			intToString(yr.Year),
			calendarYear(yr.CalendarYear),
			intToString(yr.Age),
			yr.Contributions.StringFixed(2),
			yr.Growth.StringFixed(2),
			yr.TotalContributions.StringFixed(2),
			yr.EndBalance.StringFixed(2),
			"",
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	for _, cy := range report.Schedule.Costs {
		row := []string{
			"college",
			intToString(cy.Index),
			calendarYear(cy.CalendarYear),
			intToString(cy.Age),
			"", "", "", "",
			cy.ProjectedCost.StringFixed(2),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

// calendarYear leaves unanchored years blank.
func calendarYear(y int) string {
	if y == 0 {
		return ""
	}
	return intToString(y)
}
