package output

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"html/template"

	"github.com/rpgo/college-planner/internal/domain"
)

// HTMLFormatter produces a self-contained HTML report with a savings growth chart.
type HTMLFormatter struct{}

func (h HTMLFormatter) Name() string { return "html" }

//go:embed templates/report.html.tmpl
var htmlTemplateSource string

var htmlTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"curr": FormatCurrency,
	"pct":  FormatPercentage,
	"rate": FormatRate,
	"json": func(v interface{}) template.JS {
		b, _ := json.Marshal(v)
		return template.JS(b)
	},
}).Parse(htmlTemplateSource))

// chartPoint is one bar of the savings growth chart.
type chartPoint struct {
	Label   string  `json:"label"`
	Balance float64 `json:"balance"`
	Paid    float64 `json:"paid"`
}

func (h HTMLFormatter) Format(report *domain.PlanReport) ([]byte, error) {
	var buf bytes.Buffer

	points := make([]chartPoint, 0, len(report.Schedule.Savings))
	for _, yr := range report.Schedule.Savings {
		points = append(points, chartPoint{
			Label:   scheduleLabel(yr.Year, yr.CalendarYear),
			Balance: yr.EndBalance.Round(2).InexactFloat64(),
			Paid:    yr.TotalContributions.Round(2).InexactFloat64(),
		})
	}

	data := struct {
		*domain.PlanReport
		Recommendation Recommendation
		Assumptions    []string
		Chart          []chartPoint
	}{report, AnalyzeReport(report), reportAssumptions(report), points}
	if err := htmlTemplate.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
