package output

import (
	"bytes"
	"fmt"

	"github.com/rpgo/college-planner/internal/domain"
)

// ConsoleFormatter provides a concise console style summary via the formatter interface.
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console-lite" }

func (c ConsoleFormatter) Format(report *domain.PlanReport) ([]byte, error) {
	var buf bytes.Buffer
	res := report.Result
	rec := AnalyzeReport(report)

	fmt.Fprintln(&buf, "COLLEGE SAVINGS SUMMARY")
	fmt.Fprintln(&buf, "================================")
	if report.Beneficiary != "" {
		fmt.Fprintf(&buf, "Beneficiary: %s\n", report.Beneficiary)
	}
	fmt.Fprintf(&buf, "Projected Cost:    %s\n", FormatCurrency(res.TotalProjectedCost))
	fmt.Fprintf(&buf, "Projected Savings: %s\n", FormatCurrency(res.TotalProjectedSavings))
	fmt.Fprintf(&buf, "Status: %s (%s funded)\n", rec.FundingStatus(), FormatPercentage(rec.FundedPercent))
	fmt.Fprintf(&buf, "Required Monthly:  %s\n", FormatCurrency(res.RequiredMonthlyContribution))
	fmt.Fprintf(&buf, "State Tax Benefit: %s/yr, %s lifetime\n", FormatCurrency(res.TaxBenefit.AnnualStateSavings), FormatCurrency(res.TaxBenefit.LifetimeValue))
	fmt.Fprintln(&buf)

	for _, sc := range res.Scenarios {
		fmt.Fprintf(&buf, "%s: Rate=%s Savings=%s Shortfall=%s\n",
			sc.Name,
			FormatRate(sc.RateAssumption),
			FormatCurrency(sc.ProjectedSavings),
			FormatCurrency(sc.Shortfall),
		)
	}
	if rec.PlanName != "" {
		fmt.Fprintln(&buf)
		fmt.Fprintf(&buf, "Recommended plan: %s\n", rec.PlanName)
	}
	return buf.Bytes(), nil
}
