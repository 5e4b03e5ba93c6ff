package output

import (
	"bytes"
	"fmt"

	"github.com/rpgo/college-planner/internal/domain"
)

// ConsoleVerboseFormatter renders the full styled console report.
type ConsoleVerboseFormatter struct{}

func (c ConsoleVerboseFormatter) Name() string { return "console" }

func (c ConsoleVerboseFormatter) Format(report *domain.PlanReport) ([]byte, error) {
	var buf bytes.Buffer
	in := report.Input
	res := report.Result
	rec := AnalyzeReport(report)

	title := "COLLEGE SAVINGS PROJECTION"
	if report.Beneficiary != "" {
		title += " · " + report.Beneficiary
	}
	fmt.Fprintln(&buf, renderTitle(title))
	fmt.Fprintln(&buf)

	fmt.Fprintln(&buf, renderSection("KEY ASSUMPTIONS"))
	for _, a := range reportAssumptions(report) {
		fmt.Fprintf(&buf, "• %s\n", a)
	}
	fmt.Fprintln(&buf)

	fmt.Fprintln(&buf, renderSection("FUNDING OVERVIEW"))
	fmt.Fprintf(&buf, "  Years until college:       %d (ages %d → %d)\n", in.YearsUntilStart(), in.CurrentAge, in.TargetAge)
	fmt.Fprintf(&buf, "  Total projected cost:      %s over %d years\n", FormatCurrency(res.TotalProjectedCost), in.DurationYears)
	fmt.Fprintf(&buf, "  Total projected savings:   %s\n", FormatCurrency(res.TotalProjectedSavings))
	if rec.FullyFunded {
		fmt.Fprintf(&buf, "  Status:                    %s (surplus %s)\n", goodStyle.Render(rec.FundingStatus()), FormatCurrency(rec.Gap))
	} else {
		fmt.Fprintf(&buf, "  Status:                    %s of %s (%s funded)\n", badStyle.Render(rec.FundingStatus()), FormatCurrency(rec.Gap), FormatPercentage(rec.FundedPercent))
	}
	fmt.Fprintf(&buf, "  Current monthly:           %s\n", FormatCurrency(in.MonthlyContribution))
	fmt.Fprintf(&buf, "  Required monthly:          %s\n", FormatCurrency(res.RequiredMonthlyContribution))
	if rec.MonthlyIncrease.IsPositive() {
		fmt.Fprintf(&buf, "  Increase needed:           %s\n", warnStyle.Render(FormatCurrency(rec.MonthlyIncrease)))
	}
	if report.BreakEvenReturnRate != nil {
		fmt.Fprintf(&buf, "  Break-even return:         %s\n", FormatRate(*report.BreakEvenReturnRate))
	}
	fmt.Fprintln(&buf)

	tb := res.TaxBenefit
	fmt.Fprintln(&buf, renderSection("STATE TAX BENEFIT"))
	fmt.Fprintf(&buf, "  Annual contribution:       %s\n", FormatCurrency(tb.AnnualContribution))
	fmt.Fprintf(&buf, "  Deduction limit:           %s\n", FormatCurrency(tb.DeductionCap))
	fmt.Fprintf(&buf, "  Deductible:                %s\n", FormatCurrency(tb.Deductible))
	fmt.Fprintf(&buf, "  Annual state savings:      %s\n", FormatCurrency(tb.AnnualStateSavings))
	fmt.Fprintf(&buf, "  Lifetime value:            %s\n", FormatCurrency(tb.LifetimeValue))
	fmt.Fprintln(&buf)

	if len(res.Scenarios) > 0 {
		rows := make([][]string, 0, len(res.Scenarios))
		for _, sc := range res.Scenarios {
			rows = append(rows, []string{sc.Name, FormatRate(sc.RateAssumption), FormatCurrency(sc.Contribution), FormatCurrency(sc.ProjectedSavings), FormatCurrency(sc.Shortfall)})
		}
		fmt.Fprint(&buf, renderTable(table{
			Title:   "SCENARIOS",
			Headers: []string{"Scenario", "Return", "Monthly", "Savings", "Shortfall"},
			Rows:    rows,
		}))
		fmt.Fprintln(&buf)
	}

	if len(report.Schedule.Savings) > 0 {
		rows := make([][]string, 0, len(report.Schedule.Savings))
		for _, yr := range report.Schedule.Savings {
			rows = append(rows, []string{scheduleLabel(yr.Year, yr.CalendarYear), intToString(yr.Age), FormatCurrency(yr.Contributions), FormatCurrency(yr.Growth), FormatCurrency(yr.EndBalance)})
		}
		fmt.Fprint(&buf, renderTable(table{
			Title:   "SAVINGS GROWTH",
			Headers: []string{"Year", "Age", "Contributed", "Growth", "Balance"},
			Rows:    rows,
		}))
		fmt.Fprintln(&buf)
	}

	if len(report.Schedule.Costs) > 0 {
		rows := make([][]string, 0, len(report.Schedule.Costs))
		for _, cy := range report.Schedule.Costs {
			rows = append(rows, []string{scheduleLabel(cy.Index, cy.CalendarYear), intToString(cy.Age), FormatCurrency(cy.ProjectedCost)})
		}
		fmt.Fprint(&buf, renderTable(table{
			Title:   "COLLEGE COSTS",
			Headers: []string{"Year", "Age", "Projected Cost"},
			Rows:    rows,
		}))
		fmt.Fprintln(&buf)
	}

	if len(report.Plans) > 0 {
		rows := make([][]string, 0, len(report.Plans))
		for _, p := range report.Plans {
			name := p.Name
			if p.Name == report.RecommendedPlan {
				name += " *"
			}
			rows = append(rows, []string{name, p.State, FormatCurrency(p.TaxBenefit.AnnualStateSavings), FormatCurrency(p.TaxBenefit.LifetimeValue), FormatCurrency(p.NetCost)})
		}
		fmt.Fprint(&buf, renderTable(table{
			Title:   "PLAN COMPARISON",
			Headers: []string{"Plan", "State", "Annual Benefit", "Lifetime Benefit", "Net Cost"},
			Rows:    rows,
		}))
		fmt.Fprintln(&buf, mutedStyle.Render("* recommended"))
		fmt.Fprintln(&buf)
	}

	if sim := report.Simulation; sim != nil {
		fmt.Fprintln(&buf, renderSection("MONTE CARLO"))
		fmt.Fprintf(&buf, "  Simulations:               %d (seed %d, volatility %s)\n", sim.NumSimulations, sim.Seed, FormatRate(sim.Volatility))
		fmt.Fprintf(&buf, "  Probability fully funded:  %s\n", FormatRate(sim.SuccessRate))
		fmt.Fprintf(&buf, "  Median ending balance:     %s\n", FormatCurrency(sim.MedianEndingBalance))
		fmt.Fprintf(&buf, "  10th-90th percentile:      %s – %s\n", FormatCurrency(sim.Percentiles.P10), FormatCurrency(sim.Percentiles.P90))
		fmt.Fprintln(&buf)
	}

	if len(report.Insights) > 0 {
		fmt.Fprintln(&buf, renderSection("INSIGHTS"))
		for _, s := range report.Insights {
			fmt.Fprintf(&buf, "• %s\n", s)
		}
	}

	return buf.Bytes(), nil
}

func scheduleLabel(index, calendarYear int) string {
	if calendarYear == 0 {
		return intToString(index)
	}
	return fmt.Sprintf("%d (%d)", index, calendarYear)
}
