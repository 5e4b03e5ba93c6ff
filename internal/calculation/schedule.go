package calculation

import (
	"time"

	"github.com/rpgo/college-planner/internal/domain"
	"github.com/rpgo/college-planner/pkg/dateutil"
)

// ScheduleAnchor pins a schedule to calendar years.
type ScheduleAnchor struct {
	BirthDate time.Time
	AsOf      time.Time
}

// BuildSchedule expands a projection into yearly savings balances and
// per-year college costs. A nil anchor leaves calendar years unset.
func BuildSchedule(in domain.ProjectionInput, anchor *ScheduleAnchor) (domain.Schedule, error) {
	in = in.WithDefaults()
	if err := in.Validate(); err != nil {
		return domain.Schedule{}, err
	}

	rate := MonthlyRate(in.ReturnRate)
	yearlyContribution := in.AnnualContribution()
	years := in.YearsUntilStart()

	savings := make([]domain.SavingsYear, 0, years)
	balance := in.CurrentSavings
	paid := in.CurrentSavings
	for y := 1; y <= years; y++ {
		end, err := FutureValue(balance, in.MonthlyContribution, rate, domain.MonthsPerYear)
		if err != nil {
			return domain.Schedule{}, err
		}
		paid = paid.Add(yearlyContribution)
		row := domain.SavingsYear{
			Year:               y,
			Age:                in.CurrentAge + y,
			Contributions:      yearlyContribution,
			Growth:             end.Sub(balance).Sub(yearlyContribution),
			TotalContributions: paid,
			EndBalance:         end,
		}
		if anchor != nil {
			row.CalendarYear = dateutil.CalendarYearAfter(anchor.AsOf, y)
		}
		savings = append(savings, row)
		balance = end
	}

	perYear, err := ProjectCostByYear(in.CurrentCost, in.InflationRate, years, in.DurationYears)
	if err != nil {
		return domain.Schedule{}, err
	}
	costs := make([]domain.CostYear, len(perYear))
	for i, c := range perYear {
		costs[i] = domain.CostYear{
			Index:         i + 1,
			Age:           in.TargetAge + i,
			ProjectedCost: c,
		}
		if anchor != nil {
			costs[i].CalendarYear = dateutil.AcademicYearStart(anchor.BirthDate, in.TargetAge).Year() + i
		}
	}

	return domain.Schedule{Savings: savings, Costs: costs}, nil
}
