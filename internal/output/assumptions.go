package output

import "github.com/rpgo/college-planner/internal/domain"

// DefaultAssumptions lists the modeling assumptions rendered when a report
// carries none of its own.
var DefaultAssumptions = []string{
	"College costs inflate at a constant annual rate",
	"Savings compound monthly at a constant annual return",
	"Contributions are made at the end of each month",
	"State deduction limits and tax rates held constant (no indexing)",
}

func reportAssumptions(r *domain.PlanReport) []string {
	if len(r.Assumptions) == 0 {
		return DefaultAssumptions
	}
	return r.Assumptions
}
