package sequence

import (
	"errors"
	"fmt"
	"strings"

	"github.com/vesselops/ballastgate/solver"
)

// Diagnose produces advisory probable-cause lines for a stage that could
// not be solved cleanly: either err carries the solver's infeasibility
// detail, or plan carries residual gate violations. The lines are
// suggestions for the operator, not verdicts.
func Diagnose(st solver.Stage, plan solver.Plan, err error) []Diagnostic {
	var ie *solver.InfeasibleError
	if errors.As(err, &ie) {
		return diagnoseInfeasible(ie)
	}

	var out []Diagnostic
	for _, v := range plan.Violations {
		out = append(out, Diagnostic{Gate: v.Gate, Message: violationCause(v)})
	}

	return out
}

func diagnoseInfeasible(ie *solver.InfeasibleError) []Diagnostic {
	var out []Diagnostic
	for _, g := range ie.Gates {
		// A row demands lhs ≤ Required; Attainable is the best (smallest)
		// lhs the tank bounds permit. Attainable above Required means the
		// row can never hold.
		if g.Attainable <= g.Required+1e-9 {
			continue
		}
		out = append(out, Diagnostic{
			Gate: g.Gate,
			Message: fmt.Sprintf("requires a shift to %.3f but tank bounds only reach %.3f; capacity or mode restrictions likely",
				g.Required, g.Attainable),
		})
	}
	if len(out) == 0 {
		out = append(out, Diagnostic{Message: "constraints are jointly unsatisfiable although each is reachable alone; conflicting gates likely"})
	}

	return out
}

func violationCause(v solver.Violation) string {
	switch {
	case strings.HasPrefix(v.Gate, "AFT_MIN"):
		return fmt.Sprintf("aft draft remains %.3f m below its minimum; aft fill capacity exhausted", v.Amount)
	case strings.HasPrefix(v.Gate, "FWD_MAX"):
		return fmt.Sprintf("forward draft remains %.3f m above its maximum; forward discharge capacity exhausted", v.Amount)
	case strings.HasPrefix(v.Gate, "FB_MIN"):
		return fmt.Sprintf("freeboard remains %.3f m short; discharge capacity exhausted", v.Amount)
	case strings.HasPrefix(v.Gate, "UKC_MIN"):
		return fmt.Sprintf("under-keel clearance remains %.3f m short; discharge capacity exhausted", v.Amount)
	case strings.HasPrefix(v.Gate, "TARGET"):
		return fmt.Sprintf("target condition missed by %.1f; tank capacity insufficient for the requested shift", v.Amount)
	default:
		return fmt.Sprintf("gate remains violated by %.3f after best effort", v.Amount)
	}
}
