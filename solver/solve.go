package solver

import (
	"errors"
	"fmt"
	"math"

	"github.com/vesselops/ballastgate/draft"
	"github.com/vesselops/ballastgate/hydro"
	"github.com/vesselops/ballastgate/lp"
	"github.com/vesselops/ballastgate/tank"
)

// Solve plans the ballast transfer for one stage.
//
// Per round (cfg.IterateHydro, default 2):
//  1. interpolate hydro coefficients at the current mean-draft estimate;
//  2. formulate the LP (two variables per tank, gate/target rows);
//  3. solve the bounded LP;
//  4. recover net deltas (fill − discharge), re-predict drafts, and feed
//     the new predicted mean back as the next round's estimate.
//
// The fixed-point iteration corrects for the draft dependence of TPC/MTC
// under large ballast moves. Infeasibility is returned as *InfeasibleError
// (wrapping lp.ErrInfeasible); hydro failures propagate as-is and are fatal
// for the whole run per the error-containment policy.
func Solve(stage Stage, tanks tank.Catalog, table *hydro.Table, cfg Config) (Plan, error) {
	if table == nil {
		return Plan{}, ErrNilTable
	}
	if err := stage.Validate(); err != nil {
		return Plan{}, err
	}

	rounds := cfg.IterateHydro
	if rounds < 1 {
		rounds = DefaultIterateHydro
	}
	eps := cfg.Eps
	if eps <= 0 || math.IsNaN(eps) {
		eps = DefaultPlanEps
	}

	var (
		prog   *program
		deltas []draft.Delta
		pred   draft.Result
		sol    lp.Result
		pivots int
	)
	meanEst := stage.BaseMean()
	for round := 0; round < rounds; round++ {
		hp, err := table.At(meanEst)
		if err != nil {
			return Plan{}, fmt.Errorf("stage %q: %w", stage.Name, err)
		}

		prog, err = buildProgram(stage, tanks, hp, cfg)
		if err != nil {
			return Plan{}, fmt.Errorf("stage %q: %w", stage.Name, err)
		}

		sol, err = lp.Solve(prog.prob, lp.DefaultOptions())
		if err != nil {
			if errors.Is(err, lp.ErrInfeasible) {
				return Plan{}, infeasible(stage, prog, err)
			}

			return Plan{}, fmt.Errorf("stage %q: %w", stage.Name, err)
		}
		pivots += sol.Iterations

		deltas = recoverDeltas(prog, sol.X, eps)
		pred, err = draft.Predict(stage.BaseFwd, stage.BaseAft, hp, deltas)
		if err != nil {
			return Plan{}, fmt.Errorf("stage %q: %w", stage.Name, err)
		}
		meanEst = pred.Mean
	}

	return assemble(stage, prog, sol, deltas, pred, rounds, pivots, eps), nil
}

// recoverDeltas folds the two LP variables per tank back into signed net
// deltas, dropping moves below eps tons.
func recoverDeltas(prog *program, x []float64, eps float64) []draft.Delta {
	deltas := make([]draft.Delta, 0, len(prog.tanks))
	for k, t := range prog.tanks {
		net := x[2*k] - x[2*k+1]
		if math.Abs(net) <= eps {
			continue
		}
		deltas = append(deltas, draft.Delta{Tank: t.Name, Tons: net, PosFromMid: t.PosFromMid})
	}

	return deltas
}

// assemble builds the immutable Plan from the final round's solution.
func assemble(stage Stage, prog *program, sol lp.Result, deltas []draft.Delta, pred draft.Result, rounds, pivots int, eps float64) Plan {
	plan := Plan{
		Stage:      stage.Name,
		Deltas:     deltas,
		Prediction: pred,
		Rounds:     rounds,
		Pivots:     pivots,
	}

	for _, d := range deltas {
		t, _ := prog.tanks.Find(d.Tank)
		mv := Move{Tank: d.Tank, Tons: math.Abs(d.Tons)}
		if d.Tons < 0 {
			mv.Action = ActionDischarge
		}
		if t.PumpRate > 0 {
			mv.PumpTime = mv.Tons / t.PumpRate
		}
		plan.Moves = append(plan.Moves, mv)
		plan.Pumped += mv.Tons
		plan.PumpTime += mv.PumpTime
	}

	// Residual slack per gate; a slack shared by two rows reports once.
	seen := make(map[string]bool, len(prog.slackNames))
	for j, name := range prog.slackNames {
		v := sol.X[prog.nTankVars+j]
		if v > eps && !seen[name] {
			seen[name] = true
			plan.Violations = append(plan.Violations, Violation{Gate: name, Amount: v})
		}
	}

	return plan
}

// infeasible explains an unsatisfiable stage: for every constraint row, the
// shift it demanded versus the best shift attainable under the tank bounds,
// plus each tank's headroom.
func infeasible(stage Stage, prog *program, err error) error {
	ie := &InfeasibleError{Stage: stage.Name, Err: err}

	bounds := make([]tank.VarBounds, len(prog.tanks))
	for k, t := range prog.tanks {
		bounds[k] = t.Bounds()
		ie.Bounds = append(ie.Bounds, BoundDetail{
			Tank:         t.Name,
			FillMax:      bounds[k].FillMax,
			DischargeMax: bounds[k].DischargeMax,
		})
	}

	for _, r := range prog.rows {
		// Minimal attainable lhs: each tank contributes its most helpful
		// direction within bounds.
		attainable := 0.0
		for k, coef := range r.tankCoef {
			attainable += math.Min(0, coef)*bounds[k].FillMax + math.Min(0, -coef)*bounds[k].DischargeMax
		}
		ie.Gates = append(ie.Gates, GateDetail{Gate: r.name, Required: r.rhs, Attainable: attainable})
	}

	return ie
}
