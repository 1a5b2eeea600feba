package sequence

import (
	"errors"
	"fmt"
	"math"

	"github.com/vesselops/ballastgate/gate"
	"github.com/vesselops/ballastgate/hydro"
	"github.com/vesselops/ballastgate/lp"
	"github.com/vesselops/ballastgate/solver"
	"github.com/vesselops/ballastgate/tank"
)

// Run solves the stages in order, carrying tank contents forward.
//
// Infeasible stages are recorded (Outcome.Err, plus diagnostics) and the
// run continues from the pre-stage state; any other solver or hydro error
// aborts and returns the partial report alongside the error.
func Run(stages []Stage, catalog tank.Catalog, table *hydro.Table, opts Options) (*Report, error) {
	if table == nil {
		return nil, solver.ErrNilTable
	}

	working := catalog.Clone()
	report := &Report{}
	for _, st := range stages {
		if st.Reset != nil {
			working = st.Reset.Clone()
		}

		out := Outcome{Stage: st.Name}
		cat := overrideModes(working, st.Name, opts.Operability)
		out.Warnings = append(out.Warnings, inputWarnings(st, cat)...)

		plan, err := solver.Solve(st.Stage, cat, table, opts.Solver)
		if err != nil {
			if !errors.Is(err, lp.ErrInfeasible) {
				report.Stages = append(report.Stages, out)
				report.Final = working.State()

				return report, err
			}
			// No feasible plan: keep the pre-stage state and move on.
			out.Err = err
			out.Diagnostics = Diagnose(st.Stage, solver.Plan{}, err)
			out.Summary = summarize(st.Stage, st.BaseFwd, st.BaseAft, solver.Plan{}, opts.Solver)
			report.Stages = append(report.Stages, out)
			continue
		}

		working = apply(working, plan, st.Name, &out.Warnings)

		if plan.Prediction.Degraded {
			out.Warnings = append(out.Warnings, Warning{
				Code:    WarnDegradedTrim,
				Stage:   st.Name,
				Message: "LBP unavailable; trim split evenly between perpendiculars",
				Value:   math.NaN(),
			})
		}
		if IsCriticalStage(st.Name) && len(plan.Violations) > 0 {
			out.Diagnostics = Diagnose(st.Stage, plan, nil)
		}

		out.Plan = plan
		out.Summary = summarize(st.Stage, plan.Prediction.Fwd, plan.Prediction.Aft, plan, opts.Solver)
		report.Stages = append(report.Stages, out)
	}
	report.Final = working.State()

	return report, nil
}

// overrideModes freezes restricted tanks on operational stages. The input
// catalog is never mutated.
func overrideModes(cat tank.Catalog, stageName string, restr map[string]tank.Restriction) tank.Catalog {
	if len(restr) == 0 || !IsOperationalStage(stageName) {
		return cat
	}
	cp := cat.Clone()
	for i, t := range cp {
		if restr[t.Name] == tank.RestrictPreBallastOnly {
			cp[i] = t.WithMode(tank.Fixed)
		}
	}

	return cp
}

// inputWarnings collects the stage's data-quality conditions before
// solving: unevaluable clearance gates and tanks inside the over-capacity
// tolerance band.
func inputWarnings(st Stage, cat tank.Catalog) []Warning {
	var ws []Warning
	if !math.IsNaN(st.UKCMin) &&
		(math.IsNaN(st.ForecastTide) || math.IsNaN(st.DepthRef) ||
			math.IsNaN(st.Squat) || math.IsNaN(st.Safety)) {
		ws = append(ws, Warning{
			Code:    WarnMissingTide,
			Stage:   st.Name,
			Message: "UKC limit set but a clearance input is missing; gate not formulated, verify manually",
			Value:   math.NaN(),
		})
	}
	for _, t := range cat {
		if over := t.OverFill(); over > 0 {
			ws = append(ws, Warning{
				Code:    WarnOverCapacity,
				Stage:   st.Name,
				Tank:    t.Name,
				Message: fmt.Sprintf("content exceeds nominal maximum by %.1f t (inside tolerance band)", over),
				Value:   over,
			})
		}
	}

	return ws
}

// apply carries the plan's deltas into a fresh catalog copy, clamping to
// each tank's content bounds and recording any clamp as a warning.
func apply(cat tank.Catalog, plan solver.Plan, stageName string, ws *[]Warning) tank.Catalog {
	cp := cat.Clone()
	for _, d := range plan.Deltas {
		for i, t := range cp {
			if t.Name != d.Tank {
				continue
			}
			want := t.Current + d.Tons
			cp[i] = t.WithCurrent(want)
			if lost := want - cp[i].Current; math.Abs(lost) > 1e-9 {
				*ws = append(*ws, Warning{
					Code:    WarnClamped,
					Stage:   stageName,
					Tank:    t.Name,
					Message: fmt.Sprintf("carried content clamped by %.2f t to stay within [%.1f, %.1f]", lost, t.Min, t.Max),
					Value:   lost,
				})
			}
			break
		}
	}

	return cp
}

// summarize derives the report row from the (predicted or baseline)
// floating condition. Unevaluable quantities stay NaN.
func summarize(st solver.Stage, fwd, aft float64, plan solver.Plan, cfg solver.Config) Summary {
	refDraft := gate.RefDraft(st.UKCRef, fwd, aft)
	required := gate.RequiredTide(st.DepthRef, refDraft, st.UKCMin, st.Squat, st.Safety)

	return Summary{
		Stage:        st.Name,
		Fwd:          fwd,
		Aft:          aft,
		Trim:         aft - fwd,
		Mean:         (fwd + aft) / 2.0,
		Freeboard:    gate.FreeboardMin(cfg.VesselDepth, fwd, aft),
		RequiredTide: required,
		TideMargin:   gate.TideMargin(st.ForecastTide, required),
		TideStatus:   gate.ClassifyTide(st.ForecastTide, required, cfg.TideTolerance),
		UKCEnd:       gate.UKCEnd(st.DepthRef, st.ForecastTide, refDraft, st.Squat, st.Safety),
		Pumped:       plan.Pumped,
		PumpTime:     plan.PumpTime,
	}
}
