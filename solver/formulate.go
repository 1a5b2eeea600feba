package solver

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/vesselops/ballastgate/draft"
	"github.com/vesselops/ballastgate/gate"
	"github.com/vesselops/ballastgate/hydro"
	"github.com/vesselops/ballastgate/lp"
	"github.com/vesselops/ballastgate/tank"
)

// constraint is one LP row expressed per net ton of each tank; slack < 0
// means the row is hard (no slack column).
type constraint struct {
	name     string
	tankCoef []float64 // lhs per net ton, tank order
	slack    int       // index into the slack block, or -1
	slack2   int       // second column of an equality slack pair, or -1
	rhs      float64
	eq       bool
}

// program is the materialized LP plus the bookkeeping needed to read the
// solution back and to explain infeasibility.
type program struct {
	prob       *lp.Problem
	tanks      tank.Catalog
	nTankVars  int
	slackNames []string
	rows       []constraint
}

// buildProgram assembles the per-stage LP at the hydro point hp.
//
// Variable layout: [2k] = fill of tank k, [2k+1] = discharge of tank k,
// then one column per slack. Gate rows are "coef·x − slack ≤ rhs"; hard
// rows carry no slack; target mode replaces gate rows with two equality
// rows carrying a two-sided slack pair each.
func buildProgram(stage Stage, tanks tank.Catalog, hp hydro.Point, cfg Config) (*program, error) {
	nT := len(tanks)
	fwdCoef := make([]float64, nT)
	aftCoef := make([]float64, nT)
	trimCoef := make([]float64, nT)
	for k, t := range tanks {
		fwdCoef[k] = draft.FwdCoefficient(hp, t.PosFromMid)
		aftCoef[k] = draft.AftCoefficient(hp, t.PosFromMid)
		trimCoef[k] = draft.TrimCoefficient(hp, t.PosFromMid)
	}

	var (
		rows       []constraint
		slackNames []string
		slackCost  []float64
	)
	newSlack := func(name string, cost float64) int {
		slackNames = append(slackNames, name)
		slackCost = append(slackCost, cost)

		return len(slackNames) - 1
	}

	switch cfg.Mode {
	case ModeTarget:
		if math.IsNaN(stage.TargetFwd) || math.IsNaN(stage.TargetAft) {
			return nil, ErrMissingTarget
		}
		targetMean := (stage.TargetFwd + stage.TargetAft) / 2.0
		targetTrim := stage.TargetAft - stage.TargetFwd
		reqW := (targetMean - stage.BaseMean()) * hp.TPC * 100.0
		reqM := (targetTrim - stage.BaseTrim()) * hp.MTC * 100.0

		wc := make([]float64, nT)
		mc := make([]float64, nT)
		for k, t := range tanks {
			wc[k] = 1.0
			mc[k] = t.PosFromMid - hp.LCF
		}
		// Each equality row gets a two-sided slack pair (+p − q, both ≥ 0)
		// at small penalty so the program stays feasible for any target.
		rows = append(rows,
			constraint{
				name: "TARGET_WEIGHT", tankCoef: wc, rhs: reqW, eq: true,
				slack:  newSlack("TARGET_WEIGHT(+)", cfg.TargetPenalty),
				slack2: newSlack("TARGET_WEIGHT(-)", cfg.TargetPenalty),
			},
			constraint{
				name: "TARGET_MOMENT", tankCoef: mc, rhs: reqM, eq: true,
				slack:  newSlack("TARGET_MOMENT(+)", cfg.TargetPenalty),
				slack2: newSlack("TARGET_MOMENT(-)", cfg.TargetPenalty),
			},
		)

	default: // ModeLimit
		if !math.IsNaN(stage.FwdMax) {
			rows = append(rows, constraint{
				name:     "FWD_MAX",
				tankCoef: fwdCoef,
				slack:    newSlack("FWD_MAX", cfg.GatePenalty),
				rhs:      stage.FwdMax - stage.BaseFwd,
			})
		}
		if !math.IsNaN(stage.AftMin) {
			rows = append(rows, constraint{
				name:     "AFT_MIN",
				tankCoef: negate(aftCoef),
				slack:    newSlack("AFT_MIN", cfg.GatePenalty),
				rhs:      stage.BaseAft - stage.AftMin,
			})
		}
		if !math.IsNaN(stage.FreeboardMin) {
			if math.IsNaN(cfg.VesselDepth) {
				return nil, ErrMissingDepth
			}
			// Both ends share one slack: freeboard is min(fwd side, aft side)
			// and a violation is priced once regardless of which end causes it.
			s := newSlack("FB_MIN", cfg.GatePenalty)
			maxDraft := cfg.VesselDepth - stage.FreeboardMin
			rows = append(rows,
				constraint{name: "FB_MIN(FWD)", tankCoef: fwdCoef, slack: s, rhs: maxDraft - stage.BaseFwd},
				constraint{name: "FB_MIN(AFT)", tankCoef: aftCoef, slack: s, rhs: maxDraft - stage.BaseAft},
			)
		}
		if rs := ukcRows(stage, fwdCoef, aftCoef, cfg, newSlack); rs != nil {
			rows = append(rows, rs...)
		}
	}

	// Hard constraints apply in both modes and never receive slack.
	if !math.IsNaN(cfg.TrimLimit) {
		rows = append(rows,
			constraint{name: "TRIM_MAX", tankCoef: trimCoef, slack: -1, rhs: cfg.TrimLimit - stage.BaseTrim()},
			constraint{name: "TRIM_MIN", tankCoef: negate(trimCoef), slack: -1, rhs: cfg.TrimLimit + stage.BaseTrim()},
		)
	}
	if !math.IsNaN(cfg.HardFreeboard) {
		if math.IsNaN(cfg.VesselDepth) {
			return nil, ErrMissingDepth
		}
		maxDraft := cfg.VesselDepth - cfg.HardFreeboard
		rows = append(rows,
			constraint{name: "HARD_FB(FWD)", tankCoef: fwdCoef, slack: -1, rhs: maxDraft - stage.BaseFwd},
			constraint{name: "HARD_FB(AFT)", tankCoef: aftCoef, slack: -1, rhs: maxDraft - stage.BaseAft},
		)
	}

	return materialize(tanks, rows, slackNames, slackCost, cfg)
}

// ukcRows formulates the UKC gate. All five physical inputs must be
// present: the clearance is undefined on missing data (never silently
// zero), so an unevaluable gate produces no row — the sequencer reports
// the VERIFY condition separately.
func ukcRows(stage Stage, fwdCoef, aftCoef []float64, cfg Config, newSlack func(string, float64) int) []constraint {
	if math.IsNaN(stage.UKCMin) {
		return nil
	}
	if math.IsNaN(stage.DepthRef) || math.IsNaN(stage.ForecastTide) ||
		math.IsNaN(stage.Squat) || math.IsNaN(stage.Safety) {
		return nil
	}

	// depthRef + tide − draft − squat − safety ≥ ukcMin
	// ⇔ draft_end ≤ depthRef + tide − squat − safety − ukcMin
	dmax := stage.DepthRef + stage.ForecastTide - stage.Squat - stage.Safety - stage.UKCMin

	switch stage.UKCRef {
	case gate.RefFwd:
		return []constraint{{
			name: "UKC_MIN", tankCoef: fwdCoef,
			slack: newSlack("UKC_MIN", cfg.GatePenalty), rhs: dmax - stage.BaseFwd,
		}}
	case gate.RefAft:
		return []constraint{{
			name: "UKC_MIN", tankCoef: aftCoef,
			slack: newSlack("UKC_MIN", cfg.GatePenalty), rhs: dmax - stage.BaseAft,
		}}
	case gate.RefMean:
		mean := make([]float64, len(fwdCoef))
		for k := range mean {
			mean[k] = (fwdCoef[k] + aftCoef[k]) / 2.0
		}

		return []constraint{{
			name: "UKC_MIN", tankCoef: mean,
			slack: newSlack("UKC_MIN", cfg.GatePenalty), rhs: dmax - stage.BaseMean(),
		}}
	default: // RefMax: the deeper end governs; both rows share the slack.
		s := newSlack("UKC_MIN", cfg.GatePenalty)

		return []constraint{
			{name: "UKC_MIN(FWD)", tankCoef: fwdCoef, slack: s, rhs: dmax - stage.BaseFwd},
			{name: "UKC_MIN(AFT)", tankCoef: aftCoef, slack: s, rhs: dmax - stage.BaseAft},
		}
	}
}

// materialize flattens the symbolic rows into an lp.Problem.
func materialize(tanks tank.Catalog, rows []constraint, slackNames []string, slackCost []float64, cfg Config) (*program, error) {
	nT := len(tanks)
	nTankVars := 2 * nT
	nv := nTankVars + len(slackNames)

	c := make([]float64, nv)
	upper := make([]float64, nv)
	for k, t := range tanks {
		w := t.Priority
		if cfg.PreferTime && t.PumpRate > 0 {
			w = t.Priority / t.PumpRate
		}
		b := t.Bounds()
		c[2*k], c[2*k+1] = w, w
		upper[2*k], upper[2*k+1] = b.FillMax, b.DischargeMax
	}
	for j, cost := range slackCost {
		c[nTankVars+j] = cost
		upper[nTankVars+j] = math.Inf(1)
	}

	var (
		ubData, ubRhs []float64
		eqData, eqRhs []float64
	)
	for _, r := range rows {
		line := make([]float64, nv)
		for k, coef := range r.tankCoef {
			line[2*k] = coef
			line[2*k+1] = -coef
		}
		switch {
		case r.eq:
			line[nTankVars+r.slack] = 1
			line[nTankVars+r.slack2] = -1
		case r.slack >= 0:
			line[nTankVars+r.slack] = -1
		}
		if r.eq {
			eqData = append(eqData, line...)
			eqRhs = append(eqRhs, r.rhs)
		} else {
			ubData = append(ubData, line...)
			ubRhs = append(ubRhs, r.rhs)
		}
	}

	prob := &lp.Problem{C: c, Upper: upper}
	if len(ubRhs) > 0 {
		prob.AUb = mat.NewDense(len(ubRhs), nv, ubData)
		prob.BUb = ubRhs
	}
	if len(eqRhs) > 0 {
		prob.AEq = mat.NewDense(len(eqRhs), nv, eqData)
		prob.BEq = eqRhs
	}

	return &program{
		prob:       prob,
		tanks:      tanks,
		nTankVars:  nTankVars,
		slackNames: slackNames,
		rows:       rows,
	}, nil
}

func negate(v []float64) []float64 {
	out := make([]float64, len(v))
	for i, x := range v {
		out[i] = -x
	}

	return out
}
