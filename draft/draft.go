// Package draft predicts forward/aft drafts from a set of tank weight
// deltas using the trim-moment-about-LCF method ("Method B").
//
// Algorithm outline:
//  1. ΔW = Σ deltaᵢ;  ΔM = Σ deltaᵢ·(xᵢ − LCF), x positive aft of midship.
//  2. ΔTmean = ΔW / (TPC·100);  ΔTrim = ΔM / (MTC·100)
//     (TPC/MTC are tons per centimeter; ×100 converts cm to m).
//  3. slope = ΔTrim / LBP; perpendiculars sit at ∓LBP/2 from midship.
//  4. newFwd = fwd + ΔTmean + slope·(−LBP/2 − LCF)
//     newAft = aft + ΔTmean + slope·(+LBP/2 − LCF)
//  5. Without a usable LBP the trim is split evenly (±ΔTrim/2) around the
//     mean change — a strictly less accurate approximation, reported via
//     Result.Degraded so callers can surface it.
//
// Consistency (tested, not runtime-enforced): the recomputed trim
// (newAft − newFwd) matches the baseline trim plus ΔTrim within 0.5 cm, and
// the recomputed mean matches (newFwd+newAft)/2 within 0.5 cm.
//
// The per-ton coefficient helpers (MeanCoefficient, FwdCoefficient,
// AftCoefficient, TrimCoefficient) expose the linearization the LP
// formulator builds its constraint rows from, so formulation and
// re-prediction cannot drift apart.
package draft

import (
	"errors"
	"fmt"
	"math"

	"github.com/vesselops/ballastgate/hydro"
)

var (
	// ErrBadBaseline indicates a NaN/Inf baseline draft.
	ErrBadBaseline = errors.New("draft: baseline drafts must be finite")

	// ErrBadDelta indicates a NaN/Inf delta or tank position.
	ErrBadDelta = errors.New("draft: weight deltas and positions must be finite")
)

// Delta is one tank's signed weight change in tons, positive for filling.
type Delta struct {
	Tank       string
	Tons       float64
	PosFromMid float64 // m, positive aft
}

// Result is the predicted floating condition after applying the deltas.
type Result struct {
	Fwd  float64 // m
	Aft  float64 // m
	Trim float64 // Aft − Fwd, m; positive = stern-down
	Mean float64 // (Fwd+Aft)/2, m

	// Degraded is true when LBP was unavailable and the even trim split
	// was used instead of the perpendicular-projection distribution.
	Degraded bool
}

// MeanCoefficient is the mean-draft change per ton added anywhere (m/t).
func MeanCoefficient(hp hydro.Point) float64 {
	return 1.0 / (hp.TPC * 100.0)
}

// TrimCoefficient is the trim change per ton added at pos (m/t).
func TrimCoefficient(hp hydro.Point, pos float64) float64 {
	return (pos - hp.LCF) / (hp.MTC * 100.0)
}

// FwdCoefficient is the forward-draft change per ton added at pos (m/t).
func FwdCoefficient(hp hydro.Point, pos float64) float64 {
	if hp.LBP > 0 {
		return MeanCoefficient(hp) + TrimCoefficient(hp, pos)*(-hp.LBP/2.0-hp.LCF)/hp.LBP
	}

	return MeanCoefficient(hp) - 0.5*TrimCoefficient(hp, pos)
}

// AftCoefficient is the aft-draft change per ton added at pos (m/t).
func AftCoefficient(hp hydro.Point, pos float64) float64 {
	if hp.LBP > 0 {
		return MeanCoefficient(hp) + TrimCoefficient(hp, pos)*(hp.LBP/2.0-hp.LCF)/hp.LBP
	}

	return MeanCoefficient(hp) + 0.5*TrimCoefficient(hp, pos)
}

// Predict applies deltas to the baseline drafts under the hydro point hp.
//
// An empty (or all-zero) delta set returns exactly the baseline condition.
// hp must satisfy TPC > 0 and MTC > 0, else hydro.ErrInvalidHydro.
func Predict(baseFwd, baseAft float64, hp hydro.Point, deltas []Delta) (Result, error) {
	if !finite(baseFwd) || !finite(baseAft) {
		return Result{}, fmt.Errorf("%w: fwd=%v aft=%v", ErrBadBaseline, baseFwd, baseAft)
	}
	if !(hp.TPC > 0) || !(hp.MTC > 0) {
		return Result{}, fmt.Errorf("%w: TPC=%.4f MTC=%.4f", hydro.ErrInvalidHydro, hp.TPC, hp.MTC)
	}

	var dW, dM float64
	for _, d := range deltas {
		if !finite(d.Tons) || !finite(d.PosFromMid) {
			return Result{}, fmt.Errorf("%w: tank %q tons=%v pos=%v", ErrBadDelta, d.Tank, d.Tons, d.PosFromMid)
		}
		dW += d.Tons
		dM += d.Tons * (d.PosFromMid - hp.LCF)
	}

	dTmean := dW / (hp.TPC * 100.0)
	dTrim := dM / (hp.MTC * 100.0)

	var fwd, aft float64
	degraded := !(hp.LBP > 0)
	if degraded {
		fwd = baseFwd + dTmean - 0.5*dTrim
		aft = baseAft + dTmean + 0.5*dTrim
	} else {
		slope := dTrim / hp.LBP
		fwd = baseFwd + dTmean + slope*(-hp.LBP/2.0-hp.LCF)
		aft = baseAft + dTmean + slope*(hp.LBP/2.0-hp.LCF)
	}

	return Result{
		Fwd:      fwd,
		Aft:      aft,
		Trim:     aft - fwd,
		Mean:     (fwd + aft) / 2.0,
		Degraded: degraded,
	}, nil
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }
