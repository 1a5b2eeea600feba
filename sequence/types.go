// Package sequence runs multi-stage ballast operations: it carries tank
// state between stages, applies operability overrides, invokes the
// per-stage solver, and collects structured summaries, warnings and
// diagnostics into a Report.
//
// Error containment policy: structurally bad input (hydro tables,
// missing depths or targets, invalid baselines) aborts the whole run —
// a sequence built on broken data has no meaningful continuation.
// Per-stage infeasibility does not abort: the stage is recorded with its
// error and probable-cause diagnostics, and the sequencer continues the
// remaining stages from the pre-stage tank state.
//
// Data-quality conditions never panic and never print: they are returned
// as Warning records on the stage's Outcome.
package sequence

import (
	"github.com/vesselops/ballastgate/gate"
	"github.com/vesselops/ballastgate/solver"
	"github.com/vesselops/ballastgate/tank"
)

// WarningCode identifies a data-quality warning condition.
type WarningCode int

const (
	// WarnMissingTide: a UKC limit is set but the forecast tide (or another
	// clearance input) is missing; the gate could not be formulated.
	WarnMissingTide WarningCode = iota

	// WarnOverCapacity: a tank holds more than its nominal maximum but is
	// still inside the tolerance band.
	WarnOverCapacity

	// WarnDegradedTrim: the draft prediction fell back to the even trim
	// split because LBP was unavailable.
	WarnDegradedTrim

	// WarnClamped: a carried-forward tank content was clamped to the
	// tank's [Min, Max] when applying the previous stage's plan.
	WarnClamped
)

// String returns the report spelling of the code.
func (c WarningCode) String() string {
	switch c {
	case WarnMissingTide:
		return "MISSING_FORECAST_TIDE"
	case WarnOverCapacity:
		return "TANK_OVER_CAPACITY"
	case WarnDegradedTrim:
		return "DEGRADED_TRIM_SPLIT"
	case WarnClamped:
		return "CARRIED_STATE_CLAMPED"
	default:
		return "UNKNOWN"
	}
}

// Warning is one structured data-quality record. Tank is empty for
// stage-level conditions; Value carries the offending quantity where one
// exists (tons over capacity, tons clamped), else NaN.
type Warning struct {
	Code    WarningCode
	Stage   string
	Tank    string
	Message string
	Value   float64
}

// Diagnostic is one advisory probable-cause line attached to an
// infeasible or violated critical stage.
type Diagnostic struct {
	Gate    string
	Message string
}

// Stage is one sequence step: the solver input plus an optional catalog
// reset that replaces the carried tank set from this stage onward.
type Stage struct {
	solver.Stage

	// Reset, when non-nil, replaces the working catalog before this stage
	// is solved. Carried contents do not survive a reset.
	Reset tank.Catalog
}

// Summary is the per-stage report row: the predicted floating condition
// and the derived gate quantities. Fields that cannot be evaluated are
// NaN, mirroring the gate package's missing-value policy.
type Summary struct {
	Stage        string
	Fwd          float64
	Aft          float64
	Trim         float64
	Mean         float64
	Freeboard    float64 // min of both ends; NaN without a vessel depth
	RequiredTide float64
	TideMargin   float64
	TideStatus   gate.Status
	UKCEnd       float64
	Pumped       float64
	PumpTime     float64
}

// Outcome bundles everything produced for one stage.
type Outcome struct {
	Stage       string
	Plan        solver.Plan
	Summary     Summary
	Warnings    []Warning
	Diagnostics []Diagnostic
	Err         error // non-nil for stages skipped as infeasible
}

// Report is the result of a full sequence run.
type Report struct {
	Stages []Outcome
	Final  map[string]float64 // closing tank contents by name, t
}

// Options configures a sequence run.
type Options struct {
	// Solver is the per-stage solver configuration, shared by all stages.
	Solver solver.Config

	// Operability maps tank names to sequence-level restrictions.
	Operability map[string]tank.Restriction
}

// DefaultOptions returns the solver defaults and no restrictions.
func DefaultOptions() Options {
	return Options{Solver: solver.DefaultConfig()}
}
