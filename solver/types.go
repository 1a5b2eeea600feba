// Package solver formulates and solves the per-stage ballast LP: it turns a
// stage's baseline drafts, gate limits and tank bounds into a
// bounded-variable linear program, solves it, and iterates the
// draft-dependent hydrostatic coefficients to a fixed point.
//
// Two modes exist:
//
//   - ModeLimit (soft feasibility): each gate contributes one inequality row
//     with a heavily-penalized slack, so the solver only tolerates a gate
//     violation when no feasible plan exists, and otherwise minimizes
//     priority-weighted pumped tons (or pump time).
//   - ModeTarget (exact targets): two equality rows enforce the weight and
//     moment shift required to reach the target mean draft and trim, each
//     with a small-penalty two-sided slack pair that keeps the program
//     feasible.
//
// Hard constraints (trim limit, hard minimum freeboard) are true
// inequalities in both modes; breaching them is LP infeasibility, reported
// as *InfeasibleError with gate margins and tank bound summaries, never a
// silent empty plan.
package solver

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/vesselops/ballastgate/draft"
	"github.com/vesselops/ballastgate/gate"
)

var (
	// ErrNilTable indicates a nil hydro table.
	ErrNilTable = errors.New("solver: hydro table must not be nil")

	// ErrBadStage indicates non-finite baseline drafts.
	ErrBadStage = errors.New("solver: baseline drafts must be finite")

	// ErrMissingDepth indicates a freeboard gate without a vessel depth to
	// evaluate it against.
	ErrMissingDepth = errors.New("solver: freeboard gate requires a vessel depth")

	// ErrMissingTarget indicates target mode without both target drafts.
	ErrMissingTarget = errors.New("solver: target mode requires target FWD and AFT drafts")
)

// Defaults for Config. DefaultGatePenalty is deliberately enormous: a gate
// slack must never be cheaper than any physically possible pumping plan.
const (
	DefaultGatePenalty   = 1e7
	DefaultTargetPenalty = 1e3
	DefaultIterateHydro  = 2
	DefaultPlanEps       = 1e-6
)

// Mode selects the formulation.
type Mode int

const (
	// ModeLimit solves for gate feasibility with penalized slacks.
	ModeLimit Mode = iota

	// ModeTarget solves for exact target mean draft and trim.
	ModeTarget
)

// String returns the flag spelling of the mode.
func (m Mode) String() string {
	if m == ModeTarget {
		return "target"
	}

	return "limit"
}

// Config is the flat, immutable solver configuration. NaN disables the
// optional fields that carry physical values.
type Config struct {
	Mode          Mode
	GatePenalty   float64 // objective cost per meter of gate slack
	TargetPenalty float64 // objective cost per ton/ton-meter of target slack
	IterateHydro  int     // hydro fixed-point rounds
	PreferTime    bool    // cost tanks by priority/pumpRate instead of priority
	VesselDepth   float64 // moulded depth for freeboard gates, m (NaN = unknown)
	TrimLimit     float64 // hard |trim| cap, m (NaN = off)
	HardFreeboard float64 // hard minimum freeboard, m (NaN = off)
	TideTolerance float64 // LIMIT band for tide classification, m
	Eps           float64 // tons below which a move is dropped from the plan
}

// Option mutates a Config under construction.
type Option func(*Config)

// WithMode selects limit or target formulation.
func WithMode(m Mode) Option { return func(c *Config) { c.Mode = m } }

// WithPreferTime costs each tank at priority/pumpRate so tons prefer the
// fastest pumps.
func WithPreferTime() Option { return func(c *Config) { c.PreferTime = true } }

// WithVesselDepth sets the moulded depth used by freeboard gates.
func WithVesselDepth(d float64) Option { return func(c *Config) { c.VesselDepth = d } }

// WithTrimLimit enables the hard |trim| ≤ limit constraint.
func WithTrimLimit(l float64) Option { return func(c *Config) { c.TrimLimit = l } }

// WithHardFreeboard enables the hard minimum-freeboard constraint.
func WithHardFreeboard(f float64) Option { return func(c *Config) { c.HardFreeboard = f } }

// WithGatePenalty overrides the gate slack penalty.
func WithGatePenalty(p float64) Option { return func(c *Config) { c.GatePenalty = p } }

// WithTargetPenalty overrides the target slack-pair penalty.
func WithTargetPenalty(p float64) Option { return func(c *Config) { c.TargetPenalty = p } }

// WithIterateHydro sets the number of hydro fixed-point rounds (≥ 1).
func WithIterateHydro(n int) Option {
	return func(c *Config) {
		if n >= 1 {
			c.IterateHydro = n
		}
	}
}

// WithTideTolerance sets the LIMIT classification band.
func WithTideTolerance(tol float64) Option { return func(c *Config) { c.TideTolerance = tol } }

// WithEps sets the plan-extraction tolerance in tons.
func WithEps(eps float64) Option {
	return func(c *Config) {
		if eps > 0 {
			c.Eps = eps
		}
	}
}

// DefaultConfig returns the documented defaults with every optional
// physical field disabled (NaN).
func DefaultConfig() Config {
	return Config{
		Mode:          ModeLimit,
		GatePenalty:   DefaultGatePenalty,
		TargetPenalty: DefaultTargetPenalty,
		IterateHydro:  DefaultIterateHydro,
		VesselDepth:   math.NaN(),
		TrimLimit:     math.NaN(),
		HardFreeboard: math.NaN(),
		TideTolerance: gate.DefaultTideTolerance,
		Eps:           DefaultPlanEps,
	}
}

// NewConfig applies opts over DefaultConfig.
func NewConfig(opts ...Option) Config {
	cfg := DefaultConfig()
	for _, o := range opts {
		o(&cfg)
	}

	return cfg
}

// Stage is the per-stage input bundle. NaN marks every optional field as
// "not provided"; gates whose limits are NaN are simply not formulated.
type Stage struct {
	Name    string
	BaseFwd float64
	BaseAft float64

	ForecastTide float64
	DepthRef     float64
	Squat        float64
	Safety       float64
	UKCRef       gate.Ref

	FwdMax       float64
	AftMin       float64
	FreeboardMin float64
	UKCMin       float64

	TargetFwd float64
	TargetAft float64
}

// NewStage returns a stage with the given baseline drafts and every
// optional field disabled (NaN). Callers set only the limits they have.
func NewStage(name string, baseFwd, baseAft float64) Stage {
	nan := math.NaN()

	return Stage{
		Name:    name,
		BaseFwd: baseFwd,
		BaseAft: baseAft,

		ForecastTide: nan,
		DepthRef:     nan,
		Squat:        nan,
		Safety:       nan,

		FwdMax:       nan,
		AftMin:       nan,
		FreeboardMin: nan,
		UKCMin:       nan,

		TargetFwd: nan,
		TargetAft: nan,
	}
}

// Validate checks the baseline drafts.
func (s Stage) Validate() error {
	if math.IsNaN(s.BaseFwd) || math.IsInf(s.BaseFwd, 0) ||
		math.IsNaN(s.BaseAft) || math.IsInf(s.BaseAft, 0) {
		return fmt.Errorf("%w: stage %q fwd=%v aft=%v", ErrBadStage, s.Name, s.BaseFwd, s.BaseAft)
	}

	return nil
}

// BaseMean is the baseline mean draft.
func (s Stage) BaseMean() float64 { return (s.BaseFwd + s.BaseAft) / 2.0 }

// BaseTrim is the baseline trim (aft − fwd).
func (s Stage) BaseTrim() float64 { return s.BaseAft - s.BaseFwd }

// Action is the pumping direction of a plan move.
type Action int

const (
	ActionFill Action = iota
	ActionDischarge
)

// String returns the plan-table spelling of the action.
func (a Action) String() string {
	if a == ActionDischarge {
		return "DISCHARGE"
	}

	return "FILL"
}

// Move is one tank's row in a solved plan.
type Move struct {
	Tank     string
	Action   Action
	Tons     float64 // magnitude, t
	PumpTime float64 // h
}

// Violation is the residual breach of one gate after solving, in the gate's
// unit (meters for every built-in gate). Zero-violation gates are omitted.
type Violation struct {
	Gate   string
	Amount float64
}

// Plan is the solver output for one stage: the moves, the net per-tank
// deltas (for state carry-forward), the re-predicted floating condition and
// any residual gate violations. Immutable after creation.
type Plan struct {
	Stage      string
	Moves      []Move
	Deltas     []draft.Delta
	Prediction draft.Result
	Violations []Violation
	Pumped     float64 // Σ |move|, t
	PumpTime   float64 // Σ move time, h (serial pumping)
	Rounds     int     // hydro iterations performed
	Pivots     int     // LP pivot total across rounds
}

// Empty reports whether the plan moves no water.
func (p Plan) Empty() bool { return len(p.Moves) == 0 }

// GateDetail describes one constraint row of an infeasible stage: the shift
// the gate demanded and the best shift the tank bounds could deliver.
type GateDetail struct {
	Gate       string
	Required   float64 // rhs of the row, m (or t / t·m for target rows)
	Attainable float64 // best-case lhs under the variable bounds
}

// BoundDetail summarizes one tank's movement headroom.
type BoundDetail struct {
	Tank         string
	FillMax      float64
	DischargeMax float64
}

// InfeasibleError reports an unsatisfiable stage with enough numeric detail
// to diagnose it. It wraps lp.ErrInfeasible.
type InfeasibleError struct {
	Stage  string
	Gates  []GateDetail
	Bounds []BoundDetail
	Err    error
}

// Error renders the stage name, the gate margins and the tank bound
// summary.
func (e *InfeasibleError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "solver: stage %q has no feasible ballast plan", e.Stage)
	for _, g := range e.Gates {
		fmt.Fprintf(&b, "; gate %s requires %.3f, attainable %.3f", g.Gate, g.Required, g.Attainable)
	}
	if len(e.Bounds) > 0 {
		b.WriteString("; tank headroom:")
		for _, t := range e.Bounds {
			fmt.Fprintf(&b, " %s[+%.1f/−%.1f]", t.Tank, t.FillMax, t.DischargeMax)
		}
	}

	return b.String()
}

// Unwrap exposes the underlying LP sentinel, so
// errors.Is(err, lp.ErrInfeasible) holds.
func (e *InfeasibleError) Unwrap() error { return e.Err }
