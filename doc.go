// Package ballastgate plans ballast-water transfers for staged marine
// operations — from hydrostatic interpolation to gate-feasible, LP-solved
// pumping plans across a whole stage sequence.
//
// 🚢 What is ballastgate?
//
//	A deterministic, pure-computation library that brings together:
//		• Hydrostatics: tabulated TPC/MTC/LCF/LBP with linear interpolation
//		• Draft prediction: trim-moment-about-LCF ("Method B") FWD/AFT drafts
//		• Stability gates: draft, freeboard, UKC and tide-margin checks
//		• LP core: two-phase bounded-variable simplex over gonum matrices
//		• Stage solver: limit mode (penalized gate slacks) & target mode
//		• Sequencing: carried tank state, operability overrides, what-if runs
//
// ✨ Why choose ballastgate?
//
//   - Deterministic – same inputs, same plan; no randomness, no wall clock
//   - Strict sentinels – every failure is a typed, wrappable error
//   - Pure Go – no cgo, no services, no hidden I/O
//   - Honest about gaps – missing inputs propagate as NaN, never silent zeros
//
// Everything is organized under eight subpackages:
//
//	hydro/    — hydrostatic table model + interpolation
//	tank/     — tank catalog, operating modes, LP variable bounds
//	draft/    — Method B draft prediction + per-ton linearization
//	gate/     — stability-gate evaluation and tide classification
//	lp/       — two-phase simplex over dense gonum matrices
//	solver/   — per-stage LP formulation, solve and plan extraction
//	sequence/ — multi-stage runs, warnings, diagnostics, scenarios
//	schema/   — header-keyed input records → typed rows, in one pass
//
// Quick sketch of a stage:
//
//	FWD 2.50 m ──────────── AFT 2.60 m     gate: AFT_MIN 2.70 m
//	                │
//	                ▼  solver.Solve
//	FILL APT 24.9 t  →  predicted 2.52 / 2.70, all gates met
//
// Each subpackage carries its own focused documentation; start with
// solver and sequence for the end-to-end flow.
//
//	go get github.com/vesselops/ballastgate
package ballastgate
