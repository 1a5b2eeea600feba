package tank_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vesselops/ballastgate/tank"
)

func sample() tank.Tank {
	return tank.Tank{
		Name:       "WB1P",
		PosFromMid: 20.0,
		Current:    30.0,
		Min:        0.0,
		Max:        100.0,
		Capacity:   100.0,
		Mode:       tank.FillDischarge,
		InUse:      true,
		PumpRate:   50.0,
		Priority:   1.0,
	}
}

// TestValidate_Invariants exercises the structural invariant
// min ≤ current ≤ max ≤ capacity and the positivity rules.
func TestValidate_Invariants(t *testing.T) {
	require.NoError(t, sample().Validate())

	bad := sample()
	bad.Capacity = 0
	assert.ErrorIs(t, bad.Validate(), tank.ErrBadCapacity)

	bad = sample()
	bad.PumpRate = 0
	assert.ErrorIs(t, bad.Validate(), tank.ErrBadPumpRate)

	bad = sample()
	bad.Min = 40 // current 30 falls below min
	assert.ErrorIs(t, bad.Validate(), tank.ErrBadBounds)

	bad = sample()
	bad.Max = 150 // above capacity
	assert.ErrorIs(t, bad.Validate(), tank.ErrBadBounds)
}

// TestValidate_OverCapacityBand verifies the 5% tolerance band: slight
// over-fill validates (warning condition), gross over-fill does not.
func TestValidate_OverCapacityBand(t *testing.T) {
	slight := sample()
	slight.Current = 103.0 // 3% over, inside the band
	require.NoError(t, slight.Validate())
	assert.InDelta(t, 3.0, slight.OverFill(), 1e-12)

	gross := sample()
	gross.Current = 110.0 // 10% over
	assert.ErrorIs(t, gross.Validate(), tank.ErrBadBounds)

	assert.Zero(t, sample().OverFill())
}

// TestBounds_Modes checks the bound derivation table of every mode.
func TestBounds_Modes(t *testing.T) {
	base := sample() // current 30 in [0, 100]

	b := base.Bounds()
	assert.Equal(t, tank.VarBounds{FillMax: 70, DischargeMax: 30}, b)

	fo := base
	fo.Mode = tank.FillOnly
	assert.Equal(t, tank.VarBounds{FillMax: 70}, fo.Bounds())

	do := base
	do.Mode = tank.DischargeOnly
	assert.Equal(t, tank.VarBounds{DischargeMax: 30}, do.Bounds(),
		"DISCHARGE_ONLY: fill bound exactly 0, discharge bound exactly current−min")

	fx := base
	fx.Mode = tank.Fixed
	assert.Equal(t, tank.VarBounds{}, fx.Bounds())

	bl := base
	bl.Mode = tank.Blocked
	assert.Equal(t, tank.VarBounds{}, bl.Bounds())

	off := base
	off.InUse = false
	assert.Equal(t, tank.VarBounds{}, off.Bounds())
}

// TestBounds_OverFilledClampsHeadroom verifies a tank inside the warning
// band cannot be filled further.
func TestBounds_OverFilledClampsHeadroom(t *testing.T) {
	over := sample()
	over.Current = 102.0
	b := over.Bounds()
	assert.Zero(t, b.FillMax)
	assert.InDelta(t, 102.0, b.DischargeMax, 1e-12)
}

// TestWithCurrent_Clamps verifies the carry-forward clamp.
func TestWithCurrent_Clamps(t *testing.T) {
	tk := sample()
	assert.Equal(t, 100.0, tk.WithCurrent(250).Current)
	assert.Equal(t, 0.0, tk.WithCurrent(-5).Current)
	assert.Equal(t, 42.5, tk.WithCurrent(42.5).Current)
	assert.Equal(t, 30.0, tk.Current, "receiver is untouched")
}

// TestParseMode round-trips every catalog spelling and rejects junk.
func TestParseMode(t *testing.T) {
	for _, m := range []tank.Mode{
		tank.FillDischarge, tank.FillOnly, tank.DischargeOnly, tank.Fixed, tank.Blocked,
	} {
		got, err := tank.ParseMode(m.String())
		require.NoError(t, err)
		assert.Equal(t, m, got)
	}

	got, err := tank.ParseMode("")
	require.NoError(t, err, "absent column defaults to FILL_DISCHARGE")
	assert.Equal(t, tank.FillDischarge, got)

	_, err = tank.ParseMode("SIDEWAYS")
	assert.ErrorIs(t, err, tank.ErrBadMode)
}

// TestCatalog covers duplicate detection, state snapshots and isolation.
func TestCatalog(t *testing.T) {
	a := sample()
	b := sample()
	b.Name = "WB1S"
	b.Current = 10

	cat, err := tank.NewCatalog([]tank.Tank{a, b})
	require.NoError(t, err)

	_, err = tank.NewCatalog([]tank.Tank{a, a})
	assert.ErrorIs(t, err, tank.ErrDuplicateTank)

	st := cat.State()
	assert.Equal(t, map[string]float64{"WB1P": 30, "WB1S": 10}, st)

	st["WB1P"] = 75
	next := cat.WithState(st)
	assert.Equal(t, 75.0, next[0].Current)
	assert.Equal(t, 30.0, cat[0].Current, "WithState does not mutate the receiver")

	got, ok := next.Find("WB1S")
	require.True(t, ok)
	assert.Equal(t, 10.0, got.Current)
	_, ok = next.Find("NOPE")
	assert.False(t, ok)
}
