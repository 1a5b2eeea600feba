package schema_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vesselops/ballastgate/gate"
	"github.com/vesselops/ballastgate/schema"
	"github.com/vesselops/ballastgate/tank"
)

func TestHydroRows(t *testing.T) {
	rows, err := schema.HydroRows([]schema.Record{
		{"Tmean_m": "2.0", "TPC_t_per_cm": "8.0", "MTC_t_m_per_cm": "34.0", "LCF_m": "0.76", "LBP_m": "60.302"},
	})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, 2.0, rows[0].Tmean)
	assert.Equal(t, 60.302, rows[0].LBP)
}

func TestHydroRows_MissingColumn(t *testing.T) {
	_, err := schema.HydroRows([]schema.Record{
		{"Tmean_m": "2.0", "TPC_t_per_cm": "8.0", "MTC_t_m_per_cm": "34.0", "LCF_m": "0.76"},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, schema.ErrMissingColumn)

	var se *schema.SchemaError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "hydro", se.Table)
	assert.Equal(t, "LBP_m", se.Column)
	assert.Equal(t, 1, se.Row)
}

func TestHydroRows_BadNumber(t *testing.T) {
	_, err := schema.HydroRows([]schema.Record{
		{"Tmean_m": "2.0", "TPC_t_per_cm": "8.0", "MTC_t_m_per_cm": "34.0", "LCF_m": "0.76", "LBP_m": "60.302"},
		{"Tmean_m": "3.0", "TPC_t_per_cm": "eight", "MTC_t_m_per_cm": "34.0", "LCF_m": "0.76", "LBP_m": "60.302"},
	})
	require.Error(t, err)

	var se *schema.SchemaError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, 2, se.Row, "row numbers are 1-based")
	assert.Equal(t, "TPC_t_per_cm", se.Column)
	assert.Contains(t, se.Error(), `"eight"`)
}

func TestTankRows_Defaults(t *testing.T) {
	tanks, err := schema.TankRows([]schema.Record{
		{"Tank": "APT", "Current_t": "50", "Capacity_t": "200", "x_from_mid_m": "20", "use_flag": "1"},
	})
	require.NoError(t, err)
	require.Len(t, tanks, 1)

	tk := tanks[0]
	assert.Equal(t, "APT", tk.Name)
	assert.True(t, tk.InUse)
	assert.Zero(t, tk.Min)
	assert.Equal(t, 200.0, tk.Max, "Max defaults to capacity")
	assert.Equal(t, tank.FillDischarge, tk.Mode)
	assert.Equal(t, 50.0, tk.PumpRate)
	assert.Equal(t, 1.0, tk.Priority)
}

func TestTankRows_ExplicitColumns(t *testing.T) {
	tanks, err := schema.TankRows([]schema.Record{
		{"Tank": "DB1", "Current_t": "30", "Capacity_t": "120", "x_from_mid_m": "-5.5",
			"use_flag": "no", "Min_t": "10", "Max_t": "110", "mode": "DISCHARGE_ONLY",
			"pump_rate_tph": "80", "priority_weight": "2.5"},
	})
	require.NoError(t, err)
	require.Len(t, tanks, 1)

	tk := tanks[0]
	assert.False(t, tk.InUse)
	assert.Equal(t, 10.0, tk.Min)
	assert.Equal(t, 110.0, tk.Max)
	assert.Equal(t, tank.DischargeOnly, tk.Mode)
	assert.Equal(t, 80.0, tk.PumpRate)
	assert.Equal(t, 2.5, tk.Priority)
}

func TestTankRows_BadMode(t *testing.T) {
	_, err := schema.TankRows([]schema.Record{
		{"Tank": "DB1", "Current_t": "30", "Capacity_t": "120", "x_from_mid_m": "0",
			"use_flag": "1", "mode": "SIDEWAYS"},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, tank.ErrBadMode)
}

func TestStageRows(t *testing.T) {
	stages, err := schema.StageRows([]schema.Record{
		{"Stage": "Stage 1", "Current_FWD_m": "2.50", "Current_AFT_m": "2.60",
			"AFT_MIN_m": "2.70", "UKC_Ref": "AFT"},
		{"Stage": "Stage 2", "Current_FWD_m": "2.52", "Current_AFT_m": "2.70"},
	})
	require.NoError(t, err)
	require.Len(t, stages, 2)

	s1 := stages[0]
	assert.Equal(t, 2.70, s1.AftMin)
	assert.Equal(t, gate.RefAft, s1.UKCRef)
	assert.True(t, math.IsNaN(s1.FwdMax), "absent optional limits stay unset")
	assert.True(t, math.IsNaN(s1.ForecastTide))

	s2 := stages[1]
	assert.Equal(t, gate.RefMax, s2.UKCRef, "reference policy defaults to MAX")
	assert.True(t, math.IsNaN(s2.AftMin))
}

func TestStageRows_MissingBaseline(t *testing.T) {
	_, err := schema.StageRows([]schema.Record{
		{"Stage": "Stage 1", "Current_FWD_m": "2.50"},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, schema.ErrMissingColumn)

	var se *schema.SchemaError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "Current_AFT_m", se.Column)
}

func TestStageRows_EmptyValueIsAbsent(t *testing.T) {
	stages, err := schema.StageRows([]schema.Record{
		{"Stage": "S", "Current_FWD_m": "2.50", "Current_AFT_m": "2.60", "FWD_MAX_m": "  "},
	})
	require.NoError(t, err)
	assert.True(t, math.IsNaN(stages[0].FwdMax))
}
