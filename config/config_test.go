package config

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/StanfordCBCL/svZeroDPlus/zderr"
)

func period(v float64) *float64 { return &v }

func TestDTAndTotalSteps(t *testing.T) {
	cfg := &Config{
		SimulationParameters: SimulationParameters{
			NumberOfCardiacCycles:          3,
			NumberOfTimePtsPerCardiacCycle: 11,
			CardiacCyclePeriod:             period(1.1),
		},
	}
	require.InDelta(t, 0.11, cfg.DT(), 1e-4)
	require.Equal(t, 31, cfg.TotalSteps())
}

func TestValidateRejectsMismatchedPeriod(t *testing.T) {
	cfg := &Config{
		SimulationParameters: SimulationParameters{
			NumberOfCardiacCycles:          1,
			NumberOfTimePtsPerCardiacCycle: 5,
			CardiacCyclePeriod:             period(1.0),
		},
		BoundaryConditions: []BoundaryCondition{
			{BCName: "INFLOW", BCType: "FLOW", BCValues: BCValues{
				Q: []float64{1, 2, 3},
				T: []float64{0, 0.5, 2.0},
			}},
		},
	}
	err := Validate(cfg)
	require.Error(t, err, "expected ConfigError for mismatched period")
	_, ok := err.(*zderr.ConfigError)
	require.True(t, ok, "expected *zderr.ConfigError, got %T", err)
}

func TestValidateDerivesPeriodFromFirstTimeSeries(t *testing.T) {
	cfg := &Config{
		SimulationParameters: SimulationParameters{
			NumberOfCardiacCycles:          1,
			NumberOfTimePtsPerCardiacCycle: 5,
		},
		BoundaryConditions: []BoundaryCondition{
			{BCName: "INFLOW", BCType: "FLOW", BCValues: BCValues{
				Q: []float64{1, 2, 3},
				T: []float64{0, 0.5, 1.0},
			}},
		},
	}
	require.NoError(t, Validate(cfg))
	require.Equal(t, 1.0, *cfg.SimulationParameters.CardiacCyclePeriod)
}

func TestValidateRejectsSteadyICWithCustomBC(t *testing.T) {
	cfg := &Config{
		UseSteadyIC: true,
		SimulationParameters: SimulationParameters{
			NumberOfCardiacCycles:          1,
			NumberOfTimePtsPerCardiacCycle: 5,
			CardiacCyclePeriod:             period(1.0),
		},
		BoundaryConditions: []BoundaryCondition{
			{BCName: "CUSTOM", BCType: "MY_CUSTOM_BC"},
		},
	}
	require.Error(t, Validate(cfg), "expected ConfigError for UseSteadyIC + custom BC")
}

func TestUnmarshalRoundTrip(t *testing.T) {
	raw := `{
		"simulation_parameters": {"number_of_cardiac_cycles": 2, "number_of_time_pts_per_cardiac_cycle": 11, "cardiac_cycle_period": 1.0},
		"vessels": [{"vessel_id": 0, "vessel_name": "branch0_seg0", "vessel_length": 1.0,
			"zero_d_element_type": "BloodVessel", "zero_d_element_values": {"R_poiseuille": 10, "C": 0, "L": 0, "stenosis_coefficient": 0}}],
		"junctions": [],
		"boundary_conditions": [{"bc_name": "INFLOW", "bc_type": "FLOW", "bc_values": {"Q": [1,1], "t": [0,1]}}]
	}`
	var cfg Config
	require.NoError(t, json.Unmarshal([]byte(raw), &cfg))
	require.Len(t, cfg.Vessels, 1)
	require.Equal(t, 10.0, cfg.Vessels[0].ElementValues.R)
}
