package network

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/StanfordCBCL/svZeroDPlus/config"
)

func period(v float64) *float64 { return &v }

func singleVesselConfig(r float64) *config.Config {
	return &config.Config{
		SimulationParameters: config.SimulationParameters{
			NumberOfCardiacCycles: 1, NumberOfTimePtsPerCardiacCycle: 11, CardiacCyclePeriod: period(1.0),
		},
		Vessels: []config.Vessel{
			{
				VesselID: 0, VesselName: "branch0_seg0", ElementType: "BloodVessel",
				ElementValues:      config.VesselValues{R: r},
				BoundaryConditions: &config.VesselBCRefs{Inlet: "INFLOW", Outlet: "OUTFLOW"},
			},
		},
		BoundaryConditions: []config.BoundaryCondition{
			{BCName: "INFLOW", BCType: "FLOW", BCValues: config.BCValues{Q: []float64{100, 100}, T: []float64{0, 1}}},
			{BCName: "OUTFLOW", BCType: "RESISTANCE", BCValues: config.BCValues{R: 0, Pd: 0}},
		},
	}
}

func TestBuildSingleVesselNetwork(t *testing.T) {
	cfg := singleVesselConfig(10)
	n, err := Build(cfg)
	require.NoError(t, err)
	require.Len(t, n.Blocks, 3, "expected 3 blocks (INFLOW, vessel, OUTFLOW)")
	require.Len(t, n.Wires, 2)

	total := 0
	for _, b := range n.Blocks {
		total += b.NumEquations()
	}
	require.Equal(t, n.NEq, total, "sum of NumEquations must equal NEq")
	require.Len(t, n.VarNames, n.NEq)
}

func TestBuildRejectsUnknownBCType(t *testing.T) {
	cfg := singleVesselConfig(10)
	cfg.BoundaryConditions[1].BCType = "NOT_A_REAL_TYPE"
	_, err := Build(cfg)
	require.Error(t, err, "expected ConfigError for unknown bc_type")
}

func TestJunctionNetworkWiresThreeVessels(t *testing.T) {
	cfg := &config.Config{
		SimulationParameters: config.SimulationParameters{
			NumberOfCardiacCycles: 1, NumberOfTimePtsPerCardiacCycle: 11, CardiacCyclePeriod: period(1.0),
		},
		Vessels: []config.Vessel{
			{VesselID: 0, VesselName: "branch0_seg0", ElementType: "BloodVessel", ElementValues: config.VesselValues{R: 1},
				BoundaryConditions: &config.VesselBCRefs{Inlet: "INFLOW"}},
			{VesselID: 1, VesselName: "branch1_seg0", ElementType: "BloodVessel", ElementValues: config.VesselValues{R: 1},
				BoundaryConditions: &config.VesselBCRefs{Outlet: "OUT1"}},
			{VesselID: 2, VesselName: "branch2_seg0", ElementType: "BloodVessel", ElementValues: config.VesselValues{R: 1},
				BoundaryConditions: &config.VesselBCRefs{Outlet: "OUT2"}},
		},
		Junctions: []config.Junction{
			{JunctionName: "J0", JunctionType: "NORMAL_JUNCTION", InletVessels: []int{0}, OutletVessels: []int{1, 2}},
		},
		BoundaryConditions: []config.BoundaryCondition{
			{BCName: "INFLOW", BCType: "FLOW", BCValues: config.BCValues{Q: []float64{1, 1}, T: []float64{0, 1}}},
			{BCName: "OUT1", BCType: "RESISTANCE", BCValues: config.BCValues{R: 1, Pd: 0}},
			{BCName: "OUT2", BCType: "RESISTANCE", BCValues: config.BCValues{R: 1, Pd: 0}},
		},
	}
	n, err := Build(cfg)
	require.NoError(t, err)
	// INFLOW, 3 vessels, J0, OUT1, OUT2 = 7 blocks
	require.Len(t, n.Blocks, 7)
}
