package genalpha

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/StanfordCBCL/svZeroDPlus/assemble"
	"github.com/StanfordCBCL/svZeroDPlus/config"
	"github.com/StanfordCBCL/svZeroDPlus/network"
)

func period(v float64) *float64 { return &v }

// TestSingleResistorSteadyFlow is scenario 1 of spec §8: a single R vessel
// under steady flow 100 with R=10 and zero distal pressure should settle
// at P_in = 1000, Q = 100 by the last saved time point.
func TestSingleResistorSteadyFlow(t *testing.T) {
	cfg := &config.Config{
		SimulationParameters: config.SimulationParameters{
			NumberOfCardiacCycles: 2, NumberOfTimePtsPerCardiacCycle: 6, CardiacCyclePeriod: period(1.0),
		},
		Vessels: []config.Vessel{
			{VesselID: 0, VesselName: "branch0_seg0", ElementType: "BloodVessel",
				ElementValues:      config.VesselValues{R: 10},
				BoundaryConditions: &config.VesselBCRefs{Inlet: "INFLOW", Outlet: "OUTFLOW"}},
		},
		BoundaryConditions: []config.BoundaryCondition{
			{BCName: "INFLOW", BCType: "FLOW", BCValues: config.BCValues{Q: []float64{100, 100}, T: []float64{0, 1}}},
			{BCName: "OUTFLOW", BCType: "RESISTANCE", BCValues: config.BCValues{R: 0, Pd: 0}},
		},
	}
	net, err := network.Build(cfg)
	require.NoError(t, err)
	asm := assemble.New(net)
	asm.UpdateConstant()

	dt := cfg.DT()
	integ := New(asm, 0.1, dt)

	y0 := make([]float64, net.NEq)
	ydot0 := make([]float64, net.NEq)
	traj, err := integ.Run(0, y0, ydot0, cfg.TotalSteps())
	require.NoError(t, err)

	last := traj.Y[len(traj.Y)-1]
	var pIn, qIn float64
	for i, name := range traj.VarNames {
		switch name {
		case "P_INFLOW_branch0_seg0":
			pIn = last[i]
		case "Q_INFLOW_branch0_seg0":
			qIn = last[i]
		}
	}
	require.InDelta(t, 1000, pIn, 1e-4)
	require.InDelta(t, 100, qIn, 1e-4)
}
