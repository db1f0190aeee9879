package result

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/StanfordCBCL/svZeroDPlus/assemble"
	"github.com/StanfordCBCL/svZeroDPlus/config"
	"github.com/StanfordCBCL/svZeroDPlus/genalpha"
	"github.com/StanfordCBCL/svZeroDPlus/network"
)

func period(v float64) *float64 { return &v }

func twoSegmentConfig() *config.Config {
	return &config.Config{
		SimulationParameters: config.SimulationParameters{
			NumberOfCardiacCycles: 1, NumberOfTimePtsPerCardiacCycle: 11, CardiacCyclePeriod: period(1.0),
		},
		Vessels: []config.Vessel{
			{VesselID: 0, VesselName: "branch0_seg0", ElementType: "BloodVessel",
				ElementValues:      config.VesselValues{R: 5},
				BoundaryConditions: &config.VesselBCRefs{Inlet: "INFLOW"}},
			{VesselID: 1, VesselName: "branch0_seg1", ElementType: "BloodVessel",
				ElementValues:      config.VesselValues{R: 5},
				BoundaryConditions: &config.VesselBCRefs{Outlet: "OUTFLOW"}},
		},
		Junctions: []config.Junction{
			{JunctionName: "J0", JunctionType: "NORMAL_JUNCTION", InletVessels: []int{0}, OutletVessels: []int{1}},
		},
		BoundaryConditions: []config.BoundaryCondition{
			{BCName: "INFLOW", BCType: "FLOW", BCValues: config.BCValues{Q: []float64{100, 100}, T: []float64{0, 1}}},
			{BCName: "OUTFLOW", BCType: "RESISTANCE", BCValues: config.BCValues{R: 0, Pd: 0}},
		},
	}
}

func runTraj(t *testing.T, cfg *config.Config) (*network.Network, *genalpha.Trajectory) {
	t.Helper()
	net, err := network.Build(cfg)
	require.NoError(t, err)
	asm := assemble.New(net)
	asm.UpdateConstant()
	integ := genalpha.New(asm, 0.1, cfg.DT())
	y0 := make([]float64, net.NEq)
	ydot0 := make([]float64, net.NEq)
	traj, err := integ.Run(0, y0, ydot0, cfg.TotalSteps())
	require.NoError(t, err)
	return net, traj
}

func TestAllBucketsByPrefix(t *testing.T) {
	_, traj := runTraj(t, twoSegmentConfig())
	all, err := All(traj)
	require.NoError(t, err)
	require.NotEmpty(t, all.P)
	require.NotEmpty(t, all.Q)
	for name := range all.P {
		require.Equal(t, "P_", name[:2])
	}
}

func TestBranchFoldsTwoSegmentsIntoThreeNodes(t *testing.T) {
	net, traj := runTraj(t, twoSegmentConfig())
	br, err := Branch(net, traj)
	require.NoError(t, err)

	bt, ok := br.Branches[0]
	require.True(t, ok, "expected branch 0 in result")
	require.Len(t, bt.P, 3)

	last := len(traj.Times) - 1
	require.InDelta(t, 100, bt.Q[1][last], 1e-3)
}

func TestLastCycleTrimsAndRebases(t *testing.T) {
	_, traj := runTraj(t, twoSegmentConfig())
	trimmed := LastCycle(traj, 2)
	require.Len(t, trimmed.Times, 2)
	require.Equal(t, traj.Times[0], trimmed.Times[0])
}
