package result

import "github.com/StanfordCBCL/svZeroDPlus/genalpha"

// LastCycle trims traj to its final ptsPerCycle samples and rebases the
// time axis to start at traj's original first time (spec §4.6).
func LastCycle(traj *genalpha.Trajectory, ptsPerCycle int) *genalpha.Trajectory {
	n := len(traj.Times)
	if ptsPerCycle > n {
		ptsPerCycle = n
	}
	start := n - ptsPerCycle
	t0 := traj.Times[0]
	offset := traj.Times[start] - t0

	out := &genalpha.Trajectory{
		VarNames: traj.VarNames,
		Times:    make([]float64, ptsPerCycle),
		Y:        make([][]float64, ptsPerCycle),
		Ydot:     make([][]float64, ptsPerCycle),
	}
	for i := 0; i < ptsPerCycle; i++ {
		out.Times[i] = traj.Times[start+i] - offset
		out.Y[i] = traj.Y[start+i]
		out.Ydot[i] = traj.Ydot[start+i]
	}
	return out
}
