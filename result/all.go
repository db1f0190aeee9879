// Package result reshapes a raw genalpha.Trajectory into the two output
// shapes spec §4.6 names: a flat "All" bucketing by DOF-name prefix, and a
// "Branch" folding onto centerline topology. It is deliberately its own
// package with no inbound dependency from network or genalpha, mirroring
// the "treat it as a separate, optional reshaper" design note — grounded on
// solver.py's reformat_network_util_results_all/_branch.
package result

import (
	"strings"

	"github.com/StanfordCBCL/svZeroDPlus/genalpha"
	"github.com/StanfordCBCL/svZeroDPlus/zderr"
)

// AllResult is the flat, prefix-bucketed view of a trajectory: one
// time-series per DOF name, grouped by whether the name is a pressure,
// a flow, or a block-internal variable.
type AllResult struct {
	Times []float64
	P     map[string][]float64
	Q     map[string][]float64
	Var   map[string][]float64
}

// All buckets every DOF in traj by its P_/Q_/var_ name prefix (spec §4.6).
// A DOF name under any other prefix is a fatal PostprocessError.
func All(traj *genalpha.Trajectory) (*AllResult, error) {
	n := len(traj.Times)
	out := &AllResult{
		Times: append([]float64(nil), traj.Times...),
		P:     map[string][]float64{},
		Q:     map[string][]float64{},
		Var:   map[string][]float64{},
	}
	for col, name := range traj.VarNames {
		series := make([]float64, n)
		for t := 0; t < n; t++ {
			series[t] = traj.Y[t][col]
		}
		switch {
		case strings.HasPrefix(name, "P_"):
			out.P[name] = series
		case strings.HasPrefix(name, "Q_"):
			out.Q[name] = series
		case strings.HasPrefix(name, "var_"):
			out.Var[name] = series
		default:
			return nil, zderr.NewPostprocessError("result.All", "DOF %q has an unrecognized name prefix", name)
		}
	}
	return out, nil
}
