// Package steady implements the steady-BC prelude (spec §4.5): it replaces
// every unsteady boundary condition by its cycle mean, runs a short coarse
// simulation to equilibrium, and hands back the final state as the initial
// condition for the real pulsatile run. The deep-copy / mutate / (implicit)
// restore shape mirrors gofem's fem.Domain.backup()/restore(), generalized
// here to copying configuration rather than solution state.
package steady

import (
	"encoding/json"

	"github.com/StanfordCBCL/svZeroDPlus/assemble"
	"github.com/StanfordCBCL/svZeroDPlus/bcvalue"
	"github.com/StanfordCBCL/svZeroDPlus/config"
	"github.com/StanfordCBCL/svZeroDPlus/genalpha"
	"github.com/StanfordCBCL/svZeroDPlus/network"
	"github.com/StanfordCBCL/svZeroDPlus/zderr"
)

// Rho is the spectral radius used for the coarse prelude run; it matches
// the main run's default since spec §4.5 does not call for a distinct one.
const Rho = 0.1

// CoarsePointsPerCycle and CoarseCycles are the spec-mandated coarse
// integrator settings for the prelude (spec §4.5 step 3).
const (
	CoarsePointsPerCycle = 11
	CoarseCycles         = 3
)

// Run executes the steady-BC prelude against cfg and returns (y0, ydot0)
// to seed the real pulsatile run. Every DOF is carried over by name (wire
// P/Q as well as block internals): block identities and wire names are
// unchanged by the mean-BC rebuild, so a name-keyed copy both restores
// capacitor internal states (the values spec §4.5 step 5 calls out
// explicitly) and gives the pulsatile run a near-steady starting point on
// every other DOF too.
func Run(cfg *config.Config) (y0, ydot0 []float64, err error) {
	steadyCfg, err := meanBCConfig(cfg)
	if err != nil {
		return nil, nil, err
	}

	steadyNet, err := network.Build(steadyCfg)
	if err != nil {
		return nil, nil, zderr.NewConfigError("steady-prelude", "rebuilding network on mean BCs: %v", err)
	}
	asm := assemble.New(steadyNet)
	asm.UpdateConstant()

	dt := steadyCfg.DT()
	integ := genalpha.New(asm, Rho, dt)

	y := make([]float64, steadyNet.NEq)
	ydot := make([]float64, steadyNet.NEq)
	traj, err := integ.Run(0, y, ydot, steadyCfg.TotalSteps())
	if err != nil {
		return nil, nil, err
	}

	finalY := traj.Y[len(traj.Y)-1]
	finalYdot := traj.Ydot[len(traj.Ydot)-1]

	mainNet, err := network.Build(cfg)
	if err != nil {
		return nil, nil, err
	}
	y0 = make([]float64, mainNet.NEq)
	ydot0 = make([]float64, mainNet.NEq)

	steadyIdx := map[string]int{}
	for i, name := range steadyNet.VarNames {
		steadyIdx[name] = i
	}
	for i, name := range mainNet.VarNames {
		if si, ok := steadyIdx[name]; ok {
			y0[i] = finalY[si]
			ydot0[i] = finalYdot[si]
		}
	}
	return y0, ydot0, nil
}

// meanBCConfig deep-copies cfg, overrides the coarse integrator settings,
// and replaces every FLOW/PRESSURE/CORONARY time-series BC value with its
// cycle mean (spec §4.5 step 2).
func meanBCConfig(cfg *config.Config) (*config.Config, error) {
	raw, err := json.Marshal(cfg)
	if err != nil {
		return nil, zderr.NewConfigError("steady-prelude", "copying config: %v", err)
	}
	var steadyCfg config.Config
	if err := json.Unmarshal(raw, &steadyCfg); err != nil {
		return nil, zderr.NewConfigError("steady-prelude", "copying config: %v", err)
	}

	period := *cfg.SimulationParameters.CardiacCyclePeriod
	steadyCfg.SimulationParameters.NumberOfCardiacCycles = CoarseCycles
	steadyCfg.SimulationParameters.NumberOfTimePtsPerCardiacCycle = CoarsePointsPerCycle
	p := period
	steadyCfg.SimulationParameters.CardiacCyclePeriod = &p

	for i := range steadyCfg.BoundaryConditions {
		bc := &steadyCfg.BoundaryConditions[i]
		switch bc.BCType {
		case "FLOW":
			m := cycleMean(bc.BCValues.T, bc.BCValues.Q)
			bc.BCValues.Q = []float64{m, m}
			bc.BCValues.T = []float64{0, period}
		case "PRESSURE":
			m := cycleMean(bc.BCValues.T, bc.BCValues.P)
			bc.BCValues.P = []float64{m, m}
			bc.BCValues.T = []float64{0, period}
		case "CORONARY":
			m := cycleMean(bc.BCValues.T, bc.BCValues.Pim)
			bc.BCValues.Pim = []float64{m, m}
			bc.BCValues.T = []float64{0, period}
		}
	}
	return &steadyCfg, nil
}

// cycleMean computes the time-average of a (t, v) table over one cardiac
// cycle, via the same trapezoidal rule bcvalue.Mean uses for a fitted spline.
func cycleMean(t, v []float64) float64 {
	if len(v) == 0 {
		return 0
	}
	if len(t) < 3 || len(v) < 3 {
		return v[0]
	}
	return bcvalue.Mean(bcvalue.NewPeriodicCubicSpline(t, v))
}
