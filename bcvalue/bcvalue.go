// Package bcvalue supplies f(t) lookups for boundary-condition blocks:
// a plain constant, and a periodic cubic spline fit through the
// (time, value) samples given in the simulation input. The lookup-by-name
// shape mirrors gofem's inp.FuncsData.Get, but there is no registry map —
// a function value is owned directly by the block that asked for it.
package bcvalue

import "github.com/cpmech/gosl/chk"

// Func evaluates a scalar boundary-condition value at time t, and reports
// the period used to wrap t back into the sampled window (zero for a
// non-periodic function such as Constant).
type Func interface {
	At(t float64) float64
	Period() float64
}

// Constant is a time-invariant BC value, used for steady prelude runs and
// for any BC declared with a single scalar instead of a (t, v) table.
type Constant struct {
	Value float64
}

func (c Constant) At(float64) float64 { return c.Value }
func (c Constant) Period() float64    { return 0 }

// NewConstant builds a Constant BC function.
func NewConstant(v float64) Constant { return Constant{Value: v} }

// Deriv returns df/dt at t. Used by blocks whose constitutive relation
// differentiates a prescribed reference signal (the coronary BC's Pim(t)
// term, spec §3). A Constant's derivative is always zero.
func Deriv(fn Func, t float64) float64 {
	switch f := fn.(type) {
	case Constant:
		return 0
	case *PeriodicCubicSpline:
		return f.DerivAt(t)
	default:
		chk.Panic("bcvalue: Deriv: unsupported Func implementation %T", fn)
		return 0
	}
}

// Mean returns the time-averaged value of fn over one period, used by the
// steady-BC prelude (spec §4.5) to replace every unsteady BC with its cycle
// mean. For a Constant this is just the value; for a PeriodicCubicSpline it
// is the trapezoidal-rule average over the sampled table, matching
// solver.py's steady-BC construction (mean of the supplied values table).
func Mean(fn Func) float64 {
	switch f := fn.(type) {
	case Constant:
		return f.Value
	case *PeriodicCubicSpline:
		return f.meanValue
	default:
		chk.Panic("bcvalue: Mean: unsupported Func implementation %T", fn)
		return 0
	}
}
