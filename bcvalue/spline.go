package bcvalue

import "github.com/cpmech/gosl/chk"

// PeriodicCubicSpline fits a cubic spline through the (Times, Values) table
// under the constraint that the function and its first two derivatives are
// continuous across the wraparound from the last sample back to the first,
// exactly the interpolation solver.py builds via scipy's periodic
// CubicSpline (create_unsteady_bc_value_function). No library in the
// retrieved corpus implements a periodic spline, so the cyclic-tridiagonal
// solve for the second derivatives is hand-written standard numerics here.
type PeriodicCubicSpline struct {
	times  []float64
	values []float64
	h      []float64 // h[i] = times[i+1]-times[i], wrapping h[n-1] = period-(times[n-1]-times[0])
	m      []float64 // second derivatives at each sample
	period float64

	meanValue float64
}

// NewPeriodicCubicSpline builds a spline from a strictly increasing time
// table and matching values. times[0] is taken as the start of the period;
// values[len-1] must equal values[0] (closed-loop sample, matching the
// input convention of solver.py's BC tables) or the two are silently
// averaged to close the loop.
func NewPeriodicCubicSpline(times, values []float64) *PeriodicCubicSpline {
	n := len(times)
	if n < 3 {
		chk.Panic("bcvalue: NewPeriodicCubicSpline: need at least 3 samples, got %d", n)
	}
	if len(values) != n {
		chk.Panic("bcvalue: NewPeriodicCubicSpline: times/values length mismatch (%d vs %d)", n, len(values))
	}

	vals := make([]float64, n)
	copy(vals, values)
	closed := (vals[0] + vals[n-1]) / 2
	vals[0] = closed
	vals[n-1] = closed

	period := times[n-1] - times[0]
	if period <= 0 {
		chk.Panic("bcvalue: NewPeriodicCubicSpline: non-positive period %g", period)
	}

	s := &PeriodicCubicSpline{
		times:  append([]float64(nil), times...),
		values: vals,
		period: period,
	}
	s.buildSecondDerivatives()
	s.meanValue = s.trapezoidalMean()
	return s
}

// buildSecondDerivatives solves the cyclic tridiagonal system for the spline
// second derivatives at each of the n-1 distinct samples (times[n-1] duplicates
// times[0]+period and is dropped from the unknowns, then reattached).
func (s *PeriodicCubicSpline) buildSecondDerivatives() {
	n := len(s.times) - 1 // number of distinct periodic knots
	h := make([]float64, n)
	for i := 0; i < n-1; i++ {
		h[i] = s.times[i+1] - s.times[i]
	}
	// wraps from knot n-1 back to knot 0 (+period)
	h[n-1] = s.period - (s.times[n-1] - s.times[0])

	a := make([]float64, n) // sub-diagonal
	b := make([]float64, n) // diagonal
	c := make([]float64, n) // super-diagonal
	d := make([]float64, n) // rhs

	val := func(i int) float64 { return s.values[i%n] }

	for i := 0; i < n; i++ {
		hPrev := h[(i-1+n)%n]
		hCur := h[i]
		a[i] = hPrev
		b[i] = 2 * (hPrev + hCur)
		c[i] = hCur
		d[i] = 6 * ((val(i+1)-val(i))/hCur - (val(i)-val((i-1+n)%n))/hPrev)
	}

	m := solveCyclicTridiagonal(a, b, c, d)
	s.h = h
	s.m = append(m, m[0]) // duplicate first knot's second derivative at the wrap point
}

// At evaluates the spline at time t, wrapping t into [times[0], times[0]+period).
func (s *PeriodicCubicSpline) At(t float64) float64 {
	n := len(s.h)
	t0 := s.times[0]
	tt := t0 + wrapPositive(t-t0, s.period)

	i := 0
	for i < n-1 && tt >= s.times[i+1] {
		i++
	}
	for i > 0 && tt < s.times[i] {
		i--
	}

	hi := s.h[i]
	x0 := s.times[i]
	var x1 float64
	if i < n-1 {
		x1 = s.times[i+1]
	} else {
		x1 = x0 + hi
	}
	v0, v1 := s.values[i], s.values[(i+1)%len(s.values)]
	if i == n-1 {
		v1 = s.values[0]
	}
	m0, m1 := s.m[i], s.m[i+1]

	A := (x1 - tt) / hi
	B := (tt - x0) / hi
	return A*v0 + B*v1 +
		((A*A*A-A)*m0+(B*B*B-B)*m1)*(hi*hi)/6
}

// DerivAt evaluates the spline's first derivative at time t.
func (s *PeriodicCubicSpline) DerivAt(t float64) float64 {
	n := len(s.h)
	t0 := s.times[0]
	tt := t0 + wrapPositive(t-t0, s.period)

	i := 0
	for i < n-1 && tt >= s.times[i+1] {
		i++
	}
	for i > 0 && tt < s.times[i] {
		i--
	}

	hi := s.h[i]
	x0 := s.times[i]
	v0, v1 := s.values[i], s.values[(i+1)%len(s.values)]
	if i == n-1 {
		v1 = s.values[0]
	}
	m0, m1 := s.m[i], s.m[i+1]

	A := (s.xAt(i+1) - tt) / hi
	B := (tt - x0) / hi
	return (v1-v0)/hi - (3*A*A-1)/6*hi*m0 + (3*B*B-1)/6*hi*m1
}

// xAt returns the knot time for local index i, extrapolating one period
// past the last distinct knot for the wraparound point.
func (s *PeriodicCubicSpline) xAt(i int) float64 {
	n := len(s.h)
	if i < n {
		return s.times[i]
	}
	return s.times[0] + s.period
}

func (s *PeriodicCubicSpline) Period() float64 { return s.period }

func (s *PeriodicCubicSpline) trapezoidalMean() float64 {
	n := len(s.times)
	var sum float64
	for i := 0; i < n-1; i++ {
		dt := s.times[i+1] - s.times[i]
		sum += 0.5 * (s.values[i] + s.values[i+1]) * dt
	}
	return sum / s.period
}

func wrapPositive(x, period float64) float64 {
	r := mod(x, period)
	if r < 0 {
		r += period
	}
	return r
}

func mod(x, y float64) float64 {
	q := int64(x / y)
	return x - float64(q)*y
}

// solveCyclicTridiagonal solves a periodic (cyclic) tridiagonal system using
// the Sherman-Morrison formula: it reduces the cyclic system to two ordinary
// tridiagonal solves via the Thomas algorithm.
func solveCyclicTridiagonal(a, b, c, d []float64) []float64 {
	n := len(b)
	if n == 1 {
		return []float64{d[0] / b[0]}
	}

	gamma := -b[0]
	bb := make([]float64, n)
	copy(bb, b)
	bb[0] = b[0] - gamma
	bb[n-1] = b[n-1] - a[0]*c[n-1]/gamma

	x := thomas(a, bb, c, d)

	u := make([]float64, n)
	u[0] = gamma
	u[n-1] = c[n-1]
	z := thomas(a, bb, c, u)

	fact := (x[0] + a[0]*x[n-1]/gamma) / (1 + z[0] + a[0]*z[n-1]/gamma)
	for i := 0; i < n; i++ {
		x[i] -= fact * z[i]
	}
	return x
}

// thomas solves a plain tridiagonal system a_i x_{i-1} + b_i x_i + c_i x_{i+1} = d_i.
func thomas(a, b, c, d []float64) []float64 {
	n := len(b)
	cp := make([]float64, n)
	dp := make([]float64, n)
	x := make([]float64, n)

	cp[0] = c[0] / b[0]
	dp[0] = d[0] / b[0]
	for i := 1; i < n; i++ {
		m := b[i] - a[i]*cp[i-1]
		if i < n-1 {
			cp[i] = c[i] / m
		}
		dp[i] = (d[i] - a[i]*dp[i-1]) / m
	}
	x[n-1] = dp[n-1]
	for i := n - 2; i >= 0; i-- {
		x[i] = dp[i] - cp[i]*x[i+1]
	}
	return x
}
