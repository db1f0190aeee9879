package bcvalue

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestConstantAtAndMean(t *testing.T) {
	c := NewConstant(3.5)
	require.Equal(t, 3.5, c.At(0))
	require.Equal(t, 3.5, c.At(100))
	require.Equal(t, 3.5, Mean(c))
}

func TestPeriodicCubicSplineInterpolatesSamples(t *testing.T) {
	times := []float64{0, 0.25, 0.5, 0.75, 1.0}
	values := []float64{1, 2, 1, 0, 1}
	s := NewPeriodicCubicSpline(times, values)

	for i, tt := range times {
		require.InDelta(t, values[i], s.At(tt), 1e-6)
	}
}

func TestPeriodicCubicSplineWrapsPastPeriod(t *testing.T) {
	times := []float64{0, 0.25, 0.5, 0.75, 1.0}
	values := []float64{1, 2, 1, 0, 1}
	s := NewPeriodicCubicSpline(times, values)

	require.Equal(t, 1.0, s.Period())

	a := s.At(0.1)
	b := s.At(1.1) // one full period later
	require.InDelta(t, a, b, 1e-9, "spline is not periodic")
}

func TestPeriodicCubicSplineMeanIsBounded(t *testing.T) {
	times := []float64{0, 0.25, 0.5, 0.75, 1.0}
	values := []float64{1, 2, 1, 0, 1}
	s := NewPeriodicCubicSpline(times, values)
	mean := Mean(s)
	require.GreaterOrEqual(t, mean, 0.0)
	require.LessOrEqual(t, mean, 2.0)
}
