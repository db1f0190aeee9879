package genalpha

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewCoeffsDefaultRho(t *testing.T) {
	c := NewCoeffs(0.1)
	wantAlphaM := (3 - 0.1) / (2 * 1.1)
	wantAlphaF := 1 / 1.1
	wantGamma := 0.5 + wantAlphaM - wantAlphaF

	require.InDelta(t, wantAlphaM, c.AlphaM, 1e-12)
	require.InDelta(t, wantAlphaF, c.AlphaF, 1e-12)
	require.InDelta(t, wantGamma, c.Gamma, 1e-12)
}

func TestNewCoeffsRhoZeroValues(t *testing.T) {
	c := NewCoeffs(0)
	require.Equal(t, 1.5, c.AlphaM)
	require.Equal(t, 1.0, c.AlphaF)
}
