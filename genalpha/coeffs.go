// Package genalpha implements the Generalized-α time integrator with
// Newton inner iteration (spec §4.4), the central algorithm of this
// repository. Coeffs plays the structural role of gofem's fem.DynCoefs
// (an Init/derived-fields/Print coefficient struct used for diagnostic
// logging), but its derived quantities are the α_m, α_f, γ of spec §4.4,
// not a θ-method/Newmark/HHT scheme (spec §9 REDESIGN FLAGS).
package genalpha

import "github.com/cpmech/gosl/io"

// Coeffs holds the Generalized-α coefficients derived from a user-chosen
// spectral radius ρ ∈ [0,1] (default 0.1).
type Coeffs struct {
	Rho    float64
	AlphaM float64
	AlphaF float64
	Gamma  float64
}

// NewCoeffs derives α_m, α_f, γ from ρ (spec §4.4).
func NewCoeffs(rho float64) *Coeffs {
	c := &Coeffs{Rho: rho}
	c.AlphaM = (3 - rho) / (2 * (1 + rho))
	c.AlphaF = 1 / (1 + rho)
	c.Gamma = 0.5 + c.AlphaM - c.AlphaF
	return c
}

// Print writes the derived coefficients to stdout, matching the
// diagnostic-print convention of gofem's DynCoefs.Print.
func (c *Coeffs) Print() {
	io.Pf("genalpha: rho=%g alpha_m=%g alpha_f=%g gamma=%g\n", c.Rho, c.AlphaM, c.AlphaF, c.Gamma)
}
