// Package assemble owns the dense global E, F, C, dC/dy, dC/dẏ matrices
// (spec §4.3) and scatters each block's local stamp into its cached row/
// column slots, mirroring the scatter-into-global-slots shape of gofem's
// ele/e_pp.go AddToKb. Dense storage matches spec §4.3's explicit
// allowance for DOF counts up to a few thousand; no block ever sees these
// matrices directly, only the Rows view assigned to it (spec §9).
package assemble

import (
	"github.com/StanfordCBCL/svZeroDPlus/block"
	"github.com/StanfordCBCL/svZeroDPlus/network"
)

// Assembler holds the global system and the per-block local stamp buffers.
type Assembler struct {
	Net *network.Network

	E, F, DCdy, DCdydot [][]float64
	C                   []float64

	// Csrc holds the constant/time-source contribution to C (spec §3's
	// boundary-condition forcing: Qfunc(t), Pfunc(t), Pref(t)/Rd, ...),
	// captured from rows.C right after UpdateConstant/UpdateTime write it.
	// It persists across Newton iterates, unlike rows.C itself, which
	// ZeroNonlinear clears every iterate so UpdateSolution can layer in the
	// nonlinear (stenosis) contribution on top of it.
	Csrc []float64

	rowsOf map[string]block.Rows
}

// New allocates a zeroed Assembler sized to net.NEq and one Rows buffer
// per block, keyed by the network's cached column-index arrays.
func New(net *network.Network) *Assembler {
	n := net.NEq
	a := &Assembler{
		Net:     net,
		E:       zeros(n, n),
		F:       zeros(n, n),
		DCdy:    zeros(n, n),
		DCdydot: zeros(n, n),
		C:       make([]float64, n),
		Csrc:    make([]float64, n),
		rowsOf:  map[string]block.Rows{},
	}
	for _, b := range net.Blocks {
		cols := net.Cols[b.Name()]
		a.rowsOf[b.Name()] = block.NewRows(b.NumEquations(), cols)
	}
	return a
}

func zeros(rows, cols int) [][]float64 {
	m := make([][]float64, rows)
	for i := range m {
		m[i] = make([]float64, cols)
	}
	return m
}

// UpdateConstant calls every block's UpdateConstant hook once (at wiring
// time) and scatters the resulting E/F rows into the global matrices.
func (a *Assembler) UpdateConstant() {
	for _, b := range a.Net.Blocks {
		rows := a.rowsOf[b.Name()]
		b.UpdateConstant(rows)
		a.scatterEF(b, rows)
	}
}

// UpdateTime calls every block's UpdateTime(t) hook once per outer time
// step and re-scatters E/F (a block's stamp buffer persists across calls,
// so time-invariant entries written by UpdateConstant remain intact). Each
// block's nonlinear buffer is cleared first, so the previous step's last
// UpdateSolution term is not captured into Csrc.
func (a *Assembler) UpdateTime(t float64) {
	for _, b := range a.Net.Blocks {
		rows := a.rowsOf[b.Name()]
		rows.ZeroNonlinear()
		b.UpdateTime(t, rows)
		a.scatterEF(b, rows)
	}
}

// UpdateSolution calls every block's UpdateSolution hook once per Newton
// iterate and scatters the nonlinear residual/Jacobian rows.
func (a *Assembler) UpdateSolution(y, ydot []float64) {
	for _, b := range a.Net.Blocks {
		rows := a.rowsOf[b.Name()]
		rows.ZeroNonlinear()
		b.UpdateSolution(y, ydot, rows)
		a.scatterNonlinear(b, rows)
	}
}

// scatterEF copies a block's E/F rows into the global matrices and its
// current rows.C into Csrc. It runs from both UpdateConstant and UpdateTime,
// so Csrc always reflects whatever constant or time-dependent source a
// block last wrote into rows.C, before UpdateSolution's ZeroNonlinear
// clears it.
func (a *Assembler) scatterEF(b block.Block, rows block.Rows) {
	r0 := a.Net.RowOffset[b.Name()]
	for i := 0; i < b.NumEquations(); i++ {
		a.Csrc[r0+i] = rows.C[i]
		for j, gcol := range rows.Cols {
			a.E[r0+i][gcol] = rows.E[i][j]
			a.F[r0+i][gcol] = rows.F[i][j]
		}
	}
}

// scatterNonlinear copies a block's per-iterate nonlinear residual into the
// global C, added to (not overwriting) the persistent Csrc term so BC
// forcing survives every Newton iterate's ZeroNonlinear reset.
func (a *Assembler) scatterNonlinear(b block.Block, rows block.Rows) {
	r0 := a.Net.RowOffset[b.Name()]
	for i := 0; i < b.NumEquations(); i++ {
		a.C[r0+i] = a.Csrc[r0+i] + rows.C[i]
		for j, gcol := range rows.Cols {
			a.DCdy[r0+i][gcol] = rows.DCdy[i][j]
			a.DCdydot[r0+i][gcol] = rows.DCdydot[i][j]
		}
	}
}
