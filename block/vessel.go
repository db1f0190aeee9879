package block

import "math"

// BloodVessel is the R/C/L/stenosis vessel element (spec §3). Sub-kinds R,
// C, L, RC, RL, RCL are just instantiations with some of R/L/Stenosis zero;
// a nonzero C adds one internal pressure DOF (Pc) and a third equation
// tying it algebraically to the outlet wire's own pressure, keeping the
// block's row count equal to its column-count growth (the wiring
// invariant of spec §3 — every new DOF the block introduces is balanced by
// one new equation it contributes).
//
// Without a capacitor (C == 0) the vessel has 2 equations and no internal
// DOF:
//   eq0: Pin - Pout - R*Qin - L*Qin_dot - S*|Qin|*Qin = 0
//   eq1: Qin - Qout = 0
//
// With a capacitor (C != 0) it has 3 equations and one internal DOF Pc:
//   eq0: Pin - Pout - R*Qin - L*Qin_dot - S*|Qin|*Qin = 0
//   eq1: Qin - Qout - C*Pc_dot = 0
//   eq2: Pc - Pout = 0
type BloodVessel struct {
	BlockName string
	WireRefs  []WireRef // exactly 2: [inlet, outlet]
	R         float64
	C         float64
	L         float64
	Stenosis  float64
}

func (v *BloodVessel) Name() string     { return v.BlockName }
func (v *BloodVessel) Wires() []WireRef { return v.WireRefs }

func (v *BloodVessel) NumEquations() int {
	if v.C != 0 {
		return 3
	}
	return 2
}

func (v *BloodVessel) NumInternalVars() int {
	if v.C != 0 {
		return 1
	}
	return 0
}

const (
	inletWire  = 0
	outletWire = 1
)

func (v *BloodVessel) UpdateConstant(rows Rows) {
	rows.F[0][pCol(inletWire)] = 1
	rows.F[0][pCol(outletWire)] = -1
	rows.F[0][qCol(inletWire)] -= v.R
	rows.E[0][qCol(inletWire)] = -v.L

	rows.F[1][qCol(inletWire)] = 1
	rows.F[1][qCol(outletWire)] = -1

	if v.C != 0 {
		pcCol := 4 // local column after the two wires' P/Q slots
		rows.E[1][pcCol] = -v.C
		rows.F[2][pcCol] = 1
		rows.F[2][pCol(outletWire)] = -1
	}
}

func (v *BloodVessel) UpdateTime(float64, Rows) {}

func (v *BloodVessel) UpdateSolution(y, _ []float64, rows Rows) {
	if v.Stenosis == 0 {
		return
	}
	qin := y[rows.Cols[qCol(inletWire)]]
	absQ := math.Abs(qin)
	rows.C[0] = -v.Stenosis * absQ * qin
	rows.DCdy[0][qCol(inletWire)] = -2 * v.Stenosis * absQ
}
