package block

import "github.com/StanfordCBCL/svZeroDPlus/bcvalue"

// UnsteadyFlowRef fixes Q(t) = Qfunc(t) at its single wire (spec §3).
type UnsteadyFlowRef struct {
	BlockName string
	WireRefs  []WireRef // length 1
	Qfunc     bcvalue.Func
}

func (b *UnsteadyFlowRef) Name() string         { return b.BlockName }
func (b *UnsteadyFlowRef) Wires() []WireRef     { return b.WireRefs }
func (b *UnsteadyFlowRef) NumEquations() int    { return 1 }
func (b *UnsteadyFlowRef) NumInternalVars() int { return 0 }

func (b *UnsteadyFlowRef) UpdateConstant(rows Rows) {
	rows.F[0][qCol(0)] = 1
}

func (b *UnsteadyFlowRef) UpdateTime(t float64, rows Rows) {
	rows.C[0] = -b.Qfunc.At(t)
}

func (b *UnsteadyFlowRef) UpdateSolution([]float64, []float64, Rows) {}

// UnsteadyPressureRef fixes P(t) = Pfunc(t) at its single wire (spec §3).
type UnsteadyPressureRef struct {
	BlockName string
	WireRefs  []WireRef // length 1
	Pfunc     bcvalue.Func
}

func (b *UnsteadyPressureRef) Name() string         { return b.BlockName }
func (b *UnsteadyPressureRef) Wires() []WireRef     { return b.WireRefs }
func (b *UnsteadyPressureRef) NumEquations() int    { return 1 }
func (b *UnsteadyPressureRef) NumInternalVars() int { return 0 }

func (b *UnsteadyPressureRef) UpdateConstant(rows Rows) {
	rows.F[0][pCol(0)] = 1
}

func (b *UnsteadyPressureRef) UpdateTime(t float64, rows Rows) {
	rows.C[0] = -b.Pfunc.At(t)
}

func (b *UnsteadyPressureRef) UpdateSolution([]float64, []float64, Rows) {}

// UnsteadyResistanceWithDistalPressure enforces P - Pref(t) = R(t)*Q (spec §3).
type UnsteadyResistanceWithDistalPressure struct {
	BlockName string
	WireRefs  []WireRef // length 1
	Rfunc     bcvalue.Func
	Preffunc  bcvalue.Func
}

func (b *UnsteadyResistanceWithDistalPressure) Name() string         { return b.BlockName }
func (b *UnsteadyResistanceWithDistalPressure) Wires() []WireRef     { return b.WireRefs }
func (b *UnsteadyResistanceWithDistalPressure) NumEquations() int    { return 1 }
func (b *UnsteadyResistanceWithDistalPressure) NumInternalVars() int { return 0 }

func (b *UnsteadyResistanceWithDistalPressure) UpdateConstant(rows Rows) {
	rows.F[0][pCol(0)] = 1
}

func (b *UnsteadyResistanceWithDistalPressure) UpdateTime(t float64, rows Rows) {
	rows.F[0][qCol(0)] = -b.Rfunc.At(t)
	rows.C[0] = -b.Preffunc.At(t)
}

func (b *UnsteadyResistanceWithDistalPressure) UpdateSolution([]float64, []float64, Rows) {}

// UnsteadyRCRBlockWithDistalPressure is the RCR Windkessel (spec §3): one
// internal capacitor-charge DOF Pc, two equations
//   P - Pc - Rp*Q = 0
//   C*Pc_dot + P/Rd - Q - Pref(t)/Rd = 0
type UnsteadyRCRBlockWithDistalPressure struct {
	BlockName string
	WireRefs  []WireRef // length 1
	Rp, C, Rd float64
	Preffunc  bcvalue.Func
}

func (b *UnsteadyRCRBlockWithDistalPressure) Name() string         { return b.BlockName }
func (b *UnsteadyRCRBlockWithDistalPressure) Wires() []WireRef     { return b.WireRefs }
func (b *UnsteadyRCRBlockWithDistalPressure) NumEquations() int    { return 2 }
func (b *UnsteadyRCRBlockWithDistalPressure) NumInternalVars() int { return 1 }

const rcrPcCol = 2 // local column of Pc, right after the one wire's P/Q slots

func (b *UnsteadyRCRBlockWithDistalPressure) UpdateConstant(rows Rows) {
	rows.F[0][pCol(0)] = 1
	rows.F[0][rcrPcCol] = -1
	rows.F[0][qCol(0)] = -b.Rp

	rows.E[1][rcrPcCol] = b.C
	rows.F[1][pCol(0)] = 1 / b.Rd
	rows.F[1][qCol(0)] = -1
}

func (b *UnsteadyRCRBlockWithDistalPressure) UpdateTime(t float64, rows Rows) {
	rows.C[1] = -b.Preffunc.At(t) / b.Rd
}

func (b *UnsteadyRCRBlockWithDistalPressure) UpdateSolution([]float64, []float64, Rows) {}

// OpenLoopCoronaryWithDistalPressureBlock is the Kim et al. (2010) two-
// capacitor coronary model (spec §3). Internal DOFs: Pa (pressure across
// Ra2/Ca, between the arterial resistance Ra1 and the arterial compliance
// Ca), and Pim (pressure across Rv/Cim, the intramyocardial compartment).
// Equations:
//   Q - (P - Pa)/Ra1 = 0
//   Ca*Pa_dot - Q + (Pa - Pimv)/Ra2 = 0
//   Cim*(Pimv_dot - Pimfunc_dot(t)) - (Pa - Pimv)/Ra2 + (Pimv - Pvfunc(t))/Rv = 0
type OpenLoopCoronaryWithDistalPressureBlock struct {
	BlockName string
	WireRefs  []WireRef // length 1
	Ra1, Ca, Ra2, Cim, Rv float64
	Pimfunc               bcvalue.Func
	Pvfunc                bcvalue.Func
}

func (b *OpenLoopCoronaryWithDistalPressureBlock) Name() string         { return b.BlockName }
func (b *OpenLoopCoronaryWithDistalPressureBlock) Wires() []WireRef     { return b.WireRefs }
func (b *OpenLoopCoronaryWithDistalPressureBlock) NumEquations() int    { return 3 }
func (b *OpenLoopCoronaryWithDistalPressureBlock) NumInternalVars() int { return 2 }

const (
	coronaryPaCol   = 2 // pressure across Ra2/Ca
	coronaryPimvCol = 3 // pressure across Rv/Cim
)

func (b *OpenLoopCoronaryWithDistalPressureBlock) UpdateConstant(rows Rows) {
	rows.F[0][qCol(0)] = 1
	rows.F[0][pCol(0)] = -1 / b.Ra1
	rows.F[0][coronaryPaCol] = 1 / b.Ra1

	rows.E[1][coronaryPaCol] = b.Ca
	rows.F[1][qCol(0)] = -1
	rows.F[1][coronaryPaCol] = 1 / b.Ra2
	rows.F[1][coronaryPimvCol] = -1 / b.Ra2

	rows.E[2][coronaryPimvCol] = b.Cim
	rows.F[2][coronaryPaCol] = -1 / b.Ra2
	rows.F[2][coronaryPimvCol] = 1/b.Ra2 + 1/b.Rv
}

func (b *OpenLoopCoronaryWithDistalPressureBlock) UpdateTime(t float64, rows Rows) {
	rows.C[2] = -b.Cim*bcvalue.Deriv(b.Pimfunc, t) - b.Pvfunc.At(t)/b.Rv
}

func (b *OpenLoopCoronaryWithDistalPressureBlock) UpdateSolution([]float64, []float64, Rows) {}
