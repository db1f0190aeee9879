package block

// InternalJunction enforces pressure continuity and mass conservation
// across N connecting wires (spec §3): N-1 equality rows pin every wire's
// pressure to the first wire's, and one row enforces Σ sᵢQᵢ = 0. All rows
// are structural (constant across the run), so only UpdateConstant acts.
type InternalJunction struct {
	BlockName string
	WireRefs  []WireRef
}

func (j *InternalJunction) Name() string       { return j.BlockName }
func (j *InternalJunction) Wires() []WireRef   { return j.WireRefs }
func (j *InternalJunction) NumEquations() int  { return len(j.WireRefs) }
func (j *InternalJunction) NumInternalVars() int { return 0 }

func (j *InternalJunction) UpdateConstant(rows Rows) {
	n := len(j.WireRefs)
	for i := 1; i < n; i++ {
		// P of wire 0 equals P of wire i.
		rows.F[i-1][pCol(0)] = 1
		rows.F[i-1][pCol(i)] = -1
	}
	// Mass conservation: sum of signed flows is zero.
	for i, w := range j.WireRefs {
		rows.F[n-1][qCol(i)] = float64(w.Direction)
	}
}

func (j *InternalJunction) UpdateTime(float64, Rows)                 {}
func (j *InternalJunction) UpdateSolution([]float64, []float64, Rows) {}

// pCol/qCol give the local column offset of a wire's P/Q slot, following
// the [wire0.P, wire0.Q, wire1.P, wire1.Q, ...] convention shared by every
// block kind in this package.
func pCol(wireIdx int) int { return 2 * wireIdx }
func qCol(wireIdx int) int { return 2*wireIdx + 1 }

// BloodVesselJunction behaves like InternalJunction but allows each
// non-reference branch to carry an extra Poiseuille-like loss coefficient
// R[i] relating the reference wire's pressure to branch i's pressure
// (spec §3: "each branch carries an extra Poiseuille-like loss relating
// parent P to child P"). A zero R collapses a branch back to pure equality.
type BloodVesselJunction struct {
	BlockName string
	WireRefs  []WireRef
	R         []float64 // length len(WireRefs)-1, loss coefficient per non-reference branch
}

func (j *BloodVesselJunction) Name() string         { return j.BlockName }
func (j *BloodVesselJunction) Wires() []WireRef     { return j.WireRefs }
func (j *BloodVesselJunction) NumEquations() int    { return len(j.WireRefs) }
func (j *BloodVesselJunction) NumInternalVars() int { return 0 }

func (j *BloodVesselJunction) UpdateConstant(rows Rows) {
	n := len(j.WireRefs)
	for i := 1; i < n; i++ {
		r := 0.0
		if i-1 < len(j.R) {
			r = j.R[i-1]
		}
		rows.F[i-1][pCol(0)] = 1
		rows.F[i-1][pCol(i)] = -1
		if r != 0 {
			rows.F[i-1][qCol(i)] = -r
		}
	}
	for i, w := range j.WireRefs {
		rows.F[n-1][qCol(i)] = float64(w.Direction)
	}
}

func (j *BloodVesselJunction) UpdateTime(float64, Rows)                 {}
func (j *BloodVesselJunction) UpdateSolution([]float64, []float64, Rows) {}
