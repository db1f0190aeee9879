// Package network wires block instances together (spec §4.2): it builds
// blocks from config via a type switch (never a string-keyed registry map
// — spec §9 REDESIGN FLAGS), creates one Wire per deduplicated block-pair
// connection, and assigns global DOF indices in deterministic order
// (vessels by ascending vessel_id, each followed by its boundary blocks,
// then junctions in input order). Topology bookkeeping rides on a katalvlaran/lvlath/graph.Graph:
// one vertex per block, one edge per wire, giving wire/degree validation a
// ready adjacency query surface instead of hand-rolled bookkeeping.
package network

import (
	"fmt"
	"sort"

	"github.com/katalvlaran/lvlath/graph"

	"github.com/StanfordCBCL/svZeroDPlus/bcvalue"
	"github.com/StanfordCBCL/svZeroDPlus/block"
	"github.com/StanfordCBCL/svZeroDPlus/config"
	"github.com/StanfordCBCL/svZeroDPlus/zderr"
)

// Wire is one P/Q DOF pair shared by exactly two blocks (spec §3).
type Wire struct {
	Upstream, Downstream string
	PIdx, QIdx            int
}

func (w *Wire) PName() string { return fmt.Sprintf("P_%s_%s", w.Upstream, w.Downstream) }
func (w *Wire) QName() string { return fmt.Sprintf("Q_%s_%s", w.Upstream, w.Downstream) }

// Network is the fully wired, DOF-assigned block graph ready for assembly.
type Network struct {
	Blocks     []block.Block
	Wires      []*Wire
	blockWires map[string][]*Wire // per block name, wires in Wires() order
	RowOffset  map[string]int
	Cols       map[string][]int
	NEq        int
	VarNames   []string
	Graph      *graph.Graph
}

// BlockWires returns the wires of the named block, in the same order as
// that block's Wires() slice.
func (n *Network) BlockWires(name string) []*Wire { return n.blockWires[name] }

// Build constructs the full network from a parsed config (spec §4.2).
func Build(cfg *config.Config) (*Network, error) {
	bcByName := map[string]config.BoundaryCondition{}
	for _, bc := range cfg.BoundaryConditions {
		bcByName[bc.BCName] = bc
	}
	vesselByID := map[int]config.Vessel{}
	for _, v := range cfg.Vessels {
		vesselByID[v.VesselID] = v
	}

	// For each vessel, find its inlet/outlet junction (if any).
	inletJunctionOf := map[int]config.Junction{}  // vessel id -> junction feeding it (vessel in OutletVessels)
	outletJunctionOf := map[int]config.Junction{} // vessel id -> junction it feeds (vessel in InletVessels)
	for _, j := range cfg.Junctions {
		for _, id := range j.InletVessels {
			outletJunctionOf[id] = j
		}
		for _, id := range j.OutletVessels {
			inletJunctionOf[id] = j
		}
	}

	g := graph.NewGraph(true, false)
	n := &Network{
		blockWires: map[string][]*Wire{},
		RowOffset:  map[string]int{},
		Cols:       map[string][]int{},
		Graph:      g,
	}

	addVertex := func(name string) {
		if !g.HasVertex(name) {
			g.AddVertex(&graph.Vertex{ID: name})
		}
	}

	wireCache := map[string]*Wire{}
	wireBetween := func(upstream, downstream string) *Wire {
		key := upstream + "->" + downstream
		if w, ok := wireCache[key]; ok {
			return w
		}
		w := &Wire{Upstream: upstream, Downstream: downstream}
		wireCache[key] = w
		n.Wires = append(n.Wires, w)
		addVertex(upstream)
		addVertex(downstream)
		g.AddEdge(upstream, downstream, 1)
		return w
	}

	// Build vessel blocks and their wires.
	ids := make([]int, 0, len(cfg.Vessels))
	for id := range vesselByID {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	for _, id := range ids {
		v := vesselByID[id]
		vb := &block.BloodVessel{
			BlockName: v.VesselName,
			R:         v.ElementValues.R,
			C:         v.ElementValues.C,
			L:         v.ElementValues.L,
			Stenosis:  v.ElementValues.Stenosis,
		}

		inletPeer, err := resolveInletPeer(v, bcByName, inletJunctionOf)
		if err != nil {
			return nil, err
		}
		outletPeer, err := resolveOutletPeer(v, bcByName, outletJunctionOf)
		if err != nil {
			return nil, err
		}

		wIn := wireBetween(inletPeer, v.VesselName)
		wOut := wireBetween(v.VesselName, outletPeer)
		vb.WireRefs = []block.WireRef{
			{Peer: inletPeer, Direction: +1},
			{Peer: outletPeer, Direction: -1},
		}
		n.blockWires[vb.Name()] = []*Wire{wIn, wOut}
		n.Blocks = append(n.Blocks, vb)

		if err := buildBoundaryBlockIfNeeded(n, wireBetween, v, bcByName, cfg); err != nil {
			return nil, err
		}
	}

	// Build junction blocks.
	for _, j := range cfg.Junctions {
		jb, wires, err := buildJunction(j, vesselByID, wireBetween)
		if err != nil {
			return nil, err
		}
		n.blockWires[jb.Name()] = wires
		n.Blocks = append(n.Blocks, jb)
	}

	if err := assignDOFs(n); err != nil {
		return nil, err
	}
	return n, nil
}

func resolveInletPeer(v config.Vessel, bcByName map[string]config.BoundaryCondition, inletJunctionOf map[int]config.Junction) (string, error) {
	if v.BoundaryConditions != nil && v.BoundaryConditions.Inlet != "" {
		if _, ok := bcByName[v.BoundaryConditions.Inlet]; !ok {
			return "", zderr.NewConfigError(fmt.Sprintf("vessels[%s].boundary_conditions.inlet", v.VesselName),
				"unknown boundary condition %q", v.BoundaryConditions.Inlet)
		}
		return v.BoundaryConditions.Inlet, nil
	}
	if j, ok := inletJunctionOf[v.VesselID]; ok {
		return j.JunctionName, nil
	}
	return "", zderr.NewConfigError(fmt.Sprintf("vessels[%s]", v.VesselName), "no inlet connection (neither a boundary condition nor a junction)")
}

func resolveOutletPeer(v config.Vessel, bcByName map[string]config.BoundaryCondition, outletJunctionOf map[int]config.Junction) (string, error) {
	if v.BoundaryConditions != nil && v.BoundaryConditions.Outlet != "" {
		if _, ok := bcByName[v.BoundaryConditions.Outlet]; !ok {
			return "", zderr.NewConfigError(fmt.Sprintf("vessels[%s].boundary_conditions.outlet", v.VesselName),
				"unknown boundary condition %q", v.BoundaryConditions.Outlet)
		}
		return v.BoundaryConditions.Outlet, nil
	}
	if j, ok := outletJunctionOf[v.VesselID]; ok {
		return j.JunctionName, nil
	}
	return "", zderr.NewConfigError(fmt.Sprintf("vessels[%s]", v.VesselName), "no outlet connection (neither a boundary condition nor a junction)")
}

// buildBoundaryBlockIfNeeded constructs the BC block(s) directly attached
// to this vessel's ports, the first time each named BC is encountered.
func buildBoundaryBlockIfNeeded(n *Network, wireBetween func(string, string) *Wire, v config.Vessel, bcByName map[string]config.BoundaryCondition, cfg *config.Config) error {
	if v.BoundaryConditions == nil {
		return nil
	}
	for _, bcName := range []string{v.BoundaryConditions.Inlet, v.BoundaryConditions.Outlet} {
		if bcName == "" {
			continue
		}
		if _, already := n.blockWires[bcName]; already {
			continue
		}
		bcCfg, ok := bcByName[bcName]
		if !ok {
			return zderr.NewConfigError("boundary_conditions", "unknown boundary condition %q", bcName)
		}
		isInlet := bcName == v.BoundaryConditions.Inlet
		var w *Wire
		if isInlet {
			w = wireBetween(bcName, v.VesselName)
		} else {
			w = wireBetween(v.VesselName, bcName)
		}
		dir := +1
		if isInlet {
			dir = -1
		}
		b, err := newBoundaryBlock(bcCfg, v.VesselName, dir)
		if err != nil {
			return err
		}
		n.blockWires[b.Name()] = []*Wire{w}
		n.Blocks = append(n.Blocks, b)
	}
	return nil
}

func newBoundaryBlock(bc config.BoundaryCondition, peer string, direction int) (block.Block, error) {
	wires := []block.WireRef{{Peer: peer, Direction: direction}}
	switch bc.BCType {
	case "FLOW":
		fn, err := buildFunc(bc.BCValues.T, bc.BCValues.Q)
		if err != nil {
			return nil, err
		}
		return &block.UnsteadyFlowRef{BlockName: bc.BCName, WireRefs: wires, Qfunc: fn}, nil
	case "PRESSURE":
		fn, err := buildFunc(bc.BCValues.T, bc.BCValues.P)
		if err != nil {
			return nil, err
		}
		return &block.UnsteadyPressureRef{BlockName: bc.BCName, WireRefs: wires, Pfunc: fn}, nil
	case "RESISTANCE":
		return &block.UnsteadyResistanceWithDistalPressure{
			BlockName: bc.BCName, WireRefs: wires,
			Rfunc:    bcvalue.NewConstant(bc.BCValues.R),
			Preffunc: bcvalue.NewConstant(bc.BCValues.Pd),
		}, nil
	case "RCR":
		return &block.UnsteadyRCRBlockWithDistalPressure{
			BlockName: bc.BCName, WireRefs: wires,
			Rp: bc.BCValues.Rp, C: bc.BCValues.Cp, Rd: bc.BCValues.Rd,
			Preffunc: bcvalue.NewConstant(bc.BCValues.Pd),
		}, nil
	case "CORONARY":
		pim, err := buildFunc(bc.BCValues.T, bc.BCValues.Pim)
		if err != nil {
			return nil, err
		}
		return &block.OpenLoopCoronaryWithDistalPressureBlock{
			BlockName: bc.BCName, WireRefs: wires,
			Ra1: bc.BCValues.Ra1, Ca: bc.BCValues.Ca, Ra2: bc.BCValues.Ra2,
			Cim: bc.BCValues.Cc, Rv: bc.BCValues.Rv1,
			Pimfunc: pim, Pvfunc: bcvalue.NewConstant(bc.BCValues.Pv),
		}, nil
	default:
		return nil, zderr.NewConfigError("boundary_conditions", "unknown bc_type %q", bc.BCType)
	}
}

// buildFunc returns a Constant when fewer than 3 knots are given (spec §9:
// "two equal knots collapse to a constant"), otherwise a periodic cubic
// spline, after checking the closed-loop convention values[0]==values[-1].
func buildFunc(t, v []float64) (bcvalue.Func, error) {
	if len(v) == 0 {
		return bcvalue.NewConstant(0), nil
	}
	if len(t) < 3 || len(v) < 3 {
		return bcvalue.NewConstant(v[0]), nil
	}
	if v[0] != v[len(v)-1] {
		return nil, zderr.NewConfigError("bc_values", "periodic table must have values[0] == values[-1], got %g and %g", v[0], v[len(v)-1])
	}
	return bcvalue.NewPeriodicCubicSpline(t, v), nil
}

func buildJunction(j config.Junction, vesselByID map[int]config.Vessel, wireBetween func(string, string) *Wire) (block.Block, []*Wire, error) {
	var refs []block.WireRef
	var wires []*Wire
	for _, id := range j.InletVessels {
		v, ok := vesselByID[id]
		if !ok {
			return nil, nil, zderr.NewConfigError(fmt.Sprintf("junctions[%s]", j.JunctionName), "unknown inlet vessel id %d", id)
		}
		w := wireBetween(v.VesselName, j.JunctionName)
		wires = append(wires, w)
		refs = append(refs, block.WireRef{Peer: v.VesselName, Direction: +1})
	}
	for _, id := range j.OutletVessels {
		v, ok := vesselByID[id]
		if !ok {
			return nil, nil, zderr.NewConfigError(fmt.Sprintf("junctions[%s]", j.JunctionName), "unknown outlet vessel id %d", id)
		}
		w := wireBetween(j.JunctionName, v.VesselName)
		wires = append(wires, w)
		refs = append(refs, block.WireRef{Peer: v.VesselName, Direction: -1})
	}

	switch j.JunctionType {
	case "NORMAL_JUNCTION", "internal_junction":
		return &block.InternalJunction{BlockName: j.JunctionName, WireRefs: refs}, wires, nil
	case "BloodVesselJunction":
		var r []float64
		if j.JunctionValues != nil {
			r = j.JunctionValues.R
		}
		return &block.BloodVesselJunction{BlockName: j.JunctionName, WireRefs: refs, R: r}, wires, nil
	default:
		return nil, nil, zderr.NewConfigError(fmt.Sprintf("junctions[%s].junction_type", j.JunctionName), "unknown junction type %q", j.JunctionType)
	}
}

// assignDOFs walks blocks in declaration order, assigning two consecutive
// indices (P then Q) to each not-yet-assigned wire, then appends internal
// variable DOFs per block (spec §4.2).
func assignDOFs(n *Network) error {
	next := 0
	assigned := map[*Wire]bool{}
	for _, b := range n.Blocks {
		wires := n.blockWires[b.Name()]
		cols := make([]int, 2*len(wires)+b.NumInternalVars())
		for i, w := range wires {
			if !assigned[w] {
				w.PIdx = next
				w.QIdx = next + 1
				next += 2
				n.VarNames = append(n.VarNames, w.PName(), w.QName())
				assigned[w] = true
			}
			cols[2*i] = w.PIdx
			cols[2*i+1] = w.QIdx
		}
		for k := 0; k < b.NumInternalVars(); k++ {
			cols[2*len(wires)+k] = next
			n.VarNames = append(n.VarNames, fmt.Sprintf("var_%d_%s", k, b.Name()))
			next++
		}
		n.Cols[b.Name()] = cols
	}

	rowOffset := 0
	for _, b := range n.Blocks {
		n.RowOffset[b.Name()] = rowOffset
		rowOffset += b.NumEquations()
	}
	n.NEq = next
	if rowOffset != next {
		return zderr.NewConfigError("network", "assembled equation count %d does not match DOF count %d", rowOffset, next)
	}
	return nil
}
