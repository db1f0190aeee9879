package result

import (
	"regexp"
	"sort"
	"strconv"

	"github.com/StanfordCBCL/svZeroDPlus/genalpha"
	"github.com/StanfordCBCL/svZeroDPlus/network"
	"github.com/StanfordCBCL/svZeroDPlus/zderr"
)

var branchSegName = regexp.MustCompile(`^branch(\d+)_seg(\d+)$`)

// BranchTrajectory holds one branch's P/Q history, each of shape
// (num_nodes, num_time_points): node s+1 is the outlet of segment s, node 0
// is the branch inlet (spec §4.6).
type BranchTrajectory struct {
	P [][]float64
	Q [][]float64
}

// BranchResult is the per-branch centerline view of a trajectory.
type BranchResult struct {
	Times    []float64
	Branches map[int]*BranchTrajectory
}

// Branch folds wire trajectories onto centerline branch topology using
// vessel names of the form branch<b>_seg<s> (spec §4.6). Vessels whose name
// does not match that pattern are skipped; they have no centerline home.
func Branch(net *network.Network, traj *genalpha.Trajectory) (*BranchResult, error) {
	colOf := map[string]int{}
	for i, name := range traj.VarNames {
		colOf[name] = i
	}

	type seg struct {
		idx      int
		vesselID string
	}
	segsByBranch := map[int][]seg{}
	for _, b := range net.Blocks {
		m := branchSegName.FindStringSubmatch(b.Name())
		if m == nil {
			continue
		}
		branchNum, _ := strconv.Atoi(m[1])
		segNum, _ := strconv.Atoi(m[2])
		segsByBranch[branchNum] = append(segsByBranch[branchNum], seg{idx: segNum, vesselID: b.Name()})
	}

	nTime := len(traj.Times)
	out := &BranchResult{
		Times:    append([]float64(nil), traj.Times...),
		Branches: map[int]*BranchTrajectory{},
	}

	for branchNum, segs := range segsByBranch {
		sort.Slice(segs, func(i, j int) bool { return segs[i].idx < segs[j].idx })
		for i, s := range segs {
			if s.idx != i {
				return nil, zderr.NewPostprocessError("result.Branch",
					"branch %d is missing segment %d (found segments out of sequence)", branchNum, i)
			}
		}

		numNodes := len(segs) + 1
		bt := &BranchTrajectory{P: make([][]float64, numNodes), Q: make([][]float64, numNodes)}
		for i := range bt.P {
			bt.P[i] = make([]float64, nTime)
			bt.Q[i] = make([]float64, nTime)
		}

		wires := net.BlockWires(segs[0].vesselID)
		if len(wires) != 2 {
			return nil, zderr.NewPostprocessError("result.Branch", "vessel %q does not have exactly two wires", segs[0].vesselID)
		}
		inlet := wires[0]
		if err := fillNode(bt, 0, inlet.PName(), inlet.QName(), colOf, traj, nTime); err != nil {
			return nil, err
		}

		for i, s := range segs {
			w := net.BlockWires(s.vesselID)
			if len(w) != 2 {
				return nil, zderr.NewPostprocessError("result.Branch", "vessel %q does not have exactly two wires", s.vesselID)
			}
			outlet := w[1]
			if err := fillNode(bt, i+1, outlet.PName(), outlet.QName(), colOf, traj, nTime); err != nil {
				return nil, err
			}
		}
		out.Branches[branchNum] = bt
	}
	return out, nil
}

func fillNode(bt *BranchTrajectory, node int, pName, qName string, colOf map[string]int, traj *genalpha.Trajectory, nTime int) error {
	pCol, ok := colOf[pName]
	if !ok {
		return zderr.NewPostprocessError("result.Branch", "no trajectory for wire DOF %q", pName)
	}
	qCol, ok := colOf[qName]
	if !ok {
		return zderr.NewPostprocessError("result.Branch", "no trajectory for wire DOF %q", qName)
	}
	for t := 0; t < nTime; t++ {
		bt.P[node][t] = traj.Y[t][pCol]
		bt.Q[node][t] = traj.Y[t][qCol]
	}
	return nil
}
