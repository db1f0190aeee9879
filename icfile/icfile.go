// Package icfile persists and reloads the initial-condition vectors as a
// small JSON document — the Go-idiomatic stand-in for the .npy-based IC
// file spec §6 describes, with the same reindex-by-name-on-load contract.
package icfile

import (
	"encoding/json"
	"io/ioutil"

	"github.com/StanfordCBCL/svZeroDPlus/zderr"
)

// ICs is the on-disk shape: {"y": [...], "ydot": [...], "var_name_list": [...]}.
type ICs struct {
	Y           []float64 `json:"y"`
	Ydot        []float64 `json:"ydot"`
	VarNameList []string  `json:"var_name_list"`
}

// Save writes y, ydot and their DOF names to path as JSON.
func Save(path string, y, ydot []float64, varNames []string) error {
	ics := ICs{Y: y, Ydot: ydot, VarNameList: varNames}
	raw, err := json.MarshalIndent(ics, "", "  ")
	if err != nil {
		return zderr.NewIOError(path, "encoding IC file: %v", err)
	}
	if err := ioutil.WriteFile(path, raw, 0644); err != nil {
		return zderr.NewIOError(path, "writing IC file: %v", err)
	}
	return nil
}

// Load reads an IC file and reindexes it onto the current run's DOF name
// order. Any current DOF name absent from the file defaults to zero; in
// strict mode that is instead a fatal IOError (spec §6).
func Load(path string, varNames []string, strict bool) (y, ydot []float64, err error) {
	raw, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, nil, zderr.NewIOError(path, "reading IC file: %v", err)
	}
	var ics ICs
	if err := json.Unmarshal(raw, &ics); err != nil {
		return nil, nil, zderr.NewIOError(path, "parsing IC file: %v", err)
	}

	idx := map[string]int{}
	for i, name := range ics.VarNameList {
		idx[name] = i
	}

	y = make([]float64, len(varNames))
	ydot = make([]float64, len(varNames))
	for i, name := range varNames {
		src, ok := idx[name]
		if !ok {
			if strict {
				return nil, nil, zderr.NewIOError(path, "DOF %q not present in IC file (strict mode)", name)
			}
			continue
		}
		y[i] = ics.Y[src]
		ydot[i] = ics.Ydot[src]
	}
	return y, ydot, nil
}
