// Package config loads and validates the JSON simulation input (spec §6):
// simulation_parameters, vessels, junctions and boundary_conditions. The
// struct-tag JSON style mirrors gofem's inp.Data / inp.SolverData.
package config

import (
	"encoding/json"
	"fmt"
	"io/ioutil"
	"math"

	"github.com/StanfordCBCL/svZeroDPlus/zderr"
)

// SimulationParameters controls the time grid and the steady-IC prelude.
type SimulationParameters struct {
	NumberOfCardiacCycles            int      `json:"number_of_cardiac_cycles"`
	NumberOfTimePtsPerCardiacCycle   int      `json:"number_of_time_pts_per_cardiac_cycle"`
	CardiacCyclePeriod               *float64 `json:"cardiac_cycle_period,omitempty"`
}

// VesselValues carries the R/C/L/stenosis parameters of a BloodVessel block.
type VesselValues struct {
	R float64 `json:"R_poiseuille"`
	C float64 `json:"C"`
	L float64 `json:"L"`
	Stenosis float64 `json:"stenosis_coefficient"`
}

// Vessel is one `zero_d_element_type: "BloodVessel"` entry.
type Vessel struct {
	VesselID        int          `json:"vessel_id"`
	VesselName      string       `json:"vessel_name"`
	VesselLength    float64      `json:"vessel_length"`
	ElementType     string       `json:"zero_d_element_type"`
	ElementValues   VesselValues `json:"zero_d_element_values"`
	BoundaryConditions *VesselBCRefs `json:"boundary_conditions,omitempty"`
}

// VesselBCRefs names the inlet/outlet BC attached directly to a vessel
// (as opposed to one attached at a junction).
type VesselBCRefs struct {
	Inlet  string `json:"inlet,omitempty"`
	Outlet string `json:"outlet,omitempty"`
}

// JunctionValues carries the optional per-branch Poiseuille loss
// coefficients for a BloodVesselJunction (spec §3); absent for
// NORMAL_JUNCTION / internal_junction.
type JunctionValues struct {
	R []float64 `json:"R,omitempty"`
}

// Junction is a NORMAL_JUNCTION / internal_junction / BloodVesselJunction entry.
type Junction struct {
	JunctionName   string          `json:"junction_name"`
	JunctionType   string          `json:"junction_type"`
	InletVessels   []int           `json:"inlet_vessels"`
	OutletVessels  []int           `json:"outlet_vessels"`
	JunctionValues *JunctionValues `json:"junction_values,omitempty"`
}

// BCValues is the union of every BC type's value fields; only the fields
// relevant to BCType are populated by the input file.
type BCValues struct {
	// FLOW / PRESSURE table BCs.
	Q []float64 `json:"Q,omitempty"`
	P []float64 `json:"P,omitempty"`
	T []float64 `json:"t,omitempty"`

	// RESISTANCE
	R  float64 `json:"R,omitempty"`
	Pd float64 `json:"Pd,omitempty"`

	// RCR
	Rp float64 `json:"Rp,omitempty"`
	Cp float64 `json:"C,omitempty"`
	Rd float64 `json:"Rd,omitempty"`

	// CORONARY (open-loop, Kim model)
	Ra1 float64   `json:"Ra1,omitempty"`
	Ca  float64   `json:"Ca,omitempty"`
	Ra2 float64   `json:"Ra2,omitempty"`
	Cc  float64   `json:"Cc,omitempty"`
	Rv1 float64   `json:"Rv1,omitempty"`
	Pim []float64 `json:"Pim,omitempty"`
	Pv  float64   `json:"Pv,omitempty"`
}

// BoundaryCondition is one entry of the top-level boundary_conditions list.
type BoundaryCondition struct {
	BCName   string   `json:"bc_name"`
	BCType   string   `json:"bc_type"`
	BCValues BCValues `json:"bc_values"`
}

// Config is the fully parsed simulation input file.
type Config struct {
	SimulationParameters SimulationParameters `json:"simulation_parameters"`
	Vessels              []Vessel             `json:"vessels"`
	Junctions            []Junction           `json:"junctions"`
	BoundaryConditions   []BoundaryCondition  `json:"boundary_conditions"`

	// UseSteadyIC mirrors the --useSteadyIC CLI flag. It is not read from
	// the JSON input; main sets it from the flag before calling Validate.
	UseSteadyIC bool `json:"-"`
}

// Load reads and validates a simulation input file from path.
func Load(path string) (*Config, error) {
	raw, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, zderr.NewIOError(path, "reading config file: %v", err)
	}
	var cfg Config
	if err := json.Unmarshal(raw, &cfg); err != nil {
		return nil, zderr.NewIOError(path, "parsing JSON: %v", err)
	}
	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the cardiac-cycle period rule (§6), the UseSteadyIC
// restriction (§9 Open Question), and basic structural sanity.
func Validate(cfg *Config) error {
	sp := cfg.SimulationParameters
	if sp.NumberOfCardiacCycles <= 0 {
		return zderr.NewConfigError("simulation_parameters.number_of_cardiac_cycles", "must be positive, got %d", sp.NumberOfCardiacCycles)
	}
	if sp.NumberOfTimePtsPerCardiacCycle < 2 {
		return zderr.NewConfigError("simulation_parameters.number_of_time_pts_per_cardiac_cycle", "must be >= 2, got %d", sp.NumberOfTimePtsPerCardiacCycle)
	}

	period := sp.CardiacCyclePeriod
	for _, bc := range cfg.BoundaryConditions {
		if len(bc.BCValues.T) < 2 {
			continue
		}
		for i := 1; i < len(bc.BCValues.T); i++ {
			if bc.BCValues.T[i] <= bc.BCValues.T[i-1] {
				return zderr.NewConfigError(fmt.Sprintf("boundary_conditions[%s].bc_values.t", bc.BCName),
					"time samples must be strictly increasing")
			}
		}
		span := bc.BCValues.T[len(bc.BCValues.T)-1] - bc.BCValues.T[0]
		if period == nil {
			p := span
			period = &p
		} else if math.Abs(span-*period) > 1e-9 {
			return zderr.NewConfigError(fmt.Sprintf("boundary_conditions[%s]", bc.BCName),
				"time-series span %g does not match cardiac_cycle_period %g", span, *period)
		}
	}
	if period == nil {
		return zderr.NewConfigError("simulation_parameters.cardiac_cycle_period",
			"no value provided and no time-series boundary condition to derive it from")
	}
	cfg.SimulationParameters.CardiacCyclePeriod = period

	if cfg.UseSteadyIC {
		for _, bc := range cfg.BoundaryConditions {
			switch bc.BCType {
			case "RESISTANCE", "RCR", "FLOW", "PRESSURE", "CORONARY":
			default:
				return zderr.NewConfigError("simulation_parameters.use_steady_ic",
					"UseSteadyIC is incompatible with custom boundary condition type %q", bc.BCType)
			}
		}
	}
	return nil
}

// DT returns the fixed time step implied by the schema (spec §6).
func (c *Config) DT() float64 {
	n := c.SimulationParameters.NumberOfTimePtsPerCardiacCycle
	return *c.SimulationParameters.CardiacCyclePeriod / float64(n-1)
}

// TotalSteps returns the number of saved time points across the whole run.
func (c *Config) TotalSteps() int {
	n := c.SimulationParameters.NumberOfTimePtsPerCardiacCycle
	cycles := c.SimulationParameters.NumberOfCardiacCycles
	return (n-1)*cycles + 1
}
