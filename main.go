// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"encoding/json"
	"flag"
	"io/ioutil"
	"os"
	"strings"

	"github.com/cpmech/gosl/io"

	"github.com/StanfordCBCL/svZeroDPlus/assemble"
	"github.com/StanfordCBCL/svZeroDPlus/config"
	"github.com/StanfordCBCL/svZeroDPlus/genalpha"
	"github.com/StanfordCBCL/svZeroDPlus/icfile"
	"github.com/StanfordCBCL/svZeroDPlus/network"
	"github.com/StanfordCBCL/svZeroDPlus/result"
	"github.com/StanfordCBCL/svZeroDPlus/steady"
	"github.com/StanfordCBCL/svZeroDPlus/zderr"
)

func main() {
	returnLast := flag.Bool("returnLast", false, "only persist the last saved time point")
	saveAll := flag.Bool("saveAll", true, "write the <stem>_all_results.json file")
	saveBranch := flag.Bool("saveBranch", true, "write the <stem>_branch_results.json file")
	useICs := flag.Bool("useICs", false, "seed the run from a persisted IC file")
	icsPath := flag.String("ICsPath", "", "path to the IC file (with --useICs)")
	saveYydot := flag.Bool("saveYydot", false, "also persist the final (y, ydot) as an IC file")
	yydotPath := flag.String("yydotPath", "", "output path for the persisted IC file (with --saveYydot)")
	initialTime := flag.Float64("initialTime", 0, "simulation start time")
	useSteadyIC := flag.Bool("useSteadyIC", false, "run the steady-BC prelude to seed the initial condition")
	flag.Parse()

	if flag.NArg() < 1 {
		io.Pfred("svzerodplus: a simulation input file is required\n")
		os.Exit(1)
	}
	inputPath := flag.Arg(0)

	if err := run(inputPath, *initialTime, *returnLast, *saveAll, *saveBranch,
		*useICs, *icsPath, *saveYydot, *yydotPath, *useSteadyIC); err != nil {
		io.Pfred("svzerodplus: %v\n", err)
		os.Exit(1)
	}
}

func run(inputPath string, t0 float64, returnLast, saveAll, saveBranch bool,
	useICs bool, icsPath string, saveYydot bool, yydotPath string, useSteadyIC bool) error {

	cfg, err := config.Load(inputPath)
	if err != nil {
		return err
	}
	cfg.UseSteadyIC = useSteadyIC
	if err := config.Validate(cfg); err != nil {
		return err
	}

	net, err := network.Build(cfg)
	if err != nil {
		return err
	}

	y0 := make([]float64, net.NEq)
	ydot0 := make([]float64, net.NEq)

	switch {
	case useSteadyIC:
		io.Pf("> running steady-BC prelude\n")
		y0, ydot0, err = steady.Run(cfg)
		if err != nil {
			return err
		}
	case useICs:
		if icsPath == "" {
			return zderr.NewConfigError("--ICsPath", "required when --useICs is set")
		}
		y0, ydot0, err = icfile.Load(icsPath, net.VarNames, false)
		if err != nil {
			return err
		}
	}

	asm := assemble.New(net)
	asm.UpdateConstant()
	integ := genalpha.New(asm, 0.1, cfg.DT())

	io.Pf("> integrating %d steps\n", cfg.TotalSteps())
	traj, err := integ.Run(t0, y0, ydot0, cfg.TotalSteps())
	if err != nil {
		return err
	}
	io.PfGreen("> done\n")

	if returnLast {
		traj = result.LastCycle(traj, 1)
	}

	stem := strings.TrimSuffix(inputPath, ".json")

	if saveYydot {
		if yydotPath == "" {
			yydotPath = stem + "_ics.json"
		}
		lastY := traj.Y[len(traj.Y)-1]
		lastYdot := traj.Ydot[len(traj.Ydot)-1]
		if err := icfile.Save(yydotPath, lastY, lastYdot, traj.VarNames); err != nil {
			return err
		}
	}

	if saveAll {
		all, err := result.All(traj)
		if err != nil {
			return err
		}
		if err := writeJSON(stem+"_all_results.json", all); err != nil {
			return err
		}
	}

	if saveBranch {
		branch, err := result.Branch(net, traj)
		if err != nil {
			return err
		}
		if err := writeJSON(stem+"_branch_results.json", branch); err != nil {
			return err
		}
	}

	return nil
}

func writeJSON(path string, v interface{}) error {
	raw, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return zderr.NewIOError(path, "encoding result file: %v", err)
	}
	if err := ioutil.WriteFile(path, raw, 0644); err != nil {
		return zderr.NewIOError(path, "writing result file: %v", err)
	}
	return nil
}
