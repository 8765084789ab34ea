/*
Copyright © 2020 NAME HERE <EMAIL ADDRESS>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/pkg/profile"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/notargets/gnuplot1d/DG1D"
	"github.com/notargets/gnuplot1d/InputParameters"
	"github.com/notargets/gnuplot1d/gnuplot"
	"github.com/notargets/gnuplot1d/sod_shock_tube"
	"github.com/notargets/gnuplot1d/utils"
)

// OneDCmd represents the 1D command
var OneDCmd = &cobra.Command{
	Use:   "1D",
	Short: "Export the Sod shock tube solution on a 1D mesh to gnuplot",
	Long: `
Builds a one dimensional mesh, evaluates the exact Sod shock tube solution at its
vertices and writes a gnuplot script plus its data file.

gnuplot1d 1D -k 40 --refine 19,20 --grid --png -o sod.gp`,
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		var (
			ep *InputParameters.ExportParameters
		)
		fmt.Println("1D called")
		if ep, err = processInput(); err != nil {
			return
		}
		ep.Print()
		if viper.GetBool("profile") {
			defer profile.Start(profile.CPUProfile, profile.ProfilePath(filepath.Dir(ep.Output)), profile.Quiet).Stop()
		}
		level := slog.LevelInfo
		if viper.GetBool("verbose") {
			level = slog.LevelDebug
		}
		return Run1D(ep, utils.NewLogger(level))
	},
}

func init() {
	rootCmd.AddCommand(OneDCmd)
	var (
		ep = InputParameters.NewExportParameters()
	)
	OneDCmd.Flags().StringP("inputConditionsFile", "I", "", "YAML file of export parameters, overrides the flags")
	OneDCmd.Flags().StringP("output", "o", ep.Output, "script file name, data goes to <output>_data")
	OneDCmd.Flags().StringP("title", "t", ep.Title, "plot title")
	OneDCmd.Flags().BoolP("grid", "g", false, "tick every element boundary on x2 and draw a grid")
	OneDCmd.Flags().Bool("png", false, "render to <output>.png")
	OneDCmd.Flags().String("axesLimits", "", "gnuplot range written ahead of the data, e.g. [][0:1.1]")
	OneDCmd.Flags().Int("precision", 0, "significant digits in the output, 0 for the shortest exact form")
	OneDCmd.Flags().Float64("time", ep.Time, "solution time")
	OneDCmd.Flags().StringSlice("vars", ep.Variables, "variables to export, from rho,u,p,e")
	OneDCmd.Flags().IntP("k", "k", ep.Mesh.K, "Number of elements in mesh")
	OneDCmd.Flags().Float64("xMin", ep.Mesh.XMin, "left end of the domain")
	OneDCmd.Flags().Float64("xMax", ep.Mesh.XMax, "right end of the domain")
	OneDCmd.Flags().Bool("gll", false, "cluster the vertices at the Gauss-Lobatto points")
	OneDCmd.Flags().IntSlice("refine", nil, "elements to bisect, in order")
	OneDCmd.Flags().Int("levels", 0, "bisect every element this many times after --refine")
	OneDCmd.Flags().Int("np", ep.Ranks, "number of ranks taking part in the export")
	OneDCmd.Flags().Bool("profile", false, "write a CPU profile next to the output")
	OneDCmd.Flags().BoolP("verbose", "v", false, "debug logging")
	if err := viper.BindPFlags(OneDCmd.Flags()); err != nil {
		panic(err)
	}
}

func processInput() (ep *InputParameters.ExportParameters, err error) {
	ep = InputParameters.NewExportParameters()
	ep.Output = viper.GetString("output")
	ep.Title = viper.GetString("title")
	ep.Grid = viper.GetBool("grid")
	ep.PNGOutput = viper.GetBool("png")
	ep.AxesLimits = viper.GetString("axesLimits")
	ep.Precision = viper.GetInt("precision")
	ep.Time = viper.GetFloat64("time")
	ep.Variables = viper.GetStringSlice("vars")
	ep.Ranks = viper.GetInt("np")
	ep.Mesh.K = viper.GetInt("k")
	ep.Mesh.XMin = viper.GetFloat64("xMin")
	ep.Mesh.XMax = viper.GetFloat64("xMax")
	if viper.GetBool("gll") {
		ep.Mesh.Spacing = "gll"
	}
	ep.Mesh.Refine = viper.GetIntSlice("refine")
	ep.Mesh.Levels = viper.GetInt("levels")
	if icFile := viper.GetString("inputConditionsFile"); len(icFile) != 0 {
		var data []byte
		if data, err = os.ReadFile(icFile); err != nil {
			return
		}
		if err = ep.Parse(data); err != nil {
			err = fmt.Errorf("parsing %s: %w", icFile, err)
			return
		}
	}
	err = ep.Validate()
	return
}

func NewMesh(mp InputParameters.MeshParameters) (m *DG1D.Mesh1D, err error) {
	var (
		VX   []float64
		EToV [][2]int
	)
	switch strings.ToLower(mp.Spacing) {
	case "gll":
		VX, EToV = DG1D.GLLMesh1D(mp.XMin, mp.XMax, mp.K)
	default:
		VX, EToV = DG1D.SimpleMesh1D(mp.XMin, mp.XMax, mp.K)
	}
	if m, err = DG1D.NewMesh1D(VX, EToV); err != nil {
		return
	}
	for _, k := range mp.Refine {
		if _, err = m.Refine(k); err != nil {
			return nil, err
		}
	}
	for level := 0; level < mp.Levels; level++ {
		if err = m.RefineAll(); err != nil {
			return nil, err
		}
	}
	return
}

// SodSolution lays out the selected fields per vertex, value[id*nVars + var]
func SodSolution(m *DG1D.Mesh1D, t float64, names []string) (soln []float64, err error) {
	var (
		Rho, U, P, E = sod_shock_tube.SodAt(t, m.VX)
		fields       = [][]float64{Rho, U, P, E}
		nVars        = len(names)
		idx          = make([]int, nVars)
	)
	for v, name := range names {
		if idx[v], err = InputParameters.VariableIndex(name); err != nil {
			return
		}
	}
	soln = make([]float64, m.NVertices()*nVars)
	for id := 0; id < m.NVertices(); id++ {
		for v := range names {
			soln[id*nVars+v] = fields[idx[v]][id]
		}
	}
	return
}

// Run1D exports from every rank of a fresh group, rank 0 writes the files
func Run1D(ep *InputParameters.ExportParameters, logger *slog.Logger) (err error) {
	var (
		m    *DG1D.Mesh1D
		soln []float64
	)
	if m, err = NewMesh(ep.Mesh); err != nil {
		return
	}
	if soln, err = SodSolution(m, ep.Time, ep.Variables); err != nil {
		return
	}
	var (
		opts = gnuplot.Options{
			Title:      ep.Title,
			Grid:       ep.Grid,
			PNGOutput:  ep.PNGOutput,
			AxesLimits: ep.AxesLimits,
			Precision:  ep.Precision,
			Logger:     logger,
		}
		g    = utils.NewGroup(ep.Ranks)
		errs = make([]error, ep.Ranks)
		wg   sync.WaitGroup
	)
	for n := 0; n < ep.Ranks; n++ {
		wg.Add(1)
		go func(rank int) {
			defer wg.Done()
			errs[rank] = gnuplot.Export(m.View(g.Comm(rank)), soln, ep.Variables, ep.Output, opts)
		}(n)
	}
	wg.Wait()
	logger.Debug("export finished", "ranks", ep.Ranks, utils.MemUsage())
	return errors.Join(errs...)
}
