package config

import (
	"github.com/spf13/pflag"
)

// FlagConfig is the name of the config-file flag; it is not bound to a key.
const FlagConfig = "config"

const flagSweep = "sweep"

// flagKeys maps flag names onto viper keys. The sweep flag is applied by Load.
var flagKeys = map[string]string{
	"well-width":     "geometry.well_width",
	"barrier-width":  "geometry.barrier_width",
	"barrier-height": "geometry.barrier_height",
	"mesh":           "mesh.kind",
	"elements":       "mesh.elements",
	"cross-elements": "mesh.cross_elements",
	"height":         "mesh.height",
	"degree":         "mesh.degree",
	"backend":        "solver.backend",
	"spectrum":       "solver.spectrum",
	"require-cpu":    "solver.require_cpu",
	"out":            "output.dir",
	"plots":          "output.plots",
	"xlsx":           "output.xlsx",
	"tsv":            "output.tsv",
	"samples":        "output.samples",
	"workers":        "sweep.workers",
	"log-level":      "log_level",
}

// BindFlags registers every command-line flag on fs with Default() values.
// Pass fs to Load after parsing.
func BindFlags(fs *pflag.FlagSet) {
	d := Default()
	fs.String(FlagConfig, "", "config file (yaml, toml or json)")
	fs.Float64("well-width", d.Geometry.WellWidth, "well thickness in Å")
	fs.Float64("barrier-width", d.Geometry.BarrierWidth, "barrier thickness in Å")
	fs.Float64("barrier-height", d.Geometry.BarrierHeight, "barrier potential in eV")
	fs.String("mesh", d.Mesh.Kind, "mesh kind: interval or strip")
	fs.Int("elements", d.Mesh.Elements, "cells along the growth axis")
	fs.Int("cross-elements", d.Mesh.CrossElements, "cells along the periodic axis (strip)")
	fs.Float64("height", d.Mesh.Height, "strip height in Å (0: one cell width)")
	fs.Int("degree", d.Mesh.Degree, "Lagrange degree (1 or 2)")
	fs.String("backend", d.Solver.Backend, "eigen backend: jacobi or lapack")
	fs.String("spectrum", d.Solver.Spectrum, "eigenpair order: smallest-magnitude or smallest-real")
	fs.StringSlice("require-cpu", nil, "host features the backend must use, e.g. avx2,fma")
	fs.String("out", d.Output.Dir, "output directory for plots")
	fs.Bool("plots", d.Output.Plots, "write mesh.png and psi_<k>.png")
	fs.String("xlsx", d.Output.XLSX, "write an XLSX report to this path")
	fs.String("tsv", d.Output.TSV, "write sampled wavefunctions as TSV to this path")
	fs.Int("samples", d.Output.Samples, "sample points per wavefunction")
	fs.Float64Slice(flagSweep, nil, "well widths in Å to sweep, e.g. 40,60,80")
	fs.Int("workers", d.Sweep.Workers, "concurrent sweep runs")
	fs.String("log-level", d.LogLevel, "debug, info, warn or error")
}
