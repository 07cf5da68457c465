// Package config loads the run configuration of qwell.
//
// Sources, highest precedence first:
//
//	– command-line flags registered with BindFlags (only when set),
//	– environment variables QWELL_<SECTION>_<KEY>, e.g. QWELL_MESH_ELEMENTS,
//	– a YAML, TOML or JSON file passed to Load,
//	– Default().
//
// Errors (sentinel):
//
//	– ErrRead        if the config file cannot be read or parsed.
//	– ErrMeshKind    for an unknown mesh kind.
//	– ErrElements    for a non-positive element count.
//	– ErrDegree      for a degree outside {1, 2}.
//	– ErrHeight      for a negative or non-finite strip height.
//	– ErrBackend     for an unregistered eigen backend.
//	– ErrSpectrum    for an unknown spectrum.
//	– ErrSamples     for a non-positive sample count.
//	– ErrLogLevel    for an unknown log level.
//	– ErrSweep       for a non-positive sweep width or worker count.
//
// Geometry errors come from package geometry unchanged.
package config

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/katalvlaran/qwell/eigen"
	"github.com/katalvlaran/qwell/geometry"
	"github.com/katalvlaran/qwell/matrix"
	"github.com/katalvlaran/qwell/mesh"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "QWELL"

// Sentinel errors.
var (
	ErrRead     = errors.New("config: cannot read config file")
	ErrMeshKind = errors.New("config: mesh.kind must be interval or strip")
	ErrElements = errors.New("config: element counts must be >= 1")
	ErrDegree   = errors.New("config: mesh.degree must be 1 or 2")
	ErrHeight   = errors.New("config: mesh.height must be finite and >= 0")
	ErrBackend  = errors.New("config: unknown solver.backend")
	ErrSpectrum = errors.New("config: unknown solver.spectrum")
	ErrSolver   = errors.New("config: solver.tol and solver.max_sweeps must be > 0")
	ErrSamples  = errors.New("config: output.samples must be >= 1")
	ErrLogLevel = errors.New("config: unknown log_level")
	ErrSweep    = errors.New("config: sweep widths and workers must be > 0")
)

// Mesh selects the discretization.
type Mesh struct {
	Kind          string  `mapstructure:"kind"`           // interval | strip
	Elements      int     `mapstructure:"elements"`       // cells along x
	CrossElements int     `mapstructure:"cross_elements"` // cells along the periodic y axis (strip)
	Height        float64 `mapstructure:"height"`         // strip height in Å; 0 means one cell width
	Degree        int     `mapstructure:"degree"`         // Lagrange degree
}

// Solver configures package eigen.
type Solver struct {
	Backend   string  `mapstructure:"backend"`
	Spectrum  string  `mapstructure:"spectrum"`
	Tol       float64 `mapstructure:"tol"`
	MaxSweeps int     `mapstructure:"max_sweeps"`

	// RequireCPU names host features the backend must run with, e.g. avx2.
	RequireCPU []string `mapstructure:"require_cpu"`
}

// Output selects the artefacts written after a run. Empty paths disable them.
type Output struct {
	Dir     string `mapstructure:"dir"`     // directory for plots
	Plots   bool   `mapstructure:"plots"`   // write mesh.png and psi_<k>.png
	XLSX    string `mapstructure:"xlsx"`    // workbook path
	TSV     string `mapstructure:"tsv"`     // wavefunction table path
	Samples int    `mapstructure:"samples"` // points per wavefunction
}

// Sweep re-runs the pipeline for each well width.
type Sweep struct {
	Widths  []float64 `mapstructure:"widths"`
	Workers int       `mapstructure:"workers"`
}

// Config is the full run configuration.
type Config struct {
	Geometry geometry.Params      `mapstructure:"geometry"`
	Layers   []geometry.LayerSpec `mapstructure:"layers"` // overrides Geometry when non-empty
	Mesh     Mesh                 `mapstructure:"mesh"`
	Solver   Solver               `mapstructure:"solver"`
	Output   Output               `mapstructure:"output"`
	Sweep    Sweep                `mapstructure:"sweep"`
	LogLevel string               `mapstructure:"log_level"`
}

// Default returns the reference run: the default finite well on a thin
// periodic strip of 20 P1 cells, solved with LAPACK.
func Default() Config {
	return Config{
		Geometry: geometry.DefaultParams(),
		Mesh: Mesh{
			Kind:          mesh.Strip.String(),
			Elements:      20,
			CrossElements: 1,
			Degree:        1,
		},
		Solver: Solver{
			Backend:   eigen.BackendLAPACK,
			Spectrum:  string(eigen.SmallestMagnitude),
			Tol:       matrix.DefaultJacobiTol,
			MaxSweeps: matrix.DefaultJacobiMaxSweeps,
		},
		Output: Output{
			Dir:     ".",
			Samples: 400,
		},
		Sweep:    Sweep{Workers: 4},
		LogLevel: "info",
	}
}

// defaults flattens Default() into viper keys; every key must be known to
// viper for AutomaticEnv to reach it during Unmarshal.
func defaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("geometry.well_width", d.Geometry.WellWidth)
	v.SetDefault("geometry.barrier_width", d.Geometry.BarrierWidth)
	v.SetDefault("geometry.well_potential", d.Geometry.WellPotential)
	v.SetDefault("geometry.barrier_height", d.Geometry.BarrierHeight)
	v.SetDefault("geometry.well_mass", d.Geometry.WellMass)
	v.SetDefault("geometry.barrier_mass", d.Geometry.BarrierMass)
	v.SetDefault("geometry.hb2m", d.Geometry.Hb2m)
	v.SetDefault("layers", []map[string]any{})
	v.SetDefault("mesh.kind", d.Mesh.Kind)
	v.SetDefault("mesh.elements", d.Mesh.Elements)
	v.SetDefault("mesh.cross_elements", d.Mesh.CrossElements)
	v.SetDefault("mesh.height", d.Mesh.Height)
	v.SetDefault("mesh.degree", d.Mesh.Degree)
	v.SetDefault("solver.backend", d.Solver.Backend)
	v.SetDefault("solver.spectrum", d.Solver.Spectrum)
	v.SetDefault("solver.tol", d.Solver.Tol)
	v.SetDefault("solver.max_sweeps", d.Solver.MaxSweeps)
	v.SetDefault("solver.require_cpu", []string{})
	v.SetDefault("output.dir", d.Output.Dir)
	v.SetDefault("output.plots", d.Output.Plots)
	v.SetDefault("output.xlsx", d.Output.XLSX)
	v.SetDefault("output.tsv", d.Output.TSV)
	v.SetDefault("output.samples", d.Output.Samples)
	v.SetDefault("sweep.widths", []float64{})
	v.SetDefault("sweep.workers", d.Sweep.Workers)
	v.SetDefault("log_level", d.LogLevel)
}

// Load merges defaults, the optional file at path, QWELL_* environment
// variables and the changed flags of fs (may be nil), then validates.
func Load(path string, fs *pflag.FlagSet) (Config, error) {
	v := viper.New()
	defaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("%w: %w", ErrRead, err)
		}
	}
	if fs != nil {
		for name, key := range flagKeys {
			if f := fs.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return Config{}, err
				}
			}
		}
		// viper renders slice flags other than string/int as "[a,b]"; set the values directly.
		if f := fs.Lookup(flagSweep); f != nil && f.Changed {
			widths, err := fs.GetFloat64Slice(flagSweep)
			if err != nil {
				return Config{}, err
			}
			v.Set("sweep.widths", widths)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("%w: %w", ErrRead, err)
	}

	return c, c.Validate()
}

// Structure builds the layer stack: Layers when given, else the finite well.
func (c Config) Structure() (*geometry.Structure, error) {
	if len(c.Layers) > 0 {
		return geometry.NewStructure(c.Layers, c.Geometry.Hb2m)
	}

	return geometry.NewFiniteWell(c.Geometry)
}

// Validate checks every section and returns the first violation.
func (c Config) Validate() error {
	if _, err := c.Structure(); err != nil {
		return err
	}
	if _, err := mesh.ParseKind(c.Mesh.Kind); err != nil {
		return fmt.Errorf("%w: %w", ErrMeshKind, err)
	}
	if c.Mesh.Elements < 1 || c.Mesh.CrossElements < 1 {
		return fmt.Errorf("elements=%d cross_elements=%d: %w", c.Mesh.Elements, c.Mesh.CrossElements, ErrElements)
	}
	if c.Mesh.Degree != 1 && c.Mesh.Degree != 2 {
		return fmt.Errorf("degree=%d: %w", c.Mesh.Degree, ErrDegree)
	}
	if c.Mesh.Height < 0 || math.IsNaN(c.Mesh.Height) || math.IsInf(c.Mesh.Height, 0) {
		return fmt.Errorf("height=%g: %w", c.Mesh.Height, ErrHeight)
	}
	if !slices.Contains(eigen.Backends(), c.Solver.Backend) {
		return fmt.Errorf("%q: %w", c.Solver.Backend, ErrBackend)
	}
	if _, err := eigen.ParseSpectrum(c.Solver.Spectrum); err != nil {
		return fmt.Errorf("%w: %w", ErrSpectrum, err)
	}
	if !(c.Solver.Tol > 0) || math.IsInf(c.Solver.Tol, 0) || c.Solver.MaxSweeps < 1 {
		return ErrSolver
	}
	if c.Output.Samples < 1 {
		return fmt.Errorf("samples=%d: %w", c.Output.Samples, ErrSamples)
	}
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%q: %w", c.LogLevel, ErrLogLevel)
	}
	if c.Sweep.Workers < 1 {
		return fmt.Errorf("workers=%d: %w", c.Sweep.Workers, ErrSweep)
	}
	for _, w := range c.Sweep.Widths {
		if !(w > 0) {
			return fmt.Errorf("width=%g: %w", w, ErrSweep)
		}
	}

	return nil
}

// Level returns the parsed log level; Validate guarantees it parses.
func (c Config) Level() log.Level {
	l, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		return log.InfoLevel
	}

	return l
}

// StripHeight returns the strip height: Mesh.Height, or one cell width
// Total/Elements when unset.
func (c Config) StripHeight(total float64) float64 {
	if c.Mesh.Height > 0 {
		return c.Mesh.Height
	}

	return total / float64(c.Mesh.Elements)
}

// Requirement is what the pipeline needs from the configured backend.
func (c Config) Requirement() eigen.Requirement {
	return eigen.Requirement{
		Symmetric:   true,
		Generalized: true,
		Spectrum:    eigen.Spectrum(c.Solver.Spectrum),
		CPU:         c.Solver.RequireCPU,
	}
}

// EigenOptions converts the solver section into eigen options.
func (c Config) EigenOptions() []eigen.Option {
	return []eigen.Option{
		eigen.WithBackend(c.Solver.Backend),
		eigen.WithSpectrum(eigen.Spectrum(c.Solver.Spectrum)),
		eigen.WithTolerance(c.Solver.Tol),
		eigen.WithMaxSweeps(c.Solver.MaxSweeps),
	}
}
