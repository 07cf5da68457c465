// Package report renders the outcome of a bound-state computation: console
// lines, PNG plots of the mesh and of every wavefunction, an XLSX workbook
// and a TSV table of sampled wavefunctions.
package report

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/katalvlaran/qwell/boundstate"
)

// Sentinel errors.
var (
	// ErrEmptyPath indicates an empty output path or directory.
	ErrEmptyPath = errors.New("report: empty output path")

	// ErrNoSamples indicates a non-positive sample count.
	ErrNoSamples = errors.New("report: sample count must be positive")
)

// ComputingLine is printed once before the eigen solve.
const ComputingLine = "Computing eigenvalue decomposition. This may take a while."

// Console writes the human-readable result lines.
type Console struct {
	W io.Writer
}

// Computing prints ComputingLine.
func (c Console) Computing() error {
	_, err := fmt.Fprintln(c.W, ComputingLine)

	return err
}

// States prints one E[k]=value line per state, in order.
func (c Console) States(states []boundstate.State) error {
	for k, s := range states {
		if _, err := fmt.Fprintf(c.W, "E[%d]=%s\n", k, FormatEnergy(s.Energy)); err != nil {
			return err
		}
	}

	return nil
}

// Sweep prints one line per well width: W=<width> followed by its E[k]=value pairs.
func (c Console) Sweep(width float64, energies []float64) error {
	var b strings.Builder
	b.WriteString("W=" + strconv.FormatFloat(width, 'g', -1, 64))
	for k, e := range energies {
		fmt.Fprintf(&b, " E[%d]=%s", k, FormatEnergy(e))
	}
	_, err := fmt.Fprintln(c.W, b.String())

	return err
}

// FormatEnergy renders e with 12 significant digits.
func FormatEnergy(e float64) string { return strconv.FormatFloat(e, 'g', 12, 64) }
