package report

import (
	"encoding/csv"
	"fmt"
	"os"

	"github.com/xuri/excelize/v2"

	"github.com/katalvlaran/qwell/boundstate"
)

// Summary describes one run for the Summary sheet.
type Summary struct {
	Mesh     string  // interval | strip
	Elements int     // cells along x
	Degree   int     // Lagrange degree
	Dofs     int     // all dofs
	Free     int     // dofs after Dirichlet elimination
	Backend  string  // eigen backend
	Barrier  float64 // eV
	Pairs    int     // eigenpairs computed
	Elapsed  string  // wall time of the run
}

// Sheet names of the workbook.
const (
	SheetSummary       = "Summary"
	SheetEnergies      = "Energies"
	SheetWavefunctions = "Wavefunctions"
)

// Samples evaluates every state on the same samples+1 points along y=0.
// The returned rows are x followed by ψ_0(x) … ψ_n(x).
func Samples(states []boundstate.State, samples int) ([][]float64, error) {
	if samples < 1 {
		return nil, ErrNoSamples
	}
	if len(states) == 0 {
		return nil, nil
	}
	xs, _ := states[0].Psi.SampleX(samples)
	rows := make([][]float64, len(xs))
	for i, x := range xs {
		rows[i] = make([]float64, 1+len(states))
		rows[i][0] = x
	}
	for k, s := range states {
		_, vs := s.Psi.SampleX(samples)
		for i, v := range vs {
			rows[i][k+1] = v
		}
	}

	return rows, nil
}

// SaveXLSX writes the Summary, Energies and Wavefunctions sheets.
func SaveXLSX(filename string, sum Summary, states []boundstate.State, samples int) error {
	if filename == "" {
		return ErrEmptyPath
	}
	rows, err := Samples(states, samples)
	if err != nil {
		return err
	}

	f := excelize.NewFile()
	defer f.Close()

	if err = f.SetSheetName("Sheet1", SheetSummary); err != nil {
		return err
	}
	summary := [][2]any{
		{"Mesh", sum.Mesh},
		{"Elements", sum.Elements},
		{"Degree", sum.Degree},
		{"Dofs", sum.Dofs},
		{"Free dofs", sum.Free},
		{"Backend", sum.Backend},
		{"Barrier [eV]", sum.Barrier},
		{"Eigenpairs", sum.Pairs},
		{"Bound states", len(states)},
		{"Elapsed", sum.Elapsed},
	}
	for i, kv := range summary {
		if err = setRow(f, SheetSummary, i+1, kv[0], kv[1]); err != nil {
			return err
		}
	}

	if _, err = f.NewSheet(SheetEnergies); err != nil {
		return err
	}
	if err = setRow(f, SheetEnergies, 1, "k", "E [eV]", "parity", "index"); err != nil {
		return err
	}
	for k, s := range states {
		if err = setRow(f, SheetEnergies, k+2, k, s.Energy, s.Parity.String(), s.Index); err != nil {
			return err
		}
	}

	if _, err = f.NewSheet(SheetWavefunctions); err != nil {
		return err
	}
	header := []any{"x [Å]"}
	for k := range states {
		header = append(header, StateTitle(k))
	}
	if err = setRow(f, SheetWavefunctions, 1, header...); err != nil {
		return err
	}
	for i, r := range rows {
		vals := make([]any, len(r))
		for j, v := range r {
			vals[j] = v
		}
		if err = setRow(f, SheetWavefunctions, i+2, vals...); err != nil {
			return err
		}
	}

	return f.SaveAs(filename)
}

// setRow writes vals into consecutive columns of row, starting at A.
func setRow(f *excelize.File, sheet string, row int, vals ...any) error {
	for col, v := range vals {
		cell, err := excelize.CoordinatesToCellName(col+1, row)
		if err != nil {
			return err
		}
		if err = f.SetCellValue(sheet, cell, v); err != nil {
			return fmt.Errorf("%s!%s: %w", sheet, cell, err)
		}
	}

	return nil
}

// SaveTSV writes x and every ψ_k as tab-separated columns with a header row.
func SaveTSV(filename string, states []boundstate.State, samples int) error {
	if filename == "" {
		return ErrEmptyPath
	}
	rows, err := Samples(states, samples)
	if err != nil {
		return err
	}

	fp, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer fp.Close()

	w := csv.NewWriter(fp)
	w.Comma = '\t'

	header := []string{"x"}
	for k := range states {
		header = append(header, StateTitle(k))
	}
	if err = w.Write(header); err != nil {
		return err
	}
	rec := make([]string, len(header))
	for _, r := range rows {
		for j, v := range r {
			rec[j] = FormatEnergy(v)
		}
		if err = w.Write(rec); err != nil {
			return err
		}
	}

	w.Flush()
	if err = w.Error(); err != nil {
		return err
	}

	return fp.Close()
}
