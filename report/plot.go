package report

import (
	"fmt"
	"image/color"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/katalvlaran/qwell/boundstate"
	"github.com/katalvlaran/qwell/mesh"
)

// Plot geometry.
const (
	plotWidth  = 8 * vg.Inch
	plotHeight = 4 * vg.Inch
)

// MeshFile is the mesh plot written by PlotAll.
const MeshFile = "mesh.png"

// StateFile returns the file name of the k-th wavefunction plot.
func StateFile(k int) string { return fmt.Sprintf("psi_%d.png", k) }

// StateTitle returns the plot title of the k-th wavefunction.
func StateTitle(k int) string { return fmt.Sprintf("Psi[%d]", k) }

// PlotMesh draws every cell of m coloured by its region tag. Interval cells
// are drawn as segments on y=0, strip cells as filled triangles.
// regions is the number of distinct tags (for the colour ramp).
func PlotMesh(path string, m *mesh.Mesh, regions int) error {
	if path == "" {
		return ErrEmptyPath
	}
	p := plot.New()
	p.Title.Text = fmt.Sprintf("%s mesh, %d cells", m.Kind, m.NumCells())
	p.X.Label.Text = "x (Å)"
	p.Y.Label.Text = "y (Å)"

	for c, vs := range m.Cells {
		pts := make(plotter.XYs, len(vs))
		for i, v := range vs {
			pts[i] = plotter.XY{X: m.Vertices[v].X, Y: m.Vertices[v].Y}
		}
		col := ramp(m.CellTags[c], regions)
		if m.Kind == mesh.Interval {
			l, err := plotter.NewLine(pts)
			if err != nil {
				return fmt.Errorf("cell %d: %w", c, err)
			}
			l.LineStyle.Color = col
			l.LineStyle.Width = vg.Points(3)
			p.Add(l)
			continue
		}
		poly, err := plotter.NewPolygon(pts)
		if err != nil {
			return fmt.Errorf("cell %d: %w", c, err)
		}
		poly.Color = col
		poly.LineStyle.Color = color.Black
		poly.LineStyle.Width = vg.Points(0.5)
		p.Add(poly)
	}

	verts := make(plotter.XYs, len(m.Vertices))
	for i, v := range m.Vertices {
		verts[i] = plotter.XY{X: v.X, Y: v.Y}
	}
	sc, err := plotter.NewScatter(verts)
	if err != nil {
		return err
	}
	sc.GlyphStyle.Radius = vg.Points(1.5)
	p.Add(sc)

	return p.Save(plotWidth, plotHeight, path)
}

// PlotState draws ψ(x) along y=0 with samples+1 points in colour col.
// Dashed grey verticals mark the layer interfaces.
func PlotState(path, title string, s boundstate.State, interfaces []float64, col color.Color, samples int) error {
	if path == "" {
		return ErrEmptyPath
	}
	if samples < 1 {
		return ErrNoSamples
	}
	xs, vs := s.Psi.SampleX(samples)
	pts := make(plotter.XYs, len(xs))
	lo, hi := 0.0, 0.0
	for i := range xs {
		pts[i] = plotter.XY{X: xs[i], Y: vs[i]}
		lo, hi = min(lo, vs[i]), max(hi, vs[i])
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "x (Å)"
	p.Y.Label.Text = fmt.Sprintf("ψ  (E = %s eV)", FormatEnergy(s.Energy))
	p.Add(plotter.NewGrid())

	for _, x := range interfaces {
		l, err := plotter.NewLine(plotter.XYs{{X: x, Y: lo}, {X: x, Y: hi}})
		if err != nil {
			return err
		}
		l.LineStyle.Color = color.Gray{Y: 160}
		l.LineStyle.Dashes = []vg.Length{vg.Points(4), vg.Points(3)}
		p.Add(l)
	}

	line, err := plotter.NewLine(pts)
	if err != nil {
		return err
	}
	line.LineStyle.Color = col
	line.LineStyle.Width = vg.Points(1.5)
	p.Add(line)

	return p.Save(plotWidth, plotHeight, path)
}

// PlotAll writes MeshFile and one StateFile per state into dir and returns
// the written paths in that order.
func PlotAll(dir string, m *mesh.Mesh, regions int, states []boundstate.State, interfaces []float64, samples int) ([]string, error) {
	if dir == "" {
		return nil, ErrEmptyPath
	}
	paths := []string{filepath.Join(dir, MeshFile)}
	if err := PlotMesh(paths[0], m, regions); err != nil {
		return nil, fmt.Errorf("mesh plot: %w", err)
	}
	for k, s := range states {
		path := filepath.Join(dir, StateFile(k))
		if err := PlotState(path, StateTitle(k), s, interfaces, ramp(k, len(states)), samples); err != nil {
			return paths, fmt.Errorf("state %d plot: %w", k, err)
		}
		paths = append(paths, path)
	}

	return paths, nil
}
