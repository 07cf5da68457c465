package geometry

import (
	"errors"
	"math"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestNewFiniteWell(t *testing.T) {
	Convey("Given the default parameters", t, func() {
		s, err := NewFiniteWell(DefaultParams())
		So(err, ShouldBeNil)

		Convey("It should stack three layers over 2·dbar + dwell", func() {
			So(len(s.Layers), ShouldEqual, 3)
			So(s.Total, ShouldEqual, 2*DefaultBarrierWidth+DefaultWellWidth)
			So(s.Layers[0].End, ShouldEqual, 250.0)
			So(s.Layers[1].End, ShouldEqual, 330.0)
			So(s.Layers[2].End, ShouldEqual, 580.0)
		})

		Convey("It should tile [0, dtot) exactly", func() {
			So(s.CheckTiling(), ShouldBeNil)
		})

		Convey("It should derive the diffusion coefficients from hb2m/m*", func() {
			So(s.Layers[1].Coefficient, ShouldAlmostEqual, 3.81/0.067, 1e-12)
			So(s.Layers[0].Coefficient, ShouldAlmostEqual, 3.81/0.096, 1e-12)
		})

		Convey("It should report the barrier and the well centre", func() {
			So(s.Barrier(), ShouldEqual, 0.23)
			So(s.Bottom(), ShouldEqual, 0.0)
			So(s.WellCenter(), ShouldEqual, 290.0)
			So(s.Interfaces(), ShouldResemble, []float64{250, 330})
		})
	})
}

func TestLayerAt(t *testing.T) {
	Convey("Given the default structure", t, func() {
		s, _ := NewFiniteWell(DefaultParams())

		Convey("Interior points map to their layer", func() {
			i, ok := s.LayerAt(100)
			So(ok, ShouldBeTrue)
			So(i, ShouldEqual, 0)
			i, _ = s.LayerAt(290)
			So(i, ShouldEqual, 1)
			i, _ = s.LayerAt(579)
			So(i, ShouldEqual, 2)
		})

		Convey("Interface points belong to the left layer", func() {
			i, ok := s.LayerAt(250)
			So(ok, ShouldBeTrue)
			So(i, ShouldEqual, 0)
		})

		Convey("Points outside the stack are rejected", func() {
			_, ok := s.LayerAt(-1)
			So(ok, ShouldBeFalse)
			_, ok = s.LayerAt(581)
			So(ok, ShouldBeFalse)
		})
	})
}

func TestNewStructureValidation(t *testing.T) {
	Convey("Given invalid inputs", t, func() {
		Convey("An empty stack is rejected", func() {
			_, err := NewStructure(nil, DefaultHb2m)
			So(errors.Is(err, ErrLayerCount), ShouldBeTrue)
		})

		Convey("A non-positive hb2m is rejected", func() {
			p := DefaultParams()
			p.Hb2m = 0
			_, err := NewFiniteWell(p)
			So(errors.Is(err, ErrNonPositiveHb2m), ShouldBeTrue)
		})

		Convey("A zero-width well names the layer", func() {
			p := DefaultParams()
			p.WellWidth = 0
			_, err := NewFiniteWell(p)
			So(errors.Is(err, ErrNonPositiveThickness), ShouldBeTrue)
			var le *LayerError
			So(errors.As(err, &le), ShouldBeTrue)
			So(le.Index, ShouldEqual, 1)
			So(le.Field, ShouldEqual, "thickness")
		})

		Convey("A negative barrier mass is rejected", func() {
			p := DefaultParams()
			p.BarrierMass = -0.1
			_, err := NewFiniteWell(p)
			So(errors.Is(err, ErrNonPositiveMass), ShouldBeTrue)
		})

		Convey("NaN parameters are rejected", func() {
			p := DefaultParams()
			p.BarrierHeight = math.NaN()
			_, err := NewFiniteWell(p)
			So(errors.Is(err, ErrNonFinite), ShouldBeTrue)
		})
	})
}

func TestCheckTilingDetectsGaps(t *testing.T) {
	Convey("Given a structure whose layers were moved apart", t, func() {
		s, _ := NewFiniteWell(DefaultParams())
		s.Layers[1].Start += 1

		Convey("CheckTiling reports a gap", func() {
			So(errors.Is(s.CheckTiling(), ErrTilingGap), ShouldBeTrue)
		})
	})
}

func TestMirror(t *testing.T) {
	Convey("Given an asymmetric stack", t, func() {
		s, err := NewStructure([]LayerSpec{
			{Thickness: 100, Potential: 0.3, Mass: 0.1},
			{Thickness: 50, Potential: 0, Mass: 0.067},
			{Thickness: 200, Potential: 0.2, Mass: 0.09},
		}, DefaultHb2m)
		So(err, ShouldBeNil)
		So(s.IsSymmetric(1e-12), ShouldBeFalse)
		So(s.Barrier(), ShouldEqual, 0.2)

		Convey("Mirror reverses the layer order and keeps the total", func() {
			m := s.Mirror()
			So(m.Total, ShouldEqual, s.Total)
			So(m.Layers[0].Potential, ShouldEqual, 0.2)
			So(m.Layers[1].Start, ShouldEqual, 200.0)
			So(m.CheckTiling(), ShouldBeNil)
		})

		Convey("The default well is its own mirror image", func() {
			d, _ := NewFiniteWell(DefaultParams())
			So(d.IsSymmetric(1e-12), ShouldBeTrue)
		})
	})
}
