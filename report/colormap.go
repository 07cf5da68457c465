package report

import (
	"image/color"
	"math"
)

// viridisStops are the anchor colours of a four-segment viridis approximation.
var viridisStops = [5][3]float64{
	{68, 1, 84},
	{59, 82, 139},
	{33, 145, 140},
	{94, 201, 98},
	{253, 231, 37},
}

// Viridis maps t ∈ [0,1] onto the viridis ramp; t is clamped.
func Viridis(t float64) color.Color {
	if math.IsNaN(t) {
		t = 0
	}
	t = math.Max(0, math.Min(1, t))
	seg := math.Min(math.Floor(t*4), 3)
	f := t*4 - seg
	a, b := viridisStops[int(seg)], viridisStops[int(seg)+1]
	var rgb [3]uint8
	for i := range rgb {
		rgb[i] = uint8(math.Round(a[i] + (b[i]-a[i])*f))
	}

	return color.NRGBA{R: rgb[0], G: rgb[1], B: rgb[2], A: 255}
}

// ramp returns the colour of item k out of n, spread over the ramp.
func ramp(k, n int) color.Color {
	if n <= 1 {
		return Viridis(0)
	}

	return Viridis(float64(k) / float64(n-1))
}
