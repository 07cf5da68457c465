package geometry

// Params are the inputs of the symmetric barrier/well/barrier structure.
// Lengths are in Å, potentials in eV, masses in units of the free electron mass.
type Params struct {
	WellWidth     float64 `mapstructure:"well_width"`
	BarrierWidth  float64 `mapstructure:"barrier_width"`
	WellPotential float64 `mapstructure:"well_potential"`
	BarrierHeight float64 `mapstructure:"barrier_height"`
	WellMass      float64 `mapstructure:"well_mass"`
	BarrierMass   float64 `mapstructure:"barrier_mass"`
	Hb2m          float64 `mapstructure:"hb2m"`
}

// LayerSpec describes one layer of a generic stack, left to right.
type LayerSpec struct {
	Name      string  `mapstructure:"name"`
	Thickness float64 `mapstructure:"thickness"`
	Potential float64 `mapstructure:"potential"`
	Mass      float64 `mapstructure:"mass"`
}

// Layer is a placed layer: [Start, End) with its material constants.
// Coefficient is the diffusion coefficient hb2m/Mass of the kinetic term.
type Layer struct {
	Name        string
	Start, End  float64
	Potential   float64
	Mass        float64
	Coefficient float64
}

// Width returns End-Start.
func (l Layer) Width() float64 { return l.End - l.Start }

// Structure is an ordered stack of layers tiling [0, Total).
type Structure struct {
	Layers []Layer
	Hb2m   float64
	Total  float64
}
