package model

import "fmt"

// Input bounds enforced at the boundary (CLI, import). The calculators
// themselves extrapolate and never reject numeric input.
const (
	MinAreaDimension  = 10.0
	MaxAreaDimension  = 500.0
	MinBlockHeight    = 1.0
	MaxBlockHeight    = 100.0
	MinBenchHeight    = 1.0
	MinHoleDiameterMM = 80.0
	MaxHoleDiameterMM = 350.0
	MinRockDensity    = 1.5
	MaxRockDensity    = 3.5
	MinPWaveVelocity  = 1.0
	MaxPWaveVelocity  = 7.0
	MinManualVolume   = 10.0
)

// BlastDesignInputs carries every user-supplied parameter of a blasting
// round. It is passed explicitly through the calculation pipeline.
type BlastDesignInputs struct {
	Name     string        `json:"name" yaml:"name"`
	Geometry BenchGeometry `json:"geometry" yaml:"geometry"`

	// HoleDiameterMM of zero derives the optimum diameter from bench height.
	HoleDiameterMM float64 `json:"hole_diameter_mm" yaml:"hole_diameter_mm"`

	// Rock and site conditions
	RockDensity   float64         `json:"rock_density" yaml:"rock_density"`       // g/cm³
	PWaveVelocity float64         `json:"p_wave_velocity" yaml:"p_wave_velocity"` // km/s
	Water         WaterCondition  `json:"water_condition" yaml:"water_condition"`
	Cost          CostSensitivity `json:"cost_sensitivity" yaml:"cost_sensitivity"`

	// Explosive is used when AutoExplosive is false.
	AutoExplosive bool          `json:"auto_explosive" yaml:"auto_explosive"`
	Explosive     ExplosiveType `json:"explosive" yaml:"explosive"`

	// DensityOverride replaces the nominal explosive density (g/cm³) when > 0.
	DensityOverride float64 `json:"density_override,omitempty" yaml:"density_override,omitempty"`

	// Pattern is used when AutoPattern is false.
	AutoPattern bool        `json:"auto_pattern" yaml:"auto_pattern"`
	Pattern     PatternKind `json:"pattern" yaml:"pattern"`

	VolumeMode   BlastVolumeMode `json:"volume_mode" yaml:"volume_mode"`
	ManualVolume float64         `json:"manual_volume" yaml:"manual_volume"` // m³

	LayoutMode        LayoutMode `json:"layout_mode" yaml:"layout_mode"`
	ManualRows        int        `json:"manual_rows" yaml:"manual_rows"`
	ManualHolesPerRow int        `json:"manual_holes_per_row" yaml:"manual_holes_per_row"`

	// MaxHoles caps layout generation; zero means no cap.
	MaxHoles int `json:"max_holes" yaml:"max_holes"`
}

// DefaultInputs returns the starting configuration of a new design.
func DefaultInputs() BlastDesignInputs {
	return BlastDesignInputs{
		Name: "Untitled round",
		Geometry: BenchGeometry{
			Length:      20,
			Width:       20,
			Height:      20,
			BenchHeight: 10,
		},
		RockDensity:   2.5,
		PWaveVelocity: 3.5,
		Water:         Dry,
		Cost:          CostMedium,
		AutoExplosive: true,
		Explosive:     ANFO,
		AutoPattern:   true,
		Pattern:       PatternSquare,
		VolumeMode:    VolumeFull,
	}
}

// Normalize clamps every field into its documented range and returns the
// adjusted inputs together with a note for each change.
func (in BlastDesignInputs) Normalize() (BlastDesignInputs, []string) {
	var notes []string
	clamp := func(name string, v *float64, lo, hi float64) {
		switch {
		case *v < lo:
			notes = append(notes, fmt.Sprintf("%s %.2f raised to %.2f", name, *v, lo))
			*v = lo
		case *v > hi:
			notes = append(notes, fmt.Sprintf("%s %.2f lowered to %.2f", name, *v, hi))
			*v = hi
		}
	}

	g := &in.Geometry
	clamp("length", &g.Length, MinAreaDimension, MaxAreaDimension)
	clamp("width", &g.Width, MinAreaDimension, MaxAreaDimension)
	clamp("height", &g.Height, MinBlockHeight, MaxBlockHeight)
	if g.BenchHeight > g.Height {
		notes = append(notes, fmt.Sprintf("bench height %.2f exceeds total height, using %.2f", g.BenchHeight, g.Height))
		g.BenchHeight = g.Height
	}
	clamp("bench height", &g.BenchHeight, MinBenchHeight, g.Height)

	if in.HoleDiameterMM != 0 {
		clamp("hole diameter", &in.HoleDiameterMM, MinHoleDiameterMM, MaxHoleDiameterMM)
	}
	clamp("rock density", &in.RockDensity, MinRockDensity, MaxRockDensity)
	clamp("p-wave velocity", &in.PWaveVelocity, MinPWaveVelocity, MaxPWaveVelocity)

	if in.VolumeMode == VolumeManual {
		clamp("blast volume", &in.ManualVolume, MinManualVolume, g.BlockVolume())
	}
	if in.LayoutMode == LayoutManual {
		if in.ManualRows < 0 {
			in.ManualRows = 0
		}
		if in.ManualHolesPerRow < 0 {
			in.ManualHolesPerRow = 0
		}
	}
	if in.MaxHoles < 0 {
		in.MaxHoles = 0
	}
	return in, notes
}
