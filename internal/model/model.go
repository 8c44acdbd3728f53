package model

import (
	"fmt"
	"strings"
)

// PatternKind is the stored drill pattern. Rectangular geometry is a display
// sub-variant of PatternSquare (see PatternVariant).
type PatternKind int

const (
	PatternSquare    PatternKind = iota // Holes aligned in rows and columns
	PatternStaggered                    // Alternate rows offset by half the spacing
)

func (p PatternKind) String() string {
	switch p {
	case PatternStaggered:
		return "staggered"
	default:
		return "square"
	}
}

// DisplayName returns the label shown in reports.
func (p PatternKind) DisplayName() string {
	switch p {
	case PatternStaggered:
		return "Staggered"
	default:
		return "Square or Rectangular"
	}
}

// ParsePatternKind converts "square", "rectangular" or "staggered" (case-insensitive).
func ParsePatternKind(s string) (PatternKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "square", "rectangular", "square or rectangular":
		return PatternSquare, nil
	case "staggered", "triangular":
		return PatternStaggered, nil
	}
	return PatternSquare, fmt.Errorf("unknown pattern %q", s)
}

func (p PatternKind) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

func (p *PatternKind) UnmarshalText(b []byte) error {
	v, err := ParsePatternKind(string(b))
	if err != nil {
		return err
	}
	*p = v
	return nil
}

// PatternVariant is the three-way pattern taxonomy used for spacing and display.
type PatternVariant int

const (
	VariantSquare PatternVariant = iota
	VariantRectangular
	VariantStaggered
)

func (v PatternVariant) String() string {
	switch v {
	case VariantRectangular:
		return "Rectangular"
	case VariantStaggered:
		return "Staggered"
	default:
		return "Square"
	}
}

// Kind collapses the variant to the stored pattern.
func (v PatternVariant) Kind() PatternKind {
	if v == VariantStaggered {
		return PatternStaggered
	}
	return PatternSquare
}

// SpacingFormula is the human-readable spacing rule for the variant.
func (v PatternVariant) SpacingFormula() string {
	switch v {
	case VariantRectangular:
		return "S = 0.9B + 0.91"
	case VariantStaggered:
		return "S = 1.15B"
	default:
		return "S = B"
	}
}

// Point2D is a hole collar position on the bench plan, in meters.
type Point2D struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// BenchGeometry describes the block being blasted, all in meters.
type BenchGeometry struct {
	Length      float64 `json:"length" yaml:"length"`
	Width       float64 `json:"width" yaml:"width"`
	Height      float64 `json:"height" yaml:"height"`
	BenchHeight float64 `json:"bench_height" yaml:"bench_height"`
}

// Clamp returns a copy with BenchHeight limited to Height.
func (g BenchGeometry) Clamp() BenchGeometry {
	if g.BenchHeight > g.Height {
		g.BenchHeight = g.Height
	}
	return g
}

// PlanArea returns Length x Width in square meters.
func (g BenchGeometry) PlanArea() float64 {
	return g.Length * g.Width
}

// BlockVolume returns the volume of the whole block (Length x Width x Height).
func (g BenchGeometry) BlockVolume() float64 {
	return g.Length * g.Width * g.Height
}

// HoleDesign holds the per-hole drilling and loading geometry.
type HoleDesign struct {
	DiameterMM            float64 `json:"diameter_mm"`
	Radius                float64 `json:"radius"`      // m
	Depth                 float64 `json:"depth"`       // m
	Burden                float64 `json:"burden"`      // m
	Spacing               float64 `json:"spacing"`     // m
	Subdrilling           float64 `json:"subdrilling"` // m
	Stemming              float64 `json:"stemming"`    // m
	ExplosiveColumnLength float64 `json:"explosive_column_length"`
}

// DiameterM returns the hole diameter in meters.
func (h HoleDesign) DiameterM() float64 {
	return h.DiameterMM / 1000
}

// Degenerate reports whether stemming consumes the whole hole.
func (h HoleDesign) Degenerate() bool {
	return h.ExplosiveColumnLength <= 0
}

// BurdenSpacingRatio returns B/S, or 0 when spacing is zero.
func (h HoleDesign) BurdenSpacingRatio() float64 {
	if h.Spacing == 0 {
		return 0
	}
	return h.Burden / h.Spacing
}

// PatternLayout is the ordered set of hole collars for one round.
// Holes are in generation order (row-major); index i is hole number i+1.
type PatternLayout struct {
	Kind            PatternKind `json:"kind"`
	Rows            int         `json:"rows"`
	HolesPerRow     int         `json:"holes_per_row"`
	HolesPerOddRow  int         `json:"holes_per_odd_row,omitempty"`
	HolesPerEvenRow int         `json:"holes_per_even_row,omitempty"`
	Holes           []Point2D   `json:"holes"`
}

// HoleCount returns the number of generated holes.
func (l PatternLayout) HoleCount() int {
	return len(l.Holes)
}

// Empty reports whether the layout has no holes.
func (l PatternLayout) Empty() bool {
	return len(l.Holes) == 0
}

// XS returns the x coordinates in generation order.
func (l PatternLayout) XS() []float64 {
	xs := make([]float64, len(l.Holes))
	for i, p := range l.Holes {
		xs[i] = p.X
	}
	return xs
}

// YS returns the y coordinates in generation order.
func (l PatternLayout) YS() []float64 {
	ys := make([]float64, len(l.Holes))
	for i, p := range l.Holes {
		ys[i] = p.Y
	}
	return ys
}

// Truncate returns a copy holding at most n holes. n <= 0 keeps all holes.
func (l PatternLayout) Truncate(n int) PatternLayout {
	if n <= 0 || n >= len(l.Holes) {
		return l
	}
	l.Holes = append([]Point2D(nil), l.Holes[:n]...)
	return l
}

// Bounds returns the min and max corners of the hole collars.
func (l PatternLayout) Bounds() (min, max Point2D) {
	if len(l.Holes) == 0 {
		return Point2D{}, Point2D{}
	}
	min, max = l.Holes[0], l.Holes[0]
	for _, p := range l.Holes[1:] {
		if p.X < min.X {
			min.X = p.X
		}
		if p.Y < min.Y {
			min.Y = p.Y
		}
		if p.X > max.X {
			max.X = p.X
		}
		if p.Y > max.Y {
			max.Y = p.Y
		}
	}
	return min, max
}

// ExplosiveCharge holds the loading figures for a round.
type ExplosiveCharge struct {
	Type                   ExplosiveType `json:"type"`
	DensityKgM3            float64       `json:"density_kg_m3"`
	ColumnLength           float64       `json:"column_length"`         // m, may be <= 0
	AvailableHoleVolume    float64       `json:"available_hole_volume"` // m³
	ChargePerHole          float64       `json:"charge_per_hole"`       // kg
	HoleCount              int           `json:"hole_count"`
	TotalExplosive         float64       `json:"total_explosive"` // kg
	BlastVolume            float64       `json:"blast_volume"`    // m³
	PowderFactorVolPerMass float64       `json:"powder_factor_vol_per_mass"`
	PowderFactorMassPerVol float64       `json:"powder_factor_mass_per_vol"`
}

// Degenerate reports a non-positive explosive column.
func (c ExplosiveCharge) Degenerate() bool {
	return c.ColumnLength <= 0
}

// BlastVolumeMode selects how the blast volume is determined.
type BlastVolumeMode int

const (
	VolumeFull   BlastVolumeMode = iota // Length x Width x BenchHeight
	VolumeManual                        // User-entered volume
)

func (m BlastVolumeMode) String() string {
	if m == VolumeManual {
		return "Manual Selection"
	}
	return "Full Blast"
}

func (m BlastVolumeMode) MarshalText() ([]byte, error) {
	if m == VolumeManual {
		return []byte("manual"), nil
	}
	return []byte("full"), nil
}

func (m *BlastVolumeMode) UnmarshalText(b []byte) error {
	switch strings.ToLower(strings.TrimSpace(string(b))) {
	case "", "full", "full blast":
		*m = VolumeFull
	case "manual", "manual selection":
		*m = VolumeManual
	default:
		return fmt.Errorf("unknown blast volume mode %q", string(b))
	}
	return nil
}

// LayoutMode selects how hole positions are produced.
type LayoutMode int

const (
	LayoutAuto   LayoutMode = iota // Derived from burden and spacing
	LayoutManual                   // Explicit rows and holes per row
)

func (m LayoutMode) String() string {
	if m == LayoutManual {
		return "manual"
	}
	return "auto"
}

func (m LayoutMode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

func (m *LayoutMode) UnmarshalText(b []byte) error {
	switch strings.ToLower(strings.TrimSpace(string(b))) {
	case "", "auto":
		*m = LayoutAuto
	case "manual":
		*m = LayoutManual
	default:
		return fmt.Errorf("unknown layout mode %q", string(b))
	}
	return nil
}
