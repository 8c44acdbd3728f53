package engine

import (
	"errors"
	"fmt"

	"github.com/piwi3910/blastplan/internal/model"
)

// MaxVisualHoles is the largest number of holes drawn in 3D. Layouts are
// never capped; only the visualization payload is.
const MaxVisualHoles = 50

// ErrStructuralMismatch is returned when a per-hole sequence is shorter
// than the hole count it must describe.
var ErrStructuralMismatch = errors.New("per-hole sequence shorter than hole count")

// HoleData holds per-hole sequences. Index i of every slice describes the
// same physical hole.
type HoleData struct {
	Positions        []model.Point2D
	Radii            []float64
	Depths           []float64
	ExplosiveLengths []float64
}

// Visualization is everything a renderer needs to draw a round.
type Visualization struct {
	HoleData

	Burden  float64 // zero for manual layouts
	Spacing float64 // zero for manual layouts
	Pattern model.PatternKind
	Box     model.BenchGeometry

	// TotalHoles is the hole count before the display cap.
	TotalHoles int
	Truncated  bool
}

// HoleCount returns the number of holes in the payload.
func (v Visualization) HoleCount() int {
	return len(v.Positions)
}

// NewVisualization validates and caps per-hole data. Every sequence must
// hold at least holeCount entries; shorter sequences fail with
// ErrStructuralMismatch and are never padded. maxHoles <= 0 disables the cap.
func NewVisualization(data HoleData, holeCount int, box model.BenchGeometry, kind model.PatternKind, maxHoles int) (Visualization, error) {
	seqs := []struct {
		name string
		n    int
	}{
		{"positions", len(data.Positions)},
		{"radii", len(data.Radii)},
		{"depths", len(data.Depths)},
		{"explosive lengths", len(data.ExplosiveLengths)},
	}
	for _, s := range seqs {
		if s.n < holeCount {
			return Visualization{}, fmt.Errorf("%w: %s has %d entries, need %d", ErrStructuralMismatch, s.name, s.n, holeCount)
		}
	}

	shown := holeCount
	if maxHoles > 0 && shown > maxHoles {
		shown = maxHoles
	}
	return Visualization{
		HoleData: HoleData{
			Positions:        append([]model.Point2D(nil), data.Positions[:shown]...),
			Radii:            append([]float64(nil), data.Radii[:shown]...),
			Depths:           append([]float64(nil), data.Depths[:shown]...),
			ExplosiveLengths: append([]float64(nil), data.ExplosiveLengths[:shown]...),
		},
		Pattern:    kind,
		Box:        box,
		TotalHoles: holeCount,
		Truncated:  shown < holeCount,
	}, nil
}

// HoleData returns uniform per-hole sequences for every hole in the layout.
func (r Result) HoleData() HoleData {
	n := r.Layout.HoleCount()
	d := HoleData{
		Positions:        append([]model.Point2D(nil), r.Layout.Holes...),
		Radii:            make([]float64, n),
		Depths:           make([]float64, n),
		ExplosiveLengths: make([]float64, n),
	}
	for i := 0; i < n; i++ {
		d.Radii[i] = r.Hole.Radius
		d.Depths[i] = r.Hole.Depth
		d.ExplosiveLengths[i] = r.Charge.ColumnLength
	}
	return d
}

// Visualization builds the display payload for the result, capped at
// maxHoles (see MaxVisualHoles).
func (r Result) Visualization(maxHoles int) (Visualization, error) {
	v, err := NewVisualization(r.HoleData(), r.Layout.HoleCount(), r.Geometry, r.Pattern, maxHoles)
	if err != nil {
		return Visualization{}, err
	}
	if r.Inputs.LayoutMode != model.LayoutManual {
		v.Burden = r.Hole.Burden
		v.Spacing = r.Hole.Spacing
	}
	return v, nil
}
