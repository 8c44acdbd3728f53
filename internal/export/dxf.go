package export

import (
	"fmt"

	"github.com/piwi3910/blastplan/internal/engine"
	"github.com/piwi3910/blastplan/internal/flyrock"
	"github.com/yofu/dxf"
	"github.com/yofu/dxf/color"
)

// DXF layer names of the plan drawing.
const (
	LayerBench     = "BENCH"
	LayerFreeFace  = "FREE_FACE"
	LayerHoles     = "HOLES"
	LayerLabels    = "HOLE_NUMBERS"
	LayerSafetyZns = "FLYROCK_ZONES"
)

// DXFOptions control the plan drawing.
type DXFOptions struct {
	Labels      bool // hole numbers next to each collar
	SafetyZones bool // flyrock zone circles around the pattern
}

// ExportDXF writes a plan drawing in meters: the bench outline, the free
// face, a circle per hole at its true diameter and, optionally, hole
// numbers and flyrock safety zones. When zones are requested but the
// flyrock estimate has no safe distance, the drawing is still written
// without them and the returned error wraps flyrock.ErrNoSafeDistance.
func ExportDXF(path string, r engine.Result, opts DXFOptions) error {
	if r.Layout.Empty() {
		return fmt.Errorf("no holes to export")
	}

	d := dxf.NewDrawing()
	g := r.Geometry

	if _, err := d.AddLayer(LayerBench, color.White, dxf.DefaultLineType, true); err != nil {
		return fmt.Errorf("add layer %s: %w", LayerBench, err)
	}
	if _, err := d.LwPolyline(true,
		[]float64{0, 0, 0},
		[]float64{g.Length, 0, 0},
		[]float64{g.Length, g.Width, 0},
		[]float64{0, g.Width, 0},
	); err != nil {
		return fmt.Errorf("draw bench outline: %w", err)
	}

	if _, err := d.AddLayer(LayerFreeFace, color.Red, dxf.DefaultLineType, true); err != nil {
		return fmt.Errorf("add layer %s: %w", LayerFreeFace, err)
	}
	if _, err := d.Line(0, 0, 0, g.Length, 0, 0); err != nil {
		return fmt.Errorf("draw free face: %w", err)
	}

	if _, err := d.AddLayer(LayerHoles, color.Yellow, dxf.DefaultLineType, true); err != nil {
		return fmt.Errorf("add layer %s: %w", LayerHoles, err)
	}
	for i, h := range r.Layout.Holes {
		if _, err := d.Circle(h.X, h.Y, 0, r.Hole.Radius); err != nil {
			return fmt.Errorf("draw hole %d: %w", i+1, err)
		}
	}

	if opts.Labels {
		if _, err := d.AddLayer(LayerLabels, color.Cyan, dxf.DefaultLineType, true); err != nil {
			return fmt.Errorf("add layer %s: %w", LayerLabels, err)
		}
		height := r.Hole.Burden / 8
		for i, h := range r.Layout.Holes {
			if _, err := d.Text(fmt.Sprintf("%d", i+1), h.X+r.Hole.Radius*2, h.Y+r.Hole.Radius*2, 0, height); err != nil {
				return fmt.Errorf("label hole %d: %w", i+1, err)
			}
		}
	}

	var skipped error
	if opts.SafetyZones && !r.Flyrock.Valid() {
		skipped = fmt.Errorf("%w: safety zones not drawn (distance %.1f m)", flyrock.ErrNoSafeDistance, r.Flyrock.MaxDistance)
	}
	if opts.SafetyZones && skipped == nil {
		if _, err := d.AddLayer(LayerSafetyZns, color.Green, dxf.DefaultLineType, true); err != nil {
			return fmt.Errorf("add layer %s: %w", LayerSafetyZns, err)
		}
		c := r.SafetyCenter()
		z := r.Flyrock.Zones
		for _, radius := range []float64{z.Red, z.Yellow, z.Green} {
			if _, err := d.Circle(c.X, c.Y, 0, radius); err != nil {
				return fmt.Errorf("draw safety zone: %w", err)
			}
		}
	}

	if err := d.SaveAs(path); err != nil {
		return err
	}
	return skipped
}
