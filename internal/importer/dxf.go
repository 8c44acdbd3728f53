package importer

import (
	"fmt"
	"math"
	"sort"

	"github.com/piwi3910/blastplan/internal/model"
	"github.com/yofu/dxf"
	"github.com/yofu/dxf/entity"
)

const (
	// joinTolerance is the largest gap, in drawing units, between two
	// LINE/ARC ends that still counts as connected.
	joinTolerance       = 0.01
	// rectangularCoverage is the share of its bounding box an outline must
	// fill to be designed as a plain rectangle.
	rectangularCoverage = 0.98
	arcSteps            = 32
	circleSteps         = 64
)

// polygon is a closed ring of vertices; the closing edge is implied.
type polygon []model.Point2D

// area is the unsigned shoelace area.
func (p polygon) area() float64 {
	if len(p) < 3 {
		return 0
	}
	var twice float64
	prev := p[len(p)-1]
	for _, v := range p {
		twice += prev.X*v.Y - v.X*prev.Y
		prev = v
	}
	return math.Abs(twice) / 2
}

func (p polygon) bounds() (min, max model.Point2D) {
	return model.PatternLayout{Holes: p}.Bounds()
}

// atOrigin shifts the ring so its bounding box starts at (0, 0).
func (p polygon) atOrigin() polygon {
	min, _ := p.bounds()
	out := make(polygon, len(p))
	for i, v := range p {
		out[i] = model.Point2D{X: v.X - min.X, Y: v.Y - min.Y}
	}
	return out
}

// contains reports whether pt lies inside the ring (even-odd rule).
func (p polygon) contains(pt model.Point2D) bool {
	inside := false
	prev := p[len(p)-1]
	for _, v := range p {
		if (v.Y > pt.Y) != (prev.Y > pt.Y) {
			x := v.X + (pt.Y-v.Y)*(prev.X-v.X)/(prev.Y-v.Y)
			if pt.X < x {
				inside = !inside
			}
		}
		prev = v
	}
	return inside
}

// edge is one LINE, or one chord of a sampled ARC, waiting to be joined.
type edge struct {
	a, b model.Point2D
}

// BenchOutline is the blast area read from a surveyed DXF drawing.
// Length and Width are the extents of the outline's bounding box; Area is
// the plan area enclosed by the outline itself.
type BenchOutline struct {
	Length   float64
	Width    float64
	Area     float64         // m²
	Outline  []model.Point2D // normalized so the bounding box starts at (0, 0)
	Shapes   int             // closed shapes found; the largest is used
	Warnings []string
}

// Coverage is the share of the bounding box covered by the outline, in
// (0, 1]. A surveyed rectangle gives 1.
func (b BenchOutline) Coverage() float64 {
	box := b.Length * b.Width
	if box <= 0 {
		return 0
	}
	return math.Min(b.Area/box, 1)
}

// Rectangular reports whether the outline fills its bounding box closely
// enough to be designed as a plain length x width block.
func (b BenchOutline) Rectangular() bool {
	return b.Coverage() >= rectangularCoverage
}

// Contains reports whether a collar position, in bench coordinates, lies
// inside the surveyed outline.
func (b BenchOutline) Contains(p model.Point2D) bool {
	if len(b.Outline) < 3 {
		return false
	}
	return polygon(b.Outline).contains(p)
}

// HolesOutside returns the 1-based numbers of holes in the layout whose
// collars fall outside the outline.
func (b BenchOutline) HolesOutside(layout model.PatternLayout) []int {
	var out []int
	for i, h := range layout.Holes {
		if !b.Contains(h) {
			out = append(out, i+1)
		}
	}
	return out
}

// ApplyToInputs sets the bench length and width from the outline. For a
// non-rectangular outline the blast volume is switched to manual and set to
// the plan area times the bench height, so the charge is sized for the
// rock actually inside the outline.
func (b BenchOutline) ApplyToInputs(in *model.BlastDesignInputs) {
	in.Geometry.Length = b.Length
	in.Geometry.Width = b.Width
	if b.Area > 0 && !b.Rectangular() {
		in.VolumeMode = model.VolumeManual
		in.ManualVolume = b.Area * in.Geometry.Clamp().BenchHeight
	}
}

// ImportDXFBench reads the bench outline from a DXF file. Every closed shape
// (LWPOLYLINE, CIRCLE, or loop of connected LINEs/ARCs) is collected and
// the one with the largest area is taken as the bench.
func ImportDXFBench(path string) (BenchOutline, error) {
	var result BenchOutline

	drawing, err := dxf.Open(path)
	if err != nil {
		return result, fmt.Errorf("cannot open DXF file: %w", err)
	}
	entities := drawing.Entities()
	if len(entities) == 0 {
		return result, fmt.Errorf("DXF file contains no entities")
	}

	var shapes []polygon
	var loose []edge
	for _, ent := range entities {
		switch e := ent.(type) {
		case *entity.LwPolyline:
			if p := polylineRing(e); len(p) >= 3 {
				shapes = append(shapes, p)
			} else {
				result.Warnings = append(result.Warnings, "Skipped LWPOLYLINE with fewer than 3 vertices")
			}
		case *entity.Circle:
			full := sampleArc(e.Center[0], e.Center[1], e.Radius, 0, 2*math.Pi, circleSteps)
			shapes = append(shapes, full[:circleSteps])
		case *entity.Arc:
			from := e.Angle[0] * math.Pi / 180
			to := e.Angle[1] * math.Pi / 180
			if to <= from {
				to += 2 * math.Pi
			}
			pts := sampleArc(e.Circle.Center[0], e.Circle.Center[1], e.Circle.Radius, from, to, arcSteps)
			for i := 1; i < len(pts); i++ {
				loose = append(loose, edge{pts[i-1], pts[i]})
			}
		case *entity.Line:
			loose = append(loose, edge{
				a: model.Point2D{X: e.Start[0], Y: e.Start[1]},
				b: model.Point2D{X: e.End[0], Y: e.End[1]},
			})
		}
	}

	shapes = append(shapes, joinLoops(loose, joinTolerance)...)
	if len(shapes) == 0 {
		return result, fmt.Errorf("no closed shapes found in DXF file")
	}
	sort.SliceStable(shapes, func(i, j int) bool {
		return shapes[i].area() > shapes[j].area()
	})

	bench := shapes[0].atOrigin()
	_, max := bench.bounds()
	result.Length = max.X
	result.Width = max.Y
	result.Area = bench.area()
	result.Outline = bench
	result.Shapes = len(shapes)

	if result.Length < 0.01 || result.Width < 0.01 {
		return result, fmt.Errorf("bench outline is degenerate (%.2f x %.2f m)", result.Length, result.Width)
	}
	if len(shapes) > 1 {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("Found %d closed shapes, using the largest", len(shapes)))
	}
	if !result.Rectangular() {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("Bench outline is not rectangular: %.1f m² covers %.0f%% of its %.1f x %.1f m extents",
				result.Area, result.Coverage()*100, result.Length, result.Width))
	}
	return result, nil
}

// polylineRing flattens an LWPOLYLINE into a ring. A vertex with a bulge
// starts an arc to the next vertex, with bulge = tan(included angle / 4);
// a positive bulge turns counter-clockwise.
func polylineRing(lw *entity.LwPolyline) polygon {
	n := len(lw.Vertices)
	var ring polygon
	for i, v := range lw.Vertices {
		p := model.Point2D{X: v[0], Y: v[1]}
		if i >= len(lw.Bulges) || math.Abs(lw.Bulges[i]) < 1e-9 {
			ring = append(ring, p)
			continue
		}
		q := model.Point2D{X: lw.Vertices[(i+1)%n][0], Y: lw.Vertices[(i+1)%n][1]}
		arc := bulgeArc(p, q, lw.Bulges[i], arcSteps)
		ring = append(ring, arc[:len(arc)-1]...)
	}
	return ring
}

// bulgeArc samples the arc between p and q described by a DXF bulge,
// including both end points.
func bulgeArc(p, q model.Point2D, bulge float64, steps int) polygon {
	chord := math.Hypot(q.X-p.X, q.Y-p.Y)
	if chord < 1e-9 {
		return polygon{p, q}
	}
	sweep := 4 * math.Atan(bulge) // signed included angle
	radius := chord / (2 * math.Abs(math.Sin(sweep/2)))

	// The center sits on the chord's perpendicular bisector, on the left of
	// p->q for a counter-clockwise arc shorter than a half turn.
	offset := radius * math.Cos(sweep/2)
	if bulge < 0 {
		offset = -offset
	}
	ux, uy := (q.X-p.X)/chord, (q.Y-p.Y)/chord
	cx := (p.X+q.X)/2 - uy*offset
	cy := (p.Y+q.Y)/2 + ux*offset

	from := math.Atan2(p.Y-cy, p.X-cx)
	return sampleArc(cx, cy, radius, from, from+sweep, steps)
}

// sampleArc returns steps+1 points from angle from to angle to (radians)
// on the circle at (cx, cy).
func sampleArc(cx, cy, r, from, to float64, steps int) polygon {
	pts := make(polygon, steps+1)
	for i := range pts {
		a := from + (to-from)*float64(i)/float64(steps)
		pts[i] = model.Point2D{X: cx + r*math.Cos(a), Y: cy + r*math.Sin(a)}
	}
	return pts
}

// joinLoops walks loose edges end to end and returns every walk that comes
// back to its start. Open walks are dropped; they cannot bound a bench.
func joinLoops(edges []edge, tol float64) []polygon {
	used := make([]bool, len(edges))
	var loops []polygon

	for first := range edges {
		if used[first] {
			continue
		}
		used[first] = true
		walk := polygon{edges[first].a, edges[first].b}

		for extended := true; extended; {
			extended = false
			tail := walk[len(walk)-1]
			for i, e := range edges {
				if used[i] {
					continue
				}
				var next model.Point2D
				switch {
				case near(tail, e.a, tol):
					next = e.b
				case near(tail, e.b, tol):
					next = e.a
				default:
					continue
				}
				walk = append(walk, next)
				used[i] = true
				extended = true
				break
			}
		}

		if len(walk) >= 4 && near(walk[0], walk[len(walk)-1], tol) {
			loops = append(loops, walk[:len(walk)-1])
		}
	}
	return loops
}

func near(a, b model.Point2D, tol float64) bool {
	return math.Hypot(a.X-b.X, a.Y-b.Y) <= tol
}
