// Package pattern computes drill-hole collar positions for square and
// staggered blasting patterns.
//
// Holes are always generated row-major: the outer loop walks rows from the
// free face (y = burden/2) inward, the inner loop walks holes along the row
// in increasing x. Renderers number holes by this order, so it must never change.
package pattern

import (
	"math"

	"github.com/piwi3910/blastplan/internal/model"
)

// Square lays out holes on a square/rectangular grid covering a
// length x width area. maxHoles <= 0 generates every hole.
//
// Rows = max(1, floor(width/burden)); holes per row = max(1, floor(length/spacing)).
// A non-positive burden or spacing returns an empty layout.
func Square(length, width, burden, spacing float64, maxHoles int) model.PatternLayout {
	layout := model.PatternLayout{Kind: model.PatternSquare}
	if burden <= 0 || spacing <= 0 {
		return layout
	}

	rows := max(1, int(width/burden))
	perRow := max(1, int(length/spacing))
	layout.Rows = rows
	layout.HolesPerRow = perRow

	ys := Linspace(burden/2, width-burden/2, rows)
	xs := Linspace(spacing/2, length-spacing/2, perRow)

	layout.Holes = make([]model.Point2D, 0, capacity(rows*perRow, maxHoles))
	for _, y := range ys {
		for _, x := range xs {
			layout.Holes = append(layout.Holes, model.Point2D{
				X: clamp(x, length),
				Y: clamp(y, width),
			})
			if maxHoles > 0 && len(layout.Holes) >= maxHoles {
				return layout
			}
		}
	}
	return layout
}

// Staggered lays out holes on a triangular grid. Rows with an even index
// (0, 2, 4, ...) span [spacing/2, length-spacing/2]; rows with an odd index
// are inset to [spacing, length-spacing], producing the half-spacing offset.
// maxHoles <= 0 generates every hole. A non-positive burden or spacing
// returns an empty layout.
func Staggered(length, width, burden, spacing float64, maxHoles int) model.PatternLayout {
	layout := model.PatternLayout{Kind: model.PatternStaggered}
	if burden <= 0 || spacing <= 0 {
		return layout
	}

	rows := max(1, int(width/burden))
	oddCount, evenCount := staggeredRowCounts(length, spacing)
	layout.Rows = rows
	layout.HolesPerOddRow = oddCount
	layout.HolesPerEvenRow = evenCount
	layout.HolesPerRow = max(oddCount, evenCount)

	ys := Linspace(burden/2, width-burden/2, rows)
	outer := Linspace(spacing/2, length-spacing/2, oddCount)
	inner := Linspace(spacing, length-spacing, evenCount)

	layout.Holes = make([]model.Point2D, 0, capacity(NaturalHoleCount(model.PatternStaggered, length, width, burden, spacing), maxHoles))
	for rowIdx, y := range ys {
		xs := outer
		if rowIdx%2 == 1 {
			xs = inner
		}
		for _, x := range xs {
			layout.Holes = append(layout.Holes, model.Point2D{
				X: clamp(x, length),
				Y: clamp(y, width),
			})
			if maxHoles > 0 && len(layout.Holes) >= maxHoles {
				return layout
			}
		}
	}
	return layout
}

// Generate dispatches to Square or Staggered.
func Generate(kind model.PatternKind, length, width, burden, spacing float64, maxHoles int) model.PatternLayout {
	switch kind {
	case model.PatternStaggered:
		return Staggered(length, width, burden, spacing, maxHoles)
	case model.PatternSquare:
		return Square(length, width, burden, spacing, maxHoles)
	}
	return model.PatternLayout{Kind: kind}
}

// NaturalHoleCount returns the number of holes the full, untruncated grid
// contains. For staggered patterns the first, third, fifth... rows carry
// the outer count and the others the inset count.
func NaturalHoleCount(kind model.PatternKind, length, width, burden, spacing float64) int {
	if burden <= 0 || spacing <= 0 {
		return 0
	}
	rows := max(1, int(width/burden))
	switch kind {
	case model.PatternStaggered:
		oddCount, evenCount := staggeredRowCounts(length, spacing)
		outerRows := (rows + 1) / 2
		innerRows := rows - outerRows
		return outerRows*oddCount + innerRows*evenCount
	default:
		return rows * max(1, int(length/spacing))
	}
}

func staggeredRowCounts(length, spacing float64) (odd, even int) {
	odd = max(1, int((length-spacing/2)/spacing)+1)
	even = max(1, int((length-spacing)/spacing)+1)
	return odd, even
}

// Linspace returns n evenly spaced values from start to stop inclusive.
// n == 1 yields start only; n <= 0 yields an empty slice.
func Linspace(start, stop float64, n int) []float64 {
	if n <= 0 {
		return []float64{}
	}
	out := make([]float64, n)
	if n == 1 {
		out[0] = start
		return out
	}
	step := (stop - start) / float64(n-1)
	for i := range out {
		out[i] = start + step*float64(i)
	}
	out[n-1] = stop
	return out
}

// clamp keeps a single-hole row or column inside a dimension smaller than
// half the burden or spacing.
func clamp(v, extent float64) float64 {
	return math.Max(0, math.Min(v, extent))
}

func capacity(natural, maxHoles int) int {
	if maxHoles > 0 && maxHoles < natural {
		return maxHoles
	}
	return natural
}
