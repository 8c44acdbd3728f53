package pattern

import (
	"math"

	"github.com/piwi3910/blastplan/internal/model"
)

// edgeFraction is the share of the bench length a staggered last row may reach.
const edgeFraction = 0.85

// Manual places holesPerRow x rows holes evenly inside the area, used when
// the row and column counts are given explicitly instead of derived from
// burden and spacing. Square rows sit at x = step*(i+1); for staggered
// patterns every second row (row index 1, 3, ...) shifts by half a step,
// and on the final row holes reaching the last 15% of the length are dropped.
func Manual(length, width float64, holesPerRow, rows int, kind model.PatternKind) model.PatternLayout {
	layout := model.PatternLayout{Kind: kind}
	if holesPerRow <= 0 || rows <= 0 {
		return layout
	}
	layout.Rows = rows
	layout.HolesPerRow = holesPerRow

	xStep := length / float64(holesPerRow+1)
	yStep := width / float64(rows+1)

	layout.Holes = make([]model.Point2D, 0, holesPerRow*rows)
	for rowIdx := 0; rowIdx < rows; rowIdx++ {
		y := yStep * float64(rowIdx+1)

		if kind != model.PatternStaggered || rowIdx%2 == 0 {
			for i := 0; i < holesPerRow; i++ {
				layout.Holes = append(layout.Holes, model.Point2D{X: xStep * float64(i+1), Y: y})
			}
			continue
		}

		offset := xStep / 2
		trimEdge := rowIdx == rows-1 && xStep*float64(holesPerRow)+offset > length*edgeFraction
		for i := 0; i < holesPerRow; i++ {
			x := offset + xStep*float64(i)
			if trimEdge && x >= length*edgeFraction {
				continue
			}
			layout.Holes = append(layout.Holes, model.Point2D{X: x, Y: y})
		}
	}
	return layout
}

// ManualGrid derives rows and holes per row for a manual layout that must
// hold at least holeCount holes. Square grids are as close to square as
// possible; staggered grids use twice as many columns with half-filled rows.
func ManualGrid(holeCount int, kind model.PatternKind) (holesPerRow, rows int) {
	if holeCount <= 0 {
		return 0, 0
	}
	n := float64(holeCount)
	switch kind {
	case model.PatternStaggered:
		holesPerRow = int(math.Ceil(math.Sqrt(n * 2)))
		rows = int(math.Ceil(n / (float64(holesPerRow) / 2)))
	default:
		holesPerRow = int(math.Ceil(math.Sqrt(n)))
		rows = int(math.Ceil(n / float64(holesPerRow)))
	}
	return holesPerRow, rows
}
