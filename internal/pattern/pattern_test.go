package pattern

import (
	"testing"

	"github.com/piwi3910/blastplan/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLinspace(t *testing.T) {
	assert.Equal(t, []float64{0, 2.5, 5, 7.5, 10}, Linspace(0, 10, 5))
	assert.Equal(t, []float64{3}, Linspace(3, 9, 1))
	assert.Empty(t, Linspace(0, 1, 0))
}

func TestSquare_GridCounts(t *testing.T) {
	l := Square(20, 20, 5.65, 5.65, 0)

	assert.Equal(t, model.PatternSquare, l.Kind)
	assert.Equal(t, 3, l.Rows)
	assert.Equal(t, 3, l.HolesPerRow)
	require.Equal(t, 9, l.HoleCount())

	assert.InDelta(t, 2.825, l.Holes[0].X, 1e-9)
	assert.InDelta(t, 2.825, l.Holes[0].Y, 1e-9)
	assert.InDelta(t, 17.175, l.Holes[8].X, 1e-9)
	assert.InDelta(t, 17.175, l.Holes[8].Y, 1e-9)
}

func TestSquare_RowMajorOrder(t *testing.T) {
	l := Square(30, 20, 5, 6, 0)
	require.Equal(t, 4, l.Rows)
	require.Equal(t, 5, l.HolesPerRow)

	for i := 1; i < l.HoleCount(); i++ {
		prev, cur := l.Holes[i-1], l.Holes[i]
		if i%l.HolesPerRow == 0 {
			assert.Greater(t, cur.Y, prev.Y, "new row at hole %d", i)
		} else {
			assert.Equal(t, prev.Y, cur.Y, "same row at hole %d", i)
			assert.Greater(t, cur.X, prev.X, "increasing x at hole %d", i)
		}
	}
}

func TestStaggered_RowCounts(t *testing.T) {
	l := Staggered(10, 6, 2, 2, 0)

	assert.Equal(t, model.PatternStaggered, l.Kind)
	assert.Equal(t, 3, l.Rows)
	assert.Equal(t, 5, l.HolesPerOddRow)
	assert.Equal(t, 5, l.HolesPerEvenRow)
	assert.Equal(t, 15, l.HoleCount())
}

func TestStaggered_OffsetRows(t *testing.T) {
	length, spacing := 20.0, 6.4975
	l := Staggered(length, 20, 5.65, spacing, 0)
	require.Equal(t, 3, l.Rows)
	require.Equal(t, 3, l.HolesPerOddRow)
	require.Equal(t, 3, l.HolesPerEvenRow)

	outer := l.Holes[0:3]
	inner := l.Holes[3:6]
	assert.InDelta(t, spacing/2, outer[0].X, 1e-9)
	assert.InDelta(t, length-spacing/2, outer[2].X, 1e-9)

	// Inset row starts and ends half a spacing inside the outer row.
	assert.InDelta(t, outer[0].X+spacing/2, inner[0].X, 1e-9)
	assert.InDelta(t, outer[2].X-spacing/2, inner[2].X, 1e-9)
	for _, h := range inner {
		assert.GreaterOrEqual(t, h.X, spacing-1e-9)
		assert.LessOrEqual(t, h.X, length-spacing+1e-9)
	}

	// Third row repeats the first row's x positions.
	for i := 0; i < 3; i++ {
		assert.Equal(t, outer[i].X, l.Holes[6+i].X)
	}
}

func TestPatterns_Deterministic(t *testing.T) {
	for _, kind := range []model.PatternKind{model.PatternSquare, model.PatternStaggered} {
		a := Generate(kind, 73, 41, 4.2, 4.83, 0)
		b := Generate(kind, 73, 41, 4.2, 4.83, 0)
		assert.Equal(t, a, b, kind.String())
	}
}

func TestPatterns_TruncationKeepsPrefix(t *testing.T) {
	for _, kind := range []model.PatternKind{model.PatternSquare, model.PatternStaggered} {
		full := Generate(kind, 60, 35, 3.9, 4.5, 0)
		require.Greater(t, full.HoleCount(), 20)

		for _, k := range []int{1, 7, 13, full.HoleCount() - 1} {
			cut := Generate(kind, 60, 35, 3.9, 4.5, k)
			require.Equal(t, k, cut.HoleCount(), "%s k=%d", kind, k)
			assert.Equal(t, full.Holes[:k], cut.Holes, "%s k=%d", kind, k)
			assert.Equal(t, full.Rows, cut.Rows)
		}

		over := Generate(kind, 60, 35, 3.9, 4.5, full.HoleCount()+10)
		assert.Equal(t, full.HoleCount(), over.HoleCount())
	}
}

func TestPatterns_DegenerateBurdenOrSpacing(t *testing.T) {
	cases := []struct{ burden, spacing float64 }{
		{0, 5}, {5, 0}, {-1, 5}, {5, -2}, {0, 0},
	}
	for _, c := range cases {
		sq := Square(20, 20, c.burden, c.spacing, 0)
		st := Staggered(20, 20, c.burden, c.spacing, 0)
		assert.True(t, sq.Empty())
		assert.True(t, st.Empty())
		assert.Zero(t, sq.Rows)
		assert.Zero(t, st.Rows)
		assert.Zero(t, NaturalHoleCount(model.PatternSquare, 20, 20, c.burden, c.spacing))
	}
}

func TestPatterns_AreaContainment(t *testing.T) {
	dims := []struct{ length, width, burden, spacing float64 }{
		{20, 20, 5.65, 5.65},
		{10, 10, 8.05, 9.2575},
		{12, 3, 5.65, 6.4975},
		{2, 1, 5, 5},
		{500, 500, 3.0, 3.45},
		{17, 11, 2.3, 2.645},
	}
	for _, d := range dims {
		for _, kind := range []model.PatternKind{model.PatternSquare, model.PatternStaggered} {
			l := Generate(kind, d.length, d.width, d.burden, d.spacing, 0)
			require.False(t, l.Empty())
			for i, h := range l.Holes {
				assert.True(t, h.X >= 0 && h.X <= d.length, "%s hole %d x=%f outside [0,%f]", kind, i, h.X, d.length)
				assert.True(t, h.Y >= 0 && h.Y <= d.width, "%s hole %d y=%f outside [0,%f]", kind, i, h.Y, d.width)
			}
		}
	}
}

func TestNaturalHoleCountMatchesGeneration(t *testing.T) {
	for _, kind := range []model.PatternKind{model.PatternSquare, model.PatternStaggered} {
		for _, width := range []float64{10, 23, 47} {
			l := Generate(kind, 44, width, 4.4, 5.06, 0)
			assert.Equal(t, l.HoleCount(), NaturalHoleCount(kind, 44, width, 4.4, 5.06), "%s width=%f", kind, width)
		}
	}
}

func TestManual_Square(t *testing.T) {
	l := Manual(20, 10, 3, 2, model.PatternSquare)
	require.Equal(t, 6, l.HoleCount())
	assert.InDelta(t, 5.0, l.Holes[0].X, 1e-9)
	assert.InDelta(t, 10.0/3, l.Holes[0].Y, 1e-9)
	assert.InDelta(t, 15.0, l.Holes[5].X, 1e-9)
	assert.InDelta(t, 20.0/3, l.Holes[5].Y, 1e-9)
}

func TestManual_StaggeredOffset(t *testing.T) {
	l := Manual(20, 10, 10, 3, model.PatternStaggered)
	require.Equal(t, 30, l.HoleCount())

	xStep := 20.0 / 11
	for i := 0; i < 10; i++ {
		assert.InDelta(t, xStep*float64(i+1), l.Holes[i].X, 1e-9)
		assert.InDelta(t, l.Holes[i].X-xStep/2, l.Holes[10+i].X, 1e-9)
	}
}

func TestManual_StaggeredLastRowEdgeTrim(t *testing.T) {
	l := Manual(20, 10, 10, 2, model.PatternStaggered)
	assert.Equal(t, 19, l.HoleCount())
	for _, h := range l.Holes[10:] {
		assert.Less(t, h.X, 20*0.85)
	}
}

func TestManual_EmptyForNonPositiveCounts(t *testing.T) {
	assert.True(t, Manual(20, 10, 0, 3, model.PatternSquare).Empty())
	assert.True(t, Manual(20, 10, 3, 0, model.PatternStaggered).Empty())
	assert.True(t, Manual(20, 10, -1, -1, model.PatternSquare).Empty())
}

func TestManualGrid(t *testing.T) {
	perRow, rows := ManualGrid(10, model.PatternSquare)
	assert.Equal(t, 4, perRow)
	assert.Equal(t, 3, rows)

	perRow, rows = ManualGrid(10, model.PatternStaggered)
	assert.Equal(t, 5, perRow)
	assert.Equal(t, 4, rows)

	perRow, rows = ManualGrid(0, model.PatternSquare)
	assert.Zero(t, perRow)
	assert.Zero(t, rows)
}

func TestSpacingFor(t *testing.T) {
	b := 5.65
	assert.InDelta(t, 5.65, SpacingFor(model.VariantSquare, b), 1e-9)
	assert.InDelta(t, 6.4975, SpacingFor(model.VariantStaggered, b), 1e-9)
	assert.InDelta(t, 5.995, SpacingFor(model.VariantRectangular, b), 1e-9)
	assert.InDelta(t, 5.65, SpacingForKind(model.PatternSquare, b), 1e-9)
	assert.InDelta(t, 6.4975, SpacingForKind(model.PatternStaggered, b), 1e-9)
}

func TestSuggestBurdenSpacing(t *testing.T) {
	b, s := SuggestBurdenSpacing(model.Medium, 100)
	assert.InDelta(t, 3.5, b, 1e-9)
	assert.InDelta(t, 4.55, s, 1e-9)

	b, _ = SuggestBurdenSpacing(model.Soft, 100)
	assert.InDelta(t, 4.5, b, 1e-9)

	b, _ = SuggestBurdenSpacing(model.VeryHard, 100)
	assert.InDelta(t, 2.5, b, 1e-9)
}
