package recommend

import (
	"testing"

	"github.com/piwi3910/blastplan/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyRock_Ladder(t *testing.T) {
	tests := []struct {
		name    string
		pWave   float64
		density float64
		want    model.RockHardness
	}{
		{"very soft", 2.0, 2.0, model.VerySoft},
		{"soft first joint band", 3.0, 2.3, model.Soft},
		{"density above the very soft band", 2.4, 2.4, model.Soft},
		{"medium", 4.0, 2.6, model.Medium},
		{"hard", 5.0, 2.8, model.Hard},
		{"very hard", 6.0, 3.0, model.VeryHard},
		{"slow but dense falls through", 1.0, 3.2, model.VeryHard},
		{"band limit is exclusive", 2.5, 2.1, model.Soft},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := ClassifyRock(tc.pWave, tc.density)
			assert.Equal(t, tc.want, got.Hardness)
			assert.NotEmpty(t, got.UCSRange)
			assert.NotEmpty(t, got.Examples)
		})
	}
}

func TestClassifyRock_Details(t *testing.T) {
	c := ClassifyRock(4.0, 2.6)
	assert.Equal(t, "50-100 MPa", c.UCSRange)
	assert.Equal(t, "Limestone, dolomite", c.Examples)

	c = ClassifyRock(9, 9)
	assert.Equal(t, ">200 MPa", c.UCSRange)
}

func TestClassificationMatrix(t *testing.T) {
	rows := ClassificationMatrix()
	require.Len(t, rows, 5)
	assert.Equal(t, model.VerySoft, rows[0].Class.Hardness)
	assert.Equal(t, "<2.5", rows[0].PWaveRange)
	assert.Equal(t, "<2.2", rows[0].Density)
	assert.Equal(t, "2.5-3.5", rows[1].PWaveRange)
	assert.Equal(t, model.VeryHard, rows[4].Class.Hardness)
	assert.Equal(t, ">5.5", rows[4].PWaveRange)
	assert.Equal(t, ">2.9", rows[4].Density)
}

func TestExplosive_DecisionTable(t *testing.T) {
	hardnesses := []model.RockHardness{model.VerySoft, model.Soft, model.Medium, model.Hard, model.VeryHard}
	costs := []model.CostSensitivity{model.CostPerformance, model.CostMedium, model.CostPriority}

	for _, h := range hardnesses {
		for _, c := range costs {
			costFirst := c == model.CostPriority

			dry := Explosive(model.Dry, h, c)
			switch {
			case !h.IsHard():
				assert.Equal(t, model.ANFO, dry, "dry %s %s", h, c)
			case costFirst:
				assert.Equal(t, model.ANFO, dry, "dry %s %s", h, c)
			default:
				assert.Equal(t, model.HeavyANFO, dry, "dry %s %s", h, c)
			}

			assert.Equal(t, model.HeavyANFO, Explosive(model.Damp, h, c), "damp %s %s", h, c)

			wet := Explosive(model.Wet, h, c)
			if costFirst {
				assert.Equal(t, model.HeavyANFO, wet, "wet %s %s", h, c)
			} else {
				assert.Equal(t, model.Slurry, wet, "wet %s %s", h, c)
			}

			veryWet := Explosive(model.VeryWet, h, c)
			if !h.IsHard() && costFirst {
				assert.Equal(t, model.Slurry, veryWet, "very wet %s %s", h, c)
			} else {
				assert.Equal(t, model.Emulsion, veryWet, "very wet %s %s", h, c)
			}
		}
	}
}

func TestPattern(t *testing.T) {
	r := Pattern(2.8, 3.0)
	assert.Equal(t, model.PatternStaggered, r.Kind)
	assert.Equal(t, model.VariantStaggered, r.Variant)

	r = Pattern(2.0, 5.0)
	assert.Equal(t, model.PatternStaggered, r.Kind)

	r = Pattern(2.6, 3.0)
	assert.Equal(t, model.PatternSquare, r.Kind)
	assert.Equal(t, model.VariantRectangular, r.Variant)
	assert.InDelta(t, 0.9*5.65+0.91, r.Spacing(5.65), 1e-9)

	r = Pattern(2.5, 3.5)
	assert.Equal(t, model.PatternSquare, r.Kind)
	assert.Equal(t, model.VariantSquare, r.Variant)
	assert.InDelta(t, 5.65, r.Spacing(5.65), 1e-9)
}
