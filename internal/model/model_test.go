package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestBenchGeometryClamp(t *testing.T) {
	g := BenchGeometry{Length: 20, Width: 20, Height: 8, BenchHeight: 12}
	c := g.Clamp()
	assert.Equal(t, 8.0, c.BenchHeight)
	assert.Equal(t, 12.0, g.BenchHeight, "original must be untouched")

	ok := BenchGeometry{Height: 20, BenchHeight: 10}.Clamp()
	assert.Equal(t, 10.0, ok.BenchHeight)
}

func TestExplosiveDensities(t *testing.T) {
	cases := map[ExplosiveType]float64{
		ANFO:      850,
		HeavyANFO: 1225,
		Slurry:    1175,
		Emulsion:  1300,
	}
	for et, want := range cases {
		assert.InDelta(t, want, et.DensityKgM3(), 1e-9, et.String())
	}
}

func TestParseExplosiveType(t *testing.T) {
	for _, s := range []string{"Heavy ANFO", "heavy-anfo", "HEAVY_ANFO"} {
		et, err := ParseExplosiveType(s)
		require.NoError(t, err, s)
		assert.Equal(t, HeavyANFO, et)
	}
	_, err := ParseExplosiveType("dynamite")
	assert.Error(t, err)
}

func TestParseWaterAndCost(t *testing.T) {
	w, err := ParseWaterCondition("Very Wet")
	require.NoError(t, err)
	assert.Equal(t, VeryWet, w)

	c, err := ParseCostSensitivity("High (Cost Priority)")
	require.NoError(t, err)
	assert.Equal(t, CostPriority, c)

	c, err = ParseCostSensitivity("low")
	require.NoError(t, err)
	assert.Equal(t, CostPerformance, c)

	_, err = ParseWaterCondition("flooded")
	assert.Error(t, err)
}

func TestPatternKindParse(t *testing.T) {
	p, err := ParsePatternKind("Rectangular")
	require.NoError(t, err)
	assert.Equal(t, PatternSquare, p)

	p, err = ParsePatternKind("staggered")
	require.NoError(t, err)
	assert.Equal(t, PatternStaggered, p)

	assert.Equal(t, PatternStaggered, VariantStaggered.Kind())
	assert.Equal(t, PatternSquare, VariantRectangular.Kind())
}

func TestPatternLayoutHelpers(t *testing.T) {
	l := PatternLayout{Holes: []Point2D{{1, 2}, {3, 4}, {5, 1}}}
	assert.Equal(t, 3, l.HoleCount())
	assert.Equal(t, []float64{1, 3, 5}, l.XS())
	assert.Equal(t, []float64{2, 4, 1}, l.YS())

	min, max := l.Bounds()
	assert.Equal(t, Point2D{1, 1}, min)
	assert.Equal(t, Point2D{5, 4}, max)

	tr := l.Truncate(2)
	assert.Equal(t, 2, tr.HoleCount())
	assert.Equal(t, 3, l.HoleCount())
	assert.Equal(t, 3, l.Truncate(0).HoleCount())
	assert.True(t, PatternLayout{}.Empty())
}

func TestNormalizeClampsInputs(t *testing.T) {
	in := DefaultInputs()
	in.Geometry = BenchGeometry{Length: 5, Width: 900, Height: 12, BenchHeight: 15}
	in.HoleDiameterMM = 400
	in.RockDensity = 4
	in.VolumeMode = VolumeManual
	in.ManualVolume = 1

	out, notes := in.Normalize()
	assert.Equal(t, 10.0, out.Geometry.Length)
	assert.Equal(t, 500.0, out.Geometry.Width)
	assert.Equal(t, 12.0, out.Geometry.BenchHeight)
	assert.Equal(t, 350.0, out.HoleDiameterMM)
	assert.Equal(t, 3.5, out.RockDensity)
	assert.Equal(t, 10.0, out.ManualVolume)
	assert.NotEmpty(t, notes)
}

func TestNormalizeKeepsAutoDiameter(t *testing.T) {
	out, notes := DefaultInputs().Normalize()
	assert.Equal(t, 0.0, out.HoleDiameterMM)
	assert.Empty(t, notes)
}

func TestInputsYAMLRoundTripUsesNames(t *testing.T) {
	in := DefaultInputs()
	in.Explosive = Emulsion
	in.Water = VeryWet
	in.Pattern = PatternStaggered
	in.VolumeMode = VolumeManual

	data, err := yaml.Marshal(in)
	require.NoError(t, err)
	assert.Contains(t, string(data), "explosive: Emulsion")
	assert.Contains(t, string(data), "water_condition: Very Wet")
	assert.Contains(t, string(data), "pattern: staggered")

	var back BlastDesignInputs
	require.NoError(t, yaml.Unmarshal(data, &back))
	assert.Equal(t, in, back)
}

func TestInputsJSONUsesNames(t *testing.T) {
	in := DefaultInputs()
	in.Cost = CostPriority
	data, err := json.Marshal(in)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"cost_sensitivity":"high"`)
	assert.Contains(t, string(data), `"layout_mode":"auto"`)
}
