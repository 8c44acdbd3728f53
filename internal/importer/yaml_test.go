package importer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/piwi3910/blastplan/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDesign(t *testing.T) {
	data := []byte(`
name: Quarry East
geometry:
  length: 45
  width: 30
  height: 18
  bench_height: 12
hole_diameter_mm: 127
water_condition: very wet
cost_sensitivity: high
auto_explosive: false
explosive: Heavy ANFO
auto_pattern: false
pattern: staggered
`)
	in, notes, err := ParseDesign(data)
	require.NoError(t, err)
	assert.Empty(t, notes)

	assert.Equal(t, "Quarry East", in.Name)
	assert.Equal(t, model.BenchGeometry{Length: 45, Width: 30, Height: 18, BenchHeight: 12}, in.Geometry)
	assert.Equal(t, 127.0, in.HoleDiameterMM)
	assert.Equal(t, model.VeryWet, in.Water)
	assert.Equal(t, model.CostPriority, in.Cost)
	assert.False(t, in.AutoExplosive)
	assert.Equal(t, model.HeavyANFO, in.Explosive)
	assert.Equal(t, model.PatternStaggered, in.Pattern)

	// Fields absent from the document keep their defaults.
	defaults := model.DefaultInputs()
	assert.Equal(t, defaults.RockDensity, in.RockDensity)
	assert.Equal(t, defaults.PWaveVelocity, in.PWaveVelocity)
}

func TestParseDesign_ExplicitChoicesDisableRecommendation(t *testing.T) {
	in, _, err := ParseDesign([]byte("explosive: emulsion\npattern: staggered\n"))
	require.NoError(t, err)
	assert.False(t, in.AutoExplosive)
	assert.Equal(t, model.Emulsion, in.Explosive)
	assert.False(t, in.AutoPattern)
	assert.Equal(t, model.PatternStaggered, in.Pattern)

	in, _, err = ParseDesign([]byte("explosive: emulsion\n"))
	require.NoError(t, err)
	assert.False(t, in.AutoExplosive)
	assert.True(t, in.AutoPattern)
}

func TestParseDesign_ExplicitAutoKeyWins(t *testing.T) {
	in, _, err := ParseDesign([]byte("auto_explosive: true\nexplosive: emulsion\nauto_pattern: true\npattern: staggered\n"))
	require.NoError(t, err)
	assert.True(t, in.AutoExplosive)
	assert.Equal(t, model.Emulsion, in.Explosive)
	assert.True(t, in.AutoPattern)

	in, _, err = ParseDesign([]byte("name: Defaults only\n"))
	require.NoError(t, err)
	assert.True(t, in.AutoExplosive)
	assert.True(t, in.AutoPattern)
}

func TestParseDesign_NormalizesWithNotes(t *testing.T) {
	in, notes, err := ParseDesign([]byte("geometry:\n  length: 800\n  bench_height: 30\n"))
	require.NoError(t, err)
	assert.Equal(t, model.MaxAreaDimension, in.Geometry.Length)
	assert.Equal(t, in.Geometry.Height, in.Geometry.BenchHeight)
	assert.Len(t, notes, 2)
}

func TestParseDesign_Errors(t *testing.T) {
	_, _, err := ParseDesign([]byte("geometry: [1, 2"))
	assert.Error(t, err)

	_, _, err = ParseDesign([]byte("explosive: dynamite\n"))
	assert.Error(t, err)
}

func TestSaveAndLoadDesign(t *testing.T) {
	dir := t.TempDir()
	in := model.DefaultInputs()
	in.Name = "Bench 7"
	in.HoleDiameterMM = 165
	in.AutoPattern = false
	in.Pattern = model.PatternStaggered
	in.VolumeMode = model.VolumeManual
	in.ManualVolume = 1500

	path := filepath.Join(dir, "bench7.yaml")
	require.NoError(t, SaveDesign(path, in))

	loaded, notes, err := LoadDesign(path)
	require.NoError(t, err)
	assert.Empty(t, notes)
	assert.Equal(t, in, loaded)
}

func TestLoadDesign_Directory(t *testing.T) {
	dir := t.TempDir()
	in := model.DefaultInputs()
	in.Name = "From directory"
	require.NoError(t, SaveDesign(filepath.Join(dir, DesignFileName), in))

	loaded, _, err := LoadDesign(dir)
	require.NoError(t, err)
	assert.Equal(t, "From directory", loaded.Name)
}

func TestLoadDesign_Missing(t *testing.T) {
	_, _, err := LoadDesign(filepath.Join(t.TempDir(), "none.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
