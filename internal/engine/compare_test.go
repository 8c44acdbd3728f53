package engine

import (
	"testing"

	"github.com/piwi3910/blastplan/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildDefaultScenarios(t *testing.T) {
	in := baseInputs()
	in.Explosive = model.Emulsion

	scenarios := BuildDefaultScenarios(in)
	require.Len(t, scenarios, 5)

	assert.Equal(t, "Current Inputs", scenarios[0].Name)
	assert.Equal(t, in, scenarios[0].Inputs)

	assert.Equal(t, model.PatternStaggered, scenarios[1].Inputs.Pattern)
	assert.False(t, scenarios[1].Inputs.AutoPattern)

	assert.Equal(t, "Optimum Diameter", scenarios[2].Name)
	assert.Zero(t, scenarios[2].Inputs.HoleDiameterMM)

	assert.Equal(t, "ANFO (recommended)", scenarios[3].Name)
	assert.Equal(t, model.ANFO, scenarios[3].Inputs.Explosive)

	assert.Equal(t, model.VolumeManual, scenarios[4].Inputs.VolumeMode)
	assert.InDelta(t, 2000.0, scenarios[4].Inputs.ManualVolume, 1e-9)
}

func TestBuildDefaultScenarios_InvalidBase(t *testing.T) {
	in := baseInputs()
	in.Pattern = model.PatternKind(7)
	scenarios := BuildDefaultScenarios(in)
	assert.Len(t, scenarios, 1)
}

func TestCompareScenarios(t *testing.T) {
	in := baseInputs()
	results := CompareScenarios(BuildDefaultScenarios(in))
	require.NotEmpty(t, results)

	for _, r := range results {
		require.NoError(t, r.Err, r.Scenario.Name)
		assert.Equal(t, r.Result.HoleCount, r.HoleCount)
		assert.Equal(t, r.Result.Charge.TotalExplosive, r.TotalExplosive)
	}
	assert.Equal(t, "Current Inputs", results[0].Scenario.Name)
	assert.Equal(t, 9, results[0].HoleCount)
}

func TestCompareScenarios_ReportsErrors(t *testing.T) {
	bad := baseInputs()
	bad.Water = model.WaterCondition(12)
	results := CompareScenarios([]ComparisonScenario{{Name: "bad", Inputs: bad}})
	require.Len(t, results, 1)
	assert.Error(t, results[0].Err)
}
