package main

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/piwi3910/blastplan/internal/flyrock"
)

func TestFlyrockCell(t *testing.T) {
	valid := flyrock.Calculate(flyrock.Params{
		Burden:           5.65,
		PowderFactor:     0.4,
		RockDensity:      2500,
		ExplosiveDensity: 850,
		HoleDiameter:     0.2,
		StemmingLength:   2,
	})
	assert.Regexp(t, `^\d+\.\d m$`, flyrockCell(valid))

	degenerate := valid
	degenerate.StemmingFactor = -0.4
	degenerate.MaxDistance = -10
	assert.Equal(t, "n/a", flyrockCell(degenerate))
}
