// Package charge derives hole geometry, explosive loading and powder factor
// for a blasting round from bench height, hole diameter and explosive density.
package charge

import (
	"errors"
	"math"

	"github.com/piwi3910/blastplan/internal/model"
)

// ErrNegativeChargeColumn reports stemming that fills the whole hole. The
// charge figures are still returned (zero or negative) so callers can warn.
var ErrNegativeChargeColumn = errors.New("stemming length leaves no room for explosive")

// Empirical coefficients of the bench crater method.
const (
	burdenPerMM     = 0.024
	burdenOffset    = 0.85
	subdrillRatio   = 0.4
	stemmingRatio   = 1.0
	diameterPerM    = 1000.0 / 120.0 // optimum diameter (mm) per meter of bench
	largeScaleAbove = 200.0          // mm
	smallScaleFrom  = 83.0           // mm
)

// Burden returns B = 0.024 x D + 0.85 meters for a diameter in mm.
func Burden(diameterMM float64) float64 {
	return burdenPerMM*diameterMM + burdenOffset
}

// HoleDesignFor computes the per-hole geometry for a bench height (m) and
// hole diameter (mm). Spacing is left to the pattern choice.
func HoleDesignFor(benchHeight, diameterMM float64) model.HoleDesign {
	b := Burden(diameterMM)
	j := subdrillRatio * b
	t := stemmingRatio * b
	depth := benchHeight + j
	return model.HoleDesign{
		DiameterMM:            diameterMM,
		Radius:                diameterMM / 2000,
		Depth:                 depth,
		Burden:                b,
		Subdrilling:           j,
		Stemming:              t,
		ExplosiveColumnLength: depth - t,
	}
}

// Compute returns the explosive loading of a round. The explosive column is
// benchHeight + subdrilling - stemming and is never clamped: a non-positive
// column yields a zero or negative charge together with
// ErrNegativeChargeColumn.
func Compute(diameterMM, densityKgM3, benchHeight, subdrilling, stemming float64, holeCount int, blastVolume float64) (model.ExplosiveCharge, error) {
	d := diameterMM / 1000
	column := benchHeight + subdrilling - stemming
	holeVolume := math.Pi * d * d / 4 * column
	perHole := densityKgM3 * holeVolume
	total := perHole * float64(holeCount)

	c := model.ExplosiveCharge{
		DensityKgM3:         densityKgM3,
		ColumnLength:        column,
		AvailableHoleVolume: holeVolume,
		ChargePerHole:       perHole,
		HoleCount:           holeCount,
		TotalExplosive:      total,
		BlastVolume:         blastVolume,
	}
	c.PowderFactorVolPerMass, c.PowderFactorMassPerVol = PowderFactors(blastVolume, total)

	if column <= 0 {
		return c, ErrNegativeChargeColumn
	}
	return c, nil
}

// ForExplosive is Compute with the density taken from the explosive type,
// or from densityOverride (g/cm³) when it is positive.
func ForExplosive(t model.ExplosiveType, densityOverride float64, hole model.HoleDesign, benchHeight float64, holeCount int, blastVolume float64) (model.ExplosiveCharge, error) {
	density := t.DensityKgM3()
	if densityOverride > 0 {
		density = densityOverride * 1000
	}
	c, err := Compute(hole.DiameterMM, density, benchHeight, hole.Subdrilling, hole.Stemming, holeCount, blastVolume)
	c.Type = t
	return c, err
}

// PowderFactors returns blast volume per explosive mass (m³/kg) and explosive
// mass per blast volume (kg/m³). Each is zero when its divisor is zero.
func PowderFactors(blastVolume, totalExplosive float64) (volPerMass, massPerVol float64) {
	if totalExplosive > 0 {
		volPerMass = blastVolume / totalExplosive
	}
	if blastVolume > 0 {
		massPerVol = totalExplosive / blastVolume
	}
	return volPerMass, massPerVol
}

// VolumePerHole returns burden x spacing x bench height.
func VolumePerHole(burden, spacing, benchHeight float64) float64 {
	return burden * spacing * benchHeight
}

// HoleCountFromVolume returns volume / volumePerHole rounded half to even,
// never less than 1. A non-positive volume per hole yields 1.
func HoleCountFromVolume(blastVolume, burden, spacing, benchHeight float64) int {
	perHole := VolumePerHole(burden, spacing, benchHeight)
	if perHole <= 0 {
		return 1
	}
	return max(1, int(math.RoundToEven(blastVolume/perHole)))
}

// OptimalDiameterMM derives the hole diameter from bench height
// (height / 120, in mm), rounded and limited to the supported bit range.
func OptimalDiameterMM(benchHeight float64) float64 {
	d := math.Round(benchHeight * diameterPerM)
	return math.Max(model.MinHoleDiameterMM, math.Min(model.MaxHoleDiameterMM, d))
}

// OperationScale classifies a hole diameter as a small- or large-scale
// operation, or "" outside both bands.
func OperationScale(diameterMM float64) string {
	switch {
	case diameterMM >= smallScaleFrom && diameterMM <= largeScaleAbove:
		return "small-scale"
	case diameterMM > largeScaleAbove && diameterMM <= model.MaxHoleDiameterMM:
		return "large-scale"
	}
	return ""
}

// FullBlastVolume returns length x width x bench height.
func FullBlastVolume(g model.BenchGeometry) float64 {
	return g.Length * g.Width * g.BenchHeight
}

// BlastVolume returns the volume for the given mode. Manual volumes are
// limited to (10, length x width x height).
func BlastVolume(g model.BenchGeometry, mode model.BlastVolumeMode, manual float64) float64 {
	if mode == model.VolumeManual {
		return math.Max(model.MinManualVolume, math.Min(manual, g.BlockVolume()))
	}
	return FullBlastVolume(g)
}
