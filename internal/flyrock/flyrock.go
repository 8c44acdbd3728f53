// Package flyrock estimates the maximum throw distance of flyrock with the
// Roth (1979) model and derives safety-zone radii from it.
package flyrock

import (
	"errors"
	"math"
)

// ErrNoSafeDistance reports an estimate whose stemming correction leaves no
// positive throw distance, so no safety radius can be derived from it.
var ErrNoSafeDistance = errors.New("flyrock model gives no safe distance")

const (
	gravity        = 9.81 // m/s²
	velocityCoeff  = 27.4
	launchAngleDeg = 45.0
	safetyFactor   = 1.5
	yellowFactor   = 1.2
	greenFactor    = 1.5
)

// Params are the shot parameters the model needs. Densities are in kg/m³,
// lengths in meters.
type Params struct {
	Burden           float64
	PowderFactor     float64 // kg/m³
	RockDensity      float64
	ExplosiveDensity float64
	HoleDiameter     float64
	StemmingLength   float64
}

// Estimate is the result of the Roth model. MaxDistance already includes
// the safety factor.
type Estimate struct {
	MaxDistance         float64 `json:"max_distance"`
	InitialVelocity     float64 `json:"initial_velocity"`
	LaunchAngle         float64 `json:"launch_angle"`
	SafetyFactor        float64 `json:"safety_factor"`
	UncorrectedDistance float64 `json:"uncorrected_distance"`
	StemmingFactor      float64 `json:"stemming_factor"`
	BurdenFactor        float64 `json:"burden_factor"`
	Zones               Zones   `json:"safety_zones"`
}

// Valid reports whether the estimate carries a usable, positive safety
// distance. Stemming longer than 20 hole diameters drives the Roth
// stemming factor to zero or below.
func (e Estimate) Valid() bool {
	return e.StemmingFactor > 0 && e.MaxDistance > 0
}

// Zones are the radii of the exclusion circles around the blast.
type Zones struct {
	Red    float64 `json:"red"`    // no access
	Yellow float64 `json:"yellow"` // limited access
	Green  float64 `json:"green"`  // safe
}

// InitialVelocity returns v0 = 27.4 x sqrt(PF x rho_e / rho_r) in m/s. A
// non-positive rock density or a negative product yields 0.
func InitialVelocity(powderFactor, rockDensity, explosiveDensity float64) float64 {
	if rockDensity <= 0 {
		return 0
	}
	r := powderFactor * explosiveDensity / rockDensity
	if r <= 0 {
		return 0
	}
	return velocityCoeff * math.Sqrt(r)
}

// Calculate runs the model: projectile range at 45°, corrected by the
// stemming factor 1 - T/(20d) and the burden factor 1 + B/10, then
// multiplied by the safety factor.
func Calculate(p Params) Estimate {
	v0 := InitialVelocity(p.PowderFactor, p.RockDensity, p.ExplosiveDensity)
	angle := launchAngleDeg * math.Pi / 180
	distance := v0 * v0 * math.Sin(2*angle) / gravity

	stemming := 1.0
	if p.HoleDiameter > 0 {
		stemming = 1 - p.StemmingLength/(20*p.HoleDiameter)
	}
	burden := 1 + p.Burden/10

	safe := distance * stemming * burden * safetyFactor
	return Estimate{
		MaxDistance:         safe,
		InitialVelocity:     v0,
		LaunchAngle:         launchAngleDeg,
		SafetyFactor:        safetyFactor,
		UncorrectedDistance: distance,
		StemmingFactor:      stemming,
		BurdenFactor:        burden,
		Zones:               SafetyZones(safe),
	}
}

// SafetyZones returns red = d, yellow = 1.2d, green = 1.5d.
func SafetyZones(maxDistance float64) Zones {
	return Zones{
		Red:    maxDistance,
		Yellow: maxDistance * yellowFactor,
		Green:  maxDistance * greenFactor,
	}
}
