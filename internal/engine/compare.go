package engine

import (
	"fmt"

	"github.com/piwi3910/blastplan/internal/model"
)

// ComparisonScenario defines a named set of inputs to compare.
type ComparisonScenario struct {
	Name   string
	Inputs model.BlastDesignInputs
}

// ComparisonResult holds the design and headline figures for a single
// scenario. Err is set when the scenario could not be designed.
type ComparisonResult struct {
	Scenario        ComparisonScenario
	Result          Result
	HoleCount       int
	TotalExplosive  float64
	PowderFactor    float64 // kg/m³
	FlyrockDistance float64
	Err             error
}

// CompareScenarios designs each scenario and returns the results in
// scenario order, for side-by-side what-if comparison.
func CompareScenarios(scenarios []ComparisonScenario) []ComparisonResult {
	results := make([]ComparisonResult, 0, len(scenarios))

	for _, scenario := range scenarios {
		res, err := Design(scenario.Inputs)
		results = append(results, ComparisonResult{
			Scenario:        scenario,
			Result:          res,
			HoleCount:       res.HoleCount,
			TotalExplosive:  res.Charge.TotalExplosive,
			PowderFactor:    res.Charge.PowderFactorMassPerVol,
			FlyrockDistance: res.Flyrock.MaxDistance,
			Err:             err,
		})
	}

	return results
}

// BuildDefaultScenarios generates comparison scenarios around the base
// inputs, varying the pattern, hole diameter, explosive and blast volume.
func BuildDefaultScenarios(base model.BlastDesignInputs) []ComparisonScenario {
	scenarios := []ComparisonScenario{
		{
			Name:   "Current Inputs",
			Inputs: base,
		},
	}

	current, err := Design(base)
	if err != nil {
		return scenarios
	}

	// Scenario: the other pattern
	altPattern := base
	altPattern.AutoPattern = false
	if current.Pattern == model.PatternStaggered {
		altPattern.Pattern = model.PatternSquare
	} else {
		altPattern.Pattern = model.PatternStaggered
	}
	scenarios = append(scenarios, ComparisonScenario{
		Name:   altPattern.Pattern.DisplayName() + " Pattern",
		Inputs: altPattern,
	})

	// Scenario: optimum diameter when a bit was chosen explicitly
	if base.HoleDiameterMM > 0 {
		optimum := base
		optimum.HoleDiameterMM = 0
		scenarios = append(scenarios, ComparisonScenario{
			Name:   "Optimum Diameter",
			Inputs: optimum,
		})
	}

	// Scenario: the recommended explosive, or the cheapest one
	altExplosive := base
	altExplosive.AutoExplosive = false
	altExplosive.DensityOverride = 0
	if !base.AutoExplosive && base.Explosive != current.RecommendedExplosive {
		altExplosive.Explosive = current.RecommendedExplosive
		scenarios = append(scenarios, ComparisonScenario{
			Name:   fmt.Sprintf("%s (recommended)", altExplosive.Explosive),
			Inputs: altExplosive,
		})
	} else if current.Explosive != model.ANFO {
		altExplosive.Explosive = model.ANFO
		scenarios = append(scenarios, ComparisonScenario{
			Name:   "ANFO (lowest cost)",
			Inputs: altExplosive,
		})
	}

	// Scenario: blast half the bench
	if base.VolumeMode == model.VolumeFull {
		half := base
		half.VolumeMode = model.VolumeManual
		half.ManualVolume = current.Charge.BlastVolume / 2
		scenarios = append(scenarios, ComparisonScenario{
			Name:   fmt.Sprintf("Half Volume (%.0f m³)", half.ManualVolume),
			Inputs: half,
		})
	}

	return scenarios
}
