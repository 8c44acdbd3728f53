package recommend

import (
	"fmt"

	"github.com/piwi3910/blastplan/internal/model"
	"github.com/piwi3910/blastplan/internal/pattern"
)

// Explosive selects the explosive type for the water condition, rock class
// and cost sensitivity:
//
//	Dry      soft/medium rock -> ANFO; hard rock -> Heavy ANFO (ANFO if cost priority)
//	Damp     Heavy ANFO
//	Wet      Slurry (Heavy ANFO if cost priority)
//	Very Wet hard rock -> Emulsion; otherwise Emulsion (Slurry if cost priority)
func Explosive(water model.WaterCondition, hardness model.RockHardness, cost model.CostSensitivity) model.ExplosiveType {
	costFirst := cost == model.CostPriority
	switch water {
	case model.Dry:
		if !hardness.IsHard() || costFirst {
			return model.ANFO
		}
		return model.HeavyANFO
	case model.Damp:
		return model.HeavyANFO
	case model.Wet:
		if costFirst {
			return model.HeavyANFO
		}
		return model.Slurry
	case model.VeryWet:
		if hardness.IsHard() || !costFirst {
			return model.Emulsion
		}
		return model.Slurry
	}
	return model.ANFO
}

// PatternRecommendation is the recommended drill pattern. Kind is the stored
// two-way value; Variant keeps the rectangular sub-case for spacing display.
type PatternRecommendation struct {
	Kind    model.PatternKind
	Variant model.PatternVariant
}

// Spacing returns the spacing the recommended variant would use for a
// burden. The rectangular variant is shown but never laid out.
func (r PatternRecommendation) Spacing(burden float64) float64 {
	return pattern.SpacingFor(r.Variant, burden)
}

// Pattern recommends a drill pattern from rock density (g/cm³) and P-wave
// velocity (km/s): dense or fast rock gets a staggered pattern, medium rock a
// rectangular one and soft rock a square one.
func Pattern(rockDensity, pWaveVelocity float64) PatternRecommendation {
	switch {
	case rockDensity > 2.7 || pWaveVelocity > 4.5:
		return PatternRecommendation{Kind: model.PatternStaggered, Variant: model.VariantStaggered}
	case rockDensity > 2.5 || pWaveVelocity > 3.5:
		return PatternRecommendation{Kind: model.PatternSquare, Variant: model.VariantRectangular}
	default:
		return PatternRecommendation{Kind: model.PatternSquare, Variant: model.VariantSquare}
	}
}

func bandLabel(lo, hi float64) string {
	switch {
	case lo == 0:
		return fmt.Sprintf("<%.1f", hi)
	case hi == 0:
		return fmt.Sprintf(">%.1f", lo)
	}
	return fmt.Sprintf("%.1f-%.1f", lo, hi)
}
