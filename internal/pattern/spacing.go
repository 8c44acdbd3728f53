package pattern

import "github.com/piwi3910/blastplan/internal/model"

// SpacingFor returns the hole spacing for a burden under the given pattern
// variant: square S = B, staggered S = 1.15B, rectangular S = 0.9B + 0.91.
func SpacingFor(v model.PatternVariant, burden float64) float64 {
	switch v {
	case model.VariantStaggered:
		return 1.15 * burden
	case model.VariantRectangular:
		return 0.9*burden + 0.91
	case model.VariantSquare:
		return burden
	}
	return burden
}

// SpacingForKind returns the spacing used by the stored two-way pattern
// kind: square patterns use S = B.
func SpacingForKind(kind model.PatternKind, burden float64) float64 {
	if kind == model.PatternStaggered {
		return SpacingFor(model.VariantStaggered, burden)
	}
	return SpacingFor(model.VariantSquare, burden)
}

// SuggestBurdenSpacing estimates burden as K x diameter (mm) with K chosen by
// rock hardness, and spacing as 1.3 x burden.
func SuggestBurdenSpacing(hardness model.RockHardness, diameterMM float64) (burden, spacing float64) {
	var k float64
	switch hardness {
	case model.VerySoft, model.Soft:
		k = 0.045
	case model.Hard, model.VeryHard:
		k = 0.025
	case model.Medium:
		k = 0.035
	default:
		k = 0.035
	}
	burden = k * diameterMM
	return burden, burden * 1.3
}
