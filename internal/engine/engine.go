// Package engine runs the full blast design pipeline: recommendation,
// hole geometry, pattern layout, charge and flyrock. It holds no state;
// every call recomputes the design from its inputs.
package engine

import (
	"errors"
	"fmt"

	"github.com/piwi3910/blastplan/internal/charge"
	"github.com/piwi3910/blastplan/internal/flyrock"
	"github.com/piwi3910/blastplan/internal/model"
	"github.com/piwi3910/blastplan/internal/pattern"
	"github.com/piwi3910/blastplan/internal/recommend"
)

// Result is a fully computed blasting round.
type Result struct {
	Inputs   model.BlastDesignInputs
	Geometry model.BenchGeometry

	Rock                 model.RockClassification
	Explosive            model.ExplosiveType
	RecommendedExplosive model.ExplosiveType
	Pattern              model.PatternKind
	RecommendedPattern   recommend.PatternRecommendation

	Hole            model.HoleDesign
	DiameterDerived bool
	OperationScale  string
	VolumePerHole   float64

	Layout model.PatternLayout
	// GeometricHoles is the hole count of the untruncated burden/spacing grid.
	GeometricHoles int
	// HoleCount is the number of holes charged.
	HoleCount int

	Charge  model.ExplosiveCharge
	Flyrock flyrock.Estimate

	Warnings []string
}

// Design computes a blasting round. Numeric inputs are not range checked;
// degenerate outcomes (empty layout, non-positive charge column, no flyrock
// safety distance) are reported in Result.Warnings. An error is returned
// only for inputs that cannot be interpreted at all, such as unknown enum
// values.
func Design(in model.BlastDesignInputs) (Result, error) {
	if err := checkEnums(in); err != nil {
		return Result{}, err
	}

	r := Result{Inputs: in, Geometry: in.Geometry.Clamp()}
	g := r.Geometry
	if g.BenchHeight < in.Geometry.BenchHeight {
		r.warnf("bench height %.2f m limited to block height %.2f m", in.Geometry.BenchHeight, g.BenchHeight)
	}

	diameter := in.HoleDiameterMM
	if diameter <= 0 {
		diameter = charge.OptimalDiameterMM(g.BenchHeight)
		r.DiameterDerived = true
	}
	r.OperationScale = charge.OperationScale(diameter)

	r.Rock = recommend.ClassifyRock(in.PWaveVelocity, in.RockDensity)
	r.RecommendedExplosive = recommend.Explosive(in.Water, r.Rock.Hardness, in.Cost)
	r.Explosive = in.Explosive
	if in.AutoExplosive {
		r.Explosive = r.RecommendedExplosive
	}

	r.RecommendedPattern = recommend.Pattern(in.RockDensity, in.PWaveVelocity)
	r.Pattern = in.Pattern
	if in.AutoPattern {
		r.Pattern = r.RecommendedPattern.Kind
	}

	r.Hole = charge.HoleDesignFor(g.BenchHeight, diameter)
	r.Hole.Spacing = pattern.SpacingForKind(r.Pattern, r.Hole.Burden)
	r.VolumePerHole = charge.VolumePerHole(r.Hole.Burden, r.Hole.Spacing, g.BenchHeight)

	volume := charge.BlastVolume(g, in.VolumeMode, in.ManualVolume)
	r.GeometricHoles = pattern.NaturalHoleCount(r.Pattern, g.Length, g.Width, r.Hole.Burden, r.Hole.Spacing)
	r.HoleCount = r.GeometricHoles
	if in.VolumeMode == model.VolumeManual {
		r.HoleCount = charge.HoleCountFromVolume(volume, r.Hole.Burden, r.Hole.Spacing, g.BenchHeight)
	}

	r.layout()

	c, err := charge.ForExplosive(r.Explosive, in.DensityOverride, r.Hole, g.BenchHeight, r.HoleCount, volume)
	if errors.Is(err, charge.ErrNegativeChargeColumn) {
		r.warnf("%v: column %.2f m, charge per hole %.2f kg", err, c.ColumnLength, c.ChargePerHole)
	}
	r.Charge = c

	r.Flyrock = flyrock.Calculate(flyrock.Params{
		Burden:           r.Hole.Burden,
		PowderFactor:     c.PowderFactorMassPerVol,
		RockDensity:      in.RockDensity * 1000,
		ExplosiveDensity: c.DensityKgM3,
		HoleDiameter:     r.Hole.DiameterM(),
		StemmingLength:   r.Hole.Stemming,
	})
	if !r.Flyrock.Valid() {
		r.warnf("%v: stemming factor %.2f, distance %.1f m", flyrock.ErrNoSafeDistance, r.Flyrock.StemmingFactor, r.Flyrock.MaxDistance)
	}
	return r, nil
}

// layout places the holes. Auto layouts follow the burden/spacing grid and
// are cut to the charged hole count; manual layouts use the requested rows
// and holes per row, or a grid sized for the charged hole count.
func (r *Result) layout() {
	in, g := r.Inputs, r.Geometry

	if in.LayoutMode == model.LayoutManual {
		perRow, rows := in.ManualHolesPerRow, in.ManualRows
		explicit := perRow > 0 && rows > 0
		if !explicit {
			perRow, rows = pattern.ManualGrid(r.HoleCount, r.Pattern)
		}
		r.Layout = pattern.Manual(g.Length, g.Width, perRow, rows, r.Pattern)
		if explicit && in.VolumeMode == model.VolumeFull {
			r.HoleCount = r.Layout.HoleCount()
		}
		r.Layout = r.Layout.Truncate(capHoles(r.HoleCount, in.MaxHoles))
	} else {
		r.Layout = pattern.Generate(r.Pattern, g.Length, g.Width, r.Hole.Burden, r.Hole.Spacing, capHoles(r.HoleCount, in.MaxHoles))
	}

	switch n := r.Layout.HoleCount(); {
	case n == 0:
		r.warnf("layout is empty")
	case n < r.HoleCount && in.MaxHoles > 0 && n == in.MaxHoles:
		r.warnf("layout limited to %d of %d holes", n, r.HoleCount)
	case n < r.HoleCount:
		r.warnf("%d holes required but only %d fit the bench area", r.HoleCount, n)
	}
}

func (r *Result) warnf(format string, args ...any) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

// capHoles returns the smaller positive limit, or 0 for none.
func capHoles(count, maxHoles int) int {
	switch {
	case maxHoles <= 0:
		return max(count, 0)
	case count <= 0:
		return maxHoles
	}
	return min(count, maxHoles)
}

func checkEnums(in model.BlastDesignInputs) error {
	switch in.Pattern {
	case model.PatternSquare, model.PatternStaggered:
	default:
		return fmt.Errorf("unknown pattern kind %d", int(in.Pattern))
	}
	switch in.Explosive {
	case model.ANFO, model.HeavyANFO, model.Slurry, model.Emulsion:
	default:
		return fmt.Errorf("unknown explosive type %d", int(in.Explosive))
	}
	switch in.Water {
	case model.Dry, model.Damp, model.Wet, model.VeryWet:
	default:
		return fmt.Errorf("unknown water condition %d", int(in.Water))
	}
	switch in.Cost {
	case model.CostPerformance, model.CostMedium, model.CostPriority:
	default:
		return fmt.Errorf("unknown cost sensitivity %d", int(in.Cost))
	}
	return nil
}

// SafetyCenter returns the point the flyrock zones are drawn around: the
// middle of the hole pattern, or of the bench when the layout is empty.
func (r Result) SafetyCenter() model.Point2D {
	if r.Layout.Empty() {
		return model.Point2D{X: r.Geometry.Length / 2, Y: r.Geometry.Width / 2}
	}
	lo, hi := r.Layout.Bounds()
	return model.Point2D{X: (lo.X + hi.X) / 2, Y: (lo.Y + hi.Y) / 2}
}

// SpacingRatios returns burden:spacing ratios for the three pattern variants,
// for the pattern decision matrix.
func (r Result) SpacingRatios() map[model.PatternVariant]float64 {
	b := r.Hole.Burden
	out := make(map[model.PatternVariant]float64, 3)
	for _, v := range []model.PatternVariant{model.VariantSquare, model.VariantStaggered, model.VariantRectangular} {
		if b > 0 {
			out[v] = pattern.SpacingFor(v, b) / b
		}
	}
	return out
}
