package main

import (
	"fmt"

	"github.com/piwi3910/blastplan/internal/engine"
	"github.com/piwi3910/blastplan/internal/flyrock"
	"github.com/piwi3910/blastplan/internal/model"
	"github.com/piwi3910/blastplan/internal/recommend"
)

func printDesign(r engine.Result, cost float64) {
	g, h, c := r.Geometry, r.Hole, r.Charge

	fmt.Printf("DESIGN: %s\n", r.Inputs.Name)
	fmt.Printf("  Bench            %.1f x %.1f m, bench height %.1f m (block %.1f m)\n", g.Length, g.Width, g.BenchHeight, g.Height)
	fmt.Printf("  Rock class       %s (%s, %s)\n", r.Rock.Hardness, r.Rock.UCSRange, r.Rock.Examples)
	fmt.Println()

	diameter := fmt.Sprintf("%.0f mm", h.DiameterMM)
	if r.DiameterDerived {
		diameter += " (derived from bench height)"
	}
	if r.OperationScale != "" {
		diameter += ", " + r.OperationScale
	}
	fmt.Println("HOLE GEOMETRY:")
	fmt.Printf("  Diameter         %s\n", diameter)
	fmt.Printf("  Burden           %.2f m\n", h.Burden)
	fmt.Printf("  Spacing          %.2f m\n", h.Spacing)
	fmt.Printf("  Subdrilling      %.2f m\n", h.Subdrilling)
	fmt.Printf("  Stemming         %.2f m\n", h.Stemming)
	fmt.Printf("  Hole depth       %.2f m\n", h.Depth)
	fmt.Println()

	fmt.Println("PATTERN:")
	fmt.Printf("  Pattern          %s", r.Pattern.DisplayName())
	if r.Inputs.AutoPattern {
		fmt.Printf(" (recommended %s, S = %s)", r.RecommendedPattern.Variant, r.RecommendedPattern.Variant.SpacingFormula())
	}
	fmt.Println()
	fmt.Printf("  Rows             %d\n", r.Layout.Rows)
	if r.Layout.Kind == model.PatternStaggered && r.Inputs.LayoutMode == model.LayoutAuto {
		fmt.Printf("  Holes per row    %d / %d (alternating)\n", r.Layout.HolesPerOddRow, r.Layout.HolesPerEvenRow)
	} else {
		fmt.Printf("  Holes per row    %d\n", r.Layout.HolesPerRow)
	}
	fmt.Printf("  Holes charged    %d (laid out %d, grid %d)\n", r.HoleCount, r.Layout.HoleCount(), r.GeometricHoles)
	fmt.Printf("  Volume per hole  %.1f m³\n", r.VolumePerHole)
	fmt.Println()

	fmt.Println("CHARGE:")
	fmt.Printf("  Explosive        %s (%.0f kg/m³)", r.Explosive, c.DensityKgM3)
	if r.Inputs.AutoExplosive {
		fmt.Print(" recommended")
	} else if r.Explosive != r.RecommendedExplosive {
		fmt.Printf(" (recommended %s)", r.RecommendedExplosive)
	}
	fmt.Println()
	fmt.Printf("  Column length    %.2f m\n", c.ColumnLength)
	fmt.Printf("  Charge per hole  %.2f kg\n", c.ChargePerHole)
	fmt.Printf("  Total explosive  %.1f kg\n", c.TotalExplosive)
	fmt.Printf("  Blast volume     %.1f m³\n", c.BlastVolume)
	fmt.Printf("  Powder factor    %.3f kg/m³ (%.3f m³/kg)\n", c.PowderFactorMassPerVol, c.PowderFactorVolPerMass)
	if cost >= 0 {
		fmt.Printf("  Explosive cost   %.2f\n", cost)
	}
	fmt.Println()

	z := r.Flyrock.Zones
	fmt.Println("FLYROCK:")
	if r.Flyrock.Valid() {
		fmt.Printf("  Max distance     %.1f m (v0 %.1f m/s)\n", r.Flyrock.MaxDistance, r.Flyrock.InitialVelocity)
		fmt.Printf("  Safety zones     red %.0f m, yellow %.0f m, green %.0f m\n", z.Red, z.Yellow, z.Green)
	} else {
		fmt.Printf("  Max distance     n/a (v0 %.1f m/s, stemming factor %.2f)\n", r.Flyrock.InitialVelocity, r.Flyrock.StemmingFactor)
		fmt.Println("  Safety zones     n/a")
	}

	if len(r.Warnings) > 0 {
		fmt.Println()
		fmt.Printf("WARNINGS (%d):\n", len(r.Warnings))
		for _, w := range r.Warnings {
			fmt.Printf("  * %s\n", w)
		}
	}
}

func printRecommendation(rock model.RockClassification, e model.ExplosiveType, p recommend.PatternRecommendation) {
	props := e.Properties()
	fmt.Printf("Rock class:  %s\n", rock.Hardness)
	fmt.Printf("  UCS        %s\n", rock.UCSRange)
	fmt.Printf("  Strength   %s\n", rock.Strength)
	fmt.Printf("  Examples   %s\n", rock.Examples)
	fmt.Printf("Explosive:   %s (%.3f g/cm³)\n", e, e.Density())
	fmt.Printf("  Water      %s\n", props.WaterResistance)
	fmt.Printf("  VOD        %s m/s\n", props.VODRange)
	fmt.Printf("  Cost       %s\n", props.RelativeCost)
	fmt.Printf("  Best for   %s\n", props.BestFor)
	fmt.Printf("Pattern:     %s (S = %s)\n", p.Variant, p.Variant.SpacingFormula())
}

func printMatrix(rows []recommend.MatrixRow) {
	fmt.Printf("%-10s %-10s %-10s %-12s %s\n", "Class", "Vp (km/s)", "ρ (g/cm³)", "UCS", "Examples")
	for _, r := range rows {
		fmt.Printf("%-10s %-10s %-10s %-12s %s\n", r.Class.Hardness, r.PWaveRange, r.Density, r.Class.UCSRange, r.Class.Examples)
	}
}

func printComparison(results []engine.ComparisonResult) {
	fmt.Printf("%-32s %7s %12s %10s %10s\n", "Scenario", "Holes", "Explosive", "PF kg/m³", "Flyrock")
	for _, r := range results {
		if r.Err != nil {
			fmt.Printf("%-32s  error: %v\n", r.Scenario.Name, r.Err)
			continue
		}
		fmt.Printf("%-32s %7d %10.1f kg %10.3f %10s\n", r.Scenario.Name, r.HoleCount, r.TotalExplosive, r.PowderFactor, flyrockCell(r.Result.Flyrock))
	}
}

func printBatch(designs []model.BlastDesignInputs, results []engine.BatchResult) {
	fmt.Printf("%-24s %-10s %-12s %7s %12s %10s\n", "Design", "Pattern", "Explosive", "Holes", "Explosive", "Flyrock")
	for _, b := range results {
		name := designs[b.Index].Name
		if b.Err != nil {
			fmt.Printf("%-24s  error: %v\n", name, b.Err)
			continue
		}
		r := b.Result
		fmt.Printf("%-24s %-10s %-12s %7d %10.1f kg %10s\n", name, r.Pattern, r.Explosive, r.HoleCount, r.Charge.TotalExplosive, flyrockCell(r.Flyrock))
	}
}

// flyrockCell renders the safe distance for table output.
func flyrockCell(e flyrock.Estimate) string {
	if !e.Valid() {
		return "n/a"
	}
	return fmt.Sprintf("%.1f m", e.MaxDistance)
}

func printInventory(inv model.Inventory) {
	fmt.Printf("EXPLOSIVES (%d):\n", len(inv.Explosives))
	for _, p := range inv.Explosives {
		fmt.Printf("  %s  %-24s %-12s %.3f g/cm³  %.2f/kg\n", p.ID, p.Name, p.Type, p.Density, p.PricePerKg)
	}
	fmt.Printf("DRILL BITS (%d):\n", len(inv.Bits))
	for _, b := range inv.Bits {
		fmt.Printf("  %s  %-24s %.0f mm\n", b.ID, b.Name, b.DiameterMM)
	}
}
