package engine

import "github.com/piwi3910/blastplan/internal/model"

// Snapshot flattens every input and derived scalar of a result into a
// DesignSnapshot for the recent configurations history.
func Snapshot(r Result) model.DesignSnapshot {
	in, g, h, c := r.Inputs, r.Geometry, r.Hole, r.Charge
	values := map[string]any{
		"length":                     g.Length,
		"width":                      g.Width,
		"height":                     g.Height,
		"bench_height":               g.BenchHeight,
		"hole_diameter":              h.DiameterMM,
		"explosive_type":             r.Explosive.String(),
		"explosive_density":          c.DensityKgM3,
		"rock_density":               in.RockDensity,
		"p_wave_velocity":            in.PWaveVelocity,
		"water_condition":            in.Water.String(),
		"cost_sensitivity":           in.Cost.String(),
		"rock_class":                 r.Rock.Hardness.String(),
		"pattern":                    r.Pattern.String(),
		"blast_volume_option":        in.VolumeMode.String(),
		"layout_mode":                in.LayoutMode.String(),
		"calculated_burden":          h.Burden,
		"calculated_spacing":         h.Spacing,
		"calculated_stemming":        h.Stemming,
		"calculated_subdrilling":     h.Subdrilling,
		"calculated_hole_depth":      h.Depth,
		"explosive_column_length":    c.ColumnLength,
		"blast_volume":               c.BlastVolume,
		"volume_per_hole":            r.VolumePerHole,
		"num_holes":                  r.HoleCount,
		"num_rows":                   r.Layout.Rows,
		"num_holes_per_row":          r.Layout.HolesPerRow,
		"charge_per_hole":            c.ChargePerHole,
		"total_explosive":            c.TotalExplosive,
		"powder_factor_vol_per_mass": c.PowderFactorVolPerMass,
		"powder_factor_mass_per_vol": c.PowderFactorMassPerVol,
		"flyrock_distance":           r.Flyrock.MaxDistance,
	}
	return model.NewDesignSnapshot(in, values)
}
