package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/piwi3910/blastplan/internal/importer"
	"github.com/piwi3910/blastplan/internal/model"
	"github.com/piwi3910/blastplan/internal/project"
)

// overrideFlags are the design inputs that can be set on the command line.
// Only flags the user actually passed replace values from the design file.
type overrideFlags struct {
	name      string
	length    float64
	width     float64
	height    float64
	bench     float64
	diameter  float64
	density   float64
	pwave     float64
	water     string
	cost      string
	explosive string
	pattern   string
	volume    float64
	rows      int
	perRow    int
	maxHoles  int
	product   string
	bit       string
}

func (o *overrideFlags) register(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVar(&o.name, "name", "", "design name")
	f.Float64VarP(&o.length, "length", "l", 0, "bench length (m)")
	f.Float64VarP(&o.width, "width", "w", 0, "bench width (m)")
	f.Float64Var(&o.height, "height", 0, "total block height (m)")
	f.Float64VarP(&o.bench, "bench-height", "b", 0, "bench height (m)")
	f.Float64VarP(&o.diameter, "diameter", "d", 0, "hole diameter (mm), 0 derives it from bench height")
	f.Float64Var(&o.density, "density", 0, "rock density (g/cm³)")
	f.Float64Var(&o.pwave, "p-wave", 0, "P-wave velocity (km/s)")
	f.StringVar(&o.water, "water", "", "water condition: dry, damp, wet, very wet")
	f.StringVar(&o.cost, "cost", "", "cost sensitivity: low, medium, high")
	f.StringVar(&o.explosive, "explosive", "", "explosive type, or auto for the recommendation")
	f.StringVar(&o.pattern, "pattern", "", "square or staggered, or auto for the recommendation")
	f.Float64Var(&o.volume, "volume", 0, "blast a selected volume (m³) instead of the full bench")
	f.IntVar(&o.rows, "rows", 0, "manual layout: number of rows")
	f.IntVar(&o.perRow, "per-row", 0, "manual layout: holes per row")
	f.IntVar(&o.maxHoles, "max-holes", 0, "cap the number of holes laid out")
	f.StringVar(&o.product, "product", "", "use a stocked explosive product by name or ID")
	f.StringVar(&o.bit, "bit", "", "use a stocked drill bit by name or ID")
}

// apply writes every changed flag into in.
func (o *overrideFlags) apply(cmd *cobra.Command, in *model.BlastDesignInputs) error {
	changed := cmd.Flags().Changed
	if changed("name") {
		in.Name = o.name
	}
	floats := []struct {
		flag string
		src  float64
		dst  *float64
	}{
		{"length", o.length, &in.Geometry.Length},
		{"width", o.width, &in.Geometry.Width},
		{"height", o.height, &in.Geometry.Height},
		{"bench-height", o.bench, &in.Geometry.BenchHeight},
		{"diameter", o.diameter, &in.HoleDiameterMM},
		{"density", o.density, &in.RockDensity},
		{"p-wave", o.pwave, &in.PWaveVelocity},
	}
	for _, fv := range floats {
		if changed(fv.flag) {
			*fv.dst = fv.src
		}
	}

	if changed("water") {
		w, err := model.ParseWaterCondition(o.water)
		if err != nil {
			return err
		}
		in.Water = w
	}
	if changed("cost") {
		c, err := model.ParseCostSensitivity(o.cost)
		if err != nil {
			return err
		}
		in.Cost = c
	}
	if changed("explosive") {
		if o.explosive == "auto" {
			in.AutoExplosive = true
		} else {
			e, err := model.ParseExplosiveType(o.explosive)
			if err != nil {
				return err
			}
			in.AutoExplosive = false
			in.Explosive = e
		}
	}
	if changed("pattern") {
		if o.pattern == "auto" {
			in.AutoPattern = true
		} else {
			k, err := model.ParsePatternKind(o.pattern)
			if err != nil {
				return err
			}
			in.AutoPattern = false
			in.Pattern = k
		}
	}
	if changed("volume") {
		in.VolumeMode = model.VolumeManual
		in.ManualVolume = o.volume
	}
	if changed("rows") || changed("per-row") {
		in.LayoutMode = model.LayoutManual
		in.ManualRows = o.rows
		in.ManualHolesPerRow = o.perRow
	}
	if changed("max-holes") {
		in.MaxHoles = o.maxHoles
	}

	if o.product == "" && o.bit == "" {
		return nil
	}
	inv, err := project.LoadInventory(project.DefaultInventoryPath())
	if err != nil {
		return fmt.Errorf("loading inventory: %w", err)
	}
	if o.product != "" {
		p := inv.FindExplosiveByName(o.product)
		if p == nil {
			p = inv.FindExplosiveByID(o.product)
		}
		if p == nil {
			return fmt.Errorf("explosive product %q not in inventory", o.product)
		}
		p.ApplyToInputs(in)
	}
	if o.bit != "" {
		b := inv.FindBitByName(o.bit)
		if b == nil {
			b = inv.FindBitByID(o.bit)
		}
		if b == nil {
			return fmt.Errorf("drill bit %q not in inventory", o.bit)
		}
		b.ApplyToInputs(in)
	}
	return nil
}

// loadInputs reads the design file named in args, or starts from the
// config defaults, then applies the flag overrides and normalizes.
func (a *app) loadInputs(cmd *cobra.Command, args []string, o *overrideFlags) (model.BlastDesignInputs, error) {
	in := model.DefaultInputs()
	a.cfg.ApplyToInputs(&in)

	if len(args) > 0 {
		loaded, notes, err := importer.LoadDesign(args[0])
		if err != nil {
			return model.BlastDesignInputs{}, err
		}
		a.warnNotes(args[0], notes)
		in = loaded
	}

	if err := o.apply(cmd, &in); err != nil {
		return model.BlastDesignInputs{}, err
	}
	in, notes := in.Normalize()
	a.warnNotes("flags", notes)
	return in, nil
}

func (a *app) warnNotes(source string, notes []string) {
	for _, n := range notes {
		a.log.Warn("input adjusted", "source", source, "note", n)
	}
}
