package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/piwi3910/blastplan/internal/engine"
	"github.com/piwi3910/blastplan/internal/export"
	"github.com/piwi3910/blastplan/internal/flyrock"
	"github.com/piwi3910/blastplan/internal/importer"
	"github.com/piwi3910/blastplan/internal/model"
	"github.com/piwi3910/blastplan/internal/project"
	"github.com/piwi3910/blastplan/internal/recommend"
)

// maxRecentProjects bounds the design files remembered in the config.
const maxRecentProjects = 10

// design loads the inputs and runs the engine, logging every warning.
func (a *app) design(cmd *cobra.Command, args []string, o *overrideFlags) (engine.Result, error) {
	in, err := a.loadInputs(cmd, args, o)
	if err != nil {
		return engine.Result{}, err
	}
	res, err := engine.Design(in)
	if err != nil {
		return engine.Result{}, fmt.Errorf("designing %q: %w", in.Name, err)
	}
	log := a.log.With("design", in.Name)
	for _, w := range res.Warnings {
		log.Warn("design warning", "warning", w)
	}
	log.Debug("design computed",
		"holes", res.HoleCount,
		"pattern", res.Pattern.String(),
		"explosive", res.Explosive.String(),
		"total_kg", res.Charge.TotalExplosive,
	)

	if len(args) > 0 {
		a.rememberProject(args[0])
	}
	return res, nil
}

func (a *app) rememberProject(path string) {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	project.AddRecentProject(&a.cfg, abs, maxRecentProjects)
	if err := project.SaveAppConfig(a.configPath, a.cfg); err != nil {
		a.log.Warn("could not update recent projects", "error", err)
	}
}

func (a *app) runDesign(cmd *cobra.Command, args []string, o *overrideFlags, asJSON bool, savePath string, record bool) error {
	res, err := a.design(cmd, args, o)
	if err != nil {
		return err
	}

	snap := engine.Snapshot(res)
	if record {
		label, err := project.RecordDesign(project.DefaultHistoryPath(), snap)
		if err != nil {
			a.log.Warn("could not record design", "error", err)
		} else {
			a.log.Info("design recorded", "entry", label)
		}
	}
	if savePath != "" {
		if err := importer.SaveDesign(savePath, res.Inputs); err != nil {
			return err
		}
		a.log.Info("design saved", "path", savePath)
	}

	if asJSON {
		return printJSON(snap)
	}
	printDesign(res, a.productCost(res))
	return nil
}

// productCost prices the total charge with the first stocked product of the
// design's explosive type. It returns a negative value when none is stocked.
func (a *app) productCost(res engine.Result) float64 {
	inv, err := project.LoadInventory(project.DefaultInventoryPath())
	if err != nil {
		a.log.Debug("inventory unavailable", "error", err)
		return -1
	}
	p := inv.ProductForType(res.Explosive)
	if p == nil {
		return -1
	}
	return p.Cost(res.Charge.TotalExplosive)
}

func (a *app) runRecommend(density, pwave float64, water, cost string, matrix bool) error {
	w, err := model.ParseWaterCondition(water)
	if err != nil {
		return err
	}
	c, err := model.ParseCostSensitivity(cost)
	if err != nil {
		return err
	}

	rock := recommend.ClassifyRock(pwave, density)
	printRecommendation(rock, recommend.Explosive(w, rock.Hardness, c), recommend.Pattern(density, pwave))
	if matrix {
		fmt.Println()
		printMatrix(recommend.ClassificationMatrix())
	}
	return nil
}

func (a *app) runCompare(cmd *cobra.Command, args []string, o *overrideFlags) error {
	in, err := a.loadInputs(cmd, args, o)
	if err != nil {
		return err
	}
	results := engine.CompareScenarios(engine.BuildDefaultScenarios(in))
	for _, r := range results {
		if r.Err != nil {
			a.log.Warn("scenario failed", "scenario", r.Scenario.Name, "error", r.Err)
		}
	}
	printComparison(results)
	return nil
}

func (a *app) runVisualize(cmd *cobra.Command, args []string, o *overrideFlags, maxHoles int) error {
	res, err := a.design(cmd, args, o)
	if err != nil {
		return err
	}
	if maxHoles <= 0 {
		maxHoles = a.cfg.Max3DHoles
	}
	v, err := res.Visualization(maxHoles)
	if err != nil {
		return err
	}
	if v.Truncated {
		a.log.Info("visualization truncated", "shown", v.HoleCount(), "total", v.TotalHoles)
	}

	output := map[string]any{
		"positions":         v.Positions,
		"radii":             v.Radii,
		"depths":            v.Depths,
		"explosive_lengths": v.ExplosiveLengths,
		"burden":            v.Burden,
		"spacing":           v.Spacing,
		"pattern":           v.Pattern,
		"box":               v.Box,
		"total_holes":       v.TotalHoles,
		"truncated":         v.Truncated,
		"flyrock":           res.Flyrock,
		"safety_center":     res.SafetyCenter(),
	}
	return printJSON(output)
}

type exportOptions struct {
	output string
	labels bool
	zones  bool
}

func (a *app) runExport(cmd *cobra.Command, format string, args []string, o *overrideFlags, opts exportOptions) error {
	ext := map[string]string{"pdf": ".pdf", "xlsx": ".xlsx", "dxf": ".dxf", "tags": "-tags.pdf"}[format]
	if ext == "" {
		return fmt.Errorf("unknown export format %q (want pdf, xlsx, dxf or tags)", format)
	}

	res, err := a.design(cmd, args, o)
	if err != nil {
		return err
	}

	path := opts.output
	if path == "" {
		path = fileStem(res.Inputs.Name) + ext
	}

	switch format {
	case "pdf":
		report := export.DefaultReportOptions()
		if a.cfg.ReportTitle != "" {
			report.Title = a.cfg.ReportTitle
		}
		report.ShowLabels = a.cfg.ShowLabels
		err = export.ExportPDF(path, res, report)
	case "xlsx":
		err = export.ExportHoleSchedule(path, res)
	case "dxf":
		err = export.ExportDXF(path, res, export.DXFOptions{Labels: opts.labels, SafetyZones: opts.zones})
		if errors.Is(err, flyrock.ErrNoSafeDistance) {
			a.log.Warn("safety zones skipped", "path", path, "reason", err)
			err = nil
		}
	case "tags":
		err = export.ExportHoleTags(path, res)
	}
	if err != nil {
		return fmt.Errorf("exporting %s: %w", format, err)
	}

	a.log.Info("export written", "format", format, "path", path, "holes", res.Layout.HoleCount())
	fmt.Println(path)
	return nil
}

func (a *app) runBatch(cmd *cobra.Command, path string, workers int) error {
	var imported importer.ImportResult
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		imported = importer.ImportExcel(path)
	default:
		imported = importer.ImportCSV(path)
	}

	for _, w := range imported.Warnings {
		a.log.Warn("import warning", "file", path, "warning", w)
	}
	for _, e := range imported.Errors {
		a.log.Error("import error", "file", path, "error", e)
	}
	if len(imported.Designs) == 0 {
		return fmt.Errorf("no designs imported from %s", path)
	}

	results, err := engine.DesignBatch(cmd.Context(), imported.Designs, workers)
	if err != nil {
		return err
	}
	printBatch(imported.Designs, results)
	return nil
}

func (a *app) runBench(path, base, savePath string) error {
	bench, err := importer.ImportDXFBench(path)
	if err != nil {
		return err
	}
	for _, w := range bench.Warnings {
		a.log.Warn("dxf warning", "file", path, "warning", w)
	}
	fmt.Printf("Bench outline: %.2f m x %.2f m (%d vertices, %d closed shapes)\n",
		bench.Length, bench.Width, len(bench.Outline), bench.Shapes)
	fmt.Printf("Plan area:     %.1f m² (%.0f%% of extents)\n", bench.Area, bench.Coverage()*100)

	if savePath == "" {
		return nil
	}

	in := model.DefaultInputs()
	a.cfg.ApplyToInputs(&in)
	if base != "" {
		loaded, notes, err := importer.LoadDesign(base)
		if err != nil {
			return err
		}
		a.warnNotes(base, notes)
		in = loaded
	}
	bench.ApplyToInputs(&in)
	in, notes := in.Normalize()
	a.warnNotes(path, notes)

	res, err := engine.Design(in)
	if err != nil {
		return err
	}
	if outside := bench.HolesOutside(res.Layout); len(outside) > 0 {
		a.log.Warn("holes outside bench outline", "file", path, "holes", outside)
		fmt.Printf("Holes outside outline: %d of %d\n", len(outside), res.Layout.HoleCount())
	}

	if err := importer.SaveDesign(savePath, in); err != nil {
		return err
	}
	a.log.Info("design saved", "path", savePath)
	return nil
}

func (a *app) runHistoryList() error {
	recent, err := project.LoadRecent(project.DefaultHistoryPath())
	if err != nil {
		return err
	}
	if recent.Len() == 0 {
		fmt.Println("No recent designs.")
		return nil
	}
	for i, label := range recent.Labels() {
		s, _ := recent.Get(i)
		fmt.Printf("%-32s %-24s %v holes\n", label, s.Inputs.Name, s.Values["num_holes"])
	}
	return nil
}

func (a *app) runHistoryShow(arg string) error {
	n, err := strconv.Atoi(arg)
	if err != nil {
		return fmt.Errorf("invalid entry number %q", arg)
	}
	recent, err := project.LoadRecent(project.DefaultHistoryPath())
	if err != nil {
		return err
	}
	s, ok := recent.Get(n - 1)
	if !ok {
		return fmt.Errorf("no recent design %d (have %d)", n, recent.Len())
	}
	return printJSON(s)
}

func (a *app) runHistoryClear() error {
	path := project.DefaultHistoryPath()
	recent, err := project.LoadRecent(path)
	if err != nil {
		return err
	}
	recent.Clear()
	return project.SaveRecent(path, recent)
}

func (a *app) runTemplateList() error {
	store, err := project.LoadTemplates(project.DefaultTemplatePath())
	if err != nil {
		return err
	}
	if len(store.Templates) == 0 {
		fmt.Println("No templates.")
		return nil
	}
	for _, t := range store.Templates {
		g := t.Inputs.Geometry
		fmt.Printf("%s  %-24s %5.1f x %5.1f m, bench %4.1f m  %s\n", t.ID, t.Name, g.Length, g.Width, g.BenchHeight, t.Description)
	}
	return nil
}

func (a *app) runTemplateSave(name, designPath, description string) error {
	in, notes, err := importer.LoadDesign(designPath)
	if err != nil {
		return err
	}
	a.warnNotes(designPath, notes)

	path := project.DefaultTemplatePath()
	store, err := project.LoadTemplates(path)
	if err != nil {
		return err
	}
	if store.FindByName(name) != nil {
		return fmt.Errorf("template %q already exists", name)
	}
	t := model.NewDesignTemplate(name, description, in)
	store.Add(t)
	if err := project.SaveTemplates(path, store); err != nil {
		return err
	}
	a.log.Info("template saved", "name", name, "id", t.ID)
	return nil
}

func (a *app) runTemplateUse(ref, designName, output string) error {
	store, err := project.LoadTemplates(project.DefaultTemplatePath())
	if err != nil {
		return err
	}
	t := findTemplate(&store, ref)
	if t == nil {
		return fmt.Errorf("template %q not found", ref)
	}
	if designName == "" {
		designName = t.Name
	}
	if err := importer.SaveDesign(output, t.ToInputs(designName)); err != nil {
		return err
	}
	fmt.Println(output)
	return nil
}

func (a *app) runTemplateRemove(ref string) error {
	path := project.DefaultTemplatePath()
	store, err := project.LoadTemplates(path)
	if err != nil {
		return err
	}
	t := findTemplate(&store, ref)
	if t == nil {
		return fmt.Errorf("template %q not found", ref)
	}
	store.Remove(t.ID)
	return project.SaveTemplates(path, store)
}

func findTemplate(store *model.TemplateStore, ref string) *model.DesignTemplate {
	if t := store.FindByID(ref); t != nil {
		return t
	}
	return store.FindByName(ref)
}

func (a *app) runInventoryList() error {
	inv, _, err := project.LoadOrCreateInventory()
	if err != nil {
		return err
	}
	printInventory(inv)
	return nil
}

func (a *app) runInventoryImport(file string) error {
	inv, path, err := project.LoadOrCreateInventory()
	if err != nil {
		return err
	}
	before := len(inv.Explosives) + len(inv.Bits)
	merged, err := project.ImportInventory(file, inv)
	if err != nil {
		return fmt.Errorf("importing inventory: %w", err)
	}
	if err := project.SaveInventory(path, merged); err != nil {
		return err
	}
	a.log.Info("inventory imported", "file", file, "added", len(merged.Explosives)+len(merged.Bits)-before)
	return nil
}

func (a *app) runInventoryExport(file string) error {
	inv, _, err := project.LoadOrCreateInventory()
	if err != nil {
		return err
	}
	return project.ExportInventory(file, inv)
}

func (a *app) runBackupExport(file string) error {
	inv, _, err := project.LoadOrCreateInventory()
	if err != nil {
		return err
	}
	templates, err := project.LoadTemplates(project.DefaultTemplatePath())
	if err != nil {
		return err
	}
	recent, err := project.LoadRecent(project.DefaultHistoryPath())
	if err != nil {
		return err
	}
	return project.ExportAllData(file, project.BackupData{
		Config:    a.cfg,
		Inventory: inv,
		Templates: templates,
		Recent:    recent,
	})
}

func (a *app) runBackupImport(file string) error {
	backup, err := project.ImportAllData(file)
	if err != nil {
		return err
	}
	if err := project.SaveAppConfig(a.configPath, backup.Config); err != nil {
		return err
	}
	if err := project.SaveInventory(project.DefaultInventoryPath(), backup.Inventory); err != nil {
		return err
	}
	if err := project.SaveTemplates(project.DefaultTemplatePath(), backup.Templates); err != nil {
		return err
	}
	if err := project.SaveRecent(project.DefaultHistoryPath(), backup.Recent); err != nil {
		return err
	}
	a.log.Info("backup restored", "file", file, "version", backup.Version, "created", backup.CreatedAt)
	return nil
}

func (a *app) runConfigReset() error {
	a.cfg = model.DefaultAppConfig()
	if err := project.SaveAppConfig(a.configPath, a.cfg); err != nil {
		return err
	}
	fmt.Println(a.configPath)
	return nil
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// fileStem turns a design name into a file name without extension.
func fileStem(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return "blast-design"
	}
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '/', '\\', ':', '*', '?', '"', '<', '>', '|':
			return '_'
		}
		return r
	}, name)
}
