// BlastPlan - surface blasting round designer
//
// Computes drill pattern, hole geometry, explosive charge and flyrock
// safety zones for a surface blasting round, and exports the design as a
// PDF report, XLSX hole schedule, DXF plan or QR hole tags.
//
// Build:
//   go build -o blastplan ./cmd/blastplan

package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/piwi3910/blastplan/internal/logger"
	"github.com/piwi3910/blastplan/internal/model"
	"github.com/piwi3910/blastplan/internal/project"
)

// app carries state shared by all commands.
type app struct {
	configPath string
	logMode    string

	cfg model.AppConfig
	log *logger.Logger
}

func main() {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:          "blastplan",
		Short:        "Surface blasting round designer",
		SilenceUsage: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return a.init()
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			if a.log != nil {
				a.log.Sync()
			}
		},
	}
	rootCmd.PersistentFlags().StringVar(&a.configPath, "config", project.DefaultConfigPath(), "application config file")
	rootCmd.PersistentFlags().StringVar(&a.logMode, "log", "", "log mode, dev or prod (default from config)")

	rootCmd.AddCommand(designCmd(a))
	rootCmd.AddCommand(recommendCmd(a))
	rootCmd.AddCommand(compareCmd(a))
	rootCmd.AddCommand(visualizeCmd(a))
	rootCmd.AddCommand(exportCmd(a))
	rootCmd.AddCommand(batchCmd(a))
	rootCmd.AddCommand(benchCmd(a))
	rootCmd.AddCommand(historyCmd(a))
	rootCmd.AddCommand(templateCmd(a))
	rootCmd.AddCommand(inventoryCmd(a))
	rootCmd.AddCommand(backupCmd(a))
	rootCmd.AddCommand(configCmd(a))

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func (a *app) init() error {
	cfg, err := project.LoadAppConfig(a.configPath)
	if err != nil {
		return err
	}
	a.cfg = cfg

	mode := a.logMode
	if mode == "" {
		mode = cfg.LogMode
	}
	log, err := logger.New(mode)
	if err != nil {
		return err
	}
	a.log = log
	return nil
}

func designCmd(a *app) *cobra.Command {
	var (
		of       overrideFlags
		asJSON   bool
		savePath string
		noRecord bool
	)

	cmd := &cobra.Command{
		Use:   "design [design-file]",
		Short: "Design a blasting round and print its parameters",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runDesign(cmd, args, &of, asJSON, savePath, !noRecord)
		},
	}

	of.register(cmd)
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the design snapshot as JSON")
	cmd.Flags().StringVar(&savePath, "save", "", "write the resolved inputs to a YAML design file")
	cmd.Flags().BoolVar(&noRecord, "no-history", false, "do not record the design in the recent history")
	return cmd
}

func recommendCmd(a *app) *cobra.Command {
	var (
		density float64
		pwave   float64
		water   string
		cost    string
		matrix  bool
	)

	cmd := &cobra.Command{
		Use:   "recommend",
		Short: "Classify the rock and recommend an explosive and drill pattern",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return a.runRecommend(density, pwave, water, cost, matrix)
		},
	}

	defaults := model.DefaultInputs()
	cmd.Flags().Float64Var(&density, "density", defaults.RockDensity, "rock density (g/cm³)")
	cmd.Flags().Float64Var(&pwave, "p-wave", defaults.PWaveVelocity, "P-wave velocity (km/s)")
	cmd.Flags().StringVar(&water, "water", defaults.Water.String(), "water condition: dry, damp, wet, very wet")
	cmd.Flags().StringVar(&cost, "cost", "medium", "cost sensitivity: low, medium, high")
	cmd.Flags().BoolVar(&matrix, "matrix", false, "also print the rock classification matrix")
	return cmd
}

func compareCmd(a *app) *cobra.Command {
	var of overrideFlags

	cmd := &cobra.Command{
		Use:   "compare [design-file]",
		Short: "Compare the design with what-if alternatives",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runCompare(cmd, args, &of)
		},
	}

	of.register(cmd)
	return cmd
}

func visualizeCmd(a *app) *cobra.Command {
	var (
		of       overrideFlags
		maxHoles int
	)

	cmd := &cobra.Command{
		Use:   "visualize [design-file]",
		Short: "Print the hole payload used for 2D/3D rendering as JSON",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runVisualize(cmd, args, &of, maxHoles)
		},
	}

	of.register(cmd)
	cmd.Flags().IntVar(&maxHoles, "show-holes", 0, "holes to include in the payload (default from config)")
	return cmd
}

func exportCmd(a *app) *cobra.Command {
	var (
		of     overrideFlags
		output string
		labels bool
		zones  bool
	)

	cmd := &cobra.Command{
		Use:       "export <pdf|xlsx|dxf|tags> [design-file]",
		Short:     "Design a round and write a report, hole schedule, plan drawing or hole tags",
		Args:      cobra.RangeArgs(1, 2),
		ValidArgs: []string{"pdf", "xlsx", "dxf", "tags"},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runExport(cmd, args[0], args[1:], &of, exportOptions{
				output: output,
				labels: labels,
				zones:  zones,
			})
		},
	}

	of.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default derived from the design name)")
	cmd.Flags().BoolVar(&labels, "labels", true, "number holes in DXF drawings")
	cmd.Flags().BoolVar(&zones, "zones", true, "draw flyrock safety zones in DXF drawings")
	return cmd
}

func batchCmd(a *app) *cobra.Command {
	var workers int

	cmd := &cobra.Command{
		Use:   "batch <sheet.csv|sheet.xlsx>",
		Short: "Design every round listed in a CSV or Excel sheet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runBatch(cmd, args[0], workers)
		},
	}

	cmd.Flags().IntVarP(&workers, "workers", "w", 0, "concurrent designs (default 4)")
	return cmd
}

func benchCmd(a *app) *cobra.Command {
	var (
		base     string
		savePath string
	)

	cmd := &cobra.Command{
		Use:   "bench <outline.dxf>",
		Short: "Read the bench outline from a DXF drawing",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return a.runBench(args[0], base, savePath)
		},
	}

	cmd.Flags().StringVar(&base, "design", "", "design file to take the other inputs from")
	cmd.Flags().StringVar(&savePath, "save", "", "write a design file using the outline's extents")
	return cmd
}

func historyCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List, show or clear recently computed designs",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List recent designs",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return a.runHistoryList()
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "show <n>",
		Short: "Show a recent design by its list number",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return a.runHistoryShow(args[0])
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Remove all recent designs",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return a.runHistoryClear()
		},
	})
	return cmd
}

func templateCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "template",
		Short: "Manage reusable design templates",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List templates",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return a.runTemplateList()
		},
	})

	var description string
	save := &cobra.Command{
		Use:   "save <name> <design-file>",
		Short: "Store a design file as a template",
		Args:  cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			return a.runTemplateSave(args[0], args[1], description)
		},
	}
	save.Flags().StringVarP(&description, "description", "d", "", "template description")
	cmd.AddCommand(save)

	var output, designName string
	use := &cobra.Command{
		Use:   "use <name-or-id>",
		Short: "Write a new design file from a template",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return a.runTemplateUse(args[0], designName, output)
		},
	}
	use.Flags().StringVarP(&output, "output", "o", "blast.yaml", "design file to write")
	use.Flags().StringVar(&designName, "name", "", "name of the new design")
	cmd.AddCommand(use)

	cmd.AddCommand(&cobra.Command{
		Use:   "remove <name-or-id>",
		Short: "Delete a template",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return a.runTemplateRemove(args[0])
		},
	})
	return cmd
}

func inventoryCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inventory",
		Short: "Manage stocked explosives and drill bits",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List explosive products and drill bits",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return a.runInventoryList()
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "import <file>",
		Short: "Merge products and bits from a shared inventory file",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return a.runInventoryImport(args[0])
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "export <file>",
		Short: "Write the inventory to a file for sharing",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return a.runInventoryExport(args[0])
		},
	})
	return cmd
}

func backupCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "backup",
		Short: "Export or restore all application data",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "export <file>",
		Short: "Write config, inventory, templates and history to one file",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return a.runBackupExport(args[0])
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "import <file>",
		Short: "Restore application data from a backup file",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return a.runBackupImport(args[0])
		},
	})
	return cmd
}

func configCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or reset the application config",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the current config",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return printJSON(a.cfg)
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "reset",
		Short: "Write the default config",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return a.runConfigReset()
		},
	})
	return cmd
}
