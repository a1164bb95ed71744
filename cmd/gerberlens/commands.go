package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"gerberlens/internal/design"
	"gerberlens/internal/drc"
	"gerberlens/internal/layer"
	"gerberlens/internal/project"
	"gerberlens/internal/report"
	"gerberlens/internal/units"
)

// newDetectCmd maps gerber filenames to board layer roles.
func newDetectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "detect <file>...",
		Short: "Detect layer roles from gerber filenames",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			detector := layer.NewDetector()
			unknown := 0
			for _, name := range args {
				role, ok := detector.Detect(name)
				if !ok {
					unknown++
					fmt.Fprintf(cmd.OutOrStdout(), "%-40s (unassigned)\n", name)
					continue
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%-40s %s\n", name, role)
			}
			if unknown > 0 {
				loggerFromContext(cmd.Context()).Warn("some files could not be assigned", "count", unknown)
			}
			return nil
		},
	}
}

type checkOpts struct {
	rulesPath string
	unitName  string
}

// newCheckCmd loads a design snapshot, runs the design rule check and
// prints violations. A non-zero exit status signals failing violations.
func newCheckCmd() *cobra.Command {
	opts := checkOpts{unitName: "mm"}

	cmd := &cobra.Command{
		Use:   "check <design.json|project.glp>",
		Short: "Run design rule checks on a design snapshot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, _, _, err := runCheck(cmd, args[0], opts.rulesPath)
			if err != nil {
				return err
			}

			u := units.ParseUnit(opts.unitName)
			for _, v := range result.Violations {
				fmt.Fprintf(cmd.OutOrStdout(), "%-10s %-16s %-20s at (%s, %s) measured %s required %s\n",
					v.Quality, v.Rule, v.Layer,
					units.Format(units.Canonical(v.Position.X), u),
					units.Format(units.Canonical(v.Position.Y), u),
					units.Format(v.Measured, u),
					units.Format(v.Required, u))
			}

			counts := result.Summary()
			fmt.Fprintf(cmd.OutOrStdout(), "%d violations (%d failing, %d marginal)\n",
				len(result.Violations), counts[drc.QualityFailing], counts[drc.QualityMarginal])
			if counts[drc.QualityFailing] > 0 {
				return fmt.Errorf("%d failing violations", counts[drc.QualityFailing])
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.rulesPath, "rules", "", "TOML rule thresholds (defaults if empty)")
	cmd.Flags().StringVarP(&opts.unitName, "units", "u", opts.unitName, "display units (mm, mils, um, nm)")
	return cmd
}

type reportOpts struct {
	rulesPath string
	pdfPath   string
	xlsxPath  string
	dxfPath   string
}

// newReportCmd runs the design rule check and writes report files.
func newReportCmd() *cobra.Command {
	var opts reportOpts

	cmd := &cobra.Command{
		Use:   "report <design.json|project.glp>",
		Short: "Run design rule checks and export violation reports",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.pdfPath == "" && opts.xlsxPath == "" && opts.dxfPath == "" {
				return fmt.Errorf("no output requested, pass --pdf, --xlsx or --dxf")
			}

			result, reg, d, err := runCheck(cmd, args[0], opts.rulesPath)
			if err != nil {
				return err
			}
			summary := report.BuildSummary(d.Name, reg.LayerCount(), result)

			logger := loggerFromContext(cmd.Context())
			if opts.pdfPath != "" {
				if err := report.WritePDF(opts.pdfPath, summary, result); err != nil {
					return fmt.Errorf("write pdf: %w", err)
				}
				logger.Info("wrote report", "path", opts.pdfPath)
			}
			if opts.xlsxPath != "" {
				if err := report.WriteExcel(opts.xlsxPath, summary, result); err != nil {
					return fmt.Errorf("write xlsx: %w", err)
				}
				logger.Info("wrote report", "path", opts.xlsxPath)
			}
			if opts.dxfPath != "" {
				if err := report.WriteDXF(opts.dxfPath, result); err != nil {
					return fmt.Errorf("write dxf: %w", err)
				}
				logger.Info("wrote report", "path", opts.dxfPath)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.rulesPath, "rules", "", "TOML rule thresholds (defaults if empty)")
	cmd.Flags().StringVar(&opts.pdfPath, "pdf", "", "write a PDF report to this path")
	cmd.Flags().StringVar(&opts.xlsxPath, "xlsx", "", "write an XLSX report to this path")
	cmd.Flags().StringVar(&opts.dxfPath, "dxf", "", "write a DXF overlay to this path")
	return cmd
}

// newStatsCmd prints registry counts for a design snapshot.
func newStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats <design.json|project.glp>",
		Short: "Show layer registry statistics for a design snapshot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, d, _, err := loadRegistry(cmd, args[0])
			if err != nil {
				return err
			}

			stats := reg.GetStatistics()
			fmt.Fprintf(cmd.OutOrStdout(), "Design:     %s\n", d.Name)
			fmt.Fprintf(cmd.OutOrStdout(), "Layers:     %d (%d visible)\n", stats.TotalLayers, stats.VisibleLayers)
			fmt.Fprintf(cmd.OutOrStdout(), "Unassigned: %d\n", stats.Unassigned)
			for _, role := range reg.Roles() {
				fmt.Fprintf(cmd.OutOrStdout(), "  %s\n", role)
			}
			for _, ug := range reg.UnassignedGerbers() {
				fmt.Fprintf(cmd.OutOrStdout(), "  (unassigned) %s\n", ug.Filename)
			}
			return nil
		},
	}
}

// loadRegistry loads a design snapshot and imports every layer file into a
// fresh registry, letting filename detection route each one. The path may
// also name a project file, in which case the project's design reference
// and saved layer state are used.
func loadRegistry(cmd *cobra.Command, path string) (*layer.Registry, *design.Design, string, error) {
	designPath := path
	rulesPath := ""
	var state *layer.PersistedState

	if filepath.Ext(path) == project.Extension {
		proj, err := project.Load(path)
		if err != nil {
			return nil, nil, "", fmt.Errorf("load project: %w", err)
		}
		designPath = proj.ResolveDesign(path)
		rulesPath = proj.ResolveRules(path)
		state = &proj.Layers
	}

	d, err := design.Load(designPath)
	if err != nil {
		return nil, nil, "", fmt.Errorf("load design: %w", err)
	}

	logger := loggerFromContext(cmd.Context())
	reg := layer.NewRegistry()
	if state != nil {
		reg.Restore(*state)
	}
	for _, name := range d.Filenames() {
		role, ok := reg.ImportGerber(name, d.Layer(name))
		if !ok {
			logger.Warn("no layer role for file", "file", name)
			continue
		}
		logger.Debug("imported layer", "file", name, "role", role)
	}
	return reg, d, rulesPath, nil
}

// runCheck loads the snapshot and rule thresholds and runs the check
// engine. An explicit --rules path wins over a project's rule reference.
func runCheck(cmd *cobra.Command, designPath, rulesPath string) (drc.Result, *layer.Registry, *design.Design, error) {
	reg, d, projectRules, err := loadRegistry(cmd, designPath)
	if err != nil {
		return drc.Result{}, nil, nil, err
	}
	if rulesPath == "" {
		rulesPath = projectRules
	}

	cfg := drc.DefaultConfig()
	if rulesPath != "" {
		cfg, err = drc.LoadConfig(rulesPath)
		if err != nil {
			return drc.Result{}, nil, nil, fmt.Errorf("load rules: %w", err)
		}
	}

	result := drc.NewEngine(cfg).Check(reg)
	return result, reg, d, nil
}
