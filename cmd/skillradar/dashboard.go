package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/amishk599/skillradar/internal/analysis"
	"github.com/amishk599/skillradar/internal/config"
	"github.com/amishk599/skillradar/internal/dashboard"
)

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Browse the analysis interactively (TUI)",
	Long: "Loads the dataset behind a spinner, then opens a tabbed view of the overview, top skills, " +
		"heatmap and network. Without --from, asks which source to use when both exist.",
	RunE: runDashboard,
}

func init() {
	rootCmd.AddCommand(dashboardCmd)
}

func runDashboard(cmd *cobra.Command, args []string) error {
	logger := setupLogger(debug)
	cfg := mustLoadConfig(logger)

	if from == "" {
		choice, ok, err := pickSource(cfg)
		if err != nil {
			return fmt.Errorf("picker: %w", err)
		}
		if !ok {
			return nil
		}
		from = choice
	}

	type loaded struct {
		report analysis.Report
		source string
	}
	// Log output would corrupt the TUI.
	quiet := silentLogger()
	res, err := dashboard.RunLoader("Loading dataset", func(ctx context.Context) (loaded, error) {
		ds, source, err := loadDataset(ctx, cfg, quiet)
		if err != nil {
			return loaded{}, err
		}
		return loaded{report: analysis.Analyze(ds, analysisOptions(cfg)), source: source}, nil
	})
	if hint, ok := missingDataHint(err, cfg); ok {
		fmt.Fprintln(os.Stderr, hint)
		return nil
	}
	if err != nil {
		return fmt.Errorf("loading dataset: %w", err)
	}

	return dashboard.Run(res.report, res.source)
}

// pickSource returns the dataset source to show. It only asks when both the
// dataset files and the collection store exist.
func pickSource(cfg *config.Config) (string, bool, error) {
	_, dbErr := os.Stat(cfg.Data.DBPath)
	_, dirErr := os.Stat(cfg.Data.Dir)
	if dbErr != nil || dirErr != nil {
		if dirErr != nil && dbErr == nil {
			return "store", true, nil
		}
		return "files", true, nil
	}

	options := []string{
		fmt.Sprintf("Dataset files (%s)", cfg.Data.Dir),
		fmt.Sprintf("Collection store (%s)", cfg.Data.DBPath),
	}
	choice, err := dashboard.RunPicker("SkillRadar: select a dataset", options)
	if err != nil || choice < 0 {
		return "", false, err
	}
	return []string{"files", "store"}[choice], true, nil
}
