package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/amishk599/skillradar/internal/analysis"
	"github.com/amishk599/skillradar/internal/report"
)

var reportWidth int

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Print the skill demand and co-occurrence report",
	Long:  "Loads the dataset and prints totals, the top skills, the co-occurrence heatmap and the skill network.",
	RunE:  runAnalyze,
}

func init() {
	analyzeCmd.Flags().IntVarP(&reportWidth, "width", "w", 80, "report width in columns")
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	logger := stderrLogger(debug)
	cfg := mustLoadConfig(logger)

	ds, source, err := loadDataset(context.Background(), cfg, logger)
	if hint, ok := missingDataHint(err, cfg); ok {
		fmt.Fprintln(os.Stderr, hint)
		os.Exit(1)
	}
	if err != nil {
		return fmt.Errorf("loading dataset: %w", err)
	}
	logger.Debug("dataset loaded", "source", source, "vacancies", ds.Total())

	width := reportWidth
	if width <= 0 {
		width = 80
	}
	fmt.Print(report.Render(analysis.Analyze(ds, analysisOptions(cfg)), width))
	return nil
}
