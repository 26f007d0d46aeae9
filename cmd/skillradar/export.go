package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/amishk599/skillradar/internal/analysis"
)

var exportOutput string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the analysis as JSON",
	Long:  "Writes totals, top skills, heatmap matrix and network (nodes/links) as JSON for an external chart renderer.",
	RunE:  runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "-", `output file ("-" for stdout)`)
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	logger := stderrLogger(debug)
	cfg := mustLoadConfig(logger)

	ds, _, err := loadDataset(context.Background(), cfg, logger)
	if hint, ok := missingDataHint(err, cfg); ok {
		fmt.Fprintln(os.Stderr, hint)
		os.Exit(1)
	}
	if err != nil {
		return fmt.Errorf("loading dataset: %w", err)
	}

	data, err := json.MarshalIndent(analysis.Analyze(ds, analysisOptions(cfg)), "", "  ")
	if err != nil {
		return fmt.Errorf("encoding report: %w", err)
	}
	data = append(data, '\n')

	if exportOutput == "-" {
		_, err = os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(exportOutput, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", exportOutput, err)
	}
	logger.Info("report exported", "path", exportOutput)
	return nil
}
