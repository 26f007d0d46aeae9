package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/amishk599/skillradar/internal/dataset"
)

var mergeCmd = &cobra.Command{
	Use:   "merge",
	Short: "Merge dataset parts (_pt1, _pt2, ...) into _merged files",
	Long: "Concatenates the _ptN parts of every dataset file in data.dir, dropping duplicate ids, " +
		"and sums the skill tables. Readers prefer the _merged files afterwards.",
	RunE: runMerge,
}

func init() {
	rootCmd.AddCommand(mergeCmd)
}

func runMerge(cmd *cobra.Command, args []string) error {
	logger := setupLogger(debug)
	cfg := mustLoadConfig(logger)

	results, err := dataset.MergeAll(cfg.Data.Dir, logger)
	for _, r := range results {
		fmt.Printf("%-45s %3d parts  %6d records\n", r.Output, len(r.Parts), r.Records)
	}
	if err != nil {
		return fmt.Errorf("merging datasets in %s: %w", cfg.Data.Dir, err)
	}
	if len(results) == 0 {
		fmt.Println("Nothing to merge.")
	}
	return nil
}
