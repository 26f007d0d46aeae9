package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/amishk599/skillradar/internal/analysis"
	"github.com/amishk599/skillradar/internal/cooccur"
)

var skillsLimit int

var skillsCmd = &cobra.Command{
	Use:   "skills",
	Short: "List skills ranked by how many vacancies mention them",
	RunE:  runSkills,
}

func init() {
	skillsCmd.Flags().IntVarP(&skillsLimit, "limit", "n", 0, "show only the first n skills (0 = all)")
	rootCmd.AddCommand(skillsCmd)
}

func runSkills(cmd *cobra.Command, args []string) error {
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

	ranked := analysis.Ranked(ds)
	n := len(ranked)
	if skillsLimit > 0 {
		n = skillsLimit
	}
	top := cooccur.SelectTop(ranked, n)

	fmt.Printf("%4s  %-40s %6s %7s\n", "#", "Skill", "Count", "Share")
	fmt.Println(strings.Repeat("─", 60))
	for i, s := range top {
		fmt.Printf("%4d  %-40s %6d %6.1f%%\n", i+1, s.Skill, s.Count, 100*analysis.Share(s.Count, len(ds.WithSkills)))
	}

	fmt.Printf("\nTotal: %d skills across %d vacancies with skills\n", len(ranked), len(ds.WithSkills))
	return nil
}
