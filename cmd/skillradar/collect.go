package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/amishk599/skillradar/internal/collector"
	"github.com/amishk599/skillradar/internal/dataset"
	"github.com/amishk599/skillradar/internal/filter"
	"github.com/amishk599/skillradar/internal/model"
	"github.com/amishk599/skillradar/internal/scheduler"
	"github.com/amishk599/skillradar/internal/store"
)

var (
	collectOnce   bool
	collectDryRun bool
)

var collectCmd = &cobra.Command{
	Use:   "collect",
	Short: "Collect vacancies and write the dataset files",
	Long: "Lists vacancies for the configured search term, fetches each one's key skills, " +
		"records them in the store and rewrites the dataset files. With collect.interval set, " +
		"repeats until SIGINT/SIGTERM.",
	RunE: runCollect,
}

func init() {
	collectCmd.Flags().BoolVar(&collectOnce, "once", false, "collect once and exit, ignoring collect.interval")
	collectCmd.Flags().BoolVar(&collectDryRun, "dry-run", false, "collect once without storing anything or writing files")
	rootCmd.AddCommand(collectCmd)
}

func runCollect(cmd *cobra.Command, args []string) error {
	logger := setupLogger(debug)
	cfg := mustLoadConfig(logger)

	logger.Info("config loaded",
		"search_term", cfg.Source.SearchTerm,
		"pages", cfg.Source.Pages,
		"per_page", cfg.Source.PerPage,
		"interval", cfg.Collect.Interval.String(),
		"data_dir", cfg.Data.Dir,
	)

	// In dry-run mode, use a NopStore so nothing is persisted.
	var vacancyStore model.VacancyStore
	if collectDryRun {
		logger.Info("dry-run mode enabled, nothing will be stored")
		vacancyStore = store.NewNopStore()
	} else {
		sqlStore, err := store.NewSQLiteStore(cfg.Data.DBPath)
		if err != nil {
			logger.Error("failed to open store", "error", err)
			os.Exit(1)
		}
		defer sqlStore.Close()
		vacancyStore = sqlStore
	}

	c := collector.New(
		buildSource(cfg, logger),
		filter.NewTitleFilter(cfg.Filters.TitleKeywords, cfg.Filters.TitleExcludeKeywords),
		vacancyStore,
		setupNotifier(cfg, logger),
		cfg.Source.Pages,
		logger,
	)

	tasks := []scheduler.Task{{
		Name: "collect",
		Run: func(ctx context.Context) error {
			_, err := c.Collect(ctx)
			return err
		},
	}}
	if !collectDryRun {
		if cfg.Collect.Retention > 0 {
			tasks = append(tasks, scheduler.Task{
				Name: "cleanup",
				Run: func(context.Context) error {
					return vacancyStore.Cleanup(cfg.Collect.Retention)
				},
			})
		}
		tasks = append(tasks, scheduler.Task{
			Name: "write dataset",
			Run: func(context.Context) error {
				ds, err := vacancyStore.Dataset()
				if err != nil {
					return err
				}
				if err := dataset.Write(cfg.Data.Dir, ds); err != nil {
					return err
				}
				logger.Info("dataset written",
					"dir", cfg.Data.Dir,
					"with_skills", len(ds.WithSkills),
					"empty", len(ds.Empty),
					"errors", len(ds.Errors),
					"skills", len(ds.Skills),
				)
				return nil
			},
		})
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if collectOnce || collectDryRun || cfg.Collect.Interval == 0 {
		for _, t := range tasks {
			if err := t.Run(ctx); err != nil {
				return fmt.Errorf("%s: %w", t.Name, err)
			}
		}
		return nil
	}

	sched := scheduler.NewScheduler(tasks, cfg.Collect.Interval, logger)
	if err := sched.Run(ctx); err != nil {
		logger.Error("scheduler error", "error", err)
		os.Exit(1)
	}

	logger.Info("goodbye")
	return nil
}
