package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"github.com/amishk599/skillradar/internal/adapter"
	"github.com/amishk599/skillradar/internal/analysis"
	"github.com/amishk599/skillradar/internal/config"
	"github.com/amishk599/skillradar/internal/dataset"
	"github.com/amishk599/skillradar/internal/model"
	"github.com/amishk599/skillradar/internal/notifier"
	"github.com/amishk599/skillradar/internal/ratelimit"
	"github.com/amishk599/skillradar/internal/retry"
	"github.com/amishk599/skillradar/internal/store"
)

const defaultConfigPath = "config.yaml"

var (
	cfgPath string
	debug   bool
	from    string
)

var rootCmd = &cobra.Command{
	Use:   "skillradar",
	Short: "Which skills do vacancies ask for, and which go together",
	Long:  "SkillRadar collects vacancies with their key skills and analyses skill demand and co-occurrence.",
	// Default to `analyze` so that `skillradar` with no args prints the report.
	RunE:         runAnalyze,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "path to config file (default: SKILLRADAR_CONFIG env var or ./config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&from, "from", "", `dataset source: "files" (data.dir) or "store" (data.db_path); default files`)
}

// loadConfig resolves the config path and parses it.
// Priority: explicit path arg > SKILLRADAR_CONFIG env var > "./config.yaml".
// A missing file at the implicit default path yields config.Default().
func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		if env := os.Getenv("SKILLRADAR_CONFIG"); env != "" {
			path = env
		} else {
			cfg, err := config.Load(defaultConfigPath)
			if errors.Is(err, fs.ErrNotExist) {
				return config.Default(), nil
			}
			return cfg, err
		}
	}
	return config.Load(path)
}

func setupLogger(dbg bool) *slog.Logger {
	return newLogger(os.Stdout, dbg)
}

// stderrLogger keeps stdout free for commands whose output is data.
func stderrLogger(dbg bool) *slog.Logger {
	return newLogger(os.Stderr, dbg)
}

func newLogger(w io.Writer, dbg bool) *slog.Logger {
	logLevel := slog.LevelInfo
	if dbg {
		logLevel = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: logLevel}))
}

func analysisOptions(cfg *config.Config) analysis.Options {
	return analysis.Options{
		TopSkills:     cfg.Analysis.TopSkills,
		HeatmapSkills: cfg.Analysis.HeatmapSkills,
		NetworkSkills: cfg.Analysis.NetworkSkills,
	}
}

// silentLogger is used while a TUI owns the terminal; log output before the
// alt-screen starts corrupts the display.
func silentLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func mustLoadConfig(logger *slog.Logger) *config.Config {
	cfg, err := loadConfig(cfgPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	return cfg
}

// setupNotifier returns the summary sink named by notification.type.
// "log" is the only type config validation accepts.
func setupNotifier(_ *config.Config, logger *slog.Logger) model.Notifier {
	return notifier.NewLogNotifier(logger)
}

// buildSource wires the HH adapter behind the rate limiter and the retry
// decorator, so every retried attempt is rate limited too.
func buildSource(cfg *config.Config, logger *slog.Logger) model.VacancySource {
	httpClient := &http.Client{Timeout: cfg.Source.Timeout}
	hh := adapter.NewHHAdapter(cfg.Source.BaseURL, cfg.Source.SearchTerm, cfg.Source.PerPage, cfg.Source.UserAgent, httpClient)

	limiter := ratelimit.NewHostRateLimiter(cfg.RateLimit.MinDelay)
	logger.Info("rate limiter configured", "host", hh.Host(), "min_delay", cfg.RateLimit.MinDelay.String())

	var src model.VacancySource = ratelimit.NewSource(hh, limiter, hh.Host())
	return retry.NewSource(src, cfg.Retry.MaxRetries, cfg.Retry.BaseDelay, logger)
}

// loadDataset reads the dataset from the source selected by --from.
func loadDataset(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*model.Dataset, string, error) {
	switch from {
	case "", "files":
		ds, err := dataset.NewReader(cfg.Data.Dir, logger).Load(ctx)
		return ds, cfg.Data.Dir, err
	case "store":
		st, err := store.NewSQLiteStore(cfg.Data.DBPath)
		if err != nil {
			return nil, "", err
		}
		defer st.Close()
		ds, err := store.ReadDataset(st)
		return ds, cfg.Data.DBPath, err
	default:
		return nil, "", fmt.Errorf("unknown --from %q (want files or store)", from)
	}
}

// missingDataHint explains an empty or missing dataset in terms of the
// command to run. ok is false for any other error.
func missingDataHint(err error, cfg *config.Config) (hint string, ok bool) {
	switch {
	case dataset.IsMissing(err):
		return fmt.Sprintf("No dataset in %s. Run `skillradar collect` first.", cfg.Data.Dir), true
	case errors.Is(err, store.ErrNothingCollected):
		return fmt.Sprintf("Nothing collected yet in %s. Run `skillradar collect` first.", cfg.Data.DBPath), true
	}
	return "", false
}
