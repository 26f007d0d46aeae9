package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the root configuration for SkillRadar.
type Config struct {
	Source       SourceConfig
	RateLimit    RateLimitConfig
	Retry        RetryConfig
	Filters      FilterConfig
	Data         DataConfig
	Analysis     AnalysisConfig
	Collect      CollectConfig
	Notification NotificationConfig
}

// SourceConfig describes the vacancy API and what to search for.
type SourceConfig struct {
	BaseURL    string
	SearchTerm string
	Pages      int // listing pages per run
	PerPage    int // ids per listing page, at most 100
	UserAgent  string
	Timeout    time.Duration // per-request HTTP timeout
}

// RateLimitConfig controls host-level rate limiting.
type RateLimitConfig struct {
	MinDelay time.Duration // minimum gap between requests to the same host
}

// RetryConfig controls retries of transient failures.
type RetryConfig struct {
	MaxRetries int
	BaseDelay  time.Duration
}

// FilterConfig holds title keyword filter settings.
type FilterConfig struct {
	TitleKeywords        []string `yaml:"title_keywords"`
	TitleExcludeKeywords []string `yaml:"title_exclude_keywords"`
}

// DataConfig locates the dataset files and the collection store.
type DataConfig struct {
	Dir    string `yaml:"dir"`
	DBPath string `yaml:"db_path"`
}

// AnalysisConfig holds selection sizes for the report sections.
type AnalysisConfig struct {
	TopSkills     int `yaml:"top_skills"`
	HeatmapSkills int `yaml:"heatmap_skills"`
	NetworkSkills int `yaml:"network_skills"`
}

// CollectConfig controls repeated collection.
type CollectConfig struct {
	Interval  time.Duration // 0 runs a single collection
	Retention time.Duration // 0 keeps stored vacancies forever
}

// NotificationConfig controls which notifier is used.
type NotificationConfig struct {
	Type string `yaml:"type"` // "log"
}

// Defaults.
const (
	DefaultBaseURL    = "https://api.hh.ru"
	DefaultSearchTerm = "лаборант"
	DefaultUserAgent  = "skillradar/dev"

	maxPerPage       = 100
	maxMatrixSkills  = 50
	defaultPages     = 15
	defaultTimeout   = 30 * time.Second
	defaultMinDelay  = 1 * time.Second
	defaultBaseDelay = 5 * time.Second
)

// Default returns the configuration used when no config file exists.
func Default() *Config {
	return &Config{
		Source: SourceConfig{
			BaseURL:    DefaultBaseURL,
			SearchTerm: DefaultSearchTerm,
			Pages:      defaultPages,
			PerPage:    maxPerPage,
			UserAgent:  DefaultUserAgent,
			Timeout:    defaultTimeout,
		},
		RateLimit: RateLimitConfig{MinDelay: defaultMinDelay},
		Retry:     RetryConfig{MaxRetries: 2, BaseDelay: defaultBaseDelay},
		Data:      DataConfig{Dir: "data", DBPath: "vacancies.db"},
		Analysis: AnalysisConfig{
			TopSkills:     15,
			HeatmapSkills: 10,
			NetworkSkills: 8,
		},
		Notification: NotificationConfig{Type: "log"},
	}
}

// rawConfig is used for YAML unmarshaling (snake_case fields and duration as string).
// Pointer fields distinguish "absent" from an explicit zero.
type rawConfig struct {
	Source       rawSourceConfig    `yaml:"source"`
	RateLimit    rawRateLimitConfig `yaml:"rate_limit"`
	Retry        rawRetryConfig     `yaml:"retry"`
	Filters      FilterConfig       `yaml:"filters"`
	Data         DataConfig         `yaml:"data"`
	Analysis     rawAnalysisConfig  `yaml:"analysis"`
	Collect      rawCollectConfig   `yaml:"collect"`
	Notification NotificationConfig `yaml:"notification"`
}

type rawSourceConfig struct {
	BaseURL    string `yaml:"base_url"`
	SearchTerm string `yaml:"search_term"`
	Pages      *int   `yaml:"pages"`
	PerPage    *int   `yaml:"per_page"`
	UserAgent  string `yaml:"user_agent"`
	Timeout    string `yaml:"timeout"`
}

type rawRateLimitConfig struct {
	MinDelay string `yaml:"min_delay"`
}

type rawRetryConfig struct {
	MaxRetries *int   `yaml:"max_retries"`
	BaseDelay  string `yaml:"base_delay"`
}

type rawAnalysisConfig struct {
	TopSkills     *int `yaml:"top_skills"`
	HeatmapSkills *int `yaml:"heatmap_skills"`
	NetworkSkills *int `yaml:"network_skills"`
}

type rawCollectConfig struct {
	Interval  string `yaml:"interval"`
	Retention string `yaml:"retention"`
}

// Load reads and parses the YAML config file at path, validates it, and returns Config.
// Keys missing from the file keep their Default() values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	// Expand environment variables
	expanded := os.ExpandEnv(string(data))

	var raw rawConfig
	if err := yaml.Unmarshal([]byte(expanded), &raw); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	cfg := Default()

	setString(&cfg.Source.BaseURL, raw.Source.BaseURL)
	setString(&cfg.Source.SearchTerm, raw.Source.SearchTerm)
	setString(&cfg.Source.UserAgent, raw.Source.UserAgent)
	setInt(&cfg.Source.Pages, raw.Source.Pages)
	setInt(&cfg.Source.PerPage, raw.Source.PerPage)
	setInt(&cfg.Retry.MaxRetries, raw.Retry.MaxRetries)
	setInt(&cfg.Analysis.TopSkills, raw.Analysis.TopSkills)
	setInt(&cfg.Analysis.HeatmapSkills, raw.Analysis.HeatmapSkills)
	setInt(&cfg.Analysis.NetworkSkills, raw.Analysis.NetworkSkills)

	durations := []struct {
		key string
		raw string
		dst *time.Duration
	}{
		{"source.timeout", raw.Source.Timeout, &cfg.Source.Timeout},
		{"rate_limit.min_delay", raw.RateLimit.MinDelay, &cfg.RateLimit.MinDelay},
		{"retry.base_delay", raw.Retry.BaseDelay, &cfg.Retry.BaseDelay},
		{"collect.interval", raw.Collect.Interval, &cfg.Collect.Interval},
		{"collect.retention", raw.Collect.Retention, &cfg.Collect.Retention},
	}
	for _, d := range durations {
		if d.raw == "" {
			continue
		}
		v, err := time.ParseDuration(d.raw)
		if err != nil {
			return nil, fmt.Errorf("parse %s %q: %w", d.key, d.raw, err)
		}
		*d.dst = v
	}

	cfg.Filters = raw.Filters
	setString(&cfg.Data.Dir, raw.Data.Dir)
	setString(&cfg.Data.DBPath, raw.Data.DBPath)
	setString(&cfg.Notification.Type, raw.Notification.Type)

	if err := validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func setInt(dst *int, v *int) {
	if v != nil {
		*dst = *v
	}
}

func validate(cfg *Config) error {
	if cfg.Source.BaseURL == "" {
		return fmt.Errorf("source.base_url must not be empty")
	}
	if cfg.Source.SearchTerm == "" {
		return fmt.Errorf("source.search_term must not be empty")
	}
	if cfg.Source.Pages < 1 {
		return fmt.Errorf("source.pages must be positive, got %d", cfg.Source.Pages)
	}
	if cfg.Source.PerPage < 1 || cfg.Source.PerPage > maxPerPage {
		return fmt.Errorf("source.per_page must be between 1 and %d, got %d", maxPerPage, cfg.Source.PerPage)
	}
	if cfg.Source.Timeout <= 0 {
		return fmt.Errorf("source.timeout must be positive, got %v", cfg.Source.Timeout)
	}
	if cfg.RateLimit.MinDelay < 0 {
		return fmt.Errorf("rate_limit.min_delay must not be negative, got %v", cfg.RateLimit.MinDelay)
	}
	if cfg.Retry.MaxRetries < 0 || cfg.Retry.BaseDelay < 0 {
		return fmt.Errorf("retry settings must not be negative")
	}
	if cfg.Collect.Interval < 0 || cfg.Collect.Retention < 0 {
		return fmt.Errorf("collect durations must not be negative")
	}

	a := cfg.Analysis
	if a.TopSkills < 0 || a.HeatmapSkills < 0 || a.NetworkSkills < 0 {
		return fmt.Errorf("analysis sizes must not be negative")
	}
	if a.HeatmapSkills > maxMatrixSkills || a.NetworkSkills > maxMatrixSkills {
		return fmt.Errorf("analysis.heatmap_skills and analysis.network_skills must be at most %d", maxMatrixSkills)
	}

	if cfg.Data.Dir == "" {
		return fmt.Errorf("data.dir must not be empty")
	}
	if cfg.Notification.Type != "log" {
		return fmt.Errorf("notification.type must be \"log\", got %q", cfg.Notification.Type)
	}

	return nil
}
