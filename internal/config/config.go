package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/kk-code-lab/fileripper/internal/logging"
	"github.com/kk-code-lab/fileripper/internal/search"
)

// Config represents the fileripper configuration.
type Config struct {
	Search SearchConfig `yaml:"search"`
	Log    LogConfig    `yaml:"log"`
}

// SearchConfig holds crawl and ranking settings.
type SearchConfig struct {
	Root           string  `yaml:"root"`            // Starting directory (empty = working directory)
	FollowSymlinks bool    `yaml:"follow_symlinks"` // Descend into symlinked directories
	HideHidden     bool    `yaml:"hide_hidden"`     // Skip dotfiles and hidden entries
	SkipUnreadable bool    `yaml:"skip_unreadable"` // Log and skip unreadable subdirectories
	MaxDepth       int     `yaml:"max_depth"`       // Levels below root to descend (0 = unlimited)
	Compare        string  `yaml:"compare"`         // auto, name or stem
	IgnoreCase     bool    `yaml:"ignore_case"`     // Case-insensitive distance
	MaxRatio       float64 `yaml:"max_ratio"`       // Drop matches above this distance ratio (0 = keep all)
	Limit          int     `yaml:"limit"`           // Max results shown (0 = all)
	Workers        int     `yaml:"workers"`         // Scoring goroutines
	CacheCrawl     bool    `yaml:"cache_crawl"`     // Reuse the crawl between queries in the browser
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
	File  string `yaml:"file"`  // Log file path (empty = stderr)
	Debug bool   `yaml:"-"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Search: SearchConfig{
			FollowSymlinks: true,
			Compare:        search.CompareAuto.String(),
			Workers:        defaultWorkers(),
		},
		Log: LogConfig{
			Level: "warn",
		},
	}
}

func defaultWorkers() int {
	return min(max(runtime.NumCPU()-1, 1), 8)
}

// Load loads configuration from the default path.
func Load() (*Config, error) {
	return LoadFromFile(DefaultPaths().ConfigFile())
}

// LoadFromFile loads configuration from the specified file.
// If the file doesn't exist, returns default configuration.
// Environment variable overrides are applied after file loading.
func LoadFromFile(path string) (*Config, error) {
	return loadFromFile(path, os.Getenv)
}

func loadFromFile(path string, getenv func(string) string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist):
	default:
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg.applyEnv(getenv)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// ApplyEnvOverrides applies FILERIPPER_* environment variables to the config.
func (c *Config) ApplyEnvOverrides() {
	c.applyEnv(os.Getenv)
}

func (c *Config) applyEnv(getenv func(string) string) {
	if v := getenv("FILERIPPER_ROOT"); v != "" {
		c.Search.Root = v
	}
	if v := getenv("FILERIPPER_HIDE_HIDDEN"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Search.HideHidden = b
		}
	}
	if v := getenv("FILERIPPER_MAX_RATIO"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			c.Search.MaxRatio = f
		}
	}
	if v := getenv("FILERIPPER_LIMIT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Search.Limit = n
		}
	}
	if v := getenv("FILERIPPER_WORKERS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Search.Workers = n
		}
	}
	if v := getenv("FILERIPPER_LOG_LEVEL"); v != "" {
		if _, err := logging.ParseLevel(v); err == nil {
			c.Log.Level = v
		}
	}
	if v := getenv("FILERIPPER_DEBUG"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil && b {
			c.Log.Level = "debug"
			c.Log.Debug = true
		}
	}
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	if _, err := search.ParseCompareMode(c.Search.Compare); err != nil {
		return fmt.Errorf("search.compare: %w", err)
	}
	if c.Search.MaxDepth < 0 {
		return errors.New("search.max_depth must be >= 0")
	}
	if c.Search.Limit < 0 {
		return errors.New("search.limit must be >= 0")
	}
	if c.Search.Workers < 0 {
		return errors.New("search.workers must be >= 0")
	}
	if c.Search.MaxRatio < 0 || c.Search.MaxRatio > 1 {
		return fmt.Errorf("search.max_ratio must be between 0 and 1 (got: %g)", c.Search.MaxRatio)
	}
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	return nil
}

// SearchOptions converts the configuration into searcher options.
func (c *Config) SearchOptions(logger *slog.Logger) search.SearchOptions {
	mode, err := search.ParseCompareMode(c.Search.Compare)
	if err != nil {
		mode = search.CompareAuto
	}
	return search.SearchOptions{
		Crawl: search.CrawlOptions{
			HideHidden:     c.Search.HideHidden,
			SkipSymlinks:   !c.Search.FollowSymlinks,
			SkipUnreadable: c.Search.SkipUnreadable,
			MaxDepth:       c.Search.MaxDepth,
			Logger:         logger,
		},
		Scorer: search.Scorer{
			Mode:       mode,
			IgnoreCase: c.Search.IgnoreCase,
		},
		MaxRatio:   c.Search.MaxRatio,
		Limit:      c.Search.Limit,
		Workers:    c.Search.Workers,
		CacheCrawl: c.Search.CacheCrawl,
		Logger:     logger,
	}
}

// String renders the effective configuration as YAML.
func (c *Config) String() string {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err.Error()
	}
	return strings.TrimRight(string(data), "\n")
}
