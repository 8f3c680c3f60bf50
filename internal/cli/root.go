// Package cli implements the fileripper command line.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	apppkg "github.com/kk-code-lab/fileripper/internal/app"
	"github.com/kk-code-lab/fileripper/internal/config"
	"github.com/kk-code-lab/fileripper/internal/logging"
	"github.com/kk-code-lab/fileripper/internal/search"
	"github.com/kk-code-lab/fileripper/internal/textutil"
)

// runInteractive is overridden in tests so no terminal is needed.
var runInteractive = func(opts apppkg.Options) (string, error) {
	app, err := apppkg.NewApplication(opts)
	if err != nil {
		return "", err
	}
	defer func() {
		_ = app.Close()
	}()
	app.Run()
	return app.Chosen(), nil
}

type rootFlags struct {
	configPath     string
	root           string
	limit          int
	maxRatio       float64
	compare        string
	ignoreCase     bool
	hidden         bool
	noFollow       bool
	skipUnreadable bool
	workers        int
	interactive    bool
}

// NewRootCommand builds the fileripper command.
func NewRootCommand() *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:   "fileripper [query...]",
		Short: "find files by how closely their names match a query",
		Long: `fileripper - rank every file under a directory by edit distance to a query

With a query, prints "score  path" lines, best match first.
Without a query (or with --interactive) opens the two-pane browser.

Configuration is read from ~/.config/fileripper/config.yaml (XDG compliant).`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRoot(cmd, flags, args)
		},
	}

	f := cmd.Flags()
	cmd.PersistentFlags().StringVar(&flags.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/fileripper/config.yaml)")
	f.StringVarP(&flags.root, "root", "r", "", "directory to search (default: working directory)")
	f.IntVarP(&flags.limit, "limit", "n", 0, "maximum number of results, 0 = all (overrides search.limit)")
	f.Float64Var(&flags.maxRatio, "max-ratio", 0, "drop matches whose distance exceeds this share of the name length (0 = keep all)")
	f.StringVar(&flags.compare, "compare", "", "compare against: auto, name or stem")
	f.BoolVarP(&flags.ignoreCase, "ignore-case", "i", false, "case-insensitive matching")
	f.BoolVar(&flags.hidden, "hidden", false, "skip hidden files and directories")
	f.BoolVar(&flags.noFollow, "no-follow", false, "do not follow symbolic links")
	f.BoolVar(&flags.skipUnreadable, "skip-unreadable", false, "skip directories that cannot be read instead of failing")
	f.IntVar(&flags.workers, "workers", 0, "scoring goroutines (default from config)")
	f.BoolVarP(&flags.interactive, "interactive", "I", false, "open the interactive browser")

	cmd.AddCommand(newConfigCommand(flags))
	return cmd
}

// Execute runs the root command with the process arguments.
func Execute() error {
	return NewRootCommand().Execute()
}

func runRoot(cmd *cobra.Command, flags *rootFlags, args []string) error {
	cfg, err := loadConfig(flags.configPath)
	if err != nil {
		return err
	}
	if err := applyFlags(cmd, flags, cfg); err != nil {
		return err
	}

	root, err := resolveRoot(cfg.Search.Root)
	if err != nil {
		return err
	}

	query := strings.Join(args, " ")
	interactive := flags.interactive || len(args) == 0

	logger, closeLog, err := openLogger(cfg, interactive)
	if err != nil {
		return err
	}
	defer func() {
		_ = closeLog()
	}()

	opts := cfg.SearchOptions(logger)

	if interactive {
		chosen, err := runInteractive(apppkg.Options{
			Root:       root,
			Query:      query,
			HideHidden: cfg.Search.HideHidden,
			Searcher:   search.NewSearcher(root, opts),
			Logger:     logger,
		})
		if err != nil {
			return err
		}
		if chosen != "" {
			fmt.Fprintln(cmd.OutOrStdout(), chosen)
		}
		return nil
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()
	return runSearch(ctx, cmd.OutOrStdout(), search.NewSearcher(root, opts), query)
}

// runSearch prints one "score  path" line per result. Partial results are
// printed before a crawl error is returned.
func runSearch(ctx context.Context, out io.Writer, searcher *search.Searcher, query string) error {
	result, err := searcher.Search(ctx, query)
	if err != nil && len(result.Candidates) == 0 {
		return err
	}

	width := 1
	for _, c := range result.Candidates {
		width = max(width, len(strconv.Itoa(c.Score)))
	}
	for _, c := range result.Candidates {
		if _, werr := fmt.Fprintf(out, "%s  %s\n", textutil.PadLeft(strconv.Itoa(c.Score), width), c.FullPath); werr != nil {
			return werr
		}
	}
	return err
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Load()
	}
	return config.LoadFromFile(path)
}

// applyFlags overrides config values with flags the user actually set.
func applyFlags(cmd *cobra.Command, flags *rootFlags, cfg *config.Config) error {
	changed := cmd.Flags().Changed
	if changed("root") {
		cfg.Search.Root = flags.root
	}
	if changed("limit") {
		cfg.Search.Limit = flags.limit
	}
	if changed("max-ratio") {
		cfg.Search.MaxRatio = flags.maxRatio
	}
	if changed("compare") {
		cfg.Search.Compare = flags.compare
	}
	if changed("ignore-case") {
		cfg.Search.IgnoreCase = flags.ignoreCase
	}
	if changed("hidden") {
		cfg.Search.HideHidden = flags.hidden
	}
	if changed("no-follow") {
		cfg.Search.FollowSymlinks = !flags.noFollow
	}
	if changed("skip-unreadable") {
		cfg.Search.SkipUnreadable = flags.skipUnreadable
	}
	if changed("workers") {
		cfg.Search.Workers = flags.workers
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid options: %w", err)
	}
	return nil
}

func resolveRoot(root string) (string, error) {
	if root == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("determine working directory: %w", err)
		}
		return cwd, nil
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return "", &search.CrawlError{Op: "resolve root", Path: root, Kind: search.ErrInvalidPath, Err: err}
	}
	return abs, nil
}

// openLogger keeps stderr free while the browser owns the terminal unless a
// log file is configured.
func openLogger(cfg *config.Config, interactive bool) (*slog.Logger, func() error, error) {
	if interactive && cfg.Log.File == "" {
		return logging.Discard(), func() error { return nil }, nil
	}
	logger, closeLog, err := logging.Open(cfg.Log.Level, cfg.Log.File, cfg.Log.Debug)
	if err != nil {
		return nil, nil, err
	}
	return logger, closeLog, nil
}

// ExitCode maps an error returned by Execute to a process exit status.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, context.Canceled):
		return 130
	default:
		return 1
	}
}
