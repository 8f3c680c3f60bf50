package search

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	fsutil "github.com/kk-code-lab/fileripper/internal/fs"
)

// Overridable in tests.
var (
	shouldHideFromListingFn = fsutil.ShouldHideFromListing
	dirIdentityFn           = fsutil.IdentityOf
	readDirFn               = os.ReadDir
)

var errAlreadyVisited = errors.New("directory already visited")

// CrawlOptions tunes a crawl. The zero value visits every regular file,
// follows symlinks and fails on the first unreadable directory.
type CrawlOptions struct {
	// HideHidden skips hidden files and does not descend into hidden directories.
	HideHidden bool
	// SkipSymlinks ignores symbolic links instead of following them.
	SkipSymlinks bool
	// SkipUnreadable logs and skips nested directories that cannot be
	// listed. An unreadable root is always an error.
	SkipUnreadable bool
	// MaxDepth limits how many directory levels below the root are
	// descended. Zero means unlimited.
	MaxDepth int
	Logger   *slog.Logger
}

// CrawlStats summarizes a finished crawl.
type CrawlStats struct {
	Dirs     int
	Files    int
	Skipped  []string
	Repaired int
	Duration time.Duration
}

// Crawl enumerates every regular file beneath root in depth-first pre-order.
//
// On ErrDirectoryUnreadable for a nested directory the candidates collected
// so far are returned together with the error.
func Crawl(ctx context.Context, root string, opts CrawlOptions) ([]Candidate, error) {
	candidates, _, err := CrawlWithStats(ctx, root, opts)
	return candidates, err
}

// CrawlWithStats is Crawl that also reports traversal statistics.
func CrawlWithStats(ctx context.Context, root string, opts CrawlOptions) ([]Candidate, CrawlStats, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	start := time.Now()
	c := &crawler{
		opts:    opts,
		logger:  loggerOrDiscard(opts.Logger),
		visited: make(map[dirKey]struct{}),
	}

	absRoot, err := resolveRoot(root)
	if err != nil {
		return nil, CrawlStats{}, err
	}

	err = c.walk(ctx, absRoot)
	c.stats.Files = len(c.candidates)
	c.stats.Duration = time.Since(start)
	return c.candidates, c.stats, err
}

func resolveRoot(root string) (string, error) {
	if root == "" {
		return "", &CrawlError{Op: "crawl", Path: root, Kind: ErrInvalidPath}
	}

	abs, err := filepath.Abs(root)
	if err != nil {
		return "", &CrawlError{Op: "crawl", Path: root, Kind: ErrInvalidPath, Err: err}
	}

	info, err := os.Stat(abs)
	switch {
	case err == nil:
	case errors.Is(err, fs.ErrNotExist):
		return "", &CrawlError{Op: "crawl", Path: abs, Kind: ErrInvalidPath, Err: err}
	default:
		return "", &CrawlError{Op: "crawl", Path: abs, Kind: ErrDirectoryUnreadable, Err: err}
	}
	if !info.IsDir() {
		return "", &CrawlError{Op: "crawl", Path: abs, Kind: ErrInvalidPath, Err: fmt.Errorf("not a directory")}
	}
	return abs, nil
}

type entryKind int

const (
	kindOther entryKind = iota
	kindDir
	kindFile
)

// dirKey holds the platform identity of a directory, or its resolved path
// when the identity cannot be read.
type dirKey struct {
	id   fsutil.DirIdentity
	path string
}

// dirFrame is one open directory on the explicit traversal stack.
type dirFrame struct {
	path    string
	key     dirKey
	depth   int
	entries []fs.DirEntry
	next    int
}

type crawler struct {
	opts       CrawlOptions
	logger     *slog.Logger
	visited    map[dirKey]struct{}
	candidates []Candidate
	stats      CrawlStats
}

// walk emulates recursive descent with a stack of partially consumed
// directory listings: a child directory is pushed and drained before the
// parent's next entry is looked at.
func (c *crawler) walk(ctx context.Context, root string) error {
	rootFrame, err := c.open(root, 0, false, nil)
	if err != nil {
		return err
	}
	stack := []*dirFrame{rootFrame}

	for len(stack) > 0 {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("crawl %s: %w", root, err)
		}

		top := stack[len(stack)-1]
		if top.next >= len(top.entries) {
			stack = stack[:len(stack)-1]
			continue
		}
		entry := top.entries[top.next]
		top.next++

		fullPath := filepath.Join(top.path, entry.Name())
		if c.skipEntry(fullPath, entry) {
			continue
		}

		switch c.classify(fullPath, entry) {
		case kindDir:
			depth := top.depth + 1
			if c.opts.MaxDepth > 0 && depth > c.opts.MaxDepth {
				continue
			}
			viaLink := entry.Type()&fs.ModeSymlink != 0
			child, err := c.open(fullPath, depth, viaLink, stack)
			if err != nil {
				if errors.Is(err, errAlreadyVisited) {
					continue
				}
				if c.opts.SkipUnreadable {
					c.logger.Warn("skipping unreadable directory", "path", fullPath, "err", err)
					c.stats.Skipped = append(c.stats.Skipped, fullPath)
					continue
				}
				return err
			}
			stack = append(stack, child)
		case kindFile:
			c.emit(fullPath, entry.Name())
		default:
			c.logger.Debug("skipping non-regular entry", "path", fullPath)
		}
	}

	return nil
}

// open lists a directory for the traversal stack. A directory reached through
// a symlink is entered only if its identity was never opened before. A plain
// directory is refused only when it is its own ancestor, so an alias listed
// earlier never hides the real path.
func (c *crawler) open(path string, depth int, viaLink bool, ancestors []*dirFrame) (*dirFrame, error) {
	key := c.identify(path)
	if viaLink {
		if _, seen := c.visited[key]; seen {
			c.logger.Debug("symlinked directory already visited, not descending", "path", path)
			return nil, errAlreadyVisited
		}
	} else {
		for _, frame := range ancestors {
			if frame.key == key {
				c.logger.Debug("directory is its own ancestor, not descending", "path", path)
				return nil, errAlreadyVisited
			}
		}
	}
	c.visited[key] = struct{}{}

	entries, err := readDirFn(path)
	if err != nil {
		return nil, &CrawlError{Op: "read directory", Path: path, Kind: ErrDirectoryUnreadable, Err: err}
	}
	c.stats.Dirs++

	return &dirFrame{path: path, key: key, depth: depth, entries: entries}, nil
}

func (c *crawler) identify(path string) dirKey {
	if id, err := dirIdentityFn(path); err == nil {
		return dirKey{id: id}
	}
	if resolved, err := filepath.EvalSymlinks(path); err == nil {
		return dirKey{path: resolved}
	}
	return dirKey{path: filepath.Clean(path)}
}

func (c *crawler) skipEntry(fullPath string, d fs.DirEntry) bool {
	if shouldHideFromListingFn(fullPath, d.Name()) {
		return true
	}
	return c.opts.HideHidden && fsutil.IsHidden(fullPath, d.Name())
}

func (c *crawler) classify(fullPath string, d fs.DirEntry) entryKind {
	mode := d.Type()
	switch {
	case mode.IsDir():
		return kindDir
	case mode.IsRegular():
		return kindFile
	case mode&fs.ModeSymlink == 0:
		return kindOther
	}

	if c.opts.SkipSymlinks {
		return kindOther
	}
	target, err := os.Stat(fullPath)
	if err != nil {
		c.logger.Debug("skipping broken symlink", "path", fullPath, "err", err)
		return kindOther
	}
	switch {
	case target.IsDir():
		return kindDir
	case target.Mode().IsRegular():
		return kindFile
	default:
		return kindOther
	}
}

func (c *crawler) emit(fullPath, rawName string) {
	name, repaired := fsutil.NormalizeName(rawName)
	if repaired {
		c.stats.Repaired++
		c.logger.Warn("file name is not valid UTF-8, using replacement characters", "path", fullPath)
	}
	c.candidates = append(c.candidates, newCandidate(name, fullPath))
}

func loggerOrDiscard(logger *slog.Logger) *slog.Logger {
	if logger != nil {
		return logger
	}
	return slog.New(slog.DiscardHandler)
}
