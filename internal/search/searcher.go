package search

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
)

// crawlFn mirrors CrawlWithStats for test overrides.
var crawlFn = CrawlWithStats

// SearchOptions configures a Searcher.
type SearchOptions struct {
	Crawl  CrawlOptions
	Scorer Scorer
	// MaxRatio drops poor matches, see Scorer.Select. Zero keeps everything.
	MaxRatio float64
	// Limit caps the number of returned candidates. Zero returns all.
	Limit int
	// Workers is the scoring parallelism. Values below 2 score sequentially.
	Workers int
	// CacheCrawl keeps the last crawl and only re-scores it on later
	// searches until the root changes or Invalidate is called.
	CacheCrawl bool
	Logger     *slog.Logger
}

// SearchResult is the outcome of one crawl-and-score trigger.
type SearchResult struct {
	RunID      string
	Root       string
	Query      string
	Candidates []Candidate
	// Total counts scored candidates before selection and the limit.
	Total   int
	Stats   CrawlStats
	Err     error
	Elapsed time.Duration
}

// Searcher runs crawl-then-score passes for one root directory. It holds no
// results between passes unless CacheCrawl is enabled.
type Searcher struct {
	opts   SearchOptions
	logger *slog.Logger

	mu          sync.Mutex
	root        string
	cached      []Candidate
	cachedStats CrawlStats
	cacheValid  bool

	cancelMu sync.Mutex
	cancel   context.CancelFunc
	token    int
}

// NewSearcher creates a searcher rooted at root.
func NewSearcher(root string, opts SearchOptions) *Searcher {
	logger := loggerOrDiscard(opts.Logger)
	if opts.Crawl.Logger == nil {
		opts.Crawl.Logger = logger
	}
	return &Searcher{
		opts:   opts,
		logger: logger,
		root:   root,
	}
}

// Root returns the directory searched by the next pass.
func (s *Searcher) Root() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.root
}

// SetRoot switches to a new root, cancelling in-flight work and dropping the
// crawl cache.
func (s *Searcher) SetRoot(root string) {
	s.cancelOngoingSearch()
	s.mu.Lock()
	s.root = root
	s.dropCacheLocked()
	s.mu.Unlock()
}

// Invalidate drops the cached crawl so the next search walks the tree again.
func (s *Searcher) Invalidate() {
	s.mu.Lock()
	s.dropCacheLocked()
	s.mu.Unlock()
}

// SetHideHidden changes whether hidden entries are crawled and drops the cache.
func (s *Searcher) SetHideHidden(hide bool) {
	s.cancelOngoingSearch()
	s.mu.Lock()
	s.opts.Crawl.HideHidden = hide
	s.dropCacheLocked()
	s.mu.Unlock()
}

// Cancel stops any in-flight asynchronous search. Its callback will not run.
func (s *Searcher) Cancel() {
	s.cancelOngoingSearch()
}

// Search crawls the root and ranks every file against query.
//
// When a nested directory is unreadable the partial crawl is still scored and
// returned alongside the ErrDirectoryUnreadable error.
func (s *Searcher) Search(ctx context.Context, query string) (SearchResult, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	start := time.Now()
	root := s.Root()
	result := SearchResult{
		RunID: uuid.NewString(),
		Root:  root,
		Query: query,
	}
	logger := s.logger.With("run", result.RunID)

	candidates, stats, err := s.candidates(ctx, root)
	result.Stats = stats
	if err != nil && (len(candidates) == 0 || !errors.Is(err, ErrDirectoryUnreadable)) {
		logger.Debug("crawl failed", "root", root, "err", err)
		result.Err = err
		result.Elapsed = time.Since(start)
		return result, err
	}

	scored, scoreErr := s.opts.Scorer.ScoreAllParallel(ctx, query, candidates, s.opts.Workers)
	if scoreErr != nil {
		result.Err = scoreErr
		result.Elapsed = time.Since(start)
		return result, scoreErr
	}

	result.Total = len(scored)
	selected := s.opts.Scorer.Select(query, scored, s.opts.MaxRatio)
	result.Candidates = Top(selected, s.opts.Limit)
	result.Err = err
	result.Elapsed = time.Since(start)

	logger.Debug("search finished",
		"root", root,
		"query", query,
		"dirs", stats.Dirs,
		"files", result.Total,
		"returned", len(result.Candidates),
		"skipped", len(stats.Skipped),
		"elapsed", result.Elapsed,
	)
	if err != nil {
		logger.Warn("search returned partial results", "root", root, "err", err)
	}
	return result, err
}

// SearchAsync runs Search in a goroutine. A newer SearchAsync, SetRoot or
// Cancel supersedes the running one, whose callback is then never invoked.
func (s *Searcher) SearchAsync(query string, callback func(SearchResult)) {
	s.cancelOngoingSearch()

	ctx, cancel := context.WithCancel(context.Background())
	token := s.setCancel(cancel)

	go func() {
		defer s.clearCancel(token)
		defer cancel()

		result, _ := s.Search(ctx, query)

		if !s.isTokenCurrent(token) {
			return
		}
		select {
		case <-ctx.Done():
			return
		default:
		}

		callback(result)
	}()
}

// candidates returns a crawl of root that the caller may reorder freely.
func (s *Searcher) candidates(ctx context.Context, root string) ([]Candidate, CrawlStats, error) {
	s.mu.Lock()
	crawlOpts := s.opts.Crawl
	if !s.opts.CacheCrawl {
		s.mu.Unlock()
		return crawlFn(ctx, root, crawlOpts)
	}
	if s.cacheValid && s.root == root {
		cached := CloneCandidates(s.cached)
		stats := s.cachedStats
		s.mu.Unlock()
		return cached, stats, nil
	}
	s.mu.Unlock()

	candidates, stats, err := crawlFn(ctx, root, crawlOpts)
	if err != nil {
		return candidates, stats, err
	}

	s.mu.Lock()
	if s.root == root {
		s.cached = CloneCandidates(candidates)
		s.cachedStats = stats
		s.cacheValid = true
	}
	s.mu.Unlock()
	return candidates, stats, nil
}

func (s *Searcher) dropCacheLocked() {
	s.cached = nil
	s.cachedStats = CrawlStats{}
	s.cacheValid = false
}

func (s *Searcher) cancelOngoingSearch() {
	s.cancelMu.Lock()
	defer s.cancelMu.Unlock()
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
		s.token++
	}
}

func (s *Searcher) setCancel(cancel context.CancelFunc) int {
	s.cancelMu.Lock()
	s.token++
	token := s.token
	s.cancel = cancel
	s.cancelMu.Unlock()
	return token
}

func (s *Searcher) clearCancel(token int) {
	s.cancelMu.Lock()
	if s.token == token {
		s.cancel = nil
	}
	s.cancelMu.Unlock()
}

func (s *Searcher) isTokenCurrent(token int) bool {
	s.cancelMu.Lock()
	defer s.cancelMu.Unlock()
	return s.token == token
}
