package search

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"
	"unicode/utf8"
)

const (
	// minParallelBatch is the smallest candidate count worth splitting across workers.
	minParallelBatch = 512
	ctxCheckInterval = 256
)

// CompareMode selects which part of a file name the query is compared with.
type CompareMode int

const (
	// CompareAuto compares with the name without its extension unless the
	// query itself contains a dot.
	CompareAuto CompareMode = iota
	// CompareName always compares with the full base name.
	CompareName
	// CompareStem always compares with the name minus its final extension.
	CompareStem
)

func (m CompareMode) String() string {
	switch m {
	case CompareName:
		return "name"
	case CompareStem:
		return "stem"
	default:
		return "auto"
	}
}

// ParseCompareMode parses "auto", "name" or "stem".
func ParseCompareMode(value string) (CompareMode, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "auto":
		return CompareAuto, nil
	case "name":
		return CompareName, nil
	case "stem":
		return CompareStem, nil
	default:
		return CompareAuto, fmt.Errorf("unknown compare mode %q (want auto, name or stem)", value)
	}
}

// Scorer annotates candidates with their edit distance to a query.
// The zero value compares case-sensitively in CompareAuto mode.
type Scorer struct {
	Mode       CompareMode
	IgnoreCase bool
}

// ScoreAll scores candidates with the default Scorer.
func ScoreAll(query string, candidates []Candidate) []Candidate {
	return Scorer{}.ScoreAll(query, candidates)
}

// ScoreAll overwrites every candidate's Score with its distance to query and
// sorts the slice in place, best match first. Candidates with equal scores
// keep their crawl order. The same slice is returned.
func (s Scorer) ScoreAll(query string, candidates []Candidate) []Candidate {
	q := s.fold(query)
	for i := range candidates {
		candidates[i].Score = Distance(q, s.key(query, candidates[i].Name))
	}
	rankCandidates(candidates)
	return candidates
}

// ScoreAllParallel is ScoreAll spread across workers goroutines. Each worker
// owns a contiguous chunk of the slice, so no entry is written twice. The
// result is identical to ScoreAll. On cancellation the slice is left
// partially scored and unsorted and ctx.Err() is returned.
func (s Scorer) ScoreAllParallel(ctx context.Context, query string, candidates []Candidate, workers int) ([]Candidate, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if workers <= 1 || len(candidates) < minParallelBatch {
		if err := ctx.Err(); err != nil {
			return candidates, err
		}
		return s.ScoreAll(query, candidates), nil
	}

	q := s.fold(query)
	chunk := (len(candidates) + workers - 1) / workers

	var wg sync.WaitGroup
	for start := 0; start < len(candidates); start += chunk {
		end := min(start+chunk, len(candidates))
		wg.Add(1)
		go func(part []Candidate) {
			defer wg.Done()
			for i := range part {
				if i%ctxCheckInterval == 0 && ctx.Err() != nil {
					return
				}
				part[i].Score = Distance(q, s.key(query, part[i].Name))
			}
		}(candidates[start:end])
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return candidates, err
	}
	rankCandidates(candidates)
	return candidates, nil
}

// Select keeps candidates whose Score is at most maxRatio times the longer of
// the query and the compared key. A ratio outside (0, 1) keeps everything.
// Order is preserved; the input slice is not modified.
func (s Scorer) Select(query string, candidates []Candidate, maxRatio float64) []Candidate {
	if maxRatio <= 0 || maxRatio >= 1 {
		return candidates
	}

	queryLen := utf8.RuneCountInString(query)
	selected := make([]Candidate, 0, len(candidates))
	for _, c := range candidates {
		keyLen := utf8.RuneCountInString(s.key(query, c.Name))
		limit := maxRatio * float64(max(queryLen, keyLen))
		if float64(c.Score) <= limit {
			selected = append(selected, c)
		}
	}
	return selected
}

// Select filters with the default Scorer.
func Select(query string, candidates []Candidate, maxRatio float64) []Candidate {
	return Scorer{}.Select(query, candidates, maxRatio)
}

// Top returns at most n leading candidates; n <= 0 returns all of them.
func Top(candidates []Candidate, n int) []Candidate {
	if n <= 0 || n >= len(candidates) {
		return candidates
	}
	return candidates[:n]
}

// key returns the part of name compared against query.
func (s Scorer) key(query, name string) string {
	useStem := false
	switch s.Mode {
	case CompareStem:
		useStem = true
	case CompareAuto:
		useStem = !strings.ContainsRune(query, '.')
	}
	if useStem {
		name = stem(name)
	}
	return s.fold(name)
}

func (s Scorer) fold(text string) string {
	if s.IgnoreCase {
		return strings.ToLower(text)
	}
	return text
}

// stem drops the final extension. Leading dots are kept, so ".bashrc" stays whole.
func stem(name string) string {
	if dot := strings.LastIndexByte(name, '.'); dot > 0 {
		return name[:dot]
	}
	return name
}

func rankCandidates(candidates []Candidate) {
	slices.SortStableFunc(candidates, func(a, b Candidate) int {
		return cmp.Compare(a.Score, b.Score)
	})
}
