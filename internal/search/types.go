package search

import "unicode/utf8"

// Candidate is one file discovered by a crawl.
//
// Score starts at the code point length of Name, meaning "not compared yet",
// and is overwritten by every scoring pass. It is only meaningful relative to
// the query most recently scored against it.
type Candidate struct {
	Name     string
	FullPath string
	Score    int
}

func newCandidate(name, fullPath string) Candidate {
	return Candidate{
		Name:     name,
		FullPath: fullPath,
		Score:    utf8.RuneCountInString(name),
	}
}

// CloneCandidates returns an independent copy of candidates.
func CloneCandidates(candidates []Candidate) []Candidate {
	if candidates == nil {
		return nil
	}
	out := make([]Candidate, len(candidates))
	copy(out, candidates)
	return out
}
