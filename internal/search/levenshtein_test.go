package search

import (
	"testing"
	"unicode/utf8"
)

func TestDistanceKnownPairs(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"", "abc", 3},
		{"abc", "", 3},
		{"abc", "abc", 0},
		{"abc", "abd", 1},
		{"abc", "abcd", 1},
		{"abcd", "abc", 1},
		{"kitten", "sitting", 3},
		{"flaw", "lawn", 2},
		{"notes", "notesfinal", 5},
		{"notes", "report", 6},
		{"gti", "git", 2},
	}

	for _, tt := range tests {
		if got := Distance(tt.a, tt.b); got != tt.want {
			t.Errorf("Distance(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestDistanceSymmetric(t *testing.T) {
	words := []string{"", "a", "notes", "notes.txt", "report.pdf", "kitten", "sitting", "łódź", "lodz", "日本語", "日本"}
	for _, a := range words {
		for _, b := range words {
			if ab, ba := Distance(a, b), Distance(b, a); ab != ba {
				t.Fatalf("Distance not symmetric for %q/%q: %d vs %d", a, b, ab, ba)
			}
		}
	}
}

func TestDistanceIdentityAndEmpty(t *testing.T) {
	words := []string{"x", "main.go", "ścieżka", "🙂🙃"}
	for _, s := range words {
		if d := Distance(s, s); d != 0 {
			t.Fatalf("Distance(%q, %q) = %d, want 0", s, s, d)
		}
		if d := Distance("", s); d != utf8.RuneCountInString(s) {
			t.Fatalf("Distance(\"\", %q) = %d, want %d", s, d, utf8.RuneCountInString(s))
		}
	}
}

func TestDistanceCountsCodePoints(t *testing.T) {
	// Each of these differs by a single multi-byte rune.
	if d := Distance("łódź", "lódź"); d != 1 {
		t.Fatalf("expected one substitution, got %d", d)
	}
	if d := Distance("日本語", "日本"); d != 1 {
		t.Fatalf("expected one deletion, got %d", d)
	}
}

func TestDistanceBoundedByLongerString(t *testing.T) {
	pairs := [][2]string{{"abc", "xyz"}, {"a", "bcdef"}, {"report.pdf", "notes"}}
	for _, p := range pairs {
		limit := max(utf8.RuneCountInString(p[0]), utf8.RuneCountInString(p[1]))
		if d := Distance(p[0], p[1]); d > limit {
			t.Fatalf("Distance(%q, %q) = %d exceeds %d", p[0], p[1], d, limit)
		}
	}
}

func BenchmarkDistance(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_ = Distance("global_search_walk.go", "globalsearchwalker")
	}
}
