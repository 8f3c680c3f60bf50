package textutil

import "testing"

func TestDisplayWidth(t *testing.T) {
	tests := []struct {
		text string
		want int
	}{
		{"", 0},
		{"notes.txt", 9},
		{"żółw", 4},
		{"日本語", 6},
	}
	for _, tt := range tests {
		if got := DisplayWidth(tt.text); got != tt.want {
			t.Fatalf("DisplayWidth(%q)=%d want %d", tt.text, got, tt.want)
		}
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		text  string
		width int
		want  string
	}{
		{"notes.txt", 20, "notes.txt"},
		{"notes.txt", 6, "notes…"},
		{"日本語.txt", 5, "日本…"},
		{"anything", 0, ""},
	}
	for _, tt := range tests {
		got := Truncate(tt.text, tt.width)
		if got != tt.want {
			t.Fatalf("Truncate(%q, %d)=%q want %q", tt.text, tt.width, got, tt.want)
		}
		if DisplayWidth(got) > tt.width {
			t.Fatalf("Truncate(%q, %d) is %d cells wide", tt.text, tt.width, DisplayWidth(got))
		}
	}
}

func TestTruncateLeftKeepsTail(t *testing.T) {
	if got := TruncateLeft("/home/user/projects/notes.txt", 10); got != "…notes.txt" {
		t.Fatalf("unexpected %q", got)
	}
	if got := TruncateLeft("/a/日本.txt", 7); got != "…本.txt" {
		t.Fatalf("unexpected %q", got)
	}
	if got := TruncateLeft("short", 10); got != "short" {
		t.Fatalf("unexpected %q", got)
	}
}

func TestPadding(t *testing.T) {
	if got := PadRight("日本", 6); got != "日本  " {
		t.Fatalf("PadRight=%q", got)
	}
	if got := PadLeft("7", 3); got != "  7" {
		t.Fatalf("PadLeft=%q", got)
	}
}
