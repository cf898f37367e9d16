package slug

import "testing"

func TestMake(t *testing.T) {
	tests := []struct {
		name  string
		title string
		want  string
	}{
		{"simple", "Binary Search Tree", "binary-search-tree"},
		{"punctuation collapses", "Two Sum (LeetCode #1)", "two-sum-leetcode-1"},
		{"leading and trailing junk", "  --Hello, World!--  ", "hello-world"},
		{"diacritics strip to ascii", "Café Déjà Vu", "cafe-deja-vu"},
		{"mixed case", "PostgreSQL vs. MySQL", "postgresql-vs-mysql"},
		{"consecutive separators", "a  -  b", "a-b"},
		{"digits kept", "Top 10 Tips", "top-10-tips"},
		{"only punctuation is empty", "!!! ???", ""},
		{"empty title", "", ""},
		{"non-latin drops", "日本語", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Make(tt.title); got != tt.want {
				t.Errorf("Make(%q) = %q, want %q", tt.title, got, tt.want)
			}
		})
	}
}

func TestMakeDeterministic(t *testing.T) {
	title := "Graph Coloring: Greedy Approach"
	first := Make(title)
	for range 5 {
		if got := Make(title); got != first {
			t.Fatalf("Make not deterministic: %q vs %q", got, first)
		}
	}
}
