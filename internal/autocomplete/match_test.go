package autocomplete

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestMatch(t *testing.T) {
	tests := []struct {
		name     string
		query    string
		tags     []string
		limit    int
		expected []string
	}{
		{
			name:     "substring keeps universe order",
			query:    "a",
			tags:     []string{"alpha", "beta", "gamma"},
			limit:    5,
			expected: []string{"alpha", "beta", "gamma"},
		},
		{
			name:     "case insensitive",
			query:    "AL",
			tags:     []string{"Alpha", "beta", "gamma", "metal"},
			limit:    5,
			expected: []string{"Alpha", "metal"},
		},
		{
			name:     "empty query",
			query:    "",
			tags:     []string{"alpha", "beta"},
			limit:    5,
			expected: []string{},
		},
		{
			name:     "no match",
			query:    "zzz",
			tags:     []string{"alpha", "beta"},
			limit:    5,
			expected: []string{},
		},
		{
			name:     "truncated",
			query:    "t",
			tags:     []string{"t1", "t2", "t3", "t4", "t5", "t6", "t7"},
			limit:    5,
			expected: []string{"t1", "t2", "t3", "t4", "t5"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Match(tt.query, tt.tags, tt.limit)
			if diff := cmp.Diff(tt.expected, got); diff != "" {
				t.Errorf("Match() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestMatchProperties(t *testing.T) {
	universe := []string{"Go", "golang", "google", "rust", "Cargo", "ergo", "docs"}
	queries := []string{"", "g", "GO", "o", "x", "rgo"}

	for _, q := range queries {
		for limit := 1; limit <= 7; limit++ {
			got := Match(q, universe, limit)
			if q == "" && len(got) != 0 {
				t.Errorf("Match(%q) should be empty, got %v", q, got)
			}
			if len(got) > limit {
				t.Errorf("Match(%q, limit=%d) returned %d results", q, limit, len(got))
			}
			pos := -1
			for _, tag := range got {
				if !strings.Contains(strings.ToLower(tag), strings.ToLower(q)) {
					t.Errorf("Match(%q) returned non-matching %q", q, tag)
				}
				idx := indexOf(universe, tag)
				if idx <= pos {
					t.Errorf("Match(%q) broke universe order at %q", q, tag)
				}
				pos = idx
			}
		}
	}
}

func indexOf(tags []string, tag string) int {
	for i, t := range tags {
		if t == tag {
			return i
		}
	}
	return -1
}

func TestParseFreeText(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		existing []string
		expected []string
	}{
		{
			name:     "single tag",
			text:     "news",
			expected: []string{"news"},
		},
		{
			name:     "trims and drops blanks",
			text:     " news, go ,, ,tech",
			expected: []string{"news", "go", "tech"},
		},
		{
			name:     "drops existing",
			text:     "news,go",
			existing: []string{"go"},
			expected: []string{"news"},
		},
		{
			name:     "drops repeats",
			text:     "news,news, news",
			expected: []string{"news"},
		},
		{
			name:     "whitespace only",
			text:     "   ",
			expected: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseFreeText(tt.text, tt.existing)
			if diff := cmp.Diff(tt.expected, got); diff != "" {
				t.Errorf("ParseFreeText() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
