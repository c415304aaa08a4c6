package index

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/MrSnakeDoc/archivetag/internal/domain"
)

func entry(url string, created time.Time, tags ...string) *domain.Entry {
	if tags == nil {
		tags = []string{}
	}
	return &domain.Entry{ID: url, URL: url, Timestamp: created, Tags: tags}
}

func TestSuggestedTags(t *testing.T) {
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		current  *domain.Entry
		coll     domain.Collection
		limit    int
		expected []string
	}{
		{
			name:    "reverse creation order",
			current: entry("a", base.Add(3*time.Hour)),
			coll: domain.Collection{
				entry("b", base, "x", "y"),
				entry("c", base.Add(time.Hour), "y", "z"),
			},
			limit:    3,
			expected: []string{"y", "z", "x"},
		},
		{
			name:    "current entry tags excluded",
			current: entry("a", base, "z"),
			coll: domain.Collection{
				entry("a", base, "z"),
				entry("b", base, "x", "y"),
				entry("c", base, "y", "z"),
			},
			limit:    3,
			expected: []string{"y", "x"},
		},
		{
			name:    "current entry own tags not used as source",
			current: entry("a", base, "own"),
			coll: domain.Collection{
				entry("a", base, "own", "private"),
				entry("b", base, "x"),
			},
			limit:    3,
			expected: []string{"x"},
		},
		{
			name:    "truncated to limit",
			current: entry("a", base),
			coll: domain.Collection{
				entry("b", base, "1", "2", "3"),
				entry("c", base, "4", "5"),
			},
			limit:    3,
			expected: []string{"4", "5", "1"},
		},
		{
			name:     "no limit",
			current:  entry("a", base),
			coll:     domain.Collection{entry("b", base, "1", "2"), entry("c", base, "3")},
			limit:    0,
			expected: []string{"3", "1", "2"},
		},
		{
			name:     "empty collection",
			current:  entry("a", base),
			coll:     nil,
			limit:    3,
			expected: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SuggestedTags(tt.current, tt.coll, tt.limit)
			if diff := cmp.Diff(tt.expected, got); diff != "" {
				t.Errorf("SuggestedTags() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSuggestedTagsProperties(t *testing.T) {
	base := time.Now()
	current := entry("cur", base, "b", "d")
	coll := domain.Collection{
		entry("1", base, "a", "b", "c"),
		entry("2", base, "d", "e"),
		current,
		entry("3", base, "f", "a", "g", "b"),
	}

	for limit := 1; limit <= 6; limit++ {
		got := SuggestedTags(current, coll, limit)
		if len(got) > limit {
			t.Errorf("SuggestedTags(limit=%d) returned %d tags", limit, len(got))
		}
		seen := map[string]bool{}
		for _, tag := range got {
			if current.HasTag(tag) {
				t.Errorf("SuggestedTags(limit=%d) includes current tag %q", limit, tag)
			}
			if seen[tag] {
				t.Errorf("SuggestedTags(limit=%d) duplicates %q", limit, tag)
			}
			seen[tag] = true
		}
	}
}

func TestAllTags(t *testing.T) {
	coll := domain.Collection{
		entry("1", time.Now(), "beta", "Alpha"),
		entry("2", time.Now(), "gamma", "alpha", "beta"),
	}

	got := AllTags(coll)
	expected := []string{"Alpha", "alpha", "beta", "gamma"}
	if diff := cmp.Diff(expected, got); diff != "" {
		t.Errorf("AllTags() mismatch (-want +got):\n%s", diff)
	}
}

func TestStats(t *testing.T) {
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	coll := domain.Collection{
		entry("1", base, "old", "shared"),
		entry("2", base.Add(time.Hour), "shared"),
		entry("3", base.Add(2*time.Hour), "new"),
	}

	got := Stats(coll)
	expected := []TagStat{
		{Tag: "new", Count: 1, LastUsed: base.Add(2 * time.Hour)},
		{Tag: "shared", Count: 2, LastUsed: base.Add(time.Hour)},
		{Tag: "old", Count: 1, LastUsed: base},
	}
	if diff := cmp.Diff(expected, got); diff != "" {
		t.Errorf("Stats() mismatch (-want +got):\n%s", diff)
	}
}
