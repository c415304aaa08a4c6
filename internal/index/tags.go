package index

import (
	"sort"
	"strings"
	"time"

	"github.com/MrSnakeDoc/archivetag/internal/domain"
)

const (
	// DefaultSuggestLimit is how many suggestions the popup shows.
	DefaultSuggestLimit = 3
)

// SuggestedTags proposes tags from the rest of the collection, most recently created entries first.
// Tags already on current are skipped. limit <= 0 disables truncation.
//
// Example: b=[x y] (older), c=[y z] (newer), current has none -> [y z x]
func SuggestedTags(current *domain.Entry, coll domain.Collection, limit int) []string {
	var currentURL string
	var currentTags []string
	if current != nil {
		currentURL = current.URL
		currentTags = current.Tags
	}

	exclude := make(map[string]bool, len(currentTags))
	for _, tag := range currentTags {
		exclude[tag] = true
	}

	seen := make(map[string]bool)
	suggestions := make([]string, 0, max(limit, 0))

	// Reverse creation order: recent usage wins the first-seen slot
	for i := len(coll) - 1; i >= 0; i-- {
		entry := coll[i]
		if entry == nil || entry.URL == currentURL {
			continue
		}
		for _, tag := range entry.Tags {
			if seen[tag] {
				continue
			}
			seen[tag] = true
			if exclude[tag] {
				continue
			}
			suggestions = append(suggestions, tag)
			if limit > 0 && len(suggestions) == limit {
				return suggestions
			}
		}
	}

	return suggestions
}

// AllTags returns every distinct tag across the collection, sorted case-insensitively.
// Tags that compare equal ignoring case keep their first-seen order.
func AllTags(coll domain.Collection) []string {
	seen := make(map[string]bool)
	tags := make([]string, 0)
	for _, entry := range coll {
		if entry == nil {
			continue
		}
		for _, tag := range entry.Tags {
			if seen[tag] {
				continue
			}
			seen[tag] = true
			tags = append(tags, tag)
		}
	}

	sort.SliceStable(tags, func(i, j int) bool {
		return strings.ToLower(tags[i]) < strings.ToLower(tags[j])
	})
	return tags
}

// TagStat is the usage summary of a single tag.
type TagStat struct {
	Tag      string    `json:"tag"`
	Count    int       `json:"count"`     // Number of entries carrying the tag
	LastUsed time.Time `json:"last_used"` // Creation time of the newest entry carrying the tag
}

// Stats summarises frequency and recency for every tag.
// Ordered by recency (newest entry first), ties broken by count, then by traversal order.
func Stats(coll domain.Collection) []TagStat {
	byTag := make(map[string]*TagStat)
	order := make([]string, 0)

	for i := len(coll) - 1; i >= 0; i-- {
		entry := coll[i]
		if entry == nil {
			continue
		}
		for _, tag := range entry.Tags {
			st, ok := byTag[tag]
			if !ok {
				st = &TagStat{Tag: tag, LastUsed: entry.Timestamp}
				byTag[tag] = st
				order = append(order, tag)
			}
			st.Count++
			if entry.Timestamp.After(st.LastUsed) {
				st.LastUsed = entry.Timestamp
			}
		}
	}

	stats := make([]TagStat, 0, len(order))
	for _, tag := range order {
		stats = append(stats, *byTag[tag])
	}

	sort.SliceStable(stats, func(i, j int) bool {
		if !stats[i].LastUsed.Equal(stats[j].LastUsed) {
			return stats[i].LastUsed.After(stats[j].LastUsed)
		}
		return stats[i].Count > stats[j].Count
	})
	return stats
}
