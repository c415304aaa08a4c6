package autocomplete

import (
	"strings"
)

const (
	// DefaultLimit is the size of the dropdown.
	DefaultLimit = 5
)

// Match returns the tags of allTags containing query, ignoring case.
// An empty query never opens the dropdown, so it yields no matches.
// Order follows allTags; limit <= 0 disables truncation.
func Match(query string, allTags []string, limit int) []string {
	matches := make([]string, 0)
	if query == "" {
		return matches
	}

	needle := strings.ToLower(query)
	for _, tag := range allTags {
		if !strings.Contains(strings.ToLower(tag), needle) {
			continue
		}
		matches = append(matches, tag)
		if limit > 0 && len(matches) == limit {
			break
		}
	}
	return matches
}

// ParseFreeText turns comma separated input into tags ready for a batch add.
// Blank parts, tags already in existing and repeats within the input are dropped.
//
// Example: " news, go ,,news" with existing [go] -> [news]
func ParseFreeText(text string, existing []string) []string {
	skip := make(map[string]bool, len(existing))
	for _, tag := range existing {
		skip[tag] = true
	}

	tags := make([]string, 0)
	for _, part := range strings.Split(text, ",") {
		tag := strings.TrimSpace(part)
		if tag == "" || skip[tag] {
			continue
		}
		skip[tag] = true
		tags = append(tags, tag)
	}
	return tags
}
