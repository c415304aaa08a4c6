package homepage

import (
	"net/url"
	"slices"
	"strings"

	"github.com/MrSnakeDoc/archivetag/internal/tagging"
)

// MapBookmarks converts bookmarks.yaml to seeds: title = bookmark name, tag = category.
func MapBookmarks(config BookmarksConfig) []tagging.Seed {
	seeds := make([]tagging.Seed, 0)

	for _, category := range config {
		for _, categoryName := range sortedKeys(category) {
			tag := CategoryTag(categoryName)
			for _, bookmarkMap := range category[categoryName] {
				for _, bookmarkName := range sortedKeys(bookmarkMap) {
					entries := bookmarkMap[bookmarkName]
					// Each bookmark has a list with a single entry
					if len(entries) == 0 || !validLink(entries[0].Href) {
						continue
					}
					seeds = append(seeds, newSeed(entries[0].Href, bookmarkName, tag))
				}
			}
		}
	}

	return seeds
}

// MapServices converts services.yaml to seeds: title = service name, tag = group.
func MapServices(config ServicesConfig) []tagging.Seed {
	seeds := make([]tagging.Seed, 0)

	for _, group := range config {
		for _, groupName := range sortedKeys(group) {
			tag := CategoryTag(groupName)
			for _, serviceMap := range group[groupName] {
				for _, serviceName := range sortedKeys(serviceMap) {
					props := serviceMap[serviceName]
					if !validLink(props.Href) {
						continue
					}
					seeds = append(seeds, newSeed(props.Href, serviceName, tag))
				}
			}
		}
	}

	return seeds
}

// CategoryTag turns a Homepage category name into a tag.
// Example: " Dev, Tools " -> "dev tools"
func CategoryTag(name string) string {
	tag := strings.ToLower(strings.TrimSpace(name))
	// commas separate tags on the remote side
	tag = strings.ReplaceAll(tag, ",", "")
	return strings.Join(strings.Fields(tag), " ")
}

func newSeed(href, title, tag string) tagging.Seed {
	s := tagging.Seed{URL: href, Title: strings.TrimSpace(title)}
	if tag != "" {
		s.Tags = []string{tag}
	}
	return s
}

// validLink keeps absolute http(s) links only
func validLink(href string) bool {
	if href == "" {
		return false
	}
	u, err := url.Parse(href)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
