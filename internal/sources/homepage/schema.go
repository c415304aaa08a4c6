package homepage

// BookmarkEntry represents a single bookmark entry in the YAML
type BookmarkEntry struct {
	Abbr        string `yaml:"abbr"`
	Href        string `yaml:"href"`
	Description string `yaml:"description,omitempty"`
}

// BookmarksConfig is the root structure for bookmarks.yaml.
// The YAML structure is: - CategoryName: [ - BookmarkName: [{ abbr, href }] ]
// Each bookmark name maps to a list with a single entry.
type BookmarksConfig []map[string][]map[string][]BookmarkEntry

// ServicesConfig is the root structure for services.yaml.
// The YAML structure is: - GroupName: [ - ServiceName: { href, description } ]
type ServicesConfig []map[string][]map[string]ServiceProps

// ServiceProps contains the service properties used for seeding
type ServiceProps struct {
	Href        string `yaml:"href"`
	Description string `yaml:"description,omitempty"`
}
