package homepage

import (
	"errors"
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"

	"github.com/MrSnakeDoc/archivetag/internal/tagging"
)

var templateVar = regexp.MustCompile(`\{\{[^}]+\}\}`)

// ErrNoSeeds is returned when a file parses but holds no usable link
var ErrNoSeeds = errors.New("no valid links found in homepage file")

// Loader reads a Homepage bookmarks.yaml or services.yaml and turns it into seeds.
type Loader struct {
	filePath string
}

// NewLoader creates a new Homepage loader
func NewLoader(filePath string) *Loader {
	return &Loader{
		filePath: filePath,
	}
}

// Path returns the watched file
func (l *Loader) Path() string {
	return l.filePath
}

// Load reads the file and maps every link to a seed tagged with its category.
// bookmarks.yaml is tried first, services.yaml second.
func (l *Loader) Load() ([]tagging.Seed, error) {
	data, err := os.ReadFile(l.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read homepage file: %w", err)
	}

	return Parse(data)
}

// Parse maps raw Homepage YAML to seeds.
func Parse(data []byte) ([]tagging.Seed, error) {
	// Homepage template variables ({{HOMEPAGE_VAR_...}}) are not resolvable here
	data = stripTemplateVariables(data)

	var bookmarks BookmarksConfig
	bookmarkErr := yaml.Unmarshal(data, &bookmarks)
	if bookmarkErr == nil {
		if seeds := MapBookmarks(bookmarks); len(seeds) > 0 {
			return seeds, nil
		}
	}

	var services ServicesConfig
	serviceErr := yaml.Unmarshal(data, &services)
	if serviceErr == nil {
		if seeds := MapServices(services); len(seeds) > 0 {
			return seeds, nil
		}
	}

	if bookmarkErr != nil && serviceErr != nil {
		return nil, fmt.Errorf("failed to parse homepage yaml: %w", errors.Join(bookmarkErr, serviceErr))
	}
	return nil, ErrNoSeeds
}

// stripTemplateVariables removes Homepage template variables from YAML
// Example: {{HOMEPAGE_VAR_ADGUARD_USER}} -> ""
func stripTemplateVariables(data []byte) []byte {
	return templateVar.ReplaceAll(data, []byte(`""`))
}
