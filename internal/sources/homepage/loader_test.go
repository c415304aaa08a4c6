package homepage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeYAML(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to create test YAML file: %v", err)
	}
	return path
}

func TestLoaderLoadBookmarks(t *testing.T) {
	path := writeYAML(t, "bookmarks.yaml", `---
- Developer:
    - Github:
        - abbr: GH
          href: https://github.com/
    - Go Docs:
        - abbr: GO
          href: https://pkg.go.dev/
- Social:
    - Reddit:
        - abbr: RE
          href: https://reddit.com/
`)

	seeds, err := NewLoader(path).Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(seeds) != 3 {
		t.Fatalf("Load() returned %d seeds, want 3", len(seeds))
	}
	if seeds[0].URL != "https://github.com/" || seeds[0].Title != "Github" || seeds[0].Tags[0] != "developer" {
		t.Errorf("Load()[0] = %+v", seeds[0])
	}
	if seeds[2].Tags[0] != "social" {
		t.Errorf("Load()[2].Tags = %v, want [social]", seeds[2].Tags)
	}
}

func TestLoaderLoadServices(t *testing.T) {
	path := writeYAML(t, "services.yaml", `---
- Infrastructure:
    - AdGuard Home:
        icon: adguard-home.svg
        href: https://adguard.domain.ext
        description: Network-wide ads & trackers blocking DNS server
`)

	seeds, err := NewLoader(path).Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(seeds) != 1 || seeds[0].Title != "AdGuard Home" || seeds[0].Tags[0] != "infrastructure" {
		t.Errorf("Load() = %+v", seeds)
	}
}

func TestLoaderLoadWithTemplateVariables(t *testing.T) {
	path := writeYAML(t, "services.yaml", `---
- Infrastructure:
    - AdGuard Home:
        href: {{HOMEPAGE_VAR_ADGUARD_URL}}
    - Traefik:
        href: https://traefik.domain.ext
`)

	seeds, err := NewLoader(path).Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(seeds) != 1 || seeds[0].URL != "https://traefik.domain.ext" {
		t.Errorf("Load() = %+v, want only the resolvable link", seeds)
	}
}

func TestLoaderLoadErrors(t *testing.T) {
	if _, err := NewLoader("/nonexistent/path/bookmarks.yaml").Load(); err == nil {
		t.Error("Load() with non-existent file should return error")
	}

	empty := writeYAML(t, "bookmarks.yaml", "---\n[]\n")
	if _, err := NewLoader(empty).Load(); !errors.Is(err, ErrNoSeeds) {
		t.Errorf("Load() on empty file error = %v, want ErrNoSeeds", err)
	}

	broken := writeYAML(t, "bookmarks.yaml", "- a: [b\n")
	if _, err := NewLoader(broken).Load(); err == nil || errors.Is(err, ErrNoSeeds) {
		t.Errorf("Load() on broken yaml error = %v, want parse error", err)
	}
}

func TestStripTemplateVariablesFunc(t *testing.T) {
	tests := []struct {
		name     string
		input    []byte
		expected string
	}{
		{
			name:     "single template variable",
			input:    []byte("url: {{HOMEPAGE_VAR_URL}}"),
			expected: "url: \"\"",
		},
		{
			name:     "no template variables",
			input:    []byte("plain text"),
			expected: "plain text",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := stripTemplateVariables(tt.input)
			if string(result) != tt.expected {
				t.Errorf("stripTemplateVariables() = %q, want %q", string(result), tt.expected)
			}
		})
	}
}
