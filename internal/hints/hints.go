// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"strings"
)

// ForMetadataNotFound returns a hint for a missing book description.
func ForMetadataNotFound(sourceDir string) string {
	if sourceDir == "" || sourceDir == "." {
		return format("run md2epub in the book directory, or pass it as an argument or with -m")
	}
	return format("expected metadata.yaml in " + sourceDir + "; use -m to point at another file")
}

// ForConfigNotFound returns hints for config file not found errors.
// Suggests --config flag and creating a config in ~/.config/go-md2epub/.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"

	for _, p := range searchedPaths {
		if strings.Contains(p, "go-md2epub") {
			hint += " or create " + p
			break
		}
	}

	return format(hint)
}

// ForThemeNotFound lists the built-in themes.
func ForThemeNotFound(available []string) string {
	if len(available) == 0 {
		return ""
	}
	return format("built-in themes: " + strings.Join(available, ", ") + "; or pass a theme directory path")
}

// ForPackMissing returns a hint for packing before a build.
func ForPackMissing() string {
	return format("run without -p (or with -c first) to build the book before packing")
}

// ForOutputDirectory returns hints for output directory creation errors.
func ForOutputDirectory() string {
	return format("check parent directory exists and is writable")
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}
