package assets

import (
	"fmt"
	"path"
	"strings"
)

// ValidateAssetName checks that an asset name is a clean, slash-relative path
// that stays inside its root.
func ValidateAssetName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidAssetName)
	}
	if strings.Contains(name, "\\") || path.IsAbs(name) {
		return fmt.Errorf("%w: %q", ErrInvalidAssetName, name)
	}
	if path.Clean(name) != name {
		return fmt.Errorf("%w: %q is not clean", ErrInvalidAssetName, name)
	}
	for _, seg := range strings.Split(name, "/") {
		if seg == ".." || seg == "." {
			return fmt.Errorf("%w: %q", ErrInvalidAssetName, name)
		}
	}
	return nil
}

// ValidateThemeName checks that a built-in theme name is a single path segment.
func ValidateThemeName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty theme name", ErrInvalidAssetName)
	}
	if strings.ContainsAny(name, "/\\.") {
		return fmt.Errorf("%w: %q", ErrInvalidAssetName, name)
	}
	return nil
}
