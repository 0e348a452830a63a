package assets

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alnah/go-md2epub/internal/fileutil"
)

// ResolveTheme returns the loader for a theme reference.
//
//   - "" selects DefaultTheme.
//   - A built-in name selects the embedded theme.
//   - Anything else is a directory, relative to the working directory.
//
// Returns ErrThemeNotFound when the reference is neither.
func ResolveTheme(ref string) (AssetLoader, error) {
	if ref == "" {
		ref = DefaultTheme
	}
	if !fileutil.IsFilePath(ref) {
		if loader, err := NewEmbeddedLoader(ref); err == nil {
			return loader, nil
		}
	}
	loader, err := NewFilesystemLoader(ref)
	if err != nil {
		if errors.Is(err, ErrInvalidBasePath) {
			return nil, fmt.Errorf("%w: %q is not a built-in theme %v or a directory: %w",
				ErrThemeNotFound, ref, ThemeNames(), err)
		}
		return nil, err
	}
	return loader, nil
}

// LoadStylesheet returns the theme stylesheet and its name, trying style.less
// then style.css. Returns ErrStylesheetNotFound when the theme has neither.
func LoadStylesheet(loader AssetLoader) (name, content string, err error) {
	for _, candidate := range stylesheetNames {
		content, err := loader.Load(candidate)
		if err == nil {
			return candidate, content, nil
		}
		if !errors.Is(err, ErrTemplateNotFound) {
			return "", "", err
		}
	}
	return "", "", fmt.Errorf("%w: expected %s in %s",
		ErrStylesheetNotFound, strings.Join(stylesheetNames, " or "), loader.Source())
}
