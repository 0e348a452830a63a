package assets

import (
	"embed"
	"fmt"
	"io/fs"
	"slices"
)

//go:embed themes
var themes embed.FS

//go:embed bundle
var bundle embed.FS

// EmbeddedLoader loads assets from a directory of an embedded filesystem.
// Implements AssetLoader interface.
type EmbeddedLoader struct {
	fsys fs.FS
	root string
}

// NewEmbeddedLoader returns the loader of a built-in theme.
// Returns ErrThemeNotFound if no theme has that name.
func NewEmbeddedLoader(theme string) (*EmbeddedLoader, error) {
	if err := ValidateThemeName(theme); err != nil {
		return nil, err
	}
	if !slices.Contains(ThemeNames(), theme) {
		return nil, fmt.Errorf("%w: %q (built-in: %v)", ErrThemeNotFound, theme, ThemeNames())
	}
	return &EmbeddedLoader{fsys: themes, root: "themes/" + theme}, nil
}

// NewBundleLoader returns the loader of the control-document bundle.
func NewBundleLoader() *EmbeddedLoader {
	return &EmbeddedLoader{fsys: bundle, root: "bundle"}
}

// ThemeNames lists the built-in themes in lexical order.
func ThemeNames() []string {
	entries, err := fs.ReadDir(themes, "themes")
	if err != nil {
		return nil
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() {
			names = append(names, e.Name())
		}
	}
	return names
}

// Load reads an embedded asset.
func (e *EmbeddedLoader) Load(name string) (string, error) {
	if err := ValidateAssetName(name); err != nil {
		return "", err
	}
	content, err := fs.ReadFile(e.fsys, e.root+"/"+name)
	if err != nil {
		return "", fmt.Errorf("%w: %q in %s", ErrTemplateNotFound, name, e.Source())
	}
	return string(content), nil
}

// Source returns "embedded:<root>".
func (e *EmbeddedLoader) Source() string {
	return "embedded:" + e.root
}

// Compile-time interface check.
var _ AssetLoader = (*EmbeddedLoader)(nil)
