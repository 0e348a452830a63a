package md2epub

import (
	"github.com/alnah/go-md2epub/internal/assets"
)

// DefaultTheme is the name of the built-in theme used when none is selected.
const DefaultTheme = assets.DefaultTheme

// ThemeLoader loads the templates and stylesheet of a theme.
// Implementations may read from disk, embedded files, a database, etc.
//
// A theme supplies cover.xhtml, preface.xhtml, copyright.xhtml, chapter.xhtml
// and style.less or style.css. Missing assets must be reported with an error
// wrapping ErrAssetNotFound.
type ThemeLoader interface {
	Load(name string) (string, error)
}

// ThemeNames lists the built-in themes.
func ThemeNames() []string {
	return assets.ThemeNames()
}

// NewThemeLoader resolves a theme reference: "" or a built-in name selects an
// embedded theme, anything else is read as a directory.
// Returns ErrTemplate if the reference matches neither.
func NewThemeLoader(ref string) (ThemeLoader, error) {
	loader, err := assets.ResolveTheme(ref)
	if err != nil {
		return nil, wrap(ErrTemplate, ref, err)
	}
	return loader, nil
}

// themeAdapter lets a public ThemeLoader serve the internal asset interface.
type themeAdapter struct {
	ThemeLoader
}

func (themeAdapter) Source() string { return "custom theme loader" }

// resolveThemeLoader returns the internal loader for the configured theme.
func (c *bookConfig) resolveThemeLoader() (assets.AssetLoader, error) {
	if c.themeLoader != nil {
		if l, ok := c.themeLoader.(assets.AssetLoader); ok {
			return l, nil
		}
		return themeAdapter{c.themeLoader}, nil
	}
	loader, err := assets.ResolveTheme(c.theme)
	if err != nil {
		return nil, wrap(ErrTemplate, c.theme, err)
	}
	return loader, nil
}
