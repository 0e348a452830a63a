package assets

// Template names looked up in a theme.
const (
	CoverTemplate     = "cover.xhtml"
	PrefaceTemplate   = "preface.xhtml"
	CopyrightTemplate = "copyright.xhtml"
	ChapterTemplate   = "chapter.xhtml"
)

// Control documents, read from the built-in bundle.
const (
	PackageTemplate   = "content.opf"
	NCXTemplate       = "toc.ncx"
	ContainerDocument = "META-INF/container.xml"
)

// Theme stylesheet candidates, in lookup order.
var stylesheetNames = []string{"style.less", "style.css"}

// DefaultTheme is the name of the built-in theme used when none is selected.
const DefaultTheme = "default"

// AssetLoader loads a named asset from a theme or bundle.
// Names are slash-separated and relative to the loader's root.
type AssetLoader interface {
	// Load returns the asset content.
	// Returns ErrTemplateNotFound if the asset doesn't exist.
	// Returns ErrInvalidAssetName if the name is unsafe.
	Load(name string) (string, error)

	// Source describes where assets come from, for logs and errors.
	Source() string
}
