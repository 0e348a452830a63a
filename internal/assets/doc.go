// Package assets provides the themes and control-document templates used to
// assemble an EPUB.
//
// # Loader Architecture
//
//	AssetLoader (interface)
//	    │
//	    ├── EmbeddedLoader    - built-in themes and the control bundle (go:embed)
//	    └── FilesystemLoader  - a theme directory on disk
//
// ResolveTheme turns a theme reference into a loader: an empty reference or a
// built-in name selects an EmbeddedLoader, anything else is treated as a
// directory path. There is no fallback between the two: a theme on disk must
// supply every template it is asked for.
//
// # Layout
//
//	themes/{name}/
//	├── style.less | style.css   # theme stylesheet
//	├── cover.xhtml
//	├── preface.xhtml
//	├── copyright.xhtml
//	└── chapter.xhtml
//	bundle/
//	├── content.opf
//	├── toc.ncx
//	└── META-INF/container.xml
//
// The bundle is not themeable; it is always read from the embedded copy.
//
// # Security
//
// Asset names are slash-relative and validated against traversal.
// FilesystemLoader resolves symlinks and verifies paths stay within its root.
package assets
