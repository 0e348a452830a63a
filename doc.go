// Package md2epub assembles EPUB 2 books from Markdown chapters.
//
// # Quick Start
//
// A book lives in a source directory holding metadata.yaml, the chapters it
// lists, and optional resource directories:
//
//	metadata:
//	  title: The Book
//	  author: Ann Author
//	  publisher: Press
//	  language: en
//	  cover: images/cover.jpg
//	  stylesheet: book.less
//	resource:
//	  - images
//	catalog:
//	  - ch1.md
//	  - ch2.md
//
// Load it, build it, pack it:
//
//	book, err := md2epub.Load(ctx, md2epub.WithSourceDir("mybook"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	archive, err := book.Run(ctx, md2epub.ModeAll)
//
// # Pipeline
//
// Load reads the description and lists resources. Build copies resources and
// the cover, compiles the theme and book stylesheets (a LESS subset), renders
// chapters through Goldmark into the theme's chapter.xhtml, then renders
// content.opf, toc.ncx and the front matter pages. Pack zips the build
// directory: mimetype first and stored, then META-INF/container.xml, the
// control documents, front matter, cover, stylesheet, resources and chapters.
//
// Build and Pack may run in separate processes: Pack only needs a Book loaded
// from the same description and the build directory of an earlier Build.
//
// # Themes
//
// A theme provides cover.xhtml, preface.xhtml, copyright.xhtml, chapter.xhtml
// and style.less or style.css, written as Go text/template documents. Select a
// built-in theme by name or a directory by path with WithTheme, or supply
// assets directly with WithThemeLoader.
//
// # Errors
//
// Every error wraps one kind (ErrConfig, ErrContent, ErrStyle, ErrTemplate,
// ErrPack, ErrIO, ErrState) and its cause:
//
//	if errors.Is(err, md2epub.ErrConfig) { ... }
package md2epub
