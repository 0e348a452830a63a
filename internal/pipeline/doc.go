// Package pipeline implements the per-file stages of an EPUB build.
//
// This package handles the transformations that turn source files into
// archive documents:
//   - Markdown preprocessing (BOM, line endings, ==highlight== syntax)
//   - Markdown to XHTML conversion via Goldmark, with chapter links rewritten
//   - Heading extraction for the table of contents
//   - Stylesheet compilation (a LESS subset) and theme/book merging
//   - Template rendering and XML normalization of control documents
//
// Book-level state (manifest, table of contents, spine order) is owned by the
// root md2epub package. Everything here works on one input at a time and is
// safe to call from concurrent goroutines.
package pipeline
