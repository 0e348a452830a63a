// Package epub holds the EPUB-specific building blocks of a book build: the
// manifest of archive items, the chapter table of contents and its NCX
// navigation tree, and the zip container writer.
//
// The types here are plain accumulators. They are not safe for concurrent
// mutation; the build driver serializes every Add and AddChapter call.
package epub
