package md2epub

import (
	"path"

	"github.com/alnah/go-md2epub/internal/epub"
)

// Template contexts are plain maps so templates address values by their
// metadata.yaml names: {{.metadata.book_id}}, {{range .manifest}}{{.uid}}.

func (b *Book) metadataContext() map[string]any {
	m := b.Metadata
	coverID := ""
	if it, ok := b.manifest.Lookup(m.Cover); ok {
		coverID = it.UID
	}
	return map[string]any{
		"title":       m.Title,
		"author":      m.Author,
		"publisher":   m.Publisher,
		"language":    m.Language,
		"rights":      m.Rights,
		"description": m.Description,
		"date":        m.Date,
		"cover":       m.Cover,
		"cover_id":    coverID,
		"stylesheet":  m.Stylesheet,
		"book_id":     m.BookID,
		"resource_id": m.ResourceID,
	}
}

// bookContext is the context of control documents and front matter pages.
//
//	metadata    see metadataContext
//	manifest    [{uid, path, mime}] in processing order
//	spine       [{uid, path}] chapter documents in catalog order
//	toc         [{file, title}] one per chapter
//	navmap      [{id, play_order, label, src, children}] nested
//	depth       navmap nesting depth
//	catalog     chapter sources
//	stylesheet  compiled stylesheet path
func (b *Book) bookContext() map[string]any {
	items := b.manifest.Items()
	manifest := make([]map[string]any, 0, len(items))
	for _, it := range items {
		manifest = append(manifest, map[string]any{
			"uid":  it.UID,
			"path": it.Path,
			"mime": it.MIME,
		})
	}

	entries := b.toc.Entries()
	spine := make([]map[string]any, 0, len(entries))
	toc := make([]map[string]any, 0, len(entries))
	for _, e := range entries {
		spine = append(spine, map[string]any{
			"uid":  epub.UID(e.File),
			"path": e.File,
		})
		title := path.Base(e.File)
		if len(e.Headers) > 0 {
			title = e.Headers[0].Text
		}
		toc = append(toc, map[string]any{"file": e.File, "title": title})
	}

	nav := b.toc.NavMap()
	return map[string]any{
		"metadata":   b.metadataContext(),
		"manifest":   manifest,
		"spine":      spine,
		"toc":        toc,
		"navmap":     navContext(nav),
		"depth":      epub.Depth(nav),
		"catalog":    append([]string(nil), b.Catalog...),
		"stylesheet": b.Metadata.Stylesheet,
	}
}

func navContext(points []*epub.NavPoint) []map[string]any {
	out := make([]map[string]any, 0, len(points))
	for _, p := range points {
		out = append(out, map[string]any{
			"id":         p.ID,
			"play_order": p.PlayOrder,
			"label":      p.Label,
			"src":        p.Src,
			"children":   navContext(p.Children),
		})
	}
	return out
}
