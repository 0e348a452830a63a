package pipeline

import (
	"net/url"
	"path"
	"strings"

	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"

	"github.com/alnah/go-md2epub/internal/fileutil"
)

// chapterLinkTransformer points relative links to other markdown chapters at
// their rendered .xhtml documents.
type chapterLinkTransformer struct{}

func (chapterLinkTransformer) Transform(doc *ast.Document, _ text.Reader, _ parser.Context) {
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if link, ok := n.(*ast.Link); ok {
			if dest, changed := RewriteChapterLink(string(link.Destination)); changed {
				link.Destination = []byte(dest)
			}
		}
		return ast.WalkContinue, nil
	})
}

// RewriteChapterLink maps "ch2.md#intro" to "ch2.xhtml#intro".
// Absolute URLs, fragments and non-markdown targets are returned unchanged.
func RewriteChapterLink(dest string) (string, bool) {
	if dest == "" || strings.HasPrefix(dest, "#") {
		return dest, false
	}
	u, err := url.Parse(dest)
	if err != nil || u.Scheme != "" || u.Host != "" || u.Path == "" {
		return dest, false
	}
	switch strings.ToLower(path.Ext(u.Path)) {
	case ".md", ".markdown":
	default:
		return dest, false
	}
	u.Path = fileutil.ChangeExt(u.Path, "xhtml")
	return u.String(), true
}
