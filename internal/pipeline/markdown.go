package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/util"

	"github.com/alnah/go-md2epub/internal/epub"
)

// Sentinel errors for chapter rendering.
var (
	ErrReadChapter    = errors.New("cannot read chapter")
	ErrHTMLConversion = errors.New("XHTML conversion failed")
)

// XHTMLConverter abstracts Markdown to XHTML fragment conversion.
type XHTMLConverter interface {
	ToXHTML(ctx context.Context, content string) (string, error)
}

// GoldmarkConverter converts Markdown to XHTML fragments using goldmark.
type GoldmarkConverter struct {
	md goldmark.Markdown
}

// NewGoldmarkConverter creates a GoldmarkConverter with GFM, footnotes, CJK
// line breaking, ==highlight== and inline-styled syntax highlighting.
func NewGoldmarkConverter() *GoldmarkConverter {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			extension.Footnote,
			extension.CJK,
			markExtension{},
			highlighting.NewHighlighting(
				highlighting.WithFormatOptions(
					// Inline styles: chapters carry no chroma stylesheet.
					chromahtml.WithClasses(false),
				),
			),
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(), // navPoint targets
			parser.WithASTTransformers(
				util.Prioritized(chapterLinkTransformer{}, 100),
			),
		),
		goldmark.WithRendererOptions(
			html.WithXHTML(),
			// WithUnsafe is not used: raw HTML would break XHTML well-formedness.
		),
	)
	return &GoldmarkConverter{md: md}
}

// ToXHTML converts Markdown content to an XHTML body fragment.
// Goldmark has no context support, so conversion runs in a goroutine raced
// against ctx.
func (c *GoldmarkConverter) ToXHTML(ctx context.Context, content string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	type result struct {
		xhtml string
		err   error
	}

	done := make(chan result, 1)

	go func() {
		var buf bytes.Buffer
		if err := c.md.Convert([]byte(content), &buf); err != nil {
			done <- result{err: fmt.Errorf("%w: %v", ErrHTMLConversion, err)}
			return
		}
		done <- result{xhtml: buf.String()}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r := <-done:
		return r.xhtml, r.err
	}
}

// Chapter is one rendered chapter.
type Chapter struct {
	Source   string // path the chapter was read from, empty for in-memory input
	Fragment string // XHTML body content
	Headings []epub.Heading
}

// Title returns the text of the first heading, or "" when there is none.
func (c Chapter) Title() string {
	if len(c.Headings) == 0 {
		return ""
	}
	return c.Headings[0].Text
}

// Renderer turns markdown chapters into XHTML fragments and headings.
// It is safe for concurrent use.
type Renderer struct {
	preprocessor MarkdownPreprocessor
	converter    XHTMLConverter
}

// NewRenderer returns a Renderer using Goldmark.
func NewRenderer() *Renderer {
	return &Renderer{
		preprocessor: &ChapterPreprocessor{},
		converter:    NewGoldmarkConverter(),
	}
}

// Render reads and renders the chapter at path.
func (r *Renderer) Render(ctx context.Context, path string) (Chapter, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- chapter listed in the book description
	if err != nil {
		return Chapter{}, fmt.Errorf("%w: %w", ErrReadChapter, err)
	}
	ch, err := r.RenderString(ctx, string(data))
	if err != nil {
		return Chapter{}, err
	}
	ch.Source = path
	return ch, nil
}

// RenderString renders markdown held in memory.
func (r *Renderer) RenderString(ctx context.Context, markdown string) (Chapter, error) {
	content := r.preprocessor.PreprocessMarkdown(ctx, markdown)
	fragment, err := r.converter.ToXHTML(ctx, content)
	if err != nil {
		return Chapter{}, err
	}

	headings, err := ExtractHeadings(fragment)
	if err != nil {
		return Chapter{}, err
	}
	return Chapter{Fragment: fragment, Headings: headings}, nil
}

// Compile-time interface check.
var _ XHTMLConverter = (*GoldmarkConverter)(nil)
