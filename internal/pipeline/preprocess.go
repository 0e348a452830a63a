package pipeline

import (
	"context"
	"regexp"
	"strings"
)

var crlfOrCR = regexp.MustCompile(`\r\n?`)

// MarkdownPreprocessor defines the contract for markdown preprocessing.
type MarkdownPreprocessor interface {
	PreprocessMarkdown(ctx context.Context, content string) string
}

// ChapterPreprocessor prepares chapter sources for conversion.
// Inline syntax such as ==highlight== is left to the Goldmark extensions.
type ChapterPreprocessor struct{}

// PreprocessMarkdown strips a leading BOM and normalizes line endings.
func (p *ChapterPreprocessor) PreprocessMarkdown(ctx context.Context, content string) string {
	if ctx.Err() != nil {
		return content
	}

	content = strings.TrimPrefix(content, "\uFEFF")
	return crlfOrCR.ReplaceAllString(content, "\n")
}

// Compile-time interface check.
var _ MarkdownPreprocessor = (*ChapterPreprocessor)(nil)
