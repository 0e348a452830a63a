package pipeline

import (
	"errors"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/alnah/go-md2epub/internal/epub"
)

// ErrHeadingExtraction indicates a rendered fragment could not be parsed.
var ErrHeadingExtraction = errors.New("heading extraction failed")

// ExtractHeadings returns the h1-h6 elements of an XHTML fragment in document
// order. Whitespace in heading text is collapsed.
func ExtractHeadings(fragment string) ([]epub.Heading, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrHeadingExtraction, err)
	}

	var headings []epub.Heading
	doc.Find("h1, h2, h3, h4, h5, h6").Each(func(_ int, s *goquery.Selection) {
		name := goquery.NodeName(s)
		id, _ := s.Attr("id")
		headings = append(headings, epub.Heading{
			Text:  strings.Join(strings.Fields(s.Text()), " "),
			Level: int(name[1] - '0'),
			ID:    id,
		})
	})
	return headings, nil
}
