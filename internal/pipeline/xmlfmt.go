package pipeline

import (
	"errors"
	"fmt"

	"github.com/beevik/etree"
)

// ErrXMLFormat indicates a rendered control document is not well-formed XML.
var ErrXMLFormat = errors.New("malformed XML document")

// FormatXML re-indents an XML document with two spaces per level. Whitespace
// between elements is discarded first, so the output depends only on the
// document's structure and text.
func FormatXML(src string) (string, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromString(src); err != nil {
		return "", fmt.Errorf("%w: %v", ErrXMLFormat, err)
	}
	doc.Indent(2)
	out, err := doc.WriteToString()
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrXMLFormat, err)
	}
	return out, nil
}
