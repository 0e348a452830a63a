package pipeline

import (
	"errors"
	"strings"
	"testing"
)

func TestFormatXML(t *testing.T) {
	t.Parallel()

	messy := "<?xml version=\"1.0\"?>\n<a>\n\n   <b>x</b><c/>\n</a>"
	tidy := "<?xml version=\"1.0\"?><a><b>x</b>   <c/></a>"

	got, err := FormatXML(messy)
	if err != nil {
		t.Fatalf("FormatXML() error = %v", err)
	}
	if !strings.Contains(got, "\n  <b>x</b>\n  <c/>\n") {
		t.Errorf("FormatXML() = %q, want two-space indentation", got)
	}

	again, err := FormatXML(tidy)
	if err != nil {
		t.Fatalf("FormatXML() error = %v", err)
	}
	if got != again {
		t.Errorf("whitespace-only differences changed the output:\n%q\n%q", got, again)
	}
}

func TestFormatXML_Malformed(t *testing.T) {
	t.Parallel()

	_, err := FormatXML("<a><b></a>")
	if !errors.Is(err, ErrXMLFormat) {
		t.Errorf("FormatXML() error = %v, want ErrXMLFormat", err)
	}
}
