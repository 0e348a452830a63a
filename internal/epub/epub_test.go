package epub

// Notes:
// - Writer failures of the underlying io.Writer are not tested: the zip
//   package reports them unchanged.
// These are acceptable gaps: we test observable behavior, not implementation details.

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/klauspost/compress/zip"
)

// ---------------------------------------------------------------------------
// TestMediaType - Extension table lookup
// ---------------------------------------------------------------------------

func TestMediaType(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path    string
		want    string
		wantErr error
	}{
		{path: "ch1.xhtml", want: "application/xhtml+xml"},
		{path: "stylesheet.css", want: "text/css"},
		{path: "images/cover.JPG", want: "image/jpeg"},
		{path: "images/logo.png", want: "image/png"},
		{path: "toc.ncx", want: "application/x-dtbncx+xml"},
		{path: "fonts/serif.otf", want: "application/vnd.ms-opentype"},
		{path: "notes.docx", wantErr: ErrUnknownMediaType},
		{path: "README", wantErr: ErrUnknownMediaType},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			t.Parallel()
			got, err := MediaType(tt.path)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("MediaType(%q) error = %v, want %v", tt.path, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("MediaType(%q) unexpected error: %v", tt.path, err)
			}
			if got != tt.want {
				t.Errorf("MediaType(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestUID / TestManifest - Deterministic ids and insertion order
// ---------------------------------------------------------------------------

func TestUID(t *testing.T) {
	t.Parallel()

	a := UID("ch1.xhtml")
	if a != UID("ch1.xhtml") {
		t.Error("UID is not stable for the same path")
	}
	if a == UID("ch2.xhtml") {
		t.Error("UID collides for distinct paths")
	}
	if !strings.HasPrefix(a, "item-") || len(a) != len("item-")+16 {
		t.Errorf("UID = %q, want item-<16 hex digits>", a)
	}
}

func TestManifest(t *testing.T) {
	t.Parallel()

	t.Run("keeps insertion order", func(t *testing.T) {
		t.Parallel()
		m := NewManifest()
		paths := []string{"images/a.png", "images/cover.jpg", "stylesheet.css", "ch1.xhtml"}
		for _, p := range paths {
			if _, err := m.Add(p); err != nil {
				t.Fatalf("Add(%q) error = %v", p, err)
			}
		}
		var got []string
		for _, it := range m.Items() {
			got = append(got, it.Path)
		}
		if !slices.Equal(got, paths) {
			t.Errorf("Items() paths = %v, want %v", got, paths)
		}
	})

	t.Run("same path is recorded once", func(t *testing.T) {
		t.Parallel()
		m := NewManifest()
		first, err := m.Add("images/cover.jpg")
		if err != nil {
			t.Fatalf("Add() error = %v", err)
		}
		second, err := m.Add("images/cover.jpg")
		if err != nil {
			t.Fatalf("Add() error = %v", err)
		}
		if first != second {
			t.Errorf("second Add() = %+v, want %+v", second, first)
		}
		if m.Len() != 1 {
			t.Errorf("Len() = %d, want 1", m.Len())
		}
		if !m.Contains("images/cover.jpg") {
			t.Error("Contains() = false, want true")
		}
	})

	t.Run("unknown media type is rejected", func(t *testing.T) {
		t.Parallel()
		m := NewManifest()
		if _, err := m.Add("data.bin"); !errors.Is(err, ErrUnknownMediaType) {
			t.Errorf("Add() error = %v, want ErrUnknownMediaType", err)
		}
		if m.Len() != 0 {
			t.Errorf("Len() = %d, want 0", m.Len())
		}
	})

	t.Run("lookup", func(t *testing.T) {
		t.Parallel()
		m := NewManifest()
		if _, err := m.Add("ch1.xhtml"); err != nil {
			t.Fatalf("Add() error = %v", err)
		}
		item, ok := m.Lookup("ch1.xhtml")
		if !ok || item.UID != UID("ch1.xhtml") || item.MIME != "application/xhtml+xml" {
			t.Errorf("Lookup() = %+v, %v", item, ok)
		}
		if _, ok := m.Lookup("ch2.xhtml"); ok {
			t.Error("Lookup(missing) ok = true, want false")
		}
	})
}

// ---------------------------------------------------------------------------
// TestNavMap - Nesting by heading level and play order
// ---------------------------------------------------------------------------

func TestNavMap(t *testing.T) {
	t.Parallel()

	var toc Toc
	toc.AddChapter("ch1.xhtml", []Heading{
		{Text: "One", Level: 1, ID: "one"},
		{Text: "One.A", Level: 2, ID: "one-a"},
		{Text: "One.A.i", Level: 3, ID: "one-a-i"},
		{Text: "One.B", Level: 2, ID: "one-b"},
	})
	toc.AddChapter("text/ch2.xhtml", nil)
	toc.AddChapter("ch3.xhtml", []Heading{
		{Text: "Deep first", Level: 2, ID: "deep"},
		{Text: "Three", Level: 1},
	})

	if toc.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", toc.Len())
	}

	nav := toc.NavMap()
	if len(nav) != 4 {
		t.Fatalf("root points = %d, want 4", len(nav))
	}

	one := nav[0]
	if one.Label != "One" || one.Src != "ch1.xhtml#one" || one.PlayOrder != 1 || one.ID != "navpoint-1" {
		t.Errorf("first point = %+v", one)
	}
	if len(one.Children) != 2 {
		t.Fatalf("One children = %d, want 2", len(one.Children))
	}
	if got := one.Children[0].Children[0].Label; got != "One.A.i" {
		t.Errorf("grandchild label = %q, want One.A.i", got)
	}
	if got := one.Children[1].PlayOrder; got != 4 {
		t.Errorf("One.B play order = %d, want 4", got)
	}

	bare := nav[1]
	if bare.Label != "ch2.xhtml" || bare.Src != "text/ch2.xhtml" || bare.PlayOrder != 5 {
		t.Errorf("headingless chapter point = %+v", bare)
	}

	if nav[2].Label != "Deep first" || nav[3].Label != "Three" {
		t.Errorf("ch3 points = %q, %q", nav[2].Label, nav[3].Label)
	}
	if nav[3].Src != "ch3.xhtml" {
		t.Errorf("heading without id src = %q, want ch3.xhtml", nav[3].Src)
	}

	if d := Depth(nav); d != 3 {
		t.Errorf("Depth() = %d, want 3", d)
	}
	if d := Depth(nil); d != 1 {
		t.Errorf("Depth(nil) = %d, want 1", d)
	}
}

func TestTocEntriesAreCopies(t *testing.T) {
	t.Parallel()

	headings := []Heading{{Text: "A", Level: 1}}
	var toc Toc
	toc.AddChapter("a.xhtml", headings)
	headings[0].Text = "changed"

	if got := toc.Entries()[0].Headers[0].Text; got != "A" {
		t.Errorf("stored heading = %q, want A", got)
	}
}

// ---------------------------------------------------------------------------
// TestWriter - Container layout and compression
// ---------------------------------------------------------------------------

func TestWriter(t *testing.T) {
	t.Parallel()

	src := filepath.Join(t.TempDir(), "ch1.xhtml")
	if err := os.WriteFile(src, []byte("<html/>"), 0o644); err != nil {
		t.Fatalf("setup: %v", err)
	}

	var buf bytes.Buffer
	w, err := NewWriter(&buf)
	if err != nil {
		t.Fatalf("NewWriter() error = %v", err)
	}
	if err := w.Add("META-INF/container.xml", []byte("<container/>")); err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	if err := w.AddFile("ch1.xhtml", src); err != nil {
		t.Fatalf("AddFile() error = %v", err)
	}
	if err := w.Add("ch1.xhtml", []byte("again")); !errors.Is(err, ErrDuplicateEntry) {
		t.Errorf("duplicate Add() error = %v, want ErrDuplicateEntry", err)
	}
	if !w.Has("ch1.xhtml") || w.Has("ch2.xhtml") {
		t.Error("Has() does not track written entries")
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	raw := buf.Bytes()
	if got := string(raw[30:38]); got != "mimetype" {
		t.Errorf("first local header name = %q, want mimetype", got)
	}
	if got := string(raw[38:58]); got != MimeType {
		t.Errorf("bytes at offset 38 = %q, want %q", got, MimeType)
	}

	zr, err := zip.NewReader(bytes.NewReader(raw), int64(len(raw)))
	if err != nil {
		t.Fatalf("zip.NewReader() error = %v", err)
	}
	var names []string
	for _, f := range zr.File {
		names = append(names, f.Name)
	}
	want := []string{"mimetype", "META-INF/container.xml", "ch1.xhtml"}
	if !slices.Equal(names, want) {
		t.Errorf("entries = %v, want %v", names, want)
	}
	if !slices.Equal(w.Entries(), want) {
		t.Errorf("Entries() = %v, want %v", w.Entries(), want)
	}

	if zr.File[0].Method != zip.Store {
		t.Errorf("mimetype method = %d, want Store", zr.File[0].Method)
	}
	for _, f := range zr.File[1:] {
		if f.Method != zip.Deflate {
			t.Errorf("%s method = %d, want Deflate", f.Name, f.Method)
		}
	}

	rc, err := zr.File[2].Open()
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer func() { _ = rc.Close() }()
	body, err := io.ReadAll(rc)
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}
	if string(body) != "<html/>" {
		t.Errorf("ch1.xhtml = %q, want <html/>", body)
	}
}

func TestWriterDeterministic(t *testing.T) {
	t.Parallel()

	build := func() []byte {
		var buf bytes.Buffer
		w, err := NewWriter(&buf)
		if err != nil {
			t.Fatalf("NewWriter() error = %v", err)
		}
		if err := w.Add("content.opf", []byte("<package/>")); err != nil {
			t.Fatalf("Add() error = %v", err)
		}
		if err := w.Close(); err != nil {
			t.Fatalf("Close() error = %v", err)
		}
		return buf.Bytes()
	}

	if !bytes.Equal(build(), build()) {
		t.Error("identical inputs produced different archives")
	}
}

func TestWriterAddFileMissing(t *testing.T) {
	t.Parallel()

	w, err := NewWriter(io.Discard)
	if err != nil {
		t.Fatalf("NewWriter() error = %v", err)
	}
	err = w.AddFile("ch1.xhtml", filepath.Join(t.TempDir(), "missing.xhtml"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("AddFile() error = %v, want os.ErrNotExist", err)
	}
	if w.Has("ch1.xhtml") {
		t.Error("failed AddFile() recorded the entry")
	}
}
