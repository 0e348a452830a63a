package pipeline

// Notes:
// - The built-in bundle is rendered here with hand-built contexts; the context
//   builder itself is exercised by the root package's build tests.
// These are acceptable gaps: we test observable behavior, not implementation details.

import (
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/alnah/go-md2epub/internal/assets"
)

// mapLoader serves templates from memory and counts loads.
type mapLoader struct {
	files map[string]string
	loads atomic.Int32
}

func (m *mapLoader) Load(name string) (string, error) {
	m.loads.Add(1)
	content, ok := m.files[name]
	if !ok {
		return "", assets.ErrTemplateNotFound
	}
	return content, nil
}

func (m *mapLoader) Source() string { return "memory" }

// ---------------------------------------------------------------------------
// TestEscapeXML
// ---------------------------------------------------------------------------

func TestEscapeXML(t *testing.T) {
	t.Parallel()

	got := EscapeXML(`Tom & "Jerry" <'s>`)
	want := "Tom &amp; &quot;Jerry&quot; &lt;&apos;s&gt;"
	if got != want {
		t.Errorf("EscapeXML() = %q, want %q", got, want)
	}
}

// ---------------------------------------------------------------------------
// TestTemplateEngine - Lookup, conditionals, iteration, errors
// ---------------------------------------------------------------------------

func TestTemplateEngine_Render(t *testing.T) {
	t.Parallel()

	loader := &mapLoader{files: map[string]string{
		"title":   "<title>{{xml .metadata.title}}</title>",
		"cond":    "{{if .metadata.rights}}R:{{.metadata.rights}}{{else}}none{{end}}",
		"list":    "{{range .items}}[{{.path}}]{{end}}",
		"tree":    `{{define "node"}}({{.name}}{{range .children}}{{template "node" .}}{{end}}){{end}}{{range .roots}}{{template "node" .}}{{end}}`,
		"missing": "{{.metadata.nope}}",
		"broken":  "{{if .x}}",
	}}
	engine := NewTemplateEngine(loader)

	tests := []struct {
		name    string
		tmpl    string
		data    map[string]any
		want    string
		wantErr error
	}{
		{
			name: "variable lookup with escaping",
			tmpl: "title",
			data: map[string]any{"metadata": map[string]any{"title": "War & Peace"}},
			want: "<title>War &amp; Peace</title>",
		},
		{
			name: "conditional on empty value",
			tmpl: "cond",
			data: map[string]any{"metadata": map[string]any{"rights": ""}},
			want: "none",
		},
		{
			name: "conditional on value",
			tmpl: "cond",
			data: map[string]any{"metadata": map[string]any{"rights": "CC-BY"}},
			want: "R:CC-BY",
		},
		{
			name: "iteration",
			tmpl: "list",
			data: map[string]any{"items": []map[string]any{{"path": "a"}, {"path": "b"}}},
			want: "[a][b]",
		},
		{
			name: "recursion",
			tmpl: "tree",
			data: map[string]any{"roots": []map[string]any{
				{"name": "a", "children": []map[string]any{
					{"name": "b", "children": []map[string]any{}},
				}},
			}},
			want: "(a(b))",
		},
		{
			name:    "undefined variable path",
			tmpl:    "missing",
			data:    map[string]any{"metadata": map[string]any{}},
			wantErr: ErrTemplateExecute,
		},
		{
			name:    "missing template",
			tmpl:    "nowhere",
			data:    map[string]any{},
			wantErr: assets.ErrTemplateNotFound,
		},
		{
			name:    "parse error",
			tmpl:    "broken",
			data:    map[string]any{},
			wantErr: ErrTemplateParse,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := engine.Render(tt.tmpl, tt.data)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Render(%q) error = %v, want %v", tt.tmpl, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Render(%q) unexpected error: %v", tt.tmpl, err)
			}
			if got != tt.want {
				t.Errorf("Render(%q) = %q, want %q", tt.tmpl, got, tt.want)
			}
		})
	}
}

func TestTemplateEngine_CachesParsedTemplates(t *testing.T) {
	t.Parallel()

	loader := &mapLoader{files: map[string]string{"t": "{{.v}}"}}
	engine := NewTemplateEngine(loader)

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := engine.Render("t", map[string]any{"v": 1}); err != nil {
				t.Errorf("Render() error = %v", err)
			}
		}()
	}
	wg.Wait()

	if n := loader.loads.Load(); n != 1 {
		t.Errorf("loader called %d times, want 1", n)
	}
}

// ---------------------------------------------------------------------------
// TestBundleTemplates - Built-in control documents render to valid XML
// ---------------------------------------------------------------------------

func bundleContext() map[string]any {
	return map[string]any{
		"metadata": map[string]any{
			"title":       "A & B",
			"author":      "Ann Author",
			"publisher":   "Press",
			"language":    "en",
			"rights":      "",
			"description": "",
			"date":        "2024-03-05",
			"cover":       "images/cover.jpg",
			"cover_id":    "item-cover",
			"stylesheet":  "stylesheet.css",
			"book_id":     "urn:uuid:book",
			"resource_id": "urn:uuid:res",
		},
		"manifest": []map[string]any{
			{"uid": "item-cover", "path": "images/cover.jpg", "mime": "image/jpeg"},
			{"uid": "item-css", "path": "stylesheet.css", "mime": "text/css"},
			{"uid": "item-1", "path": "ch1.xhtml", "mime": "application/xhtml+xml"},
			{"uid": "item-2", "path": "ch2.xhtml", "mime": "application/xhtml+xml"},
		},
		"spine": []map[string]any{
			{"uid": "item-1", "path": "ch1.xhtml"},
			{"uid": "item-2", "path": "ch2.xhtml"},
		},
		"depth": 2,
		"navmap": []map[string]any{
			{"id": "navpoint-1", "play_order": 1, "label": "One", "src": "ch1.xhtml#one", "children": []map[string]any{
				{"id": "navpoint-2", "play_order": 2, "label": "One <A>", "src": "ch1.xhtml#a", "children": []map[string]any{}},
			}},
			{"id": "navpoint-3", "play_order": 3, "label": "Two", "src": "ch2.xhtml", "children": []map[string]any{}},
		},
	}
}

func TestBundleTemplates(t *testing.T) {
	t.Parallel()

	engine := NewTemplateEngine(assets.NewBundleLoader())

	t.Run("content.opf", func(t *testing.T) {
		t.Parallel()
		raw, err := engine.Render(assets.PackageTemplate, bundleContext())
		if err != nil {
			t.Fatalf("Render() error = %v", err)
		}
		opf, err := FormatXML(raw)
		if err != nil {
			t.Fatalf("FormatXML() error = %v\n%s", err, raw)
		}
		for _, want := range []string{
			"<dc:title>A &amp; B</dc:title>",
			"<dc:date>2024-03-05</dc:date>",
			`<meta name="cover" content="item-cover"/>`,
			`<item id="item-css" href="stylesheet.css" media-type="text/css"/>`,
		} {
			if !strings.Contains(opf, want) {
				t.Errorf("content.opf missing %q\n%s", want, opf)
			}
		}
		if strings.Contains(opf, "<dc:rights>") {
			t.Error("empty rights rendered")
		}
		first := strings.Index(opf, `<itemref idref="item-1"/>`)
		second := strings.Index(opf, `<itemref idref="item-2"/>`)
		if first < 0 || second < 0 || first > second {
			t.Errorf("spine order wrong:\n%s", opf)
		}
	})

	t.Run("toc.ncx", func(t *testing.T) {
		t.Parallel()
		raw, err := engine.Render(assets.NCXTemplate, bundleContext())
		if err != nil {
			t.Fatalf("Render() error = %v", err)
		}
		ncx, err := FormatXML(raw)
		if err != nil {
			t.Fatalf("FormatXML() error = %v\n%s", err, raw)
		}
		if !strings.HasPrefix(ncx, "<?xml") {
			t.Errorf("toc.ncx does not start with the XML declaration:\n%s", ncx)
		}
		for _, want := range []string{
			`<meta name="dtb:depth" content="2"/>`,
			`<text>One &lt;A&gt;</text>`,
			`<content src="ch2.xhtml"/>`,
			`playOrder="3"`,
		} {
			if !strings.Contains(ncx, want) {
				t.Errorf("toc.ncx missing %q\n%s", want, ncx)
			}
		}
	})
}
