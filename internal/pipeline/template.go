package pipeline

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"text/template"

	"github.com/alnah/go-md2epub/internal/assets"
)

// Sentinel errors for template rendering.
var (
	ErrTemplateParse   = errors.New("template parse failed")
	ErrTemplateExecute = errors.New("template execution failed")
)

var xmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&apos;",
)

// EscapeXML escapes text for use in XML character data and attribute values.
func EscapeXML(s string) string {
	return xmlEscaper.Replace(s)
}

var templateFuncs = template.FuncMap{
	"xml": func(v any) string { return EscapeXML(fmt.Sprint(v)) },
}

// TemplateEngine renders named templates from an asset loader.
//
// Templates use text/template syntax against a map[string]any context:
// {{.metadata.title}}, {{if}}, {{range}}, {{define}}/{{template}}, and the
// xml escaping function. A reference to a missing key is an error, never an
// empty string. Parsed templates are cached; the engine is safe for
// concurrent use.
type TemplateEngine struct {
	loader assets.AssetLoader

	mu    sync.Mutex
	cache map[string]*template.Template
}

// NewTemplateEngine returns an engine reading templates from loader.
func NewTemplateEngine(loader assets.AssetLoader) *TemplateEngine {
	return &TemplateEngine{
		loader: loader,
		cache:  make(map[string]*template.Template),
	}
}

// Render executes the template called name with data.
// A missing template surfaces the loader's assets.ErrTemplateNotFound.
func (e *TemplateEngine) Render(name string, data map[string]any) (string, error) {
	tmpl, err := e.lookup(name)
	if err != nil {
		return "", err
	}
	var b strings.Builder
	if err := tmpl.Execute(&b, data); err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrTemplateExecute, name, err)
	}
	return b.String(), nil
}

func (e *TemplateEngine) lookup(name string) (*template.Template, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if tmpl, ok := e.cache[name]; ok {
		return tmpl, nil
	}
	src, err := e.loader.Load(name)
	if err != nil {
		return nil, err
	}
	tmpl, err := template.New(name).
		Option("missingkey=error").
		Funcs(templateFuncs).
		Parse(src)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrTemplateParse, name, err)
	}
	e.cache[name] = tmpl
	return tmpl, nil
}
