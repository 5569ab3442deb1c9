package templating

import (
	"address-book/internal/model"
	"embed"
	"fmt"
	"io"
	"strings"
	"text/template"
)

//go:embed templates/*.tmpl
var files embed.FS

// View names understood by Render.
const (
	ViewMenu    = "menu"
	ViewResult  = "result"
	ViewSummary = "summary"
	ViewList    = "list"
)

// Engine renders console output from the embedded templates.
type Engine struct {
	set *template.Template
}

// SummaryRow is one line of a summary: the searched value and its count.
type SummaryRow struct {
	Field model.Field
	Value string
	Count int
}

// Result describes the outcome of an add for the result view.
type Result struct {
	Added     bool
	Duplicate bool
	SaveError error
}

var funcs = template.FuncMap{
	"label": func(f model.Field) string { return f.Label() },
	"upper": strings.ToUpper,
}

// NewEngine parses all embedded templates.
func NewEngine() (*Engine, error) {
	set, err := template.New("views").Funcs(funcs).ParseFS(files, "templates/*.tmpl")
	if err != nil {
		return nil, fmt.Errorf("failed to parse view templates: %w", err)
	}
	return &Engine{set: set}, nil
}

// MustNewEngine is NewEngine for callers that cannot recover from a broken
// build.
func MustNewEngine() *Engine {
	e, err := NewEngine()
	if err != nil {
		panic(err)
	}
	return e
}

// Render executes the named view with data and writes it to w.
func (e *Engine) Render(w io.Writer, view string, data any) error {
	if e.set.Lookup(view) == nil {
		return fmt.Errorf("view %q is not defined", view)
	}
	if err := e.set.ExecuteTemplate(w, view, data); err != nil {
		return fmt.Errorf("failed to render view %q: %w", view, err)
	}
	return nil
}
