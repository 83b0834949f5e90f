package web

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"path"

	"github.com/Masterminds/sprig/v3"
)

//go:embed tpl/*.tmpl tpl/partials/*.tmpl tpl/pages/*.tmpl
var tplFS embed.FS

// Renderer executes the embedded page templates.
type Renderer struct {
	base *template.Template
}

// NewRenderer parses the shared layout and partials.
func NewRenderer() (*Renderer, error) {
	t := template.New("root").Funcs(sprig.FuncMap())
	if _, err := t.ParseFS(tplFS, "tpl/base.tmpl", "tpl/partials/*.tmpl"); err != nil {
		return nil, fmt.Errorf("parse layout: %w", err)
	}
	return &Renderer{base: t}, nil
}

// Render executes page name with data.
func (r *Renderer) Render(w io.Writer, name string, data any) error {
	t, err := r.base.Clone()
	if err != nil {
		return err
	}
	if _, err := t.ParseFS(tplFS, path.Join("tpl/pages", name+".tmpl")); err != nil {
		return fmt.Errorf("parse page %s: %w", name, err)
	}
	return t.ExecuteTemplate(w, name, data)
}
