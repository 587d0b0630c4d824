// Package web renders the portal's server-side pages.
package web

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin/render"

	"desaparecidos/internal/domain/registry"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// Page template names.
const (
	PageHome     = "home"
	PageSearch   = "buscar"
	PagePerson   = "pessoa"
	PageTip      = "informacoes"
	PageReport   = "reportar"
	PageContact  = "contato"
	PageAbout    = "sobre"
	PageError    = "error"
	layoutName   = "layout"
	partialsFile = "templates/partials.html"
	layoutFile   = "templates/layout.html"
)

var pageNames = []string{
	PageHome, PageSearch, PagePerson, PageTip,
	PageReport, PageContact, PageAbout, PageError,
}

// Renderer holds one template set per page, each layered on the shared
// layout. It implements gin's render.HTMLRender.
type Renderer struct {
	pages map[string]*template.Template
}

var _ render.HTMLRender = (*Renderer)(nil)

// NewRenderer parses every page template.
func NewRenderer() (*Renderer, error) {
	r := &Renderer{pages: make(map[string]*template.Template, len(pageNames))}
	for _, name := range pageNames {
		t, err := template.New(layoutName).
			Funcs(Funcs()).
			ParseFS(templateFS, layoutFile, partialsFile, "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("parse page %s: %w", name, err)
		}
		r.pages[name] = t
	}
	return r, nil
}

// MustNewRenderer is NewRenderer that panics on error.
func MustNewRenderer() *Renderer {
	r, err := NewRenderer()
	if err != nil {
		panic(err)
	}
	return r
}

// Instance implements render.HTMLRender. Unknown names render the error page.
func (r *Renderer) Instance(name string, data any) render.Render {
	t, ok := r.pages[name]
	if !ok {
		t = r.pages[PageError]
	}
	return render.HTML{Template: t, Name: layoutName, Data: data}
}

// Static returns the embedded stylesheet and images.
func Static() http.FileSystem {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return http.FS(sub)
}

// Funcs returns the helpers available to every template.
func Funcs() template.FuncMap {
	return template.FuncMap{
		"date":       registry.FormatDate,
		"count":      registry.FormatCount,
		"sexLabel":   SexLabel,
		"statusText": StatusText,
		"initial":    initial,
		"field":      field,
	}
}

// SexLabel is the display name of a sex value.
func SexLabel(s registry.Sex) string {
	switch s {
	case registry.SexMale:
		return "Masculino"
	case registry.SexFemale:
		return "Feminino"
	}
	return "Não informado"
}

// StatusText is the badge text of a person's case.
func StatusText(p registry.Person) string {
	if p.IsMissing() {
		return "Desaparecido"
	}
	return "Localizado"
}

func initial(name string) string {
	name = strings.TrimSpace(name)
	for _, r := range name {
		return strings.ToUpper(string(r))
	}
	return "?"
}
