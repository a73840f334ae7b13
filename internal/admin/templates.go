// ABOUTME: Template loading and rendering for admin UI.
// ABOUTME: Embeds the HTML layout and page templates.

package admin

import (
	"embed"
	"fmt"
	"html/template"
	"io"

	"github.com/2389/realty/internal/resource"
)

//go:embed templates/*
var templateFS embed.FS

var (
	layoutTmpl *template.Template
	pageTmpls  map[string]*template.Template
)

// pageDefinitions maps page names to their template files
func getPageDefinitions() map[string]string {
	return map[string]string{
		"dashboard": "templates/dashboard.html",
		"page":      "templates/page.html",
	}
}

// parsePageTemplates creates a map of page templates, each with its own copy of the layout
func parsePageTemplates() map[string]*template.Template {
	templates := make(map[string]*template.Template)
	for name, path := range getPageDefinitions() {
		tmpl := template.Must(layoutTmpl.Clone())
		templates[name] = template.Must(tmpl.ParseFS(templateFS, path))
	}
	return templates
}

func init() {
	layoutTmpl = template.Must(template.ParseFS(templateFS, "templates/layout.html"))
	pageTmpls = parsePageTemplates()
}

type navItem struct {
	Name string
	Slug string
}

// pageData is what the layout renders. Body holds pre-rendered HTML for the
// generic page; Data carries structured values for dedicated templates.
type pageData struct {
	Title  string
	Active string
	NewURL string
	Error  string
	Nav    []navItem
	Body   template.HTML
	Data   any
}

func navigation() []navItem {
	all := resource.All()
	items := make([]navItem, 0, len(all))
	for _, s := range all {
		items = append(items, navItem{Name: s.Name, Slug: s.Slug})
	}
	return items
}

func renderPage(w io.Writer, page string, data pageData) error {
	tmpl, ok := pageTmpls[page]
	if !ok {
		return fmt.Errorf("unknown page template %q", page)
	}
	if data.Nav == nil {
		data.Nav = navigation()
	}
	return tmpl.ExecuteTemplate(w, "layout", data)
}
