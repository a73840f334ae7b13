// ABOUTME: Schema definitions for admin resources.
// ABOUTME: Resources define schemas, the admin console and list engine render them.

package resource

import (
	"fmt"
	"strings"
	"time"

	"github.com/2389/realty/internal/listview"
)

// Field types understood by the form and list renderers.
const (
	TypeString   = "string"
	TypeText     = "text"
	TypeEmail    = "email"
	TypeNumber   = "number"
	TypeCheckbox = "checkbox"
	TypeDatetime = "datetime"
	TypeURL      = "url"
	TypeCombobox = "combobox"
)

// Schema defines a resource (Properties, Partners, etc.)
type Schema struct {
	Name        string   // "Properties"
	Slug        string   // "properties" (URL path)
	Fields      []Field  // What data to show/edit
	Actions     []Action // Available row operations
	ListColumns []string // Which fields in list view

	// FilterField is the field narrowed by the list page's dropdown filter.
	FilterField   string
	FilterOptions []string

	// PageSize overrides the console default when positive.
	PageSize int
}

// Field defines a field in a resource
type Field struct {
	Name     string // "title", "price"
	Type     string // one of the Type* constants
	Display  string // "Title", "Price"
	Required bool
	Editable bool
	Options  []string // choices for combobox fields
}

// Action defines an action on a resource row
type Action struct {
	Name       string // "edit", "delete"
	HTTPMethod string // "GET", "POST"
	Endpoint   string // Template: "/admin/properties/{id}/edit"
	Confirm    bool   // Show confirmation dialog?
}

// FindField returns the field named name.
func (s Schema) FindField(name string) (Field, bool) {
	for _, f := range s.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// EditableFields returns the fields shown on create/edit forms.
func (s Schema) EditableFields() []Field {
	var out []Field
	for _, f := range s.Fields {
		if f.Editable {
			out = append(out, f)
		}
	}
	return out
}

// Columns builds list engine columns from ListColumns. Every list column must
// name a declared field.
func (s Schema) Columns() ([]listview.Column[listview.Row], error) {
	cols := make([]listview.Column[listview.Row], 0, len(s.ListColumns))
	for _, name := range s.ListColumns {
		f, ok := s.FindField(name)
		if !ok {
			return nil, fmt.Errorf("resource %s: list column %q has no field", s.Slug, name)
		}
		cols = append(cols, listview.Column[listview.Row]{
			Key:    f.Name,
			Label:  f.Display,
			Render: cellRenderer(f),
		})
	}
	return cols, nil
}

// DefaultActions returns the standard edit/delete row actions for slug.
func DefaultActions(slug string) []Action {
	return []Action{
		{Name: "edit", HTTPMethod: "GET", Endpoint: "/admin/" + slug + "/{id}/edit"},
		{Name: "delete", HTTPMethod: "POST", Endpoint: "/admin/" + slug + "/{id}/delete", Confirm: true},
	}
}

func cellRenderer(f Field) func(listview.Row) string {
	switch f.Type {
	case TypeCheckbox:
		return func(r listview.Row) string {
			v, ok := r[f.Name]
			if !ok || v == nil {
				return listview.Placeholder
			}
			if IsTruthy(v) {
				return "Yes"
			}
			return "No"
		}
	case TypeDatetime:
		return func(r listview.Row) string {
			v, ok := r[f.Name]
			if !ok || v == nil {
				return listview.Placeholder
			}
			return FormatDatetime(listview.FormatValue(v))
		}
	default:
		// nil renderer lets the engine apply its own lookup and placeholder.
		return nil
	}
}

// FormatDatetime shortens RFC 3339 timestamps for display and leaves anything
// else untouched.
func FormatDatetime(s string) string {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.Format("2006-01-02 15:04")
	}
	return s
}

// IsTruthy interprets checkbox values coming from JSON or HTML forms.
func IsTruthy(value any) bool {
	switch v := value.(type) {
	case bool:
		return v
	case string:
		v = strings.ToLower(strings.TrimSpace(v))
		return v == "true" || v == "1" || v == "on" || v == "yes"
	case int:
		return v != 0
	case float64:
		return v != 0
	default:
		return false
	}
}
