// ABOUTME: Schema-based HTML renderer for the admin console.
// ABOUTME: Generates Tailwind-styled toolbars, tables, pagination, forms and detail views.

package admin

import (
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/2389/realty/internal/listview"
	"github.com/2389/realty/internal/resource"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// title upper-cases the first letter of each word. Casers carry state, so
// each call gets its own.
func title(s string) string {
	return cases.Title(language.English).String(s)
}

// listOptions describes how one list page renders around its engine.
type listOptions[R listview.Record] struct {
	BasePath      string
	State         viewState
	FilterLabel   string
	FilterOptions []string
	// Actions renders the action cell for a row; nil means no actions column.
	Actions func(R) string
}

// RenderResourceList renders a resource's list page from an engine whose
// view state has already been applied.
func RenderResourceList(schema resource.Schema, e *listview.Engine[listview.Row], st viewState) string {
	filterLabel := ""
	if f, ok := schema.FindField(schema.FilterField); ok {
		filterLabel = f.Display
	}

	// Actions post back with the current view so the list comes back as it was.
	returnQuery := st.values().Encode()
	var actions func(listview.Row) string
	if len(schema.Actions) > 0 {
		actions = func(r listview.Row) string {
			return RenderActions(schema.Actions, r.ID(), returnQuery)
		}
	}

	return renderList(e, listOptions[listview.Row]{
		BasePath:      "/admin/" + schema.Slug,
		State:         st,
		FilterLabel:   filterLabel,
		FilterOptions: schema.FilterOptions,
		Actions:       actions,
	})
}

func renderList[R listview.Record](e *listview.Engine[R], opts listOptions[R]) string {
	var sb strings.Builder
	page := e.View()
	st := opts.State
	st.Page = page.Number

	sb.WriteString(`<div class="space-y-4">`)
	renderToolbar(&sb, e, opts, st)
	renderColumnToggles(&sb, e, opts.BasePath, st)

	if page.Empty() {
		sb.WriteString(fmt.Sprintf(`<p class="empty-state bg-white rounded-lg shadow px-6 py-12 text-center text-gray-500">%s</p>`,
			html.EscapeString(listview.EmptyMessage)))
		sb.WriteString(`</div>`)
		return sb.String()
	}

	cols := e.VisibleColumns()
	sortKey, sortDesc := e.Sort()

	sb.WriteString(`<div class="bg-white rounded-lg shadow overflow-x-auto">`)
	sb.WriteString(`<table class="min-w-full divide-y divide-gray-200">`)
	sb.WriteString(`<thead class="bg-gray-50"><tr>`)
	for _, col := range cols {
		indicator := ""
		if col.Key == sortKey {
			indicator = " ▲"
			if sortDesc {
				indicator = " ▼"
			}
		}
		sb.WriteString(fmt.Sprintf(`<th class="px-6 py-3 text-left text-xs font-medium text-gray-500 uppercase"><a href="%s">%s%s</a></th>`,
			html.EscapeString(st.withSort(col.Key).url(opts.BasePath)),
			html.EscapeString(col.Label),
			indicator))
	}
	if opts.Actions != nil {
		sb.WriteString(`<th class="px-6 py-3 text-right text-xs font-medium text-gray-500 uppercase">Actions</th>`)
	}
	sb.WriteString(`</tr></thead>`)

	sb.WriteString(`<tbody class="bg-white divide-y divide-gray-200">`)
	for _, row := range page.Rows {
		sb.WriteString(`<tr>`)
		for _, col := range cols {
			sb.WriteString(fmt.Sprintf(`<td class="px-6 py-4 whitespace-nowrap text-sm text-gray-900">%s</td>`,
				html.EscapeString(e.RenderCell(row, col))))
		}
		if opts.Actions != nil {
			sb.WriteString(`<td class="px-6 py-4 whitespace-nowrap text-right text-sm space-x-3">`)
			sb.WriteString(opts.Actions(row))
			sb.WriteString(`</td>`)
		}
		sb.WriteString(`</tr>`)
	}
	sb.WriteString(`</tbody></table></div>`)

	renderPagination(&sb, page.Number, page.TotalPages, page.TotalRows, opts.BasePath, st)
	sb.WriteString(`</div>`)
	return sb.String()
}

// renderToolbar writes the search and filter form. It has no page field:
// a new search or filter starts at page 1.
func renderToolbar[R listview.Record](sb *strings.Builder, e *listview.Engine[R], opts listOptions[R], st viewState) {
	sb.WriteString(fmt.Sprintf(`<form method="get" action="%s" class="flex flex-wrap gap-3 items-end">`,
		html.EscapeString(opts.BasePath)))
	sb.WriteString(fmt.Sprintf(`<input type="search" name="q" value="%s" placeholder="Search..." class="rounded border-gray-300 shadow-sm px-3 py-2 border">`,
		html.EscapeString(e.SearchTerm())))

	if e.FilterField() != "" && len(opts.FilterOptions) > 0 {
		label := opts.FilterLabel
		if label == "" {
			label = title(e.FilterField())
		}
		sb.WriteString(fmt.Sprintf(`<select name="filter" aria-label="%s" class="rounded border-gray-300 shadow-sm px-3 py-2 border">`,
			html.EscapeString(label)))
		sb.WriteString(fmt.Sprintf(`<option value="%s"%s>All %s</option>`,
			listview.AllFilter, selectedAttr(st.Filter == "" || strings.EqualFold(st.Filter, listview.AllFilter)),
			html.EscapeString(label)))
		for _, opt := range opts.FilterOptions {
			sb.WriteString(fmt.Sprintf(`<option value="%s"%s>%s</option>`,
				html.EscapeString(opt), selectedAttr(strings.EqualFold(st.Filter, opt)), html.EscapeString(opt)))
		}
		sb.WriteString(`</select>`)
	}

	if st.Sort != "" {
		sb.WriteString(fmt.Sprintf(`<input type="hidden" name="sort" value="%s">`, html.EscapeString(st.Sort)))
		if st.Desc {
			sb.WriteString(`<input type="hidden" name="desc" value="true">`)
		}
	}
	if len(st.Cols) > 0 {
		sb.WriteString(fmt.Sprintf(`<input type="hidden" name="cols" value="%s">`, html.EscapeString(strings.Join(st.Cols, ","))))
	}
	sb.WriteString(`<button type="submit" class="px-4 py-2 bg-purple-600 text-white rounded hover:bg-purple-700">Apply</button>`)
	sb.WriteString(`</form>`)
}

// renderColumnToggles writes one link per column that flips its visibility.
// The last visible column cannot be hidden.
func renderColumnToggles[R listview.Record](sb *strings.Builder, e *listview.Engine[R], base string, st viewState) {
	all := e.Columns()
	keys := make([]string, len(all))
	for i, c := range all {
		keys[i] = c.Key
	}
	visibleCount := len(e.VisibleColumns())

	sb.WriteString(`<div class="column-toggles flex flex-wrap gap-2 text-xs">`)
	for _, col := range all {
		visible := e.ColumnVisible(col.Key)
		if visible && visibleCount == 1 {
			sb.WriteString(fmt.Sprintf(`<span class="px-2 py-1 rounded bg-purple-100 text-purple-800">%s</span>`,
				html.EscapeString(col.Label)))
			continue
		}
		class := "bg-gray-100 text-gray-500 line-through"
		if visible {
			class = "bg-purple-100 text-purple-800"
		}
		sb.WriteString(fmt.Sprintf(`<a href="%s" class="px-2 py-1 rounded %s">%s</a>`,
			html.EscapeString(st.withColumnToggled(col.Key, keys).url(base)),
			class,
			html.EscapeString(col.Label)))
	}
	sb.WriteString(`</div>`)
}

func renderPagination(sb *strings.Builder, current, total, rows int, base string, st viewState) {
	sb.WriteString(`<nav class="pagination flex items-center justify-between text-sm text-gray-600">`)
	sb.WriteString(fmt.Sprintf(`<span>Page %d of %d (%d rows)</span>`, current, total, rows))
	sb.WriteString(`<div class="space-x-1">`)

	if current > 1 {
		sb.WriteString(fmt.Sprintf(`<a href="%s" class="px-2 py-1 rounded hover:bg-gray-200">Previous</a>`,
			html.EscapeString(st.withPage(current-1).url(base))))
	}
	for n := 1; n <= total; n++ {
		if n == current {
			sb.WriteString(fmt.Sprintf(`<span aria-current="page" class="px-2 py-1 rounded bg-purple-600 text-white">%d</span>`, n))
			continue
		}
		sb.WriteString(fmt.Sprintf(`<a href="%s" class="px-2 py-1 rounded hover:bg-gray-200">%d</a>`,
			html.EscapeString(st.withPage(n).url(base)), n))
	}
	if current < total {
		sb.WriteString(fmt.Sprintf(`<a href="%s" class="px-2 py-1 rounded hover:bg-gray-200">Next</a>`,
			html.EscapeString(st.withPage(current+1).url(base))))
	}

	sb.WriteString(`</div></nav>`)
}

// RenderResourceForm generates a create/edit form. action is the POST target;
// data is nil when creating.
func RenderResourceForm(schema resource.Schema, data listview.Row, action, formError string) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<form method="post" action="%s" class="bg-white rounded-lg shadow p-6 space-y-4 max-w-2xl">`,
		html.EscapeString(action)))

	if formError != "" {
		sb.WriteString(fmt.Sprintf(`<div class="form-error rounded bg-red-50 text-red-700 px-4 py-2">%s</div>`,
			html.EscapeString(formError)))
	}

	for _, field := range schema.EditableFields() {
		name := html.EscapeString(field.Name)
		sb.WriteString(`<div>`)
		sb.WriteString(fmt.Sprintf(`<label for="%s" class="block text-sm font-medium text-gray-700">%s</label>`,
			name, html.EscapeString(field.Display)))

		value := ""
		if v, ok := data[field.Name]; ok && v != nil {
			value = listview.FormatValue(v)
		}

		switch field.Type {
		case resource.TypeText:
			sb.WriteString(fmt.Sprintf(`<textarea id="%s" name="%s" rows="4" %s class="mt-1 block w-full rounded border-gray-300 shadow-sm px-3 py-2 border">%s</textarea>`,
				name, name, requiredAttr(field.Required), html.EscapeString(value)))

		case resource.TypeCheckbox:
			checked := ""
			if resource.IsTruthy(data[field.Name]) {
				checked = "checked"
			}
			sb.WriteString(fmt.Sprintf(`<input type="checkbox" id="%s" name="%s" value="true" %s class="mt-1 rounded border-gray-300">`,
				name, name, checked))

		case resource.TypeDatetime:
			sb.WriteString(fmt.Sprintf(`<input type="datetime-local" id="%s" name="%s" value="%s" %s class="mt-1 block w-full rounded border-gray-300 shadow-sm px-3 py-2 border">`,
				name, name, html.EscapeString(toDatetimeLocal(value)), requiredAttr(field.Required)))

		case resource.TypeCombobox:
			sb.WriteString(fmt.Sprintf(`<select id="%s" name="%s" %s class="mt-1 block w-full rounded border-gray-300 shadow-sm px-3 py-2 border">`,
				name, name, requiredAttr(field.Required)))
			sb.WriteString(`<option value="">Select...</option>`)
			for _, opt := range field.Options {
				sb.WriteString(fmt.Sprintf(`<option value="%s"%s>%s</option>`,
					html.EscapeString(opt), selectedAttr(opt == value), html.EscapeString(opt)))
			}
			sb.WriteString(`</select>`)

		default:
			sb.WriteString(fmt.Sprintf(`<input type="%s" id="%s" name="%s" value="%s" %s class="mt-1 block w-full rounded border-gray-300 shadow-sm px-3 py-2 border">`,
				inputType(field.Type), name, name, html.EscapeString(value), requiredAttr(field.Required)))
		}

		sb.WriteString(`</div>`)
	}

	sb.WriteString(`<div class="flex gap-4">`)
	sb.WriteString(`<button type="submit" class="px-4 py-2 bg-purple-600 text-white rounded hover:bg-purple-700">Save</button>`)
	sb.WriteString(fmt.Sprintf(`<a href="/admin/%s" class="px-4 py-2 bg-gray-200 text-gray-700 rounded hover:bg-gray-300">Cancel</a>`,
		html.EscapeString(schema.Slug)))
	sb.WriteString(`</div>`)

	sb.WriteString(`</form>`)
	return sb.String()
}

// RenderResourceDetail generates a detail view from a schema
func RenderResourceDetail(schema resource.Schema, data listview.Row) string {
	var sb strings.Builder

	sb.WriteString(`<div class="bg-white rounded-lg shadow overflow-hidden">`)
	sb.WriteString(`<dl class="divide-y divide-gray-200">`)

	for _, field := range schema.Fields {
		sb.WriteString(`<div class="px-6 py-4 grid grid-cols-3 gap-4">`)
		sb.WriteString(fmt.Sprintf(`<dt class="text-sm font-medium text-gray-500">%s</dt>`,
			html.EscapeString(field.Display)))
		sb.WriteString(fmt.Sprintf(`<dd class="text-sm text-gray-900 col-span-2">%s</dd>`,
			formatDetailValue(field.Type, data[field.Name])))
		sb.WriteString(`</div>`)
	}

	sb.WriteString(`</dl></div>`)
	return sb.String()
}

// RenderActions generates row action controls. GET actions become links;
// everything else is an htmx button posting back with returnQuery.
func RenderActions(actions []resource.Action, resourceID, returnQuery string) string {
	var sb strings.Builder

	for i, action := range actions {
		if i > 0 {
			sb.WriteString(" ")
		}

		endpoint := strings.ReplaceAll(action.Endpoint, "{id}", resourceID)
		label := html.EscapeString(title(action.Name))

		if action.HTTPMethod == "GET" {
			sb.WriteString(fmt.Sprintf(`<a href="%s" class="text-blue-600 hover:text-blue-900">%s</a>`,
				html.EscapeString(endpoint), label))
			continue
		}

		if returnQuery != "" {
			endpoint += "?" + returnQuery
		}
		confirmAttr := ""
		if action.Confirm {
			confirmAttr = fmt.Sprintf(` hx-confirm="%s"`, html.EscapeString(confirmPrompt(action.Name)))
		}
		cssClass := "text-blue-600 hover:text-blue-900"
		if action.Name == string(listview.ActionDelete) || action.HTTPMethod == "DELETE" {
			cssClass = "text-red-600 hover:text-red-900"
		}

		sb.WriteString(fmt.Sprintf(`<button %s="%s"%s class="%s">%s</button>`,
			htmxAttribute(action.HTTPMethod),
			html.EscapeString(endpoint),
			confirmAttr,
			cssClass,
			label))
	}

	return sb.String()
}

// Helper functions

func confirmPrompt(action string) string {
	return title(action) + " this item?"
}

func formatDetailValue(fieldType string, value any) string {
	if value == nil {
		return `<span class="text-gray-400">No value</span>`
	}

	switch fieldType {
	case resource.TypeCheckbox:
		if resource.IsTruthy(value) {
			return "Yes"
		}
		return "No"
	case resource.TypeDatetime:
		return html.EscapeString(resource.FormatDatetime(listview.FormatValue(value)))
	case resource.TypeURL:
		s := listview.FormatValue(value)
		if strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://") {
			return fmt.Sprintf(`<a href="%s" class="text-blue-600 hover:underline">%s</a>`, html.EscapeString(s), html.EscapeString(s))
		}
	}

	strValue := listview.FormatValue(value)
	if strValue == "" {
		return `<span class="text-gray-400">No value</span>`
	}
	return html.EscapeString(strValue)
}

// toDatetimeLocal converts stored RFC 3339 values to the datetime-local format.
func toDatetimeLocal(value string) string {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t.UTC().Format("2006-01-02T15:04")
	}
	return value
}

func inputType(fieldType string) string {
	switch fieldType {
	case resource.TypeEmail:
		return "email"
	case resource.TypeNumber:
		return "number"
	case resource.TypeURL:
		return "url"
	default:
		return "text"
	}
}

func requiredAttr(required bool) string {
	if required {
		return "required"
	}
	return ""
}

func selectedAttr(selected bool) string {
	if selected {
		return " selected"
	}
	return ""
}

func htmxAttribute(method string) string {
	switch method {
	case "DELETE":
		return "hx-delete"
	case "PUT":
		return "hx-put"
	case "PATCH":
		return "hx-patch"
	default:
		return "hx-post"
	}
}
