// ABOUTME: Generic client-side list engine: search, category filter, sort and pagination.
// ABOUTME: Derives the rows a table should render from a caller-owned record snapshot.

package listview

import (
	"strings"

	"golang.org/x/text/cases"
)

const (
	// DefaultPageSize is used when Config.PageSize is zero.
	DefaultPageSize = 10

	// Placeholder is rendered for missing or nil cell values.
	Placeholder = "-"

	// AllFilter is the sentinel filter value that disables the category filter.
	AllFilter = "all"

	// EmptyMessage is shown when no rows survive filtering.
	EmptyMessage = "No rows to display."
)

// Config is the static configuration of an Engine.
type Config[R Record] struct {
	Columns  []Column[R]
	PageSize int

	// FilterField names the field the category filter compares against.
	FilterField string

	OnEdit   func(R)
	OnDelete func(R)
}

// Engine owns the view state for one table. It is not safe for concurrent use.
type Engine[R Record] struct {
	columns     []Column[R]
	colIndex    map[string]int
	pageSize    int
	filterField string
	onEdit      func(R)
	onDelete    func(R)

	records []R

	page       int
	term       string
	foldedTerm string
	filter     string
	visible    map[string]bool
	sortKey    string
	sortDesc   bool
	fold       cases.Caser
}

// New validates cfg and returns an engine positioned on page 1.
func New[R Record](cfg Config[R]) (*Engine[R], error) {
	if err := validateColumns(cfg.Columns); err != nil {
		return nil, err
	}
	size := cfg.PageSize
	switch {
	case size < 0:
		return nil, ErrInvalidPageSize
	case size == 0:
		size = DefaultPageSize
	}

	cols := make([]Column[R], len(cfg.Columns))
	copy(cols, cfg.Columns)
	idx := make(map[string]int, len(cols))
	for i, c := range cols {
		idx[c.Key] = i
	}

	return &Engine[R]{
		columns:     cols,
		colIndex:    idx,
		pageSize:    size,
		filterField: cfg.FilterField,
		onEdit:      cfg.OnEdit,
		onDelete:    cfg.OnDelete,
		page:        1,
		fold:        cases.Fold(),
	}, nil
}

// MustNew is like New but panics on configuration errors.
func MustNew[R Record](cfg Config[R]) *Engine[R] {
	e, err := New(cfg)
	if err != nil {
		panic(err)
	}
	return e
}

// SetRecords replaces the snapshot. The slice is never modified.
func (e *Engine[R]) SetRecords(records []R) {
	e.records = records
}

// Records returns the current snapshot.
func (e *Engine[R]) Records() []R { return e.records }

// SetSearchTerm sets the free-text search term and returns to page 1.
func (e *Engine[R]) SetSearchTerm(term string) {
	e.term = term
	e.foldedTerm = e.fold.String(term)
	e.page = 1
}

// SearchTerm returns the raw search term.
func (e *Engine[R]) SearchTerm() string { return e.term }

// SetFilter sets the category filter value and returns to page 1.
// An empty value or AllFilter disables the filter.
func (e *Engine[R]) SetFilter(value string) {
	e.filter = value
	e.page = 1
}

// Filter returns the raw filter value.
func (e *Engine[R]) Filter() string { return e.filter }

// FilterField returns the field the category filter applies to.
func (e *Engine[R]) FilterField() string { return e.filterField }

// SetPage moves to page n, clamped into [1, TotalPages()].
func (e *Engine[R]) SetPage(n int) {
	e.page = clamp(n, 1, e.TotalPages())
}

// CurrentPage returns the current page, clamped against the current snapshot.
func (e *Engine[R]) CurrentPage() int {
	return clamp(e.page, 1, e.TotalPages())
}

// PageSize returns the configured page size.
func (e *Engine[R]) PageSize() int { return e.pageSize }

// SetSort orders rows by the column key. An empty key restores snapshot order.
// Unknown keys are ignored.
func (e *Engine[R]) SetSort(key string, desc bool) {
	if key != "" {
		if _, ok := e.colIndex[key]; !ok {
			return
		}
	}
	e.sortKey = key
	e.sortDesc = desc
}

// Sort returns the active sort key and direction.
func (e *Engine[R]) Sort() (string, bool) { return e.sortKey, e.sortDesc }

// Columns returns all configured columns.
func (e *Engine[R]) Columns() []Column[R] { return e.columns }

// Column looks up a configured column by key.
func (e *Engine[R]) Column(key string) (Column[R], bool) {
	i, ok := e.colIndex[key]
	if !ok {
		return Column[R]{}, false
	}
	return e.columns[i], true
}

// SetVisibleColumns restricts the displayed columns. Nil or empty shows all
// columns; unknown keys are ignored.
func (e *Engine[R]) SetVisibleColumns(keys []string) {
	if len(keys) == 0 {
		e.visible = nil
		return
	}
	e.visible = make(map[string]bool, len(keys))
	for _, k := range keys {
		if _, ok := e.colIndex[k]; ok {
			e.visible[k] = true
		}
	}
	if len(e.visible) == 0 {
		e.visible = nil
	}
}

// ColumnVisible reports whether the column with key is displayed.
func (e *Engine[R]) ColumnVisible(key string) bool {
	if _, ok := e.colIndex[key]; !ok {
		return false
	}
	return e.visible == nil || e.visible[key]
}

// VisibleColumns returns the displayed columns in configuration order.
func (e *Engine[R]) VisibleColumns() []Column[R] {
	if e.visible == nil {
		return e.columns
	}
	out := make([]Column[R], 0, len(e.visible))
	for _, c := range e.columns {
		if e.visible[c.Key] {
			out = append(out, c)
		}
	}
	return out
}

// Filtered returns every record matching the search term and filter, sorted
// when a sort key is set. It is recomputed from the full snapshot each call.
func (e *Engine[R]) Filtered() []R {
	out := make([]R, 0, len(e.records))
	for _, r := range e.records {
		if e.matchesFilter(r) && e.matchesSearch(r) {
			out = append(out, r)
		}
	}
	if e.sortKey != "" {
		e.sortRows(out)
	}
	return out
}

// FilteredCount returns the number of records surviving search and filter.
func (e *Engine[R]) FilteredCount() int {
	n := 0
	for _, r := range e.records {
		if e.matchesFilter(r) && e.matchesSearch(r) {
			n++
		}
	}
	return n
}

// TotalPages returns ceil(FilteredCount / PageSize), never less than 1.
func (e *Engine[R]) TotalPages() int {
	return totalPages(e.FilteredCount(), e.pageSize)
}

// VisibleRows returns the rows of the current page.
func (e *Engine[R]) VisibleRows() []R {
	rows := e.Filtered()
	page := clamp(e.page, 1, totalPages(len(rows), e.pageSize))
	return slicePage(rows, page, e.pageSize)
}

// View returns the current page together with its pagination metadata.
func (e *Engine[R]) View() Page[R] {
	rows := e.Filtered()
	total := totalPages(len(rows), e.pageSize)
	page := clamp(e.page, 1, total)
	return Page[R]{
		Rows:       slicePage(rows, page, e.pageSize),
		Number:     page,
		TotalPages: total,
		TotalRows:  len(rows),
	}
}

// RenderCell returns the display text for one cell. Missing or nil values
// render as Placeholder.
func (e *Engine[R]) RenderCell(r R, col Column[R]) string {
	if col.Render != nil {
		return col.Render(r)
	}
	v, ok := r.Field(col.Key)
	if !ok || v == nil {
		return Placeholder
	}
	return FormatValue(v)
}

func (e *Engine[R]) matchesSearch(r R) bool {
	if e.term == "" {
		return true
	}
	for _, s := range r.StringFields() {
		if strings.Contains(e.fold.String(s), e.foldedTerm) {
			return true
		}
	}
	return false
}

func (e *Engine[R]) matchesFilter(r R) bool {
	if e.filter == "" || strings.EqualFold(e.filter, AllFilter) || e.filterField == "" {
		return true
	}
	v, ok := r.Field(e.filterField)
	if !ok || v == nil {
		return false
	}
	return e.fold.String(FormatValue(v)) == e.fold.String(e.filter)
}

func totalPages(count, size int) int {
	if count <= 0 {
		return 1
	}
	return (count + size - 1) / size
}

func slicePage[R any](rows []R, page, size int) []R {
	start := (page - 1) * size
	if start >= len(rows) {
		return []R{}
	}
	end := start + size
	if end > len(rows) {
		end = len(rows)
	}
	return rows[start:end]
}

func clamp(n, lo, hi int) int {
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}
