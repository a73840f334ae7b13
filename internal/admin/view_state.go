// ABOUTME: List view state carried in the query string.
// ABOUTME: Parses q/filter/page/sort/desc/cols and applies them to a list engine in order.

package admin

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/2389/realty/internal/listview"
)

// viewState is everything a list page needs to reproduce itself from a URL.
type viewState struct {
	Search string
	Filter string
	Page   int
	Sort   string
	Desc   bool
	Cols   []string // nil shows every column
}

func parseViewState(q url.Values) viewState {
	st := viewState{
		Search: strings.TrimSpace(q.Get("q")),
		Filter: q.Get("filter"),
		Page:   1,
		Sort:   q.Get("sort"),
	}
	if n, err := strconv.Atoi(q.Get("page")); err == nil {
		st.Page = n
	}
	st.Desc, _ = strconv.ParseBool(q.Get("desc"))
	if cols := q.Get("cols"); cols != "" {
		for _, c := range strings.Split(cols, ",") {
			if c = strings.TrimSpace(c); c != "" {
				st.Cols = append(st.Cols, c)
			}
		}
	}
	return st
}

// applyViewState loads records into e, then sets visible columns, sort,
// filter and search before the page. Filter and search reset the page, so
// the requested page has to be applied last.
func applyViewState[R listview.Record](e *listview.Engine[R], records []R, st viewState) {
	e.SetRecords(records)
	e.SetVisibleColumns(st.Cols)
	e.SetSort(st.Sort, st.Desc)
	e.SetFilter(st.Filter)
	e.SetSearchTerm(st.Search)
	e.SetPage(st.Page)
}

// values encodes the state, leaving out defaults.
func (st viewState) values() url.Values {
	v := url.Values{}
	if st.Search != "" {
		v.Set("q", st.Search)
	}
	if st.Filter != "" && !strings.EqualFold(st.Filter, listview.AllFilter) {
		v.Set("filter", st.Filter)
	}
	if st.Page > 1 {
		v.Set("page", strconv.Itoa(st.Page))
	}
	if st.Sort != "" {
		v.Set("sort", st.Sort)
		if st.Desc {
			v.Set("desc", "true")
		}
	}
	if len(st.Cols) > 0 {
		v.Set("cols", strings.Join(st.Cols, ","))
	}
	return v
}

// url returns base with the encoded state appended.
func (st viewState) url(base string) string {
	if enc := st.values().Encode(); enc != "" {
		return base + "?" + enc
	}
	return base
}

func (st viewState) withPage(n int) viewState {
	st.Page = n
	return st
}

// withSort toggles direction when key is already the sort column.
func (st viewState) withSort(key string) viewState {
	if st.Sort == key {
		st.Desc = !st.Desc
	} else {
		st.Sort = key
		st.Desc = false
	}
	return st
}

// withColumnToggled flips one column's visibility. all lists every column key
// in display order.
func (st viewState) withColumnToggled(key string, all []string) viewState {
	visible := make(map[string]bool, len(all))
	if st.Cols == nil {
		for _, k := range all {
			visible[k] = true
		}
	} else {
		for _, k := range st.Cols {
			visible[k] = true
		}
	}
	visible[key] = !visible[key]

	cols := make([]string, 0, len(all))
	for _, k := range all {
		if visible[k] {
			cols = append(cols, k)
		}
	}
	if len(cols) == len(all) {
		cols = nil
	}
	st.Cols = cols
	return st
}
