// ABOUTME: Tests for list view state parsing and URL encoding.

package admin

import (
	"net/url"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseViewState(t *testing.T) {
	tests := []struct {
		query string
		want  viewState
	}{
		{"", viewState{Page: 1}},
		{"q=+loft+&filter=Bank&page=3&sort=name&desc=true&cols=name,+price,",
			viewState{Search: "loft", Filter: "Bank", Page: 3, Sort: "name", Desc: true, Cols: []string{"name", "price"}}},
		{"page=abc&desc=maybe", viewState{Page: 1}},
	}
	for _, tt := range tests {
		q, _ := url.ParseQuery(tt.query)
		if diff := cmp.Diff(tt.want, parseViewState(q)); diff != "" {
			t.Errorf("parseViewState(%q) mismatch (-want +got):\n%s", tt.query, diff)
		}
	}
}

func TestViewState_URL(t *testing.T) {
	st := viewState{Search: "a b", Filter: "all", Page: 1, Sort: "price", Desc: true}
	if got, want := st.url("/admin/properties"), "/admin/properties?desc=true&q=a+b&sort=price"; got != want {
		t.Errorf("url() = %q, want %q", got, want)
	}
	if got := (viewState{Page: 1}).url("/admin/x"); got != "/admin/x" {
		t.Errorf("default state url = %q", got)
	}
}

func TestViewState_WithSortToggles(t *testing.T) {
	st := viewState{Sort: "name"}
	if next := st.withSort("name"); !next.Desc {
		t.Error("same key should flip to descending")
	}
	if next := (viewState{Sort: "name", Desc: true}).withSort("price"); next.Sort != "price" || next.Desc {
		t.Errorf("new key should sort ascending, got %+v", next)
	}
}

func TestViewState_WithColumnToggled(t *testing.T) {
	all := []string{"a", "b", "c"}

	hidden := viewState{}.withColumnToggled("b", all)
	if diff := cmp.Diff([]string{"a", "c"}, hidden.Cols); diff != "" {
		t.Errorf("hide b (-want +got):\n%s", diff)
	}

	shown := hidden.withColumnToggled("b", all)
	if shown.Cols != nil {
		t.Errorf("showing every column should clear Cols, got %v", shown.Cols)
	}
}
