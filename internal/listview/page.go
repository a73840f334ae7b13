// ABOUTME: Page value returned by the list engine for rendering.
// ABOUTME: Carries the visible rows plus pagination metadata.

package listview

// Page is one rendered slice of the filtered rows.
type Page[R Record] struct {
	Rows       []R
	Number     int
	TotalPages int
	TotalRows  int
}

// Empty reports whether no rows survived filtering.
func (p Page[R]) Empty() bool { return p.TotalRows == 0 }

func (p Page[R]) HasPrev() bool { return p.Number > 1 }

func (p Page[R]) HasNext() bool { return p.Number < p.TotalPages }

func (p Page[R]) Prev() int {
	if p.HasPrev() {
		return p.Number - 1
	}
	return p.Number
}

func (p Page[R]) Next() int {
	if p.HasNext() {
		return p.Number + 1
	}
	return p.Number
}

// Numbers returns 1..TotalPages for pagination links.
func (p Page[R]) Numbers() []int {
	out := make([]int, p.TotalPages)
	for i := range out {
		out[i] = i + 1
	}
	return out
}
