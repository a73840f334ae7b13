// ABOUTME: Optional column ordering for the list engine.
// ABOUTME: Stable; numbers compare numerically, missing values sort last.

package listview

import (
	"cmp"
	"slices"
)

func (e *Engine[R]) sortRows(rows []R) {
	key := e.sortKey
	slices.SortStableFunc(rows, func(a, b R) int {
		va, oka := a.Field(key)
		vb, okb := b.Field(key)
		missA := !oka || va == nil
		missB := !okb || vb == nil
		switch {
		case missA && missB:
			return 0
		case missA:
			return 1
		case missB:
			return -1
		}
		c := e.compareValues(va, vb)
		if e.sortDesc {
			return -c
		}
		return c
	})
}

func (e *Engine[R]) compareValues(a, b any) int {
	if fa, ok := toFloat(a); ok {
		if fb, ok := toFloat(b); ok {
			return cmp.Compare(fa, fb)
		}
	}
	return cmp.Compare(e.fold.String(FormatValue(a)), e.fold.String(FormatValue(b)))
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	default:
		return 0, false
	}
}
