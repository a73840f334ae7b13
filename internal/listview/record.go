// ABOUTME: Record contract consumed by the list engine.
// ABOUTME: Row adapts loosely-typed API records (JSON objects) to that contract.

package listview

import (
	"encoding/json"
	"fmt"
	"time"
)

// Record is a single row the engine can display and search.
//
// Field returns the raw value stored under key. StringFields returns every
// string-typed value the record holds, whether or not a column displays it;
// free-text search only ever looks at these values.
type Record interface {
	Field(key string) (any, bool)
	StringFields() []string
}

// Row is a record decoded from a REST envelope.
type Row map[string]any

// Field implements Record.
func (r Row) Field(key string) (any, bool) {
	v, ok := r[key]
	return v, ok
}

// StringFields implements Record. Nested objects, arrays, numbers and
// booleans are skipped.
func (r Row) StringFields() []string {
	out := make([]string, 0, len(r))
	for _, v := range r {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// ID returns the row's "id" field as text, or "" when absent.
func (r Row) ID() string {
	v, ok := r["id"]
	if !ok || v == nil {
		return ""
	}
	return FormatValue(v)
}

// Clone returns a shallow copy of the row.
func (r Row) Clone() Row {
	out := make(Row, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// FormatValue stringifies a raw field value for display.
func FormatValue(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case float64:
		// JSON numbers arrive as float64; keep integers free of exponents.
		if val == float64(int64(val)) {
			return fmt.Sprintf("%d", int64(val))
		}
		return fmt.Sprint(val)
	case time.Time:
		return val.Format("2006-01-02 15:04")
	case map[string]any, []any:
		b, err := json.Marshal(val)
		if err != nil {
			return fmt.Sprint(val)
		}
		return string(b)
	default:
		return fmt.Sprint(val)
	}
}
