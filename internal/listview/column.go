// ABOUTME: Column definitions for the list engine.
// ABOUTME: Columns are static per screen; their order is the display order.

package listview

import (
	"errors"
	"fmt"
)

var (
	ErrNoColumns       = errors.New("listview: at least one column is required")
	ErrEmptyColumnKey  = errors.New("listview: column key is empty")
	ErrDuplicateColumn = errors.New("listview: duplicate column key")
	ErrInvalidPageSize = errors.New("listview: page size must be positive")
)

// Column describes one presentable field of R.
type Column[R Record] struct {
	Key    string
	Label  string
	Render func(R) string
}

func validateColumns[R Record](cols []Column[R]) error {
	if len(cols) == 0 {
		return ErrNoColumns
	}
	seen := make(map[string]struct{}, len(cols))
	for i, c := range cols {
		if c.Key == "" {
			return fmt.Errorf("column %d: %w", i, ErrEmptyColumnKey)
		}
		if _, dup := seen[c.Key]; dup {
			return fmt.Errorf("column %q: %w", c.Key, ErrDuplicateColumn)
		}
		seen[c.Key] = struct{}{}
	}
	return nil
}
