// ABOUTME: Terminal rendering of list engine pages for the CLI.
// ABOUTME: Draws the visible columns with lipgloss tables and a page footer.

package termtable

import (
	"fmt"
	"io"

	"github.com/2389/realty/internal/listview"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	borderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	footerStyle = lipgloss.NewStyle().Faint(true)
)

// Footer formats the page position line printed under every table.
func Footer[R listview.Record](p listview.Page[R]) string {
	return fmt.Sprintf("page %d of %d (%d rows)", p.Number, p.TotalPages, p.TotalRows)
}

// Render writes the engine's current page to w. An empty page prints the
// empty-state message instead of a table.
func Render[R listview.Record](w io.Writer, e *listview.Engine[R]) error {
	page := e.View()
	if page.Empty() {
		_, err := fmt.Fprintln(w, listview.EmptyMessage)
		return err
	}

	cols := e.VisibleColumns()
	headers := make([]string, len(cols))
	for i, c := range cols {
		headers[i] = c.Label
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(borderStyle).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		Headers(headers...)

	for _, r := range page.Rows {
		cells := make([]string, len(cols))
		for i, c := range cols {
			cells[i] = e.RenderCell(r, c)
		}
		t.Row(cells...)
	}

	if _, err := fmt.Fprintln(w, t.Render()); err != nil {
		return err
	}
	_, err := fmt.Fprintln(w, footerStyle.Render(Footer(page)))
	return err
}
