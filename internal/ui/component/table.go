package component

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rovshanmuradov/gls-tokenomics/internal/ui/style"
)

// Table renders a static grid of cells. Column widths are derived from
// the widest cell, measured in terminal cells so that double-width
// labels line up with ASCII ones.
type Table struct {
	rows       [][]string
	headerRows int
	emphasis   map[int]bool
	styles     style.ReportStyles
	showBorder bool
}

// NewTable creates a new table component
func NewTable() *Table {
	return &Table{
		headerRows: 1,
		emphasis:   make(map[int]bool),
		styles:     style.NewReportStyles(style.DefaultPalette()),
		showBorder: true,
	}
}

// SetRows sets all table rows. Rows may be ragged; missing cells render empty.
func (t *Table) SetRows(rows [][]string) *Table {
	t.rows = rows
	return t
}

// SetHeaderRows sets how many leading rows are rendered as headers.
func (t *Table) SetHeaderRows(n int) *Table {
	if n < 0 {
		n = 0
	}
	t.headerRows = n
	return t
}

// Emphasize marks rows to be rendered with the total style.
func (t *Table) Emphasize(rows ...int) *Table {
	for _, r := range rows {
		t.emphasis[r] = true
	}
	return t
}

// SetStyles replaces the table styles
func (t *Table) SetStyles(s style.ReportStyles) *Table {
	t.styles = s
	return t
}

// SetShowBorder enables/disables table border
func (t *Table) SetShowBorder(show bool) *Table {
	t.showBorder = show
	return t
}

// RowCount returns the number of rows
func (t *Table) RowCount() int {
	return len(t.rows)
}

// ColumnWidths returns the content width of every column.
func (t *Table) ColumnWidths() []int {
	var widths []int
	for _, row := range t.rows {
		for i, cell := range row {
			if i >= len(widths) {
				widths = append(widths, 0)
			}
			if w := lipgloss.Width(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}
	return widths
}

// View renders the table
func (t *Table) View() string {
	if len(t.rows) == 0 {
		return ""
	}

	widths := t.ColumnWidths()
	lines := make([]string, 0, len(t.rows)+1)

	for rowIndex, row := range t.rows {
		rowStyle := t.styles.Value
		switch {
		case rowIndex < t.headerRows:
			rowStyle = t.styles.Header
		case t.emphasis[rowIndex]:
			rowStyle = t.styles.Total
		}

		cells := make([]string, len(widths))
		for i, w := range widths {
			var data string
			if i < len(row) {
				data = row[i]
			}
			cellStyle := rowStyle
			if i == 0 && rowIndex >= t.headerRows && !t.emphasis[rowIndex] {
				cellStyle = t.styles.Label
			}
			cells[i] = renderCell(data, w, alignment(i), cellStyle)
		}
		lines = append(lines, strings.Join(cells, "│"))

		if t.headerRows > 0 && rowIndex == t.headerRows-1 && rowIndex < len(t.rows)-1 {
			sep := make([]string, len(widths))
			for i, w := range widths {
				sep[i] = strings.Repeat("─", w+2)
			}
			lines = append(lines, t.styles.Muted.Render(strings.Join(sep, "┼")))
		}
	}

	result := strings.Join(lines, "\n")
	if t.showBorder {
		result = t.styles.Border.Render(result)
	}
	return result
}

func alignment(column int) lipgloss.Position {
	if column == 0 {
		return lipgloss.Left
	}
	return lipgloss.Right
}

// renderCell pads content to width plus one space on either side.
func renderCell(content string, width int, align lipgloss.Position, s lipgloss.Style) string {
	placed := lipgloss.PlaceHorizontal(width, align, content)
	return " " + s.Render(placed) + " "
}
