package report

import (
	"strings"
	"unicode/utf8"
)

const (
	// Separator joins the cells of a row line.
	Separator = " | "

	// Ellipsis marks a truncated cell.
	Ellipsis = "…"
)

// Cell is one laid-out grid cell with its presentation tag.
type Cell struct {
	Text string
	Tag  string
}

// Fit returns text as exactly width characters: longer text keeps its first
// width-1 characters followed by Ellipsis, shorter text is padded with spaces.
func Fit(text string, width int) string {
	if width <= 0 {
		return ""
	}

	n := utf8.RuneCountInString(text)
	if n > width {
		runes := []rune(text)
		return string(runes[:width-1]) + Ellipsis
	}

	return text + strings.Repeat(" ", width-n)
}

// LayoutHeader lays out the column titles.
func LayoutHeader(columns []Column) []Cell {
	cells := make([]Cell, len(columns))
	for i, col := range columns {
		cells[i] = Cell{Text: Fit(col.Title, col.Width), Tag: col.Tag}
	}
	return cells
}

// LayoutRow lays out the display values of inc.
func LayoutRow(inc Incidence, columns []Column) []Cell {
	cells := make([]Cell, len(columns))
	for i, col := range columns {
		cells[i] = Cell{Text: Fit(inc.Value(col.Key), col.Width), Tag: col.Tag}
	}
	return cells
}

// JoinCells styles each cell and joins them with Separator.
func JoinCells(cells []Cell, styler Styler, bold bool) string {
	parts := make([]string, len(cells))
	for i, cell := range cells {
		parts[i] = styler.Cell(cell.Text, cell.Tag, bold)
	}
	return strings.Join(parts, Separator)
}
