package render

import (
	"fmt"
	"strings"
	"time"

	"github.com/mattn/go-runewidth"
)

// TimeLayout is how time values are written inside a table cell.
const TimeLayout = "2006-01-02 15:04:05-07:00"

// columnGap is the padding added after every column, including the last.
const columnGap = 2

// Cell is a single table value. Null marks a value the row does not have; it
// prints as blank space and is distinct from the text "None".
type Cell struct {
	Text string
	Null bool
}

// Text returns a non-null cell.
func Text(s string) Cell {
	return Cell{Text: s}
}

// Null is the null-marker cell.
var Null = Cell{Null: true}

// Grid is a header row followed by data rows, all of the same length.
type Grid [][]Cell

// ToTable lays rows out as a grid. With no columns given, the columns are
// every key seen across the rows in first-seen order.
func ToTable(rows []*Row, columns ...string) Grid {
	if len(columns) == 0 {
		columns = inferColumns(rows)
	}

	grid := make(Grid, 0, len(rows)+1)

	header := make([]Cell, len(columns))
	for i, c := range columns {
		header[i] = Text(c)
	}
	grid = append(grid, header)

	for _, row := range rows {
		cells := make([]Cell, len(columns))
		for i, c := range columns {
			v, ok := row.Get(c)
			if !ok {
				cells[i] = Null
				continue
			}
			cells[i] = cellOf(v)
		}
		grid = append(grid, cells)
	}

	return grid
}

func inferColumns(rows []*Row) []string {
	seen := make(map[string]bool)
	var columns []string
	for _, row := range rows {
		for _, k := range row.Keys() {
			if !seen[k] {
				seen[k] = true
				columns = append(columns, k)
			}
		}
	}
	return columns
}

// cellOf converts a value to a cell. nil and nil pointers become the
// null-marker, pointers are followed.
func cellOf(v any) Cell {
	v = deref(v)
	if v == nil {
		return Null
	}

	switch t := v.(type) {
	case time.Time:
		return Text(t.Format(TimeLayout))
	case string:
		return Text(t)
	case fmt.Stringer:
		return Text(t.String())
	default:
		return Text(fmt.Sprint(t))
	}
}

// Format pads every cell to its column's widest value plus two spaces and
// joins the rows with newlines. There is no trailing newline.
func Format(grid Grid) string {
	widths := columnWidths(grid)

	lines := make([]string, len(grid))
	for r, row := range grid {
		var sb strings.Builder
		for i, cell := range row {
			text := ""
			if !cell.Null {
				text = cell.Text
			}
			sb.WriteString(padRight(text, widths[i]+columnGap))
		}
		lines[r] = sb.String()
	}

	return strings.Join(lines, "\n")
}

func columnWidths(grid Grid) []int {
	var widths []int
	for _, row := range grid {
		for i, cell := range row {
			for len(widths) <= i {
				widths = append(widths, 0)
			}
			if cell.Null {
				continue
			}
			if w := runewidth.StringWidth(cell.Text); w > widths[i] {
				widths[i] = w
			}
		}
	}
	return widths
}

// padRight pads s with spaces to the given display width.
func padRight(s string, width int) string {
	sw := runewidth.StringWidth(s)
	if sw >= width {
		return s
	}
	return s + strings.Repeat(" ", width-sw)
}
