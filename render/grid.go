package render

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/charmbracelet/x/ansi"
	"github.com/joshyorko/sakdash/payload"
)

// Grid draws a table with a header row. The pandas index is only shown
// when it is something other than 0..n-1.
func Grid(data payload.Table, width int, styles Styles) string {
	headers := data.Columns
	withIndex := meaningfulIndex(data)
	if withIndex {
		headers = append([]string{""}, headers...)
	}
	rows := make([][]string, 0, len(data.Rows))
	for at := range data.Rows {
		cells := make([]string, 0, len(headers))
		if withIndex {
			cells = append(cells, data.Index[at])
		}
		for column := range data.Columns {
			cells = append(cells, payload.CellText(data.Cell(at, column)))
		}
		rows = append(rows, cells)
	}
	grid := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(styles.Border).
		StyleFunc(func(row, column int) lipgloss.Style {
			if row == table.HeaderRow {
				return styles.Header.Padding(0, 1)
			}
			return lipgloss.NewStyle().Padding(0, 1)
		}).
		Headers(headers...).
		Rows(rows...)
	if width > 0 && lipgloss.Width(grid.String()) > width {
		grid = grid.Width(width)
	}
	return grid.String()
}

func meaningfulIndex(data payload.Table) bool {
	if len(data.Index) != len(data.Rows) || len(data.Index) == 0 {
		return false
	}
	for at, label := range data.Index {
		if label != strconv.Itoa(at) {
			return true
		}
	}
	return false
}

// Chart draws one horizontal bar per numeric column, sized by the column
// total relative to the largest absolute total.
func Chart(data payload.Table, width int, styles Styles) string {
	sums := data.Sums()
	if len(sums) == 0 {
		return ""
	}
	if width <= 0 {
		width = 80
	}
	labelWidth, valueWidth := 0, 0
	values := make([]string, len(sums))
	largest := 0.0
	for at, sum := range sums {
		labelWidth = max(labelWidth, ansi.StringWidth(sum.Name))
		values[at] = strconv.FormatFloat(sum.Total, 'f', -1, 64)
		valueWidth = max(valueWidth, len(values[at]))
		largest = math.Max(largest, math.Abs(sum.Total))
	}
	labelWidth = min(labelWidth, max(width/3, 4))
	room := width - labelWidth - valueWidth - 3
	if room < 1 {
		room = 1
	}
	lines := make([]string, 0, len(sums)+1)
	lines = append(lines, styles.Header.Render("column totals"))
	for at, sum := range sums {
		length := 0
		if largest > 0 {
			length = int(math.Round(math.Abs(sum.Total) / largest * float64(room)))
		}
		label := ansi.Truncate(sum.Name, labelWidth, "…")
		padding := strings.Repeat(" ", labelWidth-ansi.StringWidth(label))
		bar := styles.Bar.Render(strings.Repeat("█", length))
		lines = append(lines, fmt.Sprintf("%s%s %s %s", label, padding, bar, values[at]))
	}
	return strings.Join(lines, "\n")
}
