package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// SimpleTable renders static tabular data: menus, friends, analytics.
type SimpleTable struct {
	Title   string
	Headers []string
	Rows    [][]string

	rightAligned map[int]bool
}

// NewSimpleTable creates a new SimpleTable with the given title and headers.
func NewSimpleTable(title string, headers []string) *SimpleTable {
	return &SimpleTable{
		Title:        title,
		Headers:      headers,
		Rows:         make([][]string, 0),
		rightAligned: make(map[int]bool),
	}
}

// AddRow adds a row to the table.
func (t *SimpleTable) AddRow(row ...string) {
	t.Rows = append(t.Rows, row)
}

// AlignRight right-aligns the given column indexes (for numeric columns).
func (t *SimpleTable) AlignRight(cols ...int) *SimpleTable {
	for _, c := range cols {
		t.rightAligned[c] = true
	}
	return t
}

// View renders the table using the provided styles.
func (t *SimpleTable) View(styles Styles) string {
	if len(t.Rows) == 0 {
		return ""
	}

	var sb strings.Builder

	if t.Title != "" {
		sb.WriteString(styles.Title.Render(t.Title))
		sb.WriteString("\n")
	}

	widths := t.columnWidths()

	headerStyle := styles.Bold.Padding(0, 1)
	sepStyle := styles.Muted

	t.writeRow(&sb, t.Headers, widths, headerStyle, sepStyle)

	totalWidth := len(t.Headers) - 1
	for _, w := range widths {
		totalWidth += w
	}
	sb.WriteString(sepStyle.Render(strings.Repeat("-", totalWidth)) + "\n")

	rowStyle := styles.Body.Padding(0, 1)
	for _, row := range t.Rows {
		t.writeRow(&sb, row, widths, rowStyle, sepStyle)
	}
	sb.WriteString("\n")

	return sb.String()
}

// columnWidths sizes each column to its widest cell, plus cell padding.
func (t *SimpleTable) columnWidths() []int {
	widths := make([]int, len(t.Headers))
	for i, h := range t.Headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range t.Rows {
		for i, cell := range row {
			if i >= len(widths) {
				break
			}
			if w := lipgloss.Width(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}
	// lipgloss Width includes padding
	for i := range widths {
		widths[i] += 2
	}
	return widths
}

func (t *SimpleTable) writeRow(sb *strings.Builder, cells []string, widths []int, style, sepStyle lipgloss.Style) {
	for i, cell := range cells {
		if i >= len(widths) {
			break
		}
		cellStyle := style.Width(widths[i])
		if t.rightAligned[i] {
			cellStyle = cellStyle.Align(lipgloss.Right)
		}
		sb.WriteString(cellStyle.Render(cell))
		if i < len(cells)-1 {
			sb.WriteString(sepStyle.Render("|"))
		}
	}
	sb.WriteString("\n")
}
