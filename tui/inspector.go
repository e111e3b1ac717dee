package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

func (m Model) inspectVisibleRows() int {
	// 4 = border (2) + title (1) + footer (1).
	return max(m.height-4, 3)
}

func (m Model) inspectLines() []string {
	if m.cursor < 0 || m.cursor >= len(m.rows) {
		return nil
	}
	r := m.rows[m.cursor]

	var lines []string
	lines = append(lines, fmt.Sprintf("Row:    %d of %d", m.cursor+1, len(m.rows)))
	lines = append(lines, fmt.Sprintf("Key:    %d bytes", len(r.key)))
	lines = append(lines, hexDump(r.key)...)
	lines = append(lines, "")
	lines = append(lines, fmt.Sprintf("Record: %d bytes", len(r.record)))
	lines = append(lines, hexDump(r.record)...)
	return lines
}

func (m Model) renderInspector() string {
	innerWidth := max(m.width-4, 20)
	lines := m.inspectLines()

	visible := m.inspectVisibleRows()
	start := min(m.inspectScroll, max(len(lines)-1, 0))
	end := min(start+visible, len(lines))

	var clipped []string
	for _, l := range lines[start:end] {
		clipped = append(clipped, ansi.Truncate(l, innerWidth, "…"))
	}

	border := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		Width(innerWidth).
		BorderForeground(lipgloss.Color("240"))

	footer := "  q/esc: back  j/k: scroll"
	return border.Render(strings.Join(clipped, "\n")) + "\n" + footer
}
