package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Column widths.
const (
	colMarker  = 2 // "▶ "
	colIndex   = 7
	colKeySize = 6
	colRecSize = 6
)

func (m Model) listHeight() int {
	// 6 = list border (2) + status line (1) + footer (1) + header row (1)
	// + padding.
	return max(m.height-6, 3)
}

func (m Model) renderListView() string {
	footer := "  q: quit  j/k: navigate  g/G: first/last  enter: inspect"
	return strings.Join([]string{
		m.renderList(m.listHeight()),
		m.renderStatus(),
		footer,
	}, "\n")
}

func (m Model) renderList(maxRows int) string {
	innerWidth := max(m.width-4, 20)
	colKey := max((innerWidth-colMarker-colIndex-colKeySize-colRecSize-5)/2, 10)
	colRecord := max(innerWidth-colMarker-colIndex-colKeySize-colRecSize-colKey-5, 10)

	title := fmt.Sprintf(" hamkv db %d (%d keys", m.cfg.DbName, len(m.rows))
	if !m.eof {
		title += "+"
	}
	title += ") "

	border := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		Width(innerWidth)

	dataRows := max(maxRows-1, 1) // -1 for header row

	start := 0
	if len(m.rows) > dataRows {
		start = max(m.cursor-dataRows/2, 0)
		if start+dataRows > len(m.rows) {
			start = len(m.rows) - dataRows
		}
	}
	end := min(start+dataRows, len(m.rows))

	header := fmt.Sprintf("  %*s %-*s %*s %-*s %*s",
		colIndex, "#",
		colKey, "Key",
		colKeySize, "Bytes",
		colRecord, "Record",
		colRecSize, "Bytes",
	)

	var rows []string
	rows = append(rows, lipgloss.NewStyle().Bold(true).Render(header))
	if len(m.rows) == 0 {
		if m.loading {
			rows = append(rows, "  loading...")
		} else {
			rows = append(rows, "  (empty database)")
		}
	}
	for i := start; i < end; i++ {
		rows = append(rows, m.renderRow(i, i == m.cursor, colKey, colRecord))
	}

	borderColor := lipgloss.Color("240")
	border = border.BorderForeground(borderColor)
	content := strings.Join(rows, "\n")

	box := border.Render(content)
	lines := strings.Split(box, "\n")
	if len(lines) > 0 {
		borderFg := lipgloss.NewStyle().Foreground(borderColor)
		titleStyle := lipgloss.NewStyle().Bold(true)
		dashes := max(innerWidth-len([]rune(title)), 0)
		lines[0] = borderFg.Render("╭") +
			titleStyle.Render(title) +
			borderFg.Render(strings.Repeat("─", dashes)+"╮")
		box = strings.Join(lines, "\n")
	}

	return box
}

func (m Model) renderRow(i int, isCursor bool, colKey, colRecord int) string {
	r := m.rows[i]
	marker := "  "
	if isCursor {
		marker = "▶ "
	}

	line := fmt.Sprintf("%s%*d %-*s %*d %-*s %*d",
		marker,
		colIndex, i+1,
		colKey, bytesPreview(r.key, colKey),
		colKeySize, len(r.key),
		colRecord, bytesPreview(r.record, colRecord),
		colRecSize, len(r.record),
	)
	if isCursor {
		line = lipgloss.NewStyle().Bold(true).Render(line)
	}
	return line
}

// renderStatus is the one-line session summary under the list: codec,
// session tag, live handle count, and the hint core's current page
// capacity estimate when it has samples.
func (m Model) renderStatus() string {
	parts := []string{
		"codec: " + m.session.CodecName(),
		"session: " + shortTag(m.session.Tag()),
		fmt.Sprintf("handles: %d", m.session.Handles()),
	}
	if pc := m.db.Stats().DefaultPageCapacity(); pc > 0 {
		parts = append(parts, fmt.Sprintf("page capacity: ~%d", pc))
	}
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("240")).
		Render("  " + strings.Join(parts, "  ·  "))
}
