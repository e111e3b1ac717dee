package tui

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/charmbracelet/lipgloss"
)

// bytesPreview renders b for a list cell: printable ASCII as-is, anything
// else as a hex string, truncated to maxLen.
func bytesPreview(b []byte, maxLen int) string {
	if len(b) == 0 {
		return "-"
	}
	s := string(b)
	if isPrintable(s) {
		return truncate(s, maxLen)
	}
	return truncate(fmt.Sprintf("0x%x", b), maxLen)
}

func isPrintable(s string) bool {
	for _, r := range s {
		if r > unicode.MaxASCII || !unicode.IsPrint(r) {
			return false
		}
	}
	return true
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 1 {
		return s[:maxLen]
	}
	return s[:maxLen-1] + "…"
}

// hexDump formats b as 16-byte rows with an ASCII gutter, the classic
// xxd layout.
func hexDump(b []byte) []string {
	var lines []string
	for off := 0; off < len(b); off += 16 {
		end := min(off+16, len(b))
		chunk := b[off:end]

		var hexPart strings.Builder
		for i, c := range chunk {
			if i > 0 && i%2 == 0 {
				hexPart.WriteByte(' ')
			}
			fmt.Fprintf(&hexPart, "%02x", c)
		}

		var asciiPart strings.Builder
		for _, c := range chunk {
			if c >= 0x20 && c < 0x7f {
				asciiPart.WriteByte(c)
			} else {
				asciiPart.WriteByte('.')
			}
		}

		lines = append(lines, fmt.Sprintf("  %08x: %-40s %s", off, hexPart.String(), asciiPart.String()))
	}
	return lines
}

// shortTag shows the first uuid segment of a session tag.
func shortTag(tag string) string {
	if i := strings.IndexByte(tag, '-'); i > 0 {
		return tag[:i]
	}
	return tag
}

func friendlyError(err error, width int) string {
	msg := err.Error()

	var text string
	if strings.Contains(msg, "connection refused") {
		text = "Could not connect to the hamkv server.\n" +
			"Is the server running?\n\n" +
			"Error: " + msg
	}
	if text == "" {
		text = "Error: " + msg
	}

	return lipgloss.NewStyle().Width(width).Render(text)
}
