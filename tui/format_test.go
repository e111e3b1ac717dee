package tui

import (
	"strings"
	"testing"
)

func TestBytesPreview(t *testing.T) {
	tests := []struct {
		name string
		in   []byte
		max  int
		want string
	}{
		{"empty", nil, 10, "-"},
		{"printable", []byte("hello"), 10, "hello"},
		{"truncated", []byte("hello world"), 8, "hello w…"},
		{"binary", []byte{0x00, 0x01}, 10, "0x0001"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := bytesPreview(tt.in, tt.max); got != tt.want {
				t.Errorf("bytesPreview(%q, %d) = %q, want %q", tt.in, tt.max, got, tt.want)
			}
		})
	}
}

func TestHexDump(t *testing.T) {
	lines := hexDump([]byte("hello, hamkv! this line spills over sixteen bytes"))
	if len(lines) != 4 {
		t.Fatalf("expected 4 rows, got %d", len(lines))
	}
	if !strings.Contains(lines[0], "6865 6c6c") {
		t.Errorf("first row missing hex bytes: %q", lines[0])
	}
	if !strings.Contains(lines[0], "hello, hamkv! th") {
		t.Errorf("first row missing ascii gutter: %q", lines[0])
	}
}

func TestShortTag(t *testing.T) {
	if got := shortTag("6ba7b810-9dad-11d1-80b4-00c04fd430c8"); got != "6ba7b810" {
		t.Errorf("shortTag = %q", got)
	}
	if got := shortTag("plain"); got != "plain" {
		t.Errorf("shortTag = %q", got)
	}
}
