package wire

import (
	"strconv"
	"strings"
	"testing"

	"github.com/cockroachdb/datadriven"
)

// TestStatusDataDriven exercises Status.OK against the fixed status
// vocabulary in testdata/status.
func TestStatusDataDriven(t *testing.T) {
	datadriven.RunTest(t, "testdata/status", func(t *testing.T, d *datadriven.TestData) string {
		if d.Cmd != "ok" {
			t.Fatalf("unknown command %q", d.Cmd)
		}
		var out []string
		for _, line := range strings.Split(strings.TrimSpace(d.Input), "\n") {
			n, err := strconv.Atoi(strings.TrimSpace(line))
			if err != nil {
				t.Fatalf("bad input %q: %s", line, err)
			}
			out = append(out, strconv.FormatBool(Status(n).OK()))
		}
		return strings.Join(out, "\n") + "\n"
	})
}
