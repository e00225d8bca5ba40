package ui

import (
	"strings"
	"testing"
)

func TestRenderLegendListsBandsAndKeys(t *testing.T) {
	out := renderLegend(TestTheme(), 100)

	for _, want := range []string{"CCN 1-5", "CRIT", "1 2 3", "clipboard", "quit"} {
		if !strings.Contains(out, want) {
			t.Errorf("legend missing %q:\n%s", want, out)
		}
	}
}
