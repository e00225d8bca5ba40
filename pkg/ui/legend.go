package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vanderheijden86/lizardview/pkg/model"
)

// renderLegend builds the help overlay: band thresholds plus key bindings.
func renderLegend(theme Theme, width int) string {
	titleStyle := theme.PrimaryBold
	keyStyle := theme.Renderer.NewStyle().Foreground(theme.Primary)
	descStyle := theme.MutedText

	bands := []struct {
		band  model.Band
		label string
	}{
		{model.BandLow, "CCN 1-5    simple, easy to test"},
		{model.BandMedium, "CCN 6-10   moderate"},
		{model.BandHigh, "CCN 11-15  getting risky"},
		{model.BandCritical, "CCN >15    refactor candidate"},
	}

	keys := []struct{ key, desc string }{
		{"enter", "analyze path / show preview"},
		{"tab", "switch Functions/Files tables"},
		{"s", "cycle sort (CCN, NLOC, Name)"},
		{"1 2 3", "sort by CCN / NLOC / Name"},
		{"/", "filter by substring"},
		{"p", "pick a file or folder with fzf"},
		{"P", "pick a folder with fzf"},
		{"o", "edit the analyze path"},
		{"c", "copy critical functions to clipboard"},
		{"e", "export JSON report"},
		{"h", "show run history"},
		{"r", "re-run analysis"},
		{"w", "toggle auto-refresh on file changes"},
		{"?", "toggle this help"},
		{"q", "quit"},
	}

	var sb strings.Builder
	sb.WriteString(titleStyle.Render("Complexity bands"))
	sb.WriteString("\n")
	for _, b := range bands {
		sb.WriteString("  ")
		sb.WriteString(RenderBandBadge(b.band))
		sb.WriteString("  ")
		sb.WriteString(descStyle.Render(b.label))
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	sb.WriteString(titleStyle.Render("Keys"))
	sb.WriteString("\n")
	for _, k := range keys {
		sb.WriteString("  ")
		sb.WriteString(keyStyle.Render(padRight(k.key, 7)))
		sb.WriteString(descStyle.Render(k.desc))
		sb.WriteString("\n")
	}

	box := theme.Renderer.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Primary).
		Padding(1, 2)
	if width > 0 {
		box = box.MaxWidth(width)
	}
	return box.Render(strings.TrimRight(sb.String(), "\n"))
}
