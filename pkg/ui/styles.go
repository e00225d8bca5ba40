package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vanderheijden86/lizardview/pkg/model"
)

// ══════════════════════════════════════════════════════════════════════════════
// COLOR PALETTE - Adaptive colors for light and dark terminals
// Light mode colors tuned for WCAG AA compliance (contrast ratio >= 4.5:1)
// ══════════════════════════════════════════════════════════════════════════════

var (
	// Base colors
	ColorBg          = lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#282A36"}
	ColorBgSubtle    = lipgloss.AdaptiveColor{Light: "#E8E8E8", Dark: "#363949"}
	ColorBgHighlight = lipgloss.AdaptiveColor{Light: "#D0D0D0", Dark: "#44475A"}
	ColorText        = lipgloss.AdaptiveColor{Light: "#1A1A1A", Dark: "#F8F8F2"}
	ColorSubtext     = lipgloss.AdaptiveColor{Light: "#555555", Dark: "#BFBFBF"}
	ColorMuted       = lipgloss.AdaptiveColor{Light: "#666666", Dark: "#6272A4"}

	// Primary accent colors
	ColorPrimary = lipgloss.AdaptiveColor{Light: "#6B47D9", Dark: "#BD93F9"}
	ColorInfo    = lipgloss.AdaptiveColor{Light: "#006080", Dark: "#8BE9FD"}
	ColorSuccess = lipgloss.AdaptiveColor{Light: "#007700", Dark: "#50FA7B"}
	ColorWarning = lipgloss.AdaptiveColor{Light: "#B06800", Dark: "#FFB86C"}
	ColorDanger  = lipgloss.AdaptiveColor{Light: "#CC0000", Dark: "#FF5555"}

	// Complexity band colors
	ColorBandLow      = lipgloss.AdaptiveColor{Light: "#007700", Dark: "#50FA7B"}
	ColorBandMedium   = lipgloss.AdaptiveColor{Light: "#808000", Dark: "#F1FA8C"}
	ColorBandHigh     = lipgloss.AdaptiveColor{Light: "#B06800", Dark: "#FFB86C"}
	ColorBandCritical = lipgloss.AdaptiveColor{Light: "#CC0000", Dark: "#FF5555"}

	// Band background colors (for badges)
	ColorBandLowBg      = lipgloss.AdaptiveColor{Light: "#D4EDDA", Dark: "#1A3D2A"}
	ColorBandMediumBg   = lipgloss.AdaptiveColor{Light: "#FFF3CD", Dark: "#3D3D1A"}
	ColorBandHighBg     = lipgloss.AdaptiveColor{Light: "#FFE8CC", Dark: "#3D2A1A"}
	ColorBandCriticalBg = lipgloss.AdaptiveColor{Light: "#F8D7DA", Dark: "#3D1A1A"}
)

// ══════════════════════════════════════════════════════════════════════════════
// PANEL STYLES - For split view layouts
// ══════════════════════════════════════════════════════════════════════════════

// PanelStyle frames the preview pane under the table.
var PanelStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(ColorBgHighlight)

// BandColor returns the foreground color for a complexity band.
func BandColor(b model.Band) lipgloss.AdaptiveColor {
	switch b {
	case model.BandLow:
		return ColorBandLow
	case model.BandMedium:
		return ColorBandMedium
	case model.BandHigh:
		return ColorBandHigh
	case model.BandCritical:
		return ColorBandCritical
	default:
		return ColorMuted
	}
}

func bandBg(b model.Band) lipgloss.AdaptiveColor {
	switch b {
	case model.BandLow:
		return ColorBandLowBg
	case model.BandMedium:
		return ColorBandMediumBg
	case model.BandHigh:
		return ColorBandHighBg
	case model.BandCritical:
		return ColorBandCriticalBg
	default:
		return ColorBgSubtle
	}
}

// RenderBandBadge returns a styled 4-character band badge (LOW, MED, HIGH, CRIT).
func RenderBandBadge(b model.Band) string {
	var label string
	switch b {
	case model.BandLow:
		label = "LOW "
	case model.BandMedium:
		label = "MED "
	case model.BandHigh:
		label = "HIGH"
	case model.BandCritical:
		label = "CRIT"
	default:
		label = "????"
	}

	return lipgloss.NewStyle().
		Foreground(BandColor(b)).
		Background(bandBg(b)).
		Bold(b == model.BandCritical).
		Render(label)
}

// RenderBandBar renders a proportional band distribution bar of the given
// width, one colored segment per non-empty band.
func RenderBandBar(counts [model.NumBands]int, width int) string {
	total := 0
	for _, n := range counts {
		total += n
	}
	if total == 0 || width <= 0 {
		return strings.Repeat("░", max(width, 0))
	}

	var sb strings.Builder
	used := 0
	for b := model.BandLow; b < model.NumBands; b++ {
		if counts[b] == 0 {
			continue
		}
		w := counts[b] * width / total
		if w == 0 {
			w = 1
		}
		if used+w > width {
			w = width - used
		}
		if w <= 0 {
			continue
		}
		sb.WriteString(lipgloss.NewStyle().
			Foreground(BandColor(b)).
			Render(strings.Repeat("█", w)))
		used += w
	}
	if used < width {
		sb.WriteString(strings.Repeat(" ", width-used))
	}
	return sb.String()
}

// RenderDivider renders a horizontal divider of the given width.
func RenderDivider(width int) string {
	if width <= 0 {
		return ""
	}
	return lipgloss.NewStyle().
		Foreground(ColorBgHighlight).
		Render(strings.Repeat("─", width))
}
