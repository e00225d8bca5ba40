package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vanderheijden86/lizardview/pkg/model"
)

// chromeHeight is the number of rows taken by everything around the table:
// header, path line, summary, tab line, status bar, and footer.
const chromeHeight = 8

// View implements tea.Model.
func (m Model) View() string {
	if m.width == 0 {
		return "loading..."
	}

	if m.showLegend {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			renderLegend(m.theme, m.width-4))
	}
	if m.showHistory {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			m.renderHistory())
	}

	var sections []string
	sections = append(sections,
		m.renderHeader(),
		m.renderPathLine(),
		m.renderSummary(),
		m.renderTabLine(),
		m.renderBody(),
		m.renderStatusBar(),
		m.renderFooter(),
	)
	return strings.Join(sections, "\n")
}

func (m Model) renderHeader() string {
	title := m.theme.Header.Render("lzv")

	state := ""
	switch m.state {
	case stateAnalyzing:
		state = m.spin.View() + m.theme.MutedText.Render("analyzing "+m.root)
	case stateError:
		state = m.theme.ErrorText.Render("✗ last run failed")
	case stateReady:
		if m.stale {
			state = m.theme.MutedText.Render("⚠ stale")
		}
	}

	left := title + " " + m.theme.SecondaryText.Render("cyclomatic complexity viewer")
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(state)
	if gap < 1 {
		gap = 1
	}
	return left + strings.Repeat(" ", gap) + state
}

func (m Model) renderPathLine() string {
	if m.editingPath {
		return m.pathInput.View()
	}
	return m.theme.SecondaryText.Render("path> ") +
		m.theme.Base.Render(truncatePathLeft(m.root, m.width-8))
}

func (m Model) renderSummary() string {
	s := m.snapshot
	if s == nil {
		return m.theme.MutedText.Render("no analysis yet")
	}

	parts := []string{
		fmt.Sprintf("%d files", len(s.Files)),
		fmt.Sprintf("%d functions", len(s.Functions)),
		fmt.Sprintf("NLOC %d", s.TotalNLOC),
		fmt.Sprintf("avg CCN %s", compactFloat(s.AvgCCN)),
		fmt.Sprintf("p90 %s", compactFloat(s.CCNStats.P90)),
		fmt.Sprintf("max %d", s.CCNStats.Max),
	}
	if s.WarningCount > 0 {
		parts = append(parts, fmt.Sprintf("%d warnings", s.WarningCount))
	}
	if s.ExcludedFiles > 0 {
		parts = append(parts, fmt.Sprintf("%d excluded", s.ExcludedFiles))
	}

	text := m.theme.SecondaryText.Render(strings.Join(parts, "  ·  "))
	bar := RenderBandBar(s.BandTotals, 24)
	counts := m.theme.MutedText.Render(fmt.Sprintf(" L%d M%d H%d C%d",
		s.BandTotals[model.BandLow], s.BandTotals[model.BandMedium],
		s.BandTotals[model.BandHigh], s.BandTotals[model.BandCritical]))

	gap := m.width - lipgloss.Width(text) - lipgloss.Width(bar) - lipgloss.Width(counts)
	if gap < 1 {
		return text
	}
	return text + strings.Repeat(" ", gap) + bar + counts
}

func (m Model) renderTabLine() string {
	active := m.theme.PrimaryBold
	inactive := m.theme.MutedText

	var funcs, files string
	if m.view.Tab == TabFunctions {
		funcs = active.Render("[ Functions ]")
		files = inactive.Render("  Files  ")
	} else {
		funcs = inactive.Render("  Functions  ")
		files = active.Render("[ Files ]")
	}

	right := m.theme.MutedText.Render("sort: " + m.view.Sort.String())
	if m.filtering {
		right = m.filterInput.View()
	} else if m.view.Filter != "" {
		right = m.theme.SecondaryText.Render("filter: "+m.view.Filter) + "  " + right
	}

	left := funcs + files
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return left + strings.Repeat(" ", gap) + right
}

func (m Model) renderBody() string {
	if m.state == stateIdle || (m.state == stateAnalyzing && m.snapshot == nil) {
		return lipgloss.Place(m.width, m.bodyHeight(), lipgloss.Center, lipgloss.Center,
			m.spin.View()+m.theme.MutedText.Render(" waiting for first analysis..."))
	}
	if m.state == stateError && m.snapshot == nil {
		return lipgloss.Place(m.width, m.bodyHeight(), lipgloss.Center, lipgloss.Center,
			m.renderErrorBox())
	}
	if m.snapshot.IsEmpty() && m.view.Filter == "" {
		return lipgloss.Place(m.width, m.bodyHeight(), lipgloss.Center, lipgloss.Center,
			m.theme.MutedText.Render("report contained no functions"))
	}

	var tbl string
	if m.view.Tab == TabFiles {
		tbl = m.fileTable.View()
	} else {
		tbl = m.funcTable.View()
	}

	if rows := len(m.funcTable.Rows()); rows == 0 && m.view.Tab == TabFunctions && m.view.Filter != "" {
		tbl = lipgloss.Place(m.width, m.bodyHeight(), lipgloss.Center, lipgloss.Center,
			m.theme.MutedText.Render("no functions match "+m.view.Filter))
	}

	if !m.showPreview {
		return tbl
	}

	previewBox := PanelStyle.Width(m.width - 2).Render(m.preview.View())
	return tbl + "\n" + previewBox
}

func (m Model) bodyHeight() int {
	h := m.height - chromeHeight
	if h < 3 {
		h = 3
	}
	return h
}

func (m Model) renderErrorBox() string {
	msg := "analysis failed"
	if m.lastErr != nil {
		msg = m.lastErr.Error()
	}
	body := m.theme.ErrorText.Render("Analysis failed") + "\n\n" +
		m.theme.Base.Render(truncate(msg, 400)) + "\n\n" +
		m.theme.MutedText.Render("r retry · o edit path · q quit")
	return m.theme.Renderer.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(m.theme.Critical).
		Padding(1, 2).
		MaxWidth(m.width - 4).
		Render(body)
}

func (m Model) renderHistory() string {
	title := m.theme.PrimaryBold.Render("Recent runs: " + m.root)

	var sb strings.Builder
	sb.WriteString(title)
	sb.WriteString("\n\n")
	if len(m.historyRuns) == 0 {
		sb.WriteString(m.theme.MutedText.Render("no recorded runs for this path"))
	} else {
		sb.WriteString(m.theme.SecondaryText.Render(
			fmt.Sprintf("%-17s %6s %6s %8s %8s %6s", "when", "files", "funcs", "NLOC", "avgCCN", "crit")))
		sb.WriteString("\n")
		for _, r := range m.historyRuns {
			line := fmt.Sprintf("%-17s %6d %6d %8d %8s %6d",
				r.CreatedAt.Local().Format("2006-01-02 15:04"),
				r.Files, r.Functions, r.TotalNLOC, compactFloat(r.AvgCCN), r.CriticalCount)
			if r.CriticalCount > 0 {
				sb.WriteString(m.theme.ErrorText.Render(line))
			} else {
				sb.WriteString(m.theme.Base.Render(line))
			}
			sb.WriteString("\n")
		}
	}
	sb.WriteString("\n")
	sb.WriteString(m.theme.MutedText.Render("h or esc to close"))

	return m.theme.Renderer.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(m.theme.Primary).
		Padding(1, 2).
		MaxWidth(m.width - 4).
		Render(sb.String())
}

func (m Model) renderStatusBar() string {
	if m.status == "" {
		return RenderDivider(m.width)
	}
	style := m.theme.SuccessText
	if m.statusIsError {
		style = m.theme.ErrorText
	}
	return style.Render(truncate(m.status, m.width))
}

func (m Model) renderFooter() string {
	var hints string
	switch {
	case m.filtering:
		hints = "enter apply · esc clear"
	case m.editingPath:
		hints = "enter analyze · esc cancel"
	case m.showPreview:
		hints = "↑/↓ scroll · enter/esc close · q quit"
	default:
		hints = "enter preview · tab tables · s sort · / filter · p pick · c copy · e export · ? help · q quit"
	}
	watch := ""
	if m.watchOn {
		watch = m.theme.SuccessText.Render(" watch ") + "· "
	}
	return watch + m.theme.MutedText.Render(truncate(hints, m.width))
}
