package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/table"

	"github.com/vanderheijden86/lizardview/pkg/model"
)

const (
	colWidthCCN  = 5
	colWidthNLOC = 6
	colWidthBand = 8
	colWidthLine = 11
)

func tableStyles(theme Theme) table.Styles {
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderForeground(theme.Border).
		Foreground(theme.Primary).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(theme.Primary).
		Background(theme.Highlight).
		Bold(true)
	return s
}

func newFunctionTable(theme Theme) table.Model {
	t := table.New(
		table.WithColumns(functionColumns(80)),
		table.WithFocused(true),
		table.WithHeight(10),
	)
	t.SetStyles(tableStyles(theme))
	return t
}

func newFileTable(theme Theme) table.Model {
	t := table.New(
		table.WithColumns(fileColumns(80)),
		table.WithFocused(true),
		table.WithHeight(10),
	)
	t.SetStyles(tableStyles(theme))
	return t
}

func functionColumns(width int) []table.Column {
	fixed := colWidthCCN + colWidthNLOC + colWidthBand + colWidthLine
	flex := width - fixed - 10
	if flex < 20 {
		flex = 20
	}
	nameW := flex * 2 / 5
	pathW := flex - nameW
	return []table.Column{
		{Title: "CCN", Width: colWidthCCN},
		{Title: "NLOC", Width: colWidthNLOC},
		{Title: "Band", Width: colWidthBand},
		{Title: "Function", Width: nameW},
		{Title: "File", Width: pathW},
		{Title: "Lines", Width: colWidthLine},
	}
}

func fileColumns(width int) []table.Column {
	fixed := colWidthNLOC + 8 + 7 + 7 + 6
	flex := width - fixed - 10
	if flex < 20 {
		flex = 20
	}
	return []table.Column{
		{Title: "NLOC", Width: colWidthNLOC},
		{Title: "AvgNLOC", Width: 8},
		{Title: "AvgCCN", Width: 7},
		{Title: "MaxCCN", Width: 7},
		{Title: "Funcs", Width: 6},
		{Title: "File", Width: flex},
	}
}

func functionRows(funcs []model.FunctionRecord) []table.Row {
	rows := make([]table.Row, len(funcs))
	for i, fn := range funcs {
		rows[i] = table.Row{
			fmt.Sprintf("%d", fn.CCN),
			fmt.Sprintf("%d", fn.NLOC),
			fn.Band().String(),
			fn.Name,
			fn.Path,
			formatLineRange(fn.StartLine, fn.EndLine),
		}
	}
	return rows
}

func fileRows(files []model.FileRecord) []table.Row {
	rows := make([]table.Row, len(files))
	for i, f := range files {
		rows[i] = table.Row{
			fmt.Sprintf("%d", f.NLOC),
			compactFloat(f.AvgNLOC),
			compactFloat(f.AverageCCN()),
			fmt.Sprintf("%d", f.MaxCCN()),
			fmt.Sprintf("%d", f.FunctionCount()),
			f.Path,
		}
	}
	return rows
}

// resize relayouts the tables and preview for the current terminal size.
func (m *Model) resize() {
	if m.width <= 0 || m.height <= 0 {
		return
	}

	tableHeight := m.height - chromeHeight
	if m.showPreview {
		tableHeight = tableHeight / 2
	}
	if tableHeight < 3 {
		tableHeight = 3
	}

	m.funcTable.SetColumns(functionColumns(m.width))
	m.funcTable.SetWidth(m.width)
	m.funcTable.SetHeight(tableHeight)

	m.fileTable.SetColumns(fileColumns(m.width))
	m.fileTable.SetWidth(m.width)
	m.fileTable.SetHeight(tableHeight)

	m.preview.Width = m.width - 2
	m.preview.Height = m.height - chromeHeight - tableHeight - 2
	if m.preview.Height < 3 {
		m.preview.Height = 3
	}

	m.filterInput.Width = m.width - 4
	m.pathInput.Width = m.width - 10
}
