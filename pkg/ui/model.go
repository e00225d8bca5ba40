package ui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vanderheijden86/lizardview/pkg/analyzer"
	"github.com/vanderheijden86/lizardview/pkg/config"
	"github.com/vanderheijden86/lizardview/pkg/debug"
	"github.com/vanderheijden86/lizardview/pkg/export"
	"github.com/vanderheijden86/lizardview/pkg/history"
	"github.com/vanderheijden86/lizardview/pkg/model"
	"github.com/vanderheijden86/lizardview/pkg/parser"
	"github.com/vanderheijden86/lizardview/pkg/watcher"
)

// sessionState is the lifecycle of the viewer around the external analyzer.
type sessionState int

const (
	// stateIdle means no analysis has been requested yet.
	stateIdle sessionState = iota
	// stateAnalyzing means a lizard run is in flight.
	stateAnalyzing
	// stateReady means the current snapshot is displayable.
	stateReady
	// stateError means the last run failed; any previous snapshot stays up.
	stateError
)

func (s sessionState) String() string {
	switch s {
	case stateAnalyzing:
		return "analyzing"
	case stateReady:
		return "ready"
	case stateError:
		return "error"
	default:
		return "idle"
	}
}

// Messages produced by background commands.
type (
	// analysisDoneMsg delivers a finished snapshot. Seq ties it to the
	// request that started it; stale results are discarded.
	analysisDoneMsg struct {
		Seq      uint64
		Snapshot *AnalysisSnapshot
		Elapsed  time.Duration
	}

	// analysisFailedMsg delivers a failed run.
	analysisFailedMsg struct {
		Seq uint64
		Err error
	}

	// watcherChangedMsg fires after a debounced burst of file changes.
	watcherChangedMsg struct{}

	// historyLoadedMsg delivers past runs for the history overlay.
	historyLoadedMsg struct {
		Runs []history.Run
		Err  error
	}

	// statusNoteMsg updates the status bar from a background command.
	statusNoteMsg struct {
		Text    string
		IsError bool
	}
)

// Model is the root Bubble Tea model.
type Model struct {
	theme  Theme
	cfg    config.Config
	runner analyzer.Runner
	store  *history.Store // nil when the state dir is unavailable

	// Session
	state    sessionState
	reqSeq   uint64 // last issued request; only matching results apply
	root     string // path of the last requested analysis
	snapshot *AnalysisSnapshot
	stale    bool // snapshot predates the last failed or in-flight run
	lastErr  error

	// Presentation
	view        ViewState
	funcTable   table.Model
	fileTable   table.Model
	filterInput textinput.Model
	pathInput   textinput.Model
	preview     viewport.Model
	spin        spinner.Model

	// Modes
	filtering   bool
	editingPath bool
	showPreview bool
	showLegend  bool
	showHistory bool
	historyRuns []history.Run

	// Watch
	watch   *watcher.Watcher
	watchOn bool

	status        string
	statusIsError bool

	width  int
	height int
}

// NewModel builds the root model. The first analysis of root starts from
// Init.
func NewModel(root string, cfg config.Config) Model {
	theme := DefaultTheme(lipgloss.DefaultRenderer())

	filter := textinput.New()
	filter.Placeholder = "filter by name or path"
	filter.Prompt = "/"
	filter.CharLimit = 128

	path := textinput.New()
	path.Placeholder = "path to analyze"
	path.Prompt = "path> "
	path.SetValue(root)

	spin := spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(theme.PrimaryBold),
	)

	m := Model{
		theme:  theme,
		cfg:    cfg,
		runner: analyzer.Runner{Binary: cfg.Analyzer.Binary, ExtraArgs: cfg.Analyzer.ExtraArgs},
		root:   root,

		funcTable:   newFunctionTable(theme),
		fileTable:   newFileTable(theme),
		filterInput: filter,
		pathInput:   path,
		preview:     viewport.New(0, 0),
		spin:        spin,

		watchOn: cfg.AutoRefresh,
	}

	if statePath := history.DefaultPath(config.StateDir()); statePath != "" {
		if store, err := history.Open(statePath); err == nil {
			m.store = store
		} else {
			debug.Log("history store unavailable: %v", err)
		}
	}

	return m
}

// Close releases resources owned by the model. Call after the program exits.
func (m *Model) Close() {
	if m.watch != nil {
		m.watch.Stop()
	}
	if m.store != nil {
		m.store.Close()
	}
}

// Init starts the first analysis.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spin.Tick, func() tea.Msg { return startAnalysisMsg{} })
}

// startAnalysisMsg kicks off the initial run from Init, where the model is
// passed by value and cannot bump its own sequence counter.
type startAnalysisMsg struct{}

// startAnalysis issues a new request: bumps the sequence so any in-flight
// result becomes stale, flips to Analyzing, and returns the run command.
// Moving to a different path resets the view state; the filter belongs to
// the folder it was typed against.
func (m *Model) startAnalysis(path string) tea.Cmd {
	m.reqSeq++
	seq := m.reqSeq
	if path != m.root {
		m.view.Filter = ""
		m.filterInput.SetValue("")
	}
	m.root = path
	m.state = stateAnalyzing
	if m.snapshot != nil {
		m.stale = true
	}
	m.status = ""
	m.statusIsError = false

	runner := m.runner
	excluded := m.cfg.Excluded
	return tea.Batch(m.spin.Tick, func() tea.Msg {
		started := time.Now()
		raw, err := runner.Run(context.Background(), path)
		if err != nil {
			return analysisFailedMsg{Seq: seq, Err: err}
		}
		result := parser.Parse(raw)
		snap := NewSnapshotBuilder(result).
			WithRoot(path).
			WithExclude(excluded).
			Build()
		return analysisDoneMsg{Seq: seq, Snapshot: snap, Elapsed: time.Since(started)}
	})
}

// applySnapshot swaps in a fresh snapshot. Selection state belongs to the
// old snapshot's row order, so it is cleared rather than carried over.
func (m *Model) applySnapshot(snap *AnalysisSnapshot) {
	m.snapshot = snap
	m.stale = false
	m.lastErr = nil
	m.state = stateReady
	m.showPreview = false
	m.funcTable.SetCursor(0)
	m.fileTable.SetCursor(0)
	m.refreshTables()
	m.resize()
}

// refreshTables rebuilds table rows from the snapshot through the current
// view state.
func (m *Model) refreshTables() {
	m.funcTable.SetRows(functionRows(m.view.VisibleFunctions(m.snapshot)))
	m.fileTable.SetRows(fileRows(m.view.VisibleFiles(m.snapshot)))
}

// selectedFunction returns the function under the cursor, if any.
func (m *Model) selectedFunction() (model.FunctionRecord, bool) {
	rows := m.view.VisibleFunctions(m.snapshot)
	idx := m.funcTable.Cursor()
	if idx < 0 || idx >= len(rows) {
		return model.FunctionRecord{}, false
	}
	return rows[idx], true
}

// waitForChangeCmd blocks on the watcher's channel and converts the signal
// into a message. Re-issued after every delivery.
func waitForChangeCmd(w *watcher.Watcher) tea.Cmd {
	if w == nil {
		return nil
	}
	ch := w.Changed()
	return func() tea.Msg {
		<-ch
		return watcherChangedMsg{}
	}
}

// ensureWatcher (re)creates the watcher when auto-refresh is on and the
// analyzed root moved to a different directory.
func (m *Model) ensureWatcher() tea.Cmd {
	if !m.watchOn {
		return nil
	}

	dir := m.root
	if info, err := os.Stat(dir); err == nil && !info.IsDir() {
		dir = filepath.Dir(dir)
	}

	if m.watch != nil && m.watch.Root() == dir {
		return nil
	}
	if m.watch != nil {
		m.watch.Stop()
		m.watch = nil
	}

	w, err := watcher.New(dir,
		watcher.WithIgnore(m.cfg.Excluded),
	)
	if err != nil {
		m.setStatus(fmt.Sprintf("watch unavailable: %v", err), true)
		m.watchOn = false
		return nil
	}
	if err := w.Start(); err != nil {
		m.setStatus(fmt.Sprintf("watch unavailable: %v", err), true)
		m.watchOn = false
		return nil
	}
	m.watch = w
	return waitForChangeCmd(w)
}

// setSort applies a sort order and resets the cursor, which indexed the old
// row order.
func (m *Model) setSort(k SortKey) {
	m.view.Sort = k
	m.funcTable.SetCursor(0)
	m.fileTable.SetCursor(0)
	m.refreshTables()
	m.setStatus("sorted by "+m.view.Sort.String(), false)
}

func (m *Model) setStatus(text string, isError bool) {
	m.status = text
	m.statusIsError = isError
}

// recordRunCmd persists a summary row for the finished analysis.
func (m *Model) recordRunCmd(snap *AnalysisSnapshot) tea.Cmd {
	if m.store == nil || snap == nil {
		return nil
	}
	store := m.store
	return func() tea.Msg {
		_, err := store.Record(history.Run{
			Root:          snap.Root,
			Files:         len(snap.Files),
			Functions:     len(snap.Functions),
			TotalNLOC:     snap.TotalNLOC,
			AvgCCN:        snap.AvgCCN,
			CriticalCount: snap.CriticalCount(),
			WarningCount:  snap.WarningCount,
		})
		if err != nil {
			debug.Log("history record failed: %v", err)
		}
		return nil
	}
}

// loadHistoryCmd fetches recent runs for the history overlay.
func (m *Model) loadHistoryCmd() tea.Cmd {
	if m.store == nil {
		return func() tea.Msg {
			return historyLoadedMsg{Err: fmt.Errorf("history store unavailable")}
		}
	}
	store := m.store
	root := m.root
	return func() tea.Msg {
		runs, err := store.Recent(root, 15)
		return historyLoadedMsg{Runs: runs, Err: err}
	}
}

// exportCmd writes the JSON report next to the analyzed root.
func (m *Model) exportCmd() tea.Cmd {
	snap := m.snapshot
	if snap == nil {
		return func() tea.Msg {
			return statusNoteMsg{Text: "nothing to export yet", IsError: true}
		}
	}
	return func() tea.Msg {
		diags := make([]string, 0, len(snap.Diagnostics))
		for _, d := range snap.Diagnostics {
			diags = append(diags, fmt.Sprintf("line %d: %s", d.LineNo, d.Reason))
		}
		report := export.Build(snap.Root, snap.Files, snap.Functions,
			snap.TotalNLOC, snap.AvgCCN, snap.WarningCount, diags)

		dir := snap.Root
		if info, err := os.Stat(dir); err != nil || !info.IsDir() {
			dir = filepath.Dir(dir)
		}
		path := filepath.Join(dir, "lzv-report.json")
		if err := export.WriteFile(path, report); err != nil {
			return statusNoteMsg{Text: err.Error(), IsError: true}
		}
		return statusNoteMsg{Text: "report written to " + path}
	}
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil

	case startAnalysisMsg:
		cmd := m.startAnalysis(m.root)
		return m, tea.Batch(cmd, m.ensureWatcher())

	case analysisDoneMsg:
		if msg.Seq != m.reqSeq {
			debug.Log("dropping stale result seq=%d current=%d", msg.Seq, m.reqSeq)
			return m, nil
		}
		m.applySnapshot(msg.Snapshot)
		note := fmt.Sprintf("analyzed %d functions in %d files (%.1fs)",
			len(msg.Snapshot.Functions), len(msg.Snapshot.Files), msg.Elapsed.Seconds())
		if n := len(msg.Snapshot.Diagnostics); n > 0 {
			note += fmt.Sprintf(", %d rows skipped", n)
		}
		m.setStatus(note, false)
		return m, m.recordRunCmd(msg.Snapshot)

	case analysisFailedMsg:
		if msg.Seq != m.reqSeq {
			return m, nil
		}
		m.state = stateError
		m.lastErr = msg.Err
		m.setStatus(msg.Err.Error(), true)
		return m, nil

	case watcherChangedMsg:
		var cmds []tea.Cmd
		if m.watchOn {
			cmds = append(cmds, m.startAnalysis(m.root))
		}
		cmds = append(cmds, waitForChangeCmd(m.watch))
		return m, tea.Batch(cmds...)

	case pickerResultMsg:
		if msg.Err != nil {
			m.setStatus(msg.Err.Error(), true)
			return m, nil
		}
		if msg.Path == "" {
			return m, nil // cancelled
		}
		m.pathInput.SetValue(msg.Path)
		cmd := m.startAnalysis(msg.Path)
		return m, tea.Batch(cmd, m.ensureWatcher())

	case historyLoadedMsg:
		if msg.Err != nil {
			m.setStatus(msg.Err.Error(), true)
			return m, nil
		}
		m.historyRuns = msg.Runs
		m.showHistory = true
		return m, nil

	case statusNoteMsg:
		m.setStatus(msg.Text, msg.IsError)
		return m, nil

	case spinner.TickMsg:
		if m.state != stateAnalyzing {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.updateKeys(msg)
	}

	return m, nil
}

func (m Model) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Quit stays live in every state, including mid-analysis.
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}

	// Text-entry modes capture printable keys.
	if m.filtering {
		switch msg.Type {
		case tea.KeyEnter, tea.KeyEsc:
			m.filtering = false
			m.filterInput.Blur()
			if msg.Type == tea.KeyEsc {
				m.filterInput.SetValue("")
				m.view.Filter = ""
				m.refreshTables()
			}
			return m, nil
		}
		var cmd tea.Cmd
		m.filterInput, cmd = m.filterInput.Update(msg)
		m.view.Filter = m.filterInput.Value()
		m.funcTable.SetCursor(0)
		m.fileTable.SetCursor(0)
		m.refreshTables()
		return m, cmd
	}
	if m.editingPath {
		switch msg.Type {
		case tea.KeyEnter:
			m.editingPath = false
			m.pathInput.Blur()
			path := m.pathInput.Value()
			if path == "" {
				return m, nil
			}
			cmd := m.startAnalysis(path)
			return m, tea.Batch(cmd, m.ensureWatcher())
		case tea.KeyEsc:
			m.editingPath = false
			m.pathInput.Blur()
			m.pathInput.SetValue(m.root)
			return m, nil
		}
		var cmd tea.Cmd
		m.pathInput, cmd = m.pathInput.Update(msg)
		return m, cmd
	}

	// Overlays swallow everything except their dismiss keys.
	if m.showLegend {
		switch msg.String() {
		case "?", "esc", "q":
			m.showLegend = false
		}
		return m, nil
	}
	if m.showHistory {
		switch msg.String() {
		case "h", "esc", "q":
			m.showHistory = false
		}
		return m, nil
	}

	switch msg.String() {
	case "q":
		return m, tea.Quit

	case "?":
		m.showLegend = true
		return m, nil

	case "tab":
		if m.view.Tab == TabFunctions {
			m.view.Tab = TabFiles
		} else {
			m.view.Tab = TabFunctions
		}
		m.showPreview = false
		m.resize()
		return m, nil

	case "s":
		m.setSort(m.view.Sort.Next())
		return m, nil

	case "1":
		m.setSort(SortByCCN)
		return m, nil

	case "2":
		m.setSort(SortByNLOC)
		return m, nil

	case "3":
		m.setSort(SortByName)
		return m, nil

	case "/":
		m.filtering = true
		m.filterInput.Focus()
		return m, textinput.Blink

	case "o":
		m.editingPath = true
		m.pathInput.Focus()
		return m, textinput.Blink

	case "p":
		return m, pickPathCmd(m.root, pickFilesAndDirs, m.cfg.Excluded)

	case "P":
		return m, pickPathCmd(m.root, pickDirsOnly, m.cfg.Excluded)

	case "r":
		cmd := m.startAnalysis(m.root)
		return m, cmd

	case "w":
		m.watchOn = !m.watchOn
		if !m.watchOn {
			if m.watch != nil {
				m.watch.Stop()
				m.watch = nil
			}
			m.setStatus("auto-refresh off", false)
			return m, nil
		}
		m.setStatus("auto-refresh on", false)
		return m, m.ensureWatcher()

	case "c":
		snap := m.snapshot
		return m, func() tea.Msg {
			n, err := CopyCritical(snap)
			if err != nil {
				return statusNoteMsg{Text: err.Error(), IsError: true}
			}
			if n == 0 {
				return statusNoteMsg{Text: "no critical functions to copy"}
			}
			return statusNoteMsg{Text: fmt.Sprintf("copied %d critical functions", n)}
		}

	case "e":
		return m, m.exportCmd()

	case "h":
		return m, m.loadHistoryCmd()

	case "enter":
		if m.view.Tab != TabFunctions {
			return m, nil
		}
		if m.showPreview {
			m.showPreview = false
			m.resize()
			return m, nil
		}
		fn, ok := m.selectedFunction()
		if !ok {
			return m, nil
		}
		m.showPreview = true
		m.resize()
		m.preview.SetContent(loadPreview(m.root, fn))
		m.preview.GotoTop()
		return m, nil

	case "esc":
		if m.showPreview {
			m.showPreview = false
			m.resize()
			return m, nil
		}
		if m.view.Filter != "" {
			m.view.Filter = ""
			m.filterInput.SetValue("")
			m.refreshTables()
			return m, nil
		}
		return m, nil
	}

	// Everything else goes to the active table (or preview scroll).
	var cmd tea.Cmd
	if m.showPreview {
		m.preview, cmd = m.preview.Update(msg)
		return m, cmd
	}
	if m.view.Tab == TabFiles {
		m.fileTable, cmd = m.fileTable.Update(msg)
	} else {
		m.funcTable, cmd = m.funcTable.Update(msg)
	}
	return m, cmd
}
