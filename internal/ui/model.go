package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/faizmokh/jam/internal/clock"
	"github.com/faizmokh/jam/internal/ledger"
	"github.com/faizmokh/jam/internal/timer"
	"github.com/faizmokh/jam/internal/tracker"
)

const (
	idleLabel = "⏱ Start timer (s)"
	stopLabel = "Stop (x)"
)

// Model owns Bubble Tea state for the tracker TUI.
type Model struct {
	ctx     context.Context
	tracker *tracker.Tracker
	feed    *Feed
	clock   clock.Clock

	keys     keyMap
	help     help.Model
	viewport viewport.Model

	state        timer.State
	startOnInit  bool
	mode         mode
	form         *huh.Form
	input        *formInput
	panel        panel
	reportDay    time.Time
	panelContent string

	statusLine string
	errorLine  string
	width      int
	height     int
}

type mode uint8

const (
	modeNormal mode = iota
	modeDescription
	modeManual
)

type panel uint8

const (
	panelNone panel = iota
	panelReport
	panelEntries
)

type stateMsg timer.State

type startedMsg struct {
	started bool
	err     error
}

type recordedMsg struct {
	entry ledger.TimeEntry
	err   error
}

type reportLoadedMsg struct {
	day    time.Time
	report ledger.Report
	err    error
}

type entriesLoadedMsg struct {
	entries []ledger.TimeEntry
	err     error
}

// Option customises a Model.
type Option func(*Model)

// WithClock sets the clock "today" is read from.
func WithClock(c clock.Clock) Option {
	return func(m *Model) {
		m.clock = c
	}
}

// WithStartOnInit starts a session as soon as the program runs.
func WithStartOnInit() Option {
	return func(m *Model) {
		m.startOnInit = true
	}
}

// NewModel seeds a Bubble Tea model with required collaborators. feed must be
// the observer the tracker's timer reports to; it may be nil in tests.
func NewModel(ctx context.Context, tr *tracker.Tracker, feed *Feed, opts ...Option) Model {
	m := Model{
		ctx:      ctx,
		tracker:  tr,
		feed:     feed,
		clock:    clock.Real(),
		keys:     newKeyMap(),
		help:     help.New(),
		viewport: viewport.New(0, 0),
		state:    tr.State(),
		input:    &formInput{},
	}
	for _, opt := range opts {
		opt(&m)
	}
	m.reportDay = m.today()
	return m
}

// Init subscribes to timer updates and optionally starts a session.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.listenCmd()}
	if m.startOnInit {
		cmds = append(cmds, m.startCmd())
	}
	return tea.Batch(cmds...)
}

// Update wires TUI state transitions from user input and async commands.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case stateMsg:
		if next := timer.State(msg); next.Seq == 0 || next.Seq > m.state.Seq {
			m.state = next
		}
		return m, m.listenCmd()
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.resizeViewport()
		return m, nil
	case startedMsg:
		return m.handleStarted(msg)
	case recordedMsg:
		return m.handleRecorded(msg)
	case reportLoadedMsg:
		return m.handleReportLoaded(msg)
	case entriesLoadedMsg:
		return m.handleEntriesLoaded(msg)
	}

	if m.mode != modeNormal {
		return m.updateForm(msg)
	}
	if msg, ok := msg.(tea.KeyMsg); ok {
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Start):
		m.errorLine = ""
		return m, m.startCmd()
	case key.Matches(msg, m.keys.Stop):
		return m.beginStop()
	case key.Matches(msg, m.keys.Add):
		return m.beginManual()
	case key.Matches(msg, m.keys.Report):
		return m.openReport(m.today())
	case key.Matches(msg, m.keys.Entries):
		m.panel = panelEntries
		m.statusLine = "Loading entries..."
		return m, m.loadEntriesCmd()
	case key.Matches(msg, m.keys.Close):
		if m.panel != panelNone {
			m.panel = panelNone
			m.panelContent = ""
			m.statusLine = ""
		}
		return m, nil
	}

	if m.panel == panelReport {
		switch {
		case key.Matches(msg, m.keys.Prev):
			return m.openReport(m.reportDay.AddDate(0, 0, -1))
		case key.Matches(msg, m.keys.Next):
			return m.openReport(m.reportDay.AddDate(0, 0, 1))
		}
	}
	if m.panel != panelNone {
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) beginStop() (tea.Model, tea.Cmd) {
	if _, ok := m.tracker.Finalize(m.ctx); !ok {
		m.statusLine = "No session running."
		return m, nil
	}
	m.state = m.tracker.State()
	m.mode = modeDescription
	m.input.description = ""
	m.form = descriptionForm(m.input)
	m.statusLine = ""
	m.errorLine = ""
	return m, m.form.Init()
}

func (m Model) beginManual() (tea.Model, tea.Cmd) {
	m.mode = modeManual
	m.input.hours = ""
	m.input.description = ""
	m.form = manualEntryForm(m.input)
	m.statusLine = ""
	m.errorLine = ""
	return m, m.form.Init()
}

func (m Model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		return m.submitForm()
	case huh.StateAborted:
		return m.abortForm()
	}
	return m, cmd
}

func (m Model) submitForm() (tea.Model, tea.Cmd) {
	switch m.mode {
	case modeDescription:
		return m.finishStop(m.input.description)
	case modeManual:
		return m.finishManual(m.input.hours, m.input.description)
	}
	return m, nil
}

func (m Model) abortForm() (tea.Model, tea.Cmd) {
	switch m.mode {
	case modeDescription:
		// The session is already finalized; keep its time.
		return m.finishStop("")
	case modeManual:
		m.mode = modeNormal
		m.form = nil
		m.statusLine = "Cancelled."
		return m, nil
	}
	return m, nil
}

func (m Model) finishStop(description string) (tea.Model, tea.Cmd) {
	m.mode = modeNormal
	m.form = nil
	m.statusLine = "Saving entry..."
	return m, m.commitCmd(description)
}

func (m Model) finishManual(hours, description string) (tea.Model, tea.Cmd) {
	m.mode = modeNormal
	m.form = nil
	m.statusLine = "Saving entry..."
	return m, m.recordCmd(hours, description)
}

func (m Model) openReport(day time.Time) (tea.Model, tea.Cmd) {
	m.panel = panelReport
	m.reportDay = day
	m.statusLine = fmt.Sprintf("Loading %s...", day.Format("2006-01-02"))
	m.errorLine = ""
	return m, m.loadReportCmd(day)
}

func (m Model) handleStarted(msg startedMsg) (tea.Model, tea.Cmd) {
	m.state = m.tracker.State()
	switch {
	case msg.err != nil:
		m.errorLine = fmt.Sprintf("Start failed: %v", msg.err)
		m.statusLine = ""
	case !msg.started:
		m.statusLine = "Timer already running."
	default:
		m.statusLine = ""
		m.errorLine = ""
	}
	return m, nil
}

func (m Model) handleRecorded(msg recordedMsg) (tea.Model, tea.Cmd) {
	m.state = m.tracker.State()
	if msg.err != nil {
		if errors.Is(msg.err, ledger.ErrStorageUnavailable) {
			m.statusLine = fmt.Sprintf("Recorded %s hours (not saved).", ledger.FormatHours(msg.entry.Hours()))
			m.errorLine = msg.err.Error()
		} else {
			m.statusLine = ""
			m.errorLine = msg.err.Error()
			return m, nil
		}
	} else {
		m.statusLine = fmt.Sprintf("Recorded %s hours: %s", ledger.FormatHours(msg.entry.Hours()), msg.entry.Description)
		m.errorLine = ""
	}

	switch m.panel {
	case panelReport:
		return m, m.loadReportCmd(m.reportDay)
	case panelEntries:
		return m, m.loadEntriesCmd()
	}
	return m, nil
}

func (m Model) handleReportLoaded(msg reportLoadedMsg) (tea.Model, tea.Cmd) {
	// Ignore stale results for days we no longer display.
	if m.panel != panelReport || !sameDay(m.reportDay, msg.day) {
		return m, nil
	}
	if msg.err != nil {
		m.errorLine = fmt.Sprintf("Failed to load %s: %v", msg.day.Format("2006-01-02"), msg.err)
		m.statusLine = ""
		return m, nil
	}
	m.setPanelContent(msg.report.Text())
	m.statusLine = fmt.Sprintf("%d entr%s on %s.", len(msg.report.Entries), plural(len(msg.report.Entries)), msg.day.Format("2006-01-02"))
	return m, nil
}

func (m Model) handleEntriesLoaded(msg entriesLoadedMsg) (tea.Model, tea.Cmd) {
	if m.panel != panelEntries {
		return m, nil
	}
	if msg.err != nil {
		m.errorLine = fmt.Sprintf("Failed to load entries: %v", msg.err)
		m.statusLine = ""
		return m, nil
	}
	m.setPanelContent(ledger.FormatEntries(msg.entries, m.tracker.Location()))
	m.statusLine = fmt.Sprintf("Loaded %d entr%s.", len(msg.entries), plural(len(msg.entries)))
	return m, nil
}

func (m *Model) setPanelContent(content string) {
	m.panelContent = content
	m.viewport.SetContent(content)
	m.viewport.GotoTop()
}

func (m *Model) resizeViewport() {
	w := m.width - panelStyle.GetHorizontalFrameSize()
	h := m.height - panelStyle.GetVerticalFrameSize() - 6
	if w < 0 {
		w = 0
	}
	if h < 3 {
		h = 3
	}
	m.viewport.Width = w
	m.viewport.Height = h
}

func (m Model) listenCmd() tea.Cmd {
	if m.feed == nil {
		return nil
	}
	ch := m.feed.C()
	return func() tea.Msg {
		s, ok := <-ch
		if !ok {
			return nil
		}
		return stateMsg(s)
	}
}

func (m Model) startCmd() tea.Cmd {
	tr := m.tracker
	ctx := m.ctx
	return func() tea.Msg {
		started, err := tr.Start(ctx)
		return startedMsg{started: started, err: err}
	}
}

func (m Model) commitCmd(description string) tea.Cmd {
	tr := m.tracker
	ctx := m.ctx
	return func() tea.Msg {
		entry, err := tr.Commit(ctx, description)
		return recordedMsg{entry: entry, err: err}
	}
}

func (m Model) recordCmd(hours, description string) tea.Cmd {
	tr := m.tracker
	ctx := m.ctx
	return func() tea.Msg {
		entry, err := tr.Record(ctx, hours, description)
		return recordedMsg{entry: entry, err: err}
	}
}

func (m Model) loadReportCmd(day time.Time) tea.Cmd {
	tr := m.tracker
	ctx := m.ctx
	return func() tea.Msg {
		report, err := tr.DailyReport(ctx, day)
		return reportLoadedMsg{day: day, report: report, err: err}
	}
}

func (m Model) loadEntriesCmd() tea.Cmd {
	tr := m.tracker
	ctx := m.ctx
	return func() tea.Msg {
		entries, err := tr.AllEntries(ctx)
		return entriesLoadedMsg{entries: entries, err: err}
	}
}

// StatusLine renders the one-line timer display.
func StatusLine(s timer.State) string {
	if !s.Running {
		return idleLabel
	}
	return fmt.Sprintf("■ %s  %s", s.Display(), stopLabel)
}

// View renders the frame.
func (m Model) View() string {
	var b strings.Builder

	line := StatusLine(m.state)
	if m.state.Running {
		b.WriteString(runningStyle.Render(line))
	} else {
		b.WriteString(idleStyle.Render(line))
	}
	b.WriteString("\n\n")

	if m.mode != modeNormal && m.form != nil {
		b.WriteString(m.form.View())
		b.WriteByte('\n')
	} else if m.panel != panelNone {
		b.WriteString(panelStyle.Render(m.panelTitle() + "\n\n" + m.viewport.View()))
		b.WriteByte('\n')
	}

	if m.errorLine != "" {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render("! " + m.errorLine))
		b.WriteByte('\n')
	} else if m.statusLine != "" {
		b.WriteString("\n")
		b.WriteString(statusStyle.Render(m.statusLine))
		b.WriteByte('\n')
	}

	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	b.WriteByte('\n')

	return b.String()
}

func (m Model) panelTitle() string {
	switch m.panel {
	case panelReport:
		return panelTitleStyle.Render(m.reportDay.Format("Monday, 02 January 2006"))
	case panelEntries:
		return panelTitleStyle.Render("All entries")
	}
	return ""
}

func (m Model) today() time.Time {
	now := m.clock.Now().In(m.tracker.Location())
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.YearDay() == b.YearDay()
}

func plural(count int) string {
	if count == 1 {
		return "y"
	}
	return "ies"
}
