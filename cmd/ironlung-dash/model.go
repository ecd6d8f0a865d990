package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"ironlung/pkg/assistant"
	"ironlung/pkg/dashboard"
	"ironlung/pkg/dopamine"
	"ironlung/pkg/palette"
)

// tickInterval drives the session timer, time warnings and stats refresh.
const tickInterval = 15 * time.Second

// maxNotices is how many recent notices the dashboard shows.
const maxNotices = 4

// tickMsg is sent by Bubble Tea on every tick interval.
type tickMsg time.Time

// statsMsg carries a refreshed dashboard snapshot.
type statsMsg struct {
	data dashboard.Data
	err  error
}

func tickCmd() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// ViewType represents the dashboard views.
type ViewType int

const (
	// DashboardView shows today's stats, streak and session.
	DashboardView ViewType = iota
	// PaletteView shows the command palette overlay.
	PaletteView
	// HelpView shows key bindings for the previous view.
	HelpView
)

// noticeLog keeps the most recent notices. It is shared by pointer so the
// assistant's observer and every copy of Model see the same entries.
type noticeLog struct {
	items []assistant.Notice
}

func (l *noticeLog) add(n assistant.Notice) {
	l.items = append(l.items, n)
	if len(l.items) > maxNotices {
		l.items = l.items[len(l.items)-maxNotices:]
	}
}

// Deps are the collaborators of the dashboard model.
type Deps struct {
	Assistant *assistant.Assistant
	// Stats answers activity counts. Nil shows the streak only.
	Stats *dashboard.Service
	// Watcher reports snapshot changes from other processes. Optional.
	Watcher *fsnotify.Watcher
	// CardsTotal is the size of today's queue, 0 if unknown.
	CardsTotal int
	Logger     *zap.Logger
	Now        func() time.Time
}

// Model is the Bubble Tea model for the ironlung dashboard.
type Model struct {
	asst       *assistant.Assistant
	stats      *dashboard.Service
	watcher    *fsnotify.Watcher
	cardsTotal int
	limit      int
	logger     *zap.Logger
	now        func() time.Time

	activeView   ViewType
	previousView ViewType
	data         dashboard.Data
	notices      *noticeLog
	lastSnapshot time.Time
	err          error

	// Palette overlay state
	input    textinput.Model
	results  []palette.Result
	selected int

	width  int
	height int

	styles Styles
}

// newModel creates a Model with DashboardView active and subscribes to the
// assistant's notices.
func newModel(deps Deps) Model {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	now := deps.Now
	if now == nil {
		now = time.Now
	}

	input := textinput.New()
	input.Prompt = "> "
	input.Placeholder = "Type a command"
	input.CharLimit = 64

	m := Model{
		asst:         deps.Assistant,
		stats:        deps.Stats,
		watcher:      deps.Watcher,
		cardsTotal:   deps.CardsTotal,
		limit:        deps.Assistant.Config().Palette.Limit,
		logger:       logger,
		now:          now,
		activeView:   DashboardView,
		notices:      &noticeLog{},
		lastSnapshot: now(),
		input:        input,
		styles:       NewStyles(DefaultTheme()),
	}
	m.asst.OnNotice(m.notices.add)
	m.data = dashboard.Summarize(nil, m.asst.Dopamine.Streak(), m.cardsTotal)
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.fetchStatsCmd(), tickCmd(), waitForStateChange(m.watcher, m.logger))
}

// fetchStatsCmd queries the activity log off the UI goroutine. The streak is
// read here, on the UI goroutine, because the assistant is not safe for
// concurrent use.
func (m Model) fetchStatsCmd() tea.Cmd {
	streak := m.asst.Dopamine.Streak()
	if m.stats == nil {
		data := dashboard.Summarize(nil, streak, m.cardsTotal)
		return func() tea.Msg { return statsMsg{data: data} }
	}
	stats, total := m.stats, m.cardsTotal
	return func() tea.Msg {
		data, err := stats.Today(context.Background(), streak, total)
		return statsMsg{data: data, err: err}
	}
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case statsMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.data = msg.data

	case stateChangeMsg:
		m.asst.Reload()
		if m.asst.Session.IsActive() {
			m.asst.Session.Refresh()
		} else {
			m.asst.Recover()
		}
		return m, tea.Batch(m.fetchStatsCmd(), waitForStateChange(m.watcher, m.logger))

	case tickMsg:
		m = m.onTick()
		return m, tea.Batch(m.fetchStatsCmd(), tickCmd())
	}

	return m, nil
}

// onTick fires pending time warnings and refreshes the recovery snapshot on
// the configured interval.
func (m Model) onTick() Model {
	_, fired := m.asst.CheckTime()
	if fired || m.now().Sub(m.lastSnapshot) >= m.asst.Config().Orchestrator.SnapshotInterval() {
		if err := m.asst.Snapshot(); err != nil {
			m.err = err
		}
		m.lastSnapshot = m.now()
	}
	return m
}

// handleKeyPress processes keyboard input and returns updated model with optional command.
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if key == "ctrl+c" {
		return m.quit()
	}
	if key == "q" && m.activeView != PaletteView {
		return m.quit()
	}

	switch m.activeView {
	case PaletteView:
		return m.handlePaletteKeys(key, msg)
	case HelpView:
		return m.handleHelpKeys(key)
	default:
		return m.handleDashboardKeys(key)
	}
}

// quit snapshots the session so the next start can recover it.
func (m Model) quit() (tea.Model, tea.Cmd) {
	if err := m.asst.Snapshot(); err != nil {
		m.logger.Warn("snapshot on quit failed", zap.Error(err))
	}
	return m, tea.Quit
}

// winKeys maps single keys to the win they record.
var winKeys = map[string]dopamine.WinType{
	"c": dopamine.CallCompleted,
	"e": dopamine.EmailSent,
	"d": dopamine.DemoScheduled,
	"n": dopamine.CardProcessed,
	"o": dopamine.FollowUpSet,
}

// handleDashboardKeys processes keyboard input in DashboardView.
func (m Model) handleDashboardKeys(key string) (tea.Model, tea.Cmd) {
	if wt, ok := winKeys[key]; ok {
		_, err := m.asst.RecordWin(context.Background(), wt, 0)
		m.err = err
		return m, m.fetchStatsCmd()
	}

	switch key {
	case "s":
		m.err = m.asst.Skip(context.Background(), 0)
		return m, m.fetchStatsCmd()
	case "f":
		m.asst.Focus.Toggle()
	case "u":
		if _, ok := m.asst.Undo(); ok {
			m.err = m.asst.Snapshot()
		}
	case "m":
		m.asst.Audio.SetMuted(!m.asst.Audio.Muted())
	case "S":
		if m.asst.Session.IsActive() {
			m.err = m.asst.EndSession()
		} else {
			m.asst.StartSession()
		}
	case ":", "/", "ctrl+k":
		return m.openPalette()
	case "?":
		m.previousView = m.activeView
		m.activeView = HelpView
	case "esc":
		m.err = nil
	}
	return m, nil
}

// handleHelpKeys processes keyboard input in HelpView.
func (m Model) handleHelpKeys(key string) (tea.Model, tea.Cmd) {
	if key == "?" || key == "esc" {
		m.activeView = m.previousView
	}
	return m, nil
}

func (m Model) openPalette() (tea.Model, tea.Cmd) {
	m.previousView = m.activeView
	m.activeView = PaletteView
	m.input.Reset()
	m.results = m.asst.Palette.Search("", m.limit)
	m.selected = 0
	cmd := m.input.Focus()
	return m, cmd
}

func (m Model) closePalette() Model {
	m.input.Blur()
	m.activeView = DashboardView
	m.results = nil
	m.selected = 0
	return m
}

// handlePaletteKeys processes keyboard input in PaletteView. Keys that do not
// navigate or execute are typed into the query.
func (m Model) handlePaletteKeys(key string, msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key {
	case "esc":
		return m.closePalette(), nil
	case "up", "ctrl+p":
		if m.selected > 0 {
			m.selected--
		}
		return m, nil
	case "down", "ctrl+n":
		if m.selected < len(m.results)-1 {
			m.selected++
		}
		return m, nil
	case "enter":
		if len(m.results) == 0 {
			return m, nil
		}
		chosen := m.results[m.selected]
		m = m.closePalette()
		if err := m.asst.Palette.Execute(chosen); err != nil {
			m.err = err
		}
		return m, m.fetchStatsCmd()
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.results = m.asst.Palette.Search(m.input.Value(), m.limit)
	m.selected = 0
	return m, cmd
}

// View implements tea.Model.
func (m Model) View() string {
	switch m.activeView {
	case PaletteView:
		return m.renderHeader() + "\n" + m.renderPaletteOverlay()
	case HelpView:
		return m.renderHelpOverlay()
	}
	if m.asst.Focus.Active() {
		return m.renderFocus()
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderHeader(),
		"",
		m.renderStats(),
		"",
		m.renderNotices(),
		m.renderFooter(),
	)
}

// renderHeader renders the active tab, streak, session timer and energy.
func (m Model) renderHeader() string {
	s := m.styles
	session := s.Muted.Render("no session")
	if m.asst.Session.IsActive() {
		session = fmt.Sprintf("session %dm", m.asst.Session.ElapsedMinutes())
	}
	parts := []string{
		s.Header.Render("ironlung"),
		s.Tab.Render(m.asst.ActiveTab()),
		s.Streak.Render(fmt.Sprintf("streak %d", m.data.CurrentStreak)),
		session,
		"energy " + string(m.asst.Session.EnergyLevel()),
	}
	if m.asst.Audio.Muted() {
		parts = append(parts, s.Muted.Render("muted"))
	}
	return strings.Join(parts, " │ ")
}

// renderStats renders the glanceable counts.
func (m Model) renderStats() string {
	s := m.styles
	cards := fmt.Sprint(m.data.CardsProcessed)
	if m.data.CardsTotal > 0 {
		cards = fmt.Sprintf("%d/%d", m.data.CardsProcessed, m.data.CardsTotal)
	}
	stat := func(label, value string) string {
		return s.StatLabel.Render(label+" ") + s.StatValue.Render(value)
	}
	return strings.Join([]string{
		stat("Cards", cards),
		stat("Calls", fmt.Sprint(m.data.CallsMade)),
		stat("Emails", fmt.Sprint(m.data.EmailsSent)),
		stat("Demos", fmt.Sprint(m.data.DemosScheduled)),
	}, "   ")
}

// renderNotices renders recent notices and the last error.
func (m Model) renderNotices() string {
	var b strings.Builder
	for _, n := range m.notices.items {
		style, ok := m.styles.Notice[string(n.Kind)]
		if !ok {
			style = m.styles.Muted
		}
		b.WriteString(style.Render(n.Text))
		b.WriteString("\n")
	}
	if m.err != nil {
		b.WriteString(m.styles.Error.Render("error: " + m.err.Error()))
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) renderFooter() string {
	return m.styles.Muted.Render("c call · e email · d demo · n done · s skip · : palette · ? help · q quit")
}

// renderFocus renders the distraction-free view shown in focus mode.
func (m Model) renderFocus() string {
	body := fmt.Sprintf("Just this card.\n\nstreak %d", m.data.CurrentStreak)
	return lipgloss.JoinVertical(lipgloss.Left,
		m.styles.Focus.Render(body),
		m.styles.Muted.Render("f leave focus · c/e/d/n record · s skip"),
	)
}

// renderPaletteOverlay renders the query input and ranked results.
func (m Model) renderPaletteOverlay() string {
	s := m.styles
	var b strings.Builder
	if len(m.results) == 0 {
		b.WriteString(s.Muted.Render("No matching commands"))
	}
	for i, r := range m.results {
		line := fmt.Sprintf("%s  %s", r.Item.Label, s.Muted.Render(r.Item.Category))
		if i == m.selected {
			b.WriteString(s.Selected.Render("▸ " + r.Item.Label))
		} else {
			b.WriteString("  " + line)
		}
		b.WriteString("\n")
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		s.Input.Render(m.input.View()),
		b.String(),
		s.Muted.Render("↑↓ navigate · enter run · esc cancel"),
	)
}
