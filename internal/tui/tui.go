// Package tui provides a Bubble Tea terminal user interface for tracklist.
package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/handiism/tracklist/internal/importer"
	"github.com/handiism/tracklist/internal/session"
)

// Styles for the TUI
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF6B6B")).
			MarginBottom(1)

	subtitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#4ECDC4"))

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#95E1A3"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFE66D"))

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#A8DADC"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6C757D"))

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#4ECDC4")).
			Padding(0, 1)

	repeatStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F8B500"))
)

const maxLogs = 10

// State represents the current UI state.
type State int

const (
	StateBrowse State = iota
	StatePrompt
	StateBusy
)

// LogEntry represents a log message in the UI.
type LogEntry struct {
	Message string
	Level   importer.ProgressLevel
}

// Tracker reports import progress while an import runs.
type Tracker interface {
	GetProgress() (done, total int)
}

// Option configures a Model.
type Option func(*Model)

// WithTracker shows an import progress bar fed by t.
func WithTracker(t Tracker) Option {
	return func(m *Model) { m.tracker = t }
}

// Model is the Bubble Tea model for the TUI.
type Model struct {
	state     State
	sess      *session.Session
	table     table.Model
	textInput textinput.Model
	spinner   spinner.Model
	progress  progress.Model
	tracker   Tracker

	prompt *prompt
	busy   session.Command
	logs   []LogEntry
	cyclic bool
	total  int

	// Busy command context
	ctx    context.Context
	cancel context.CancelFunc

	verbose bool
	width   int
	height  int
}

// NewModel creates a new TUI model over sess.
func NewModel(sess *session.Session, opts ...Option) Model {
	ti := textinput.New()
	ti.CharLimit = 500
	ti.Width = 60

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B"))

	prog := progress.New(progress.WithDefaultGradient())
	prog.Width = 50

	tbl := table.New(
		table.WithColumns(columns(60)),
		table.WithFocused(true),
		table.WithHeight(12),
	)
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("#4ECDC4")).
		BorderBottom(true).
		Bold(true)
	styles.Selected = styles.Selected.
		Foreground(lipgloss.Color("#1D1D1D")).
		Background(lipgloss.Color("#95E1A3"))
	tbl.SetStyles(styles)

	m := Model{
		state:     StateBrowse,
		sess:      sess,
		table:     tbl,
		textInput: ti,
		spinner:   sp,
		progress:  prog,
		logs:      make([]LogEntry, 0, maxLogs),
	}
	for _, opt := range opts {
		opt(&m)
	}
	m.refresh()
	return m
}

func columns(width int) []table.Column {
	title := max((width-24)/2, 12)
	return []table.Column{
		{Title: "#", Width: 4},
		{Title: "Title", Width: title},
		{Title: "Artist", Width: title},
		{Title: "Seconds", Width: 8},
	}
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return m.spinner.Tick
}

// Message types
type (
	// ProgressMsg carries an importer event into the UI.
	ProgressMsg struct {
		Event importer.ProgressEvent
	}

	// ResultMsg is sent when a session command finishes.
	ResultMsg struct {
		Result session.Result
	}

	// TickMsg is for periodic progress updates.
	TickMsg struct{}
)

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table.SetColumns(columns(msg.Width - 8))
		m.table.SetHeight(max(msg.Height-maxLogs-12, 5))
		m.progress.Width = min(max(msg.Width-20, 20), 80)
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			if m.cancel != nil {
				m.cancel()
			}
			return m, tea.Quit
		}
		switch m.state {
		case StateBrowse:
			return m.browseKey(msg)
		case StatePrompt:
			return m.promptKey(msg)
		case StateBusy:
			if msg.String() == "esc" && m.cancel != nil {
				m.cancel()
				m.addLog(fmt.Sprintf("Cancelling %s...", m.busy), importer.LevelWarning)
			}
			return m, nil
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)

	case ProgressMsg:
		if msg.Event.Level == importer.LevelVerbose && !m.verbose {
			return m, nil
		}
		m.addLog(msg.Event.Message, msg.Event.Level)

	case ResultMsg:
		return m.finish(msg.Result)

	case TickMsg:
		if m.tracker != nil && m.state == StateBusy {
			done, total := m.tracker.GetProgress()
			var percent float64
			if total > 0 {
				percent = float64(done) / float64(total)
			}
			cmds = append(cmds, m.progress.SetPercent(percent), m.tickProgress())
		}

	case progress.FrameMsg:
		progressModel, cmd := m.progress.Update(msg)
		m.progress = progressModel.(progress.Model)
		cmds = append(cmds, cmd)
	}

	if m.state == StatePrompt {
		var cmd tea.Cmd
		m.textInput, cmd = m.textInput.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

func (m Model) browseKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc":
		return m.run(session.Request{Command: session.CmdExit})
	case "a":
		return m.ask(session.CmdAdd)
	case "d", "delete":
		row := m.table.SelectedRow()
		if row == nil {
			m.addLog("Playlist is empty", importer.LevelInfo)
			return m, nil
		}
		return m.run(session.Request{Command: session.CmdRemove, Title: row[1]})
	case "D":
		return m.ask(session.CmdRemove)
	case "m":
		return m.ask(session.CmdMove)
	case "/":
		return m.ask(session.CmdSearch)
	case "s":
		return m.run(session.Request{Command: session.CmdSave})
	case "l":
		return m.run(session.Request{Command: session.CmdLoad})
	case "x":
		return m.run(session.Request{Command: session.CmdShuffle})
	case "r":
		return m.run(session.Request{Command: session.CmdToggleCycle})
	case "e":
		return m.ask(session.CmdExport)
	case "i":
		return m.ask(session.CmdImport)
	case "v":
		m.verbose = !m.verbose
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m Model) promptKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.prompt = nil
		m.state = StateBrowse
		m.textInput.Blur()
		m.table.Focus()
		return m, nil

	case "enter":
		if m.prompt.answer(m.textInput.Value()) {
			m.textInput.SetValue("")
			m.textInput.Placeholder = m.prompt.placeholder()
			return m, nil
		}
		req, err := m.prompt.request()
		m.prompt = nil
		m.textInput.Blur()
		m.table.Focus()
		if err != nil {
			m.state = StateBrowse
			m.addLog(err.Error(), importer.LevelError)
			return m, nil
		}
		return m.run(req)
	}

	var cmd tea.Cmd
	m.textInput, cmd = m.textInput.Update(msg)
	return m, cmd
}

// ask opens the prompt for cmd.
func (m Model) ask(cmd session.Command) (tea.Model, tea.Cmd) {
	m.prompt = newPrompt(cmd)
	m.state = StatePrompt
	m.table.Blur()
	m.textInput.SetValue("")
	m.textInput.Placeholder = m.prompt.placeholder()
	m.textInput.Focus()
	return m, textinput.Blink
}

// run executes req off the UI goroutine.
func (m Model) run(req session.Request) (tea.Model, tea.Cmd) {
	m.state = StateBusy
	m.busy = req.Command
	m.ctx, m.cancel = context.WithCancel(context.Background())

	sess, ctx := m.sess, m.ctx
	cmds := []tea.Cmd{
		m.spinner.Tick,
		func() tea.Msg {
			return ResultMsg{Result: sess.Execute(ctx, req)}
		},
	}
	if req.Command == session.CmdImport && m.tracker != nil {
		cmds = append(cmds, m.progress.SetPercent(0), m.tickProgress())
	}
	return m, tea.Batch(cmds...)
}

func (m Model) finish(res session.Result) (tea.Model, tea.Cmd) {
	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}
	m.state = StateBrowse
	m.refresh()

	if res.Message != "" && res.Listing == nil {
		m.addLog(res.Message, levelOf(res.Status))
	}
	if res.Match != nil {
		m.table.SetCursor(res.Match.Position - 1)
	}
	if res.Exit {
		return m, tea.Quit
	}
	return m, nil
}

// refresh reloads the table from the playlist.
func (m *Model) refresh() {
	listing := m.sess.List().Display()
	rows := make([]table.Row, 0, len(listing.Entries))
	for _, e := range listing.Entries {
		rows = append(rows, table.Row{
			strconv.Itoa(e.Position),
			e.Track.Title,
			e.Track.Artist,
			strconv.Itoa(e.Track.Duration),
		})
	}
	m.table.SetRows(rows)
	if c := m.table.Cursor(); c >= len(rows) {
		m.table.SetCursor(max(len(rows)-1, 0))
	}
	m.cyclic = listing.Cyclic
	m.total = listing.TotalDuration
}

func (m *Model) addLog(message string, level importer.ProgressLevel) {
	m.logs = append(m.logs, LogEntry{Message: message, Level: level})
	if len(m.logs) > maxLogs {
		m.logs = m.logs[len(m.logs)-maxLogs:]
	}
}

func levelOf(s session.Status) importer.ProgressLevel {
	switch s {
	case session.StatusOK:
		return importer.LevelSuccess
	case session.StatusFailed:
		return importer.LevelError
	default:
		return importer.LevelInfo
	}
}

// tickProgress returns a command to tick progress updates.
func (m Model) tickProgress() tea.Cmd {
	return tea.Tick(200*time.Millisecond, func(_ time.Time) tea.Msg {
		return TickMsg{}
	})
}

// View renders the UI.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("🎵 Tracklist"))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(m.sess.PlaylistFile()))
	b.WriteString("\n\n")

	b.WriteString(boxStyle.Render(m.table.View()))
	b.WriteString("\n")
	summary := fmt.Sprintf("%d songs | Total duration: %d seconds", len(m.table.Rows()), m.total)
	b.WriteString(infoStyle.Render(summary))
	if m.cyclic {
		b.WriteString(" ")
		b.WriteString(repeatStyle.Render("🔁 repeat"))
	}
	b.WriteString("\n\n")

	switch m.state {
	case StatePrompt:
		b.WriteString(subtitleStyle.Render(m.prompt.question()))
		b.WriteString("\n")
		b.WriteString(m.textInput.View())
		b.WriteString("\n\n")
	case StateBusy:
		b.WriteString(m.spinner.View())
		b.WriteString(" ")
		b.WriteString(subtitleStyle.Render(fmt.Sprintf("Running %s...", m.busy)))
		b.WriteString("\n")
		if m.busy == session.CmdImport && m.tracker != nil {
			done, total := m.tracker.GetProgress()
			var percent float64
			if total > 0 {
				percent = float64(done) / float64(total)
			}
			b.WriteString(m.progress.ViewAs(percent))
			b.WriteString("\n")
			b.WriteString(infoStyle.Render(fmt.Sprintf("Items: %d/%d", done, total)))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	b.WriteString(m.renderLogs())
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(m.getHelpText()))

	return b.String()
}

func (m Model) renderLogs() string {
	var b strings.Builder

	for _, log := range m.logs {
		var style lipgloss.Style
		prefix := "•"
		switch log.Level {
		case importer.LevelError:
			style = errorStyle
			prefix = "✗"
		case importer.LevelWarning:
			style = warningStyle
			prefix = "!"
		case importer.LevelSuccess:
			style = successStyle
			prefix = "✓"
		case importer.LevelInfo:
			style = infoStyle
			prefix = "›"
		default:
			style = dimStyle
		}
		b.WriteString(style.Render(prefix + " " + log.Message))
		b.WriteString("\n")
	}

	return b.String()
}

func (m Model) getHelpText() string {
	switch m.state {
	case StateBrowse:
		return "a: add • d: remove • D: remove by title • m: move • /: search • x: shuffle • r: repeat\n" +
			"s: save • l: load • e: export • i: import • v: verbose • q: quit"
	case StatePrompt:
		return "enter: confirm • esc: cancel"
	case StateBusy:
		return "esc: cancel"
	}
	return ""
}

// NewProgram wraps m in an alt screen program. Import events can be
// delivered with p.Send(ProgressMsg{...}).
func NewProgram(m Model, opts ...tea.ProgramOption) *tea.Program {
	return tea.NewProgram(m, append([]tea.ProgramOption{tea.WithAltScreen()}, opts...)...)
}
