package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/handiism/tracklist/internal/importer"
	"github.com/handiism/tracklist/internal/model"
	"github.com/handiism/tracklist/internal/playlist"
	"github.com/handiism/tracklist/internal/session"
	"github.com/handiism/tracklist/internal/store"
)

func newTestModel(t *testing.T, titles ...string) (Model, *session.Session) {
	t.Helper()
	list := playlist.New(playlist.WithSeed(1))
	for i, title := range titles {
		require.NoError(t, list.InsertAt(model.NewTrack(title, "Artist", 10*(i+1)), playlist.AppendPosition))
	}
	sess := session.New(list, store.NewMemory())
	return NewModel(sess), sess
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// collect runs cmd and returns the messages it produces, expanding batches.
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var msgs []tea.Msg
		for _, c := range batch {
			msgs = append(msgs, collect(c)...)
		}
		return msgs
	}
	return []tea.Msg{msg}
}

// press sends a key and delivers any command result back to the model.
func press(t *testing.T, m Model, keys ...string) (Model, []tea.Msg) {
	t.Helper()
	var delivered []tea.Msg
	for _, k := range keys {
		next, cmd := m.Update(key(k))
		m = next.(Model)
		for _, msg := range collect(cmd) {
			if res, ok := msg.(ResultMsg); ok {
				next, cmd := m.Update(res)
				m = next.(Model)
				delivered = append(delivered, res)
				delivered = append(delivered, collect(cmd)...)
			}
		}
	}
	return m, delivered
}

func typeText(t *testing.T, m Model, text string) Model {
	t.Helper()
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(text)})
	return next.(Model)
}

func titles(sess *session.Session) []string {
	var out []string
	for _, tr := range sess.List().Tracks() {
		out = append(out, tr.Title)
	}
	return out
}

func TestNewModel_ShowsPlaylist(t *testing.T) {
	m, _ := newTestModel(t, "A", "B")

	require.Len(t, m.table.Rows(), 2)
	assert.Equal(t, "A", m.table.Rows()[0][1])
	assert.Equal(t, 30, m.total)
	assert.Contains(t, m.View(), "Total duration: 30 seconds")
}

func TestAddThroughPrompt(t *testing.T) {
	m, sess := newTestModel(t, "A")

	m, _ = press(t, m, "a")
	require.Equal(t, StatePrompt, m.state)
	assert.Contains(t, m.View(), "Enter title:")

	for _, answer := range []string{"New Song", "New Artist", "120", "0"} {
		m = typeText(t, m, answer)
		m, _ = press(t, m, "enter")
	}

	assert.Equal(t, StateBrowse, m.state)
	assert.Equal(t, []string{"New Song", "A"}, titles(sess))
	assert.Equal(t, "New Song", m.table.Rows()[0][1])
	require.NotEmpty(t, m.logs)
	assert.Equal(t, importer.LevelSuccess, m.logs[len(m.logs)-1].Level)
}

func TestAddBlankPositionAppends(t *testing.T) {
	m, sess := newTestModel(t, "A")

	m, _ = press(t, m, "a")
	m = typeText(t, m, "B")
	m, _ = press(t, m, "enter")
	m = typeText(t, m, "X")
	m, _ = press(t, m, "enter")
	m = typeText(t, m, "5")
	m, _ = press(t, m, "enter", "enter")

	assert.Equal(t, []string{"A", "B"}, titles(sess))
}

func TestAddRejectsBadDuration(t *testing.T) {
	m, sess := newTestModel(t)

	m, _ = press(t, m, "a")
	m = typeText(t, m, "B")
	m, _ = press(t, m, "enter")
	m = typeText(t, m, "X")
	m, _ = press(t, m, "enter")
	m = typeText(t, m, "long")
	m, _ = press(t, m, "enter", "enter")

	assert.Equal(t, StateBrowse, m.state)
	assert.Equal(t, 0, sess.List().Len())
	require.NotEmpty(t, m.logs)
	assert.Equal(t, importer.LevelError, m.logs[len(m.logs)-1].Level)
	assert.Contains(t, m.logs[len(m.logs)-1].Message, "duration")
}

func TestPromptEscCancels(t *testing.T) {
	m, sess := newTestModel(t, "A")

	m, _ = press(t, m, "a")
	m = typeText(t, m, "B")
	m, _ = press(t, m, "esc")

	assert.Equal(t, StateBrowse, m.state)
	assert.Nil(t, m.prompt)
	assert.Equal(t, 1, sess.List().Len())
}

func TestRemoveSelectedRow(t *testing.T) {
	m, sess := newTestModel(t, "A", "B", "C")

	m, _ = press(t, m, "down", "d")

	assert.Equal(t, []string{"A", "C"}, titles(sess))
	assert.Len(t, m.table.Rows(), 2)
	assert.Equal(t, "Song removed successfully", m.logs[len(m.logs)-1].Message)
}

func TestRemoveOnEmptyPlaylist(t *testing.T) {
	m, _ := newTestModel(t)

	m, msgs := press(t, m, "d")

	assert.Empty(t, msgs)
	assert.Equal(t, "Playlist is empty", m.logs[len(m.logs)-1].Message)
}

func TestMoveAndSearch(t *testing.T) {
	m, sess := newTestModel(t, "A", "B", "C")

	m, _ = press(t, m, "m")
	m = typeText(t, m, "0")
	m, _ = press(t, m, "enter")
	m = typeText(t, m, "2")
	m, _ = press(t, m, "enter")
	assert.Equal(t, []string{"B", "C", "A"}, titles(sess))

	m, _ = press(t, m, "/")
	m = typeText(t, m, "A")
	m, _ = press(t, m, "enter")
	assert.Equal(t, 2, m.table.Cursor())
	assert.Equal(t, "Found 'A' by Artist at position 3", m.logs[len(m.logs)-1].Message)
}

func TestRepeatToggle(t *testing.T) {
	m, sess := newTestModel(t, "A", "B")

	m, _ = press(t, m, "r")
	assert.True(t, sess.List().IsCyclic())
	assert.True(t, m.cyclic)
	assert.Contains(t, m.View(), "repeat")

	m, _ = press(t, m, "r")
	assert.False(t, m.cyclic)
}

func TestSaveAndLoad(t *testing.T) {
	m, sess := newTestModel(t, "A", "B")

	m, _ = press(t, m, "s", "d", "l")

	assert.Equal(t, []string{"A", "B"}, titles(sess))
	assert.Len(t, m.table.Rows(), 2)
}

func TestQuit(t *testing.T) {
	m, _ := newTestModel(t)

	_, msgs := press(t, m, "q")

	var quit bool
	for _, msg := range msgs {
		if _, ok := msg.(tea.QuitMsg); ok {
			quit = true
		}
	}
	assert.True(t, quit)
}

func TestProgressMsgFiltersVerbose(t *testing.T) {
	m, _ := newTestModel(t)

	next, _ := m.Update(ProgressMsg{Event: importer.ProgressEvent{Message: "detail", Level: importer.LevelVerbose}})
	m = next.(Model)
	assert.Empty(t, m.logs)

	m, _ = press(t, m, "v")
	next, _ = m.Update(ProgressMsg{Event: importer.ProgressEvent{Message: "detail", Level: importer.LevelVerbose}})
	m = next.(Model)
	require.Len(t, m.logs, 1)
	assert.Equal(t, "detail", m.logs[0].Message)
}

func TestLogsAreCapped(t *testing.T) {
	m, _ := newTestModel(t)
	for i := 0; i < maxLogs+5; i++ {
		next, _ := m.Update(ProgressMsg{Event: importer.ProgressEvent{Message: "x", Level: importer.LevelInfo}})
		m = next.(Model)
	}
	assert.Len(t, m.logs, maxLogs)
}

func TestPromptRequest(t *testing.T) {
	tests := []struct {
		name    string
		command session.Command
		answers []string
		want    session.Request
		wantErr bool
	}{
		{
			name:    "add",
			command: session.CmdAdd,
			answers: []string{"T", "A", " 90 ", "2"},
			want:    session.Request{Command: session.CmdAdd, Track: model.NewTrack("T", "A", 90), Position: 2},
		},
		{
			name:    "add default position",
			command: session.CmdAdd,
			answers: []string{"T", "A", "90", ""},
			want:    session.Request{Command: session.CmdAdd, Track: model.NewTrack("T", "A", 90), Position: playlist.AppendPosition},
		},
		{
			name:    "move",
			command: session.CmdMove,
			answers: []string{"1", "0"},
			want:    session.Request{Command: session.CmdMove, From: 1, To: 0},
		},
		{
			name:    "move bad",
			command: session.CmdMove,
			answers: []string{"one", "0"},
			wantErr: true,
		},
		{
			name:    "search keeps spaces inside title",
			command: session.CmdSearch,
			answers: []string{"Hey Jude"},
			want:    session.Request{Command: session.CmdSearch, Title: "Hey Jude"},
		},
		{
			name:    "import trims",
			command: session.CmdImport,
			answers: []string{"  ./music  "},
			want:    session.Request{Command: session.CmdImport, Target: "./music"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newPrompt(tt.command)
			for i, a := range tt.answers {
				more := p.answer(a)
				assert.Equal(t, i < len(tt.answers)-1, more)
			}
			got, err := p.request()
			if tt.wantErr {
				assert.ErrorIs(t, err, errNotNumber)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
