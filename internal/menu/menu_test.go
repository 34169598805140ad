package menu

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/handiism/tracklist/internal/playlist"
	"github.com/handiism/tracklist/internal/session"
	"github.com/handiism/tracklist/internal/store"
)

func run(t *testing.T, input string) (string, *session.Session, *store.Memory) {
	t.Helper()
	st := store.NewMemory()
	sess := session.New(playlist.New(playlist.WithSeed(3)), st)
	var out bytes.Buffer

	require.NoError(t, New(sess, strings.NewReader(input), &out).Run(context.Background()))
	return out.String(), sess, st
}

func TestRun_AddDisplayExit(t *testing.T) {
	input := strings.Join([]string{
		"1", "A", "X", "100", "-1",
		"1", "B", "Y", "200", "0",
		"3",
		"10",
	}, "\n") + "\n"

	out, sess, _ := run(t, input)

	assert.Equal(t, 2, sess.List().Len())
	assert.Contains(t, out, "Enter title: Enter artist: Enter duration (in seconds): Enter position (or -1 to add to end): ")
	assert.Contains(t, out, "1: B by Y, Duration: 200 seconds\n2: A by X, Duration: 100 seconds\nTotal duration: 300 seconds\n")
	assert.Contains(t, out, "Goodbye")
}

func TestRun_TitlesWithSpaces(t *testing.T) {
	out, sess, _ := run(t, "1\nHey Jude\nThe Beatles\n431\n-1\n5\nHey Jude\n10\n")

	assert.Equal(t, "The Beatles", sess.List().Tracks()[0].Artist)
	assert.Contains(t, out, "Found 'Hey Jude' by The Beatles at position 1")
}

func TestRun_InvalidOption(t *testing.T) {
	out, _, _ := run(t, "42\nabc\n10\n")
	assert.Equal(t, 2, strings.Count(out, "Invalid option"))
}

func TestRun_BadNumberReturnsToMenu(t *testing.T) {
	out, sess, _ := run(t, "1\nA\nX\nlong\n3\n10\n")
	assert.Contains(t, out, `"long" is not a number`)
	assert.Equal(t, 0, sess.List().Len())
	assert.Contains(t, out, "Total duration: 0 seconds")
}

func TestRun_RemoveMoveSearch(t *testing.T) {
	input := "1\nA\nX\n1\n-1\n1\nB\nX\n1\n-1\n1\nC\nX\n1\n-1\n" +
		"4\n0\n2\n" +
		"2\nZ\n" +
		"2\nB\n" +
		"5\nB\n" +
		"10\n"

	out, sess, _ := run(t, input)

	var titles []string
	for _, tr := range sess.List().Tracks() {
		titles = append(titles, tr.Title)
	}
	assert.Equal(t, []string{"C", "A"}, titles)
	assert.Contains(t, out, "Song moved")
	assert.Contains(t, out, "Song not found")
	assert.Contains(t, out, "Song removed successfully")
}

func TestRun_SaveLoad(t *testing.T) {
	out, sess, st := run(t, "1\nA\nX\n100\n-1\n6\n2\nA\n7\n10\n")

	data, found := st.Get(session.DefaultPlaylistFile)
	require.True(t, found)
	assert.Equal(t, "A,X,100\n", string(data))
	assert.Equal(t, 1, sess.List().Len())
	assert.Contains(t, out, "Playlist loaded from playlist.txt (1 songs)")
}

func TestRun_RepeatAndShuffle(t *testing.T) {
	out, sess, _ := run(t, "1\nA\nX\n1\n-1\n9\n8\n3\n10\n")
	assert.True(t, sess.List().IsCyclic())
	assert.Contains(t, out, "Repeat mode enabled")
	assert.Contains(t, out, "Playlist shuffled")
	assert.Contains(t, out, "(repeat mode on)")
}

func TestRun_EndOfInputExits(t *testing.T) {
	_, sess, _ := run(t, "1\nA\n")
	assert.Equal(t, 0, sess.List().Len())
}

func TestRun_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	sess := session.New(playlist.New(), store.NewMemory())
	err := New(sess, strings.NewReader("3\n"), &bytes.Buffer{}).Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
