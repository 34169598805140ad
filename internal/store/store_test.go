package store

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/handiism/tracklist/internal/model"
)

func backends(t *testing.T) map[string]Store {
	return map[string]Store{
		"local":  NewLocal(t.TempDir()),
		"memory": NewMemory(),
	}
}

func TestSaveLoad(t *testing.T) {
	ctx := context.Background()
	tracks := []model.Track{
		model.NewTrack("Song A", "Artist X", 100),
		model.NewTrack("Song B", "Artist Y", 200),
	}

	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, Save(ctx, s, "playlist.txt", tracks))
			got, err := Load(ctx, s, "playlist.txt")
			require.NoError(t, err)
			assert.Equal(t, tracks, got)
		})
	}
}

func TestSaveLoad_Empty(t *testing.T) {
	ctx := context.Background()

	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, Save(ctx, s, "empty.txt", nil))
			got, err := Load(ctx, s, "empty.txt")
			require.NoError(t, err)
			assert.Empty(t, got)
		})
	}
}

func TestLoad_Missing(t *testing.T) {
	ctx := context.Background()

	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			_, err := Load(ctx, s, "missing.txt")
			require.Error(t, err)
			assert.True(t, errors.Is(err, fs.ErrNotExist))
		})
	}
}

func TestLoad_Malformed(t *testing.T) {
	s := NewMemory()
	s.Put("bad.txt", []byte("Song A,Artist X,abc\n"))

	_, err := Load(context.Background(), s, "bad.txt")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrFormat))
}

func TestSave_Overwrites(t *testing.T) {
	ctx := context.Background()
	s := NewMemory()

	require.NoError(t, Save(ctx, s, "p.txt", []model.Track{model.NewTrack("A", "X", 1), model.NewTrack("B", "Y", 2)}))
	require.NoError(t, Save(ctx, s, "p.txt", []model.Track{model.NewTrack("C", "Z", 3)}))

	data, ok := s.Get("p.txt")
	require.True(t, ok)
	assert.Equal(t, "C,Z,3\n", string(data))
}

func TestSave_CancelledContextDoesNotCommit(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	s := NewMemory()

	err := Save(ctx, s, "p.txt", []model.Track{model.NewTrack("A", "X", 1)})
	require.Error(t, err)
	_, ok := s.Get("p.txt")
	assert.False(t, ok)
}

func TestLocal_InterruptedWriteKeepsOldFile(t *testing.T) {
	base := t.TempDir()
	s := NewLocal(base)
	require.NoError(t, Save(context.Background(), s, "p.txt", []model.Track{model.NewTrack("A", "X", 1)}))

	ctx, cancel := context.WithCancel(context.Background())
	w, err := s.Create(ctx, "p.txt")
	require.NoError(t, err)
	_, err = w.Write([]byte("B,Y,"))
	require.NoError(t, err)
	cancel()
	assert.ErrorIs(t, w.Close(), context.Canceled)

	tracks, err := Load(context.Background(), s, "p.txt")
	require.NoError(t, err)
	assert.Equal(t, []model.Track{model.NewTrack("A", "X", 1)}, tracks)

	names, err := s.List(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, []string{"p.txt"}, names)
}

func TestLocal_CreatesDirectoriesAndAbsolutePaths(t *testing.T) {
	ctx := context.Background()
	base := t.TempDir()
	s := NewLocal(base)

	require.NoError(t, Save(ctx, s, "nested/dir/p.txt", []model.Track{model.NewTrack("A", "X", 1)}))
	_, err := os.Stat(filepath.Join(base, "nested", "dir", "p.txt"))
	require.NoError(t, err)

	abs := filepath.Join(t.TempDir(), "abs.txt")
	require.NoError(t, Save(ctx, s, abs, nil))
	_, err = os.Stat(abs)
	assert.NoError(t, err)
}

func TestList(t *testing.T) {
	ctx := context.Background()

	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			for _, n := range []string{"mix-b.txt", "mix-a.txt", "other.txt"} {
				require.NoError(t, Save(ctx, s, n, nil))
			}
			got, err := s.List(ctx, "mix-")
			require.NoError(t, err)
			assert.Equal(t, []string{"mix-a.txt", "mix-b.txt"}, got)
		})
	}
}

func TestOpen(t *testing.T) {
	ctx := context.Background()

	s, err := Open(ctx, Config{Backend: BackendLocal, Dir: t.TempDir()})
	require.NoError(t, err)
	assert.IsType(t, &Local{}, s)

	s, err = Open(ctx, Config{Dir: t.TempDir()})
	require.NoError(t, err)
	assert.IsType(t, &Local{}, s)

	_, err = Open(ctx, Config{Backend: "ftp"})
	assert.Error(t, err)

	_, err = Open(ctx, Config{Backend: BackendGCS})
	assert.Error(t, err, "gcs without a bucket")
}

func TestGCS_ObjectNames(t *testing.T) {
	tests := []struct {
		prefix string
		name   string
		want   string
	}{
		{"", "playlist.txt", "playlist.txt"},
		{"users/me", "playlist.txt", "users/me/playlist.txt"},
		{"users/me", "/playlist.txt", "users/me/playlist.txt"},
	}

	for _, tt := range tests {
		s := &GCS{bucket: "b", prefix: tt.prefix}
		assert.Equal(t, tt.want, s.objectName(tt.name))
		assert.Equal(t, "playlist.txt", s.relative(s.objectName(tt.name)))
	}
}
