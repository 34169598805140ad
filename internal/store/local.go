package store

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	ioutils "github.com/handiism/tracklist/internal/io"
)

// Local keeps playlist files in a directory on the local filesystem.
type Local struct {
	dir string
}

// NewLocal creates a Local store rooted at dir. Absolute names bypass dir.
func NewLocal(dir string) *Local {
	if dir == "" {
		dir = "."
	}
	return &Local{dir: dir}
}

func (s *Local) path(name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(s.dir, name)
}

// Open opens the named file for reading.
func (s *Local) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return os.Open(s.path(name))
}

// Create starts replacing the named file, making parent directories. The
// file keeps its old content until Close, and a writer whose context was
// cancelled leaves it untouched.
func (s *Local) Create(ctx context.Context, name string) (io.WriteCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := ioutils.CreateAtomic(s.path(name))
	if err != nil {
		return nil, err
	}
	return &localWriter{ctx: ctx, file: f}, nil
}

type localWriter struct {
	ctx  context.Context
	file *ioutils.AtomicFile
}

func (w *localWriter) Write(p []byte) (int, error) {
	return w.file.Write(p)
}

func (w *localWriter) Close() error {
	if err := w.ctx.Err(); err != nil {
		_ = w.file.Abort()
		return err
	}
	return w.file.Commit()
}

// List returns the slash-separated names below the base directory that
// start with prefix.
func (s *Local) List(ctx context.Context, prefix string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	paths, err := ioutils.ListFiles(s.dir, "")
	if err != nil {
		return nil, err
	}

	var names []string
	for _, p := range paths {
		rel, err := filepath.Rel(s.dir, p)
		if err != nil {
			continue
		}
		rel = filepath.ToSlash(rel)
		if strings.HasPrefix(rel, prefix) {
			names = append(names, rel)
		}
	}
	sort.Strings(names)
	return names, nil
}

// Close is a no-op.
func (s *Local) Close() error { return nil }
