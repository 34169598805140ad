package store

import (
	"context"
	"fmt"
	"io"

	"github.com/handiism/tracklist/internal/model"
)

// Store is a flat namespace of named blobs holding playlist files.
//
// Open on a missing name returns an error matching fs.ErrNotExist.
// Writes through the WriteCloser returned by Create are only durable once
// Close returns nil.
type Store interface {
	Open(ctx context.Context, name string) (io.ReadCloser, error)
	Create(ctx context.Context, name string) (io.WriteCloser, error)
	// List returns the names that start with prefix, sorted.
	List(ctx context.Context, prefix string) ([]string, error)
	Close() error
}

// Backend names accepted by Open.
const (
	BackendLocal = "local"
	BackendGCS   = "gcs"
)

// Config selects and configures a Store.
type Config struct {
	Backend string

	// Dir is the base directory of the local backend.
	Dir string

	Bucket          string
	Prefix          string
	CredentialsFile string
}

// Open builds the Store described by cfg.
func Open(ctx context.Context, cfg Config) (Store, error) {
	switch cfg.Backend {
	case "", BackendLocal:
		return NewLocal(cfg.Dir), nil
	case BackendGCS:
		return NewGCS(ctx, cfg.Bucket, cfg.Prefix, cfg.CredentialsFile)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
}

// Save encodes tracks into the blob called name, replacing its content.
func Save(ctx context.Context, s Store, name string, tracks []model.Track) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	w, err := s.Create(ctx, name)
	if err != nil {
		return fmt.Errorf("unable to open %s for writing: %w", name, err)
	}

	if err := Encode(w, tracks); err != nil {
		// cancelling first stops remote writers from committing a partial object
		cancel()
		_ = w.Close()
		return fmt.Errorf("unable to write %s: %w", name, err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("unable to write %s: %w", name, err)
	}

	return nil
}

// Load decodes every record of the blob called name.
func Load(ctx context.Context, s Store, name string) ([]model.Track, error) {
	r, err := s.Open(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("unable to open %s: %w", name, err)
	}
	defer r.Close()

	tracks, err := Decode(r)
	if err != nil {
		return nil, fmt.Errorf("unable to read %s: %w", name, err)
	}
	return tracks, nil
}
