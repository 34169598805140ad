package importer

import (
	"context"
	"fmt"
	"math"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/handiism/tracklist/internal/audio"
	"github.com/handiism/tracklist/internal/bandcamp"
	"github.com/handiism/tracklist/internal/config"
	"github.com/handiism/tracklist/internal/http"
	ioutils "github.com/handiism/tracklist/internal/io"
	"github.com/handiism/tracklist/internal/model"
)

// ProgressLevel indicates the severity/type of a progress message.
type ProgressLevel int

const (
	LevelInfo ProgressLevel = iota
	LevelVerbose
	LevelWarning
	LevelError
	LevelSuccess
)

// ProgressEvent represents an import progress update.
//
// Events that finish an item also carry Done and Total, the number of
// items finished so far and the number of items in the current batch.
type ProgressEvent struct {
	Message string
	Level   ProgressLevel
	Done    int
	Total   int
}

// Manager collects tracks from MP3 directories and Bandcamp pages.
//
// Items are processed concurrently, up to MaxConcurrentImports at a time.
// An item that fails is reported through the progress callback and
// skipped. The returned tracks are always in a stable order: sorted file
// path for directories, input order then album order for URLs.
type Manager struct {
	settings    *config.Settings
	httpClient  *http.Client
	parser      *bandcamp.Parser
	discography *bandcamp.Discography
	tags        *audio.TagReader

	total atomic.Int32
	done  atomic.Int32

	progressMu sync.Mutex
	onProgress func(ProgressEvent)
}

// NewManager creates a new import Manager. onProgress may be nil.
func NewManager(settings *config.Settings, onProgress func(ProgressEvent)) *Manager {
	return &Manager{
		settings:    settings,
		httpClient:  http.NewClient(),
		parser:      bandcamp.NewParser(),
		discography: bandcamp.NewDiscography(),
		tags:        audio.NewTagReader(true),
		onProgress:  onProgress,
	}
}

// IsURL reports whether source should be imported as URLs rather than as
// a directory.
func IsURL(source string) bool {
	source = strings.TrimSpace(source)
	return strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://")
}

// Import dispatches to ImportURLs or ImportDirectory depending on source.
func (m *Manager) Import(ctx context.Context, source string) ([]model.Track, error) {
	if IsURL(source) {
		return m.ImportURLs(ctx, source)
	}
	return m.ImportDirectory(ctx, strings.TrimSpace(source))
}

// GetProgress returns the items finished and the items queued by the
// current or last import.
func (m *Manager) GetProgress() (done, total int) {
	return int(m.done.Load()), int(m.total.Load())
}

// ImportDirectory reads the ID3 tags of every .mp3 file below dir.
func (m *Manager) ImportDirectory(ctx context.Context, dir string) ([]model.Track, error) {
	files, err := ioutils.ListFiles(dir, ".mp3")
	if err != nil {
		return nil, fmt.Errorf("unable to list %s: %w", dir, err)
	}
	m.start(len(files))
	m.progress(ProgressEvent{Message: fmt.Sprintf("Found %d MP3 files in %s", len(files), dir), Level: LevelInfo})

	results := make([]*model.Track, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(m.settings.MaxConcurrentImports)

	for i, path := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			track, err := m.tags.ReadTrack(path)
			if err != nil {
				m.finish(fmt.Sprintf("Skipping %s: %v", filepath.Base(path), err), LevelWarning)
				return nil
			}
			results[i] = &track
			m.finish(fmt.Sprintf("Read %s", track), LevelVerbose)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	tracks := flatten(results)
	m.summary(len(tracks), len(files), "files")
	return tracks, nil
}

// ImportURLs fetches every album or track page named in input. input may
// hold several URLs separated by whitespace or commas. Artist URLs expand
// to the artist's discography when ImportDiscography is set.
func (m *Manager) ImportURLs(ctx context.Context, input string) ([]model.Track, error) {
	var albumURLs []string
	for _, inputURL := range parseInputURLs(input) {
		urls, err := m.getAlbumURLs(ctx, inputURL)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			m.progress(ProgressEvent{Message: fmt.Sprintf("Error getting albums from %s: %v", inputURL, err), Level: LevelError})
			continue
		}
		albumURLs = append(albumURLs, urls...)
	}
	m.start(len(albumURLs))

	albums := make([]*model.Album, len(albumURLs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(m.settings.MaxConcurrentImports)

	for i, albumURL := range albumURLs {
		g.Go(func() error {
			m.progress(ProgressEvent{Message: fmt.Sprintf("Fetching album info: %s", albumURL), Level: LevelVerbose})

			html, err := m.fetch(gctx, albumURL)
			if err != nil {
				if gctx.Err() != nil {
					return gctx.Err()
				}
				m.finish(fmt.Sprintf("Error fetching %s: %v", albumURL, err), LevelError)
				return nil
			}

			album, err := m.parser.ParseAlbumPage(html)
			if err != nil {
				m.finish(fmt.Sprintf("Error parsing %s: %v", albumURL, err), LevelError)
				return nil
			}

			albums[i] = album
			m.finish(fmt.Sprintf("Found album: %s (%d tracks)", album.Summary(), len(album.Tracks)), LevelInfo)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	var tracks []model.Track
	fetched := 0
	for _, album := range albums {
		if album == nil {
			continue
		}
		fetched++
		tracks = append(tracks, album.Tracks...)
	}
	m.summary(fetched, len(albumURLs), "pages")
	return tracks, nil
}

func parseInputURLs(input string) []string {
	fields := strings.FieldsFunc(input, func(r rune) bool {
		return r == ',' || r == '\n' || r == '\r' || r == ' ' || r == '\t'
	})
	var urls []string
	for _, f := range fields {
		if IsURL(f) {
			urls = append(urls, f)
		}
	}
	return urls
}

func (m *Manager) getAlbumURLs(ctx context.Context, inputURL string) ([]string, error) {
	if bandcamp.IsReleaseURL(inputURL) || !m.settings.ImportDiscography {
		return []string{inputURL}, nil
	}

	musicURL, err := bandcamp.MusicPageURL(inputURL)
	if err != nil {
		return nil, err
	}
	html, err := m.fetch(ctx, musicURL)
	if err != nil {
		return nil, err
	}

	paths, err := m.discography.GetAlbumURLs(html)
	if err != nil {
		return nil, err
	}
	return bandcamp.ResolveURLs(musicURL, paths)
}

func (m *Manager) fetch(ctx context.Context, url string) (string, error) {
	var (
		html string
		err  error
	)
	for tries := 0; tries < m.settings.FetchMaxRetries; tries++ {
		html, err = m.httpClient.GetString(ctx, url)
		if err == nil || ctx.Err() != nil {
			break
		}
		if tries+1 < m.settings.FetchMaxRetries {
			m.progress(ProgressEvent{Message: fmt.Sprintf("Retry %d/%d for %s", tries+1, m.settings.FetchMaxRetries, url), Level: LevelWarning})
			m.waitForRetry(ctx, tries)
		}
	}
	return html, err
}

func (m *Manager) waitForRetry(ctx context.Context, tries int) {
	cooldown := m.settings.FetchRetryCooldown * math.Pow(m.settings.FetchRetryExponent, float64(tries))
	select {
	case <-ctx.Done():
	case <-time.After(time.Duration(cooldown * float64(time.Second))):
	}
}

func (m *Manager) start(total int) {
	m.total.Store(int32(total))
	m.done.Store(0)
}

func (m *Manager) finish(message string, level ProgressLevel) {
	done := m.done.Add(1)
	m.progress(ProgressEvent{
		Message: message,
		Level:   level,
		Done:    int(done),
		Total:   int(m.total.Load()),
	})
}

func (m *Manager) summary(ok, total int, what string) {
	level := LevelSuccess
	if ok < total {
		level = LevelWarning
	}
	m.progress(ProgressEvent{Message: fmt.Sprintf("Imported %d of %d %s", ok, total, what), Level: level})
}

// progress delivers events one at a time, so onProgress need not be
// safe for concurrent use.
func (m *Manager) progress(event ProgressEvent) {
	if m.onProgress == nil {
		return
	}
	m.progressMu.Lock()
	defer m.progressMu.Unlock()
	m.onProgress(event)
}

func flatten(results []*model.Track) []model.Track {
	tracks := make([]model.Track, 0, len(results))
	for _, t := range results {
		if t != nil {
			tracks = append(tracks, *t)
		}
	}
	return tracks
}
