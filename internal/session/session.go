package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/handiism/tracklist/internal/audio"
	"github.com/handiism/tracklist/internal/logging"
	"github.com/handiism/tracklist/internal/model"
	"github.com/handiism/tracklist/internal/playlist"
	"github.com/handiism/tracklist/internal/store"
)

// DefaultPlaylistFile is the file Save and Load use when none is given.
const DefaultPlaylistFile = "playlist.txt"

// Importer produces tracks from a directory or URL list.
type Importer interface {
	Import(ctx context.Context, source string) ([]model.Track, error)
}

// Result is the outcome of one command.
type Result struct {
	Command Command
	Status  Status
	// Message is the one-line human summary.
	Message string
	// Err is set for StatusInfo and StatusFailed.
	Err error

	// Listing is set by CmdDisplay.
	Listing *playlist.Listing
	// Match is set by a successful CmdSearch.
	Match *playlist.Match
	// Count is the number of tracks saved, loaded, exported or imported.
	Count int
	// Exit is set by CmdExit.
	Exit bool
}

type handler func(ctx context.Context, req Request) Result

// Session runs commands against a playlist.
type Session struct {
	list     *playlist.List
	store    store.Store
	creator  *audio.PlaylistCreator
	importer Importer
	logger   *slog.Logger
	file     string

	handlers map[Command]handler
}

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *slog.Logger) Option {
	return func(s *Session) { s.logger = l }
}

// WithPlaylistFile sets the default file for Save, Load and Export.
func WithPlaylistFile(name string) Option {
	return func(s *Session) {
		if name != "" {
			s.file = name
		}
	}
}

// WithExporter sets the playlist format used by CmdExport.
func WithExporter(c *audio.PlaylistCreator) Option {
	return func(s *Session) { s.creator = c }
}

// WithImporter enables CmdImport.
func WithImporter(imp Importer) Option {
	return func(s *Session) { s.importer = imp }
}

// New creates a Session over list, persisting through st.
func New(list *playlist.List, st store.Store, opts ...Option) *Session {
	s := &Session{
		list:    list,
		store:   st,
		creator: audio.NewPlaylistCreator(audio.FormatM3U, true),
		logger:  logging.Discard(),
		file:    DefaultPlaylistFile,
	}
	for _, opt := range opts {
		opt(s)
	}

	s.handlers = map[Command]handler{
		CmdAdd:         s.add,
		CmdRemove:      s.remove,
		CmdDisplay:     s.display,
		CmdMove:        s.move,
		CmdSearch:      s.search,
		CmdSave:        s.save,
		CmdLoad:        s.load,
		CmdShuffle:     s.shuffle,
		CmdToggleCycle: s.toggleCycle,
		CmdExit:        s.exit,
		CmdExport:      s.export,
		CmdImport:      s.importTracks,
	}
	return s
}

// List returns the playlist the session drives.
func (s *Session) List() *playlist.List { return s.list }

// PlaylistFile returns the default file for Save and Load.
func (s *Session) PlaylistFile() string { return s.file }

// Execute runs one command. It never panics on bad input: unknown
// commands and failed operations come back as a Result.
func (s *Session) Execute(ctx context.Context, req Request) Result {
	h, ok := s.handlers[req.Command]
	if !ok {
		return Result{Command: req.Command, Status: StatusInfo, Message: "Invalid option", Err: fmt.Errorf("unknown command %d", int(req.Command))}
	}

	res := h(ctx, req)
	res.Command = req.Command

	switch res.Status {
	case StatusFailed:
		s.logger.Warn("command failed", "command", req.Command.String(), "error", res.Err)
	default:
		s.logger.Debug("command done", "command", req.Command.String(), "status", res.Status.String(), "length", s.list.Len())
	}
	return res
}

func success(msg string) Result { return Result{Status: StatusOK, Message: msg} }

func info(msg string, err error) Result { return Result{Status: StatusInfo, Message: msg, Err: err} }

func failed(msg string, err error) Result {
	return Result{Status: StatusFailed, Message: fmt.Sprintf("%s: %v", msg, err), Err: err}
}

// listInfo maps the list's sentinel errors to their informational message.
func listInfo(err error) Result {
	switch {
	case errors.Is(err, playlist.ErrEmpty):
		return info("Playlist is empty", err)
	case errors.Is(err, playlist.ErrNotFound):
		return info("Song not found", err)
	case errors.Is(err, playlist.ErrInvalidPosition):
		return info("Invalid position", err)
	default:
		return failed("Unexpected error", err)
	}
}

func (s *Session) add(_ context.Context, req Request) Result {
	if err := s.list.InsertAt(req.Track, req.Position); err != nil {
		return listInfo(err)
	}
	return success(fmt.Sprintf("Added '%s'", req.Track.Title))
}

func (s *Session) remove(_ context.Context, req Request) Result {
	if _, err := s.list.RemoveByTitle(req.Title); err != nil {
		return listInfo(err)
	}
	return success("Song removed successfully")
}

func (s *Session) display(_ context.Context, _ Request) Result {
	listing := s.list.Display()
	res := success(fmt.Sprintf("Total duration: %d seconds", listing.TotalDuration))
	res.Listing = &listing
	res.Count = len(listing.Entries)
	return res
}

func (s *Session) move(_ context.Context, req Request) Result {
	if err := s.list.MoveTo(req.From, req.To); err != nil {
		return listInfo(err)
	}
	return success("Song moved")
}

func (s *Session) search(_ context.Context, req Request) Result {
	match, err := s.list.FindByTitle(req.Title)
	if err != nil {
		return listInfo(err)
	}
	res := success(fmt.Sprintf("Found '%s' by %s at position %d", match.Track.Title, match.Track.Artist, match.Position))
	res.Match = &match
	return res
}

func (s *Session) target(req Request) string {
	if req.Target != "" {
		return req.Target
	}
	return s.file
}

func (s *Session) save(ctx context.Context, req Request) Result {
	name := s.target(req)
	tracks := s.list.Tracks()
	if err := store.Save(ctx, s.store, name, tracks); err != nil {
		return failed("Unable to save playlist", err)
	}
	res := success(fmt.Sprintf("Playlist saved to %s (%d songs)", name, len(tracks)))
	res.Count = len(tracks)
	return res
}

func (s *Session) load(ctx context.Context, req Request) Result {
	name := s.target(req)
	tracks, err := store.Load(ctx, s.store, name)
	if err != nil {
		return failed("Unable to load playlist", err)
	}
	s.list.Replace(tracks)
	res := success(fmt.Sprintf("Playlist loaded from %s (%d songs)", name, len(tracks)))
	res.Count = len(tracks)
	return res
}

func (s *Session) shuffle(_ context.Context, _ Request) Result {
	s.list.Shuffle()
	return success("Playlist shuffled")
}

func (s *Session) toggleCycle(_ context.Context, _ Request) Result {
	if s.list.Len() == 0 {
		return info("Playlist is empty", playlist.ErrEmpty)
	}
	if s.list.ToggleCycle() {
		return success("Repeat mode enabled")
	}
	return success("Repeat mode disabled")
}

func (s *Session) exit(_ context.Context, _ Request) Result {
	res := success("Goodbye")
	res.Exit = true
	return res
}

// exportName derives the export file from the playlist file by swapping
// the extension: playlist.txt becomes playlist.m3u.
func (s *Session) exportName(req Request) string {
	if req.Target != "" {
		return req.Target
	}
	return strings.TrimSuffix(s.file, filepath.Ext(s.file)) + s.creator.Format().Extension()
}

func (s *Session) export(ctx context.Context, req Request) Result {
	name := s.exportName(req)
	tracks := s.list.Tracks()
	title := strings.TrimSuffix(filepath.Base(name), filepath.Ext(name))

	content, err := s.creator.CreatePlaylist(title, tracks)
	if err != nil {
		return failed("Unable to export playlist", err)
	}

	w, err := s.store.Create(ctx, name)
	if err != nil {
		return failed("Unable to export playlist", err)
	}
	if _, err := w.Write([]byte(content)); err != nil {
		_ = w.Close()
		return failed("Unable to export playlist", err)
	}
	if err := w.Close(); err != nil {
		return failed("Unable to export playlist", err)
	}

	res := success(fmt.Sprintf("Exported %d songs to %s", len(tracks), name))
	res.Count = len(tracks)
	return res
}

func (s *Session) importTracks(ctx context.Context, req Request) Result {
	if s.importer == nil {
		return failed("Unable to import", errors.New("importing is not configured"))
	}
	if strings.TrimSpace(req.Target) == "" {
		return info("Nothing to import", errors.New("no directory or URL given"))
	}

	tracks, err := s.importer.Import(ctx, req.Target)
	if err != nil {
		return failed("Unable to import", err)
	}
	for _, t := range tracks {
		if err := s.list.InsertAt(t, playlist.AppendPosition); err != nil {
			return failed("Unable to import", err)
		}
	}

	res := success(fmt.Sprintf("Imported %d songs", len(tracks)))
	res.Count = len(tracks)
	return res
}
