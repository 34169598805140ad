package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/handiism/tracklist/internal/config"
	"github.com/handiism/tracklist/internal/importer"
	"github.com/handiism/tracklist/internal/logging"
	"github.com/handiism/tracklist/internal/playlist"
	"github.com/handiism/tracklist/internal/session"
	"github.com/handiism/tracklist/internal/store"
	"github.com/handiism/tracklist/internal/tui"
)

func main() {
	var (
		configFlag = flag.String("config", config.DefaultPath(), "Path to config file")
		fileFlag   = flag.String("file", "", "Playlist file (overrides config)")
		logFlag    = flag.String("log", "", "Write logs to this file instead of discarding them")
	)
	flag.Parse()

	if err := run(*configFlag, *fileFlag, *logFlag); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath, file, logPath string) error {
	settings, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}
	if file != "" {
		settings.PlaylistFile = file
	}

	// The alt screen owns the terminal, so logs go to a file or nowhere.
	logger := logging.Discard()
	if logPath != "" {
		f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return err
		}
		defer f.Close()
		logger = logging.New(f, settings.LogLevel, settings.LogFormat)
	}

	ctx := context.Background()
	st, err := store.Open(ctx, settings.ToStoreConfig())
	if err != nil {
		return fmt.Errorf("error opening storage: %w", err)
	}
	defer st.Close()

	var p *tea.Program
	manager := importer.NewManager(settings, func(event importer.ProgressEvent) {
		if p != nil {
			p.Send(tui.ProgressMsg{Event: event})
		}
	})

	sess := session.New(
		playlist.New(settings.ToListOptions()...),
		st,
		session.WithLogger(logger),
		session.WithPlaylistFile(settings.PlaylistFile),
		session.WithExporter(settings.ToPlaylistCreator()),
		session.WithImporter(manager),
	)
	preload(ctx, sess, logger)

	p = tui.NewProgram(tui.NewModel(sess, tui.WithTracker(manager)))
	_, err = p.Run()
	return err
}

// preload loads the playlist file when it exists.
func preload(ctx context.Context, sess *session.Session, logger *slog.Logger) {
	res := sess.Execute(ctx, session.Request{Command: session.CmdLoad})
	if res.Status != session.StatusOK && !errors.Is(res.Err, fs.ErrNotExist) {
		logger.Warn("playlist not loaded", "file", sess.PlaylistFile(), "error", res.Err)
	}
}

