package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"

	"github.com/charmbracelet/huh/spinner"
	"github.com/mattn/go-isatty"
	"github.com/urfave/cli/v2"

	"github.com/handiism/tracklist/internal/config"
	"github.com/handiism/tracklist/internal/importer"
	"github.com/handiism/tracklist/internal/logging"
	"github.com/handiism/tracklist/internal/playlist"
	"github.com/handiism/tracklist/internal/session"
	"github.com/handiism/tracklist/internal/store"
)

// app holds what every subcommand needs. It is built by the cli.App
// Before hook.
type app struct {
	settings *config.Settings
	logger   *slog.Logger
	store    store.Store
	sess     *session.Session
	manager  *importer.Manager
	out      io.Writer
	verbose  bool

	// onProgress receives importer events. Subcommands may replace it.
	onProgress func(importer.ProgressEvent)
}

func (a *app) setup(c *cli.Context) error {
	settings, err := config.Load(c.String("config"))
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}
	if c.IsSet("file") {
		settings.PlaylistFile = c.String("file")
	}
	if c.IsSet("data-dir") {
		settings.DataDir = c.String("data-dir")
	}
	if c.Bool("strict") {
		settings.StrictPositions = true
	}
	a.verbose = c.Bool("verbose")
	if a.verbose {
		settings.LogLevel = "debug"
	}
	a.settings = settings
	a.out = c.App.Writer
	a.logger = logging.New(c.App.ErrWriter, settings.LogLevel, settings.LogFormat)

	st, err := store.Open(c.Context, settings.ToStoreConfig())
	if err != nil {
		return fmt.Errorf("error opening storage: %w", err)
	}
	a.store = st

	a.onProgress = a.printEvent
	a.manager = importer.NewManager(settings, func(event importer.ProgressEvent) {
		a.onProgress(event)
	})

	a.sess = session.New(
		playlist.New(settings.ToListOptions()...),
		st,
		session.WithLogger(a.logger),
		session.WithPlaylistFile(settings.PlaylistFile),
		session.WithExporter(settings.ToPlaylistCreator()),
		session.WithImporter(a.manager),
	)

	a.logger.Debug("settings loaded",
		"playlist_file", settings.PlaylistFile,
		"storage", settings.Storage,
		"data_dir", settings.DataDir)
	return nil
}

func (a *app) close() error {
	if a.store == nil {
		return nil
	}
	return a.store.Close()
}

// load reads the configured playlist file. A missing file leaves the
// playlist empty.
func (a *app) load(ctx context.Context) error {
	res := a.sess.Execute(ctx, session.Request{Command: session.CmdLoad})
	if res.Status == session.StatusOK || errors.Is(res.Err, fs.ErrNotExist) {
		return nil
	}
	return cli.Exit(res.Message, 1)
}

// save writes the playlist back to the configured file.
func (a *app) save(ctx context.Context) error {
	return a.busy(ctx, "Saving...", func(ctx context.Context) error {
		res := a.sess.Execute(ctx, session.Request{Command: session.CmdSave})
		if res.Status != session.StatusOK {
			return cli.Exit(res.Message, 1)
		}
		a.logger.Info("playlist saved", "file", a.sess.PlaylistFile(), "songs", res.Count)
		return nil
	})
}

// execute runs req and prints its result. Failures and "nothing done"
// outcomes become exit codes 1 and 2.
func (a *app) execute(ctx context.Context, req session.Request) error {
	res := a.sess.Execute(ctx, req)
	switch res.Status {
	case session.StatusFailed:
		return cli.Exit(res.Message, 1)
	case session.StatusInfo:
		return cli.Exit(res.Message, 2)
	}
	return session.WriteResult(a.out, res)
}

// mutate loads the playlist, runs req and saves the result.
func (a *app) mutate(ctx context.Context, req session.Request) error {
	if err := a.load(ctx); err != nil {
		return err
	}
	if err := a.execute(ctx, req); err != nil {
		return err
	}
	return a.save(ctx)
}

// busy runs action behind a spinner when stdout is a terminal.
func (a *app) busy(ctx context.Context, title string, action func(context.Context) error) error {
	f, ok := a.out.(*os.File)
	if !ok || !isatty.IsTerminal(f.Fd()) || a.settings.Storage == store.BackendLocal {
		return action(ctx)
	}

	return spinner.New().
		Title(title).
		Context(ctx).
		ActionWithErr(action).
		Run()
}

func (a *app) printEvent(event importer.ProgressEvent) {
	if event.Level == importer.LevelVerbose && !a.verbose {
		return
	}
	fmt.Fprintln(a.out, eventPrefix(event.Level)+event.Message)
}

func eventPrefix(level importer.ProgressLevel) string {
	switch level {
	case importer.LevelError:
		return "❌ "
	case importer.LevelWarning:
		return "⚠️  "
	case importer.LevelSuccess:
		return "✅ "
	case importer.LevelInfo:
		return "ℹ️  "
	default:
		return "   "
	}
}
