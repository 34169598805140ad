package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/urfave/cli/v2"

	"github.com/handiism/tracklist/internal/config"
	"github.com/handiism/tracklist/internal/menu"
	"github.com/handiism/tracklist/internal/model"
	"github.com/handiism/tracklist/internal/playlist"
	"github.com/handiism/tracklist/internal/session"
)

func main() {
	// Handle interrupts
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		fmt.Println("\nInterrupted, cancelling...")
		cancel()
	}()

	if err := newApp().RunContext(ctx, os.Args); err != nil {
		if ctx.Err() != nil {
			os.Exit(130)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	a := &app{}

	return &cli.App{
		Name:  "tracklist",
		Usage: "Manage an ordered playlist of songs",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to config file (.yaml, .yml or .json)",
				Value:   config.DefaultPath(),
			},
			&cli.StringFlag{
				Name:    "file",
				Aliases: []string{"f"},
				Usage:   "Playlist file (overrides config)",
			},
			&cli.StringFlag{
				Name:  "data-dir",
				Usage: "Directory for playlist files with local storage (overrides config)",
			},
			&cli.BoolFlag{
				Name:  "strict",
				Usage: "Reject out-of-range positions instead of clamping them",
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "Show verbose output",
			},
		},
		Before: a.setup,
		After: func(*cli.Context) error {
			return a.close()
		},
		Action: a.runMenu,
		Commands: []*cli.Command{
			{
				Name:   "menu",
				Usage:  "Start the interactive numbered menu (default)",
				Action: a.runMenu,
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "load", Usage: "Load the playlist file before showing the menu"},
				},
			},
			{
				Name:    "show",
				Aliases: []string{"display", "ls"},
				Usage:   "Print the playlist",
				Action: func(c *cli.Context) error {
					if err := a.load(c.Context); err != nil {
						return err
					}
					return a.execute(c.Context, session.Request{Command: session.CmdDisplay})
				},
			},
			{
				Name:      "add",
				Usage:     "Add a song",
				ArgsUsage: "TITLE ARTIST DURATION",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:    "position",
						Aliases: []string{"p"},
						Usage:   "0-based insert position, -1 appends",
						Value:   playlist.AppendPosition,
					},
				},
				Action: func(c *cli.Context) error {
					if c.NArg() != 3 {
						return cli.Exit("add needs TITLE ARTIST DURATION", 1)
					}
					duration, err := intArg(c, 2, "DURATION")
					if err != nil {
						return err
					}
					return a.mutate(c.Context, session.Request{
						Command:  session.CmdAdd,
						Track:    model.NewTrack(c.Args().Get(0), c.Args().Get(1), duration),
						Position: c.Int("position"),
					})
				},
			},
			{
				Name:      "remove",
				Aliases:   []string{"rm"},
				Usage:     "Remove the first song with TITLE",
				ArgsUsage: "TITLE",
				Action: func(c *cli.Context) error {
					if c.NArg() != 1 {
						return cli.Exit("remove needs TITLE", 1)
					}
					return a.mutate(c.Context, session.Request{Command: session.CmdRemove, Title: c.Args().First()})
				},
			},
			{
				Name:      "move",
				Aliases:   []string{"mv"},
				Usage:     "Move the song at FROM to TO (0-based)",
				ArgsUsage: "FROM TO",
				Action: func(c *cli.Context) error {
					if c.NArg() != 2 {
						return cli.Exit("move needs FROM TO", 1)
					}
					from, err := intArg(c, 0, "FROM")
					if err != nil {
						return err
					}
					to, err := intArg(c, 1, "TO")
					if err != nil {
						return err
					}
					return a.mutate(c.Context, session.Request{Command: session.CmdMove, From: from, To: to})
				},
			},
			{
				Name:      "search",
				Aliases:   []string{"find"},
				Usage:     "Find the first song with TITLE",
				ArgsUsage: "TITLE",
				Action: func(c *cli.Context) error {
					if c.NArg() != 1 {
						return cli.Exit("search needs TITLE", 1)
					}
					if err := a.load(c.Context); err != nil {
						return err
					}
					return a.execute(c.Context, session.Request{Command: session.CmdSearch, Title: c.Args().First()})
				},
			},
			{
				Name:  "shuffle",
				Usage: "Shuffle the playlist",
				Action: func(c *cli.Context) error {
					return a.mutate(c.Context, session.Request{Command: session.CmdShuffle})
				},
			},
			{
				Name:  "export",
				Usage: "Write the playlist as M3U, PLS, WPL, ZPL or CSV",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "format", Usage: "m3u, pls, wpl, zpl or csv (overrides config)"},
					&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Usage: "Output file, defaults to the playlist file with the format's extension"},
				},
				Action: a.runExport,
			},
			{
				Name:      "import",
				Usage:     "Append songs from a directory of MP3 files or from Bandcamp URLs",
				ArgsUsage: "DIR | URL...",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "discography", Usage: "Import every release of an artist URL"},
				},
				Action: a.runImport,
			},
		},
	}
}

func (a *app) runMenu(c *cli.Context) error {
	if c.Bool("load") {
		if err := a.load(c.Context); err != nil {
			return err
		}
	}
	return menu.New(a.sess, os.Stdin, a.out).Run(c.Context)
}

func (a *app) runExport(c *cli.Context) error {
	if c.IsSet("format") {
		a.settings.ExportFormat = c.String("format")
		if err := a.settings.Validate(); err != nil {
			return cli.Exit(err.Error(), 1)
		}
		a.sess = session.New(
			a.sess.List(),
			a.store,
			session.WithLogger(a.logger),
			session.WithPlaylistFile(a.settings.PlaylistFile),
			session.WithExporter(a.settings.ToPlaylistCreator()),
		)
	}
	if err := a.load(c.Context); err != nil {
		return err
	}
	return a.busy(c.Context, "Exporting...", func(ctx context.Context) error {
		return a.execute(ctx, session.Request{Command: session.CmdExport, Target: c.String("out")})
	})
}

func intArg(c *cli.Context, i int, name string) (int, error) {
	n, err := strconv.Atoi(c.Args().Get(i))
	if err != nil {
		return 0, cli.Exit(fmt.Sprintf("%s must be an integer, got %q", name, c.Args().Get(i)), 1)
	}
	return n, nil
}

var errNoSource = errors.New("import needs a directory or at least one URL")
