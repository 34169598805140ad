package main

import (
	"fmt"
	"strings"

	"github.com/k0kubun/go-ansi"
	"github.com/schollz/progressbar/v3"
	"github.com/urfave/cli/v2"

	"github.com/handiism/tracklist/internal/importer"
	"github.com/handiism/tracklist/internal/session"
)

func (a *app) runImport(c *cli.Context) error {
	if c.NArg() == 0 {
		return cli.Exit(errNoSource.Error(), 1)
	}
	if c.Bool("discography") {
		a.settings.ImportDiscography = true
	}

	var bar *progressbar.ProgressBar
	a.onProgress = func(event importer.ProgressEvent) {
		if event.Total > 0 {
			if bar == nil {
				bar = newImportBar(event.Total)
			}
			bar.ChangeMax(event.Total)
			_ = bar.Set(event.Done)
		}
		if event.Level == importer.LevelVerbose && !a.verbose {
			return
		}
		if bar != nil {
			_ = bar.Clear()
		}
		a.printEvent(event)
	}

	source := strings.Join(c.Args().Slice(), "\n")
	if err := a.mutate(c.Context, session.Request{Command: session.CmdImport, Target: source}); err != nil {
		return err
	}
	if bar != nil {
		_ = bar.Finish()
		fmt.Fprintln(a.out)
	}
	return nil
}

func newImportBar(total int) *progressbar.ProgressBar {
	return progressbar.NewOptions(
		total,
		progressbar.OptionSetWriter(ansi.NewAnsiStdout()),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetTheme(progressbar.ThemeASCII),
		progressbar.OptionFullWidth(),
		progressbar.OptionShowCount(),
		progressbar.OptionSetDescription("[cyan]Importing[reset]"),
	)
}
