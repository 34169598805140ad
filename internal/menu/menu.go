// Package menu is the numbered text menu front end.
package menu

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/handiism/tracklist/internal/model"
	"github.com/handiism/tracklist/internal/session"
)

const options = `
Options:
1. Add Song
2. Remove Song
3. Display Playlist
4. Move Song
5. Search for a Song
6. Save Playlist
7. Load Playlist
8. Shuffle Playlist
9. Repeat Mode
10. Exit
11. Export Playlist
12. Import Songs
Choose an option: `

// errInput marks a prompt answer that could not be used.
var errInput = errors.New("invalid input")

// Menu reads selections from in and prints results to out.
type Menu struct {
	sess *session.Session
	in   *bufio.Scanner
	out  io.Writer
}

// New creates a Menu over sess.
func New(sess *session.Session, in io.Reader, out io.Writer) *Menu {
	return &Menu{
		sess: sess,
		in:   bufio.NewScanner(in),
		out:  out,
	}
}

// Run shows the menu until Exit is chosen, the input ends or ctx is
// cancelled. End of input is treated as Exit.
func (m *Menu) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		fmt.Fprint(m.out, options)
		line, err := m.readLine()
		if err != nil {
			if errors.Is(err, io.EOF) {
				fmt.Fprintln(m.out)
				return nil
			}
			return err
		}

		cmd, err := session.ParseCommand(line)
		if err != nil {
			fmt.Fprintln(m.out, "Invalid option")
			continue
		}

		req, err := m.prompt(cmd)
		if errors.Is(err, io.EOF) {
			fmt.Fprintln(m.out)
			return nil
		}
		if err != nil {
			fmt.Fprintln(m.out, err)
			continue
		}

		res := m.sess.Execute(ctx, req)
		if err := session.WriteResult(m.out, res); err != nil {
			return err
		}
		if res.Exit {
			return nil
		}
	}
}

// prompt asks for the arguments cmd needs.
func (m *Menu) prompt(cmd session.Command) (session.Request, error) {
	req := session.Request{Command: cmd}
	var err error

	switch cmd {
	case session.CmdAdd:
		var title, artist string
		var duration int
		if title, err = m.ask("Enter title: "); err != nil {
			return req, err
		}
		if artist, err = m.ask("Enter artist: "); err != nil {
			return req, err
		}
		if duration, err = m.askInt("Enter duration (in seconds): "); err != nil {
			return req, err
		}
		if req.Position, err = m.askInt("Enter position (or -1 to add to end): "); err != nil {
			return req, err
		}
		req.Track = model.NewTrack(title, artist, duration)

	case session.CmdRemove:
		req.Title, err = m.ask("Enter title to remove: ")

	case session.CmdMove:
		if req.From, err = m.askInt("Enter current position: "); err != nil {
			return req, err
		}
		req.To, err = m.askInt("Enter new position: ")

	case session.CmdSearch:
		req.Title, err = m.ask("Enter title to search for: ")

	case session.CmdExport:
		req.Target, err = m.ask("Enter export file (blank for default): ")
		req.Target = strings.TrimSpace(req.Target)

	case session.CmdImport:
		req.Target, err = m.ask("Enter directory or URLs to import: ")
	}

	return req, err
}

func (m *Menu) ask(question string) (string, error) {
	fmt.Fprint(m.out, question)
	return m.readLine()
}

func (m *Menu) askInt(question string) (int, error) {
	answer, err := m.ask(question)
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(strings.TrimSpace(answer))
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a number", errInput, strings.TrimSpace(answer))
	}
	return n, nil
}

func (m *Menu) readLine() (string, error) {
	if !m.in.Scan() {
		if err := m.in.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return strings.TrimSuffix(m.in.Text(), "\r"), nil
}
