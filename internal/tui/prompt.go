package tui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/handiism/tracklist/internal/model"
	"github.com/handiism/tracklist/internal/playlist"
	"github.com/handiism/tracklist/internal/session"
)

var errNotNumber = errors.New("not a number")

type field struct {
	question    string
	placeholder string
}

var promptFields = map[session.Command][]field{
	session.CmdAdd: {
		{"Enter title:", "Song title"},
		{"Enter artist:", "Artist"},
		{"Enter duration (in seconds):", "180"},
		{"Enter position (or -1 to add to end):", "-1"},
	},
	session.CmdRemove: {{"Enter title to remove:", "Song title"}},
	session.CmdMove: {
		{"Enter current position:", "0"},
		{"Enter new position:", "0"},
	},
	session.CmdSearch: {{"Enter title to search for:", "Song title"}},
	session.CmdExport: {{"Enter export file (blank for default):", "playlist.m3u"}},
	session.CmdImport: {{"Enter directory or URLs to import:", "https://artist.bandcamp.com/album/name"}},
}

// prompt collects the answers one command needs, one field at a time.
type prompt struct {
	command session.Command
	fields  []field
	answers []string
}

func newPrompt(cmd session.Command) *prompt {
	return &prompt{command: cmd, fields: promptFields[cmd]}
}

func (p *prompt) question() string {
	if len(p.answers) < len(p.fields) {
		return p.fields[len(p.answers)].question
	}
	return ""
}

func (p *prompt) placeholder() string {
	if len(p.answers) < len(p.fields) {
		return p.fields[len(p.answers)].placeholder
	}
	return ""
}

// answer records value and reports whether more fields remain.
func (p *prompt) answer(value string) bool {
	p.answers = append(p.answers, value)
	return len(p.answers) < len(p.fields)
}

// request converts the answers into a session request.
func (p *prompt) request() (session.Request, error) {
	req := session.Request{Command: p.command}
	a := p.answers

	switch p.command {
	case session.CmdAdd:
		duration, err := number(a[2], 0)
		if err != nil {
			return req, fmt.Errorf("duration: %w", err)
		}
		pos, err := number(a[3], playlist.AppendPosition)
		if err != nil {
			return req, fmt.Errorf("position: %w", err)
		}
		req.Track = model.NewTrack(a[0], a[1], duration)
		req.Position = pos
	case session.CmdRemove, session.CmdSearch:
		req.Title = a[0]
	case session.CmdMove:
		from, err := number(a[0], 0)
		if err != nil {
			return req, fmt.Errorf("current position: %w", err)
		}
		to, err := number(a[1], 0)
		if err != nil {
			return req, fmt.Errorf("new position: %w", err)
		}
		req.From, req.To = from, to
	case session.CmdExport, session.CmdImport:
		req.Target = strings.TrimSpace(a[0])
	}
	return req, nil
}

// number parses s, returning def for a blank answer.
func number(s string, def int) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return def, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", errNotNumber, s)
	}
	return n, nil
}
