package session

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/handiism/tracklist/internal/model"
)

// Command identifies one session operation. The numeric values are the
// menu selections.
type Command int

const (
	CmdAdd Command = iota + 1
	CmdRemove
	CmdDisplay
	CmdMove
	CmdSearch
	CmdSave
	CmdLoad
	CmdShuffle
	CmdToggleCycle
	CmdExit
	CmdExport
	CmdImport
)

var commandNames = [...]string{
	CmdAdd:         "add",
	CmdRemove:      "remove",
	CmdDisplay:     "display",
	CmdMove:        "move",
	CmdSearch:      "search",
	CmdSave:        "save",
	CmdLoad:        "load",
	CmdShuffle:     "shuffle",
	CmdToggleCycle: "repeat",
	CmdExit:        "exit",
	CmdExport:      "export",
	CmdImport:      "import",
}

// Commands lists every command in menu order.
func Commands() []Command {
	cmds := make([]Command, 0, len(commandNames)-1)
	for c := CmdAdd; c <= CmdImport; c++ {
		cmds = append(cmds, c)
	}
	return cmds
}

func (c Command) String() string {
	if c.Valid() {
		return commandNames[c]
	}
	return "Command(" + strconv.Itoa(int(c)) + ")"
}

// Valid reports whether c is a known command.
func (c Command) Valid() bool {
	return c >= CmdAdd && c <= CmdImport
}

// ParseCommand accepts a menu number or a command name.
func ParseCommand(s string) (Command, error) {
	s = strings.TrimSpace(s)
	if n, err := strconv.Atoi(s); err == nil {
		if c := Command(n); c.Valid() {
			return c, nil
		}
		return 0, fmt.Errorf("unknown command %q", s)
	}
	for c := CmdAdd; c <= CmdImport; c++ {
		if strings.EqualFold(commandNames[c], s) {
			return c, nil
		}
	}
	return 0, fmt.Errorf("unknown command %q", s)
}

// Request carries a command and the arguments it reads.
type Request struct {
	Command Command

	// Track and Position are read by CmdAdd.
	Track    model.Track
	Position int

	// Title is read by CmdRemove and CmdSearch.
	Title string

	// From and To are read by CmdMove.
	From int
	To   int

	// Target is the file for CmdSave, CmdLoad and CmdExport, and the
	// directory or URL list for CmdImport. An empty Target means the
	// session's playlist file (or its export counterpart).
	Target string
}

// Status classifies a Result.
type Status int

const (
	// StatusOK means the command did what it was asked.
	StatusOK Status = iota
	// StatusInfo means the command ran but had nothing to act on, such as
	// a missing title. The playlist is unchanged.
	StatusInfo
	// StatusFailed means the command hit an I/O or format error. The
	// playlist is unchanged.
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusInfo:
		return "info"
	default:
		return "failed"
	}
}
