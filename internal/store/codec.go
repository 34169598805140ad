package store

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/handiism/tracklist/internal/model"
)

// ErrFormat is matched by every *FormatError.
var ErrFormat = errors.New("malformed playlist record")

// FormatError reports a record that could not be decoded.
type FormatError struct {
	// Line is the 1-based line number in the input.
	Line int
	Text string
	Err  error
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("line %d %q: %v", e.Line, e.Text, e.Err)
}

func (e *FormatError) Unwrap() error { return e.Err }

// Is makes errors.Is(err, ErrFormat) true for any FormatError.
func (e *FormatError) Is(target error) bool { return target == ErrFormat }

var (
	errMissingDelimiter = errors.New("expected title,artist,duration")
	errBadDuration      = errors.New("duration is not an integer")
)

// Encode writes one "title,artist,duration" line per track. Fields are
// written as they are; a comma inside a title or artist is not escaped.
func Encode(w io.Writer, tracks []model.Track) error {
	bw := bufio.NewWriter(w)
	for _, t := range tracks {
		if _, err := fmt.Fprintf(bw, "%s,%s,%d\n", t.Title, t.Artist, t.Duration); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// Decode reads the records written by Encode.
//
// A line is split at its first and second comma only, so everything after
// the second comma is the duration. Blank lines are skipped and a trailing
// carriage return is ignored. The first bad line aborts decoding with a
// *FormatError.
func Decode(r io.Reader) ([]model.Track, error) {
	var tracks []model.Track

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSuffix(sc.Text(), "\r")
		if strings.TrimSpace(text) == "" {
			continue
		}

		t, err := decodeLine(text)
		if err != nil {
			return nil, &FormatError{Line: line, Text: text, Err: err}
		}
		tracks = append(tracks, t)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}

	return tracks, nil
}

func decodeLine(text string) (model.Track, error) {
	title, rest, ok := strings.Cut(text, ",")
	if !ok {
		return model.Track{}, errMissingDelimiter
	}
	artist, durationText, ok := strings.Cut(rest, ",")
	if !ok {
		return model.Track{}, errMissingDelimiter
	}

	duration, err := strconv.Atoi(strings.TrimSpace(durationText))
	if err != nil {
		return model.Track{}, fmt.Errorf("%w: %q", errBadDuration, durationText)
	}

	return model.NewTrack(title, artist, duration), nil
}
