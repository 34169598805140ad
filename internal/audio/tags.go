package audio

import (
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/bogem/id3v2"

	"github.com/handiism/tracklist/internal/model"
)

// ErrNoTitle is returned by ReadTrack when a file has no usable title.
var ErrNoTitle = errors.New("no title tag")

// TagReader turns tagged MP3 files into tracks.
//
// It reads these ID3v2 frames:
//   - TIT2 (Title)
//   - TPE1 (Lead artist), falling back to TPE2 (Album artist)
//   - TLEN (Length, milliseconds)
//
// Example:
//
//	reader := NewTagReader(true)
//	track, err := reader.ReadTrack("/music/inbox/01 Song.mp3")
type TagReader struct {
	// fileNameFallback uses the file name as title when TIT2 is missing.
	fileNameFallback bool
}

// NewTagReader creates a TagReader. With fileNameFallback set, a file
// without a title frame is titled after its base name.
func NewTagReader(fileNameFallback bool) *TagReader {
	return &TagReader{fileNameFallback: fileNameFallback}
}

// ReadTrack parses the ID3 tag of the MP3 file at path. The returned track
// has Source set to path. A missing TLEN frame gives a zero duration.
func (r *TagReader) ReadTrack(path string) (model.Track, error) {
	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		return model.Track{}, fmt.Errorf("read tags of %s: %w", path, err)
	}
	defer tag.Close()

	title := strings.TrimSpace(tag.Title())
	if title == "" {
		if !r.fileNameFallback {
			return model.Track{}, fmt.Errorf("%s: %w", path, ErrNoTitle)
		}
		title = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}

	artist := strings.TrimSpace(tag.Artist())
	if artist == "" {
		artist = strings.TrimSpace(tag.GetTextFrame("TPE2").Text)
	}

	track := model.NewTrack(title, artist, lengthSeconds(tag.GetTextFrame("TLEN").Text))
	track.Source = path
	return track, nil
}

// lengthSeconds converts a TLEN value in milliseconds to whole seconds,
// rounding to nearest. Unparseable values give 0.
func lengthSeconds(tlen string) int {
	ms, err := strconv.Atoi(strings.TrimSpace(tlen))
	if err != nil || ms < 0 {
		return 0
	}
	return (ms + 500) / 1000
}
