package audio

import (
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"
	"time"

	ioutils "github.com/handiism/tracklist/internal/io"
	"github.com/handiism/tracklist/internal/model"
)

// PlaylistFormat represents supported playlist file formats.
//
// Each format has different features and compatibility:
//   - M3U: Simple text format, widely supported
//   - PLS: INI-style format, used by Winamp
//   - WPL: XML format, Windows Media Player
//   - ZPL: XML format, Zune/Groove Music
//   - CSV: title,artist,duration rows for spreadsheets
type PlaylistFormat int

const (
	// FormatM3U creates .m3u files (most compatible).
	// Can be extended with EXTINF lines for duration/title info.
	FormatM3U PlaylistFormat = iota

	// FormatPLS creates .pls files (Winamp/SHOUTcast format).
	FormatPLS

	// FormatWPL creates .wpl files (Windows Media Player).
	FormatWPL

	// FormatZPL creates .zpl files (Zune/Groove Music).
	FormatZPL

	// FormatCSV creates .csv files with a header row.
	FormatCSV
)

var formatNames = map[PlaylistFormat]string{
	FormatM3U: "m3u",
	FormatPLS: "pls",
	FormatWPL: "wpl",
	FormatZPL: "zpl",
	FormatCSV: "csv",
}

// ParseFormat maps a format name such as "m3u" to its PlaylistFormat.
func ParseFormat(name string) (PlaylistFormat, error) {
	name = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(name), "."))
	for f, n := range formatNames {
		if n == name {
			return f, nil
		}
	}
	return FormatM3U, fmt.Errorf("unknown playlist format %q", name)
}

func (f PlaylistFormat) String() string {
	if n, ok := formatNames[f]; ok {
		return n
	}
	return fmt.Sprintf("PlaylistFormat(%d)", int(f))
}

// Extension returns the file extension for the format, with the dot.
func (f PlaylistFormat) Extension() string {
	return "." + f.String()
}

// Location returns the path a playlist entry points at: the track's Source
// when known, otherwise a sanitized "Artist - Title.mp3".
func Location(t model.Track) string {
	if t.Source != "" {
		return t.Source
	}
	return ioutils.SanitizeFileName(fmt.Sprintf("%s - %s", t.Artist, t.Title)) + ".mp3"
}

// PlaylistCreator renders a track sequence in one of the playlist formats.
//
// Example:
//
//	creator := NewPlaylistCreator(FormatM3U, true)
//	content, err := creator.CreatePlaylist("Road Trip", list.Tracks())
//
//	// Result:
//	// #EXTM3U
//	// #EXTINF:180,Artist - Song Title
//	// Artist - Song Title.mp3
type PlaylistCreator struct {
	format   PlaylistFormat
	extended bool // For M3U: include EXTINF lines with duration/title
}

// NewPlaylistCreator creates a new PlaylistCreator.
//
// extended only affects M3U output.
func NewPlaylistCreator(format PlaylistFormat, extended bool) *PlaylistCreator {
	return &PlaylistCreator{
		format:   format,
		extended: extended,
	}
}

// Format returns the output format.
func (p *PlaylistCreator) Format() PlaylistFormat {
	return p.format
}

// CreatePlaylist renders tracks in order. title names the playlist in the
// formats that carry one.
func (p *PlaylistCreator) CreatePlaylist(title string, tracks []model.Track) (string, error) {
	switch p.format {
	case FormatPLS:
		return p.createPLS(tracks), nil
	case FormatWPL:
		return p.createWPL(title, tracks), nil
	case FormatZPL:
		return p.createZPL(title, tracks), nil
	case FormatCSV:
		return p.createCSV(tracks)
	default:
		return p.createM3U(tracks), nil
	}
}

// createM3U generates an M3U playlist.
//
// Extended M3U format (when extended=true):
//
//	#EXTM3U
//	#EXTINF:180,Artist - Title
//	filename1.mp3
func (p *PlaylistCreator) createM3U(tracks []model.Track) string {
	var sb strings.Builder

	if p.extended {
		sb.WriteString("#EXTM3U\n")
	}

	for _, track := range tracks {
		if p.extended {
			fmt.Fprintf(&sb, "#EXTINF:%d,%s - %s\n", track.Duration, track.Artist, track.Title)
		}
		sb.WriteString(Location(track) + "\n")
	}

	return sb.String()
}

// createPLS generates a PLS playlist.
//
//	[playlist]
//	File1=filename1.mp3
//	Title1=Artist - Song Title
//	Length1=180
//	NumberOfEntries=1
//	Version=2
func (p *PlaylistCreator) createPLS(tracks []model.Track) string {
	var sb strings.Builder

	sb.WriteString("[playlist]\n")

	for i, track := range tracks {
		idx := i + 1
		fmt.Fprintf(&sb, "File%d=%s\n", idx, Location(track))
		fmt.Fprintf(&sb, "Title%d=%s - %s\n", idx, track.Artist, track.Title)
		fmt.Fprintf(&sb, "Length%d=%d\n", idx, track.Duration)
	}

	fmt.Fprintf(&sb, "NumberOfEntries=%d\n", len(tracks))
	sb.WriteString("Version=2\n")

	return sb.String()
}

func (p *PlaylistCreator) createWPL(title string, tracks []model.Track) string {
	var sb strings.Builder

	sb.WriteString("<?wpl version=\"1.0\"?>\n")
	sb.WriteString("<smil>\n")
	sb.WriteString("  <head>\n")
	fmt.Fprintf(&sb, "    <title>%s</title>\n", escapeXML(title))
	sb.WriteString("  </head>\n")
	sb.WriteString("  <body>\n")
	sb.WriteString("    <seq>\n")

	for _, track := range tracks {
		fmt.Fprintf(&sb, "      <media src=\"%s\"/>\n", escapeXML(Location(track)))
	}

	sb.WriteString("    </seq>\n")
	sb.WriteString("  </body>\n")
	sb.WriteString("</smil>\n")

	return sb.String()
}

// createZPL is WPL plus per-entry title, artist and duration attributes.
func (p *PlaylistCreator) createZPL(title string, tracks []model.Track) string {
	var sb strings.Builder

	sb.WriteString("<?zpl version=\"2.0\"?>\n")
	sb.WriteString("<smil>\n")
	sb.WriteString("  <head>\n")
	fmt.Fprintf(&sb, "    <title>%s</title>\n", escapeXML(title))
	sb.WriteString("    <meta name=\"Generator\" content=\"tracklist\"/>\n")
	fmt.Fprintf(&sb, "    <meta name=\"ItemCount\" content=\"%d\"/>\n", len(tracks))
	sb.WriteString("  </head>\n")
	sb.WriteString("  <body>\n")
	sb.WriteString("    <seq>\n")

	for _, track := range tracks {
		duration := time.Duration(track.Duration) * time.Second
		fmt.Fprintf(&sb, "      <media src=\"%s\" trackTitle=\"%s\" trackArtist=\"%s\" duration=\"%d\"/>\n",
			escapeXML(Location(track)),
			escapeXML(track.Title),
			escapeXML(track.Artist),
			duration.Milliseconds())
	}

	sb.WriteString("    </seq>\n")
	sb.WriteString("  </body>\n")
	sb.WriteString("</smil>\n")

	return sb.String()
}

func (p *PlaylistCreator) createCSV(tracks []model.Track) (string, error) {
	var sb strings.Builder
	w := csv.NewWriter(&sb)

	if err := w.Write([]string{"title", "artist", "duration"}); err != nil {
		return "", err
	}
	for _, track := range tracks {
		if err := w.Write([]string{track.Title, track.Artist, strconv.Itoa(track.Duration)}); err != nil {
			return "", err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}

	return sb.String(), nil
}

// escapeXML escapes special XML characters in a string.
//
// Replaces: & < > " '
// With:     &amp; &lt; &gt; &quot; &apos;
func escapeXML(s string) string {
	s = strings.ReplaceAll(s, "&", "&amp;")
	s = strings.ReplaceAll(s, "<", "&lt;")
	s = strings.ReplaceAll(s, ">", "&gt;")
	s = strings.ReplaceAll(s, "\"", "&quot;")
	s = strings.ReplaceAll(s, "'", "&apos;")
	return s
}
