package model

import "fmt"

// Track represents a single entry in a playlist.
//
// Track carries the metadata the playlist works with:
//   - Title, which is the lookup key for search and removal
//   - Artist for display and export
//   - Duration in whole seconds, used for the running total
//   - Source, the file path or URL the track was imported from
//
// Titles are not required to be unique; lookups match the first entry in
// playlist order. Durations are taken as given and are not validated.
//
// Example:
//
//	track := NewTrack("Come Together", "The Beatles", 259)
//	fmt.Println(track) // Come Together by The Beatles, Duration: 259 seconds
type Track struct {
	// Title is the track title and the key used by search and removal.
	Title string

	// Artist is the performing artist.
	Artist string

	// Duration is the track length in seconds.
	Duration int

	// Source is where the track was imported from (MP3 path or stream URL).
	// Empty for tracks entered by hand or loaded from a playlist file,
	// since the line format does not carry it.
	Source string
}

// NewTrack creates a new Track without a source.
func NewTrack(title, artist string, duration int) Track {
	return Track{
		Title:    title,
		Artist:   artist,
		Duration: duration,
	}
}

// String renders the track the way the playlist display lists it.
func (t Track) String() string {
	return fmt.Sprintf("%s by %s, Duration: %d seconds", t.Title, t.Artist, t.Duration)
}

// Equal reports whether two tracks carry the same persisted fields
// (title, artist and duration). Source is ignored.
func (t Track) Equal(other Track) bool {
	return t.Title == other.Title && t.Artist == other.Artist && t.Duration == other.Duration
}

// TotalDuration sums the durations of the given tracks.
func TotalDuration(tracks []Track) int {
	total := 0
	for _, t := range tracks {
		total += t.Duration
	}
	return total
}
