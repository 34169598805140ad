package model

import "time"

// Album groups tracks fetched together from one release page.
//
// Album is a transient container used while importing: the importer
// flattens its tracks into the playlist in album order and the Album
// itself is not kept.
type Album struct {
	// Artist is the album artist name. Tracks inherit it.
	Artist string

	// Title is the album title.
	Title string

	// ReleaseDate is when the album was released, zero if unknown.
	ReleaseDate time.Time

	// Tracks contains the album tracks in release order.
	Tracks []Track
}

// NewAlbum creates an empty Album.
func NewAlbum(artist, title string, releaseDate time.Time) *Album {
	return &Album{
		Artist:      artist,
		Title:       title,
		ReleaseDate: releaseDate,
	}
}

// AddTrack appends a track credited to the album artist.
//
// Duration is given in (possibly fractional) seconds as reported by
// the source and is rounded to the nearest whole second.
func (a *Album) AddTrack(title string, duration float64, source string) {
	a.Tracks = append(a.Tracks, Track{
		Title:    title,
		Artist:   a.Artist,
		Duration: int(duration + 0.5),
		Source:   source,
	})
}

// Summary returns a one-line description used in progress output.
func (a *Album) Summary() string {
	return a.Artist + " - " + a.Title
}
