// Package model defines the core data structures used throughout
// tracklist.
//
// # Track
//
// Track is a single playlist entry:
//
//	track := model.NewTrack("Song Title", "Artist", 180)
//	fmt.Println(track) // Song Title by Artist, Duration: 180 seconds
//
// The title doubles as the lookup key for search and removal. Nothing
// enforces uniqueness; the first match in playlist order wins.
//
// # Album
//
// Album is the result of parsing a release page during import:
//
//	album := model.NewAlbum("Artist", "Title", releaseDate)
//	album.AddTrack("Intro", 61.4, mp3URL)
//	// album.Tracks[0].Duration == 61
package model
