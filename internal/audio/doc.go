// Package audio reads track metadata from MP3 files and renders track
// sequences as playlist files.
//
// # ID3 Tags
//
// Use a TagReader to build tracks from tagged files:
//
//	reader := audio.NewTagReader(true)
//	track, err := reader.ReadTrack("/music/inbox/song.mp3")
//
// Title comes from TIT2, artist from TPE1 (or TPE2) and duration from TLEN.
//
// # Playlist Generation
//
// Generate playlists in various formats:
//
//	creator := audio.NewPlaylistCreator(audio.FormatM3U, true) // extended M3U
//	content, err := creator.CreatePlaylist("Road Trip", list.Tracks())
//
// Supported formats:
//   - M3U (with optional extended info)
//   - PLS
//   - WPL (Windows Media Player)
//   - ZPL (Zune Media Player)
//   - CSV
//
// Entries point at each track's Source, or at "Artist - Title.mp3" when the
// track has none.
package audio
