// Package ioutils provides file system utilities.
//
// # File Operations
//
//	// Write data to a file, creating missing directories
//	err := ioutils.WriteFile(ctx, "exports/mix.pls", data)
//
//	// Replace a file only once every byte is written
//	f, err := ioutils.CreateAtomic("data/playlist.txt")
//	...
//	err = f.Commit()
//
//	// Collect every MP3 below a directory, sorted
//	paths, err := ioutils.ListFiles("/music/inbox", ".mp3")
//
// # Filename Sanitization
//
// Use SanitizeFileName to remove invalid characters from filenames:
//
//	safe := ioutils.SanitizeFileName("Song: Part 1/2") // Returns "Song_ Part 1_2"
package ioutils
