// Package store persists track sequences as flat text files.
//
// # File Format
//
// One record per line, no header, no escaping:
//
//	Song A,Artist X,100
//	Song B,Artist Y,200
//
// Only the first two commas separate fields, so an artist that contains a
// comma cannot be read back intact. Decoding stops at the first bad line
// and returns a *FormatError carrying its line number.
//
// # Backends
//
// A Store is a flat namespace of named files. Local keeps them in a
// directory, GCS keeps them in a Cloud Storage bucket and Memory keeps
// them in process:
//
//	s, err := store.Open(ctx, store.Config{Backend: store.BackendLocal, Dir: "."})
//	err = store.Save(ctx, s, "playlist.txt", list.Tracks())
//	tracks, err := store.Load(ctx, s, "playlist.txt")
package store
