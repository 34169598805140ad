// Package playlist implements the ordered track list at the heart of
// tracklist.
//
// # Representation
//
// Entries live in an arena of nodes addressed by integer handles. Each
// node stores its track and the handle of its successor; freed slots are
// recycled through a free list. No node is ever referenced from outside
// the List: accessors hand out copies of tracks, never handles.
//
// # Positions
//
// Positions are 0-based for mutation and 1-based in listings:
//
//	l := playlist.New()
//	l.InsertAt(model.NewTrack("A", "X", 100), -1) // append
//	l.InsertAt(model.NewTrack("B", "Y", 200), 0)  // new head
//	listing := l.Display()
//	// listing.Entries[0].Position == 1, Title "B"
//	// listing.TotalDuration == 300
//
// By default out-of-range targets are clamped to the end of the list.
// WithStrictPositions rejects them with ErrInvalidPosition instead.
//
// # Cycle mode
//
// EnableCycle links the tail back to the head. Every traversal is bounded
// by the entry count, so display, search, move, insert and shuffle keep
// working while the ring is closed, and every mutation keeps it closed.
// DisableCycle terminates the chain again.
//
// # Concurrency
//
// A List is safe for use by multiple goroutines; each operation holds the
// list lock for its whole duration.
package playlist
