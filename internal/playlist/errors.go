package playlist

import "errors"

var (
	// ErrNotFound is returned when no entry has the requested title.
	ErrNotFound = errors.New("song not found")

	// ErrEmpty is returned by removal on a list with no entries.
	ErrEmpty = errors.New("playlist is empty")

	// ErrInvalidPosition is returned when a position does not name an entry,
	// or, in strict mode, when a target position is out of range.
	ErrInvalidPosition = errors.New("invalid position")
)
