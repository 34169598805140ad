package session

import (
	"fmt"
	"io"

	"github.com/handiism/tracklist/internal/playlist"
)

// WriteListing prints a listing the way the menu shows it:
//
//	1: Song B by Artist Y, Duration: 200 seconds
//	2: Song A by Artist X, Duration: 100 seconds
//	Total duration: 300 seconds
func WriteListing(w io.Writer, listing playlist.Listing) error {
	for _, e := range listing.Entries {
		if _, err := fmt.Fprintf(w, "%d: %s\n", e.Position, e.Track); err != nil {
			return err
		}
	}
	if listing.Cyclic {
		if _, err := fmt.Fprintln(w, "(repeat mode on)"); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "Total duration: %d seconds\n", listing.TotalDuration)
	return err
}

// WriteResult prints a result: the listing for Display, otherwise the
// message when there is one.
func WriteResult(w io.Writer, res Result) error {
	if res.Listing != nil {
		return WriteListing(w, *res.Listing)
	}
	if res.Message == "" {
		return nil
	}
	_, err := fmt.Fprintln(w, res.Message)
	return err
}
