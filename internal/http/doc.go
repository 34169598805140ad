// Package http provides the HTTP client used to fetch Bandcamp pages.
//
// # Basic Usage
//
//	client := http.NewClient()
//	html, err := client.GetString(ctx, "https://artist.bandcamp.com/album/name")
//
// Non-200 responses come back as *StatusError.
package http
