package bandcamp

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// ErrNoAlbumFound is returned when no album or track URLs can be found on a page.
//
// This typically occurs when:
//   - The URL is not a valid Bandcamp artist/music page
//   - The artist has no published albums or tracks
//   - The HTML structure has changed unexpectedly
var ErrNoAlbumFound = errors.New("no album found on page")

// Discography extracts album and track URLs from Bandcamp artist pages.
//
// Discography handles two cases:
//  1. Normal music pages with multiple albums listed
//  2. Single-album artists where the music page redirects to the album page
//
// Example usage:
//
//	disco := NewDiscography()
//	paths, err := disco.GetAlbumURLs(musicPageHTML)
//	urls, err := ResolveURLs("https://artist.bandcamp.com/music", paths)
type Discography struct{}

// NewDiscography creates a new Discography service.
func NewDiscography() *Discography {
	return &Discography{}
}

// clientItem is one entry of the data-client-items attribute that music
// pages use for releases loaded after the first screen.
type clientItem struct {
	PageURL string `json:"page_url"`
}

// GetAlbumURLs extracts all album and track URLs from a Bandcamp music page.
//
// The returned URLs are relative paths like /album/my-album or
// /track/my-track, in page order without duplicates.
//
// Returns ErrNoAlbumFound if no album or track URLs can be found.
func (d *Discography) GetAlbumURLs(musicPageHTML string) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(musicPageHTML))
	if err != nil {
		return nil, err
	}

	if isSingleAlbumArtist(doc) {
		albumURL, err := getSingleAlbumURL(doc)
		if err != nil {
			return nil, err
		}
		return []string{albumURL}, nil
	}

	var urls []string
	seen := make(map[string]struct{})
	add := func(href string) {
		path, ok := releasePath(href)
		if !ok {
			return
		}
		if _, dup := seen[path]; dup {
			return
		}
		seen[path] = struct{}{}
		urls = append(urls, path)
	}

	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		add(s.AttrOr("href", ""))
	})
	doc.Find("[data-client-items]").Each(func(_ int, s *goquery.Selection) {
		var items []clientItem
		if err := json.Unmarshal([]byte(s.AttrOr("data-client-items", "")), &items); err != nil {
			return
		}
		for _, item := range items {
			add(item.PageURL)
		}
	})

	if len(urls) == 0 {
		return nil, ErrNoAlbumFound
	}
	return urls, nil
}

// isSingleAlbumArtist checks if the page is an album page rather than a music listing.
//
// When an artist has only one album, Bandcamp often redirects their /music page
// to their album page, which carries a "discography" div that music listing
// pages do not.
func isSingleAlbumArtist(doc *goquery.Document) bool {
	return doc.Find("div#discography").Length() > 0
}

// getSingleAlbumURL expects exactly one distinct /album/ link on the page.
func getSingleAlbumURL(doc *goquery.Document) (string, error) {
	urlSet := make(map[string]struct{})
	var first string
	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		path, ok := releasePath(s.AttrOr("href", ""))
		if !ok || !strings.HasPrefix(path, "/album/") {
			return
		}
		if len(urlSet) == 0 {
			first = path
		}
		urlSet[path] = struct{}{}
	})

	switch len(urlSet) {
	case 0:
		return "", ErrNoAlbumFound
	case 1:
		return first, nil
	}
	return "", errors.New("found multiple album URLs, expected exactly one")
}

// releasePath reduces href to its path and reports whether it names an
// album or track. Query strings and fragments are dropped.
func releasePath(href string) (string, bool) {
	u, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return "", false
	}
	if strings.HasPrefix(u.Path, "/album/") || strings.HasPrefix(u.Path, "/track/") {
		return u.Path, true
	}
	return "", false
}

// ResolveURLs turns the relative paths returned by GetAlbumURLs into
// absolute URLs on the host of pageURL.
func ResolveURLs(pageURL string, paths []string) ([]string, error) {
	base, err := url.Parse(pageURL)
	if err != nil {
		return nil, fmt.Errorf("invalid page URL %q: %w", pageURL, err)
	}

	urls := make([]string, 0, len(paths))
	for _, p := range paths {
		ref, err := url.Parse(p)
		if err != nil {
			return nil, fmt.Errorf("invalid release path %q: %w", p, err)
		}
		urls = append(urls, base.ResolveReference(ref).String())
	}
	return urls, nil
}

// IsReleaseURL reports whether rawURL points at a single album or track
// page rather than an artist page.
func IsReleaseURL(rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	return strings.Contains(u.Path, "/album/") || strings.Contains(u.Path, "/track/")
}

// MusicPageURL returns the /music listing URL of the artist hosting rawURL.
func MusicPageURL(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", err
	}
	if u.Host == "" {
		return "", fmt.Errorf("not an absolute URL: %q", rawURL)
	}
	u.Path = "/music"
	u.RawQuery = ""
	u.Fragment = ""
	return u.String(), nil
}
