package bandcamp

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/handiism/tracklist/internal/bandcamp/dto"
	"github.com/handiism/tracklist/internal/model"
)

// ErrNoAlbumData is returned when a page carries no data-tralbum attribute.
var ErrNoAlbumData = errors.New("could not find album data in HTML")

// concatenatedURL matches JavaScript-style string concatenation that some
// pages leave inside the embedded JSON: url: "http://a" + "/album/b",
var concatenatedURL = regexp.MustCompile(`(url: ".+)" \+ "(.+",)`)

// Parser extracts album information from Bandcamp HTML pages.
//
// Bandcamp embeds album data as JSON within the HTML page in a data-tralbum
// attribute. The Parser extracts this JSON, fixes any malformed content,
// and deserializes it into an Album model.
//
// Example usage:
//
//	parser := NewParser()
//
//	html, _ := client.GetString(ctx, "https://artist.bandcamp.com/album/name")
//	album, err := parser.ParseAlbumPage(html)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	for _, track := range album.Tracks {
//	    fmt.Println(track)
//	}
type Parser struct{}

// NewParser creates a new Parser.
func NewParser() *Parser {
	return &Parser{}
}

// ParseAlbumPage extracts album info from a Bandcamp album or track page HTML.
//
// The HTML should be the full page source from a Bandcamp URL like:
//   - https://artist.bandcamp.com/album/album-name
//   - https://artist.bandcamp.com/track/track-name
//
// Returns ErrNoAlbumData if the data-tralbum attribute cannot be found, or
// a JSON error if its content cannot be parsed.
func (p *Parser) ParseAlbumPage(htmlContent string) (*model.Album, error) {
	albumData, err := extractAlbumData(htmlContent)
	if err != nil {
		return nil, fmt.Errorf("could not retrieve album data: %w", err)
	}

	var jsonAlbum dto.JSONAlbum
	if err := json.Unmarshal([]byte(fixJSON(albumData)), &jsonAlbum); err != nil {
		return nil, fmt.Errorf("failed to parse album JSON: %w", err)
	}

	return jsonAlbum.ToAlbum(), nil
}

// extractAlbumData returns the value of the first data-tralbum attribute.
// goquery hands back the attribute already HTML-unescaped.
func extractAlbumData(htmlContent string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlContent))
	if err != nil {
		return "", err
	}

	data, ok := doc.Find("[data-tralbum]").First().Attr("data-tralbum")
	if !ok || strings.TrimSpace(data) == "" {
		return "", ErrNoAlbumData
	}
	return data, nil
}

// fixJSON removes the " + " concatenation:
//
//	url: "http://example.bandcamp.com" + "/album/name",
//	url: "http://example.bandcamp.com/album/name",
func fixJSON(albumData string) string {
	return concatenatedURL.ReplaceAllString(albumData, "${1}${2}")
}
