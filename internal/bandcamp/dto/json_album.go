package dto

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/handiism/tracklist/internal/model"
)

// BandcampTime is a custom time type that handles Bandcamp's date format.
type BandcampTime struct {
	time.Time
}

// UnmarshalJSON parses Bandcamp's date format: "01 Jan 2023 00:00:00 GMT"
func (bt *BandcampTime) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}

	if s == "" {
		bt.Time = time.Time{}
		return nil
	}

	formats := []string{
		"02 Jan 2006 15:04:05 MST", // "01 Jan 2023 00:00:00 GMT"
		"2 Jan 2006 15:04:05 MST",  // "1 Jan 2023 00:00:00 GMT"
		time.RFC3339,
	}

	for _, format := range formats {
		if t, err := time.Parse(format, s); err == nil {
			bt.Time = t
			return nil
		}
	}

	return fmt.Errorf("unable to parse date: %s", s)
}

// JSONAlbum represents the deserialized album data from Bandcamp's HTML.
type JSONAlbum struct {
	AlbumData   *JSONAlbumData `json:"current"`
	Artist      string         `json:"artist"`
	ReleaseDate *BandcampTime  `json:"album_release_date"`
	Tracks      []JSONTrack    `json:"trackinfo"`
}

// JSONAlbumData contains album metadata.
type JSONAlbumData struct {
	AlbumTitle  string        `json:"title"`
	ReleaseDate *BandcampTime `json:"release_date"`
	PublishDate *BandcampTime `json:"publish_date"`
}

// ToAlbum converts JSONAlbum to a model.Album with every listed track,
// streamable or not.
func (ja *JSONAlbum) ToAlbum() *model.Album {
	var releaseDate time.Time
	if ja.ReleaseDate != nil {
		releaseDate = ja.ReleaseDate.Time
	} else if ja.AlbumData != nil && ja.AlbumData.ReleaseDate != nil {
		releaseDate = ja.AlbumData.ReleaseDate.Time
	} else if ja.AlbumData != nil && ja.AlbumData.PublishDate != nil {
		releaseDate = ja.AlbumData.PublishDate.Time
	}

	title := ""
	if ja.AlbumData != nil {
		title = ja.AlbumData.AlbumTitle
	}

	album := model.NewAlbum(ja.Artist, title, releaseDate)
	for _, jt := range ja.Tracks {
		album.AddTrack(jt.Title, jt.Duration, jt.StreamURL())
	}

	return album
}
