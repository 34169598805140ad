package dto

import "strings"

// JSONTrack represents a track from Bandcamp's JSON data.
type JSONTrack struct {
	Duration float64      `json:"duration"`
	File     *JSONMp3File `json:"file"`
	Number   *int         `json:"track_num"`
	Title    string       `json:"title"`
}

// JSONMp3File represents the MP3 file info.
type JSONMp3File struct {
	URL string `json:"mp3-128"`
}

// StreamURL returns the MP3 stream URL, or "" for tracks that cannot be
// streamed. Protocol-relative URLs get an http: scheme.
func (jt *JSONTrack) StreamURL() string {
	if jt.File == nil || jt.File.URL == "" {
		return ""
	}
	if strings.HasPrefix(jt.File.URL, "//") {
		return "http:" + jt.File.URL
	}
	return jt.File.URL
}
