package model

import (
	"testing"
	"time"
)

func TestTrack_String(t *testing.T) {
	track := NewTrack("Come Together", "The Beatles", 259)

	want := "Come Together by The Beatles, Duration: 259 seconds"
	if got := track.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestTrack_Equal(t *testing.T) {
	tests := []struct {
		name  string
		a, b  Track
		equal bool
	}{
		{"identical", NewTrack("A", "X", 100), NewTrack("A", "X", 100), true},
		{"source ignored", Track{Title: "A", Artist: "X", Duration: 100, Source: "/a.mp3"}, NewTrack("A", "X", 100), true},
		{"different title", NewTrack("A", "X", 100), NewTrack("B", "X", 100), false},
		{"different artist", NewTrack("A", "X", 100), NewTrack("A", "Y", 100), false},
		{"different duration", NewTrack("A", "X", 100), NewTrack("A", "X", 101), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Equal(tt.b); got != tt.equal {
				t.Errorf("Equal() = %v, want %v", got, tt.equal)
			}
		})
	}
}

func TestTotalDuration(t *testing.T) {
	if got := TotalDuration(nil); got != 0 {
		t.Errorf("TotalDuration(nil) = %d, want 0", got)
	}

	tracks := []Track{NewTrack("A", "X", 100), NewTrack("B", "Y", 200)}
	if got := TotalDuration(tracks); got != 300 {
		t.Errorf("TotalDuration() = %d, want 300", got)
	}
}

func TestAlbum_AddTrack(t *testing.T) {
	album := NewAlbum("Test Artist", "Test Album", time.Date(2023, 5, 15, 0, 0, 0, 0, time.UTC))

	album.AddTrack("Intro", 61.4, "http://example.com/1.mp3")
	album.AddTrack("Outro", 180.5, "http://example.com/2.mp3")

	if len(album.Tracks) != 2 {
		t.Fatalf("got %d tracks, want 2", len(album.Tracks))
	}

	first := album.Tracks[0]
	if first.Artist != "Test Artist" {
		t.Errorf("Artist = %q, want album artist", first.Artist)
	}
	if first.Duration != 61 {
		t.Errorf("Duration = %d, want 61", first.Duration)
	}
	if album.Tracks[1].Duration != 181 {
		t.Errorf("Duration = %d, want 181 (rounded)", album.Tracks[1].Duration)
	}
	if album.Summary() != "Test Artist - Test Album" {
		t.Errorf("Summary() = %q", album.Summary())
	}
}
