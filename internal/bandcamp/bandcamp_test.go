package bandcamp

import (
	"errors"
	"reflect"
	"testing"
	"time"
)

const albumPageHTML = `<html>
	<script data-tralbum="{
		&quot;current&quot;:{&quot;title&quot;:&quot;Test Album&quot;,&quot;release_date&quot;:&quot;01 Jan 2023 00:00:00 GMT&quot;},
		&quot;artist&quot;:&quot;Test Artist&quot;,
		&quot;trackinfo&quot;:[
			{&quot;track_num&quot;:1,&quot;title&quot;:&quot;First Track&quot;,&quot;duration&quot;:180.5,&quot;file&quot;:{&quot;mp3-128&quot;:&quot;//example.com/1.mp3&quot;}},
			{&quot;track_num&quot;:2,&quot;title&quot;:&quot;Second Track&quot;,&quot;duration&quot;:200.0,&quot;file&quot;:{&quot;mp3-128&quot;:&quot;https://example.com/2.mp3&quot;}},
			{&quot;track_num&quot;:3,&quot;title&quot;:&quot;Unreleased&quot;,&quot;duration&quot;:0,&quot;file&quot;:null}
		]
	}"></script>
	</html>`

func TestDiscography_GetAlbumURLs(t *testing.T) {
	tests := []struct {
		name    string
		html    string
		want    []string
		wantErr error
	}{
		{
			name: "single album link",
			html: `<html><body><a href="/album/test-album">Album</a></body></html>`,
			want: []string{"/album/test-album"},
		},
		{
			name: "multiple albums in page order",
			html: `<html><body>
				<a href="/album/first-album">&quot;</a>
				<a href="/album/second-album?from=grid">&quot;</a>
				<a href="/track/single-track">&quot;</a>
				<a href="/merch">Merch</a>
			</body></html>`,
			want: []string{"/album/first-album", "/album/second-album", "/track/single-track"},
		},
		{
			name: "duplicate albums filtered",
			html: `<html><body>
				<a href="/album/same-album">&quot;</a>
				<a href="https://artist.bandcamp.com/album/same-album">&quot;</a>
			</body></html>`,
			want: []string{"/album/same-album"},
		},
		{
			name: "lazy loaded client items",
			html: `<html><body>
				<a href="/album/first">First</a>
				<ol data-client-items="[{&quot;page_url&quot;:&quot;/album/second&quot;},{&quot;page_url&quot;:&quot;/album/first&quot;}]"></ol>
			</body></html>`,
			want: []string{"/album/first", "/album/second"},
		},
		{
			name:    "no albums found",
			html:    `<html><body>No music here</body></html>`,
			wantErr: ErrNoAlbumFound,
		},
		{
			name: "single album artist page",
			html: `<html><body>
				<div id="discography"></div>
				<a href="/album/only-album">Only Album</a>
				<a href="/track/a-track-on-it">Track</a>
			</body></html>`,
			want: []string{"/album/only-album"},
		},
		{
			name:    "single album artist page without album link",
			html:    `<html><body><div id="discography"></div></body></html>`,
			wantErr: ErrNoAlbumFound,
		},
	}

	d := NewDiscography()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			urls, err := d.GetAlbumURLs(tt.html)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !reflect.DeepEqual(urls, tt.want) {
				t.Errorf("GetAlbumURLs() = %v, want %v", urls, tt.want)
			}
		})
	}
}

func TestResolveURLs(t *testing.T) {
	got, err := ResolveURLs("https://artist.bandcamp.com/music", []string{"/album/a", "/track/b"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"https://artist.bandcamp.com/album/a", "https://artist.bandcamp.com/track/b"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ResolveURLs() = %v, want %v", got, want)
	}
}

func TestURLHelpers(t *testing.T) {
	if !IsReleaseURL("https://artist.bandcamp.com/album/name") {
		t.Error("album URL should be a release URL")
	}
	if IsReleaseURL("https://artist.bandcamp.com/") {
		t.Error("artist root should not be a release URL")
	}

	got, err := MusicPageURL("https://artist.bandcamp.com/?label=1#top")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "https://artist.bandcamp.com/music" {
		t.Errorf("MusicPageURL() = %q", got)
	}

	if _, err := MusicPageURL("artist.bandcamp.com"); err == nil {
		t.Error("expected error for URL without host")
	}
}

func TestParser_ParseAlbumPage(t *testing.T) {
	album, err := NewParser().ParseAlbumPage(albumPageHTML)
	if err != nil {
		t.Fatalf("ParseAlbumPage failed: %v", err)
	}

	if album.Artist != "Test Artist" {
		t.Errorf("Artist = %q, want %q", album.Artist, "Test Artist")
	}
	if album.Title != "Test Album" {
		t.Errorf("Title = %q, want %q", album.Title, "Test Album")
	}
	if want := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC); !album.ReleaseDate.Equal(want) {
		t.Errorf("ReleaseDate = %v, want %v", album.ReleaseDate, want)
	}
	if len(album.Tracks) != 3 {
		t.Fatalf("Track count = %d, want 3", len(album.Tracks))
	}

	first := album.Tracks[0]
	if first.Title != "First Track" || first.Artist != "Test Artist" || first.Duration != 181 {
		t.Errorf("Track[0] = %+v", first)
	}
	if first.Source != "http://example.com/1.mp3" {
		t.Errorf("Track[0].Source = %q, want scheme added", first.Source)
	}
	if album.Tracks[2].Source != "" {
		t.Errorf("Track[2].Source = %q, want empty for unstreamable track", album.Tracks[2].Source)
	}
}

func TestParser_ParseAlbumPage_Errors(t *testing.T) {
	if _, err := NewParser().ParseAlbumPage(`<html></html>`); !errors.Is(err, ErrNoAlbumData) {
		t.Errorf("error = %v, want ErrNoAlbumData", err)
	}
	if _, err := NewParser().ParseAlbumPage(`<div data-tralbum="{not json"></div>`); err == nil {
		t.Error("expected JSON error")
	}
}

func TestExtractAlbumData(t *testing.T) {
	tests := []struct {
		name    string
		html    string
		want    string
		wantErr bool
	}{
		{
			name: "valid data-tralbum",
			html: `<html><script data-tralbum="{&quot;current&quot;:{&quot;title&quot;:&quot;Test&quot;}}"></script></html>`,
			want: `{"current":{"title":"Test"}}`,
		},
		{
			name:    "missing data-tralbum",
			html:    `<html><body>No album data</body></html>`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := extractAlbumData(tt.html)
			if tt.wantErr {
				if err == nil {
					t.Error("expected error but got none")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("extractAlbumData() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFixJSON(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "fix URL concatenation",
			input: `url: "http://example.bandcamp.com" + "/album/test",`,
			want:  `url: "http://example.bandcamp.com/album/test",`,
		},
		{
			name:  "no change needed",
			input: `url: "http://example.bandcamp.com/album/test",`,
			want:  `url: "http://example.bandcamp.com/album/test",`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := fixJSON(tt.input)
			if got != tt.want {
				t.Errorf("fixJSON() = %q, want %q", got, tt.want)
			}
		})
	}
}
