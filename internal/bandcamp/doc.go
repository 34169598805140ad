// Package bandcamp parses Bandcamp HTML pages into albums.
//
// The package handles two main use cases:
//
//  1. Parsing album/track pages to extract track titles and durations
//  2. Parsing artist discography pages to discover all albums
//
// # Album Page Parsing
//
//	parser := bandcamp.NewParser()
//	album, err := parser.ParseAlbumPage(htmlContent)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(album.Summary())
//
// # Discography Extraction
//
//	disco := bandcamp.NewDiscography()
//	paths, err := disco.GetAlbumURLs(musicPageHTML)
//	urls, err := bandcamp.ResolveURLs("https://artist.bandcamp.com/music", paths)
//
// # Bandcamp Data Format
//
// Bandcamp embeds album data as JSON in the HTML page within a
// `data-tralbum` attribute. This package extracts and parses that JSON,
// handling Bandcamp's non-standard date format and fixing malformed JSON.
package bandcamp
