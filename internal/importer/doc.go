// Package importer collects tracks from outside sources for appending to a
// playlist.
//
// Two sources are supported:
//
//   - a directory, scanned recursively for .mp3 files whose ID3 tags give
//     title, artist and length
//   - Bandcamp album, track or artist URLs, whose pages are fetched and
//     parsed
//
// # Usage
//
//	mgr := importer.NewManager(settings, func(ev importer.ProgressEvent) {
//	    fmt.Println(ev.Message)
//	})
//	tracks, err := mgr.Import(ctx, "/music/inbox")
//	if err != nil {
//	    return err
//	}
//	for _, t := range tracks {
//	    list.InsertAt(t, playlist.AppendPosition)
//	}
//
// The progress callback may be called from several goroutines at once.
package importer
