// Package export persists a result set to disk.
//
// # JSON
//
// The default format mirrors the search API response, so the file can be
// fed back through the import menu:
//
//	exp := export.New("search_results.json", export.FormatJSON, logger)
//	path, err := exp.Export(results)
//
// # Playlists
//
// M3U, PLS and WPL exports list the preview URLs of the results:
//
//	creator := export.NewPlaylistCreator(export.FormatPLS, false)
//	content := creator.CreatePlaylist(results)
package export
