// Package itunes provides the network record source: it queries the iTunes
// Search API and decodes the response envelope into a model.ResultSet.
//
// # Searching
//
//	client := itunes.NewClient(httpClient, itunes.OptionsFromSettings(settings), logger)
//	results, err := client.Search(ctx, "daft punk")
//
// The term is URL-encoded into the "term" query parameter. Country, media,
// entity and limit are added when configured.
//
// # Errors
//
// Every failure wraps ErrSearchFailed so callers can report a single
// "search failed" condition. Timeouts also wrap ErrTimeout:
//
//	if errors.Is(err, itunes.ErrTimeout) {
//	    fmt.Println("The search took too long, try again")
//	}
package itunes
