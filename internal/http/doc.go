// Package http provides an HTTP client configured for search API requests.
//
// The Client in this package handles:
//   - User-Agent and Accept headers
//   - Timeout handling
//   - Typed *StatusError values for non-200 responses
//
// # Basic Usage
//
//	client := http.NewClient("itunes-search", 30*time.Second)
//	body, err := client.Get(ctx, "https://itunes.apple.com/search?term=air")
package http
