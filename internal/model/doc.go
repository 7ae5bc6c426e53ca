// Package model defines the data structures shared by the itunes-search
// front ends.
//
// # Record
//
// Record is one search result. All fields are optional; accessors return
// Missing ("-") for absent ones and normalize the release date:
//
//	rec.Artist()          // "Daft Punk"
//	rec.ReleaseDateText() // "2000-11-30" (from "2000-11-30T08:00:00Z")
//	rec.TrackPriceText()  // "1.29", exactly as sent by the API
//
// # ResultSet
//
// ResultSet is the API response envelope. Its record order is fixed for the
// lifetime of a session and defines the 1-based selection index:
//
//	rec, ok := rs.At(17) // the 17th record, regardless of paging
//
// # Pagination
//
// Paginate splits the set into pages for display without touching the set:
//
//	for _, page := range rs.Paginate(model.DefaultPageSize) {
//	    for _, row := range page.Rows {
//	        fmt.Println(row.Index, row.Artist, row.TrackName)
//	    }
//	}
package model
