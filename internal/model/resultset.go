package model

import "strconv"

// DefaultPageSize is the number of rows shown per page in paged display mode.
const DefaultPageSize = 10

// ResultSet is the ordered list of records produced by one search or import.
//
// Its JSON shape mirrors the search API response envelope:
//
//	{"resultCount": 2, "results": [{...}, {...}]}
//
// The order of Results is the order received from the source and is never
// changed; the 1-based index a user types refers to a position in Results.
type ResultSet struct {
	ResultCount int      `json:"resultCount"`
	Results     []Record `json:"results"`
}

// NewResultSet builds a ResultSet whose count matches its records.
func NewResultSet(records []Record) *ResultSet {
	if records == nil {
		records = []Record{}
	}
	return &ResultSet{ResultCount: len(records), Results: records}
}

// Len returns the number of records. A nil ResultSet is empty.
func (rs *ResultSet) Len() int {
	if rs == nil {
		return 0
	}
	return len(rs.Results)
}

// At returns the record for a 1-based selection index.
//
// ok is false when index is outside 1..Len().
func (rs *ResultSet) At(index int) (rec Record, ok bool) {
	if index < 1 || index > rs.Len() {
		return Record{}, false
	}
	return rs.Results[index-1], true
}

// Row is one line of a results table.
type Row struct {
	// Index is the 1-based position of the record in the full ResultSet.
	Index int

	Artist      string
	ReleaseDate string
	TrackName   string
}

// Cells returns the row as table cells in column order.
func (r Row) Cells() []string {
	return []string{strconv.Itoa(r.Index), r.Artist, r.ReleaseDate, r.TrackName}
}

// Page is a contiguous slice of at most one page size of rows.
type Page struct {
	// Number is the 1-based page number.
	Number int
	Rows   []Row
}

// Rows converts every record into a table row, keeping the global index.
func (rs *ResultSet) Rows() []Row {
	rows := make([]Row, 0, rs.Len())
	for i := 0; i < rs.Len(); i++ {
		rec := rs.Results[i]
		rows = append(rows, Row{
			Index:       i + 1,
			Artist:      rec.Artist(),
			ReleaseDate: rec.ReleaseDateText(),
			TrackName:   rec.Title(),
		})
	}
	return rows
}

// Paginate splits the result set into pages of size rows.
//
// Pages are contiguous and non-overlapping; concatenating their rows gives
// back Rows() exactly. An empty set has zero pages. A size below 1 falls back
// to DefaultPageSize.
func (rs *ResultSet) Paginate(size int) []Page {
	if size < 1 {
		size = DefaultPageSize
	}

	rows := rs.Rows()
	pages := make([]Page, 0, (len(rows)+size-1)/size)
	for start := 0; start < len(rows); start += size {
		end := min(start+size, len(rows))
		pages = append(pages, Page{Number: len(pages) + 1, Rows: rows[start:end]})
	}
	return pages
}
