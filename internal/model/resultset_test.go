package model

import (
	"fmt"
	"testing"
)

func syntheticSet(n int) *ResultSet {
	records := make([]Record, n)
	for i := range records {
		artist := fmt.Sprintf("Artist %d", i+1)
		title := fmt.Sprintf("Track %d", i+1)
		date := fmt.Sprintf("2001-01-%02dT00:00:00Z", i%28+1)
		records[i] = Record{ArtistName: &artist, TrackName: &title, ReleaseDate: &date}
	}
	return NewResultSet(records)
}

func TestResultSet_PaginateConcatenation(t *testing.T) {
	tests := []struct {
		n         int
		wantPages int
		lastSize  int
	}{
		{0, 0, 0},
		{1, 1, 1},
		{9, 1, 9},
		{10, 1, 10},
		{11, 2, 1},
		{25, 3, 5},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("N=%d", tt.n), func(t *testing.T) {
			rs := syntheticSet(tt.n)
			pages := rs.Paginate(DefaultPageSize)

			if len(pages) != tt.wantPages {
				t.Fatalf("got %d pages, want %d", len(pages), tt.wantPages)
			}
			if tt.wantPages > 0 && len(pages[len(pages)-1].Rows) != tt.lastSize {
				t.Errorf("last page has %d rows, want %d", len(pages[len(pages)-1].Rows), tt.lastSize)
			}

			var joined []Row
			for i, p := range pages {
				if p.Number != i+1 {
					t.Errorf("page %d has Number %d", i, p.Number)
				}
				if len(p.Rows) > DefaultPageSize {
					t.Errorf("page %d has %d rows", p.Number, len(p.Rows))
				}
				joined = append(joined, p.Rows...)
			}

			all := rs.Rows()
			if len(joined) != len(all) {
				t.Fatalf("concatenated pages have %d rows, want %d", len(joined), len(all))
			}
			for i := range all {
				if joined[i] != all[i] {
					t.Errorf("row %d = %+v, want %+v", i, joined[i], all[i])
				}
			}
		})
	}
}

func TestResultSet_PaginateInvalidSize(t *testing.T) {
	pages := syntheticSet(15).Paginate(0)
	if len(pages) != 2 {
		t.Errorf("got %d pages, want 2 with the default size", len(pages))
	}
}

func TestResultSet_RowsKeepGlobalIndex(t *testing.T) {
	rs := syntheticSet(23)
	for _, p := range rs.Paginate(DefaultPageSize) {
		for _, row := range p.Rows {
			rec, ok := rs.At(row.Index)
			if !ok {
				t.Fatalf("At(%d) not found", row.Index)
			}
			if rec.Title() != row.TrackName {
				t.Errorf("row %d shows %q, At() returns %q", row.Index, row.TrackName, rec.Title())
			}
		}
	}
}

func TestResultSet_At(t *testing.T) {
	rs := syntheticSet(3)

	tests := []struct {
		index  int
		wantOK bool
		want   string
	}{
		{0, false, ""},
		{1, true, "Track 1"},
		{3, true, "Track 3"},
		{4, false, ""},
		{-1, false, ""},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprint(tt.index), func(t *testing.T) {
			rec, ok := rs.At(tt.index)
			if ok != tt.wantOK {
				t.Fatalf("At(%d) ok = %v, want %v", tt.index, ok, tt.wantOK)
			}
			if ok && rec.Title() != tt.want {
				t.Errorf("At(%d).Title() = %q, want %q", tt.index, rec.Title(), tt.want)
			}
		})
	}
}

func TestResultSet_Nil(t *testing.T) {
	var rs *ResultSet
	if rs.Len() != 0 {
		t.Errorf("Len() = %d, want 0", rs.Len())
	}
	if _, ok := rs.At(1); ok {
		t.Error("At(1) on nil set should not be ok")
	}
	if len(rs.Paginate(10)) != 0 {
		t.Error("nil set should have no pages")
	}
}

func TestRow_Cells(t *testing.T) {
	row := Row{Index: 7, Artist: "Air", ReleaseDate: "1998-01-16", TrackName: "La Femme d'Argent"}
	cells := row.Cells()
	want := []string{"7", "Air", "1998-01-16", "La Femme d'Argent"}
	for i := range want {
		if cells[i] != want[i] {
			t.Errorf("Cells()[%d] = %q, want %q", i, cells[i], want[i])
		}
	}
}
