package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/handiism/itunes-search/internal/config"
)

func TestNewConfig(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"resultCount":1,"results":[{"artistName":"ABBA","trackName":"Waterloo"}]}`))
	}))
	defer srv.Close()

	settings := config.DefaultSettings()
	settings.SearchURL = srv.URL
	settings.LogFile = ""
	settings.ExportPath = filepath.Join(t.TempDir(), "{term}.json")

	cfg, closer, err := newConfig(settings)
	if err != nil {
		t.Fatalf("newConfig() error = %v", err)
	}
	defer closer()

	rs, err := cfg.Searcher.Search(context.Background(), "abba")
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if rs.Len() != 1 {
		t.Fatalf("results = %d, want 1", rs.Len())
	}

	path, err := cfg.ExporterFor("abba").Export(rs)
	if err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	if filepath.Base(path) != "abba.json" {
		t.Errorf("export path = %s, want abba.json", path)
	}
}

func TestNewConfigRejectsUnknownFormat(t *testing.T) {
	settings := config.DefaultSettings()
	settings.LogFile = ""
	settings.ExportFormat = "csv"

	if _, _, err := newConfig(settings); err == nil {
		t.Fatal("newConfig() error = nil, want error")
	}
}
