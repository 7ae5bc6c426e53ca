package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings()

	if s.SearchURL != "https://itunes.apple.com/search" {
		t.Errorf("SearchURL = %q", s.SearchURL)
	}
	if s.PageSize != 10 {
		t.Errorf("PageSize = %d, want 10", s.PageSize)
	}
	if s.ExportPath != "search_results.json" {
		t.Errorf("ExportPath = %q, want search_results.json", s.ExportPath)
	}
	if s.ExportFormat != "json" {
		t.Errorf("ExportFormat = %q, want json", s.ExportFormat)
	}
	if s.Timeout != 30*time.Second {
		t.Errorf("Timeout = %v, want 30s", s.Timeout)
	}
	if s.LoopAfterDetail {
		t.Error("LoopAfterDetail should default to false")
	}
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	s, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if s.PageSize != 10 || s.ExportPath != "search_results.json" {
		t.Errorf("Load() = %+v, want defaults", s)
	}
}

func TestLoad_EmptyPath(t *testing.T) {
	s, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if s.SearchURL != DefaultSettings().SearchURL {
		t.Errorf("SearchURL = %q", s.SearchURL)
	}
}

func TestLoad_YAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "country: gb\npage_size: 5\ntimeout: 5s\nexport_path: out.json\nloop_after_detail: true\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if s.Country != "gb" {
		t.Errorf("Country = %q, want gb", s.Country)
	}
	if s.PageSize != 5 {
		t.Errorf("PageSize = %d, want 5", s.PageSize)
	}
	if s.Timeout != 5*time.Second {
		t.Errorf("Timeout = %v, want 5s", s.Timeout)
	}
	if s.ExportPath != "out.json" {
		t.Errorf("ExportPath = %q, want out.json", s.ExportPath)
	}
	if !s.LoopAfterDetail {
		t.Error("LoopAfterDetail = false, want true")
	}
	// Untouched keys keep their defaults.
	if s.ExportFormat != "json" {
		t.Errorf("ExportFormat = %q, want json", s.ExportFormat)
	}
}

func TestLoad_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(path); err == nil {
		t.Error("expected error for malformed config")
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("ITUNES_SEARCH_COUNTRY", "de")
	t.Setenv("ITUNES_SEARCH_PAGE_SIZE", "20")

	s, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if s.Country != "de" {
		t.Errorf("Country = %q, want de", s.Country)
	}
	if s.PageSize != 20 {
		t.Errorf("PageSize = %d, want 20", s.PageSize)
	}
}

func TestSettings_SaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.json")

	s := DefaultSettings()
	s.Country = "jp"
	s.Limit = 25
	s.Timeout = 12 * time.Second
	if err := s.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.Country != "jp" || loaded.Limit != 25 || loaded.Timeout != 12*time.Second {
		t.Errorf("Load() = %+v", loaded)
	}
}

func TestSettings_PageSizeOrDefault(t *testing.T) {
	tests := []struct {
		size int
		want int
	}{
		{0, 10},
		{-3, 10},
		{1, 1},
		{25, 25},
	}

	for _, tt := range tests {
		s := &Settings{PageSize: tt.size}
		if got := s.PageSizeOrDefault(); got != tt.want {
			t.Errorf("PageSizeOrDefault() with %d = %d, want %d", tt.size, got, tt.want)
		}
	}
}
