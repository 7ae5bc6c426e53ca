package ioutils

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/handiism/itunes-search/internal/model"
)

// ErrImport wraps every failure to load a result set from disk.
var ErrImport = errors.New("import failed")

var (
	invalidChars    = regexp.MustCompile(`[<>:"/\\|?*\x00-\x1f]`)
	trailingDots    = regexp.MustCompile(`\.+$`)
	multiWhitespace = regexp.MustCompile(`\s+`)
)

// ReadResultSet loads a result set from a JSON file.
//
// Two shapes are accepted:
//   - the search API envelope: {"resultCount": N, "results": [...]}
//   - a bare array of records: [{...}, {...}]
//
// Files written by the exporter use the envelope shape, so an exported file
// can always be imported again.
//
// Returns an error wrapping ErrImport if the file cannot be read, is not
// valid JSON, or has neither shape.
//
// Example:
//
//	results, err := ReadResultSet("search_results.json")
//	if errors.Is(err, ErrImport) {
//	    fmt.Println(err)
//	}
func ReadResultSet(path string) (*model.ResultSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrImport, err)
	}

	rs, err := DecodeResultSet(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrImport, path, err)
	}
	return rs, nil
}

// DecodeResultSet parses either accepted shape from memory.
func DecodeResultSet(data []byte) (*model.ResultSet, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, errors.New("file is empty")
	}

	if trimmed[0] == '[' {
		var records []model.Record
		if err := json.Unmarshal(trimmed, &records); err != nil {
			return nil, fmt.Errorf("malformed JSON: %w", err)
		}
		return model.NewResultSet(records), nil
	}

	var envelope struct {
		ResultCount *int            `json:"resultCount"`
		Results     json.RawMessage `json:"results"`
	}
	if err := json.Unmarshal(trimmed, &envelope); err != nil {
		return nil, fmt.Errorf("malformed JSON: %w", err)
	}
	if envelope.Results == nil {
		return nil, errors.New(`no "results" array found`)
	}

	var records []model.Record
	if err := json.Unmarshal(envelope.Results, &records); err != nil {
		return nil, fmt.Errorf("malformed results: %w", err)
	}

	rs := model.NewResultSet(records)
	if envelope.ResultCount != nil {
		rs.ResultCount = *envelope.ResultCount
	}
	return rs, nil
}

// SanitizeFileName removes or replaces characters that are invalid in file/folder names.
//
// The following transformations are applied:
//   - Invalid characters (<>:"/\|?* and control chars 0x00-0x1f) → underscore
//   - Trailing dots → removed (Windows limitation)
//   - Multiple whitespace → single space
//   - Leading and trailing whitespace → removed
//
// Example:
//
//	SanitizeFileName("AC/DC: Live")  // Returns "AC_DC_ Live"
//	SanitizeFileName("Track...")     // Returns "Track"
func SanitizeFileName(name string) string {
	name = invalidChars.ReplaceAllString(name, "_")
	name = trailingDots.ReplaceAllString(name, "")
	name = multiWhitespace.ReplaceAllString(name, " ")
	return strings.TrimSpace(name)
}

// EnsureDir creates a directory and all parent directories if they don't exist.
func EnsureDir(path string) error {
	return os.MkdirAll(path, 0755)
}
