package export

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/handiism/itunes-search/internal/config"
	ioutils "github.com/handiism/itunes-search/internal/io"
	"github.com/handiism/itunes-search/internal/logging"
	"github.com/handiism/itunes-search/internal/model"
)

// ErrExport wraps every failure to persist a result set.
var ErrExport = errors.New("export failed")

// Format is an export file format.
type Format int

const (
	// FormatJSON writes the search API envelope. It can be imported again.
	FormatJSON Format = iota

	// FormatM3U writes an extended M3U playlist of preview URLs.
	//
	// Playlist formats are lossy: records without a previewUrl have no
	// playable entry and are left out, and no other field is kept. Use
	// FormatJSON to persist the complete result set.
	FormatM3U

	// FormatPLS writes a PLS playlist of preview URLs. Lossy, like FormatM3U.
	FormatPLS

	// FormatWPL writes a Windows Media Player playlist of preview URLs.
	// Lossy, like FormatM3U.
	FormatWPL
)

// Lossless reports whether the format keeps every record and field, so the
// file can be imported again.
func (f Format) Lossless() bool {
	return f == FormatJSON
}

// ParseFormat maps a format name ("json", "m3u", "pls", "wpl") to a Format.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "json":
		return FormatJSON, nil
	case "m3u":
		return FormatM3U, nil
	case "pls":
		return FormatPLS, nil
	case "wpl":
		return FormatWPL, nil
	default:
		return FormatJSON, fmt.Errorf("unknown export format %q", name)
	}
}

// String returns the format name.
func (f Format) String() string {
	switch f {
	case FormatM3U:
		return "m3u"
	case FormatPLS:
		return "pls"
	case FormatWPL:
		return "wpl"
	default:
		return "json"
	}
}

// Exporter writes the complete result set to a fixed destination.
//
// The destination may contain a {term} placeholder, replaced by the
// sanitized search term:
//
//	exp := export.New("results_{term}.json", export.FormatJSON, logger).WithTerm("daft punk")
//	path, err := exp.Export(results) // results_daft punk.json
//
// An existing file is replaced atomically without confirmation.
type Exporter struct {
	path   string
	format Format
	term   string
	logger *slog.Logger
}

// New creates an Exporter. A nil logger uses slog.Default().
func New(path string, format Format, logger *slog.Logger) *Exporter {
	return &Exporter{
		path:   path,
		format: format,
		logger: logging.OrDefault(logger).With("component", "export"),
	}
}

// NewFromSettings creates an Exporter from the export settings.
func NewFromSettings(s *config.Settings, logger *slog.Logger) (*Exporter, error) {
	format, err := ParseFormat(s.ExportFormat)
	if err != nil {
		return nil, err
	}
	return New(s.ExportPath, format, logger), nil
}

// WithTerm returns a copy of the exporter bound to a search term.
func (e *Exporter) WithTerm(term string) *Exporter {
	clone := *e
	clone.term = term
	return &clone
}

// Format returns the configured format.
func (e *Exporter) Format() Format {
	return e.format
}

// Path returns the destination with placeholders expanded.
func (e *Exporter) Path() string {
	term := ioutils.SanitizeFileName(e.term)
	if term == "" {
		term = "import"
	}
	return strings.ReplaceAll(e.path, "{term}", term)
}

// Export writes rs to the destination and returns the path written.
//
// With FormatJSON nothing is filtered or truncated: every record of rs is
// written, in order. Playlist formats only list records that have a preview
// URL; the number of skipped records is logged as a warning.
// Write failures (missing directory, permissions, full disk) are returned
// wrapped in ErrExport.
func (e *Exporter) Export(rs *model.ResultSet) (string, error) {
	if rs == nil {
		rs = model.NewResultSet(nil)
	}

	path := e.Path()
	if dir := filepath.Dir(path); dir != "." {
		if err := ioutils.EnsureDir(dir); err != nil {
			return "", fmt.Errorf("%w: %w", ErrExport, err)
		}
	}

	err := ioutils.WriteFileAtomic(path, func(w io.Writer) error {
		return e.encode(w, rs)
	})
	if err != nil {
		e.logger.Error("export failed", "path", path, "error", err)
		return "", fmt.Errorf("%w: %w", ErrExport, err)
	}

	if !e.format.Lossless() {
		if skipped := rs.Len() - len(playable(rs)); skipped > 0 {
			e.logger.Warn("playlist export skipped records without a preview URL",
				"path", path, "format", e.format.String(), "skipped", skipped)
		}
	}

	e.logger.Info("exported results", "path", path, "format", e.format.String(), "records", rs.Len())
	return path, nil
}

func (e *Exporter) encode(w io.Writer, rs *model.ResultSet) error {
	if e.format == FormatJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(rs)
	}

	content := NewPlaylistCreator(e.format, true).CreatePlaylist(rs)
	_, err := io.WriteString(w, content)
	return err
}
