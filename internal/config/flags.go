package config

import (
	"time"

	"github.com/spf13/pflag"
)

// Flags holds command-line overrides of Settings.
type Flags struct {
	ConfigPath   string
	ExportPath   string
	ExportFormat string
	Country      string
	LogLevel     string
	Timeout      time.Duration
	Limit        int
	PageSize     int
	NoClear      bool
	Loop         bool
}

// Register adds the flags to fs.
func (f *Flags) Register(fs *pflag.FlagSet) {
	fs.StringVarP(&f.ConfigPath, "config", "c", "", "Path to config file (json, yaml or toml)")
	fs.StringVarP(&f.ExportPath, "export-path", "o", "", "Export destination; {term} is replaced by the search term")
	fs.StringVar(&f.ExportFormat, "export-format", "", "Export format: json, m3u, pls or wpl")
	fs.StringVar(&f.Country, "country", "", "Two-letter store country code")
	fs.StringVar(&f.LogLevel, "log-level", "", "Log level: debug, info, warn or error")
	fs.DurationVar(&f.Timeout, "timeout", 0, "Search request timeout")
	fs.IntVar(&f.Limit, "limit", 0, "Maximum number of results to request")
	fs.IntVar(&f.PageSize, "page-size", 0, "Rows per page in paged mode")
	fs.BoolVar(&f.NoClear, "no-clear", false, "Never clear the screen")
	fs.BoolVar(&f.Loop, "loop", false, "Return to the selection prompt after a detail view")
}

// Apply copies every flag that was set on the command line into s.
func (f *Flags) Apply(fs *pflag.FlagSet, s *Settings) {
	if fs.Changed("export-path") {
		s.ExportPath = f.ExportPath
	}
	if fs.Changed("export-format") {
		s.ExportFormat = f.ExportFormat
	}
	if fs.Changed("country") {
		s.Country = f.Country
	}
	if fs.Changed("log-level") {
		s.LogLevel = f.LogLevel
	}
	if fs.Changed("timeout") {
		s.Timeout = f.Timeout
	}
	if fs.Changed("limit") {
		s.Limit = f.Limit
	}
	if fs.Changed("page-size") {
		s.PageSize = f.PageSize
	}
	if fs.Changed("no-clear") {
		s.ClearScreen = !f.NoClear
	}
	if fs.Changed("loop") {
		s.LoopAfterDetail = f.Loop
	}
}

// Load reads the configured settings file and applies the flags on top.
func (f *Flags) Load(fs *pflag.FlagSet) (*Settings, error) {
	s, err := Load(f.ConfigPath)
	if err != nil {
		return nil, err
	}
	f.Apply(fs, s)
	return s, nil
}
