package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of environment variables that override settings,
// e.g. ITUNES_SEARCH_COUNTRY=gb.
const EnvPrefix = "ITUNES_SEARCH"

// Settings holds all configuration options.
type Settings struct {
	// Search settings
	SearchURL     string        `mapstructure:"search_url" json:"search_url"`
	Country       string        `mapstructure:"country" json:"country"`
	Media         string        `mapstructure:"media" json:"media"`
	Entity        string        `mapstructure:"entity" json:"entity"`
	Limit         int           `mapstructure:"limit" json:"limit"`
	Timeout       time.Duration `mapstructure:"timeout" json:"timeout"`
	MaxRetries    int           `mapstructure:"max_retries" json:"max_retries"`
	RetryCooldown float64       `mapstructure:"retry_cooldown" json:"retry_cooldown"`
	RetryExponent float64       `mapstructure:"retry_exponent" json:"retry_exponent"`
	UserAgent     string        `mapstructure:"user_agent" json:"user_agent"`

	// Display settings
	PageSize        int  `mapstructure:"page_size" json:"page_size"`
	LoopAfterDetail bool `mapstructure:"loop_after_detail" json:"loop_after_detail"`
	ClearScreen     bool `mapstructure:"clear_screen" json:"clear_screen"`

	// Export settings
	ExportPath   string `mapstructure:"export_path" json:"export_path"`
	ExportFormat string `mapstructure:"export_format" json:"export_format"` // json, m3u, pls, wpl

	// Log settings
	LogLevel    string `mapstructure:"log_level" json:"log_level"` // debug, info, warn, error
	LogFile     string `mapstructure:"log_file" json:"log_file"`
	LogMaxSize  int    `mapstructure:"log_max_size" json:"log_max_size"`
	LogMaxFiles int    `mapstructure:"log_max_files" json:"log_max_files"`
}

// DefaultSettings returns settings with default values.
func DefaultSettings() *Settings {
	return &Settings{
		SearchURL:     "https://itunes.apple.com/search",
		Limit:         50,
		Timeout:       30 * time.Second,
		MaxRetries:    3,
		RetryCooldown: 0.2,
		RetryExponent: 4.0,
		UserAgent:     "itunes-search",

		PageSize:        10,
		LoopAfterDetail: false,
		ClearScreen:     true,

		ExportPath:   "search_results.json",
		ExportFormat: "json",

		LogLevel:    "warn",
		LogFile:     defaultLogFile(),
		LogMaxSize:  10,
		LogMaxFiles: 5,
	}
}

// Load reads settings from a config file (JSON, YAML or TOML, chosen by
// extension) and from ITUNES_SEARCH_* environment variables.
//
// An empty path or a missing file yields the defaults plus environment
// overrides.
func Load(path string) (*Settings, error) {
	v := newViper()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("read config %s: %w", path, err)
			}
		}
	}

	settings := &Settings{}
	if err := v.Unmarshal(settings); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	return settings, nil
}

// Save writes settings to a config file. The format follows the extension.
func (s *Settings) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	v := viper.New()
	for key, value := range s.values() {
		v.Set(key, value)
	}

	return v.WriteConfigAs(path)
}

// PageSizeOrDefault returns PageSize, falling back to 10 for values below 1.
func (s *Settings) PageSizeOrDefault() int {
	if s.PageSize < 1 {
		return 10
	}
	return s.PageSize
}

func newViper() *viper.Viper {
	v := viper.New()
	for key, value := range DefaultSettings().values() {
		v.SetDefault(key, value)
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return v
}

// values flattens the settings into viper keys.
func (s *Settings) values() map[string]any {
	return map[string]any{
		"search_url":        s.SearchURL,
		"country":           s.Country,
		"media":             s.Media,
		"entity":            s.Entity,
		"limit":             s.Limit,
		"timeout":           s.Timeout.String(),
		"max_retries":       s.MaxRetries,
		"retry_cooldown":    s.RetryCooldown,
		"retry_exponent":    s.RetryExponent,
		"user_agent":        s.UserAgent,
		"page_size":         s.PageSize,
		"loop_after_detail": s.LoopAfterDetail,
		"clear_screen":      s.ClearScreen,
		"export_path":       s.ExportPath,
		"export_format":     s.ExportFormat,
		"log_level":         s.LogLevel,
		"log_file":          s.LogFile,
		"log_max_size":      s.LogMaxSize,
		"log_max_files":     s.LogMaxFiles,
	}
}

func defaultLogFile() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		dir = os.TempDir()
	}
	return filepath.Join(dir, "itunes-search", "itunes-search.log")
}
