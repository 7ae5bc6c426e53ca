// Package config provides configuration management for itunes-search.
//
// This package handles:
//   - Default configuration values
//   - Loading settings from JSON, YAML or TOML files via viper
//   - ITUNES_SEARCH_* environment overrides
//   - Saving settings back to disk
//
// # Default Settings
//
//	settings := config.DefaultSettings()
//	// Searches https://itunes.apple.com/search
//	// 10 results per page
//	// Exports to ./search_results.json
//
// # Loading from File
//
//	settings, err := config.Load("/path/to/config.yaml")
//	if err != nil {
//	    // Malformed file. A missing file yields the defaults.
//	}
//
// # Environment
//
//	ITUNES_SEARCH_COUNTRY=gb ITUNES_SEARCH_PAGE_SIZE=20 itunes-search
//
// # Command-line Flags
//
// Flags registers overrides on a pflag.FlagSet; only flags actually given on
// the command line replace file or environment values:
//
//	var flags config.Flags
//	flags.Register(cmd.PersistentFlags())
//	settings, err := flags.Load(cmd.Flags())
package config
