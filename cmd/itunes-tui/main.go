package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/handiism/itunes-search/internal/config"
	"github.com/handiism/itunes-search/internal/export"
	apihttp "github.com/handiism/itunes-search/internal/http"
	"github.com/handiism/itunes-search/internal/itunes"
	"github.com/handiism/itunes-search/internal/logging"
	"github.com/handiism/itunes-search/internal/session"
	"github.com/handiism/itunes-search/internal/tui"
)

// Version is set via -ldflags at build time.
var Version = "dev"

func main() {
	// Handle interrupts
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var flags config.Flags

	cmd := &cobra.Command{
		Use:           "itunes-tui",
		Short:         "Full-screen iTunes catalog search",
		Version:       Version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			settings, err := flags.Load(cmd.Flags())
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}

			cfg, closer, err := newConfig(settings)
			if err != nil {
				return err
			}
			defer closer()

			return tui.Run(cmd.Context(), cfg)
		},
	}

	flags.Register(cmd.Flags())
	return cmd
}

// newConfig builds the TUI collaborators from settings. The returned func
// closes the log file.
func newConfig(settings *config.Settings) (tui.Config, func(), error) {
	logger, closer, err := logging.New(logging.Config{
		Level:    settings.LogLevel,
		File:     settings.LogFile,
		MaxSize:  settings.LogMaxSize,
		MaxFiles: settings.LogMaxFiles,
	})
	if err != nil {
		return tui.Config{}, nil, err
	}

	exporter, err := export.NewFromSettings(settings, logger)
	if err != nil {
		closer.Close()
		return tui.Config{}, nil, err
	}

	client := itunes.NewClient(
		apihttp.NewClient(settings.UserAgent, settings.Timeout),
		itunes.OptionsFromSettings(settings),
		logger,
	)

	cfg := tui.Config{
		Searcher:    client,
		ExporterFor: func(term string) session.Exporter { return exporter.WithTerm(term) },
		Settings:    settings,
		Logger:      logger,
	}
	return cfg, func() { closer.Close() }, nil
}
