package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/handiism/itunes-search/internal/config"
	"github.com/handiism/itunes-search/internal/export"
	apihttp "github.com/handiism/itunes-search/internal/http"
	ioutils "github.com/handiism/itunes-search/internal/io"
	"github.com/handiism/itunes-search/internal/itunes"
	"github.com/handiism/itunes-search/internal/logging"
	"github.com/handiism/itunes-search/internal/session"
)

// Version is set via -ldflags at build time.
var Version = "dev"

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var flags config.Flags

	cmd := &cobra.Command{
		Use:           "itunes-search",
		Short:         "Search the iTunes catalog from the terminal",
		Long:          "itunes-search looks up artists in the iTunes catalog, shows the results as paged tables and details, and exports them to JSON or playlist files.\n\nFor the full-screen interface, use: itunes-tui",
		Version:       Version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			settings, err := flags.Load(cmd.Flags())
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}
			return run(cmd.Context(), settings, session.NewStdConsole(settings.ClearScreen))
		},
	}

	flags.Register(cmd.PersistentFlags())
	cmd.AddCommand(newConfigCmd(&flags))

	return cmd
}

func newConfigCmd(flags *config.Flags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or save the effective settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			settings, err := flags.Load(cmd.Flags())
			if err != nil {
				return err
			}
			data, err := json.MarshalIndent(settings, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return nil
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "save <path>",
		Short: "Write the effective settings to a config file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := flags.Load(cmd.Flags())
			if err != nil {
				return err
			}
			if err := settings.Save(args[0]); err != nil {
				return fmt.Errorf("saving config: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Config saved as %s\n", args[0])
			return nil
		},
	})

	return cmd
}

// run wires the search, import and export stack to a terminal and runs the
// interactive session until it ends.
func run(ctx context.Context, settings *config.Settings, term session.Terminal) error {
	logger, closer, err := logging.New(logging.Config{
		Level:    settings.LogLevel,
		File:     settings.LogFile,
		MaxSize:  settings.LogMaxSize,
		MaxFiles: settings.LogMaxFiles,
	})
	if err != nil {
		return err
	}
	defer closer.Close()

	exporter, err := export.NewFromSettings(settings, logger)
	if err != nil {
		return err
	}

	client := itunes.NewClient(
		apihttp.NewClient(settings.UserAgent, settings.Timeout),
		itunes.OptionsFromSettings(settings),
		logger,
	)

	app := session.NewApp(term, client, ioutils.ReadResultSet,
		func(searchTerm string) session.Exporter { return exporter.WithTerm(searchTerm) },
		session.Options{
			PageSize:        settings.PageSizeOrDefault(),
			LoopAfterDetail: settings.LoopAfterDetail,
			Logger:          logger,
		},
	)

	logger.Info("session started", "version", Version, "export", exporter.Path(), "format", exporter.Format())
	return app.Run(ctx)
}
