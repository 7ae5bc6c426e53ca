package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/handiism/itunes-search/internal/itunes"
	"github.com/handiism/itunes-search/internal/logging"
	"github.com/handiism/itunes-search/internal/model"
)

// Searcher runs a catalog search.
type Searcher interface {
	Search(ctx context.Context, term string) (*model.ResultSet, error)
}

// Importer loads a previously exported result set from a file.
type Importer func(path string) (*model.ResultSet, error)

// ExporterFor returns the exporter to use for results of a search term. The
// term is empty for imported results.
type ExporterFor func(term string) Exporter

// App is the top level of the interactive program: it obtains a result set
// by searching or importing, then hands it to a Controller.
type App struct {
	term        Terminal
	searcher    Searcher
	importer    Importer
	exporterFor ExporterFor
	opts        Options
	styles      styles
	logger      *slog.Logger
}

// NewApp creates an App. importer and exporterFor may be nil, which disables
// importing and exporting respectively.
func NewApp(term Terminal, searcher Searcher, importer Importer, exporterFor ExporterFor, opts Options) *App {
	return &App{
		term:        term,
		searcher:    searcher,
		importer:    importer,
		exporterFor: exporterFor,
		opts:        opts,
		styles:      newStyles(term.Renderer()),
		logger:      logging.OrDefault(opts.Logger).With("component", "app"),
	}
}

// Run shows the main menu until one result set has been handled or the user
// quits. End of input is treated as quitting.
func (a *App) Run(ctx context.Context) error {
	err := a.run(ctx)
	if errors.Is(err, ErrInputClosed) {
		a.logger.Debug("input closed, leaving")
		return nil
	}
	return err
}

func (a *App) run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		choice, err := a.mainMenu()
		if err != nil {
			return err
		}

		var (
			rs   *model.ResultSet
			term string
		)

		switch choice {
		case 0:
			return nil
		case 1:
			term, err = a.readNonBlank("Artist to search: ")
			if err != nil {
				return err
			}
			rs, err = a.search(ctx, term)
		case 2:
			var path string
			path, err = a.readNonBlank("Enter filename: ")
			if err != nil {
				return err
			}
			rs, err = a.importFile(path)
		}
		if err != nil {
			return err
		}
		if rs == nil {
			continue
		}

		if rs.Len() == 0 {
			fmt.Fprintln(a.term, "No results found.")
			if err := a.term.Pause(); err != nil {
				return err
			}
			continue
		}

		var exporter Exporter
		if a.exporterFor != nil {
			exporter = a.exporterFor(term)
		}

		outcome, err := NewController(a.term, exporter, a.opts).Run(rs)
		if err != nil {
			if errors.Is(err, ErrInputClosed) {
				return err
			}
			a.logger.Error("session failed", "error", err)
			fmt.Fprintln(a.term, a.styles.err.Render(fmt.Sprintf("Error: %v", err)))
			if err := a.term.Pause(); err != nil {
				return err
			}
			continue
		}

		a.logger.Info("session finished", "outcome", outcome, "results", rs.Len())
		return nil
	}
}

func (a *App) mainMenu() (int, error) {
	hi := 1
	for {
		a.term.Clear()
		fmt.Fprintln(a.term, a.styles.title.Render("-- iTunes Search --"))
		fmt.Fprintln(a.term, "1) Search artist")
		if a.importer != nil {
			fmt.Fprintln(a.term, "2) Import JSON file")
			hi = 2
		}
		fmt.Fprintln(a.term, "0) Quit")

		line, err := a.term.ReadLine("-> ")
		if err != nil {
			return 0, err
		}

		if n, ok := parseChoice(line, 0, hi); ok {
			return n, nil
		}
		a.logger.Debug("input rejected", "input", line)
		a.emit(Event{Kind: EventReprompt, Input: line})
	}
}

// readNonBlank prompts until a non-blank line is entered.
func (a *App) readNonBlank(prompt string) (string, error) {
	for {
		line, err := a.term.ReadLine(prompt)
		if err != nil {
			return "", err
		}
		if s := strings.TrimSpace(line); s != "" {
			return s, nil
		}
		a.emit(Event{Kind: EventReprompt, Input: line})
	}
}

// search runs the search, offering a retry on failure. A nil result set
// with a nil error means the user gave up.
func (a *App) search(ctx context.Context, term string) (*model.ResultSet, error) {
	for {
		fmt.Fprintf(a.term, "Searching for %q...\n", term)
		rs, err := a.searcher.Search(ctx, term)
		if err == nil {
			return rs, nil
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		a.logger.Warn("search failed", "term", term, "error", err)
		fmt.Fprintln(a.term, a.styles.err.Render("Search failed: "+failureReason(err)))

		retry, err := a.confirm("Retry? (y/n) ")
		if err != nil {
			return nil, err
		}
		if !retry {
			return nil, nil
		}
	}
}

// failureReason returns the cause of a failed search without the leading
// "search failed" the error already carries.
func failureReason(err error) string {
	msg := err.Error()
	if errors.Is(err, itunes.ErrSearchFailed) {
		msg = strings.TrimPrefix(msg, itunes.ErrSearchFailed.Error()+": ")
	}
	return msg
}

func (a *App) importFile(path string) (*model.ResultSet, error) {
	rs, err := a.importer(path)
	if err != nil {
		a.logger.Warn("import failed", "path", path, "error", err)
		fmt.Fprintln(a.term, a.styles.err.Render(fmt.Sprintf("Could not import %s: %v", path, err)))
		if err := a.term.Pause(); err != nil {
			return nil, err
		}
		return nil, nil
	}

	a.logger.Info("imported results", "path", path, "results", rs.Len())
	return rs, nil
}

// confirm asks a yes/no question until it gets y or n.
func (a *App) confirm(prompt string) (bool, error) {
	for {
		line, err := a.term.ReadLine(prompt)
		if err != nil {
			return false, err
		}
		switch strings.ToLower(strings.TrimSpace(line)) {
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		}
		a.emit(Event{Kind: EventReprompt, Input: line})
	}
}

func (a *App) emit(e Event) {
	if a.opts.OnEvent != nil {
		a.opts.OnEvent(e)
	}
}
