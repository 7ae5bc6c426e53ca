package session

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/handiism/itunes-search/internal/logging"
	"github.com/handiism/itunes-search/internal/model"
)

// Mode is a display mode chosen from the viewing options menu.
type Mode int

const (
	// ModePaged shows the results one page at a time.
	ModePaged Mode = iota + 1
	// ModeShowAll shows every result in a single table.
	ModeShowAll
	// ModeExport writes the results to a file.
	ModeExport
)

func (m Mode) String() string {
	switch m {
	case ModePaged:
		return "paged"
	case ModeShowAll:
		return "show-all"
	case ModeExport:
		return "export"
	default:
		return "unknown"
	}
}

// Outcome is the terminal state of one controller run.
type Outcome int

const (
	// OutcomeQuit means the user entered 0 at the selection prompt.
	OutcomeQuit Outcome = iota
	// OutcomeViewed means a detail view was shown.
	OutcomeViewed
	// OutcomeExported means the results were written to a file.
	OutcomeExported
)

func (o Outcome) String() string {
	switch o {
	case OutcomeQuit:
		return "quit"
	case OutcomeViewed:
		return "viewed"
	case OutcomeExported:
		return "exported"
	default:
		return "unknown"
	}
}

// EventKind identifies what an Event reports.
type EventKind int

const (
	// EventPage is sent after a table (one page or all rows) was written.
	EventPage EventKind = iota
	// EventReprompt is sent when an input was rejected and asked for again.
	EventReprompt
	// EventDetail is sent before a detail view is shown.
	EventDetail
	// EventExport is sent after a successful export.
	EventExport
)

// Event is an observable step of a session.
type Event struct {
	Kind EventKind

	// Page holds the flushed rows for EventPage.
	Page model.Page

	// Position is the 0-based result position for EventDetail.
	Position int

	// Path is the written file for EventExport.
	Path string

	// Input is the rejected line for EventReprompt.
	Input string
}

// Exporter writes a result set somewhere and reports where.
type Exporter interface {
	Export(rs *model.ResultSet) (string, error)
}

// Options configures a Controller.
type Options struct {
	// PageSize is the number of rows per page. Values below 1 mean
	// model.DefaultPageSize.
	PageSize int

	// LoopAfterDetail returns to the selection prompt after a detail view
	// instead of ending the session.
	LoopAfterDetail bool

	// OnEvent, if set, receives every session event.
	OnEvent func(Event)

	Logger *slog.Logger
}

// Controller drives the interactive view of one result set: mode menu,
// table display, selection and detail view.
type Controller struct {
	term     Terminal
	exporter Exporter
	opts     Options
	styles   styles
	logger   *slog.Logger

	// lastRows is the most recently displayed table.
	lastRows []model.Row
}

// NewController creates a Controller. exporter may be nil when exporting is
// not available.
func NewController(term Terminal, exporter Exporter, opts Options) *Controller {
	if opts.PageSize < 1 {
		opts.PageSize = model.DefaultPageSize
	}
	return &Controller{
		term:     term,
		exporter: exporter,
		opts:     opts,
		styles:   newStyles(term.Renderer()),
		logger:   logging.OrDefault(opts.Logger).With("component", "session"),
	}
}

// Run asks for a display mode and carries it through to a terminal state.
//
// An empty result set is valid: the tables print "No results." and only 0
// is accepted at the selection prompt.
func (c *Controller) Run(rs *model.ResultSet) (Outcome, error) {
	if rs == nil {
		rs = model.NewResultSet(nil)
	}

	mode, err := c.SelectMode()
	if err != nil {
		return OutcomeQuit, err
	}
	c.logger.Debug("display mode selected", "mode", mode, "results", rs.Len())

	switch mode {
	case ModeExport:
		if err := c.Export(rs); err != nil {
			return OutcomeQuit, err
		}
		return OutcomeExported, nil
	case ModeShowAll:
		c.ShowAll(rs)
	default:
		if err := c.ShowPaged(rs); err != nil {
			return OutcomeQuit, err
		}
	}

	return c.Select(rs)
}

// SelectMode shows the viewing options menu until a valid choice is made.
func (c *Controller) SelectMode() (Mode, error) {
	for {
		c.term.Clear()
		fmt.Fprintln(c.term, c.styles.title.Render("-- Viewing Options --"))
		fmt.Fprintf(c.term, "1) %d results per page\n", c.opts.PageSize)
		fmt.Fprintln(c.term, "2) Show all results")
		fmt.Fprintln(c.term, "3) Output to file")

		line, err := c.term.ReadLine("-> ")
		if err != nil {
			return 0, err
		}

		n, ok := parseChoice(line, int(ModePaged), int(ModeExport))
		if ok {
			return Mode(n), nil
		}
		c.reprompt(line)
	}
}

// ShowPaged writes the results one page at a time, pausing between pages
// but not after the last one.
func (c *Controller) ShowPaged(rs *model.ResultSet) error {
	pages := rs.Paginate(c.opts.PageSize)
	if len(pages) == 0 {
		c.term.Clear()
		c.writeEmpty()
		return nil
	}

	for i, page := range pages {
		c.term.Clear()
		c.writeTable(page)
		fmt.Fprintf(c.term, "Page %d of %d\n", page.Number, len(pages))

		if i < len(pages)-1 {
			if err := c.term.Pause(); err != nil {
				return err
			}
		}
	}
	return nil
}

// ShowAll writes every result in a single table.
func (c *Controller) ShowAll(rs *model.ResultSet) {
	c.term.Clear()
	if rs.Len() == 0 {
		c.writeEmpty()
		return
	}
	c.writeTable(model.Page{Number: 1, Rows: rs.Rows()})
}

// Export writes the results through the exporter and confirms the path.
func (c *Controller) Export(rs *model.ResultSet) error {
	if c.exporter == nil {
		return errors.New("export is not configured")
	}

	path, err := c.exporter.Export(rs)
	if err != nil {
		return err
	}

	fmt.Fprintln(c.term, c.styles.ok.Render(fmt.Sprintf("File saved as %s!", path)))
	c.emit(Event{Kind: EventExport, Path: path})
	return nil
}

// Select prompts for a result number in 0..N. 0 quits; any other valid
// number opens the detail view of that result.
func (c *Controller) Select(rs *model.ResultSet) (Outcome, error) {
	for {
		fmt.Fprintln(c.term, "------------------")
		fmt.Fprintln(c.term, "Enter track number (0 to quit)")

		line, err := c.term.ReadLine("-> ")
		if err != nil {
			return OutcomeQuit, err
		}

		n, ok := parseChoice(line, 0, rs.Len())
		if !ok {
			c.reprompt(line)
			continue
		}
		if n == 0 {
			return OutcomeQuit, nil
		}

		rec, _ := rs.At(n)
		c.emit(Event{Kind: EventDetail, Position: n - 1})
		if err := c.ShowDetail(rec); err != nil {
			return OutcomeViewed, err
		}

		if !c.opts.LoopAfterDetail {
			return OutcomeViewed, nil
		}

		c.term.Clear()
		if len(c.lastRows) > 0 {
			fmt.Fprintln(c.term, c.styles.renderTable(c.lastRows))
		}
	}
}

// ShowDetail clears the screen, writes the record's fields and waits for the
// user to continue.
func (c *Controller) ShowDetail(rec model.Record) error {
	c.term.Clear()
	fmt.Fprint(c.term, c.styles.renderDetail(rec))
	return c.term.Pause()
}

func (c *Controller) writeTable(page model.Page) {
	c.lastRows = page.Rows
	fmt.Fprintln(c.term, c.styles.renderTable(page.Rows))
	c.emit(Event{Kind: EventPage, Page: page})
}

func (c *Controller) writeEmpty() {
	c.lastRows = nil
	fmt.Fprintln(c.term, "No results.")
	c.emit(Event{Kind: EventPage, Page: model.Page{Number: 1}})
}

// reprompt records rejected input. Nothing is shown; the caller asks again.
func (c *Controller) reprompt(line string) {
	c.logger.Debug("input rejected", "input", line)
	c.emit(Event{Kind: EventReprompt, Input: line})
}

func (c *Controller) emit(e Event) {
	if c.opts.OnEvent != nil {
		c.opts.OnEvent(e)
	}
}

// parseChoice parses line as an integer within lo..hi inclusive.
func parseChoice(line string, lo, hi int) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(line))
	if err != nil || n < lo || n > hi {
		return 0, false
	}
	return n, true
}
