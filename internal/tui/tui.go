// Package tui provides a Bubble Tea terminal user interface for itunes-search.
package tui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/paginator"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/handiism/itunes-search/internal/config"
	"github.com/handiism/itunes-search/internal/logging"
	"github.com/handiism/itunes-search/internal/model"
	"github.com/handiism/itunes-search/internal/session"
)

// Styles for the TUI
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FA57C1")).
			MarginBottom(1)

	subtitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#4ECDC4"))

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#95E1A3"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6C757D"))

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#4ECDC4")).
			Padding(1, 2)
)

// State represents the current UI state.
type State int

const (
	StateInput State = iota
	StateSearching
	StateResults
	StateDetail
	StateError
)

// Config wires the model to its collaborators.
type Config struct {
	Searcher    session.Searcher
	ExporterFor session.ExporterFor
	Settings    *config.Settings
	Logger      *slog.Logger
}

// Model is the Bubble Tea model for the TUI.
type Model struct {
	state     State
	textInput textinput.Model
	spinner   spinner.Model
	table     table.Model
	pages     paginator.Model
	settings  *config.Settings
	logger    *slog.Logger
	err       error

	searcher    session.Searcher
	exporterFor session.ExporterFor

	// Search context
	ctx    context.Context
	cancel context.CancelFunc

	term     string
	searchID int
	results  *model.ResultSet
	rows     []model.Row
	selected model.Record
	status   string

	width  int
	height int
}

// NewModel creates a new TUI model.
func NewModel(cfg Config) Model {
	settings := cfg.Settings
	if settings == nil {
		settings = config.DefaultSettings()
	}

	ti := textinput.New()
	ti.Placeholder = "Artist, album or track"
	ti.Focus()
	ti.CharLimit = 200
	ti.Width = 50

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#FA57C1"))

	pageSize := settings.PageSizeOrDefault()

	tbl := table.New(
		table.WithColumns(columns(80)),
		table.WithFocused(true),
		table.WithHeight(pageSize+1),
	)

	pg := paginator.New()
	pg.Type = paginator.Dots
	pg.PerPage = pageSize
	pg.ActiveDot = subtitleStyle.Render("•")
	pg.InactiveDot = dimStyle.Render("•")

	ctx, cancel := context.WithCancel(context.Background())

	return Model{
		state:       StateInput,
		textInput:   ti,
		spinner:     sp,
		table:       tbl,
		pages:       pg,
		settings:    settings,
		logger:      logging.OrDefault(cfg.Logger).With("component", "tui"),
		searcher:    cfg.Searcher,
		exporterFor: cfg.ExporterFor,
		ctx:         ctx,
		cancel:      cancel,
	}
}

// columns sizes the result table for a terminal width.
func columns(width int) []table.Column {
	rest := max(width-5-12-10, 30)
	return []table.Column{
		{Title: "#", Width: 5},
		{Title: "Artist", Width: rest * 2 / 5},
		{Title: "Release Date", Width: 12},
		{Title: "Track Name", Width: rest - rest*2/5},
	}
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spinner.Tick)
}

// Message types
type (
	// SearchDoneMsg is sent when a search completes.
	SearchDoneMsg struct {
		// ID identifies the search that produced the message.
		ID      int
		Term    string
		Results *model.ResultSet
		Err     error
	}

	// ExportDoneMsg is sent when an export completes.
	ExportDoneMsg struct {
		Path string
		Err  error
	}
)

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table.SetColumns(columns(msg.Width))
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.cancel()
			return m, tea.Quit

		case "esc":
			switch m.state {
			case StateInput:
				return m, tea.Quit
			case StateSearching:
				m.cancel()
				m.ctx, m.cancel = context.WithCancel(context.Background())
				m.state = StateInput
			case StateDetail:
				m.state = StateResults
			case StateError:
				m.state = StateInput
			}
			return m, nil

		case "enter":
			switch m.state {
			case StateInput:
				term := strings.TrimSpace(m.textInput.Value())
				if term == "" {
					return m, nil
				}
				m.term = term
				m.searchID++
				m.status = ""
				m.state = StateSearching
				return m, tea.Batch(m.search(term), m.spinner.Tick)
			case StateResults:
				if rec, ok := m.selectedRecord(); ok {
					m.selected = rec
					m.state = StateDetail
				}
				return m, nil
			}

		case "q":
			if m.state == StateResults || m.state == StateDetail || m.state == StateError {
				return m, tea.Quit
			}

		case "/", "r":
			if m.state == StateResults || m.state == StateDetail || m.state == StateError {
				m.state = StateInput
				m.err = nil
				m.status = ""
				m.textInput.SetValue("")
				m.textInput.Focus()
				return m, textinput.Blink
			}

		case "e":
			if m.state == StateResults {
				return m, m.export()
			}

		case "left", "h":
			if m.state == StateResults {
				m.pages.PrevPage()
				m.refreshTable()
				return m, nil
			}

		case "right", "l":
			if m.state == StateResults {
				m.pages.NextPage()
				m.refreshTable()
				return m, nil
			}
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)

	case SearchDoneMsg:
		if m.state != StateSearching || msg.ID != m.searchID || errors.Is(msg.Err, context.Canceled) {
			return m, nil
		}
		if msg.Err != nil {
			m.logger.Warn("search failed", "term", msg.Term, "error", msg.Err)
			m.state = StateError
			m.err = msg.Err
			return m, nil
		}
		m.setResults(msg.Results)
		m.state = StateResults

	case ExportDoneMsg:
		if msg.Err != nil {
			m.status = errorStyle.Render(fmt.Sprintf("Export failed: %v", msg.Err))
		} else {
			m.status = successStyle.Render(fmt.Sprintf("File saved as %s!", msg.Path))
		}
	}

	switch m.state {
	case StateInput:
		var cmd tea.Cmd
		m.textInput, cmd = m.textInput.Update(msg)
		cmds = append(cmds, cmd)
	case StateResults:
		if _, ok := msg.(tea.KeyMsg); ok {
			var cmd tea.Cmd
			m.table, cmd = m.table.Update(msg)
			cmds = append(cmds, cmd)
		}
	}

	return m, tea.Batch(cmds...)
}

// setResults replaces the result set and shows its first page.
func (m *Model) setResults(rs *model.ResultSet) {
	if rs == nil {
		rs = model.NewResultSet(nil)
	}
	m.results = rs
	m.rows = rs.Rows()
	m.pages.Page = 0
	m.pages.TotalPages = 1
	if len(m.rows) > 0 {
		m.pages.SetTotalPages(len(m.rows))
	}
	m.refreshTable()
}

// refreshTable loads the rows of the current page into the table.
func (m *Model) refreshTable() {
	start, end := m.pages.GetSliceBounds(len(m.rows))
	rows := make([]table.Row, 0, end-start)
	for _, r := range m.rows[start:end] {
		rows = append(rows, table.Row(r.Cells()))
	}
	m.table.SetRows(rows)
	m.table.SetCursor(0)
}

// selectedRecord resolves the highlighted row through its global index.
func (m Model) selectedRecord() (model.Record, bool) {
	row := m.table.SelectedRow()
	if len(row) == 0 {
		return model.Record{}, false
	}
	index, err := strconv.Atoi(row[0])
	if err != nil {
		return model.Record{}, false
	}
	return m.results.At(index)
}

// View renders the UI.
func (m Model) View() string {
	var b strings.Builder

	// Header
	b.WriteString(titleStyle.Render("♫ iTunes Search"))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Search the iTunes catalog"))
	b.WriteString("\n\n")

	switch m.state {
	case StateInput:
		b.WriteString(m.viewInput())
	case StateSearching:
		b.WriteString(m.viewSearching())
	case StateResults:
		b.WriteString(m.viewResults())
	case StateDetail:
		b.WriteString(m.viewDetail())
	case StateError:
		b.WriteString(m.viewError())
	}

	// Footer
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(m.helpText()))

	return b.String()
}

func (m Model) viewInput() string {
	var b strings.Builder

	b.WriteString(subtitleStyle.Render("Artist to search:"))
	b.WriteString("\n\n")
	b.WriteString(m.textInput.View())
	b.WriteString("\n\n")
	b.WriteString(dimStyle.Render(fmt.Sprintf("Export path: %s (%s)", m.settings.ExportPath, m.settings.ExportFormat)))
	b.WriteString("\n")

	return b.String()
}

func (m Model) viewSearching() string {
	return fmt.Sprintf("%s %s\n", m.spinner.View(), subtitleStyle.Render(fmt.Sprintf("Searching for %q...", m.term)))
}

func (m Model) viewResults() string {
	var b strings.Builder

	if len(m.rows) == 0 {
		b.WriteString(subtitleStyle.Render(fmt.Sprintf("No results found for %q.", m.term)))
		b.WriteString("\n")
		return b.String()
	}

	b.WriteString(successStyle.Render(fmt.Sprintf("%d result(s) for %q", len(m.rows), m.term)))
	b.WriteString("\n\n")
	b.WriteString(m.table.View())
	b.WriteString("\n")
	if m.pages.TotalPages > 1 {
		b.WriteString("  ")
		b.WriteString(m.pages.View())
		b.WriteString("\n")
	}
	if m.status != "" {
		b.WriteString("\n")
		b.WriteString(m.status)
		b.WriteString("\n")
	}

	return b.String()
}

func (m Model) viewDetail() string {
	return boxStyle.Render(strings.TrimRight(session.RenderDetail(m.selected), "\n"))
}

func (m Model) viewError() string {
	var b strings.Builder

	b.WriteString(errorStyle.Render("Search failed:"))
	b.WriteString("\n\n")
	if m.err != nil {
		b.WriteString(fmt.Sprintf("  %s", m.err.Error()))
	}

	return b.String()
}

func (m Model) helpText() string {
	switch m.state {
	case StateInput:
		return "enter: search • esc: quit"
	case StateSearching:
		return "esc: cancel"
	case StateResults:
		return "↑/↓: select • ←/→: page • enter: details • e: export • /: new search • q: quit"
	case StateDetail:
		return "esc: back • /: new search • q: quit"
	case StateError:
		return "r: new search • q: quit"
	}
	return ""
}

// search runs the search in the background.
func (m Model) search(term string) tea.Cmd {
	ctx := m.ctx
	id := m.searchID
	searcher := m.searcher
	return func() tea.Msg {
		if searcher == nil {
			return SearchDoneMsg{ID: id, Term: term, Err: errors.New("no searcher configured")}
		}
		rs, err := searcher.Search(ctx, term)
		return SearchDoneMsg{ID: id, Term: term, Results: rs, Err: err}
	}
}

// export writes the current results in the background.
func (m Model) export() tea.Cmd {
	rs := m.results
	term := m.term
	exporterFor := m.exporterFor
	return func() tea.Msg {
		if exporterFor == nil {
			return ExportDoneMsg{Err: errors.New("export is not configured")}
		}
		path, err := exporterFor(term).Export(rs)
		return ExportDoneMsg{Path: path, Err: err}
	}
}

// Run starts the TUI application.
func Run(ctx context.Context, cfg Config) error {
	p := tea.NewProgram(NewModel(cfg), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
