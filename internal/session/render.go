package session

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/handiism/itunes-search/internal/model"
)

// tableHeaders are the result table columns.
var tableHeaders = []string{"#", "Artist", "Release Date", "Track Name"}

type styles struct {
	title  lipgloss.Style
	label  lipgloss.Style
	header lipgloss.Style
	cell   lipgloss.Style
	border lipgloss.Style
	err    lipgloss.Style
	ok     lipgloss.Style
}

func newStyles(r *lipgloss.Renderer) styles {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	return styles{
		title:  r.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		label:  r.NewStyle().Bold(true),
		header: r.NewStyle().Bold(true).Padding(0, 1),
		cell:   r.NewStyle().Padding(0, 1),
		border: r.NewStyle().Foreground(lipgloss.Color("240")),
		err:    r.NewStyle().Foreground(lipgloss.Color("196")),
		ok:     r.NewStyle().Foreground(lipgloss.Color("42")),
	}
}

// renderTable draws rows as a bordered table. Each row carries its global
// index, so the numbers shown match what the selection prompt accepts.
func (s styles) renderTable(rows []model.Row) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(s.border).
		Headers(tableHeaders...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return s.header
			}
			return s.cell
		})

	for _, r := range rows {
		t.Row(r.Cells()...)
	}

	return t.String()
}

// detailFields lists the labels of the detail view in display order.
var detailFields = []struct {
	label string
	value func(model.Record) string
}{
	{"Artist", model.Record.Artist},
	{"Track", model.Record.Title},
	{"Release date", model.Record.ReleaseDateText},
	{"Collection name", model.Record.Collection},
	{"Collection price", model.Record.CollectionPriceText},
	{"Track price", model.Record.TrackPriceText},
	{"Track number", model.Record.TrackNumberText},
	{"Track count", model.Record.TrackCountText},
	{"Kind", model.Record.KindText},
	{"Genre", model.Record.Genre},
}

// renderDetail formats the full field list of one record.
func (s styles) renderDetail(rec model.Record) string {
	var b strings.Builder
	b.WriteString(s.title.Render(fmt.Sprintf("-- %s Details Page --", rec.Title())))
	b.WriteByte('\n')
	for _, f := range detailFields {
		fmt.Fprintf(&b, "%s %s\n", s.label.Render(f.label+":"), f.value(rec))
	}
	return b.String()
}

// RenderDetail formats one record the way the detail view shows it, without
// colors.
func RenderDetail(rec model.Record) string {
	return newStyles(lipgloss.NewRenderer(&strings.Builder{})).renderDetail(rec)
}

// RenderTable formats rows the way the table views show them, without colors.
func RenderTable(rows []model.Row) string {
	return newStyles(lipgloss.NewRenderer(&strings.Builder{})).renderTable(rows)
}
