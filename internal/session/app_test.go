package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/handiism/itunes-search/internal/itunes"
	"github.com/handiism/itunes-search/internal/model"
)

type fakeSearcher struct {
	results *model.ResultSet
	errs    []error
	terms   []string
}

func (s *fakeSearcher) Search(_ context.Context, term string) (*model.ResultSet, error) {
	s.terms = append(s.terms, term)
	if len(s.errs) > 0 {
		err := s.errs[0]
		s.errs = s.errs[1:]
		if err != nil {
			return nil, err
		}
	}
	return s.results, nil
}

func TestAppSearchAndView(t *testing.T) {
	var log eventLog
	searcher := &fakeSearcher{results: syntheticSet(3)}
	var exportTerm string
	exporterFor := func(term string) Exporter {
		exportTerm = term
		return &fakeExporter{path: "results.json"}
	}
	term := newScriptedTerminal("1", "  ", "daft punk", "3")

	app := NewApp(term, searcher, nil, exporterFor, Options{OnEvent: log.record})
	if err := app.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if diff := cmp.Diff([]string{"daft punk"}, searcher.terms); diff != "" {
		t.Errorf("search terms mismatch (-want +got):\n%s", diff)
	}
	if exportTerm != "daft punk" {
		t.Errorf("exporter term = %q, want %q", exportTerm, "daft punk")
	}
	if !strings.Contains(term.String(), "File saved as results.json!") {
		t.Errorf("missing export confirmation:\n%s", term.String())
	}
	// The blank search term is asked again.
	if got := len(log.ofKind(EventReprompt)); got != 1 {
		t.Errorf("reprompts = %d, want 1", got)
	}
}

func TestAppSearchRetry(t *testing.T) {
	t.Run("retry succeeds", func(t *testing.T) {
		searcher := &fakeSearcher{results: syntheticSet(2), errs: []error{fmt.Errorf("%w: boom", itunes.ErrSearchFailed)}}
		term := newScriptedTerminal("1", "abba", "y", "2", "0")

		if err := NewApp(term, searcher, nil, nil, Options{}).Run(context.Background()); err != nil {
			t.Fatalf("Run() error = %v", err)
		}
		if len(searcher.terms) != 2 {
			t.Errorf("searches = %d, want 2", len(searcher.terms))
		}
		if !strings.Contains(term.String(), "Search failed: boom") {
			t.Errorf("missing failure message:\n%s", term.String())
		}
		if strings.Contains(term.String(), "Search failed: search failed") {
			t.Errorf("failure message repeats itself:\n%s", term.String())
		}
	})

	t.Run("give up returns to menu", func(t *testing.T) {
		searcher := &fakeSearcher{errs: []error{errors.New("offline")}}
		term := newScriptedTerminal("1", "abba", "maybe", "n", "0")

		var log eventLog
		if err := NewApp(term, searcher, nil, nil, Options{OnEvent: log.record}).Run(context.Background()); err != nil {
			t.Fatalf("Run() error = %v", err)
		}
		if len(searcher.terms) != 1 {
			t.Errorf("searches = %d, want 1", len(searcher.terms))
		}
		if !strings.Contains(term.String(), "Search failed: offline") {
			t.Errorf("missing failure message:\n%s", term.String())
		}
		if got := len(log.ofKind(EventReprompt)); got != 1 {
			t.Errorf("reprompts = %d, want 1", got)
		}
	})
}

func TestAppNoResults(t *testing.T) {
	searcher := &fakeSearcher{results: model.NewResultSet(nil)}
	term := newScriptedTerminal("1", "nobody", "0")

	if err := NewApp(term, searcher, nil, nil, Options{}).Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if !strings.Contains(term.String(), "No results found.") {
		t.Errorf("missing empty notice:\n%s", term.String())
	}
	if strings.Contains(term.String(), "Viewing Options") {
		t.Error("viewing options shown for an empty result set")
	}
}

func TestAppImport(t *testing.T) {
	imported := syntheticSet(4)
	importer := func(path string) (*model.ResultSet, error) {
		if path != "saved.json" {
			return nil, errors.New("no such file")
		}
		return imported, nil
	}

	var log eventLog
	term := newScriptedTerminal("2", "missing.json", "2", "saved.json", "2", "4")
	if err := NewApp(term, &fakeSearcher{}, importer, nil, Options{OnEvent: log.record}).Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if !strings.Contains(term.String(), "Could not import missing.json: no such file") {
		t.Errorf("missing import failure message:\n%s", term.String())
	}
	if d := log.ofKind(EventDetail); len(d) != 1 || d[0].Position != 3 {
		t.Errorf("detail events = %+v, want one at position 3", d)
	}
}

func TestAppQuitAndClosedInput(t *testing.T) {
	tests := []struct {
		name   string
		inputs []string
	}{
		{"quit", []string{"0"}},
		{"eof at menu", nil},
		{"eof at search prompt", []string{"1"}},
		{"invalid then quit", []string{"7", "0"}},
		{"import hidden without importer", []string{"2", "0"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			searcher := &fakeSearcher{results: syntheticSet(1)}
			term := newScriptedTerminal(tt.inputs...)
			if err := NewApp(term, searcher, nil, nil, Options{}).Run(context.Background()); err != nil {
				t.Fatalf("Run() error = %v", err)
			}
			if len(searcher.terms) != 0 {
				t.Errorf("unexpected searches %v", searcher.terms)
			}
			if strings.Contains(term.String(), "Invalid") {
				t.Errorf("rejected input produced a message:\n%s", term.String())
			}
		})
	}
}

func TestAppExportFailureReturnsToMenu(t *testing.T) {
	exporterFor := func(string) Exporter { return &fakeExporter{err: errors.New("permission denied")} }
	term := newScriptedTerminal("1", "abba", "3", "0")

	if err := NewApp(term, &fakeSearcher{results: syntheticSet(2)}, nil, exporterFor, Options{}).Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if !strings.Contains(term.String(), "Error: permission denied") {
		t.Errorf("missing export error:\n%s", term.String())
	}
}

func TestAppCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := NewApp(newScriptedTerminal("1", "abba"), &fakeSearcher{}, nil, nil, Options{}).Run(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Run() error = %v, want context.Canceled", err)
	}
}
