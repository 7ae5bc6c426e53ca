package session

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/handiism/itunes-search/internal/model"
)

// scriptedTerminal replays a fixed list of input lines and records output.
type scriptedTerminal struct {
	out     bytes.Buffer
	inputs  []string
	prompts []string
	clears  int
	pauses  int
}

func newScriptedTerminal(inputs ...string) *scriptedTerminal {
	return &scriptedTerminal{inputs: inputs}
}

func (t *scriptedTerminal) Write(p []byte) (int, error) { return t.out.Write(p) }

func (t *scriptedTerminal) ReadLine(prompt string) (string, error) {
	t.out.WriteString(prompt)
	t.prompts = append(t.prompts, prompt)
	if len(t.inputs) == 0 {
		return "", ErrInputClosed
	}
	line := t.inputs[0]
	t.inputs = t.inputs[1:]
	return line, nil
}

func (t *scriptedTerminal) Clear() { t.clears++ }

func (t *scriptedTerminal) Pause() error {
	t.pauses++
	return nil
}

func (t *scriptedTerminal) Renderer() *lipgloss.Renderer {
	return lipgloss.NewRenderer(&bytes.Buffer{})
}

func (t *scriptedTerminal) String() string { return t.out.String() }

// eventLog collects session events.
type eventLog struct {
	events []Event
}

func (l *eventLog) record(e Event) { l.events = append(l.events, e) }

func (l *eventLog) ofKind(kind EventKind) []Event {
	var out []Event
	for _, e := range l.events {
		if e.Kind == kind {
			out = append(out, e)
		}
	}
	return out
}

func ptr[T any](v T) *T { return &v }

func syntheticSet(n int) *model.ResultSet {
	records := make([]model.Record, 0, n)
	for i := 1; i <= n; i++ {
		records = append(records, model.Record{
			ArtistName:  ptr(fmt.Sprintf("Artist %d", i)),
			TrackName:   ptr(fmt.Sprintf("Track %d", i)),
			ReleaseDate: ptr("2001-05-15T07:00:00Z"),
			TrackPrice:  ptr(json.Number("1.29")),
		})
	}
	return model.NewResultSet(records)
}
