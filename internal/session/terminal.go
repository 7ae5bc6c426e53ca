package session

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// ErrInputClosed is returned when the input stream ends while a prompt is
// waiting for a line.
var ErrInputClosed = errors.New("input closed")

// clearSequence moves the cursor home and erases the screen.
const clearSequence = "\033[H\033[2J"

// Terminal is the console capability the session needs.
//
// Output goes through the embedded io.Writer. Implementations other than
// Console are mainly test doubles.
type Terminal interface {
	io.Writer

	// ReadLine writes prompt and blocks until a line of input is available.
	// The line is returned without its trailing newline. At end of input it
	// returns ErrInputClosed.
	ReadLine(prompt string) (string, error)

	// Clear erases the display surface.
	Clear()

	// Pause blocks until the user acknowledges.
	Pause() error

	// Renderer returns the lipgloss renderer matching the output, so styles
	// only emit colors on a real terminal.
	Renderer() *lipgloss.Renderer
}

// Console is a Terminal over a reader and a writer.
type Console struct {
	in       *bufio.Reader
	out      io.Writer
	clear    bool
	renderer *lipgloss.Renderer
}

// NewConsole creates a Console. When clear is false, Clear is a no-op.
func NewConsole(in io.Reader, out io.Writer, clear bool) *Console {
	return &Console{
		in:       bufio.NewReader(in),
		out:      out,
		clear:    clear,
		renderer: lipgloss.NewRenderer(out),
	}
}

// NewStdConsole creates a Console on stdin/stdout. Screen clearing is only
// enabled when requested and stdout is a terminal.
func NewStdConsole(clearScreen bool) *Console {
	clear := clearScreen && term.IsTerminal(int(os.Stdout.Fd()))
	return NewConsole(os.Stdin, os.Stdout, clear)
}

// Write implements io.Writer.
func (c *Console) Write(p []byte) (int, error) {
	return c.out.Write(p)
}

// ReadLine implements Terminal.
func (c *Console) ReadLine(prompt string) (string, error) {
	if prompt != "" {
		if _, err := io.WriteString(c.out, prompt); err != nil {
			return "", err
		}
	}

	line, err := c.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) {
			if line != "" {
				return strings.TrimRight(line, "\r"), nil
			}
			return "", ErrInputClosed
		}
		return "", err
	}

	return strings.TrimRight(line, "\r\n"), nil
}

// Clear implements Terminal.
func (c *Console) Clear() {
	if c.clear {
		io.WriteString(c.out, clearSequence)
	}
}

// Pause implements Terminal.
func (c *Console) Pause() error {
	_, err := c.ReadLine("Press the <ENTER> key to continue...")
	if err != nil {
		return err
	}
	fmt.Fprintln(c.out)
	return nil
}

// Renderer implements Terminal.
func (c *Console) Renderer() *lipgloss.Renderer {
	return c.renderer
}
