package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// StdioConsole is a plain blocking console over a reader and writer. It
// serves the non-TUI commands (`lazymesh status`) and is the default until
// the interactive terminal takes over.
type StdioConsole struct {
	in  *bufio.Reader
	out io.Writer
}

// NewStdioConsole creates a console over in and out.
func NewStdioConsole(in io.Reader, out io.Writer) *StdioConsole {
	return &StdioConsole{in: bufio.NewReader(in), out: out}
}

// Print writes a value followed by a newline.
func (c *StdioConsole) Print(value any) {
	fmt.Fprintln(c.out, value)
}

// Confirm asks a yes/no question and reads one line. Anything other than
// y/yes answers false.
func (c *StdioConsole) Confirm(message string) bool {
	fmt.Fprintf(c.out, "%s [y/n]: ", message)
	line, err := c.in.ReadString('\n')
	if err != nil {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}

// Prompt asks for a free-text value and returns the line verbatim.
func (c *StdioConsole) Prompt(message string) string {
	fmt.Fprintf(c.out, "%s: ", message)
	line, err := c.in.ReadString('\n')
	if err != nil {
		return ""
	}
	return strings.TrimRight(line, "\n")
}
