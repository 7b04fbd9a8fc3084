package sink

import (
	"io"
	"os"
	"sync"

	"golang.org/x/term"

	"github.com/fmtlog/fmtlog/pkg/format"
)

// Colorized is a console sink that honors ANSI color and emphasis escape
// sequences when the destination supports them, and strips them
// otherwise. Support is decided once at construction and never
// re-checked, so message content is identical either way except for the
// escape bytes themselves.
type Colorized struct {
	mu    sync.Mutex
	w     io.Writer
	color bool
}

// NewColorizedConsole creates a colorized sink over f, detecting color
// support by whether f is a terminal.
func NewColorizedConsole(f *os.File) *Colorized {
	if f == nil {
		panic("sink: nil file")
	}
	return &Colorized{w: f, color: term.IsTerminal(int(f.Fd()))}
}

// NewColorized creates a colorized sink with explicit color support,
// for injected writers and tests.
func NewColorized(w io.Writer, colorSupported bool) *Colorized {
	if w == nil {
		panic("sink: nil writer")
	}
	return &Colorized{w: w, color: colorSupported}
}

// ColorSupported reports the decision made at construction.
func (c *Colorized) ColorSupported() bool { return c.color }

// Write implements Sink. When the destination has no color support and
// the line is hinted (or found) to carry escapes, they are stripped
// before writing.
func (c *Colorized) Write(line string, colored bool) error {
	if !c.color && colored {
		line = format.Strip(line)
	}
	return writeLine(&c.mu, c.w, line)
}

// Flush implements Sink.
func (c *Colorized) Flush() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return flushWriter(c.w)
}
