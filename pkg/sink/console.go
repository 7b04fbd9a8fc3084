package sink

import (
	"io"
	"sync"

	"github.com/valyala/bytebufferpool"
)

// Console is a plain console sink: it writes each line plus terminator
// to a line-oriented writer. Writes are serialized by an internal mutex
// and issued as a single Write call so concurrent lines never interleave.
type Console struct {
	mu sync.Mutex
	w  io.Writer
}

// NewConsole creates a plain console sink over w.
func NewConsole(w io.Writer) *Console {
	if w == nil {
		panic("sink: nil writer")
	}
	return &Console{w: w}
}

// Write implements Sink. The color hint is ignored: a plain sink passes
// bytes through verbatim.
func (c *Console) Write(line string, _ bool) error {
	return writeLine(&c.mu, c.w, line)
}

// Flush implements Sink, delegating to the writer's Flush or Sync when
// it has one.
func (c *Console) Flush() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return flushWriter(c.w)
}

// writeLine composes line+terminator in a pooled buffer and issues one
// Write call under the lock.
func writeLine(mu *sync.Mutex, w io.Writer, line string) error {
	buf := bytebufferpool.Get()
	buf.WriteString(line)
	buf.WriteByte('\n')

	mu.Lock()
	_, err := w.Write(buf.B)
	mu.Unlock()

	bytebufferpool.Put(buf)
	return err
}

func flushWriter(w io.Writer) error {
	switch fw := w.(type) {
	case flusher:
		return fw.Flush()
	case syncer:
		return fw.Sync()
	default:
		return nil
	}
}
