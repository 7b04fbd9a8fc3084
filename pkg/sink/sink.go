// Package sink provides the destination capability for rendered log
// lines, with plain and colorized console implementations.
package sink

// Sink writes rendered log lines to a destination. Implementations must
// serialize their own writes: a Sink may be shared by multiple loggers,
// and each Write must reach the destination atomically, without
// interleaving bytes from concurrent calls.
//
// Sinks do not retry. A write failure is returned to the caller and the
// line is lost for that sink only.
type Sink interface {
	// Write delivers one rendered line; the sink appends the line
	// terminator. colored hints that the line may contain ANSI escape
	// sequences.
	Write(line string, colored bool) error

	// Flush forces delivery of any buffered bytes.
	Flush() error
}

// flusher and syncer are the optional capabilities Flush delegates to.
type flusher interface{ Flush() error }

type syncer interface{ Sync() error }
