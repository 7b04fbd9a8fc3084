// Package fake provides a capturing sink for tests.
package fake

import "sync"

// Sink records every line written to it so tests can inspect delivery
// order, color hints and flush calls. It can be programmed to fail.
type Sink struct {
	mu       sync.Mutex
	lines    []string
	colored  []bool
	flushes  int
	writeErr error
	flushErr error
}

// NewSink creates an empty capturing sink.
func NewSink() *Sink {
	return &Sink{}
}

// FailWrites makes every subsequent Write return err. Pass nil to heal.
func (s *Sink) FailWrites(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.writeErr = err
}

// FailFlushes makes every subsequent Flush return err. Pass nil to heal.
func (s *Sink) FailFlushes(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.flushErr = err
}

// Write implements sink.Sink.
func (s *Sink) Write(line string, colored bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.writeErr != nil {
		return s.writeErr
	}
	s.lines = append(s.lines, line)
	s.colored = append(s.colored, colored)
	return nil
}

// Flush implements sink.Sink.
func (s *Sink) Flush() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.flushErr != nil {
		return s.flushErr
	}
	s.flushes++
	return nil
}

// Lines returns a copy of the captured lines.
func (s *Sink) Lines() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.lines...)
}

// Last returns the most recently captured line, or "".
func (s *Sink) Last() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.lines) == 0 {
		return ""
	}
	return s.lines[len(s.lines)-1]
}

// ColorHints returns a copy of the color hints seen by Write.
func (s *Sink) ColorHints() []bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]bool(nil), s.colored...)
}

// FlushCount returns how many times Flush succeeded.
func (s *Sink) FlushCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.flushes
}

// Reset discards all captured state.
func (s *Sink) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lines = nil
	s.colored = nil
	s.flushes = 0
}
