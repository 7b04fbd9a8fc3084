package logger

import (
	"time"

	"github.com/fmtlog/fmtlog/pkg/level"
)

// Option customizes a Logger beyond its Config. It follows the same
// functional-option pattern as the rest of the module.
type Option func(*Logger)

// WithClock replaces the wall-clock source used for the %time field.
// Intended for tests and replay tooling.
func WithClock(now func() time.Time) Option {
	return func(l *Logger) {
		if now != nil {
			l.clock = now
		}
	}
}

// WithFormatObserver installs an instrumentation hook invoked whenever a
// log call reaches the format engine. Suppressed calls never trigger it,
// which makes the filtering short-circuit observable in tests.
func WithFormatObserver(fn func(level.Level)) Option {
	return func(l *Logger) {
		l.observer = fn
	}
}
