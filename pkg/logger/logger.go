// Package logger provides named, severity-thresholded loggers that
// format messages through the template engine, render lines through a
// compiled pattern and deliver them to an ordered list of sinks.
package logger

import (
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/fmtlog/fmtlog/pkg/format"
	"github.com/fmtlog/fmtlog/pkg/level"
	"github.com/fmtlog/fmtlog/pkg/pattern"
	"github.com/fmtlog/fmtlog/pkg/sink"
)

// Config describes a logger. The zero Threshold is Trace; an empty
// Pattern means pattern.Default.
type Config struct {
	Name           string
	Threshold      level.Level
	Pattern        string
	PatternOptions []pattern.Option
	Sinks          []sink.Sink
}

// Logger is a named logging unit. Its identity is its name; its
// threshold, pattern and sinks are reconfigurable at runtime. All
// methods are safe for concurrent use: log calls take a read-style
// acquisition of the configuration, reconfiguration takes a write-style
// one.
type Logger struct {
	name string

	mu        sync.RWMutex
	threshold level.Level
	pat       *pattern.Pattern
	sinks     []sink.Sink

	clock    func() time.Time
	observer func(level.Level)
}

// New creates a logger from cfg. The pattern is compiled and validated
// here, so malformed patterns fail at configuration time rather than on
// every log call.
func New(cfg Config, opts ...Option) (*Logger, error) {
	if cfg.Name == "" {
		return nil, ErrEmptyName
	}
	pat, err := compilePattern(cfg)
	if err != nil {
		return nil, err
	}
	l := &Logger{
		name:      cfg.Name,
		threshold: cfg.Threshold,
		pat:       pat,
		sinks:     append([]sink.Sink(nil), cfg.Sinks...),
		clock:     time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l, nil
}

func compilePattern(cfg Config) (*pattern.Pattern, error) {
	src := cfg.Pattern
	if src == "" {
		src = pattern.Default
	}
	return pattern.Compile(src, cfg.PatternOptions...)
}

// Name returns the logger's immutable identity.
func (l *Logger) Name() string { return l.name }

// Level returns the current severity threshold.
func (l *Logger) Level() level.Level {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.threshold
}

// SetLevel changes the severity threshold. The change applies to every
// subsequent call; calls already past their filter check are unaffected.
// Invalid levels are ignored.
func (l *Logger) SetLevel(lv level.Level) {
	if !lv.Valid() {
		return
	}
	l.mu.Lock()
	l.threshold = lv
	l.mu.Unlock()
}

// Pattern returns the current pattern source string.
func (l *Logger) Pattern() string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.pat.Source()
}

// SetPattern re-validates and replaces the pattern. On error the
// previous pattern remains active.
func (l *Logger) SetPattern(src string, opts ...pattern.Option) error {
	pat, err := pattern.Compile(src, opts...)
	if err != nil {
		return err
	}
	l.mu.Lock()
	l.pat = pat
	l.mu.Unlock()
	return nil
}

// Sinks returns a copy of the attached sinks in registration order.
func (l *Logger) Sinks() []sink.Sink {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return append([]sink.Sink(nil), l.sinks...)
}

// Reconfigure atomically replaces threshold, pattern and sinks while
// preserving identity, so references held elsewhere observe the new
// configuration. On pattern error nothing is mutated. The config's Name
// is ignored; identity never changes.
func (l *Logger) Reconfigure(cfg Config) error {
	pat, err := compilePattern(cfg)
	if err != nil {
		return err
	}
	l.mu.Lock()
	l.threshold = cfg.Threshold
	l.pat = pat
	l.sinks = append([]sink.Sink(nil), cfg.Sinks...)
	l.mu.Unlock()
	return nil
}

// Log formats and delivers a message at the given level. Suppressed
// calls return immediately without touching the format engine. Format
// errors are returned as-is; sink write failures are joined into the
// returned error (see FailedSinks) while delivery continues to the
// remaining sinks in registration order.
func (l *Logger) Log(lv level.Level, template string, args ...format.Argument) error {
	return l.write(lv, Source{}, template, args)
}

// LogAt is Log with an explicit call site. The source is rendered only
// when the pattern includes the %source field.
func (l *Logger) LogAt(lv level.Level, src Source, template string, args ...format.Argument) error {
	return l.write(lv, src, template, args)
}

// Trace logs at trace level.
func (l *Logger) Trace(template string, args ...format.Argument) error {
	return l.write(level.Trace, Source{}, template, args)
}

// Debug logs at debug level.
func (l *Logger) Debug(template string, args ...format.Argument) error {
	return l.write(level.Debug, Source{}, template, args)
}

// Info logs at info level.
func (l *Logger) Info(template string, args ...format.Argument) error {
	return l.write(level.Info, Source{}, template, args)
}

// Warn logs at warn level.
func (l *Logger) Warn(template string, args ...format.Argument) error {
	return l.write(level.Warn, Source{}, template, args)
}

// Error logs at error level.
func (l *Logger) Error(template string, args ...format.Argument) error {
	return l.write(level.Error, Source{}, template, args)
}

// Critical logs at critical level.
func (l *Logger) Critical(template string, args ...format.Argument) error {
	return l.write(level.Critical, Source{}, template, args)
}

// Flush flushes every sink, joining any failures.
func (l *Logger) Flush() error {
	l.mu.RLock()
	sinks := l.sinks
	l.mu.RUnlock()

	var errs []error
	for i, s := range sinks {
		if err := s.Flush(); err != nil {
			errs = append(errs, &SinkWriteError{Logger: l.name, Index: i, Err: err})
		}
	}
	return errors.Join(errs...)
}

func (l *Logger) write(lv level.Level, src Source, template string, args []format.Argument) error {
	l.mu.RLock()
	threshold := l.threshold
	pat := l.pat
	sinks := l.sinks
	l.mu.RUnlock()

	// The filter check comes first: suppressed calls must do no
	// formatting work at all.
	if !lv.Passes(threshold) {
		return nil
	}

	if l.observer != nil {
		l.observer(lv)
	}
	msg, err := format.Render(template, args...)
	if err != nil {
		return err
	}

	source := ""
	if pat.HasSource() {
		source = src.String()
	}
	line, err := pat.Render(lv, l.name, msg, source, l.clock())
	if err != nil {
		return err
	}

	colored := pat.Colored() || strings.Contains(line, "\x1b[")
	var errs []error
	for i, s := range sinks {
		if werr := s.Write(line, colored); werr != nil {
			errs = append(errs, &SinkWriteError{Logger: l.name, Index: i, Err: werr})
		}
	}
	return errors.Join(errs...)
}
