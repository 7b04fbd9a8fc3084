// Package pattern composes full log lines from reserved fields. A pattern
// is a format template restricted to the named placeholders %time, %level,
// %name, %message and %source, validated once at configuration time so
// malformed patterns never reach the logging hot path.
package pattern

import (
	"time"

	"github.com/fmtlog/fmtlog/pkg/format"
	"github.com/fmtlog/fmtlog/pkg/level"
)

// Default is the built-in pattern used when a logger is created without
// an explicit one.
const Default = "[{%time}] [{%level}] [{%name}] {%message}"

// Reserved placeholder names.
const (
	FieldTime    = "%time"
	FieldLevel   = "%level"
	FieldName    = "%name"
	FieldMessage = "%message"
	FieldSource  = "%source"
)

var reserved = map[string]struct{}{
	FieldTime:    {},
	FieldLevel:   {},
	FieldName:    {},
	FieldMessage: {},
	FieldSource:  {},
}

// Pattern is a compiled, immutable log-line layout.
type Pattern struct {
	src         string
	tpl         *format.Template
	loc         *time.Location
	colorLevels bool
	hasSource   bool
}

// Option configures pattern compilation.
type Option func(*Pattern)

// WithLevelColors wraps the rendered %level field in the level-to-color
// policy (trace dim, debug cyan, info green, warn yellow, error red,
// critical bold red). Pair color-enabled patterns with color-capable
// sinks; colorless sinks strip the escapes.
func WithLevelColors() Option {
	return func(p *Pattern) {
		p.colorLevels = true
	}
}

// WithLocation fixes the time zone used for the %time field. The default
// is the process-local zone.
func WithLocation(loc *time.Location) Option {
	return func(p *Pattern) {
		if loc != nil {
			p.loc = loc
		}
	}
}

// Compile validates src and returns the compiled pattern. The error, if
// any, is a *format.FormatError: implicit or positional placeholders and
// names outside the reserved set are rejected here rather than on every
// log call.
func Compile(src string, opts ...Option) (*Pattern, error) {
	tpl, err := format.Parse(src)
	if err != nil {
		return nil, err
	}
	if !tpl.OnlyNamed() {
		return nil, &format.FormatError{
			Kind:     format.KindMalformedSpecifier,
			Template: src,
			Message:  "patterns accept only the reserved named placeholders",
		}
	}
	for _, name := range tpl.PlaceholderNames() {
		if _, ok := reserved[name]; !ok {
			return nil, &format.FormatError{
				Kind:     format.KindUnresolvedPlaceholder,
				Template: src,
				Message:  "unknown pattern field " + name,
			}
		}
	}

	p := &Pattern{
		src:       src,
		tpl:       tpl,
		loc:       time.Local,
		hasSource: tpl.HasName(FieldSource),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// MustCompile is like Compile but panics on error.
func MustCompile(src string, opts ...Option) *Pattern {
	p, err := Compile(src, opts...)
	if err != nil {
		panic(err)
	}
	return p
}

// Source returns the original pattern string.
func (p *Pattern) Source() string { return p.src }

// HasSource reports whether the pattern includes the %source field, so
// callers can skip call-site capture when it would not be shown.
func (p *Pattern) HasSource() bool { return p.hasSource }

// Colored reports whether level colors are enabled, so callers can pass
// the color hint along to sinks.
func (p *Pattern) Colored() bool { return p.colorLevels }

// Render substitutes the reserved fields and returns the composed line.
// The caller appends the line terminator.
func (p *Pattern) Render(lv level.Level, loggerName, message, source string, now time.Time) (string, error) {
	levelText := lv.ShortCode()
	if p.colorLevels {
		levelText = levelStyle(lv).Apply(levelText)
	}
	return p.tpl.Render(
		format.Named(FieldTime, format.Time(now.In(p.loc))),
		format.Named(FieldLevel, format.String(levelText)),
		format.Named(FieldName, format.String(loggerName)),
		format.Named(FieldMessage, format.String(message)),
		format.Named(FieldSource, format.String(source)),
	)
}

// levelStyle maps a severity to its console style.
func levelStyle(lv level.Level) format.Style {
	switch lv {
	case level.Trace:
		return format.Style{}.With(format.Dim)
	case level.Debug:
		return format.FG(format.Cyan)
	case level.Info:
		return format.FG(format.Green)
	case level.Warn:
		return format.FG(format.Yellow)
	case level.Error:
		return format.FG(format.Red)
	case level.Critical:
		return format.FG(format.Red).With(format.Bold)
	default:
		return format.Style{}
	}
}
