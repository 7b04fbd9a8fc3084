// Package level defines the ordered severity levels used by loggers and
// their threshold filtering rule.
package level

import (
	"fmt"
	"strings"
)

// Level represents the severity of a log message. Levels are totally
// ordered: Trace < Debug < Info < Warn < Error < Critical < Off.
type Level uint32

const (
	// Trace represents the most verbose diagnostic messages.
	Trace Level = iota

	// Debug represents messages useful during development.
	Debug

	// Info indicates normal operational messages.
	Info

	// Warn signifies potential issues that don't disrupt core functionality.
	Warn

	// Error denotes failures in specific operations or components.
	Error

	// Critical represents errors after which the application cannot continue normally.
	Critical

	// Off is a threshold-only value that suppresses all messages.
	// It is never a valid message level.
	Off
)

var names = [...]string{"trace", "debug", "info", "warn", "error", "critical", "off"}

// Fixed-width codes keep the level column aligned in pattern output.
var shortCodes = [...]string{"TRACE", "DEBUG", "INFO ", "WARN ", "ERROR", "CRIT ", "OFF  "}

// Passes reports whether a message at level l should be emitted by a
// logger thresholded at t: true iff l >= t. A threshold of Off is above
// every message level, so it suppresses everything.
func (l Level) Passes(t Level) bool {
	return l >= t
}

// Valid reports whether l is one of the defined levels, Off included.
func (l Level) Valid() bool {
	return l <= Off
}

// String returns the lowercase name of the level, or "unknown(n)" for
// out-of-range values.
func (l Level) String() string {
	if !l.Valid() {
		return fmt.Sprintf("unknown(%d)", uint32(l))
	}
	return names[l]
}

// ShortCode returns the fixed-width uppercase code used by pattern
// rendering (e.g., "INFO ", "ERROR").
func (l Level) ShortCode() string {
	if !l.Valid() {
		return "?????"
	}
	return shortCodes[l]
}

// Parse converts a level name (case-insensitive) into a Level.
// It accepts the names returned by String plus the common aliases
// "warning" and "fatal".
func Parse(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "trace":
		return Trace, nil
	case "debug":
		return Debug, nil
	case "info":
		return Info, nil
	case "warn", "warning":
		return Warn, nil
	case "error":
		return Error, nil
	case "critical", "fatal":
		return Critical, nil
	case "off":
		return Off, nil
	default:
		return Off, fmt.Errorf("level: unknown level %q", s)
	}
}
