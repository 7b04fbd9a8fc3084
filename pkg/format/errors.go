package format

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a FormatError.
type ErrorKind int

const (
	// KindUnresolvedPlaceholder indicates a placeholder that could not be
	// bound to any supplied argument (unknown name, or more implicit
	// placeholders than arguments).
	KindUnresolvedPlaceholder ErrorKind = iota

	// KindTypeMismatch indicates a specifier applied to an argument of an
	// incompatible kind (e.g., a hex specifier on a string).
	KindTypeMismatch

	// KindMalformedSpecifier indicates a placeholder or format specifier
	// that could not be parsed, including templates that mix implicit
	// sequential placeholders with positional or named ones.
	KindMalformedSpecifier

	// KindArgumentIndexOutOfRange indicates an explicit positional index
	// with no corresponding argument.
	KindArgumentIndexOutOfRange
)

func (k ErrorKind) String() string {
	switch k {
	case KindUnresolvedPlaceholder:
		return "unresolved placeholder"
	case KindTypeMismatch:
		return "type mismatch"
	case KindMalformedSpecifier:
		return "malformed specifier"
	case KindArgumentIndexOutOfRange:
		return "argument index out of range"
	default:
		return "unknown"
	}
}

// FormatError reports a failure while parsing or rendering a template.
// Rendering is all-or-nothing: when a FormatError is returned, no partial
// output is produced.
type FormatError struct {
	Kind     ErrorKind
	Template string // template being processed
	Pos      int    // byte offset of the offending placeholder
	Message  string // human-readable detail
}

// Error implements the error interface.
func (e *FormatError) Error() string {
	return fmt.Sprintf("format: %s at offset %d in %q: %s", e.Kind, e.Pos, e.Template, e.Message)
}

// IsKind reports whether err is, or wraps, a *FormatError of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var fe *FormatError
	return errors.As(err, &fe) && fe.Kind == kind
}
