package logger

import (
	"errors"
	"fmt"
)

// ErrEmptyName is returned when a logger is created without a name.
var ErrEmptyName = errors.New("logger: name cannot be empty")

// SinkWriteError reports a failed delivery to one sink. The logger
// recovers locally: it continues to the remaining sinks and the log call
// returns normally, with the failures joined into the returned error so
// callers that care can inspect count and identity.
type SinkWriteError struct {
	Logger string // logger whose delivery failed
	Index  int    // position of the sink in the logger's sink list
	Err    error  // underlying write error
}

// Error implements the error interface.
func (e *SinkWriteError) Error() string {
	return fmt.Sprintf("logger %q: sink %d write failed: %v", e.Logger, e.Index, e.Err)
}

// Unwrap returns the underlying error for errors.Is and errors.As.
func (e *SinkWriteError) Unwrap() error {
	return e.Err
}

// FailedSinks extracts every SinkWriteError from an error returned by a
// log call. It returns nil when no sink failed.
func FailedSinks(err error) []*SinkWriteError {
	if err == nil {
		return nil
	}
	var out []*SinkWriteError
	collectSinkErrors(err, &out)
	return out
}

func collectSinkErrors(err error, out *[]*SinkWriteError) {
	if swe, ok := err.(*SinkWriteError); ok {
		*out = append(*out, swe)
		return
	}
	if multi, ok := err.(interface{ Unwrap() []error }); ok {
		for _, e := range multi.Unwrap() {
			collectSinkErrors(e, out)
		}
	}
}
