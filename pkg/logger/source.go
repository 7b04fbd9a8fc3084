package logger

import (
	"path/filepath"
	"runtime"
	"strconv"
)

// Source identifies a call site. It is threaded explicitly through LogAt
// and rendered into the %source pattern field as "file:line".
type Source struct {
	File     string
	Line     int
	Function string
}

// String returns the "file:line" form used by the %source field, or ""
// for a zero Source.
func (s Source) String() string {
	if s.File == "" {
		return ""
	}
	return filepath.Base(s.File) + ":" + strconv.Itoa(s.Line)
}

// Caller captures the call site skip frames above the caller of Caller
// itself. Caller(0) is the line invoking Caller.
func Caller(skip int) Source {
	pc, file, line, ok := runtime.Caller(skip + 1)
	if !ok {
		return Source{}
	}
	src := Source{File: file, Line: line}
	if fn := runtime.FuncForPC(pc); fn != nil {
		src.Function = fn.Name()
	}
	return src
}
