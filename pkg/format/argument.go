package format

import "time"

// Kind identifies the dynamic type carried by an Argument.
type Kind int

const (
	KindInt Kind = iota
	KindFloat
	KindString
	KindBool
	KindTime
)

func (k Kind) String() string {
	switch k {
	case KindInt:
		return "integer"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindBool:
		return "boolean"
	case KindTime:
		return "timestamp"
	default:
		return "unknown"
	}
}

// Argument is a discriminated value supplied to Render. Arguments are
// resolved against placeholders by explicit index, by name, or in order
// for implicit sequential placeholders. An Argument is just data: it is
// never evaluated lazily.
type Argument struct {
	kind     Kind
	name     string
	i        int64
	u        uint64
	unsigned bool
	f        float64
	s        string
	b        bool
	t        time.Time
}

// Int creates an integer argument.
func Int(v int) Argument {
	return Argument{kind: KindInt, i: int64(v)}
}

// Int64 creates an integer argument from an int64.
func Int64(v int64) Argument {
	return Argument{kind: KindInt, i: v}
}

// Uint64 creates an integer argument from a uint64.
func Uint64(v uint64) Argument {
	return Argument{kind: KindInt, u: v, unsigned: true}
}

// Float creates a floating-point argument.
func Float(v float64) Argument {
	return Argument{kind: KindFloat, f: v}
}

// String creates a string argument.
func String(v string) Argument {
	return Argument{kind: KindString, s: v}
}

// Bool creates a boolean argument.
func Bool(v bool) Argument {
	return Argument{kind: KindBool, b: v}
}

// Time creates a timestamp argument.
func Time(v time.Time) Argument {
	return Argument{kind: KindTime, t: v}
}

// Err creates a string argument from an error's message. A nil error
// renders as an empty string.
func Err(err error) Argument {
	if err == nil {
		return Argument{kind: KindString}
	}
	return Argument{kind: KindString, s: err.Error()}
}

// Named attaches a binding name to an argument so it can be referenced
// by a {name} placeholder.
func Named(name string, arg Argument) Argument {
	arg.name = name
	return arg
}

// Name returns the binding name, or "" for unnamed arguments.
func (a Argument) Name() string { return a.name }

// Kind returns the argument's dynamic kind.
func (a Argument) Kind() Kind { return a.kind }
