// Package format implements a brace-placeholder template engine with
// implicit, positional and named argument binding, width/alignment/
// precision/base specifiers, strftime-style timestamp sub-patterns and
// ANSI color wrapping as a pure text transform.
package format

import (
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"
)

// Render parses template and renders it against args in one call.
// For templates rendered repeatedly, Parse once and reuse the Template.
func Render(template string, args ...Argument) (string, error) {
	t, err := Parse(template)
	if err != nil {
		return "", err
	}
	return t.Render(args...)
}

// MustParse is like Parse but panics on error. Intended for templates
// known valid at compile time.
func MustParse(template string) *Template {
	t, err := Parse(template)
	if err != nil {
		panic(err)
	}
	return t
}

// Render substitutes every placeholder with its formatted argument.
// Rendering is deterministic, never mutates the template or arguments,
// and is all-or-nothing: on error the output is empty.
func (t *Template) Render(args ...Argument) (string, error) {
	var b strings.Builder
	b.Grow(len(t.src) + 16)
	next := 0
	for i := range t.parts {
		p := &t.parts[i]
		if p.ph == nil {
			b.WriteString(p.literal)
			continue
		}
		arg, err := t.resolve(p.ph, args, &next)
		if err != nil {
			return "", err
		}
		if err := t.renderArg(&b, p.ph, arg); err != nil {
			return "", err
		}
	}
	return b.String(), nil
}

// resolve binds a placeholder to an argument: explicit index first, then
// explicit name, then the next unconsumed implicit slot.
func (t *Template) resolve(ph *placeholder, args []Argument, next *int) (Argument, error) {
	switch ph.field.kind {
	case refIndex:
		if ph.field.index >= len(args) {
			return Argument{}, &FormatError{
				Kind: KindArgumentIndexOutOfRange, Template: t.src, Pos: ph.pos,
				Message: "index " + strconv.Itoa(ph.field.index) + " with only " +
					strconv.Itoa(len(args)) + " argument(s)",
			}
		}
		return args[ph.field.index], nil
	case refName:
		for _, a := range args {
			if a.name == ph.field.name {
				return a, nil
			}
		}
		return Argument{}, &FormatError{
			Kind: KindUnresolvedPlaceholder, Template: t.src, Pos: ph.pos,
			Message: "no argument named " + strconv.Quote(ph.field.name),
		}
	default:
		if *next >= len(args) {
			return Argument{}, &FormatError{
				Kind: KindUnresolvedPlaceholder, Template: t.src, Pos: ph.pos,
				Message: "not enough arguments for implicit placeholder",
			}
		}
		a := args[*next]
		*next++
		return a, nil
	}
}

func (t *Template) renderArg(b *strings.Builder, ph *placeholder, a Argument) error {
	sp := &ph.spec

	if sp.timeLayout != "" {
		if a.kind != KindTime {
			return t.mismatch(ph, "time specifier applied to "+a.kind.String())
		}
		var tb strings.Builder
		appendStrftime(&tb, sp.timeLayout, a.t)
		padWrite(b, tb.String(), sp, '<')
		return nil
	}

	switch a.kind {
	case KindInt:
		if sp.verb != 0 && !isIntVerb(sp.verb) {
			return t.mismatch(ph, "presentation type "+string(sp.verb)+" applied to integer")
		}
		if sp.prec >= 0 {
			return t.mismatch(ph, "precision not allowed for integer")
		}
		writeInt(b, a, sp)
		return nil
	case KindFloat:
		if sp.verb != 0 && !isFloatVerb(sp.verb) {
			return t.mismatch(ph, "presentation type "+string(sp.verb)+" applied to float")
		}
		writeFloat(b, a.f, sp)
		return nil
	case KindString, KindBool:
		if sp.verb != 0 && sp.verb != 's' {
			return t.mismatch(ph, "presentation type "+string(sp.verb)+" applied to "+a.kind.String())
		}
		s := a.s
		if a.kind == KindBool {
			s = strconv.FormatBool(a.b)
		}
		if sp.prec >= 0 {
			s = truncateRunes(s, sp.prec)
		}
		padWrite(b, s, sp, '<')
		return nil
	case KindTime:
		if sp.verb != 0 {
			return t.mismatch(ph, "presentation type "+string(sp.verb)+" applied to timestamp")
		}
		var tb strings.Builder
		appendStrftime(&tb, "%F %T", a.t)
		padWrite(b, tb.String(), sp, '<')
		return nil
	default:
		return t.mismatch(ph, "unsupported argument kind")
	}
}

func (t *Template) mismatch(ph *placeholder, msg string) error {
	return &FormatError{Kind: KindTypeMismatch, Template: t.src, Pos: ph.pos, Message: msg}
}

func isIntVerb(v byte) bool {
	return v == 'd' || v == 'x' || v == 'X' || v == 'b' || v == 'o'
}

func isFloatVerb(v byte) bool {
	return v == 'f' || v == 'e' || v == 'g'
}

func writeInt(b *strings.Builder, a Argument, sp *spec) {
	base := 10
	upper := false
	prefix := ""
	switch sp.verb {
	case 'x':
		base, prefix = 16, "0x"
	case 'X':
		base, prefix, upper = 16, "0X", true
	case 'b':
		base, prefix = 2, "0b"
	case 'o':
		base, prefix = 8, "0"
	}
	if !sp.alt {
		prefix = ""
	}

	sign := ""
	var digits string
	if a.unsigned {
		digits = strconv.FormatUint(a.u, base)
	} else {
		v := a.i
		if v < 0 {
			sign = "-"
			digits = strconv.FormatUint(uint64(-v), base)
		} else {
			digits = strconv.FormatUint(uint64(v), base)
		}
	}
	if upper {
		digits = strings.ToUpper(digits)
	}

	writeNumeric(b, sign, prefix, digits, sp)
}

func writeFloat(b *strings.Builder, f float64, sp *spec) {
	verb := sp.verb
	if verb == 0 {
		verb = 'f'
	}
	prec := sp.prec
	if prec < 0 {
		if verb == 'g' {
			prec = -1 // shortest representation
		} else {
			prec = 6
		}
	}
	s := strconv.FormatFloat(f, verb, prec, 64)
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	writeNumeric(b, sign, "", s, sp)
}

// writeNumeric applies alignment rules shared by integer and float
// output. With the '0' flag and no explicit alignment, padding zeros go
// between the sign or base prefix and the digits.
func writeNumeric(b *strings.Builder, sign, prefix, digits string, sp *spec) {
	if sp.zero && sp.align == 0 && sp.width > 0 {
		content := sign + prefix + digits
		if pad := sp.width - runewidth.StringWidth(content); pad > 0 {
			b.WriteString(sign)
			b.WriteString(prefix)
			for ; pad > 0; pad-- {
				b.WriteByte('0')
			}
			b.WriteString(digits)
			return
		}
	}
	padWrite(b, sign+prefix+digits, sp, '>')
}

// padWrite writes content honoring width, fill and alignment.
// defaultAlign applies when the specifier does not name one:
// '>' for numbers, '<' for strings, booleans and timestamps.
func padWrite(b *strings.Builder, content string, sp *spec, defaultAlign byte) {
	if sp.width <= 0 {
		b.WriteString(content)
		return
	}
	pad := sp.width - runewidth.StringWidth(content)
	if pad <= 0 {
		b.WriteString(content)
		return
	}
	fill := sp.fill
	if fill == 0 {
		fill = ' '
	}
	align := sp.align
	if align == 0 {
		align = defaultAlign
	}
	switch align {
	case '<':
		b.WriteString(content)
		writeFill(b, fill, pad)
	case '^':
		writeFill(b, fill, pad/2)
		b.WriteString(content)
		writeFill(b, fill, pad-pad/2)
	default:
		writeFill(b, fill, pad)
		b.WriteString(content)
	}
}

func writeFill(b *strings.Builder, fill rune, n int) {
	for ; n > 0; n-- {
		b.WriteRune(fill)
	}
}

func truncateRunes(s string, n int) string {
	if n <= 0 {
		return ""
	}
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}
