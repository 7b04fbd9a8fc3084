package format

import (
	"strconv"
	"strings"
	"time"
)

// timeVerbs lists the supported strftime conversion characters.
// %e follows the logging convention of milliseconds since the second;
// %F and %T are the usual ISO date and clock shorthands.
const timeVerbs = "YymdHIMSepjzabFT%"

// validateTimeLayout rejects unknown strftime verbs at parse time so
// malformed patterns fail at configuration, not on the logging hot path.
func validateTimeLayout(template string, pos int, layout string) error {
	for i := 0; i < len(layout); i++ {
		if layout[i] != '%' {
			continue
		}
		if i+1 >= len(layout) {
			return &FormatError{
				Kind: KindMalformedSpecifier, Template: template, Pos: pos,
				Message: "dangling '%' in time specifier",
			}
		}
		if !strings.ContainsRune(timeVerbs, rune(layout[i+1])) {
			return &FormatError{
				Kind: KindMalformedSpecifier, Template: template, Pos: pos,
				Message: "unknown time conversion %" + string(layout[i+1]),
			}
		}
		i++
	}
	return nil
}

// appendStrftime expands a validated strftime layout against t.
func appendStrftime(b *strings.Builder, layout string, t time.Time) {
	for i := 0; i < len(layout); i++ {
		if layout[i] != '%' {
			b.WriteByte(layout[i])
			continue
		}
		i++
		switch layout[i] {
		case 'Y':
			appendPadded(b, t.Year(), 4)
		case 'y':
			appendPadded(b, t.Year()%100, 2)
		case 'm':
			appendPadded(b, int(t.Month()), 2)
		case 'd':
			appendPadded(b, t.Day(), 2)
		case 'H':
			appendPadded(b, t.Hour(), 2)
		case 'I':
			h := t.Hour() % 12
			if h == 0 {
				h = 12
			}
			appendPadded(b, h, 2)
		case 'M':
			appendPadded(b, t.Minute(), 2)
		case 'S':
			appendPadded(b, t.Second(), 2)
		case 'e':
			appendPadded(b, t.Nanosecond()/int(time.Millisecond), 3)
		case 'p':
			if t.Hour() < 12 {
				b.WriteString("AM")
			} else {
				b.WriteString("PM")
			}
		case 'j':
			appendPadded(b, t.YearDay(), 3)
		case 'z':
			_, offset := t.Zone()
			if offset < 0 {
				b.WriteByte('-')
				offset = -offset
			} else {
				b.WriteByte('+')
			}
			appendPadded(b, offset/3600, 2)
			appendPadded(b, (offset%3600)/60, 2)
		case 'a':
			b.WriteString(t.Weekday().String()[:3])
		case 'b':
			b.WriteString(t.Month().String()[:3])
		case 'F':
			appendPadded(b, t.Year(), 4)
			b.WriteByte('-')
			appendPadded(b, int(t.Month()), 2)
			b.WriteByte('-')
			appendPadded(b, t.Day(), 2)
		case 'T':
			appendPadded(b, t.Hour(), 2)
			b.WriteByte(':')
			appendPadded(b, t.Minute(), 2)
			b.WriteByte(':')
			appendPadded(b, t.Second(), 2)
		case '%':
			b.WriteByte('%')
		}
	}
}

// appendPadded writes n zero-padded to the given number of digits.
func appendPadded(b *strings.Builder, n, digits int) {
	s := strconv.Itoa(n)
	for pad := digits - len(s); pad > 0; pad-- {
		b.WriteByte('0')
	}
	b.WriteString(s)
}
