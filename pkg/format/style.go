package format

import (
	"strconv"
	"strings"
)

// Color is a terminal foreground color.
type Color uint8

const (
	Black Color = iota + 30
	Red
	Green
	Yellow
	Blue
	Magenta
	Cyan
	White
)

// Emphasis is a bitmask of terminal text emphases.
type Emphasis uint8

const (
	Bold Emphasis = 1 << iota
	Dim
	Italic
	Underline
)

// Style selects color and emphasis for wrapping already-rendered text in
// ANSI escape sequences. The engine itself is color-agnostic: a styled
// value is passed through as an ordinary string argument, and the
// destination sink decides whether the escapes survive.
type Style struct {
	fg    Color
	hasFG bool
	em    Emphasis
}

// FG returns a style with the given foreground color.
func FG(c Color) Style {
	return Style{fg: c, hasFG: true}
}

// With adds emphasis to the style.
func (s Style) With(e Emphasis) Style {
	s.em |= e
	return s
}

// Apply wraps text in the style's escape sequences. An empty style
// returns text unchanged.
func (s Style) Apply(text string) string {
	codes := s.codes()
	if len(codes) == 0 {
		return text
	}
	var b strings.Builder
	b.Grow(len(text) + 16)
	b.WriteString("\x1b[")
	for i, c := range codes {
		if i > 0 {
			b.WriteByte(';')
		}
		b.WriteString(strconv.Itoa(c))
	}
	b.WriteByte('m')
	b.WriteString(text)
	b.WriteString("\x1b[0m")
	return b.String()
}

func (s Style) codes() []int {
	var codes []int
	if s.em&Bold != 0 {
		codes = append(codes, 1)
	}
	if s.em&Dim != 0 {
		codes = append(codes, 2)
	}
	if s.em&Italic != 0 {
		codes = append(codes, 3)
	}
	if s.em&Underline != 0 {
		codes = append(codes, 4)
	}
	if s.hasFG {
		codes = append(codes, int(s.fg))
	}
	return codes
}

// Styled renders text with the style and returns it as a pass-through
// string argument.
func Styled(text string, s Style) Argument {
	return String(s.Apply(text))
}

// Strip removes ANSI CSI escape sequences from s. Sinks without color
// support use it so message content never depends on color being active.
func Strip(s string) string {
	if !strings.Contains(s, "\x1b[") {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); {
		if s[i] == 0x1b && i+1 < len(s) && s[i+1] == '[' {
			j := i + 2
			for j < len(s) && (s[j] == ';' || (s[j] >= '0' && s[j] <= '9')) {
				j++
			}
			if j < len(s) {
				j++ // final byte of the sequence
			}
			i = j
			continue
		}
		b.WriteByte(s[i])
		i++
	}
	return b.String()
}
