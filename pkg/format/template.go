package format

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

type refKind int

const (
	refAuto refKind = iota
	refIndex
	refName
)

// fieldRef identifies which argument a placeholder binds to.
type fieldRef struct {
	kind  refKind
	index int
	name  string
}

// spec is a parsed format specifier.
type spec struct {
	fill       rune // 0 means default (space, or '0' when zero padding)
	align      byte // 0 (kind default), '<', '>' or '^'
	alt        bool // '#': prefix 0x/0X/0b/0 for non-decimal bases
	zero       bool // '0': zero pad after sign and base prefix
	width      int  // -1 when absent
	prec       int  // -1 when absent
	verb       byte // 0 when absent; one of d x X b o f e g s
	timeLayout string
}

type placeholder struct {
	field fieldRef
	spec  spec
	pos   int
}

// part is either a literal run or a placeholder, never both.
type part struct {
	literal string
	ph      *placeholder
}

// Template is a parsed, immutable format template. Parsing once at
// configuration time avoids re-validating on every render.
type Template struct {
	src   string
	parts []part
}

// Source returns the original template string.
func (t *Template) Source() string { return t.src }

// PlaceholderNames returns the distinct names referenced by named
// placeholders, in first-appearance order.
func (t *Template) PlaceholderNames() []string {
	var names []string
	seen := make(map[string]struct{})
	for _, p := range t.parts {
		if p.ph == nil || p.ph.field.kind != refName {
			continue
		}
		if _, ok := seen[p.ph.field.name]; ok {
			continue
		}
		seen[p.ph.field.name] = struct{}{}
		names = append(names, p.ph.field.name)
	}
	return names
}

// OnlyNamed reports whether every placeholder in the template is a named
// one. Callers that restrict templates to a reserved vocabulary (such as
// logger patterns) use it to reject implicit and positional placeholders.
func (t *Template) OnlyNamed() bool {
	for _, p := range t.parts {
		if p.ph != nil && p.ph.field.kind != refName {
			return false
		}
	}
	return true
}

// HasName reports whether the template references the given placeholder name.
func (t *Template) HasName(name string) bool {
	for _, p := range t.parts {
		if p.ph != nil && p.ph.field.kind == refName && p.ph.field.name == name {
			return true
		}
	}
	return false
}

// Parse validates a template and returns its compiled form. The error,
// if any, is a *FormatError. Templates may not mix implicit sequential
// placeholders with positional or named ones.
func Parse(template string) (*Template, error) {
	t := &Template{src: template}
	var lit strings.Builder
	hasAuto, hasManual := false, false

	flushLiteral := func() {
		if lit.Len() > 0 {
			t.parts = append(t.parts, part{literal: lit.String()})
			lit.Reset()
		}
	}

	for i := 0; i < len(template); {
		c := template[i]
		switch c {
		case '{':
			if i+1 < len(template) && template[i+1] == '{' {
				lit.WriteByte('{')
				i += 2
				continue
			}
			end := strings.IndexByte(template[i+1:], '}')
			if end < 0 {
				return nil, &FormatError{
					Kind: KindMalformedSpecifier, Template: template, Pos: i,
					Message: "unterminated placeholder",
				}
			}
			ph, err := parsePlaceholder(template, i, template[i+1:i+1+end])
			if err != nil {
				return nil, err
			}
			switch ph.field.kind {
			case refAuto:
				hasAuto = true
			default:
				hasManual = true
			}
			if hasAuto && hasManual {
				return nil, &FormatError{
					Kind: KindMalformedSpecifier, Template: template, Pos: i,
					Message: "cannot mix implicit placeholders with positional or named ones",
				}
			}
			flushLiteral()
			t.parts = append(t.parts, part{ph: ph})
			i += end + 2
		case '}':
			if i+1 < len(template) && template[i+1] == '}' {
				lit.WriteByte('}')
				i += 2
				continue
			}
			return nil, &FormatError{
				Kind: KindMalformedSpecifier, Template: template, Pos: i,
				Message: "unmatched '}' in template",
			}
		default:
			lit.WriteByte(c)
			i++
		}
	}
	flushLiteral()
	return t, nil
}

// parsePlaceholder parses the text between '{' and '}'.
func parsePlaceholder(template string, pos int, body string) (*placeholder, error) {
	ph := &placeholder{pos: pos}
	idPart := body
	specPart := ""
	if colon := strings.IndexByte(body, ':'); colon >= 0 {
		idPart = body[:colon]
		specPart = body[colon+1:]
	}

	switch {
	case idPart == "":
		ph.field.kind = refAuto
	case isAllDigits(idPart):
		n := 0
		for i := 0; i < len(idPart); i++ {
			n = n*10 + int(idPart[i]-'0')
			if n > 1<<20 {
				return nil, &FormatError{
					Kind: KindMalformedSpecifier, Template: template, Pos: pos,
					Message: "placeholder index too large",
				}
			}
		}
		ph.field.kind = refIndex
		ph.field.index = n
	case isIdent(idPart):
		ph.field.kind = refName
		ph.field.name = idPart
	default:
		return nil, &FormatError{
			Kind: KindMalformedSpecifier, Template: template, Pos: pos,
			Message: "invalid placeholder id " + strconv.Quote(idPart),
		}
	}

	if specPart != "" {
		s, err := parseSpec(template, pos, specPart)
		if err != nil {
			return nil, err
		}
		ph.spec = s
	} else {
		ph.spec = spec{width: -1, prec: -1}
	}
	return ph, nil
}

// parseSpec parses "[[fill]align][#][0][width][.precision][verb]" or a
// strftime sub-pattern starting with '%'.
func parseSpec(template string, pos int, s string) (spec, error) {
	out := spec{width: -1, prec: -1}

	if s[0] == '%' {
		if err := validateTimeLayout(template, pos, s); err != nil {
			return out, err
		}
		out.timeLayout = s
		return out, nil
	}

	i := 0
	// fill+align: the align rune may be preceded by any single fill rune.
	if r, size := utf8.DecodeRuneInString(s); size > 0 && size < len(s) && isAlign(s[size]) {
		out.fill = r
		out.align = s[size]
		i = size + 1
	} else if len(s) > 0 && isAlign(s[0]) {
		out.align = s[0]
		i = 1
	}

	if i < len(s) && s[i] == '#' {
		out.alt = true
		i++
	}
	if i < len(s) && s[i] == '0' {
		out.zero = true
		i++
	}
	start := i
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	if i > start {
		n := 0
		for _, c := range []byte(s[start:i]) {
			n = n*10 + int(c-'0')
		}
		out.width = n
	}
	if i < len(s) && s[i] == '.' {
		i++
		start = i
		for i < len(s) && s[i] >= '0' && s[i] <= '9' {
			i++
		}
		if i == start {
			return out, &FormatError{
				Kind: KindMalformedSpecifier, Template: template, Pos: pos,
				Message: "missing precision digits after '.'",
			}
		}
		n := 0
		for _, c := range []byte(s[start:i]) {
			n = n*10 + int(c-'0')
		}
		out.prec = n
	}
	if i < len(s) {
		switch s[i] {
		case 'd', 'x', 'X', 'b', 'o', 'f', 'e', 'g', 's':
			out.verb = s[i]
			i++
		default:
			return out, &FormatError{
				Kind: KindMalformedSpecifier, Template: template, Pos: pos,
				Message: "unknown presentation type " + strconv.Quote(s[i:]),
			}
		}
	}
	if i != len(s) {
		return out, &FormatError{
			Kind: KindMalformedSpecifier, Template: template, Pos: pos,
			Message: "trailing characters in specifier " + strconv.Quote(s),
		}
	}
	return out, nil
}

func isAlign(c byte) bool {
	return c == '<' || c == '>' || c == '^'
}

func isAllDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return len(s) > 0
}

// isIdent accepts identifier-style names. A leading '%' is allowed so
// pattern templates can use reserved names like "%level".
func isIdent(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '%' && i == 0:
		case c == '_', c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z':
		case c >= '0' && c <= '9':
			if i == 0 {
				return false
			}
		default:
			return false
		}
	}
	return len(s) > 0 && s != "%"
}
