// Package param tokenizes the parameter section of a row. A row such as
//
//	ADR;TYPE=HOME,WORK;LABEL="Main St, Anytown":;;Main St
//
// has the parameter section `TYPE=HOME,WORK;LABEL="Main St, Anytown"`. Parse
// breaks that into an ordered List of (name, raw value) pairs and Split breaks
// a single compound value into atomic values.
//
// Both splitters are quote-aware: a separator inside a double-quoted span is
// part of the value. A List is immutable. The Modify function may be used to
// produce a changed copy.
package param

import (
	"sort"
	"strings"
)

// Names of the parameters that get special treatment.
const (
	Encoding  = "ENCODING"
	Charset   = "CHARSET"
	Type      = "TYPE"
	Language  = "LANGUAGE"
	Value     = "VALUE"
	MediaType = "MEDIATYPE"
)

// Param is a single parameter.
type Param struct {
	// Name is the upper-cased parameter name.
	Name string

	// Raw is the parameter value as it appeared on the wire, quotes and
	// all.
	Raw string
}

// List is the ordered list of parameters for a row. A name may repeat.
type List struct {
	ps    []Param
	caret bool
}

// New creates a List from the given parameters. If caret is true, values are
// read and written with the RFC 6868 caret coding.
func New(caret bool, ps ...Param) List {
	cp := make([]Param, len(ps))
	for i, p := range ps {
		cp[i] = Param{strings.ToUpper(p.Name), p.Raw}
	}
	return List{cp, caret}
}

// Parse splits a parameter section on semicolons outside of double quotes.
// Each fragment is split once on the first '='. A fragment with no '=' is the
// legacy shorthand where only the value is given; its name is guessed with
// Infer. Empty fragments are skipped.
func Parse(section string, caret bool) List {
	var ps []Param
	for _, frag := range splitQuoted(section, ';') {
		frag = strings.TrimSpace(frag)
		if frag == "" {
			continue
		}

		eq := strings.IndexByte(frag, '=')
		if eq < 0 {
			ps = append(ps, Param{Infer(frag), frag})
			continue
		}

		name := strings.ToUpper(strings.TrimSpace(frag[:eq]))
		raw := strings.TrimSpace(frag[eq+1:])
		if name == "" {
			name = Infer(raw)
		}
		ps = append(ps, Param{name, raw})
	}
	return List{ps, caret}
}

// splitQuoted breaks s at every sep that is outside a double-quoted span.
func splitQuoted(s string, sep byte) []string {
	var parts []string
	inQuote := false
	start := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '"':
			inQuote = !inQuote
		case sep:
			if !inQuote {
				parts = append(parts, s[start:i])
				start = i + 1
			}
		}
	}
	return append(parts, s[start:])
}

// Split breaks a compound parameter value into its atomic values. Commas
// inside double quotes do not split, and the quotes around each fragment are
// removed. If caret is true, each value is decoded with Uncaret. Fragments
// that are entirely whitespace are dropped.
func Split(raw string, caret bool) []string {
	frags := splitQuoted(raw, ',')
	vals := make([]string, 0, len(frags))
	for _, frag := range frags {
		if strings.TrimSpace(frag) == "" {
			continue
		}

		v := unquote(strings.TrimSpace(frag))
		if caret {
			v = Uncaret(v)
		}

		if strings.TrimSpace(v) == "" {
			continue
		}
		vals = append(vals, v)
	}
	return vals
}

// unquote removes double quotes around the value. A value with an opening
// quote but no closing quote has the opening quote removed.
func unquote(s string) string {
	if len(s) > 0 && s[0] == '"' {
		s = s[1:]
		if len(s) > 0 && s[len(s)-1] == '"' {
			s = s[:len(s)-1]
		}
	}
	return s
}

// Uncaret decodes the RFC 6868 caret coding: ^n becomes a line break, ^'
// becomes a double quote, and ^^ becomes a caret. Any other caret is kept.
func Uncaret(s string) string {
	if strings.IndexByte(s, '^') < 0 {
		return s
	}

	var buf strings.Builder
	buf.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '^' && i+1 < len(s) {
			switch s[i+1] {
			case 'n', 'N':
				buf.WriteByte('\n')
				i++
				continue
			case '\'':
				buf.WriteByte('"')
				i++
				continue
			case '^':
				buf.WriteByte('^')
				i++
				continue
			}
		}
		buf.WriteByte(c)
	}
	return buf.String()
}

// Caret encodes s with the RFC 6868 caret coding.
func Caret(s string) string {
	var buf strings.Builder
	buf.Grow(len(s))
	for i := 0; i < len(s); i++ {
		switch c := s[i]; c {
		case '^':
			buf.WriteString("^^")
		case '"':
			buf.WriteString("^'")
		case '\r':
			if i+1 < len(s) && s[i+1] == '\n' {
				i++
			}
			buf.WriteString("^n")
		case '\n':
			buf.WriteString("^n")
		default:
			buf.WriteByte(c)
		}
	}
	return buf.String()
}

// Quote prepares a single atomic value for the wire. Values containing a
// comma, semicolon, or colon are wrapped in double quotes. Without the caret
// coding, double quotes and line breaks cannot be carried and are dropped.
func Quote(v string, caret bool) string {
	if caret {
		v = Caret(v)
	} else {
		v = strings.Map(func(c rune) rune {
			switch c {
			case '"', '\r', '\n':
				return -1
			}
			return c
		}, v)
	}

	if strings.ContainsAny(v, ",;:") {
		return `"` + v + `"`
	}
	return v
}

// Len returns the number of parameters.
func (l List) Len() int {
	return len(l.ps)
}

// Caret returns true if this list uses the caret coding.
func (l List) Caret() bool {
	return l.caret
}

// All returns a copy of the parameters in order.
func (l List) All() []Param {
	cp := make([]Param, len(l.ps))
	copy(cp, l.ps)
	return cp
}

// Has returns true if at least one parameter has the given name.
func (l List) Has(name string) bool {
	name = strings.ToUpper(name)
	for _, p := range l.ps {
		if p.Name == name {
			return true
		}
	}
	return false
}

// Get returns the first atomic value of the first parameter with the given
// name, or an empty string.
func (l List) Get(name string) string {
	name = strings.ToUpper(name)
	for _, p := range l.ps {
		if p.Name == name {
			if vs := Split(p.Raw, l.caret); len(vs) > 0 {
				return vs[0]
			}
			return ""
		}
	}
	return ""
}

// Values returns every atomic value of every parameter with the given name,
// in order.
func (l List) Values(name string) []string {
	name = strings.ToUpper(name)
	var vals []string
	for _, p := range l.ps {
		if p.Name == name {
			vals = append(vals, Split(p.Raw, l.caret)...)
		}
	}
	return vals
}

// Names returns the distinct parameter names, sorted.
func (l List) Names() []string {
	seen := make(map[string]struct{}, len(l.ps))
	names := make([]string, 0, len(l.ps))
	for _, p := range l.ps {
		if _, ok := seen[p.Name]; ok {
			continue
		}
		seen[p.Name] = struct{}{}
		names = append(names, p.Name)
	}
	sort.Strings(names)
	return names
}

// String returns the serialized parameter section, including the leading
// semicolon of each parameter. Raw values are written as they are.
func (l List) String() string {
	var buf strings.Builder
	for _, p := range l.ps {
		buf.WriteByte(';')
		buf.WriteString(p.Name)
		buf.WriteByte('=')
		buf.WriteString(p.Raw)
	}
	return buf.String()
}

// Modifier is a modification to apply to a List when calling Modify.
type Modifier func(*List)

// Set is a Modifier that replaces every parameter with the given name with a
// single parameter holding the given atomic values.
func Set(name string, vals ...string) Modifier {
	return func(l *List) {
		Delete(name)(l)
		Add(name, vals...)(l)
	}
}

// Add is a Modifier that appends a parameter holding the given atomic values.
func Add(name string, vals ...string) Modifier {
	return func(l *List) {
		quoted := make([]string, len(vals))
		for i, v := range vals {
			quoted[i] = Quote(v, l.caret)
		}
		l.ps = append(l.ps, Param{strings.ToUpper(name), strings.Join(quoted, ",")})
	}
}

// Delete is a Modifier that removes every parameter with the given name.
func Delete(name string) Modifier {
	return func(l *List) {
		name = strings.ToUpper(name)
		kept := l.ps[:0]
		for _, p := range l.ps {
			if p.Name != name {
				kept = append(kept, p)
			}
		}
		l.ps = kept
	}
}

// WithCaret is a Modifier that switches the caret coding used to read and
// write values. Existing raw values are re-coded so their atomic values are
// unchanged.
func WithCaret(caret bool) Modifier {
	return func(l *List) {
		if l.caret == caret {
			return
		}
		for i, p := range l.ps {
			vals := Split(p.Raw, l.caret)
			quoted := make([]string, len(vals))
			for j, v := range vals {
				quoted[j] = Quote(v, caret)
			}
			l.ps[i].Raw = strings.Join(quoted, ",")
		}
		l.caret = caret
	}
}

// Modify clones a List, applies the given modifications (if any) and returns
// the new List:
//
//	l := param.Parse("TYPE=HOME;PREF=1", true)
//	nl := param.Modify(l, param.Set("TYPE", "WORK"), param.Delete("PREF"))
func Modify(l List, changes ...Modifier) List {
	cp := List{l.All(), l.caret}
	for _, change := range changes {
		change(&cp)
	}
	return cp
}
