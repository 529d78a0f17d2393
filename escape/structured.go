package escape

import (
	"strings"

	"github.com/zostay/go-vcard/revision"
)

// split breaks s at every sep that is not part of an escape token. The pieces
// are returned still escaped.
func split(rev revision.Revision, s string, sep byte) []string {
	var parts []string
	start := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '\\':
			if i+1 < len(s) {
				if _, ok := token(rev, s[i+1]); ok {
					i++
				}
			}
		case sep:
			parts = append(parts, s[start:i])
			start = i + 1
		}
	}
	return append(parts, s[start:])
}

// SplitStructured splits a structured value such as a name or an address. The
// outer slice holds the components separated by unescaped semicolons. Each
// component is a list of values separated by unescaped commas. The legacy
// revision does not treat commas as separators, so its components always
// hold a single value. Every returned value is unescaped.
func SplitStructured(rev revision.Revision, s string) [][]string {
	comps := split(rev, s, ';')
	out := make([][]string, len(comps))
	for i, comp := range comps {
		var vals []string
		if rev.IsLegacy() {
			vals = []string{comp}
		} else {
			vals = split(rev, comp, ',')
		}

		for j := range vals {
			vals[j] = Unescape(rev, vals[j])
		}
		out[i] = vals
	}
	return out
}

// SplitList splits a list value, such as categories, on unescaped commas and
// unescapes each member. Legacy lists have no escape for commas and are split
// on every comma.
func SplitList(rev revision.Revision, s string) []string {
	var vals []string
	if rev.IsLegacy() {
		vals = strings.Split(s, ",")
	} else {
		vals = split(rev, s, ',')
	}

	for i := range vals {
		vals[i] = Unescape(rev, vals[i])
	}
	return vals
}

// JoinStructured is the inverse of SplitStructured.
func JoinStructured(rev revision.Revision, comps [][]string) string {
	var buf strings.Builder
	for i, comp := range comps {
		if i > 0 {
			buf.WriteByte(';')
		}
		for j, v := range comp {
			if j > 0 {
				buf.WriteByte(',')
			}
			buf.WriteString(Escape(rev, v))
		}
	}
	return buf.String()
}

// Transcode converts escaped text from one revision's rules to another's,
// keeping structural separators in place.
func Transcode(from, to revision.Revision, s string) string {
	if from == to {
		return s
	}
	return JoinStructured(to, SplitStructured(from, s))
}
