// Package escape holds the per-revision escaping rules for property values.
//
// Unescaping is always a single left-to-right pass. A backslash either starts
// a token the revision recognizes, in which case both characters are
// consumed, or it is copied through literally. Output is never scanned again.
//
// The intermediate revision also reads \\ as a backslash, and Escape writes a
// backslash that comes before a token character as \\, so that text such as
// `\n` survives a round trip. A lone backslash before any other character is
// still copied through.
package escape

import (
	"strings"

	"github.com/zostay/go-vcard/revision"
)

// token returns the replacement for a backslash followed by c under the given
// revision. The second value is false when the pair is not a token.
func token(rev revision.Revision, c byte) (string, bool) {
	switch rev {
	case revision.Intermediate:
		switch c {
		case 'n', 'N':
			return "\n", true
		case ',', ';', ':', '\\':
			return string(c), true
		}
	case revision.Current:
		switch c {
		case 'n', 'N':
			return "\n", true
		case ',', ';', '\\':
			return string(c), true
		}
	default:
		if c == ';' {
			return ";", true
		}
	}
	return "", false
}

// Unescape converts escaped wire text into plain text.
func Unescape(rev revision.Revision, s string) string {
	if strings.IndexByte(s, '\\') < 0 {
		return s
	}

	var buf strings.Builder
	buf.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '\\' && i+1 < len(s) {
			if r, ok := token(rev, s[i+1]); ok {
				buf.WriteString(r)
				i++
				continue
			}
		}
		buf.WriteByte(c)
	}

	return buf.String()
}

// protects returns true if a literal backslash followed by c has to be
// written as an escaped backslash so it is not read back as a token.
func protects(c byte) bool {
	switch c {
	case 'n', 'N', ',', ';', ':', '\\', '\r', '\n':
		return true
	}
	return false
}

// Escape converts plain text into escaped wire text. Line breaks are written
// as \n in the revisions that have a token for them; CRLF is treated as one
// line break. The legacy revision leaves line breaks alone because it carries
// them with quoted-printable instead.
func Escape(rev revision.Revision, s string) string {
	var buf strings.Builder
	buf.Grow(len(s) + len(s)/8)

	for i := 0; i < len(s); i++ {
		c := s[i]
		switch rev {
		case revision.Intermediate:
			switch c {
			case ',', ';', ':':
				buf.WriteByte('\\')
				buf.WriteByte(c)
			case '\\':
				if i+1 < len(s) && protects(s[i+1]) {
					buf.WriteString(`\\`)
				} else {
					buf.WriteByte(c)
				}
			case '\r':
				if i+1 < len(s) && s[i+1] == '\n' {
					i++
				}
				buf.WriteString(`\n`)
			case '\n':
				buf.WriteString(`\n`)
			default:
				buf.WriteByte(c)
			}

		case revision.Current:
			switch c {
			case ',', ';', '\\':
				buf.WriteByte('\\')
				buf.WriteByte(c)
			case '\r':
				if i+1 < len(s) && s[i+1] == '\n' {
					i++
				}
				buf.WriteString(`\n`)
			case '\n':
				buf.WriteString(`\n`)
			default:
				buf.WriteByte(c)
			}

		default:
			if c == ';' {
				buf.WriteByte('\\')
			}
			buf.WriteByte(c)
		}
	}

	return buf.String()
}
