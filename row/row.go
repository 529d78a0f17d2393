// Package row splits one logical row into its structural parts:
//
//	group.KEY;PARAM=V1,V2;PARAM2=V3:raw-value
//
// It also knows how to write a row back out and how to fold and unfold the
// physical lines a row is spread over.
package row

import (
	"errors"
	"fmt"
	"strings"

	"github.com/zostay/go-vcard/param"
	"github.com/zostay/go-vcard/revision"
)

var (
	// ErrMalformed is the error every *MalformedError wraps. It may be used
	// with errors.Is.
	ErrMalformed = errors.New("malformed row")
)

// MalformedError is returned by Parse when a row cannot be split into its
// parts. The problem is local to the row: the caller may log it and move on
// to the next one.
type MalformedError struct {
	// Text is the row that failed to parse.
	Text string

	// Reason describes the problem.
	Reason string
}

// Error returns the error message.
func (err *MalformedError) Error() string {
	text := err.Text
	if len(text) > 40 {
		text = text[:40] + "..."
	}
	return fmt.Sprintf("%s (%s): %q", ErrMalformed, err.Reason, text)
}

// Unwrap returns ErrMalformed.
func (err *MalformedError) Unwrap() error {
	return ErrMalformed
}

// Row is a parsed logical row. It is immutable.
type Row struct {
	group  string
	name   string
	params param.List
	value  string
}

// New creates a Row. The group and name are upper-cased.
func New(group, name string, params param.List, value string) *Row {
	return &Row{
		group:  strings.ToUpper(group),
		name:   strings.ToUpper(name),
		params: params,
		value:  value,
	}
}

// Group returns the upper-cased group name or an empty string.
func (r *Row) Group() string {
	return r.group
}

// Name returns the upper-cased key. It is never empty for a parsed row.
func (r *Row) Name() string {
	return r.name
}

// Params returns the parameters of the row.
func (r *Row) Params() param.List {
	return r.params
}

// Value returns the raw value: still escaped and still transfer encoded.
func (r *Row) Value() string {
	return r.value
}

// String returns the row as a single unfolded line with no line terminator.
func (r *Row) String() string {
	var buf strings.Builder
	if r.group != "" {
		buf.WriteString(r.group)
		buf.WriteByte('.')
	}
	buf.WriteString(r.name)
	buf.WriteString(r.params.String())
	buf.WriteByte(':')
	buf.WriteString(r.value)
	return buf.String()
}

// Parse splits one logical row. The first colon outside double quotes
// separates the key section from the raw value; a row with no colon has an
// empty value. Inside the key section the first semicolon outside double
// quotes starts the parameters, and the text before the first unescaped
// period (if any) is the group.
//
// The revision decides whether parameter values use the caret coding.
func Parse(text string, rev revision.Revision) (*Row, error) {
	colon, ok := indexUnquoted(text, ':')
	if !ok {
		return nil, &MalformedError{text, "unterminated quoted section"}
	}

	keySection, value := text, ""
	if colon >= 0 {
		keySection, value = text[:colon], text[colon+1:]
	}

	nameSection, paramSection := keySection, ""
	if semi, _ := indexUnquoted(keySection, ';'); semi >= 0 {
		nameSection, paramSection = keySection[:semi], keySection[semi+1:]
	}

	var group string
	if dot := indexUnescaped(nameSection, '.'); dot >= 0 {
		group, nameSection = nameSection[:dot], nameSection[dot+1:]
	}

	name := strings.TrimSpace(nameSection)
	if name == "" {
		return nil, &MalformedError{text, "no key"}
	}

	return &Row{
		group:  strings.ToUpper(strings.TrimSpace(group)),
		name:   strings.ToUpper(name),
		params: param.Parse(paramSection, rev.Caret()),
		value:  value,
	}, nil
}

// indexUnquoted returns the index of the first sep outside double quotes or
// -1. The second value is false if a quote is left open and no separator was
// found before the end of the text.
func indexUnquoted(s string, sep byte) (int, bool) {
	inQuote := false
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '"':
			inQuote = !inQuote
		case sep:
			if !inQuote {
				return i, true
			}
		}
	}
	return -1, !inQuote
}

// indexUnescaped returns the index of the first sep that is not preceded by a
// backslash or -1.
func indexUnescaped(s string, sep byte) int {
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '\\':
			i++
		case sep:
			return i
		}
	}
	return -1
}
