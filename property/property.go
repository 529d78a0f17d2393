// Package property turns parsed rows into typed property values. The Factory
// interface is the seam between the row level and the record level: the
// record reader hands every row and its transfer decoded content to a
// Factory and stores whatever Value comes back.
//
// Every Value knows how to write itself back out for a given revision with
// Encode, which returns wire text with the escaping of that revision applied.
package property

import (
	"strings"

	"github.com/zostay/go-addr/pkg/addr"

	"github.com/zostay/go-vcard/escape"
	"github.com/zostay/go-vcard/revision"
	"github.com/zostay/go-vcard/value"
)

// Value is the typed value of a property.
type Value interface {
	// Encode returns the value as escaped wire text for the revision. It
	// does not apply any transfer encoding.
	Encode(rev revision.Revision) string
}

// Text is free text.
type Text string

// Encode escapes the text.
func (t Text) Encode(rev revision.Revision) string {
	return escape.Escape(rev, string(t))
}

// List is a comma separated list of text values, such as categories.
type List []string

// Encode escapes each member and joins them with commas.
func (l List) Encode(rev revision.Revision) string {
	parts := make([]string, len(l))
	for i, s := range l {
		parts[i] = escape.Escape(rev, s)
	}
	return strings.Join(parts, ",")
}

// Structured is a value with semicolon separated components, each of which
// may be a list of values. Names and addresses are structured.
type Structured [][]string

// Encode joins the components.
func (s Structured) Encode(rev revision.Revision) string {
	return escape.JoinStructured(rev, s)
}

// Component returns the values of component i, or nil when the value is too
// short.
func (s Structured) Component(i int) []string {
	if i < 0 || i >= len(s) {
		return nil
	}
	return s[i]
}

// First returns the first value of component i, or an empty string.
func (s Structured) First(i int) string {
	if c := s.Component(i); len(c) > 0 {
		return c[0]
	}
	return ""
}

// Raw is the value of a property without a known structure. It is kept
// escaped, exactly as read, so its separators survive until it is written.
type Raw struct {
	text string
	rev  revision.Revision
}

// NewRaw wraps escaped text read under the given revision.
func NewRaw(text string, rev revision.Revision) Raw {
	return Raw{text, rev}
}

// Escaped returns the text as it was read.
func (r Raw) Escaped() string {
	return r.text
}

// Revision returns the revision whose escaping rules the text follows.
func (r Raw) Revision() revision.Revision {
	return r.rev
}

// Text returns the unescaped text.
func (r Raw) Text() string {
	return escape.Unescape(r.rev, r.text)
}

// Encode converts the escaping to the target revision.
func (r Raw) Encode(rev revision.Revision) string {
	return escape.Transcode(r.rev, rev, r.text)
}

// Date holds a birthday, anniversary, revision timestamp, or similar.
type Date struct {
	value.DateOrTime
}

// Encode formats the date for the revision. Free text is escaped.
func (d Date) Encode(rev revision.Revision) string {
	if d.Kind() == value.Text {
		return escape.Escape(rev, d.Text())
	}
	return d.Format(rev)
}

// ID holds the unique identifier of a record.
type ID struct {
	value.ContactID
}

// Encode formats the identifier for the revision.
func (id ID) Encode(rev revision.Revision) string {
	if id.Kind() == value.Text {
		return escape.Escape(rev, id.Text())
	}
	return id.Format(rev)
}

// Relation holds a pointer to another record.
type Relation struct {
	value.Relation
}

// Encode formats the relation. An embedded record is escaped as text, which
// is how the intermediate revision carries it. Writers targeting the legacy
// revision write embedded records as nested rows instead.
func (r Relation) Encode(rev revision.Revision) string {
	if r.Kind() == value.Identifier {
		return r.Format(rev)
	}
	return escape.Escape(rev, r.Format(rev))
}

// Binary holds a photo, logo, sound, or key.
type Binary struct {
	value.Binary
}

// Encode formats the binary value. Bytes become a data URL in the current
// revision and bare base64 otherwise.
func (b Binary) Encode(rev revision.Revision) string {
	if b.Kind() == value.Text {
		return escape.Escape(rev, b.Text())
	}
	return b.Format(rev)
}

// Email is an email address. The text is kept as given. When it is a well
// formed mailbox, the parsed mailbox is available too.
type Email struct {
	text    string
	mailbox addr.Address
}

// NewEmail parses the text as a mailbox.
func NewEmail(s string) Email {
	e := Email{text: s}
	if mb, err := addr.ParseEmailMailbox(strings.TrimSpace(s)); err == nil {
		e.mailbox = mb
	}
	return e
}

// Text returns the value as given.
func (e Email) Text() string {
	return e.text
}

// Mailbox returns the parsed mailbox or nil if the text is not well formed.
func (e Email) Mailbox() addr.Address {
	return e.mailbox
}

// Address returns the bare address of the mailbox, or the text when the
// mailbox could not be parsed.
func (e Email) Address() string {
	if e.mailbox != nil {
		return e.mailbox.Address()
	}
	return strings.TrimSpace(e.text)
}

// Encode escapes the text.
func (e Email) Encode(rev revision.Revision) string {
	return escape.Escape(rev, e.text)
}
