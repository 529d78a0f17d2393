package value

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/google/uuid"

	"github.com/zostay/go-vcard/revision"
)

var (
	// ErrRelativeURI is returned by NewIdentifierURI when the reference is
	// not an absolute URI.
	ErrRelativeURI = errors.New("URI must be absolute")
)

// ContactID identifies a record: by UUID, by an absolute URI, or by opaque
// text. ContactID values are comparable and may be used as map keys.
type ContactID struct {
	kind Kind
	id   uuid.UUID
	uri  string
	text string
}

// ContactIDVisitor receives the active variant of a ContactID.
type ContactIDVisitor interface {
	VisitUUID(id uuid.UUID) error
	VisitURI(u *url.URL) error
	VisitText(s string) error
}

// ParseIdentifier reads an identifier. A urn:uuid: reference or a bare UUID
// becomes the UUID variant, an absolute URI becomes the URI variant, and
// anything else becomes text.
func ParseIdentifier(s string) ContactID {
	trimmed := strings.TrimSpace(s)
	if looksLikeUUID(trimmed) {
		if id, err := uuid.Parse(trimmed); err == nil {
			return NewUUID(id)
		}
	}

	if !strings.ContainsAny(trimmed, " \t") {
		if u, err := url.Parse(trimmed); err == nil && u.IsAbs() && u.Opaque+u.Host+u.Path != "" {
			return ContactID{kind: URI, uri: u.String()}
		}
	}

	return NewIdentifierText(s)
}

// looksLikeUUID accepts the spellings of a UUID that appear in records. The
// uuid package also accepts the braced and bare hex forms, which are left as
// text here.
func looksLikeUUID(s string) bool {
	switch len(s) {
	case 36:
		return true
	case 45:
		return strings.EqualFold(s[:9], "urn:uuid:")
	}
	return false
}

// NewUUID returns the UUID variant.
func NewUUID(id uuid.UUID) ContactID {
	return ContactID{kind: UUID, id: id}
}

// NewIdentifierURI returns the URI variant. Unlike ParseIdentifier, it
// demands an absolute URI and returns an error for anything else.
func NewIdentifierURI(s string) (ContactID, error) {
	u, err := url.Parse(strings.TrimSpace(s))
	if err != nil {
		return ContactID{}, fmt.Errorf("identifier %q: %w", s, err)
	}

	if !u.IsAbs() {
		return ContactID{}, fmt.Errorf("identifier %q: %w", s, ErrRelativeURI)
	}

	return ContactID{kind: URI, uri: u.String()}, nil
}

// NewIdentifierText returns the text variant.
func NewIdentifierText(s string) ContactID {
	return ContactID{kind: Text, text: s}
}

// Kind returns UUID, URI, or Text.
func (c ContactID) Kind() Kind {
	return c.kind
}

// UUID returns the UUID of the UUID variant.
func (c ContactID) UUID() uuid.UUID {
	return c.id
}

// URI returns the URI of the URI variant, or nil.
func (c ContactID) URI() *url.URL {
	if c.kind != URI {
		return nil
	}
	u, err := url.Parse(c.uri)
	if err != nil {
		return nil
	}
	return u
}

// Text returns the text of the text variant.
func (c ContactID) Text() string {
	return c.text
}

// Visit calls the visitor method for the active variant.
func (c ContactID) Visit(v ContactIDVisitor) error {
	switch c.kind {
	case UUID:
		return v.VisitUUID(c.id)
	case URI:
		return v.VisitURI(c.URI())
	case Text:
		return v.VisitText(c.text)
	}
	return fmt.Errorf("cannot visit %s identifier", c.kind)
}

// Equal returns true if both values hold the same variant with the same
// contents.
func (c ContactID) Equal(o ContactID) bool {
	if c.kind != o.kind {
		return false
	}

	switch c.kind {
	case UUID:
		return c.id == o.id
	case URI:
		return c.uri == o.uri
	}
	return c.text == o.text
}

// Format writes the identifier. A UUID is written as a urn:uuid: reference,
// except in the legacy revision where it is written bare.
func (c ContactID) Format(rev revision.Revision) string {
	switch c.kind {
	case UUID:
		if rev.IsLegacy() {
			return c.id.String()
		}
		return c.id.URN()
	case URI:
		return c.uri
	}
	return c.text
}

// String returns the identifier formatted for the current revision.
func (c ContactID) String() string {
	return c.Format(revision.Current)
}
