package value

import (
	"bytes"
	"fmt"
	"net/url"
	"strings"

	"github.com/zostay/go-vcard/content"
	"github.com/zostay/go-vcard/revision"
	"github.com/zostay/go-vcard/transfer"
)

// Binary is the value of a photo, logo, sound, or key: inline bytes, inline
// text, or a reference to data kept elsewhere. Any variant may carry a media
// type.
type Binary struct {
	kind      Kind
	data      []byte
	text      string
	uri       string
	mediaType string
}

// BinaryVisitor receives the active variant of a Binary.
type BinaryVisitor interface {
	VisitData(b []byte, mediaType string) error
	VisitURI(u *url.URL) error
	VisitText(s string) error
}

// ParseBinary reads the value of a row whose transfer encoding has already
// been undone. Bytes become the Data variant. Text using the data scheme is
// decoded into the Data variant as well. Any other absolute URI is a
// reference and becomes the URI variant. Everything else is text.
func ParseBinary(v *content.Value, rev revision.Revision) Binary {
	if v.IsBinary() {
		return NewData(v.Bytes(), v.MediaType())
	}

	s := strings.TrimSpace(v.Text(rev))
	if transfer.IsDataURI(s) {
		if d, err := transfer.ParseDataURI(s); err == nil {
			return NewData(d.Data, d.MediaType)
		}
	}

	if id := ParseIdentifier(s); id.Kind() == URI {
		return Binary{kind: URI, uri: id.Format(rev)}
	}

	return NewBinaryText(v.Text(rev))
}

// NewData returns the Data variant.
func NewData(b []byte, mediaType string) Binary {
	return Binary{kind: Data, data: b, mediaType: strings.ToLower(mediaType)}
}

// NewReference returns the URI variant. It returns ErrRelativeURI if the
// reference is not absolute.
func NewReference(s, mediaType string) (Binary, error) {
	id, err := NewIdentifierURI(s)
	if err != nil {
		return Binary{}, err
	}
	return Binary{kind: URI, uri: id.Format(revision.Current), mediaType: strings.ToLower(mediaType)}, nil
}

// NewBinaryText returns the text variant.
func NewBinaryText(s string) Binary {
	return Binary{kind: Text, text: s}
}

// WithMediaType returns a copy of the value with the media type replaced.
func (b Binary) WithMediaType(mediaType string) Binary {
	b.mediaType = strings.ToLower(mediaType)
	return b
}

// Kind returns Data, URI, or Text.
func (b Binary) Kind() Kind {
	return b.kind
}

// Data returns the bytes of the Data variant.
func (b Binary) Data() []byte {
	return b.data
}

// URI returns the reference of the URI variant.
func (b Binary) URI() string {
	return b.uri
}

// Text returns the text of the text variant.
func (b Binary) Text() string {
	return b.text
}

// MediaType returns the media type, if known.
func (b Binary) MediaType() string {
	return b.mediaType
}

// Visit calls the visitor method for the active variant.
func (b Binary) Visit(v BinaryVisitor) error {
	switch b.kind {
	case Data:
		return v.VisitData(b.data, b.mediaType)
	case URI:
		u, err := url.Parse(b.uri)
		if err != nil {
			return err
		}
		return v.VisitURI(u)
	case Text:
		return v.VisitText(b.text)
	}
	return fmt.Errorf("cannot visit %s binary", b.kind)
}

// Equal returns true if both values hold the same variant with the same
// contents and media type.
func (b Binary) Equal(o Binary) bool {
	return b.kind == o.kind &&
		b.mediaType == o.mediaType &&
		bytes.Equal(b.data, o.data) &&
		b.uri == o.uri &&
		b.text == o.text
}

// Format writes the value. In the current revision, bytes become a data URL.
// In the other revisions, bytes are written as bare base64 and the caller is
// expected to declare the encoding in a parameter.
func (b Binary) Format(rev revision.Revision) string {
	switch b.kind {
	case Data:
		if rev == revision.Current {
			mt := b.mediaType
			if mt == "" {
				mt = "application/octet-stream"
			}
			d := transfer.DataURI{MediaType: mt, Base64: true, Data: b.data}
			return d.String()
		}
		return transfer.EncodeBase64(b.data)
	case URI:
		return b.uri
	}
	return b.text
}

// String returns the value formatted for the current revision.
func (b Binary) String() string {
	return b.Format(revision.Current)
}
