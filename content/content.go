// Package content resolves the raw value of a row into the value it stands
// for. That takes two steps, each of which runs at most once: transfer
// decoding (quoted-printable, base64, or a data URL) and then unescaping.
//
// Running either step twice would corrupt the value without any way to tell
// afterward, so a Value records which steps have run and quietly ignores a
// repeat.
package content

import (
	"fmt"
	"strings"

	"github.com/zostay/go-vcard/charset"
	"github.com/zostay/go-vcard/escape"
	"github.com/zostay/go-vcard/param"
	"github.com/zostay/go-vcard/revision"
	"github.com/zostay/go-vcard/transfer"
)

// Value is the value of one row on its way from wire text to plain text or
// bytes.
type Value struct {
	raw string

	decoded bool
	binary  bool
	text    string // transfer decoded, still escaped unless unescaped is set
	data    []byte
	media   string

	unescaped bool
	plain     string
}

// New wraps a raw value taken from a row. Nothing has been decoded yet.
func New(raw string) *Value {
	return &Value{raw: raw, text: raw}
}

// FromText wraps plain text that needs no decoding or unescaping.
func FromText(text string) *Value {
	return &Value{
		raw:       text,
		decoded:   true,
		text:      text,
		unescaped: true,
		plain:     text,
	}
}

// FromBytes wraps binary data with an optional media type.
func FromBytes(b []byte, mediaType string) *Value {
	return &Value{
		decoded:   true,
		binary:    true,
		data:      b,
		media:     strings.ToLower(mediaType),
		unescaped: true,
	}
}

// Raw returns the value as it was given to New.
func (v *Value) Raw() string {
	return v.raw
}

// DecodeTransfer undoes the transfer encoding named by the ENCODING
// parameter. Quoted-printable text is decoded from the character set named by
// the CHARSET parameter, falling back to UTF-8. Base64 yields bytes. When
// the revision is Current, a value using the data scheme yields its payload
// and media type.
//
// It runs at most once. Later calls return nil and change nothing. When
// decoding fails, the raw value is kept as text and the error is returned.
func (v *Value) DecodeTransfer(params param.List, rev revision.Revision) error {
	if v.decoded {
		return nil
	}
	v.decoded = true

	enc := params.Get(param.Encoding)
	switch {
	case transfer.IsQuotedPrintable(enc):
		b, err := transfer.DecodeString(enc, v.raw)
		if err != nil {
			return fmt.Errorf("unable to decode quoted-printable value: %w", err)
		}
		v.text = charset.Decode(params.Get(param.Charset), b)

	case transfer.IsBase64(enc):
		b, err := transfer.DecodeString(enc, v.raw)
		if err != nil {
			return fmt.Errorf("unable to decode base64 value: %w", err)
		}
		v.setBytes(b, "")

	case rev == revision.Current && transfer.IsDataURI(v.raw):
		d, err := transfer.ParseDataURI(v.raw)
		if err != nil {
			return fmt.Errorf("unable to decode data URL: %w", err)
		}
		v.setBytes(d.Data, d.MediaType)

	case enc != "":
		if _, ok := transfer.Lookup(enc); !ok {
			return fmt.Errorf("%w: %q", transfer.ErrUnknownEncoding, enc)
		}
	}

	return nil
}

func (v *Value) setBytes(b []byte, mediaType string) {
	v.binary = true
	v.data = b
	v.text = ""
	v.media = mediaType
	v.unescaped = true
}

// Decoded returns true once transfer decoding has run.
func (v *Value) Decoded() bool {
	return v.decoded
}

// IsBinary returns true if the value holds bytes rather than text.
func (v *Value) IsBinary() bool {
	return v.binary
}

// MediaType returns the media type that came with the bytes, if any.
func (v *Value) MediaType() string {
	return v.media
}

// Bytes returns the binary data or, for a text value, the bytes of the
// escaped text.
func (v *Value) Bytes() []byte {
	if v.binary {
		return v.data
	}
	return []byte(v.text)
}

// Escaped returns the transfer decoded text before unescaping. It is empty
// for binary values.
func (v *Value) Escaped() string {
	return v.text
}

// Text returns the plain text of the value, unescaped according to the
// revision. Unescaping happens on the first call only; the revision given to
// later calls is ignored. For binary values, the bytes are returned as a
// string.
func (v *Value) Text(rev revision.Revision) string {
	if v.binary {
		return string(v.data)
	}

	if !v.unescaped {
		v.plain = escape.Unescape(rev, v.text)
		v.unescaped = true
	}
	return v.plain
}
