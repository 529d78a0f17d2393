package row

import (
	"strings"

	"github.com/zostay/go-vcard/param"
	"github.com/zostay/go-vcard/revision"
	"github.com/zostay/go-vcard/transfer"
)

// Hints describes a tentative row to the lexer, which uses them to decide
// whether the row continues onto following physical lines.
type Hints struct {
	// Valid is false when the text does not parse as a row. All other fields
	// are zero in that case.
	Valid bool

	// Name is the upper-cased key.
	Name string

	// QuotedPrintable is true when the row declares quoted-printable
	// encoding.
	QuotedPrintable bool

	// SoftBreak is true when the row is quoted-printable and the value ends
	// with a soft line break.
	SoftBreak bool

	// Base64 is true when the row declares base64 encoding.
	Base64 bool

	// HasValue is true when the value is not blank.
	HasValue bool

	// Version is the revision named by a VERSION row. It is Unknown for every
	// other row.
	Version revision.Revision
}

// Classify parses a tentative row and reports the parts of it that matter to
// the lexer.
func Classify(text []byte) Hints {
	r, err := Parse(string(text), revision.Legacy)
	if err != nil {
		return Hints{}
	}

	enc := r.Params().Get(param.Encoding)
	h := Hints{
		Valid:           true,
		Name:            r.Name(),
		QuotedPrintable: transfer.IsQuotedPrintable(enc),
		Base64:          transfer.IsBase64(enc),
		HasValue:        strings.TrimSpace(r.Value()) != "",
	}

	if h.QuotedPrintable {
		h.SoftBreak = transfer.HasSoftBreak([]byte(r.Value()))
	}

	if h.Name == "VERSION" {
		h.Version, _ = revision.Parse(r.Value())
	}

	return h
}
