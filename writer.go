package vcard

import (
	"bytes"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"

	"github.com/zostay/go-vcard/charset"
	"github.com/zostay/go-vcard/param"
	"github.com/zostay/go-vcard/property"
	"github.com/zostay/go-vcard/revision"
	"github.com/zostay/go-vcard/row"
	"github.com/zostay/go-vcard/transfer"
	"github.com/zostay/go-vcard/value"
)

// legacyBase64Indent starts each line of a legacy base64 block.
const legacyBase64Indent = "  "

// Writer writes records to a stream.
type Writer struct {
	w      io.Writer
	rev    revision.Revision
	brk    row.Break
	fold   *row.FoldEncoding
	logger log.Logger
}

// NewWriter returns a Writer for the stream. It accepts the WithRevision,
// WithBreak, WithFoldEncoding, and WithLogger options.
func NewWriter(w io.Writer, opts ...Option) *Writer {
	c := newConfig(opts)
	return &Writer{
		w:      w,
		rev:    c.rev,
		brk:    c.brk.OrDefault(),
		fold:   c.fold,
		logger: c.logger,
	}
}

// revisionFor decides the revision a record is written in.
func (w *Writer) revisionFor(rec *Record) revision.Revision {
	switch {
	case w.rev != revision.Unknown:
		return w.rev
	case rec.Revision != revision.Unknown:
		return rec.Revision
	}
	return revision.Current
}

// Write writes one record. Values are escaped, transfer encoded, and folded
// as the revision requires:
//
//   - legacy text that is not plain ASCII on one line is quoted-printable
//     encoded and marked with CHARSET=UTF-8,
//   - legacy binary data is written as an indented base64 block ended by a
//     blank line,
//   - intermediate binary data is written as base64 with ENCODING=b,
//   - current binary data is written as a data URL, and
//   - legacy embedded records are written as nested rows.
func (w *Writer) Write(rec *Record) error {
	rev := w.revisionFor(rec)
	fold := w.fold
	if fold == nil {
		fold = row.FoldEncodingFor(rev)
	}

	typ := strings.ToUpper(rec.Type)
	if typ == "" {
		typ = DefaultRecordType
	}

	if err := w.line(fold, "BEGIN:"+typ); err != nil {
		return err
	}

	if err := w.line(fold, "VERSION:"+rev.String()); err != nil {
		return err
	}

	for _, p := range rec.Properties {
		if p.Value == nil {
			level.Debug(w.logger).Log("msg", "skipping property without a value", "key", p.Name)
			continue
		}

		if err := w.writeProperty(fold, rev, p); err != nil {
			return err
		}
	}

	return w.line(fold, "END:"+typ)
}

// line folds and writes one row.
func (w *Writer) line(fold *row.FoldEncoding, s string) error {
	_, err := fold.Fold(w.w, []byte(s), w.brk)
	return err
}

// raw writes the strings as they are.
func (w *Writer) raw(ss ...string) error {
	for _, s := range ss {
		if _, err := io.WriteString(w.w, s); err != nil {
			return err
		}
	}
	return nil
}

func (w *Writer) writeProperty(fold *row.FoldEncoding, rev revision.Revision, p *Property) error {
	params := param.Modify(p.Params,
		param.WithCaret(rev.Caret()),
		param.Delete(param.Encoding),
		param.Delete(param.Charset),
	)

	switch v := p.Value.(type) {
	case property.Binary:
		switch v.Kind() {
		case value.Data:
			return w.data(fold, rev, p, params, v)
		case value.URI:
			if rev != revision.Current && !params.Has(param.Value) {
				params = param.Modify(params, param.Set(param.Value, uriValue(rev)))
			}
		}

	case property.Relation:
		if v.Kind() == value.Embedded && rev.IsLegacy() {
			return w.embedded(fold, p, params, v)
		}
	}

	text := p.Value.Encode(rev)
	if rev.IsLegacy() && needsQuotedPrintable(text) {
		return w.quotedPrintable(p, params, text)
	}

	return w.line(fold, row.New(p.Group, p.Name, params, text).String())
}

// uriValue is the VALUE parameter marking a reference in the revision.
func uriValue(rev revision.Revision) string {
	if rev.IsLegacy() {
		return "URL"
	}
	return "uri"
}

// needsQuotedPrintable returns true if legacy text cannot be written as it
// is: it spans lines or is not plain printable ASCII.
func needsQuotedPrintable(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c >= utf8.RuneSelf || (c < ' ' && c != '\t') || c == 0x7f {
			return true
		}
	}
	return false
}

// quotedPrintable writes a legacy row with its value quoted-printable
// encoded. The encoder keeps physical lines short with soft line breaks, so
// the row is not folded.
func (w *Writer) quotedPrintable(p *Property, params param.List, text string) error {
	b, used := charset.Encode(charset.UTF8, text)

	var buf bytes.Buffer
	enc := transfer.NewQuotedPrintableEncoder(&buf)
	if _, err := enc.Write(b); err != nil {
		return err
	}
	if err := enc.Close(); err != nil {
		return err
	}

	params = param.Modify(params,
		param.Set(param.Encoding, strings.ToUpper(transfer.QuotedPrintable)),
		param.Set(param.Charset, used),
	)

	qp := transfer.SoftBreaks(buf.String(), w.brk.String())
	return w.raw(row.New(p.Group, p.Name, params, qp).String(), w.brk.String())
}

// data writes inline binary data in the form the revision expects.
func (w *Writer) data(fold *row.FoldEncoding, rev revision.Revision, p *Property, params param.List, v property.Binary) error {
	switch rev {
	case revision.Current:
		params = withoutMediaTokens(params)
		return w.line(fold, row.New(p.Group, p.Name, params, v.Encode(rev)).String())

	case revision.Intermediate:
		params = withMediaToken(params, v.MediaType())
		params = param.Modify(params, param.Set(param.Encoding, transfer.B))
		return w.line(fold, row.New(p.Group, p.Name, params, v.Encode(rev)).String())
	}

	params = withMediaToken(params, v.MediaType())
	params = param.Modify(params, param.Set(param.Encoding, strings.ToUpper(transfer.Base64)))
	if err := w.line(fold, row.New(p.Group, p.Name, params, "").String()); err != nil {
		return err
	}

	if err := w.raw(legacyBase64Indent); err != nil {
		return err
	}

	enc := transfer.NewBase64LineEncoder(w.w, transfer.DefaultBase64LineLength,
		[]byte(w.brk.String()+legacyBase64Indent))
	if _, err := enc.Write(v.Data()); err != nil {
		return err
	}
	if err := enc.Close(); err != nil {
		return err
	}

	return w.raw(w.brk.String(), w.brk.String())
}

// withMediaToken adds a TYPE token naming the media type unless one is
// already present.
func withMediaToken(params param.List, mediaType string) param.List {
	tok := property.TypeToken(mediaType)
	if tok == "" {
		return params
	}

	for _, t := range params.Values(param.Type) {
		if property.MediaType(t) != "" {
			return params
		}
	}

	return param.Modify(params, param.Add(param.Type, tok))
}

// withoutMediaTokens removes TYPE values that name media types.
func withoutMediaTokens(params param.List) param.List {
	if !params.Has(param.Type) {
		return params
	}

	var kept []string
	for _, t := range params.Values(param.Type) {
		if property.MediaType(t) == "" {
			kept = append(kept, t)
		}
	}

	mods := []param.Modifier{param.Delete(param.Type)}
	if len(kept) > 0 {
		mods = append(mods, param.Add(param.Type, kept...))
	}
	return param.Modify(params, mods...)
}

// embedded writes an embedded record as nested rows, which only the legacy
// revision allows.
func (w *Writer) embedded(fold *row.FoldEncoding, p *Property, params param.List, v property.Relation) error {
	if err := w.line(fold, row.New(p.Group, p.Name, params, "").String()); err != nil {
		return err
	}

	if err := w.line(fold, "BEGIN:"+v.RecordType()); err != nil {
		return err
	}

	for _, er := range v.Rows() {
		if err := w.line(fold, er.String()); err != nil {
			return err
		}
	}

	return w.line(fold, "END:"+v.RecordType())
}
