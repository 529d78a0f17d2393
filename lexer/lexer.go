// Package lexer turns a stream of physical lines into logical rows. It
// reverses line folding, joins quoted-printable soft line breaks and legacy
// base64 blocks, and gathers a legacy record embedded in a property value
// into the row that holds it.
//
// A Lexer is a forward-only iterator and is not safe for concurrent use.
package lexer

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/zostay/go-vcard/internal/scanner"
	"github.com/zostay/go-vcard/revision"
	"github.com/zostay/go-vcard/row"
	"github.com/zostay/go-vcard/transfer"
)

// Constants related to New() options.
const (
	// DefaultMaxRowLength is the default maximum length in bytes of a single
	// physical line and of an assembled logical row.
	DefaultMaxRowLength = 4 << 20

	// DefaultRevision is the folding rule used until a VERSION row says
	// otherwise.
	DefaultRevision = revision.Legacy
)

// Kind identifies what a Line holds.
type Kind int

// The kinds of Line.
const (
	Begin Kind = iota + 1 // the start of a record
	Row                   // a logical row
	End                   // the end of a record
)

// String returns the name of the kind.
func (k Kind) String() string {
	switch k {
	case Begin:
		return "BEGIN"
	case Row:
		return "ROW"
	case End:
		return "END"
	}
	return "INVALID"
}

// Line is one item produced by the Lexer.
type Line struct {
	// Kind is Begin, Row, or End.
	Kind Kind

	// Text is the record type, upper-cased, for Begin and End. For Row, it
	// is the reassembled logical row.
	Text string

	// Number is the physical line number, starting from 1, where the item
	// starts.
	Number int

	// Nested is true for a row whose value is an embedded record.
	Nested bool
}

// MalformedError is returned by Next for input the lexer had to skip. The
// Lexer remains usable: call Next again to continue with the following row.
type MalformedError struct {
	// Number is the physical line number where the skipped input starts.
	Number int

	// Reason describes the problem.
	Reason string
}

// Error returns the error message.
func (err *MalformedError) Error() string {
	return fmt.Sprintf("line %d: %s: %s", err.Number, row.ErrMalformed, err.Reason)
}

// Unwrap returns row.ErrMalformed.
func (err *MalformedError) Unwrap() error {
	return row.ErrMalformed
}

// Lexer reads logical rows from an io.Reader.
type Lexer struct {
	sc    *bufio.Scanner
	lines scanner.Lines

	rev          revision.Revision
	recordType   string
	maxRowLength int

	current string // type of the open record or "" outside of one

	// buf is the scratch space the current row is assembled in. It is
	// reused for every row; rows are copied out of it.
	buf []byte

	number   int
	pending  []byte
	pendNum  int
	havePend bool

	err error
}

// Option refers to options that may be passed to New to modify how the lexer
// works.
type Option func(l *Lexer)

// WithRevision is an Option that sets the folding rule to use before a
// VERSION row is seen. The default is DefaultRevision.
func WithRevision(rev revision.Revision) Option {
	return func(l *Lexer) { l.rev = rev }
}

// WithRecordType is an Option that restricts the lexer to records of the
// given type, e.g. "VCARD". Records of other types are skipped. By default,
// any record type is accepted.
func WithRecordType(recordType string) Option {
	return func(l *Lexer) { l.recordType = strings.ToUpper(strings.TrimSpace(recordType)) }
}

// WithMaxRowLength is an Option that sets the longest physical line and
// logical row the lexer will accept. A physical line longer than this ends
// the stream. A logical row longer than this is skipped with a
// MalformedError. The default is DefaultMaxRowLength, which is also used when
// n is not positive.
func WithMaxRowLength(n int) Option {
	return func(l *Lexer) { l.maxRowLength = n }
}

// New returns a Lexer reading from r.
func New(r io.Reader, opts ...Option) *Lexer {
	l := &Lexer{
		rev:          DefaultRevision,
		maxRowLength: DefaultMaxRowLength,
	}

	for _, opt := range opts {
		opt(l)
	}

	if l.maxRowLength <= 0 {
		l.maxRowLength = DefaultMaxRowLength
	}

	// the scanner's limit is the larger of the initial capacity and max
	initial := 4096
	if initial > l.maxRowLength {
		initial = l.maxRowLength
	}

	l.sc = bufio.NewScanner(r)
	l.sc.Buffer(make([]byte, 0, initial), l.maxRowLength)
	l.sc.Split(l.lines.Split)

	return l
}

// Revision returns the folding rule currently in effect. It starts at the
// configured revision and is pinned to the first non-legacy revision named by
// a VERSION row.
func (l *Lexer) Revision() revision.Revision {
	return l.rev
}

// Break returns the line terminator of the input, or row.Meh if no line
// terminator has been read yet.
func (l *Lexer) Break() row.Break {
	return row.Break(l.lines.Break())
}

// read returns the next physical line. The returned slice is only valid until
// the next call to read. At the end of input it returns io.EOF. Input that
// ends because a line is too long or because the reader ran dry early is
// treated as the end of input too.
func (l *Lexer) read() ([]byte, error) {
	if l.havePend {
		l.havePend = false
		l.number = l.pendNum
		return l.pending, nil
	}

	if l.sc.Scan() {
		l.number++
		return l.sc.Bytes(), nil
	}

	err := l.sc.Err()
	switch {
	case err == nil,
		errors.Is(err, bufio.ErrTooLong),
		errors.Is(err, io.ErrUnexpectedEOF):
		return nil, io.EOF
	}
	return nil, err
}

// unread pushes a line back to be returned by the next read.
func (l *Lexer) unread(line []byte) {
	l.pending = append(l.pending[:0], line...)
	l.pendNum = l.number
	l.havePend = true
	l.number--
}

// marker reports whether the line is a BEGIN or END marker and, if so, which
// one and for which record type.
func marker(line []byte) (string, string, bool) {
	colon := bytes.IndexByte(line, ':')
	if colon < 0 {
		return "", "", false
	}

	name := strings.ToUpper(string(bytes.TrimSpace(line[:colon])))
	if name != "BEGIN" && name != "END" {
		return "", "", false
	}

	typ := strings.ToUpper(string(bytes.TrimSpace(line[colon+1:])))
	if typ == "" {
		return "", "", false
	}

	return name, typ, true
}

func isBegin(line []byte, typ string) bool {
	name, t, ok := marker(line)
	return ok && name == "BEGIN" && (typ == "" || t == typ)
}

func isEnd(line []byte, typ string) bool {
	name, t, ok := marker(line)
	return ok && name == "END" && t == typ
}

// Next returns the next item in the input. At the end of input it returns
// io.EOF. A *MalformedError means some input was skipped; Next may be called
// again to continue. Any other error is from the underlying reader.
//
// Input outside a record is ignored. A record that is still open at the end
// of input is not closed: the last Line returned for it is a Row.
func (l *Lexer) Next() (*Line, error) {
	if l.err != nil {
		return nil, l.err
	}

	var (
		line *Line
		err  error
	)
	if l.current == "" {
		line, err = l.seekBegin()
	} else {
		line, err = l.readRow()
	}

	var merr *MalformedError
	if err != nil && !errors.As(err, &merr) {
		l.err = err
	}

	return line, err
}

// seekBegin discards lines until a BEGIN marker for an accepted record type.
func (l *Lexer) seekBegin() (*Line, error) {
	for {
		line, err := l.read()
		if err != nil {
			return nil, err
		}

		if !isBegin(line, l.recordType) {
			continue
		}

		_, typ, _ := marker(line)
		l.current = typ
		return &Line{Kind: Begin, Text: typ, Number: l.number}, nil
	}
}

// readRow assembles the next row of the open record.
func (l *Lexer) readRow() (*Line, error) {
	var line []byte
	for {
		var err error
		line, err = l.read()
		if err != nil {
			return nil, err
		}

		// blank lines and stray continuations between rows are ignored
		if len(bytes.TrimSpace(line)) > 0 && !(line[0] == ' ' || line[0] == '\t') {
			break
		}
	}

	start := l.number
	if isEnd(line, l.current) {
		typ := l.current
		l.current = ""
		return &Line{Kind: End, Text: typ, Number: start}, nil
	}

	if name, typ, ok := marker(line); ok {
		if name == "BEGIN" {
			return nil, l.skipRecord(typ, start)
		}
		return nil, &MalformedError{start, fmt.Sprintf("END:%s inside %s", typ, l.current)}
	}

	l.buf = append(l.buf[:0], line...)

	if err := l.fold(); err != nil {
		return nil, err
	}

	var (
		h      = row.Classify(l.buf)
		nested bool
		err    error
	)
	switch {
	case h.SoftBreak:
		err = l.softBreaks()
	case h.Base64 && h.HasValue && l.rev.IsLegacy():
		err = l.base64Block()
	case h.Valid && !h.HasValue && l.rev.AllowsNesting():
		nested, err = l.nestedRecord(start)
	}

	if err != nil {
		return nil, err
	}

	if h.Name == "VERSION" {
		l.rev = l.rev.Pin(h.Version)
	}

	if len(l.buf) > l.maxRowLength {
		return nil, &MalformedError{start, "row is too long"}
	}

	return &Line{Kind: Row, Text: string(l.buf), Number: start, Nested: nested}, nil
}

// fold appends continuation lines to the buffer. It stops early at a
// quoted-printable soft break, which is joined by softBreaks instead.
func (l *Lexer) fold() error {
	for {
		if transfer.HasSoftBreak(l.buf) && row.Classify(l.buf).SoftBreak {
			return nil
		}

		line, err := l.read()
		if errors.Is(err, io.EOF) {
			return nil
		} else if err != nil {
			return err
		}

		cont, ok := row.Continuation(line, l.rev)
		if !ok {
			l.unread(line)
			return nil
		}

		l.buf = append(l.buf, cont...)
	}
}

// softBreaks appends the physical lines that follow a quoted-printable soft
// line break, each after a newline, until a line no longer ends in a soft
// break. A row that is cut off by the end of input is dropped.
func (l *Lexer) softBreaks() error {
	for {
		line, err := l.read()
		if err != nil {
			return err
		}

		l.buf = append(l.buf, '\n')
		l.buf = append(l.buf, line...)
		if !transfer.HasSoftBreak(line) {
			return nil
		}
	}
}

// base64Block appends the lines of a legacy base64 value until the blank
// line that ends it. The blank line is consumed. A line that looks like the
// start of another row ends the block without being consumed, in case the
// blank line is missing.
func (l *Lexer) base64Block() error {
	for {
		line, err := l.read()
		if err != nil {
			return err
		}

		trimmed := bytes.TrimSpace(line)
		if len(trimmed) == 0 {
			return nil
		}

		if bytes.IndexByte(trimmed, ':') >= 0 {
			l.unread(line)
			return nil
		}

		l.buf = append(l.buf, trimmed...)
	}
}

// nestedRecord checks whether the next line begins a record embedded in the
// value of the buffered row. If so, the whole embedded record is appended to
// the buffer with the input's own line terminator between its lines. A
// record embedded in the embedded record cannot be represented and the row
// is skipped.
func (l *Lexer) nestedRecord(start int) (bool, error) {
	line, err := l.read()
	if errors.Is(err, io.EOF) {
		return false, nil
	} else if err != nil {
		return false, err
	}

	if !isBegin(line, l.current) {
		l.unread(line)
		return false, nil
	}

	brk := l.Break().OrDefault().Bytes()
	l.buf = append(l.buf, line...)

	depth, malformed := 1, false
	for depth > 0 {
		line, err := l.read()
		if err != nil {
			return false, err
		}

		l.buf = append(l.buf, brk...)
		l.buf = append(l.buf, line...)

		switch {
		case isBegin(line, l.current):
			depth++
			malformed = true
		case isEnd(line, l.current):
			depth--
		}
	}

	if malformed {
		return false, &MalformedError{start, "record nested inside an embedded record"}
	}

	return true, nil
}

// skipRecord discards lines through the END marker matching a BEGIN marker
// found where a row was expected.
func (l *Lexer) skipRecord(typ string, start int) error {
	depth := 1
	for depth > 0 {
		line, err := l.read()
		if err != nil {
			return err
		}

		switch {
		case isBegin(line, typ):
			depth++
		case isEnd(line, typ):
			depth--
		}
	}

	return &MalformedError{start, fmt.Sprintf("BEGIN:%s inside %s", typ, l.current)}
}
