package vcard

import (
	"errors"
	"io"
	"strings"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"

	"github.com/zostay/go-vcard/content"
	"github.com/zostay/go-vcard/lexer"
	"github.com/zostay/go-vcard/property"
	"github.com/zostay/go-vcard/revision"
	"github.com/zostay/go-vcard/row"
)

// Reader reads records from a stream, one at a time.
//
// Input that cannot be understood is skipped: a malformed row is dropped and
// the rest of its record is kept, and a record still open at the end of input
// is dropped. Each skip is logged and counted, but is not an error.
type Reader struct {
	lx      *lexer.Lexer
	logger  log.Logger
	factory property.Factory
	dropped int
}

// NewReader returns a Reader for the stream. It accepts the WithLogger,
// WithRevision, WithFactory, WithRecordType, and WithMaxRowLength options.
func NewReader(r io.Reader, opts ...Option) *Reader {
	c := newConfig(opts)

	lopts := []lexer.Option{
		lexer.WithRecordType(c.recordType),
		lexer.WithMaxRowLength(c.maxRowLength),
	}
	if c.rev != revision.Unknown {
		lopts = append(lopts, lexer.WithRevision(c.rev))
	}

	return &Reader{
		lx:      lexer.New(r, lopts...),
		logger:  c.logger,
		factory: c.factory,
	}
}

// Dropped returns the number of rows and records skipped so far.
func (r *Reader) Dropped() int {
	return r.dropped
}

// Next returns the next record. It returns io.EOF when there are no more.
// Any other error comes from the underlying reader, and the Reader is not
// usable afterward.
func (r *Reader) Next() (*Record, error) {
	var rec *Record
	for {
		line, err := r.lx.Next()

		var merr *lexer.MalformedError
		switch {
		case errors.As(err, &merr):
			r.drop("msg", "skipping malformed input", "line", merr.Number, "err", err)
			continue
		case errors.Is(err, io.EOF):
			if rec != nil {
				r.drop("msg", "dropping incomplete record", "type", rec.Type)
			}
			return nil, io.EOF
		case err != nil:
			return nil, err
		}

		switch line.Kind {
		case lexer.Begin:
			rec = &Record{Type: line.Text}
		case lexer.Row:
			if rec != nil {
				r.addRow(rec, line)
			}
		case lexer.End:
			if rec == nil {
				continue
			}
			if rec.Revision == revision.Unknown {
				rec.Revision = r.lx.Revision()
			}
			return rec, nil
		}
	}
}

func (r *Reader) drop(keyvals ...interface{}) {
	r.dropped++
	level.Warn(r.logger).Log(keyvals...)
}

// addRow turns a logical row into a property of the record. A VERSION row
// sets the revision of the record instead.
func (r *Reader) addRow(rec *Record, line *lexer.Line) {
	rev := rec.Revision
	if rev == revision.Unknown {
		rev = r.lx.Revision()
	}

	pr, err := row.Parse(line.Text, rev)
	if err != nil {
		r.drop("msg", "skipping malformed row", "line", line.Number, "err", err)
		return
	}

	if pr.Name() == "VERSION" {
		v, err := revision.Parse(strings.TrimSpace(pr.Value()))
		if err != nil {
			level.Warn(r.logger).Log("msg", "ignoring version", "line", line.Number, "err", err)
			return
		}
		rec.Revision = v
		return
	}

	cv := content.New(pr.Value())
	if err := cv.DecodeTransfer(pr.Params(), rev); err != nil {
		r.drop("msg", "skipping undecodable property", "line", line.Number, "key", pr.Name(), "err", err)
		return
	}

	pv, err := r.factory.Make(pr, cv, rev)
	if err != nil {
		r.drop("msg", "skipping property", "line", line.Number, "key", pr.Name(), "err", err)
		return
	}

	rec.Properties = append(rec.Properties, &Property{
		Group:  pr.Group(),
		Name:   pr.Name(),
		Params: pr.Params(),
		Value:  pv,
	})
}

// Parse reads every record in the stream.
func Parse(r io.Reader, opts ...Option) ([]*Record, error) {
	rd := NewReader(r, opts...)

	var recs []*Record
	for {
		rec, err := rd.Next()
		if errors.Is(err, io.EOF) {
			return recs, nil
		} else if err != nil {
			return recs, err
		}
		recs = append(recs, rec)
	}
}
