package vcard

import (
	"github.com/go-kit/log"

	"github.com/zostay/go-vcard/lexer"
	"github.com/zostay/go-vcard/property"
	"github.com/zostay/go-vcard/revision"
	"github.com/zostay/go-vcard/row"
)

// DefaultRecordType is the record type written when a Record has none.
const DefaultRecordType = "VCARD"

type config struct {
	logger       log.Logger
	rev          revision.Revision
	factory      property.Factory
	recordType   string
	maxRowLength int
	brk          row.Break
	fold         *row.FoldEncoding
}

func newConfig(opts []Option) *config {
	c := &config{
		logger:       log.NewNopLogger(),
		factory:      property.Default{},
		maxRowLength: lexer.DefaultMaxRowLength,
		brk:          row.CRLF,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Option configures a Reader or a Writer. Options that only make sense for
// one of them are ignored by the other.
type Option func(c *config)

// WithLogger is an Option that sets the logger used to report skipped input.
// By default, nothing is logged.
func WithLogger(logger log.Logger) Option {
	return func(c *config) { c.logger = logger }
}

// WithRevision is an Option that sets the revision. For a Reader, this is the
// revision assumed until a record declares its own. For a Writer, this is the
// revision every record is written in. Without it, a Writer uses the revision
// of each record, or revision.Current when the record has none.
func WithRevision(rev revision.Revision) Option {
	return func(c *config) { c.rev = rev }
}

// WithFactory is an Option that sets the Factory a Reader uses to build
// property values. The default is property.Default.
func WithFactory(f property.Factory) Option {
	return func(c *config) { c.factory = f }
}

// WithRecordType is an Option that limits a Reader to records of the given
// type. Records of other types are skipped. By default, every record is
// read.
func WithRecordType(recordType string) Option {
	return func(c *config) { c.recordType = recordType }
}

// WithMaxRowLength is an Option that sets the longest row a Reader accepts.
// Longer rows are skipped. The default is lexer.DefaultMaxRowLength.
func WithMaxRowLength(n int) Option {
	return func(c *config) { c.maxRowLength = n }
}

// WithBreak is an Option that sets the line break a Writer uses. The default
// is row.CRLF.
func WithBreak(brk row.Break) Option {
	return func(c *config) { c.brk = brk }
}

// WithFoldEncoding is an Option that sets how a Writer folds long rows. The
// default is row.FoldEncodingFor the revision being written. Use
// row.DoNotFoldEncoding to turn folding off.
func WithFoldEncoding(fe *row.FoldEncoding) Option {
	return func(c *config) { c.fold = fe }
}
