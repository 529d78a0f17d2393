package row

import (
	"bytes"
	"errors"
	"io"
	"unicode/utf8"

	"github.com/zostay/go-vcard/revision"
)

const (
	DefaultFoldIndent = " " // indent placed before folded lines
	DefaultFoldLength = 75  // longest physical line, in octets, not counting the line break

	DoNotFold = -1 // we prefer not to fold at all
)

var (
	// DefaultFoldEncoding folds the way the intermediate and current
	// revisions expect. This is the recommended way to get a FoldEncoding.
	DefaultFoldEncoding = &FoldEncoding{DefaultFoldIndent, DefaultFoldLength, false}

	// LegacyFoldEncoding folds the way the legacy revision expects.
	LegacyFoldEncoding = &FoldEncoding{DefaultFoldIndent, DefaultFoldLength, true}

	// DoNotFoldEncoding is a FoldEncoding that doesn't perform folding.
	DoNotFoldEncoding = &FoldEncoding{DefaultFoldIndent, DoNotFold, false}
)

var (
	// ErrFoldIndentSpace is returned by NewFoldEncoding when the fold indent
	// is not exactly one space or tab.
	ErrFoldIndentSpace = errors.New("fold indent must be a single space or tab")

	// ErrFoldLengthTooShort is returned by NewFoldEncoding when the fold
	// length leaves no room for content after the indent.
	ErrFoldLengthTooShort = errors.New("fold length is too short")
)

// FoldEncoding provides the tooling for folding rows onto physical lines.
type FoldEncoding struct {
	foldIndent string
	foldLength int
	legacy     bool
}

// NewFoldEncoding creates a new FoldEncoding. The foldIndent must be a single
// space or tab, since unfolding removes exactly one character. The foldLength
// is the longest physical line to write, or DoNotFold.
//
// A legacy FoldEncoding never inserts an indent. Legacy unfolding keeps the
// leading whitespace of a continuation line, so a legacy row can only be
// broken in front of whitespace it already contains.
func NewFoldEncoding(foldIndent string, foldLength int, legacy bool) (*FoldEncoding, error) {
	if foldIndent != " " && foldIndent != "\t" {
		return nil, ErrFoldIndentSpace
	}

	if foldLength != DoNotFold && foldLength < 4 {
		return nil, ErrFoldLengthTooShort
	}

	return &FoldEncoding{foldIndent, foldLength, legacy}, nil
}

// FoldEncodingFor returns the default FoldEncoding for the revision.
func FoldEncodingFor(rev revision.Revision) *FoldEncoding {
	if rev.StripsFold() {
		return DefaultFoldEncoding
	}
	return LegacyFoldEncoding
}

func isSpace(c byte) bool { return c == ' ' || c == '\t' }

// Fold writes the row in f to out, broken into physical lines no longer than
// the fold length where that is possible. Each physical line, including the
// last, is terminated with lb. A break is never placed inside a UTF-8
// sequence.
//
// Returns the number of bytes written and any error from writing.
func (vf *FoldEncoding) Fold(out io.Writer, f []byte, lb Break) (int64, error) {
	total := int64(0)
	write := func(bs ...[]byte) error {
		for _, b := range bs {
			n, err := out.Write(b)
			total += int64(n)
			if err != nil {
				return err
			}
		}
		return nil
	}

	lbb := lb.OrDefault().Bytes()
	if vf.foldLength == DoNotFold || len(f) <= vf.foldLength {
		return total, write(f, lbb)
	}

	if vf.legacy {
		for len(f) > 0 {
			end := legacyBreak(f, vf.foldLength)
			if err := write(f[:end], lbb); err != nil {
				return total, err
			}
			f = f[end:]
		}
		return total, nil
	}

	indent := []byte(vf.foldIndent)
	width := vf.foldLength
	for first := true; len(f) > 0; first = false {
		if !first {
			width = vf.foldLength - len(indent)
			if err := write(indent); err != nil {
				return total, err
			}
		}

		end := len(f)
		if end > width {
			end = width
			for end > 0 && !utf8.RuneStart(f[end]) {
				end--
			}
			if end == 0 {
				end = width
			}
		}

		if err := write(f[:end], lbb); err != nil {
			return total, err
		}
		f = f[end:]
	}

	return total, nil
}

// legacyBreak finds the end of the next legacy physical line: just before the
// last whitespace that fits, or else before the first whitespace at all, or
// else the whole remainder.
func legacyBreak(f []byte, width int) int {
	if len(f) <= width {
		return len(f)
	}

	for i := width; i > 0; i-- {
		if isSpace(f[i]) {
			return i
		}
	}

	for i := width + 1; i < len(f); i++ {
		if isSpace(f[i]) {
			return i
		}
	}

	return len(f)
}

// Continuation reports whether the physical line continues the row before it.
// If so, it returns the content to append: the line itself under legacy
// rules or the line with its first character removed otherwise.
func Continuation(line []byte, rev revision.Revision) ([]byte, bool) {
	if len(line) == 0 || !isSpace(line[0]) {
		return nil, false
	}

	if rev.StripsFold() {
		return line[1:], true
	}
	return line, true
}

// Unfold reverses Fold. The physical lines in folded may be terminated by
// CRLF, LF, or CR. A line that does not start with whitespace is joined as
// is.
func Unfold(folded []byte, rev revision.Revision) []byte {
	uf := make([]byte, 0, len(folded))
	for i, line := range splitLines(folded) {
		if i > 0 {
			if cont, ok := Continuation(line, rev); ok {
				line = cont
			}
		}
		uf = append(uf, line...)
	}
	return uf
}

// splitLines breaks b into lines, dropping the terminators and any trailing
// empty line.
func splitLines(b []byte) [][]byte {
	var lines [][]byte
	for len(b) > 0 {
		ix := bytes.IndexAny(b, "\r\n")
		if ix < 0 {
			lines = append(lines, b)
			break
		}

		lines = append(lines, b[:ix])
		if b[ix] == '\r' && ix+1 < len(b) && b[ix+1] == '\n' {
			ix++
		}
		b = b[ix+1:]
	}
	return lines
}
