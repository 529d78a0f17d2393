package transfer

import (
	"encoding/base64"
	"io"
	"strings"
)

// DefaultBase64LineLength is the length of the encoded lines written by
// NewBase64LineEncoder when no other length is given.
const DefaultBase64LineLength = 72

type newlineWriter struct {
	every int
	acc   int
	lbr   []byte
	w     io.Writer
}

func (nw *newlineWriter) Write(b []byte) (int, error) {
	n := 0
	for len(b)+nw.acc > nw.every {
		chunk := nw.every - nw.acc
		ln, err := nw.w.Write(b[:chunk])
		n += ln
		if err != nil {
			return n, err
		}

		if _, err = nw.w.Write(nw.lbr); err != nil {
			return n, err
		}

		b = b[chunk:]
		nw.acc = 0
	}

	ln, err := nw.w.Write(b)
	n += ln
	nw.acc += ln
	return n, err
}

// NewBase64Encoder will translate all bytes written to the returned
// io.WriteCloser into base64 encoding and write those to the given io.Writer
// as a single line.
func NewBase64Encoder(w io.Writer) io.WriteCloser {
	enc := base64.NewEncoder(base64.StdEncoding, w)
	return &writer{enc, enc}
}

// NewBase64LineEncoder is like NewBase64Encoder, but writes lbr after every
// lineLength bytes of output. The legacy revision uses this to write binary
// values as a block of indented lines. A lineLength less than 4 is replaced
// with DefaultBase64LineLength.
func NewBase64LineEncoder(w io.Writer, lineLength int, lbr []byte) io.WriteCloser {
	if lineLength < 4 {
		lineLength = DefaultBase64LineLength
	}
	enc := base64.NewEncoder(base64.StdEncoding, &newlineWriter{
		every: lineLength,
		lbr:   lbr,
		w:     w,
	})
	return &writer{enc, enc}
}

// NewBase64Decoder will translate all bytes read from the given io.Reader as
// base64 and return the binary data to the returned io.Reader. Whitespace in
// the input is skipped.
func NewBase64Decoder(r io.Reader) io.Reader {
	return base64.NewDecoder(base64.StdEncoding, &spaceSkipper{r})
}

type spaceSkipper struct {
	r io.Reader
}

func (s *spaceSkipper) Read(p []byte) (int, error) {
	for {
		n, err := s.r.Read(p)
		j := 0
		for _, c := range p[:n] {
			if !isSpace(c) {
				p[j] = c
				j++
			}
		}
		if j > 0 || err != nil {
			return j, err
		}
	}
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\n'
}

// DecodeBase64 decodes a base64 value, which may be broken over many lines
// or be missing its padding.
func DecodeBase64(s string) ([]byte, error) {
	s = strings.Map(func(c rune) rune {
		if c < 0x80 && isSpace(byte(c)) {
			return -1
		}
		return c
	}, s)

	if len(s)%4 != 0 {
		return base64.RawStdEncoding.DecodeString(strings.TrimRight(s, "="))
	}
	return base64.StdEncoding.DecodeString(s)
}

// EncodeBase64 encodes b as a single line of base64.
func EncodeBase64(b []byte) string {
	return base64.StdEncoding.EncodeToString(b)
}
