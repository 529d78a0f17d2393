package transfer

import "io"

// NewAsIsEncoder returns the encoder for the 7bit, 8bit, and binary
// encodings, and for values with no ENCODING at all. Property values pass
// through unchanged.
func NewAsIsEncoder(w io.Writer) io.WriteCloser {
	return &writer{Writer: w}
}

// NewAsIsDecoder returns the decoder matching NewAsIsEncoder.
func NewAsIsDecoder(r io.Reader) io.Reader {
	return r
}
