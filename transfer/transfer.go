package transfer

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Values of the ENCODING parameter, lower-cased.
const (
	None            = ""                 // bytes will be left as-is
	Bit7            = "7bit"             // bytes will be left as-is
	Bit8            = "8bit"             // bytes will be left as-is
	Binary          = "binary"           // bytes will be left as-is
	QuotedPrintable = "quoted-printable" // bytes will be transformed between quoted-printable and binary data
	Base64          = "base64"           // bytes will be transformed between base64 and binary data
	B               = "b"                // the intermediate revision's name for base64
)

var (
	// ErrUnknownEncoding is returned by DecodeString and EncodeString when
	// the encoding is not listed in Transcodings.
	ErrUnknownEncoding = errors.New("unknown transfer encoding")
)

// Transcoding is a pair of functions that can be used to transform to and from
// a transfer encoding.
type Transcoding struct {
	// Encoder returns an io.WriteCloser, which will encode binary data and
	// write the encoded form to the given io.Writer. You must call Close() on
	// the returned io.WriteCloser when you are finished.
	Encoder func(io.Writer) io.WriteCloser

	// Decoder returns an io.Reader, which will read from the given io.Reader
	// when read and decode the encoded data back into binary form.
	Decoder func(io.Reader) io.Reader
}

// AsIsTranscoder is just a shortcut to a no-op encoder/decoder.
var AsIsTranscoder = Transcoding{NewAsIsEncoder, NewAsIsDecoder}

// Transcodings defines the supported transfer encodings and how to handle
// them. It can be modified to change the global handling of transfer
// encodings.
var Transcodings = map[string]Transcoding{
	None:            AsIsTranscoder,
	Bit7:            AsIsTranscoder,
	Bit8:            AsIsTranscoder,
	Binary:          AsIsTranscoder,
	QuotedPrintable: {NewQuotedPrintableEncoder, NewQuotedPrintableDecoder},
	Base64:          {NewBase64Encoder, NewBase64Decoder},
	B:               {NewBase64Encoder, NewBase64Decoder},
}

// Lookup finds the Transcoding for an ENCODING parameter value. The name is
// matched case-insensitively.
func Lookup(encoding string) (Transcoding, bool) {
	tc, ok := Transcodings[strings.ToLower(strings.TrimSpace(encoding))]
	return tc, ok
}

// IsBase64 returns true for either spelling of base64.
func IsBase64(encoding string) bool {
	switch strings.ToLower(strings.TrimSpace(encoding)) {
	case Base64, B:
		return true
	}
	return false
}

// IsQuotedPrintable returns true if the encoding names quoted-printable.
func IsQuotedPrintable(encoding string) bool {
	return strings.EqualFold(strings.TrimSpace(encoding), QuotedPrintable)
}

// DecodeString decodes an encoded property value.
func DecodeString(encoding, s string) ([]byte, error) {
	if IsBase64(encoding) {
		return DecodeBase64(s)
	}

	tc, ok := Lookup(encoding)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownEncoding, encoding)
	}

	b, err := io.ReadAll(tc.Decoder(strings.NewReader(s)))
	if err != nil {
		return nil, fmt.Errorf("unable to decode %s value: %w", encoding, err)
	}
	return b, nil
}

// EncodeString encodes raw bytes for use as a property value. Base64 output is
// a single unbroken line; folding is left to the caller.
func EncodeString(encoding string, b []byte) (string, error) {
	tc, ok := Lookup(encoding)
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownEncoding, encoding)
	}

	if IsBase64(encoding) {
		return EncodeBase64(b), nil
	}

	var buf bytes.Buffer
	wc := tc.Encoder(&buf)
	if _, err := wc.Write(b); err != nil {
		return "", err
	}
	if err := wc.Close(); err != nil {
		return "", err
	}
	return buf.String(), nil
}
