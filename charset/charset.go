// Package charset turns bytes in a named character set into native unicode
// strings and back. Names are looked up in the IANA registry, so pretty much
// any character set found in the wild in legacy contact files can be read.
//
// Unlike a strict decoder, Decode never fails. A name that is missing,
// unknown, or unsupported falls back to UTF-8, and bytes that are invalid in
// the chosen character set become unicode.ReplacementChar.
package charset

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	_ "golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/ianaindex"
)

// UTF8 is the default character set.
const UTF8 = "UTF-8"

var (
	// ErrUnsupported is returned by the strict functions when the named
	// character set is registered but has no encoder or decoder available.
	ErrUnsupported = errors.New("unsupported character set")
)

// Encoder transforms a native unicode string into the bytes of the named
// character set.
type Encoder func(charset, s string) ([]byte, error)

// Decoder transforms bytes in the named character set into a native unicode
// string.
type Decoder func(charset string, b []byte) (string, error)

var (
	// CharsetEncoder is the Encoder used by Encode. It may be replaced.
	CharsetEncoder Encoder = IANACharsetEncoder

	// CharsetDecoder is the Decoder used by Decode. It may be replaced.
	CharsetDecoder Decoder = IANACharsetDecoder
)

// IANACharsetEncoder encodes s using the IANA registered character set.
func IANACharsetEncoder(charset, s string) ([]byte, error) {
	if isUTF8(charset) {
		return []byte(s), nil
	}

	e, err := ianaindex.MIME.Encoding(charset)
	if err != nil {
		return nil, err
	}

	if e == nil {
		return nil, fmt.Errorf("%w: %q", ErrUnsupported, charset)
	}

	es, err := e.NewEncoder().String(s)
	if err != nil {
		return nil, err
	}

	return []byte(es), nil
}

// IANACharsetDecoder decodes b using the IANA registered character set.
func IANACharsetDecoder(charset string, b []byte) (string, error) {
	if isUTF8(charset) {
		return DecodeUTF8(b), nil
	}

	e, err := ianaindex.MIME.Encoding(charset)
	if err != nil {
		return "", err
	}

	if e == nil {
		return "", fmt.Errorf("%w: %q", ErrUnsupported, charset)
	}

	eb, err := e.NewDecoder().Bytes(b)
	if err != nil {
		return "", err
	}

	return string(eb), nil
}

func isUTF8(charset string) bool {
	switch strings.ToLower(strings.TrimSpace(charset)) {
	case "", "utf-8", "utf8":
		return true
	}
	return false
}

// DecodeUTF8 reads b as UTF-8, replacing invalid bytes with
// unicode.ReplacementChar.
func DecodeUTF8(b []byte) string {
	if utf8.Valid(b) {
		return string(b)
	}

	var s strings.Builder
	for len(b) > 0 {
		r, size := utf8.DecodeRune(b)
		s.WriteRune(r)
		b = b[size:]
	}
	return s.String()
}

// Decode decodes b from the named character set, falling back to UTF-8 when
// the name cannot be used.
func Decode(charset string, b []byte) string {
	s, err := CharsetDecoder(charset, b)
	if err != nil {
		return DecodeUTF8(b)
	}
	return s
}

// Encode encodes s into the named character set, falling back to UTF-8 when
// the name cannot be used. The second value reports the name of the character
// set actually used.
func Encode(charset, s string) ([]byte, string) {
	b, err := CharsetEncoder(charset, s)
	if err != nil {
		return []byte(s), UTF8
	}
	return b, charset
}

// Known returns true if the name is registered with IANA.
func Known(charset string) bool {
	if isUTF8(charset) && charset != "" {
		return true
	}
	_, err := ianaindex.MIME.Encoding(charset)
	return err == nil
}
