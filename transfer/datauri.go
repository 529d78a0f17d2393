package transfer

import (
	"errors"
	"net/url"
	"strings"
)

const dataScheme = "data:"

// DefaultDataMediaType is the media type of a data URL that does not name
// one.
const DefaultDataMediaType = "text/plain"

var (
	// ErrNotDataURI is returned by ParseDataURI when the value does not use
	// the data scheme.
	ErrNotDataURI = errors.New("value is not a data URL")

	// ErrNoDataPayload is returned by ParseDataURI when there is no comma
	// separating the header from the payload.
	ErrNoDataPayload = errors.New("data URL has no payload separator")
)

// DataURI is a parsed data URL.
type DataURI struct {
	// MediaType is the media type named in the header, lower-cased, or
	// DefaultDataMediaType when none is given.
	MediaType string

	// Params holds the header parameters as name=value strings, in order.
	Params []string

	// Base64 is true when the payload was (or will be) base64 encoded.
	Base64 bool

	// Data is the decoded payload.
	Data []byte
}

// IsDataURI returns true if the value starts with the data scheme.
func IsDataURI(s string) bool {
	return len(s) >= len(dataScheme) && strings.EqualFold(s[:len(dataScheme)], dataScheme)
}

// ParseDataURI parses a data URL. Property values in the current revision are
// sometimes escaped as a whole, so a backslash in front of a comma or
// semicolon in the header is dropped and the first comma, escaped or not,
// ends the header.
func ParseDataURI(s string) (*DataURI, error) {
	if !IsDataURI(s) {
		return nil, ErrNotDataURI
	}

	rest := s[len(dataScheme):]
	var header strings.Builder
	payload := -1
	for i := 0; i < len(rest); i++ {
		c := rest[i]
		if c == '\\' && i+1 < len(rest) && (rest[i+1] == ',' || rest[i+1] == ';') {
			i++
			c = rest[i]
		}
		if c == ',' {
			payload = i + 1
			break
		}
		header.WriteByte(c)
	}

	if payload < 0 {
		return nil, ErrNoDataPayload
	}

	d := &DataURI{MediaType: DefaultDataMediaType}
	parts := strings.Split(header.String(), ";")
	if mt := strings.TrimSpace(parts[0]); mt != "" {
		d.MediaType = strings.ToLower(mt)
	}

	for _, p := range parts[1:] {
		p = strings.TrimSpace(p)
		switch {
		case strings.EqualFold(p, Base64):
			d.Base64 = true
		case p != "":
			d.Params = append(d.Params, p)
		}
	}

	body := rest[payload:]
	var err error
	if d.Base64 {
		d.Data, err = DecodeBase64(body)
	} else {
		var text string
		text, err = url.PathUnescape(body)
		d.Data = []byte(text)
	}
	if err != nil {
		return nil, err
	}

	return d, nil
}

// Param returns the value of the named header parameter, matching the name
// case-insensitively.
func (d *DataURI) Param(name string) string {
	for _, p := range d.Params {
		if ix := strings.IndexByte(p, '='); ix >= 0 && strings.EqualFold(p[:ix], name) {
			return p[ix+1:]
		}
	}
	return ""
}

// String returns the data URL.
func (d *DataURI) String() string {
	var buf strings.Builder
	buf.WriteString(dataScheme)
	buf.WriteString(d.MediaType)
	for _, p := range d.Params {
		buf.WriteByte(';')
		buf.WriteString(p)
	}

	if d.Base64 {
		buf.WriteString(";base64,")
		buf.WriteString(EncodeBase64(d.Data))
	} else {
		buf.WriteByte(',')
		buf.WriteString(url.PathEscape(string(d.Data)))
	}

	return buf.String()
}
