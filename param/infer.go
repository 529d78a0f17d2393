package param

import (
	"regexp"
	"strings"

	"github.com/zostay/go-vcard/charset"
)

// encodings are the values of ENCODING that may appear without a name.
var encodings = map[string]struct{}{
	"7BIT":             {},
	"8BIT":             {},
	"BASE64":           {},
	"B":                {},
	"QUOTED-PRINTABLE": {},
}

// valueTypes are the values of VALUE that may appear without a name.
var valueTypes = map[string]struct{}{
	"BINARY":           {},
	"BOOLEAN":          {},
	"CID":              {},
	"CONTENT-ID":       {},
	"DATE":             {},
	"DATE-AND-OR-TIME": {},
	"DATE-TIME":        {},
	"FLOAT":            {},
	"INLINE":           {},
	"INTEGER":          {},
	"LANGUAGE-TAG":     {},
	"TEXT":             {},
	"TIME":             {},
	"TIMESTAMP":        {},
	"URI":              {},
	"URL":              {},
	"UTC-OFFSET":       {},
	"VCARD":            {},
}

// typeKeywords are the TYPE values of the legacy revision. They are never
// read as character set names, even where a character set registry knows
// the word.
var typeKeywords = map[string]struct{}{
	"AIFF": {}, "AOL": {}, "APPLELINK": {}, "ATTMAIL": {}, "AVI": {},
	"BBS": {}, "BMP": {}, "CAR": {}, "CELL": {}, "CGM": {}, "CIS": {},
	"DIB": {}, "DOM": {}, "EWORLD": {}, "FAX": {}, "GIF": {}, "HOME": {},
	"IBMMAIL": {}, "INTERNET": {}, "INTL": {}, "ISDN": {}, "JPEG": {},
	"MCIMAIL": {}, "MET": {}, "MODEM": {}, "MPEG": {}, "MPEG2": {}, "MSG": {},
	"PAGER": {}, "PARCEL": {}, "PCM": {}, "PDF": {}, "PGP": {}, "PICT": {},
	"PMB": {}, "POSTAL": {}, "POWERSHARE": {}, "PREF": {}, "PRODIGY": {},
	"PS": {}, "QTIME": {}, "TIFF": {}, "TLX": {}, "VIDEO": {}, "VOICE": {},
	"WAVE": {}, "WMF": {}, "WORK": {}, "X400": {}, "X509": {},
}

// languageTag matches the language tags that show up as shorthand, e.g.
// "en-US" or "fr-CA".
var languageTag = regexp.MustCompile(`^[a-zA-Z]{2,3}-[a-zA-Z]{2}$`)

// Infer guesses the name of a parameter given only its value, as the legacy
// revision allows. The keyword tables are checked in order: encoding, value
// type, character set, and language. Anything else is a TYPE, so that a bare
// "JPEG" or "HOME" reads as a type.
func Infer(value string) string {
	v := strings.ToUpper(strings.TrimSpace(unquote(value)))
	if _, ok := encodings[v]; ok {
		return Encoding
	}
	if _, ok := valueTypes[v]; ok {
		return Value
	}
	if _, ok := typeKeywords[v]; ok {
		return Type
	}
	if charset.Known(v) {
		return Charset
	}
	if languageTag.MatchString(v) {
		return Language
	}
	return Type
}
