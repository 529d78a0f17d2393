package property

import (
	"mime"
	"strings"
)

// typeTokens maps the media type tokens found in the TYPE parameter of the
// legacy and intermediate revisions to full media types.
var typeTokens = map[string]string{
	"GIF":   "image/gif",
	"JPEG":  "image/jpeg",
	"JPG":   "image/jpeg",
	"PNG":   "image/png",
	"BMP":   "image/bmp",
	"TIFF":  "image/tiff",
	"PICT":  "image/x-pict",
	"CGM":   "image/cgm",
	"WMF":   "image/x-wmf",
	"MET":   "image/x-met",
	"PMB":   "image/x-pmb",
	"DIB":   "image/x-dib",
	"PS":    "application/postscript",
	"PDF":   "application/pdf",
	"MPEG":  "video/mpeg",
	"MPEG2": "video/mpeg",
	"AVI":   "video/x-msvideo",
	"QTIME": "video/quicktime",
	"WAVE":  "audio/wav",
	"WAV":   "audio/wav",
	"PCM":   "audio/basic",
	"AIFF":  "audio/aiff",
	"MP3":   "audio/mpeg",
	"OGG":   "audio/ogg",
	"X509":  "application/x-x509-ca-cert",
	"PGP":   "application/pgp-keys",
}

// mediaTokens is the reverse of typeTokens, preferring the first token
// listed for each media type.
var mediaTokens = map[string]string{
	"image/gif":                  "GIF",
	"image/jpeg":                 "JPEG",
	"image/png":                  "PNG",
	"image/bmp":                  "BMP",
	"image/tiff":                 "TIFF",
	"image/x-pict":               "PICT",
	"image/cgm":                  "CGM",
	"image/x-wmf":                "WMF",
	"image/x-met":                "MET",
	"image/x-pmb":                "PMB",
	"image/x-dib":                "DIB",
	"application/postscript":     "PS",
	"application/pdf":            "PDF",
	"video/mpeg":                 "MPEG",
	"video/x-msvideo":            "AVI",
	"video/quicktime":            "QTIME",
	"audio/wav":                  "WAVE",
	"audio/basic":                "PCM",
	"audio/aiff":                 "AIFF",
	"audio/mpeg":                 "MP3",
	"audio/ogg":                  "OGG",
	"application/x-x509-ca-cert": "X509",
	"application/pgp-keys":       "PGP",
}

// MediaType turns a TYPE token such as "JPEG" into a media type such as
// "image/jpeg". A value that already looks like a media type is lower-cased
// and returned. Tokens missing from the table are tried as file extensions.
// An empty string is returned when nothing matches.
func MediaType(token string) string {
	token = strings.TrimSpace(token)
	if token == "" {
		return ""
	}

	if strings.ContainsRune(token, '/') {
		return strings.ToLower(token)
	}

	if mt, ok := typeTokens[strings.ToUpper(token)]; ok {
		return mt
	}

	if mt := mime.TypeByExtension("." + strings.ToLower(token)); mt != "" {
		if base, _, err := mime.ParseMediaType(mt); err == nil {
			return base
		}
	}

	return ""
}

// TypeToken is the inverse of MediaType. It returns an empty string when the
// media type has no known token.
func TypeToken(mediaType string) string {
	mediaType = strings.ToLower(strings.TrimSpace(mediaType))
	if base, _, err := mime.ParseMediaType(mediaType); err == nil {
		mediaType = base
	}

	if tok, ok := mediaTokens[mediaType]; ok {
		return tok
	}

	if exts, err := mime.ExtensionsByType(mediaType); err == nil && len(exts) > 0 {
		return strings.ToUpper(strings.TrimPrefix(exts[0], "."))
	}

	return ""
}
