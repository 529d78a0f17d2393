package transfer

import (
	"bufio"
	"bytes"
	"io"
	"mime/quotedprintable"
	"strings"
)

// NewQuotedPrintableEncoder will transform all bytes written to the returned
// io.WriteCloser into quoted-printable form and write them to the given
// io.Writer. Line breaks in the input are encoded rather than passed through,
// so the only physical line breaks in the output are soft breaks.
func NewQuotedPrintableEncoder(w io.Writer) io.WriteCloser {
	qpw := quotedprintable.NewWriter(w)
	qpw.Binary = true
	return &writer{qpw, qpw}
}

// NewQuotedPrintableDecoder will read bytes from the given io.Reader and return
// them in the returned io.Reader after decoding them from quoted-printable
// format. Soft line breaks ending in either CRLF or a bare LF are removed,
// including those with spaces or tabs between the '=' and the line break.
func NewQuotedPrintableDecoder(r io.Reader) io.Reader {
	return quotedprintable.NewReader(&lineTrimmer{r: bufio.NewReader(r)})
}

// lineTrimmer strips the spaces and tabs at the end of every line it reads.
type lineTrimmer struct {
	r   *bufio.Reader
	buf []byte
	err error
}

func (t *lineTrimmer) Read(p []byte) (int, error) {
	for len(t.buf) == 0 {
		if t.err != nil {
			return 0, t.err
		}

		var line []byte
		line, t.err = t.r.ReadBytes('\n')
		t.buf = trimLine(line)
	}

	n := copy(p, t.buf)
	t.buf = t.buf[n:]
	return n, nil
}

// trimLine removes the spaces and tabs in front of the line's break.
func trimLine(line []byte) []byte {
	body := bytes.TrimRight(line, "\r\n")
	eol := line[len(body):]
	body = bytes.TrimRight(body, " \t")

	out := make([]byte, 0, len(body)+len(eol))
	out = append(out, body...)
	return append(out, eol...)
}

// HasSoftBreak returns true if the line, ignoring trailing whitespace, ends
// with a bare '=' and so continues on the next physical line.
func HasSoftBreak(line []byte) bool {
	line = bytes.TrimRight(line, " \t\r\n")
	return len(line) > 0 && line[len(line)-1] == '='
}

// SoftBreaks replaces the CRLF soft line breaks written by the
// quoted-printable encoder with the given line break.
func SoftBreaks(s string, lbr string) string {
	if lbr == "\r\n" {
		return s
	}
	return strings.ReplaceAll(s, "=\r\n", "="+lbr)
}
