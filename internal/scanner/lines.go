// Package scanner holds the bufio.SplitFunc used to read physical lines.
package scanner

import (
	"bytes"
)

// Lines is a bufio.SplitFunc provider that breaks input into physical lines
// terminated by CRLF, LF, or a bare CR. The terminator is not part of the
// token. The first terminator seen is remembered so that output can use the
// same one.
type Lines struct {
	brk []byte
}

// Break returns the first line terminator seen or nil if none has been seen
// yet.
func (l *Lines) Break() []byte {
	return l.brk
}

// Split implements bufio.SplitFunc.
func (l *Lines) Split(data []byte, atEOF bool) (int, []byte, error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}

	ix := bytes.IndexAny(data, "\r\n")
	if ix < 0 {
		if atEOF {
			return len(data), data, nil
		}
		return 0, nil, nil
	}

	size := 1
	if data[ix] == '\r' {
		if ix+1 == len(data) && !atEOF {
			// a CR at the end of the buffer might be the start of a CRLF
			return 0, nil, nil
		}
		if ix+1 < len(data) && data[ix+1] == '\n' {
			size = 2
		}
	}

	if l.brk == nil {
		l.brk = append([]byte{}, data[ix:ix+size]...)
	}

	return ix + size, data[:ix], nil
}
