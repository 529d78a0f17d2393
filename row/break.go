package row

// Break represents the line terminator used by a stream of rows.
type Break string

// Constants for use when selecting a line break. If you don't know what to
// pick, choose CRLF.
const (
	Meh  Break = ""         // Sometimes it doesn't matter
	CRLF Break = "\x0d\x0a" // \r\n - Network linebreak
	LF   Break = "\x0a"     // \n - Unix/Linux/BSD linebreak
	CR   Break = "\x0d"     // \r - Commodores/old Macs linebreak
)

// String returns the break as a string.
func (b Break) String() string {
	return string(b)
}

// Bytes returns the break as a slice of bytes.
func (b Break) Bytes() []byte {
	return []byte(b)
}

// OrDefault returns CRLF for Meh and the break itself otherwise.
func (b Break) OrDefault() Break {
	if b == Meh {
		return CRLF
	}
	return b
}
