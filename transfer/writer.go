package transfer

import "io"

// writer pairs the destination of an encoder with the encoder that must be
// closed to flush its last line. Closer is nil for encodings that buffer
// nothing.
type writer struct {
	io.Writer
	io.Closer
}

// Close flushes the encoder, if there is one.
func (w *writer) Close() error {
	if w.Closer == nil {
		return nil
	}
	return w.Closer.Close()
}
