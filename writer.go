package respstream

import "io"

// Writer wraps an io.Writer and writes RESP values to it.
type Writer struct {
	w   io.Writer
	buf []byte
}

// NewWriter returns a *Writer that uses the given io.Writer for writes.
func NewWriter(w io.Writer) *Writer {
	var rw Writer
	rw.Reset(w)
	return &rw
}

var _ io.Writer = (*Writer)(nil)

// Reset sets the underlying io.Writer to w and resets all internal state.
func (rw *Writer) Reset(w io.Writer) {
	rw.buf = rw.buf[:0]
	rw.w = w
}

// Write allows writing raw data to the underlying io.Writer.
//
// It implements the io.Writer interface.
func (rw *Writer) Write(p []byte) (int, error) {
	return rw.w.Write(p)
}

// WriteValue writes the wire encoding of v, including all nested values, in a single call to the underlying
// io.Writer.
func (rw *Writer) WriteValue(v Value) (int, error) {
	rw.buf = v.Append(rw.buf[:0])
	return rw.w.Write(rw.buf)
}
