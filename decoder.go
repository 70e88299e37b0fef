package respstream

import "io"

// Decoder reads whole RESP values from an io.Reader.
//
// Decoder is a convenience wrapper for callers that have an io.Reader at hand; it reads chunks and hands them to
// an embedded Parser. Callers that receive bytes some other way should use a Parser directly.
type Decoder struct {
	// Parser parses the bytes read from the underlying io.Reader. Its Limit may be set before the first call
	// to ReadValue.
	Parser Parser

	r     io.Reader
	chunk []byte
	queue []Value
}

// NewDecoder returns a *Decoder that uses the given io.Reader for reads.
func NewDecoder(r io.Reader) *Decoder {
	var d Decoder
	d.Reset(r)
	return &d
}

// Reset sets the underlying io.Reader to r and resets all internal state.
func (d *Decoder) Reset(r io.Reader) {
	d.r = r
	d.Parser.Reset()
	d.queue = d.queue[:0]
}

// ReadValue returns the next value from the stream, reading from the underlying io.Reader as needed.
//
// If the stream ends cleanly between values, ReadValue returns io.EOF. If it ends in the middle of a value,
// ReadValue returns ErrUnexpectedEOL.
func (d *Decoder) ReadValue() (Value, error) {
	for len(d.queue) == 0 {
		if d.chunk == nil {
			d.chunk = make([]byte, 4096)
		}

		n, err := d.r.Read(d.chunk)
		if n > 0 {
			vs, perr := d.Parser.Feed(d.chunk[:n])
			if perr != nil {
				return Value{}, perr
			}
			d.queue = append(d.queue, vs...)
		}
		if err != nil && len(d.queue) == 0 {
			if err == io.EOF && d.Parser.Pending() {
				return Value{}, ErrUnexpectedEOL
			}
			return Value{}, err
		}
	}

	v := d.queue[0]
	d.queue[0] = Value{} // drop the reference so the backing array does not pin the value
	d.queue = d.queue[1:]
	return v, nil
}
