package respstream

import (
	"errors"
	"fmt"
	"io"
)

var (
	// ErrUnknownTag is returned when a value starts with a byte that is not one of the five RESP type tags.
	ErrUnknownTag = errors.New("unknown RESP type tag")

	// ErrMalformedInteger is returned when an integer value or a length header is not a valid signed decimal.
	ErrMalformedInteger = errors.New("malformed integer")

	// ErrLimitExceeded is returned when a declared length or the retained buffer exceeds the configured limit.
	ErrLimitExceeded = errors.New("size limit exceeded")

	// ErrUnexpectedEOL is returned when a line does not end in \r\n, for example when a lone \r or \n is found
	// inside a simple string, error or integer line.
	ErrUnexpectedEOL = errors.New("missing or invalid EOL")
)

// Type is an enum of the known RESP types with the values of the constants being the single-byte prefix characters.
type Type byte

const (
	// TypeInvalid is the zero Type. No valid Value has it.
	TypeInvalid Type = 0
	// TypeArray signifies a RESP array.
	TypeArray Type = '*'
	// TypeBulkString signifies a RESP bulk string.
	TypeBulkString Type = '$'
	// TypeError signifies an error string.
	TypeError Type = '-'
	// TypeInteger signifies a integer.
	TypeInteger Type = ':'
	// TypeSimpleString signifies a simple string.
	TypeSimpleString Type = '+'
)

var _ fmt.Stringer = TypeInvalid

var types = [256]Type{
	TypeArray:        TypeArray,
	TypeBulkString:   TypeBulkString,
	TypeError:        TypeError,
	TypeInteger:      TypeInteger,
	TypeSimpleString: TypeSimpleString,
}

// String implements the fmt.Stringer interface.
func (t Type) String() string {
	return string(t)
}

// ReadWriter embeds a Decoder and a Writer in a single allocation for an io.ReadWriter.
//
// A single Decoder and a single Writer method can be called concurrently, given the Read and Write methods of the
// underlying io.ReadWriter are safe for concurrent use.
type ReadWriter struct {
	Decoder
	Writer
}

// NewReadWriter returns a new ReadWriter that uses the given io.ReadWriter.
func NewReadWriter(rw io.ReadWriter) *ReadWriter {
	var rrw ReadWriter
	rrw.Reset(rw)
	return &rrw
}

// Reset resets the embedded Decoder and Writer to use the given io.ReadWriter.
//
// Reset must not be called concurrently with any other method.
func (rrw *ReadWriter) Reset(rw io.ReadWriter) {
	rrw.Decoder.Reset(rw)
	rrw.Writer.Reset(rw)
}
