package respstream

import (
	"errors"
	"fmt"
	"strconv"
)

// DefaultLimit is the maximum number of bytes a Parser will buffer or accept as a declared bulk string or array
// length when no explicit limit is set.
const DefaultLimit = 512 << 20 // 512 MiB

// frame is one level of an in-progress value. The Parser keeps one frame per nesting depth so that a chunk
// boundary can fall at any point inside a nested value and parsing resumes exactly where it stopped.
type frame struct {
	kind  Type // TypeInvalid until the tag byte is read
	size  int  // declared payload length or element count, valid once sized is true
	sized bool
	scan  int // offset into the retained buffer already scanned for a terminator
	elems []Value
}

// Parser incrementally parses RESP values from byte chunks of arbitrary size.
//
// Feed appends each chunk to an internal buffer and returns every value completed by it; bytes are only consumed
// once they are part of a completed token, so a message split at any byte boundary parses identically to the
// same message fed whole. On a protocol violation all internal state is discarded and the Parser is immediately
// reusable for a fresh stream.
//
// A Parser is not safe for concurrent use. Use one Parser per stream.
type Parser struct {
	// Limit caps both the declared length of a single bulk string or array and the total number of buffered
	// bytes. If zero, DefaultLimit is used.
	Limit int

	buf   []byte
	stack []frame
}

// NewParser returns a new Parser with the default limit.
func NewParser() *Parser {
	return &Parser{}
}

// Reset discards all buffered bytes and any partially parsed value.
func (p *Parser) Reset() {
	p.buf = p.buf[:0]
	p.stack = p.stack[:0]
}

// Pending reports whether the Parser holds unconsumed bytes or a partially parsed value.
func (p *Parser) Pending() bool {
	return len(p.buf) > 0 || len(p.stack) > 0
}

func (p *Parser) limit() int {
	if p.Limit > 0 {
		return p.Limit
	}
	return DefaultLimit
}

// Feed appends data to the retained buffer and returns all values completed by it, in order.
//
// An empty result is not an error: it means the buffered bytes do not yet form a complete value. A non-nil
// error means the buffered bytes can not form a valid value; the Parser resets itself and the caller decides
// whether to resynchronize or abandon the stream.
func (p *Parser) Feed(data []byte) ([]Value, error) {
	p.buf = append(p.buf, data...)

	var out []Value
	for {
		v, done, err := p.next()
		if err != nil {
			p.Reset()
			return nil, err
		}
		if !done {
			break
		}
		out = append(out, v)
	}

	// The limit applies to what must be retained for the value still being built, not to the size of the
	// chunk: a single chunk full of small complete values may be arbitrarily large.
	if len(p.buf) > p.limit() {
		p.Reset()
		return nil, ErrLimitExceeded
	}

	return out, nil
}

// next makes as much progress as the buffered bytes allow and returns the next completed top-level value, if any.
func (p *Parser) next() (Value, bool, error) {
	for {
		if len(p.stack) == 0 {
			if len(p.buf) == 0 {
				return Value{}, false, nil
			}
			p.stack = append(p.stack, frame{})
		}

		f := &p.stack[len(p.stack)-1]

		if f.kind == TypeInvalid {
			if len(p.buf) == 0 {
				return Value{}, false, nil
			}
			t := types[p.buf[0]]
			if t == TypeInvalid {
				return Value{}, false, fmt.Errorf("%w: %q", ErrUnknownTag, p.buf[0])
			}
			f.kind = t
			p.consume(1)
		}

		var v Value
		var done bool
		var err error

		switch f.kind {
		case TypeSimpleString, TypeError, TypeInteger:
			v, done, err = p.simple(f)
		case TypeBulkString:
			v, done, err = p.bulk(f)
		case TypeArray:
			if !f.sized {
				n, ok, serr := p.sizeLine(f)
				if serr != nil || !ok {
					return Value{}, false, serr
				}
				if n < 0 {
					v, done = Array(nil), true
					break
				}
				if n > int64(p.limit()) {
					return Value{}, false, ErrLimitExceeded
				}
				f.size, f.sized = int(n), true
				f.elems = []Value{}
			}
			if len(f.elems) == f.size {
				v, done = Array(f.elems), true
				break
			}
			p.stack = append(p.stack, frame{})
			continue
		}

		if err != nil {
			return Value{}, false, err
		}
		if !done {
			return Value{}, false, nil
		}

		p.stack = p.stack[:len(p.stack)-1]
		if len(p.stack) == 0 {
			return v, true, nil
		}
		p.stack[len(p.stack)-1].elems = append(p.stack[len(p.stack)-1].elems, v)
	}
}

func (p *Parser) simple(f *frame) (Value, bool, error) {
	line, ok, err := p.line(f)
	if err != nil || !ok {
		return Value{}, false, err
	}

	switch f.kind {
	case TypeSimpleString:
		return SimpleString(string(line)), true, nil
	case TypeError:
		return Error(string(line)), true, nil
	}

	n, perr := strconv.ParseInt(string(line), 10, 64)
	if perr != nil {
		return Value{}, false, fmt.Errorf("%w: %q", ErrMalformedInteger, line)
	}
	return Integer(n), true, nil
}

func (p *Parser) bulk(f *frame) (Value, bool, error) {
	if !f.sized {
		n, ok, err := p.sizeLine(f)
		if err != nil || !ok {
			return Value{}, false, err
		}
		if n < 0 {
			return BulkString(nil), true, nil
		}
		if n > int64(p.limit()) {
			return Value{}, false, ErrLimitExceeded
		}
		f.size, f.sized = int(n), true
	}

	if len(p.buf) < f.size+2 {
		return Value{}, false, nil
	}
	if p.buf[f.size] != '\r' || p.buf[f.size+1] != '\n' {
		return Value{}, false, ErrUnexpectedEOL
	}

	b := make([]byte, f.size)
	copy(b, p.buf)
	p.consume(f.size + 2)
	return BulkString(b), true, nil
}

// sizeLine parses a length header line. Negative lengths are valid and mark the null bulk string or array.
func (p *Parser) sizeLine(f *frame) (int64, bool, error) {
	line, ok, err := p.line(f)
	if err != nil || !ok {
		return 0, false, err
	}

	n, perr := strconv.ParseInt(string(line), 10, 64)
	if perr != nil {
		// All digits but out of range for int64 means a declared size far over any configurable limit.
		if errors.Is(perr, strconv.ErrRange) {
			return 0, false, ErrLimitExceeded
		}
		return 0, false, fmt.Errorf("%w: %q", ErrMalformedInteger, line)
	}
	return n, true, nil
}

// line scans the retained buffer for the CRLF terminator. If found, the line and terminator are consumed and the
// line returned. If the buffer ends before a terminator the frame remembers how far it scanned, so bytes are
// never scanned twice across Feed calls. A lone \n, or a \r followed by anything but \n, is a protocol violation.
func (p *Parser) line(f *frame) ([]byte, bool, error) {
	for i := f.scan; i < len(p.buf); i++ {
		switch p.buf[i] {
		case '\n':
			return nil, false, ErrUnexpectedEOL
		case '\r':
			if i+1 == len(p.buf) {
				f.scan = i
				return nil, false, nil
			}
			if p.buf[i+1] != '\n' {
				return nil, false, ErrUnexpectedEOL
			}
			line := p.buf[:i]
			p.consume(i + 2)
			return line, true, nil
		}
	}

	f.scan = len(p.buf)
	return nil, false, nil
}

// consume drops n parsed bytes from the front of the retained buffer.
func (p *Parser) consume(n int) {
	p.buf = p.buf[n:]
	if len(p.stack) > 0 {
		p.stack[len(p.stack)-1].scan = 0
	}
}
