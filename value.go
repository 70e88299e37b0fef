package respstream

import (
	"bytes"
	"strconv"
)

// Value is a single decoded or encodable RESP value.
//
// Kind selects which payload field is meaningful: Str for TypeSimpleString and TypeError, Int for TypeInteger,
// Bulk for TypeBulkString and Elems for TypeArray. A nil Bulk or Elems slice represents the null bulk string or
// null array, which the protocol distinguishes from the empty one.
//
// A Value returned by a Parser owns its payload exclusively and is never touched by the Parser again.
type Value struct {
	Kind  Type
	Str   string
	Int   int64
	Bulk  []byte
	Elems []Value
}

// SimpleString returns a simple string Value.
//
// The string must not contain \r or \n. Appending a string that does produces invalid protocol output.
func SimpleString(s string) Value {
	return Value{Kind: TypeSimpleString, Str: s}
}

// Error returns an error Value.
//
// The string must not contain \r or \n. Appending a string that does produces invalid protocol output.
func Error(s string) Value {
	return Value{Kind: TypeError, Str: s}
}

// Integer returns an integer Value.
func Integer(n int64) Value {
	return Value{Kind: TypeInteger, Int: n}
}

// BulkString returns a bulk string Value. A nil b yields the null bulk string.
func BulkString(b []byte) Value {
	return Value{Kind: TypeBulkString, Bulk: b}
}

// Array returns an array Value. A nil elems yields the null array.
func Array(elems []Value) Value {
	return Value{Kind: TypeArray, Elems: elems}
}

// Command returns an array of bulk strings as used for Redis commands.
func Command(args ...[]byte) Value {
	elems := make([]Value, len(args))
	for i, arg := range args {
		elems[i] = BulkString(arg)
	}
	return Array(elems)
}

// IsNull reports whether v is the null bulk string or the null array.
//
// The null bulk string is distinct from the empty one ($-1 vs $0 on the wire), as is the null array (*-1 vs *0).
func (v Value) IsNull() bool {
	switch v.Kind {
	case TypeBulkString:
		return v.Bulk == nil
	case TypeArray:
		return v.Elems == nil
	}
	return false
}

// Equal reports whether v and w are structurally equal, distinguishing null from empty bulk strings and arrays.
func (v Value) Equal(w Value) bool {
	if v.Kind != w.Kind {
		return false
	}

	switch v.Kind {
	case TypeSimpleString, TypeError:
		return v.Str == w.Str
	case TypeInteger:
		return v.Int == w.Int
	case TypeBulkString:
		if v.IsNull() != w.IsNull() {
			return false
		}
		return bytes.Equal(v.Bulk, w.Bulk)
	case TypeArray:
		if v.IsNull() != w.IsNull() || len(v.Elems) != len(w.Elems) {
			return false
		}
		for i := range v.Elems {
			if !v.Elems[i].Equal(w.Elems[i]) {
				return false
			}
		}
		return true
	}
	return true
}

var (
	nullBulkStringBytes = []byte("$-1\r\n")
	nullArrayBytes      = []byte("*-1\r\n")
)

// Append appends the wire encoding of v to buf and returns the extended buffer.
//
// Any in-memory Value is encodable; Append has no failure modes.
func (v Value) Append(buf []byte) []byte {
	switch v.Kind {
	case TypeSimpleString, TypeError:
		buf = append(buf, byte(v.Kind))
		buf = append(buf, v.Str...)
		buf = append(buf, '\r', '\n')
	case TypeInteger:
		buf = append(buf, byte(TypeInteger))
		buf = strconv.AppendInt(buf, v.Int, 10)
		buf = append(buf, '\r', '\n')
	case TypeBulkString:
		if v.Bulk == nil {
			buf = append(buf, nullBulkStringBytes...)
			break
		}
		buf = append(buf, byte(TypeBulkString))
		buf = strconv.AppendUint(buf, uint64(len(v.Bulk)), 10)
		buf = append(buf, '\r', '\n')
		buf = append(buf, v.Bulk...)
		buf = append(buf, '\r', '\n')
	case TypeArray:
		if v.Elems == nil {
			buf = append(buf, nullArrayBytes...)
			break
		}
		buf = append(buf, byte(TypeArray))
		buf = strconv.AppendUint(buf, uint64(len(v.Elems)), 10)
		buf = append(buf, '\r', '\n')
		for _, e := range v.Elems {
			buf = e.Append(buf)
		}
	}
	return buf
}

// Marshal returns the wire encoding of v.
func Marshal(v Value) []byte {
	return v.Append(nil)
}
