// Package respstream implements an incremental parser and encoder for the Redis RESP protocol.
//
// Unlike a pull parser tied to an io.Reader, the Parser in this package is push based: callers feed it byte chunks
// of arbitrary size as they arrive and receive every value completed by those bytes, making it usable with any
// transport. Decoder and Writer wrap the Parser and the encoder for the common io.Reader / io.Writer case.
//
// All structs can be reused via the corresponding Reset method and duplex connections are supported using a
// ReadWriter type that wraps a Decoder and a Writer in a single allocation.
package respstream
