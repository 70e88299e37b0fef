package respstream_test

import (
	"bytes"
	"io"
	"testing"

	"github.com/nussjustin/respstream"
)

func assertBytes(tb testing.TB, got []byte, expected string) {
	tb.Helper()

	if gotstr := string(got); gotstr != expected {
		tb.Errorf("write failed. got %q, expected %q", gotstr, expected)
	}
}

func mustWrite(tb testing.TB, w io.Writer, b []byte) {
	tb.Helper()

	if n, err := w.Write(b); err != nil {
		tb.Fatalf("write failed: %s", err)
	} else if n < len(b) {
		tb.Fatalf("failed to write all bytes. wrote %d, expected %d", n, len(b))
	}
}

func TestWriterWriteValue(t *testing.T) {
	for _, test := range []struct {
		Name     string
		Value    respstream.Value
		Expected string
	}{
		{"simple string", respstream.SimpleString("OK"), "+OK\r\n"},
		{"error", respstream.Error("ERR unknown command"), "-ERR unknown command\r\n"},
		{"integer", respstream.Integer(-1), ":-1\r\n"},
		{"bulk string", respstream.BulkString([]byte("hello")), "$5\r\nhello\r\n"},
		{"null bulk string", respstream.BulkString(nil), "$-1\r\n"},
		{"null array", respstream.Array(nil), "*-1\r\n"},
		{
			"command", respstream.Command([]byte("SET"), []byte("key"), []byte("value")),
			"*3\r\n$3\r\nSET\r\n$3\r\nkey\r\n$5\r\nvalue\r\n",
		},
	} {
		test := test

		t.Run(test.Name, func(t *testing.T) {
			var buf bytes.Buffer
			w := respstream.NewWriter(&buf)

			if n, err := w.WriteValue(test.Value); err != nil {
				t.Fatalf("write failed: %s", err)
			} else if n != len(test.Expected) {
				t.Errorf("wrote %d bytes, expected %d", n, len(test.Expected))
			}

			assertBytes(t, buf.Bytes(), test.Expected)
		})
	}
}

func TestWriterWrite(t *testing.T) {
	var buf bytes.Buffer
	w := respstream.NewWriter(&buf)

	mustWrite(t, w, []byte("raw bytes"))
	assertBytes(t, buf.Bytes(), "raw bytes")
}

func TestWriterReset(t *testing.T) {
	var b1 bytes.Buffer
	w := respstream.NewWriter(&b1)

	if _, err := w.WriteValue(respstream.SimpleString("hello")); err != nil {
		t.Fatalf("write failed: %s", err)
	}

	var b2 bytes.Buffer
	w.Reset(&b2)

	if _, err := w.WriteValue(respstream.SimpleString("world")); err != nil {
		t.Fatalf("write failed: %s", err)
	}

	assertBytes(t, b1.Bytes(), "+hello\r\n")
	assertBytes(t, b2.Bytes(), "+world\r\n")
}

func benchmarkWriterWriteValue(b *testing.B, v respstream.Value) {
	w := respstream.NewWriter(io.Discard)
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		if _, err := w.WriteValue(v); err != nil {
			b.Fatalf("write failed: %s", err)
		}
	}
}

func BenchmarkWriterWriteValue(b *testing.B) {
	b.Run("SimpleString", func(b *testing.B) { benchmarkWriterWriteValue(b, respstream.SimpleString("OK")) })
	b.Run("Command", func(b *testing.B) { benchmarkWriterWriteValue(b, respstream.Command([]byte("GET"), []byte("key"))) })
}
