//go:build go1.18
// +build go1.18

package flate

import (
	"bytes"
	"compress/flate"
	"io"
	"testing"
)

func FuzzInflate(f *testing.F) {
	f.Add([]byte("hello, hello, hello"), uint8(1), uint8(1))
	f.Add(bytes.Repeat([]byte{0, 1, 2, 3}, 3000), uint8(7), uint8(200))
	f.Fuzz(func(t *testing.T, source []byte, in, out uint8) {
		input := compress(source)
		got, n, err := inflateChunked(NewInflater(), input, int(in)+1, int(out)+1)
		if err != nil {
			t.Fatal(err)
		}
		if n != len(input) || !bytes.Equal(got, source) {
			t.Fatal("round trip differs", n, len(input))
		}
	})
}

// FuzzInflateCorrupt feeds arbitrary bytes and checks that the result agrees
// with the standard library.
func FuzzInflateCorrupt(f *testing.F) {
	f.Add(compress([]byte("some data some data")))
	f.Add([]byte{0x07})
	f.Fuzz(func(t *testing.T, stream []byte) {
		want, wantErr := io.ReadAll(flate.NewReader(bytes.NewReader(stream)))
		got, _, err := inflateChunked(NewInflater(), stream, 3, 5)
		if (err == nil) != (wantErr == nil) {
			t.Fatalf("error mismatch: %v, std: %v", err, wantErr)
		}
		if err == nil && !bytes.Equal(got, want) {
			t.Fatal("output differs from the standard library")
		}
	})
}
