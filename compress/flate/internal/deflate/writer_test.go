// Copyright (c) 2024, Intel Corporation.
// SPDX-License-Identifier: BSD-3-Clause

package deflate

import (
	"bytes"
	"compress/flate"
	"io"
	"testing"

	"github.com/stretchr/testify/require"
)

func stdInflate(t *testing.T, stream []byte) []byte {
	t.Helper()
	data, err := io.ReadAll(flate.NewReader(bytes.NewReader(stream)))
	require.NoError(t, err)
	return data
}

func appendMatch(dst []byte, length, dist int) []byte {
	for i := 0; i < length; i++ {
		dst = append(dst, dst[len(dst)-dist])
	}
	return dst
}

// completeLens returns code lengths of a complete code over 286
// literal/length and 30 distance symbols.
func completeLens() (litLens, distLens []uint8) {
	litLens = make([]uint8, 286)
	for i := range litLens {
		litLens[i] = 8
		if i >= 226 {
			litLens[i] = 9
		}
	}
	distLens = make([]uint8, 30)
	for i := range distLens {
		distLens[i] = 5
		if i < 2 {
			distLens[i] = 4
		}
	}
	return litLens, distLens
}

func TestBitBuf(t *testing.T) {
	var b BitBuf
	b.WriteBits(0b1, 1)
	b.WriteBits(0b10, 2)
	b.WriteBits(0xff, 4) // only the low 4 bits count
	require.Equal(t, 7, b.BitLen())
	require.Equal(t, []byte{0x7d}, b.Bytes())

	b.WriteBits(0xabcd, 16)
	require.Equal(t, 23, b.BitLen())
	b.Sync()
	require.Equal(t, 24, b.BitLen())
	b.WriteBytes([]byte{0x42})
	require.Equal(t, []byte{0xfd, 0xe6, 0x55, 0x42}, b.Bytes())

	b.Reset()
	require.Empty(t, b.Bytes())
}

func TestStored(t *testing.T) {
	for _, size := range []int{0, 1, 100, maxStoredBlock, maxStoredBlock + 1, 3*maxStoredBlock + 7} {
		data := bytes.Repeat([]byte("stored"), size/6+1)[:size]
		w := NewStreamWriter()
		w.Stored(true, data)
		require.Equal(t, data, stdInflate(t, w.Bytes()), "size %d", size)
	}
}

func TestFixedBlock(t *testing.T) {
	w := NewStreamWriter()
	w.FixedBlock(false)
	w.Literals([]byte("abc"))
	w.Match(9, 3)
	w.Match(258, 1)
	w.EndBlock()
	w.FixedBlock(true)
	w.Literal('z')
	w.Match(4, 271)
	w.EndBlock()

	want := []byte("abc")
	want = appendMatch(want, 9, 3)
	want = appendMatch(want, 258, 1)
	want = append(want, 'z')
	want = appendMatch(want, 4, 271)
	require.Equal(t, "abca", string(want[len(want)-4:]))
	require.Equal(t, want, stdInflate(t, w.Bytes()))
}

func TestDynamicBlock(t *testing.T) {
	litLens, distLens := completeLens()
	w := NewStreamWriter()
	w.DynamicBlock(false, litLens, distLens)
	w.Literals([]byte("hello, hello"))
	w.Match(20, 7)
	w.EndBlock()
	w.Stored(true, []byte("!"))

	want := appendMatch([]byte("hello, hello"), 20, 7)
	want = append(want, '!')
	require.Equal(t, want, stdInflate(t, w.Bytes()))
}

func TestGetSymbols(t *testing.T) {
	sym, extra, n := getLenSymbol(3)
	require.Equal(t, []uint32{257, 0}, []uint32{sym, extra})
	require.Equal(t, uint(0), n)

	sym, extra, n = getLenSymbol(12)
	require.Equal(t, []uint32{265, 1}, []uint32{sym, extra})
	require.Equal(t, uint(1), n)

	sym, _, n = getLenSymbol(258)
	require.Equal(t, uint32(285), sym)
	require.Equal(t, uint(0), n)

	sym, extra, n = getDistSymbol(32768)
	require.Equal(t, []uint32{29, 8191}, []uint32{sym, extra})
	require.Equal(t, uint(13), n)

	sym, _, _ = getDistSymbol(1)
	require.Equal(t, uint32(0), sym)
}

func TestAlphabet(t *testing.T) {
	lens := []uint8{8, 8, 8, 8, 8, 8, 8, 8, 8, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 5, 5}
	tokens := alphabet(nil, lens)
	require.Equal(t, clToken{numRepeat3_6, 3}, tokens[1])
	require.Equal(t, clToken{zeroRepeat11_138, 1}, tokens[4])

	var out []uint8
	for _, tk := range tokens {
		switch tk.sym {
		case numRepeat3_6:
			for i := 0; i < int(tk.extra)+3; i++ {
				out = append(out, out[len(out)-1])
			}
		case zeroRepeat3_10:
			out = append(out, make([]uint8, int(tk.extra)+3)...)
		case zeroRepeat11_138:
			out = append(out, make([]uint8, int(tk.extra)+11)...)
		default:
			out = append(out, tk.sym)
		}
	}
	require.Equal(t, lens, out)
}

func TestHuffmanBlock(t *testing.T) {
	// Byte i appears about 2^-i of the time, giving long codes.
	var data []byte
	for i := 0; i < 20; i++ {
		data = append(data, bytes.Repeat([]byte{byte('a' + i)}, 1<<(19-i)/16+1)...)
	}
	for _, src := range [][]byte{nil, []byte("x"), data, bytes.Repeat(data, 3)} {
		w := NewStreamWriter()
		w.HuffmanBlock(true, src)
		got := stdInflate(t, w.Bytes())
		require.True(t, bytes.Equal(src, got), "size %d", len(src))
	}
}
