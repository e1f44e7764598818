// Copyright (c) 2024, Intel Corporation.
// SPDX-License-Identifier: BSD-3-Clause

package flate

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBitReaderPeekDrop(t *testing.T) {
	var br bitReader
	br.refill([]byte{0b10110100, 0xff})

	v, ok := br.peekBits(3)
	require.True(t, ok)
	require.Equal(t, uint32(0b100), v)
	require.Equal(t, uint(8), br.availableBits(), "only the first byte is loaded")
	br.dropBits(3)

	v, ok = br.peekBits(7)
	require.True(t, ok)
	require.Equal(t, uint32(0b11<<5|0b10110), v)
	require.Equal(t, uint(13), br.availableBits())
	require.Equal(t, 2, br.release())

	require.Panics(t, func() { br.dropBits(14) })
}

func TestBitReaderAcrossChunks(t *testing.T) {
	var br bitReader
	br.refill([]byte{0x01})
	_, ok := br.peekBits(9)
	require.False(t, ok)
	require.Equal(t, uint(8), br.availableBits())
	require.Equal(t, 1, br.release())

	br.refill(nil)
	_, ok = br.peekBits(9)
	require.False(t, ok)
	require.Equal(t, 0, br.release())

	br.refill([]byte{0x02, 0x03})
	v, ok := br.peekBits(9)
	require.True(t, ok)
	require.Equal(t, uint32(0x001), v)
	require.Equal(t, 1, br.release(), "the second byte is not needed")
}

func TestBitReaderPeek32(t *testing.T) {
	var br bitReader
	br.refill([]byte{0x01, 0x02, 0x03, 0x04, 0x05})
	v, ok := br.peekBits(32)
	require.True(t, ok)
	require.Equal(t, uint32(0x04030201), v)
	br.dropBits(32)
	require.Equal(t, uint(0), br.availableBits())
	require.Equal(t, 4, br.release())
}

func TestBitReaderAligned(t *testing.T) {
	var br bitReader
	br.refill([]byte{0xf5, 'a', 'b', 'c', 'd', 'e'})
	_, ok := br.peekBits(12)
	require.True(t, ok)
	br.dropBits(3)
	br.alignToByte()
	require.Equal(t, uint(8), br.availableBits())

	p := make([]byte, 3)
	require.Equal(t, 3, br.readAligned(p))
	require.Equal(t, "abc", string(p))
	require.Equal(t, uint(0), br.availableBits())

	p = make([]byte, 10)
	require.Equal(t, 2, br.readAligned(p))
	require.Equal(t, "de", string(p[:2]))
	require.Equal(t, 6, br.release())
}
