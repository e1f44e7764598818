// Copyright (c) 2024, Intel Corporation.
// SPDX-License-Identifier: BSD-3-Clause

package flate

// bitReader serves bits LSB first from the chunk handed to the current
// Inflate call. Bytes move into the register one at a time and only when a
// field needs them, so the reader never runs ahead of the stream. Bits above
// n are always zero.
type bitReader struct {
	in   []byte // current chunk
	pos  int    // bytes of in moved into the register
	bits uint64
	n    uint
}

func (br *bitReader) reset() {
	*br = bitReader{}
}

// refill attaches the next input chunk. Bits left in the register from
// earlier chunks stay in front of it.
func (br *bitReader) refill(src []byte) {
	br.in = src
	br.pos = 0
}

// fill pulls bytes until at least want bits are held. It reports false when
// the chunk runs out first.
func (br *bitReader) fill(want uint) bool {
	for br.n < want {
		if br.pos >= len(br.in) {
			return false
		}
		br.bits |= uint64(br.in[br.pos]) << br.n
		br.pos++
		br.n += 8
	}
	return true
}

// peekBits returns the next n bits, n <= 32, without consuming them.
func (br *bitReader) peekBits(n uint) (uint32, bool) {
	if !br.fill(n) {
		return 0, false
	}
	return uint32(br.bits & (1<<n - 1)), true
}

func (br *bitReader) dropBits(n uint) {
	if n > br.n {
		panic("flate: dropping more bits than available")
	}
	br.bits >>= n
	br.n -= n
}

func (br *bitReader) availableBits() uint {
	return br.n
}

func (br *bitReader) alignToByte() {
	br.dropBits(br.n % 8)
}

// readAligned copies whole bytes into p, register first, then the chunk.
// The reader must be byte aligned.
func (br *bitReader) readAligned(p []byte) int {
	i := 0
	for i < len(p) && br.n >= 8 {
		p[i] = byte(br.bits)
		br.bits >>= 8
		br.n -= 8
		i++
	}
	c := copy(p[i:], br.in[br.pos:])
	br.pos += c
	return i + c
}

// release detaches the chunk and returns how many of its bytes were
// consumed.
func (br *bitReader) release() int {
	consumed := br.pos
	br.in = nil
	br.pos = 0
	return consumed
}
