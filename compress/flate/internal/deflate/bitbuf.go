// Copyright (c) 2024, Intel Corporation.
// SPDX-License-Identifier: BSD-3-Clause

// Package deflate writes DEFLATE streams bit by bit. It makes no attempt to
// compress; callers choose every block, symbol and header field, which makes
// it useful for producing exact and deliberately broken streams.
package deflate

// BitBuf packs bits LSB first.
type BitBuf struct {
	output []byte
	bits   uint64
	bitLen uint
}

func (b *BitBuf) Reset() {
	b.output = b.output[:0]
	b.bits = 0
	b.bitLen = 0
}

// WriteBits appends the low count bits of code, count <= 32.
func (b *BitBuf) WriteBits(code uint32, count uint) {
	b.bits |= uint64(code) & (1<<count - 1) << b.bitLen
	b.bitLen += count
	for b.bitLen >= 8 {
		b.output = append(b.output, byte(b.bits))
		b.bits >>= 8
		b.bitLen -= 8
	}
}

// Sync pads with zero bits up to the next byte boundary.
func (b *BitBuf) Sync() {
	if b.bitLen == 0 {
		return
	}
	b.output = append(b.output, byte(b.bits))
	b.bits = 0
	b.bitLen = 0
}

// WriteBytes appends p after padding to a byte boundary.
func (b *BitBuf) WriteBytes(p []byte) {
	b.Sync()
	b.output = append(b.output, p...)
}

// BitLen returns the number of bits written so far.
func (b *BitBuf) BitLen() int {
	return len(b.output)*8 + int(b.bitLen)
}

// Bytes returns the stream written so far with the last partial byte
// padded by zero bits. The buffer keeps its state.
func (b *BitBuf) Bytes() []byte {
	out := make([]byte, len(b.output), len(b.output)+1)
	copy(out, b.output)
	if b.bitLen > 0 {
		out = append(out, byte(b.bits))
	}
	return out
}
