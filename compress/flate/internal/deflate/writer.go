// Copyright (c) 2024, Intel Corporation.
// SPDX-License-Identifier: BSD-3-Clause

package deflate

import (
	"sync"

	"github.com/icsharpcode/SharpZipLib-sub002/compress/flate/internal/huffman"
)

const maxStoredBlock = 0xffff

const (
	btypeStored  = 0
	btypeFixed   = 1
	btypeDynamic = 2
)

// code is a prefix code ready to be written, bit order already reversed.
type code struct {
	lens   []uint8
	rcodes []uint16
}

func newCode(lens []uint8) code {
	c := code{lens: append([]uint8(nil), lens...), rcodes: make([]uint16, len(lens))}
	// Incomplete and broken sets are allowed on purpose; symbols without a
	// code are written with length 0.
	_ = huffman.GenerateCode(c.lens, c.rcodes)
	return c
}

var (
	fixedOnce   sync.Once
	fixedLitLen code
	fixedDist   code
)

func fixedCodes() (code, code) {
	fixedOnce.Do(func() {
		lens := make([]uint8, 288)
		for i := range lens {
			switch {
			case i < 144:
				lens[i] = 8
			case i < 256:
				lens[i] = 9
			case i < 280:
				lens[i] = 7
			default:
				lens[i] = 8
			}
		}
		fixedLitLen = newCode(lens)

		dlens := make([]uint8, 32)
		for i := range dlens {
			dlens[i] = 5
		}
		fixedDist = newCode(dlens)
	})
	return fixedLitLen, fixedDist
}

// StreamWriter writes blocks of a DEFLATE stream. Symbols written after
// FixedBlock or DynamicBlock use that block's codes until EndBlock.
type StreamWriter struct {
	BitBuf
	litLen code
	dist   code
}

func NewStreamWriter() *StreamWriter {
	return &StreamWriter{}
}

func (w *StreamWriter) blockHeader(final bool, btype uint32) {
	f := uint32(0)
	if final {
		f = 1
	}
	w.WriteBits(f|btype<<1, 3)
}

// Stored writes data as stored blocks of at most 65535 bytes. Only the last
// one carries the final flag. Empty data gives one empty block.
func (w *StreamWriter) Stored(final bool, data []byte) {
	for {
		n := len(data)
		if n > maxStoredBlock {
			n = maxStoredBlock
		}
		last := n == len(data)
		w.StoredRaw(final && last, uint16(n), ^uint16(n), data[:n])
		data = data[n:]
		if last {
			return
		}
	}
}

// StoredRaw writes a stored block with the given LEN and NLEN fields
// followed by data, whatever its length.
func (w *StreamWriter) StoredRaw(final bool, length, nlength uint16, data []byte) {
	w.blockHeader(final, btypeStored)
	w.Sync()
	w.WriteBits(uint32(length), 16)
	w.WriteBits(uint32(nlength), 16)
	w.WriteBytes(data)
}

// FixedBlock starts a block with the fixed codes.
func (w *StreamWriter) FixedBlock(final bool) {
	w.blockHeader(final, btypeFixed)
	w.litLen, w.dist = fixedCodes()
}

// DynamicBlock starts a block with the given code lengths. litLens must hold
// 257 to 286 entries and distLens 1 to 30.
func (w *StreamWriter) DynamicBlock(final bool, litLens, distLens []uint8) {
	lens := make([]uint8, 0, len(litLens)+len(distLens))
	lens = append(lens, litLens...)
	lens = append(lens, distLens...)

	w.DynamicHeaderPrefix(final, len(litLens), len(distLens), CodeLenLens[:])
	for _, t := range alphabet(nil, lens) {
		w.CodeLength(t.sym, t.extra)
	}
	w.litLen = newCode(litLens)
	w.dist = newCode(distLens)
}

// DynamicHeaderPrefix writes the block header, the HLIT, HDIST and HCLEN
// fields, and the code length code lengths given in symbol order. The code
// lengths themselves follow with CodeLength.
func (w *StreamWriter) DynamicHeaderPrefix(final bool, nlit, ndist int, clLens []uint8) {
	var ordered [19]uint8
	for i, sym := range hclenOrder {
		if int(sym) < len(clLens) {
			ordered[i] = clLens[sym]
		}
	}
	nclen := len(ordered)
	for nclen > 4 && ordered[nclen-1] == 0 {
		nclen--
	}

	w.blockHeader(final, btypeDynamic)
	w.WriteBits(uint32(nlit-257), 5)
	w.WriteBits(uint32(ndist-1), 5)
	w.WriteBits(uint32(nclen-4), 4)
	for _, l := range ordered[:nclen] {
		w.WriteBits(uint32(l), 3)
	}
	cl := newCode(clLens)
	w.litLen = cl
}

// CodeLength writes one code length symbol with its extra bits, using the
// code length code of the last header.
func (w *StreamWriter) CodeLength(sym, extra uint8) {
	w.Symbol(int(sym))
	w.WriteBits(uint32(extra), extraBitsOf(sym))
}

// Symbol writes a literal/length symbol, valid or not.
func (w *StreamWriter) Symbol(sym int) {
	w.WriteBits(uint32(w.litLen.rcodes[sym]), uint(w.litLen.lens[sym]))
}

// DistanceSymbol writes a distance symbol and extra bits, valid or not.
func (w *StreamWriter) DistanceSymbol(sym int, extra uint32, extraBits uint) {
	w.WriteBits(uint32(w.dist.rcodes[sym]), uint(w.dist.lens[sym]))
	w.WriteBits(extra, extraBits)
}

func (w *StreamWriter) Literal(b byte) {
	w.Symbol(int(b))
}

func (w *StreamWriter) Literals(p []byte) {
	for _, b := range p {
		w.Literal(b)
	}
}

// Match writes a back-reference. Lengths run from 3 to 258 and distances
// from 1 to 32768; nothing checks them against the data written.
func (w *StreamWriter) Match(length, distance int) {
	if length < minMatch || length > maxMatch || distance < 1 || distance > maxDist {
		panic("deflate: match out of range")
	}
	sym, extra, n := getLenSymbol(length)
	w.Symbol(int(sym))
	w.WriteBits(extra, n)
	dsym, dextra, dn := getDistSymbol(uint32(distance))
	w.DistanceSymbol(int(dsym), dextra, dn)
}

func (w *StreamWriter) EndBlock() {
	w.Symbol(EndOfBlock)
}

// HuffmanBlock writes data as literals of dynamic blocks whose codes are
// fitted to the data, so rare bytes get codes of up to 15 bits.
func (w *StreamWriter) HuffmanBlock(final bool, data []byte) {
	hist := make([]uint32, EndOfBlock+1)
	for {
		n := len(data)
		if n > maxStoredBlock {
			n = maxStoredBlock
		}
		last := n == len(data)
		for i := range hist {
			hist[i] = 0
		}
		for _, b := range data[:n] {
			hist[b]++
		}
		hist[EndOfBlock] = 1
		w.DynamicBlock(final && last, huffman.Lengths(hist, huffman.MaxCodeLen), []uint8{1})
		w.Literals(data[:n])
		w.EndBlock()
		data = data[n:]
		if last {
			return
		}
	}
}
