// Copyright (c) 2024, Intel Corporation.
// SPDX-License-Identifier: BSD-3-Clause

package flate

import (
	"github.com/icsharpcode/SharpZipLib-sub002/compress/flate/internal/huffman"
)

const (
	primaryBits = 9
	primarySize = 1 << primaryBits
	primaryMask = primarySize - 1

	entryLenMask    = 0x1f
	entryLinkFlag   = 1 << 5
	entrySubShift   = 6
	entrySubMask    = 0xf
	entryValueShift = 16
)

type treeKind uint8

const (
	treeCodeLen treeKind = iota
	treeLitLen
	treeDist
)

// huffmanDecoder is a two level lookup table. The primary table is indexed
// by the next 9 bits of input; codes longer than that continue in a
// secondary table selected by their first 9 bits.
//
// Entry
// | Name                       | Bits    |
// | -------------------------- | ------- |
// | Code Length (0 = invalid)  | 0-4     |
// | Link Flag                  | 5       |
// | Subtable Bits (links only) | 6-9     |
// | Symbol / Subtable Offset   | 16-31   |
type huffmanDecoder struct {
	primary   [primarySize]uint32
	secondary []uint32
	minLen    uint8
	maxLen    uint8
}

// build assigns canonical codes to lengths and fills the tables. An
// over-subscribed set is always rejected. Incomplete sets are accepted only
// for a lone code of length 1, or an empty distance tree, of which every
// lookup fails.
func (h *huffmanDecoder) build(lengths []uint8, kind treeKind) error {
	h.primary = [primarySize]uint32{}
	h.secondary = h.secondary[:0]
	h.minLen, h.maxLen = 0, 0

	counts, err := huffman.Counts(lengths)
	if err != nil {
		return ErrMalformedTree
	}
	used := len(lengths) - int(counts[0])

	var rcodes [fixedLitLenCodes]uint16
	switch err := huffman.GenerateCode(lengths, rcodes[:len(lengths)]); err {
	case nil:
	case huffman.ErrIncomplete:
		switch {
		case kind == treeCodeLen:
			return ErrMalformedTree
		case used == 0 && kind == treeDist:
			return nil
		case used == 1 && counts[1] == 1:
		default:
			return ErrMalformedTree
		}
	default:
		return ErrMalformedTree
	}

	for l := 1; l <= maxCodeLen; l++ {
		if counts[l] == 0 {
			continue
		}
		if h.minLen == 0 {
			h.minLen = uint8(l)
		}
		h.maxLen = uint8(l)
	}

	var subBits [primarySize]uint8
	for i, l := range lengths {
		if l <= primaryBits {
			continue
		}
		p := rcodes[i] & primaryMask
		if l-primaryBits > subBits[p] {
			subBits[p] = l - primaryBits
		}
	}
	size := 0
	for p, b := range subBits {
		if b == 0 {
			continue
		}
		h.primary[p] = uint32(size)<<entryValueShift | uint32(b)<<entrySubShift | entryLinkFlag
		size += 1 << b
	}
	if cap(h.secondary) < size {
		h.secondary = make([]uint32, size)
	} else {
		h.secondary = h.secondary[:size]
		for i := range h.secondary {
			h.secondary[i] = 0
		}
	}

	for i, l := range lengths {
		if l == 0 {
			continue
		}
		code := uint32(rcodes[i])
		entry := uint32(i)<<entryValueShift | uint32(l)
		if l <= primaryBits {
			for j := code; j < primarySize; j += 1 << l {
				h.primary[j] = entry
			}
			continue
		}
		link := h.primary[code&primaryMask]
		base := link >> entryValueShift
		sub := uint32(1) << ((link >> entrySubShift) & entrySubMask)
		for j := code >> primaryBits; j < sub; j += 1 << (l - primaryBits) {
			h.secondary[base+j] = entry
		}
	}
	return nil
}

func (h *huffmanDecoder) lookup(bits uint64) uint32 {
	e := h.primary[bits&primaryMask]
	if e&entryLinkFlag != 0 {
		mask := uint64(1)<<((e>>entrySubShift)&entrySubMask) - 1
		e = h.secondary[uint64(e>>entryValueShift)+(bits>>primaryBits)&mask]
	}
	return e
}

// decodeSymbol resolves the next symbol and its code length. The bits are
// left in the register for the caller to drop. ok is false when the input
// ran out before the code was complete.
func (h *huffmanDecoder) decodeSymbol(br *bitReader) (sym uint16, n uint, ok bool, err error) {
	if h.maxLen == 0 {
		return 0, 0, false, ErrInvalidSymbol
	}
	if !br.fill(uint(h.minLen)) {
		return 0, 0, false, nil
	}
	for {
		e := h.lookup(br.bits)
		l := uint(e & entryLenMask)
		switch {
		case l == 0:
			// Either a longer code or no code at all.
			if br.n >= uint(h.maxLen) {
				return 0, 0, false, ErrInvalidSymbol
			}
			if !br.fill(br.n + 1) {
				return 0, 0, false, nil
			}
		case l > br.n:
			if !br.fill(l) {
				return 0, 0, false, nil
			}
		default:
			return uint16(e >> entryValueShift), l, true, nil
		}
	}
}
