// Copyright (c) 2023, Intel Corporation.
// SPDX-License-Identifier: BSD-3-Clause

// Package huffman assigns canonical prefix codes from code lengths as
// described in RFC 1951 section 3.2.2.
package huffman

import (
	"errors"
	"math/bits"
)

// MaxCodeLen is the longest code length DEFLATE allows.
const MaxCodeLen = 15

var (
	ErrOversubscribed = errors.New("huffman: over-subscribed code lengths")
	ErrIncomplete     = errors.New("huffman: incomplete code lengths")
	ErrInvalidLength  = errors.New("huffman: code length out of range")
)

// Counts returns the number of codes of every length. Index 0 counts unused
// symbols.
func Counts(lens []uint8) (blCount [MaxCodeLen + 1]uint16, err error) {
	for _, l := range lens {
		if l > MaxCodeLen {
			return blCount, ErrInvalidLength
		}
		blCount[l]++
	}
	return blCount, nil
}

// GenerateCode generates codes in reversed format, so that the first bit of a
// code is bit 0 of rcodes[i].
//
// Over-subscribed lengths fail before rcodes is touched. ErrIncomplete is
// returned after every used symbol got its code; callers decide whether an
// incomplete code is acceptable.
func GenerateCode(lens []uint8, rcodes []uint16) error {
	blCount, err := Counts(lens)
	if err != nil {
		return err
	}
	blCount[0] = 0

	var nextCodes [MaxCodeLen + 1]uint32
	code := uint32(0)
	left := 1
	for l := 1; l <= MaxCodeLen; l++ {
		code = (code + uint32(blCount[l-1])) << 1
		nextCodes[l] = code

		left <<= 1
		left -= int(blCount[l])
		if left < 0 {
			return ErrOversubscribed
		}
	}

	for i, l := range lens {
		if l == 0 {
			continue
		}
		rcodes[i] = Reverse(uint16(nextCodes[l]), l)
		nextCodes[l]++
	}
	if left > 0 {
		return ErrIncomplete
	}
	return nil
}

// Reverse returns the low length bits of code in reverse order.
func Reverse(code uint16, length uint8) uint16 {
	return bits.Reverse16(code) >> (16 - length)
}
