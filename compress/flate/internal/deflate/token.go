// Copyright (c) 2024, Intel Corporation.
// SPDX-License-Identifier: BSD-3-Clause

package deflate

import (
	"math/bits"
)

const (
	EndOfBlock = 256
	minMatch   = 3
	maxMatch   = 258
	maxDist    = 32768
)

var lengthBase = [29]uint16{
	3, 4, 5, 6, 7, 8, 9, 10, 11, 13, 15, 17, 19, 23, 27, 31,
	35, 43, 51, 59, 67, 83, 99, 115, 131, 163, 195, 227, 258,
}

var lengthExtra = [29]uint8{
	0, 0, 0, 0, 0, 0, 0, 0, 1, 1, 1, 1, 2, 2, 2, 2,
	3, 3, 3, 3, 4, 4, 4, 4, 5, 5, 5, 5, 0,
}

// getLenSymbol returns the literal/length symbol of a match length and its
// extra bits.
func getLenSymbol(length int) (sym uint32, extra uint32, extraBits uint) {
	i := len(lengthBase) - 1
	for int(lengthBase[i]) > length {
		i--
	}
	return uint32(257 + i), uint32(length - int(lengthBase[i])), uint(lengthExtra[i])
}

// getDistSymbol returns the distance symbol of dist and the value and count
// of its extra bits.
func getDistSymbol(dist uint32) (sym uint32, extra uint32, extraBits uint) {
	if dist <= 2 {
		return dist - 1, 0, 0
	}
	dist--
	msb := 32 - bits.LeadingZeros32(dist)
	numExtraBits := uint32(msb - 2)
	extra = dist & ((1 << numExtraBits) - 1)
	dist >>= numExtraBits
	sym = dist + 2*numExtraBits
	return sym, extra, uint(numExtraBits)
}
