// Copyright (c) 2024, Intel Corporation.
// SPDX-License-Identifier: BSD-3-Clause

package flate

import "sync"

const (
	historySize = 32 * 1024
	historyMask = historySize - 1

	maxCodeLen   = 15
	codeLenCodes = 19

	endOfBlock   = 256
	litTableSize = 257
	litLen       = 257 + 29 // used literal/length symbols
	distLen      = 30       // used distance symbols

	fixedLitLenCodes = 288
	fixedDistCodes   = 32

	maxStoredLen = 0xffff
)

// rfcLookupTable holds the base values and extra bit counts of the
// length and distance symbols, RFC 1951 section 3.2.5.
var rfcLookupTable = struct {
	LenStart          [29]uint16
	LenExtraBitCount  [29]uint8
	DistStart         [30]uint16
	DistExtraBitCount [30]uint8
}{
	LenStart: [29]uint16{
		3, 4, 5, 6, 7, 8, 9, 10, 11, 13, 15, 17, 19, 23, 27, 31,
		35, 43, 51, 59, 67, 83, 99, 115, 131, 163, 195, 227, 258,
	},
	LenExtraBitCount: [29]uint8{
		0, 0, 0, 0, 0, 0, 0, 0, 1, 1, 1, 1, 2, 2, 2, 2,
		3, 3, 3, 3, 4, 4, 4, 4, 5, 5, 5, 5, 0,
	},
	DistStart: [30]uint16{
		1, 2, 3, 4, 5, 7, 9, 13, 17, 25, 33, 49, 65, 97, 129, 193,
		257, 385, 513, 769, 1025, 1537, 2049, 3073, 4097, 6145, 8193, 12289, 16385, 24577,
	},
	DistExtraBitCount: [30]uint8{
		0, 0, 0, 0, 1, 1, 2, 2, 3, 3, 4, 4, 5, 5, 6, 6,
		7, 7, 8, 8, 9, 9, 10, 10, 11, 11, 12, 12, 13, 13,
	},
}

// codeLenOrder is the transmission order of the code length code lengths.
var codeLenOrder = [codeLenCodes]uint8{16, 17, 18, 0, 8, 7, 9, 6, 10, 5, 11, 4, 12, 3, 13, 2, 14, 1, 15}

var (
	fixedOnce   sync.Once
	fixedLitLen huffmanDecoder
	fixedDist   huffmanDecoder
)

// fixedTables returns the shared decoders of fixed Huffman blocks. They are
// never modified after construction.
func fixedTables() (*huffmanDecoder, *huffmanDecoder) {
	fixedOnce.Do(func() {
		var lens [fixedLitLenCodes]uint8
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
		if err := fixedLitLen.build(lens[:], treeLitLen); err != nil {
			panic("flate: fixed literal/length table: " + err.Error())
		}

		var dlens [fixedDistCodes]uint8
		for i := range dlens {
			dlens[i] = 5
		}
		if err := fixedDist.build(dlens[:], treeDist); err != nil {
			panic("flate: fixed distance table: " + err.Error())
		}
	})
	return &fixedLitLen, &fixedDist
}
