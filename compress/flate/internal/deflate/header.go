// Copyright (c) 2024, Intel Corporation.
// SPDX-License-Identifier: BSD-3-Clause

package deflate

const (
	numRepeat3_6     = 16
	zeroRepeat3_10   = 17
	zeroRepeat11_138 = 18
)

var hclenOrder = [19]uint8{16, 17, 18, 0, 8, 7, 9, 6, 10, 5, 11, 4, 12, 3, 13, 2, 14, 1, 15}

// CodeLenLens is the code length code every DynamicBlock uses. It is
// complete, so any decoder accepts it.
var CodeLenLens = [19]uint8{
	4, 4, 4, 4, 4, 4, 4, 4, 4, 4, // 0-9
	5, 5, 5, 5, 5, 5, // 10-15
	4, 4, 4, // 16-18
}

// clToken is a code length symbol with its extra bits.
type clToken struct {
	sym   uint8
	extra uint8
}

// alphabet run length encodes lens and appends the symbols to tokens.
func alphabet(tokens []clToken, lens []uint8) []clToken {
	for start := 0; start < len(lens); {
		end := start + 1
		for end < len(lens) && lens[end] == lens[start] {
			end++
		}
		if lens[start] == 0 {
			tokens = zeroRepeat(tokens, end-start)
		} else {
			tokens = numRepeat(tokens, lens[start], end-start)
		}
		start = end
	}
	return tokens
}

func numRepeat(tokens []clToken, num uint8, repeated int) []clToken {
	tokens = append(tokens, clToken{sym: num})
	repeated--
	for repeated != 0 {
		switch {
		case repeated < 3:
			tokens = append(tokens, clToken{sym: num})
			repeated--
		case repeated <= 6:
			tokens = append(tokens, clToken{numRepeat3_6, uint8(repeated - 3)})
			repeated = 0
		default:
			tokens = append(tokens, clToken{numRepeat3_6, 3})
			repeated -= 6
		}
	}
	return tokens
}

func zeroRepeat(tokens []clToken, repeated int) []clToken {
	for repeated != 0 {
		switch {
		case repeated < 3:
			tokens = append(tokens, clToken{sym: 0})
			repeated--
		case repeated < 11:
			tokens = append(tokens, clToken{zeroRepeat3_10, uint8(repeated - 3)})
			repeated = 0
		case repeated < 139:
			tokens = append(tokens, clToken{zeroRepeat11_138, uint8(repeated - 11)})
			repeated = 0
		default:
			tokens = append(tokens, clToken{zeroRepeat11_138, 138 - 11})
			repeated -= 138
		}
	}
	return tokens
}

func extraBitsOf(sym uint8) uint {
	switch sym {
	case numRepeat3_6:
		return 2
	case zeroRepeat3_10:
		return 3
	case zeroRepeat11_138:
		return 7
	}
	return 0
}
