// Copyright (c) 2024, Intel Corporation.
// SPDX-License-Identifier: BSD-3-Clause

package flate

type headerStage uint8

const (
	stageCounts headerStage = iota
	stageCodeLenLens
	stageLens
	stageDone
)

// dynamicHeaderReader decodes the header of a dynamic Huffman block into the
// code lengths of its literal/length and distance trees. It can stop at any
// field boundary and continue with the next chunk.
type dynamicHeaderReader struct {
	stage headerStage
	nlit  int
	ndist int
	nclen int
	idx   int

	clLens [codeLenCodes]uint8
	lens   [litLen + distLen]uint8
	clTree huffmanDecoder
}

func (h *dynamicHeaderReader) reset() {
	h.stage = stageCounts
	h.idx = 0
}

func (h *dynamicHeaderReader) litLenLens() []uint8 {
	return h.lens[:h.nlit]
}

func (h *dynamicHeaderReader) distLens() []uint8 {
	return h.lens[h.nlit : h.nlit+h.ndist]
}

// read reports true once every code length has been decoded.
func (h *dynamicHeaderReader) read(br *bitReader) (bool, error) {
	for {
		switch h.stage {
		case stageCounts:
			v, ok := br.peekBits(14)
			if !ok {
				return false, nil
			}
			br.dropBits(14)
			h.nlit = int(v&0x1f) + litTableSize
			h.ndist = int(v>>5&0x1f) + 1
			h.nclen = int(v>>10&0xf) + 4
			if h.nlit > litLen || h.ndist > distLen {
				return false, ErrMalformedHeader
			}
			h.clLens = [codeLenCodes]uint8{}
			h.idx = 0
			h.stage = stageCodeLenLens

		case stageCodeLenLens:
			for h.idx < h.nclen {
				v, ok := br.peekBits(3)
				if !ok {
					return false, nil
				}
				br.dropBits(3)
				h.clLens[codeLenOrder[h.idx]] = uint8(v)
				h.idx++
			}
			if err := h.clTree.build(h.clLens[:], treeCodeLen); err != nil {
				return false, err
			}
			h.idx = 0
			h.stage = stageLens

		case stageLens:
			if err := h.readLitDistLens(br); err != nil || h.stage != stageDone {
				return false, err
			}

		case stageDone:
			return true, nil
		}
	}
}

// readLitDistLens expands the run length coded lengths of both trees.
// A repeat symbol is consumed together with its extra bits.
func (h *dynamicHeaderReader) readLitDistLens(br *bitReader) error {
	total := h.nlit + h.ndist
	for h.idx < total {
		sym, n, ok, err := h.clTree.decodeSymbol(br)
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		if sym < 16 {
			br.dropBits(n)
			h.lens[h.idx] = uint8(sym)
			h.idx++
			continue
		}

		var extra uint
		var repeat int
		switch sym {
		case 16:
			extra, repeat = 2, 3
		case 17:
			extra, repeat = 3, 3
		default:
			extra, repeat = 7, 11
		}
		v, ok := br.peekBits(n + extra)
		if !ok {
			return nil
		}
		br.dropBits(n + extra)
		repeat += int(v >> n)

		var value uint8
		if sym == 16 {
			if h.idx == 0 {
				return ErrMalformedHeader
			}
			value = h.lens[h.idx-1]
		}
		if h.idx+repeat > total {
			return ErrMalformedHeader
		}
		for ; repeat > 0; repeat-- {
			h.lens[h.idx] = value
			h.idx++
		}
	}
	if h.lens[endOfBlock] == 0 {
		return ErrMalformedHeader
	}
	h.stage = stageDone
	return nil
}
