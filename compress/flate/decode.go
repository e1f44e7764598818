// Copyright (c) 2024, Intel Corporation.
// SPDX-License-Identifier: BSD-3-Clause

package flate

// decode runs the block state machine until it has to stop.
func (f *Inflater) decode(dst []byte) (int, Status) {
	n := 0
	for {
		switch f.phase {
		case phaseBlockHeader:
			v, ok := f.br.peekBits(3)
			if !ok {
				return n, NeedInput
			}
			f.br.dropBits(3)
			f.final = v&1 == 1
			btype := v >> 1
			f.logBlock(btype)
			switch btype {
			case 0:
				f.phase = phaseStoredHeader
			case 1:
				f.litLen, f.dist = fixedTables()
				f.phase = phaseHuffman
				f.sub = subLitLen
			case 2:
				f.hdr.reset()
				f.phase = phaseDynamicHeader
			default:
				return n, f.fail(ErrReservedBlockType)
			}

		case phaseStoredHeader:
			f.br.alignToByte()
			v, ok := f.br.peekBits(32)
			if !ok {
				return n, NeedInput
			}
			f.br.dropBits(32)
			length, nlength := v&maxStoredLen, v>>16
			if length != ^nlength&maxStoredLen {
				return n, f.fail(ErrStoredLengthMismatch)
			}
			f.stored = int(length)
			f.phase = phaseStored

		case phaseStored:
			var st Status
			if n, st = f.decodeStored(dst, n); st != statusOK {
				return n, st
			}
			f.endBlock()

		case phaseDynamicHeader:
			done, err := f.hdr.read(&f.br)
			if err != nil {
				return n, f.fail(err)
			}
			if !done {
				return n, NeedInput
			}
			if err := f.dynLitLen.build(f.hdr.litLenLens(), treeLitLen); err != nil {
				return n, f.fail(err)
			}
			if err := f.dynDist.build(f.hdr.distLens(), treeDist); err != nil {
				return n, f.fail(err)
			}
			f.litLen, f.dist = &f.dynLitLen, &f.dynDist
			f.phase = phaseHuffman
			f.sub = subLitLen

		case phaseHuffman:
			var st Status
			if n, st = f.decodeHuffman(dst, n); st != statusOK {
				return n, st
			}
			f.endBlock()

		case phaseFinished:
			return n, StreamEnd

		default:
			return n, Failed
		}
	}
}

// decodeStored copies the body of a stored block. It returns statusOK at
// the end of the block.
func (f *Inflater) decodeStored(dst []byte, n int) (int, Status) {
	for f.stored > 0 {
		if n == len(dst) {
			return n, OutputFull
		}
		k := len(dst) - n
		if k > f.stored {
			k = f.stored
		}
		c := f.br.readAligned(dst[n : n+k])
		if c == 0 {
			return n, NeedInput
		}
		f.win.write(dst[n : n+c])
		n += c
		f.stored -= c
	}
	return n, statusOK
}

// decodeHuffman decodes symbols of a fixed or dynamic block. It returns
// statusOK after the end of block symbol. A symbol is only consumed once
// its output fits, so every suspension point can be resumed.
func (f *Inflater) decodeHuffman(dst []byte, n int) (int, Status) {
	br := &f.br
	for {
		switch f.sub {
		case subLitLen:
			sym, l, ok, err := f.litLen.decodeSymbol(br)
			if err != nil {
				return n, f.fail(err)
			}
			if !ok {
				return n, NeedInput
			}
			switch {
			case sym < endOfBlock:
				if n == len(dst) {
					return n, OutputFull
				}
				br.dropBits(l)
				f.win.appendLiteral(byte(sym), dst[n:])
				n++
			case sym == endOfBlock:
				br.dropBits(l)
				return n, statusOK
			case sym < litLen:
				br.dropBits(l)
				f.lenSym = sym - litTableSize
				f.sub = subLenExtra
			default:
				return n, f.fail(ErrInvalidSymbol)
			}

		case subLenExtra:
			extra := uint(rfcLookupTable.LenExtraBitCount[f.lenSym])
			v, ok := br.peekBits(extra)
			if !ok {
				return n, NeedInput
			}
			br.dropBits(extra)
			f.length = int(rfcLookupTable.LenStart[f.lenSym]) + int(v)
			f.sub = subDist

		case subDist:
			sym, l, ok, err := f.dist.decodeSymbol(br)
			if err != nil {
				return n, f.fail(err)
			}
			if !ok {
				return n, NeedInput
			}
			if sym >= distLen {
				return n, f.fail(ErrInvalidSymbol)
			}
			br.dropBits(l)
			f.distSym = sym
			f.sub = subDistExtra

		case subDistExtra:
			extra := uint(rfcLookupTable.DistExtraBitCount[f.distSym])
			v, ok := br.peekBits(extra)
			if !ok {
				return n, NeedInput
			}
			br.dropBits(extra)
			f.distance = int(rfcLookupTable.DistStart[f.distSym]) + int(v)
			f.sub = subCopy

		case subCopy:
			// The distance is checked even when dst has no room left.
			c, err := f.win.copyBackReference(f.length, f.distance, dst[n:])
			if err != nil {
				return n, f.fail(err)
			}
			n += c
			f.length -= c
			if f.length > 0 {
				return n, OutputFull
			}
			f.sub = subLitLen
		}
	}
}
