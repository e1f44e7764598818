// Copyright (c) 2024, Intel Corporation.
// SPDX-License-Identifier: BSD-3-Clause

package flate

import (
	"github.com/sirupsen/logrus"
)

var defaultLog = logrus.WithField("pkg", "flate")

// Inflater decodes a raw DEFLATE stream handed to it in chunks of any size.
// It never blocks: Inflate returns as soon as the input runs out or the
// output is full, and the next call continues where the last one stopped.
// The zero value is not usable; create one with NewInflater.
type Inflater struct {
	br  bitReader
	win window
	hdr dynamicHeaderReader

	litLen    *huffmanDecoder // tables of the current block
	dist      *huffmanDecoder
	dynLitLen huffmanDecoder
	dynDist   huffmanDecoder

	phase    int
	sub      int
	final    bool
	stored   int    // bytes left in the stored block
	lenSym   uint16 // length symbol minus 257
	length   int
	distSym  uint16
	distance int

	err     error
	roffset int64
	woffset int64
	blocks  int
	dict    []byte
	log     *logrus.Entry
}

const (
	phaseBlockHeader = iota
	phaseStoredHeader
	phaseStored
	phaseDynamicHeader
	phaseHuffman
	phaseFinished
	phaseFailed
)

// Positions inside a Huffman block.
const (
	subLitLen = iota
	subLenExtra
	subDist
	subDistExtra
	subCopy
)

var blockTypeNames = [4]string{"stored", "fixed", "dynamic", "reserved"}

// NewInflater returns an Inflater positioned at the start of a stream.
func NewInflater() *Inflater {
	return NewInflaterDict(nil)
}

// NewInflaterDict is like NewInflater but preloads the history with dict, as
// used by zlib and zip preset dictionaries. Only the last 32 KiB matter.
func NewInflaterDict(dict []byte) *Inflater {
	f := &Inflater{log: defaultLog}
	f.ResetDict(dict)
	return f
}

// Reset starts a new stream, keeping the dictionary and logger.
func (f *Inflater) Reset() {
	f.br.reset()
	f.win.preset(f.dict)
	f.hdr.reset()
	f.litLen, f.dist = nil, nil
	f.phase = phaseBlockHeader
	f.sub = subLitLen
	f.final = false
	f.stored = 0
	f.length = 0
	f.distance = 0
	f.err = nil
	f.roffset = 0
	f.woffset = 0
	f.blocks = 0
}

// ResetDict starts a new stream with a different dictionary.
func (f *Inflater) ResetDict(dict []byte) {
	if len(dict) > historySize {
		dict = dict[len(dict)-historySize:]
	}
	f.dict = dict
	f.Reset()
}

// SetLogger sets the entry that block level debug messages go to.
func (f *Inflater) SetLogger(log *logrus.Entry) {
	if log == nil {
		log = defaultLog
	}
	f.log = log
}

// Err returns the error that failed the stream, if any.
func (f *Inflater) Err() error {
	return f.err
}

// Finished reports whether the final block has been decoded.
func (f *Inflater) Finished() bool {
	return f.phase == phaseFinished
}

// InputOffset returns the number of input bytes consumed so far.
func (f *Inflater) InputOffset() int64 {
	return f.roffset
}

// OutputOffset returns the number of bytes produced so far.
func (f *Inflater) OutputOffset() int64 {
	return f.woffset
}

// Blocks returns the number of block headers read so far.
func (f *Inflater) Blocks() int {
	return f.blocks
}

// Inflate decodes from src into dst. It returns the bytes written and
// consumed and the reason it stopped. Consumed input never has to be passed
// again: unread bits of a consumed byte are kept by the Inflater.
//
// atEOF tells that src holds the rest of the stream, so running out of
// input fails with ErrUnexpectedEOF instead of returning NeedInput.
// Once StreamEnd has been returned, src[nSrc:] is the data that follows the
// stream.
func (f *Inflater) Inflate(dst, src []byte, atEOF bool) (nDst, nSrc int, st Status) {
	switch f.phase {
	case phaseFinished:
		return 0, 0, StreamEnd
	case phaseFailed:
		return 0, 0, Failed
	}

	f.br.refill(src)
	nDst, st = f.decode(dst)
	nSrc = f.br.release()
	f.roffset += int64(nSrc)
	f.woffset += int64(nDst)

	if st == NeedInput && atEOF {
		st = f.fail(ErrUnexpectedEOF)
	}
	return nDst, nSrc, st
}

func (f *Inflater) fail(err error) Status {
	if err != ErrUnexpectedEOF {
		err = &CorruptInputError{Offset: f.roffset + int64(f.br.pos), Err: err}
	}
	f.err = err
	f.phase = phaseFailed
	if f.log.Logger.IsLevelEnabled(logrus.DebugLevel) {
		f.log.WithError(err).Debug("stream failed")
	}
	return Failed
}

func (f *Inflater) endBlock() {
	if f.final {
		f.phase = phaseFinished
		if f.log.Logger.IsLevelEnabled(logrus.DebugLevel) {
			f.log.WithFields(logrus.Fields{
				"blocks": f.blocks,
				"in":     f.roffset + int64(f.br.pos),
			}).Debug("stream end")
		}
		return
	}
	f.phase = phaseBlockHeader
}

func (f *Inflater) logBlock(btype uint32) {
	f.blocks++
	if !f.log.Logger.IsLevelEnabled(logrus.DebugLevel) {
		return
	}
	f.log.WithFields(logrus.Fields{
		"block":  f.blocks,
		"type":   blockTypeNames[btype],
		"final":  f.final,
		"offset": f.roffset + int64(f.br.pos),
	}).Debug("block header")
}
