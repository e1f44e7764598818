// Copyright (c) 2024, Intel Corporation.
// SPDX-License-Identifier: BSD-3-Clause

package flate

import (
	"errors"
	"io"
	"strconv"
	"strings"
)

// Status reports why Inflate returned.
type Status int

const (
	statusOK Status = iota
	// NeedInput means every byte of src was consumed and more input is
	// required to make progress.
	NeedInput
	// OutputFull means dst is full and decoding can continue with a new dst.
	OutputFull
	// StreamEnd means the final block has been decoded.
	StreamEnd
	// Failed means the stream is corrupt; Err holds the cause.
	Failed
)

func (s Status) String() string {
	switch s {
	case NeedInput:
		return "NeedInput"
	case OutputFull:
		return "OutputFull"
	case StreamEnd:
		return "StreamEnd"
	case Failed:
		return "Failed"
	}
	return "Status(" + strconv.Itoa(int(s)) + ")"
}

// Fatal stream errors. Inflate reports them wrapped in a CorruptInputError.
var (
	ErrMalformedTree        = errors.New("flate: malformed huffman tree")
	ErrMalformedHeader      = errors.New("flate: malformed dynamic block header")
	ErrReservedBlockType    = errors.New("flate: reserved block type")
	ErrStoredLengthMismatch = errors.New("flate: stored block length mismatch")
	ErrInvalidDistance      = errors.New("flate: invalid back-reference distance")
	ErrInvalidSymbol        = errors.New("flate: invalid symbol")
)

// ErrUnexpectedEOF is returned when the input ends inside the stream.
var ErrUnexpectedEOF = io.ErrUnexpectedEOF

// A CorruptInputError reports the input offset at which corruption was
// detected.
type CorruptInputError struct {
	Offset int64
	Err    error
}

func (e *CorruptInputError) Error() string {
	return "flate: corrupt input before offset " + strconv.FormatInt(e.Offset, 10) + ": " + strings.TrimPrefix(e.Err.Error(), "flate: ")
}

func (e *CorruptInputError) Unwrap() error {
	return e.Err
}
