// Copyright (c) 2024, Intel Corporation.
// SPDX-License-Identifier: BSD-3-Clause

package flate

import (
	"golang.org/x/text/transform"
)

var _ transform.Transformer = (*Inflater)(nil)

// Transform implements transform.Transformer. Bytes after the end of the
// stream are consumed and dropped.
func (f *Inflater) Transform(dst, src []byte, atEOF bool) (nDst, nSrc int, err error) {
	if f.phase == phaseFinished {
		return 0, len(src), nil
	}
	nDst, nSrc, st := f.Inflate(dst, src, atEOF)
	switch st {
	case StreamEnd:
		return nDst, len(src), nil
	case OutputFull:
		return nDst, nSrc, transform.ErrShortDst
	case NeedInput:
		return nDst, nSrc, transform.ErrShortSrc
	}
	return nDst, nSrc, f.err
}
