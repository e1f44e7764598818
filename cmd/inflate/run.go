// Copyright (c) 2024, Intel Corporation.
// SPDX-License-Identifier: BSD-3-Clause

package main

import (
	"io"

	"github.com/cespare/xxhash/v2"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/icsharpcode/SharpZipLib-sub002/compress/flate"
	"github.com/icsharpcode/SharpZipLib-sub002/internal/config"
)

// Summary describes one decompressed stream.
type Summary struct {
	In       int64 // bytes of the DEFLATE stream
	Out      int64
	Trailing int64 // bytes after the end of the stream
	Blocks   int
	Digest   uint64 // xxhash64 of the output, zero unless requested
}

// run feeds in to the inflater in chunks of cfg.InputChunk bytes and writes
// the output through a buffer of cfg.OutputChunk bytes.
func run(cfg *config.Config, dict []byte, in io.Reader, out io.Writer, log *logrus.Entry) (*Summary, error) {
	f := flate.NewInflaterDict(dict)
	f.SetLogger(log)

	h := xxhash.New()
	if cfg.Digest {
		out = io.MultiWriter(out, h)
	}

	inBuf := make([]byte, cfg.InputChunk)
	outBuf := make([]byte, cfg.OutputChunk)
	var pending []byte
	eof := false
	calls := 0

	for {
		if len(pending) == 0 && !eof {
			n, err := io.ReadFull(in, inBuf)
			pending = inBuf[:n]
			switch err {
			case nil:
			case io.EOF, io.ErrUnexpectedEOF:
				eof = true
			default:
				return nil, errors.Wrap(err, "error reading input")
			}
		}

		nDst, nSrc, st := f.Inflate(outBuf, pending, eof)
		pending = pending[nSrc:]
		calls++
		if nDst > 0 {
			if _, err := out.Write(outBuf[:nDst]); err != nil {
				return nil, errors.Wrap(err, "error writing output")
			}
		}

		switch st {
		case flate.StreamEnd:
			s := &Summary{
				In:     f.InputOffset(),
				Out:    f.OutputOffset(),
				Blocks: f.Blocks(),
			}
			if cfg.Digest {
				s.Digest = h.Sum64()
			}
			rest, err := io.Copy(io.Discard, in)
			if err != nil {
				return nil, errors.Wrap(err, "error reading trailing data")
			}
			s.Trailing = int64(len(pending)) + rest
			if s.Trailing > 0 {
				if cfg.Strict {
					return nil, errors.Errorf("%d bytes follow the end of the stream", s.Trailing)
				}
				log.Warnf("ignoring %d bytes after the end of the stream", s.Trailing)
			}
			log.Debugf("inflated in %d calls", calls)
			return s, nil
		case flate.Failed:
			return nil, errors.Wrapf(f.Err(), "error inflating after %d calls", calls)
		}
	}
}
