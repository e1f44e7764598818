// Copyright (c) 2024, Intel Corporation.
// SPDX-License-Identifier: BSD-3-Clause

package flate

import (
	"bufio"
	"compress/flate"
	"io"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

type (
	Reader   = flate.Reader
	Resetter = flate.Resetter
)

// A ReaderOption configures a reader returned by NewReader.
type ReaderOption func(*decompressor)

// WithLogger sends block level debug messages to log.
func WithLogger(log *logrus.Entry) ReaderOption {
	return func(d *decompressor) {
		d.state.SetLogger(log)
	}
}

// WithBufferSize sets the size of the input buffer. It has no effect when
// the source already is a *bufio.Reader.
func WithBufferSize(n int) ReaderOption {
	return func(d *decompressor) {
		d.bufSize = n
	}
}

// NewReader returns a reader that decompresses the raw DEFLATE stream read
// from r. When r is a *bufio.Reader it is used directly and is left
// positioned right after the stream.
func NewReader(r io.Reader, opts ...ReaderOption) io.ReadCloser {
	return NewReaderDict(r, nil, opts...)
}

// NewReaderDict is like NewReader but uses a preset dictionary.
func NewReaderDict(r io.Reader, dict []byte, opts ...ReaderOption) io.ReadCloser {
	d := &decompressor{state: Inflater{log: defaultLog}, bufSize: defaultBufferSize}
	for _, opt := range opts {
		opt(d)
	}
	d.Reset(r, dict)
	return d
}

const defaultBufferSize = 4096

type decompressor struct {
	state   Inflater
	r       io.Reader
	rBuf    *bufio.Reader
	ownBuf  bool // rBuf was allocated here and may be reset
	bufSize int
	err     error
	eof     bool
}

func (d *decompressor) Reset(under io.Reader, dict []byte) error {
	d.r = under
	if ur, ok := under.(*bufio.Reader); ok {
		d.rBuf = ur
		d.ownBuf = false
	} else {
		if d.ownBuf {
			d.rBuf.Reset(under)
		} else {
			d.rBuf = bufio.NewReaderSize(under, d.bufSize)
			d.ownBuf = true
		}
	}

	d.eof = false
	d.err = nil
	d.state.ResetDict(dict)
	return nil
}

func (d *decompressor) Close() error {
	return nil
}

func (d *decompressor) Read(b []byte) (int, error) {
	if d.err != nil {
		return 0, d.err
	}
	if len(b) == 0 {
		return 0, nil
	}
	for {
		if d.rBuf.Buffered() == 0 && !d.eof {
			if _, err := d.rBuf.Peek(1); err == io.EOF {
				d.eof = true
			} else if err != nil {
				d.err = errors.Wrap(err, "flate: read input")
				return 0, d.err
			}
		}
		in, _ := d.rBuf.Peek(d.rBuf.Buffered())

		n, nSrc, st := d.state.Inflate(b, in, d.eof)
		if _, err := d.rBuf.Discard(nSrc); err != nil {
			d.err = errors.Wrap(err, "flate: discard input")
			return n, d.err
		}
		switch st {
		case StreamEnd:
			d.err = io.EOF
			return n, d.err
		case Failed:
			d.err = d.state.Err()
			return n, d.err
		case OutputFull:
			return n, nil
		}
		if n > 0 {
			return n, nil
		}
	}
}
