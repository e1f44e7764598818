// Copyright (c) 2024, Intel Corporation.
// SPDX-License-Identifier: BSD-3-Clause

package main

import (
	"bytes"
	"compress/flate"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
	"testing/iotest"

	"github.com/cespare/xxhash/v2"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"

	iflate "github.com/icsharpcode/SharpZipLib-sub002/compress/flate"
	"github.com/icsharpcode/SharpZipLib-sub002/internal/config"
)

func deflate(t *testing.T, data, dict []byte) []byte {
	buf := bytes.NewBuffer(nil)
	w, err := flate.NewWriterDict(buf, flate.BestCompression, dict)
	require.NoError(t, err)
	_, err = w.Write(data)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return buf.Bytes()
}

func parse(t *testing.T, args ...string) *config.Config {
	cfg, err := config.Parse(args)
	require.NoError(t, err)
	return cfg
}

func TestRun(t *testing.T) {
	data := bytes.Repeat([]byte("chunked inflate of a raw stream "), 2000)
	stream := deflate(t, data, nil)

	tests := []struct {
		name string
		args []string
	}{
		{"defaults", nil},
		{"single bytes", []string{"-i", "1", "-b", "1"}},
		{"small input", []string{"-i", "3"}},
		{"small output", []string{"-b", "7"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := parse(t, append(tt.args, "-x")...)
			logger, _ := test.NewNullLogger()
			out := bytes.NewBuffer(nil)
			s, err := run(cfg, nil, bytes.NewReader(stream), out, logrus.NewEntry(logger))
			require.NoError(t, err)
			require.True(t, bytes.Equal(data, out.Bytes()))
			require.Equal(t, int64(len(stream)), s.In)
			require.Equal(t, int64(len(data)), s.Out)
			require.Zero(t, s.Trailing)
			require.GreaterOrEqual(t, s.Blocks, 1)
			require.Equal(t, xxhash.Sum64(data), s.Digest)
		})
	}
}

func TestRunDict(t *testing.T) {
	dict := []byte("a dictionary both sides know about")
	data := []byte("both sides know about a dictionary")
	cfg := parse(t, "-i", "2")
	logger, _ := test.NewNullLogger()
	out := bytes.NewBuffer(nil)
	_, err := run(cfg, dict, bytes.NewReader(deflate(t, data, dict)), out, logrus.NewEntry(logger))
	require.NoError(t, err)
	require.Equal(t, data, out.Bytes())
}

func TestRunTrailing(t *testing.T) {
	data := []byte("trailing garbage follows")
	stream := append(deflate(t, data, nil), "garbage"...)

	logger, hook := test.NewNullLogger()
	out := bytes.NewBuffer(nil)
	s, err := run(parse(t, "-i", "4"), nil, bytes.NewReader(stream), out, logrus.NewEntry(logger))
	require.NoError(t, err)
	require.Equal(t, data, out.Bytes())
	require.Equal(t, int64(len("garbage")), s.Trailing)
	require.Equal(t, logrus.WarnLevel, hook.LastEntry().Level)
	require.Zero(t, s.Digest)

	_, err = run(parse(t, "--strict"), nil, bytes.NewReader(stream), io.Discard, logrus.NewEntry(logger))
	require.Error(t, err)
	require.Contains(t, err.Error(), "7 bytes follow the end of the stream")
}

func TestRunErrors(t *testing.T) {
	logger, _ := test.NewNullLogger()
	log := logrus.NewEntry(logger)
	stream := deflate(t, bytes.Repeat([]byte("truncated "), 100), nil)

	_, err := run(parse(t, "-i", "5"), nil, bytes.NewReader(stream[:len(stream)-2]), io.Discard, log)
	require.ErrorIs(t, err, io.ErrUnexpectedEOF)

	_, err = run(parse(t), nil, bytes.NewReader([]byte{0x07}), io.Discard, log)
	require.ErrorIs(t, err, iflate.ErrReservedBlockType)
	var cerr *iflate.CorruptInputError
	require.True(t, errors.As(err, &cerr))

	boom := errors.New("boom")
	_, err = run(parse(t), nil, iotest.ErrReader(boom), io.Discard, log)
	require.ErrorIs(t, err, boom)
	require.Contains(t, err.Error(), "error reading input")
}

func TestWithOutput(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out")

	require.NoError(t, withOutput(path, func(w io.Writer) error {
		_, err := w.Write([]byte("inflated"))
		return err
	}))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "inflated", string(data))

	boom := errors.New("boom")
	err = withOutput(path, func(io.Writer) error { return boom })
	require.Equal(t, boom, err, "the run error wins over the close")

	// A failing close is reported.
	err = withOutput(path, func(w io.Writer) error {
		return w.(*os.File).Close()
	})
	require.ErrorIs(t, err, os.ErrClosed)
	require.Contains(t, err.Error(), "error closing output")

	err = withOutput(filepath.Join(dir, "missing", "out"), func(io.Writer) error { return nil })
	require.Error(t, err)
	require.Contains(t, err.Error(), "error creating output")
}
