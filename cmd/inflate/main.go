// Copyright (c) 2024, Intel Corporation.
// SPDX-License-Identifier: BSD-3-Clause

// Command inflate decompresses a raw DEFLATE stream using a fixed input
// chunk and output buffer size.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/icsharpcode/SharpZipLib-sub002/internal/config"
)

func main() {
	cfg, err := config.NewConfig()
	if err != nil {
		fmt.Println("ERROR: ", err)
		os.Exit(1)
	}

	logrus.SetLevel(cfg.LogLevel)
	if cfg.CLI.Debug {
		logrus.Info("debug mode enabled")
	}

	displayConfig(cfg)

	if err := inflateFiles(cfg); err != nil {
		logrus.Errorf("unable to inflate: %s", err)
		os.Exit(1)
	}
}

func inflateFiles(cfg *config.Config) error {
	var dict []byte
	if cfg.Dict != "" {
		var err error
		if dict, err = os.ReadFile(cfg.Dict); err != nil {
			return errors.Wrap(err, "error reading dictionary")
		}
	}

	var in io.Reader = os.Stdin
	if cfg.CLI.Input != "" && cfg.CLI.Input != "-" {
		f, err := os.Open(cfg.CLI.Input)
		if err != nil {
			return errors.Wrap(err, "error opening input")
		}
		defer f.Close()
		in = f
	}

	var s *Summary
	err := withOutput(cfg.CLI.Output, func(out io.Writer) error {
		var err error
		s, err = run(cfg, dict, in, out, logrus.WithField("pkg", "flate"))
		return err
	})
	if err != nil {
		return err
	}

	logrus.Infof("inflated %d bytes into %d bytes in %d blocks", s.In, s.Out, s.Blocks)
	if cfg.Digest {
		logrus.Infof("xxhash64: %016x", s.Digest)
	}
	return nil
}

// withOutput runs fn on the output named by path, stdout when empty or -,
// and closes a created file exactly once. A failed close is reported unless
// fn already failed.
func withOutput(path string, fn func(io.Writer) error) error {
	if path == "" || path == "-" {
		return fn(os.Stdout)
	}
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "error creating output")
	}
	err = fn(f)
	if cerr := f.Close(); err == nil && cerr != nil {
		err = errors.Wrap(cerr, "error closing output")
	}
	return err
}

func displayConfig(cfg *config.Config) {
	if cfg == nil {
		return
	}

	logrus.Info("inflate settings:")
	logrus.Info("  [CLI]")
	logrus.Infof("  version: %s", config.VERSION)
	logrus.Infof("  input: %s", cfg.CLI.Input)
	logrus.Infof("  output: %s", cfg.CLI.Output)
	logrus.Infof("  config file: %s", cfg.CLI.ConfigFile)
	logrus.Infof("  debug: %v", cfg.CLI.Debug)
	logrus.Info("")
	logrus.Info("  [INFLATE]")
	logrus.Infof("  inflate.input_chunk: %d", cfg.InputChunk)
	logrus.Infof("  inflate.output_chunk: %d", cfg.OutputChunk)
	logrus.Infof("  inflate.dict: %s", cfg.Dict)
	logrus.Infof("  inflate.log_level: %s", cfg.LogLevel)
	logrus.Infof("  inflate.strict: %v", cfg.Strict)
	logrus.Infof("  inflate.digest: %v", cfg.Digest)
}
