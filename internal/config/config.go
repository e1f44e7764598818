// Copyright (c) 2024, Intel Corporation.
// SPDX-License-Identifier: BSD-3-Clause

// Package config gathers the settings of the inflate command from a .env
// file, INFLATE_* environment variables, flags and an optional TOML file.
package config

import (
	"os"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

const (
	EnvVarPrefix = "INFLATE"

	DefaultInputChunk  = 32 * 1024
	DefaultOutputChunk = 32 * 1024
	DefaultLogLevel    = "info"

	MinChunk = 1
	MaxChunk = 16 << 20
)

// VERSION gets set during build
var VERSION = "0.0.0"

type Config struct {
	CLI  *CLI
	TOML *TOML

	// Settings after layering flags over the TOML file over defaults.
	InputChunk  int
	OutputChunk int
	Dict        string
	LogLevel    logrus.Level
	Strict      bool
	Digest      bool
}

type TOML struct {
	Inflate *TOMLInflate `toml:"inflate"`
}

type TOMLInflate struct {
	InputChunk  int    `toml:"input_chunk"`
	OutputChunk int    `toml:"output_chunk"`
	Dict        string `toml:"dict"`
	LogLevel    string `toml:"log_level"`
	Strict      bool   `toml:"strict"`
	Digest      bool   `toml:"digest"`
}

type CLI struct {
	Input       string `kong:"arg,optional,help='Raw DEFLATE input file, stdin when empty or -'"`
	Output      string `kong:"help='Output file, stdout when empty or -',short='o'"`
	ConfigFile  string `kong:"help='Path to an optional TOML config file',type='path',short='c'"`
	InputChunk  int    `kong:"help='Bytes handed to the inflater per call',short='i'"`
	OutputChunk int    `kong:"help='Output buffer size per call',short='b'"`
	Dict        string `kong:"help='Preset dictionary file',type='path'"`
	Strict      bool   `kong:"help='Fail when data follows the end of the stream',short='s'"`
	Digest      bool   `kong:"help='Log the xxhash64 digest of the output',short='x'"`

	Debug   bool             `kong:"help='Enable debug output',short='d'"`
	Version kong.VersionFlag `help:"Show version and exit" short:"v" env:"-"`
}

func NewConfig() (*Config, error) {
	// Attempt to load .env
	_ = godotenv.Load(".env")

	return Parse(os.Args[1:])
}

// Parse builds the configuration from command line arguments and the
// environment.
func Parse(args []string) (*Config, error) {
	cli, err := readCLIArgs(args)
	if err != nil {
		return nil, errors.Wrap(err, "error parsing CLI args")
	}

	tomlConfig := &TOML{}
	if cli.ConfigFile != "" {
		tomlConfig, err = readTOML(cli.ConfigFile)
		if err != nil {
			return nil, errors.Wrap(err, "error reading config file")
		}
	}
	setTOMLDefaults(tomlConfig)

	cfg := merge(cli, tomlConfig)
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setTOMLDefaults(t *TOML) {
	if t.Inflate == nil {
		t.Inflate = &TOMLInflate{}
	}

	if t.Inflate.InputChunk == 0 {
		t.Inflate.InputChunk = DefaultInputChunk
	}

	if t.Inflate.OutputChunk == 0 {
		t.Inflate.OutputChunk = DefaultOutputChunk
	}

	if t.Inflate.LogLevel == "" {
		t.Inflate.LogLevel = DefaultLogLevel
	}
}

// merge lets every flag that was set win over the TOML file.
func merge(cli *CLI, t *TOML) *Config {
	cfg := &Config{
		CLI:         cli,
		TOML:        t,
		InputChunk:  t.Inflate.InputChunk,
		OutputChunk: t.Inflate.OutputChunk,
		Dict:        t.Inflate.Dict,
		Strict:      cli.Strict || t.Inflate.Strict,
		Digest:      cli.Digest || t.Inflate.Digest,
	}
	if cli.InputChunk != 0 {
		cfg.InputChunk = cli.InputChunk
	}
	if cli.OutputChunk != 0 {
		cfg.OutputChunk = cli.OutputChunk
	}
	if cli.Dict != "" {
		cfg.Dict = cli.Dict
	}
	return cfg
}

func Validate(c *Config) error {
	if c == nil || c.CLI == nil || c.TOML == nil {
		return errors.New("config cannot be nil")
	}

	if c.InputChunk < MinChunk || c.InputChunk > MaxChunk {
		return errors.Errorf("input chunk must be between %d and %d", MinChunk, MaxChunk)
	}

	if c.OutputChunk < MinChunk || c.OutputChunk > MaxChunk {
		return errors.Errorf("output chunk must be between %d and %d", MinChunk, MaxChunk)
	}

	level, err := logrus.ParseLevel(c.TOML.Inflate.LogLevel)
	if err != nil {
		return errors.Wrap(err, "error validating inflate.log_level")
	}
	if c.CLI.Debug {
		level = logrus.DebugLevel
	}
	c.LogLevel = level

	if c.Dict != "" {
		info, err := os.Stat(c.Dict)
		if os.IsNotExist(err) {
			return errors.Errorf("dictionary %s does not exist", c.Dict)
		}
		if err != nil {
			return errors.Wrap(err, "error checking dictionary")
		}
		if info.IsDir() {
			return errors.Errorf("dictionary %s is a directory", c.Dict)
		}
	}

	return nil
}

func readCLIArgs(args []string) (*CLI, error) {
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("inflate"),
		kong.Description("Decompress a raw DEFLATE stream chunk by chunk"),
		kong.UsageOnError(),
		kong.DefaultEnvars(EnvVarPrefix),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
			Summary: true,
		}),
		kong.Vars{
			"version": VERSION,
		})
	if err != nil {
		return nil, errors.Wrap(err, "error building CLI parser")
	}

	if _, err := parser.Parse(args); err != nil {
		return nil, err
	}

	return cli, nil
}

func readTOML(file string) (*TOML, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, errors.Wrap(err, "error reading file")
	}

	tomlConfig := &TOML{}
	if err := toml.Unmarshal(data, tomlConfig); err != nil {
		return nil, errors.Wrap(err, "error parsing TOML config")
	}

	return tomlConfig, nil
}
