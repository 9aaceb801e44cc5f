// Copyright 2026 The Embedded Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package config handles the svd2zig configuration file.
//
// Example svd2zig.yaml:
//
//	default_width: 32
//	device_width: false
//	mmio_import: microzig-mmio
//	naming: sequential
//	formatter: zig fmt --stdin
//	output_dir: src/chips
package config

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/embeddedgo/svdzig/zigmmio"
)

// DefaultFile is read if no configuration file is specified and it exists in
// the current directory.
const DefaultFile = "svd2zig.yaml"

type Config struct {
	DefaultWidth uint   `yaml:"default_width"`
	DeviceWidth  bool   `yaml:"device_width"`
	MMIOImport   string `yaml:"mmio_import"`
	Naming       string `yaml:"naming"`
	Formatter    string `yaml:"formatter"`
	OutputDir    string `yaml:"output_dir"`
}

func Default() *Config {
	return &Config{
		DefaultWidth: zigmmio.DefaultWidth,
		MMIOImport:   zigmmio.DefaultMMIOImport,
		Naming:       zigmmio.NamingSequential.String(),
		Formatter:    zigmmio.DefaultFormatter,
	}
}

// Decode reads the YAML configuration from r. Keys not present in r keep
// their default values. Unknown keys are rejected.
func Decode(r io.Reader) (*Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Load reads the configuration file. If path is empty DefaultFile is used
// if it exists, otherwise Default is returned.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultFile
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return nil, err
	}
	cfg, err := Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.DefaultWidth == 0 || c.DefaultWidth > 64 {
		return fmt.Errorf("default_width: %d out of range 1..64", c.DefaultWidth)
	}
	if c.MMIOImport == "" {
		return errors.New("mmio_import: empty")
	}
	if _, err := zigmmio.ParseNaming(c.Naming); err != nil {
		return fmt.Errorf("naming: %w", err)
	}
	return nil
}

// Flags holds the command line overrides of the configuration file.
type Flags struct {
	fs     *flag.FlagSet
	file   string
	values Config
}

// AddFlags defines the configuration flags in fs. The flag defaults are the
// built-in defaults, a flag overrides the configuration file only if it is
// set explicitly.
func AddFlags(fs *flag.FlagSet) *Flags {
	f := &Flags{fs: fs}
	d := Default()
	fs.StringVar(&f.file, "config", "", "read the configuration from `FILE` (default "+DefaultFile+" if present)")
	fs.UintVar(&f.values.DefaultWidth, "width", d.DefaultWidth, "width of registers without declared size")
	fs.BoolVar(&f.values.DeviceWidth, "devwidth", d.DeviceWidth, "registers without size inherit the device width")
	fs.StringVar(&f.values.MMIOImport, "mmio", d.MMIOImport, "Zig package that provides the mmio function")
	fs.StringVar(&f.values.Naming, "naming", d.Naming, "reserved bit naming: sequential or bitoffset")
	fs.StringVar(&f.values.Formatter, "fmt", d.Formatter, "formatter command, empty to disable")
	fs.StringVar(&f.values.OutputDir, "o", d.OutputDir, "output `DIR`")
	return f
}

// Config loads the configuration file and applies the flags set on the
// command line.
func (f *Flags) Config() (*Config, error) {
	cfg, err := Load(f.file)
	if err != nil {
		return nil, err
	}
	f.fs.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "width":
			cfg.DefaultWidth = f.values.DefaultWidth
		case "devwidth":
			cfg.DeviceWidth = f.values.DeviceWidth
		case "mmio":
			cfg.MMIOImport = f.values.MMIOImport
		case "naming":
			cfg.Naming = f.values.Naming
		case "fmt":
			cfg.Formatter = f.values.Formatter
		case "o":
			cfg.OutputDir = f.values.OutputDir
		}
	})
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// NewGenerator returns the zigmmio generator configured by c.
func (c *Config) NewGenerator() (*zigmmio.Generator, error) {
	naming, err := zigmmio.ParseNaming(c.Naming)
	if err != nil {
		return nil, err
	}
	return zigmmio.New(zigmmio.Config{
		DefaultWidth:   c.DefaultWidth,
		UseDeviceWidth: c.DeviceWidth,
		MMIOImport:     c.MMIOImport,
		Naming:         naming,
	}), nil
}

// NewFormatter returns the formatter configured by c.
func (c *Config) NewFormatter() (zigmmio.Formatter, error) {
	return zigmmio.ParseCommand(c.Formatter)
}
