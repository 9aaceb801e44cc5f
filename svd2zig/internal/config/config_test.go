// Copyright 2026 The Embedded Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package config

import (
	"flag"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/embeddedgo/svdzig/zigmmio"
)

func TestDecode(t *testing.T) {
	yaml := `
default_width: 16
naming: bitoffset
formatter: ""
output_dir: out
`
	cfg, err := Decode(strings.NewReader(yaml))
	require.NoError(t, err)
	assert.Equal(t, uint(16), cfg.DefaultWidth)
	assert.Equal(t, "bitoffset", cfg.Naming)
	assert.Equal(t, "", cfg.Formatter)
	assert.Equal(t, "out", cfg.OutputDir)
	assert.Equal(t, zigmmio.DefaultMMIOImport, cfg.MMIOImport)
}

func TestDecodeEmpty(t *testing.T) {
	cfg, err := Decode(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"unknown key", "colour: red\n"},
		{"zero width", "default_width: 0\n"},
		{"too wide", "default_width: 65\n"},
		{"bad naming", "naming: fancy\n"},
		{"empty import", "mmio_import: \"\"\n"},
		{"bad yaml", "default_width: [1\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(tt.yaml))
			assert.Error(t, err)
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cfg.yaml")
	require.NoError(t, os.WriteFile(path, []byte("mmio_import: mmio\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "mmio", cfg.MMIOImport)

	_, err = Load(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}

func TestFlagsOverrideFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.yaml")
	data := "default_width: 16\nmmio_import: mmio\nnaming: bitoffset\n"
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	fs := flag.NewFlagSet("gen", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	f := AddFlags(fs)
	require.NoError(t, fs.Parse([]string{"-config", path, "-width", "8", "-fmt", ""}))

	cfg, err := f.Config()
	require.NoError(t, err)
	assert.Equal(t, uint(8), cfg.DefaultWidth) // flag
	assert.Equal(t, "mmio", cfg.MMIOImport)    // file
	assert.Equal(t, "bitoffset", cfg.Naming)   // file
	assert.Equal(t, "", cfg.Formatter)         // flag

	g, err := cfg.NewGenerator()
	require.NoError(t, err)
	assert.Equal(t, zigmmio.Config{
		DefaultWidth: 8,
		MMIOImport:   "mmio",
		Naming:       zigmmio.NamingBitOffset,
	}, g.Config())

	fm, err := cfg.NewFormatter()
	require.NoError(t, err)
	assert.Equal(t, zigmmio.Nop{}, fm)
}

func TestFlagsValidate(t *testing.T) {
	fs := flag.NewFlagSet("gen", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	f := AddFlags(fs)
	require.NoError(t, fs.Parse([]string{"-config", filepath.Join("testdata", "none.yaml")}))
	_, err := f.Config()
	assert.Error(t, err)

	fs = flag.NewFlagSet("gen", flag.ContinueOnError)
	f = AddFlags(fs)
	require.NoError(t, fs.Parse([]string{"-naming", "odd"}))
	_, err = f.Config()
	assert.Error(t, err)
}
