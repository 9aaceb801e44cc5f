// Copyright 2025 The Embedded Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hex

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/embeddedgo/svdzig/svd2zig/internal/config"
	"github.com/embeddedgo/svdzig/svd2zig/internal/resetimg"
	"github.com/embeddedgo/svdzig/svd2zig/internal/util"
)

const Descr = "write the register reset values of an SVD file in the Intel HEX format"

func Main(cmd string, args []string) {
	fs := flag.NewFlagSet(cmd, flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(
			os.Stderr,
			"Usage:\n  %s [OPTIONS] SVD [%s]\nOptions:\n",
			cmd, strings.ToUpper(cmd),
		)
		fs.PrintDefaults()
	}
	cf := config.AddFlags(fs)
	fs.Parse(args)
	if fs.NArg() < 1 || fs.NArg() > 2 {
		fs.Usage()
		os.Exit(1)
	}
	cfg, err := cf.Config()
	util.FatalErr("config", err)
	in := fs.Arg(0)
	out := util.OutFile(in, ".svd", fs.Arg(1), ".hex", cfg.OutputDir)
	w, err := os.Create(out)
	util.FatalErr("", err)
	err = Write(w, in, cfg)
	if cerr := w.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(out)
	}
	util.FatalErr(cmd, err)
}

// Write dumps the reset value image of the SVD file to w.
func Write(w io.Writer, file string, cfg *config.Config) error {
	d, err := util.LoadDevice(file)
	if err != nil {
		return err
	}
	width := cfg.DefaultWidth
	if cfg.DeviceWidth && d.Width != 0 {
		width = d.Width
	}
	mem, skipped := resetimg.Build(d, width)
	for _, s := range skipped {
		util.Warn("%s: skipped %s", file, s)
	}
	return mem.DumpIntelHex(w, 16)
}
