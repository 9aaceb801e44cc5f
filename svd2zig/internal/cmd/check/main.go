// Copyright 2026 The Embedded Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package check

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/embeddedgo/svdzig/svd2zig/internal/config"
	"github.com/embeddedgo/svdzig/svd2zig/internal/util"
	"github.com/embeddedgo/svdzig/zigmmio"
)

const Descr = "validate the register layout of SVD files without generating code"

func Main(cmd string, args []string) {
	fs := flag.NewFlagSet(cmd, flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(
			os.Stderr,
			"Usage:\n  %s [OPTIONS] SVD...\nOptions:\n",
			cmd,
		)
		fs.PrintDefaults()
	}
	cf := config.AddFlags(fs)
	fs.Parse(args)
	if fs.NArg() == 0 {
		fs.Usage()
		os.Exit(1)
	}
	cfg, err := cf.Config()
	util.FatalErr("config", err)
	g, err := cfg.NewGenerator()
	util.FatalErr("config", err)
	failed := false
	for _, file := range fs.Args() {
		if err := Check(os.Stdout, g, file); err != nil {
			util.Warn("%v", err)
			failed = true
		}
	}
	if failed {
		os.Exit(1)
	}
}

type Stats struct {
	Peripherals int
	Registers   int
	Fields      int
	Enums       int
	Reserved    int // reserved and padding bits
}

func (s Stats) String() string {
	return fmt.Sprintf(
		"%d peripherals, %d registers, %d fields (%d enumerated), %d reserved bits",
		s.Peripherals, s.Registers, s.Fields, s.Enums, s.Reserved,
	)
}

// Count summarizes the plan p.
func Count(p *zigmmio.Plan) Stats {
	var s Stats
	s.Peripherals = len(p.Peripherals)
	for _, pp := range p.Peripherals {
		s.Registers += len(pp.Regs)
		for _, rp := range pp.Regs {
			for _, e := range rp.Entries {
				switch e.Kind {
				case zigmmio.Plain:
					s.Fields++
				case zigmmio.Enum:
					s.Fields++
					s.Enums++
				case zigmmio.Reserved, zigmmio.Padding:
					s.Reserved++
				}
			}
		}
	}
	return s
}

// Check lays out all registers of the SVD file and prints a summary to w.
func Check(w io.Writer, g *zigmmio.Generator, file string) error {
	d, err := util.LoadDevice(file)
	if err != nil {
		return err
	}
	p, err := g.Plan(d)
	if err != nil {
		return fmt.Errorf("%s: %w", file, err)
	}
	_, err = fmt.Fprintf(w, "%s: %s\n", file, Count(p))
	return err
}
