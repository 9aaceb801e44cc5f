// Copyright 2026 The Embedded Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gen

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/embeddedgo/svdzig/svd2zig/internal/config"
	"github.com/embeddedgo/svdzig/svd2zig/internal/util"
	"github.com/embeddedgo/svdzig/zigmmio"
)

const Descr = "generate Zig MMIO register declarations from SVD files"

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
	var opt Options
	fs.IntVar(&opt.Jobs, "j", runtime.GOMAXPROCS(0), "number of SVD files processed concurrently")
	fs.BoolVar(&opt.KeepBroken, "keep-broken", false, "write the unformatted output to OUT.broken if the formatter fails")
	fs.StringVar(&opt.Out, "out", "", "output `FILE` (single SVD file only)")
	fs.Parse(args)
	if fs.NArg() == 0 || opt.Out != "" && fs.NArg() > 1 {
		fs.Usage()
		os.Exit(1)
	}
	cfg, err := cf.Config()
	util.FatalErr("config", err)
	util.FatalErr("", Run(context.Background(), cfg, opt, fs.Args()))
}

// ErrSameOutput is returned by Run if two SVD files map to one output file.
var ErrSameOutput = errors.New("output file collision")

type Options struct {
	Jobs       int
	KeepBroken bool
	Out        string
}

// Run generates one Zig file for every SVD file. The first error stops the
// remaining work. An output file is written only if its generation and
// formatting succeeded.
func Run(ctx context.Context, cfg *config.Config, opt Options, files []string) error {
	g, err := cfg.NewGenerator()
	if err != nil {
		return err
	}
	fm, err := cfg.NewFormatter()
	if err != nil {
		return err
	}
	outs := make([]string, len(files))
	seen := make(map[string]string, len(files))
	for i, file := range files {
		out := util.OutFile(file, ".svd", opt.Out, ".zig", cfg.OutputDir)
		key := filepath.Clean(out)
		if prev, ok := seen[key]; ok {
			return fmt.Errorf(
				"%w: %s and %s both write %s", ErrSameOutput, prev, file, out,
			)
		}
		seen[key] = file
		outs[i] = out
	}
	if cfg.OutputDir != "" {
		if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
			return err
		}
	}
	eg, ctx := errgroup.WithContext(ctx)
	if opt.Jobs > 0 {
		eg.SetLimit(opt.Jobs)
	}
	for i, file := range files {
		out := outs[i]
		eg.Go(func() error {
			return generate(ctx, g, fm, file, out, opt.KeepBroken)
		})
	}
	return eg.Wait()
}

func generate(ctx context.Context, g *zigmmio.Generator, fm zigmmio.Formatter, file, out string, keepBroken bool) error {
	d, err := util.LoadDevice(file)
	if err != nil {
		return err
	}
	src, err := g.Generate(d)
	if err != nil {
		return fmt.Errorf("%s: %w", file, err)
	}
	formatted, err := fm.Format(ctx, src)
	if err != nil {
		if keepBroken {
			// Write unformatted so the generator output can be inspected.
			if werr := os.WriteFile(out+".broken", src, 0o644); werr != nil {
				util.Warn("%v", werr)
			}
		}
		return fmt.Errorf("%s: formatting: %w", file, err)
	}
	return os.WriteFile(out, formatted, 0o644)
}
