// Copyright 2025 The Embedded Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package util

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/embeddedgo/svdzig/device"
	"github.com/embeddedgo/svdzig/svd"
)

func Warn(f string, args ...any) {
	fmt.Fprintf(os.Stderr, f+"\n", args...)
}

func Fatal(f string, args ...any) {
	fmt.Fprintf(os.Stderr, f+"\n", args...)
	os.Exit(1)
}

// FatalErr prints an error description and exits the program if the
// err != nil.
func FatalErr(what string, err error) {
	if err == nil {
		return
	}
	s := err.Error() + "\n"
	if what != "" {
		s = what + ": " + s
	}
	os.Stderr.WriteString(s)
	os.Exit(1)
}

// OutFile returns the name of the output file for the input file in. If out
// is not empty it is returned unchanged. Otherwise the inSuffix of the base
// name of in is replaced with outSuffix and the result is placed in dir.
func OutFile(in, inSuffix, out, outSuffix, dir string) string {
	if out != "" {
		return out
	}
	name := strings.TrimSuffix(filepath.Base(in), inSuffix) + outSuffix
	if dir == "" {
		return name
	}
	return filepath.Join(dir, name)
}

// LoadDevice decodes the SVD file and converts it to the device model.
func LoadDevice(path string) (*device.Device, error) {
	sd, err := svd.Load(path)
	if err != nil {
		return nil, err
	}
	d, err := sd.Model()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return d, nil
}
