// Copyright 2026 The Embedded Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package resetimg builds a memory image of the register reset values.
package resetimg

import (
	"encoding/binary"
	"fmt"

	"github.com/marcinbor85/gohex"

	"github.com/embeddedgo/svdzig/device"
)

// Skipped describes a register left out of the image.
type Skipped struct {
	Peripheral string
	Register   string
	Reason     string
}

func (s Skipped) String() string {
	return s.Peripheral + "." + s.Register + ": " + s.Reason
}

// Build stores the reset value of every register that declares one at its
// absolute address, little-endian. Registers without a reset value are
// ignored. Registers of width not divisible by 8 or overlapping a register
// already stored are reported in the skipped list. Width is the width of
// registers without declared size.
func Build(d *device.Device, width uint) (*gohex.Memory, []Skipped) {
	mem := gohex.NewMemory()
	var skipped []Skipped
	for _, p := range d.Peripherals {
		for _, r := range p.Registers {
			if r.Reset == nil {
				continue
			}
			w := r.Size
			if w == 0 {
				w = width
			}
			skip := func(f string, args ...any) {
				skipped = append(skipped, Skipped{
					Peripheral: p.Name,
					Register:   r.Name,
					Reason:     fmt.Sprintf(f, args...),
				})
			}
			if w == 0 || w%8 != 0 || w > 64 {
				skip("unsupported width %d", w)
				continue
			}
			addr := r.Address(p)
			if addr+uint64(w/8) > 1<<32 {
				skip("address %#x out of 32-bit space", addr)
				continue
			}
			var buf [8]byte
			binary.LittleEndian.PutUint64(buf[:], *r.Reset)
			if err := mem.AddBinary(uint32(addr), buf[:w/8]); err != nil {
				skip("%v", err)
			}
		}
	}
	return mem, skipped
}
