// Copyright 2026 The Embedded Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package zigmmio generates Zig MMIO register declarations from a device
// description.
//
// Every register becomes a packed struct bound to its absolute address
// with the mmio helper:
//
//	pub const CTRL = mmio(Address + 0x00000004, 32, packed struct{
//	    EN: u1, // bit offset: 0 desc: Enable
//	    MODE: enum(u2){ // bit offset: 1 desc: Mode
//	        @"Off" = 0,
//	        @"On" = 1,
//	        _, // non-exhaustive
//	    },
//	    padding0: u1 = 0,
//	    ...
//	});
//
// Gaps between fields and the bits above the last field are filled with
// one bit reserved and padding fields so the struct always covers the
// whole register.
package zigmmio

import (
	"bytes"
	"cmp"
	"fmt"
	"slices"

	"github.com/embeddedgo/svdzig/device"
)

const (
	// DefaultWidth is the width of registers that do not declare a size.
	DefaultWidth = 32

	// DefaultMMIOImport is the package that provides the mmio function.
	DefaultMMIOImport = "microzig-mmio"
)

type Config struct {
	DefaultWidth uint // used for registers without size, 0 means DefaultWidth

	// UseDeviceWidth makes registers without size inherit the width
	// declared by the device (if any) instead of DefaultWidth.
	UseDeviceWidth bool

	MMIOImport string // "" means DefaultMMIOImport
	Naming     Naming
}

type Generator struct {
	cfg Config
}

func New(cfg Config) *Generator {
	if cfg.DefaultWidth == 0 {
		cfg.DefaultWidth = DefaultWidth
	}
	if cfg.MMIOImport == "" {
		cfg.MMIOImport = DefaultMMIOImport
	}
	return &Generator{cfg}
}

func (g *Generator) Config() Config { return g.cfg }

// Width returns the effective width of the register r of the device d.
func (g *Generator) Width(d *device.Device, r *device.Register) uint {
	switch {
	case r.Size != 0:
		return r.Size
	case g.cfg.UseDeviceWidth && d.Width != 0:
		return d.Width
	}
	return g.cfg.DefaultWidth
}

// Plan is a validated, sanitized copy of a device ready to be written.
type Plan struct {
	Device      string
	Version     string
	MMIOImport  string
	Peripherals []*PeriphPlan
}

type PeriphPlan struct {
	Name    string
	Descr   string
	Address uint32
	Regs    []*RegPlan
}

type RegPlan struct {
	Name    string
	Descr   string
	Offset  uint64
	Width   uint
	Entries []Entry
}

// Names declared by the generator at the top level and in every peripheral
// struct.
var (
	deviceDecls = []string{"mmio", "Name"}
	periphDecls = []string{"Address"}
)

func collision(kind, orig, name string) error {
	if orig == "" {
		return fmt.Errorf(
			"%w: %s %s redeclares a generated constant",
			ErrNameCollision, kind, name,
		)
	}
	return fmt.Errorf("%w: %ss %s and %s", ErrNameCollision, kind, orig, name)
}

// Plan validates d and computes the layout of all its registers. It never
// modifies d.
func (g *Generator) Plan(d *device.Device) (*Plan, error) {
	p := &Plan{
		Device:      d.Name,
		Version:     d.Version,
		MMIOImport:  g.cfg.MMIOImport,
		Peripherals: make([]*PeriphPlan, 0, len(d.Peripherals)),
	}
	pnames := make(map[string]string, len(d.Peripherals)+len(deviceDecls))
	for _, n := range deviceDecls {
		pnames[n] = ""
	}
	for _, sp := range d.Peripherals {
		pp, err := g.planPeriph(d, sp)
		if err != nil {
			return nil, err
		}
		if orig, ok := pnames[pp.Name]; ok {
			return nil, &LayoutError{
				Peripheral: pp.Name,
				Err:        collision("peripheral", orig, sp.Name),
			}
		}
		pnames[pp.Name] = sp.Name
		p.Peripherals = append(p.Peripherals, pp)
	}
	return p, nil
}

func (g *Generator) planPeriph(d *device.Device, sp *device.Peripheral) (*PeriphPlan, error) {
	pp := &PeriphPlan{
		Name:    CleanName(sp.Name),
		Descr:   CleanDescription(sp.Description),
		Address: sp.BaseAddress,
	}
	if pp.Name == "" {
		return nil, &LayoutError{Peripheral: sp.Name, Err: ErrEmptyName}
	}
	regs := slices.Clone(sp.Registers)
	slices.SortStableFunc(regs, func(a, b *device.Register) int {
		return cmp.Compare(a.AddressOffset, b.AddressOffset)
	})
	rnames := make(map[string]string, len(regs)+len(periphDecls))
	for _, n := range periphDecls {
		rnames[n] = ""
	}
	pp.Regs = make([]*RegPlan, 0, len(regs))
	for _, sr := range regs {
		rp := &RegPlan{
			Name:   CleanName(sr.Name),
			Descr:  CleanDescription(sr.Description),
			Offset: sr.AddressOffset,
			Width:  g.Width(d, sr),
		}
		if rp.Name == "" {
			return nil, &LayoutError{
				Peripheral: pp.Name, Register: sr.Name, Err: ErrEmptyName,
			}
		}
		if orig, ok := rnames[rp.Name]; ok {
			return nil, &LayoutError{
				Peripheral: pp.Name,
				Register:   rp.Name,
				Err:        collision("register", orig, sr.Name),
			}
		}
		rnames[rp.Name] = sr.Name
		var err error
		rp.Entries, err = Layout(sr.Fields, rp.Width, g.cfg.Naming)
		if err != nil {
			return nil, locate(err, pp.Name, rp.Name)
		}
		pp.Regs = append(pp.Regs, rp)
	}
	return pp, nil
}

// Generate returns the unformatted Zig source for d. Nothing is returned if
// any register of d cannot be laid out.
func (g *Generator) Generate(d *device.Device) ([]byte, error) {
	p, err := g.Plan(d)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if _, err := p.WriteTo(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
