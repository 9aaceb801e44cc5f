// Copyright 2026 The Embedded Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package device describes a microcontroller as a tree of peripherals,
// registers, bit fields and enumerated field values.
//
// The tree is produced by a descriptor parser (see the svd package) and
// consumed read-only by the code generators.
package device

type Device struct {
	Name        string
	Version     string
	Description string
	Width       uint // default register width, 0 if not specified
	Peripherals []*Peripheral
}

type Peripheral struct {
	Name        string
	Description string
	BaseAddress uint32
	Registers   []*Register
}

type Register struct {
	Name          string
	Description   string
	AddressOffset uint64
	Size          uint    // bit width, 0 if not specified
	Reset         *uint64 // reset value, nil if not specified
	Fields        []*Field
}

// Address returns the absolute address of the register r that belongs to
// the peripheral p.
func (r *Register) Address(p *Peripheral) uint64 {
	return uint64(p.BaseAddress) + r.AddressOffset
}

type Field struct {
	Name        string
	Description string
	BitOffset   uint
	BitWidth    uint
	Enumerated  bool
	Values      []*EnumValue
}

// End returns the first bit after the field.
func (f *Field) End() uint {
	return f.BitOffset + f.BitWidth
}

type EnumValue struct {
	Name        string
	Description string
	Value       uint64
}
