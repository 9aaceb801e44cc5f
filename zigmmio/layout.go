// Copyright 2026 The Embedded Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package zigmmio

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/embeddedgo/svdzig/device"
)

type EntryKind int

const (
	Plain       EntryKind = iota // uN field
	Enum                         // enum(uN) field
	Reserved                     // one bit gap between fields
	Padding                      // one bit after the last field
	Placeholder                  // whole register, no fields declared
)

var kindStr = [...]string{
	Plain:       "plain",
	Enum:        "enum",
	Reserved:    "reserved",
	Padding:     "padding",
	Placeholder: "placeholder",
}

func (k EntryKind) String() string { return kindStr[k] }

// Naming selects how the synthesized reserved and padding bits are named.
type Naming int

const (
	// NamingSequential numbers reserved bits from 0 across the whole
	// register and padding bits from 0 after the last field.
	NamingSequential Naming = iota

	// NamingBitOffset names reserved and padding bits after their absolute
	// bit position in the register.
	NamingBitOffset
)

// ParseNaming returns the Naming for "sequential" or "bitoffset".
func ParseNaming(s string) (Naming, error) {
	switch s {
	case "", "sequential":
		return NamingSequential, nil
	case "bitoffset":
		return NamingBitOffset, nil
	}
	return 0, fmt.Errorf("unknown naming scheme %q", s)
}

func (n Naming) String() string {
	if n == NamingBitOffset {
		return "bitoffset"
	}
	return "sequential"
}

// Entry is one element of a register layout.
type Entry struct {
	Kind   EntryKind
	Name   string // sanitized, not escaped
	Offset uint
	Width  uint
	Descr  string // cleaned
	Values []EnumVariant

	// Open is set for enums that need the `_` catch-all variant.
	Open bool
}

// End returns the first bit after e.
func (e *Entry) End() uint { return e.Offset + e.Width }

type EnumVariant struct {
	Name  string
	Value uint64
	Descr string
}

const placeholderName = "raw"

// MaxWidth is the widest integer type Zig accepts (u65535).
const MaxWidth = 65535

// Layout orders the fields of a register of the given width and returns
// entries that cover the bits [0, width) without gaps or overlaps. Bits not
// covered by any field are declared as one bit reserved or padding entries.
// A register without fields is laid out as a single placeholder entry.
//
// Layout does not modify fields. It returns a *LayoutError (without the
// peripheral and register names) if the fields cannot tile the register.
func Layout(fields []*device.Field, width uint, naming Naming) ([]Entry, error) {
	if width == 0 {
		return nil, &LayoutError{Err: ErrZeroWidth}
	}
	if width > MaxWidth {
		return nil, &LayoutError{
			Err: fmt.Errorf(
				"%w: %d-bit register wider than %d bits",
				ErrOutOfRange, width, MaxWidth,
			),
		}
	}
	if len(fields) == 0 {
		return []Entry{{
			Kind:  Placeholder,
			Name:  placeholderName,
			Width: width,
			Descr: "placeholder field",
		}}, nil
	}
	sorted := slices.Clone(fields)
	slices.SortStableFunc(sorted, func(a, b *device.Field) int {
		return cmp.Compare(a.BitOffset, b.BitOffset)
	})
	entries := make([]Entry, 0, len(sorted)+int(width)/2)
	names := make(map[string]bool, len(sorted))
	var last, reserved uint
	for _, f := range sorted {
		name := CleanName(f.Name)
		switch {
		case f.BitWidth == 0:
			return nil, &LayoutError{Field: name, Err: ErrZeroWidth}
		case f.End() > width || f.End() < f.BitOffset:
			return nil, &LayoutError{
				Field: name,
				Err: fmt.Errorf(
					"%w: bits [%d,%d) in %d-bit register",
					ErrOutOfRange, f.BitOffset, f.End(), width,
				),
			}
		case f.BitOffset < last:
			return nil, &LayoutError{
				Field: name,
				Err: fmt.Errorf(
					"%w: bit %d already used by %s",
					ErrOverlap, f.BitOffset, entries[len(entries)-1].Name,
				),
			}
		case name == "":
			return nil, &LayoutError{Field: f.Name, Err: ErrEmptyName}
		case names[name]:
			return nil, &LayoutError{
				Field: name,
				Err:   fmt.Errorf("%w: field %s", ErrNameCollision, f.Name),
			}
		}
		names[name] = true
		for ; last < f.BitOffset; last++ {
			n := reserved
			if naming == NamingBitOffset {
				n = last
			}
			entries = append(entries, Entry{
				Kind:   Reserved,
				Name:   fmt.Sprint("reserved", n),
				Offset: last,
				Width:  1,
			})
			reserved++
		}
		e, err := fieldEntry(f, name)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
		last = f.End()
	}
	for bit := last; bit < width; bit++ {
		n := bit - last
		if naming == NamingBitOffset {
			n = bit
		}
		entries = append(entries, Entry{
			Kind:   Padding,
			Name:   fmt.Sprint("padding", n),
			Offset: bit,
			Width:  1,
		})
	}
	for _, e := range entries {
		if (e.Kind == Reserved || e.Kind == Padding) && names[e.Name] {
			return nil, &LayoutError{
				Field: e.Name,
				Err: fmt.Errorf(
					"%w: field name equals synthesized %s bit name",
					ErrNameCollision, e.Kind,
				),
			}
		}
	}
	return entries, nil
}

func fieldEntry(f *device.Field, name string) (Entry, error) {
	e := Entry{
		Kind:   Plain,
		Name:   name,
		Offset: f.BitOffset,
		Width:  f.BitWidth,
		Descr:  CleanDescription(f.Description),
	}
	if !f.Enumerated || len(f.Values) == 0 {
		return e, nil
	}
	e.Kind = Enum
	e.Values = make([]EnumVariant, len(f.Values))
	distinct := make(map[uint64]bool, len(f.Values))
	for i, v := range f.Values {
		if f.BitWidth < 64 && v.Value>>f.BitWidth != 0 {
			return e, &LayoutError{
				Field: name,
				Err: fmt.Errorf(
					"%w: %s = %d does not fit in %d bits",
					ErrEnumRange, v.Name, v.Value, f.BitWidth,
				),
			}
		}
		distinct[v.Value] = true
		e.Values[i] = EnumVariant{
			Name:  v.Name,
			Value: v.Value,
			Descr: CleanDescription(v.Description),
		}
	}
	// Zig rejects `_` in an enum that already names every value.
	e.Open = f.BitWidth >= 64 || uint64(len(distinct)) < 1<<f.BitWidth
	return e, nil
}
