// Copyright 2026 The Embedded Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package svd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/embeddedgo/svdzig/device"
)

// props are the register properties inherited down the
// device > peripheral > cluster > register hierarchy.
type props struct {
	size  uint
	reset *uint64
}

func (p props) with(g *RegisterPropertiesGroup) props {
	if g == nil {
		return p
	}
	if g.Size != nil {
		p.size = uint(*g.Size)
	}
	if g.ResetValue != nil {
		v := uint64(*g.ResetValue)
		p.reset = &v
	}
	return p
}

type conv struct {
	periphs map[string]*Peripheral
	enums   map[string]*EnumeratedValues
}

// Model converts the SVD description to a device model. Derived
// peripherals, registers and enumerations are resolved, dim arrays and
// clusters are flattened into plain registers. Register names of array
// elements keep the SVD notation (TASKS_START[0]).
func (dev *Device) Model() (*device.Device, error) {
	c := &conv{
		periphs: make(map[string]*Peripheral, len(dev.Peripherals)),
		enums:   make(map[string]*EnumeratedValues),
	}
	for _, sp := range dev.Peripherals {
		c.periphs[sp.Name] = sp
		c.indexEnums(sp)
	}
	d := &device.Device{
		Name:        dev.Name,
		Version:     dev.Version,
		Description: dev.Description,
		Width:       uint(dev.Width),
	}
	dp := props{}.with(dev.RegisterPropertiesGroup)
	if dp.size != 0 {
		d.Width = dp.size
	}
	for _, sp := range dev.Peripherals {
		ps, err := c.peripheral(sp, dp)
		if err != nil {
			return nil, fmt.Errorf("peripheral %s: %w", sp.Name, err)
		}
		d.Peripherals = append(d.Peripherals, ps...)
	}
	return d, nil
}

func (c *conv) indexEnums(sp *Peripheral) {
	add := func(srs []*Register) {
		for _, sr := range srs {
			for _, sf := range sr.Fields {
				for _, sevs := range sf.EnumeratedValues {
					if sevs.Name != nil {
						c.enums[*sevs.Name] = sevs
					}
				}
			}
		}
	}
	add(sp.Registers)
	var walk func(scs []*Cluster)
	walk = func(scs []*Cluster) {
		for _, sc := range scs {
			add(sc.Registers)
			walk(sc.Clusters)
		}
	}
	walk(sp.Clusters)
}

func (c *conv) peripheral(sp *Peripheral, dp props) ([]*device.Peripheral, error) {
	descr := sp.Description
	regs, clusters := sp.Registers, sp.Clusters
	if sp.DerivedFrom != nil {
		base := c.periphs[*sp.DerivedFrom]
		if base == nil || base == sp {
			return nil, fmt.Errorf("unknown base peripheral %q", *sp.DerivedFrom)
		}
		if base.DerivedFrom != nil {
			return nil, fmt.Errorf("chained derivation from %s", base.Name)
		}
		if descr == nil {
			descr = base.Description
		}
		if len(regs) == 0 && len(clusters) == 0 {
			regs, clusters = base.Registers, base.Clusters
		}
		dp = dp.with(base.RegisterPropertiesGroup)
	}
	pp := dp.with(sp.RegisterPropertiesGroup)
	var rs []*device.Register
	if err := c.registers(&rs, "", 0, regs, pp); err != nil {
		return nil, err
	}
	if err := c.clusters(&rs, "", 0, clusters, pp); err != nil {
		return nil, err
	}
	var ps []*device.Peripheral
	for _, e := range dimElems(sp.Name, &sp.DimElementGroup) {
		addr := uint64(sp.BaseAddress) + e.offset
		if addr > 0xFFFFFFFF {
			return nil, fmt.Errorf("base address %#x exceeds 32 bits", addr)
		}
		ps = append(ps, &device.Peripheral{
			Name:        e.name,
			Description: str(descr),
			BaseAddress: uint32(addr),
			Registers:   rs,
		})
	}
	return ps, nil
}

func (c *conv) clusters(rs *[]*device.Register, prefix string, offset uint64, scs []*Cluster, pp props) error {
	for _, sc := range scs {
		if sc.DerivedFrom != nil {
			return fmt.Errorf("cluster %s: derived clusters not supported", sc.Name)
		}
		cp := pp.with(sc.RegisterPropertiesGroup)
		for _, e := range dimElems(sc.Name, &sc.DimElementGroup) {
			cprefix := prefix + e.name + "_"
			coff := offset + uint64(sc.AddressOffset) + e.offset
			if err := c.registers(rs, cprefix, coff, sc.Registers, cp); err != nil {
				return err
			}
			if err := c.clusters(rs, cprefix, coff, sc.Clusters, cp); err != nil {
				return err
			}
		}
	}
	return nil
}

func (c *conv) registers(rs *[]*device.Register, prefix string, offset uint64, srs []*Register, pp props) error {
	for _, sr := range srs {
		if sr.DerivedFrom != nil {
			var base *Register
			for _, r := range srs {
				if r.Name == *sr.DerivedFrom && r != sr {
					base = r
					break
				}
			}
			if base == nil {
				return fmt.Errorf(
					"register %s: unknown base register %q", sr.Name, *sr.DerivedFrom,
				)
			}
			sr = derivedRegister(sr, base)
		}
		rp := pp.with(sr.RegisterPropertiesGroup)
		fields, err := c.fields(sr)
		if err != nil {
			return fmt.Errorf("register %s: %w", sr.Name, err)
		}
		for _, e := range dimElems(sr.Name, &sr.DimElementGroup) {
			*rs = append(*rs, &device.Register{
				Name:          prefix + e.name,
				Description:   str(sr.Description),
				AddressOffset: offset + uint64(sr.AddressOffset) + e.offset,
				Size:          rp.size,
				Reset:         rp.reset,
				Fields:        fields,
			})
		}
	}
	return nil
}

// derivedRegister returns a copy of base overridden by the elements
// specified in sr.
func derivedRegister(sr, base *Register) *Register {
	r := *base
	r.DerivedFrom = nil
	r.Name = sr.Name
	r.AddressOffset = sr.AddressOffset
	r.DimElementGroup = sr.DimElementGroup
	if sr.Description != nil {
		r.Description = sr.Description
	}
	if sr.RegisterPropertiesGroup != nil {
		g := *sr.RegisterPropertiesGroup
		if base.RegisterPropertiesGroup != nil {
			if g.Size == nil {
				g.Size = base.Size
			}
			if g.ResetValue == nil {
				g.ResetValue = base.ResetValue
			}
		}
		r.RegisterPropertiesGroup = &g
	}
	if len(sr.Fields) != 0 {
		r.Fields = sr.Fields
	}
	return &r
}

func (c *conv) fields(sr *Register) ([]*device.Field, error) {
	var fs []*device.Field
	for _, sf := range sr.Fields {
		if sf.DerivedFrom != nil {
			return nil, fmt.Errorf("field %s: derived fields not supported", sf.Name)
		}
		offset, width, err := sf.BitRange()
		if err != nil {
			return nil, err
		}
		values, err := c.enumValues(sf)
		if err != nil {
			return nil, fmt.Errorf("field %s: %w", sf.Name, err)
		}
		for _, e := range dimElems(sf.Name, &sf.DimElementGroup) {
			// dimIncrement of a field is in bits
			fs = append(fs, &device.Field{
				Name:        e.name,
				Description: str(sf.Description),
				BitOffset:   offset + uint(e.offset),
				BitWidth:    width,
				Enumerated:  len(values) != 0,
				Values:      values,
			})
		}
	}
	return fs, nil
}

// enumValues returns the values of the first enumeration readable from the
// field, or of the first one if all are write only.
func (c *conv) enumValues(sf *Field) ([]*device.EnumValue, error) {
	var sevs *EnumeratedValues
	for _, e := range sf.EnumeratedValues {
		if e.Usage == nil || *e.Usage != "write" {
			sevs = e
			break
		}
	}
	if sevs == nil {
		if len(sf.EnumeratedValues) == 0 {
			return nil, nil
		}
		sevs = sf.EnumeratedValues[0]
	}
	if sevs.DerivedFrom != nil && len(sevs.EnumeratedValue) == 0 {
		// SVD allows a dotted path, the last element is the name.
		name := *sevs.DerivedFrom
		if i := strings.LastIndexByte(name, '.'); i >= 0 {
			name = name[i+1:]
		}
		base := c.enums[name]
		if base == nil {
			return nil, fmt.Errorf("unknown enumeratedValues %q", *sevs.DerivedFrom)
		}
		sevs = base
	}
	var vs []*device.EnumValue
	for _, sev := range sevs.EnumeratedValue {
		if sev.Name == nil || sev.Value == nil ||
			sev.IsDefault != nil && *sev.IsDefault {
			continue
		}
		v, err := sev.Val()
		if err != nil {
			return nil, fmt.Errorf("value %s: %w", *sev.Name, err)
		}
		vs = append(vs, &device.EnumValue{
			Name:        *sev.Name,
			Description: str(sev.Description),
			Value:       v,
		})
	}
	return vs, nil
}

type dimElem struct {
	name   string
	offset uint64
}

// dimElems expands a dim array or list. Names with [%s] keep the brackets
// around the index, other names have %s replaced by the dimIndex element.
func dimElems(name string, g *DimElementGroup) []dimElem {
	if g.Dim == 0 || !strings.Contains(name, "%s") {
		return []dimElem{{name: name}}
	}
	idx := dimIndex(g)
	es := make([]dimElem, len(idx))
	for i, s := range idx {
		es[i] = dimElem{
			name:   strings.Replace(name, "%s", s, 1),
			offset: uint64(i) * uint64(g.DimIncrement),
		}
	}
	return es
}

func dimIndex(g *DimElementGroup) []string {
	n := int(g.Dim)
	if g.DimIndex != nil {
		s := strings.TrimSpace(*g.DimIndex)
		if a, b, ok := strings.Cut(s, "-"); ok {
			first, err1 := strconv.Atoi(a)
			last, err2 := strconv.Atoi(b)
			if err1 == nil && err2 == nil && last-first+1 == n {
				idx := make([]string, n)
				for i := range idx {
					idx[i] = strconv.Itoa(first + i)
				}
				return idx
			}
		} else if list := strings.Split(s, ","); len(list) == n {
			for i := range list {
				list[i] = strings.TrimSpace(list[i])
			}
			return list
		}
	}
	idx := make([]string, n)
	for i := range idx {
		idx[i] = strconv.Itoa(i)
	}
	return idx
}

func str(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
