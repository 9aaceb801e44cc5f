// Copyright 2026 The Embedded Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package zigmmio

import (
	"fmt"
	"io"
)

// writer remembers the first write error so the emitters can ignore it.
type writer struct {
	w   io.Writer
	n   int64
	err error
}

func (w *writer) printf(f string, args ...any) {
	if w.err != nil {
		return
	}
	n, err := fmt.Fprintf(w.w, f, args...)
	w.n += int64(n)
	w.err = err
}

func (w *writer) println(s string) {
	w.printf("%s\n", s)
}

// WriteTo writes the unformatted Zig source to w.
func (p *Plan) WriteTo(w io.Writer) (int64, error) {
	ew := &writer{w: w}
	ew.println("// generated using svd2zig")
	ew.println("// DO NOT EDIT")
	ew.printf(
		"// based on %s version %s\n",
		CleanDescription(p.Device), CleanDescription(p.Version),
	)
	ew.printf("const mmio = @import(%s).mmio;\n", quote(p.MMIOImport))
	ew.printf("const Name = %s;\n", quote(p.Device))
	for _, pp := range p.Peripherals {
		pp.write(ew)
	}
	return ew.n, ew.err
}

func (pp *PeriphPlan) write(w *writer) {
	if pp.Descr != "" {
		w.printf("// %s\n", pp.Descr)
	}
	w.printf("pub const %s = extern struct {\n", Ident(pp.Name))
	w.printf("pub const Address: u32 = 0x%08x;\n", pp.Address)
	for _, rp := range pp.Regs {
		rp.write(w)
	}
	w.println("};")
}

func (rp *RegPlan) write(w *writer) {
	w.printf("// byte offset: %d %s\n", rp.Offset, rp.Descr)
	w.printf(
		"pub const %s = mmio(Address + 0x%08x, %d, packed struct{\n",
		Ident(rp.Name), rp.Offset, rp.Width,
	)
	for i := range rp.Entries {
		writeEntry(w, &rp.Entries[i])
	}
	w.println("});")
}

func writeEntry(w *writer, e *Entry) {
	switch e.Kind {
	case Plain:
		w.printf(
			"%s: u%d, // bit offset: %d desc: %s\n",
			Ident(e.Name), e.Width, e.Offset, e.Descr,
		)
	case Enum:
		w.printf(
			"%s: enum(u%d){ // bit offset: %d desc: %s\n",
			Ident(e.Name), e.Width, e.Offset, e.Descr,
		)
		for _, v := range e.Values {
			// Enum names come straight from vendor data, always quote them.
			w.printf("%s = %d, // desc: %s\n", RawIdent(v.Name), v.Value, v.Descr)
		}
		if e.Open {
			w.println("_, // non-exhaustive")
		}
		w.println("},")
	case Reserved, Padding:
		w.printf("%s: u1 = 0,\n", e.Name)
	case Placeholder:
		w.printf("%s: u%d, // %s\n", e.Name, e.Width, e.Descr)
	}
}
