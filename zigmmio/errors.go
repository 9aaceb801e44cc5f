// Copyright 2026 The Embedded Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package zigmmio

import (
	"errors"
	"strings"
)

var (
	ErrZeroWidth     = errors.New("zero width")
	ErrOutOfRange    = errors.New("field exceeds register width")
	ErrOverlap       = errors.New("overlapping fields")
	ErrEnumRange     = errors.New("enumerated value out of range")
	ErrEmptyName     = errors.New("empty name")
	ErrNameCollision = errors.New("name collision")
)

// LayoutError describes an input the generator refuses to emit. Empty
// location fields are omitted from the message.
type LayoutError struct {
	Peripheral string
	Register   string
	Field      string
	Err        error
}

func (e *LayoutError) Error() string {
	var sb strings.Builder
	for _, s := range [...]string{e.Peripheral, e.Register, e.Field} {
		if s == "" {
			continue
		}
		if sb.Len() != 0 {
			sb.WriteByte('.')
		}
		sb.WriteString(s)
	}
	if sb.Len() != 0 {
		sb.WriteString(": ")
	}
	sb.WriteString(e.Err.Error())
	return sb.String()
}

func (e *LayoutError) Unwrap() error { return e.Err }

// locate fills the missing location of a *LayoutError.
func locate(err error, periph, reg string) error {
	var le *LayoutError
	if errors.As(err, &le) {
		if le.Peripheral == "" {
			le.Peripheral = periph
		}
		if le.Register == "" {
			le.Register = reg
		}
	}
	return err
}
