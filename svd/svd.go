// Copyright 2019 Michal Derkacz. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package svd decodes CMSIS-SVD device descriptions.
package svd

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
)

type Int int

func (i *Int) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	var s string
	if err := d.DecodeElement(&s, &start); err != nil {
		return err
	}
	v, err := strconv.ParseInt(s, 0, 0)
	*i = Int(v)
	return err
}

// Uint accepts decimal, 0x hexadecimal and 0b / # binary notation.
type Uint uint

func (u *Uint) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	v, err := decodeUint(d, start, 0)
	*u = Uint(v)
	return err
}

type Uint64 uint64

func (u *Uint64) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	v, err := decodeUint(d, start, 64)
	*u = Uint64(v)
	return err
}

func decodeUint(d *xml.Decoder, start xml.StartElement, bits int) (uint64, error) {
	var s string
	if err := d.DecodeElement(&s, &start); err != nil {
		return 0, err
	}
	return parseUint(s, bits)
}

func parseUint(s string, bits int) (uint64, error) {
	if s != "" && s[0] == '#' {
		s = "0b" + s[1:]
	}
	return strconv.ParseUint(s, 0, bits)
}

type Device struct {
	Vendor      *string `xml:"vendor"`
	Name        string  `xml:"name"`
	Series      *string `xml:"series"`
	Version     string  `xml:"version"`
	Description string  `xml:"description"`
	Width       Uint    `xml:"width"`
	*RegisterPropertiesGroup
	Peripherals []*Peripheral `xml:"peripherals>peripheral"`
}

type RegisterPropertiesGroup struct {
	Size       *Uint   `xml:"size"`
	Access     *string `xml:"access"`
	ResetValue *Uint64 `xml:"resetValue"`
	ResetMask  *Uint64 `xml:"resetMask"`
}

type Peripheral struct {
	DerivedFrom *string `xml:"derivedFrom,attr"`
	DimElementGroup
	Name        string  `xml:"name"`
	Version     *string `xml:"version"`
	Description *string `xml:"description"`
	GroupName   *string `xml:"groupName"`
	BaseAddress Uint64  `xml:"baseAddress"`
	*RegisterPropertiesGroup
	Registers []*Register `xml:"registers>register"`
	Clusters  []*Cluster  `xml:"registers>cluster"`
}

type DimElementGroup struct {
	Dim          Uint    `xml:"dim"`
	DimIncrement Uint    `xml:"dimIncrement"`
	DimIndex     *string `xml:"dimIndex"`
	DimName      *string `xml:"dimName"`
}

type Register struct {
	DerivedFrom *string `xml:"derivedFrom,attr"`
	DimElementGroup
	Name              string  `xml:"name"`
	DisplayName       *string `xml:"displayName"`
	Description       *string `xml:"description"`
	AlternateGroup    *string `xml:"alternateGroup"`
	AlternateRegister *string `xml:"alternateRegister"`
	AddressOffset     Uint64  `xml:"addressOffset"`
	*RegisterPropertiesGroup
	Fields []*Field `xml:"fields>field"`
}

type Field struct {
	DerivedFrom *string `xml:"derivedFrom,attr"`
	DimElementGroup
	Name        string  `xml:"name"`
	Description *string `xml:"description"`
	*BitRangeOffsetWidth
	*BitRangeLSBMSB
	BitRangePattern  *string             `xml:"bitRange"`
	Access           *string             `xml:"access"`
	EnumeratedValues []*EnumeratedValues `xml:"enumeratedValues"`
}

type BitRangeOffsetWidth struct {
	BitOffset Uint  `xml:"bitOffset"`
	BitWidth  *Uint `xml:"bitWidth"`
}

type BitRangeLSBMSB struct {
	LSB Uint `xml:"lsb"`
	MSB Uint `xml:"msb"`
}

var ErrNoBitRange = errors.New("bit range not specified")

// BitRange returns the offset and width of the field, whichever of the three
// SVD notations is used.
func (f *Field) BitRange() (offset, width uint, err error) {
	switch {
	case f.BitRangeOffsetWidth != nil:
		offset = uint(f.BitOffset)
		width = 1
		if f.BitWidth != nil {
			width = uint(*f.BitWidth)
		}
	case f.BitRangeLSBMSB != nil:
		lsb, msb := uint(f.LSB), uint(f.MSB)
		if msb < lsb {
			return 0, 0, fmt.Errorf("%s: msb %d < lsb %d", f.Name, msb, lsb)
		}
		offset, width = lsb, msb-lsb+1
	case f.BitRangePattern != nil:
		var msb, lsb uint
		_, err = fmt.Sscanf(*f.BitRangePattern, "[%d:%d]", &msb, &lsb)
		if err != nil || msb < lsb {
			return 0, 0, fmt.Errorf(
				"%s: bad bitRange %q", f.Name, *f.BitRangePattern,
			)
		}
		offset, width = lsb, msb-lsb+1
	default:
		return 0, 0, fmt.Errorf("%s: %w", f.Name, ErrNoBitRange)
	}
	return offset, width, nil
}

type EnumeratedValues struct {
	DerivedFrom     *string            `xml:"derivedFrom,attr"`
	Name            *string            `xml:"name"`
	HeaderEnumName  *string            `xml:"headerEnumName"`
	Usage           *string            `xml:"usage"`
	EnumeratedValue []*EnumeratedValue `xml:"enumeratedValue"`
}

type EnumeratedValue struct {
	Name        *string `xml:"name"`
	Description *string `xml:"description"`
	Value       *string `xml:"value"`
	IsDefault   *bool   `xml:"isDefault"`
}

var ErrNilValue = errors.New("nil value")

func (ev *EnumeratedValue) Val() (uint64, error) {
	if ev.Value == nil {
		return 0, ErrNilValue
	}
	s := *ev.Value
	if s != "" && s[0] == '#' {
		// binary #1011 or binary #1x0x "do not care" format
		a := make([]byte, len(s)+1)
		a[0] = '0'
		a[1] = 'b'
		for i := 1; i < len(s); i++ {
			b := s[i]
			if b == 'x' || b == 'X' {
				b = '0'
			}
			a[i+1] = b
		}
		s = string(a)
	}
	return strconv.ParseUint(s, 0, 64)
}

type Cluster struct {
	DerivedFrom *string `xml:"derivedFrom,attr"`
	DimElementGroup
	Name          string  `xml:"name"`
	Description   *string `xml:"description"`
	AddressOffset Uint64  `xml:"addressOffset"`
	*RegisterPropertiesGroup
	Registers []*Register `xml:"register"`
	Clusters  []*Cluster  `xml:"cluster"`
}

// Decode reads an SVD document from r.
func Decode(r io.Reader) (*Device, error) {
	dev := new(Device)
	if err := xml.NewDecoder(r).Decode(dev); err != nil {
		return nil, err
	}
	return dev, nil
}

// Load decodes the SVD file at path.
func Load(path string) (*Device, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	dev, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return dev, nil
}
