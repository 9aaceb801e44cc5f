// Copyright 2026 The Embedded Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hex

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/marcinbor85/gohex"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/embeddedgo/svdzig/svd2zig/internal/config"
)

const hexSVD = `<device>
  <name>rst</name>
  <width>32</width>
  <size>16</size>
  <resetValue>0xFFFF</resetValue>
  <peripherals>
    <peripheral>
      <name>RTC</name>
      <baseAddress>0x4000B000</baseAddress>
      <registers>
        <register>
          <name>PRESCALER</name>
          <addressOffset>0x0</addressOffset>
          <size>32</size>
          <resetValue>0x00000BB8</resetValue>
        </register>
        <register>
          <name>CC</name>
          <addressOffset>0x4</addressOffset>
        </register>
      </registers>
    </peripheral>
  </peripherals>
</device>
`

func TestWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rst.svd")
	require.NoError(t, os.WriteFile(path, []byte(hexSVD), 0o644))

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, path, config.Default()))

	mem := gohex.NewMemory()
	require.NoError(t, mem.ParseIntelHex(&buf))
	assert.Equal(
		t,
		[]byte{0xB8, 0x0B, 0x00, 0x00, 0xFF, 0xFF, 0x00},
		mem.ToBinary(0x4000B000, 7, 0x00),
	)
}
