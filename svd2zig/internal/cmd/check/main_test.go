// Copyright 2026 The Embedded Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package check

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/embeddedgo/svdzig/zigmmio"
)

const checkSVD = `<device>
  <name>chk</name>
  <peripherals>
    <peripheral>
      <name>TIMER</name>
      <baseAddress>0x40008000</baseAddress>
      <registers>
        <register>
          <name>MODE</name>
          <addressOffset>0x504</addressOffset>
          <fields>
            <field>
              <name>MODE</name>
              <bitOffset>0</bitOffset>
              <bitWidth>2</bitWidth>
              <enumeratedValues>
                <enumeratedValue><name>Timer</name><value>0</value></enumeratedValue>
                <enumeratedValue><name>Counter</name><value>1</value></enumeratedValue>
              </enumeratedValues>
            </field>
            <field>
              <name>DBG</name>
              <bitOffset>4</bitOffset>
              <bitWidth>1</bitWidth>
            </field>
          </fields>
        </register>
        <register>
          <name>TASKS_START</name>
          <addressOffset>0x000</addressOffset>
        </register>
      </registers>
    </peripheral>
  </peripherals>
</device>
`

func TestCheck(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chk.svd")
	require.NoError(t, os.WriteFile(path, []byte(checkSVD), 0o644))

	var buf bytes.Buffer
	require.NoError(t, Check(&buf, zigmmio.New(zigmmio.Config{}), path))
	want := path + ": 1 peripherals, 2 registers, 2 fields (1 enumerated), 29 reserved bits\n"
	assert.Equal(t, want, buf.String())
}

func TestCheckOverlap(t *testing.T) {
	svd := bytes.Replace(
		[]byte(checkSVD),
		[]byte("<bitOffset>4</bitOffset>"), []byte("<bitOffset>1</bitOffset>"), 1,
	)
	path := filepath.Join(t.TempDir(), "chk.svd")
	require.NoError(t, os.WriteFile(path, svd, 0o644))

	var buf bytes.Buffer
	err := Check(&buf, zigmmio.New(zigmmio.Config{}), path)
	require.Error(t, err)
	assert.True(t, errors.Is(err, zigmmio.ErrOverlap))
	assert.Empty(t, buf.String())
}
