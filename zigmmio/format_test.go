// Copyright 2026 The Embedded Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package zigmmio

import (
	"context"
	"os/exec"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lookPath(t *testing.T, name string) string {
	t.Helper()
	path, err := exec.LookPath(name)
	if err != nil {
		t.Skipf("%s not available: %v", name, err)
	}
	return path
}

func TestParseCommand(t *testing.T) {
	f, err := ParseCommand(DefaultFormatter)
	require.NoError(t, err)
	c, ok := f.(*Command)
	require.True(t, ok)
	assert.Equal(t, "zig", c.Path)
	assert.Equal(t, []string{"fmt", "--stdin"}, c.Args)
	assert.Equal(t, "zig fmt --stdin", c.String())

	f, err = ParseCommand(`"/opt/zig 0.11/zig" fmt --stdin`)
	require.NoError(t, err)
	assert.Equal(t, "/opt/zig 0.11/zig", f.(*Command).Path)

	f, err = ParseCommand("  ")
	require.NoError(t, err)
	assert.Equal(t, Nop{}, f)
}

func TestNop(t *testing.T) {
	out, err := Nop{}.Format(context.Background(), []byte("const x = 1;"))
	require.NoError(t, err)
	assert.Equal(t, "const x = 1;", string(out))
}

func TestCommandFormat(t *testing.T) {
	src, err := New(Config{}).Generate(testDevice())
	require.NoError(t, err)
	c := &Command{Path: lookPath(t, "cat")}
	out, err := c.Format(context.Background(), src)
	require.NoError(t, err)
	assert.Equal(t, string(src), string(out))
}

func TestCommandFormatFails(t *testing.T) {
	c := &Command{Path: lookPath(t, "false")}
	out, err := c.Format(context.Background(), []byte("x"))
	assert.Error(t, err)
	assert.Nil(t, out)

	c = &Command{Path: "/nonexistent/zig", Args: []string{"fmt", "--stdin"}}
	_, err = c.Format(context.Background(), []byte("x"))
	assert.Error(t, err)
}

func TestCommandFormatCanceled(t *testing.T) {
	c := &Command{Path: lookPath(t, "cat")}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := c.Format(ctx, []byte("x"))
	assert.Error(t, err)
}
