// Copyright 2026 The Embedded Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package zigmmio

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanDescription(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"", ""},
		{"   ", ""},
		{"Enable", "Enable"},
		{"Enable\nthe  peripheral", "Enable the peripheral"},
		{"\n\t Start   HFCLK\r\n crystal oscillator \n", "Start HFCLK crystal oscillator"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, CleanDescription(tt.in), "input %q", tt.in)
	}
}

func TestCleanName(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"CTRL", "CTRL"},
		{"TASKS_START[0]", "TASKS_START_0"},
		{"CH[3].CNF", "CH_3.CNF"},
		{"PSEL[%s]", "PSEL_s"},
		{"DIR%s", "DIRs"},
		{"A[[1]]", "A_1"},
		{"odd]name[", "oddname"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, CleanName(tt.in), "input %q", tt.in)
	}
}

func TestCleanNameIdempotent(t *testing.T) {
	inputs := []string{
		"TASKS_START[0]", "A[[1]]", "x[%s]%", "[[]]", "]]x[[", "%%%",
		"EVENTS_COMPARE[12]", "a[b][c]", "a[b[c]d]",
	}
	for _, in := range inputs {
		once := CleanName(in)
		assert.Equal(t, once, CleanName(once), "input %q", in)
		assert.False(t, strings.ContainsAny(once, "[]%"), "input %q gives %q", in, once)
	}
}

func TestIdent(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"EN", "EN"},
		{"_hidden", "_hidden"},
		{"ch2", "ch2"},
		{"2MHz", `@"2MHz"`},
		{"error", `@"error"`},
		{"type", `@"type"`},
		{"u8", `@"u8"`},
		{"i32", `@"i32"`},
		{"u", "u"},
		{"u8x", "u8x"},
		{"_", `@"_"`},
		{"", `@""`},
		{"CH_3.CNF", `@"CH_3.CNF"`},
		{`say "hi"`, `@"say \"hi\""`},
		{`a\b`, `@"a\\b"`},
		{"a\tb\r\n", `@"a\tb\r\n"`},
		{"nul\x00del\x7f", `@"nul\x00del\x7f"`},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Ident(tt.in), "input %q", tt.in)
	}
	assert.Equal(t, `@"EN"`, RawIdent("EN"))
}
