// Copyright 2026 The Embedded Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package zigmmio

import (
	"fmt"
	"regexp"
	"strings"
)

// CleanDescription turns a multi-line descriptor text into a single line
// with all whitespace runs collapsed to one space.
func CleanDescription(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Nordic SVDs use names like TASKS_START[0] and some vendors leave %s
// placeholders in register names.
var subscript = regexp.MustCompile(`\[([^\]]*)\]`)

// CleanName rewrites name[index] to name_index and removes all '%', '[' and
// ']' characters. CleanName(CleanName(s)) == CleanName(s).
func CleanName(s string) string {
	s = subscript.ReplaceAllString(s, "_$1")
	return strings.Map(
		func(r rune) rune {
			switch r {
			case '%', '[', ']':
				return -1
			}
			return r
		},
		s,
	)
}

var keywords = map[string]bool{
	"addrspace": true, "align": true, "allowzero": true, "and": true,
	"anyframe": true, "anytype": true, "asm": true, "async": true,
	"await": true, "break": true, "callconv": true, "catch": true,
	"comptime": true, "const": true, "continue": true, "defer": true,
	"else": true, "enum": true, "errdefer": true, "error": true,
	"export": true, "extern": true, "fn": true, "for": true, "if": true,
	"inline": true, "linksection": true, "noalias": true,
	"noinline": true, "nosuspend": true, "opaque": true, "or": true,
	"orelse": true, "packed": true, "pub": true, "resume": true,
	"return": true, "struct": true, "suspend": true, "switch": true,
	"test": true, "threadlocal": true, "try": true, "union": true,
	"unreachable": true, "usingnamespace": true, "var": true,
	"volatile": true, "while": true,

	// primitive values and types that cannot be shadowed
	"true": true, "false": true, "null": true, "undefined": true,
	"bool": true, "void": true, "type": true, "anyerror": true,
	"anyopaque": true, "noreturn": true, "isize": true, "usize": true,
	"comptime_int": true, "comptime_float": true, "f16": true,
	"f32": true, "f64": true, "f80": true, "f128": true,
	"c_char": true, "c_short": true, "c_ushort": true, "c_int": true,
	"c_uint": true, "c_long": true, "c_ulong": true, "c_longlong": true,
	"c_ulonglong": true, "c_longdouble": true,
}

// isIntType reports whether s is an arbitrary bit width integer type name
// (u8, i7, u0).
func isIntType(s string) bool {
	if len(s) < 2 || s[0] != 'u' && s[0] != 'i' {
		return false
	}
	for _, c := range s[1:] {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

func isBareIdent(s string) bool {
	if s == "" || s == "_" || keywords[s] || isIntType(s) {
		return false
	}
	for i, c := range s {
		switch {
		case c == '_', c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z':
		case c >= '0' && c <= '9' && i > 0:
		default:
			return false
		}
	}
	return true
}

// Ident returns s if it can be used as a bare Zig identifier, otherwise
// the @"s" raw identifier form.
func Ident(s string) string {
	if isBareIdent(s) {
		return s
	}
	return RawIdent(s)
}

// RawIdent always returns the @"s" form.
func RawIdent(s string) string {
	return "@" + quote(s)
}

// quote returns s as a Zig string literal.
func quote(s string) string {
	var sb strings.Builder
	sb.WriteByte('"')
	for i := 0; i < len(s); i++ {
		switch c := s[i]; c {
		case '"', '\\':
			sb.WriteByte('\\')
			sb.WriteByte(c)
		case '\n':
			sb.WriteString(`\n`)
		case '\r':
			sb.WriteString(`\r`)
		case '\t':
			sb.WriteString(`\t`)
		default:
			if c < 0x20 || c == 0x7f {
				fmt.Fprintf(&sb, `\x%02x`, c)
				continue
			}
			sb.WriteByte(c)
		}
	}
	sb.WriteByte('"')
	return sb.String()
}
