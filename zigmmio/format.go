// Copyright 2026 The Embedded Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package zigmmio

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/google/shlex"
)

// DefaultFormatter is the command line of the canonical Zig formatter.
const DefaultFormatter = "zig fmt --stdin"

type Formatter interface {
	Format(ctx context.Context, src []byte) ([]byte, error)
}

// Nop is a Formatter that returns the source unchanged.
type Nop struct{}

func (Nop) Format(_ context.Context, src []byte) ([]byte, error) {
	return src, nil
}

// Command is a Formatter that pipes the source through an external program
// and returns its standard output.
type Command struct {
	Path string
	Args []string
}

// ParseCommand splits a shell-like command line. An empty line gives the Nop
// formatter.
func ParseCommand(line string) (Formatter, error) {
	args, err := shlex.Split(line)
	if err != nil {
		return nil, fmt.Errorf("formatter %q: %w", line, err)
	}
	if len(args) == 0 {
		return Nop{}, nil
	}
	return &Command{Path: args[0], Args: args[1:]}, nil
}

func (c *Command) String() string {
	return strings.Join(append([]string{c.Path}, c.Args...), " ")
}

// Format runs the command once. The output is discarded if the command
// cannot be started, fails to consume its input or exits with non-zero
// status.
func (c *Command) Format(ctx context.Context, src []byte) ([]byte, error) {
	cmd := exec.CommandContext(ctx, c.Path, c.Args...)
	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, err
	}
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("%s: %w", c.Path, err)
	}
	_, werr := stdin.Write(src)
	cerr := stdin.Close()
	if err := cmd.Wait(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return nil, fmt.Errorf("%s: %w\n%s", c, err, msg)
		}
		return nil, fmt.Errorf("%s: %w", c, err)
	}
	if err := errors.Join(werr, cerr); err != nil {
		return nil, fmt.Errorf("%s: writing input: %w", c, err)
	}
	return stdout.Bytes(), nil
}
