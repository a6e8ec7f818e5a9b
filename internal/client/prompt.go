// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// terminalPrompter reads secrets from a terminal with echo disabled.
type terminalPrompter struct {
	in  io.Reader
	out io.Writer
}

func (p terminalPrompter) Secret(prompt string) (string, error) {
	f, ok := p.in.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return "", ErrNotATerminal
	}

	fmt.Fprint(p.out, prompt)
	secret, err := term.ReadPassword(int(f.Fd()))
	fmt.Fprintln(p.out)
	if err != nil {
		return "", fmt.Errorf("read secret: %w", err)
	}

	return string(secret), nil
}

// linePrompter serves one line of its reader per secret. It backs
// --password-stdin.
type linePrompter struct {
	r *bufio.Reader
}

func newLinePrompter(in io.Reader) *linePrompter {
	return &linePrompter{r: bufio.NewReader(in)}
}

func (p *linePrompter) Secret(string) (string, error) {
	line, err := p.r.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read secret from stdin: %w", err)
	}
	if errors.Is(err, io.EOF) && line == "" {
		return "", ErrNoSecretOnStdin
	}

	return strings.TrimRight(line, "\r\n"), nil
}
