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

var errEmptyInput = errors.New("no input given")

// termPrompter reads secrets with echo disabled when in is a terminal and
// falls back to plain line reads otherwise (pipes, tests).
type termPrompter struct {
	in     io.Reader
	reader *bufio.Reader
	out    io.Writer
}

func newPrompter(in io.Reader, out io.Writer) *termPrompter {
	return &termPrompter{in: in, reader: bufio.NewReader(in), out: out}
}

func (p *termPrompter) Secret(prompt string) (string, error) {
	if f, ok := p.in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fmt.Fprint(p.out, prompt)
		b, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(p.out)
		if err != nil {
			return "", fmt.Errorf("failed to read input: %w", err)
		}
		return string(b), nil
	}
	return p.Line(prompt)
}

func (p *termPrompter) Line(prompt string) (string, error) {
	fmt.Fprint(p.out, prompt)
	line, err := p.reader.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		if errors.Is(err, io.EOF) {
			return "", errEmptyInput
		}
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// readAll returns the rest of the input, for note bodies piped on stdin.
func (p *termPrompter) readAll() (string, error) {
	b, err := io.ReadAll(p.reader)
	if err != nil {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	return string(b), nil
}

// askNewSecret prompts twice and requires both answers to match.
func askNewSecret(p Prompter, what string) (string, error) {
	first, err := p.Secret(what + ": ")
	if err != nil {
		return "", err
	}
	if first == "" {
		return "", errEmptyInput
	}
	second, err := p.Secret("Repeat " + strings.ToLower(what) + ": ")
	if err != nil {
		return "", err
	}
	if first != second {
		return "", fmt.Errorf("%s entries do not match", strings.ToLower(what))
	}
	return first, nil
}
