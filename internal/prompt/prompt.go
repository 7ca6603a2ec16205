// Package prompt collects credentials interactively from the terminal.
package prompt

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// Terminal prompts for credentials on a terminal, suppressing echo for
// secrets. When the input is not a terminal (piped input), secrets fall
// back to plain line reads.
type Terminal struct {
	in     *os.File
	out    io.Writer
	reader *bufio.Reader
}

// NewTerminal returns a prompter reading from stdin and writing prompts
// to stderr, keeping stdout free for command output.
func NewTerminal() *Terminal {
	return newTerminal(os.Stdin, os.Stderr)
}

func newTerminal(in *os.File, out io.Writer) *Terminal {
	return &Terminal{
		in:     in,
		out:    out,
		reader: bufio.NewReader(in),
	}
}

// IsInteractive reports whether the input is an actual terminal.
func (t *Terminal) IsInteractive() bool {
	return term.IsTerminal(int(t.in.Fd()))
}

func (t *Terminal) PromptEmail(ctx context.Context) (string, error) {
	text, err := t.readLine(ctx, "Email: ")
	return strings.TrimSpace(text), err
}

func (t *Terminal) PromptPassword(ctx context.Context) (string, error) {
	return t.readSecret(ctx, "Password: ")
}

func (t *Terminal) PromptMFACode(ctx context.Context) (string, error) {
	code, err := t.readSecret(ctx, "Two-factor code: ")
	return strings.TrimSpace(code), err
}

type readResult struct {
	text string
	err  error
}

// readLine reads one line from the input. An EOF that still carried text
// is treated as a complete line. A read abandoned through ctx keeps its
// goroutine alive until the underlying read returns.
func (t *Terminal) readLine(ctx context.Context, prompt string) (string, error) {
	fmt.Fprint(t.out, prompt)

	ch := make(chan readResult, 1)
	go func() {
		line, err := t.reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			ch <- readResult{err: fmt.Errorf("reading input: %w", err)}
			return
		}
		ch <- readResult{text: strings.TrimRight(line, "\r\n")}
	}()

	select {
	case res := <-ch:
		return res.text, res.err
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

func (t *Terminal) readSecret(ctx context.Context, prompt string) (string, error) {
	if !t.IsInteractive() {
		return t.readLine(ctx, prompt)
	}

	fmt.Fprint(t.out, prompt)

	ch := make(chan readResult, 1)
	go func() {
		raw, err := term.ReadPassword(int(t.in.Fd()))
		if err != nil {
			ch <- readResult{err: fmt.Errorf("reading secret input: %w", err)}
			return
		}
		ch <- readResult{text: string(raw)}
	}()

	select {
	case res := <-ch:
		// The suppressed echo swallowed the user's newline.
		fmt.Fprintln(t.out)
		return res.text, res.err
	case <-ctx.Done():
		fmt.Fprintln(t.out)
		return "", ctx.Err()
	}
}
