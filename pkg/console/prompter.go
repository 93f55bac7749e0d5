package console

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
)

var (
	// ErrInterrupted is returned when the user presses Ctrl+C
	ErrInterrupted = errors.New("input interrupted")
	// ErrInputClosed is returned when input ends before a question is answered
	ErrInputClosed = errors.New("input closed")
)

// ReadlinePrompter asks questions on an interactive terminal
type ReadlinePrompter struct {
	rl    *readline.Instance
	label func(string) string
}

// NewReadlinePrompter creates a prompter using the console's prompt style
func NewReadlinePrompter(c *Console) (*ReadlinePrompter, error) {
	rl, err := readline.NewEx(&readline.Config{
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return nil, fmt.Errorf("error initializing readline: %w", err)
	}
	return &ReadlinePrompter{rl: rl, label: c.PromptLabel}, nil
}

// Ask shows question and returns the trimmed answer
func (p *ReadlinePrompter) Ask(question string) (string, error) {
	p.rl.SetPrompt(p.label(question))
	line, err := p.rl.Readline()
	if err != nil {
		if errors.Is(err, readline.ErrInterrupt) {
			return "", ErrInterrupted
		}
		if errors.Is(err, io.EOF) {
			return "", ErrInputClosed
		}
		return "", fmt.Errorf("error reading input: %w", err)
	}
	return strings.TrimSpace(line), nil
}

// Close restores the terminal
func (p *ReadlinePrompter) Close() error {
	return p.rl.Close()
}

// LinePrompter reads answers line by line from a non-interactive reader
type LinePrompter struct {
	scanner *bufio.Scanner
	out     io.Writer
	label   func(string) string
}

// NewLinePrompter creates a prompter reading from r and echoing questions to w
func NewLinePrompter(r io.Reader, w io.Writer) *LinePrompter {
	return &LinePrompter{
		scanner: bufio.NewScanner(r),
		out:     w,
		label:   func(q string) string { return "❓ " + q + " " },
	}
}

// Ask writes question and returns the next trimmed line
func (p *LinePrompter) Ask(question string) (string, error) {
	fmt.Fprint(p.out, p.label(question))
	if !p.scanner.Scan() {
		if err := p.scanner.Err(); err != nil {
			return "", fmt.Errorf("error reading input: %w", err)
		}
		return "", ErrInputClosed
	}
	answer := strings.TrimSpace(p.scanner.Text())
	fmt.Fprintln(p.out)
	return answer, nil
}

// Close is a no-op
func (p *LinePrompter) Close() error { return nil }

// IsYes reports whether an answer starts with "y" (case-insensitive)
func IsYes(answer string) bool {
	return strings.HasPrefix(strings.ToLower(strings.TrimSpace(answer)), "y")
}
