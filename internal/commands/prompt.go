package commands

import (
	"bufio"
	"fmt"
	"io"
)

// Prompter asks the user a question and returns the raw answer line
type Prompter interface {
	Prompt(message string) (string, error)
}

// consolePrompter writes prompts to out and reads answers from in
type consolePrompter struct {
	in  *bufio.Reader
	out io.Writer
}

// NewConsolePrompter creates a Prompter reading one line per answer
func NewConsolePrompter(in io.Reader, out io.Writer) Prompter {
	return &consolePrompter{in: bufio.NewReader(in), out: out}
}

// Prompt blocks until a full line (or end of input) is read
// End of input yields whatever was typed so far, possibly nothing
func (p *consolePrompter) Prompt(message string) (string, error) {
	fmt.Fprint(p.out, message)

	line, err := p.in.ReadString('\n')
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	return line, nil
}
