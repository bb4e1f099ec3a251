package ui

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Prompter asks the operator a yes/no question.
type Prompter interface {
	Confirm(question string) (bool, error)
}

// StdinPrompter reads answers line by line from In and writes the question to Out.
type StdinPrompter struct {
	In  io.Reader
	Out io.Writer

	reader *bufio.Reader
}

func NewStdinPrompter(in io.Reader, out io.Writer) *StdinPrompter {
	return &StdinPrompter{In: in, Out: out}
}

// Confirm defaults to "no": only a single y or Y counts as yes. EOF is a no, not an error.
func (s *StdinPrompter) Confirm(question string) (bool, error) {
	if s.reader == nil {
		s.reader = bufio.NewReader(s.In)
	}
	fmt.Fprintf(s.Out, "%s [y/N] ", question)
	response, err := s.reader.ReadString('\n')
	if err != nil && err != io.EOF {
		return false, fmt.Errorf("read answer: %w", err)
	}
	return strings.EqualFold(strings.TrimSpace(response), "y"), nil
}
