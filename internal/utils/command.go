package utils

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/aottr/releasor/internal/ui"
)

// Command is a single external program invocation.
type Command struct {
	Label string // progress label, e.g. "build"
	Dir   string // working directory, empty for the current one
	Name  string
	Args  []string
}

func (c Command) String() string {
	return strings.TrimSpace(c.Name + " " + strings.Join(c.Args, " "))
}

// Runner executes commands. Stdout is returned trimmed.
type Runner interface {
	Run(ctx context.Context, c Command) (string, error)
}

// ExitError reports a command that started but exited non-zero.
type ExitError struct {
	Command Command
	Code    int
	Stderr  string
}

func (e *ExitError) Error() string {
	msg := fmt.Sprintf("%s failed (exit %d)", e.Command.Name, e.Code)
	if s := strings.TrimSpace(e.Stderr); s != "" {
		msg += ": " + s
	}
	return msg
}

// ExecRunner runs commands with os/exec, logging each invocation on Out.
type ExecRunner struct {
	Out *ui.Printer
}

func (r ExecRunner) Run(ctx context.Context, c Command) (string, error) {
	opts := GetExecOptions(ctx)
	if c.Label != "" {
		r.Out.Infof(c.Label, "Running: %s", c)
	}
	cmd := exec.CommandContext(ctx, c.Name, c.Args...)
	cmd.Dir = c.Dir

	var out bytes.Buffer
	var stderr bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &stderr
	if opts.Verbose {
		cmd.Stdout = io.MultiWriter(&out, os.Stdout)
		cmd.Stderr = io.MultiWriter(&stderr, os.Stderr)
	}

	err := cmd.Run()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return "", &ExitError{Command: c, Code: exitErr.ExitCode(), Stderr: stderr.String()}
		}
		return "", fmt.Errorf("failed to run %s: %w", c.Name, err)
	}
	return strings.TrimSpace(out.String()), nil
}

// SplitCommand splits a command line on whitespace into program and arguments.
// No shell quoting is interpreted.
func SplitCommand(line string) (string, []string, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return "", nil, errors.New("empty command")
	}
	return fields[0], fields[1:], nil
}
