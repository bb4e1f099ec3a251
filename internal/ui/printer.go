package ui

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/gookit/color"
	"golang.org/x/term"
)

// style is satisfied by the gookit/color themes and styles.
type style interface {
	Sprintf(format string, a ...any) string
}

var (
	colLabel   = color.Notice
	colInfo    = color.Info
	colWarn    = color.Warn
	colError   = color.Danger
	colSuccess = color.Success
)

// Printer writes bracket-labelled progress lines such as "[build] Running: cargo build".
// Info and success lines go to Out, warnings and errors to Err.
type Printer struct {
	Out   io.Writer
	Err   io.Writer
	Color bool
	Quiet bool
}

// NewPrinter returns a Printer with colour enabled when out is a terminal.
func NewPrinter(out, errOut io.Writer) *Printer {
	return &Printer{
		Out:   out,
		Err:   errOut,
		Color: IsTerminal(out),
	}
}

// Discard returns a Printer that drops everything. Handy in tests.
func Discard() *Printer {
	return &Printer{Out: io.Discard, Err: io.Discard}
}

func (p *Printer) paint(s style, format string, a ...any) string {
	if p.Color {
		return s.Sprintf(format, a...)
	}
	return fmt.Sprintf(format, a...)
}

func (p *Printer) line(w io.Writer, label string, s style, format string, a ...any) {
	if p == nil || w == nil {
		return
	}
	msg := strings.TrimRight(fmt.Sprintf(format, a...), "\n")
	if label == "" {
		fmt.Fprintln(w, p.paint(s, "%s", msg))
		return
	}
	fmt.Fprintf(w, "%s %s\n", p.paint(colLabel, "[%s]", label), p.paint(s, "%s", msg))
}

// Infof prints a progress line. Suppressed when Quiet is set.
func (p *Printer) Infof(label, format string, a ...any) {
	if p == nil || p.Quiet {
		return
	}
	p.line(p.Out, label, colInfo, format, a...)
}

// Successf prints a completion line. Suppressed when Quiet is set.
func (p *Printer) Successf(label, format string, a ...any) {
	if p == nil || p.Quiet {
		return
	}
	p.line(p.Out, label, colSuccess, format, a...)
}

// Warnf prints to Err and is never suppressed.
func (p *Printer) Warnf(label, format string, a ...any) {
	if p == nil {
		return
	}
	p.line(p.Err, label, colWarn, format, a...)
}

// Errorf prints to Err and is never suppressed.
func (p *Printer) Errorf(label, format string, a ...any) {
	if p == nil {
		return
	}
	p.line(p.Err, label, colError, format, a...)
}

// Plainf writes unlabelled text to Err as-is, used for summaries and remediation hints.
func (p *Printer) Plainf(format string, a ...any) {
	if p == nil || p.Err == nil {
		return
	}
	fmt.Fprintf(p.Err, format, a...)
}

// IsTerminal reports whether w is a file attached to a terminal.
func IsTerminal(w any) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}
