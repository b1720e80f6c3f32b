// Package report owns all user-facing terminal output: progress lines,
// colored warnings and errors, and the yes/no confirmation prompts.
//
// Color uses github.com/fatih/color and is enabled only when the caller asks
// for it (typically: stdout is a terminal and -no-color is unset).
package report

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

// Printer writes progress to out and warnings/errors to errOut.
type Printer struct {
	out    io.Writer
	errOut io.Writer

	warnf    func(format string, a ...any) string
	errf     func(format string, a ...any) string
	successf func(format string, a ...any) string
}

// New builds a Printer. With colored=false every style function degrades to
// plain fmt.Sprintf, so output is byte-identical minus ANSI sequences.
func New(out, errOut io.Writer, colored bool) *Printer {
	p := &Printer{
		out:      out,
		errOut:   errOut,
		warnf:    fmt.Sprintf,
		errf:     fmt.Sprintf,
		successf: fmt.Sprintf,
	}
	if colored {
		p.warnf = color.New(color.FgYellow).SprintfFunc()
		p.errf = color.New(color.FgRed, color.Bold).SprintfFunc()
		p.successf = color.New(color.FgGreen).SprintfFunc()
	}
	return p
}

// Infof prints one progress line to out.
func (p *Printer) Infof(format string, a ...any) {
	fmt.Fprintf(p.out, format+"\n", a...)
}

// Warnf prints a non-fatal warning to errOut.
func (p *Printer) Warnf(format string, a ...any) {
	fmt.Fprintln(p.errOut, p.warnf("Warning: "+format, a...))
}

// Errorf prints a failure to errOut.
func (p *Printer) Errorf(format string, a ...any) {
	fmt.Fprintln(p.errOut, p.errf("Error: "+format, a...))
}

// Successf prints a completion line to out.
func (p *Printer) Successf(format string, a ...any) {
	fmt.Fprintln(p.out, p.successf(format, a...))
}

// Confirmer returns a prompt function that writes "<prompt> (y/N): " to out
// and reads one line from in. Only the single token "y" (case-insensitive,
// surrounding whitespace ignored) counts as yes; anything else, including
// read errors and EOF, is no.
func Confirmer(in io.Reader, out io.Writer) func(prompt string) bool {
	r := bufio.NewReader(in)
	return func(prompt string) bool {
		fmt.Fprintf(out, "%s (y/N): ", prompt)
		line, err := r.ReadString('\n')
		if err != nil && line == "" {
			return false
		}
		return strings.EqualFold(strings.TrimSpace(line), "y")
	}
}
