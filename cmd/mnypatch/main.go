// Package main provides the mnypatch CLI, which applies Raymond Chen's
// four-byte crash fix to Microsoft Money's mnyob99.dll. It validates the
// target, classifies each patch byte, takes a full backup before writing
// anything, and restores the backup wholesale if any write fails
// verification.
//
// Usage:
//   - mnypatch [flags] [path-to-mnyob99.dll]
//   - with no path, a fixed list of known install locations is probed.
//
// Key design goals:
//   - Never mutate without a completed backup
//   - Re-verify every byte immediately before writing it
//   - Clean exit 0 on user abort or nothing-to-do; exit 1 on any error
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mattn/go-isatty"

	"mnypatch/internal/locate"
	"mnypatch/internal/report"
	"mnypatch/internal/workflow"
)

// Options is the parsed command line.
type Options struct {
	target  string
	check   bool
	yes     bool
	noColor bool
}

// parseFlags parses args (without the program name) into Options.
// Zero or one positional argument is accepted.
func parseFlags(args []string) (Options, error) {
	var opts Options
	fs := flag.NewFlagSet("mnypatch", flag.ContinueOnError)
	fs.Usage = func() {
		w := fs.Output()
		fmt.Fprintf(w, "Usage:\n")
		fmt.Fprintf(w, "  %s [flags] [path-to-mnyob99.dll]\n", filepath.Base(os.Args[0]))
		fmt.Fprintln(w, "\nWith no path, these locations are probed in order:")
		for _, p := range locate.DefaultPaths {
			fmt.Fprintf(w, "  %s\n", p)
		}
		fmt.Fprintln(w, "\nFlags:")
		fs.PrintDefaults()
	}
	fs.BoolVar(&opts.check, "check", false, "classify and preview only; never modify the file")
	fs.BoolVar(&opts.yes, "yes", false, "answer yes to all prompts (no interactive confirmation)")
	fs.BoolVar(&opts.noColor, "no-color", false, "disable colored output")
	if err := fs.Parse(args); err != nil {
		return Options{}, err
	}
	if fs.NArg() > 1 {
		fs.Usage()
		return Options{}, fmt.Errorf("at most one target path, got %d arguments", fs.NArg())
	}
	opts.target = fs.Arg(0)
	return opts, nil
}

func main() {
	opts, err := parseFlags(os.Args[1:])
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintln(os.Stderr, "ERROR:", err)
		os.Exit(2)
	}

	colored := !opts.noColor && isatty.IsTerminal(os.Stdout.Fd())
	p := report.New(os.Stdout, os.Stderr, colored)

	p.Infof("Microsoft Money mnyob99.dll Patcher")
	p.Infof("========================================")

	err = workflow.Run(workflow.Config{
		Path:    opts.target,
		Check:   opts.check,
		Yes:     opts.yes,
		Confirm: report.Confirmer(os.Stdin, os.Stdout),
		Printer: p,
	})
	if err != nil {
		p.Errorf("%v", err)
		if errors.Is(err, workflow.ErrNoTarget) {
			fmt.Fprintf(os.Stderr, "Please specify the path to mnyob99.dll as a command line argument:\n")
			fmt.Fprintf(os.Stderr, "  %s <path-to-mnyob99.dll>\n", filepath.Base(os.Args[0]))
		}
		os.Exit(1)
	}
}
