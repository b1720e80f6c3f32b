// Package workflow drives the full patching run: locate, validate, classify,
// confirm, back up, apply, and on apply failure restore the original file
// from the backup.
//
// The flow is strictly linear. Clean aborts (user declined, nothing to do)
// return nil; every fatal condition returns an error for the caller to map
// to a non-zero exit.
package workflow

import (
	"errors"
	"fmt"
	"os"

	"mnypatch/internal/backup"
	"mnypatch/internal/hexview"
	"mnypatch/internal/locate"
	"mnypatch/internal/patch"
	"mnypatch/internal/report"
	"mnypatch/internal/validate"
)

// ErrNoTarget: no path argument was given and no default location exists.
var ErrNoTarget = errors.New("could not find mnyob99.dll in any default location")

// Config carries everything one run needs. Confirm and Printer are
// injectable so the workflow is testable without a real terminal.
type Config struct {
	// Path is the explicit target; empty means probe Candidates.
	Path string
	// Candidates overrides the default search locations (nil = defaults).
	Candidates []string
	// Check classifies and previews but never mutates.
	Check bool
	// Yes skips both confirmation prompts.
	Yes bool

	Specs   []patch.Spec
	Confirm func(prompt string) bool
	Printer *report.Printer
}

// Run executes the whole patching workflow.
func Run(cfg Config) error {
	p := cfg.Printer
	specs := cfg.Specs
	if len(specs) == 0 {
		specs = patch.Table()
	}

	// Step 1: resolve the target.
	path := cfg.Path
	if path == "" {
		cands := cfg.Candidates
		if cands == nil {
			cands = locate.DefaultPaths
		}
		var ok bool
		if path, ok = locate.FindIn(cands); !ok {
			return ErrNoTarget
		}
	}
	p.Infof("Target file: %s", path)

	// Step 2: validate.
	if err := validate.Target(path); err != nil {
		return err
	}
	if msg, ok := validate.SizeWarning(path); ok {
		p.Warnf("%s", msg)
	}

	// Step 3: classify.
	needsApply, alreadyApplied, findings, err := patch.Classify(path, specs)
	if err != nil {
		return err
	}
	for _, fd := range findings {
		if fd.State != patch.Unexpected {
			continue
		}
		p.Warnf("patch %d - unexpected byte at offset 0x%06X: found 0x%02X, expected 0x%02X or 0x%02X",
			fd.Index+1, fd.Offset, fd.Got, specs[fd.Index].Original, specs[fd.Index].Replacement)
	}

	if cfg.Check {
		return runCheck(p, path, specs, needsApply, alreadyApplied)
	}

	if len(needsApply) == 0 && len(alreadyApplied) == 0 {
		p.Warnf("file doesn't match expected patterns; this may not be the correct mnyob99.dll file")
		if !cfg.Yes && !cfg.Confirm("Continue anyway?") {
			p.Infof("Aborted.")
			return nil
		}
	}

	// Step 4: nothing left to write.
	if len(needsApply) == 0 {
		p.Successf("All patches already applied! No changes needed.")
		return nil
	}

	if len(alreadyApplied) > 0 {
		p.Infof("Found %d patches already applied.", len(alreadyApplied))
	}
	p.Infof("Found %d patches that need to be applied.", len(needsApply))

	// Step 5: confirm mutation.
	p.Infof("")
	p.Infof("This will modify the mnyob99.dll file to fix Microsoft Money crashes.")
	if !cfg.Yes && !cfg.Confirm("Continue?") {
		p.Infof("Aborted.")
		return nil
	}

	// Step 6: backup. No mutation without one.
	rec, err := backup.Create(path)
	if err != nil {
		return err
	}
	p.Infof("Backup created: %s", rec.Path)

	// Snapshot the patch region so the post-apply diff has a before image.
	start, end, before := readPatchRegion(path, specs)

	// Step 7: apply.
	p.Infof("")
	p.Infof("Applying %d patches...", len(needsApply))
	if err := patch.Apply(path, specs, needsApply, p.Infof); err != nil {
		p.Errorf("%v", err)
		p.Infof("Patching failed! Restoring backup...")
		if rerr := backup.Restore(rec, path); rerr != nil {
			// Worst case: the target may be left partially patched.
			p.Errorf("%v", rerr)
			p.Errorf("the target may be left in a partially patched state; copy %s over it by hand", rec.Path)
			return errors.Join(err, rerr)
		}
		p.Infof("Original file restored.")
		return err
	}

	// Step 8: report.
	if before != nil {
		if after, rerr := hexview.ReadRegion(path, start, end); rerr == nil {
			if diff, derr := hexview.Unified(path+" (before)", path+" (after)", before, after, start, 0); derr == nil && diff != "" {
				p.Infof("")
				p.Infof("%s", diff)
			}
		}
	}
	p.Infof("")
	p.Successf("Patching completed successfully!")
	p.Infof("The mnyob99.dll file has been patched to fix Microsoft Money crashes.")
	p.Infof("Original file backed up to: %s", rec.Path)
	return nil
}

// runCheck reports patch state and a would-be diff without touching the file.
func runCheck(p *report.Printer, path string, specs []patch.Spec, needsApply, alreadyApplied []int) error {
	p.Infof("Check mode: no changes will be made.")
	p.Infof("Patches needing application: %d, already applied: %d.", len(needsApply), len(alreadyApplied))
	if len(needsApply) == 0 {
		p.Successf("Nothing to do.")
		return nil
	}
	start, _, before := readPatchRegion(path, specs)
	if before == nil {
		return fmt.Errorf("reading patch region of %s for preview", path)
	}
	after := append([]byte(nil), before...)
	for _, idx := range needsApply {
		after[specs[idx].Offset-start] = specs[idx].Replacement
	}
	diff, err := hexview.Unified(path+" (current)", path+" (patched)", before, after, start, 0)
	if err != nil {
		return err
	}
	p.Infof("")
	p.Infof("%s", diff)
	return nil
}

// readPatchRegion loads the 16-aligned window covering all patch offsets.
// Best effort: a nil region just means the post-apply diff is skipped.
func readPatchRegion(path string, specs []patch.Spec) (start, end int64, region []byte) {
	offs := make([]int64, len(specs))
	var max int64
	for i, sp := range specs {
		offs[i] = sp.Offset
		if sp.Offset >= max {
			max = sp.Offset + 1
		}
	}
	// Window clamps to file size; use the max offset +1 row as the bound if
	// stat fails, since classification already proved those bytes readable.
	size := max + 16
	if fi, err := os.Stat(path); err == nil {
		size = fi.Size()
	}
	start, end = hexview.Window(offs, size)
	region, err := hexview.ReadRegion(path, start, end)
	if err != nil {
		return 0, 0, nil
	}
	return start, end, region
}
