package build

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aottr/releasor/internal/config"
	"github.com/aottr/releasor/internal/platform"
	"github.com/aottr/releasor/internal/ui"
)

var ErrUserAborted = errors.New("aborted by user")

const continueQuestion = "Continue with successful targets?"

// Report explains a partially failed build and how to fix each failure.
type Report struct {
	Total     int
	Failed    []string
	Succeeded []string

	// cargo builds only
	NotInstalled []string
	NoLinker     []string

	// pre-built mode only
	PreBuiltDir string
	Expected    []string
}

// Triage classifies the failures in res. Cargo failures are split by whether
// rustup has the target installed; pre-built failures list the path that was
// looked for.
func Triage(ctx context.Context, b config.Build, res *Result, tc platform.Toolchain) Report {
	r := Report{
		Total:     len(b.Targets),
		Failed:    res.FailedTargets(),
		Succeeded: res.SucceededTargets(),
	}
	if len(r.Failed) == 0 {
		return r
	}

	switch b.Mode() {
	case config.BuildCommand:
		if !strings.Contains(b.Command, "cargo") || tc == nil {
			break
		}
		installed := tc.InstalledTargets(ctx)
		for _, t := range r.Failed {
			if _, ok := installed[t]; ok {
				r.NoLinker = append(r.NoLinker, t)
			} else {
				r.NotInstalled = append(r.NotInstalled, t)
			}
		}
	case config.BuildPreBuilt:
		r.PreBuiltDir = b.PreBuiltDir
		for _, f := range res.Failed {
			r.Expected = append(r.Expected, f.Path)
		}
	}
	return r
}

func (r Report) Print(p *ui.Printer) {
	p.Plainf("\n%d/%d targets failed:\n", len(r.Failed), r.Total)
	for _, t := range r.Failed {
		p.Plainf("  - %s\n", t)
	}
	if len(r.NotInstalled) > 0 {
		p.Plainf("\nMissing targets (install with rustup):\n")
		for _, t := range r.NotInstalled {
			p.Plainf("  rustup target add %s\n", t)
		}
	}
	if len(r.NoLinker) > 0 {
		p.Plainf("\nInstalled but failed to build (missing cross-compilation linker):\n")
		for _, t := range r.NoLinker {
			p.Plainf("  - %s\n", t)
		}
		p.Plainf("  Tip: install `cross` (uses Docker) or `cargo-zigbuild` (uses zig) for cross-compilation\n")
	}
	if len(r.Expected) > 0 {
		p.Plainf("\nExpected pre-built artifacts in %s:\n", r.PreBuiltDir)
		for _, path := range r.Expected {
			p.Plainf("  %s\n", path)
		}
	}
	p.Plainf("\nSucceeded: %s\n", strings.Join(r.Succeeded, ", "))
}

// Gate lets a partially failed build continue only with operator consent.
// With no failures it returns immediately without prompting.
func Gate(r Report, p *ui.Printer, prompter ui.Prompter) error {
	if len(r.Failed) == 0 {
		return nil
	}
	r.Print(p)
	ok, err := prompter.Confirm(continueQuestion)
	if err != nil {
		return fmt.Errorf("confirmation failed: %w", err)
	}
	if !ok {
		return ErrUserAborted
	}
	return nil
}
