// Package build turns configured targets into release archives.
//
// Targets build one at a time in configured order. A failing target is logged
// and collected; the run only fails when no target produced an archive.
package build

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/aottr/releasor/internal/config"
	"github.com/aottr/releasor/internal/platform"
	"github.com/aottr/releasor/internal/ui"
	"github.com/aottr/releasor/internal/utils"
)

var (
	ErrTargetFailed     = errors.New("target failed")
	ErrAllTargetsFailed = errors.New("all build targets failed")
)

// Artifact is an archive produced for one target.
type Artifact struct {
	Target string
	Path   string
}

// Name is the archive's file name, which is also its release asset name.
func (a Artifact) Name() string {
	return filepath.Base(a.Path)
}

// Failure records why a target produced no archive. Path is where the
// artifact was expected, if the build got that far.
type Failure struct {
	Target string
	Path   string
	Err    error
}

type Result struct {
	Archives []Artifact
	Failed   []Failure
}

func (r *Result) FailedTargets() []string {
	out := make([]string, 0, len(r.Failed))
	for _, f := range r.Failed {
		out = append(out, f.Target)
	}
	return out
}

func (r *Result) SucceededTargets() []string {
	out := make([]string, 0, len(r.Archives))
	for _, a := range r.Archives {
		out = append(out, a.Target)
	}
	return out
}

type Pipeline struct {
	Project   config.Project
	Build     config.Build
	Runner    utils.Runner
	Toolchain platform.Toolchain
	Out       *ui.Printer
}

type crossInfo struct {
	host      string
	available bool
}

// BuildAll builds, locates and archives every target. It returns
// ErrAllTargetsFailed when nothing was archived.
func (p *Pipeline) BuildAll(ctx context.Context, version string) (*Result, error) {
	staging := p.Build.Staging()
	if err := os.MkdirAll(staging, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create staging dir %s: %w", staging, err)
	}

	cross := p.detectCross(ctx)
	binary := p.Project.BinaryName()
	res := &Result{}

	for _, target := range p.Build.Targets {
		vars := []utils.Var{
			{Key: "target", Value: target},
			{Key: "binary", Value: binary},
			{Key: "version", Value: version},
		}

		artifactPath, err := p.produce(ctx, target, vars, cross)
		if err == nil {
			dest := filepath.Join(staging, ArchiveName(binary, version, target))
			if err = p.archive(artifactPath, dest); err == nil {
				res.Archives = append(res.Archives, Artifact{Target: target, Path: dest})
				continue
			}
		}
		p.Out.Warnf("build", "Warning: target %s failed: %v", target, err)
		res.Failed = append(res.Failed, Failure{
			Target: target,
			Path:   artifactPath,
			Err:    fmt.Errorf("%w: %s: %w", ErrTargetFailed, target, err),
		})
	}

	if len(res.Archives) == 0 {
		return res, fmt.Errorf("%w (%d/%d)", ErrAllTargetsFailed, len(res.Failed), len(p.Build.Targets))
	}
	return res, nil
}

// detectCross only probes the toolchain when a cargo build can be rewritten.
func (p *Pipeline) detectCross(ctx context.Context) crossInfo {
	if p.Build.Mode() != config.BuildCommand || !strings.Contains(p.Build.Command, cargoBuild) || p.Toolchain == nil {
		return crossInfo{}
	}
	host, _ := p.Toolchain.HostTarget(ctx)
	return crossInfo{host: host, available: p.Toolchain.HasCrossBuilder(ctx)}
}

// produce runs the build (command mode) and returns the path of the artifact,
// which must exist.
func (p *Pipeline) produce(ctx context.Context, target string, vars []utils.Var, cross crossInfo) (string, error) {
	var path string
	switch p.Build.Mode() {
	case config.BuildCommand:
		line := utils.Substitute(p.Build.Command, vars...)
		selected := SelectInvocation(line, cross.host, target, cross.available)
		if selected != line {
			p.Out.Warnf("build", "Using cargo-zigbuild for cross-compilation target %s", target)
		}
		name, args, err := utils.SplitCommand(selected)
		if err != nil {
			return "", err
		}
		if _, err := p.Runner.Run(ctx, utils.Command{Label: "build", Name: name, Args: args}); err != nil {
			return "", err
		}
		path = utils.Substitute(p.Build.Artifact, vars...)
	case config.BuildPreBuilt:
		dir := utils.Substitute(p.Build.PreBuiltDir, vars...)
		path = filepath.Join(dir, p.Project.BinaryName()+"-"+target)
	}

	if _, err := os.Stat(path); err != nil {
		return path, fmt.Errorf("artifact not found at %s", path)
	}
	return path, nil
}

func (p *Pipeline) archive(src, dest string) error {
	if err := CreateTarGz(src, dest); err != nil {
		return fmt.Errorf("failed to archive %s: %w", src, err)
	}
	p.Out.Infof("build", "Archived %s", filepath.Base(dest))
	return nil
}
