package channels

import (
	"context"
	"fmt"
	"strings"

	"github.com/aottr/releasor/internal/build"
	"github.com/aottr/releasor/internal/config"
	"github.com/aottr/releasor/internal/github"
	"github.com/aottr/releasor/internal/platform"
	"github.com/aottr/releasor/internal/ui"
	"github.com/aottr/releasor/internal/utils"
	"github.com/aottr/releasor/internal/version"
)

// Releaser runs one release: resolve the version, build every target once,
// then publish to each selected channel in order.
type Releaser struct {
	Config    *config.Config
	Runner    utils.Runner
	GitHub    github.API
	Toolchain platform.Toolchain
	Prompter  ui.Prompter
	Out       *ui.Printer
}

// Select validates requested channel names against the enabled ones. An empty
// request selects every enabled channel. Repeated names are kept once.
func Select(enabled []config.ChannelName, requested []string) ([]config.ChannelName, error) {
	if len(requested) == 0 {
		return enabled, nil
	}
	isEnabled := make(map[config.ChannelName]bool, len(enabled))
	for _, name := range enabled {
		isEnabled[name] = true
	}

	seen := make(map[config.ChannelName]bool, len(requested))
	selected := make([]config.ChannelName, 0, len(requested))
	for _, raw := range requested {
		if !config.IsKnownChannel(raw) {
			return nil, fmt.Errorf("%w: %s (known: %s)", ErrUnknownChannel, raw, joinNames(config.KnownChannels))
		}
		name := config.ChannelName(raw)
		if !isEnabled[name] {
			return nil, fmt.Errorf("%w: %s", ErrChannelNotEnabled, name)
		}
		if !seen[name] {
			seen[name] = true
			selected = append(selected, name)
		}
	}
	return selected, nil
}

// Order moves github to the front so later channels can reference its release.
func Order(selected []config.ChannelName) []config.ChannelName {
	ordered := make([]config.ChannelName, 0, len(selected))
	for _, name := range selected {
		if name == config.ChannelGitHub {
			ordered = append(ordered, name)
		}
	}
	for _, name := range selected {
		if name != config.ChannelGitHub {
			ordered = append(ordered, name)
		}
	}
	return ordered
}

func (r *Releaser) Release(ctx context.Context, versionOverride string, requested []string) error {
	cfg := r.Config
	selected, err := Select(cfg.EnabledChannels(), requested)
	if err != nil {
		return utils.Label("release", err)
	}
	if len(selected) == 0 {
		r.Out.Infof("", "No channels enabled.")
		return nil
	}

	ver, err := version.Resolve(ctx, r.Runner, cfg.Project, versionOverride)
	if err != nil {
		return utils.Label("version", err)
	}
	r.Out.Infof("", "Releasing %s v%s via: %s", cfg.Project.Name, ver, joinNames(selected))

	pipeline := &build.Pipeline{
		Project:   cfg.Project,
		Build:     cfg.Build,
		Runner:    r.Runner,
		Toolchain: r.Toolchain,
		Out:       r.Out,
	}
	res, err := pipeline.BuildAll(ctx, ver)
	if err != nil {
		return utils.Label("build", err)
	}
	report := build.Triage(ctx, cfg.Build, res, r.Toolchain)
	if err := build.Gate(report, r.Out, r.Prompter); err != nil {
		return utils.Label("build", err)
	}

	env := &Env{
		Config:     cfg,
		Version:    ver,
		Archives:   res.Archives,
		Runner:     r.Runner,
		GitHub:     r.GitHub,
		Out:        r.Out,
		StagingDir: cfg.Build.Staging(),
	}
	for _, name := range Order(selected) {
		pub := PublisherFor(cfg, name)
		if pub == nil {
			return utils.Label(string(name), fmt.Errorf("%w: %s", ErrChannelNotEnabled, name))
		}
		if err := pub.Publish(utils.WithLabel(ctx, string(name)), env); err != nil {
			return utils.Label(string(name), fmt.Errorf("%w: %w", ErrPublishFailed, err))
		}
	}

	r.Out.Successf("", "Done.")
	return nil
}

func joinNames(names []config.ChannelName) string {
	s := make([]string, len(names))
	for i, n := range names {
		s[i] = string(n)
	}
	return strings.Join(s, ", ")
}
