// Package channels publishes built archives to distribution channels and
// sequences the channels of one release.
package channels

import (
	"bytes"
	"context"
	"embed"
	"errors"
	"fmt"
	"strconv"
	"text/template"

	"github.com/aottr/releasor/internal/build"
	"github.com/aottr/releasor/internal/config"
	"github.com/aottr/releasor/internal/github"
	"github.com/aottr/releasor/internal/ui"
	"github.com/aottr/releasor/internal/utils"
)

var (
	ErrUnknownChannel    = errors.New("unknown channel")
	ErrChannelNotEnabled = errors.New("channel is not enabled in config")
	ErrUpstreamMissing   = errors.New("upstream release missing")
	ErrPublishFailed     = errors.New("publish failed")
)

// Env is everything a publisher may use. Publishers read nothing else.
type Env struct {
	Config     *config.Config
	Version    string
	Archives   []build.Artifact
	Runner     utils.Runner
	GitHub     github.API
	Out        *ui.Printer
	StagingDir string
}

// Tag is the release tag for the version being published.
func (e *Env) Tag() string {
	return "v" + e.Version
}

// DownloadURL is where a release asset of this version can be fetched.
func (e *Env) DownloadURL(asset string) string {
	return fmt.Sprintf("https://github.com/%s/releases/download/%s/%s", e.Config.Project.Repo, e.Tag(), asset)
}

type Publisher interface {
	Name() config.ChannelName
	Publish(ctx context.Context, env *Env) error
}

// PublisherFor returns the publisher of an enabled channel, or nil when the
// channel is disabled.
func PublisherFor(cfg *config.Config, name config.ChannelName) Publisher {
	ch := cfg.Channels
	switch name {
	case config.ChannelGitHub:
		if ch.GitHub != nil {
			return &GitHubPublisher{Settings: *ch.GitHub}
		}
	case config.ChannelHomebrew:
		if ch.Homebrew != nil {
			return &HomebrewPublisher{Settings: *ch.Homebrew}
		}
	case config.ChannelCargo:
		if ch.Cargo != nil {
			return &CargoPublisher{Settings: *ch.Cargo}
		}
	case config.ChannelCurl:
		if ch.Curl != nil {
			return &CurlPublisher{Settings: *ch.Curl}
		}
	case config.ChannelNix:
		if ch.Nix != nil {
			return &NixPublisher{Settings: *ch.Nix}
		}
	}
	return nil
}

// upstreamRelease fetches the release created by the github channel.
func upstreamRelease(ctx context.Context, env *Env) (*github.Release, error) {
	rel, err := env.GitHub.ReleaseByTag(ctx, env.Config.Project.Repo, env.Tag())
	if errors.Is(err, github.ErrNotFound) {
		return nil, fmt.Errorf("%w: GitHub release %s not found, run the github channel first", ErrUpstreamMissing, env.Tag())
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up release %s: %w", env.Tag(), err)
	}
	if rel == nil || rel.UploadURL == "" {
		return nil, fmt.Errorf("%w: GitHub release %s has no upload URL, is the github channel enabled?", ErrUpstreamMissing, env.Tag())
	}
	return rel, nil
}

//go:embed templates/*.tmpl
var templateFS embed.FS

var templates = template.Must(template.New("").Funcs(template.FuncMap{
	"quote": strconv.Quote,
}).ParseFS(templateFS, "templates/*.tmpl"))

func render(name string, data any) (string, error) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("render %s: %w", name, err)
	}
	return buf.String(), nil
}
