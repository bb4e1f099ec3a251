package channels

import (
	"context"
	"errors"
	"fmt"

	"github.com/aottr/releasor/internal/config"
	"github.com/aottr/releasor/internal/github"
	"github.com/aottr/releasor/internal/utils"
)

// NixPublisher asks the flake repository to bump to the new source tarball.
type NixPublisher struct {
	Settings config.NixSettings
}

func (p *NixPublisher) Name() config.ChannelName { return config.ChannelNix }

// SourceURL is GitHub's tarball of the tagged source tree.
func SourceURL(repo, tag string) string {
	return fmt.Sprintf("https://github.com/%s/archive/refs/tags/%s.tar.gz", repo, tag)
}

func (p *NixPublisher) Publish(ctx context.Context, env *Env) error {
	source := SourceURL(env.Config.Project.Repo, env.Tag())
	hash, err := env.Runner.Run(ctx, utils.Command{
		Label: string(p.Name()),
		Name:  "nix-prefetch-url",
		Args:  []string{"--unpack", source},
	})
	if err != nil {
		return err
	}
	if hash == "" {
		return errors.New("nix-prefetch-url printed no hash")
	}

	repo := utils.WithDefault(p.Settings.FlakeRepo, env.Config.Project.Repo)
	issue, err := env.GitHub.CreateIssue(ctx, repo, github.NewIssue{
		Title: fmt.Sprintf("Update to %s", env.Tag()),
		Body:  fmt.Sprintf("New release %s\n\nSource: %s\nSHA256: %s", env.Tag(), source, hash),
	})
	if err != nil {
		return fmt.Errorf("failed to open update issue on %s: %w", repo, err)
	}
	if issue != nil && issue.HTMLURL != "" {
		env.Out.Successf(string(p.Name()), "Created update issue on %s: %s", repo, issue.HTMLURL)
		return nil
	}
	env.Out.Successf(string(p.Name()), "Created update issue on %s", repo)
	return nil
}
