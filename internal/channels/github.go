package channels

import (
	"context"
	"fmt"

	"github.com/aottr/releasor/internal/checksum"
	"github.com/aottr/releasor/internal/config"
	"github.com/aottr/releasor/internal/github"
)

const (
	archiveContentType = "application/gzip"
	textContentType    = "text/plain"
)

// GitHubPublisher creates the release and uploads every archive to it.
type GitHubPublisher struct {
	Settings config.GitHubSettings
}

func (p *GitHubPublisher) Name() config.ChannelName { return config.ChannelGitHub }

func (p *GitHubPublisher) Publish(ctx context.Context, env *Env) error {
	algos := make([]checksum.Algorithm, 0, len(p.Settings.Checksums))
	for _, name := range p.Settings.Checksums {
		algo, err := checksum.Lookup(name)
		if err != nil {
			return err
		}
		algos = append(algos, algo)
	}

	tag := env.Tag()
	rel, err := env.GitHub.CreateRelease(ctx, env.Config.Project.Repo, github.NewRelease{
		TagName:              tag,
		Name:                 tag,
		GenerateReleaseNotes: true,
	})
	if err != nil {
		return fmt.Errorf("failed to create release %s: %w", tag, err)
	}
	target := github.UploadTarget(rel.UploadURL)

	paths := make([]string, 0, len(env.Archives))
	for _, a := range env.Archives {
		if err := env.GitHub.UploadAsset(ctx, target, a.Path, a.Name(), archiveContentType); err != nil {
			return err
		}
		paths = append(paths, a.Path)
	}

	for _, algo := range algos {
		manifest, err := checksum.WriteManifest(env.StagingDir, paths, algo)
		if err != nil {
			return err
		}
		if err := env.GitHub.UploadAsset(ctx, target, manifest, algo.Manifest, textContentType); err != nil {
			return err
		}
	}

	env.Out.Successf(string(p.Name()), "Created release %s", tag)
	return nil
}
