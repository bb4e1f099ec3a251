package channels

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/aottr/releasor/internal/config"
	"github.com/aottr/releasor/internal/github"
	"github.com/aottr/releasor/internal/utils"
)

const (
	defaultScriptName = "install.sh"
	defaultInstallDir = "/usr/local/bin"
)

// CurlPublisher uploads a POSIX install script to the release.
type CurlPublisher struct {
	Settings config.CurlSettings
}

type InstallScript struct {
	Binary     string
	Repo       string
	Version    string
	InstallDir string
}

func (p *CurlPublisher) Name() config.ChannelName { return config.ChannelCurl }

func (p *CurlPublisher) scriptName() string {
	return utils.WithDefault(p.Settings.ScriptName, defaultScriptName)
}

func (p *CurlPublisher) Publish(ctx context.Context, env *Env) error {
	script, err := RenderInstallScript(InstallScript{
		Binary:     env.Config.Project.BinaryName(),
		Repo:       env.Config.Project.Repo,
		Version:    env.Version,
		InstallDir: utils.WithDefault(p.Settings.InstallDir, defaultInstallDir),
	})
	if err != nil {
		return err
	}

	name := p.scriptName()
	if err := os.MkdirAll(env.StagingDir, 0o755); err != nil {
		return err
	}
	path := filepath.Join(env.StagingDir, name)
	if err := os.WriteFile(path, []byte(script), 0o755); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	rel, err := upstreamRelease(ctx, env)
	if err != nil {
		return err
	}
	if err := env.GitHub.UploadAsset(ctx, github.UploadTarget(rel.UploadURL), path, name, textContentType); err != nil {
		return err
	}

	env.Out.Successf(string(p.Name()), "Uploaded %s to release %s", name, env.Tag())
	env.Out.Infof(string(p.Name()), "Install with: curl -fsSL %s | sh", utils.WithDefault(p.Settings.URL, env.DownloadURL(name)))
	return nil
}

func RenderInstallScript(s InstallScript) (string, error) {
	return render("install.sh.tmpl", s)
}
