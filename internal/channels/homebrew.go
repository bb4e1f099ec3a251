package channels

import (
	"context"
	"errors"
	"fmt"

	"github.com/aottr/releasor/internal/build"
	"github.com/aottr/releasor/internal/checksum"
	"github.com/aottr/releasor/internal/config"
	"github.com/aottr/releasor/internal/github"
	"github.com/aottr/releasor/internal/platform"
	"github.com/aottr/releasor/internal/utils"
)

// HomebrewPublisher writes Formula/<name>.rb into the tap repository.
type HomebrewPublisher struct {
	Settings config.HomebrewSettings
}

// Bottle is one macOS download in a formula.
type Bottle struct {
	URL    string
	SHA256 string
}

type Formula struct {
	ClassName   string
	Description string
	Homepage    string
	Version     string
	Binary      string
	Arm         *Bottle
	Intel       *Bottle
}

func (p *HomebrewPublisher) Name() config.ChannelName { return config.ChannelHomebrew }

func (p *HomebrewPublisher) formulaName(env *Env) string {
	return utils.WithDefault(p.Settings.FormulaName, env.Config.Project.Name)
}

func (p *HomebrewPublisher) Publish(ctx context.Context, env *Env) error {
	if _, err := upstreamRelease(ctx, env); err != nil {
		return err
	}

	formula, err := p.FormulaFor(env)
	if err != nil {
		return err
	}
	content, err := RenderFormula(formula)
	if err != nil {
		return err
	}

	name := p.formulaName(env)
	path := fmt.Sprintf("Formula/%s.rb", name)
	// any lookup failure means the formula is created rather than updated
	sha, _ := env.GitHub.FileSHA(ctx, p.Settings.Tap, path)

	err = env.GitHub.PutFile(ctx, p.Settings.Tap, path, github.FileUpdate{
		Message: fmt.Sprintf("Update %s to %s", name, env.Version),
		Content: github.EncodeContent([]byte(content)),
		SHA:     sha,
	})
	if err != nil {
		return fmt.Errorf("failed to write %s to %s: %w", path, p.Settings.Tap, err)
	}
	env.Out.Successf(string(p.Name()), "Updated formula %s in %s", name, p.Settings.Tap)
	return nil
}

// FormulaFor collects the darwin archives of env into formula data. The first
// aarch64 and x86_64 apple-darwin archives are used; others are ignored.
func (p *HomebrewPublisher) FormulaFor(env *Env) (Formula, error) {
	project := env.Config.Project
	name := p.formulaName(env)
	f := Formula{
		ClassName:   utils.PascalCase(name),
		Description: utils.WithDefault(p.Settings.Description, name),
		Homepage:    utils.WithDefault(p.Settings.Homepage, "https://github.com/"+project.Repo),
		Version:     env.Version,
		Binary:      project.BinaryName(),
	}

	var err error
	for _, a := range env.Archives {
		switch {
		case f.Arm == nil && platform.IsDarwin(a.Target, "aarch64"):
			f.Arm, err = bottle(env, a)
		case f.Intel == nil && platform.IsDarwin(a.Target, "x86_64"):
			f.Intel, err = bottle(env, a)
		}
		if err != nil {
			return Formula{}, err
		}
	}
	if f.Arm == nil && f.Intel == nil {
		return Formula{}, errors.New("no apple-darwin archives were built, nothing to put in the formula")
	}
	return f, nil
}

func bottle(env *Env, a build.Artifact) (*Bottle, error) {
	sum, err := checksum.SHA256File(a.Path)
	if err != nil {
		return nil, err
	}
	return &Bottle{URL: env.DownloadURL(a.Name()), SHA256: sum}, nil
}

func RenderFormula(f Formula) (string, error) {
	return render("formula.rb.tmpl", f)
}
