package channels

import (
	"context"

	"github.com/aottr/releasor/internal/config"
	"github.com/aottr/releasor/internal/utils"
)

type CargoPublisher struct {
	Settings config.CargoSettings
}

func (p *CargoPublisher) Name() config.ChannelName { return config.ChannelCargo }

// Command is the cargo publish invocation for these settings.
func (p *CargoPublisher) Command() utils.Command {
	args := []string{"publish"}
	if p.Settings.CrateName != "" {
		args = append(args, "--package", p.Settings.CrateName)
	}
	args = append(args, p.Settings.Args...)
	return utils.Command{Label: string(p.Name()), Name: "cargo", Args: args}
}

func (p *CargoPublisher) Publish(ctx context.Context, env *Env) error {
	if _, err := env.Runner.Run(ctx, p.Command()); err != nil {
		return err
	}
	crate := utils.WithDefault(p.Settings.CrateName, env.Config.Project.Name)
	env.Out.Successf(string(p.Name()), "Published crate %s", crate)
	return nil
}
