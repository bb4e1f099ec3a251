package main

import (
	"context"
	"io"
	"os"
	"strings"

	"github.com/aottr/releasor/internal/channels"
	"github.com/aottr/releasor/internal/config"
	"github.com/aottr/releasor/internal/github"
	"github.com/aottr/releasor/internal/platform"
	"github.com/aottr/releasor/internal/ui"
	"github.com/aottr/releasor/internal/utils"
	"github.com/gookit/color"
	"github.com/urfave/cli/v3"
)

// app holds the process boundary so commands can run against buffers in tests.
type app struct {
	stdout io.Writer
	stderr io.Writer
	stdin  io.Reader
	getwd  func() (string, error)

	// newAPI builds the GitHub client for a release.
	newAPI func(out *ui.Printer) github.API
}

func defaultApp() *app {
	return &app{
		stdout: os.Stdout,
		stderr: os.Stderr,
		stdin:  os.Stdin,
		getwd:  os.Getwd,
		newAPI: func(out *ui.Printer) github.API {
			client := github.NewClient(github.TokenFromEnv(), out)
			if ui.IsTerminal(os.Stderr) {
				client.Progress = os.Stderr
			}
			return client
		},
	}
}

func (a *app) printer(cmd *cli.Command) *ui.Printer {
	p := ui.NewPrinter(a.stdout, a.stderr)
	if cmd.Bool("no-color") {
		color.Enable = false
		p.Color = false
	}
	p.Quiet = cmd.Bool("quiet")
	return p
}

func (a *app) command() *cli.Command {
	return &cli.Command{
		Name:      "releasor",
		Usage:     "Build once, publish everywhere",
		Writer:    a.stdout,
		ErrWriter: a.stderr,
		Reader:    a.stdin,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Usage:   "release config file",
				Value:   "releasor.yml",
				Aliases: []string{"c"},
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Usage:   "stream build and publish command output",
				Aliases: []string{"v"},
			},
			&cli.BoolFlag{
				Name:    "quiet",
				Usage:   "only print warnings and errors",
				Aliases: []string{"q"},
			},
			&cli.BoolFlag{
				Name:  "no-color",
				Usage: "disable coloured output",
			},
		},
		Commands: []*cli.Command{
			{
				Name:  "init",
				Usage: "Write a starter releasor.yml",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					out := a.printer(cmd)
					path := cmd.String("config")
					cwd, err := a.getwd()
					if err != nil {
						return utils.Label("init", err)
					}
					if err := config.Init(path, config.ProjectNameFromDir(cwd)); err != nil {
						return err
					}
					out.Successf("init", "Created %s", path)
					return nil
				},
			},
			{
				Name:  "validate",
				Usage: "Check the config and list enabled channels",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					out := a.printer(cmd)
					cfg, err := config.Load(cmd.String("config"))
					if err != nil {
						return err
					}
					out.Successf("", "Config is valid.")
					enabled := cfg.EnabledChannels()
					names := make([]string, len(enabled))
					for i, n := range enabled {
						names[i] = string(n)
					}
					if len(names) == 0 {
						names = append(names, "none")
					}
					out.Infof("", "Enabled channels: %s", strings.Join(names, ", "))
					return nil
				},
			},
			{
				Name:  "release",
				Usage: "Build all targets and publish to channels (all enabled when none given)",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "version",
						Usage: "release version, skips version_command and git tags",
					},
				},
				Arguments: []cli.Argument{
					&cli.StringArgs{
						Name: "channel",
						Min:  0,
						Max:  -1,
					},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					out := a.printer(cmd)
					cfg, err := config.Load(cmd.String("config"))
					if err != nil {
						return err
					}
					ctx = utils.WithExecOptions(ctx, utils.ExecOptions{Verbose: cmd.Bool("verbose")})

					runner := utils.ExecRunner{Out: out}
					r := &channels.Releaser{
						Config:    cfg,
						Runner:    runner,
						GitHub:    a.newAPI(out),
						Toolchain: platform.RustToolchain{Runner: runner},
						Prompter:  ui.NewStdinPrompter(a.stdin, a.stderr),
						Out:       out,
					}
					return r.Release(ctx, cmd.String("version"), cmd.StringArgs("channel"))
				},
			},
		},
	}
}

func (a *app) run(ctx context.Context, args []string) int {
	if err := a.command().Run(ctx, args); err != nil {
		ui.NewPrinter(a.stderr, a.stderr).Errorf("", "%v", err)
		return 1
	}
	return 0
}

func main() {
	os.Exit(defaultApp().run(context.Background(), os.Args))
}
