package version

import (
	"context"
	"errors"
	"fmt"

	"github.com/aottr/releasor/internal/config"
	"github.com/aottr/releasor/internal/utils"
)

var ErrUnresolved = errors.New("could not resolve version")

const hint = "use --version or set project.version_command in config"

// Resolve determines the release version, without a leading "v".
// An override wins without running anything. Otherwise project.version_command
// runs, falling back to the most recent git tag.
func Resolve(ctx context.Context, runner utils.Runner, project config.Project, override string) (string, error) {
	if override != "" {
		return utils.StripV(override), nil
	}

	name, args := "git", []string{"describe", "--tags", "--abbrev=0"}
	source := "git tags"
	if project.VersionCommand != "" {
		var err error
		name, args, err = utils.SplitCommand(project.VersionCommand)
		if err != nil {
			return "", fmt.Errorf("%w: version_command: %v", ErrUnresolved, err)
		}
		source = "version_command"
	}

	out, err := runner.Run(ctx, utils.Command{Label: "version", Name: name, Args: args})
	if err != nil {
		return "", fmt.Errorf("%w from %s (%s): %v", ErrUnresolved, source, hint, err)
	}
	v := utils.StripV(out)
	if v == "" {
		return "", fmt.Errorf("%w: %s printed nothing (%s)", ErrUnresolved, source, hint)
	}
	return v, nil
}
