// Package config loads and validates releasor.yml.
//
// A channel listed under "channels" is enabled unless it sets enabled: false.
// That decision is made once here: every field of Channels is either nil
// (disabled or absent) or points at the channel's settings.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultFile       = "releasor.yml"
	DefaultStagingDir = "target/release-staging"
)

var ErrInvalid = errors.New("invalid config")

type Project struct {
	Name           string `yaml:"name"`
	Binary         string `yaml:"binary,omitempty"`
	Repo           string `yaml:"repo"`
	VersionCommand string `yaml:"version_command,omitempty"`
}

// BinaryName defaults to the project name.
func (p Project) BinaryName() string {
	if p.Binary != "" {
		return p.Binary
	}
	return p.Name
}

type BuildMode int

const (
	BuildCommand BuildMode = iota
	BuildPreBuilt
)

type Build struct {
	Command     string   `yaml:"command,omitempty"`
	Artifact    string   `yaml:"artifact,omitempty"`
	PreBuiltDir string   `yaml:"pre_built_dir,omitempty"`
	Targets     []string `yaml:"targets"`
	StagingDir  string   `yaml:"staging_dir,omitempty"`
}

func (b Build) Mode() BuildMode {
	if b.PreBuiltDir != "" {
		return BuildPreBuilt
	}
	return BuildCommand
}

func (b Build) Staging() string {
	if b.StagingDir != "" {
		return b.StagingDir
	}
	return DefaultStagingDir
}

type Config struct {
	Project  Project
	Build    Build
	Channels Channels
}

// rawConfig mirrors the file layout. Channels stay as nodes until we know
// which ones are present.
type rawConfig struct {
	Project  Project              `yaml:"project"`
	Build    Build                `yaml:"build"`
	Channels map[string]yaml.Node `yaml:"channels"`
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("[config] failed to read %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("[config] %s: %w", path, err)
	}
	return cfg, nil
}

func Parse(data []byte) (*Config, error) {
	if err := validateSchema(data); err != nil {
		return nil, err
	}
	var raw rawConfig
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: failed to parse YAML: %v", ErrInvalid, err)
	}
	cfg := &Config{Project: raw.Project, Build: raw.Build}
	channels, err := decodeChannels(raw.Channels)
	if err != nil {
		return nil, err
	}
	cfg.Channels = channels
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	b := c.Build
	switch {
	case b.Command != "" && b.PreBuiltDir != "":
		return fmt.Errorf("%w: build.command and build.pre_built_dir are mutually exclusive", ErrInvalid)
	case b.Command == "" && b.PreBuiltDir == "":
		return fmt.Errorf("%w: one of build.command or build.pre_built_dir is required", ErrInvalid)
	case b.Command != "" && b.Artifact == "":
		return fmt.Errorf("%w: build.artifact is required when build.command is set", ErrInvalid)
	case len(b.Targets) == 0:
		return fmt.Errorf("%w: build.targets must not be empty", ErrInvalid)
	}
	seen := make(map[string]bool, len(b.Targets))
	for _, t := range b.Targets {
		if seen[t] {
			return fmt.Errorf("%w: build.targets lists %s more than once", ErrInvalid, t)
		}
		seen[t] = true
	}
	if hb := c.Channels.Homebrew; hb != nil && hb.Tap == "" {
		return fmt.Errorf("%w: channels.homebrew.tap is required when the homebrew channel is enabled", ErrInvalid)
	}
	return nil
}

// EnabledChannels lists enabled channels in canonical order.
func (c *Config) EnabledChannels() []ChannelName {
	var names []ChannelName
	for _, name := range KnownChannels {
		if c.Channels.Enabled(name) {
			names = append(names, name)
		}
	}
	return names
}
