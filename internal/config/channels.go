package config

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

type ChannelName string

const (
	ChannelGitHub   ChannelName = "github"
	ChannelHomebrew ChannelName = "homebrew"
	ChannelCargo    ChannelName = "cargo"
	ChannelCurl     ChannelName = "curl"
	ChannelNix      ChannelName = "nix"
)

// KnownChannels is the closed set of channels, in canonical order.
var KnownChannels = []ChannelName{ChannelGitHub, ChannelHomebrew, ChannelCargo, ChannelCurl, ChannelNix}

func IsKnownChannel(name string) bool {
	for _, k := range KnownChannels {
		if string(k) == name {
			return true
		}
	}
	return false
}

type GitHubSettings struct {
	// Checksums lists manifest algorithms uploaded next to the archives: sha256, sha512, blake3.
	Checksums []string `yaml:"checksums,omitempty"`
}

type HomebrewSettings struct {
	Tap         string `yaml:"tap"`
	FormulaName string `yaml:"formula_name,omitempty"`
	Description string `yaml:"description,omitempty"`
	Homepage    string `yaml:"homepage,omitempty"`
}

type CargoSettings struct {
	CrateName string   `yaml:"crate_name,omitempty"`
	Args      []string `yaml:"args,omitempty"`
}

type CurlSettings struct {
	ScriptName string `yaml:"script_name,omitempty"`
	InstallDir string `yaml:"install_dir,omitempty"`
	URL        string `yaml:"url,omitempty"`
}

type NixSettings struct {
	FlakeRepo string `yaml:"flake_repo,omitempty"`
}

// Channels holds one pointer per known channel; nil means disabled.
type Channels struct {
	GitHub   *GitHubSettings
	Homebrew *HomebrewSettings
	Cargo    *CargoSettings
	Curl     *CurlSettings
	Nix      *NixSettings
}

func (c Channels) Enabled(name ChannelName) bool {
	switch name {
	case ChannelGitHub:
		return c.GitHub != nil
	case ChannelHomebrew:
		return c.Homebrew != nil
	case ChannelCargo:
		return c.Cargo != nil
	case ChannelCurl:
		return c.Curl != nil
	case ChannelNix:
		return c.Nix != nil
	}
	return false
}

type enabledFlag struct {
	Enabled *bool `yaml:"enabled"`
}

func decodeChannels(nodes map[string]yaml.Node) (Channels, error) {
	var ch Channels
	for key, node := range nodes {
		if !IsKnownChannel(key) {
			return Channels{}, fmt.Errorf("%w: unknown channel %q", ErrInvalid, key)
		}
		var flag enabledFlag
		if err := node.Decode(&flag); err != nil {
			return Channels{}, fmt.Errorf("%w: channels.%s: %v", ErrInvalid, key, err)
		}
		if flag.Enabled != nil && !*flag.Enabled {
			continue
		}
		var err error
		switch ChannelName(key) {
		case ChannelGitHub:
			ch.GitHub = &GitHubSettings{}
			err = node.Decode(ch.GitHub)
		case ChannelHomebrew:
			ch.Homebrew = &HomebrewSettings{}
			err = node.Decode(ch.Homebrew)
		case ChannelCargo:
			ch.Cargo = &CargoSettings{}
			err = node.Decode(ch.Cargo)
		case ChannelCurl:
			ch.Curl = &CurlSettings{}
			err = node.Decode(ch.Curl)
		case ChannelNix:
			ch.Nix = &NixSettings{}
			err = node.Decode(ch.Nix)
		}
		if err != nil {
			return Channels{}, fmt.Errorf("%w: channels.%s: %v", ErrInvalid, key, err)
		}
	}
	return ch, nil
}
