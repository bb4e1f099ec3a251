package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

const templateYAML = `project:
  name: {{name}}
  # binary: {{name}}  # defaults to project name
  repo: owner/{{name}}
  # version_command: git describe --tags --abbrev=0

build:
  command: "cargo build --release --target {target}"
  artifact: "target/{target}/release/{binary}"
  targets:
    - x86_64-apple-darwin
    - aarch64-apple-darwin
    - x86_64-unknown-linux-gnu
    - aarch64-unknown-linux-gnu

channels:
  github:
    enabled: true
    # checksums: [sha256]

  # homebrew:
  #   tap: owner/homebrew-tap
  #   formula_name: {{name}}

  # cargo:
  #   crate_name: {{name}}

  # curl:
  #   install_dir: /usr/local/bin

  # nix:
  #   flake_repo: owner/nix-repo  # defaults to project repo
`

// GenerateTemplate returns a starter config for the given project name.
func GenerateTemplate(projectName string) string {
	return strings.ReplaceAll(templateYAML, "{{name}}", projectName)
}

// Init writes a starter config to path. It never overwrites an existing file.
func Init(path, projectName string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("[init] %s already exists", path)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("[init] stat %s: %w", path, err)
	}
	if projectName == "" {
		projectName = "myproject"
	}
	if err := os.WriteFile(path, []byte(GenerateTemplate(projectName)), 0o644); err != nil {
		return fmt.Errorf("[init] failed to write %s: %w", path, err)
	}
	return nil
}

// ProjectNameFromDir guesses a project name from a directory's base name.
func ProjectNameFromDir(dir string) string {
	base := filepath.Base(filepath.Clean(dir))
	if base == "." || base == string(filepath.Separator) || base == "" {
		return "myproject"
	}
	return base
}
