// Package platform answers questions about target triples and the local Rust toolchain.
package platform

import (
	"bufio"
	"context"
	"strings"

	"github.com/aottr/releasor/internal/utils"
)

// Suffix returns everything after the first "-" of a target triple,
// e.g. "apple-darwin" for "aarch64-apple-darwin". A triple without "-" is its own suffix.
func Suffix(target string) string {
	if _, rest, ok := strings.Cut(target, "-"); ok {
		return rest
	}
	return target
}

// NeedsCrossLinker reports whether building target on host needs a foreign linker.
// Only the vendor/os/abi part is compared; differing architectures on the same
// OS are handled by the native toolchain.
func NeedsCrossLinker(host, target string) bool {
	return Suffix(host) != Suffix(target)
}

// IsDarwin reports whether target is an Apple darwin triple for the given arch.
func IsDarwin(target, arch string) bool {
	return strings.HasPrefix(target, arch) && strings.Contains(target, "apple-darwin")
}

// ParseHostTarget extracts the value of the "host: " line from `rustc -vV` output.
func ParseHostTarget(rustcOutput string) (string, bool) {
	return findLine(rustcOutput, "host: ")
}

// ParseInstalledTargets turns `rustup target list --installed` output into a set.
func ParseInstalledTargets(output string) map[string]struct{} {
	targets := make(map[string]struct{})
	for _, line := range strings.Split(output, "\n") {
		if t := strings.TrimSpace(line); t != "" {
			targets[t] = struct{}{}
		}
	}
	return targets
}

func findLine(text, needle string) (string, bool) {
	scanner := bufio.NewScanner(strings.NewReader(text))
	for scanner.Scan() {
		line := scanner.Text()
		if strings.HasPrefix(line, needle) {
			return strings.TrimSpace(strings.TrimPrefix(line, needle)), true
		}
	}
	return "", false
}

// Toolchain answers capability queries about the local build tools.
// Every query degrades to "unknown" rather than failing.
type Toolchain interface {
	HostTarget(ctx context.Context) (string, bool)
	InstalledTargets(ctx context.Context) map[string]struct{}
	HasCrossBuilder(ctx context.Context) bool
}

// RustToolchain probes rustc, rustup and cargo-zigbuild through a Runner.
type RustToolchain struct {
	Runner utils.Runner
}

func (t RustToolchain) HostTarget(ctx context.Context) (string, bool) {
	out, err := t.Runner.Run(ctx, utils.Command{Name: "rustc", Args: []string{"-vV"}})
	if err != nil {
		return "", false
	}
	return ParseHostTarget(out)
}

func (t RustToolchain) InstalledTargets(ctx context.Context) map[string]struct{} {
	out, err := t.Runner.Run(ctx, utils.Command{Name: "rustup", Args: []string{"target", "list", "--installed"}})
	if err != nil {
		return map[string]struct{}{}
	}
	return ParseInstalledTargets(out)
}

// HasCrossBuilder reports whether cargo-zigbuild is installed and runs.
func (t RustToolchain) HasCrossBuilder(ctx context.Context) bool {
	_, err := t.Runner.Run(ctx, utils.Command{Name: "cargo-zigbuild", Args: []string{"--version"}})
	return err == nil
}
