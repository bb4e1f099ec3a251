package build

import (
	"strings"

	"github.com/aottr/releasor/internal/platform"
)

const (
	cargoBuild    = "cargo build"
	cargoZigbuild = "cargo zigbuild"
)

// SelectInvocation swaps "cargo build" for "cargo zigbuild" when target needs a
// foreign linker and cargo-zigbuild is available. An unknown host (empty string)
// never triggers the swap. Any other command is returned unchanged.
func SelectInvocation(command, host, target string, crossAvailable bool) string {
	if !strings.Contains(command, cargoBuild) || host == "" || !crossAvailable {
		return command
	}
	if !platform.NeedsCrossLinker(host, target) {
		return command
	}
	return strings.ReplaceAll(command, cargoBuild, cargoZigbuild)
}
