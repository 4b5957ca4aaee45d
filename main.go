package main

import (
	"fmt"
	"runtime/debug"
	"strings"

	"github.com/githubnext/calcg/internal/cmd"
)

func main() {
	cmd.SetVersion(buildVersionString(readVCSSettings()))
	cmd.Execute()
}

const shortHashLength = 7

// readVCSSettings returns the vcs.* settings embedded by the Go toolchain, if any
func readVCSSettings() map[string]string {
	settings := map[string]string{}
	buildInfo, ok := debug.ReadBuildInfo()
	if !ok {
		return settings
	}
	for _, s := range buildInfo.Settings {
		if strings.HasPrefix(s.Key, "vcs.") {
			settings[s.Key] = s.Value
		}
	}
	return settings
}

// buildVersionString joins the version, commit and build date. Values set via
// ldflags win over the VCS settings.
func buildVersionString(vcs map[string]string) string {
	parts := []string{"dev"}
	if Version != "" {
		parts[0] = Version
	}

	commit := GitCommit
	if commit == "" {
		commit = vcs["vcs.revision"]
		if len(commit) > shortHashLength {
			commit = commit[:shortHashLength]
		}
	}
	if commit != "" {
		parts = append(parts, fmt.Sprintf("commit: %s", commit))
	}

	built := BuildDate
	if built == "" {
		built = vcs["vcs.time"]
	}
	if built != "" {
		parts = append(parts, fmt.Sprintf("built: %s", built))
	}

	return strings.Join(parts, ", ")
}
