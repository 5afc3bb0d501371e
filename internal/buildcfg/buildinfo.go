// SPDX-License-Identifier: MPL-2.0

package buildcfg

import (
	"runtime/debug"
	"strings"
)

// ModulePath is the Go module path of this project.
const ModulePath = "github.com/clp-go/clp"

// readBuildInfo is a test seam for debug.ReadBuildInfo. Production code uses the
// real implementation; tests replace it to simulate different build info scenarios.
//
//nolint:gochecknoglobals // Test seam requires a package-level variable.
var readBuildInfo = debug.ReadBuildInfo

// BuildInfo describes how the Go toolchain produced this binary.
type BuildInfo struct {
	// GoVersion is the toolchain version, e.g. "go1.25.1".
	GoVersion string `json:"go_version" toml:"go_version"`
	// ModuleVersion is the main module version, "(devel)" for local builds.
	ModuleVersion string `json:"module_version" toml:"module_version"`
	// Tags are the build tags the binary was compiled with.
	Tags []string `json:"tags,omitempty" toml:"tags,omitempty"`
	// Revision is the VCS revision, when stamped.
	Revision string `json:"revision,omitempty" toml:"revision,omitempty"`
	// Modified reports a dirty VCS tree at build time.
	Modified bool `json:"modified,omitempty" toml:"modified,omitempty"`
}

// ReadBuildInfo returns the toolchain build information of this binary, and
// false when the binary carries none (e.g. built without module support).
func ReadBuildInfo() (BuildInfo, bool) {
	info, ok := readBuildInfo()
	if !ok || info == nil {
		return BuildInfo{}, false
	}

	bi := BuildInfo{
		GoVersion:     info.GoVersion,
		ModuleVersion: info.Main.Version,
	}
	for _, s := range info.Settings {
		switch s.Key {
		case "-tags":
			bi.Tags = splitTags(s.Value)
		case "vcs.revision":
			bi.Revision = s.Value
		case "vcs.modified":
			bi.Modified = s.Value == "true"
		}
	}
	return bi, true
}

// splitTags splits a -tags setting, which the toolchain records comma separated.
func splitTags(value string) []string {
	var tags []string
	for _, t := range strings.Split(value, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}
