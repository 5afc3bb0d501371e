// SPDX-License-Identifier: MPL-2.0

package buildcfg

import (
	"slices"

	"github.com/clp-go/clp/pkg/capability"
)

// Values injected with -ldflags "-X github.com/clp-go/clp/internal/buildcfg.<name>=<value>".
// Defaults reproduce the Clp 1.16.10 release build. An empty string leaves
// the corresponding flag absent (or at its build-tag default for debug levels).
//
//nolint:gochecknoglobals // Build-time ldflags injection requires package-level variables.
var (
	packageName    = "Clp"
	bugReport      = "clp@list.coin-or.org"
	svnRevision    = "2358"
	versionMajor   = "1"
	versionMinor   = "16"
	versionRelease = "10"

	checkLevel = ""
	verbosity  = ""
	abcLevel   = ""

	f77Func           = ""
	f77FuncUnderscore = ""
	f77DummyMain      = ""
	fcDummyMainEqF77  = ""
)

// linked collects the package flags registered by build-tag gated files.
// It is appended to only from init functions, which run sequentially
// before main, and is read-only afterwards.
var linked []capability.Flag

// link records that the files of an optional package were compiled in.
func link(flags ...capability.Flag) {
	linked = append(linked, flags...)
}

// Linked returns the package flags whose backends were compiled into this
// binary, in declaration order.
func Linked() []capability.Flag {
	var out []capability.Flag
	for _, f := range capability.AllFlags() {
		if slices.Contains(linked, f) {
			out = append(out, f)
		}
	}
	return out
}

// Detect assembles the build-time detection result of this binary from its
// build tags, its target platform and its -ldflags values.
func Detect() capability.Detection {
	d := capability.Detection{
		Name:      packageName,
		BugReport: bugReport,
	}
	d.Mark(Linked()...)
	d.Mark(platformHeaders...)

	setIfNonEmpty(&d, capability.FlagSVNRevision, svnRevision)
	setIfNonEmpty(&d, capability.FlagVersionMajor, versionMajor)
	setIfNonEmpty(&d, capability.FlagVersionMinor, versionMinor)
	setIfNonEmpty(&d, capability.FlagVersionRelease, versionRelease)
	setIfNonEmpty(&d, capability.FlagDebugCheckLevel, firstNonEmpty(checkLevel, defaultCheckLevel))
	setIfNonEmpty(&d, capability.FlagDebugVerbosity, firstNonEmpty(verbosity, defaultVerbosity))
	setIfNonEmpty(&d, capability.FlagHasABC, abcLevel)
	setIfNonEmpty(&d, capability.FlagF77Func, f77Func)
	setIfNonEmpty(&d, capability.FlagF77FuncUnderscore, f77FuncUnderscore)
	setIfNonEmpty(&d, capability.FlagF77DummyMain, f77DummyMain)
	if fcDummyMainEqF77 != "" {
		d.Mark(capability.FlagFCDummyMainEqF77)
	}
	return d
}

// Load builds the capability snapshot of this binary. A non-nil error means
// the build itself is malformed; callers should stop before any consumer
// reads capabilities.
func Load() (*capability.Snapshot, error) {
	return capability.New(Detect())
}

func setIfNonEmpty(d *capability.Detection, f capability.Flag, raw string) {
	if raw != "" {
		d.Set(f, raw)
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
