// SPDX-License-Identifier: MPL-2.0

//go:build !clp_debug

package buildcfg

// Release builds run no sanity checks and emit no diagnostic output unless
// -ldflags overrides the levels.
const (
	defaultCheckLevel = "0"
	defaultVerbosity  = "0"
)
