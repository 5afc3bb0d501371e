// SPDX-License-Identifier: MPL-2.0

//go:build clp_debug

package buildcfg

// Debug builds enable the first check and verbosity level by default.
const (
	defaultCheckLevel = "1"
	defaultVerbosity  = "1"
)
