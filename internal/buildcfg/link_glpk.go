// SPDX-License-Identifier: MPL-2.0

//go:build clp_glpk

package buildcfg

import "github.com/clp-go/clp/pkg/capability"

// Glpk GMPL model reader, opt-in with -tags clp_glpk.
func init() { link(capability.FlagHasGlpk) }
