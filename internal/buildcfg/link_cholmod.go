// SPDX-License-Identifier: MPL-2.0

//go:build clp_cholmod

package buildcfg

import "github.com/clp-go/clp/pkg/capability"

// CHOLMOD sparse Cholesky, opt-in with -tags clp_cholmod.
func init() { link(capability.FlagHasCHOLMOD) }
