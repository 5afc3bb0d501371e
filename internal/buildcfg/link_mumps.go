// SPDX-License-Identifier: MPL-2.0

//go:build clp_mumps

package buildcfg

import "github.com/clp-go/clp/pkg/capability"

// MUMPS multifrontal solver, opt-in with -tags clp_mumps.
func init() { link(capability.FlagHasMumps) }
