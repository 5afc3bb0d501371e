// SPDX-License-Identifier: MPL-2.0

//go:build clp_amd

package buildcfg

import "github.com/clp-go/clp/pkg/capability"

// AMD approximate minimum degree ordering, opt-in with -tags clp_amd.
func init() { link(capability.FlagHasAMD) }
