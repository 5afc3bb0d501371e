// SPDX-License-Identifier: MPL-2.0

//go:build !clp_no_osi

package buildcfg

import "github.com/clp-go/clp/pkg/capability"

// Osi ships with Clp; opt out with -tags clp_no_osi.
func init() { link(capability.FlagHasOsi) }
