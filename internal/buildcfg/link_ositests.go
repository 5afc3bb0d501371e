// SPDX-License-Identifier: MPL-2.0

//go:build !clp_no_ositests

package buildcfg

import "github.com/clp-go/clp/pkg/capability"

// OsiTests ships with Clp; opt out with -tags clp_no_ositests.
func init() { link(capability.FlagHasOsiTests) }
