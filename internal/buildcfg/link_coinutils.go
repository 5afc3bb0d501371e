// SPDX-License-Identifier: MPL-2.0

//go:build !clp_no_coinutils

package buildcfg

import "github.com/clp-go/clp/pkg/capability"

// CoinUtils ships with Clp; opt out with -tags clp_no_coinutils.
func init() { link(capability.FlagHasCoinUtils) }
