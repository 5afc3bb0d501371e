// SPDX-License-Identifier: MPL-2.0

//go:build clp_netlib

package buildcfg

import "github.com/clp-go/clp/pkg/capability"

// Netlib LP test set, opt-in with -tags clp_netlib.
func init() { link(capability.FlagHasNetlib) }
