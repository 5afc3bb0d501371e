// SPDX-License-Identifier: MPL-2.0

//go:build clp_asl

package buildcfg

import "github.com/clp-go/clp/pkg/capability"

// AMPL Solver Library reader, opt-in with -tags clp_asl.
func init() { link(capability.FlagHasASL) }
