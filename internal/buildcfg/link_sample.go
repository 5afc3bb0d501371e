// SPDX-License-Identifier: MPL-2.0

//go:build !clp_no_sample

package buildcfg

import "github.com/clp-go/clp/pkg/capability"

// The Sample data set ships with Clp; opt out with -tags clp_no_sample.
func init() { link(capability.FlagHasSample) }
