// SPDX-License-Identifier: MPL-2.0

//go:build clp_wsmp

package buildcfg

import "github.com/clp-go/clp/pkg/capability"

// Watson Sparse Matrix Package, opt-in with -tags clp_wsmp.
func init() { link(capability.FlagHasWSMP) }
