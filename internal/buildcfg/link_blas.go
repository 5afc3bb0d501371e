// SPDX-License-Identifier: MPL-2.0

//go:build clp_blas

package buildcfg

import "github.com/clp-go/clp/pkg/capability"

// BLAS dense kernels, opt-in with -tags clp_blas.
func init() { link(capability.FlagHasBLAS) }
