// SPDX-License-Identifier: MPL-2.0

//go:build !unix && !windows

package buildcfg

import "github.com/clp-go/clp/pkg/capability"

// platformHeaders is the freestanding subset assumed for js/wasm and plan9.
var platformHeaders = []capability.Flag{
	capability.FlagHaveCFloat,
	capability.FlagHaveCMath,
	capability.FlagHaveStdintH,
	capability.FlagHaveStdlibH,
	capability.FlagHaveStringH,
}
