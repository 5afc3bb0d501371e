// SPDX-License-Identifier: MPL-2.0

//go:build unix

package buildcfg

import "github.com/clp-go/clp/pkg/capability"

// platformHeaders is the header set of a glibc/BSD C++ toolchain.
var platformHeaders = []capability.Flag{
	capability.FlagHaveCFloat,
	capability.FlagHaveCMath,
	capability.FlagHaveDlfcnH,
	capability.FlagHaveInttypesH,
	capability.FlagHaveMemoryH,
	capability.FlagHaveStdintH,
	capability.FlagHaveStdlibH,
	capability.FlagHaveStringsH,
	capability.FlagHaveStringH,
	capability.FlagHaveSysStatH,
	capability.FlagHaveSysTypesH,
	capability.FlagHaveUnistdH,
}
