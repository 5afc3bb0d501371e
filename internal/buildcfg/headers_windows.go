// SPDX-License-Identifier: MPL-2.0

//go:build windows

package buildcfg

import "github.com/clp-go/clp/pkg/capability"

// platformHeaders is the header set of an MSVC toolchain: no <dlfcn.h>,
// <strings.h> or <unistd.h>, but the C headers <float.h> and <math.h>.
var platformHeaders = []capability.Flag{
	capability.FlagHaveCFloat,
	capability.FlagHaveCMath,
	capability.FlagHaveFloatH,
	capability.FlagHaveInttypesH,
	capability.FlagHaveMathH,
	capability.FlagHaveMemoryH,
	capability.FlagHaveStdintH,
	capability.FlagHaveStdlibH,
	capability.FlagHaveStringH,
	capability.FlagHaveSysStatH,
	capability.FlagHaveSysTypesH,
}
