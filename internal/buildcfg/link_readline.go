// SPDX-License-Identifier: MPL-2.0

//go:build clp_readline

package buildcfg

import "github.com/clp-go/clp/pkg/capability"

// GNU readline line editing, opt-in with -tags clp_readline. Linking it
// also provides <readline/readline.h>.
func init() { link(capability.FlagHasReadline, capability.FlagHaveReadlineH) }
