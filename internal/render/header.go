// SPDX-License-Identifier: MPL-2.0

package render

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/clp-go/clp/pkg/capability"
)

const commentWidth = 76

// fortranMacros take the C identifier in lower and upper case.
var fortranMacros = map[capability.Flag]bool{
	capability.FlagF77Func:           true,
	capability.FlagF77FuncUnderscore: true,
}

func renderHeader(w io.Writer, snap *capability.Snapshot, o options) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "/* config.h.  Generated by clpconfig for %s.  */\n", snap.Identity())

	for _, e := range snap.Entries() {
		if o.category != "" && e.Flag.Category() != o.category {
			continue
		}
		bw.WriteString("\n")
		bw.WriteString(wrapComment(e.Flag.Description()))
		bw.WriteString("\n")
		bw.WriteString(Define(e))
		bw.WriteString("\n")
	}
	return bw.Flush()
}

// Define returns the preprocessor line for one snapshot entry: a #define
// for present flags and a commented-out #undef for absent ones.
func Define(e capability.Entry) string {
	macro := e.Flag.Macro()
	switch e.Kind {
	case capability.KindBoolean:
		return fmt.Sprintf("#define %s 1", macro)
	case capability.KindValued:
		if fortranMacros[e.Flag] {
			return fmt.Sprintf("#define %s(name,NAME) %s", macro, e.Value)
		}
		if e.Value.Type() == capability.ValueString && e.Flag.Category() != capability.CategoryFortran {
			return fmt.Sprintf("#define %s %q", macro, e.Value.String())
		}
		return fmt.Sprintf("#define %s %s", macro, e.Value)
	default:
		return fmt.Sprintf("/* #undef %s */", macro)
	}
}

// wrapComment formats text as a C comment, wrapping continuation lines
// with a three space indent.
func wrapComment(text string) string {
	var lines []string
	line := "/*"
	for _, word := range strings.Fields(text) {
		if len(line)+1+len(word) > commentWidth && line != "/*" && line != "  " {
			lines = append(lines, line)
			line = "  "
		}
		line += " " + word
	}
	lines = append(lines, line+" */")
	return strings.Join(lines, "\n")
}
