// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"strings"

	"github.com/clp-go/clp/internal/issue"
	"github.com/clp-go/clp/internal/render"
	"github.com/clp-go/clp/pkg/capability"
	"github.com/clp-go/clp/pkg/types"

	"github.com/spf13/cobra"
)

// resolveFlag accepts a flag name in any case or its C macro name.
func resolveFlag(name string) (capability.Flag, bool) {
	f := capability.Flag(strings.ToLower(name))
	if valid, _ := f.IsValid(); valid {
		return f, true
	}
	for _, f := range capability.AllFlags() {
		if f.Macro() == name {
			return f, true
		}
	}
	return "", false
}

func newHasCommand(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "has <flag>...",
		Short: "Exit 0 when every flag is present",
		Long: `Exit 0 when every flag is present in this build, 1 otherwise.

Flags are named as in 'clpconfig show' (has_mumps) or by their C macro
(COIN_HAS_MUMPS). Unknown names count as absent.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			snap, err := s.snapshot()
			if err != nil {
				return err
			}

			var missing []string
			for _, name := range args {
				f, ok := resolveFlag(name)
				if !ok {
					s.logger.Debug("unknown flag treated as absent", "flag", name)
					missing = append(missing, name)
					continue
				}
				if !snap.Has(f) {
					missing = append(missing, name)
				}
			}
			if len(missing) > 0 {
				s.logger.Info("capabilities absent", "flags", strings.Join(missing, ","))
				return &ExitError{Code: types.ExitNegative}
			}
			return nil
		},
	}
}

func newValueCommand(s *session) *cobra.Command {
	var define bool

	cmd := &cobra.Command{
		Use:   "value <flag>",
		Short: "Print the value of a flag",
		Long: `Print the value of a flag, or exit 1 when it is absent.

A present flag without a value prints 1, as its C macro does. A name that is
not a flag at all is an error and exits 2.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			snap, err := s.snapshot()
			if err != nil {
				return err
			}

			f, ok := resolveFlag(args[0])
			if !ok {
				return failure(issue.NewErrorContext().
					WithOperation("read capability").
					WithResource(args[0]).
					WithIssue(issue.UnknownFlagId).
					WithSuggestion("Run 'clpconfig show --all' to list every flag").
					Wrap(&capability.UnknownFlagError{Flag: capability.Flag(args[0])}).
					BuildError())
			}

			out := cmd.OutOrStdout()
			if define {
				v, _ := snap.Value(f)
				fmt.Fprintln(out, render.Define(capability.Entry{Flag: f, Kind: snap.Kind(f), Value: v}))
				return nil
			}

			if v, ok := snap.Value(f); ok {
				fmt.Fprintln(out, v.String())
				return nil
			}
			if snap.Has(f) {
				fmt.Fprintln(out, "1")
				return nil
			}
			return &ExitError{Code: types.ExitNegative}
		},
	}

	cmd.Flags().BoolVar(&define, "define", false, "print the config.h line of the flag instead")

	return cmd
}
