// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"github.com/clp-go/clp/internal/issue"
	"github.com/clp-go/clp/internal/render"
	"github.com/clp-go/clp/pkg/capability"

	"github.com/spf13/cobra"
)

func newShowCommand(s *session) *cobra.Command {
	var (
		format   string
		category string
		all      bool
	)

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the capability snapshot of this build",
		Long: `Show the capability snapshot of this build.

Formats: text (default), json, toml, cue and header. The header format
regenerates the config.h of the C build, including /* #undef */ lines for
absent capabilities.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			snap, err := s.snapshot()
			if err != nil {
				return err
			}

			f := s.cfg.Output.Format
			if cmd.Flags().Changed("format") {
				f = render.Format(format)
			}
			if valid, errs := f.IsValid(); !valid {
				return failure(issue.NewErrorContext().
					WithOperation("show capabilities").
					WithIssue(issue.InvalidFormatId).
					Wrap(errs[0]).
					BuildError())
			}

			showAbsent := s.cfg.Output.ShowAbsent
			if cmd.Flags().Changed("all") {
				showAbsent = all
			}
			opts := []render.Option{render.WithAbsent(showAbsent), render.WithStyles(s.styled)}

			if category != "" {
				c := capability.Category(category)
				if valid, errs := c.IsValid(); !valid {
					return failure(issue.NewErrorContext().
						WithOperation("show capabilities").
						WithIssue(issue.UnknownCategoryId).
						Wrap(errs[0]).
						BuildError())
				}
				opts = append(opts, render.WithCategory(c))
			}

			s.logger.Debug("rendering snapshot", "format", f, "category", category, "absent", showAbsent)
			return render.Render(cmd.OutOrStdout(), snap, f, opts...)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "", "output format (text, json, toml, cue, header)")
	cmd.Flags().StringVarP(&category, "category", "c", "", "only show flags of this category")
	cmd.Flags().BoolVarP(&all, "all", "a", false, "include absent flags")

	return cmd
}
