// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/clp-go/clp/internal/buildcfg"
	"github.com/clp-go/clp/pkg/capability"

	"github.com/spf13/cobra"
)

// versionReport is the JSON form of 'clpconfig version'.
type versionReport struct {
	Identity    capability.Identity `json:"identity"`
	SVNRevision *int                `json:"svn_revision,omitempty"`
	Packages    []capability.Flag   `json:"packages"`
	Build       *buildcfg.BuildInfo `json:"build,omitempty"`
}

func newVersionCommand(s *session) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print the package identity and how the binary was built",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			snap, err := s.snapshot()
			if err != nil {
				return err
			}

			report := versionReport{Identity: snap.Identity(), Packages: []capability.Flag{}}
			if rev, ok := capability.Int(snap, capability.FlagSVNRevision); ok {
				report.SVNRevision = &rev
			}
			for _, f := range capability.FlagsIn(capability.CategoryPackage) {
				if snap.Has(f) {
					report.Packages = append(report.Packages, f)
				}
			}
			if bi, ok := buildcfg.ReadBuildInfo(); ok {
				report.Build = &bi
			}

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(report)
			}

			id := report.Identity
			fmt.Fprintln(out, s.render(TitleStyle, id.String()))
			fmt.Fprintf(out, "Bug reports: %s\n", id.BugReport)
			if report.SVNRevision != nil {
				fmt.Fprintf(out, "SVN revision: %d\n", *report.SVNRevision)
			}
			fmt.Fprintf(out, "Check level: %d, verbosity: %d\n", capability.CheckLevel(snap), capability.Verbosity(snap))

			pkgs := make([]string, len(report.Packages))
			for i, f := range report.Packages {
				pkgs[i] = strings.TrimPrefix(f.String(), "has_")
			}
			if len(pkgs) == 0 {
				fmt.Fprintf(out, "Packages: %s\n", s.render(SubtitleStyle, "(none)"))
			} else {
				fmt.Fprintf(out, "Packages: %s\n", strings.Join(pkgs, ", "))
			}

			if bi := report.Build; bi != nil {
				fmt.Fprintf(out, "Go: %s, module %s\n", bi.GoVersion, bi.ModuleVersion)
				if len(bi.Tags) > 0 {
					fmt.Fprintf(out, "Build tags: %s\n", strings.Join(bi.Tags, ","))
				}
				if bi.Revision != "" {
					rev := bi.Revision
					if bi.Modified {
						rev += " (modified)"
					}
					fmt.Fprintf(out, "Revision: %s\n", rev)
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print as JSON")

	return cmd
}
