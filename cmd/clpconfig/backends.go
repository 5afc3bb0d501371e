// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/clp-go/clp/internal/backend"
	"github.com/clp-go/clp/internal/issue"
	"github.com/clp-go/clp/pkg/types"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
)

// selectionReport is the JSON form of one role of 'clpconfig backends'.
type selectionReport struct {
	Role      backend.Role     `json:"role"`
	Backend   *backend.Backend `json:"backend,omitempty"`
	Available []string         `json:"available"`
	Error     string           `json:"error,omitempty"`
}

// parsePreferences turns repeated role=name flags into per-role preference
// lists, in the order given.
func parsePreferences(values []string) (map[backend.Role][]string, error) {
	prefs := make(map[backend.Role][]string)
	for _, v := range values {
		role, name, ok := strings.Cut(v, "=")
		if !ok || role == "" || name == "" {
			return nil, fmt.Errorf("invalid --prefer %q (want role=name)", v)
		}
		r := backend.Role(role)
		if _, err := backend.Lookup(r, name); err != nil {
			return nil, err
		}
		prefs[r] = append(prefs[r], name)
	}
	return prefs, nil
}

func newBackendsCommand(s *session) *cobra.Command {
	var (
		prefer []string
		asJSON bool
		strict bool
	)

	cmd := &cobra.Command{
		Use:   "backends",
		Short: "Show the backend selected for each role",
		Long: `Show the backend selected for each role of the library.

A role is filled by the first preferred backend this build can use, then by
the default order. --prefer entries come before those of the configuration
file.`,
		Example: `  clpconfig backends --prefer factorization=cholmod --prefer dataset=netlib`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			snap, err := s.snapshot()
			if err != nil {
				return err
			}

			prefs := s.cfg.Backends.Preferences()
			cli, err := parsePreferences(prefer)
			if err != nil {
				return failure(issue.NewErrorContext().
					WithOperation("select backends").
					WithIssue(issue.UnknownBackendId).
					Wrap(err).
					BuildError())
			}
			for role, names := range cli {
				prefs[role] = append(names, prefs[role]...)
			}

			plan, err := backend.Plan(snap, prefs)
			if err != nil {
				return failure(issue.NewErrorContext().
					WithOperation("select backends").
					WithIssue(issue.UnknownBackendId).
					Wrap(err).
					BuildError())
			}

			var unresolved []string
			var causes []error
			for _, sel := range plan {
				if sel.Err != nil {
					unresolved = append(unresolved, sel.Role.String())
					causes = append(causes, sel.Err)
					s.logger.Debug("role unresolved", "role", sel.Role, "error", sel.Err)
					continue
				}
				s.logger.Debug("backend selected", "role", sel.Role, "backend", sel.Backend.Name)
			}

			out := cmd.OutOrStdout()
			if asJSON {
				err = writePlanJSON(out, plan)
			} else {
				err = s.writePlanTable(out, plan)
			}
			if err != nil {
				return err
			}

			if strict && len(unresolved) > 0 {
				return &ExitError{Code: types.ExitNegative, Err: issue.NewErrorContext().
					WithOperation("resolve backends").
					WithResource(strings.Join(unresolved, ", ")).
					WithIssue(issue.BackendUnavailableId).
					Wrap(errors.Join(causes...)).
					BuildError()}
			}
			return nil
		},
	}

	cmd.Flags().StringArrayVar(&prefer, "prefer", nil, "preferred backend as role=name (repeatable)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print as JSON")
	cmd.Flags().BoolVar(&strict, "strict", false, "exit 1 with guidance when a role has no available backend")

	return cmd
}

func writePlanJSON(w io.Writer, plan []backend.Selection) error {
	reports := make([]selectionReport, len(plan))
	for i, sel := range plan {
		r := selectionReport{Role: sel.Role, Available: backendNames(sel.Available)}
		if sel.Err != nil {
			r.Error = sel.Err.Error()
		} else {
			b := sel.Backend
			r.Backend = &b
		}
		reports[i] = r
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(reports)
}

func (s *session) writePlanTable(w io.Writer, plan []backend.Selection) error {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("ROLE", "BACKEND", "AVAILABLE")
	if s.styled {
		t = t.StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return TitleStyle.Padding(0, 1)
			}
			return lipgloss.NewStyle().Padding(0, 1)
		})
	}

	for _, sel := range plan {
		selected := sel.Backend.Name
		if sel.Err != nil {
			selected = "unavailable"
		}
		avail := strings.Join(backendNames(sel.Available), ", ")
		if avail == "" {
			avail = "-"
		}
		t.Row(sel.Role.String(), selected, avail)
	}

	if _, err := fmt.Fprintln(w, t.Render()); err != nil {
		return err
	}
	for _, sel := range plan {
		if sel.Err != nil {
			fmt.Fprintf(w, "%s %s\n", s.render(WarningStyle, "!"), sel.Err)
		}
	}
	return nil
}

func backendNames(backends []backend.Backend) []string {
	names := make([]string, len(backends))
	for i, b := range backends {
		names[i] = b.Name
	}
	return names
}
