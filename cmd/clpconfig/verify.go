// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"io"
	"io/fs"

	"github.com/clp-go/clp/internal/backend"
	"github.com/clp-go/clp/internal/diag"
	"github.com/clp-go/clp/internal/issue"
	"github.com/clp-go/clp/internal/manifest"
	"github.com/clp-go/clp/pkg/capability"
	"github.com/clp-go/clp/pkg/cueutil"
	"github.com/clp-go/clp/pkg/types"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

// flagDiff is one flag that resolves differently in two snapshots.
type flagDiff struct {
	Flag  capability.Flag
	Left  string
	Right string
}

// diffSnapshots compares every flag of a and b in declaration order.
func diffSnapshots(a, b *capability.Snapshot) []flagDiff {
	var diffs []flagDiff
	right := b.Entries()
	for i, l := range a.Entries() {
		r := right[i]
		if l.Kind != r.Kind || l.Value != r.Value {
			diffs = append(diffs, flagDiff{Flag: l.Flag, Left: describeEntry(l), Right: describeEntry(r)})
		}
	}
	return diffs
}

func describeEntry(e capability.Entry) string {
	switch e.Kind {
	case capability.KindValued:
		return e.Value.String()
	case capability.KindBoolean:
		return "present"
	default:
		return "absent"
	}
}

// manifestError classifies a manifest.Load failure.
func manifestError(path string, err error) error {
	ec := issue.NewErrorContext().
		WithOperation("verify manifest").
		WithResource(path).
		Wrap(err)

	var docErr *cueutil.DocumentError
	switch {
	case errors.Is(err, fs.ErrNotExist):
		ec.WithIssue(issue.ManifestNotFoundId)
	case errors.As(err, &docErr):
		ec.WithIssue(issue.ManifestInvalidId).WithSuggestions(docErr.Suggestions()...)
	default:
		ec.WithIssue(issue.ManifestInvalidId)
	}
	return failure(ec.BuildError())
}

// runManifestChecks runs the consistency checks enabled by the manifest's
// own debug check level.
func runManifestChecks(snap *capability.Snapshot, checker *diag.Checker) error {
	return errors.Join(
		checker.Check(1, "identity", func() error {
			return snap.Identity().Validate()
		}),
		checker.Check(2, "factorization", func() error {
			_, err := backend.Select(snap, backend.RoleFactorization)
			return err
		}),
		checker.Check(3, "model reader", func() error {
			_, err := backend.Select(snap, backend.RoleModelReader)
			return err
		}),
	)
}

func newVerifyCommand(s *session) *cobra.Command {
	var compare bool

	cmd := &cobra.Command{
		Use:   "verify <manifest.cue>",
		Short: "Validate a detection manifest",
		Long: `Validate a detection manifest and build the snapshot it describes.

The manifest's check level enables extra consistency checks. With --compare
the manifest is also compared flag by flag with this build, and the command
exits 1 when they differ.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			_, msnap, err := manifest.Load(path)
			if err != nil {
				return manifestError(path, err)
			}

			// The manifest's verbosity gates check output; --verbose opens it fully.
			logger := diag.NewLogger(msnap, s.app.stderr)
			if s.verbose {
				logger.SetLevel(log.DebugLevel)
			}
			checker := diag.NewChecker(msnap, logger)
			if err := runManifestChecks(msnap, checker); err != nil {
				return failure(issue.NewErrorContext().
					WithOperation("verify manifest").
					WithResource(path).
					WithIssue(issue.ManifestInvalidId).
					Wrap(err).
					BuildError())
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s %s: %s, %d flags present\n",
				s.render(SuccessStyle, "✓"), path, msnap.Identity(), len(msnap.Flags()))

			if !compare {
				return nil
			}
			snap, err := s.snapshot()
			if err != nil {
				return err
			}
			diffs := diffSnapshots(msnap, snap)
			if len(diffs) == 0 {
				fmt.Fprintf(out, "%s matches this build\n", s.render(SuccessStyle, "✓"))
				return nil
			}
			writeDiffs(out, s, diffs)
			return &ExitError{Code: types.ExitNegative}
		},
	}

	cmd.Flags().BoolVar(&compare, "compare", false, "compare the manifest with this build")

	return cmd
}

func writeDiffs(w io.Writer, s *session, diffs []flagDiff) {
	fmt.Fprintf(w, "%s %d flags differ from this build:\n", s.render(WarningStyle, "!"), len(diffs))
	for _, d := range diffs {
		fmt.Fprintf(w, "  %s: manifest %s, build %s\n", s.render(CmdStyle, d.Flag.String()), d.Left, d.Right)
	}
}
