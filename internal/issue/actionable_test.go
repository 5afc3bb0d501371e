// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"testing"
)

func TestActionableError_Error(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		ctx  *ErrorContext
		want string
	}{
		{
			name: "operation only",
			ctx:  NewErrorContext().WithOperation("load capability snapshot"),
			want: "failed to load capability snapshot",
		},
		{
			name: "with resource",
			ctx:  NewErrorContext().WithOperation("query flag").WithResource("has_pardiso"),
			want: "failed to query flag: has_pardiso",
		},
		{
			name: "with resource and cause",
			ctx: NewErrorContext().
				WithOperation("verify manifest").
				WithResource("clp.cue").
				Wrap(fs.ErrNotExist),
			want: "failed to verify manifest: clp.cue: file does not exist",
		},
		{
			name: "cause without resource",
			ctx:  NewErrorContext().WithOperation("select backends").Wrap(errors.New("unknown backend")),
			want: "failed to select backends: unknown backend",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := tt.ctx.Build().Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestActionableError_Unwrap(t *testing.T) {
	t.Parallel()

	err := NewErrorContext().
		WithOperation("verify manifest").
		Wrap(fmt.Errorf("read manifest: %w", fs.ErrNotExist)).
		BuildError()

	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("errors.Is(%v, fs.ErrNotExist) = false", err)
	}
	var ae *ActionableError
	if !errors.As(err, &ae) || ae.Operation != "verify manifest" {
		t.Errorf("errors.As() = %v, want the ActionableError", ae)
	}
}

func TestActionableError_Format(t *testing.T) {
	t.Parallel()

	ae := NewErrorContext().
		WithOperation("load configuration").
		WithResource("config.cue").
		WithSuggestions("Check the CUE syntax", "Run 'clpconfig config init --force'").
		Wrap(fmt.Errorf("decode: %w", errors.New("unexpected token"))).
		Build()

	tests := []struct {
		name     string
		verbose  bool
		contains []string
		excludes []string
	}{
		{
			name:     "default",
			contains: []string{"failed to load configuration: config.cue", "\n\n  • Check the CUE syntax", "\n  • Run 'clpconfig config init --force'"},
			excludes: []string{"Error chain:"},
		},
		{
			name:     "verbose",
			verbose:  true,
			contains: []string{"Error chain:", "1. decode: unexpected token", "2. unexpected token"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := ae.Format(tt.verbose)
			for _, s := range tt.contains {
				if !strings.Contains(got, s) {
					t.Errorf("Format(%v) = %q, missing %q", tt.verbose, got, s)
				}
			}
			for _, s := range tt.excludes {
				if strings.Contains(got, s) {
					t.Errorf("Format(%v) = %q, should not contain %q", tt.verbose, got, s)
				}
			}
		})
	}
}

func TestActionableError_FormatWithoutSuggestions(t *testing.T) {
	t.Parallel()

	ae := NewErrorContext().WithOperation("show snapshot").Build()
	if got := ae.Format(true); got != "failed to show snapshot" {
		t.Errorf("Format(true) = %q, want the bare message", got)
	}
}

func TestErrorContext_Build(t *testing.T) {
	t.Parallel()

	if ae := NewErrorContext().WithResource("has_amd").Build(); ae != nil {
		t.Errorf("Build() without operation = %v, want nil", ae)
	}
	if err := NewErrorContext().BuildError(); err != nil {
		t.Errorf("BuildError() without operation = %v, want untyped nil", err)
	}

	cause := errors.New("boom")
	ae := NewErrorContext().
		WithOperation("select backends").
		WithResource("factorization=wsmp").
		WithSuggestion("Run 'clpconfig backends'").
		WithIssue(BackendUnavailableId).
		Wrap(cause).
		Build()

	if ae.Operation != "select backends" || ae.Resource != "factorization=wsmp" {
		t.Errorf("Build() = %+v", ae)
	}
	if len(ae.Suggestions) != 1 || ae.Cause != cause || ae.IssueID != BackendUnavailableId {
		t.Errorf("Build() = %+v", ae)
	}
}

func TestErrorContext_BuildReturnsIndependentErrors(t *testing.T) {
	t.Parallel()

	ctx := NewErrorContext().
		WithOperation("query flag").
		WithSuggestion("Run 'clpconfig show --all'")

	first := ctx.WithResource("has_pardiso").Wrap(errors.New("unknown")).Build()
	second := ctx.WithResource("have_fenv_h").WithSuggestion("Check the spelling").Build()

	if first.Resource != "has_pardiso" || second.Resource != "have_fenv_h" {
		t.Errorf("resources = %q, %q", first.Resource, second.Resource)
	}
	if len(first.Suggestions) != 1 {
		t.Errorf("first.Suggestions = %v, later builder calls must not alter it", first.Suggestions)
	}
	if len(second.Suggestions) != 2 {
		t.Errorf("second.Suggestions = %v, want 2", second.Suggestions)
	}
}

func TestActionableError_Issue(t *testing.T) {
	t.Parallel()

	ae := NewErrorContext().
		WithOperation("select backends").
		WithIssue(BackendUnavailableId).
		Build()
	if got := ae.Issue(); got == nil || got.Id() != BackendUnavailableId {
		t.Errorf("Issue() = %v, want the backend unavailable issue", got)
	}

	if got := NewErrorContext().WithOperation("show snapshot").Build().Issue(); got != nil {
		t.Errorf("Issue() without IssueID = %v, want nil", got)
	}
}
