// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/clp-go/clp/internal/config"
	"github.com/clp-go/clp/internal/issue"
	"github.com/clp-go/clp/pkg/capability"
	"github.com/clp-go/clp/pkg/types"
)

type stubConfig struct {
	cfg *config.Config
	err error
}

func (p stubConfig) Load(context.Context, config.LoadOptions) (*config.Config, error) {
	if p.err != nil {
		return nil, p.err
	}
	if p.cfg == nil {
		return config.DefaultConfig(), nil
	}
	return p.cfg, nil
}

func testSnapshot(t *testing.T, present ...capability.Flag) *capability.Snapshot {
	t.Helper()

	d := capability.Detection{Name: "Clp", BugReport: "clp@list.coin-or.org"}
	d.Set(capability.FlagVersionMajor, "1")
	d.Set(capability.FlagVersionMinor, "16")
	d.Set(capability.FlagVersionRelease, "10")
	d.Set(capability.FlagSVNRevision, "2358")
	d.Mark(present...)
	s, err := capability.New(d)
	if err != nil {
		t.Fatalf("capability.New() error = %v", err)
	}
	return s
}

func snapshotLoader(s *capability.Snapshot) SnapshotLoader {
	return func() (*capability.Snapshot, error) { return s, nil }
}

// run executes clpconfig in-process and returns what it wrote.
func run(t *testing.T, deps Dependencies, args ...string) (string, string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	deps.Stdout = &stdout
	deps.Stderr = &stderr
	if deps.Config == nil {
		deps.Config = stubConfig{}
	}

	rootCmd := NewRootCommand(NewApp(deps))
	rootCmd.SetArgs(args)
	err := rootCmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func wantExitCode(t *testing.T, err error, code types.ExitCode) *ExitError {
	t.Helper()

	var exitErr *ExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("error = %v, want *ExitError", err)
	}
	if exitErr.Code != code {
		t.Fatalf("exit code = %d, want %d (%v)", exitErr.Code, code, err)
	}
	return exitErr
}

func wantIssue(t *testing.T, err error, id issue.Id) {
	t.Helper()

	var ae *issue.ActionableError
	if !errors.As(err, &ae) {
		t.Fatalf("error = %v, want *issue.ActionableError", err)
	}
	if ae.IssueID != id {
		t.Errorf("IssueID = %d, want %d", ae.IssueID, id)
	}
}

func TestShow_Header(t *testing.T) {
	t.Parallel()

	snap := testSnapshot(t, capability.FlagHasMumps)
	out, _, err := run(t, Dependencies{Snapshot: snapshotLoader(snap)}, "show", "--format", "header")
	if err != nil {
		t.Fatalf("show error = %v", err)
	}
	for _, want := range []string{
		"#define COIN_HAS_MUMPS 1",
		"/* #undef COIN_HAS_WSMP */",
		`#define CLP_VERSION "1.16.10"`,
		"#define CLP_SVN_REV 2358",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("header output missing %q", want)
		}
	}
}

func TestShow_FormatFromConfig(t *testing.T) {
	t.Parallel()

	cfg := config.DefaultConfig()
	cfg.Output.Format = "json"
	snap := testSnapshot(t, capability.FlagHasAMD)

	out, _, err := run(t, Dependencies{Config: stubConfig{cfg: cfg}, Snapshot: snapshotLoader(snap)}, "show")
	if err != nil {
		t.Fatalf("show error = %v", err)
	}
	var doc struct {
		Identity capability.Identity `json:"identity"`
		Flags    map[string]any      `json:"flags"`
	}
	if err := json.Unmarshal([]byte(out), &doc); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out)
	}
	if doc.Identity.Version != "1.16.10" {
		t.Errorf("identity version = %q", doc.Identity.Version)
	}
	if doc.Flags["has_amd"] != true {
		t.Errorf("flags[has_amd] = %v, want true", doc.Flags["has_amd"])
	}
	if _, ok := doc.Flags["has_wsmp"]; ok {
		t.Error("absent flags should be omitted without --all")
	}

	out, _, err = run(t, Dependencies{Config: stubConfig{cfg: cfg}, Snapshot: snapshotLoader(snap)}, "show", "--all", "--category", "package")
	if err != nil {
		t.Fatalf("show --all error = %v", err)
	}
	if err := json.Unmarshal([]byte(out), &doc); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if doc.Flags["has_wsmp"] != false {
		t.Errorf("flags[has_wsmp] = %v, want false with --all", doc.Flags["has_wsmp"])
	}
}

func TestShow_InvalidInput(t *testing.T) {
	t.Parallel()

	deps := Dependencies{Snapshot: snapshotLoader(testSnapshot(t))}

	_, _, err := run(t, deps, "show", "--format", "yaml")
	wantExitCode(t, err, types.ExitFailure)
	wantIssue(t, err, issue.InvalidFormatId)

	_, _, err = run(t, deps, "show", "--category", "solver")
	wantExitCode(t, err, types.ExitFailure)
	wantIssue(t, err, issue.UnknownCategoryId)
}

func TestHas(t *testing.T) {
	t.Parallel()

	snap := testSnapshot(t, capability.FlagHasMumps, capability.FlagHasCoinUtils)

	tests := []struct {
		name string
		args []string
		want types.ExitCode
	}{
		{"all present", []string{"has_mumps", "has_coinutils"}, types.ExitSuccess},
		{"macro name", []string{"COIN_HAS_MUMPS"}, types.ExitSuccess},
		{"upper case flag name", []string{"HAS_MUMPS"}, types.ExitSuccess},
		{"one absent", []string{"has_mumps", "has_wsmp"}, types.ExitNegative},
		{"unknown is absent", []string{"has_pardiso"}, types.ExitNegative},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			out, _, err := run(t, Dependencies{Snapshot: snapshotLoader(snap)}, append([]string{"has"}, tt.args...)...)
			if out != "" {
				t.Errorf("has printed %q, want no output", out)
			}
			if tt.want == types.ExitSuccess {
				if err != nil {
					t.Errorf("has %v error = %v", tt.args, err)
				}
				return
			}
			exitErr := wantExitCode(t, err, tt.want)
			if exitErr.Err != nil {
				t.Errorf("negative answer carries error %v, want silent exit", exitErr.Err)
			}
		})
	}
}

func TestValue(t *testing.T) {
	t.Parallel()

	snap := testSnapshot(t, capability.FlagHasMumps)
	deps := Dependencies{Snapshot: snapshotLoader(snap)}

	tests := []struct {
		args []string
		want string
	}{
		{[]string{"value", "clp_version"}, "1.16.10\n"},
		{[]string{"value", "CLP_SVN_REV"}, "2358\n"},
		{[]string{"value", "has_mumps"}, "1\n"},
		{[]string{"value", "debug_verbosity"}, "0\n"},
		{[]string{"value", "--define", "has_mumps"}, "#define COIN_HAS_MUMPS 1\n"},
		{[]string{"value", "--define", "has_wsmp"}, "/* #undef COIN_HAS_WSMP */\n"},
	}
	for _, tt := range tests {
		out, _, err := run(t, deps, tt.args...)
		if err != nil {
			t.Errorf("%v error = %v", tt.args, err)
			continue
		}
		if out != tt.want {
			t.Errorf("%v = %q, want %q", tt.args, out, tt.want)
		}
	}

	_, _, err := run(t, deps, "value", "has_wsmp")
	wantExitCode(t, err, types.ExitNegative)

	_, _, err = run(t, deps, "value", "has_pardiso")
	wantExitCode(t, err, types.ExitFailure)
	wantIssue(t, err, issue.UnknownFlagId)
	if !errors.Is(err, capability.ErrUnknownFlag) {
		t.Errorf("error = %v, want ErrUnknownFlag", err)
	}
}

func TestVersion_JSON(t *testing.T) {
	t.Parallel()

	snap := testSnapshot(t, capability.FlagHasMumps, capability.FlagHasSample)
	out, _, err := run(t, Dependencies{Snapshot: snapshotLoader(snap)}, "version", "--json")
	if err != nil {
		t.Fatalf("version error = %v", err)
	}
	var report versionReport
	if err := json.Unmarshal([]byte(out), &report); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out)
	}
	if report.Identity.String() != "Clp 1.16.10" {
		t.Errorf("identity = %q", report.Identity.String())
	}
	if report.SVNRevision == nil || *report.SVNRevision != 2358 {
		t.Errorf("svn_revision = %v", report.SVNRevision)
	}
	want := []capability.Flag{capability.FlagHasMumps, capability.FlagHasSample}
	if len(report.Packages) != len(want) || report.Packages[0] != want[0] || report.Packages[1] != want[1] {
		t.Errorf("packages = %v, want %v", report.Packages, want)
	}
}

func TestVersion_Text(t *testing.T) {
	t.Parallel()

	out, _, err := run(t, Dependencies{Snapshot: snapshotLoader(testSnapshot(t))}, "version")
	if err != nil {
		t.Fatalf("version error = %v", err)
	}
	for _, want := range []string{"Clp 1.16.10", "Bug reports: clp@list.coin-or.org", "SVN revision: 2358", "Packages: (none)"} {
		if !strings.Contains(out, want) {
			t.Errorf("version output missing %q:\n%s", want, out)
		}
	}
}

func TestSnapshotLoadFailure(t *testing.T) {
	t.Parallel()

	failing := func() (*capability.Snapshot, error) {
		return nil, capability.ErrInvalidDetection
	}
	_, _, err := run(t, Dependencies{Snapshot: failing}, "show")
	wantExitCode(t, err, types.ExitFailure)
	wantIssue(t, err, issue.SnapshotInvalidId)
}

func TestConfigErrorIsAWarning(t *testing.T) {
	t.Parallel()

	deps := Dependencies{
		Config:   stubConfig{err: errors.New("broken config")},
		Snapshot: snapshotLoader(testSnapshot(t, capability.FlagHasAMD)),
	}

	_, stderr, err := run(t, deps, "has", "has_amd")
	if err != nil {
		t.Fatalf("has error = %v, want defaults after a config error", err)
	}
	if !strings.Contains(stderr, "Warning: broken config") {
		t.Errorf("stderr = %q, want config warning", stderr)
	}

	_, _, err = run(t, deps, "config", "show")
	wantExitCode(t, err, types.ExitFailure)
}

func TestResolveFlag(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		want capability.Flag
		ok   bool
	}{
		{"has_amd", capability.FlagHasAMD, true},
		{"COIN_HAS_AMD", capability.FlagHasAMD, true},
		{"CLP_VERSION", capability.FlagClpVersion, true},
		{"coin_has_amd", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		got, ok := resolveFlag(tt.name)
		if got != tt.want || ok != tt.ok {
			t.Errorf("resolveFlag(%q) = %q, %v; want %q, %v", tt.name, got, ok, tt.want, tt.ok)
		}
	}
}

func TestRenderError(t *testing.T) {
	t.Parallel()

	s := &session{verbose: true}
	ae := issue.NewErrorContext().
		WithOperation("select backends").
		WithIssue(issue.UnknownBackendId).
		WithSuggestion("Run 'clpconfig backends'").
		Wrap(errors.New("unknown backend")).
		Build()

	var buf bytes.Buffer
	s.renderError(&buf, ae)
	out := buf.String()
	if !strings.HasPrefix(out, "Error: failed to select backends: unknown backend") {
		t.Errorf("output = %q", out)
	}
	if !strings.Contains(out, "Run 'clpconfig backends'") {
		t.Error("output is missing the suggestion")
	}
	if !strings.Contains(out, "Unknown backend!") {
		t.Error("verbose output is missing the issue guidance")
	}

	buf.Reset()
	(&session{}).renderError(&buf, ae)
	if strings.Contains(buf.String(), "Unknown backend!") {
		t.Error("guidance should be omitted when neither verbose nor styled")
	}
}

func TestGetVersionString(t *testing.T) {
	t.Parallel()

	// Test binaries report Main.Version "(devel)".
	if got := getVersionString(); got != "dev (built from source)" {
		t.Errorf("getVersionString() = %q", got)
	}
}
