// SPDX-License-Identifier: MPL-2.0

// Package cmd contains all CLI commands for clpconfig.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/clp-go/clp/internal/buildcfg"
	"github.com/clp-go/clp/internal/config"
	"github.com/clp-go/clp/internal/issue"
	"github.com/clp-go/clp/pkg/capability"
	"github.com/clp-go/clp/pkg/types"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

// session holds the state of one clpconfig invocation. The root command's
// PersistentPreRunE fills it before any subcommand runs.
type session struct {
	app *App

	// verbose enables verbose output
	verbose bool
	// cfgFile allows specifying a custom config file
	cfgFile string

	cfg          *config.Config
	cfgErr       error
	logger       *log.Logger
	styled       bool
	glamourStyle string

	snap *capability.Snapshot
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	bi, ok := buildcfg.ReadBuildInfo()
	if !ok || bi.ModuleVersion == "" || bi.ModuleVersion == "(devel)" {
		return "dev (built from source)"
	}
	if bi.Revision == "" {
		return fmt.Sprintf("%s (%s)", bi.ModuleVersion, bi.GoVersion)
	}
	return fmt.Sprintf("%s (commit: %s, %s)", bi.ModuleVersion, bi.Revision, bi.GoVersion)
}

// NewRootCommand builds the clpconfig command tree around app.
func NewRootCommand(app *App) *cobra.Command {
	rootCmd, _ := newRootCommand(app)
	return rootCmd
}

func newRootCommand(app *App) (*cobra.Command, *session) {
	s := &session{app: app}

	rootCmd := &cobra.Command{
		Use:   "clpconfig",
		Short: "Report the build capabilities of the Clp LP library",
		Long: TitleStyle.Render("clpconfig") + SubtitleStyle.Render(" - Report the build capabilities of the Clp LP library") + `

clpconfig answers the questions a configure script answers at build time:
which optional packages were linked, which platform headers exist, how the
Fortran symbols are mangled and which version of Clp this is.

` + SubtitleStyle.Render("Examples:") + `
  clpconfig show                    List present capabilities
  clpconfig show --format header    Regenerate config.h
  clpconfig has has_mumps           Exit 0 when MUMPS is linked
  clpconfig value clp_version       Print the library version
  clpconfig backends                Show the backend chosen for each role
  clpconfig verify clp.cue          Validate a detection manifest`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: s.setup,
	}
	rootCmd.SetOut(app.stdout)
	rootCmd.SetErr(app.stderr)

	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&s.verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVar(&s.cfgFile, "config", "", "config file (default is $HOME/.config/clpconfig/config.cue)")

	// Add subcommands
	rootCmd.AddCommand(newShowCommand(s))
	rootCmd.AddCommand(newHasCommand(s))
	rootCmd.AddCommand(newValueCommand(s))
	rootCmd.AddCommand(newVersionCommand(s))
	rootCmd.AddCommand(newBackendsCommand(s))
	rootCmd.AddCommand(newVerifyCommand(s))
	rootCmd.AddCommand(newConfigCommand(s))

	return rootCmd, s
}

// Execute builds the root command and runs it. This is called by main.main().
func Execute() {
	app := NewApp(Dependencies{})
	rootCmd, s := newRootCommand(app)

	// Use fang.Execute for enhanced Cobra styling
	// Pass version via fang.WithVersion() since fang overrides rootCmd.Version
	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
		fang.WithErrorHandler(s.handleError),
	); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(int(exitErr.Code))
		}
		os.Exit(int(types.ExitFailure))
	}
}

// setup loads configuration and derives the logger and output styling.
// Configuration errors are surfaced as a warning and defaults are used, so
// queries keep working with a broken config file.
func (s *session) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := s.app.Config.Load(cmd.Context(), config.LoadOptions{ConfigFilePath: s.cfgFile})
	if err != nil {
		s.cfgErr = err
		cfg = config.DefaultConfig()
	}
	s.cfg = cfg

	// Apply verbose from config if not set via flag
	if !s.verbose {
		s.verbose = cfg.UI.Verbose
	}

	s.styled, s.glamourStyle = terminalStyle(s.app.stdout, cfg.UI.ColorScheme)

	level := log.WarnLevel
	if s.verbose {
		level = log.DebugLevel
	}
	s.logger = log.NewWithOptions(s.app.stderr, log.Options{
		Prefix: config.AppName,
		Level:  level,
	})

	if err != nil && !isConfigCommand(cmd) {
		fmt.Fprintln(s.app.stderr, s.render(WarningStyle, "Warning: ")+formatErrorForDisplay(err, s.verbose))
	}
	s.logger.Debug("configuration loaded", "format", cfg.Output.Format, "color_scheme", cfg.UI.ColorScheme)
	return nil
}

// snapshot returns the snapshot being reported on, loading it on first use.
func (s *session) snapshot() (*capability.Snapshot, error) {
	if s.snap != nil {
		return s.snap, nil
	}
	snap, err := s.app.Snapshot()
	if err != nil {
		return nil, failure(issue.NewErrorContext().
			WithOperation("load build capabilities").
			WithIssue(issue.SnapshotInvalidId).
			WithSuggestion("Check the -ldflags -X values passed to go build").
			Wrap(err).
			BuildError())
	}
	s.snap = snap
	return snap, nil
}

// render applies style only when output is styled.
func (s *session) render(style lipgloss.Style, text string) string {
	if !s.styled {
		return text
	}
	return style.Render(text)
}

// isConfigCommand reports whether cmd is part of the 'config' tree, which
// reports configuration errors itself.
func isConfigCommand(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Name() == "config" && c.Parent() != nil && !c.Parent().HasParent() {
			return true
		}
	}
	return false
}

// handleError prints errors returned by commands. A bare ExitError stays
// silent; actionable errors get their suggestions and issue guidance.
func (s *session) handleError(w io.Writer, styles fang.Styles, err error) {
	var exitErr *ExitError
	if errors.As(err, &exitErr) && exitErr.Err == nil {
		return
	}
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		s.renderError(w, ae)
		return
	}
	fang.DefaultErrorHandler(w, styles, err)
}

// formatErrorForDisplay formats an error for user display.
// If the error is an ActionableError, it uses the Format method.
// In verbose mode, shows the full error chain.
func formatErrorForDisplay(err error, verboseMode bool) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Format(verboseMode)
	}
	return err.Error()
}

// renderError writes an actionable error followed by the markdown guidance
// of its issue, if it has one. The guidance is only shown in verbose mode or
// on a terminal, where it is meant to be read.
func (s *session) renderError(w io.Writer, ae *issue.ActionableError) {
	fmt.Fprintln(w, s.render(ErrorStyle, "Error: ")+ae.Format(s.verbose))
	iss := ae.Issue()
	if iss == nil || (!s.verbose && !s.styled) {
		return
	}
	style := s.glamourStyle
	if style == "" {
		style = "notty"
	}
	rendered, err := iss.Render(style)
	if err != nil {
		return
	}
	fmt.Fprint(w, rendered)
}
