// SPDX-License-Identifier: MPL-2.0

// Package diag gates diagnostic output and sanity checks on the debug levels
// recorded in the capability snapshot.
package diag

import (
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/clp-go/clp/pkg/capability"
)

// ErrCheckFailed is the sentinel error wrapped by CheckFailedError.
var ErrCheckFailed = errors.New("sanity check failed")

type (
	// Checker runs sanity checks whose level does not exceed the build's
	// debug_check_level. A check level of 0 disables every check.
	Checker struct {
		level  int
		logger *log.Logger
	}

	// CheckFailedError is returned by Check when an enabled check fails.
	// It matches both ErrCheckFailed and the error returned by the check.
	CheckFailedError struct {
		Name  string
		Level int
		Err   error
	}
)

// LogLevel maps a debug_verbosity value to a logger level: 0 keeps only
// warnings and errors, 1 adds informational output, 2 and above add debug.
func LogLevel(verbosity int) log.Level {
	switch {
	case verbosity <= 0:
		return log.WarnLevel
	case verbosity == 1:
		return log.InfoLevel
	default:
		return log.DebugLevel
	}
}

// NewLogger returns a logger writing to w at the level derived from the
// snapshot's debug verbosity.
func NewLogger(r capability.Reader, w io.Writer) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		Prefix: "clp",
		Level:  LogLevel(capability.Verbosity(r)),
	})
}

// NewChecker returns a Checker for the snapshot's debug check level. Failed
// checks are logged to logger; a nil logger discards them.
func NewChecker(r capability.Reader, logger *log.Logger) *Checker {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Checker{level: capability.CheckLevel(r), logger: logger}
}

// Level returns the check level the Checker was built with.
func (c *Checker) Level() int { return c.level }

// Enabled reports whether checks at the given level run.
func (c *Checker) Enabled(level int) bool {
	return level > 0 && level <= c.level
}

// Check runs fn when checks at level are enabled. It returns a
// *CheckFailedError when fn fails and nil when it passes or is skipped.
func (c *Checker) Check(level int, name string, fn func() error) error {
	if !c.Enabled(level) {
		return nil
	}
	c.logger.Debug("running check", "check", name, "level", level)
	if err := fn(); err != nil {
		c.logger.Error("check failed", "check", name, "level", level, "error", err)
		return &CheckFailedError{Name: name, Level: level, Err: err}
	}
	c.logger.Info("check passed", "check", name, "level", level)
	return nil
}

// Error implements the error interface for CheckFailedError.
func (e *CheckFailedError) Error() string {
	return fmt.Sprintf("check %q (level %d) failed: %v", e.Name, e.Level, e.Err)
}

// Unwrap returns ErrCheckFailed and the underlying check error.
func (e *CheckFailedError) Unwrap() []error { return []error{ErrCheckFailed, e.Err} }
