// SPDX-License-Identifier: MPL-2.0

// Package types defines small value types shared by the clpconfig command
// layer and the packages it drives.
//
// This package is a leaf dependency: it imports only the standard library.
package types

import (
	"errors"
	"fmt"
	"strconv"
)

const (
	// ExitSuccess means the query was answered affirmatively.
	ExitSuccess ExitCode = 0
	// ExitNegative means the query was answered negatively: a flag is
	// absent, a value is unset or a manifest differs from the build.
	ExitNegative ExitCode = 1
	// ExitFailure means the command could not run: invalid input, an
	// unreadable manifest or a malformed build.
	ExitFailure ExitCode = 2
)

// ErrInvalidExitCode is the sentinel error wrapped by InvalidExitCodeError.
var ErrInvalidExitCode = errors.New("invalid exit code")

type (
	// ExitCode represents a process exit status code.
	// Exit codes are in the range 0-255 on POSIX systems.
	// The zero value (0) means success.
	ExitCode int

	// InvalidExitCodeError is returned when an ExitCode is outside the
	// valid range (0-255).
	InvalidExitCodeError struct {
		Value ExitCode
	}
)

// Error implements the error interface.
func (e *InvalidExitCodeError) Error() string {
	return fmt.Sprintf("invalid exit code %d (must be in range 0-255)", e.Value)
}

// Unwrap returns ErrInvalidExitCode so callers can use errors.Is for programmatic detection.
func (e *InvalidExitCodeError) Unwrap() error { return ErrInvalidExitCode }

// Validate returns an error if the ExitCode is outside the valid range (0-255).
func (c ExitCode) Validate() error {
	if c < 0 || c > 255 {
		return &InvalidExitCodeError{Value: c}
	}
	return nil
}

// IsSuccess returns true if the exit code indicates success.
func (c ExitCode) IsSuccess() bool { return c == ExitSuccess }

// IsNegative returns true if the exit code reports a negative answer rather
// than a failure, the way test(1) and pkg-config --exists do.
func (c ExitCode) IsNegative() bool { return c == ExitNegative }

// String returns the decimal string representation of the ExitCode.
func (c ExitCode) String() string { return strconv.Itoa(int(c)) }
