// SPDX-License-Identifier: MPL-2.0

package capability

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidIdentity is the sentinel error wrapped by InvalidIdentityError.
var ErrInvalidIdentity = errors.New("invalid package identity")

type (
	// Identity is the package identity record of a build. Values built with
	// NewIdentity are consistent by construction: Version is always
	// "{Major}.{Minor}.{Release}" and TarName is the lowercase Name.
	Identity struct {
		// Package is the short package name (PACKAGE).
		Package string `json:"package" toml:"package"`
		// Name is the human package name (PACKAGE_NAME).
		Name string `json:"name" toml:"name"`
		// TarName is the one-symbol short name (PACKAGE_TARNAME).
		TarName string `json:"tarname" toml:"tarname"`
		// Version is the composite version string (PACKAGE_VERSION).
		Version string `json:"version" toml:"version"`
		Major   int    `json:"major" toml:"major"`
		Minor   int    `json:"minor" toml:"minor"`
		Release int    `json:"release" toml:"release"`
		// BugReport is the address bug reports are sent to (PACKAGE_BUGREPORT).
		BugReport string `json:"bugreport" toml:"bugreport"`
	}

	// InvalidIdentityError is returned when an Identity has invalid or
	// inconsistent fields. It wraps ErrInvalidIdentity for errors.Is()
	// compatibility and collects field-level validation errors.
	InvalidIdentityError struct {
		FieldErrors []error
	}
)

// NewIdentity derives a consistent identity from a human name, the version
// components and a bug-report contact.
func NewIdentity(name string, major, minor, release int, bugReport string) Identity {
	tar := TarName(name)
	return Identity{
		Package:   tar,
		Name:      name,
		TarName:   tar,
		Version:   ComposeVersion(major, minor, release),
		Major:     major,
		Minor:     minor,
		Release:   release,
		BugReport: bugReport,
	}
}

// ComposeVersion returns "{major}.{minor}.{release}".
func ComposeVersion(major, minor, release int) string {
	return strconv.Itoa(major) + "." + strconv.Itoa(minor) + "." + strconv.Itoa(release)
}

// TarName returns the normalized short name for a human package name.
func TarName(name string) string { return strings.ToLower(name) }

// String returns the full name and version of the package (PACKAGE_STRING).
func (id Identity) String() string {
	return id.Name + " " + id.Version
}

// Validate returns an error if the identity is malformed or its derived
// fields disagree with the fields they are derived from.
func (id Identity) Validate() error {
	var errs []error
	if id.Name == "" {
		errs = append(errs, errors.New("package name must be non-empty"))
	} else if strings.ContainsFunc(id.Name, isSpace) {
		errs = append(errs, fmt.Errorf("package name %q must not contain whitespace", id.Name))
	}
	if id.Major < 0 || id.Minor < 0 || id.Release < 0 {
		errs = append(errs, fmt.Errorf("version components must be non-negative (got %d.%d.%d)", id.Major, id.Minor, id.Release))
	}
	if want := ComposeVersion(id.Major, id.Minor, id.Release); id.Version != want {
		errs = append(errs, fmt.Errorf("version %q does not match components %q", id.Version, want))
	}
	if want := TarName(id.Name); id.TarName != want {
		errs = append(errs, fmt.Errorf("tarname %q does not match lowercase name %q", id.TarName, want))
	}
	if id.Package != id.TarName {
		errs = append(errs, fmt.Errorf("package %q does not match tarname %q", id.Package, id.TarName))
	}
	if !strings.Contains(id.BugReport, "@") {
		errs = append(errs, fmt.Errorf("bug report contact %q must be an email address", id.BugReport))
	}
	if len(errs) > 0 {
		return &InvalidIdentityError{FieldErrors: errs}
	}
	return nil
}

// Error implements the error interface for InvalidIdentityError.
func (e *InvalidIdentityError) Error() string {
	return "invalid package identity: " + joinErrors(e.FieldErrors)
}

// Unwrap returns ErrInvalidIdentity for errors.Is() compatibility.
func (e *InvalidIdentityError) Unwrap() error { return ErrInvalidIdentity }

func joinErrors(errs []error) string {
	msgs := make([]string, len(errs))
	for i, err := range errs {
		msgs[i] = err.Error()
	}
	return strings.Join(msgs, "; ")
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r'
}
