// SPDX-License-Identifier: MPL-2.0

package cueutil

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidCUEPath is returned when a CUEPath is empty or blank.
var ErrInvalidCUEPath = errors.New("invalid CUE path")

// CUEPath is a JSON-path style location inside a CUE document,
// e.g. "settings.debug_check_level" or "packages[2]".
type CUEPath string

// String returns the string representation of the CUEPath.
func (p CUEPath) String() string { return string(p) }

// Validate returns an error wrapping ErrInvalidCUEPath when the path is blank.
func (p CUEPath) Validate() error {
	if strings.TrimSpace(string(p)) == "" {
		return fmt.Errorf("%w: %q", ErrInvalidCUEPath, p)
	}
	return nil
}

// Field returns the last field name of the path, without any index suffix.
func (p CUEPath) Field() string {
	s := string(p)
	if i := strings.LastIndexByte(s, '.'); i >= 0 {
		s = s[i+1:]
	}
	if i := strings.IndexByte(s, '['); i >= 0 {
		s = s[:i]
	}
	return s
}
