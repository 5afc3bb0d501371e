// SPDX-License-Identifier: MPL-2.0

package capability

import (
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
)

var (
	// ErrMissingCapability is the sentinel error wrapped by MissingCapabilityError.
	ErrMissingCapability = errors.New("missing capability")
	// ErrAlreadyInitialized is returned by Init when a process-wide snapshot
	// has already been installed.
	ErrAlreadyInitialized = errors.New("capability snapshot already initialized")
)

type (
	// Reader is the read-only contract consumers use to branch on
	// capabilities. *Snapshot implements it; consumers should accept a
	// Reader rather than a concrete Snapshot.
	Reader interface {
		Has(f Flag) bool
		Value(f Flag) (Value, bool)
		Identity() Identity
	}

	// MissingCapabilityError is returned by Require when one or more flags
	// are absent. It wraps ErrMissingCapability for errors.Is() compatibility.
	MissingCapabilityError struct {
		Flags []Flag
	}
)

// installed holds the process-wide snapshot. It is written once by Init and
// read with an atomic load, which orders construction before every read.
var installed atomic.Pointer[Snapshot]

// Init installs s as the process-wide snapshot. It must be called once,
// before any goroutine calls Default.
func Init(s *Snapshot) error {
	if s == nil {
		return errors.New("capability: Init called with nil snapshot")
	}
	if !installed.CompareAndSwap(nil, s) {
		return ErrAlreadyInitialized
	}
	return nil
}

// Default returns the process-wide snapshot installed by Init. Calling it
// before Init is a programming error and panics.
func Default() *Snapshot {
	s := installed.Load()
	if s == nil {
		panic("capability: Default called before Init")
	}
	return s
}

// Int returns the integer value of a valued flag.
func Int(r Reader, f Flag) (int, bool) {
	v, ok := r.Value(f)
	if !ok {
		return 0, false
	}
	return v.Int()
}

// String returns the string value of a valued flag.
func String(r Reader, f Flag) (string, bool) {
	v, ok := r.Value(f)
	if !ok {
		return "", false
	}
	return v.Str()
}

// CheckLevel returns the debug sanity check level; 0 disables checks.
func CheckLevel(r Reader) int {
	n, _ := Int(r, FlagDebugCheckLevel)
	return n
}

// Verbosity returns the debug verbosity level; 0 disables diagnostic output.
func Verbosity(r Reader) int {
	n, _ := Int(r, FlagDebugVerbosity)
	return n
}

// Require returns a *MissingCapabilityError naming every absent flag, or nil
// when all flags are present.
func Require(r Reader, flags ...Flag) error {
	var missing []Flag
	for _, f := range flags {
		if !r.Has(f) {
			missing = append(missing, f)
		}
	}
	if len(missing) > 0 {
		return &MissingCapabilityError{Flags: missing}
	}
	return nil
}

// Error implements the error interface for MissingCapabilityError.
func (e *MissingCapabilityError) Error() string {
	names := make([]string, len(e.Flags))
	for i, f := range e.Flags {
		names[i] = f.String()
	}
	return fmt.Sprintf("missing capability: %s", strings.Join(names, ", "))
}

// Unwrap returns ErrMissingCapability for errors.Is() compatibility.
func (e *MissingCapabilityError) Unwrap() error { return ErrMissingCapability }
