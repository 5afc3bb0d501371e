// SPDX-License-Identifier: MPL-2.0

package capability

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
)

const (
	// MaxDebugLevel is the highest accepted debug check or verbosity level.
	MaxDebugLevel = 9
	// MinABCLevel is the lowest Aboca build level.
	MinABCLevel = 1
	// MaxABCLevel is the highest Aboca build level.
	MaxABCLevel = 4
)

var (
	// ErrInvalidDetection is the sentinel error wrapped by InvalidDetectionError.
	ErrInvalidDetection = errors.New("invalid capability detection")
	// ErrFlagShape is the sentinel error wrapped by FlagShapeError.
	ErrFlagShape = errors.New("flag shape mismatch")
	// ErrFlagValue is the sentinel error wrapped by FlagValueError.
	ErrFlagValue = errors.New("invalid flag value")
)

type (
	// Detection is the raw result of build-time probing. It is mutable and
	// carries no guarantees until it is turned into a Snapshot by New.
	Detection struct {
		// Name is the human package name, e.g. "Clp".
		Name string
		// BugReport is the bug-report contact address.
		BugReport string
		// Present lists boolean flags that were detected.
		Present []Flag
		// Settings holds the raw text of valued flags, as it arrives from
		// -ldflags or a manifest. Flags without an entry are absent.
		Settings map[Flag]string
	}

	// FlagShapeError is returned when a flag is used against its shape: a
	// boolean flag given a value, or a valued flag marked present without one.
	FlagShapeError struct {
		Flag   Flag
		Reason string
	}

	// FlagValueError is returned when the value of a valued flag cannot be
	// parsed, is out of range, or contradicts the package identity.
	FlagValueError struct {
		Flag   Flag
		Value  string
		Reason string
	}

	// InvalidDetectionError is returned by New when a Detection cannot be
	// turned into a Snapshot. It wraps ErrInvalidDetection for errors.Is()
	// compatibility and collects every problem found.
	InvalidDetectionError struct {
		FieldErrors []error
	}

	valueRange struct {
		lo, hi int
	}
)

// ranges bounds the integer flags; flags without an entry only need to be
// non-negative.
var ranges = map[Flag]valueRange{
	FlagDebugCheckLevel: {0, MaxDebugLevel},
	FlagDebugVerbosity:  {0, MaxDebugLevel},
	FlagHasABC:          {MinABCLevel, MaxABCLevel},
}

// Mark records boolean flags as present.
func (d *Detection) Mark(flags ...Flag) {
	d.Present = append(d.Present, flags...)
}

// Set records the raw value of a valued flag.
func (d *Detection) Set(f Flag, raw string) {
	if d.Settings == nil {
		d.Settings = make(map[Flag]string)
	}
	d.Settings[f] = raw
}

// New validates a Detection and builds the immutable Snapshot. It is the
// only way to construct a Snapshot; either every flag resolves or an
// *InvalidDetectionError describing all problems is returned.
func New(d Detection) (*Snapshot, error) {
	var errs []error
	s := &Snapshot{}

	for _, f := range d.Present {
		i, ok := flagIndex[f]
		if !ok {
			errs = append(errs, &UnknownFlagError{Flag: f})
			continue
		}
		if flagTable[i].shape != ValueNone {
			errs = append(errs, &FlagShapeError{Flag: f, Reason: "valued flag marked present without a value"})
			continue
		}
		s.kinds[i] = KindBoolean
	}

	var unknown []Flag
	for f := range d.Settings {
		if _, ok := flagIndex[f]; !ok {
			unknown = append(unknown, f)
		}
	}
	slices.Sort(unknown)
	for _, f := range unknown {
		errs = append(errs, &UnknownFlagError{Flag: f})
	}

	for i := range flagTable {
		spec := &flagTable[i]
		raw, ok := d.Settings[spec.flag]
		if !ok {
			continue
		}
		if spec.shape == ValueNone {
			errs = append(errs, &FlagShapeError{Flag: spec.flag, Reason: "boolean flag given a value"})
			continue
		}
		v, err := parseValue(spec, raw)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		s.kinds[i] = KindValued
		s.values[i] = v
	}

	// Debug levels always exist; absence means level 0.
	for _, f := range []Flag{FlagDebugCheckLevel, FlagDebugVerbosity} {
		if i := flagIndex[f]; s.kinds[i] == KindAbsent {
			s.kinds[i] = KindValued
			s.values[i] = IntValue(0)
		}
	}

	id, idErrs := s.resolveIdentity(d)
	errs = append(errs, idErrs...)

	if len(errs) > 0 {
		return nil, &InvalidDetectionError{FieldErrors: errs}
	}
	s.identity = id
	return s, nil
}

// MustNew is like New but panics when the Detection is invalid. Use it where
// a malformed build must stop the program before any consumer runs.
func MustNew(d Detection) *Snapshot {
	s, err := New(d)
	if err != nil {
		panic(fmt.Sprintf("capability: %v", err))
	}
	return s
}

// resolveIdentity builds the identity from the version components and
// fills in, or cross-checks, the identity flags derived from it.
func (s *Snapshot) resolveIdentity(d Detection) (Identity, []error) {
	var errs []error
	unresolved := false
	component := func(f Flag) int {
		v, ok := s.values[flagIndex[f]].Int()
		if !ok {
			unresolved = true
			// A component that was given but failed to parse is already reported.
			if _, given := d.Settings[f]; !given {
				errs = append(errs, &FlagValueError{Flag: f, Reason: "required"})
			}
		}
		return v
	}
	major := component(FlagVersionMajor)
	minor := component(FlagVersionMinor)
	release := component(FlagVersionRelease)
	if unresolved {
		return Identity{}, errs
	}

	id := NewIdentity(d.Name, major, minor, release, d.BugReport)
	if err := id.Validate(); err != nil {
		return Identity{}, []error{err}
	}

	derived := []struct {
		flag Flag
		want string
	}{
		{FlagClpVersion, id.Version},
		{FlagPackage, id.Package},
		{FlagPackageBugReport, id.BugReport},
		{FlagPackageName, id.Name},
		{FlagPackageString, id.String()},
		{FlagPackageTarName, id.TarName},
		{FlagPackageVersion, id.Version},
		{FlagVersion, id.Version},
	}
	for _, dv := range derived {
		i := flagIndex[dv.flag]
		if s.kinds[i] == KindValued {
			if got, _ := s.values[i].Str(); got != dv.want {
				errs = append(errs, &FlagValueError{
					Flag:   dv.flag,
					Value:  got,
					Reason: fmt.Sprintf("inconsistent with package identity (want %q)", dv.want),
				})
			}
			continue
		}
		s.kinds[i] = KindValued
		s.values[i] = StringValue(dv.want)
	}
	return id, errs
}

func parseValue(spec *flagSpec, raw string) (Value, error) {
	text := strings.TrimSpace(raw)
	if text == "" {
		return Value{}, &FlagShapeError{Flag: spec.flag, Reason: "valued flag present without a value"}
	}
	if spec.shape == ValueString {
		return StringValue(text), nil
	}

	n, err := strconv.Atoi(text)
	if err != nil {
		return Value{}, &FlagValueError{Flag: spec.flag, Value: raw, Reason: "not an integer"}
	}
	r, bounded := ranges[spec.flag]
	switch {
	case bounded && (n < r.lo || n > r.hi):
		return Value{}, &FlagValueError{Flag: spec.flag, Value: raw, Reason: fmt.Sprintf("must be in range %d-%d", r.lo, r.hi)}
	case !bounded && n < 0:
		return Value{}, &FlagValueError{Flag: spec.flag, Value: raw, Reason: "must be non-negative"}
	}
	return IntValue(n), nil
}

// Error implements the error interface for FlagShapeError.
func (e *FlagShapeError) Error() string {
	return fmt.Sprintf("flag %q: %s", e.Flag, e.Reason)
}

// Unwrap returns ErrFlagShape for errors.Is() compatibility.
func (e *FlagShapeError) Unwrap() error { return ErrFlagShape }

// Error implements the error interface for FlagValueError.
func (e *FlagValueError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("flag %q: %s", e.Flag, e.Reason)
	}
	return fmt.Sprintf("flag %q: value %q %s", e.Flag, e.Value, e.Reason)
}

// Unwrap returns ErrFlagValue for errors.Is() compatibility.
func (e *FlagValueError) Unwrap() error { return ErrFlagValue }

// Error implements the error interface for InvalidDetectionError.
func (e *InvalidDetectionError) Error() string {
	return fmt.Sprintf("invalid capability detection: %d field error(s): %s", len(e.FieldErrors), joinErrors(e.FieldErrors))
}

// Unwrap returns ErrInvalidDetection for errors.Is() compatibility.
func (e *InvalidDetectionError) Unwrap() error { return ErrInvalidDetection }
