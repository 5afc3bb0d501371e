// SPDX-License-Identifier: MPL-2.0

package backend

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/clp-go/clp/pkg/capability"
)

const (
	// RoleFactorization is the sparse Cholesky factorization used by the
	// interior point (barrier) method.
	RoleFactorization Role = "factorization"
	// RoleModelReader is the model file reader.
	RoleModelReader Role = "model-reader"
	// RoleDataset is the bundled test problem collection.
	RoleDataset Role = "dataset"
	// RoleLineEditor is the line editing used by the interactive shell.
	RoleLineEditor Role = "line-editor"
)

var (
	// ErrInvalidRole is returned when a Role value is not recognized.
	ErrInvalidRole = errors.New("invalid backend role")
	// ErrUnknownBackend is returned when a backend name is not in the catalogue
	// of its role.
	ErrUnknownBackend = errors.New("unknown backend")
	// ErrBackendUnavailable is the sentinel error wrapped by UnavailableBackendError.
	ErrBackendUnavailable = errors.New("backend unavailable")
)

type (
	// Role is the slot a backend fills in the library.
	Role string

	// Backend is one implementation that can fill a role. A backend is
	// available when every flag in Requires is present in the snapshot.
	Backend struct {
		Name        string            `json:"name" toml:"name"`
		Role        Role              `json:"role" toml:"role"`
		Description string            `json:"description" toml:"description"`
		Requires    []capability.Flag `json:"requires,omitempty" toml:"requires,omitempty"`
	}

	// UnavailableBackendError is returned when a requested backend was not
	// linked into this build, or when no backend of a role is available.
	// It wraps ErrBackendUnavailable for errors.Is() compatibility.
	UnavailableBackendError struct {
		Role    Role
		Name    string
		Missing []capability.Flag
	}

	// Selection is the outcome of resolving one role in a Plan.
	Selection struct {
		Role      Role
		Backend   Backend
		Available []Backend
		// Err is non-nil when the role could not be resolved; Backend is
		// then the zero value.
		Err error
	}
)

// catalogue lists the backends of each role in default preference order.
var catalogue = map[Role][]Backend{
	RoleFactorization: {
		{Name: "wsmp", Description: "Watson Sparse Matrix Package", Requires: []capability.Flag{capability.FlagHasWSMP}},
		{Name: "mumps", Description: "MUMPS multifrontal solver", Requires: []capability.Flag{capability.FlagHasMumps}},
		{Name: "cholmod", Description: "CHOLMOD supernodal Cholesky", Requires: []capability.Flag{capability.FlagHasCHOLMOD}},
		{Name: "amd", Description: "native Cholesky with AMD ordering", Requires: []capability.Flag{capability.FlagHasAMD}},
		{Name: "dense", Description: "native Cholesky with dense columns"},
	},
	RoleModelReader: {
		{Name: "mps", Description: "MPS and LP files via CoinUtils", Requires: []capability.Flag{capability.FlagHasCoinUtils}},
		{Name: "gmpl", Description: "GNU MathProg models via Glpk", Requires: []capability.Flag{capability.FlagHasGlpk}},
		{Name: "ampl", Description: "AMPL .nl files via the AMPL Solver Library", Requires: []capability.Flag{capability.FlagHasASL}},
	},
	RoleDataset: {
		{Name: "sample", Description: "Sample problems shipped with Clp", Requires: []capability.Flag{capability.FlagHasSample}},
		{Name: "netlib", Description: "Netlib LP test set", Requires: []capability.Flag{capability.FlagHasNetlib}},
	},
	RoleLineEditor: {
		{Name: "readline", Description: "GNU readline", Requires: []capability.Flag{capability.FlagHasReadline, capability.FlagHaveReadlineH}},
		{Name: "plain", Description: "unbuffered standard input"},
	},
}

func init() {
	for role, backends := range catalogue {
		for i := range backends {
			backends[i].Role = role
		}
	}
}

// Roles returns every role in display order.
func Roles() []Role {
	return []Role{RoleFactorization, RoleModelReader, RoleDataset, RoleLineEditor}
}

// String returns the string representation of the Role.
func (r Role) String() string { return string(r) }

// IsValid returns whether the Role is one of the defined roles,
// and a list of validation errors if it is not.
func (r Role) IsValid() (bool, []error) {
	if _, ok := catalogue[r]; ok {
		return true, nil
	}
	return false, []error{fmt.Errorf("%w: %q", ErrInvalidRole, r)}
}

// Catalogue returns every backend of a role in default preference order,
// regardless of availability.
func Catalogue(role Role) []Backend {
	out := make([]Backend, len(catalogue[role]))
	for i, b := range catalogue[role] {
		out[i] = b.clone()
	}
	return out
}

// Lookup returns the backend of a role with the given name.
func Lookup(role Role, name string) (Backend, error) {
	if valid, errs := role.IsValid(); !valid {
		return Backend{}, errs[0]
	}
	for _, b := range catalogue[role] {
		if b.Name == name {
			return b.clone(), nil
		}
	}
	return Backend{}, fmt.Errorf("%w: %s backend %q (valid: %s)", ErrUnknownBackend, role, name, strings.Join(names(catalogue[role]), ", "))
}

// Available reports whether every flag the backend requires is present.
func (b Backend) Available(r capability.Reader) bool {
	return capability.Require(r, b.Requires...) == nil
}

// Available returns the backends of a role that this build can use, in
// default preference order.
func Available(r capability.Reader, role Role) []Backend {
	var out []Backend
	for _, b := range catalogue[role] {
		if b.Available(r) {
			out = append(out, b.clone())
		}
	}
	return out
}

// clone copies b so callers cannot reach the catalogue's Requires slices.
func (b Backend) clone() Backend {
	b.Requires = slices.Clone(b.Requires)
	return b
}

// Select picks the backend for a role. Preferred names are tried first, in
// order; when none of them is available the role's default order applies.
// An unknown preferred name is an error, an unavailable one is skipped.
func Select(r capability.Reader, role Role, preferred ...string) (Backend, error) {
	if valid, errs := role.IsValid(); !valid {
		return Backend{}, errs[0]
	}
	for _, name := range preferred {
		b, err := Lookup(role, name)
		if err != nil {
			return Backend{}, err
		}
		if b.Available(r) {
			return b, nil
		}
	}
	if avail := Available(r, role); len(avail) > 0 {
		return avail[0], nil
	}

	var missing []capability.Flag
	for _, b := range catalogue[role] {
		for _, f := range b.Requires {
			if !r.Has(f) && !slices.Contains(missing, f) {
				missing = append(missing, f)
			}
		}
	}
	return Backend{}, &UnavailableBackendError{Role: role, Missing: missing}
}

// Require returns the named backend, or an *UnavailableBackendError when
// it was not linked into this build.
func Require(r capability.Reader, role Role, name string) (Backend, error) {
	b, err := Lookup(role, name)
	if err != nil {
		return Backend{}, err
	}
	var me *capability.MissingCapabilityError
	if err := capability.Require(r, b.Requires...); errors.As(err, &me) {
		return Backend{}, &UnavailableBackendError{Role: role, Name: name, Missing: me.Flags}
	}
	return b, nil
}

// Plan resolves every role at once with the given per-role preferences.
// A preference keyed by an unknown role is an error; per-role selection
// failures are reported in Selection.Err so callers can show the whole plan.
func Plan(r capability.Reader, prefs map[Role][]string) ([]Selection, error) {
	for role := range prefs {
		if valid, errs := role.IsValid(); !valid {
			return nil, errs[0]
		}
	}

	roles := Roles()
	plan := make([]Selection, 0, len(roles))
	for _, role := range roles {
		b, err := Select(r, role, prefs[role]...)
		plan = append(plan, Selection{
			Role:      role,
			Backend:   b,
			Available: Available(r, role),
			Err:       err,
		})
	}
	return plan, nil
}

// Error implements the error interface for UnavailableBackendError.
func (e *UnavailableBackendError) Error() string {
	flags := make([]string, len(e.Missing))
	for i, f := range e.Missing {
		flags[i] = f.String()
	}
	if e.Name != "" {
		return fmt.Sprintf("%s backend %q not available (missing: %s)", e.Role, e.Name, strings.Join(flags, ", "))
	}
	return fmt.Sprintf("no %s backend available (missing one of: %s)", e.Role, strings.Join(flags, ", "))
}

// Unwrap returns ErrBackendUnavailable for errors.Is() compatibility.
func (e *UnavailableBackendError) Unwrap() error { return ErrBackendUnavailable }

func names(backends []Backend) []string {
	out := make([]string, len(backends))
	for i, b := range backends {
		out[i] = b.Name
	}
	return out
}
