// SPDX-License-Identifier: MPL-2.0

// Package manifest reads detection manifests: CUE documents describing what
// a configure-style probe found, for builds that are not produced by the Go
// toolchain's tags and ldflags.
package manifest

import (
	_ "embed"
	"errors"
	"fmt"
	"maps"
	"os"
	"slices"
	"strconv"

	"github.com/clp-go/clp/pkg/capability"
	"github.com/clp-go/clp/pkg/cueutil"
)

//go:embed manifest_schema.cue
var schema []byte

type (
	// Manifest is a decoded detection manifest.
	Manifest struct {
		Name        string            `json:"name"`
		BugReport   string            `json:"bug_report"`
		Version     Version           `json:"version"`
		SVNRevision *int              `json:"svn_revision,omitempty"`
		ABCLevel    *int              `json:"abc_level,omitempty"`
		Debug       Debug             `json:"debug"`
		Packages    []string          `json:"packages"`
		Headers     []string          `json:"headers"`
		Fortran     *Fortran          `json:"fortran,omitempty"`
		Derived     map[string]string `json:"derived,omitempty"`
	}

	// Version holds the numeric version components.
	Version struct {
		Major   int `json:"major"`
		Minor   int `json:"minor"`
		Release int `json:"release"`
	}

	// Debug holds the debug instrumentation levels.
	Debug struct {
		CheckLevel int `json:"check_level"`
		Verbosity  int `json:"verbosity"`
	}

	// Fortran holds the Fortran linkage settings of the build.
	Fortran struct {
		F77Func           string `json:"f77_func,omitempty"`
		F77FuncUnderscore string `json:"f77_func_underscore,omitempty"`
		F77DummyMain      string `json:"f77_dummy_main,omitempty"`
		FCDummyMainEqF77  bool   `json:"fc_dummy_main_eq_f77,omitempty"`
	}
)

// hints are attached to validation errors by field name.
var hints = map[string]string{
	"name":         "name is the package name without spaces, e.g. \"Clp\"",
	"bug_report":   "bug_report must be an e-mail address",
	"check_level":  fmt.Sprintf("debug levels run from 0 to %d", capability.MaxDebugLevel),
	"verbosity":    fmt.Sprintf("debug levels run from 0 to %d", capability.MaxDebugLevel),
	"abc_level":    fmt.Sprintf("abc_level runs from %d to %d; omit it when Aboca is not built", capability.MinABCLevel, capability.MaxABCLevel),
	"packages":     "packages are lower-case package names such as \"coinutils\" or \"mumps\"",
	"headers":      "headers are names such as \"cmath\" or \"stdint_h\"",
	"svn_revision": "svn_revision is a non-negative integer",
}

// Parse decodes and validates a manifest. filename is used in error messages.
func Parse(data []byte, filename string) (*Manifest, error) {
	result, err := cueutil.ParseAndDecode[Manifest](schema, data, "#Manifest",
		cueutil.WithFilename(filename),
		cueutil.WithSuggestions(func(p cueutil.CUEPath) string { return hints[p.Field()] }),
	)
	if err != nil {
		return nil, err
	}
	return result.Value, nil
}

// Load reads, parses and validates the manifest at path and builds its
// capability snapshot.
func Load(path string) (*Manifest, *capability.Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("read manifest: %w", err)
	}
	m, err := Parse(data, path)
	if err != nil {
		return nil, nil, err
	}
	snap, err := m.Snapshot()
	if err != nil {
		return m, nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, snap, nil
}

// Snapshot builds the capability snapshot the manifest describes.
func (m *Manifest) Snapshot() (*capability.Snapshot, error) {
	d, err := m.Detection()
	if err != nil {
		return nil, err
	}
	return capability.New(d)
}

// Detection converts the manifest into a raw detection result. It fails
// only on derived keys that are not identity string flags; everything else
// is validated by capability.New.
func (m *Manifest) Detection() (capability.Detection, error) {
	d := capability.Detection{Name: m.Name, BugReport: m.BugReport}

	d.Set(capability.FlagVersionMajor, strconv.Itoa(m.Version.Major))
	d.Set(capability.FlagVersionMinor, strconv.Itoa(m.Version.Minor))
	d.Set(capability.FlagVersionRelease, strconv.Itoa(m.Version.Release))
	d.Set(capability.FlagDebugCheckLevel, strconv.Itoa(m.Debug.CheckLevel))
	d.Set(capability.FlagDebugVerbosity, strconv.Itoa(m.Debug.Verbosity))
	if m.SVNRevision != nil {
		d.Set(capability.FlagSVNRevision, strconv.Itoa(*m.SVNRevision))
	}
	if m.ABCLevel != nil {
		d.Set(capability.FlagHasABC, strconv.Itoa(*m.ABCLevel))
	}

	for _, p := range m.Packages {
		d.Mark(PackageFlag(p))
	}
	for _, h := range m.Headers {
		d.Mark(HeaderFlag(h))
	}

	if f := m.Fortran; f != nil {
		setIfNonEmpty(&d, capability.FlagF77Func, f.F77Func)
		setIfNonEmpty(&d, capability.FlagF77FuncUnderscore, f.F77FuncUnderscore)
		setIfNonEmpty(&d, capability.FlagF77DummyMain, f.F77DummyMain)
		if f.FCDummyMainEqF77 {
			d.Mark(capability.FlagFCDummyMainEqF77)
		}
	}

	var errs []error
	for _, key := range slices.Sorted(maps.Keys(m.Derived)) {
		f := capability.Flag(key)
		if !isDerived(f) {
			errs = append(errs, fmt.Errorf("derived key %q is not an identity string flag", key))
			continue
		}
		d.Set(f, m.Derived[key])
	}
	if len(errs) > 0 {
		return capability.Detection{}, errors.Join(errs...)
	}
	return d, nil
}

// PackageFlag returns the flag recording an optional package, e.g. "mumps"
// becomes has_mumps.
func PackageFlag(name string) capability.Flag {
	return capability.Flag("has_" + name)
}

// HeaderFlag returns the flag recording a header, e.g. "cmath" becomes
// have_cmath and "stdc" becomes stdc_headers.
func HeaderFlag(name string) capability.Flag {
	if name == "stdc" {
		return capability.FlagStdCHeaders
	}
	return capability.Flag("have_" + name)
}

// isDerived reports whether f is a string flag computed from the package
// name and version.
func isDerived(f capability.Flag) bool {
	if f.ValueType() != capability.ValueString {
		return false
	}
	c := f.Category()
	return c == capability.CategoryIdentity || c == capability.CategoryProvenance
}

func setIfNonEmpty(d *capability.Detection, f capability.Flag, raw string) {
	if raw != "" {
		d.Set(f, raw)
	}
}
