// SPDX-License-Identifier: MPL-2.0

package capability

import (
	"errors"
	"strings"
	"sync"
	"testing"
)

// clpDetection mirrors the configure result of the Clp 1.16.10 release build.
func clpDetection() Detection {
	d := Detection{Name: "Clp", BugReport: "clp@list.coin-or.org"}
	d.Set(FlagSVNRevision, "2358")
	d.Set(FlagVersionMajor, "1")
	d.Set(FlagVersionMinor, "16")
	d.Set(FlagVersionRelease, "10")
	d.Set(FlagDebugCheckLevel, "0")
	d.Set(FlagDebugVerbosity, "0")
	d.Mark(FlagHasCoinUtils, FlagHasOsi, FlagHasOsiTests, FlagHasSample)
	d.Mark(
		FlagHaveCFloat, FlagHaveCMath, FlagHaveDlfcnH, FlagHaveInttypesH,
		FlagHaveMemoryH, FlagHaveStdintH, FlagHaveStdlibH, FlagHaveStringsH,
		FlagHaveStringH, FlagHaveSysStatH, FlagHaveSysTypesH, FlagHaveUnistdH,
	)
	return d
}

func mustSnapshot(t *testing.T, d Detection) *Snapshot {
	t.Helper()
	s, err := New(d)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return s
}

func TestFlagIsValid(t *testing.T) {
	t.Parallel()

	for _, f := range AllFlags() {
		if valid, errs := f.IsValid(); !valid {
			t.Errorf("Flag(%q).IsValid() = false, %v", f, errs)
		}
	}

	for _, f := range []Flag{"", "has_gurobi", "HAS_AMD", "COIN_HAS_AMD"} {
		valid, errs := f.IsValid()
		if valid {
			t.Errorf("Flag(%q).IsValid() = true, want false", f)
			continue
		}
		if len(errs) != 1 || !errors.Is(errs[0], ErrUnknownFlag) {
			t.Errorf("Flag(%q).IsValid() errors = %v, want ErrUnknownFlag", f, errs)
		}
	}
}

func TestFlagTableIsUnique(t *testing.T) {
	t.Parallel()

	names := make(map[Flag]bool)
	macros := make(map[string]bool)
	for _, f := range AllFlags() {
		if names[f] {
			t.Errorf("duplicate flag %q", f)
		}
		names[f] = true
		if macros[f.Macro()] {
			t.Errorf("duplicate macro %q", f.Macro())
		}
		macros[f.Macro()] = true
		if f.Description() == "" {
			t.Errorf("flag %q has no description", f)
		}
		if valid, _ := f.Category().IsValid(); !valid {
			t.Errorf("flag %q has invalid category %q", f, f.Category())
		}
	}
}

func TestFlagsIn(t *testing.T) {
	t.Parallel()

	tests := []struct {
		category Category
		want     int
	}{
		{CategoryProvenance, 5},
		{CategoryIdentity, 7},
		{CategoryDebug, 2},
		{CategoryPackage, 14},
		{CategoryFortran, 4},
		{CategoryHeader, 18},
	}

	total := 0
	for _, tt := range tests {
		got := FlagsIn(tt.category)
		if len(got) != tt.want {
			t.Errorf("FlagsIn(%s) = %d flags, want %d", tt.category, len(got), tt.want)
		}
		total += len(got)
	}
	if total != len(AllFlags()) {
		t.Errorf("categories cover %d flags, want %d", total, len(AllFlags()))
	}
}

func TestNewClpBuild(t *testing.T) {
	t.Parallel()

	s := mustSnapshot(t, clpDetection())

	for _, f := range []Flag{FlagHasCoinUtils, FlagHasOsi, FlagHasOsiTests, FlagHasSample, FlagHaveCMath} {
		if !s.Has(f) {
			t.Errorf("Has(%s) = false, want true", f)
		}
		if k := s.Kind(f); k != KindBoolean {
			t.Errorf("Kind(%s) = %s, want present", f, k)
		}
	}
	for _, f := range []Flag{FlagHasAMD, FlagHasMumps, FlagHasWSMP, FlagHasReadline, FlagHaveMathH, FlagStdCHeaders} {
		if s.Has(f) {
			t.Errorf("Has(%s) = true, want false", f)
		}
	}

	ints := map[Flag]int{
		FlagSVNRevision:     2358,
		FlagVersionMajor:    1,
		FlagVersionMinor:    16,
		FlagVersionRelease:  10,
		FlagDebugCheckLevel: 0,
		FlagDebugVerbosity:  0,
	}
	for f, want := range ints {
		if got, ok := Int(s, f); !ok || got != want {
			t.Errorf("Int(%s) = %d, %v; want %d, true", f, got, ok, want)
		}
	}

	strs := map[Flag]string{
		FlagClpVersion:       "1.16.10",
		FlagPackage:          "clp",
		FlagPackageBugReport: "clp@list.coin-or.org",
		FlagPackageName:      "Clp",
		FlagPackageString:    "Clp 1.16.10",
		FlagPackageTarName:   "clp",
		FlagPackageVersion:   "1.16.10",
		FlagVersion:          "1.16.10",
	}
	for f, want := range strs {
		if got, ok := String(s, f); !ok || got != want {
			t.Errorf("String(%s) = %q, %v; want %q, true", f, got, ok, want)
		}
	}
}

func TestUnknownFlagsAreAbsent(t *testing.T) {
	t.Parallel()

	s := mustSnapshot(t, clpDetection())
	for _, f := range []Flag{"", "has_cplex", "COIN_HAS_OSI", "package version"} {
		if s.Has(f) {
			t.Errorf("Has(%q) = true, want false", f)
		}
		if v, ok := s.Value(f); ok || !v.IsZero() {
			t.Errorf("Value(%q) = %v, %v; want none", f, v, ok)
		}
		if k := s.Kind(f); k != KindAbsent {
			t.Errorf("Kind(%q) = %s, want absent", f, k)
		}
	}
}

func TestValuedAndAbsentFlags(t *testing.T) {
	t.Parallel()

	d := clpDetection()
	d.Set(FlagHasABC, "2")
	s := mustSnapshot(t, d)

	for _, f := range AllFlags() {
		v, ok := s.Value(f)
		switch s.Kind(f) {
		case KindValued:
			if !s.Has(f) || !ok || v.IsZero() {
				t.Errorf("valued flag %s: Has = %v, Value = %v, %v", f, s.Has(f), v, ok)
			}
			if v.Type() != f.ValueType() {
				t.Errorf("valued flag %s: value type %s, want %s", f, v.Type(), f.ValueType())
			}
		case KindBoolean:
			if !s.Has(f) || ok {
				t.Errorf("boolean flag %s: Has = %v, Value ok = %v", f, s.Has(f), ok)
			}
		case KindAbsent:
			if s.Has(f) || ok {
				t.Errorf("absent flag %s: Has = %v, Value ok = %v", f, s.Has(f), ok)
			}
		}
	}

	if n, ok := Int(s, FlagHasABC); !ok || n != 2 {
		t.Errorf("Int(has_abc) = %d, %v; want 2, true", n, ok)
	}

	plain := mustSnapshot(t, clpDetection())
	for _, f := range []Flag{FlagHasABC, FlagF77Func, FlagF77FuncUnderscore, FlagF77DummyMain} {
		if _, ok := plain.Value(f); ok {
			t.Errorf("Value(%s) on absent valued flag returned a value", f)
		}
	}
}

func TestDebugLevelsDefaultToZero(t *testing.T) {
	t.Parallel()

	d := clpDetection()
	delete(d.Settings, FlagDebugCheckLevel)
	delete(d.Settings, FlagDebugVerbosity)
	s := mustSnapshot(t, d)

	for _, f := range []Flag{FlagDebugCheckLevel, FlagDebugVerbosity} {
		if !s.Has(f) {
			t.Errorf("Has(%s) = false, want true", f)
		}
		if n, ok := Int(s, f); !ok || n != 0 {
			t.Errorf("Int(%s) = %d, %v; want 0, true", f, n, ok)
		}
	}
	if CheckLevel(s) != 0 || Verbosity(s) != 0 {
		t.Errorf("CheckLevel = %d, Verbosity = %d; want 0, 0", CheckLevel(s), Verbosity(s))
	}
	if s.Has(FlagHasAMD) {
		t.Error("absent package flag must stay distinguishable from a defaulted debug level")
	}
}

func TestIdentityConsistency(t *testing.T) {
	t.Parallel()

	s := mustSnapshot(t, clpDetection())
	id := s.Identity()

	if id.Version != ComposeVersion(id.Major, id.Minor, id.Release) {
		t.Errorf("Version = %q, components %d.%d.%d", id.Version, id.Major, id.Minor, id.Release)
	}
	if id.TarName != strings.ToLower(id.Name) {
		t.Errorf("TarName = %q, want %q", id.TarName, strings.ToLower(id.Name))
	}
	if got, _ := String(s, FlagPackageVersion); got != id.Version {
		t.Errorf("package_version = %q, want %q", got, id.Version)
	}
	if got, _ := String(s, FlagPackageTarName); got != TarName(id.Name) {
		t.Errorf("package_tarname = %q, want %q", got, TarName(id.Name))
	}
	if id.String() != "Clp 1.16.10" {
		t.Errorf("String() = %q, want %q", id.String(), "Clp 1.16.10")
	}
	if err := id.Validate(); err != nil {
		t.Errorf("Validate() = %v", err)
	}
}

func TestIdentityValidate(t *testing.T) {
	t.Parallel()

	valid := NewIdentity("Clp", 1, 16, 10, "clp@list.coin-or.org")
	tests := []struct {
		name   string
		mutate func(*Identity)
	}{
		{"empty name", func(id *Identity) { id.Name = ""; id.TarName = ""; id.Package = "" }},
		{"name with space", func(id *Identity) { id.Name = "C lp"; id.TarName = "c lp"; id.Package = "c lp" }},
		{"version mismatch", func(id *Identity) { id.Version = "1.16.11" }},
		{"tarname mismatch", func(id *Identity) { id.TarName = "Clp" }},
		{"package mismatch", func(id *Identity) { id.Package = "coin-clp" }},
		{"negative component", func(id *Identity) { id.Minor = -1; id.Version = "1.-1.10" }},
		{"bad bug report", func(id *Identity) { id.BugReport = "clp mailing list" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			id := valid
			tt.mutate(&id)
			err := id.Validate()
			if !errors.Is(err, ErrInvalidIdentity) {
				t.Errorf("Validate() = %v, want ErrInvalidIdentity", err)
			}
		})
	}
}

func TestNewRejectsInvalidDetection(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*Detection)
		want   error
	}{
		{"unknown present flag", func(d *Detection) { d.Mark("has_cplex") }, ErrUnknownFlag},
		{"unknown setting", func(d *Detection) { d.Set("cplex_version", "12") }, ErrUnknownFlag},
		{"boolean flag given a value", func(d *Detection) { d.Set(FlagHasOsi, "1") }, ErrFlagShape},
		{"valued flag without value", func(d *Detection) { d.Mark(FlagDebugVerbosity) }, ErrFlagShape},
		{"empty value", func(d *Detection) { d.Set(FlagSVNRevision, " ") }, ErrFlagShape},
		{"non-integer", func(d *Detection) { d.Set(FlagDebugCheckLevel, "high") }, ErrFlagValue},
		{"negative verbosity", func(d *Detection) { d.Set(FlagDebugVerbosity, "-1") }, ErrFlagValue},
		{"verbosity too high", func(d *Detection) { d.Set(FlagDebugVerbosity, "10") }, ErrFlagValue},
		{"abc level zero", func(d *Detection) { d.Set(FlagHasABC, "0") }, ErrFlagValue},
		{"abc level five", func(d *Detection) { d.Set(FlagHasABC, "5") }, ErrFlagValue},
		{"negative revision", func(d *Detection) { d.Set(FlagSVNRevision, "-2358") }, ErrFlagValue},
		{"missing major", func(d *Detection) { delete(d.Settings, FlagVersionMajor) }, ErrFlagValue},
		{"inconsistent version", func(d *Detection) { d.Set(FlagPackageVersion, "1.17.0") }, ErrFlagValue},
		{"inconsistent tarname", func(d *Detection) { d.Set(FlagPackageTarName, "Clp") }, ErrFlagValue},
		{"empty name", func(d *Detection) { d.Name = "" }, ErrInvalidIdentity},
		{"bad bug report", func(d *Detection) { d.BugReport = "nobody" }, ErrInvalidIdentity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			d := clpDetection()
			tt.mutate(&d)
			s, err := New(d)
			if s != nil {
				t.Fatal("New() returned a snapshot for an invalid detection")
			}
			if !errors.Is(err, ErrInvalidDetection) {
				t.Fatalf("New() error = %v, want ErrInvalidDetection", err)
			}
			var de *InvalidDetectionError
			if !errors.As(err, &de) {
				t.Fatalf("New() error is not *InvalidDetectionError: %T", err)
			}
			found := false
			for _, fe := range de.FieldErrors {
				if errors.Is(fe, tt.want) {
					found = true
				}
			}
			if !found {
				t.Errorf("field errors %v do not contain %v", de.FieldErrors, tt.want)
			}
		})
	}
}

func TestNewAcceptsConsistentDerivedFlags(t *testing.T) {
	t.Parallel()

	d := clpDetection()
	d.Set(FlagPackageVersion, "1.16.10")
	d.Set(FlagPackageString, "Clp 1.16.10")
	d.Set(FlagPackage, "clp")
	if _, err := New(d); err != nil {
		t.Errorf("New() error = %v", err)
	}
}

func TestMustNewPanics(t *testing.T) {
	t.Parallel()

	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("MustNew() did not panic")
		}
		if msg, ok := r.(string); !ok || !strings.Contains(msg, "SVN") && !strings.Contains(msg, "svn_revision") {
			t.Errorf("panic = %v, want message naming svn_revision", r)
		}
	}()

	d := clpDetection()
	d.Set(FlagSVNRevision, "r2358")
	MustNew(d)
}

func TestRepeatedReadsAreIdentical(t *testing.T) {
	t.Parallel()

	s := mustSnapshot(t, clpDetection())
	first := s.Entries()
	for range 3 {
		again := s.Entries()
		for i := range first {
			if first[i] != again[i] {
				t.Fatalf("entry %s changed between reads: %+v != %+v", first[i].Flag, first[i], again[i])
			}
		}
	}
}

func TestConcurrentReaders(t *testing.T) {
	t.Parallel()

	s := mustSnapshot(t, clpDetection())
	flags := append(AllFlags(), "unknown_flag")

	type result struct {
		has   bool
		value Value
		ok    bool
	}
	want := make([]result, len(flags))
	for i, f := range flags {
		v, ok := s.Value(f)
		want[i] = result{has: s.Has(f), value: v, ok: ok}
	}

	const readers = 32
	var wg sync.WaitGroup
	errs := make(chan string, readers)
	for r := range readers {
		wg.Add(1)
		go func(offset int) {
			defer wg.Done()
			for n := range len(flags) * 4 {
				i := (n + offset) % len(flags)
				v, ok := s.Value(flags[i])
				got := result{has: s.Has(flags[i]), value: v, ok: ok}
				if got != want[i] {
					errs <- flags[i].String()
					return
				}
				_ = s.Identity()
			}
		}(r)
	}
	wg.Wait()
	close(errs)
	for f := range errs {
		t.Errorf("concurrent read of %s disagrees with sequential read", f)
	}
}

func TestRequire(t *testing.T) {
	t.Parallel()

	s := mustSnapshot(t, clpDetection())
	if err := Require(s, FlagHasCoinUtils, FlagHasOsi); err != nil {
		t.Errorf("Require(present) = %v", err)
	}

	err := Require(s, FlagHasOsi, FlagHasMumps, FlagHasBLAS)
	if !errors.Is(err, ErrMissingCapability) {
		t.Fatalf("Require(missing) = %v, want ErrMissingCapability", err)
	}
	var me *MissingCapabilityError
	if !errors.As(err, &me) {
		t.Fatalf("error is not *MissingCapabilityError: %T", err)
	}
	if len(me.Flags) != 2 || me.Flags[0] != FlagHasMumps || me.Flags[1] != FlagHasBLAS {
		t.Errorf("missing flags = %v, want [has_mumps has_blas]", me.Flags)
	}
}

func TestInitAndDefault(t *testing.T) {
	installed.Store(nil)
	t.Cleanup(func() { installed.Store(nil) })

	func() {
		defer func() {
			if recover() == nil {
				t.Error("Default() before Init did not panic")
			}
		}()
		Default()
	}()

	if err := Init(nil); err == nil {
		t.Error("Init(nil) returned nil error")
	}

	s := mustSnapshot(t, clpDetection())
	if err := Init(s); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	if Default() != s {
		t.Error("Default() did not return the installed snapshot")
	}
	if err := Init(mustSnapshot(t, clpDetection())); !errors.Is(err, ErrAlreadyInitialized) {
		t.Errorf("second Init() = %v, want ErrAlreadyInitialized", err)
	}
	if Default() != s {
		t.Error("second Init replaced the installed snapshot")
	}
}

func TestValueAccessors(t *testing.T) {
	t.Parallel()

	iv := IntValue(7)
	if n, ok := iv.Int(); !ok || n != 7 {
		t.Errorf("IntValue(7).Int() = %d, %v", n, ok)
	}
	if _, ok := iv.Str(); ok {
		t.Error("IntValue(7).Str() ok = true")
	}
	if iv.String() != "7" || iv.Any() != 7 {
		t.Errorf("IntValue(7) String = %q, Any = %v", iv.String(), iv.Any())
	}

	sv := StringValue("1.16.10")
	if s, ok := sv.Str(); !ok || s != "1.16.10" {
		t.Errorf("StringValue.Str() = %q, %v", s, ok)
	}
	if _, ok := sv.Int(); ok {
		t.Error("StringValue.Int() ok = true")
	}

	var zero Value
	if !zero.IsZero() || zero.Any() != nil || zero.String() != "" {
		t.Errorf("zero Value = %+v", zero)
	}
}
