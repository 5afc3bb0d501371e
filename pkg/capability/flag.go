// SPDX-License-Identifier: MPL-2.0

package capability

import (
	"errors"
	"fmt"
)

const (
	// FlagHasABC records whether Aboca is built, and at which level (1-4).
	FlagHasABC Flag = "has_abc"
	// FlagSVNRevision is the SVN revision number of the project.
	FlagSVNRevision Flag = "svn_revision"
	// FlagClpVersion is the version number of the project.
	FlagClpVersion Flag = "clp_version"
	// FlagVersionMajor is the major version number of the project.
	FlagVersionMajor Flag = "version_major"
	// FlagVersionMinor is the minor version number of the project.
	FlagVersionMinor Flag = "version_minor"
	// FlagVersionRelease is the release version number of the project.
	FlagVersionRelease Flag = "version_release"
	// FlagDebugCheckLevel is the debug sanity check level (0 is no test).
	FlagDebugCheckLevel Flag = "debug_check_level"
	// FlagDebugVerbosity is the debug verbosity level (0 is no output).
	FlagDebugVerbosity Flag = "debug_verbosity"

	// FlagHasAMD records whether the AMD ordering package is available.
	FlagHasAMD Flag = "has_amd"
	// FlagHasASL records whether the AMPL Solver Library is available.
	FlagHasASL Flag = "has_asl"
	// FlagHasBLAS records whether a BLAS library is available.
	FlagHasBLAS Flag = "has_blas"
	// FlagHasCHOLMOD records whether the CHOLMOD package is available.
	FlagHasCHOLMOD Flag = "has_cholmod"
	// FlagHasCoinUtils records whether the CoinUtils package is available.
	FlagHasCoinUtils Flag = "has_coinutils"
	// FlagHasGlpk records whether the Glpk package is available.
	FlagHasGlpk Flag = "has_glpk"
	// FlagHasMumps records whether the Mumps package is available.
	FlagHasMumps Flag = "has_mumps"
	// FlagHasNetlib records whether the Netlib data package is available.
	FlagHasNetlib Flag = "has_netlib"
	// FlagHasOsi records whether the Osi package is available.
	FlagHasOsi Flag = "has_osi"
	// FlagHasOsiTests records whether the OsiTests package is available.
	FlagHasOsiTests Flag = "has_ositests"
	// FlagHasReadline records whether readline is available.
	FlagHasReadline Flag = "has_readline"
	// FlagHasSample records whether the Sample data package is available.
	FlagHasSample Flag = "has_sample"
	// FlagHasWSMP records whether the WSMP package is available.
	FlagHasWSMP Flag = "has_wsmp"

	// FlagF77DummyMain names the dummy main required to link Fortran libraries.
	FlagF77DummyMain Flag = "f77_dummy_main"
	// FlagF77Func is the Fortran name mangling for identifiers without underscores.
	FlagF77Func Flag = "f77_func"
	// FlagF77FuncUnderscore is the Fortran name mangling for identifiers with underscores.
	FlagF77FuncUnderscore Flag = "f77_func_underscore"
	// FlagFCDummyMainEqF77 records whether F77 and FC dummy mains are identical.
	FlagFCDummyMainEqF77 Flag = "fc_dummy_main_eq_f77"

	// Header and identity flags, one per HAVE_* and PACKAGE_* macro.
	FlagHaveCFloat       Flag = "have_cfloat"
	FlagHaveCIEEEFP      Flag = "have_cieeefp"
	FlagHaveCMath        Flag = "have_cmath"
	FlagHaveDlfcnH       Flag = "have_dlfcn_h"
	FlagHaveFloatH       Flag = "have_float_h"
	FlagHaveIEEEFPH      Flag = "have_ieeefp_h"
	FlagHaveInttypesH    Flag = "have_inttypes_h"
	FlagHaveMathH        Flag = "have_math_h"
	FlagHaveMemoryH      Flag = "have_memory_h"
	FlagHaveReadlineH    Flag = "have_readline_readline_h"
	FlagHaveStdintH      Flag = "have_stdint_h"
	FlagHaveStdlibH      Flag = "have_stdlib_h"
	FlagHaveStringsH     Flag = "have_strings_h"
	FlagHaveStringH      Flag = "have_string_h"
	FlagHaveSysStatH     Flag = "have_sys_stat_h"
	FlagHaveSysTypesH    Flag = "have_sys_types_h"
	FlagHaveUnistdH      Flag = "have_unistd_h"
	FlagPackage          Flag = "package"
	FlagPackageBugReport Flag = "package_bugreport"
	FlagPackageName      Flag = "package_name"
	FlagPackageString    Flag = "package_string"
	FlagPackageTarName   Flag = "package_tarname"
	FlagPackageVersion   Flag = "package_version"
	FlagStdCHeaders      Flag = "stdc_headers"
	FlagVersion          Flag = "version"
)

const (
	// CategoryProvenance groups revision and version metadata.
	CategoryProvenance Category = "provenance"
	// CategoryIdentity groups package identity strings.
	CategoryIdentity Category = "identity"
	// CategoryDebug groups debug instrumentation levels.
	CategoryDebug Category = "debug"
	// CategoryPackage groups optional external package availability.
	CategoryPackage Category = "package"
	// CategoryFortran groups Fortran linkage settings.
	CategoryFortran Category = "fortran"
	// CategoryHeader groups standard header availability.
	CategoryHeader Category = "header"
)

var (
	// ErrUnknownFlag is the sentinel error wrapped by UnknownFlagError.
	ErrUnknownFlag = errors.New("unknown capability flag")
	// ErrUnknownCategory is returned when a Category value is not recognized.
	ErrUnknownCategory = errors.New("unknown flag category")
)

type (
	// Flag names one capability of a build. The set of valid names is closed
	// and fixed at compile time; see AllFlags.
	Flag string

	// Category groups related flags for display and filtering.
	Category string

	// UnknownFlagError is returned by validation when a Flag is not one of
	// the defined flags. It wraps ErrUnknownFlag for errors.Is() compatibility.
	UnknownFlagError struct {
		Flag Flag
	}

	flagSpec struct {
		flag     Flag
		category Category
		shape    ValueType
		macro    string
		doc      string
	}
)

// flagTable lists every flag in config.h order. The index of a flag in this
// table is its ordinal inside a Snapshot.
var flagTable = [...]flagSpec{
	{FlagHasABC, CategoryPackage, ValueInt, "CLP_HAS_ABC", "Define to 1, 2, 3, or 4 if Aboca should be build."},
	{FlagSVNRevision, CategoryProvenance, ValueInt, "CLP_SVN_REV", "SVN revision number of project"},
	{FlagClpVersion, CategoryProvenance, ValueString, "CLP_VERSION", "Version number of project"},
	{FlagVersionMajor, CategoryProvenance, ValueInt, "CLP_VERSION_MAJOR", "Major Version number of project"},
	{FlagVersionMinor, CategoryProvenance, ValueInt, "CLP_VERSION_MINOR", "Minor Version number of project"},
	{FlagVersionRelease, CategoryProvenance, ValueInt, "CLP_VERSION_RELEASE", "Release Version number of project"},
	{FlagDebugCheckLevel, CategoryDebug, ValueInt, "COIN_CLP_CHECKLEVEL", "Define to the debug sanity check level (0 is no test)"},
	{FlagDebugVerbosity, CategoryDebug, ValueInt, "COIN_CLP_VERBOSITY", "Define to the debug verbosity level (0 is no output)"},
	{FlagHasAMD, CategoryPackage, ValueNone, "COIN_HAS_AMD", "Define to 1 if the AMD package is available"},
	{FlagHasASL, CategoryPackage, ValueNone, "COIN_HAS_ASL", "Define to 1 if the ASL package is available"},
	{FlagHasBLAS, CategoryPackage, ValueNone, "COIN_HAS_BLAS", "If defined, the BLAS Library is available."},
	{FlagHasCHOLMOD, CategoryPackage, ValueNone, "COIN_HAS_CHOLMOD", "Define to 1 if the CHOLMOD package is available"},
	{FlagHasCoinUtils, CategoryPackage, ValueNone, "COIN_HAS_COINUTILS", "Define to 1 if the CoinUtils package is available"},
	{FlagHasGlpk, CategoryPackage, ValueNone, "COIN_HAS_GLPK", "Define to 1 if the Glpk package is available"},
	{FlagHasMumps, CategoryPackage, ValueNone, "COIN_HAS_MUMPS", "Define to 1 if the Mumps package is available"},
	{FlagHasNetlib, CategoryPackage, ValueNone, "COIN_HAS_NETLIB", "Define to 1 if the Netlib package is available"},
	{FlagHasOsi, CategoryPackage, ValueNone, "COIN_HAS_OSI", "Define to 1 if the Osi package is available"},
	{FlagHasOsiTests, CategoryPackage, ValueNone, "COIN_HAS_OSITESTS", "Define to 1 if the OsiTests package is available"},
	{FlagHasReadline, CategoryPackage, ValueNone, "COIN_HAS_READLINE", "Define to 1 if readline is available"},
	{FlagHasSample, CategoryPackage, ValueNone, "COIN_HAS_SAMPLE", "Define to 1 if the Sample package is available"},
	{FlagHasWSMP, CategoryPackage, ValueNone, "COIN_HAS_WSMP", "Define to 1 if the WSMP package is available"},
	{FlagF77DummyMain, CategoryFortran, ValueString, "F77_DUMMY_MAIN", "Define to dummy `main' function (if any) required to link to the Fortran libraries."},
	{FlagF77Func, CategoryFortran, ValueString, "F77_FUNC", "Define to a macro mangling the given C identifier (in lower and upper case), which must not contain underscores, for linking with Fortran."},
	{FlagF77FuncUnderscore, CategoryFortran, ValueString, "F77_FUNC_", "As F77_FUNC, but for C identifiers containing underscores."},
	{FlagFCDummyMainEqF77, CategoryFortran, ValueNone, "FC_DUMMY_MAIN_EQ_F77", "Define if F77 and FC dummy `main' functions are identical."},
	{FlagHaveCFloat, CategoryHeader, ValueNone, "HAVE_CFLOAT", "Define to 1 if you have the <cfloat> header file."},
	{FlagHaveCIEEEFP, CategoryHeader, ValueNone, "HAVE_CIEEEFP", "Define to 1 if you have the <cieeefp> header file."},
	{FlagHaveCMath, CategoryHeader, ValueNone, "HAVE_CMATH", "Define to 1 if you have the <cmath> header file."},
	{FlagHaveDlfcnH, CategoryHeader, ValueNone, "HAVE_DLFCN_H", "Define to 1 if you have the <dlfcn.h> header file."},
	{FlagHaveFloatH, CategoryHeader, ValueNone, "HAVE_FLOAT_H", "Define to 1 if you have the <float.h> header file."},
	{FlagHaveIEEEFPH, CategoryHeader, ValueNone, "HAVE_IEEEFP_H", "Define to 1 if you have the <ieeefp.h> header file."},
	{FlagHaveInttypesH, CategoryHeader, ValueNone, "HAVE_INTTYPES_H", "Define to 1 if you have the <inttypes.h> header file."},
	{FlagHaveMathH, CategoryHeader, ValueNone, "HAVE_MATH_H", "Define to 1 if you have the <math.h> header file."},
	{FlagHaveMemoryH, CategoryHeader, ValueNone, "HAVE_MEMORY_H", "Define to 1 if you have the <memory.h> header file."},
	{FlagHaveReadlineH, CategoryHeader, ValueNone, "HAVE_READLINE_READLINE_H", "Define to 1 if you have the <readline/readline.h> header file."},
	{FlagHaveStdintH, CategoryHeader, ValueNone, "HAVE_STDINT_H", "Define to 1 if you have the <stdint.h> header file."},
	{FlagHaveStdlibH, CategoryHeader, ValueNone, "HAVE_STDLIB_H", "Define to 1 if you have the <stdlib.h> header file."},
	{FlagHaveStringsH, CategoryHeader, ValueNone, "HAVE_STRINGS_H", "Define to 1 if you have the <strings.h> header file."},
	{FlagHaveStringH, CategoryHeader, ValueNone, "HAVE_STRING_H", "Define to 1 if you have the <string.h> header file."},
	{FlagHaveSysStatH, CategoryHeader, ValueNone, "HAVE_SYS_STAT_H", "Define to 1 if you have the <sys/stat.h> header file."},
	{FlagHaveSysTypesH, CategoryHeader, ValueNone, "HAVE_SYS_TYPES_H", "Define to 1 if you have the <sys/types.h> header file."},
	{FlagHaveUnistdH, CategoryHeader, ValueNone, "HAVE_UNISTD_H", "Define to 1 if you have the <unistd.h> header file."},
	{FlagPackage, CategoryIdentity, ValueString, "PACKAGE", "Name of package"},
	{FlagPackageBugReport, CategoryIdentity, ValueString, "PACKAGE_BUGREPORT", "Define to the address where bug reports for this package should be sent."},
	{FlagPackageName, CategoryIdentity, ValueString, "PACKAGE_NAME", "Define to the full name of this package."},
	{FlagPackageString, CategoryIdentity, ValueString, "PACKAGE_STRING", "Define to the full name and version of this package."},
	{FlagPackageTarName, CategoryIdentity, ValueString, "PACKAGE_TARNAME", "Define to the one symbol short name of this package."},
	{FlagPackageVersion, CategoryIdentity, ValueString, "PACKAGE_VERSION", "Define to the version of this package."},
	{FlagStdCHeaders, CategoryHeader, ValueNone, "STDC_HEADERS", "Define to 1 if you have the ANSI C header files."},
	{FlagVersion, CategoryIdentity, ValueString, "VERSION", "Version number of package"},
}

// flagCount is the size of the closed flag set.
const flagCount = len(flagTable)

// flagIndex maps a flag to its ordinal. Written once during package
// initialization and only read afterwards.
var flagIndex = func() map[Flag]int {
	m := make(map[Flag]int, flagCount)
	for i := range flagTable {
		m[flagTable[i].flag] = i
	}
	return m
}()

// AllFlags returns every defined flag in declaration order.
func AllFlags() []Flag {
	flags := make([]Flag, flagCount)
	for i := range flagTable {
		flags[i] = flagTable[i].flag
	}
	return flags
}

// FlagsIn returns the flags of a category in declaration order.
func FlagsIn(c Category) []Flag {
	var flags []Flag
	for i := range flagTable {
		if flagTable[i].category == c {
			flags = append(flags, flagTable[i].flag)
		}
	}
	return flags
}

// Categories returns all flag categories in display order.
func Categories() []Category {
	return []Category{
		CategoryProvenance,
		CategoryIdentity,
		CategoryDebug,
		CategoryPackage,
		CategoryFortran,
		CategoryHeader,
	}
}

// String returns the string representation of the Flag.
func (f Flag) String() string { return string(f) }

// IsValid returns whether the Flag is one of the defined flags,
// and a list of validation errors if it is not.
func (f Flag) IsValid() (bool, []error) {
	if _, ok := flagIndex[f]; ok {
		return true, nil
	}
	return false, []error{&UnknownFlagError{Flag: f}}
}

// Category returns the category of the flag, or "" for unknown flags.
func (f Flag) Category() Category {
	if i, ok := flagIndex[f]; ok {
		return flagTable[i].category
	}
	return ""
}

// ValueType returns the type of the value a present flag carries.
// Boolean flags and unknown flags return ValueNone.
func (f Flag) ValueType() ValueType {
	if i, ok := flagIndex[f]; ok {
		return flagTable[i].shape
	}
	return ValueNone
}

// IsValued reports whether the flag carries a value when present.
func (f Flag) IsValued() bool { return f.ValueType() != ValueNone }

// Macro returns the C preprocessor macro the flag was normalized from.
func (f Flag) Macro() string {
	if i, ok := flagIndex[f]; ok {
		return flagTable[i].macro
	}
	return ""
}

// Description returns the one-line description of the flag.
func (f Flag) Description() string {
	if i, ok := flagIndex[f]; ok {
		return flagTable[i].doc
	}
	return ""
}

// String returns the string representation of the Category.
func (c Category) String() string { return string(c) }

// IsValid returns whether the Category is one of the defined categories,
// and a list of validation errors if it is not.
func (c Category) IsValid() (bool, []error) {
	switch c {
	case CategoryProvenance, CategoryIdentity, CategoryDebug, CategoryPackage, CategoryFortran, CategoryHeader:
		return true, nil
	default:
		return false, []error{fmt.Errorf("%w: %q", ErrUnknownCategory, c)}
	}
}

// Error implements the error interface.
func (e *UnknownFlagError) Error() string {
	return fmt.Sprintf("unknown capability flag %q", e.Flag)
}

// Unwrap returns ErrUnknownFlag for errors.Is() compatibility.
func (e *UnknownFlagError) Unwrap() error { return ErrUnknownFlag }
