// SPDX-License-Identifier: MPL-2.0

// Package buildcfg turns the configuration of a Go build into a capability
// detection result.
//
// Three build inputs feed it:
//
//   - Build tags select which optional backends are compiled in. Optional
//     third-party packages are opt-in (-tags clp_mumps,clp_blas); packages
//     bundled with the Clp distribution are opt-out (-tags clp_no_sample).
//   - The target platform selects the C header availability flags through
//     GOOS file suffixes.
//   - -ldflags -X sets provenance, the Aboca level, Fortran linkage and the
//     debug levels. The clp_debug tag raises the default debug levels to 1.
//
// Every input is fixed when the binary is linked, so the snapshot returned
// by Load is identical for the lifetime of a process.
package buildcfg
