// SPDX-License-Identifier: MPL-2.0

// Package capability is the build capability registry of the library.
//
// A build records which optional packages were linked (sparse factorization
// backends, BLAS, model readers, data sets, line editing), which standard
// headers a C toolchain would see, the package identity, and the debug
// instrumentation levels. Those facts form a closed set of Flag values,
// known at compile time, and are resolved once into an immutable Snapshot:
//
//	snap, err := capability.New(detection)
//	if err != nil {
//	    return err // malformed build; never hand a partial snapshot to consumers
//	}
//	if snap.Has(capability.FlagHasMumps) {
//	    // link-time selected backend is available
//	}
//
// Queries are total. Has returns false and Value returns none for absent
// flags and for names outside the closed set; debug levels are always
// valued and default to 0.
//
// Consumers depend on the Reader interface. The program builds the
// snapshot at start-up and passes it down explicitly; Init and Default
// exist for leaf code that cannot receive a handle.
package capability
