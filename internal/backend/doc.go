// SPDX-License-Identifier: MPL-2.0

// Package backend selects the implementation Clp uses for each pluggable
// role (factorization, model reader, data set, line editor) from the
// capabilities linked into the current build.
//
// A backend whose packages were not compiled in is never selected; asking
// for it by name yields an *UnavailableBackendError instead of a link-time
// or run-time failure deep inside the solver.
package backend
