// SPDX-License-Identifier: MPL-2.0

// Package cueutil provides shared CUE parsing utilities.
//
// Detection manifests and the CLI configuration file are parsed with the
// same 3-step flow:
//
//  1. Compile the embedded schema
//  2. Compile user data and unify with schema
//  3. Validate and decode to Go struct
//
// # Usage
//
//	//go:embed manifest_schema.cue
//	var schemaBytes []byte
//
//	result, err := cueutil.ParseAndDecode[Manifest](
//	    schemaBytes,
//	    userFileBytes,
//	    "#Manifest",
//	    cueutil.WithFilename("manifest.cue"),
//	)
//	if err != nil {
//	    return nil, err  // *DocumentError carries the CUE path of each issue
//	}
//	return result.Value, nil
package cueutil
