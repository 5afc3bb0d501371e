// SPDX-License-Identifier: MPL-2.0

// Package config handles clpconfig configuration using Viper with CUE as the file format.
//
// Configuration is loaded from ~/.config/clpconfig/config.cue (or XDG equivalent on Linux,
// ~/Library/Application Support/clpconfig/config.cue on macOS, %APPDATA%\clpconfig\config.cue
// on Windows), falling back to clpconfig.cue in the working directory. It sets the default
// output format, UI preferences and the backend preferences applied by 'clpconfig backends'.
//
// Configuration validation is performed against a CUE schema (config_schema.cue) and then
// against the backend catalogue.
package config
