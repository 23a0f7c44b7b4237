// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package config provides configuration loading for termconv.
//
// Configuration comes from a single file named by either a --config
// flag (via [LoadFile]) or the TERMCONV_CONFIG environment variable
// (via [Load]). There is no directory search: with neither set, [Resolve]
// returns [Default]. The file format follows the extension: ".toml"
// files are TOML, anything else is YAML. Unknown keys are errors in
// both formats so a misspelled key never silently falls back to a
// default.
//
// Key exports:
//
//   - [Config] -- master struct with Output, Decode, and Log sections
//   - [Default] -- the built-in values
//   - [Load], [LoadFile], and [Resolve] -- the loading entry points
//
// This package depends on no other termconv packages.
package config
