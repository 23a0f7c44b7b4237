// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package cli provides the command-line framework for termconv.
//
// The central type is [Command], which represents a named subcommand with
// optional nested [Command.Subcommands], a [pflag.FlagSet] factory, and a
// Run function. Commands are assembled into a tree in
// cmd/termconv/commands and dispatched via [Command.Execute], which
// handles flag parsing, subcommand routing, and structured help output
// with examples. A command with both Subcommands and Run treats an
// unrecognized first argument as input for Run rather than as an error.
//
// Flag sets are usually generated from tagged parameter structs with
// [FlagsFromParams]. Unknown subcommands and flags get a "did you mean"
// suggestion based on Levenshtein edit distance (threshold: distance
// <= 3), implemented in suggest.go.
//
// Errors returned by commands are wrapped in [ToolError] to carry a
// category (validation, not found, internal) and an optional hint.
// [NewCommandLogger] builds the slog logger commands report progress to.
package cli
