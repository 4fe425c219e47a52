// SPDX-License-Identifier: MPL-2.0

// Package config handles application configuration using Viper with TOML as
// the file format.
//
// Settings are layered, lowest to highest: built-in defaults, the global file
// (~/.config/zettel/config.toml or the XDG, macOS and Windows equivalents),
// the vault file (<vault>/.zettel/config.toml), ZETTEL_* environment
// variables, and command-line overrides. Every file is checked against the
// embedded CUE schema (config_schema.cue) before it is merged, so typos and
// wrong types are reported with their field path.
package config
