// SPDX-License-Identifier: MPL-2.0

// Package cmd contains all CLI commands for zettel.
//
// This package implements the Cobra command hierarchy for the zettel CLI:
// ID generation and inspection (id), vault listing (list), vault setup
// (init) and configuration management (config). Handlers receive an App,
// which loads configuration through a ConfigProvider and opens the vault.
package cmd
