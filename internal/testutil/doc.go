// SPDX-License-Identifier: MPL-2.0

// Package testutil provides helper functions for tests that handle errors
// appropriately, reducing boilerplate and ensuring consistent error handling.
//
// Common helpers include environment isolation (UnsetEnv, SetHomeDir), file
// creation (MustWriteFile, MustMkdirAll) and vault fixtures (WriteNotes,
// NewVaultDir).
package testutil
