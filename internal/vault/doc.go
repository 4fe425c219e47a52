// SPDX-License-Identifier: MPL-2.0

// Package vault is the on-disk view of a notes directory. A Vault answers
// "does this ID exist" for luhmann.Manager by rescanning the directory on
// every call, lists notes with the IDs found in their filenames, and creates
// new vaults.
package vault
