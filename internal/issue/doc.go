// SPDX-License-Identifier: MPL-2.0

// Package issue provides actionable error handling with user-friendly messages.
//
// ActionableError carries the failed operation, the resource involved and
// suggestions. Issue pages are Markdown help texts rendered with glamour,
// such as the description of a valid Luhmann ID shown after a parse failure.
package issue
