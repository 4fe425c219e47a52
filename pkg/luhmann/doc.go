// SPDX-License-Identifier: MPL-2.0

// Package luhmann implements Niklas Luhmann's Zettelkasten numbering scheme.
//
// A Luhmann ID such as "1a2b3" is a flat string encoding a position in a
// branching tree of notes: numeric and alphabetic components strictly
// alternate, starting with a number. The package provides the value types
// (Component, ID), the parser, relationship queries, sibling/child
// generation, the filename matching engine (Matcher), and the Manager that
// searches for the first unused identifier through an injected
// ExistenceChecker.
//
// This package is a leaf dependency: it imports only the standard library
// and performs no I/O of its own. Everything it knows about which IDs are
// taken comes from the ExistenceChecker supplied by the caller.
package luhmann
