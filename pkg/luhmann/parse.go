// SPDX-License-Identifier: MPL-2.0

package luhmann

import (
	"strconv"
	"unicode/utf8"
)

// Parse scans s into an ID. Runs of digits become numeric components and runs
// of lowercase letters become alphabetic components; the first run must be
// numeric.
//
// Errors:
//   - ErrEmptyID for an empty string
//   - InvalidFormatError for any character other than 0-9 and a-z, or a
//     leading letter
//   - ParseError for a numeric run that does not fit in 32 bits
//
// Leading zeros are accepted and dropped ("01a" parses as 1a), so the
// round trip Parse(s).String() == s holds for canonical strings.
func Parse(s string) (ID, error) {
	if s == "" {
		return ID{}, ErrEmptyID
	}

	var components []Component
	runStart := 0
	runDigits := true

	for i := 0; i < len(s); i++ {
		b := s[i]
		var digit bool
		switch {
		case isDigit(b):
			digit = true
		case isLower(b):
			digit = false
		default:
			r, _ := utf8.DecodeRuneInString(s[i:])
			return ID{}, &InvalidFormatError{Input: s, Fragment: string(r), Reason: "invalid character"}
		}

		if i == 0 {
			if !digit {
				return ID{}, &InvalidFormatError{Input: s, Fragment: s[:1], Reason: "must start with a number"}
			}
			continue
		}

		if digit != runDigits {
			c, err := closeRun(s[runStart:i], runDigits)
			if err != nil {
				return ID{}, err
			}
			components = append(components, c)
			runStart = i
			runDigits = digit
		}
	}

	c, err := closeRun(s[runStart:], runDigits)
	if err != nil {
		return ID{}, err
	}
	components = append(components, c)

	// The scanner already alternates; New is still the single place that
	// decides what a valid component sequence is.
	return New(components...)
}

// MustParse is like Parse but panics on error. It is intended for tests and
// package-level constants.
func MustParse(s string) ID {
	id, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return id
}

func closeRun(run string, digits bool) (Component, error) {
	if !digits {
		return Alpha(run)
	}
	n, err := strconv.ParseUint(run, 10, 32)
	if err != nil {
		return nil, &ParseError{Run: run}
	}
	return Numeric(uint32(n)), nil
}
