// SPDX-License-Identifier: MPL-2.0

package luhmann

// IncrementAlpha returns the successor of s in bijective base-26, the
// spreadsheet-column sequence a, b, ..., z, aa, ab, ..., az, ba, ..., zz, aaa.
//
// s must be a non-empty string of lowercase ASCII letters. An empty string is
// a programming error and panics; AlphaComponent values never reach this
// function empty because Alpha rejects them.
func IncrementAlpha(s string) string {
	if s == "" {
		panic("luhmann: IncrementAlpha called with empty string")
	}

	b := []byte(s)
	carry := true
	for i := len(b) - 1; i >= 0 && carry; i-- {
		if b[i] == 'z' {
			b[i] = 'a'
			continue
		}
		b[i]++
		carry = false
	}

	if carry {
		// Every position wrapped: the sequence grows by one letter.
		return "a" + string(b)
	}
	return string(b)
}
