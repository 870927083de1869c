// Package naming provides shared string case utilities for attribute values.
package naming

import (
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// lowerCaser performs locale-independent lowercasing.
// Use golang.org/x/text/cases rather than strings.ToLower so single-rune
// case folding matches the rest of the toolchain.
var lowerCaser = cases.Lower(language.Und)

// IsLowerFirst reports whether the first rune of s is already lowercase.
// Empty strings and strings starting with a non-letter rune count as
// lowercase, since there is nothing to fold.
func IsLowerFirst(s string) bool {
	r, _ := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return true
	}
	return !unicode.IsUpper(r)
}

// LowerFirst returns s with its first rune lowercased.
// Example: "Formatted" -> "formatted"
func LowerFirst(s string) string {
	if s == "" {
		return s
	}
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError || !unicode.IsUpper(r) {
		return s
	}
	return lowerCaser.String(s[:size]) + s[size:]
}
