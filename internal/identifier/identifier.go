// =============================================================================
// Incident Report - Identifier Sanitizer
// =============================================================================
//
// This module converts free-form column labels into structural identifiers
// that are legal XML element names. The conversion is total: every input,
// including empty or non-Latin text, yields a legal identifier.
//
// IDENTIFIER RULES:
//   - non-empty
//   - first character is a lowercase ASCII letter or underscore
//   - remaining characters are drawn from [a-z0-9._-]
//
// SANITIZATION STEPS (in order):
//   1. Blank label      -> "col_<index>" (or "col_x" without an index)
//   2. Trim surrounding whitespace
//   3. Decompose (NFKD) and drop everything outside ASCII, so "Àrea" -> "Area"
//   4. Lowercase
//   5. Spaces -> underscores
//   6. Drop every character outside [a-z0-9._-]
//   7. Prepend "col_" when the result is empty or starts illegally
//
// =============================================================================

package identifier

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Prefix is prepended to labels that cannot start an identifier on their own.
const Prefix = "col_"

var (
	// illegalChars matches every character that may not appear in an identifier.
	illegalChars = regexp.MustCompile(`[^a-z0-9._-]`)

	// validIdentifier matches a complete legal identifier.
	validIdentifier = regexp.MustCompile(`^[a-z_][a-z0-9._-]*$`)
)

// asciiFolder decomposes accented characters and drops all non-ASCII runes.
// A transform.Transformer is stateful, so a fresh chain is built per call.
func asciiFolder() transform.Transformer {
	return transform.Chain(
		norm.NFKD,
		runes.Remove(runes.Predicate(func(r rune) bool {
			return r > unicode.MaxASCII
		})),
	)
}

// Sanitize converts a label into a legal identifier.
//
// PARAMETERS:
//   - label: The raw column label.
//   - index: The positional index of the column. A negative index means the
//     position is unknown, and blank labels become "col_x".
//
// RETURNS:
//   - A string satisfying IsValid.
func Sanitize(label string, index int) string {
	if strings.TrimSpace(label) == "" {
		if index >= 0 {
			label = fmt.Sprintf("%s%d", Prefix, index)
		} else {
			label = Prefix + "x"
		}
	}

	s := strings.TrimSpace(label)

	folded, _, err := transform.String(asciiFolder(), s)
	if err == nil {
		s = folded
	} else {
		s = stripNonASCII(s)
	}

	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, " ", "_")
	s = illegalChars.ReplaceAllString(s, "")

	if s == "" || !startsLegally(s) {
		s = Prefix + s
	}

	return s
}

// IsValid reports whether s is a legal identifier.
func IsValid(s string) bool {
	return validIdentifier.MatchString(s)
}

// startsLegally reports whether the first byte may begin an identifier.
func startsLegally(s string) bool {
	c := s[0]
	return (c >= 'a' && c <= 'z') || c == '_'
}

// stripNonASCII is the fallback when the normalization chain fails,
// which only happens on malformed UTF-8.
func stripNonASCII(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r <= unicode.MaxASCII {
			b.WriteRune(r)
		}
	}
	return b.String()
}
