package usecase

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Package-level compiled regex pattern for performance.
// The pipe is kept because the search text uses it as the
// name/aliases separator.
var nonWordRegex = regexp.MustCompile(`[^\w\s|]`)

// accentFolder decomposes to NFD and strips combining marks, so
// "Jiboia" and "jiboia" (and their accented spellings) normalize to
// the same string.
var accentFolder = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Normalize makes two differently-typed strings comparable:
// lowercase, trim, accent fold, punctuation to spaces (except the pipe
// separator), whitespace collapse. Idempotent and total.
func Normalize(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))

	if folded, _, err := transform.String(accentFolder, s); err == nil {
		s = folded
	}

	s = nonWordRegex.ReplaceAllString(s, " ")

	return strings.Join(strings.Fields(s), " ")
}
