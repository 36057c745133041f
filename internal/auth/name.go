package auth

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

var (
	nameDisallowed = regexp.MustCompile(`[^A-Za-z\x{0400}-\x{04FF}\x{0500}-\x{052F}\x{2DE0}-\x{2DFF}\x{A640}-\x{A69F}'\-\s]`)
	repeatedSpace  = regexp.MustCompile(`\s{2,}`)
)

const minNameLength = 2

// SanitizeName drops everything except Latin and Cyrillic letters,
// apostrophes, hyphens and whitespace, collapses runs of whitespace and
// trims the result.
func SanitizeName(v string) string {
	v = nameDisallowed.ReplaceAllString(v, "")
	v = repeatedSpace.ReplaceAllString(v, " ")
	return strings.TrimSpace(v)
}

// ValidateName sanitizes a required name field.
func ValidateName(v string) (string, error) {
	v = SanitizeName(v)
	switch {
	case v == "":
		return v, MsgRequired
	case utf8.RuneCountInString(v) < minNameLength:
		return v, MsgNameTooShort
	}
	return v, nil
}

// ValidateMiddleName sanitizes the optional middle name. It never fails.
func ValidateMiddleName(v string) string { return SanitizeName(v) }
