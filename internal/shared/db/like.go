package db

import "strings"

// LikeEscape is the ESCAPE clause matching EscapeLike. '!' is used because a
// backslash literal is parsed differently by MySQL and SQLite.
const LikeEscape = "ESCAPE '!'"

var likeReplacer = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

// EscapeLike escapes LIKE wildcards in s.
func EscapeLike(s string) string {
	return likeReplacer.Replace(s)
}

// ContainsPattern returns a LIKE pattern matching s anywhere, for use against
// LOWER(column). Only A-Z are folded since SQLite's LOWER() folds ASCII only,
// so matching is ASCII case-insensitive on every driver.
func ContainsPattern(s string) string {
	return "%" + EscapeLike(LowerASCII(s)) + "%"
}

// LowerASCII maps A-Z to a-z and leaves every other rune untouched.
func LowerASCII(s string) string {
	return strings.Map(func(r rune) rune {
		if 'A' <= r && r <= 'Z' {
			return r + ('a' - 'A')
		}
		return r
	}, s)
}

// PrefixPattern returns a LIKE pattern matching values that start with s.
func PrefixPattern(s string) string {
	return EscapeLike(s) + "%"
}
