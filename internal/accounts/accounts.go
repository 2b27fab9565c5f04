// Package accounts provides account-identifier normalization shared by
// transfer detection and owner resolution.
//
// Czech account identifiers are commonly written as "number/bankcode"
// (e.g. "283337817/0300"). Different statement exports disagree on whether
// the bank routing code is present, so identity checks must tolerate it.
package accounts

import "strings"

// Normalize trims whitespace and stray quote characters from an account
// identifier as it appears in statement exports.
func Normalize(id string) string {
	id = strings.TrimSpace(id)
	id = strings.Trim(id, `"'`)
	if id == "/" {
		return ""
	}
	return id
}

// BaseNumber returns the account number with any trailing "/bankcode"
// routing suffix removed.
func BaseNumber(id string) string {
	id = Normalize(id)
	if idx := strings.Index(id, "/"); idx >= 0 {
		return id[:idx]
	}
	return id
}

// Same reports whether two account identifiers refer to the same account:
// an exact match first, then a match on the base number with routing
// suffixes stripped from both sides. Two empty identifiers never match.
func Same(a, b string) bool {
	a = Normalize(a)
	b = Normalize(b)
	if a == "" || b == "" {
		return false
	}
	if a == b {
		return true
	}
	return BaseNumber(a) == BaseNumber(b)
}

// MatchAny reports whether the identifier matches any entry of the given
// set, with the same exact-then-base-number semantics as Same.
func MatchAny(id string, set []string) bool {
	for _, candidate := range set {
		if Same(id, candidate) {
			return true
		}
	}
	return false
}
