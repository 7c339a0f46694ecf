package common

import "strings"

// NormalizeCode strips any market suffix from a security code, e.g. "7203.T" -> "7203".
func NormalizeCode(code string) string {
	code = strings.TrimSpace(code)
	if i := strings.IndexByte(code, '.'); i >= 0 {
		return code[:i]
	}
	return code
}

// FullTicker appends the market suffix to a bare security code.
// Codes that already carry a suffix are returned unchanged.
func FullTicker(code, suffix string) string {
	code = strings.TrimSpace(code)
	if strings.Contains(code, ".") {
		return code
	}
	return code + suffix
}

// IsValidCode reports whether a code looks like a listed security code:
// exactly four alphanumeric characters (TSE convention).
func IsValidCode(code string) bool {
	if len(code) != 4 {
		return false
	}
	for i := 0; i < len(code); i++ {
		c := code[i]
		if !(c >= '0' && c <= '9' || c >= 'A' && c <= 'Z' || c >= 'a' && c <= 'z') {
			return false
		}
	}
	return true
}
