package security

import "strings"

// Field length and format rules applied before any expensive work.
const (
	MinPasswordLength = 12
	MaxPasswordLength = 2000
	MinFieldLength    = 1
	MaxFieldLength    = 200
	PhoneNumberLength = 10
)

// Alphanumeric plus specials, without angle brackets so raw input can never
// smuggle markup or SQL fragments through the presentation layer.
const allowedSpecials = "~`@#$%^&!*()_-+={[}]|\\\"':;?/.,"

func allowedRune(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z':
		return true
	case r >= '0' && r <= '9':
		return true
	default:
		return strings.ContainsRune(allowedSpecials, r)
	}
}

// LengthInRange reports whether the rune count of s falls within [min, max].
func LengthInRange(s string, min, max int) bool {
	n := len([]rune(s))
	return n >= min && n <= max
}

// ANSCharactersOnly reports whether s consists solely of alphanumeric and
// allowed special characters. The check is case-insensitive.
func ANSCharactersOnly(s string) bool {
	for _, r := range strings.ToLower(s) {
		if !allowedRune(r) {
			return false
		}
	}
	return true
}

// NumericOnly reports whether s consists solely of digits.
func NumericOnly(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// ValidEmailFormat performs the minimal structural check: one @ with
// non-empty text on either side, neither side containing "..".
func ValidEmailFormat(email string) bool {
	parts := strings.Split(email, "@")
	if len(parts) != 2 {
		return false
	}
	local, dom := parts[0], parts[1]
	if local == "" || dom == "" {
		return false
	}
	return !strings.Contains(local, "..") && !strings.Contains(dom, "..")
}

// CanonicalizeEmail lower-cases the address and, for gmail.com, strips dots
// and any +suffix from the local part; double quotes are always removed.
// Uniqueness checks run on the canonical form so trivially aliased addresses
// cannot register twice.
func CanonicalizeEmail(email string) string {
	parts := strings.SplitN(email, "@", 2)
	if len(parts) != 2 {
		return strings.ToLower(email)
	}

	local := strings.ToLower(parts[0])
	dom := strings.ToLower(parts[1])

	if dom == "gmail.com" {
		local = strings.ReplaceAll(local, ".", "")
		if i := strings.Index(local, "+"); i != -1 {
			local = local[:i]
		}
	}

	local = strings.ReplaceAll(local, `"`, "")

	return local + "@" + dom
}
