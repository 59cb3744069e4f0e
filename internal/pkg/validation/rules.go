package validation

import (
	"regexp"
	"strings"
)

// Field rule parameters shared by registration and profile updates.
const (
	PasswordMinLength = 8
	NameMinLength     = 2
	AgeMin            = 5
	AgeMax            = 100
)

// EmailPattern matches a conventional local@domain.tld shape and
// rejects embedded whitespace.
var EmailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// IsValidEmail reports whether s has a valid email shape.
func IsValidEmail(s string) bool {
	return EmailPattern.MatchString(s)
}

// IsValidPassword reports whether s meets the password policy: at
// least 8 characters with one lowercase letter, one uppercase letter
// and one digit, drawn from letters, digits and @$!%*?&.
func IsValidPassword(s string) bool {
	if len(s) < PasswordMinLength {
		return false
	}

	var hasLower, hasUpper, hasDigit bool
	for _, c := range s {
		switch {
		case c >= 'a' && c <= 'z':
			hasLower = true
		case c >= 'A' && c <= 'Z':
			hasUpper = true
		case c >= '0' && c <= '9':
			hasDigit = true
		case strings.ContainsRune("@$!%*?&", c):
			// allowed special character
		default:
			return false
		}
	}

	return hasLower && hasUpper && hasDigit
}

// IsValidName reports whether the trimmed name meets the minimum length.
func IsValidName(s string) bool {
	return len(strings.TrimSpace(s)) >= NameMinLength
}

// IsValidAge reports whether age falls within the accepted range.
func IsValidAge(age int) bool {
	return age >= AgeMin && age <= AgeMax
}

// NormalizeEmail lower-cases and trims an email for comparison and
// storage.
func NormalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
