// Package contact validates and normalizes the phone numbers and email
// addresses collected on intake forms.
package contact

import (
	"regexp"
	"strings"
)

var emailRe = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// NormalizePhone strips formatting characters and a leading US country code,
// returning the bare 10-digit number. Returns "" if the input cannot be
// reduced to 10 digits.
func NormalizePhone(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	digits := b.String()
	if len(digits) == 11 && digits[0] == '1' {
		digits = digits[1:]
	}
	if len(digits) != 10 {
		return ""
	}
	return digits
}

// ValidUSPhone reports whether s is a deliverable 10-digit US number.
// Area codes cannot start with 0 or 1 under NANP rules.
func ValidUSPhone(s string) bool {
	digits := NormalizePhone(s)
	return digits != "" && digits[0] >= '2'
}

// ValidEmail reports whether s looks like a deliverable email address.
func ValidEmail(s string) bool {
	return emailRe.MatchString(strings.TrimSpace(s))
}
