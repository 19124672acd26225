package util

import (
	"regexp"
	"strings"
)

// Password length bounds enforced at signup.
const (
	MinPasswordLength = 6
	MaxPasswordLength = 128
)

var (
	emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phoneRegex = regexp.MustCompile(`^[\d\s\-\+\(\)]{10,}$`)
)

// IsValidEmail reports whether email has a plausible address shape.
func IsValidEmail(email string) bool {
	return emailRegex.MatchString(email)
}

// IsValidPassword checks password length bounds.
func IsValidPassword(password string) bool {
	return len(password) >= MinPasswordLength && len(password) <= MaxPasswordLength
}

// IsValidPhone accepts empty values; phone is an optional field.
func IsValidPhone(phone string) bool {
	if strings.TrimSpace(phone) == "" {
		return true
	}
	return phoneRegex.MatchString(phone)
}

// Sanitize trims surrounding whitespace from user input.
func Sanitize(s string) string {
	return strings.TrimSpace(s)
}

// NormalizeEmail trims and lower-cases an email address for lookups.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
