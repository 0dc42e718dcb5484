package core

import "strings"

// TrimFields trims the whitespace around each of the given form fields, in place.
func TrimFields(fields ...*string) {
	for _, f := range fields {
		*f = strings.TrimSpace(*f)
	}
}

// Normalize trims and lowers s, for inputs compared case-insensitively (emails, roles).
func Normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
