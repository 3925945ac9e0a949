package utils

import (
	"net/mail"
	"strings"
)

// FieldErrors maps a field name to its validation message, one message per
// failing field. An empty map means the input passed.
type FieldErrors map[string]string

func (e FieldErrors) Add(field, message string) {
	if _, exists := e[field]; !exists {
		e[field] = message
	}
}

func (e FieldErrors) Any() bool { return len(e) > 0 }

// Require adds an error when value is blank.
func (e FieldErrors) Require(field, value, message string) {
	if strings.TrimSpace(value) == "" {
		e.Add(field, message)
	}
}

// MaxLen adds an error when value exceeds max characters.
func (e FieldErrors) MaxLen(field, value string, max int, message string) {
	if len(value) > max {
		e.Add(field, message)
	}
}

// ValidEmail reports whether s parses as a bare RFC 5322 address.
func ValidEmail(s string) bool {
	addr, err := mail.ParseAddress(s)
	return err == nil && addr.Address == s
}
