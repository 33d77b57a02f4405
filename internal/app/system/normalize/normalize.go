// Package normalize provides input normalization for fields that are
// stored or matched case-insensitively. Normalization happens once, at
// the store boundary, so queries can rely on a canonical form.
package normalize

import "strings"

// Email lowercases and trims an email address. Emails are stored in
// this form and the unique index is built over it.
func Email(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Name trims surrounding whitespace but preserves case.
func Name(s string) string {
	return strings.TrimSpace(s)
}

// Role lowercases and trims a role string so "Lead" and "lead" compare
// equal. Validation against the known roles happens in the stores.
func Role(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
