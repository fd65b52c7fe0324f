// Package validation accumulates rule violations for an entity's attributes.
// The first violation recorded is the one reported to the client.
package validation

import "regexp"

// EmailRX is a pragmatic email shape check.
var EmailRX = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ISBNRX matches ISBN-10, digits optionally separated by spaces or hyphens.
var ISBNRX = regexp.MustCompile(`^(?:\d[- ]?){9}[\dXx]$`)

// Violations is the ordered list of failed rules.
type Violations []string

// Check appends message when ok is false.
func (v *Violations) Check(ok bool, message string) {
	if !ok {
		*v = append(*v, message)
	}
}

// First returns the first recorded violation, or "" when valid.
func (v Violations) First() string {
	if len(v) == 0 {
		return ""
	}
	return v[0]
}

// OK reports whether no rule failed.
func (v Violations) OK() bool { return len(v) == 0 }

// In reports whether value is one of list.
func In(value string, list ...string) bool {
	for _, item := range list {
		if value == item {
			return true
		}
	}
	return false
}
