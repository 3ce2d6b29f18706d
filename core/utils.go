package core

import "strings"

// CleanString normalizes a form input: surrounding whitespace is
// dropped and, when lower is set, the result is lowercased (emails,
// usernames).
func CleanString(s string, lower ...bool) string {
	s = strings.TrimSpace(s)
	if len(lower) > 0 && lower[0] {
		return strings.ToLower(s)
	}
	return s
}
