// internal/engine/normalize.go
package engine

import "strings"

// Normalize canonicalizes free-text answers for comparison: leading and
// trailing whitespace is trimmed, the text is lowercased, and internal runs of
// whitespace collapse to a single space. Applied identically to stored ranked
// answers and player submissions, so all comparisons are case- and
// whitespace-insensitive. Idempotent; whitespace-only input yields "".
func Normalize(raw string) string {
	return strings.Join(strings.Fields(strings.ToLower(raw)), " ")
}
